package catalog

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
)

func doBrandUpdate(body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPut, "/api/v1/brands/b1", strings.NewReader(body))
	rec := httptest.NewRecorder()
	UpdateBrand(rec, req, httprouter.Params{{Key: "id", Value: "b1"}})
	return rec
}

func TestUpdateBrandRejectsBadJSON(t *testing.T) {
	rec := doBrandUpdate("{not json")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateBrandRejectsMissingFields(t *testing.T) {
	rec := doBrandUpdate(`{"description":"only a description"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = doBrandUpdate(`{"name":"only a name"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestUpdateBrandImageRequiresImage(t *testing.T) {
	req := httptest.NewRequest(http.MethodPut, "/api/v1/brands/b1/image", nil)
	rec := httptest.NewRecorder()
	UpdateBrandImage(rec, req, httprouter.Params{{Key: "id", Value: "b1"}})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}
