package coupons

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
)

func doUpdate(body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPut, "/api/v1/coupons/cp1", strings.NewReader(body))
	rec := httptest.NewRecorder()
	UpdateCoupon(rec, req, httprouter.Params{{Key: "id", Value: "cp1"}})
	return rec
}

func TestUpdateCouponRejectsBadJSON(t *testing.T) {
	rec := doUpdate("{not json")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateCouponRejectsMissingFields(t *testing.T) {
	rec := doUpdate(`{"discount":10,"end_at":"2030-01-01T00:00:00Z"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = doUpdate(`{"title":"Sale","discount":10}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestUpdateCouponRejectsBadDiscount(t *testing.T) {
	rec := doUpdate(`{"title":"Sale","discount":0,"end_at":"2030-01-01T00:00:00Z"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doUpdate(`{"title":"Sale","discount":120,"end_at":"2030-01-01T00:00:00Z"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
