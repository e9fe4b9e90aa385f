package pay

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeRequestHash(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/checkout/a1", nil)
	body := []byte(`{"amount":100}`)

	same := computeRequestHash(req, body, "u1")
	assert.Equal(t, same, computeRequestHash(req, body, "u1"))

	assert.NotEqual(t, same, computeRequestHash(req, []byte(`{"amount":101}`), "u1"))
	assert.NotEqual(t, same, computeRequestHash(req, body, "u2"))

	other := httptest.NewRequest(http.MethodPost, "/api/v1/checkout/a2", nil)
	assert.NotEqual(t, same, computeRequestHash(other, body, "u1"))
}

func TestCaptureResponseWriter(t *testing.T) {
	rec := httptest.NewRecorder()
	crw := newCaptureResponseWriter(rec)

	crw.WriteHeader(http.StatusCreated)
	crw.WriteHeader(http.StatusTeapot) // ignored, header already sent
	_, err := crw.Write([]byte(`{"ok":true}`))
	assert.NoError(t, err)

	assert.Equal(t, http.StatusCreated, crw.statusCode)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, `{"ok":true}`, crw.buf.String())
	assert.Equal(t, `{"ok":true}`, rec.Body.String())
}

func TestCaptureResponseWriterDefaultsTo200(t *testing.T) {
	crw := newCaptureResponseWriter(httptest.NewRecorder())
	_, _ = crw.Write([]byte("ok"))
	assert.Equal(t, http.StatusOK, crw.statusCode)
}
