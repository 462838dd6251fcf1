package httpx

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteError(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(rec, http.StatusConflict, "duplicate_phone", "phone number already registered", nil)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")
	var body APIError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "duplicate_phone", body.Code)
	assert.Equal(t, "phone number already registered", body.Error)
	assert.NotContains(t, rec.Body.String(), "details")
}

func TestDecodeJSON(t *testing.T) {
	var v struct {
		Phone string `json:"phone"`
	}
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"phone":"9000000000"}`))
	require.NoError(t, DecodeJSON(r, &v))
	assert.Equal(t, "9000000000", v.Phone)

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"phone":"1","extra":true}`))
	assert.Error(t, DecodeJSON(r, &v))

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"phone":"1"}{"phone":"2"}`))
	assert.Error(t, DecodeJSON(r, &v))
}

func TestPage(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/?limit=500&offset=20", nil)
	limit, offset := Page(r, 50, 200)
	assert.Equal(t, 200, limit)
	assert.Equal(t, 20, offset)

	r = httptest.NewRequest(http.MethodGet, "/?limit=-1&offset=x", nil)
	limit, offset = Page(r, 50, 200)
	assert.Equal(t, 50, limit)
	assert.Equal(t, 0, offset)
}
