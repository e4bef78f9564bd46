package httpx

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/forgeline/equipment-cms/internal/logger"
	"github.com/forgeline/equipment-cms/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus(t *testing.T) {
	verr := model.NewValidationError()
	verr.Add("name", "required")

	assert.Equal(t, http.StatusUnprocessableEntity, Status(verr))
	assert.Equal(t, http.StatusNotFound, Status(fmt.Errorf("get: %w", model.ErrNotFound)))
	assert.Equal(t, http.StatusConflict, Status(model.ErrConflict))
	assert.Equal(t, http.StatusBadRequest, Status(model.ErrInvalidInput))
	assert.Equal(t, http.StatusInternalServerError, Status(errors.New("boom")))
}

func TestWriteError_ValidationFields(t *testing.T) {
	verr := model.NewValidationError()
	verr.Add("slug", "must be URL-safe")

	rec := httptest.NewRecorder()
	WriteError(rec, logger.NewNop(), "save product", verr)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	var body ErrorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "validation failed", body.Error)
	assert.Equal(t, map[string]string{"slug": "must be URL-safe"}, body.Fields)
}

func TestWriteError_HidesInternalErrors(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(rec, logger.NewNop(), "list products", errors.New("pq: connection refused"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "pq:")
}

func TestDecodeJSON(t *testing.T) {
	var dst struct {
		Name string `json:"name"`
	}
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"Mixer"}`))
	require.NoError(t, DecodeJSON(r, &dst))
	assert.Equal(t, "Mixer", dst.Name)

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"nope":1}`))
	err := DecodeJSON(r, &dst)
	assert.ErrorIs(t, err, model.ErrInvalidInput)
}

func TestQueryHelpers(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/?page=3&size=x&featured=true", nil)
	assert.Equal(t, 3, QueryInt(r, "page", 1))
	assert.Equal(t, 20, QueryInt(r, "size", 20))
	assert.Equal(t, 7, QueryInt(r, "missing", 7))
	require.NotNil(t, QueryBool(r, "featured"))
	assert.True(t, *QueryBool(r, "featured"))
	assert.Nil(t, QueryBool(r, "missing"))
}

func TestClientIP(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.RemoteAddr = "10.0.0.5:5555"
	assert.Equal(t, "10.0.0.5", ClientIP(r))

	r.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.1")
	assert.Equal(t, "10.0.0.5", ClientIP(r))
}

func TestTrustedProxies_ClientIP(t *testing.T) {
	trusted, err := ParseTrustedProxies([]string{"10.0.0.0/8", " 192.0.2.1 ", ""})
	require.NoError(t, err)
	require.Len(t, trusted, 2)

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.RemoteAddr = "10.0.0.5:5555"
	assert.Equal(t, "10.0.0.5", trusted.ClientIP(r))

	r.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.1")
	assert.Equal(t, "203.0.113.9", trusted.ClientIP(r))

	r.Header.Set("X-Forwarded-For", "not-an-ip")
	assert.Equal(t, "10.0.0.5", trusted.ClientIP(r))

	r.RemoteAddr = "198.51.100.4:5555"
	r.Header.Set("X-Forwarded-For", "203.0.113.9")
	assert.Equal(t, "198.51.100.4", trusted.ClientIP(r))

	_, err = ParseTrustedProxies([]string{"10.0.0.0/99"})
	assert.Error(t, err)
}

func TestRecover(t *testing.T) {
	h := Recover(logger.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("kaboom")
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestChainOrder(t *testing.T) {
	var order []string
	mw := func(name string) func(http.Handler) http.Handler {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}
	h := Chain(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}), mw("a"), mw("b"))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, []string{"a", "b"}, order)
}
