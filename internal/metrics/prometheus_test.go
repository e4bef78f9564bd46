package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestClassifyStatus(t *testing.T) {
	assert.Equal(t, "2xx", classifyStatus(204))
	assert.Equal(t, "3xx", classifyStatus(302))
	assert.Equal(t, "4xx", classifyStatus(422))
	assert.Equal(t, "5xx", classifyStatus(500))
	assert.Equal(t, "unknown", classifyStatus(99))
}

func TestMiddleware_RecordsRoutePattern(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /items/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	before := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "GET /items/{id}", "4xx"))
	rec := httptest.NewRecorder()
	Middleware(mux).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/items/42", nil))

	assert.Equal(t, http.StatusTeapot, rec.Code)
	after := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "GET /items/{id}", "4xx"))
	assert.Equal(t, before+1, after)
}

func TestRecordInquiry(t *testing.T) {
	before := testutil.ToFloat64(inquiriesTotal.WithLabelValues("limited"))
	RecordInquiry("limited")
	assert.Equal(t, before+1, testutil.ToFloat64(inquiriesTotal.WithLabelValues("limited")))
}
