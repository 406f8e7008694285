package observability

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPMetricsMiddleware(t *testing.T) {
	h := HTTPMetricsMiddleware(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/analyze", nil))
	require.Equal(t, http.StatusTeapot, rec.Code)
}

func TestObserveAnalysisBounds(t *testing.T) {
	// out-of-range samples must not panic
	assert.NotPanics(t, func() {
		ObserveAnalysis(250, 3, false)
		ObserveAnalysis(-5, -1, false)
		ObserveAnalysis(0, 0, true)
		ObserveAnalysis(87.5, 0.9, false)
	})
}

func TestCacheCounters(t *testing.T) {
	assert.NotPanics(t, func() {
		CacheHit()
		CacheMiss()
	})
}
