package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"route", "method", "status"},
	)
	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5},
		},
		[]string{"route", "method"},
	)

	AIRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ai_requests_total",
			Help: "Total number of AI generation calls by operation and outcome",
		},
		[]string{"operation", "outcome"},
	)
	AIRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ai_request_duration_seconds",
			Help:    "AI generation call duration in seconds",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
		},
		[]string{"operation"},
	)
	AICacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ai_cache_total",
			Help: "AI response cache lookups by result",
		},
		[]string{"result"},
	)

	AnalysesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "analyses_total",
			Help: "Completed analyses by outcome",
		},
		[]string{"outcome"},
	)

	// Score distributions across completed analyses.
	AnalysisScoreHistogram = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "analysis_score",
			Help:    "Distribution of final analysis scores ([0,100])",
			Buckets: []float64{0, 10, 20, 30, 40, 50, 60, 70, 80, 90, 100},
		},
	)
	SkillMatchRateHistogram = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "analysis_skill_match_rate",
			Help:    "Distribution of skill match rate (normalized fraction [0,1])",
			Buckets: []float64{0, 0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8, 0.9, 1.0},
		},
	)
)

func InitMetrics() {
	prometheus.MustRegister(HTTPRequestsTotal)
	prometheus.MustRegister(HTTPRequestDuration)
	prometheus.MustRegister(AIRequestsTotal)
	prometheus.MustRegister(AIRequestDuration)
	prometheus.MustRegister(AICacheTotal)
	prometheus.MustRegister(AnalysesTotal)
	prometheus.MustRegister(AnalysisScoreHistogram)
	prometheus.MustRegister(SkillMatchRateHistogram)
}

// HTTPMetricsMiddleware records Prometheus metrics for each request.
func HTTPMetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		dur := time.Since(start).Seconds()
		// Route pattern may be unavailable outside chi router; guard nil
		var route string
		if rc := chi.RouteContext(r.Context()); rc != nil {
			route = rc.RoutePattern()
		}
		if route == "" {
			route = r.URL.Path
		}
		HTTPRequestsTotal.WithLabelValues(route, r.Method, strconv.Itoa(ww.Status())).Inc()
		HTTPRequestDuration.WithLabelValues(route, r.Method).Observe(dur)
	})
}

// ObserveAIRequest records one generation call.
func ObserveAIRequest(operation, outcome string, dur time.Duration) {
	AIRequestsTotal.WithLabelValues(operation, outcome).Inc()
	AIRequestDuration.WithLabelValues(operation).Observe(dur.Seconds())
}

func CacheHit()  { AICacheTotal.WithLabelValues("hit").Inc() }
func CacheMiss() { AICacheTotal.WithLabelValues("miss").Inc() }

// ObserveAnalysis records the outcome of a completed analysis. Scores are
// only sampled for successful runs.
func ObserveAnalysis(score, matchRate float64, failed bool) {
	if failed {
		AnalysesTotal.WithLabelValues("failed").Inc()
		return
	}
	AnalysesTotal.WithLabelValues("ok").Inc()
	if score >= 0 && score <= 100 {
		AnalysisScoreHistogram.Observe(score)
	}
	if matchRate >= 0 && matchRate <= 1 {
		SkillMatchRateHistogram.Observe(matchRate)
	}
}
