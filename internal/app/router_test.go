package app_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httpserver "github.com/sarensabesk/HireAI/internal/adapter/httpserver"
	"github.com/sarensabesk/HireAI/internal/app"
	"github.com/sarensabesk/HireAI/internal/config"
	"github.com/sarensabesk/HireAI/internal/domain"
	"github.com/sarensabesk/HireAI/internal/usecase"
)

func TestParseOrigins(t *testing.T) {
	t.Parallel()
	assert.Equal(t, []string{"*"}, app.ParseOrigins(""))
	assert.Equal(t, []string{"*"}, app.ParseOrigins("*"))
	assert.Equal(t, []string{"*"}, app.ParseOrigins(" , "))
	assert.Equal(t,
		[]string{"https://a.example", "https://b.example"},
		app.ParseOrigins(" https://a.example , https://b.example "))
}

type noopExtractor struct{}

func (noopExtractor) Extract(_ domain.Context, _ string, data []byte) (string, error) {
	return string(data), nil
}

func testRouter(t *testing.T) http.Handler {
	t.Helper()
	cfg := config.Config{
		MaxUploadMB:     1,
		RateLimitPerMin: 100,
		FuzzyThreshold:  0.85,
		MinJobWords:     10,
	}
	session := usecase.NewSessionService()
	artifacts := usecase.NewArtifactService(nil, nil)
	srv := &httpserver.Server{
		Cfg:       cfg,
		Session:   session,
		Analyzer:  routeAnalyzer{},
		Artifacts: artifacts,
		Extractor: noopExtractor{},
	}
	return app.BuildRouter(cfg, srv)
}

type routeAnalyzer struct{}

func (routeAnalyzer) Analyze(domain.Context, domain.Resume, string) domain.Analysis {
	return domain.Analysis{Score: 50}
}

func (routeAnalyzer) History(domain.Context) ([]domain.Analysis, error) {
	return nil, nil
}

func TestRouterHealthAndMetrics(t *testing.T) {
	t.Parallel()
	h := testRouter(t)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouterSecurityHeadersApplied(t *testing.T) {
	t.Parallel()
	h := testRouter(t)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
}

func TestRouterHistoryRoute(t *testing.T) {
	t.Parallel()
	h := testRouter(t)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/analyses", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"analyses":[]}`, rec.Body.String())
}

func TestRouterUnknownRoute(t *testing.T) {
	t.Parallel()
	h := testRouter(t)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/nope", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestBuildReadinessChecks(t *testing.T) {
	t.Parallel()

	dbCheck, redisCheck := app.BuildReadinessChecks(nil, nil)
	assert.Nil(t, dbCheck)
	assert.Nil(t, redisCheck)

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	dbCheck, redisCheck = app.BuildReadinessChecks(stubPinger{}, rdb)
	require.NotNil(t, dbCheck)
	require.NotNil(t, redisCheck)
	assert.NoError(t, redisCheck(context.Background()))
	assert.Error(t, dbCheck(context.Background()))
}

type stubPinger struct{}

func (stubPinger) Ping(context.Context) error { return errors.New("db down") }
