// Command server starts the HireAI resume matching HTTP server.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	ai "github.com/sarensabesk/HireAI/internal/adapter/ai"
	aistub "github.com/sarensabesk/HireAI/internal/adapter/ai/stub"
	httpserver "github.com/sarensabesk/HireAI/internal/adapter/httpserver"
	"github.com/sarensabesk/HireAI/internal/adapter/observability"
	"github.com/sarensabesk/HireAI/internal/adapter/repo/memory"
	"github.com/sarensabesk/HireAI/internal/adapter/repo/postgres"
	"github.com/sarensabesk/HireAI/internal/adapter/textextractor"
	"github.com/sarensabesk/HireAI/internal/app"
	"github.com/sarensabesk/HireAI/internal/config"
	"github.com/sarensabesk/HireAI/internal/domain"
	"github.com/sarensabesk/HireAI/internal/keywords"
	"github.com/sarensabesk/HireAI/internal/nlp"
	"github.com/sarensabesk/HireAI/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := observability.SetupLogger(cfg)
	slog.SetDefault(logger)

	observability.InitMetrics()

	shutdownTracer, err := observability.SetupTracing(cfg)
	if err != nil {
		slog.Error("failed to setup tracing", slog.Any("error", err))
	}
	defer func() {
		if shutdownTracer != nil {
			_ = shutdownTracer(context.Background())
		}
	}()

	ctx := context.Background()

	// Analysis history: Postgres when configured, in-memory ring otherwise.
	var repo domain.AnalysisRepository
	var dbPinger app.Pinger
	if cfg.DBURL != "" {
		pool, err := postgres.NewPool(ctx, cfg.DBURL)
		if err != nil {
			slog.Error("db connect failed", slog.Any("error", err))
			os.Exit(1)
		}
		defer pool.Close()
		if err := postgres.EnsureSchema(ctx, pool); err != nil {
			slog.Error("schema setup failed", slog.Any("error", err))
			os.Exit(1)
		}
		repo = postgres.NewAnalysisRepo(pool)
		dbPinger = pool
		slog.Info("analysis history backed by postgres")
	} else {
		repo = memory.NewAnalysisRepo(0)
		slog.Info("analysis history backed by in-memory ring")
	}

	// Optional Redis for generator response caching.
	var rdb *redis.Client
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			slog.Error("redis url parse failed", slog.Any("error", err))
			os.Exit(1)
		}
		rdb = redis.NewClient(opts)
		defer func() { _ = rdb.Close() }()
	}

	// Generator client: real when an API key is configured, deterministic
	// stub in dev, disabled otherwise.
	var aicl domain.AIClient
	switch {
	case cfg.AIEnabled():
		aicl = ai.New(cfg)
		slog.Info("generator client initialized", slog.String("model", cfg.AIModel))
	case cfg.IsDev():
		aicl = aistub.New()
		slog.Warn("no AI_API_KEY set, using stub generator")
	default:
		slog.Warn("no AI_API_KEY set, generator-backed features degrade to fallbacks")
	}
	if aicl != nil {
		if rdb != nil {
			aicl = ai.NewRedisCache(aicl, rdb, cfg.AICacheTTL)
		} else {
			aicl = ai.NewMemoryCache(aicl, cfg.AICacheSize, cfg.AICacheTTL)
		}
	}

	// Linguistic pipeline and keyword engine.
	pipeline, err := nlp.New()
	if err != nil {
		slog.Error("nlp pipeline init failed", slog.Any("error", err))
		os.Exit(1)
	}
	engine, err := keywords.NewEngine(pipeline)
	if err != nil {
		slog.Error("keyword engine init failed", slog.Any("error", err))
		os.Exit(1)
	}

	cleaner := ai.NewCleaner()
	session := usecase.NewSessionService()
	analyzeSvc := usecase.NewAnalyzeService(cfg, engine, pipeline, aicl, cleaner, repo)
	artifactSvc := usecase.NewArtifactService(aicl, cleaner)

	var redisPinger app.RedisPinger
	if rdb != nil {
		redisPinger = rdb
	}
	dbCheck, redisCheck := app.BuildReadinessChecks(dbPinger, redisPinger)

	srv := httpserver.NewServer(cfg, session, analyzeSvc, artifactSvc, textextractor.New(), dbCheck, redisCheck)
	handler := app.BuildRouter(cfg, srv)

	srvHTTP := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           handler,
		ReadTimeout:       cfg.HTTPReadTimeout,
		WriteTimeout:      cfg.HTTPWriteTimeout,
		IdleTimeout:       cfg.HTTPIdleTimeout,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("http server starting", slog.Int("port", cfg.Port))
		errCh <- srvHTTP.ListenAndServe()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		slog.Info("shutdown signal received", slog.String("signal", sig.String()))
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", slog.Any("error", err))
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ServerShutdownTimeout)
	defer cancel()
	_ = srvHTTP.Shutdown(shutdownCtx)
}
