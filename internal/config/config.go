// Package config defines configuration parsing and helpers.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
)

// Config holds all application configuration parsed from environment variables.
type Config struct {
	AppEnv string `env:"APP_ENV" envDefault:"dev"`
	Port   int    `env:"PORT" envDefault:"8080"`

	// DBURL enables the Postgres analysis-history repository when set.
	DBURL string `env:"DB_URL"`
	// RedisURL enables the Redis-backed generator response cache when set.
	RedisURL string `env:"REDIS_URL"`

	// Generator (OpenAI-compatible chat completions endpoint).
	AIAPIKey    string        `env:"AI_API_KEY"`
	AIBaseURL   string        `env:"AI_BASE_URL" envDefault:"https://openrouter.ai/api/v1"`
	AIModel     string        `env:"AI_MODEL" envDefault:"google/gemini-2.5-flash"`
	AITimeout   time.Duration `env:"AI_TIMEOUT" envDefault:"30s"`
	AIMaxTokens int           `env:"AI_MAX_TOKENS" envDefault:"1024"`
	AICacheSize int           `env:"AI_CACHE_SIZE" envDefault:"512"`
	AICacheTTL  time.Duration `env:"AI_CACHE_TTL" envDefault:"1h"`

	// Scoring knobs. The defaults are the empirically chosen constants of the
	// original engine, surfaced here so they are named and overridable rather
	// than buried as literals.
	SkillMatchWeight float64 `env:"SKILL_MATCH_WEIGHT" envDefault:"0.60"`
	SemanticWeight   float64 `env:"SEMANTIC_WEIGHT" envDefault:"0.30"`
	DensityBonusCap  float64 `env:"DENSITY_BONUS_CAP" envDefault:"10"`
	FuzzyThreshold   float64 `env:"FUZZY_THRESHOLD" envDefault:"0.85"`
	MinJobWords      int     `env:"MIN_JOB_WORDS" envDefault:"10"`
	JobKeywordCap    int     `env:"JOB_KEYWORD_CAP" envDefault:"30"`
	ResumeKeywordCap int     `env:"RESUME_KEYWORD_CAP" envDefault:"60"`

	MaxUploadMB      int64  `env:"MAX_UPLOAD_MB" envDefault:"10"`
	CORSAllowOrigins string `env:"CORS_ALLOW_ORIGINS" envDefault:"*"`
	RateLimitPerMin  int    `env:"RATE_LIMIT_PER_MIN" envDefault:"30"`
	HistoryLimit     int    `env:"HISTORY_LIMIT" envDefault:"20"`

	ServerShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" envDefault:"30s"`
	HTTPReadTimeout       time.Duration `env:"HTTP_READ_TIMEOUT" envDefault:"15s"`
	HTTPWriteTimeout      time.Duration `env:"HTTP_WRITE_TIMEOUT" envDefault:"60s"`
	HTTPIdleTimeout       time.Duration `env:"HTTP_IDLE_TIMEOUT" envDefault:"60s"`

	OTLPEndpoint    string `env:"OTEL_EXPORTER_OTLP_ENDPOINT" envDefault:""`
	OTELServiceName string `env:"OTEL_SERVICE_NAME" envDefault:"hireai"`
}

// Load parses environment variables into a Config.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("op=config.Load: %w", err)
	}
	return cfg, nil
}

// AIEnabled reports whether a real generator client can be constructed.
func (c Config) AIEnabled() bool { return c.AIAPIKey != "" }

// IsDev reports whether the app is running in development mode.
func (c Config) IsDev() bool { return strings.ToLower(c.AppEnv) == "dev" }

// IsProd reports whether the app is running in production mode.
func (c Config) IsProd() bool { return strings.ToLower(c.AppEnv) == "prod" }

// IsTest reports whether the app is running in test mode.
func (c Config) IsTest() bool { return strings.ToLower(c.AppEnv) == "test" }
