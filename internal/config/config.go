// Package config defines configuration parsing and helpers.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Config holds all application configuration parsed from environment variables.
type Config struct {
	AppEnv string `env:"APP_ENV" envDefault:"dev" validate:"oneof=dev test prod"`
	Port   int    `env:"PORT" envDefault:"8080" validate:"min=1,max=65535"`
	// FrontendURL is the single origin allowed by CORS. Comma separated lists are accepted.
	FrontendURL string `env:"FRONTEND_URL" envDefault:"http://localhost:3000"`

	LLMProvider       string        `env:"LLM_PROVIDER" envDefault:"openrouter" validate:"oneof=openrouter gemini"`
	OpenRouterAPIKey  string        `env:"OPENROUTER_API_KEY"`
	OpenRouterBaseURL string        `env:"OPENROUTER_BASE_URL" envDefault:"https://openrouter.ai/api/v1" validate:"url"`
	OpenRouterReferer string        `env:"OPENROUTER_REFERER"`
	OpenRouterTitle   string        `env:"OPENROUTER_TITLE" envDefault:"Resume Scorer"`
	LLMModel          string        `env:"LLM_MODEL" envDefault:"qwen/qwen3-32b:free" validate:"required"`
	GeminiAPIKey      string        `env:"GEMINI_API_KEY"`
	GeminiModel       string        `env:"GEMINI_MODEL" envDefault:"gemini-2.0-flash"`
	LLMTimeout        time.Duration `env:"LLM_TIMEOUT" envDefault:"60s"`
	LLMMaxTokens      int           `env:"LLM_MAX_TOKENS" envDefault:"0" validate:"min=0"`
	// LLMBreakerThreshold consecutive provider failures open the circuit; 0 disables it.
	LLMBreakerThreshold int           `env:"LLM_BREAKER_THRESHOLD" envDefault:"3" validate:"min=0"`
	LLMBreakerCooldown  time.Duration `env:"LLM_BREAKER_COOLDOWN" envDefault:"30s"`

	// TextExtractor selects the document parser: in-process PDF or an Apache Tika server.
	TextExtractor        string        `env:"TEXT_EXTRACTOR" envDefault:"pdf" validate:"oneof=pdf tika"`
	TikaURL              string        `env:"TIKA_URL" envDefault:"http://tika:9998"`
	ExtractorWaitTimeout time.Duration `env:"EXTRACTOR_WAIT_TIMEOUT" envDefault:"30s"`

	FeedbackStore string `env:"FEEDBACK_STORE" envDefault:"memory" validate:"oneof=memory redis"`
	RedisURL      string `env:"REDIS_URL" envDefault:"redis://localhost:6379/0"`
	// FeedbackTTL of zero keeps pending feedback until it is redeemed.
	FeedbackTTL           time.Duration `env:"FEEDBACK_TTL" envDefault:"0s"`
	FeedbackSweepInterval time.Duration `env:"FEEDBACK_SWEEP_INTERVAL" envDefault:"1m"`

	MaxUploadMB        int64  `env:"MAX_UPLOAD_MB" envDefault:"10" validate:"min=1"`
	ScoringWeightsFile string `env:"SCORING_WEIGHTS_FILE"`

	OTLPEndpoint    string `env:"OTEL_EXPORTER_OTLP_ENDPOINT" envDefault:""`
	OTELServiceName string `env:"OTEL_SERVICE_NAME" envDefault:"resume-scorer"`
	// TraceSampleRatio applies to root spans only; sampled parents are always followed.
	TraceSampleRatio float64 `env:"OTEL_TRACES_SAMPLER_ARG" envDefault:"1" validate:"gte=0,lte=1"`

	ServerShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" envDefault:"30s"`
	HTTPReadTimeout       time.Duration `env:"HTTP_READ_TIMEOUT" envDefault:"15s"`
	// HTTPWriteTimeout must cover the LLM round trip on /feedback.
	HTTPWriteTimeout time.Duration `env:"HTTP_WRITE_TIMEOUT" envDefault:"90s"`
	HTTPIdleTimeout  time.Duration `env:"HTTP_IDLE_TIMEOUT" envDefault:"60s"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Load reads an optional .env file, then parses environment variables into a Config.
// Variables already present in the environment win over the file.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("op=config.Load: dotenv: %w", err)
	}
	return Parse()
}

// Parse parses and validates the current environment without touching .env files.
func Parse() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("op=config.Load: %w", err)
	}
	cfg.AppEnv = strings.ToLower(cfg.AppEnv)
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("op=config.Load: %w", err)
	}
	return cfg, nil
}

// Validate checks field constraints and cross-field requirements.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return err
	}
	if c.TextExtractor == "tika" && c.TikaURL == "" {
		return errors.New("TIKA_URL is required when TEXT_EXTRACTOR=tika")
	}
	if c.FeedbackStore == "redis" && c.RedisURL == "" {
		return errors.New("REDIS_URL is required when FEEDBACK_STORE=redis")
	}
	if c.FeedbackTTL < 0 {
		return errors.New("FEEDBACK_TTL must not be negative")
	}
	return nil
}

// IsDev reports whether the app is running in development mode.
func (c Config) IsDev() bool { return c.AppEnv == "dev" }

// IsProd reports whether the app is running in production mode.
func (c Config) IsProd() bool { return c.AppEnv == "prod" }

// IsTest reports whether the app is running in test mode.
func (c Config) IsTest() bool { return c.AppEnv == "test" }

// MaxUploadBytes converts MaxUploadMB to bytes.
func (c Config) MaxUploadBytes() int64 { return c.MaxUploadMB << 20 }

// AllowedOrigins splits FrontendURL into CORS origins.
func (c Config) AllowedOrigins() []string {
	var out []string
	for _, o := range strings.Split(c.FrontendURL, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

// LLMConfigured reports whether the selected provider has credentials.
func (c Config) LLMConfigured() bool {
	switch c.LLMProvider {
	case "gemini":
		return c.GeminiAPIKey != ""
	default:
		return c.OpenRouterAPIKey != ""
	}
}

// ActiveModel returns the model id the selected provider will be called with.
func (c Config) ActiveModel() string {
	if c.LLMProvider == "gemini" {
		return c.GeminiModel
	}
	return c.LLMModel
}
