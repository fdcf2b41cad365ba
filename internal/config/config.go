package config

import (
	"flag"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	pkgRetry "github.com/gradewise/eval-backend/internal/pkg/retry"
)

// Config holds the application configuration
type Config struct {
	// Server configuration
	ServerAddr string `env:"SERVER_ADDR" envDefault:":8080"`

	// LLM provider credential; the process refuses to start without it
	GeminiAPIKey string `env:"GEMINI_API_KEY,notEmpty"`

	// LLM connector configuration
	LLMCfg LLMConfig `envPrefix:"LLM_"`

	// Request validation limits
	LimitsCfg LimitsConfig `envPrefix:"LIMITS_"`

	// Logging configuration
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// Mock configuration
	EnableMocks bool `env:"ENABLE_MOCKS" envDefault:"false"`

	// Environment (set from flag, not from env var)
	Environment string
}

// LLMConfig holds LLM provider connection settings
type LLMConfig struct {
	HTTPClientConfig

	// APIKey is filled from GEMINI_API_KEY after parsing, never logged
	APIKey string `env:"-"`

	BaseURL     string               `env:"BASE_URL" envDefault:"https://generativelanguage.googleapis.com/v1beta/openai/"`
	Model       string               `env:"MODEL" envDefault:"gemini-2.0-flash"`
	Temperature float32              `env:"TEMPERATURE" envDefault:"0.2"`
	MaxTokens   int                  `env:"MAX_TOKENS" envDefault:"0"`
	Retry       pkgRetry.RetryConfig `envPrefix:"RETRY_"`
}

type HTTPClientConfig struct {
	RequestTimeout        time.Duration `env:"TIMEOUT" envDefault:"90s"`
	ConnTimeout           time.Duration `env:"CONN_TIMEOUT" envDefault:"10s"`
	KeepAlive             time.Duration `env:"KEEP_ALIVE" envDefault:"90s"`
	IdleConnTimeout       time.Duration `env:"IDLE_CONN_TIMEOUT" envDefault:"90s"`
	ResponseHeaderTimeout time.Duration `env:"RESPONSE_HEADER_TIMEOUT" envDefault:"60s"`
}

// LimitsConfig holds request validation limits
type LimitsConfig struct {
	MaxSubmissionItems int `env:"MAX_SUBMISSION_ITEMS" envDefault:"100"`
	MaxQuestionCount   int `env:"MAX_QUESTION_COUNT" envDefault:"100"`
}

func LoadConfig() (*Config, error) {
	envFlag := flag.String("env", "local", "Environment to run (local, prod, or custom)")
	flag.Parse()

	envFile := getEnvFile(*envFlag)
	// Try to load env file, but don't fail if it's missing.
	// In containerized/prod environments variables are usually set externally.
	if err := godotenv.Load(envFile); err != nil {
		fmt.Printf("Warning: could not load %s file (this is ok if env vars are set externally): %v\n", envFile, err)
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	cfg.Environment = *envFlag
	cfg.LLMCfg.APIKey = cfg.GeminiAPIKey

	// Validate configuration
	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

func validateConfig(cfg *Config) error {
	var errors []string

	if cfg.ServerAddr == "" {
		errors = append(errors, "SERVER_ADDR must not be empty")
	}

	if cfg.LLMCfg.Model == "" {
		errors = append(errors, "LLM_MODEL must not be empty")
	}

	if cfg.LLMCfg.Temperature < 0 || cfg.LLMCfg.Temperature > 2 {
		errors = append(errors, fmt.Sprintf("LLM_TEMPERATURE must be between 0 and 2, got %v", cfg.LLMCfg.Temperature))
	}

	if cfg.LLMCfg.RequestTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("LLM_TIMEOUT must be positive, got %v", cfg.LLMCfg.RequestTimeout))
	}

	if cfg.LLMCfg.Retry.Attempts < 1 || cfg.LLMCfg.Retry.Attempts > 5 {
		errors = append(errors, fmt.Sprintf("LLM_RETRY_ATTEMPTS must be between 1 and 5, got %d", cfg.LLMCfg.Retry.Attempts))
	}

	if cfg.LimitsCfg.MaxSubmissionItems < 1 || cfg.LimitsCfg.MaxSubmissionItems > 1000 {
		errors = append(errors, fmt.Sprintf("LIMITS_MAX_SUBMISSION_ITEMS must be between 1 and 1000, got %d", cfg.LimitsCfg.MaxSubmissionItems))
	}

	if cfg.LimitsCfg.MaxQuestionCount < 1 || cfg.LimitsCfg.MaxQuestionCount > 500 {
		errors = append(errors, fmt.Sprintf("LIMITS_MAX_QUESTION_COUNT must be between 1 and 500, got %d", cfg.LimitsCfg.MaxQuestionCount))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation errors:\n  - %s", strings.Join(errors, "\n  - "))
	}

	return nil
}

func getEnvFile(environment string) string {
	switch environment {
	case "prod", "production":
		return ".env.prod"
	case "local", "dev", "development":
		return ".env.local"
	default:
		return fmt.Sprintf(".env.%s", environment)
	}
}
