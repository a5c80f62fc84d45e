package config

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	pkgRetry "github.com/futig/flowcraft-backend/internal/pkg/retry"
	"github.com/joho/godotenv"
)

const (
	StorageDriverFile   = "file"
	StorageDriverMemory = "memory"

	LLMProviderGemini = "gemini"
	LLMProviderOpenAI = "openai"
)

// Config holds the application configuration
type Config struct {
	// Server configuration
	ServerAddr         string        `env:"SERVER_ADDR" envDefault:":8000"`
	ServerReadTimeout  time.Duration `env:"SERVER_READ_TIMEOUT" envDefault:"15s"`
	ServerWriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT" envDefault:"90s"`
	RequestTimeout     time.Duration `env:"REQUEST_TIMEOUT" envDefault:"60s"`

	// Browser clients allowed to call the API
	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000"`

	// Session storage configuration
	StorageCfg StorageConfig `envPrefix:"STORAGE_"`

	// Generation collaborator configuration
	LLMConnectorCfg LLMConnectorConfig `envPrefix:"LLM_"`

	// Logging configuration
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// Export configuration
	DOCXLicenseKey string `env:"UNIDOC_LICENSE_API_KEY"`

	// Mock configuration
	EnableMocks bool `env:"ENABLE_MOCKS" envDefault:"false"`

	// Environment (set from flag, not from env var)
	Environment string
}

type StorageConfig struct {
	Driver string `env:"DRIVER" envDefault:"file"`
	Dir    string `env:"DIR" envDefault:"./conversations"`
}

type LLMConnectorConfig struct {
	HTTPClientConfig
	Provider string               `env:"PROVIDER" envDefault:"gemini"`
	APIKey   string               `env:"API_KEY"`
	Model    string               `env:"MODEL" envDefault:"gemini-1.5-flash"`
	BaseURL  string               `env:"BASE_URL"`
	Retry    pkgRetry.RetryConfig `envPrefix:"RETRY_"`
}

type HTTPClientConfig struct {
	RequestTimeout        time.Duration `env:"TIMEOUT" envDefault:"60s"`
	ConnTimeout           time.Duration `env:"CONN_TIMEOUT" envDefault:"10s"`
	KeepAlive             time.Duration `env:"KEEP_ALIVE" envDefault:"90s"`
	IdleConnTimeout       time.Duration `env:"IDLE_CONN_TIMEOUT" envDefault:"90s"`
	ResponseHeaderTimeout time.Duration `env:"RESPONSE_HEADER_TIMEOUT" envDefault:"60s"`
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

	cfg, err := Parse()
	if err != nil {
		return nil, err
	}
	cfg.Environment = *envFlag

	return cfg, nil
}

// Parse reads the configuration from the process environment and validates it.
func Parse() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	// GEMINI_API_KEY is the variable name used by existing deployments.
	if cfg.LLMConnectorCfg.APIKey == "" {
		cfg.LLMConnectorCfg.APIKey = os.Getenv("GEMINI_API_KEY")
	}

	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

func validateConfig(cfg *Config) error {
	var errors []string

	switch cfg.StorageCfg.Driver {
	case StorageDriverFile:
		if strings.TrimSpace(cfg.StorageCfg.Dir) == "" {
			errors = append(errors, "STORAGE_DIR must not be empty for the file driver")
		}
	case StorageDriverMemory:
	default:
		errors = append(errors, fmt.Sprintf("STORAGE_DRIVER must be one of file, memory, got %q", cfg.StorageCfg.Driver))
	}

	if !cfg.EnableMocks {
		switch cfg.LLMConnectorCfg.Provider {
		case LLMProviderGemini, LLMProviderOpenAI:
		default:
			errors = append(errors, fmt.Sprintf("LLM_PROVIDER must be one of gemini, openai, got %q", cfg.LLMConnectorCfg.Provider))
		}

		if cfg.LLMConnectorCfg.APIKey == "" {
			errors = append(errors, "LLM_API_KEY (or GEMINI_API_KEY) is required unless ENABLE_MOCKS is set")
		}
	}

	if cfg.LLMConnectorCfg.Retry.Attempts < 1 || cfg.LLMConnectorCfg.Retry.Attempts > 10 {
		errors = append(errors, fmt.Sprintf("LLM_RETRY_ATTEMPTS must be between 1 and 10, got %d", cfg.LLMConnectorCfg.Retry.Attempts))
	}

	if len(cfg.CORSAllowedOrigins) == 0 {
		errors = append(errors, "CORS_ALLOWED_ORIGINS must contain at least one origin")
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
