package infra

import (
	"os"
	"strconv"
	"time"

	"imageserver/internal/catalog"
	"imageserver/internal/core"
)

// Config represents application configuration loaded from environment
// variables. It is constructed once at startup and read-only thereafter.
type Config struct {
	AppEnv string
	Port   string

	GeminiAPIKey  string
	GeminiBaseURL string

	DefaultGeminiModel string
	DefaultImagenModel string
	EnhancementModel   string

	EnableEnhancement bool
	EnableBatch       bool

	RequestTimeout     time.Duration
	EnhancementTimeout time.Duration
	MaxBatchSize       int

	DefaultAspectRatio  string
	DefaultOutputFormat string
	OutputDir           string

	HTTPReadTimeout  time.Duration
	HTTPWriteTimeout time.Duration
	HTTPIdleTimeout  time.Duration
}

// LoadConfig loads configuration from environment variables and applies
// defaults where needed. The API credential falls back from GEMINI_API_KEY
// to GOOGLE_API_KEY; absence of both is fatal.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		AppEnv: getEnv("APP_ENV", "development"),
		Port:   getEnv("PORT", "8080"),

		GeminiAPIKey:  os.Getenv("GEMINI_API_KEY"),
		GeminiBaseURL: getEnv("GEMINI_BASE_URL", catalog.GeminiAPIBase),

		DefaultGeminiModel: getEnv("DEFAULT_GEMINI_MODEL", catalog.DefaultGeminiModel),
		DefaultImagenModel: getEnv("DEFAULT_IMAGEN_MODEL", catalog.DefaultImagenModel),
		EnhancementModel:   getEnv("ENHANCEMENT_MODEL", catalog.DefaultEnhancementModel),

		EnableEnhancement: getEnvBool("ENABLE_PROMPT_ENHANCEMENT", true),
		EnableBatch:       getEnvBool("ENABLE_BATCH_PROCESSING", true),

		RequestTimeout:     time.Second * time.Duration(getEnvInt("REQUEST_TIMEOUT_SECONDS", 60)),
		EnhancementTimeout: time.Second * time.Duration(getEnvInt("ENHANCEMENT_TIMEOUT_SECONDS", 30)),
		MaxBatchSize:       getEnvInt("MAX_BATCH_SIZE", catalog.MaxBatchSize),

		DefaultAspectRatio:  getEnv("DEFAULT_ASPECT_RATIO", "1:1"),
		DefaultOutputFormat: getEnv("DEFAULT_OUTPUT_FORMAT", "png"),
		OutputDir:           getEnv("OUTPUT_DIR", "generated_images"),

		HTTPReadTimeout:  time.Second * time.Duration(getEnvInt("HTTP_READ_TIMEOUT_SECONDS", 15)),
		HTTPWriteTimeout: time.Second * time.Duration(getEnvInt("HTTP_WRITE_TIMEOUT_SECONDS", 120)),
		HTTPIdleTimeout:  time.Second * time.Duration(getEnvInt("HTTP_IDLE_TIMEOUT_SECONDS", 60)),
	}

	if cfg.GeminiAPIKey == "" {
		cfg.GeminiAPIKey = os.Getenv("GOOGLE_API_KEY")
	}
	if cfg.GeminiAPIKey == "" {
		return nil, core.Configurationf("GEMINI_API_KEY or GOOGLE_API_KEY environment variable is required")
	}
	if cfg.MaxBatchSize < 1 || cfg.MaxBatchSize > catalog.MaxBatchSize {
		cfg.MaxBatchSize = catalog.MaxBatchSize
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}
