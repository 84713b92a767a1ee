package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/subosito/gotenv"
)

// Config holds all configuration for the sentilytics server.
type Config struct {
	Server    ServerConfig
	Sentiment SentimentConfig
	Database  DatabaseConfig
	Redis     RedisConfig
}

type ServerConfig struct {
	Host               string
	Port               int
	Env                string
	LogLevel           string
	AllowedOrigins     []string
	MaxUploadBytes     int64
	RateLimitPerMinute int
}

// Addr returns host:port for the HTTP listener.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

type SentimentConfig struct {
	Backend     string
	Model       string
	ModelDir    string
	NeutralBand float64
}

// DatabaseConfig is optional; an empty URL disables the run log.
type DatabaseConfig struct {
	URL             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// RedisConfig is optional; an empty URL disables the report cache and rate limiting.
type RedisConfig struct {
	URL            string
	ReportCacheTTL time.Duration
}

const (
	BackendVADER       = "vader"
	BackendTransformer = "transformer"

	DefaultTransformerModel = "KnightsAnalytics/distilbert-base-uncased-finetuned-sst-2-english"
)

var validBackends = map[string]bool{
	BackendVADER:       true,
	BackendTransformer: true,
}

var validEnvs = map[string]bool{
	"development": true,
	"production":  true,
}

var validLogLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// Load reads an optional dotenv file, then configuration from environment
// variables, and returns a validated Config.
func Load() (*Config, error) {
	envFile := envString("SENTILYTICS_ENV_FILE", ".env")
	if err := gotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load %s: %w", envFile, err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Host:               envString("SENTILYTICS_HOST", "127.0.0.1"),
			Port:               envInt("SENTILYTICS_PORT", 5000),
			Env:                envString("SENTILYTICS_ENV", "development"),
			LogLevel:           strings.ToLower(envString("SENTILYTICS_LOG_LEVEL", "info")),
			AllowedOrigins:     envList("CORS_ALLOWED_ORIGINS", []string{"*"}),
			MaxUploadBytes:     int64(envInt("MAX_UPLOAD_BYTES", 32<<20)),
			RateLimitPerMinute: envInt("RATE_LIMIT_PER_MINUTE", 120),
		},
		Sentiment: SentimentConfig{
			Backend:     strings.ToLower(envString("SENTIMENT_BACKEND", BackendVADER)),
			Model:       envString("SENTIMENT_MODEL", DefaultTransformerModel),
			ModelDir:    envString("SENTIMENT_MODEL_DIR", "./models"),
			NeutralBand: envFloat("SENTIMENT_NEUTRAL_BAND", 0.20),
		},
		Database: DatabaseConfig{
			URL:             os.Getenv("DATABASE_URL"),
			MaxOpenConns:    envInt("DATABASE_MAX_OPEN_CONNS", 10),
			MaxIdleConns:    envInt("DATABASE_MAX_IDLE_CONNS", 2),
			ConnMaxLifetime: envDuration("DATABASE_CONN_MAX_LIFETIME", 5*time.Minute),
		},
		Redis: RedisConfig{
			URL:            os.Getenv("REDIS_URL"),
			ReportCacheTTL: envDuration("REPORT_CACHE_TTL", 10*time.Minute),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("SENTILYTICS_PORT must be between 1 and 65535, got %d", c.Server.Port)
	}
	if !validEnvs[c.Server.Env] {
		return fmt.Errorf("SENTILYTICS_ENV must be one of development, production; got %q", c.Server.Env)
	}
	if !validLogLevels[c.Server.LogLevel] {
		return fmt.Errorf("SENTILYTICS_LOG_LEVEL must be one of debug, info, warn, error; got %q", c.Server.LogLevel)
	}
	if c.Server.MaxUploadBytes <= 0 {
		return fmt.Errorf("MAX_UPLOAD_BYTES must be positive, got %d", c.Server.MaxUploadBytes)
	}

	if !validBackends[c.Sentiment.Backend] {
		return fmt.Errorf("SENTIMENT_BACKEND must be one of vader, transformer; got %q", c.Sentiment.Backend)
	}
	if c.Sentiment.NeutralBand < 0 || c.Sentiment.NeutralBand >= 1 {
		return fmt.Errorf("SENTIMENT_NEUTRAL_BAND must be in [0, 1), got %v", c.Sentiment.NeutralBand)
	}
	if c.Sentiment.Backend == BackendTransformer && c.Sentiment.Model == "" {
		return fmt.Errorf("SENTIMENT_MODEL is required when SENTIMENT_BACKEND is transformer")
	}

	if c.Database.URL != "" &&
		!strings.HasPrefix(c.Database.URL, "postgres://") && !strings.HasPrefix(c.Database.URL, "postgresql://") {
		return fmt.Errorf("DATABASE_URL must start with postgres:// or postgresql://")
	}
	if c.Redis.URL != "" &&
		!strings.HasPrefix(c.Redis.URL, "redis://") && !strings.HasPrefix(c.Redis.URL, "rediss://") {
		return fmt.Errorf("REDIS_URL must start with redis:// or rediss://, got %q", c.Redis.URL)
	}

	return nil
}

func envString(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func envInt(key string, defaultVal int) int {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return defaultVal
	}
	return i
}

func envFloat(key string, defaultVal float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return defaultVal
	}
	return f
}

func envDuration(key string, defaultVal time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return defaultVal
	}
	return d
}

func envList(key string, defaultVal []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return defaultVal
	}
	return out
}
