package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const (
	SessionBackendPostgres = "postgres"
	SessionBackendRedis    = "redis"

	SinkPostgres = "postgres"
	SinkNATS     = "nats"
	SinkFile     = "file"

	NLUProviderRules  = "rules"
	NLUProviderGemini = "gemini"
)

type Config struct {
	AppEnv      string `envconfig:"APP_ENV" default:"development"`
	HTTPPort    string `envconfig:"HTTP_PORT" default:"8000"`
	LogFilePath string `envconfig:"LOG_FILE_PATH" default:"logs/bookstore.log"`

	DBHost     string `envconfig:"DB_HOST" default:"localhost"`
	DBPort     string `envconfig:"DB_PORT" default:"5432"`
	DBUser     string `envconfig:"DB_USER" default:"postgres"`
	DBPassword string `envconfig:"DB_PASSWORD"`
	DBName     string `envconfig:"DB_NAME" default:"bookstore"`
	DBSslMode  string `envconfig:"DB_SSLMODE" default:"disable"`

	SessionBackend   string        `envconfig:"SESSION_BACKEND" default:"postgres"`
	RedisURL         string        `envconfig:"REDIS_URL" default:"redis://localhost:6379/0"`
	SessionCacheTTL  time.Duration `envconfig:"SESSION_CACHE_TTL" default:"30m"`
	SessionIdleTTL   time.Duration `envconfig:"SESSION_IDLE_TTL" default:"24h"`
	SessionSweepSpec string        `envconfig:"SESSION_SWEEP_SPEC" default:"0 */5 * * * *"`

	ConversationSink    string `envconfig:"CONVERSATION_SINK" default:"postgres"`
	ConversationLogPath string `envconfig:"CONVERSATION_LOG_PATH" default:"logs/conversations.log"`
	ConversationBuffer  int    `envconfig:"CONVERSATION_BUFFER" default:"256"`
	NATSURL             string `envconfig:"NATS_URL" default:"nats://localhost:4222"`

	NLUProvider  string  `envconfig:"NLU_PROVIDER" default:"rules"`
	NLUThreshold float64 `envconfig:"NLU_THRESHOLD" default:"0.5"`
	GeminiAPIKey string  `envconfig:"GEMINI_API_KEY"`
	GeminiModel  string  `envconfig:"GEMINI_MODEL" default:"gemini-2.0-flash"`

	CORSAllowOrigins []string `envconfig:"CORS_ALLOW_ORIGINS"`
}

// LoadConfig reads .env when present and then the process environment.
func LoadConfig() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, err
	}
	return cfg, cfg.Validate()
}

// Validate checks the enumerated settings.
func (c Config) Validate() error {
	var errs []error
	if !oneOf(c.SessionBackend, SessionBackendPostgres, SessionBackendRedis) {
		errs = append(errs, fmt.Errorf("SESSION_BACKEND: unsupported value %q", c.SessionBackend))
	}
	if !oneOf(c.ConversationSink, SinkPostgres, SinkNATS, SinkFile) {
		errs = append(errs, fmt.Errorf("CONVERSATION_SINK: unsupported value %q", c.ConversationSink))
	}
	if !oneOf(c.NLUProvider, NLUProviderRules, NLUProviderGemini) {
		errs = append(errs, fmt.Errorf("NLU_PROVIDER: unsupported value %q", c.NLUProvider))
	}
	if c.NLUProvider == NLUProviderGemini && c.GeminiAPIKey == "" {
		errs = append(errs, errors.New("GEMINI_API_KEY is required when NLU_PROVIDER=gemini"))
	}
	if c.SessionCacheTTL <= 0 || c.SessionIdleTTL <= 0 {
		errs = append(errs, errors.New("session TTLs must be positive"))
	}
	return errors.Join(errs...)
}

func (c Config) Production() bool {
	return strings.EqualFold(c.AppEnv, "production")
}

// DSN is the libpq connection string for the configured database.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

func oneOf(v string, allowed ...string) bool {
	for _, a := range allowed {
		if v == a {
			return true
		}
	}
	return false
}
