package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

type Config struct {
	Port                 string
	DatabaseURL          string
	JWTSecret            string
	PredictionServiceURL string
	PredictionTimeout    time.Duration
	RedisURL             string
	UploadDir            string
	DBRetryInterval      time.Duration
	LoginTokenTTL        time.Duration
	RegisterTokenTTL     time.Duration
	LogLevel             string
	AppEnv               string
	CORSAllowedOrigins   []string
}

// LoadConfig читает .env.local или .env, затем переменные окружения
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(".env.local"); err != nil {
		if err := godotenv.Load(); err != nil {
			logrus.Debug(".env not found, using environment variables")
		}
	}
	return FromEnv(os.Getenv)
}

// FromEnv собирает конфиг через getenv, что удобно в тестах
func FromEnv(getenv func(string) string) (*Config, error) {
	cfg := &Config{
		Port:                 valueOr(getenv("PORT"), "3001"),
		DatabaseURL:          getenv("DATABASE_URL"),
		JWTSecret:            getenv("JWT_SECRET"),
		PredictionServiceURL: strings.TrimRight(valueOr(getenv("PREDICTION_SERVICE_URL"), "http://127.0.0.1:5000"), "/"),
		RedisURL:             getenv("REDIS_URL"),
		UploadDir:            valueOr(getenv("UPLOAD_DIR"), "uploads"),
		LogLevel:             valueOr(getenv("LOG_LEVEL"), "info"),
		AppEnv:               valueOr(getenv("APP_ENV"), "development"),
		CORSAllowedOrigins:   splitList(valueOr(getenv("CORS_ALLOWED_ORIGINS"), "*")),
	}

	var errs []error
	if cfg.DatabaseURL == "" {
		errs = append(errs, errors.New("DATABASE_URL is required"))
	}
	if cfg.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET is required"))
	}

	durations := []struct {
		key  string
		def  time.Duration
		dest *time.Duration
	}{
		{"PREDICTION_TIMEOUT", 30 * time.Second, &cfg.PredictionTimeout},
		{"DB_RETRY_INTERVAL", 5 * time.Second, &cfg.DBRetryInterval},
		{"LOGIN_TOKEN_TTL", time.Hour, &cfg.LoginTokenTTL},
		{"REGISTER_TOKEN_TTL", 100 * time.Hour, &cfg.RegisterTokenTTL},
	}
	for _, d := range durations {
		v, err := parseDuration(getenv(d.key), d.def)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", d.key, err))
			continue
		}
		*d.dest = v
	}

	if err := errors.Join(errs...); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.AppEnv, "production")
}

func valueOr(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

func parseDuration(raw string, def time.Duration) (time.Duration, error) {
	if raw == "" {
		return def, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, err
	}
	if d <= 0 {
		return 0, fmt.Errorf("must be positive, got %s", raw)
	}
	return d, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
