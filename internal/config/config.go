package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"salonagenda/internal/domain"
)

const defaultSessionSecret = "change-me-session-secret"

const (
	DraftStoreMemory = "memory"
	DraftStoreRedis  = "redis"
)

type Config struct {
	AppEnv      string `envconfig:"APP_ENV" default:"dev"`
	HTTPAddr    string `envconfig:"HTTP_ADDR" default:":8080"`
	DatabaseURL string `envconfig:"DATABASE_URL" default:"salon.db"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`

	Timezone        string   `envconfig:"TIMEZONE" default:"America/Sao_Paulo"`
	SlotTimes       []string `envconfig:"SLOT_TIMES" default:"09:00,10:00,11:00,13:00,14:00,15:00,16:00,17:00"`
	BookingLastDate string   `envconfig:"BOOKING_LAST_DATE" default:"2030-12-31"`

	SessionSecret string        `envconfig:"SESSION_SECRET" default:"change-me-session-secret"`
	SessionTTL    time.Duration `envconfig:"SESSION_TTL" default:"30m"`

	DraftStore    string `envconfig:"DRAFT_STORE" default:"memory"`
	RedisAddr     string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	RedisPassword string `envconfig:"REDIS_PASSWORD"`
	RedisDB       int    `envconfig:"REDIS_DB" default:"0"`

	RateLimitPerMinute int      `envconfig:"RATE_LIMIT_PER_MINUTE" default:"120"`
	CORSAllowedOrigins []string `envconfig:"CORS_ALLOWED_ORIGINS" default:"http://localhost:3000,http://localhost:5173"`

	Location *time.Location `ignored:"true"`
	LastDate domain.Date    `ignored:"true"`
}

// Load reads an optional .env file, then the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	return FromEnv()
}

// FromEnv parses and validates the process environment.
func FromEnv() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	cfg.AppEnv = strings.ToLower(strings.TrimSpace(cfg.AppEnv))
	cfg.DraftStore = strings.ToLower(strings.TrimSpace(cfg.DraftStore))

	if err := validateConfig(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) IsProd() bool { return isProdLike(c.AppEnv) }

func validateConfig(cfg *Config) error {
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return fmt.Errorf("invalid TIMEZONE %q: %w", cfg.Timezone, err)
	}
	cfg.Location = loc

	if len(cfg.SlotTimes) == 0 {
		return fmt.Errorf("SLOT_TIMES must not be empty")
	}
	// envconfig splits on "," without trimming
	for i, s := range cfg.SlotTimes {
		s = strings.TrimSpace(s)
		if _, err := domain.ParseTimeSlot(s); err != nil {
			return fmt.Errorf("invalid SLOT_TIMES entry: %w", err)
		}
		cfg.SlotTimes[i] = s
	}

	if v := strings.TrimSpace(cfg.BookingLastDate); v != "" {
		d, err := domain.ParseDate(v)
		if err != nil {
			return fmt.Errorf("invalid BOOKING_LAST_DATE: %w", err)
		}
		cfg.LastDate = d
	}

	if cfg.SessionTTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be > 0")
	}
	if cfg.RateLimitPerMinute <= 0 {
		return fmt.Errorf("RATE_LIMIT_PER_MINUTE must be > 0")
	}
	if cfg.DraftStore != DraftStoreMemory && cfg.DraftStore != DraftStoreRedis {
		return fmt.Errorf("DRAFT_STORE must be one of: memory, redis")
	}
	if cfg.DraftStore == DraftStoreRedis && strings.TrimSpace(cfg.RedisAddr) == "" {
		return fmt.Errorf("REDIS_ADDR must be set when DRAFT_STORE=redis")
	}

	if isProdLike(cfg.AppEnv) && isEmptyOrDefault(cfg.SessionSecret, defaultSessionSecret) {
		return fmt.Errorf("in prod/release SESSION_SECRET must be set and not default")
	}

	return nil
}

func isProdLike(env string) bool {
	env = strings.ToLower(strings.TrimSpace(env))
	return env == "prod" || env == "production" || env == "release"
}

func isEmptyOrDefault(v, def string) bool {
	trimmed := strings.TrimSpace(v)
	return trimmed == "" || trimmed == def
}
