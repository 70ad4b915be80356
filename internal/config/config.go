package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"cloud.google.com/go/civil"
)

var ErrMissingSecret = errors.New("SESSION_SECRET is required")

// Config holds application configuration.
type Config struct {
	Port          string
	GRPCPort      string
	LogLevel      string
	SessionSecret string
	SessionTTL    time.Duration

	// host calendar
	Timezone      string
	TimezoneLabel string
	InviteDomain  string
	// MonthlyAvailableDates limits the monthly view to these days; empty leaves it open.
	MonthlyAvailableDates []civil.Date

	// optional backends
	DatabaseURL   string
	RedisAddr     string
	RedisPassword string

	CSRFKey            string
	SecureCookies      bool
	CORSAllowedOrigins []string
	RateLimitRPS       float64
	RateLimitBurst     int

	ColumnAvailabilitySeed  uint64
	ColumnAvailabilityRatio float64

	loc *time.Location
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		Port:                    getEnv("PORT", "8080"),
		GRPCPort:                getEnv("GRPC_PORT", "50051"),
		LogLevel:                getEnv("LOG_LEVEL", "info"),
		SessionSecret:           os.Getenv("SESSION_SECRET"),
		SessionTTL:              getEnvAsDuration("SESSION_TTL", 30*time.Minute),
		Timezone:                getEnv("TIMEZONE", "Asia/Kolkata"),
		TimezoneLabel:           getEnv("TIMEZONE_LABEL", "India Standard Time"),
		InviteDomain:            getEnv("INVITE_DOMAIN", "calid.com"),
		DatabaseURL:             getEnv("DATABASE_URL", ""),
		RedisAddr:               getEnv("REDIS_ADDR", ""),
		RedisPassword:           getEnv("REDIS_PASSWORD", ""),
		CSRFKey:                 getEnv("CSRF_KEY", ""),
		SecureCookies:           getEnvAsBool("SECURE_COOKIES", false),
		CORSAllowedOrigins:      getEnvAsList("CORS_ALLOWED_ORIGINS"),
		RateLimitRPS:            getEnvAsFloat("RATE_LIMIT_RPS", 5),
		RateLimitBurst:          getEnvAsInt("RATE_LIMIT_BURST", 10),
		ColumnAvailabilitySeed:  uint64(getEnvAsInt("COLUMN_AVAILABILITY_SEED", 1)),
		ColumnAvailabilityRatio: getEnvAsFloat("COLUMN_AVAILABILITY_RATIO", 0.7),
	}
	if cfg.SessionSecret == "" {
		return nil, ErrMissingSecret
	}
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("TIMEZONE %q: %w", cfg.Timezone, err)
	}
	cfg.loc = loc
	for _, raw := range getEnvAsList("MONTHLY_AVAILABLE_DATES") {
		d, err := civil.ParseDate(raw)
		if err != nil {
			return nil, fmt.Errorf("MONTHLY_AVAILABLE_DATES: %w", err)
		}
		cfg.MonthlyAvailableDates = append(cfg.MonthlyAvailableDates, d)
	}
	return cfg, nil
}

// Location is the host time zone validated by Load. A Config built by hand gets UTC.
func (c *Config) Location() *time.Location {
	if c.loc == nil {
		return time.UTC
	}
	return c.loc
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	if v, err := strconv.Atoi(getEnv(key, "")); err == nil {
		return v
	}
	return fallback
}

func getEnvAsFloat(key string, fallback float64) float64 {
	if v, err := strconv.ParseFloat(getEnv(key, ""), 64); err == nil {
		return v
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	if v, err := strconv.ParseBool(getEnv(key, "")); err == nil {
		return v
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	if v, err := time.ParseDuration(getEnv(key, "")); err == nil && v > 0 {
		return v
	}
	return fallback
}

func getEnvAsList(key string) []string {
	raw := getEnv(key, "")
	if raw == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
