// Package config provides runtime configuration values for the service.
package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds configuration knobs for the HTTP server, storage backends,
// the notification dispatcher, and the receipt mailer.
type Config struct {
	HTTPAddr        string
	ShutdownTimeout time.Duration
	Development     bool

	DatabaseURL    string
	MigrationsPath string

	RedisAddr     string
	RedisPassword string
	CartCacheTTL  time.Duration

	DispatchBuffer      int
	DispatchMaxAttempts int
	DispatchRetryDelay  time.Duration

	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPassword string
	MailFrom     string
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func atoienv(key string, def int) int {
	v := getenv(key, "")
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func durenvs(key string, defSec int) time.Duration {
	sec := atoienv(key, defSec)
	return time.Duration(sec) * time.Second
}

func durenvms(key string, defMs int) time.Duration {
	ms := atoienv(key, defMs)
	return time.Duration(ms) * time.Millisecond
}

// Load collects configuration from environment with defaults.
func Load() Config {
	return Config{
		HTTPAddr:        getenv("HTTP_ADDR", ":8080"),
		ShutdownTimeout: durenvs("SHUTDOWN_TIMEOUT", 15),
		Development:     getenv("APP_ENV", "development") != "production",

		DatabaseURL:    getenv("DATABASE_URL", ""),
		MigrationsPath: getenv("MIGRATIONS_PATH", "migrations"),

		RedisAddr:     getenv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getenv("REDIS_PASSWORD", ""),
		CartCacheTTL:  durenvs("CART_CACHE_TTL", 900),

		DispatchBuffer:      atoienv("DISPATCH_BUFFER", 256),
		DispatchMaxAttempts: atoienv("DISPATCH_MAX_ATTEMPTS", 3),
		DispatchRetryDelay:  durenvms("DISPATCH_RETRY_DELAY_MS", 200),

		SMTPHost:     getenv("SMTP_HOST", ""),
		SMTPPort:     atoienv("SMTP_PORT", 587),
		SMTPUser:     getenv("SMTP_USER", ""),
		SMTPPassword: getenv("SMTP_PASSWORD", ""),
		MailFrom:     getenv("MAIL_FROM", "no-reply@sokoni.app"),
	}
}
