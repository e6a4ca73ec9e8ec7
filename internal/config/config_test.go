package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("HTTP_ADDR", "")
	t.Setenv("SHUTDOWN_TIMEOUT", "")
	t.Setenv("REDIS_ADDR", "")
	t.Setenv("CART_CACHE_TTL", "")
	t.Setenv("DISPATCH_BUFFER", "")
	t.Setenv("DISPATCH_MAX_ATTEMPTS", "")
	t.Setenv("DISPATCH_RETRY_DELAY_MS", "")
	t.Setenv("SMTP_PORT", "")
	c := Load()
	if c.HTTPAddr != ":8080" {
		t.Fatalf("HTTPAddr default")
	}
	if c.ShutdownTimeout != 15*time.Second {
		t.Fatalf("ShutdownTimeout default")
	}
	if c.RedisAddr != "localhost:6379" {
		t.Fatalf("RedisAddr default")
	}
	if c.CartCacheTTL != 15*time.Minute {
		t.Fatalf("CartCacheTTL default")
	}
	if c.DispatchBuffer != 256 || c.DispatchMaxAttempts != 3 {
		t.Fatalf("dispatch defaults")
	}
	if c.DispatchRetryDelay != 200*time.Millisecond {
		t.Fatalf("DispatchRetryDelay default")
	}
	if c.SMTPPort != 587 {
		t.Fatalf("SMTPPort default")
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("SHUTDOWN_TIMEOUT", "2")
	t.Setenv("CART_CACHE_TTL", "60")
	t.Setenv("DISPATCH_BUFFER", "8")
	t.Setenv("DISPATCH_MAX_ATTEMPTS", "5")
	t.Setenv("DISPATCH_RETRY_DELAY_MS", "50")
	c := Load()
	if c.HTTPAddr != ":9090" {
		t.Fatalf("HTTPAddr env")
	}
	if c.ShutdownTimeout != 2*time.Second {
		t.Fatalf("ShutdownTimeout env")
	}
	if c.CartCacheTTL != time.Minute {
		t.Fatalf("CartCacheTTL env")
	}
	if c.DispatchBuffer != 8 || c.DispatchMaxAttempts != 5 {
		t.Fatalf("dispatch env")
	}
	if c.DispatchRetryDelay != 50*time.Millisecond {
		t.Fatalf("DispatchRetryDelay env")
	}
}

func TestLoadIgnoresMalformedNumbers(t *testing.T) {
	t.Setenv("DISPATCH_BUFFER", "not-a-number")
	c := Load()
	if c.DispatchBuffer != 256 {
		t.Fatalf("malformed number should fall back to default")
	}
}
