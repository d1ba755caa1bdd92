package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadEnvFile(t *testing.T) {
	if err := LoadEnvFile(filepath.Join(t.TempDir(), "missing.env")); err != nil {
		t.Fatalf("missing file: %v", err)
	}

	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("BOOKING_TEST_A=from-file\nBOOKING_TEST_B=from-file\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("BOOKING_TEST_A", "from-env")
	t.Setenv("BOOKING_TEST_B", "")
	os.Unsetenv("BOOKING_TEST_B")
	if err := LoadEnvFile(path); err != nil {
		t.Fatalf("LoadEnvFile: %v", err)
	}
	if got := os.Getenv("BOOKING_TEST_A"); got != "from-env" {
		t.Errorf("existing variable overridden: %q", got)
	}
	if got := os.Getenv("BOOKING_TEST_B"); got != "from-file" {
		t.Errorf("file variable not loaded: %q", got)
	}
}

func TestLoad(t *testing.T) {
	for k, v := range map[string]string{
		"APP_ENV": "test", "APP_PORT": "8080", "DB_USER": "u", "DB_HOST": "db",
		"DB_PORT": "3306", "DB_NAME": "conf", "JWT_SECRET": "s",
		"ACCESS_TOKEN_TTL_MIN": "90", "EVENTS_ENABLED": "true",
		"RABBITMQ_URL": "amqp://rabbit/", "AMQP_URL": "amqp://ignored/",
	} {
		t.Setenv(k, v)
	}
	cfg := Load()
	if cfg.Port != "8080" || cfg.DBName != "conf" || cfg.AccessTTLMin != 90 {
		t.Errorf("cfg = %+v", cfg)
	}
	if !cfg.AMQP.Enabled || cfg.AMQP.URL != "amqp://rabbit/" || cfg.AMQP.Queue != "booking.events" {
		t.Errorf("amqp = %+v", cfg.AMQP)
	}
}

func TestLoadRedisConfig(t *testing.T) {
	t.Setenv("REDIS_ADDR", "cache:6380")
	if got := LoadRedisConfig().Addr; got != "cache:6380" {
		t.Errorf("addr = %q", got)
	}
	t.Setenv("REDIS_HOST", "redis")
	t.Setenv("REDIS_PORT", "6379")
	if got := LoadRedisConfig().Addr; got != "redis:6379" {
		t.Errorf("host/port addr = %q", got)
	}
}

func TestRateLimitNormalize(t *testing.T) {
	c := RateLimitConfig{Capacity: 0, RefillTokens: -1, RefillInterval: 0, TTL: time.Second}.normalize()
	if c.Capacity != 1 || c.RefillTokens != 1 || c.RefillInterval != time.Second || c.TTL != 5*time.Second {
		t.Errorf("normalize = %+v", c)
	}
}

func TestEnvParsers(t *testing.T) {
	t.Setenv("BOOKING_TEST_BOOL", "off")
	t.Setenv("BOOKING_TEST_INT", "x")
	t.Setenv("BOOKING_TEST_DUR", "45s")
	if envBool("BOOKING_TEST_BOOL", true) {
		t.Error("off parsed as true")
	}
	if envInt("BOOKING_TEST_INT", 7) != 7 {
		t.Error("bad int did not fall back")
	}
	if envDur("BOOKING_TEST_DUR", 0) != 45*time.Second {
		t.Error("duration not parsed")
	}
	if m := parseMethods(" get, head ,"); !m["GET"] || !m["HEAD"] || len(m) != 2 {
		t.Errorf("parseMethods = %v", m)
	}
}
