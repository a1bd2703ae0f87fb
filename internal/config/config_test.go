package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"FYX_ADDR", "FYX_STORE", "JWT_SECRET", "FYX_OAUTH_DELAY", "KAFKA_BROKERS", "FYX_AI_TIMEOUT"} {
		t.Setenv(k, "")
	}
	cfg := Load()
	if cfg.Addr != ":8080" || cfg.Store != StoreMemory || cfg.JWTSecret == "" {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
	if cfg.OAuthDelay != 1500*time.Millisecond || cfg.AITimeout != 20*time.Second {
		t.Fatalf("unexpected durations %v %v", cfg.OAuthDelay, cfg.AITimeout)
	}
	if cfg.KafkaBrokers != nil {
		t.Fatalf("expected no brokers, got %v", cfg.KafkaBrokers)
	}
	if cfg.SessionIdle != 30*time.Minute || cfg.SessionSweep != time.Minute {
		t.Fatalf("unexpected session timings %v %v", cfg.SessionIdle, cfg.SessionSweep)
	}
}

func TestLoad_MissingSecretIsRandomPerProcess(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	a, b := Load(), Load()
	if !a.GeneratedSecret || len(a.JWTSecret) != 64 {
		t.Fatalf("expected a generated 32-byte secret, got %q generated=%v", a.JWTSecret, a.GeneratedSecret)
	}
	if a.JWTSecret == "fyx-dev-secret" || a.JWTSecret == b.JWTSecret {
		t.Fatalf("secret is predictable: %q %q", a.JWTSecret, b.JWTSecret)
	}

	t.Setenv("JWT_SECRET", "from-env")
	if c := Load(); c.JWTSecret != "from-env" || c.GeneratedSecret {
		t.Fatalf("env secret not used: %+v", c)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("FYX_STORE", "SQLite")
	t.Setenv("FYX_OAUTH_DELAY", "0s")
	t.Setenv("FYX_AI_TIMEOUT", "not-a-duration")
	t.Setenv("KAFKA_BROKERS", "k1:9092, ,k2:9092")

	cfg := Load()
	if cfg.Store != StoreSQLite {
		t.Fatalf("store = %q", cfg.Store)
	}
	if cfg.OAuthDelay != 0 || cfg.AITimeout != 20*time.Second {
		t.Fatalf("unexpected durations %v %v", cfg.OAuthDelay, cfg.AITimeout)
	}
	if len(cfg.KafkaBrokers) != 2 || cfg.KafkaBrokers[1] != "k2:9092" {
		t.Fatalf("brokers = %v", cfg.KafkaBrokers)
	}
}
