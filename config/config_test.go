package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{
		"MIGRATIONS_DIR", "MIGRATION_NUMBERING", "MIGRATION_ON_COLLISION", "MIGRATION_LOCK_TIMEOUT",
		"TRACKING_FILE", "LOG_LEVEL", "OTEL_ENABLED", "OTEL_SAMPLING_RATE",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()

	if cfg.MigrationsDir != "./migrations" {
		t.Errorf("expected ./migrations, got %s", cfg.MigrationsDir)
	}
	if cfg.Numbering != "max" || cfg.OnCollision != "reject" {
		t.Errorf("unexpected numbering/collision defaults: %s/%s", cfg.Numbering, cfg.OnCollision)
	}
	if cfg.LockTimeout != 5*time.Second {
		t.Errorf("expected 5s lock timeout, got %s", cfg.LockTimeout)
	}
	if cfg.TrackingFile != "applied_migrations.json" {
		t.Errorf("unexpected tracking file %s", cfg.TrackingFile)
	}
	if cfg.OtelEnabled {
		t.Error("expected tracing disabled by default")
	}
	if cfg.OtelSamplingRate != 1.0 {
		t.Errorf("expected sampling rate 1.0, got %f", cfg.OtelSamplingRate)
	}
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("MIGRATIONS_DIR", "/srv/db/migrations")
	t.Setenv("MIGRATION_NUMBERING", "count")
	t.Setenv("MIGRATION_ON_COLLISION", "overwrite")
	t.Setenv("MIGRATION_LOCK_TIMEOUT", "250ms")
	t.Setenv("OTEL_ENABLED", "true")
	t.Setenv("OTEL_SAMPLING_RATE", "0.25")

	cfg := Load()

	if cfg.MigrationsDir != "/srv/db/migrations" {
		t.Errorf("unexpected migrations dir %s", cfg.MigrationsDir)
	}
	if cfg.Numbering != "count" || cfg.OnCollision != "overwrite" {
		t.Errorf("unexpected numbering/collision: %s/%s", cfg.Numbering, cfg.OnCollision)
	}
	if cfg.LockTimeout != 250*time.Millisecond {
		t.Errorf("expected 250ms, got %s", cfg.LockTimeout)
	}
	if !cfg.OtelEnabled || cfg.OtelSamplingRate != 0.25 {
		t.Errorf("unexpected otel settings: %v %f", cfg.OtelEnabled, cfg.OtelSamplingRate)
	}
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("MIGRATION_LOCK_TIMEOUT", "soon")
	t.Setenv("OTEL_ENABLED", "maybe")

	cfg := Load()

	if cfg.LockTimeout != 5*time.Second {
		t.Errorf("expected fallback to 5s, got %s", cfg.LockTimeout)
	}
	if cfg.OtelEnabled {
		t.Error("expected fallback to disabled tracing")
	}
}
