package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestRuntimeConfigDefaults(t *testing.T) {
	cfg := DefaultRuntimeConfig()
	if cfg.CountdownInterval != 10*time.Second || cfg.TickInterval != time.Second {
		t.Fatalf("unexpected countdown defaults: %+v", cfg)
	}
	if cfg.SchedulerBuffer != 64 || cfg.SaveRetries != 1 {
		t.Fatalf("unexpected runtime defaults: %+v", cfg)
	}
	if cfg.DBPath != "taskly.db" || cfg.LogFile != "taskly.log" {
		t.Fatalf("unexpected path defaults: %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
}

func TestRuntimeConfigFromEnv(t *testing.T) {
	t.Setenv("TASKLY_DB_PATH", "state/custom.db")
	t.Setenv("TASKLY_COUNTDOWN_INTERVAL", "1m")
	t.Setenv("TASKLY_TICK_INTERVAL", "500")
	t.Setenv("TASKLY_NOTIFICATIONS", "DENIED")
	t.Setenv("TASKLY_IS_DEVICE", "no")
	t.Setenv("TASKLY_DESKTOP_NOTIFICATIONS", "true")
	t.Setenv("TASKLY_SCHEDULER_BUFFER", "128")
	t.Setenv("TASKLY_SAVE_RETRIES", "0")
	t.Setenv("TASKLY_METRICS_ADDR", ":9090")

	cfg := RuntimeConfigFromEnv(DefaultRuntimeConfig())
	if cfg.DBPath != "state/custom.db" {
		t.Fatalf("unexpected db path override: %+v", cfg)
	}
	if cfg.CountdownInterval != time.Minute || cfg.TickInterval != 500*time.Millisecond {
		t.Fatalf("unexpected interval overrides: %+v", cfg)
	}
	if cfg.Notifications != "denied" || cfg.IsDevice {
		t.Fatalf("unexpected notification overrides: %+v", cfg)
	}
	if !cfg.DesktopNotifications {
		t.Fatal("expected desktop notifications true from env")
	}
	if cfg.SchedulerBuffer != 128 || cfg.SaveRetries != 0 || cfg.MetricsAddr != ":9090" {
		t.Fatalf("unexpected config overrides: %+v", cfg)
	}
}

func TestRuntimeConfigFromEnvIgnoresGarbage(t *testing.T) {
	t.Setenv("TASKLY_COUNTDOWN_INTERVAL", "soon")
	t.Setenv("TASKLY_SCHEDULER_BUFFER", "-4")
	t.Setenv("TASKLY_IS_DEVICE", "maybe")

	cfg := RuntimeConfigFromEnv(DefaultRuntimeConfig())
	if cfg != DefaultRuntimeConfig() {
		t.Fatalf("invalid env values should be ignored: %+v", cfg)
	}
}

func TestLoadLayersFileThenEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "taskly.yaml")
	body := "db_path: from-file.db\ncountdown_interval: 30s\nnotifications: prompt\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("TASKLY_DB_PATH", "from-env.db")

	cfg, err := Load(path, "")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.DBPath != "from-env.db" {
		t.Fatalf("env should win over file: %+v", cfg)
	}
	if cfg.CountdownInterval != 30*time.Second || cfg.Notifications != "prompt" {
		t.Fatalf("file values not applied: %+v", cfg)
	}
	if cfg.SchedulerBuffer != 64 {
		t.Fatalf("keys absent from file should keep defaults: %+v", cfg)
	}
}

func TestLoadReadsDotenv(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	if err := os.WriteFile(envFile, []byte("TASKLY_SAVE_RETRIES=3\n"), 0o644); err != nil {
		t.Fatalf("write env: %v", err)
	}
	t.Cleanup(func() { _ = os.Unsetenv("TASKLY_SAVE_RETRIES") })

	cfg, err := Load(filepath.Join(dir, "missing.yaml"), envFile)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.SaveRetries != 3 {
		t.Fatalf("expected dotenv override, got %+v", cfg)
	}
}

func TestLoadRejectsInvalidConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "taskly.yaml")
	if err := os.WriteFile(path, []byte("notifications: sometimes\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(path, ""); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
}
