package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

var ErrInvalidConfig = errors.New("config: invalid runtime config")

type RuntimeConfig struct {
	DBPath               string        `yaml:"db_path"`
	CountdownInterval    time.Duration `yaml:"countdown_interval"`
	TickInterval         time.Duration `yaml:"tick_interval"`
	Notifications        string        `yaml:"notifications"`
	IsDevice             bool          `yaml:"is_device"`
	DesktopNotifications bool          `yaml:"desktop_notifications"`
	SchedulerBuffer      int           `yaml:"scheduler_buffer"`
	SaveRetries          int           `yaml:"save_retries"`
	LogFile              string        `yaml:"log_file"`
	MetricsAddr          string        `yaml:"metrics_addr"`
}

func DefaultRuntimeConfig() RuntimeConfig {
	return RuntimeConfig{
		DBPath:               "taskly.db",
		CountdownInterval:    10 * time.Second,
		TickInterval:         time.Second,
		Notifications:        "granted",
		IsDevice:             true,
		DesktopNotifications: false,
		SchedulerBuffer:      64,
		SaveRetries:          1,
		LogFile:              "taskly.log",
	}
}

// Load layers defaults, the YAML file at path, the dotenv file and finally
// TASKLY_* variables. Missing files are skipped.
func Load(path, envFile string) (RuntimeConfig, error) {
	cfg := DefaultRuntimeConfig()
	if path != "" {
		fromFile, err := LoadFile(path, cfg)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return RuntimeConfig{}, err
		}
		if err == nil {
			cfg = fromFile
		}
	}
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return RuntimeConfig{}, fmt.Errorf("load env file %s: %w", envFile, err)
		}
	}
	cfg = RuntimeConfigFromEnv(cfg)
	if err := cfg.Validate(); err != nil {
		return RuntimeConfig{}, err
	}
	return cfg, nil
}

// LoadFile decodes YAML at path over base. Keys absent from the file keep
// their base value.
func LoadFile(path string, base RuntimeConfig) (RuntimeConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return RuntimeConfig{}, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := base
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return RuntimeConfig{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

func RuntimeConfigFromEnv(base RuntimeConfig) RuntimeConfig {
	cfg := base
	if v, ok := getEnvString("TASKLY_DB_PATH"); ok {
		cfg.DBPath = v
	}
	if v, ok := getEnvDuration("TASKLY_COUNTDOWN_INTERVAL"); ok && v > 0 {
		cfg.CountdownInterval = v
	}
	if v, ok := getEnvDuration("TASKLY_TICK_INTERVAL"); ok && v > 0 {
		cfg.TickInterval = v
	}
	if v, ok := getEnvString("TASKLY_NOTIFICATIONS"); ok {
		cfg.Notifications = strings.ToLower(v)
	}
	if v, ok := getEnvBool("TASKLY_IS_DEVICE"); ok {
		cfg.IsDevice = v
	}
	if v, ok := getEnvBool("TASKLY_DESKTOP_NOTIFICATIONS"); ok {
		cfg.DesktopNotifications = v
	}
	if v, ok := getEnvInt("TASKLY_SCHEDULER_BUFFER"); ok && v > 0 {
		cfg.SchedulerBuffer = v
	}
	if v, ok := getEnvInt("TASKLY_SAVE_RETRIES"); ok && v >= 0 {
		cfg.SaveRetries = v
	}
	if v, ok := getEnvString("TASKLY_LOG_FILE"); ok {
		cfg.LogFile = v
	}
	if v, ok := getEnvString("TASKLY_METRICS_ADDR"); ok {
		cfg.MetricsAddr = v
	}
	return cfg
}

func (c RuntimeConfig) Validate() error {
	if strings.TrimSpace(c.DBPath) == "" {
		return fmt.Errorf("%w: db_path is required", ErrInvalidConfig)
	}
	if c.CountdownInterval <= 0 {
		return fmt.Errorf("%w: countdown_interval must be positive", ErrInvalidConfig)
	}
	if c.TickInterval <= 0 {
		return fmt.Errorf("%w: tick_interval must be positive", ErrInvalidConfig)
	}
	switch c.Notifications {
	case "granted", "denied", "prompt":
	default:
		return fmt.Errorf("%w: notifications must be granted, denied or prompt", ErrInvalidConfig)
	}
	if c.SchedulerBuffer <= 0 {
		return fmt.Errorf("%w: scheduler_buffer must be positive", ErrInvalidConfig)
	}
	if c.SaveRetries < 0 {
		return fmt.Errorf("%w: save_retries must not be negative", ErrInvalidConfig)
	}
	return nil
}

func getEnvString(name string) (string, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return "", false
	}
	return raw, true
}

func getEnvInt(name string) (int, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}

// getEnvDuration accepts Go durations ("10s") or bare milliseconds.
func getEnvDuration(name string) (time.Duration, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return 0, false
	}
	if ms, err := strconv.Atoi(raw); err == nil {
		return time.Duration(ms) * time.Millisecond, true
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, false
	}
	return d, true
}

func getEnvBool(name string) (bool, bool) {
	raw := strings.TrimSpace(strings.ToLower(os.Getenv(name)))
	if raw == "" {
		return false, false
	}
	switch raw {
	case "1", "true", "yes", "y", "on":
		return true, true
	case "0", "false", "no", "n", "off":
		return false, true
	default:
		return false, false
	}
}
