// Package config はアプリケーション設定の読み込みを提供する。
package config

import (
	"os"
	"strconv"
	"time"
)

// Config はアプリケーション設定を表す。
type Config struct {
	MigrationsDir    string
	Numbering        string
	OnCollision      string
	LockTimeout      time.Duration
	TrackingFile     string
	LogLevel         string
	OtelEnabled      bool
	OtelEndpoint     string
	OtelServiceName  string
	OtelSamplingRate float64
}

// Load は環境変数から設定を読み込む。
func Load() *Config {
	return &Config{
		MigrationsDir:    getEnv("MIGRATIONS_DIR", "./migrations"),
		Numbering:        getEnv("MIGRATION_NUMBERING", "max"),
		OnCollision:      getEnv("MIGRATION_ON_COLLISION", "reject"),
		LockTimeout:      getEnvDuration("MIGRATION_LOCK_TIMEOUT", 5*time.Second),
		TrackingFile:     getEnv("TRACKING_FILE", "applied_migrations.json"),
		LogLevel:         getEnv("LOG_LEVEL", "WARN"),
		OtelEnabled:      getEnvBool("OTEL_ENABLED", false),
		OtelEndpoint:     getEnv("OTEL_ENDPOINT", "localhost:4317"),
		OtelServiceName:  getEnv("OTEL_SERVICE_NAME", "migctl"),
		OtelSamplingRate: getEnvFloat("OTEL_SAMPLING_RATE", 1.0),
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	if b, err := strconv.ParseBool(os.Getenv(key)); err == nil {
		return b
	}
	return defaultVal
}

func getEnvFloat(key string, defaultVal float64) float64 {
	if f, err := strconv.ParseFloat(os.Getenv(key), 64); err == nil {
		return f
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if d, err := time.ParseDuration(os.Getenv(key)); err == nil {
		return d
	}
	return defaultVal
}
