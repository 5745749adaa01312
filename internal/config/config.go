// internal/config/config.go

// Package config 由環境變數載入執行設定（日誌與遙測）。
// 所有變數皆有預設值；無法解析的值回傳錯誤，由 main 在啟動選單前結束程式。
package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"accountledger/internal/telemetry"
)

// Config 為整體執行設定。
type Config struct {
	LogLevel  slog.Level
	LogFormat string // "text" 或 "json"
	SessionID string
	Telemetry telemetry.Config
}

// Load 讀取 LEDGER_* 環境變數。
func Load() (Config, error) {
	return LoadEnv(os.Getenv)
}

// LoadEnv 與 Load 相同，但由 getenv 提供變數值。
func LoadEnv(getenv func(string) string) (Config, error) {
	env := func(key, def string) string {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
		return def
	}

	cfg := Config{
		LogFormat: strings.ToLower(env("LEDGER_LOG_FORMAT", "text")),
		SessionID: uuid.NewString(),
	}
	if err := cfg.LogLevel.UnmarshalText([]byte(env("LEDGER_LOG_LEVEL", "warn"))); err != nil {
		return Config{}, fmt.Errorf("LEDGER_LOG_LEVEL: %w", err)
	}
	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return Config{}, fmt.Errorf("LEDGER_LOG_FORMAT: unknown format %q", cfg.LogFormat)
	}

	var err error
	tc := telemetry.Config{
		Endpoint:       env("LEDGER_OTEL_ENDPOINT", ""),
		ServiceName:    env("LEDGER_SERVICE_NAME", "account-ledger"),
		ServiceVersion: env("LEDGER_SERVICE_VERSION", "0.1.0"),
		Environment:    env("LEDGER_ENVIRONMENT", "development"),
		InstanceID:     cfg.SessionID,
	}
	if tc.Enabled, err = parseBool("LEDGER_OTEL_ENABLED", env("LEDGER_OTEL_ENABLED", "false")); err != nil {
		return Config{}, err
	}
	if tc.TracesEnabled, err = parseBool("LEDGER_OTEL_TRACES_ENABLED", env("LEDGER_OTEL_TRACES_ENABLED", "true")); err != nil {
		return Config{}, err
	}
	if tc.MetricsEnabled, err = parseBool("LEDGER_OTEL_METRICS_ENABLED", env("LEDGER_OTEL_METRICS_ENABLED", "true")); err != nil {
		return Config{}, err
	}
	if tc.TraceSampling, err = strconv.ParseFloat(env("LEDGER_OTEL_TRACE_SAMPLING", "1.0"), 64); err != nil {
		return Config{}, fmt.Errorf("LEDGER_OTEL_TRACE_SAMPLING: %w", err)
	}
	if tc.TraceSampling < 0 || tc.TraceSampling > 1 {
		return Config{}, fmt.Errorf("LEDGER_OTEL_TRACE_SAMPLING: %v out of range [0,1]", tc.TraceSampling)
	}
	if tc.MetricsInterval, err = time.ParseDuration(env("LEDGER_OTEL_METRICS_INTERVAL", "5s")); err != nil {
		return Config{}, fmt.Errorf("LEDGER_OTEL_METRICS_INTERVAL: %w", err)
	}
	if tc.MetricsInterval <= 0 {
		return Config{}, fmt.Errorf("LEDGER_OTEL_METRICS_INTERVAL: must be > 0")
	}
	cfg.Telemetry = tc
	return cfg, nil
}

func parseBool(key, v string) (bool, error) {
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s: %w", key, err)
	}
	return b, nil
}

// NewLogger 依設定建立寫入 w 的 slog.Logger，並附帶 session 屬性。
func (c Config) NewLogger(w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: c.LogLevel}
	var h slog.Handler
	if c.LogFormat == "json" {
		h = slog.NewJSONHandler(w, opts)
	} else {
		h = slog.NewTextHandler(w, opts)
	}
	return slog.New(h).With("session", c.SessionID)
}
