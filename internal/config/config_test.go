// internal/config/config_test.go
//
// 本檔為設定載入的單元測試：預設值、覆寫、非法值，以及 logger 的輸出格式。
package config

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
	"time"
)

// envMap 為小工具：以 map 模擬環境變數。
func envMap(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

// TestLoadDefaults 未設定任何變數時採用預設值，session id 同步給遙測。
func TestLoadDefaults(t *testing.T) {
	cfg, err := LoadEnv(envMap(nil))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.LogLevel != slog.LevelWarn || cfg.LogFormat != "text" {
		t.Fatalf("log defaults: level=%v format=%q", cfg.LogLevel, cfg.LogFormat)
	}
	if cfg.SessionID == "" || cfg.Telemetry.InstanceID != cfg.SessionID {
		t.Fatalf("session id not propagated: %q %q", cfg.SessionID, cfg.Telemetry.InstanceID)
	}
	tc := cfg.Telemetry
	if tc.Enabled || !tc.TracesEnabled || !tc.MetricsEnabled {
		t.Fatalf("telemetry flags: %+v", tc)
	}
	if tc.ServiceName != "account-ledger" || tc.TraceSampling != 1.0 || tc.MetricsInterval != 5*time.Second {
		t.Fatalf("telemetry defaults: %+v", tc)
	}
}

// TestLoadOverrides 驗證各變數的覆寫與大小寫處理。
func TestLoadOverrides(t *testing.T) {
	cfg, err := LoadEnv(envMap(map[string]string{
		"LEDGER_LOG_LEVEL":             "debug",
		"LEDGER_LOG_FORMAT":            "JSON",
		"LEDGER_OTEL_ENABLED":          "true",
		"LEDGER_OTEL_ENDPOINT":         "collector:4317",
		"LEDGER_OTEL_METRICS_ENABLED":  "false",
		"LEDGER_OTEL_TRACE_SAMPLING":   "0.25",
		"LEDGER_OTEL_METRICS_INTERVAL": "30s",
		"LEDGER_ENVIRONMENT":           "staging",
	}))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.LogLevel != slog.LevelDebug || cfg.LogFormat != "json" {
		t.Fatalf("log: level=%v format=%q", cfg.LogLevel, cfg.LogFormat)
	}
	tc := cfg.Telemetry
	if !tc.Enabled || tc.MetricsEnabled || tc.Endpoint != "collector:4317" {
		t.Fatalf("telemetry: %+v", tc)
	}
	if tc.TraceSampling != 0.25 || tc.MetricsInterval != 30*time.Second || tc.Environment != "staging" {
		t.Fatalf("telemetry: %+v", tc)
	}
}

// TestLoadInvalid 非法值回傳錯誤，且錯誤訊息包含變數名稱。
func TestLoadInvalid(t *testing.T) {
	cases := map[string]string{
		"LEDGER_LOG_LEVEL":             "loud",
		"LEDGER_LOG_FORMAT":            "xml",
		"LEDGER_OTEL_ENABLED":          "maybe",
		"LEDGER_OTEL_TRACE_SAMPLING":   "2",
		"LEDGER_OTEL_METRICS_INTERVAL": "soon",
	}
	for key, val := range cases {
		_, err := LoadEnv(envMap(map[string]string{key: val}))
		if err == nil {
			t.Errorf("%s=%q want error", key, val)
			continue
		}
		if !strings.Contains(err.Error(), key) {
			t.Errorf("%s=%q error should name the variable: %v", key, val, err)
		}
	}
}

// TestNewLoggerJSON JSON logger 依層級過濾並附帶 session 屬性。
func TestNewLoggerJSON(t *testing.T) {
	cfg, err := LoadEnv(envMap(map[string]string{"LEDGER_LOG_FORMAT": "json", "LEDGER_LOG_LEVEL": "info"}))
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	logger := cfg.NewLogger(&buf)
	logger.Debug("hidden")
	logger.Info("shown", "op", "deposit")

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("want one JSON record, got %q: %v", buf.String(), err)
	}
	if rec["msg"] != "shown" || rec["op"] != "deposit" || rec["session"] != cfg.SessionID {
		t.Fatalf("record=%v", rec)
	}
}
