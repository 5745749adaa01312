// internal/telemetry/telemetry.go

// Package telemetry 建立 OpenTelemetry 的 TracerProvider 與 MeterProvider。
// 預設關閉；關閉時回傳 noop 實作，呼叫端不需判斷。
// 未設定 Endpoint 時，span 與 metric 以 stdout 匯出器寫到指定的 io.Writer（通常是 stderr），
// 避免與選單輸出混在一起。
package telemetry

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/metric"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"
)

// Config holds OpenTelemetry configuration.
type Config struct {
	Enabled         bool
	Endpoint        string
	ServiceName     string
	ServiceVersion  string
	Environment     string
	InstanceID      string
	TraceSampling   float64
	TracesEnabled   bool
	MetricsEnabled  bool
	MetricsInterval time.Duration
}

// Telemetry 持有 SDK provider；nil 或關閉時所有方法回傳 noop。
type Telemetry struct {
	tp *sdktrace.TracerProvider
	mp *sdkmetric.MeterProvider
}

// OTLP 匯出器的建構函式；測試時可替換。
var (
	newOTLPSpanExporter = func(ctx context.Context, endpoint string) (sdktrace.SpanExporter, error) {
		return otlptracegrpc.New(ctx,
			otlptracegrpc.WithEndpoint(endpoint),
			otlptracegrpc.WithInsecure(),
		)
	}
	newOTLPMetricExporter = func(ctx context.Context, endpoint string) (sdkmetric.Exporter, error) {
		return otlpmetricgrpc.New(ctx,
			otlpmetricgrpc.WithEndpoint(endpoint),
			otlpmetricgrpc.WithInsecure(),
		)
	}
)

// Setup 依 cfg 建立 provider。cfg.Enabled 為 false 時回傳空的 Telemetry。
// w 為 stdout 匯出器的輸出目標；OTLP 建立失敗而退回 stdout 時以 logger 發出警告。
func Setup(ctx context.Context, cfg Config, w io.Writer, logger *slog.Logger) (*Telemetry, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	t := &Telemetry{}
	if !cfg.Enabled {
		return t, nil
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceNameKey.String(cfg.ServiceName),
			semconv.ServiceVersionKey.String(cfg.ServiceVersion),
			semconv.ServiceInstanceIDKey.String(cfg.InstanceID),
			semconv.DeploymentEnvironmentKey.String(cfg.Environment),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("create resource: %w", err)
	}

	if cfg.TracesEnabled {
		exp, err := newSpanExporter(ctx, cfg, w, logger)
		if err != nil {
			return nil, err
		}
		t.tp = sdktrace.NewTracerProvider(
			sdktrace.WithBatcher(exp),
			sdktrace.WithResource(res),
			sdktrace.WithSampler(sdktrace.TraceIDRatioBased(cfg.TraceSampling)),
		)
	}

	if cfg.MetricsEnabled {
		exp, err := newMetricExporter(ctx, cfg, w, logger)
		if err != nil {
			_ = t.Shutdown(ctx)
			return nil, err
		}
		t.mp = sdkmetric.NewMeterProvider(
			sdkmetric.WithResource(res),
			sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exp,
				sdkmetric.WithInterval(cfg.MetricsInterval))),
		)
	}
	return t, nil
}

func newSpanExporter(ctx context.Context, cfg Config, w io.Writer, logger *slog.Logger) (sdktrace.SpanExporter, error) {
	if cfg.Endpoint != "" {
		exp, err := newOTLPSpanExporter(ctx, cfg.Endpoint)
		if err == nil {
			return exp, nil
		}
		logger.Warn("otlp span exporter unavailable, falling back to stdout",
			"endpoint", cfg.Endpoint, "error", err)
	}
	exp, err := stdouttrace.New(stdouttrace.WithWriter(w))
	if err != nil {
		return nil, fmt.Errorf("create span exporter: %w", err)
	}
	return exp, nil
}

func newMetricExporter(ctx context.Context, cfg Config, w io.Writer, logger *slog.Logger) (sdkmetric.Exporter, error) {
	if cfg.Endpoint != "" {
		exp, err := newOTLPMetricExporter(ctx, cfg.Endpoint)
		if err == nil {
			return exp, nil
		}
		logger.Warn("otlp metric exporter unavailable, falling back to stdout",
			"endpoint", cfg.Endpoint, "error", err)
	}
	exp, err := stdoutmetric.New(stdoutmetric.WithWriter(w))
	if err != nil {
		return nil, fmt.Errorf("create metric exporter: %w", err)
	}
	return exp, nil
}

// TracerProvider 回傳可用的 TracerProvider；未啟用時為 noop。
func (t *Telemetry) TracerProvider() trace.TracerProvider {
	if t == nil || t.tp == nil {
		return tracenoop.NewTracerProvider()
	}
	return t.tp
}

// MeterProvider 回傳可用的 MeterProvider；未啟用時為 noop。
func (t *Telemetry) MeterProvider() metric.MeterProvider {
	if t == nil || t.mp == nil {
		return metricnoop.NewMeterProvider()
	}
	return t.mp
}

// Shutdown flushes pending spans and metrics and releases the exporters.
func (t *Telemetry) Shutdown(ctx context.Context) error {
	if t == nil {
		return nil
	}
	var errs []error
	if t.tp != nil {
		if err := t.tp.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("tracer provider shutdown: %w", err))
		}
	}
	if t.mp != nil {
		if err := t.mp.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("meter provider shutdown: %w", err))
		}
	}
	return errors.Join(errs...)
}
