package observability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/kbukum/elevenlabs-stt/logger"
)

type MeterConfig struct {
	ExportConfig `yaml:",inline" mapstructure:",squash"`
	// Interval between exports. Zero keeps the SDK default of one minute.
	Interval time.Duration `yaml:"interval" mapstructure:"interval"`
}

// DefaultMeterConfig exports to a local collector every 15s.
func DefaultMeterConfig(service string) MeterConfig {
	return MeterConfig{ExportConfig: defaultExport(service), Interval: 15 * time.Second}
}

// InitMeter installs a periodic OTLP meter provider globally. The caller
// shuts it down.
func InitMeter(ctx context.Context, cfg *MeterConfig) (*sdkmetric.MeterProvider, error) {
	opts := []otlpmetrichttp.Option{otlpmetrichttp.WithEndpoint(cfg.Endpoint)}
	if cfg.Insecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}
	exporter, err := otlpmetrichttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating metric exporter: %w", err)
	}
	res, err := cfg.resource()
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	var readerOpts []sdkmetric.PeriodicReaderOption
	if cfg.Interval > 0 {
		readerOpts = append(readerOpts, sdkmetric.WithInterval(cfg.Interval))
	}
	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, readerOpts...)),
		sdkmetric.WithResource(res),
	)
	otel.SetMeterProvider(mp)

	logger.Info("meter initialized", logger.Fields(
		"service", cfg.ServiceName,
		"endpoint", cfg.Endpoint,
		"interval", cfg.Interval.String(),
	))
	return mp, nil
}

// Meter returns a meter from the global provider.
func Meter(name string) metric.Meter { return otel.Meter(name) }

// Metrics holds the speech-to-text client instruments. A nil *Metrics is
// valid and records nothing.
type Metrics struct {
	requestTotal    metric.Int64Counter
	requestDuration metric.Float64Histogram
	requestActive   metric.Int64UpDownCounter
	errorTotal      metric.Int64Counter
}

// NewMetrics creates the stt.* instruments on meter.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	var (
		m    Metrics
		errs [4]error
	)
	m.requestTotal, errs[0] = meter.Int64Counter("stt.request.total",
		metric.WithDescription("Speech-to-text requests by model and outcome"))
	m.requestDuration, errs[1] = meter.Float64Histogram("stt.request.duration",
		metric.WithDescription("Speech-to-text request latency"), metric.WithUnit("s"))
	m.requestActive, errs[2] = meter.Int64UpDownCounter("stt.request.active",
		metric.WithDescription("Speech-to-text requests in flight"))
	m.errorTotal, errs[3] = meter.Int64Counter("stt.error.total",
		metric.WithDescription("Speech-to-text errors by kind"))
	if err := errors.Join(errs[:]...); err != nil {
		return nil, fmt.Errorf("creating stt metrics: %w", err)
	}
	return &m, nil
}

// RecordRequestStart increments the in-flight request count.
func (m *Metrics) RecordRequestStart(ctx context.Context) {
	if m == nil {
		return
	}
	m.requestActive.Add(ctx, 1)
}

// RecordRequestEnd decrements in-flight requests and records the completed one.
func (m *Metrics) RecordRequestEnd(ctx context.Context, modelID, status string, duration time.Duration) {
	if m == nil {
		return
	}
	m.requestActive.Add(ctx, -1)
	m.requestTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("model_id", modelID),
		attribute.String("status", status),
	))
	m.requestDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(
		attribute.String("model_id", modelID),
	))
}

// RecordError records an error by kind.
func (m *Metrics) RecordError(ctx context.Context, kind, modelID string) {
	if m == nil {
		return
	}
	m.errorTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("kind", kind),
		attribute.String("model_id", modelID),
	))
}
