package tracer

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"
	traceapi "go.opentelemetry.io/otel/trace"

	"github.com/schemaforge/schemaforge/logger"
)

// Tracer provides a simplified API for distributed tracing with OpenTelemetry.
// It wraps the OpenTelemetry TracerProvider and provides convenient methods
// for creating spans and recording errors.
//
// The Tracer is thread-safe and can be shared across goroutines.
type Tracer struct {
	provider *trace.TracerProvider
	logger   *logger.Logger
}

// NewClient creates and initializes a new Tracer instance with OpenTelemetry.
// It sets up the tracer provider with the provided configuration, configures
// the OTLP HTTP exporter when export is enabled, and sets global OpenTelemetry
// settings.
//
// If the exporter fails to initialize the function logs a fatal error, since
// a deployment that asked for export but silently drops traces is worse than
// one that refuses to start.
func NewClient(cfg Config, log *logger.Logger) *Tracer {
	var options []trace.TracerProviderOption

	if cfg.EnableExport {
		client := otlptracehttp.NewClient()
		exporter, err := otlptrace.New(context.Background(), client)
		if err != nil {
			log.Fatal("cannot initiate tracer", err, nil)
			return nil
		}
		options = append(options, trace.WithBatcher(exporter))
	}

	options = append(options, trace.WithResource(resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(cfg.ServiceName),
		semconv.DeploymentEnvironment(cfg.AppEnv),
		attribute.String("environment", cfg.AppEnv),
	)))

	tp := trace.NewTracerProvider(options...)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{}))

	return &Tracer{provider: tp, logger: log}
}

// StartSpan begins a new span under whatever span is already on the context.
// Nil-safe: components constructed without a tracer get a no-op span.
//
//	ctx, span := t.StartSpan(ctx, "negotiate-iteration")
//	defer span.End()
func (t *Tracer) StartSpan(ctx context.Context, name string) (context.Context, traceapi.Span) {
	if t == nil {
		return traceapi.NewNoopTracerProvider().Tracer("schemaforge").Start(ctx, name)
	}
	return t.provider.Tracer("schemaforge").Start(ctx, name)
}

// RecordErrorOnSpan marks a span as failed and attaches the error to it.
func (t *Tracer) RecordErrorOnSpan(span traceapi.Span, err error) {
	if err == nil {
		return
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}

// Shutdown flushes pending spans and releases exporter resources.
func (t *Tracer) Shutdown(ctx context.Context) error {
	if t == nil {
		return nil
	}
	return t.provider.Shutdown(ctx)
}
