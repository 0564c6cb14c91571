// Package tracer wires optional OpenTelemetry export for the agent
// API. Tracing is off unless OTEL_ENABLED=true so a bare deployment
// never needs a collector running.
package tracer

import (
	"context"
	"log"
	"os"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
)

const serviceName = "algodraft-backend"

// InitTracer sets the global tracer provider with an OTLP HTTP
// exporter and returns the shutdown hook for main to defer. Any
// exporter setup failure downgrades to a no-op rather than blocking
// startup: completions must keep flowing when the collector is away.
func InitTracer() func(context.Context) error {
	if os.Getenv("OTEL_ENABLED") != "true" {
		log.Println("Tracing disabled (set OTEL_ENABLED=true to export spans)")
		return func(context.Context) error { return nil }
	}

	// Jaeger and most collectors accept OTLP over HTTP on 4318.
	endpoint := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT")
	if endpoint == "" {
		endpoint = "localhost:4318"
	}

	exporter, err := otlptracehttp.New(context.Background(),
		otlptracehttp.WithEndpoint(endpoint),
		otlptracehttp.WithInsecure(),
	)
	if err != nil {
		log.Printf("Tracing disabled: OTLP exporter setup failed: %v", err)
		return func(context.Context) error { return nil }
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceNameKey.String(serviceName),
			semconv.ServiceVersionKey.String("1.0.0"),
			semconv.DeploymentEnvironmentKey.String(os.Getenv("GO_ENV")),
		)),
	)

	otel.SetTracerProvider(tp)
	log.Printf("Tracing enabled, exporting to %s", endpoint)
	return tp.Shutdown
}
