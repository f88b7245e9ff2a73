package observability

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "undestructure"

// Tracer is the package-wide tracer. It resolves through the global provider,
// so spans are no-ops until SetupTracing installs an SDK provider.
var Tracer trace.Tracer = otel.Tracer(tracerName)

// SetupTracing installs an SDK tracer provider. When endpoint is empty spans
// are recorded but never exported. The returned func flushes and shuts down.
func SetupTracing(ctx context.Context, endpoint string) (func(context.Context) error, error) {
	opts := []sdktrace.TracerProviderOption{}

	endpoint = strings.TrimSpace(endpoint)
	if endpoint != "" {
		exporter, err := otlptracegrpc.New(ctx,
			otlptracegrpc.WithEndpoint(endpoint),
			otlptracegrpc.WithInsecure(),
		)
		if err != nil {
			return nil, err
		}
		opts = append(opts, sdktrace.WithBatcher(exporter))
	}

	tp := sdktrace.NewTracerProvider(opts...)
	otel.SetTracerProvider(tp)
	Tracer = tp.Tracer(tracerName)
	return tp.Shutdown, nil
}
