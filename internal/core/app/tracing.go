package app

import (
	"path/filepath"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

func traceAttrs(path string) []trace.SpanStartOption {
	return []trace.SpanStartOption{
		trace.WithAttributes(
			attribute.String("file.path", path),
			attribute.String("file.ext", filepath.Ext(path)),
		),
	}
}
