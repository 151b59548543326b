package console

import (
	"go.opentelemetry.io/otel/attribute"
	oteltrace "go.opentelemetry.io/otel/trace"
)

func spanAttrs(attrs ...attribute.KeyValue) oteltrace.SpanStartOption {
	return oteltrace.WithAttributes(attrs...)
}
