package observability

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/go-logr/logr"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// TracerName is the instrumentation name of the compiler's spans.
const TracerName = "github.com/sarchlab/radflow"

// InitTracing installs a tracer provider exporting every finished span as
// JSON to w. A nil w installs a no-op provider. The returned function
// flushes and stops the provider.
func InitTracing(ctx context.Context, w io.Writer, log logr.Logger) (func(context.Context) error, error) {
	if w == nil {
		otel.SetTracerProvider(noop.NewTracerProvider())
		log.V(1).Info("tracing disabled")
		return func(context.Context) error { return nil }, nil
	}

	exp, err := stdouttrace.New(
		stdouttrace.WithWriter(w),
		stdouttrace.WithPrettyPrint(),
	)
	if err != nil {
		return nil, fmt.Errorf("create exporter: %w", err)
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(attribute.String("service.name", "radflow")),
	)
	if err != nil {
		return nil, fmt.Errorf("create resource: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSyncer(exp),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tp)

	log.V(1).Info("tracing enabled")

	return tp.Shutdown, nil
}

// ShutdownWithTimeout invokes the provided shutdown function with a bounded
// timeout, logging but otherwise ignoring a failure.
func ShutdownWithTimeout(ctx context.Context, shutdown func(context.Context) error, log logr.Logger) {
	if shutdown == nil {
		return
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := shutdown(ctx); err != nil {
		log.Error(err, "tracing shutdown failed")
	}
}
