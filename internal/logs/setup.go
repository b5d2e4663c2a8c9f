// Package logs configures the process-wide slog logger and, when an OTLP
// endpoint is configured, OpenTelemetry log and trace export.
package logs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	slogmulti "github.com/samber/slog-multi"
	"go.opentelemetry.io/contrib/bridges/otelslog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlplog/otlploghttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	sdklog "go.opentelemetry.io/otel/sdk/log"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"htmlhead/internal/config"
)

// Shutdown flushes and stops any exporters started by Setup.
type Shutdown func(context.Context) error

// Setup installs the default slog logger writing text to w. With an OTLP
// endpoint, records are also sent through the otelslog bridge and a tracer
// provider is registered globally.
func Setup(ctx context.Context, cfg config.LogConfig, service string, w io.Writer) (Shutdown, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}

	local := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	if cfg.OTLPEndpoint == "" {
		slog.SetDefault(slog.New(local))
		return func(context.Context) error { return nil }, nil
	}

	res := resource.NewSchemaless(attribute.String("service.name", service))

	logExporter, err := otlploghttp.New(ctx, otlploghttp.WithEndpointURL(cfg.OTLPEndpoint))
	if err != nil {
		return nil, fmt.Errorf("failed to create otlp log exporter: %w", err)
	}
	loggerProvider := sdklog.NewLoggerProvider(
		sdklog.WithResource(res),
		sdklog.WithProcessor(sdklog.NewBatchProcessor(logExporter)),
	)

	traceExporter, err := otlptracehttp.New(ctx, otlptracehttp.WithEndpointURL(cfg.OTLPEndpoint))
	if err != nil {
		return nil, errors.Join(
			fmt.Errorf("failed to create otlp trace exporter: %w", err),
			loggerProvider.Shutdown(ctx),
		)
	}
	tracerProvider := sdktrace.NewTracerProvider(
		sdktrace.WithResource(res),
		sdktrace.WithBatcher(traceExporter),
	)
	otel.SetTracerProvider(tracerProvider)

	remote := otelslog.NewHandler(service, otelslog.WithLoggerProvider(loggerProvider))
	slog.SetDefault(slog.New(combine(local, remote, level)))

	return func(ctx context.Context) error {
		return errors.Join(tracerProvider.Shutdown(ctx), loggerProvider.Shutdown(ctx))
	}, nil
}

// combine sends every record to local and, at level or above, to remote.
func combine(local, remote slog.Handler, level slog.Level) slog.Handler {
	return slogmulti.Fanout(local, &leveled{Handler: remote, level: level})
}

// leveled applies a minimum level to a handler that has no level option.
type leveled struct {
	slog.Handler
	level slog.Level
}

func (l *leveled) Enabled(ctx context.Context, level slog.Level) bool {
	return level >= l.level && l.Handler.Enabled(ctx, level)
}

func (l *leveled) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &leveled{Handler: l.Handler.WithAttrs(attrs), level: l.level}
}

func (l *leveled) WithGroup(name string) slog.Handler {
	return &leveled{Handler: l.Handler.WithGroup(name), level: l.level}
}
