package bootstrap

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"browser-tools/internal/config"
)

func newTraceProvider(lc fx.Lifecycle, conf *config.Config, logger *zap.Logger) *sdktrace.TracerProvider {
	// Pretty-printed spans are only readable interactively; production
	// output stays one span per line.
	var exporterOptions []stdouttrace.Option
	if conf.AppConfig.Debug {
		exporterOptions = append(exporterOptions, stdouttrace.WithPrettyPrint())
	}

	exporter, err := stdouttrace.New(exporterOptions...)
	if err != nil {
		logger.Fatal("Failed to create trace exporter", zap.Error(err))
	}

	res, err := resource.New(
		context.Background(),
		resource.WithAttributes(
			semconv.ServiceName("browser-tools"),
			attribute.Bool("browser.headless", conf.BrowserConfig.Headless),
			attribute.Bool("browser.persistent", conf.BrowserConfig.UserDataDir != ""),
		),
	)
	if err != nil {
		logger.Fatal("Failed to create resource", zap.Error(err))
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)

	otel.SetTracerProvider(tp)

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return tp.Shutdown(ctx)
		},
	})

	return tp
}
