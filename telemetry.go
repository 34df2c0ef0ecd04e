package main

import (
	"context"
	"errors"
	"time"

	"github.com/grafana/pyroscope-go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
	"golang.org/x/exp/slog"
)

const VERSION = "0.1.0"

//**********************************************************
// telemetry
//**********************************************************

// Starts tracing, metrics and profiling as configured. The returned function
// flushes and stops everything that was started. Exporter failures are
// logged and leave the corresponding signal disabled.
func InitTelemetry(ctx context.Context, options TelemetryOptions) func() {
	shutdowns := make([]func(context.Context) error, 0, 3)

	if options.Tracing || options.Metrics {
		res, err := _NewResource(ctx, options)
		if err != nil {
			slog.Warn("failed to create telemetry resource: " + err.Error())
		} else {
			if options.Tracing {
				if shutdown, err := _InitTracing(ctx, options, res); err != nil {
					slog.Warn("failed to create trace exporter, tracing disabled: " + err.Error())
				} else {
					shutdowns = append(shutdowns, shutdown)
				}
			}
			if options.Metrics {
				if shutdown, err := _InitMetrics(ctx, options, res); err != nil {
					slog.Warn("failed to create metric exporter, metrics disabled: " + err.Error())
				} else {
					shutdowns = append(shutdowns, shutdown)
				}
			}
		}
	}
	if options.Profiling {
		if shutdown, err := _InitProfiling(options); err != nil {
			slog.Warn("failed to start profiler: " + err.Error())
		} else {
			shutdowns = append(shutdowns, shutdown)
		}
	}

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		errs := make([]error, 0, len(shutdowns))
		for _, shutdown := range shutdowns {
			errs = append(errs, shutdown(ctx))
		}
		if err := errors.Join(errs...); err != nil {
			slog.Error("telemetry shutdown failed: " + err.Error())
		}
	}
}

func _NewResource(ctx context.Context, options TelemetryOptions) (*resource.Resource, error) {
	return resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(options.ServiceName),
			semconv.ServiceVersion(VERSION),
		),
	)
}

func _InitTracing(ctx context.Context, options TelemetryOptions, res *resource.Resource) (func(context.Context) error, error) {
	exporter, err := otlptracehttp.New(ctx,
		otlptracehttp.WithEndpoint(options.Endpoint),
		otlptracehttp.WithInsecure(),
	)
	if err != nil {
		return nil, err
	}
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})
	slog.Debug("tracing enabled, exporting to " + options.Endpoint)
	return tp.Shutdown, nil
}

func _InitMetrics(ctx context.Context, options TelemetryOptions, res *resource.Resource) (func(context.Context) error, error) {
	exporter, err := otlpmetrichttp.New(ctx,
		otlpmetrichttp.WithEndpoint(options.Endpoint),
		otlpmetrichttp.WithInsecure(),
	)
	if err != nil {
		return nil, err
	}
	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, sdkmetric.WithInterval(30*time.Second))),
		sdkmetric.WithResource(res),
	)
	otel.SetMeterProvider(mp)
	slog.Debug("metrics enabled, exporting to " + options.Endpoint)
	return mp.Shutdown, nil
}

func _InitProfiling(options TelemetryOptions) (func(context.Context) error, error) {
	profiler, err := pyroscope.Start(pyroscope.Config{
		ApplicationName: options.ServiceName,
		ServerAddress:   options.PyroscopeAddress,
		Tags: map[string]string{
			"service": options.ServiceName,
			"version": VERSION,
		},
	})
	if err != nil {
		return nil, err
	}
	slog.Debug("profiling enabled, sending to " + options.PyroscopeAddress)
	return func(context.Context) error {
		return profiler.Stop()
	}, nil
}
