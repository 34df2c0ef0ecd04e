package main

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

type Instruments struct {
	// stat requests by type
	Requests metric.Int64Counter
	// stat requests answered with "not found", by type
	NotFound metric.Int64Counter
	// seconds spent in make_base
	BuildDuration metric.Float64Histogram
}

func NewInstruments(meter metric.Meter) (*Instruments, error) {
	requests, err := meter.Int64Counter("transit.requests",
		metric.WithDescription("Number of stat requests processed"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, err
	}
	not_found, err := meter.Int64Counter("transit.requests.not_found",
		metric.WithDescription("Number of stat requests without a result"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, err
	}
	build_duration, err := meter.Float64Histogram("transit.build.duration",
		metric.WithDescription("Duration of catalogue and routing index construction"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}
	return &Instruments{
		Requests:      requests,
		NotFound:      not_found,
		BuildDuration: build_duration,
	}, nil
}

func (self *Instruments) RecordRequest(ctx context.Context, typ string, found bool) {
	attrs := metric.WithAttributes(attribute.String("type", typ))
	self.Requests.Add(ctx, 1, attrs)
	if !found {
		self.NotFound.Add(ctx, 1, attrs)
	}
}

func (self *Instruments) RecordBuild(ctx context.Context, start time.Time) {
	self.BuildDuration.Record(ctx, time.Since(start).Seconds())
}
