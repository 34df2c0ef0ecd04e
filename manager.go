package main

import (
	"context"
	"fmt"
	"sync"

	"github.com/ttpr0/go-transit/render"
	"github.com/ttpr0/go-transit/snapshot"
	"github.com/ttpr0/go-transit/transit"
	. "github.com/ttpr0/go-transit/util"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/exp/slog"
)

const INSTRUMENTATION_NAME = "github.com/ttpr0/go-transit"

// Answers stat requests against one loaded snapshot. Read-only after
// construction and safe for concurrent use.
type TransitManager struct {
	snapshot    snapshot.Snapshot
	tracer      trace.Tracer
	instruments *Instruments

	map_once sync.Once
	map_svg  string
}

func NewTransitManager(snap snapshot.Snapshot) (*TransitManager, error) {
	instruments, err := NewInstruments(otel.Meter(INSTRUMENTATION_NAME))
	if err != nil {
		return nil, err
	}
	return &TransitManager{
		snapshot:    snap,
		tracer:      otel.Tracer(INSTRUMENTATION_NAME),
		instruments: instruments,
	}, nil
}

func LoadTransitManager(file string) (*TransitManager, error) {
	snap, err := snapshot.ReadFile(file)
	if err != nil {
		return nil, err
	}
	return NewTransitManager(snap)
}

func (self *TransitManager) GetSnapshot() snapshot.Snapshot {
	return self.snapshot
}

// Returns one of the response types, ErrorResponse if the request has no
// result.
func (self *TransitManager) Stat(ctx context.Context, request StatRequest) any {
	var response Optional[any]
	switch request.Type {
	case BUS_STAT:
		response = self.BusStat(ctx, request.Id, request.Name)
	case STOP_STAT:
		response = self.StopStat(ctx, request.Id, request.Name)
	case ROUTE_STAT:
		response = self.RouteStat(ctx, request.Id, request.From, request.To)
	case MAP_STAT:
		response = Some[any](self.MapStat(ctx, request.Id))
	default:
		slog.Warn(fmt.Sprintf("stat request %v has unknown type %q", request.Id, request.Type))
		return NewErrorResponse(request.Id, "unknown request type")
	}
	self.instruments.RecordRequest(ctx, request.Type, response.HasValue())
	if !response.HasValue() {
		return NewErrorResponse(request.Id, NOT_FOUND)
	}
	return response.Value
}

func (self *TransitManager) BusStat(ctx context.Context, id int, name string) Optional[any] {
	_, span := self.tracer.Start(ctx, "TransitManager.BusStat", trace.WithAttributes(attribute.String("bus", name)))
	defer span.End()

	cat := self.snapshot.Catalogue
	bus_id := cat.FindBus(name)
	if !bus_id.HasValue() {
		return None[any]()
	}
	stats := cat.GetBusStats(bus_id.Value)
	if !stats.HasValue() {
		return None[any]()
	}
	return Some[any](BusResponse{
		RequestId:       id,
		Curvature:       stats.Value.Curvature,
		RouteLength:     stats.Value.RouteLength,
		StopCount:       stats.Value.StopCount,
		UniqueStopCount: stats.Value.UniqueStopCount,
	})
}

func (self *TransitManager) StopStat(ctx context.Context, id int, name string) Optional[any] {
	_, span := self.tracer.Start(ctx, "TransitManager.StopStat", trace.WithAttributes(attribute.String("stop", name)))
	defer span.End()

	cat := self.snapshot.Catalogue
	stop_id := cat.FindStop(name)
	if !stop_id.HasValue() {
		return None[any]()
	}
	return Some[any](StopResponse{
		RequestId: id,
		Buses:     cat.GetStopBusNames(stop_id.Value),
	})
}

func (self *TransitManager) RouteStat(ctx context.Context, id int, from, to string) Optional[any] {
	_, span := self.tracer.Start(ctx, "TransitManager.RouteStat", trace.WithAttributes(
		attribute.String("from", from),
		attribute.String("to", to),
	))
	defer span.End()

	route := self.snapshot.Router.FindRouteByName(from, to)
	if !route.HasValue() {
		slog.Debug(fmt.Sprintf("no route from %q to %q", from, to))
		return None[any]()
	}
	info := route.Value
	span.SetAttributes(attribute.Float64("total_time", info.TotalTime), attribute.Int("items", info.Items.Length()))

	items := NewList[any](info.Items.Length())
	for _, item := range info.Items {
		switch it := item.(type) {
		case transit.WaitItem:
			items.Add(WaitItemResponse{
				Type:     transit.WAIT_EDGE.String(),
				StopName: it.StopName,
				Time:     it.Time,
			})
		case transit.BusItem:
			items.Add(BusItemResponse{
				Type:      transit.BUS_EDGE.String(),
				Bus:       it.BusName,
				SpanCount: it.SpanCount,
				Time:      it.Time,
			})
		}
	}
	return Some[any](RouteResponse{
		RequestId: id,
		TotalTime: info.TotalTime,
		Items:     items,
	})
}

func (self *TransitManager) MapStat(ctx context.Context, id int) MapResponse {
	_, span := self.tracer.Start(ctx, "TransitManager.MapStat")
	defer span.End()

	return MapResponse{
		RequestId: id,
		Map:       self.RenderMap(),
	}
}

// The map only depends on the snapshot, it is rendered once.
func (self *TransitManager) RenderMap() string {
	self.map_once.Do(func() {
		snap := self.snapshot
		renderer := render.NewMapRenderer(snap.Catalogue, snap.RenderSettings, snap.MapObjects)
		self.map_svg = renderer.Render().String()
	})
	return self.map_svg
}
