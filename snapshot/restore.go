package snapshot

import (
	"errors"
	"fmt"

	"github.com/ttpr0/go-transit/catalogue"
	"github.com/ttpr0/go-transit/geo"
	"github.com/ttpr0/go-transit/graph"
	"github.com/ttpr0/go-transit/render"
	"github.com/ttpr0/go-transit/routing"
	"github.com/ttpr0/go-transit/transit"
	. "github.com/ttpr0/go-transit/util"
)

func _Inconsistent(format string, args ...any) error {
	return fmt.Errorf("%w: %v", ErrInconsistentSnapshot, fmt.Sprintf(format, args...))
}

// Decodes a snapshot. The catalogue is rebuilt in its original insertion
// order and every name in the router data is resolved against it.
func Deserialize(data []byte) (Snapshot, error) {
	raw, err := _DecodeSnapshot(data)
	if err != nil {
		return Snapshot{}, err
	}

	cat, err := _RestoreCatalogue(raw)
	if err != nil {
		return Snapshot{}, err
	}
	objects, err := _RestoreMapObjects(cat, raw)
	if err != nil {
		return Snapshot{}, err
	}
	router, err := _RestoreRouter(cat, raw.router.Value)
	if err != nil {
		return Snapshot{}, err
	}
	return Snapshot{
		Meta:           raw.meta,
		Catalogue:      cat,
		RenderSettings: raw.render_settings,
		MapObjects:     objects,
		Router:         router,
	}, nil
}

func _ResolveStop(cat *catalogue.TransportCatalogue, name string) (catalogue.StopID, error) {
	stop := cat.FindStop(name)
	if !stop.HasValue() {
		return -1, _Inconsistent("unknown stop %q", name)
	}
	return stop.Value, nil
}

func _ResolveBus(cat *catalogue.TransportCatalogue, name string) (catalogue.BusID, error) {
	bus := cat.FindBus(name)
	if !bus.HasValue() {
		return -1, _Inconsistent("unknown bus %q", name)
	}
	return bus.Value, nil
}

func _ResolveStops(cat *catalogue.TransportCatalogue, names List[string]) (List[catalogue.StopID], error) {
	stops := NewList[catalogue.StopID](names.Length())
	for _, name := range names {
		stop, err := _ResolveStop(cat, name)
		if err != nil {
			return nil, err
		}
		stops.Add(stop)
	}
	return stops, nil
}

func _RestoreCatalogue(raw _RawSnapshot) (*catalogue.TransportCatalogue, error) {
	cat := catalogue.NewTransportCatalogue()
	for _, stop := range raw.stops {
		_, err := cat.AddStop(catalogue.Stop{
			Name:     stop.name,
			Position: geo.Coord{Lat: stop.lat, Lng: stop.lng},
		})
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInconsistentSnapshot, err)
		}
	}
	for _, raw_bus := range raw.buses {
		stops, err := _ResolveStops(cat, raw_bus.stops)
		if err != nil {
			return nil, err
		}
		endpoints, err := _ResolveStops(cat, raw_bus.endpoints)
		if err != nil {
			return nil, err
		}
		_, err = cat.AddBus(catalogue.Bus{
			Name:      raw_bus.name,
			Stops:     stops,
			Endpoints: endpoints,
		})
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInconsistentSnapshot, err)
		}
	}
	for _, distance := range raw.distances {
		from, err := _ResolveStop(cat, distance.from)
		if err != nil {
			return nil, err
		}
		to, err := _ResolveStop(cat, distance.to)
		if err != nil {
			return nil, err
		}
		if err := cat.SetDistance(from, to, distance.meters); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInconsistentSnapshot, err)
		}
	}
	return cat, nil
}

func _RestoreMapObjects(cat *catalogue.TransportCatalogue, raw _RawSnapshot) (render.MapObjects, error) {
	stops, err := _ResolveStops(cat, raw.map_stops)
	if err != nil {
		return render.MapObjects{}, err
	}
	buses := NewList[catalogue.BusID](raw.map_buses.Length())
	for _, name := range raw.map_buses {
		bus, err := _ResolveBus(cat, name)
		if err != nil {
			return render.MapObjects{}, err
		}
		buses.Add(bus)
	}
	return render.MapObjects{Stops: stops, Buses: buses}, nil
}

func _RestoreRouter(cat *catalogue.TransportCatalogue, raw _RawRouter) (*transit.TransportRouter, error) {
	g, err := graph.NewDirectedWeightedGraphFromData(Array[graph.Edge](raw.edges), Array[List[graph.EdgeId]](raw.incidence))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedSnapshot, err)
	}

	stop_vertex_ids := NewArray[transit.StopVertexId](cat.StopCount())
	seen := NewArray[bool](cat.StopCount())
	for _, entry := range raw.stop_vertex_ids {
		stop, err := _ResolveStop(cat, entry.name)
		if err != nil {
			return nil, err
		}
		if seen[stop] {
			return nil, _Inconsistent("stop %q has vertices twice", entry.name)
		}
		seen[stop] = true
		stop_vertex_ids[stop] = entry.ids
	}
	for stop, ok := range seen {
		if !ok {
			return nil, _Inconsistent("stop %q has no vertices", cat.GetStop(catalogue.StopID(stop)).Name)
		}
	}

	vertices_info := NewArray[transit.VertexInfo](raw.vertices_info.Length())
	for i, name := range raw.vertices_info {
		stop, err := _ResolveStop(cat, name)
		if err != nil {
			return nil, err
		}
		vertices_info[i] = transit.VertexInfo{Stop: stop}
	}

	edges_info := NewList[transit.EdgeInfo](raw.edges_info.Length())
	for _, info := range raw.edges_info {
		if info.kind != transit.BUS_EDGE {
			edges_info.Add(transit.WaitEdgeInfo())
			continue
		}
		bus, err := _ResolveBus(cat, info.bus_name)
		if err != nil {
			return nil, err
		}
		edges_info.Add(transit.BusEdgeInfo(bus, info.start, info.finish))
	}

	router, err := transit.RestoreTransportRouter(cat, transit.TransportRouterData{
		Settings:      raw.settings,
		Graph:         g,
		Routes:        routing.RoutesInternalData(raw.routes),
		StopVertexIds: stop_vertex_ids,
		VerticesInfo:  vertices_info,
		EdgesInfo:     edges_info,
	})
	if err != nil {
		return nil, _ClassifyRouterError(err)
	}
	return router, nil
}

// A table or graph that cannot be walked is malformed, data that does not
// match the catalogue is inconsistent.
func _ClassifyRouterError(err error) error {
	switch {
	case errors.Is(err, routing.ErrTableShape), errors.Is(err, routing.ErrBrokenPath),
		errors.Is(err, graph.ErrVertexOutOfRange), errors.Is(err, graph.ErrEdgeOutOfRange):
		return fmt.Errorf("%w: %w", ErrMalformedSnapshot, err)
	default:
		return fmt.Errorf("%w: %w", ErrInconsistentSnapshot, err)
	}
}
