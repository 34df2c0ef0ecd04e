package transit

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/ttpr0/go-transit/catalogue"
	"github.com/ttpr0/go-transit/graph"
	"github.com/ttpr0/go-transit/routing"
	. "github.com/ttpr0/go-transit/util"
	"golang.org/x/exp/slog"
)

var ErrInvalidSettings = errors.New("invalid routing settings")
var ErrInconsistentData = errors.New("transport router data does not match catalogue")

var validate = validator.New()

func ValidateSettings(settings RoutingSettings) error {
	if err := validate.Struct(settings); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSettings, err)
	}
	return nil
}

//*******************************************
// transport router
//*******************************************

// Itinerary index over a catalogue. Every stop becomes an in and an out
// vertex, waiting at a stop is the edge out -> in, riding a bus from stop i
// to stop j of its sequence is the edge in(i) -> out(j).
type TransportRouter struct {
	catalogue ICatalogue
	settings  RoutingSettings

	graph  *graph.DirectedWeightedGraph
	router *routing.Router

	stop_vertex_ids Array[StopVertexId]
	vertices_info   Array[VertexInfo]
	edges_info      List[EdgeInfo]
}

func NewTransportRouter(cat ICatalogue, settings RoutingSettings, opts Options) (*TransportRouter, error) {
	if err := ValidateSettings(settings); err != nil {
		return nil, err
	}

	vertex_count := cat.StopCount() * 2
	self := &TransportRouter{
		catalogue:       cat,
		settings:        settings,
		graph:           graph.NewDirectedWeightedGraph(vertex_count),
		stop_vertex_ids: NewArray[StopVertexId](cat.StopCount()),
		vertices_info:   NewArray[VertexInfo](vertex_count),
		edges_info:      NewList[EdgeInfo](vertex_count),
	}
	if err := self._FillGraphWithStops(); err != nil {
		return nil, err
	}
	if err := self._FillGraphWithBuses(); err != nil {
		return nil, err
	}
	slog.Info("transit graph built", "vertices", self.graph.VertexCount(), "edges", self.graph.EdgeCount())

	router, err := routing.NewRouter(self.graph, opts.Workers)
	if err != nil {
		return nil, err
	}
	self.router = router
	return self, nil
}

func (self *TransportRouter) _FillGraphWithStops() error {
	var vertex_id graph.VertexId = 0
	for s := 0; s < self.catalogue.StopCount(); s++ {
		stop := catalogue.StopID(s)
		ids := StopVertexId{In: vertex_id, Out: vertex_id + 1}
		vertex_id += 2
		self.stop_vertex_ids[stop] = ids
		self.vertices_info[ids.In] = VertexInfo{Stop: stop}
		self.vertices_info[ids.Out] = VertexInfo{Stop: stop}

		if err := self._AddEdge(graph.Edge{
			From:   ids.Out,
			To:     ids.In,
			Weight: float64(self.settings.BusWaitTime),
		}, WaitEdgeInfo()); err != nil {
			return err
		}
	}
	return nil
}

func (self *TransportRouter) _FillGraphWithBuses() error {
	// meters per minute
	velocity := self.settings.BusVelocity * 1000.0 / 60
	for b := 0; b < self.catalogue.BusCount(); b++ {
		bus_id := catalogue.BusID(b)
		stops := self.catalogue.GetBus(bus_id).Stops
		for i := 0; i < stops.Length(); i++ {
			start_vertex := self.stop_vertex_ids[stops[i]].In
			total_distance := 0
			for j := i + 1; j < stops.Length(); j++ {
				total_distance += self.catalogue.GetDistance(stops[j-1], stops[j])
				if err := self._AddEdge(graph.Edge{
					From:   start_vertex,
					To:     self.stop_vertex_ids[stops[j]].Out,
					Weight: float64(total_distance) / velocity,
				}, BusEdgeInfo(bus_id, i, j)); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func (self *TransportRouter) _AddEdge(edge graph.Edge, info EdgeInfo) error {
	self.edges_info.Add(info)
	edge_id, err := self.graph.AddEdge(edge)
	if err != nil {
		return err
	}
	if int(edge_id) != self.edges_info.Length()-1 {
		return fmt.Errorf("edge %v added out of order", edge_id)
	}
	return nil
}

//*******************************************
// restore
//*******************************************

// Everything a transport router consists of besides its catalogue.
type TransportRouterData struct {
	Settings      RoutingSettings
	Graph         *graph.DirectedWeightedGraph
	Routes        routing.RoutesInternalData
	StopVertexIds Array[StopVertexId]
	VerticesInfo  Array[VertexInfo]
	EdgesInfo     List[EdgeInfo]
}

// Rebuilds a transport router from previously computed data without
// running the shortest path computation again.
func RestoreTransportRouter(cat ICatalogue, data TransportRouterData) (*TransportRouter, error) {
	if err := ValidateSettings(data.Settings); err != nil {
		return nil, err
	}
	if data.Graph == nil {
		return nil, fmt.Errorf("missing graph: %w", ErrInconsistentData)
	}
	g := data.Graph
	if data.StopVertexIds.Length() != cat.StopCount() || g.VertexCount() != 2*cat.StopCount() {
		return nil, fmt.Errorf("%v stops, %v stop vertex pairs, %v vertices: %w", cat.StopCount(), data.StopVertexIds.Length(), g.VertexCount(), ErrInconsistentData)
	}
	if data.VerticesInfo.Length() != g.VertexCount() {
		return nil, fmt.Errorf("%v vertex infos for %v vertices: %w", data.VerticesInfo.Length(), g.VertexCount(), ErrInconsistentData)
	}
	if data.EdgesInfo.Length() != g.EdgeCount() {
		return nil, fmt.Errorf("%v edge infos for %v edges: %w", data.EdgesInfo.Length(), g.EdgeCount(), ErrInconsistentData)
	}
	for stop, ids := range data.StopVertexIds {
		if !g.IsVertex(ids.In) || !g.IsVertex(ids.Out) {
			return nil, fmt.Errorf("vertices of stop %v: %w", stop, ErrInconsistentData)
		}
	}
	for vertex, info := range data.VerticesInfo {
		if info.Stop < 0 || int(info.Stop) >= cat.StopCount() {
			return nil, fmt.Errorf("vertex %v references stop %v: %w", vertex, info.Stop, ErrInconsistentData)
		}
	}
	for i, info := range data.EdgesInfo {
		edge := g.GetEdge(graph.EdgeId(i))
		switch info.Kind {
		case WAIT_EDGE:
			ids := data.StopVertexIds[data.VerticesInfo[edge.From].Stop]
			if edge.From != ids.Out || edge.To != ids.In {
				return nil, fmt.Errorf("wait edge %v (%v -> %v) does not connect the vertices of one stop: %w", i, edge.From, edge.To, ErrInconsistentData)
			}
		case BUS_EDGE:
			if info.Bus < 0 || int(info.Bus) >= cat.BusCount() {
				return nil, fmt.Errorf("edge %v references bus %v: %w", i, info.Bus, ErrInconsistentData)
			}
			stops := cat.GetBus(info.Bus).Stops
			if info.StartStopIdx < 0 || info.StartStopIdx >= info.FinishStopIdx || info.FinishStopIdx >= stops.Length() {
				return nil, fmt.Errorf("edge %v spans stops %v..%v of a %v stop bus: %w", i, info.StartStopIdx, info.FinishStopIdx, stops.Length(), ErrInconsistentData)
			}
			start := data.StopVertexIds[stops[info.StartStopIdx]]
			finish := data.StopVertexIds[stops[info.FinishStopIdx]]
			if edge.From != start.In || edge.To != finish.Out {
				return nil, fmt.Errorf("bus edge %v (%v -> %v) does not match stops %v..%v of its bus: %w", i, edge.From, edge.To, info.StartStopIdx, info.FinishStopIdx, ErrInconsistentData)
			}
		default:
			return nil, fmt.Errorf("edge %v has kind %v: %w", i, info.Kind, ErrInconsistentData)
		}
	}

	router, err := routing.NewRouterFromData(g, data.Routes)
	if err != nil {
		return nil, err
	}
	return &TransportRouter{
		catalogue:       cat,
		settings:        data.Settings,
		graph:           g,
		router:          router,
		stop_vertex_ids: data.StopVertexIds,
		vertices_info:   data.VerticesInfo,
		edges_info:      data.EdgesInfo,
	}, nil
}

//*******************************************
// queries
//*******************************************

// Fastest itinerary between two stops. Both ends use the out vertex, so a
// trip starts with waiting at the first stop.
func (self *TransportRouter) FindRoute(from, to catalogue.StopID) Optional[RouteInfo] {
	if !self._IsStop(from) || !self._IsStop(to) {
		return None[RouteInfo]()
	}
	route := self.router.BuildRoute(self.stop_vertex_ids[from].Out, self.stop_vertex_ids[to].Out)
	if !route.HasValue() {
		return None[RouteInfo]()
	}
	return Some(self._BuildRouteInfo(route.Value))
}

func (self *TransportRouter) FindRouteByName(from, to string) Optional[RouteInfo] {
	from_id := self.catalogue.FindStop(from)
	to_id := self.catalogue.FindStop(to)
	if !from_id.HasValue() || !to_id.HasValue() {
		return None[RouteInfo]()
	}
	return self.FindRoute(from_id.Value, to_id.Value)
}

func (self *TransportRouter) _IsStop(stop catalogue.StopID) bool {
	return stop >= 0 && int(stop) < self.stop_vertex_ids.Length()
}

//*******************************************
// getters
//*******************************************

func (self *TransportRouter) GetRoutingSettings() RoutingSettings {
	return self.settings
}
func (self *TransportRouter) GetGraph() *graph.DirectedWeightedGraph {
	return self.graph
}
func (self *TransportRouter) GetRoutesInternalData() routing.RoutesInternalData {
	return self.router.GetRoutesInternalData()
}
func (self *TransportRouter) GetStopVertexIds() Array[StopVertexId] {
	return self.stop_vertex_ids
}
func (self *TransportRouter) GetVerticesInfo() Array[VertexInfo] {
	return self.vertices_info
}
func (self *TransportRouter) GetEdgesInfo() List[EdgeInfo] {
	return self.edges_info
}
