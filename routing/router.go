package routing

import (
	"errors"
	"fmt"
	"math"
	"runtime"

	"github.com/ttpr0/go-transit/graph"
	. "github.com/ttpr0/go-transit/util"
	"golang.org/x/sync/errgroup"
)

var ErrNegativeWeight = errors.New("negative edge weight")
var ErrTableShape = errors.New("routes table does not match graph")
var ErrBrokenPath = errors.New("routes table contains a broken path")

//*******************************************
// routes table
//*******************************************

type RouteInternalData struct {
	Weight   float64
	PrevEdge Optional[graph.EdgeId]
}

// Dense table indexed by [source][target]. An empty cell means the target
// is unreachable from the source.
type RoutesInternalData = Array[Array[Optional[RouteInternalData]]]

type RouteInfo struct {
	Weight float64
	Edges  List[graph.EdgeId]
}

//*******************************************
// router
//*******************************************

// All-pairs shortest path index over a fixed graph. The router keeps its
// own copy of everything it needs, queries never touch the graph.
type Router struct {
	edge_from Array[graph.VertexId]
	routes    RoutesInternalData
}

// Runs one dijkstra per source vertex. Sources are independent, workers
// bounds how many are computed at once (<= 0 uses GOMAXPROCS).
func NewRouter(g graph.IGraph, workers int) (*Router, error) {
	edge_from := NewArray[graph.VertexId](g.EdgeCount())
	for i := 0; i < g.EdgeCount(); i++ {
		edge := g.GetEdge(graph.EdgeId(i))
		if edge.Weight < 0 || math.IsNaN(edge.Weight) {
			return nil, fmt.Errorf("edge %v weight=%v: %w", i, edge.Weight, ErrNegativeWeight)
		}
		edge_from[i] = edge.From
	}

	vertex_count := g.VertexCount()
	routes := NewArray[Array[Optional[RouteInternalData]]](vertex_count)
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers == 1 {
		for s := 0; s < vertex_count; s++ {
			routes[s] = _CalcSourceRoutes(g, graph.VertexId(s))
		}
	} else {
		var group errgroup.Group
		group.SetLimit(workers)
		for s := 0; s < vertex_count; s++ {
			source := graph.VertexId(s)
			group.Go(func() error {
				routes[source] = _CalcSourceRoutes(g, source)
				return nil
			})
		}
		group.Wait()
	}

	return &Router{
		edge_from: edge_from,
		routes:    routes,
	}, nil
}

// Restores a router from a previously computed table without recomputing it.
// Every reachable cell must lead back to its source through reachable cells
// whose weights add up along the stored edges.
func NewRouterFromData(g graph.IGraph, routes RoutesInternalData) (*Router, error) {
	vertex_count := g.VertexCount()
	if routes.Length() != vertex_count {
		return nil, fmt.Errorf("%v source rows for %v vertices: %w", routes.Length(), vertex_count, ErrTableShape)
	}
	edge_from := NewArray[graph.VertexId](g.EdgeCount())
	for i := 0; i < g.EdgeCount(); i++ {
		edge_from[i] = g.GetEdge(graph.EdgeId(i)).From
	}
	for s, row := range routes {
		if row.Length() != vertex_count {
			return nil, fmt.Errorf("source %v has %v targets for %v vertices: %w", s, row.Length(), vertex_count, ErrTableShape)
		}
		if err := _CheckSourceRow(g, graph.VertexId(s), row); err != nil {
			return nil, err
		}
	}
	return &Router{
		edge_from: edge_from,
		routes:    routes,
	}, nil
}

func _CheckSourceRow(g graph.IGraph, source graph.VertexId, row Array[Optional[RouteInternalData]]) error {
	start := row[source]
	if !start.HasValue() || start.Value.Weight != 0 || start.Value.PrevEdge.HasValue() {
		return fmt.Errorf("route %v -> %v is not an empty route: %w", source, source, ErrBrokenPath)
	}
	for t, cell := range row {
		if t == int(source) || !cell.HasValue() {
			continue
		}
		if !cell.Value.PrevEdge.HasValue() {
			return fmt.Errorf("route %v -> %v has no previous edge: %w", source, t, ErrBrokenPath)
		}
		prev := cell.Value.PrevEdge.Value
		if prev < 0 || int(prev) >= g.EdgeCount() {
			return fmt.Errorf("route %v -> %v references edge %v: %w", source, t, prev, ErrTableShape)
		}
		edge := g.GetEdge(prev)
		if edge.To != graph.VertexId(t) {
			return fmt.Errorf("route %v -> %v ends with edge %v not leading to target: %w", source, t, prev, ErrTableShape)
		}
		before := row[edge.From]
		if !before.HasValue() {
			return fmt.Errorf("route %v -> %v passes unreachable vertex %v: %w", source, t, edge.From, ErrBrokenPath)
		}
		if before.Value.Weight+edge.Weight != cell.Value.Weight {
			return fmt.Errorf("route %v -> %v weight %v does not match its path: %w", source, t, cell.Value.Weight, ErrBrokenPath)
		}
	}

	// every chain of previous edges has to end at the source
	const (
		UNKNOWN = iota
		ON_CHAIN
		REACHES_SOURCE
	)
	state := make([]byte, row.Length())
	state[source] = REACHES_SOURCE
	chain := NewList[graph.VertexId](4)
	for t := range row {
		if !row[t].HasValue() {
			continue
		}
		curr := graph.VertexId(t)
		for state[curr] == UNKNOWN {
			state[curr] = ON_CHAIN
			chain.Add(curr)
			curr = g.GetEdge(row[curr].Value.PrevEdge.Value).From
		}
		if state[curr] == ON_CHAIN {
			return fmt.Errorf("route %v -> %v runs in a cycle: %w", source, t, ErrBrokenPath)
		}
		for _, v := range chain {
			state[v] = REACHES_SOURCE
		}
		chain = chain[:0]
	}
	return nil
}

func (self *Router) VertexCount() int {
	return self.routes.Length()
}

func (self *Router) BuildRoute(from, to graph.VertexId) Optional[RouteInfo] {
	if !self._IsVertex(from) || !self._IsVertex(to) {
		return None[RouteInfo]()
	}
	cell := self.routes[from][to]
	if !cell.HasValue() {
		return None[RouteInfo]()
	}
	edges := NewList[graph.EdgeId](4)
	prev := cell.Value.PrevEdge
	for prev.HasValue() {
		if edges.Length() > self.routes.Length() {
			return None[RouteInfo]()
		}
		edges.Add(prev.Value)
		before := self.routes[from][self.edge_from[prev.Value]]
		if !before.HasValue() {
			return None[RouteInfo]()
		}
		prev = before.Value.PrevEdge
	}
	for i, j := 0, edges.Length()-1; i < j; i, j = i+1, j-1 {
		edges[i], edges[j] = edges[j], edges[i]
	}
	return Some(RouteInfo{
		Weight: cell.Value.Weight,
		Edges:  edges,
	})
}

// The table must not be modified.
func (self *Router) GetRoutesInternalData() RoutesInternalData {
	return self.routes
}

func (self *Router) _IsVertex(vertex graph.VertexId) bool {
	return vertex >= 0 && int(vertex) < self.routes.Length()
}

//*******************************************
// single source dijkstra
//*******************************************

type flag_sp struct {
	path_length float64
	prev_edge   graph.EdgeId
	reached     bool
	visited     bool
}

// Equal-weight alternatives keep the path found first: a cell is only
// replaced on strict improvement, edges are relaxed in incidence order and
// heap ties pop in insertion order.
func _CalcSourceRoutes(g graph.IGraph, source graph.VertexId) Array[Optional[RouteInternalData]] {
	flags := make([]flag_sp, g.VertexCount())
	flags[source] = flag_sp{path_length: 0, prev_edge: -1, reached: true}

	heap := NewPriorityQueue[graph.VertexId, float64](100)
	heap.Enqueue(source, 0)

	for {
		curr_id, ok := heap.Dequeue()
		if !ok {
			break
		}
		curr_flag := flags[curr_id]
		if curr_flag.visited {
			continue
		}
		curr_flag.visited = true
		flags[curr_id] = curr_flag
		for edge_id := range g.IncidentEdges(curr_id) {
			edge := g.GetEdge(edge_id)
			other_id := edge.To
			other_flag := flags[other_id]
			if other_flag.visited {
				continue
			}
			new_length := curr_flag.path_length + edge.Weight
			if !other_flag.reached || new_length < other_flag.path_length {
				other_flag.path_length = new_length
				other_flag.prev_edge = edge_id
				other_flag.reached = true
				flags[other_id] = other_flag
				heap.Enqueue(other_id, new_length)
			}
		}
	}

	row := NewArray[Optional[RouteInternalData]](len(flags))
	for i, flag := range flags {
		if !flag.reached {
			continue
		}
		prev := None[graph.EdgeId]()
		if flag.prev_edge >= 0 {
			prev = Some(flag.prev_edge)
		}
		row[i] = Some(RouteInternalData{Weight: flag.path_length, PrevEdge: prev})
	}
	return row
}
