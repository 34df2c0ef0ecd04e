package graph

import (
	"errors"
	"fmt"

	. "github.com/ttpr0/go-transit/util"
)

var ErrVertexOutOfRange = errors.New("vertex id out of range")
var ErrEdgeOutOfRange = errors.New("edge id out of range")

//*******************************************
// graph interface
//******************************************

type IGraph interface {
	VertexCount() int
	EdgeCount() int
	GetEdge(edge EdgeId) Edge
	// Iterates the ids of all edges leaving vertex in insertion order.
	IncidentEdges(vertex VertexId) func(yield func(EdgeId) bool)
}

//*******************************************
// directed weighted graph
//******************************************

var _ IGraph = &DirectedWeightedGraph{}

// Graph with a fixed vertex count. Edges can only be appended, ids are
// assigned in insertion order.
type DirectedWeightedGraph struct {
	edges     List[Edge]
	incidence Array[List[EdgeId]]
}

func NewDirectedWeightedGraph(vertex_count int) *DirectedWeightedGraph {
	incidence := NewArray[List[EdgeId]](vertex_count)
	for i := 0; i < vertex_count; i++ {
		incidence[i] = NewList[EdgeId](4)
	}
	return &DirectedWeightedGraph{
		edges:     NewList[Edge](vertex_count),
		incidence: incidence,
	}
}

// Rebuilds a graph from its edges and incidence lists. Every id is checked.
func NewDirectedWeightedGraphFromData(edges Array[Edge], incidence Array[List[EdgeId]]) (*DirectedWeightedGraph, error) {
	vertex_count := incidence.Length()
	for i, edge := range edges {
		if !_IsVertex(edge.From, vertex_count) || !_IsVertex(edge.To, vertex_count) {
			return nil, fmt.Errorf("edge %v (%v -> %v): %w", i, edge.From, edge.To, ErrVertexOutOfRange)
		}
	}
	for v, list := range incidence {
		for _, edge_id := range list {
			if edge_id < 0 || int(edge_id) >= edges.Length() {
				return nil, fmt.Errorf("incidence list of vertex %v references edge %v: %w", v, edge_id, ErrEdgeOutOfRange)
			}
			if edges[edge_id].From != VertexId(v) {
				return nil, fmt.Errorf("edge %v listed at vertex %v but leaves vertex %v", edge_id, v, edges[edge_id].From)
			}
		}
	}
	return &DirectedWeightedGraph{
		edges:     List[Edge](edges),
		incidence: incidence,
	}, nil
}

func (self *DirectedWeightedGraph) AddEdge(edge Edge) (EdgeId, error) {
	vertex_count := self.VertexCount()
	if !_IsVertex(edge.From, vertex_count) || !_IsVertex(edge.To, vertex_count) {
		return -1, fmt.Errorf("add edge %v -> %v: %w", edge.From, edge.To, ErrVertexOutOfRange)
	}
	self.edges.Add(edge)
	id := EdgeId(self.edges.Length() - 1)
	self.incidence[edge.From].Add(id)
	return id, nil
}

func (self *DirectedWeightedGraph) VertexCount() int {
	return self.incidence.Length()
}
func (self *DirectedWeightedGraph) EdgeCount() int {
	return self.edges.Length()
}
func (self *DirectedWeightedGraph) IsVertex(vertex VertexId) bool {
	return _IsVertex(vertex, self.VertexCount())
}
func (self *DirectedWeightedGraph) GetEdge(edge EdgeId) Edge {
	return self.edges[edge]
}
func (self *DirectedWeightedGraph) IncidentEdges(vertex VertexId) func(yield func(EdgeId) bool) {
	list := self.incidence[vertex]
	return func(yield func(EdgeId) bool) {
		for _, edge_id := range list {
			if !yield(edge_id) {
				return
			}
		}
	}
}

// Edges in id order. The returned array must not be modified.
func (self *DirectedWeightedGraph) GetEdges() Array[Edge] {
	return Array[Edge](self.edges)
}

// Incidence lists indexed by vertex. The returned array must not be modified.
func (self *DirectedWeightedGraph) GetIncidenceLists() Array[List[EdgeId]] {
	return self.incidence
}

func _IsVertex(vertex VertexId, vertex_count int) bool {
	return vertex >= 0 && int(vertex) < vertex_count
}
