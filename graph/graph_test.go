package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	. "github.com/ttpr0/go-transit/util"
)

func collect(seq func(yield func(EdgeId) bool)) []EdgeId {
	ids := []EdgeId{}
	for id := range seq {
		ids = append(ids, id)
	}
	return ids
}

func TestAddEdgeAssignsIdsInOrder(t *testing.T) {
	g := NewDirectedWeightedGraph(3)

	for i, e := range []Edge{{0, 1, 1.5}, {1, 2, 2}, {0, 2, 4}, {0, 0, 0}} {
		id, err := g.AddEdge(e)
		require.NoError(t, err)
		assert.Equal(t, EdgeId(i), id)
		assert.Equal(t, e, g.GetEdge(id))
	}
	assert.Equal(t, 3, g.VertexCount())
	assert.Equal(t, 4, g.EdgeCount())
}

func TestIncidentEdgesInInsertionOrder(t *testing.T) {
	g := NewDirectedWeightedGraph(4)
	edges := []Edge{{0, 1, 1}, {2, 3, 1}, {0, 3, 1}, {1, 0, 1}, {0, 2, 1}, {2, 0, 1}}
	for _, e := range edges {
		_, err := g.AddEdge(e)
		require.NoError(t, err)
	}

	for v := 0; v < g.VertexCount(); v++ {
		want := []EdgeId{}
		for id, e := range edges {
			if e.From == VertexId(v) {
				want = append(want, EdgeId(id))
			}
		}
		assert.Equal(t, want, collect(g.IncidentEdges(VertexId(v))), "vertex %v", v)
	}
}

func TestIncidentEdgesRestartable(t *testing.T) {
	g := NewDirectedWeightedGraph(2)
	g.AddEdge(Edge{0, 1, 1})
	g.AddEdge(Edge{0, 0, 1})

	seq := g.IncidentEdges(0)
	assert.Equal(t, []EdgeId{0, 1}, collect(seq))
	assert.Equal(t, []EdgeId{0, 1}, collect(seq))

	// early exit
	count := 0
	for range seq {
		count++
		break
	}
	assert.Equal(t, 1, count)
	assert.Empty(t, collect(g.IncidentEdges(1)))
}

func TestAddEdgeOutOfRange(t *testing.T) {
	g := NewDirectedWeightedGraph(2)

	_, err := g.AddEdge(Edge{0, 2, 1})
	assert.ErrorIs(t, err, ErrVertexOutOfRange)
	_, err = g.AddEdge(Edge{-1, 0, 1})
	assert.ErrorIs(t, err, ErrVertexOutOfRange)
	assert.Equal(t, 0, g.EdgeCount())
}

func TestGraphFromData(t *testing.T) {
	g := NewDirectedWeightedGraph(3)
	g.AddEdge(Edge{0, 1, 1})
	g.AddEdge(Edge{1, 2, 2})
	g.AddEdge(Edge{0, 2, 5})

	restored, err := NewDirectedWeightedGraphFromData(g.GetEdges(), g.GetIncidenceLists())
	require.NoError(t, err)
	assert.Equal(t, g.EdgeCount(), restored.EdgeCount())
	assert.Equal(t, g.VertexCount(), restored.VertexCount())
	assert.Equal(t, collect(g.IncidentEdges(0)), collect(restored.IncidentEdges(0)))

	bad_edges := Array[Edge]{{0, 7, 1}}
	_, err = NewDirectedWeightedGraphFromData(bad_edges, NewArray[List[EdgeId]](2))
	assert.ErrorIs(t, err, ErrVertexOutOfRange)

	bad_incidence := Array[List[EdgeId]]{{0, 3}, {}}
	_, err = NewDirectedWeightedGraphFromData(Array[Edge]{{0, 1, 1}}, bad_incidence)
	assert.ErrorIs(t, err, ErrEdgeOutOfRange)

	wrong_owner := Array[List[EdgeId]]{{}, {0}}
	_, err = NewDirectedWeightedGraphFromData(Array[Edge]{{0, 1, 1}}, wrong_owner)
	assert.Error(t, err)
}
