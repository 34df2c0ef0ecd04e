package transit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ttpr0/go-transit/catalogue"
	"github.com/ttpr0/go-transit/geo"
	. "github.com/ttpr0/go-transit/util"
)

// A - B - C driven back and forth by bus "1", D has no buses.
func _BuildCatalogue(t *testing.T) *catalogue.TransportCatalogue {
	cat := catalogue.NewTransportCatalogue()
	for i, name := range []string{"A", "B", "C", "D"} {
		_, err := cat.AddStop(catalogue.Stop{Name: name, Position: geo.Coord{Lat: 55.0 + 0.01*float64(i), Lng: 37.0}})
		require.NoError(t, err)
	}
	require.NoError(t, cat.SetDistance(0, 1, 1200))
	require.NoError(t, cat.SetDistance(1, 2, 1800))
	_, err := cat.AddBus(catalogue.MakeBus("1", List[catalogue.StopID]{0, 1, 2}, false))
	require.NoError(t, err)
	return cat
}

var _Settings = RoutingSettings{BusWaitTime: 6, BusVelocity: 40}

func TestTransportRouterGraph(t *testing.T) {
	cat := _BuildCatalogue(t)
	router, err := NewTransportRouter(cat, _Settings, Options{Workers: 1})
	require.NoError(t, err)

	g := router.GetGraph()
	// 4 wait edges + 5 * 4 / 2 ride edges for A B C B A
	assert.Equal(t, 8, g.VertexCount())
	assert.Equal(t, 14, g.EdgeCount())
	assert.Equal(t, g.EdgeCount(), router.GetEdgesInfo().Length())

	for s := 0; s < cat.StopCount(); s++ {
		ids := router.GetStopVertexIds()[s]
		assert.Equal(t, StopVertexId{In: int32(2 * s), Out: int32(2*s + 1)}, ids)
		assert.Equal(t, catalogue.StopID(s), router.GetVerticesInfo()[ids.In].Stop)
		assert.Equal(t, catalogue.StopID(s), router.GetVerticesInfo()[ids.Out].Stop)

		wait := g.GetEdge(int32(s))
		assert.Equal(t, ids.Out, wait.From)
		assert.Equal(t, ids.In, wait.To)
		assert.Equal(t, 6.0, wait.Weight)
		assert.Equal(t, WAIT_EDGE, router.GetEdgesInfo()[s].Kind)
	}

	assert.Equal(t, BusEdgeInfo(0, 0, 1), router.GetEdgesInfo()[4])
	assert.Equal(t, BusEdgeInfo(0, 0, 4), router.GetEdgesInfo()[7])
	assert.Equal(t, BusEdgeInfo(0, 3, 4), router.GetEdgesInfo()[13])
	ride := g.GetEdge(5)
	assert.Equal(t, int32(0), ride.From)
	assert.Equal(t, int32(5), ride.To)
	assert.InDelta(t, 4.5, ride.Weight, 1e-9)
}

func TestFindRoute(t *testing.T) {
	cat := _BuildCatalogue(t)
	router, err := NewTransportRouter(cat, _Settings, Options{Workers: 1})
	require.NoError(t, err)

	route := router.FindRoute(0, 2)
	require.True(t, route.HasValue())
	assert.InDelta(t, 10.5, route.Value.TotalTime, 1e-9)
	require.Equal(t, 2, route.Value.Items.Length())

	wait, ok := route.Value.Items[0].(WaitItem)
	require.True(t, ok)
	assert.Equal(t, "A", wait.StopName)
	assert.Equal(t, 6.0, wait.Time)

	bus, ok := route.Value.Items[1].(BusItem)
	require.True(t, ok)
	assert.Equal(t, "1", bus.BusName)
	assert.InDelta(t, 4.5, bus.Time, 1e-9)
	assert.Equal(t, 0, bus.StartStopIdx)
	assert.Equal(t, 2, bus.FinishStopIdx)
	assert.Equal(t, 2, bus.SpanCount)

	total := 0.0
	for _, item := range route.Value.Items {
		total += item.GetTime()
	}
	assert.InDelta(t, route.Value.TotalTime, total, 1e-9)
}

func TestFindRouteBackwardsUsesReverseDistances(t *testing.T) {
	cat := _BuildCatalogue(t)
	router, err := NewTransportRouter(cat, _Settings, Options{Workers: 1})
	require.NoError(t, err)

	route := router.FindRouteByName("C", "A")
	require.True(t, route.HasValue())
	assert.InDelta(t, 10.5, route.Value.TotalTime, 1e-9)
	require.Equal(t, 2, route.Value.Items.Length())
	bus := route.Value.Items[1].(BusItem)
	assert.Equal(t, 2, bus.StartStopIdx)
	assert.Equal(t, 4, bus.FinishStopIdx)
}

func TestFindRouteSameStop(t *testing.T) {
	cat := _BuildCatalogue(t)
	router, err := NewTransportRouter(cat, _Settings, Options{Workers: 1})
	require.NoError(t, err)

	for s := 0; s < cat.StopCount(); s++ {
		route := router.FindRoute(catalogue.StopID(s), catalogue.StopID(s))
		require.True(t, route.HasValue())
		assert.Equal(t, 0.0, route.Value.TotalTime)
		assert.Empty(t, route.Value.Items)
	}
}

func TestFindRouteNotFound(t *testing.T) {
	cat := _BuildCatalogue(t)
	router, err := NewTransportRouter(cat, _Settings, Options{Workers: 1})
	require.NoError(t, err)

	assert.False(t, router.FindRoute(0, 3).HasValue())
	assert.False(t, router.FindRoute(3, 1).HasValue())
	assert.False(t, router.FindRoute(0, 17).HasValue())
	assert.False(t, router.FindRouteByName("A", "Nowhere").HasValue())
}

func TestTransferBetweenBuses(t *testing.T) {
	cat := catalogue.NewTransportCatalogue()
	for _, name := range []string{"A", "B", "C"} {
		_, err := cat.AddStop(catalogue.Stop{Name: name})
		require.NoError(t, err)
	}
	require.NoError(t, cat.SetDistance(0, 1, 1000))
	require.NoError(t, cat.SetDistance(1, 2, 2000))
	_, err := cat.AddBus(catalogue.MakeBus("x", List[catalogue.StopID]{0, 1}, false))
	require.NoError(t, err)
	_, err = cat.AddBus(catalogue.MakeBus("y", List[catalogue.StopID]{1, 2}, false))
	require.NoError(t, err)

	router, err := NewTransportRouter(cat, RoutingSettings{BusWaitTime: 2, BusVelocity: 60}, Options{Workers: 1})
	require.NoError(t, err)
	route := router.FindRoute(0, 2)
	require.True(t, route.HasValue())
	// wait 2 + ride 1 + wait 2 + ride 2
	assert.InDelta(t, 7.0, route.Value.TotalTime, 1e-9)
	require.Equal(t, 4, route.Value.Items.Length())
	assert.Equal(t, WaitItem{StopName: "A", Time: 2}, route.Value.Items[0])
	assert.Equal(t, "x", route.Value.Items[1].(BusItem).BusName)
	assert.Equal(t, WaitItem{StopName: "B", Time: 2}, route.Value.Items[2])
	assert.Equal(t, "y", route.Value.Items[3].(BusItem).BusName)
}

func TestInvalidSettings(t *testing.T) {
	cat := _BuildCatalogue(t)
	_, err := NewTransportRouter(cat, RoutingSettings{BusWaitTime: 6, BusVelocity: 0}, Options{})
	assert.ErrorIs(t, err, ErrInvalidSettings)
	_, err = NewTransportRouter(cat, RoutingSettings{BusWaitTime: -1, BusVelocity: 30}, Options{})
	assert.ErrorIs(t, err, ErrInvalidSettings)
}

func TestBuildIsDeterministic(t *testing.T) {
	first, err := NewTransportRouter(_BuildCatalogue(t), _Settings, Options{Workers: 1})
	require.NoError(t, err)
	second, err := NewTransportRouter(_BuildCatalogue(t), _Settings, Options{Workers: 4})
	require.NoError(t, err)

	assert.Equal(t, first.GetGraph().GetEdges(), second.GetGraph().GetEdges())
	assert.Equal(t, first.GetEdgesInfo(), second.GetEdgesInfo())
	assert.Equal(t, first.GetRoutesInternalData(), second.GetRoutesInternalData())
}

func TestRestoreTransportRouter(t *testing.T) {
	cat := _BuildCatalogue(t)
	router, err := NewTransportRouter(cat, _Settings, Options{Workers: 1})
	require.NoError(t, err)

	data := TransportRouterData{
		Settings:      router.GetRoutingSettings(),
		Graph:         router.GetGraph(),
		Routes:        router.GetRoutesInternalData(),
		StopVertexIds: router.GetStopVertexIds(),
		VerticesInfo:  router.GetVerticesInfo(),
		EdgesInfo:     router.GetEdgesInfo(),
	}
	restored, err := RestoreTransportRouter(cat, data)
	require.NoError(t, err)
	assert.Equal(t, _Settings, restored.GetRoutingSettings())
	for s := 0; s < cat.StopCount(); s++ {
		for d := 0; d < cat.StopCount(); d++ {
			from, to := catalogue.StopID(s), catalogue.StopID(d)
			assert.Equal(t, router.FindRoute(from, to), restored.FindRoute(from, to))
		}
	}

	broken := data
	broken.EdgesInfo = data.EdgesInfo[:3]
	_, err = RestoreTransportRouter(cat, broken)
	assert.ErrorIs(t, err, ErrInconsistentData)

	broken = data
	broken.EdgesInfo = append(List[EdgeInfo]{}, data.EdgesInfo...)
	broken.EdgesInfo[5] = BusEdgeInfo(3, 0, 1)
	_, err = RestoreTransportRouter(cat, broken)
	assert.ErrorIs(t, err, ErrInconsistentData)

	broken = data
	broken.Graph = nil
	_, err = RestoreTransportRouter(cat, broken)
	assert.ErrorIs(t, err, ErrInconsistentData)
}

func TestRestoreTransportRouterEdgeEndpoints(t *testing.T) {
	cat := _BuildCatalogue(t)
	router, err := NewTransportRouter(cat, _Settings, Options{Workers: 1})
	require.NoError(t, err)
	data := TransportRouterData{
		Settings:      router.GetRoutingSettings(),
		Graph:         router.GetGraph(),
		Routes:        router.GetRoutesInternalData(),
		StopVertexIds: router.GetStopVertexIds(),
		VerticesInfo:  router.GetVerticesInfo(),
		EdgesInfo:     router.GetEdgesInfo(),
	}
	require.Equal(t, WaitEdgeInfo(), data.EdgesInfo[0])
	require.Equal(t, BusEdgeInfo(0, 0, 1), data.EdgesInfo[4])

	// a wait edge and a ride edge swapped
	broken := data
	broken.EdgesInfo = append(List[EdgeInfo]{}, data.EdgesInfo...)
	broken.EdgesInfo[0], broken.EdgesInfo[4] = broken.EdgesInfo[4], broken.EdgesInfo[0]
	_, err = RestoreTransportRouter(cat, broken)
	assert.ErrorIs(t, err, ErrInconsistentData)

	// A -> B ride claimed to end at C
	broken = data
	broken.EdgesInfo = append(List[EdgeInfo]{}, data.EdgesInfo...)
	broken.EdgesInfo[4] = BusEdgeInfo(0, 0, 2)
	_, err = RestoreTransportRouter(cat, broken)
	assert.ErrorIs(t, err, ErrInconsistentData)

	// the ride back from B to A
	broken = data
	broken.EdgesInfo = append(List[EdgeInfo]{}, data.EdgesInfo...)
	broken.EdgesInfo[4] = BusEdgeInfo(0, 1, 4)
	_, err = RestoreTransportRouter(cat, broken)
	assert.ErrorIs(t, err, ErrInconsistentData)

	broken = data
	broken.EdgesInfo = append(List[EdgeInfo]{}, data.EdgesInfo...)
	broken.EdgesInfo[1] = EdgeInfo{Kind: EdgeKind(7), Bus: -1}
	_, err = RestoreTransportRouter(cat, broken)
	assert.ErrorIs(t, err, ErrInconsistentData)

	_, err = RestoreTransportRouter(cat, data)
	assert.NoError(t, err)
}
