package snapshot

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ttpr0/go-transit/catalogue"
	"github.com/ttpr0/go-transit/geo"
	"github.com/ttpr0/go-transit/graph"
	"github.com/ttpr0/go-transit/render"
	"github.com/ttpr0/go-transit/routing"
	"github.com/ttpr0/go-transit/transit"
	. "github.com/ttpr0/go-transit/util"
	"google.golang.org/protobuf/encoding/protowire"
)

func _BuildSnapshot(t *testing.T, settings transit.RoutingSettings) Snapshot {
	cat := catalogue.NewTransportCatalogue()
	stops := []catalogue.Stop{
		{Name: "Biryulyovo Zapadnoye", Position: geo.Coord{Lat: 55.574371, Lng: 37.6517}},
		{Name: "Biryusinka", Position: geo.Coord{Lat: 55.581065, Lng: 37.64839}},
		{Name: "Universam", Position: geo.Coord{Lat: 55.587655, Lng: 37.645687}},
		{Name: "Pokrovskaya", Position: geo.Coord{Lat: 55.603601, Lng: 37.635517}},
		{Name: "Island", Position: geo.Coord{Lat: 55.7, Lng: 37.7}},
	}
	for _, stop := range stops {
		_, err := cat.AddStop(stop)
		require.NoError(t, err)
	}
	require.NoError(t, cat.SetDistance(0, 1, 1800))
	require.NoError(t, cat.SetDistance(1, 2, 750))
	require.NoError(t, cat.SetDistance(2, 3, 2400))
	require.NoError(t, cat.SetDistance(3, 2, 2500))
	_, err := cat.AddBus(catalogue.MakeBus("297", List[catalogue.StopID]{0, 1, 2, 0}, true))
	require.NoError(t, err)
	_, err = cat.AddBus(catalogue.MakeBus("635", List[catalogue.StopID]{1, 2, 3}, false))
	require.NoError(t, err)

	router, err := transit.NewTransportRouter(cat, settings, transit.Options{Workers: 2})
	require.NoError(t, err)

	return Snapshot{
		Meta:      NewMeta(),
		Catalogue: cat,
		RenderSettings: render.RenderSettings{
			Width:           600,
			Height:          400,
			Padding:         50,
			LineWidth:       14,
			StopRadius:      5,
			BusLabelOffset:  render.Point{X: 7, Y: 15},
			StopLabelOffset: render.Point{X: 7, Y: -3},
			UnderlayerColor: render.RGBAColor(255, 255, 255, 0.85),
			UnderlayerWidth: 3,
			ColorPalette:    List[render.Color]{render.NamedColor("green"), render.RGBColor(255, 160, 0), render.NoneColor()},
		},
		MapObjects: render.SelectMapObjects(cat),
		Router:     router,
	}
}

func TestRoundTrip(t *testing.T) {
	original := _BuildSnapshot(t, transit.RoutingSettings{BusWaitTime: 5, BusVelocity: 60})
	data, err := Serialize(original)
	require.NoError(t, err)
	restored, err := Deserialize(data)
	require.NoError(t, err)

	assert.Equal(t, original.Meta.BuildID, restored.Meta.BuildID)
	assert.True(t, original.Meta.CreatedAt.Equal(restored.Meta.CreatedAt))
	assert.Equal(t, original.RenderSettings, restored.RenderSettings)
	assert.Equal(t, original.MapObjects, restored.MapObjects)
	assert.Equal(t, transit.RoutingSettings{BusWaitTime: 5, BusVelocity: 60}, restored.Router.GetRoutingSettings())

	cat := restored.Catalogue
	require.Equal(t, original.Catalogue.StopCount(), cat.StopCount())
	require.Equal(t, original.Catalogue.BusCount(), cat.BusCount())
	for s := 0; s < cat.StopCount(); s++ {
		assert.Equal(t, original.Catalogue.GetStop(catalogue.StopID(s)), cat.GetStop(catalogue.StopID(s)))
	}
	for b := 0; b < cat.BusCount(); b++ {
		assert.Equal(t, original.Catalogue.GetBus(catalogue.BusID(b)), cat.GetBus(catalogue.BusID(b)))
	}
	assert.Equal(t, original.Catalogue.GetDistances(), cat.GetDistances())

	assert.Equal(t, original.Router.GetGraph().GetEdges(), restored.Router.GetGraph().GetEdges())
	assert.Equal(t, original.Router.GetRoutesInternalData(), restored.Router.GetRoutesInternalData())
	for s := 0; s < cat.StopCount(); s++ {
		for d := 0; d < cat.StopCount(); d++ {
			from, to := catalogue.StopID(s), catalogue.StopID(d)
			assert.Equal(t, original.Router.FindRoute(from, to), restored.Router.FindRoute(from, to), "%v -> %v", from, to)
		}
	}
}

func TestRoundTripIsStable(t *testing.T) {
	original := _BuildSnapshot(t, transit.RoutingSettings{BusWaitTime: 2, BusVelocity: 30})
	data, err := Serialize(original)
	require.NoError(t, err)
	restored, err := Deserialize(data)
	require.NoError(t, err)
	again, err := Serialize(restored)
	require.NoError(t, err)
	assert.Equal(t, data, again)
}

func TestFileRoundTrip(t *testing.T) {
	original := _BuildSnapshot(t, transit.RoutingSettings{BusWaitTime: 6, BusVelocity: 40})
	file := filepath.Join(t.TempDir(), "transport.db")
	require.NoError(t, WriteFile(file, original))

	restored, err := ReadFile(file)
	require.NoError(t, err)
	route := restored.Router.FindRouteByName("Biryulyovo Zapadnoye", "Pokrovskaya")
	assert.Equal(t, original.Router.FindRouteByName("Biryulyovo Zapadnoye", "Pokrovskaya"), route)
	assert.True(t, route.HasValue())

	_, err = ReadFile(filepath.Join(t.TempDir(), "missing.db"))
	assert.Error(t, err)
}

func TestTruncatedSnapshot(t *testing.T) {
	data, err := Serialize(_BuildSnapshot(t, transit.RoutingSettings{BusWaitTime: 6, BusVelocity: 40}))
	require.NoError(t, err)

	for _, size := range []int{0, 1, 7, len(data) / 3, len(data) / 2, len(data) - 1} {
		_, err := Deserialize(data[:size])
		assert.ErrorIs(t, err, ErrMalformedSnapshot, "size %v", size)
	}
}

func TestGarbageSnapshot(t *testing.T) {
	_, err := Deserialize([]byte{0xff, 0xff, 0xff})
	assert.ErrorIs(t, err, ErrMalformedSnapshot)

	// stop name with a varint wire type
	data := protowire.AppendTag(nil, SNAPSHOT_STOPS, protowire.BytesType)
	data = protowire.AppendBytes(data, protowire.AppendVarint(protowire.AppendTag(nil, STOP_NAME, protowire.VarintType), 3))
	_, err = Deserialize(data)
	assert.ErrorIs(t, err, ErrMalformedSnapshot)
}

func TestInconsistentSnapshot(t *testing.T) {
	original := _BuildSnapshot(t, transit.RoutingSettings{BusWaitTime: 6, BusVelocity: 40})
	data, err := Serialize(original)
	require.NoError(t, err)

	// a distance to a stop that does not exist
	distance := _AppendString(nil, DISTANCE_FROM, "Universam")
	distance = _AppendString(distance, DISTANCE_TO, "Nowhere")
	distance = _AppendInt(distance, DISTANCE_METERS, 10)
	broken := _AppendMessage(append([]byte{}, data...), SNAPSHOT_DISTANCES, distance)
	_, err = Deserialize(broken)
	assert.ErrorIs(t, err, ErrInconsistentSnapshot)

	// a second stop with an existing name
	broken = _AppendMessage(append([]byte{}, data...), SNAPSHOT_STOPS, _EncodeStop(catalogue.Stop{Name: "Universam"}))
	_, err = Deserialize(broken)
	assert.ErrorIs(t, err, ErrInconsistentSnapshot)

	// an additional stop the router knows nothing about
	broken = _AppendMessage(append([]byte{}, data...), SNAPSHOT_STOPS, _EncodeStop(catalogue.Stop{Name: "New"}))
	_, err = Deserialize(broken)
	assert.ErrorIs(t, err, ErrInconsistentSnapshot)
}

func _DecodeForRestore(t *testing.T) (*catalogue.TransportCatalogue, _RawRouter) {
	data, err := Serialize(_BuildSnapshot(t, transit.RoutingSettings{BusWaitTime: 6, BusVelocity: 40}))
	require.NoError(t, err)
	raw, err := _DecodeSnapshot(data)
	require.NoError(t, err)
	cat, err := _RestoreCatalogue(raw)
	require.NoError(t, err)
	require.True(t, raw.router.HasValue())
	return cat, raw.router.Value
}

func TestRestoreRouterBrokenRoutes(t *testing.T) {
	cat, raw := _DecodeForRestore(t)
	_, err := _RestoreRouter(cat, raw)
	require.NoError(t, err)

	// drop the previous edge of the first non-empty route
	broken := false
	for s, row := range raw.routes {
		for d, cell := range row {
			if s != d && cell.HasValue() && !broken {
				row[d] = Some(routing.RouteInternalData{Weight: cell.Value.Weight})
				broken = true
			}
		}
	}
	require.True(t, broken)
	_, err = _RestoreRouter(cat, raw)
	assert.ErrorIs(t, err, ErrMalformedSnapshot)
	assert.ErrorIs(t, err, routing.ErrBrokenPath)
	assert.NotErrorIs(t, err, ErrInconsistentSnapshot)
}

func TestRestoreRouterBrokenGraph(t *testing.T) {
	cat, raw := _DecodeForRestore(t)
	raw.incidence[0].Add(graph.EdgeId(raw.edges.Length() + 10))
	_, err := _RestoreRouter(cat, raw)
	assert.ErrorIs(t, err, ErrMalformedSnapshot)
	assert.ErrorIs(t, err, graph.ErrEdgeOutOfRange)

	cat, raw = _DecodeForRestore(t)
	raw.routes = raw.routes[:raw.routes.Length()-1]
	_, err = _RestoreRouter(cat, raw)
	assert.ErrorIs(t, err, ErrMalformedSnapshot)
}

func TestRestoreRouterMismatchedEdgeInfo(t *testing.T) {
	cat, raw := _DecodeForRestore(t)
	moved := false
	for i, info := range raw.edges_info {
		if info.kind == transit.BUS_EDGE && info.start == 0 && info.finish == 1 {
			raw.edges_info[i].finish = 2
			moved = true
			break
		}
	}
	require.True(t, moved)
	_, err := _RestoreRouter(cat, raw)
	assert.ErrorIs(t, err, ErrInconsistentSnapshot)
	assert.ErrorIs(t, err, transit.ErrInconsistentData)
}

func TestSerializeIncomplete(t *testing.T) {
	_, err := Serialize(Snapshot{})
	assert.Error(t, err)
}
