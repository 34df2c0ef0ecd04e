package snapshot

import (
	"errors"
	"math"

	"github.com/ttpr0/go-transit/catalogue"
	"github.com/ttpr0/go-transit/graph"
	"github.com/ttpr0/go-transit/render"
	"github.com/ttpr0/go-transit/transit"
	"google.golang.org/protobuf/encoding/protowire"
)

//*******************************************
// wire helpers
//*******************************************

func _AppendMessage(b []byte, num protowire.Number, msg []byte) []byte {
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, msg)
}

func _AppendString(b []byte, num protowire.Number, value string) []byte {
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendString(b, value)
}

func _AppendInt(b []byte, num protowire.Number, value int64) []byte {
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, uint64(value))
}

func _AppendBool(b []byte, num protowire.Number, value bool) []byte {
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, protowire.EncodeBool(value))
}

func _AppendDouble(b []byte, num protowire.Number, value float64) []byte {
	b = protowire.AppendTag(b, num, protowire.Fixed64Type)
	return protowire.AppendFixed64(b, math.Float64bits(value))
}

//*******************************************
// serialize
//*******************************************

// Encodes the snapshot in protobuf wire format. Stops, buses and the
// router data are referenced by name, ids are reassigned on load.
func Serialize(snapshot Snapshot) ([]byte, error) {
	if snapshot.Catalogue == nil || snapshot.Router == nil {
		return nil, errors.New("snapshot needs a catalogue and a router")
	}
	cat := snapshot.Catalogue

	b := make([]byte, 0, 4096)
	for s := 0; s < cat.StopCount(); s++ {
		b = _AppendMessage(b, SNAPSHOT_STOPS, _EncodeStop(cat.GetStop(catalogue.StopID(s))))
	}
	for i := 0; i < cat.BusCount(); i++ {
		b = _AppendMessage(b, SNAPSHOT_BUSES, _EncodeBus(cat, cat.GetBus(catalogue.BusID(i))))
	}
	for _, distance := range cat.GetDistances() {
		msg := _AppendString(nil, DISTANCE_FROM, cat.GetStop(distance.From).Name)
		msg = _AppendString(msg, DISTANCE_TO, cat.GetStop(distance.To).Name)
		msg = _AppendInt(msg, DISTANCE_METERS, int64(distance.Meters))
		b = _AppendMessage(b, SNAPSHOT_DISTANCES, msg)
	}
	b = _AppendMessage(b, SNAPSHOT_RENDER_SETTINGS, _EncodeRenderSettings(snapshot.RenderSettings))
	b = _AppendMessage(b, SNAPSHOT_ROUTER, _EncodeRouter(cat, snapshot.Router))
	for _, stop := range snapshot.MapObjects.Stops {
		b = _AppendString(b, SNAPSHOT_MAP_STOPS, cat.GetStop(stop).Name)
	}
	for _, bus := range snapshot.MapObjects.Buses {
		b = _AppendString(b, SNAPSHOT_MAP_BUSES, cat.GetBus(bus).Name)
	}
	b = _AppendMessage(b, SNAPSHOT_META, _EncodeMeta(snapshot.Meta))
	return b, nil
}

func _EncodeStop(stop catalogue.Stop) []byte {
	msg := _AppendString(nil, STOP_NAME, stop.Name)
	msg = _AppendDouble(msg, STOP_LAT, stop.Position.Lat)
	msg = _AppendDouble(msg, STOP_LNG, stop.Position.Lng)
	return msg
}

func _EncodeBus(cat *catalogue.TransportCatalogue, bus catalogue.Bus) []byte {
	msg := _AppendString(nil, BUS_NAME, bus.Name)
	for _, stop := range bus.Stops {
		msg = _AppendString(msg, BUS_STOPS, cat.GetStop(stop).Name)
	}
	for _, stop := range bus.Endpoints {
		msg = _AppendString(msg, BUS_ENDPOINTS, cat.GetStop(stop).Name)
	}
	return msg
}

func _EncodeMeta(meta Meta) []byte {
	msg := protowire.AppendTag(nil, META_BUILD_ID, protowire.BytesType)
	msg = protowire.AppendBytes(msg, meta.BuildID[:])
	msg = _AppendInt(msg, META_CREATED_AT, meta.CreatedAt.UnixNano())
	return msg
}

func _EncodePoint(point render.Point) []byte {
	msg := _AppendDouble(nil, POINT_X, point.X)
	return _AppendDouble(msg, POINT_Y, point.Y)
}

func _EncodeColor(color render.Color) []byte {
	switch color.Kind {
	case render.NAMED_COLOR:
		return _AppendString(nil, COLOR_NAME, color.Name)
	case render.RGB_COLOR, render.RGBA_COLOR:
		rgb := _AppendInt(nil, RGB_RED, int64(color.Red))
		rgb = _AppendInt(rgb, RGB_GREEN, int64(color.Green))
		rgb = _AppendInt(rgb, RGB_BLUE, int64(color.Blue))
		if color.Kind == render.RGB_COLOR {
			return _AppendMessage(nil, COLOR_RGB, rgb)
		}
		rgb = _AppendDouble(rgb, RGB_OPACITY, color.Opacity)
		return _AppendMessage(nil, COLOR_RGBA, rgb)
	default:
		return nil
	}
}

func _EncodeRenderSettings(settings render.RenderSettings) []byte {
	msg := _AppendDouble(nil, RENDER_WIDTH, settings.Width)
	msg = _AppendDouble(msg, RENDER_HEIGHT, settings.Height)
	msg = _AppendDouble(msg, RENDER_PADDING, settings.Padding)
	msg = _AppendDouble(msg, RENDER_LINE_WIDTH, settings.LineWidth)
	msg = _AppendDouble(msg, RENDER_STOP_RADIUS, settings.StopRadius)
	msg = _AppendInt(msg, RENDER_BUS_LABEL_FONT_SIZE, int64(settings.BusLabelFontSize))
	msg = _AppendMessage(msg, RENDER_BUS_LABEL_OFFSET, _EncodePoint(settings.BusLabelOffset))
	msg = _AppendInt(msg, RENDER_STOP_LABEL_FONT_SIZE, int64(settings.StopLabelFontSize))
	msg = _AppendMessage(msg, RENDER_STOP_LABEL_OFFSET, _EncodePoint(settings.StopLabelOffset))
	msg = _AppendMessage(msg, RENDER_UNDERLAYER_COLOR, _EncodeColor(settings.UnderlayerColor))
	msg = _AppendDouble(msg, RENDER_UNDERLAYER_WIDTH, settings.UnderlayerWidth)
	for _, color := range settings.ColorPalette {
		msg = _AppendMessage(msg, RENDER_COLOR_PALETTE, _EncodeColor(color))
	}
	return msg
}

//*******************************************
// router
//*******************************************

func _EncodeRouter(cat *catalogue.TransportCatalogue, router *transit.TransportRouter) []byte {
	settings := router.GetRoutingSettings()
	settings_msg := _AppendInt(nil, SETTINGS_BUS_WAIT_TIME, int64(settings.BusWaitTime))
	settings_msg = _AppendDouble(settings_msg, SETTINGS_BUS_VELOCITY, settings.BusVelocity)
	msg := _AppendMessage(nil, ROUTER_SETTINGS, settings_msg)

	msg = _AppendMessage(msg, ROUTER_GRAPH, _EncodeGraph(router.GetGraph()))

	for _, row := range router.GetRoutesInternalData() {
		source := make([]byte, 0, row.Length()*4)
		for _, cell := range row {
			var target []byte
			if cell.HasValue() {
				target = _AppendBool(target, TARGET_EXISTS, true)
				target = _AppendDouble(target, TARGET_WEIGHT, cell.Value.Weight)
				if cell.Value.PrevEdge.HasValue() {
					target = _AppendBool(target, TARGET_HAS_PREV, true)
					target = _AppendInt(target, TARGET_PREV, int64(cell.Value.PrevEdge.Value))
				}
			}
			source = _AppendMessage(source, SOURCE_TARGETS, target)
		}
		msg = _AppendMessage(msg, ROUTER_ROUTES, source)
	}

	for s, ids := range router.GetStopVertexIds() {
		ids_msg := _AppendString(nil, STOP_VERTEX_NAME, cat.GetStop(catalogue.StopID(s)).Name)
		ids_msg = _AppendInt(ids_msg, STOP_VERTEX_IN, int64(ids.In))
		ids_msg = _AppendInt(ids_msg, STOP_VERTEX_OUT, int64(ids.Out))
		msg = _AppendMessage(msg, ROUTER_STOP_VERTEX_IDS, ids_msg)
	}
	for _, info := range router.GetVerticesInfo() {
		msg = _AppendMessage(msg, ROUTER_VERTICES_INFO, _AppendString(nil, VERTEX_STOP_NAME, cat.GetStop(info.Stop).Name))
	}
	for _, info := range router.GetEdgesInfo() {
		var info_msg []byte
		if info.Kind == transit.BUS_EDGE {
			bus_msg := _AppendString(nil, BUS_EDGE_BUS_NAME, cat.GetBus(info.Bus).Name)
			bus_msg = _AppendInt(bus_msg, BUS_EDGE_START_STOP, int64(info.StartStopIdx))
			bus_msg = _AppendInt(bus_msg, BUS_EDGE_FINISH_STOP, int64(info.FinishStopIdx))
			info_msg = _AppendMessage(nil, EDGE_INFO_BUS, bus_msg)
		} else {
			info_msg = _AppendMessage(nil, EDGE_INFO_WAIT, nil)
		}
		msg = _AppendMessage(msg, ROUTER_EDGES_INFO, info_msg)
	}
	return msg
}

func _EncodeGraph(g *graph.DirectedWeightedGraph) []byte {
	var msg []byte
	for _, edge := range g.GetEdges() {
		edge_msg := _AppendInt(nil, EDGE_FROM, int64(edge.From))
		edge_msg = _AppendInt(edge_msg, EDGE_TO, int64(edge.To))
		edge_msg = _AppendDouble(edge_msg, EDGE_WEIGHT, edge.Weight)
		msg = _AppendMessage(msg, GRAPH_EDGES, edge_msg)
	}
	for _, list := range g.GetIncidenceLists() {
		var packed []byte
		for _, edge_id := range list {
			packed = protowire.AppendVarint(packed, uint64(edge_id))
		}
		msg = _AppendMessage(msg, GRAPH_INCIDENCE_LISTS, _AppendMessage(nil, INCIDENCE_EDGE_IDS, packed))
	}
	return msg
}
