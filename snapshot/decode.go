package snapshot

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/ttpr0/go-transit/graph"
	"github.com/ttpr0/go-transit/render"
	"github.com/ttpr0/go-transit/routing"
	"github.com/ttpr0/go-transit/transit"
	. "github.com/ttpr0/go-transit/util"
	"google.golang.org/protobuf/encoding/protowire"
)

//*******************************************
// field reader
//*******************************************

type _Field struct {
	num    protowire.Number
	typ    protowire.Type
	varint uint64
	bytes  []byte
}

func _Malformed(format string, args ...any) error {
	return fmt.Errorf("%w: %v", ErrMalformedSnapshot, fmt.Sprintf(format, args...))
}

// Calls fn for every field of the message in wire order. Groups and other
// unknown wire types are skipped.
func _ParseMessage(b []byte, fn func(field _Field) error) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return _Malformed("tag: %v", protowire.ParseError(n))
		}
		b = b[n:]
		field := _Field{num: num, typ: typ}
		switch typ {
		case protowire.VarintType:
			field.varint, n = protowire.ConsumeVarint(b)
		case protowire.Fixed64Type:
			field.varint, n = protowire.ConsumeFixed64(b)
		case protowire.Fixed32Type:
			var v uint32
			v, n = protowire.ConsumeFixed32(b)
			field.varint = uint64(v)
		case protowire.BytesType:
			field.bytes, n = protowire.ConsumeBytes(b)
		default:
			n = protowire.ConsumeFieldValue(num, typ, b)
		}
		if n < 0 {
			return _Malformed("field %v: %v", num, protowire.ParseError(n))
		}
		b = b[n:]
		if err := fn(field); err != nil {
			return err
		}
	}
	return nil
}

func (self _Field) _Expect(typ protowire.Type) error {
	if self.typ != typ {
		return _Malformed("field %v has wire type %v, expected %v", self.num, self.typ, typ)
	}
	return nil
}

func (self _Field) AsString() (string, error) {
	if err := self._Expect(protowire.BytesType); err != nil {
		return "", err
	}
	return string(self.bytes), nil
}

func (self _Field) AsMessage() ([]byte, error) {
	if err := self._Expect(protowire.BytesType); err != nil {
		return nil, err
	}
	return self.bytes, nil
}

func (self _Field) AsInt() (int64, error) {
	if err := self._Expect(protowire.VarintType); err != nil {
		return 0, err
	}
	return int64(self.varint), nil
}

// Reads an int32 sized value such as an id or an index.
func (self _Field) AsInt32() (int32, error) {
	value, err := self.AsInt()
	if err != nil {
		return 0, err
	}
	if value < math.MinInt32 || value > math.MaxInt32 {
		return 0, _Malformed("field %v value %v out of range", self.num, value)
	}
	return int32(value), nil
}

func (self _Field) AsBool() (bool, error) {
	if err := self._Expect(protowire.VarintType); err != nil {
		return false, err
	}
	return protowire.DecodeBool(self.varint), nil
}

func (self _Field) AsDouble() (float64, error) {
	if err := self._Expect(protowire.Fixed64Type); err != nil {
		return 0, err
	}
	return math.Float64frombits(self.varint), nil
}

//*******************************************
// raw messages
//*******************************************

// Decoded messages still referencing stops and buses by name.

type _RawStop struct {
	name string
	lat  float64
	lng  float64
}

type _RawBus struct {
	name      string
	stops     List[string]
	endpoints List[string]
}

type _RawDistance struct {
	from   string
	to     string
	meters int
}

type _RawStopVertexIds struct {
	name string
	ids  transit.StopVertexId
}

type _RawEdgeInfo struct {
	kind     transit.EdgeKind
	bus_name string
	start    int
	finish   int
}

type _RawRouter struct {
	settings        transit.RoutingSettings
	edges           List[graph.Edge]
	incidence       List[List[graph.EdgeId]]
	routes          List[Array[Optional[routing.RouteInternalData]]]
	stop_vertex_ids List[_RawStopVertexIds]
	vertices_info   List[string]
	edges_info      List[_RawEdgeInfo]
}

type _RawSnapshot struct {
	meta            Meta
	stops           List[_RawStop]
	buses           List[_RawBus]
	distances       List[_RawDistance]
	render_settings render.RenderSettings
	router          Optional[_RawRouter]
	map_stops       List[string]
	map_buses       List[string]
}

//*******************************************
// decode
//*******************************************

func _DecodeSnapshot(b []byte) (_RawSnapshot, error) {
	raw := _RawSnapshot{}
	has_meta := false
	err := _ParseMessage(b, func(field _Field) error {
		switch field.num {
		case SNAPSHOT_STOPS:
			msg, err := field.AsMessage()
			if err != nil {
				return err
			}
			stop, err := _DecodeStop(msg)
			if err != nil {
				return err
			}
			raw.stops.Add(stop)
		case SNAPSHOT_BUSES:
			msg, err := field.AsMessage()
			if err != nil {
				return err
			}
			bus, err := _DecodeBus(msg)
			if err != nil {
				return err
			}
			raw.buses.Add(bus)
		case SNAPSHOT_DISTANCES:
			msg, err := field.AsMessage()
			if err != nil {
				return err
			}
			distance, err := _DecodeDistance(msg)
			if err != nil {
				return err
			}
			raw.distances.Add(distance)
		case SNAPSHOT_RENDER_SETTINGS:
			msg, err := field.AsMessage()
			if err != nil {
				return err
			}
			settings, err := _DecodeRenderSettings(msg)
			if err != nil {
				return err
			}
			raw.render_settings = settings
		case SNAPSHOT_ROUTER:
			msg, err := field.AsMessage()
			if err != nil {
				return err
			}
			router, err := _DecodeRouter(msg)
			if err != nil {
				return err
			}
			raw.router = Some(router)
		case SNAPSHOT_MAP_STOPS:
			name, err := field.AsString()
			if err != nil {
				return err
			}
			raw.map_stops.Add(name)
		case SNAPSHOT_MAP_BUSES:
			name, err := field.AsString()
			if err != nil {
				return err
			}
			raw.map_buses.Add(name)
		case SNAPSHOT_META:
			msg, err := field.AsMessage()
			if err != nil {
				return err
			}
			meta, err := _DecodeMeta(msg)
			if err != nil {
				return err
			}
			raw.meta = meta
			has_meta = true
		}
		return nil
	})
	if err != nil {
		return raw, err
	}
	if !has_meta {
		return raw, _Malformed("missing meta")
	}
	if !raw.router.HasValue() {
		return raw, _Malformed("missing router")
	}
	return raw, nil
}

func _DecodeStop(b []byte) (_RawStop, error) {
	stop := _RawStop{}
	err := _ParseMessage(b, func(field _Field) (err error) {
		switch field.num {
		case STOP_NAME:
			stop.name, err = field.AsString()
		case STOP_LAT:
			stop.lat, err = field.AsDouble()
		case STOP_LNG:
			stop.lng, err = field.AsDouble()
		}
		return err
	})
	return stop, err
}

func _DecodeBus(b []byte) (_RawBus, error) {
	bus := _RawBus{}
	err := _ParseMessage(b, func(field _Field) error {
		switch field.num {
		case BUS_NAME:
			name, err := field.AsString()
			bus.name = name
			return err
		case BUS_STOPS:
			name, err := field.AsString()
			bus.stops.Add(name)
			return err
		case BUS_ENDPOINTS:
			name, err := field.AsString()
			bus.endpoints.Add(name)
			return err
		}
		return nil
	})
	return bus, err
}

func _DecodeDistance(b []byte) (_RawDistance, error) {
	distance := _RawDistance{}
	err := _ParseMessage(b, func(field _Field) (err error) {
		switch field.num {
		case DISTANCE_FROM:
			distance.from, err = field.AsString()
		case DISTANCE_TO:
			distance.to, err = field.AsString()
		case DISTANCE_METERS:
			var meters int32
			meters, err = field.AsInt32()
			distance.meters = int(meters)
		}
		return err
	})
	return distance, err
}

func _DecodeMeta(b []byte) (Meta, error) {
	meta := Meta{}
	err := _ParseMessage(b, func(field _Field) error {
		switch field.num {
		case META_BUILD_ID:
			msg, err := field.AsMessage()
			if err != nil {
				return err
			}
			id, err := uuid.FromBytes(msg)
			if err != nil {
				return _Malformed("build id: %v", err)
			}
			meta.BuildID = id
		case META_CREATED_AT:
			nanos, err := field.AsInt()
			if err != nil {
				return err
			}
			meta.CreatedAt = time.Unix(0, nanos).UTC()
		}
		return nil
	})
	return meta, err
}

//*******************************************
// render settings
//*******************************************

func _DecodePoint(b []byte) (render.Point, error) {
	point := render.Point{}
	err := _ParseMessage(b, func(field _Field) (err error) {
		switch field.num {
		case POINT_X:
			point.X, err = field.AsDouble()
		case POINT_Y:
			point.Y, err = field.AsDouble()
		}
		return err
	})
	return point, err
}

func _DecodeRGB(b []byte) (Array[uint8], float64, error) {
	channels := NewArray[uint8](3)
	opacity := 0.0
	err := _ParseMessage(b, func(field _Field) error {
		switch field.num {
		case RGB_RED, RGB_GREEN, RGB_BLUE:
			value, err := field.AsInt()
			if err != nil {
				return err
			}
			if value < 0 || value > 255 {
				return _Malformed("color channel %v", value)
			}
			channels[field.num-RGB_RED] = uint8(value)
		case RGB_OPACITY:
			value, err := field.AsDouble()
			if err != nil {
				return err
			}
			opacity = value
		}
		return nil
	})
	return channels, opacity, err
}

func _DecodeColor(b []byte) (render.Color, error) {
	color := render.NoneColor()
	err := _ParseMessage(b, func(field _Field) error {
		switch field.num {
		case COLOR_NAME:
			name, err := field.AsString()
			if err != nil {
				return err
			}
			color = render.NamedColor(name)
		case COLOR_RGB, COLOR_RGBA:
			msg, err := field.AsMessage()
			if err != nil {
				return err
			}
			channels, opacity, err := _DecodeRGB(msg)
			if err != nil {
				return err
			}
			if field.num == COLOR_RGB {
				color = render.RGBColor(channels[0], channels[1], channels[2])
			} else {
				color = render.RGBAColor(channels[0], channels[1], channels[2], opacity)
			}
		}
		return nil
	})
	return color, err
}

func _DecodeRenderSettings(b []byte) (render.RenderSettings, error) {
	settings := render.RenderSettings{}
	err := _ParseMessage(b, func(field _Field) (err error) {
		var msg []byte
		var size int32
		switch field.num {
		case RENDER_WIDTH:
			settings.Width, err = field.AsDouble()
		case RENDER_HEIGHT:
			settings.Height, err = field.AsDouble()
		case RENDER_PADDING:
			settings.Padding, err = field.AsDouble()
		case RENDER_LINE_WIDTH:
			settings.LineWidth, err = field.AsDouble()
		case RENDER_STOP_RADIUS:
			settings.StopRadius, err = field.AsDouble()
		case RENDER_UNDERLAYER_WIDTH:
			settings.UnderlayerWidth, err = field.AsDouble()
		case RENDER_BUS_LABEL_FONT_SIZE:
			size, err = field.AsInt32()
			settings.BusLabelFontSize = int(size)
		case RENDER_STOP_LABEL_FONT_SIZE:
			size, err = field.AsInt32()
			settings.StopLabelFontSize = int(size)
		case RENDER_BUS_LABEL_OFFSET:
			if msg, err = field.AsMessage(); err == nil {
				settings.BusLabelOffset, err = _DecodePoint(msg)
			}
		case RENDER_STOP_LABEL_OFFSET:
			if msg, err = field.AsMessage(); err == nil {
				settings.StopLabelOffset, err = _DecodePoint(msg)
			}
		case RENDER_UNDERLAYER_COLOR:
			if msg, err = field.AsMessage(); err == nil {
				settings.UnderlayerColor, err = _DecodeColor(msg)
			}
		case RENDER_COLOR_PALETTE:
			var color render.Color
			if msg, err = field.AsMessage(); err == nil {
				color, err = _DecodeColor(msg)
				settings.ColorPalette.Add(color)
			}
		}
		return err
	})
	return settings, err
}

//*******************************************
// router
//*******************************************

func _DecodeRouter(b []byte) (_RawRouter, error) {
	router := _RawRouter{}
	has_settings := false
	err := _ParseMessage(b, func(field _Field) error {
		if field.num < ROUTER_SETTINGS || field.num > ROUTER_EDGES_INFO {
			return nil
		}
		msg, err := field.AsMessage()
		if err != nil {
			return err
		}
		switch field.num {
		case ROUTER_SETTINGS:
			has_settings = true
			return _ParseMessage(msg, func(field _Field) (err error) {
				switch field.num {
				case SETTINGS_BUS_WAIT_TIME:
					var wait int32
					wait, err = field.AsInt32()
					router.settings.BusWaitTime = int(wait)
				case SETTINGS_BUS_VELOCITY:
					router.settings.BusVelocity, err = field.AsDouble()
				}
				return err
			})
		case ROUTER_GRAPH:
			return _DecodeGraph(msg, &router)
		case ROUTER_ROUTES:
			row, err := _DecodeSourceRoutes(msg)
			if err != nil {
				return err
			}
			router.routes.Add(row)
		case ROUTER_STOP_VERTEX_IDS:
			ids := _RawStopVertexIds{}
			err := _ParseMessage(msg, func(field _Field) (err error) {
				switch field.num {
				case STOP_VERTEX_NAME:
					ids.name, err = field.AsString()
				case STOP_VERTEX_IN:
					ids.ids.In, err = field.AsInt32()
				case STOP_VERTEX_OUT:
					ids.ids.Out, err = field.AsInt32()
				}
				return err
			})
			if err != nil {
				return err
			}
			router.stop_vertex_ids.Add(ids)
		case ROUTER_VERTICES_INFO:
			name := ""
			err := _ParseMessage(msg, func(field _Field) (err error) {
				if field.num == VERTEX_STOP_NAME {
					name, err = field.AsString()
				}
				return err
			})
			if err != nil {
				return err
			}
			router.vertices_info.Add(name)
		case ROUTER_EDGES_INFO:
			info, err := _DecodeEdgeInfo(msg)
			if err != nil {
				return err
			}
			router.edges_info.Add(info)
		}
		return nil
	})
	if err == nil && !has_settings {
		err = _Malformed("missing routing settings")
	}
	return router, err
}

func _DecodeGraph(b []byte, router *_RawRouter) error {
	return _ParseMessage(b, func(field _Field) error {
		switch field.num {
		case GRAPH_EDGES:
			msg, err := field.AsMessage()
			if err != nil {
				return err
			}
			edge := graph.Edge{}
			err = _ParseMessage(msg, func(field _Field) (err error) {
				switch field.num {
				case EDGE_FROM:
					edge.From, err = field.AsInt32()
				case EDGE_TO:
					edge.To, err = field.AsInt32()
				case EDGE_WEIGHT:
					edge.Weight, err = field.AsDouble()
				}
				return err
			})
			if err != nil {
				return err
			}
			router.edges.Add(edge)
		case GRAPH_INCIDENCE_LISTS:
			msg, err := field.AsMessage()
			if err != nil {
				return err
			}
			list := NewList[graph.EdgeId](4)
			err = _ParseMessage(msg, func(field _Field) error {
				if field.num != INCIDENCE_EDGE_IDS {
					return nil
				}
				// packed, single values are accepted as well
				if field.typ == protowire.VarintType {
					id, err := field.AsInt32()
					list.Add(id)
					return err
				}
				packed, err := field.AsMessage()
				if err != nil {
					return err
				}
				for len(packed) > 0 {
					value, n := protowire.ConsumeVarint(packed)
					if n < 0 {
						return _Malformed("incidence list: %v", protowire.ParseError(n))
					}
					if value > math.MaxInt32 {
						return _Malformed("edge id %v out of range", value)
					}
					list.Add(graph.EdgeId(value))
					packed = packed[n:]
				}
				return nil
			})
			if err != nil {
				return err
			}
			router.incidence.Add(list)
		}
		return nil
	})
}

func _DecodeSourceRoutes(b []byte) (Array[Optional[routing.RouteInternalData]], error) {
	row := NewList[Optional[routing.RouteInternalData]](16)
	err := _ParseMessage(b, func(field _Field) error {
		if field.num != SOURCE_TARGETS {
			return nil
		}
		msg, err := field.AsMessage()
		if err != nil {
			return err
		}
		exists, has_prev := false, false
		data := routing.RouteInternalData{}
		var prev graph.EdgeId
		err = _ParseMessage(msg, func(field _Field) (err error) {
			switch field.num {
			case TARGET_EXISTS:
				exists, err = field.AsBool()
			case TARGET_WEIGHT:
				data.Weight, err = field.AsDouble()
			case TARGET_HAS_PREV:
				has_prev, err = field.AsBool()
			case TARGET_PREV:
				prev, err = field.AsInt32()
			}
			return err
		})
		if err != nil {
			return err
		}
		if !exists {
			row.Add(None[routing.RouteInternalData]())
			return nil
		}
		if has_prev {
			data.PrevEdge = Some(prev)
		}
		row.Add(Some(data))
		return nil
	})
	return Array[Optional[routing.RouteInternalData]](row), err
}

func _DecodeEdgeInfo(b []byte) (_RawEdgeInfo, error) {
	info := _RawEdgeInfo{}
	has_kind := false
	err := _ParseMessage(b, func(field _Field) error {
		switch field.num {
		case EDGE_INFO_WAIT:
			if _, err := field.AsMessage(); err != nil {
				return err
			}
			info = _RawEdgeInfo{kind: transit.WAIT_EDGE}
			has_kind = true
		case EDGE_INFO_BUS:
			msg, err := field.AsMessage()
			if err != nil {
				return err
			}
			info = _RawEdgeInfo{kind: transit.BUS_EDGE}
			has_kind = true
			return _ParseMessage(msg, func(field _Field) (err error) {
				var idx int32
				switch field.num {
				case BUS_EDGE_BUS_NAME:
					info.bus_name, err = field.AsString()
				case BUS_EDGE_START_STOP:
					idx, err = field.AsInt32()
					info.start = int(idx)
				case BUS_EDGE_FINISH_STOP:
					idx, err = field.AsInt32()
					info.finish = int(idx)
				}
				return err
			})
		}
		return nil
	})
	if err == nil && !has_kind {
		err = _Malformed("edge info without kind")
	}
	return info, err
}
