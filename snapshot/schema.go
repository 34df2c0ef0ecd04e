package snapshot

import "google.golang.org/protobuf/encoding/protowire"

// Field numbers of the snapshot messages. Doubles are written as fixed64,
// integers as varints and names as length delimited strings.

const (
	SNAPSHOT_STOPS           protowire.Number = 1
	SNAPSHOT_BUSES           protowire.Number = 2
	SNAPSHOT_DISTANCES       protowire.Number = 3
	SNAPSHOT_RENDER_SETTINGS protowire.Number = 4
	SNAPSHOT_ROUTER          protowire.Number = 5
	SNAPSHOT_MAP_STOPS       protowire.Number = 6
	SNAPSHOT_MAP_BUSES       protowire.Number = 7
	SNAPSHOT_META            protowire.Number = 8
)

const (
	STOP_NAME protowire.Number = 1
	STOP_LAT  protowire.Number = 2
	STOP_LNG  protowire.Number = 3
)

const (
	BUS_NAME      protowire.Number = 1
	BUS_STOPS     protowire.Number = 2
	BUS_ENDPOINTS protowire.Number = 3
)

const (
	DISTANCE_FROM   protowire.Number = 1
	DISTANCE_TO     protowire.Number = 2
	DISTANCE_METERS protowire.Number = 3
)

const (
	META_BUILD_ID   protowire.Number = 1
	META_CREATED_AT protowire.Number = 2
)

const (
	RENDER_WIDTH                protowire.Number = 1
	RENDER_HEIGHT               protowire.Number = 2
	RENDER_PADDING              protowire.Number = 3
	RENDER_LINE_WIDTH           protowire.Number = 4
	RENDER_STOP_RADIUS          protowire.Number = 5
	RENDER_BUS_LABEL_FONT_SIZE  protowire.Number = 6
	RENDER_BUS_LABEL_OFFSET     protowire.Number = 7
	RENDER_STOP_LABEL_FONT_SIZE protowire.Number = 8
	RENDER_STOP_LABEL_OFFSET    protowire.Number = 9
	RENDER_UNDERLAYER_COLOR     protowire.Number = 10
	RENDER_UNDERLAYER_WIDTH     protowire.Number = 11
	RENDER_COLOR_PALETTE        protowire.Number = 12
)

const (
	POINT_X protowire.Number = 1
	POINT_Y protowire.Number = 2
)

// A color message carries at most one of name, rgb and rgba. An empty
// message is no color.
const (
	COLOR_NAME protowire.Number = 1
	COLOR_RGB  protowire.Number = 2
	COLOR_RGBA protowire.Number = 3

	RGB_RED     protowire.Number = 1
	RGB_GREEN   protowire.Number = 2
	RGB_BLUE    protowire.Number = 3
	RGB_OPACITY protowire.Number = 4
)

const (
	ROUTER_SETTINGS        protowire.Number = 1
	ROUTER_GRAPH           protowire.Number = 2
	ROUTER_ROUTES          protowire.Number = 3
	ROUTER_STOP_VERTEX_IDS protowire.Number = 4
	ROUTER_VERTICES_INFO   protowire.Number = 5
	ROUTER_EDGES_INFO      protowire.Number = 6

	SETTINGS_BUS_WAIT_TIME protowire.Number = 1
	SETTINGS_BUS_VELOCITY  protowire.Number = 2

	GRAPH_EDGES           protowire.Number = 1
	GRAPH_INCIDENCE_LISTS protowire.Number = 2
	EDGE_FROM             protowire.Number = 1
	EDGE_TO               protowire.Number = 2
	EDGE_WEIGHT           protowire.Number = 3
	INCIDENCE_EDGE_IDS    protowire.Number = 1

	// ROUTER_ROUTES holds one source message per vertex, each with one
	// target message per vertex. Unreachable targets are empty messages.
	SOURCE_TARGETS  protowire.Number = 1
	TARGET_EXISTS   protowire.Number = 1
	TARGET_WEIGHT   protowire.Number = 2
	TARGET_HAS_PREV protowire.Number = 3
	TARGET_PREV     protowire.Number = 4

	STOP_VERTEX_NAME protowire.Number = 1
	STOP_VERTEX_IN   protowire.Number = 2
	STOP_VERTEX_OUT  protowire.Number = 3

	VERTEX_STOP_NAME protowire.Number = 1

	EDGE_INFO_BUS        protowire.Number = 1
	EDGE_INFO_WAIT       protowire.Number = 2
	BUS_EDGE_BUS_NAME    protowire.Number = 1
	BUS_EDGE_START_STOP  protowire.Number = 2
	BUS_EDGE_FINISH_STOP protowire.Number = 3
)
