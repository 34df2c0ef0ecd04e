package transit

import (
	"github.com/ttpr0/go-transit/catalogue"
	"github.com/ttpr0/go-transit/graph"
	. "github.com/ttpr0/go-transit/util"
)

type RoutingSettings struct {
	// minutes spent waiting at a stop before boarding
	BusWaitTime int `json:"bus_wait_time" yaml:"bus-wait-time" validate:"gte=0"`
	// km/h
	BusVelocity float64 `json:"bus_velocity" yaml:"bus-velocity" validate:"gt=0"`
}

type Options struct {
	// sources computed in parallel, <= 0 uses GOMAXPROCS
	Workers int
}

type ICatalogue interface {
	StopCount() int
	BusCount() int
	GetStop(stop catalogue.StopID) catalogue.Stop
	GetBus(bus catalogue.BusID) catalogue.Bus
	FindStop(name string) Optional[catalogue.StopID]
	GetDistance(from, to catalogue.StopID) int
}

type StopVertexId struct {
	In  graph.VertexId
	Out graph.VertexId
}

type VertexInfo struct {
	Stop catalogue.StopID
}

type EdgeKind byte

const (
	WAIT_EDGE EdgeKind = 0
	BUS_EDGE  EdgeKind = 1
)

func (self EdgeKind) String() string {
	switch self {
	case WAIT_EDGE:
		return "Wait"
	case BUS_EDGE:
		return "Bus"
	default:
		return "Unknown"
	}
}

// Bus, StartStopIdx and FinishStopIdx are only set for BUS_EDGE. The stop
// indices point into the expanded stop sequence of the bus.
type EdgeInfo struct {
	Kind          EdgeKind
	Bus           catalogue.BusID
	StartStopIdx  int
	FinishStopIdx int
}

func WaitEdgeInfo() EdgeInfo {
	return EdgeInfo{Kind: WAIT_EDGE, Bus: -1}
}

func BusEdgeInfo(bus catalogue.BusID, start, finish int) EdgeInfo {
	return EdgeInfo{Kind: BUS_EDGE, Bus: bus, StartStopIdx: start, FinishStopIdx: finish}
}
