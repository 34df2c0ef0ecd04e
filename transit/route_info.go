package transit

import (
	"github.com/ttpr0/go-transit/routing"
	. "github.com/ttpr0/go-transit/util"
)

//*******************************************
// route items
//*******************************************

type IRouteItem interface {
	GetKind() EdgeKind
	// minutes
	GetTime() float64
}

type WaitItem struct {
	StopName string
	Time     float64
}

func (self WaitItem) GetKind() EdgeKind {
	return WAIT_EDGE
}
func (self WaitItem) GetTime() float64 {
	return self.Time
}

type BusItem struct {
	BusName       string
	Time          float64
	StartStopIdx  int
	FinishStopIdx int
	SpanCount     int
}

func (self BusItem) GetKind() EdgeKind {
	return BUS_EDGE
}
func (self BusItem) GetTime() float64 {
	return self.Time
}

type RouteInfo struct {
	// minutes
	TotalTime float64
	Items     List[IRouteItem]
}

// One item per edge of the route, consecutive rides are not merged.
func (self *TransportRouter) _BuildRouteInfo(route routing.RouteInfo) RouteInfo {
	items := NewList[IRouteItem](route.Edges.Length())
	for _, edge_id := range route.Edges {
		edge := self.graph.GetEdge(edge_id)
		info := self.edges_info[edge_id]
		switch info.Kind {
		case BUS_EDGE:
			items.Add(BusItem{
				BusName:       self.catalogue.GetBus(info.Bus).Name,
				Time:          edge.Weight,
				StartStopIdx:  info.StartStopIdx,
				FinishStopIdx: info.FinishStopIdx,
				SpanCount:     info.FinishStopIdx - info.StartStopIdx,
			})
		default:
			stop := self.vertices_info[edge.From].Stop
			items.Add(WaitItem{
				StopName: self.catalogue.GetStop(stop).Name,
				Time:     edge.Weight,
			})
		}
	}
	return RouteInfo{
		TotalTime: route.Weight,
		Items:     items,
	}
}
