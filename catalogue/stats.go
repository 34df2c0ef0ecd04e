package catalogue

import (
	"github.com/ttpr0/go-transit/geo"
	. "github.com/ttpr0/go-transit/util"
	"golang.org/x/exp/slices"
)

type BusStats struct {
	StopCount       int
	UniqueStopCount int
	// road length in meters
	RouteLength int
	// road length divided by great-circle length
	Curvature float64
}

// Statistics of a bus. Buses without stops have none.
func (self *TransportCatalogue) GetBusStats(bus_id BusID) Optional[BusStats] {
	bus := self.GetBus(bus_id)
	if bus.Stops.Length() == 0 {
		return None[BusStats]()
	}

	unique := NewDict[StopID, bool](bus.Stops.Length())
	coords := make([]geo.Coord, 0, bus.Stops.Length())
	route_length := 0
	for i, stop := range bus.Stops {
		unique[stop] = true
		coords = append(coords, self.GetStop(stop).Position)
		if i > 0 {
			route_length += self.GetDistance(bus.Stops[i-1], stop)
		}
	}

	curvature := 0.0
	geo_length := geo.ComputeLength(coords)
	if geo_length > 0 {
		curvature = float64(route_length) / geo_length
	}
	return Some(BusStats{
		StopCount:       bus.Stops.Length(),
		UniqueStopCount: unique.Length(),
		RouteLength:     route_length,
		Curvature:       curvature,
	})
}

// Names of the buses passing through stop in ascending order.
func (self *TransportCatalogue) GetStopBusNames(stop StopID) List[string] {
	buses := self.GetBusesAtStop(stop)
	names := NewList[string](buses.Length())
	for _, bus := range buses {
		names.Add(self.GetBus(bus).Name)
	}
	slices.Sort(names)
	return names
}
