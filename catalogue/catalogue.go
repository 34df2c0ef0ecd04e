package catalogue

import (
	"errors"
	"fmt"

	"github.com/ttpr0/go-transit/geo"
	. "github.com/ttpr0/go-transit/util"
	"golang.org/x/exp/slices"
)

var ErrDuplicateStop = errors.New("duplicate stop name")
var ErrDuplicateBus = errors.New("duplicate bus name")
var ErrStopOutOfRange = errors.New("stop id out of range")

type StopID int32
type BusID int32

type Stop struct {
	Name     string
	Position geo.Coord
}

// Stops holds the full expanded sequence. Endpoints has one element for
// routes starting and ending at the same stop and two otherwise.
type Bus struct {
	Name      string
	Stops     List[StopID]
	Endpoints List[StopID]
}

type Distance struct {
	From   StopID
	To     StopID
	Meters int
}

// Builds a bus from its raw stop sequence. Routes that are not round trips
// are driven back, the reverse of all but the last stop is appended.
func MakeBus(name string, stops List[StopID], is_roundtrip bool) Bus {
	endpoints := NewList[StopID](2)
	if stops.Length() > 0 {
		first := stops[0]
		last := stops[stops.Length()-1]
		endpoints.Add(first)
		if first != last {
			endpoints.Add(last)
		}
	}
	sequence := NewList[StopID](stops.Length() * 2)
	for _, stop := range stops {
		sequence.Add(stop)
	}
	if !is_roundtrip {
		for i := stops.Length() - 2; i >= 0; i-- {
			sequence.Add(stops[i])
		}
	}
	return Bus{
		Name:      name,
		Stops:     sequence,
		Endpoints: endpoints,
	}
}

//*******************************************
// transport catalogue
//*******************************************

// Stops, buses and road distances. Entities are referenced by ids that are
// assigned densely in insertion order.
type TransportCatalogue struct {
	stops      List[Stop]
	buses      List[Bus]
	stop_index Dict[string, StopID]
	bus_index  Dict[string, BusID]

	distances      Dict[Tuple[StopID, StopID], int]
	distance_order List[Tuple[StopID, StopID]]

	buses_at_stop List[List[BusID]]
}

func NewTransportCatalogue() *TransportCatalogue {
	return &TransportCatalogue{
		stops:          NewList[Stop](16),
		buses:          NewList[Bus](16),
		stop_index:     NewDict[string, StopID](16),
		bus_index:      NewDict[string, BusID](16),
		distances:      NewDict[Tuple[StopID, StopID], int](16),
		distance_order: NewList[Tuple[StopID, StopID]](16),
		buses_at_stop:  NewList[List[BusID]](16),
	}
}

func (self *TransportCatalogue) AddStop(stop Stop) (StopID, error) {
	if self.stop_index.ContainsKey(stop.Name) {
		return -1, fmt.Errorf("stop %q: %w", stop.Name, ErrDuplicateStop)
	}
	id := StopID(self.stops.Length())
	self.stops.Add(stop)
	self.stop_index[stop.Name] = id
	self.buses_at_stop.Add(NewList[BusID](2))
	return id, nil
}

func (self *TransportCatalogue) AddBus(bus Bus) (BusID, error) {
	if self.bus_index.ContainsKey(bus.Name) {
		return -1, fmt.Errorf("bus %q: %w", bus.Name, ErrDuplicateBus)
	}
	for _, stop := range bus.Stops {
		if !self.IsStop(stop) {
			return -1, fmt.Errorf("bus %q references stop %v: %w", bus.Name, stop, ErrStopOutOfRange)
		}
	}
	for _, stop := range bus.Endpoints {
		if !self.IsStop(stop) {
			return -1, fmt.Errorf("bus %q has endpoint %v: %w", bus.Name, stop, ErrStopOutOfRange)
		}
	}
	id := BusID(self.buses.Length())
	self.buses.Add(bus)
	self.bus_index[bus.Name] = id
	for _, stop := range bus.Stops {
		at_stop := &self.buses_at_stop[stop]
		if !slices.Contains(*at_stop, id) {
			at_stop.Add(id)
		}
	}
	return id, nil
}

// Sets the road distance from -> to in meters. Setting a pair again
// overwrites the value but keeps its original position in GetDistances.
func (self *TransportCatalogue) SetDistance(from, to StopID, meters int) error {
	if !self.IsStop(from) || !self.IsStop(to) {
		return fmt.Errorf("distance %v -> %v: %w", from, to, ErrStopOutOfRange)
	}
	key := MakeTuple(from, to)
	if !self.distances.ContainsKey(key) {
		self.distance_order.Add(key)
	}
	self.distances[key] = meters
	return nil
}

// Road distance from -> to. Falls back to the distance to -> from, and to
// 0 if neither is known.
func (self *TransportCatalogue) GetDistance(from, to StopID) int {
	if meters, ok := self.distances[MakeTuple(from, to)]; ok {
		return meters
	}
	if meters, ok := self.distances[MakeTuple(to, from)]; ok {
		return meters
	}
	return 0
}

// All explicitly set distances in insertion order.
func (self *TransportCatalogue) GetDistances() List[Distance] {
	distances := NewList[Distance](self.distance_order.Length())
	for _, key := range self.distance_order {
		distances.Add(Distance{From: key.A, To: key.B, Meters: self.distances[key]})
	}
	return distances
}

func (self *TransportCatalogue) StopCount() int {
	return self.stops.Length()
}
func (self *TransportCatalogue) BusCount() int {
	return self.buses.Length()
}
func (self *TransportCatalogue) IsStop(stop StopID) bool {
	return stop >= 0 && int(stop) < self.stops.Length()
}
func (self *TransportCatalogue) IsBus(bus BusID) bool {
	return bus >= 0 && int(bus) < self.buses.Length()
}
func (self *TransportCatalogue) GetStop(stop StopID) Stop {
	return self.stops[stop]
}
func (self *TransportCatalogue) GetBus(bus BusID) Bus {
	return self.buses[bus]
}

func (self *TransportCatalogue) FindStop(name string) Optional[StopID] {
	if id, ok := self.stop_index[name]; ok {
		return Some(id)
	}
	return None[StopID]()
}

func (self *TransportCatalogue) FindBus(name string) Optional[BusID] {
	if id, ok := self.bus_index[name]; ok {
		return Some(id)
	}
	return None[BusID]()
}

// Unique buses passing through stop, in bus insertion order.
func (self *TransportCatalogue) GetBusesAtStop(stop StopID) List[BusID] {
	return self.buses_at_stop[stop]
}
