package parser

import (
	. "github.com/ttpr0/go-transit/util"
)

//*******************************************
// osm decoder
//*******************************************

type IOSMDecoder interface {
	IsStop(tags Dict[string, string]) bool
	IsRoute(tags Dict[string, string]) bool
	IsStopRole(role string) bool
	StopName(tags Dict[string, string]) string
	RouteName(tags Dict[string, string]) string
}

// Bus stops and bus route relations in the public transport v2 schema,
// legacy highway=bus_stop nodes are accepted as well.
type BusDecoder struct {
}

var stop_types = Dict[string, bool]{"platform": true, "stop_position": true}

var stop_roles = Dict[string, bool]{"stop": true, "platform": true, "stop_entry_only": true, "stop_exit_only": true,
	"platform_entry_only": true, "platform_exit_only": true}

func (self *BusDecoder) IsStop(tags Dict[string, string]) bool {
	if tags.Get("highway") == "bus_stop" {
		return true
	}
	if !stop_types.ContainsKey(tags.Get("public_transport")) {
		return false
	}
	// rail platforms only if buses call there too
	return tags.Get("bus") == "yes" || !tags.ContainsKey("railway")
}
func (self *BusDecoder) IsRoute(tags Dict[string, string]) bool {
	return tags.Get("type") == "route" && tags.Get("route") == "bus"
}
func (self *BusDecoder) IsStopRole(role string) bool {
	return stop_roles.ContainsKey(role)
}
func (self *BusDecoder) StopName(tags Dict[string, string]) string {
	return _FirstTag(tags, "name", "name:en", "ref")
}
func (self *BusDecoder) RouteName(tags Dict[string, string]) string {
	return _FirstTag(tags, "ref", "name")
}
