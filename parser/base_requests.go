package parser

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/ttpr0/go-transit/catalogue"
	"github.com/ttpr0/go-transit/geo"
	. "github.com/ttpr0/go-transit/util"
	"golang.org/x/exp/slog"
)

var ErrUnknownStop = errors.New("unknown stop")
var ErrInvalidRequest = errors.New("invalid base request")

const (
	STOP_REQUEST = "Stop"
	BUS_REQUEST  = "Bus"
)

// Either a stop (name, coordinates, road distances to other stops) or a
// bus (name, stop names, round trip flag).
type BaseRequest struct {
	Type          string            `json:"type" validate:"oneof=Stop Bus"`
	Name          string            `json:"name" validate:"required"`
	Latitude      float64           `json:"latitude,omitempty" validate:"gte=-90,lte=90"`
	Longitude     float64           `json:"longitude,omitempty" validate:"gte=-180,lte=180"`
	RoadDistances Dict[string, int] `json:"road_distances,omitempty" validate:"dive,gte=0"`
	Stops         List[string]      `json:"stops,omitempty"`
	IsRoundtrip   bool              `json:"is_roundtrip,omitempty"`
}

var validate = validator.New()

// Adds all stops, then all buses, then all road distances. References to
// unknown stops are dropped with a warning unless strict is set.
func FillCatalogue(cat *catalogue.TransportCatalogue, requests List[BaseRequest], strict bool) error {
	for i, request := range requests {
		if err := validate.Struct(request); err != nil {
			return fmt.Errorf("%w %v (%q): %v", ErrInvalidRequest, i, request.Name, err)
		}
	}

	for _, request := range requests {
		if request.Type != STOP_REQUEST {
			continue
		}
		_, err := cat.AddStop(catalogue.Stop{
			Name:     request.Name,
			Position: geo.Coord{Lat: request.Latitude, Lng: request.Longitude},
		})
		if err != nil {
			return err
		}
	}

	for _, request := range requests {
		if request.Type != BUS_REQUEST {
			continue
		}
		stops := NewList[catalogue.StopID](request.Stops.Length())
		for _, name := range request.Stops {
			stop := cat.FindStop(name)
			if !stop.HasValue() {
				if err := _UnknownStop(strict, "bus", request.Name, name); err != nil {
					return err
				}
				continue
			}
			stops.Add(stop.Value)
		}
		if _, err := cat.AddBus(catalogue.MakeBus(request.Name, stops, request.IsRoundtrip)); err != nil {
			return err
		}
	}

	for _, request := range requests {
		if request.Type != STOP_REQUEST {
			continue
		}
		from := cat.FindStop(request.Name).Value
		for _, name := range SortedKeys(request.RoadDistances) {
			to := cat.FindStop(name)
			if !to.HasValue() {
				if err := _UnknownStop(strict, "stop", request.Name, name); err != nil {
					return err
				}
				continue
			}
			if err := cat.SetDistance(from, to.Value, request.RoadDistances[name]); err != nil {
				return err
			}
		}
	}

	slog.Info(fmt.Sprintf("catalogue filled with %v stops and %v buses", cat.StopCount(), cat.BusCount()))
	return nil
}

func _UnknownStop(strict bool, kind string, name string, stop string) error {
	if strict {
		return fmt.Errorf("%v %q references %q: %w", kind, name, stop, ErrUnknownStop)
	}
	slog.Warn("dropping reference to unknown stop", kind, name, "stop", stop)
	return nil
}
