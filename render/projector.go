package render

import (
	"math"

	"github.com/ttpr0/go-transit/geo"
)

const EPSILON = 1e-6

func _IsZero(value float64) bool {
	return math.Abs(value) < EPSILON
}

// Maps coordinates onto the drawing area. West is left, north is up, the
// bounding box of the points is scaled uniformly to fit inside padding.
type SphereProjector struct {
	padding float64
	min_lng float64
	max_lat float64
	zoom    float64
}

func NewSphereProjector(coords []geo.Coord, max_width, max_height, padding float64) SphereProjector {
	projector := SphereProjector{padding: padding}
	if len(coords) == 0 {
		return projector
	}

	min_lng, max_lng := coords[0].Lng, coords[0].Lng
	min_lat, max_lat := coords[0].Lat, coords[0].Lat
	for _, coord := range coords[1:] {
		min_lng = math.Min(min_lng, coord.Lng)
		max_lng = math.Max(max_lng, coord.Lng)
		min_lat = math.Min(min_lat, coord.Lat)
		max_lat = math.Max(max_lat, coord.Lat)
	}
	projector.min_lng = min_lng
	projector.max_lat = max_lat

	has_width, has_height := !_IsZero(max_lng-min_lng), !_IsZero(max_lat-min_lat)
	width_zoom := (max_width - 2*padding) / (max_lng - min_lng)
	height_zoom := (max_height - 2*padding) / (max_lat - min_lat)
	switch {
	case has_width && has_height:
		projector.zoom = math.Min(width_zoom, height_zoom)
	case has_width:
		projector.zoom = width_zoom
	case has_height:
		projector.zoom = height_zoom
	}
	return projector
}

func (self SphereProjector) Project(coord geo.Coord) Point {
	return Point{
		X: (coord.Lng-self.min_lng)*self.zoom + self.padding,
		Y: (self.max_lat-coord.Lat)*self.zoom + self.padding,
	}
}
