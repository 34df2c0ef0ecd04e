package geo

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
)

//*******************************************
// coordinates
//*******************************************

type Coord struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

func (self Coord) Point() orb.Point {
	return orb.Point{self.Lng, self.Lat}
}

func (self Coord) IsValid() bool {
	return self.Lat >= -90 && self.Lat <= 90 && self.Lng >= -180 && self.Lng <= 180
}

// Great-circle distance in meters.
func ComputeDistance(from, to Coord) float64 {
	if from == to {
		return 0
	}
	return geo.Distance(from.Point(), to.Point())
}

// Great-circle length of the polyline through coords, in meters.
func ComputeLength(coords []Coord) float64 {
	length := 0.0
	for i := 1; i < len(coords); i++ {
		length += ComputeDistance(coords[i-1], coords[i])
	}
	return length
}

func RoundMeters(meters float64) int {
	return int(math.Round(meters))
}
