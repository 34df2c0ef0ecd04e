package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeDistance(t *testing.T) {
	a := Coord{Lat: 55.611087, Lng: 37.20829}
	b := Coord{Lat: 55.595884, Lng: 37.209755}

	assert.Equal(t, 0.0, ComputeDistance(a, a))
	d := ComputeDistance(a, b)
	assert.InDelta(t, 1693, d, 10)
	assert.InDelta(t, d, ComputeDistance(b, a), 1e-6)
}

func TestComputeLength(t *testing.T) {
	a := Coord{Lat: 0, Lng: 0}
	b := Coord{Lat: 0, Lng: 0.01}
	c := Coord{Lat: 0, Lng: 0.02}

	assert.Equal(t, 0.0, ComputeLength([]Coord{a}))
	assert.InDelta(t, 2*ComputeDistance(a, b), ComputeLength([]Coord{a, b, c}), 1e-6)
}

func TestCoordValid(t *testing.T) {
	assert.True(t, Coord{Lat: 43.5, Lng: 39.7}.IsValid())
	assert.False(t, Coord{Lat: 91, Lng: 0}.IsValid())
}
