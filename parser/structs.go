package parser

import (
	"github.com/paulmach/osm"
	"github.com/ttpr0/go-transit/geo"
	. "github.com/ttpr0/go-transit/util"
)

//*******************************************
// parser structs
//*******************************************

type OSMStop struct {
	Name  string
	Point geo.Coord
}

// Members are node ids in relation order, unresolved.
type OSMRoute struct {
	ID      osm.RelationID
	Name    string
	Members List[osm.NodeID]
}
