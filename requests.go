package main

import (
	"github.com/ttpr0/go-transit/parser"
	"github.com/ttpr0/go-transit/render"
	"github.com/ttpr0/go-transit/transit"
	. "github.com/ttpr0/go-transit/util"
)

//**********************************************************
// input documents
//**********************************************************

type SerializationSettings struct {
	File string `json:"file"`
}

// stdin of make_base
type MakeBaseInput struct {
	SerializationSettings SerializationSettings    `json:"serialization_settings"`
	RoutingSettings       transit.RoutingSettings  `json:"routing_settings"`
	RenderSettings        render.RenderSettings    `json:"render_settings"`
	BaseRequests          List[parser.BaseRequest] `json:"base_requests"`
}

// stdin of process_requests
type ProcessRequestsInput struct {
	SerializationSettings SerializationSettings `json:"serialization_settings"`
	StatRequests          List[StatRequest]     `json:"stat_requests"`
}

// stdout of import_osm
type ImportOSMOutput struct {
	BaseRequests List[parser.BaseRequest] `json:"base_requests"`
}

//**********************************************************
// stat requests
//**********************************************************

const (
	BUS_STAT   = "Bus"
	STOP_STAT  = "Stop"
	ROUTE_STAT = "Route"
	MAP_STAT   = "Map"
)

type StatRequest struct {
	Id   int    `json:"id"`
	Type string `json:"type"`
	// Bus and Stop
	Name string `json:"name,omitempty"`
	// Route
	From string `json:"from,omitempty"`
	To   string `json:"to,omitempty"`
}

// query parameters of the GET endpoints

type NameQuery struct {
	Id   int    `json:"id"`
	Name string `json:"name"`
}

type RouteQuery struct {
	Id   int    `json:"id"`
	From string `json:"from"`
	To   string `json:"to"`
}

type MapQuery struct {
	Id int `json:"id"`
}
