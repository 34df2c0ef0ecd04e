package main

import (
	. "github.com/ttpr0/go-transit/util"
)

const NOT_FOUND = "not found"

type ErrorResponse struct {
	RequestId    int    `json:"request_id"`
	ErrorMessage string `json:"error_message"`
}

func NewErrorResponse(request_id int, message string) ErrorResponse {
	return ErrorResponse{
		RequestId:    request_id,
		ErrorMessage: message,
	}
}

type BusResponse struct {
	RequestId       int     `json:"request_id"`
	Curvature       float64 `json:"curvature"`
	RouteLength     int     `json:"route_length"`
	StopCount       int     `json:"stop_count"`
	UniqueStopCount int     `json:"unique_stop_count"`
}

type StopResponse struct {
	RequestId int          `json:"request_id"`
	Buses     List[string] `json:"buses"`
}

type RouteResponse struct {
	RequestId int     `json:"request_id"`
	TotalTime float64 `json:"total_time"`
	// WaitItemResponse or BusItemResponse
	Items List[any] `json:"items"`
}

type WaitItemResponse struct {
	Type     string  `json:"type"`
	StopName string  `json:"stop_name"`
	Time     float64 `json:"time"`
}

type BusItemResponse struct {
	Type      string  `json:"type"`
	Bus       string  `json:"bus"`
	SpanCount int     `json:"span_count"`
	Time      float64 `json:"time"`
}

type MapResponse struct {
	RequestId int    `json:"request_id"`
	Map       string `json:"map"`
}

type HealthResponse struct {
	Status    string `json:"status"`
	BuildId   string `json:"build_id"`
	CreatedAt string `json:"created_at"`
}
