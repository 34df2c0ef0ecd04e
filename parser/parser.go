package parser

import (
	"context"
	"fmt"
	"os"
	"runtime"

	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"
	"github.com/paulmach/osm/osmxml"
	"github.com/ttpr0/go-transit/geo"
	. "github.com/ttpr0/go-transit/util"
	"golang.org/x/exp/slog"
)

// Implemented by the osmpbf and osmxml scanners.
type IOSMScanner interface {
	Scan() bool
	Object() osm.Object
	Err() error
	Close() error
}

type _FileScanner struct {
	IOSMScanner
	file *os.File
}

func (self *_FileScanner) Close() error {
	err := self.IOSMScanner.Close()
	if file_err := self.file.Close(); err == nil {
		err = file_err
	}
	return err
}

// Opens an .osm.pbf file or, for any other extension, an osm xml file.
func OpenOSMFile(ctx context.Context, filename string) (IOSMScanner, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	var scanner IOSMScanner
	if _IsPBF(filename) {
		scanner = osmpbf.New(ctx, file, runtime.GOMAXPROCS(-1))
	} else {
		scanner = osmxml.New(ctx, file)
	}
	return &_FileScanner{IOSMScanner: scanner, file: file}, nil
}

func ParseOSMFile(ctx context.Context, filename string, decoder IOSMDecoder) (List[BaseRequest], error) {
	scanner, err := OpenOSMFile(ctx, filename)
	if err != nil {
		return nil, err
	}
	defer scanner.Close()
	return ParseOSM(scanner, decoder)
}

// Builds base requests from the stops and bus routes in an osm extract.
// Stops sharing a name are merged, the first node wins. Road distances
// between consecutive stops of a route are approximated by the rounded
// great-circle distance.
func ParseOSM(scanner IOSMScanner, decoder IOSMDecoder) (List[BaseRequest], error) {
	stop_names := NewDict[osm.NodeID, string](1000)
	stops := NewList[OSMStop](1000)
	routes := NewList[OSMRoute](100)

	_ObjectHandler(scanner, decoder, &stop_names, &stops, &routes)
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan osm data: %w", err)
	}
	slog.Info(fmt.Sprintf("osm: found %v stops and %v bus routes", stops.Length(), routes.Length()))
	return _CreateBaseRequests(&stop_names, &stops, &routes), nil
}

//*******************************************
// osm handler methods
//*******************************************

func _ObjectHandler(scanner IOSMScanner, decoder IOSMDecoder, stop_names *Dict[osm.NodeID, string], stops *List[OSMStop], routes *List[OSMRoute]) {
	known := NewDict[string, bool](1000)
	c := 0
	for scanner.Scan() {
		switch object := scanner.Object().(type) {
		case *osm.Node:
			tags := Dict[string, string](object.Tags.Map())
			if !decoder.IsStop(tags) {
				continue
			}
			name := decoder.StopName(tags)
			if name == "" {
				continue
			}
			stop_names.Set(object.ID, name)
			if known.ContainsKey(name) {
				continue
			}
			known.Set(name, true)
			stops.Add(OSMStop{
				Name:  name,
				Point: geo.Coord{Lat: object.Lat, Lng: object.Lon},
			})
			c += 1
			if c%1000 == 0 {
				slog.Debug(fmt.Sprintf("%v stops", c))
			}
		case *osm.Relation:
			tags := Dict[string, string](object.Tags.Map())
			if !decoder.IsRoute(tags) {
				continue
			}
			name := decoder.RouteName(tags)
			if name == "" {
				continue
			}
			route := OSMRoute{ID: object.ID, Name: name, Members: NewList[osm.NodeID](len(object.Members))}
			for _, member := range object.Members {
				if member.Type != osm.TypeNode || !decoder.IsStopRole(member.Role) {
					continue
				}
				route.Members.Add(osm.NodeID(member.Ref))
			}
			routes.Add(route)
		default:
			continue
		}
	}
}

func _CreateBaseRequests(stop_names *Dict[osm.NodeID, string], stops *List[OSMStop], routes *List[OSMRoute]) List[BaseRequest] {
	stop_index := NewDict[string, int](stops.Length())
	requests := NewList[BaseRequest](stops.Length() + routes.Length())
	for i, stop := range *stops {
		stop_index[stop.Name] = i
		requests.Add(BaseRequest{
			Type:          STOP_REQUEST,
			Name:          stop.Name,
			Latitude:      stop.Point.Lat,
			Longitude:     stop.Point.Lng,
			RoadDistances: NewDict[string, int](2),
		})
	}

	bus_names := NewDict[string, bool](routes.Length())
	for _, route := range *routes {
		sequence := NewList[string](route.Members.Length())
		for _, member := range route.Members {
			name, ok := (*stop_names)[member]
			if !ok {
				continue
			}
			if sequence.Length() > 0 && sequence[sequence.Length()-1] == name {
				continue
			}
			sequence.Add(name)
		}
		if sequence.Length() == 0 {
			slog.Debug(fmt.Sprintf("osm: route %v (%v) has no known stops", route.Name, route.ID))
			continue
		}

		for i := 1; i < sequence.Length(); i++ {
			from := stop_index[sequence[i-1]]
			to := stop_index[sequence[i]]
			if requests[from].RoadDistances.ContainsKey(sequence[i]) || requests[to].RoadDistances.ContainsKey(sequence[i-1]) {
				continue
			}
			meters := geo.ComputeDistance((*stops)[from].Point, (*stops)[to].Point)
			requests[from].RoadDistances[sequence[i]] = geo.RoundMeters(meters)
		}

		name := _UniqueName(route.Name, fmt.Sprint(route.ID), bus_names)
		bus_names.Set(name, true)
		// route relations describe one direction, the sequence is driven as is
		requests.Add(BaseRequest{
			Type:        BUS_REQUEST,
			Name:        name,
			Stops:       sequence,
			IsRoundtrip: true,
		})
	}
	return requests
}
