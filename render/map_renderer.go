package render

import (
	"strings"

	"github.com/ttpr0/go-transit/catalogue"
	"github.com/ttpr0/go-transit/geo"
	. "github.com/ttpr0/go-transit/util"
	"golang.org/x/exp/slices"
)

type ICatalogue interface {
	StopCount() int
	BusCount() int
	GetStop(stop catalogue.StopID) catalogue.Stop
	GetBus(bus catalogue.BusID) catalogue.Bus
}

// Buses and stops drawn on the map, each sorted by name.
type MapObjects struct {
	Stops List[catalogue.StopID]
	Buses List[catalogue.BusID]
}

// Selects every bus with at least one stop and the stops those buses use.
func SelectMapObjects(cat ICatalogue) MapObjects {
	buses := NewList[catalogue.BusID](cat.BusCount())
	used := NewDict[catalogue.StopID, bool](cat.StopCount())
	for b := 0; b < cat.BusCount(); b++ {
		bus_id := catalogue.BusID(b)
		bus := cat.GetBus(bus_id)
		if bus.Stops.Length() == 0 {
			continue
		}
		buses.Add(bus_id)
		for _, stop := range bus.Stops {
			used[stop] = true
		}
	}
	stops := NewList[catalogue.StopID](used.Length())
	for stop := range used {
		stops.Add(stop)
	}
	slices.SortFunc(buses, func(a, b catalogue.BusID) int {
		return strings.Compare(cat.GetBus(a).Name, cat.GetBus(b).Name)
	})
	slices.SortFunc(stops, func(a, b catalogue.StopID) int {
		return strings.Compare(cat.GetStop(a).Name, cat.GetStop(b).Name)
	})
	return MapObjects{Stops: stops, Buses: buses}
}

//*******************************************
// map renderer
//*******************************************

type MapRenderer struct {
	settings   RenderSettings
	catalogue  ICatalogue
	objects    MapObjects
	stop_point Dict[catalogue.StopID, Point]
	bus_color  Dict[catalogue.BusID, Color]
}

func NewMapRenderer(cat ICatalogue, settings RenderSettings, objects MapObjects) *MapRenderer {
	coords := make([]geo.Coord, 0, objects.Stops.Length())
	for _, stop := range objects.Stops {
		coords = append(coords, cat.GetStop(stop).Position)
	}
	projector := NewSphereProjector(coords, settings.Width, settings.Height, settings.Padding)
	stop_point := NewDict[catalogue.StopID, Point](objects.Stops.Length())
	for _, stop := range objects.Stops {
		stop_point[stop] = projector.Project(cat.GetStop(stop).Position)
	}

	bus_color := NewDict[catalogue.BusID, Color](objects.Buses.Length())
	for i, bus := range objects.Buses {
		if settings.ColorPalette.Length() == 0 {
			bus_color[bus] = NoneColor()
		} else {
			bus_color[bus] = settings.ColorPalette[i%settings.ColorPalette.Length()]
		}
	}

	return &MapRenderer{
		settings:   settings,
		catalogue:  cat,
		objects:    objects,
		stop_point: stop_point,
		bus_color:  bus_color,
	}
}

// Draws bus lines, bus labels, stop circles and stop labels in that order.
func (self *MapRenderer) Render() *Document {
	doc := NewDocument()
	self._RenderBusLines(doc)
	self._RenderBusLabels(doc)
	self._RenderStopPoints(doc)
	self._RenderStopLabels(doc)
	return doc
}

func (self *MapRenderer) _RenderBusLines(doc *Document) {
	for _, bus_id := range self.objects.Buses {
		bus := self.catalogue.GetBus(bus_id)
		points := NewList[Point](bus.Stops.Length())
		for _, stop := range bus.Stops {
			points.Add(self.stop_point[stop])
		}
		doc.Add(Polyline{
			PathProps: PathProps{
				Fill:        Some(NamedColor("none")),
				Stroke:      Some(self.bus_color[bus_id]),
				StrokeWidth: Some(self.settings.LineWidth),
				LineCap:     Some(CAP_ROUND),
				LineJoin:    Some(JOIN_ROUND),
			},
			Points: points,
		})
	}
}

func (self *MapRenderer) _RenderBusLabels(doc *Document) {
	for _, bus_id := range self.objects.Buses {
		bus := self.catalogue.GetBus(bus_id)
		for _, endpoint := range bus.Endpoints {
			label := Text{
				Position:   self.stop_point[endpoint],
				Offset:     self.settings.BusLabelOffset,
				FontSize:   self.settings.BusLabelFontSize,
				FontFamily: "Verdana",
				FontWeight: "bold",
				Data:       bus.Name,
			}
			doc.Add(self._Underlayer(label))
			label.Fill = Some(self.bus_color[bus_id])
			doc.Add(label)
		}
	}
}

func (self *MapRenderer) _RenderStopPoints(doc *Document) {
	for _, stop := range self.objects.Stops {
		doc.Add(Circle{
			PathProps: PathProps{Fill: Some(NamedColor("white"))},
			Center:    self.stop_point[stop],
			Radius:    self.settings.StopRadius,
		})
	}
}

func (self *MapRenderer) _RenderStopLabels(doc *Document) {
	for _, stop := range self.objects.Stops {
		label := Text{
			Position:   self.stop_point[stop],
			Offset:     self.settings.StopLabelOffset,
			FontSize:   self.settings.StopLabelFontSize,
			FontFamily: "Verdana",
			Data:       self.catalogue.GetStop(stop).Name,
		}
		doc.Add(self._Underlayer(label))
		label.Fill = Some(NamedColor("black"))
		doc.Add(label)
	}
}

func (self *MapRenderer) _Underlayer(label Text) Text {
	label.PathProps = PathProps{
		Fill:        Some(self.settings.UnderlayerColor),
		Stroke:      Some(self.settings.UnderlayerColor),
		StrokeWidth: Some(self.settings.UnderlayerWidth),
		LineCap:     Some(CAP_ROUND),
		LineJoin:    Some(JOIN_ROUND),
	}
	return label
}
