package render

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	. "github.com/ttpr0/go-transit/util"
)

//*******************************************
// svg objects
//*******************************************

type IObject interface {
	RenderObject(w io.Writer)
}

type LineCap string

const (
	CAP_BUTT   LineCap = "butt"
	CAP_ROUND  LineCap = "round"
	CAP_SQUARE LineCap = "square"
)

type LineJoin string

const (
	JOIN_ARCS       LineJoin = "arcs"
	JOIN_BEVEL      LineJoin = "bevel"
	JOIN_MITER      LineJoin = "miter"
	JOIN_MITER_CLIP LineJoin = "miter-clip"
	JOIN_ROUND      LineJoin = "round"
)

// Presentation attributes shared by all shapes. Unset attributes are
// not written.
type PathProps struct {
	Fill        Optional[Color]
	Stroke      Optional[Color]
	StrokeWidth Optional[float64]
	LineCap     Optional[LineCap]
	LineJoin    Optional[LineJoin]
}

func (self PathProps) _RenderAttrs(w io.Writer) {
	if self.Fill.HasValue() {
		fmt.Fprintf(w, ` fill="%v"`, self.Fill.Value)
	}
	if self.Stroke.HasValue() {
		fmt.Fprintf(w, ` stroke="%v"`, self.Stroke.Value)
	}
	if self.StrokeWidth.HasValue() {
		fmt.Fprintf(w, ` stroke-width="%v"`, _FormatNumber(self.StrokeWidth.Value))
	}
	if self.LineCap.HasValue() {
		fmt.Fprintf(w, ` stroke-linecap="%v"`, self.LineCap.Value)
	}
	if self.LineJoin.HasValue() {
		fmt.Fprintf(w, ` stroke-linejoin="%v"`, self.LineJoin.Value)
	}
}

type Circle struct {
	PathProps
	Center Point
	Radius float64
}

func (self Circle) RenderObject(w io.Writer) {
	fmt.Fprintf(w, `<circle cx="%v" cy="%v" r="%v"`, _FormatNumber(self.Center.X), _FormatNumber(self.Center.Y), _FormatNumber(self.Radius))
	self._RenderAttrs(w)
	io.WriteString(w, "/>")
}

type Polyline struct {
	PathProps
	Points List[Point]
}

func (self Polyline) RenderObject(w io.Writer) {
	io.WriteString(w, `<polyline points="`)
	for i, point := range self.Points {
		if i != 0 {
			io.WriteString(w, " ")
		}
		fmt.Fprintf(w, "%v,%v", _FormatNumber(point.X), _FormatNumber(point.Y))
	}
	io.WriteString(w, `"`)
	self._RenderAttrs(w)
	io.WriteString(w, "/>")
}

type Text struct {
	PathProps
	Position   Point
	Offset     Point
	FontSize   int
	FontFamily string
	FontWeight string
	Data       string
}

func (self Text) RenderObject(w io.Writer) {
	io.WriteString(w, "<text")
	self._RenderAttrs(w)
	fmt.Fprintf(w, ` x="%v" y="%v" dx="%v" dy="%v" font-size="%v"`,
		_FormatNumber(self.Position.X), _FormatNumber(self.Position.Y),
		_FormatNumber(self.Offset.X), _FormatNumber(self.Offset.Y),
		self.FontSize,
	)
	if self.FontFamily != "" {
		fmt.Fprintf(w, ` font-family="%v"`, self.FontFamily)
	}
	if self.FontWeight != "" {
		fmt.Fprintf(w, ` font-weight="%v"`, self.FontWeight)
	}
	io.WriteString(w, ">")
	io.WriteString(w, EscapeText(self.Data))
	io.WriteString(w, "</text>")
}

var text_escaper = strings.NewReplacer(
	`"`, "&quot;",
	`'`, "&apos;",
	`<`, "&lt;",
	`>`, "&gt;",
	`&`, "&amp;",
)

func EscapeText(text string) string {
	return text_escaper.Replace(text)
}

//*******************************************
// svg document
//*******************************************

type Document struct {
	objects List[IObject]
}

func NewDocument() *Document {
	return &Document{
		objects: NewList[IObject](16),
	}
}

func (self *Document) Add(obj IObject) {
	self.objects.Add(obj)
}

func (self *Document) Length() int {
	return self.objects.Length()
}

func (self *Document) Render(w io.Writer) error {
	writer := bufio.NewWriter(w)
	writer.WriteString(`<?xml version="1.0" encoding="UTF-8" ?>` + "\n")
	writer.WriteString(`<svg xmlns="http://www.w3.org/2000/svg" version="1.1">`)
	for _, obj := range self.objects {
		writer.WriteString("\n  ")
		obj.RenderObject(writer)
	}
	writer.WriteString("\n</svg>")
	return writer.Flush()
}

func (self *Document) String() string {
	var builder strings.Builder
	self.Render(&builder)
	return builder.String()
}
