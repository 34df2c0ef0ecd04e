package render

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/go-playground/validator/v10"
	. "github.com/ttpr0/go-transit/util"
)

var ErrInvalidColor = errors.New("invalid color")
var ErrInvalidPoint = errors.New("invalid point")
var ErrInvalidSettings = errors.New("invalid render settings")

//*******************************************
// point
//*******************************************

// Decoded from and encoded as [x, y].
type Point struct {
	X float64
	Y float64
}

func (self *Point) UnmarshalJSON(data []byte) error {
	var values []float64
	if err := json.Unmarshal(data, &values); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPoint, err)
	}
	if len(values) != 2 {
		return fmt.Errorf("%w: expected 2 values, got %v", ErrInvalidPoint, len(values))
	}
	self.X = values[0]
	self.Y = values[1]
	return nil
}

func (self Point) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]float64{self.X, self.Y})
}

//*******************************************
// color
//*******************************************

type ColorKind byte

const (
	NONE_COLOR  ColorKind = 0
	NAMED_COLOR ColorKind = 1
	RGB_COLOR   ColorKind = 2
	RGBA_COLOR  ColorKind = 3
)

type Color struct {
	Kind    ColorKind
	Name    string
	Red     uint8
	Green   uint8
	Blue    uint8
	Opacity float64
}

func NoneColor() Color {
	return Color{Kind: NONE_COLOR}
}
func NamedColor(name string) Color {
	return Color{Kind: NAMED_COLOR, Name: name}
}
func RGBColor(red, green, blue uint8) Color {
	return Color{Kind: RGB_COLOR, Red: red, Green: green, Blue: blue}
}
func RGBAColor(red, green, blue uint8, opacity float64) Color {
	return Color{Kind: RGBA_COLOR, Red: red, Green: green, Blue: blue, Opacity: opacity}
}

func (self Color) String() string {
	switch self.Kind {
	case NAMED_COLOR:
		return self.Name
	case RGB_COLOR:
		return fmt.Sprintf("rgb(%v,%v,%v)", self.Red, self.Green, self.Blue)
	case RGBA_COLOR:
		return fmt.Sprintf("rgba(%v,%v,%v,%v)", self.Red, self.Green, self.Blue, _FormatNumber(self.Opacity))
	default:
		return "none"
	}
}

// Accepts a color name, [r, g, b] or [r, g, b, opacity].
func (self *Color) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*self = NoneColor()
		return nil
	}
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		*self = NamedColor(name)
		return nil
	}
	var values []float64
	if err := json.Unmarshal(data, &values); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidColor, data)
	}
	if len(values) != 3 && len(values) != 4 {
		return fmt.Errorf("%w: expected 3 or 4 values, got %v", ErrInvalidColor, len(values))
	}
	channels := [3]uint8{}
	for i := 0; i < 3; i++ {
		if values[i] < 0 || values[i] > 255 || values[i] != float64(int(values[i])) {
			return fmt.Errorf("%w: channel %v", ErrInvalidColor, values[i])
		}
		channels[i] = uint8(values[i])
	}
	if len(values) == 3 {
		*self = RGBColor(channels[0], channels[1], channels[2])
	} else {
		*self = RGBAColor(channels[0], channels[1], channels[2], values[3])
	}
	return nil
}

func (self Color) MarshalJSON() ([]byte, error) {
	switch self.Kind {
	case NAMED_COLOR:
		return json.Marshal(self.Name)
	case RGB_COLOR:
		return json.Marshal([]float64{float64(self.Red), float64(self.Green), float64(self.Blue)})
	case RGBA_COLOR:
		return json.Marshal([]float64{float64(self.Red), float64(self.Green), float64(self.Blue), self.Opacity})
	default:
		return json.Marshal("none")
	}
}

//*******************************************
// render settings
//*******************************************

type RenderSettings struct {
	Width      float64 `json:"width" validate:"gte=0"`
	Height     float64 `json:"height" validate:"gte=0"`
	Padding    float64 `json:"padding" validate:"gte=0"`
	LineWidth  float64 `json:"line_width" validate:"gte=0"`
	StopRadius float64 `json:"stop_radius" validate:"gte=0"`

	BusLabelFontSize  int   `json:"bus_label_font_size" validate:"gte=0"`
	BusLabelOffset    Point `json:"bus_label_offset"`
	StopLabelFontSize int   `json:"stop_label_font_size" validate:"gte=0"`
	StopLabelOffset   Point `json:"stop_label_offset"`

	UnderlayerColor Color       `json:"underlayer_color"`
	UnderlayerWidth float64     `json:"underlayer_width" validate:"gte=0"`
	ColorPalette    List[Color] `json:"color_palette"`
}

var validate = validator.New()

func ValidateSettings(settings RenderSettings) error {
	if err := validate.Struct(settings); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSettings, err)
	}
	return nil
}

// Six significant digits, trailing zeros dropped.
func _FormatNumber(value float64) string {
	return strconv.FormatFloat(value, 'g', 6, 64)
}
