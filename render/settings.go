package render

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/go-playground/validator/v10"
)

//*******************************************
// render settings
//*******************************************

type RenderSettings struct {
	Width             float64    `json:"width" validate:"gte=0"`
	Height            float64    `json:"height" validate:"gte=0"`
	Padding           float64    `json:"padding" validate:"gte=0"`
	LineWidth         float64    `json:"line_width" validate:"gte=0"`
	StopRadius        float64    `json:"stop_radius" validate:"gte=0"`
	BusLabelFontSize  int        `json:"bus_label_font_size" validate:"gte=0"`
	BusLabelOffset    [2]float64 `json:"bus_label_offset"`
	StopLabelFontSize int        `json:"stop_label_font_size" validate:"gte=0"`
	StopLabelOffset   [2]float64 `json:"stop_label_offset"`
	UnderlayerColor   Color      `json:"underlayer_color"`
	UnderlayerWidth   float64    `json:"underlayer_width" validate:"gte=0"`
	ColorPalette      []Color    `json:"color_palette"`
}

var validate = validator.New()

// ParseSettings reads settings from their json form. Empty data gives the
// zero settings.
func ParseSettings(data []byte) (RenderSettings, error) {
	var settings RenderSettings
	if len(data) == 0 {
		return settings, nil
	}
	if err := json.Unmarshal(data, &settings); err != nil {
		return settings, fmt.Errorf("failed to parse render settings: %w", err)
	}
	if err := validate.Struct(&settings); err != nil {
		return settings, fmt.Errorf("invalid render settings: %w", err)
	}
	return settings, nil
}

//*******************************************
// color
//*******************************************

// Color is an svg paint value. The zero value renders as "none".
type Color struct {
	value string
}

func NamedColor(name string) Color {
	return Color{value: name}
}
func Rgb(red, green, blue uint8) Color {
	return Color{value: fmt.Sprintf("rgb(%d,%d,%d)", red, green, blue)}
}
func Rgba(red, green, blue uint8, opacity float64) Color {
	return Color{value: fmt.Sprintf("rgba(%d,%d,%d,%s)", red, green, blue, _FormatNumber(opacity))}
}

func (self Color) String() string {
	if self.value == "" {
		return "none"
	}
	return self.value
}

// UnmarshalJSON accepts a color name, [r, g, b] or [r, g, b, opacity].
// Anything else is read as no color.
func (self *Color) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		*self = NamedColor(name)
		return nil
	}
	var values []float64
	if err := json.Unmarshal(data, &values); err != nil {
		*self = Color{}
		return nil
	}
	switch len(values) {
	case 3:
		*self = Rgb(uint8(values[0]), uint8(values[1]), uint8(values[2]))
	case 4:
		*self = Rgba(uint8(values[0]), uint8(values[1]), uint8(values[2]), values[3])
	default:
		*self = Color{}
	}
	return nil
}

func _FormatNumber(value float64) string {
	return strconv.FormatFloat(value, 'g', 6, 64)
}
