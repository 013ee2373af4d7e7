package render

import (
	"io"
	"strings"

	. "github.com/ttpr0/transit-catalogue/util"
)

//*******************************************
// svg primitives
//*******************************************

type Point struct {
	X float64
	Y float64
}

type IObject interface {
	_Render(builder *strings.Builder)
}

// PathProps are the shared paint attributes. Unset attributes are omitted.
type PathProps struct {
	FillColor      Optional[Color]
	StrokeColor    Optional[Color]
	StrokeWidth    Optional[float64]
	StrokeLineCap  Optional[string]
	StrokeLineJoin Optional[string]
}

func (self *PathProps) _RenderAttrs(builder *strings.Builder) {
	if self.FillColor.HasValue() {
		_WriteAttr(builder, "fill", self.FillColor.Value.String())
	}
	if self.StrokeColor.HasValue() {
		_WriteAttr(builder, "stroke", self.StrokeColor.Value.String())
	}
	if self.StrokeWidth.HasValue() {
		_WriteAttr(builder, "stroke-width", _FormatNumber(self.StrokeWidth.Value))
	}
	if self.StrokeLineCap.HasValue() {
		_WriteAttr(builder, "stroke-linecap", self.StrokeLineCap.Value)
	}
	if self.StrokeLineJoin.HasValue() {
		_WriteAttr(builder, "stroke-linejoin", self.StrokeLineJoin.Value)
	}
}

type Circle struct {
	PathProps
	Center Point
	Radius float64
}

func (self *Circle) _Render(builder *strings.Builder) {
	builder.WriteString("<circle")
	_WriteAttr(builder, "cx", _FormatNumber(self.Center.X))
	_WriteAttr(builder, "cy", _FormatNumber(self.Center.Y))
	_WriteAttr(builder, "r", _FormatNumber(self.Radius))
	self._RenderAttrs(builder)
	builder.WriteString("/>")
}

type Polyline struct {
	PathProps
	Points List[Point]
}

func (self *Polyline) _Render(builder *strings.Builder) {
	builder.WriteString("<polyline points=\"")
	for i, point := range self.Points {
		if i > 0 {
			builder.WriteByte(' ')
		}
		builder.WriteString(_FormatNumber(point.X))
		builder.WriteByte(',')
		builder.WriteString(_FormatNumber(point.Y))
	}
	builder.WriteByte('"')
	self._RenderAttrs(builder)
	builder.WriteString("/>")
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

func (self *Text) _Render(builder *strings.Builder) {
	builder.WriteString("<text")
	self._RenderAttrs(builder)
	_WriteAttr(builder, "x", _FormatNumber(self.Position.X))
	_WriteAttr(builder, "y", _FormatNumber(self.Position.Y))
	_WriteAttr(builder, "dx", _FormatNumber(self.Offset.X))
	_WriteAttr(builder, "dy", _FormatNumber(self.Offset.Y))
	_WriteAttr(builder, "font-size", _FormatNumber(float64(self.FontSize)))
	if self.FontFamily != "" {
		_WriteAttr(builder, "font-family", self.FontFamily)
	}
	if self.FontWeight != "" {
		_WriteAttr(builder, "font-weight", self.FontWeight)
	}
	builder.WriteByte('>')
	builder.WriteString(text_escaper.Replace(self.Data))
	builder.WriteString("</text>")
}

var text_escaper = strings.NewReplacer(
	"\"", "&quot;",
	"'", "&apos;",
	"<", "&lt;",
	">", "&gt;",
	"&", "&amp;",
)

func _WriteAttr(builder *strings.Builder, key, value string) {
	builder.WriteByte(' ')
	builder.WriteString(key)
	builder.WriteString("=\"")
	builder.WriteString(value)
	builder.WriteByte('"')
}

//*******************************************
// svg document
//*******************************************

type Document struct {
	objects List[IObject]
}

func NewDocument() *Document {
	return &Document{
		objects: NewList[IObject](100),
	}
}

func (self *Document) Add(object IObject) {
	self.objects.Add(object)
}

func (self *Document) String() string {
	builder := strings.Builder{}
	builder.WriteString("<?xml version=\"1.0\" encoding=\"UTF-8\" ?>\n")
	builder.WriteString("<svg xmlns=\"http://www.w3.org/2000/svg\" version=\"1.1\">\n")
	for _, object := range self.objects {
		builder.WriteString("  ")
		object._Render(&builder)
		builder.WriteByte('\n')
	}
	builder.WriteString("</svg>")
	return builder.String()
}

func (self *Document) Render(writer io.Writer) error {
	_, err := io.WriteString(writer, self.String())
	return err
}
