package render

import (
	"github.com/ttpr0/transit-catalogue/catalogue"
	"github.com/ttpr0/transit-catalogue/geo"
	"github.com/ttpr0/transit-catalogue/structs"
	. "github.com/ttpr0/transit-catalogue/util"
)

//*******************************************
// map renderer
//*******************************************

func NewMapRenderer(settings RenderSettings) *MapRenderer {
	return &MapRenderer{
		settings: settings,
	}
}

type MapRenderer struct {
	settings RenderSettings
}

func (self *MapRenderer) GetSettings() RenderSettings {
	return self.settings
}

// RenderMap draws lines, line labels, stops and stop labels in that order.
// Lines and stops are visited by name and only stops served by a line are
// drawn.
func (self *MapRenderer) RenderMap(cat *catalogue.TransportCatalogue) *Document {
	buses := NewList[structs.Bus](cat.BusCount())
	for _, bus := range cat.GetAllBuses() {
		if bus.Stops.Length() > 0 {
			buses.Add(bus)
		}
	}
	stops := NewList[structs.Stop](cat.StopCount())
	coords := NewList[geo.Coordinates](cat.StopCount())
	for _, stop := range cat.GetAllStops() {
		if !cat.IsStopServed(stop.Name) {
			continue
		}
		stops.Add(stop)
		coords.Add(stop.Coordinates)
	}
	proj := NewSphereProjector(coords, self.settings.Width, self.settings.Height, self.settings.Padding)

	doc := NewDocument()
	self._RenderLines(doc, cat, buses, proj)
	self._RenderLineNames(doc, cat, buses, proj)
	self._RenderStops(doc, stops, proj)
	self._RenderStopNames(doc, stops, proj)
	return doc
}

func (self *MapRenderer) _GetColor(index int) Color {
	palette := self.settings.ColorPalette
	if len(palette) == 0 {
		return Color{}
	}
	return palette[index%len(palette)]
}

func (self *MapRenderer) _RenderLines(doc *Document, cat *catalogue.TransportCatalogue, buses List[structs.Bus], proj SphereProjector) {
	for i, bus := range buses {
		line := &Polyline{
			PathProps: PathProps{
				FillColor:      Some(Color{}),
				StrokeColor:    Some(self._GetColor(i)),
				StrokeWidth:    Some(self.settings.LineWidth),
				StrokeLineCap:  Some("round"),
				StrokeLineJoin: Some("round"),
			},
			Points: NewList[Point](2 * bus.Stops.Length()),
		}
		for _, id := range bus.Stops {
			line.Points.Add(proj.Project(cat.GetStop(id).Coordinates))
		}
		if !bus.IsRoundtrip {
			for j := bus.Stops.Length() - 2; j >= 0; j-- {
				line.Points.Add(proj.Project(cat.GetStop(bus.Stops[j]).Coordinates))
			}
		}
		doc.Add(line)
	}
}

func (self *MapRenderer) _RenderLineNames(doc *Document, cat *catalogue.TransportCatalogue, buses List[structs.Bus], proj SphereProjector) {
	for i, bus := range buses {
		first := bus.Stops[0]
		last := bus.Stops[bus.Stops.Length()-1]
		ends := []int32{first}
		if !bus.IsRoundtrip && first != last {
			ends = append(ends, last)
		}
		for _, end := range ends {
			text := Text{
				Position:   proj.Project(cat.GetStop(end).Coordinates),
				Offset:     Point{X: self.settings.BusLabelOffset[0], Y: self.settings.BusLabelOffset[1]},
				FontSize:   self.settings.BusLabelFontSize,
				FontFamily: "Verdana",
				FontWeight: "bold",
				Data:       bus.Name,
			}
			self._AddLabel(doc, text, self._GetColor(i))
		}
	}
}

func (self *MapRenderer) _RenderStops(doc *Document, stops List[structs.Stop], proj SphereProjector) {
	for _, stop := range stops {
		doc.Add(&Circle{
			PathProps: PathProps{
				FillColor: Some(NamedColor("white")),
			},
			Center: proj.Project(stop.Coordinates),
			Radius: self.settings.StopRadius,
		})
	}
}

func (self *MapRenderer) _RenderStopNames(doc *Document, stops List[structs.Stop], proj SphereProjector) {
	for _, stop := range stops {
		text := Text{
			Position:   proj.Project(stop.Coordinates),
			Offset:     Point{X: self.settings.StopLabelOffset[0], Y: self.settings.StopLabelOffset[1]},
			FontSize:   self.settings.StopLabelFontSize,
			FontFamily: "Verdana",
			Data:       stop.Name,
		}
		self._AddLabel(doc, text, NamedColor("black"))
	}
}

// Adds the underlayer copy of text first, then text itself.
func (self *MapRenderer) _AddLabel(doc *Document, text Text, fill Color) {
	background := text
	background.PathProps = PathProps{
		FillColor:      Some(self.settings.UnderlayerColor),
		StrokeColor:    Some(self.settings.UnderlayerColor),
		StrokeWidth:    Some(self.settings.UnderlayerWidth),
		StrokeLineCap:  Some("round"),
		StrokeLineJoin: Some("round"),
	}
	text.PathProps = PathProps{
		FillColor: Some(fill),
	}
	doc.Add(&background)
	doc.Add(&text)
}
