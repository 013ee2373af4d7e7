package render

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/ttpr0/transit-catalogue/geo"
)

const EPSILON = 1e-6

func IsZero(value float64) bool {
	return math.Abs(value) < EPSILON
}

//*******************************************
// sphere projector
//*******************************************

// SphereProjector maps coordinates onto a canvas so that the bounding box of
// all points fits into width x height minus padding. North is up.
type SphereProjector struct {
	padding    float64
	min_lon    float64
	max_lat    float64
	zoom_coeff float64
}

func NewSphereProjector(coords []geo.Coordinates, width, height, padding float64) SphereProjector {
	proj := SphereProjector{padding: padding}
	if len(coords) == 0 {
		return proj
	}
	points := make(orb.MultiPoint, 0, len(coords))
	for _, coord := range coords {
		points = append(points, orb.Point{coord.Lng, coord.Lat})
	}
	bound := points.Bound()
	min_lon, max_lon := bound.Min[0], bound.Max[0]
	min_lat, max_lat := bound.Min[1], bound.Max[1]
	proj.min_lon = min_lon
	proj.max_lat = max_lat

	zoom := math.Inf(1)
	if !IsZero(max_lon - min_lon) {
		zoom = math.Min(zoom, (width-2*padding)/(max_lon-min_lon))
	}
	if !IsZero(max_lat - min_lat) {
		zoom = math.Min(zoom, (height-2*padding)/(max_lat-min_lat))
	}
	if !math.IsInf(zoom, 1) {
		proj.zoom_coeff = zoom
	}
	return proj
}

func (self SphereProjector) Project(coord geo.Coordinates) Point {
	return Point{
		X: (coord.Lng-self.min_lon)*self.zoom_coeff + self.padding,
		Y: (self.max_lat-coord.Lat)*self.zoom_coeff + self.padding,
	}
}
