package geo

import (
	"math"
)

const EARTH_RADIUS = 6371000.0

type Coordinates struct {
	Lat float64
	Lng float64
}

// ComputeDistance returns the great-circle distance between two points in metres.
func ComputeDistance(from, to Coordinates) float64 {
	if from == to {
		return 0
	}
	dr := math.Pi / 180.0
	cos := math.Sin(from.Lat*dr)*math.Sin(to.Lat*dr) +
		math.Cos(from.Lat*dr)*math.Cos(to.Lat*dr)*math.Cos(math.Abs(from.Lng-to.Lng)*dr)
	// rounding can push the cosine slightly outside [-1, 1] for nearby points
	cos = math.Max(-1, math.Min(1, cos))
	return math.Acos(cos) * EARTH_RADIUS
}
