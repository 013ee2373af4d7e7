package geo

import (
	"math"
	"testing"
)

func TestComputeDistanceSamePoint(t *testing.T) {
	c := Coordinates{Lat: 55.611087, Lng: 37.20829}
	if d := ComputeDistance(c, c); d != 0 {
		t.Errorf("ComputeDistance(c, c) = %v; want 0", d)
	}
}

func TestComputeDistanceSymmetric(t *testing.T) {
	a := Coordinates{Lat: 55.611087, Lng: 37.20829}
	b := Coordinates{Lat: 55.595884, Lng: 37.209755}
	ab := ComputeDistance(a, b)
	ba := ComputeDistance(b, a)
	if math.Abs(ab-ba) > 1e-9 {
		t.Errorf("distance not symmetric: %v != %v", ab, ba)
	}
	// roughly 1.69 km between the two stops
	if ab < 1680 || ab > 1700 {
		t.Errorf("ComputeDistance(a, b) = %v; want ~1690", ab)
	}
}

func TestComputeDistanceOneDegreeLatitude(t *testing.T) {
	a := Coordinates{Lat: 0, Lng: 0}
	b := Coordinates{Lat: 1, Lng: 0}
	want := EARTH_RADIUS * math.Pi / 180
	if d := ComputeDistance(a, b); math.Abs(d-want) > 1e-6 {
		t.Errorf("ComputeDistance = %v; want %v", d, want)
	}
}
