package catalogue

import (
	"errors"
	"math"
	"testing"

	"github.com/ttpr0/transit-catalogue/geo"
	. "github.com/ttpr0/transit-catalogue/util"
)

func buildTestCatalogue(t *testing.T) *TransportCatalogue {
	t.Helper()
	cat := NewTransportCatalogue()
	cat.AddStop("Tolstopaltsevo", geo.Coordinates{Lat: 55.611087, Lng: 37.208290})
	cat.AddStop("Marushkino", geo.Coordinates{Lat: 55.595884, Lng: 37.209755})
	cat.AddStop("Rasskazovka", geo.Coordinates{Lat: 55.632761, Lng: 37.333324})
	cat.AddStop("Biryulyovo Zapadnoye", geo.Coordinates{Lat: 55.574371, Lng: 37.651700})
	cat.AddStop("Biryusinka", geo.Coordinates{Lat: 55.581065, Lng: 37.648390})
	cat.AddStop("Universam", geo.Coordinates{Lat: 55.587655, Lng: 37.645687})
	cat.AddStop("Biryulyovo Tovarnaya", geo.Coordinates{Lat: 55.592028, Lng: 37.653656})
	cat.AddStop("Biryulyovo Passazhirskaya", geo.Coordinates{Lat: 55.580999, Lng: 37.659164})
	cat.AddStop("Rossoshanskaya ulitsa", geo.Coordinates{Lat: 55.595579, Lng: 37.605757})
	cat.AddStop("Prazhskaya", geo.Coordinates{Lat: 55.611678, Lng: 37.603831})

	distances := []struct {
		from, to string
		dist     int
	}{
		{"Tolstopaltsevo", "Marushkino", 3900},
		{"Marushkino", "Rasskazovka", 9900},
		{"Marushkino", "Marushkino", 100},
		{"Rasskazovka", "Marushkino", 9500},
		{"Biryulyovo Zapadnoye", "Rossoshanskaya ulitsa", 7500},
		{"Biryulyovo Zapadnoye", "Biryusinka", 1800},
		{"Biryulyovo Zapadnoye", "Universam", 2400},
		{"Biryusinka", "Universam", 750},
		{"Universam", "Rossoshanskaya ulitsa", 5600},
		{"Universam", "Biryulyovo Tovarnaya", 900},
		{"Biryulyovo Tovarnaya", "Biryulyovo Passazhirskaya", 1300},
		{"Biryulyovo Passazhirskaya", "Biryulyovo Zapadnoye", 1200},
	}
	for _, d := range distances {
		if err := cat.SetDistance(d.from, d.to, d.dist); err != nil {
			t.Fatalf("SetDistance(%s, %s) failed: %v", d.from, d.to, err)
		}
	}

	buses := []struct {
		name  string
		stops []string
		round bool
	}{
		{"256", []string{"Biryulyovo Zapadnoye", "Biryusinka", "Universam", "Biryulyovo Tovarnaya", "Biryulyovo Passazhirskaya", "Biryulyovo Zapadnoye"}, true},
		{"750", []string{"Tolstopaltsevo", "Marushkino", "Marushkino", "Rasskazovka"}, false},
		{"828", []string{"Biryulyovo Zapadnoye", "Universam", "Rossoshanskaya ulitsa", "Biryulyovo Zapadnoye"}, true},
	}
	for _, b := range buses {
		if err := cat.AddBus(b.name, b.stops, b.round); err != nil {
			t.Fatalf("AddBus(%s) failed: %v", b.name, err)
		}
	}
	return cat
}

func TestLineStatistics(t *testing.T) {
	cat := buildTestCatalogue(t)

	tests := []struct {
		name      string
		stops     int
		unique    int
		length    int
		curvature float64
	}{
		{"256", 6, 5, 5950, 1.36124},
		{"750", 7, 3, 27400, 1.30853},
	}
	for _, tt := range tests {
		stat, err := cat.GetLineStatistics(tt.name)
		if err != nil {
			t.Fatalf("GetLineStatistics(%s) failed: %v", tt.name, err)
		}
		if stat.Name != tt.name {
			t.Errorf("bus %s: name = %s", tt.name, stat.Name)
		}
		if stat.StopCount != tt.stops {
			t.Errorf("bus %s: stop count = %d; want %d", tt.name, stat.StopCount, tt.stops)
		}
		if stat.UniqueStopCount != tt.unique {
			t.Errorf("bus %s: unique stops = %d; want %d", tt.name, stat.UniqueStopCount, tt.unique)
		}
		if stat.RouteLength != tt.length {
			t.Errorf("bus %s: route length = %d; want %d", tt.name, stat.RouteLength, tt.length)
		}
		if math.Abs(stat.Curvature-tt.curvature) > 1e-5 {
			t.Errorf("bus %s: curvature = %v; want %v", tt.name, stat.Curvature, tt.curvature)
		}
	}
}

func TestLineStatisticsUnknownBus(t *testing.T) {
	cat := buildTestCatalogue(t)
	_, err := cat.GetLineStatistics("999")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("GetLineStatistics(999) error = %v; want ErrNotFound", err)
	}
}

func TestLineStatisticsSingleStop(t *testing.T) {
	cat := NewTransportCatalogue()
	cat.AddStop("X", geo.Coordinates{Lat: 10, Lng: 10})
	if err := cat.AddBus("single", []string{"X"}, false); err != nil {
		t.Fatalf("AddBus failed: %v", err)
	}
	stat, err := cat.GetLineStatistics("single")
	if err != nil {
		t.Fatalf("GetLineStatistics failed: %v", err)
	}
	if stat.StopCount != 1 || stat.UniqueStopCount != 1 || stat.RouteLength != 0 || stat.Curvature != 0 {
		t.Errorf("unexpected stat for single stop line: %+v", stat)
	}
}

func TestLineStatisticsSelfLoop(t *testing.T) {
	cat := NewTransportCatalogue()
	cat.AddStop("X", geo.Coordinates{Lat: 10, Lng: 10})
	if err := cat.SetDistance("X", "X", 100); err != nil {
		t.Fatalf("SetDistance failed: %v", err)
	}
	if err := cat.AddBus("loop", []string{"X", "X"}, false); err != nil {
		t.Fatalf("AddBus failed: %v", err)
	}
	stat, err := cat.GetLineStatistics("loop")
	if err != nil {
		t.Fatalf("GetLineStatistics failed: %v", err)
	}
	if stat.StopCount != 3 {
		t.Errorf("stop count = %d; want 3", stat.StopCount)
	}
	if stat.UniqueStopCount != 1 {
		t.Errorf("unique stops = %d; want 1", stat.UniqueStopCount)
	}
	if stat.RouteLength != 200 {
		t.Errorf("route length = %d; want 200", stat.RouteLength)
	}
	if stat.GeoLength != 0 || stat.Curvature != 0 {
		t.Errorf("geo length = %v, curvature = %v; want 0, 0", stat.GeoLength, stat.Curvature)
	}
}

func TestLineStatisticsMissingDistance(t *testing.T) {
	cat := NewTransportCatalogue()
	cat.AddStop("A", geo.Coordinates{Lat: 0, Lng: 0})
	cat.AddStop("B", geo.Coordinates{Lat: 0, Lng: 1})
	if err := cat.AddBus("1", []string{"A", "B"}, true); err != nil {
		t.Fatalf("AddBus failed: %v", err)
	}
	_, err := cat.GetLineStatistics("1")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("error = %v; want ErrNotFound", err)
	}
}

func TestDistanceFallback(t *testing.T) {
	cat := NewTransportCatalogue()
	cat.AddStop("A", geo.Coordinates{Lat: 0, Lng: 0})
	cat.AddStop("B", geo.Coordinates{Lat: 0, Lng: 1})

	if err := cat.SetDistance("A", "B", 1000); err != nil {
		t.Fatalf("SetDistance failed: %v", err)
	}
	if d, err := cat.GetDistance("B", "A"); err != nil || d != 1000 {
		t.Errorf("GetDistance(B, A) = %d, %v; want 1000", d, err)
	}

	if err := cat.SetDistance("B", "A", 1200); err != nil {
		t.Fatalf("SetDistance failed: %v", err)
	}
	if d, _ := cat.GetDistance("A", "B"); d != 1000 {
		t.Errorf("GetDistance(A, B) = %d; want 1000", d)
	}
	if d, _ := cat.GetDistance("B", "A"); d != 1200 {
		t.Errorf("GetDistance(B, A) = %d; want 1200", d)
	}
}

func TestDistanceMissing(t *testing.T) {
	cat := NewTransportCatalogue()
	cat.AddStop("A", geo.Coordinates{Lat: 0, Lng: 0})
	cat.AddStop("B", geo.Coordinates{Lat: 0, Lng: 1})
	_, err := cat.GetDistance("A", "B")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("error = %v; want ErrNotFound", err)
	}
	if err.Error() != "no distance between B and A: not found" {
		t.Errorf("error message = %q", err.Error())
	}
}

func TestSetDistanceUnknownStop(t *testing.T) {
	cat := NewTransportCatalogue()
	cat.AddStop("A", geo.Coordinates{Lat: 0, Lng: 0})
	if err := cat.SetDistance("A", "Nowhere", 10); !errors.Is(err, ErrNotFound) {
		t.Errorf("SetDistance error = %v; want ErrNotFound", err)
	}
}

func TestAddBusUnknownStop(t *testing.T) {
	cat := NewTransportCatalogue()
	cat.AddStop("A", geo.Coordinates{Lat: 0, Lng: 0})
	err := cat.AddBus("1", []string{"A", "Nowhere"}, true)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("AddBus error = %v; want ErrNotFound", err)
	}
	if _, err := cat.GetBusByName("1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("failed AddBus must not register the bus")
	}
	lines, _ := cat.GetLinesAtStop("A")
	if len(lines) != 0 {
		t.Errorf("failed AddBus must not register lines at stops, got %v", lines)
	}
}

func TestAddBusEmptyRoute(t *testing.T) {
	cat := NewTransportCatalogue()
	if err := cat.AddBus("1", nil, true); !errors.Is(err, ErrEmptyRoute) {
		t.Errorf("AddBus error = %v; want ErrEmptyRoute", err)
	}
}

func TestLinesAtStop(t *testing.T) {
	cat := buildTestCatalogue(t)

	_, err := cat.GetLinesAtStop("Samara")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("GetLinesAtStop(Samara) error = %v; want ErrNotFound", err)
	}
	if err.Error() != "stop Samara: not found" {
		t.Errorf("error message = %q", err.Error())
	}

	lines, err := cat.GetLinesAtStop("Prazhskaya")
	if err != nil || len(lines) != 0 {
		t.Errorf("GetLinesAtStop(Prazhskaya) = %v, %v; want empty", lines, err)
	}

	lines, err = cat.GetLinesAtStop("Biryulyovo Zapadnoye")
	if err != nil {
		t.Fatalf("GetLinesAtStop failed: %v", err)
	}
	if len(lines) != 2 || lines[0] != "256" || lines[1] != "828" {
		t.Errorf("GetLinesAtStop(Biryulyovo Zapadnoye) = %v; want [256 828]", lines)
	}
}

func TestSortedAccess(t *testing.T) {
	cat := buildTestCatalogue(t)

	stops := cat.GetAllStops()
	if stops.Length() != 10 {
		t.Fatalf("GetAllStops length = %d; want 10", stops.Length())
	}
	for i := 1; i < stops.Length(); i++ {
		if stops[i-1].Name >= stops[i].Name {
			t.Errorf("stops not sorted: %s >= %s", stops[i-1].Name, stops[i].Name)
		}
	}

	buses := cat.GetAllBuses()
	if buses.Length() != 3 || buses[0].Name != "256" || buses[2].Name != "828" {
		t.Errorf("GetAllBuses returned unexpected order")
	}
	if names := cat.GetRouteNames(buses[1]); names.Length() != 4 || names[0] != "Tolstopaltsevo" {
		t.Errorf("GetRouteNames = %v", names)
	}

	if cat.GetAllDistances().Length() != 12 {
		t.Errorf("GetAllDistances length = %d; want 12", cat.GetAllDistances().Length())
	}
	if cat.IsStopServed("Prazhskaya") || !cat.IsStopServed("Universam") {
		t.Errorf("IsStopServed returned unexpected result")
	}
}
