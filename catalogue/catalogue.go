package catalogue

import (
	"errors"
	"fmt"

	"github.com/ttpr0/transit-catalogue/geo"
	"github.com/ttpr0/transit-catalogue/structs"
	. "github.com/ttpr0/transit-catalogue/util"
	"golang.org/x/exp/slices"
)

var ErrEmptyRoute = errors.New("empty route")

//*******************************************
// transport catalogue
//*******************************************

// TransportCatalogue owns all stops and buses. Everything else refers to
// them by arena index or by name.
type TransportCatalogue struct {
	stops         List[structs.Stop]
	buses         List[structs.Bus]
	stop_index    Dict[string, int32]
	bus_index     Dict[string, int32]
	buses_at_stop Dict[string, Dict[string, bool]]
	distances     Dict[[2]int32, int]
}

func NewTransportCatalogue() *TransportCatalogue {
	return &TransportCatalogue{
		stops:         NewList[structs.Stop](100),
		buses:         NewList[structs.Bus](10),
		stop_index:    NewDict[string, int32](100),
		bus_index:     NewDict[string, int32](10),
		buses_at_stop: NewDict[string, Dict[string, bool]](100),
		distances:     NewDict[[2]int32, int](100),
	}
}

// AddStop does not guard against duplicate names: the name index is
// re-pointed at the new stop.
func (self *TransportCatalogue) AddStop(name string, coordinates geo.Coordinates) {
	self.stops.Add(structs.Stop{
		Name:        name,
		Coordinates: coordinates,
	})
	self.stop_index[name] = int32(self.stops.Length() - 1)
	if !self.buses_at_stop.ContainsKey(name) {
		self.buses_at_stop[name] = NewDict[string, bool](4)
	}
}

func (self *TransportCatalogue) AddBus(name string, stops []string, is_roundtrip bool) error {
	if len(stops) == 0 {
		return fmt.Errorf("bus %s: %w", name, ErrEmptyRoute)
	}
	route := NewArray[int32](len(stops))
	for i, stop := range stops {
		id, err := self._GetStopID(stop)
		if err != nil {
			return err
		}
		route[i] = id
	}
	self.buses.Add(structs.Bus{
		Name:        name,
		Stops:       route,
		IsRoundtrip: is_roundtrip,
	})
	self.bus_index[name] = int32(self.buses.Length() - 1)
	for _, stop := range stops {
		self.buses_at_stop[stop][name] = true
	}
	return nil
}

func (self *TransportCatalogue) SetDistance(from, to string, distance int) error {
	from_id, err := self._GetStopID(from)
	if err != nil {
		return err
	}
	to_id, err := self._GetStopID(to)
	if err != nil {
		return err
	}
	self.distances[[2]int32{from_id, to_id}] = distance
	return nil
}

// GetDistance falls back to the reversed pair when only one direction was measured.
func (self *TransportCatalogue) GetDistance(from, to string) (int, error) {
	from_id, err := self._GetStopID(from)
	if err != nil {
		return 0, err
	}
	to_id, err := self._GetStopID(to)
	if err != nil {
		return 0, err
	}
	return self._GetDistance(from_id, to_id)
}

func (self *TransportCatalogue) _GetDistance(from, to int32) (int, error) {
	if dist, ok := self.distances[[2]int32{from, to}]; ok {
		return dist, nil
	}
	if dist, ok := self.distances[[2]int32{to, from}]; ok {
		return dist, nil
	}
	return 0, fmt.Errorf("no distance between %s and %s: %w", self.stops[to].Name, self.stops[from].Name, ErrNotFound)
}

// GetLineStatistics walks the stop sequence of a bus. Back-and-forth lines
// are counted there and back, using the measured distances of each direction.
// Curvature is 0 if the geometric length is 0.
func (self *TransportCatalogue) GetLineStatistics(name string) (structs.BusStat, error) {
	bus, err := self.GetBusByName(name)
	if err != nil {
		return structs.BusStat{}, err
	}
	route := bus.Stops
	stop_count := route.Length()
	unique := NewDict[string, bool](stop_count)
	route_length := 0
	geo_length := 0.0
	for i, stop_id := range route {
		stop := self.stops[stop_id]
		unique[stop.Name] = true
		if i == 0 {
			continue
		}
		prev := self.stops[route[i-1]]
		geo_length += geo.ComputeDistance(prev.Coordinates, stop.Coordinates)
		dist, err := self._GetDistance(route[i-1], stop_id)
		if err != nil {
			return structs.BusStat{}, err
		}
		route_length += dist
	}
	if !bus.IsRoundtrip {
		geo_length *= 2
		stop_count = 2*stop_count - 1
		for i := route.Length() - 1; i > 0; i-- {
			dist, err := self._GetDistance(route[i], route[i-1])
			if err != nil {
				return structs.BusStat{}, err
			}
			route_length += dist
		}
	}
	curvature := 0.0
	if geo_length != 0 {
		curvature = float64(route_length) / geo_length
	}
	return structs.BusStat{
		Name:            bus.Name,
		StopCount:       stop_count,
		UniqueStopCount: unique.Length(),
		RouteLength:     route_length,
		GeoLength:       geo_length,
		Curvature:       curvature,
	}, nil
}

// GetLinesAtStop returns the name-sorted lines serving a stop.
func (self *TransportCatalogue) GetLinesAtStop(name string) (List[string], error) {
	buses, ok := self.buses_at_stop[name]
	if !ok {
		return nil, fmt.Errorf("stop %s: %w", name, ErrNotFound)
	}
	return SortedKeys(buses), nil
}

func (self *TransportCatalogue) IsStopServed(name string) bool {
	return self.buses_at_stop[name].Length() > 0
}

//*******************************************
// read-only access
//*******************************************

func (self *TransportCatalogue) StopCount() int {
	return self.stops.Length()
}
func (self *TransportCatalogue) BusCount() int {
	return self.buses.Length()
}
func (self *TransportCatalogue) GetStop(stop int32) structs.Stop {
	return self.stops[stop]
}
func (self *TransportCatalogue) GetBus(bus int32) structs.Bus {
	return self.buses[bus]
}
func (self *TransportCatalogue) GetStopByName(name string) (structs.Stop, error) {
	id, err := self._GetStopID(name)
	if err != nil {
		return structs.Stop{}, err
	}
	return self.stops[id], nil
}
func (self *TransportCatalogue) GetBusByName(name string) (structs.Bus, error) {
	id, ok := self.bus_index[name]
	if !ok {
		return structs.Bus{}, fmt.Errorf("bus %s: %w", name, ErrNotFound)
	}
	return self.buses[id], nil
}

// GetRouteNames resolves the stop indices of a bus to stop names.
func (self *TransportCatalogue) GetRouteNames(bus structs.Bus) List[string] {
	names := NewList[string](bus.Stops.Length())
	for _, id := range bus.Stops {
		names.Add(self.stops[id].Name)
	}
	return names
}

// GetAllStops returns the indexed stops sorted by name.
func (self *TransportCatalogue) GetAllStops() List[structs.Stop] {
	stops := NewList[structs.Stop](self.stop_index.Length())
	for _, name := range SortedKeys(self.stop_index) {
		stops.Add(self.stops[self.stop_index[name]])
	}
	return stops
}

// GetAllBuses returns the indexed buses sorted by name.
func (self *TransportCatalogue) GetAllBuses() List[structs.Bus] {
	buses := NewList[structs.Bus](self.bus_index.Length())
	for _, name := range SortedKeys(self.bus_index) {
		buses.Add(self.buses[self.bus_index[name]])
	}
	return buses
}

// GetAllDistances returns every measured distance ordered by stop indices.
func (self *TransportCatalogue) GetAllDistances() List[structs.Distance] {
	keys := NewList[[2]int32](self.distances.Length())
	for key := range self.distances {
		keys.Add(key)
	}
	slices.SortFunc(keys, func(a, b [2]int32) int {
		if a[0] != b[0] {
			return int(a[0] - b[0])
		}
		return int(a[1] - b[1])
	})
	distances := NewList[structs.Distance](keys.Length())
	for _, key := range keys {
		distances.Add(structs.Distance{
			From:     self.stops[key[0]].Name,
			To:       self.stops[key[1]].Name,
			Distance: self.distances[key],
		})
	}
	return distances
}

func (self *TransportCatalogue) _GetStopID(name string) (int32, error) {
	id, ok := self.stop_index[name]
	if !ok {
		return -1, fmt.Errorf("stop %s: %w", name, ErrNotFound)
	}
	return id, nil
}
