package parser

import (
	"context"
	"fmt"
	"math"
	"os"
	"runtime"

	"github.com/paulmach/orb"
	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"
	"github.com/ttpr0/transit-catalogue/catalogue"
	"github.com/ttpr0/transit-catalogue/geo"
	. "github.com/ttpr0/transit-catalogue/util"
	"golang.org/x/exp/slog"
)

// ParseOSM reads bus stops and bus route relations from a pbf file. Road
// distances are not part of osm data, so consecutive stops get their rounded
// great-circle distance unless a distance is already known.
func ParseOSM(ctx context.Context, pbf_file string, decoder IOSMDecoder, cat *catalogue.TransportCatalogue) error {
	collector := NewTransitCollector(decoder)

	file, err := os.Open(pbf_file)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", pbf_file, err)
	}
	defer file.Close()

	scanner := osmpbf.New(ctx, file, runtime.GOMAXPROCS(-1))
	scanner.SkipWays = true
	scanner.SkipRelations = true
	for scanner.Scan() {
		if node, ok := scanner.Object().(*osm.Node); ok {
			collector.AddNode(node)
		}
	}
	err = scanner.Err()
	scanner.Close()
	if err != nil {
		return fmt.Errorf("failed to read nodes: %w", err)
	}

	if _, err := file.Seek(0, 0); err != nil {
		return err
	}
	scanner = osmpbf.New(ctx, file, runtime.GOMAXPROCS(-1))
	scanner.SkipNodes = true
	scanner.SkipWays = true
	for scanner.Scan() {
		if relation, ok := scanner.Object().(*osm.Relation); ok {
			collector.AddRelation(relation)
		}
	}
	err = scanner.Err()
	scanner.Close()
	if err != nil {
		return fmt.Errorf("failed to read relations: %w", err)
	}

	return collector.Apply(cat)
}

//*******************************************
// transit collector
//*******************************************

type _OSMStop struct {
	name  string
	point orb.Point
}

type _OSMLine struct {
	name         string
	stops        List[string]
	is_roundtrip bool
}

func NewTransitCollector(decoder IOSMDecoder) *TransitCollector {
	return &TransitCollector{
		decoder:    decoder,
		stops:      NewList[_OSMStop](1000),
		stop_names: NewDict[string, bool](1000),
		nodes:      NewDict[int64, string](1000),
		lines:      NewList[_OSMLine](100),
		line_names: NewDict[string, bool](100),
	}
}

// TransitCollector gathers stops and lines from osm objects. Nodes must be
// added before the relations referencing them.
type TransitCollector struct {
	decoder    IOSMDecoder
	stops      List[_OSMStop]
	stop_names Dict[string, bool]
	nodes      Dict[int64, string]
	lines      List[_OSMLine]
	line_names Dict[string, bool]
}

// AddNode keeps the first node per stop name. Platforms and stop positions
// of the same stop share the name.
func (self *TransitCollector) AddNode(node *osm.Node) {
	tags := Dict[string, string](node.TagMap())
	if !self.decoder.IsStop(tags) {
		return
	}
	name := tags.Get("name")
	self.nodes[int64(node.ID)] = name
	if self.stop_names.ContainsKey(name) {
		return
	}
	self.stop_names[name] = true
	self.stops.Add(_OSMStop{
		name:  name,
		point: orb.Point{node.Lon, node.Lat},
	})
}

func (self *TransitCollector) AddRelation(relation *osm.Relation) {
	tags := Dict[string, string](relation.TagMap())
	if !self.decoder.IsLine(tags) {
		return
	}
	name := self.decoder.LineName(tags)
	if name == "" {
		return
	}
	if self.line_names.ContainsKey(name) {
		slog.Debug(fmt.Sprintf("skipping duplicate line %s (relation %v)", name, relation.ID))
		return
	}
	stops := NewList[string](10)
	for _, member := range relation.Members {
		if member.Type != osm.TypeNode || !self.decoder.IsStopRole(member.Role) {
			continue
		}
		stop, ok := self.nodes[member.Ref]
		if !ok {
			continue
		}
		if stops.Length() > 0 && stops[stops.Length()-1] == stop {
			continue
		}
		stops.Add(stop)
	}
	if stops.Length() < 2 {
		return
	}
	is_roundtrip := self.decoder.IsRoundtrip(tags) || stops[0] == stops[stops.Length()-1]
	self.line_names[name] = true
	self.lines.Add(_OSMLine{
		name:         name,
		stops:        stops,
		is_roundtrip: is_roundtrip,
	})
}

// Apply adds the collected stops, distances and lines to the catalogue.
func (self *TransitCollector) Apply(cat *catalogue.TransportCatalogue) error {
	points := NewDict[string, orb.Point](self.stops.Length())
	for _, stop := range self.stops {
		cat.AddStop(stop.name, geo.Coordinates{Lat: stop.point[1], Lng: stop.point[0]})
		points[stop.name] = stop.point
	}
	for _, line := range self.lines {
		for i := 1; i < line.stops.Length(); i++ {
			from, to := line.stops[i-1], line.stops[i]
			if _, err := cat.GetDistance(from, to); err == nil {
				continue
			}
			a, b := points[from], points[to]
			dist := geo.ComputeDistance(geo.Coordinates{Lat: a[1], Lng: a[0]}, geo.Coordinates{Lat: b[1], Lng: b[0]})
			if err := cat.SetDistance(from, to, int(math.Round(dist))); err != nil {
				return err
			}
		}
	}
	for _, line := range self.lines {
		if err := cat.AddBus(line.name, line.stops, line.is_roundtrip); err != nil {
			return err
		}
	}
	slog.Info(fmt.Sprintf("collected %v stops and %v lines from osm", self.stops.Length(), self.lines.Length()))
	return nil
}
