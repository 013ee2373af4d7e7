package parser

import (
	"errors"
	"strings"
	"testing"

	"github.com/paulmach/osm"
	"github.com/ttpr0/transit-catalogue/catalogue"
	. "github.com/ttpr0/transit-catalogue/util"
)

const test_document = `{
	"serialization_settings": {"file": "transport_catalogue.db"},
	"routing_settings": {"bus_wait_time": 2, "bus_velocity": 30},
	"render_settings": {"width": 200, "height": 200, "color_palette": ["green", [255, 160, 0], "red"]},
	"base_requests": [
		{"type": "Bus", "name": "297", "stops": ["Biryulyovo Zapadnoye", "Biryulyovo Tovarnaya", "Universam", "Biryulyovo Zapadnoye"], "is_roundtrip": true},
		{"type": "Bus", "name": "635", "stops": ["Biryulyovo Tovarnaya", "Universam", "Prazhskaya"], "is_roundtrip": false},
		{"type": "Stop", "name": "Biryulyovo Zapadnoye", "latitude": 55.574371, "longitude": 37.6517, "road_distances": {"Biryulyovo Tovarnaya": 2600}},
		{"type": "Stop", "name": "Universam", "latitude": 55.587655, "longitude": 37.645687, "road_distances": {"Biryulyovo Zapadnoye": 2500, "Biryulyovo Tovarnaya": 1380, "Prazhskaya": 4650}},
		{"type": "Stop", "name": "Biryulyovo Tovarnaya", "latitude": 55.592028, "longitude": 37.653656, "road_distances": {"Universam": 890}},
		{"type": "Stop", "name": "Prazhskaya", "latitude": 55.611717, "longitude": 37.603938, "road_distances": {}}
	],
	"stat_requests": [
		{"id": 1, "type": "Bus", "name": "297"},
		{"id": 2, "type": "Stop", "name": "Prazhskaya"},
		{"id": 3, "type": "Route", "from": "Biryulyovo Zapadnoye", "to": "Universam"},
		{"id": 4, "type": "Map"}
	]
}`

func TestReadDocument(t *testing.T) {
	doc, err := ReadDocument(strings.NewReader(test_document))
	if err != nil {
		t.Fatalf("failed to read document: %v", err)
	}
	if len(doc.BaseRequests) != 6 || len(doc.StatRequests) != 4 {
		t.Fatalf("got %d base and %d stat requests", len(doc.BaseRequests), len(doc.StatRequests))
	}
	if doc.SerializationSettings == nil || doc.SerializationSettings.File != "transport_catalogue.db" {
		t.Errorf("serialization settings = %+v", doc.SerializationSettings)
	}
	if doc.RoutingSettings == nil {
		t.Fatalf("missing routing settings")
	}
	settings := doc.RoutingSettings.ToSettings()
	if settings.BusWaitTime != 2 || settings.BusVelocity != 500 {
		t.Errorf("routing settings = %+v; want wait 2 and velocity 500", settings)
	}
	if len(doc.RenderSettings) == 0 {
		t.Errorf("render settings must be kept")
	}
	if req := doc.StatRequests[2]; req.Type != "Route" || req.From != "Biryulyovo Zapadnoye" || req.To != "Universam" {
		t.Errorf("route request = %+v", req)
	}
}

func TestReadDocumentInvalid(t *testing.T) {
	tests := []string{
		`{"base_requests": [`,
		`{"base_requests": [{"type": "Tram", "name": "1"}]}`,
		`{"stat_requests": [{"id": 1, "type": "Unknown"}]}`,
		`{"routing_settings": {"bus_wait_time": 2, "bus_velocity": 0}}`,
	}
	for _, data := range tests {
		if _, err := ReadDocument(strings.NewReader(data)); err == nil {
			t.Errorf("expected error for %s", data)
		}
	}
}

func TestLoadCatalogue(t *testing.T) {
	doc, err := ReadDocument(strings.NewReader(test_document))
	if err != nil {
		t.Fatalf("failed to read document: %v", err)
	}
	cat := catalogue.NewTransportCatalogue()
	if err := LoadCatalogue(doc, cat); err != nil {
		t.Fatalf("failed to load catalogue: %v", err)
	}
	if cat.StopCount() != 4 || cat.BusCount() != 2 {
		t.Errorf("catalogue has %d stops and %d buses", cat.StopCount(), cat.BusCount())
	}
	stat, err := cat.GetLineStatistics("635")
	if err != nil {
		t.Fatalf("failed to get statistics: %v", err)
	}
	if stat.StopCount != 5 || stat.UniqueStopCount != 3 {
		t.Errorf("stat = %+v", stat)
	}
	if d, _ := cat.GetDistance("Prazhskaya", "Universam"); d != 4650 {
		t.Errorf("distance fallback = %d; want 4650", d)
	}
}

func TestLoadCatalogueUnknownStop(t *testing.T) {
	doc := &Document{
		BaseRequests: []BaseRequest{
			{Type: "Stop", Name: "A", RoadDistances: map[string]int{"B": 100}},
		},
	}
	if err := LoadCatalogue(doc, catalogue.NewTransportCatalogue()); !errors.Is(err, ErrNotFound) {
		t.Errorf("error = %v; want ErrNotFound", err)
	}
}

func _Node(id int64, lat, lon float64, tags ...string) *osm.Node {
	node := &osm.Node{ID: osm.NodeID(id), Lat: lat, Lon: lon}
	for i := 0; i+1 < len(tags); i += 2 {
		node.Tags = append(node.Tags, osm.Tag{Key: tags[i], Value: tags[i+1]})
	}
	return node
}

func _Relation(id int64, refs []int64, tags ...string) *osm.Relation {
	relation := &osm.Relation{ID: osm.RelationID(id)}
	for i := 0; i+1 < len(tags); i += 2 {
		relation.Tags = append(relation.Tags, osm.Tag{Key: tags[i], Value: tags[i+1]})
	}
	for _, ref := range refs {
		relation.Members = append(relation.Members, osm.Member{Type: osm.TypeNode, Ref: ref, Role: "stop"})
	}
	relation.Members = append(relation.Members, osm.Member{Type: osm.TypeWay, Ref: 99, Role: ""})
	return relation
}

func TestTransitCollector(t *testing.T) {
	collector := NewTransitCollector(&BusDecoder{})
	collector.AddNode(_Node(1, 0, 0, "highway", "bus_stop", "name", "A"))
	collector.AddNode(_Node(2, 0, 0.01, "public_transport", "platform", "name", "B"))
	collector.AddNode(_Node(3, 0, 0.01, "public_transport", "stop_position", "name", "B"))
	collector.AddNode(_Node(4, 0, 0.02, "highway", "bus_stop", "name", "C"))
	collector.AddNode(_Node(5, 0, 0.03, "highway", "bus_stop"))
	collector.AddNode(_Node(6, 0, 0.04, "amenity", "bench", "name", "Bench"))

	collector.AddRelation(_Relation(10, []int64{1, 2, 3, 4}, "type", "route", "route", "bus", "ref", "7"))
	collector.AddRelation(_Relation(11, []int64{4, 1}, "type", "route", "route", "bus", "ref", "7"))
	collector.AddRelation(_Relation(12, []int64{1, 4, 1}, "type", "route", "route", "bus", "name", "Ring"))
	collector.AddRelation(_Relation(13, []int64{1, 4}, "type", "route", "route", "tram", "ref", "T1"))

	cat := catalogue.NewTransportCatalogue()
	if err := collector.Apply(cat); err != nil {
		t.Fatalf("failed to apply: %v", err)
	}
	if cat.StopCount() != 3 {
		t.Errorf("stop count = %d; want 3", cat.StopCount())
	}
	if cat.BusCount() != 2 {
		t.Fatalf("bus count = %d; want 2", cat.BusCount())
	}

	line, err := cat.GetBusByName("7")
	if err != nil {
		t.Fatalf("line 7 missing: %v", err)
	}
	if names := cat.GetRouteNames(line); names.Length() != 3 || line.IsRoundtrip {
		t.Errorf("line 7 = %v (round %v); want [A B C] back and forth", names, line.IsRoundtrip)
	}
	ring, err := cat.GetBusByName("Ring")
	if err != nil || !ring.IsRoundtrip {
		t.Errorf("line Ring must be round")
	}

	d, err := cat.GetDistance("A", "B")
	if err != nil {
		t.Fatalf("missing distance: %v", err)
	}
	if d < 1100 || d > 1125 {
		t.Errorf("distance A -> B = %d; want about 1112", d)
	}
	if _, err := cat.GetLineStatistics("7"); err != nil {
		t.Errorf("statistics of osm line failed: %v", err)
	}
}
