package parser

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/go-playground/validator/v10"
	"github.com/ttpr0/transit-catalogue/catalogue"
	"github.com/ttpr0/transit-catalogue/comps"
	"github.com/ttpr0/transit-catalogue/geo"
	. "github.com/ttpr0/transit-catalogue/util"
)

//*******************************************
// request document
//*******************************************

type Document struct {
	BaseRequests          []BaseRequest          `json:"base_requests" validate:"dive"`
	RenderSettings        json.RawMessage        `json:"render_settings"`
	RoutingSettings       *RoutingSettings       `json:"routing_settings"`
	SerializationSettings *SerializationSettings `json:"serialization_settings"`
	StatRequests          []StatRequest          `json:"stat_requests" validate:"dive"`
}

// BaseRequest is either a stop (with coordinates and road distances) or a
// bus line (with its stop names).
type BaseRequest struct {
	Type          string         `json:"type" validate:"oneof=Stop Bus"`
	Name          string         `json:"name" validate:"required"`
	Latitude      float64        `json:"latitude" validate:"gte=-90,lte=90"`
	Longitude     float64        `json:"longitude" validate:"gte=-180,lte=180"`
	RoadDistances map[string]int `json:"road_distances"`
	Stops         []string       `json:"stops"`
	IsRoundtrip   bool           `json:"is_roundtrip"`
}

type RoutingSettings struct {
	BusWaitTime int     `json:"bus_wait_time" validate:"gte=0"`
	BusVelocity float64 `json:"bus_velocity" validate:"gt=0"`
}

// Converts the velocity from km/h to m/min.
func (self RoutingSettings) ToSettings() comps.RoutingSettings {
	return comps.RoutingSettings{
		BusWaitTime: float64(self.BusWaitTime),
		BusVelocity: self.BusVelocity * 1000 / 60,
	}
}

type SerializationSettings struct {
	File string `json:"file" validate:"required"`
}

type StatRequest struct {
	ID   int    `json:"id"`
	Type string `json:"type" validate:"oneof=Bus Stop Route Map"`
	Name string `json:"name"`
	From string `json:"from"`
	To   string `json:"to"`
}

var validate = validator.New()

func ReadDocument(reader io.Reader) (*Document, error) {
	var doc Document
	if err := json.NewDecoder(reader).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to parse document: %w", err)
	}
	if err := validate.Struct(&doc); err != nil {
		return nil, fmt.Errorf("invalid document: %w", err)
	}
	return &doc, nil
}

// LoadCatalogue adds all stops, then all road distances, then all buses.
func LoadCatalogue(doc *Document, cat *catalogue.TransportCatalogue) error {
	for _, req := range doc.BaseRequests {
		if req.Type != "Stop" {
			continue
		}
		cat.AddStop(req.Name, geo.Coordinates{Lat: req.Latitude, Lng: req.Longitude})
	}
	for _, req := range doc.BaseRequests {
		if req.Type != "Stop" {
			continue
		}
		for _, to := range SortedKeys(Dict[string, int](req.RoadDistances)) {
			if err := cat.SetDistance(req.Name, to, req.RoadDistances[to]); err != nil {
				return err
			}
		}
	}
	for _, req := range doc.BaseRequests {
		if req.Type != "Bus" {
			continue
		}
		if err := cat.AddBus(req.Name, req.Stops, req.IsRoundtrip); err != nil {
			return err
		}
	}
	return nil
}
