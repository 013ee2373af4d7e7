package preproc

import (
	"fmt"

	"github.com/ttpr0/transit-catalogue/catalogue"
	"github.com/ttpr0/transit-catalogue/comps"
	"github.com/ttpr0/transit-catalogue/structs"
	. "github.com/ttpr0/transit-catalogue/util"
	"golang.org/x/exp/slog"
)

//*******************************************
// prepare transit-graph
//*******************************************

// BuildTransitGraph emits one edge for every ordered pair of stops p < q on
// every bus, plus the mirrored edge for lines that are not round. Buses are
// visited in name order so vertex and edge ids are reproducible.
func BuildTransitGraph(cat *catalogue.TransportCatalogue, settings comps.RoutingSettings) (*comps.TransitGraph, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	mapping := comps.NewStopMapping(cat.StopCount())
	edges := NewList[structs.RouteEdge](100)

	add_edge := func(bus string, from, to structs.Stop, distance int, span int) {
		from_id := mapping.Assign(from.Name)
		to_id := mapping.Assign(to.Name)
		edges.Add(structs.RouteEdge{
			From: from_id,
			To:   to_id,
			Weight: structs.EdgeWeight{
				BusName:   bus,
				From:      from.Name,
				To:        to.Name,
				TotalTime: settings.BusWaitTime + float64(distance)/settings.BusVelocity,
				SpanCount: int32(span),
			},
		})
	}

	for _, bus := range cat.GetAllBuses() {
		route := bus.Stops
		for p := 0; p < route.Length(); p++ {
			forward := 0
			backward := 0
			for q := p + 1; q < route.Length(); q++ {
				prev := cat.GetStop(route[q-1])
				curr := cat.GetStop(route[q])
				dist, err := cat.GetDistance(prev.Name, curr.Name)
				if err != nil {
					return nil, fmt.Errorf("bus %s: %w", bus.Name, err)
				}
				forward += dist
				add_edge(bus.Name, cat.GetStop(route[p]), curr, forward, q-p)
				if bus.IsRoundtrip {
					continue
				}
				dist, err = cat.GetDistance(curr.Name, prev.Name)
				if err != nil {
					return nil, fmt.Errorf("bus %s: %w", bus.Name, err)
				}
				backward += dist
				add_edge(bus.Name, curr, cat.GetStop(route[p]), backward, q-p)
			}
		}
	}

	slog.Info(fmt.Sprintf("built transit graph with %v vertices and %v edges", mapping.Count(), edges.Length()))
	return comps.NewTransitGraph(mapping, edges), nil
}
