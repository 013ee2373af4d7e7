package main

import (
	"errors"

	"github.com/ttpr0/transit-catalogue/catalogue"
	"github.com/ttpr0/transit-catalogue/comps"
	"github.com/ttpr0/transit-catalogue/parser"
	"github.com/ttpr0/transit-catalogue/render"
	"github.com/ttpr0/transit-catalogue/routing"
	"github.com/ttpr0/transit-catalogue/structs"
	. "github.com/ttpr0/transit-catalogue/util"
	"golang.org/x/exp/slog"
)

//**********************************************************
// request handler
//**********************************************************

func NewRequestHandler(cat *catalogue.TransportCatalogue, router *routing.TransitRouter, renderer *render.MapRenderer, settings comps.RoutingSettings) *RequestHandler {
	return &RequestHandler{
		catalogue: cat,
		router:    router,
		renderer:  renderer,
		settings:  settings,
	}
}

// RequestHandler answers stat queries. It only reads and can be shared
// between goroutines.
type RequestHandler struct {
	catalogue *catalogue.TransportCatalogue
	router    *routing.TransitRouter
	renderer  *render.MapRenderer
	settings  comps.RoutingSettings
}

func (self *RequestHandler) GetBusStat(name string) (structs.BusStat, error) {
	return self.catalogue.GetLineStatistics(name)
}

func (self *RequestHandler) GetBusesByStop(name string) (List[string], error) {
	return self.catalogue.GetLinesAtStop(name)
}

func (self *RequestHandler) BuildRoute(from, to string) (Optional[routing.Route], error) {
	return self.router.BuildRoute(from, to)
}

func (self *RequestHandler) RenderMap() string {
	return self.renderer.RenderMap(self.catalogue).String()
}

func (self *RequestHandler) GetSettings() comps.RoutingSettings {
	return self.settings
}

// ProcessRequests answers the requests in order. Unknown request types are
// skipped.
func (self *RequestHandler) ProcessRequests(requests []parser.StatRequest) []any {
	responses := make([]any, 0, len(requests))
	for _, req := range requests {
		resp := self.ProcessRequest(req)
		if resp == nil {
			continue
		}
		responses = append(responses, resp)
	}
	return responses
}

func (self *RequestHandler) ProcessRequest(req parser.StatRequest) any {
	var resp any
	var err error
	switch req.Type {
	case "Bus":
		resp, err = self._BusResponse(req.ID, req.Name)
	case "Stop":
		resp, err = self._StopResponse(req.ID, req.Name)
	case "Route":
		resp, err = self._RouteResponse(req.ID, req.From, req.To)
	case "Map":
		resp = MapResponse{RequestID: req.ID, Map: self.RenderMap()}
	default:
		return nil
	}
	if errors.Is(err, ErrNotFound) {
		return NewErrorResponse(req.ID, "not found")
	}
	if err != nil {
		slog.Error("request " + req.Type + " failed: " + err.Error())
		return NewErrorResponse(req.ID, err.Error())
	}
	return resp
}

func (self *RequestHandler) _BusResponse(id int, name string) (any, error) {
	stat, err := self.GetBusStat(name)
	if err != nil {
		return nil, err
	}
	return BusResponse{
		RequestID:       id,
		Curvature:       stat.Curvature,
		RouteLength:     stat.RouteLength,
		StopCount:       stat.StopCount,
		UniqueStopCount: stat.UniqueStopCount,
	}, nil
}

func (self *RequestHandler) _StopResponse(id int, name string) (any, error) {
	buses, err := self.GetBusesByStop(name)
	if err != nil {
		return nil, err
	}
	return StopResponse{
		RequestID: id,
		Buses:     buses,
	}, nil
}

// A route without a path is reported as not found.
func (self *RequestHandler) _RouteResponse(id int, from, to string) (any, error) {
	route, err := self.BuildRoute(from, to)
	if err != nil {
		return nil, err
	}
	if !route.HasValue() {
		return nil, ErrNotFound
	}
	wait := self.settings.BusWaitTime
	items := make([]any, 0, 2*route.Value.Items.Length())
	for _, item := range route.Value.Items {
		items = append(items, WaitItem{
			StopName: item.From,
			Time:     wait,
			Type:     "Wait",
		})
		items = append(items, RideItem{
			Bus:       item.BusName,
			SpanCount: item.SpanCount,
			Time:      item.TotalTime - wait,
			Type:      "Bus",
		})
	}
	return RouteResponse{
		RequestID: id,
		TotalTime: route.Value.TotalTime,
		Items:     items,
	}, nil
}
