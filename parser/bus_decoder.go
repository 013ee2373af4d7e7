package parser

import (
	"strings"

	. "github.com/ttpr0/transit-catalogue/util"
)

//*******************************************
// osm decoder
//*******************************************

type IOSMDecoder interface {
	IsStop(tags Dict[string, string]) bool
	IsLine(tags Dict[string, string]) bool
	IsStopRole(role string) bool
	LineName(tags Dict[string, string]) string
	IsRoundtrip(tags Dict[string, string]) bool
}

type BusDecoder struct {
}

var stop_types = Dict[string, bool]{"platform": true, "stop_position": true}

func (self *BusDecoder) IsStop(tags Dict[string, string]) bool {
	if tags.Get("name") == "" {
		return false
	}
	if tags.Get("highway") == "bus_stop" {
		return true
	}
	return stop_types.ContainsKey(tags.Get("public_transport"))
}
func (self *BusDecoder) IsLine(tags Dict[string, string]) bool {
	return tags.Get("type") == "route" && tags.Get("route") == "bus"
}

// Roles are "stop", "platform" or one of their entry/exit variants.
func (self *BusDecoder) IsStopRole(role string) bool {
	return strings.HasPrefix(role, "stop") || strings.HasPrefix(role, "platform")
}
func (self *BusDecoder) LineName(tags Dict[string, string]) string {
	if ref := tags.Get("ref"); ref != "" {
		return ref
	}
	return tags.Get("name")
}
func (self *BusDecoder) IsRoundtrip(tags Dict[string, string]) bool {
	return tags.Get("roundtrip") == "yes"
}
