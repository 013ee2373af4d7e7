package structs

import (
	"github.com/ttpr0/transit-catalogue/geo"
	. "github.com/ttpr0/transit-catalogue/util"
)

//*******************************************
// catalogue structs
//*******************************************

type Stop struct {
	Name        string
	Coordinates geo.Coordinates
}

// Bus references its stops by index into the catalogue stop arena.
type Bus struct {
	Name        string
	Stops       Array[int32]
	IsRoundtrip bool
}

type Distance struct {
	From     string
	To       string
	Distance int
}

type BusStat struct {
	Name            string
	StopCount       int
	UniqueStopCount int
	RouteLength     int
	GeoLength       float64
	Curvature       float64
}

//*******************************************
// graph structs
//*******************************************

// EdgeWeight is a single ride segment: board BusName at From and ride
// SpanCount stops to To. TotalTime includes the wait at From.
type EdgeWeight struct {
	BusName   string
	From      string
	To        string
	TotalTime float64
	SpanCount int32
}

type RouteEdge struct {
	From   int32
	To     int32
	Weight EdgeWeight
}
