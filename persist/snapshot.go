package persist

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/ttpr0/transit-catalogue/catalogue"
	"github.com/ttpr0/transit-catalogue/comps"
	"github.com/ttpr0/transit-catalogue/geo"
	"github.com/ttpr0/transit-catalogue/routing"
	. "github.com/ttpr0/transit-catalogue/util"
	"golang.org/x/exp/slog"
)

var ErrMalformedSnapshot = errors.New("malformed snapshot")

const FORMAT_VERSION = 1

// top-level fields of the snapshot container
const (
	_HEADER          = 1
	_STOP            = 2
	_DISTANCE        = 3
	_BUS             = 4
	_RENDER_SETTINGS = 5
	_ROUTING         = 6
	_GRAPH           = 7
	_TABLE           = 8
)

//*******************************************
// snapshot
//*******************************************

// Snapshot is everything needed to answer queries without rebuilding:
// the catalogue, the settings and the solved route index.
type Snapshot struct {
	ID             uuid.UUID
	CreatedAt      time.Time
	Catalogue      *catalogue.TransportCatalogue
	RenderSettings []byte
	Routing        comps.RoutingSettings
	Graph          *comps.TransitGraph
	Table          *comps.RouteTable
}

func NewSnapshot(cat *catalogue.TransportCatalogue, render_settings []byte, settings comps.RoutingSettings, router *routing.TransitRouter) *Snapshot {
	return &Snapshot{
		ID:             uuid.New(),
		CreatedAt:      time.Now().UTC(),
		Catalogue:      cat,
		RenderSettings: render_settings,
		Routing:        settings,
		Graph:          router.GetGraph(),
		Table:          router.GetTable(),
	}
}

// Router wraps the restored index without recomputing it.
func (self *Snapshot) Router() (*routing.TransitRouter, error) {
	return routing.NewTransitRouter(self.Graph, self.Table)
}

//*******************************************
// encode
//*******************************************

func Encode(snapshot *Snapshot) ([]byte, error) {
	if snapshot.Catalogue == nil || snapshot.Graph == nil || snapshot.Table == nil {
		return nil, fmt.Errorf("incomplete snapshot")
	}
	writer := NewBufferWriter()
	writer.WriteMessage(_HEADER, func(w *BufferWriter) {
		w.WriteString(1, snapshot.ID.String())
		w.WriteVarint(2, FORMAT_VERSION)
		w.WriteInt(3, snapshot.CreatedAt.UnixNano())
	})

	cat := snapshot.Catalogue
	for _, stop := range cat.GetAllStops() {
		writer.WriteMessage(_STOP, func(w *BufferWriter) {
			w.WriteString(1, stop.Name)
			w.WriteDouble(2, stop.Coordinates.Lat)
			w.WriteDouble(3, stop.Coordinates.Lng)
		})
	}
	for _, dist := range cat.GetAllDistances() {
		writer.WriteMessage(_DISTANCE, func(w *BufferWriter) {
			w.WriteString(1, dist.From)
			w.WriteString(2, dist.To)
			w.WriteInt(3, int64(dist.Distance))
		})
	}
	for _, bus := range cat.GetAllBuses() {
		writer.WriteMessage(_BUS, func(w *BufferWriter) {
			w.WriteString(1, bus.Name)
			for _, name := range cat.GetRouteNames(bus) {
				w.WriteString(2, name)
			}
			w.WriteBool(3, bus.IsRoundtrip)
		})
	}
	if snapshot.RenderSettings != nil {
		writer.WriteBytes(_RENDER_SETTINGS, snapshot.RenderSettings)
	}
	comps.Store(&snapshot.Routing, _ROUTING, writer)
	comps.Store(snapshot.Graph, _GRAPH, writer)
	comps.Store(snapshot.Table, _TABLE, writer)

	data := writer.Bytes()
	slog.Debug(fmt.Sprintf("encoded snapshot %v (%v bytes)", snapshot.ID, len(data)))
	return data, nil
}

//*******************************************
// decode
//*******************************************

type _BusEntry struct {
	name         string
	stops        List[string]
	is_roundtrip bool
}

// Decode restores a snapshot written by Encode. Any inconsistency fails the
// whole decode with ErrMalformedSnapshot.
func Decode(data []byte) (*Snapshot, error) {
	snapshot, err := _Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedSnapshot, err)
	}
	return snapshot, nil
}

func _Decode(data []byte) (*Snapshot, error) {
	var (
		has_header bool
		settings   *comps.RoutingSettings
		graph      *comps.TransitGraph
		table_data []byte
		has_table  bool
		err        error
	)
	snapshot := &Snapshot{}
	stops := NewList[Tuple[string, geo.Coordinates]](100)
	distances := NewList[Tuple[Tuple[string, string], int]](100)
	buses := NewList[_BusEntry](10)

	reader := NewBufferReader(data)
	for reader.Next() {
		switch reader.Field() {
		case _HEADER:
			if err := _DecodeHeader(reader.ReadMessage(), snapshot); err != nil {
				return nil, err
			}
			has_header = true
		case _STOP:
			sub := reader.ReadMessage()
			var name string
			var coords geo.Coordinates
			for sub.Next() {
				switch sub.Field() {
				case 1:
					name = sub.ReadString()
				case 2:
					coords.Lat = sub.ReadDouble()
				case 3:
					coords.Lng = sub.ReadDouble()
				default:
					sub.Skip()
				}
			}
			if err := sub.Err(); err != nil {
				return nil, err
			}
			stops.Add(MakeTuple(name, coords))
		case _DISTANCE:
			sub := reader.ReadMessage()
			var from, to string
			var dist int64
			for sub.Next() {
				switch sub.Field() {
				case 1:
					from = sub.ReadString()
				case 2:
					to = sub.ReadString()
				case 3:
					dist = sub.ReadInt()
				default:
					sub.Skip()
				}
			}
			if err := sub.Err(); err != nil {
				return nil, err
			}
			distances.Add(MakeTuple(MakeTuple(from, to), int(dist)))
		case _BUS:
			sub := reader.ReadMessage()
			bus := _BusEntry{stops: NewList[string](10)}
			for sub.Next() {
				switch sub.Field() {
				case 1:
					bus.name = sub.ReadString()
				case 2:
					bus.stops.Add(sub.ReadString())
				case 3:
					bus.is_roundtrip = sub.ReadBool()
				default:
					sub.Skip()
				}
			}
			if err := sub.Err(); err != nil {
				return nil, err
			}
			buses.Add(bus)
		case _RENDER_SETTINGS:
			snapshot.RenderSettings = reader.ReadBytes()
		case _ROUTING:
			if settings, err = comps.Load[*comps.RoutingSettings](reader); err != nil {
				return nil, fmt.Errorf("routing settings: %v", err)
			}
		case _GRAPH:
			if graph, err = comps.Load[*comps.TransitGraph](reader); err != nil {
				return nil, fmt.Errorf("transit graph: %v", err)
			}
		case _TABLE:
			table_data = reader.ReadBytes()
			has_table = true
		default:
			reader.Skip()
		}
	}
	if err := reader.Err(); err != nil {
		return nil, err
	}
	switch {
	case !has_header:
		return nil, fmt.Errorf("missing header")
	case settings == nil:
		return nil, fmt.Errorf("missing routing settings")
	case graph == nil:
		return nil, fmt.Errorf("missing transit graph")
	case !has_table:
		return nil, fmt.Errorf("missing route table")
	}
	table, err := comps.LoadRouteTable(NewBufferReader(table_data), graph.VertexCount())
	if err != nil {
		return nil, fmt.Errorf("route table: %v", err)
	}

	cat := catalogue.NewTransportCatalogue()
	for _, stop := range stops {
		cat.AddStop(stop.A, stop.B)
	}
	for _, dist := range distances {
		if err := cat.SetDistance(dist.A.A, dist.A.B, dist.B); err != nil {
			return nil, err
		}
	}
	for _, bus := range buses {
		if err := cat.AddBus(bus.name, bus.stops, bus.is_roundtrip); err != nil {
			return nil, err
		}
	}

	mapping := graph.GetMapping()
	for id := 0; id < mapping.Count(); id++ {
		if _, err := cat.GetStopByName(mapping.GetName(int32(id))); err != nil {
			return nil, fmt.Errorf("vertex %d: %v", id, err)
		}
	}
	for id := 0; id < graph.EdgeCount(); id++ {
		edge := graph.GetEdge(int32(id))
		if _, err := cat.GetBusByName(edge.Weight.BusName); err != nil {
			return nil, fmt.Errorf("edge %d: %v", id, err)
		}
	}
	for i := int32(0); i < int32(table.Size()); i++ {
		for j := int32(0); j < int32(table.Size()); j++ {
			entry := table.Get(i, j)
			if entry.HasValue() && (entry.Value.PrevEdge < -1 || int(entry.Value.PrevEdge) >= graph.EdgeCount()) {
				return nil, fmt.Errorf("route table cell (%d, %d): edge %d out of range", i, j, entry.Value.PrevEdge)
			}
		}
	}

	snapshot.Catalogue = cat
	snapshot.Routing = *settings
	snapshot.Graph = graph
	snapshot.Table = table
	slog.Debug(fmt.Sprintf("decoded snapshot %v (%v stops, %v vertices)", snapshot.ID, cat.StopCount(), graph.VertexCount()))
	return snapshot, nil
}

func _DecodeHeader(reader *BufferReader, snapshot *Snapshot) error {
	version := uint64(0)
	for reader.Next() {
		switch reader.Field() {
		case 1:
			id, err := uuid.Parse(reader.ReadString())
			if err != nil {
				return fmt.Errorf("snapshot id: %v", err)
			}
			snapshot.ID = id
		case 2:
			version = reader.ReadVarint()
		case 3:
			snapshot.CreatedAt = time.Unix(0, reader.ReadInt()).UTC()
		default:
			reader.Skip()
		}
	}
	if err := reader.Err(); err != nil {
		return err
	}
	if version != FORMAT_VERSION {
		return fmt.Errorf("unsupported format version %d", version)
	}
	return nil
}
