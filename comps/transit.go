package comps

import (
	"fmt"

	"github.com/ttpr0/transit-catalogue/structs"
	. "github.com/ttpr0/transit-catalogue/util"
)

//*******************************************
// transit graph
//*******************************************

// NewTransitGraph builds the outgoing incidence lists from the edges. Edge
// ids are the positions in edges.
func NewTransitGraph(mapping *StopMapping, edges List[structs.RouteEdge]) *TransitGraph {
	incidence := NewArray[List[int32]](mapping.Count())
	for i := 0; i < incidence.Length(); i++ {
		incidence[i] = NewList[int32](4)
	}
	for id, edge := range edges {
		incidence[edge.From].Add(int32(id))
	}
	return &TransitGraph{
		mapping:   mapping,
		edges:     Array[structs.RouteEdge](edges),
		incidence: incidence,
	}
}

// TransitGraph is a directed multigraph over the served stops. Every edge is
// one boarding followed by a ride of one or more stops on a single bus.
type TransitGraph struct {
	mapping   *StopMapping
	edges     Array[structs.RouteEdge]
	incidence Array[List[int32]]
}

func (self *TransitGraph) VertexCount() int {
	return self.mapping.Count()
}
func (self *TransitGraph) EdgeCount() int {
	return self.edges.Length()
}
func (self *TransitGraph) GetEdge(edge int32) structs.RouteEdge {
	return self.edges[edge]
}
func (self *TransitGraph) GetIncidentEdges(vertex int32) List[int32] {
	return self.incidence[vertex]
}
func (self *TransitGraph) GetMapping() *StopMapping {
	return self.mapping
}

func (self *TransitGraph) _New() *TransitGraph {
	return &TransitGraph{}
}
func (self *TransitGraph) _Load(reader *BufferReader) error {
	var mapping *StopMapping
	edges := NewList[structs.RouteEdge](100)
	incidence := NewList[List[int32]](100)
	for reader.Next() {
		switch reader.Field() {
		case 1:
			m, err := Load[*StopMapping](reader)
			if err != nil {
				return err
			}
			mapping = m
		case 2:
			edge, err := _LoadEdge(reader.ReadMessage())
			if err != nil {
				return err
			}
			edges.Add(edge)
		case 3:
			incidence.Add(reader.ReadPacked())
		default:
			reader.Skip()
		}
	}
	if err := reader.Err(); err != nil {
		return err
	}
	if mapping == nil {
		return fmt.Errorf("transit graph without stop ids")
	}
	if incidence.Length() != mapping.Count() {
		return fmt.Errorf("got %d incidence lists for %d vertices", incidence.Length(), mapping.Count())
	}
	vertex_count := int32(mapping.Count())
	for i := range edges {
		edge := &edges[i]
		if edge.From < 0 || edge.From >= vertex_count || edge.To < 0 || edge.To >= vertex_count {
			return fmt.Errorf("edge %d: vertex out of range", i)
		}
		edge.Weight.From = mapping.GetName(edge.From)
		edge.Weight.To = mapping.GetName(edge.To)
	}
	for vertex, list := range incidence {
		for _, id := range list {
			if id < 0 || int(id) >= edges.Length() || edges[id].From != int32(vertex) {
				return fmt.Errorf("vertex %d: invalid incident edge %d", vertex, id)
			}
		}
	}
	*self = TransitGraph{
		mapping:   mapping,
		edges:     Array[structs.RouteEdge](edges),
		incidence: Array[List[int32]](incidence),
	}
	return nil
}
func (self *TransitGraph) _Store(writer *BufferWriter) {
	Store(self.mapping, 1, writer)
	for _, edge := range self.edges {
		writer.WriteMessage(2, func(w *BufferWriter) {
			w.WriteVarint(1, uint64(edge.From))
			w.WriteVarint(2, uint64(edge.To))
			w.WriteString(3, edge.Weight.BusName)
			w.WriteDouble(4, edge.Weight.TotalTime)
			w.WriteVarint(5, uint64(edge.Weight.SpanCount))
		})
	}
	for _, list := range self.incidence {
		writer.WritePacked(3, list)
	}
}

func _LoadEdge(reader *BufferReader) (structs.RouteEdge, error) {
	edge := structs.RouteEdge{From: -1, To: -1}
	for reader.Next() {
		switch reader.Field() {
		case 1:
			edge.From = int32(reader.ReadVarint())
		case 2:
			edge.To = int32(reader.ReadVarint())
		case 3:
			edge.Weight.BusName = reader.ReadString()
		case 4:
			edge.Weight.TotalTime = reader.ReadDouble()
		case 5:
			edge.Weight.SpanCount = int32(reader.ReadVarint())
		default:
			reader.Skip()
		}
	}
	return edge, reader.Err()
}
