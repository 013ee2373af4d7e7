package routing

import (
	"errors"
	"fmt"
	"math"

	"github.com/ttpr0/transit-catalogue/comps"
	"github.com/ttpr0/transit-catalogue/preproc"
	"github.com/ttpr0/transit-catalogue/structs"
	. "github.com/ttpr0/transit-catalogue/util"
)

var ErrCorruptIndex = errors.New("corrupt route index")

// Route is a fastest trip. Items are the ride segments in travel order.
type Route struct {
	TotalTime float64
	Items     List[structs.EdgeWeight]
}

//*******************************************
// transit router
//*******************************************

// TransitRouter answers point queries from a solved route table. It is
// read-only after construction and safe for concurrent use.
type TransitRouter struct {
	graph *comps.TransitGraph
	table *comps.RouteTable
}

// NewTransitRouter wraps an already solved table without running the sweep.
func NewTransitRouter(g *comps.TransitGraph, table *comps.RouteTable) (*TransitRouter, error) {
	if table.Size() != g.VertexCount() {
		return nil, fmt.Errorf("table size %d does not match %d vertices: %w", table.Size(), g.VertexCount(), ErrCorruptIndex)
	}
	return &TransitRouter{
		graph: g,
		table: table,
	}, nil
}

// BuildTransitRouter solves all pairs of g.
func BuildTransitRouter(g *comps.TransitGraph) *TransitRouter {
	return &TransitRouter{
		graph: g,
		table: preproc.PrepareRouteTable(g),
	}
}

func (self *TransitRouter) GetGraph() *comps.TransitGraph {
	return self.graph
}
func (self *TransitRouter) GetTable() *comps.RouteTable {
	return self.table
}

// BuildRoute returns None if to cannot be reached from from. Stops that are
// not served by any line are unknown to the router.
func (self *TransitRouter) BuildRoute(from, to string) (Optional[Route], error) {
	if from == to {
		return Some(Route{TotalTime: 0, Items: NewList[structs.EdgeWeight](0)}), nil
	}
	mapping := self.graph.GetMapping()
	from_id, ok := mapping.GetID(from)
	if !ok {
		return None[Route](), fmt.Errorf("stop %s: %w", from, ErrNotFound)
	}
	to_id, ok := mapping.GetID(to)
	if !ok {
		return None[Route](), fmt.Errorf("stop %s: %w", to, ErrNotFound)
	}
	entry := self.table.Get(from_id, to_id)
	if !entry.HasValue() {
		return None[Route](), nil
	}

	items := NewList[structs.EdgeWeight](4)
	sum := 0.0
	curr := to_id
	for steps := 0; curr != from_id; steps++ {
		if steps >= self.graph.EdgeCount() {
			return None[Route](), fmt.Errorf("route %s -> %s does not terminate: %w", from, to, ErrCorruptIndex)
		}
		prev := self.table.Get(from_id, curr)
		if !prev.HasValue() || prev.Value.PrevEdge < 0 || int(prev.Value.PrevEdge) >= self.graph.EdgeCount() {
			return None[Route](), fmt.Errorf("route %s -> %s is broken: %w", from, to, ErrCorruptIndex)
		}
		edge := self.graph.GetEdge(prev.Value.PrevEdge)
		if edge.To != curr {
			return None[Route](), fmt.Errorf("route %s -> %s is broken: %w", from, to, ErrCorruptIndex)
		}
		items.Add(edge.Weight)
		sum += edge.Weight.TotalTime
		curr = edge.From
	}
	for i, j := 0, items.Length()-1; i < j; i, j = i+1, j-1 {
		items[i], items[j] = items[j], items[i]
	}

	total := entry.Value.Time
	if math.Abs(sum-total) > 1e-9*math.Max(1, math.Abs(total)) {
		return None[Route](), fmt.Errorf("route %s -> %s: segment times %v do not match %v: %w", from, to, sum, total, ErrCorruptIndex)
	}
	return Some(Route{TotalTime: total, Items: items}), nil
}
