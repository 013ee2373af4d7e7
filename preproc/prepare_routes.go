package preproc

import (
	"fmt"
	"time"

	"github.com/ttpr0/transit-catalogue/comps"
	"golang.org/x/exp/slog"
)

//*******************************************
// prepare route-table
//*******************************************

// PrepareRouteTable solves all pairs by eliminating intermediate vertices in
// id order. A candidate only replaces an entry if it is strictly faster, so
// among routes of equal time the one found first is kept.
func PrepareRouteTable(g *comps.TransitGraph) *comps.RouteTable {
	start := time.Now()
	size := g.VertexCount()
	table := comps.NewRouteTable(size)

	for v := 0; v < size; v++ {
		table.Set(int32(v), int32(v), comps.RouteEntry{Time: 0, PrevEdge: -1})
	}
	for id := 0; id < g.EdgeCount(); id++ {
		edge := g.GetEdge(int32(id))
		curr := table.Get(edge.From, edge.To)
		if curr.HasValue() && curr.Value.Time <= edge.Weight.TotalTime {
			continue
		}
		table.Set(edge.From, edge.To, comps.RouteEntry{Time: edge.Weight.TotalTime, PrevEdge: int32(id)})
	}
	slog.Debug(fmt.Sprintf("initialized route table in %v", time.Since(start)))

	for k := int32(0); k < int32(size); k++ {
		for i := int32(0); i < int32(size); i++ {
			ik := table.Get(i, k)
			if !ik.HasValue() {
				continue
			}
			for j := int32(0); j < int32(size); j++ {
				kj := table.Get(k, j)
				if !kj.HasValue() {
					continue
				}
				candidate := ik.Value.Time + kj.Value.Time
				curr := table.Get(i, j)
				if curr.HasValue() && curr.Value.Time <= candidate {
					continue
				}
				prev := kj.Value.PrevEdge
				if prev == -1 {
					prev = ik.Value.PrevEdge
				}
				table.Set(i, j, comps.RouteEntry{Time: candidate, PrevEdge: prev})
			}
		}
	}

	slog.Info(fmt.Sprintf("prepared route table for %v vertices in %v", size, time.Since(start)))
	return table
}
