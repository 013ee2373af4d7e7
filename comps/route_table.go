package comps

import (
	"fmt"

	. "github.com/ttpr0/transit-catalogue/util"
)

//*******************************************
// route table
//*******************************************

// RouteEntry is the best known time between two vertices together with the
// last edge of that route. PrevEdge is -1 on the diagonal.
type RouteEntry struct {
	Time     float64
	PrevEdge int32
}

func NewRouteTable(size int) *RouteTable {
	return &RouteTable{
		size:  size,
		cells: NewArray[Optional[RouteEntry]](size * size),
	}
}

// RouteTable is a dense size x size table stored row by row.
type RouteTable struct {
	size  int
	cells Array[Optional[RouteEntry]]
}

func (self *RouteTable) Size() int {
	return self.size
}
func (self *RouteTable) Get(from, to int32) Optional[RouteEntry] {
	return self.cells[int(from)*self.size+int(to)]
}
func (self *RouteTable) Set(from, to int32, entry RouteEntry) {
	self.cells[int(from)*self.size+int(to)] = Some(entry)
}

type _TableRow struct {
	cols  List[int32]
	prevs List[int32]
	times []float64
}

func (self *RouteTable) _New() *RouteTable {
	return &RouteTable{size: -1}
}

// LoadRouteTable reads a table for a graph with vertex_count vertices. Any
// other size is rejected before the table is allocated.
func LoadRouteTable(reader *BufferReader, vertex_count int) (*RouteTable, error) {
	table := &RouteTable{size: vertex_count}
	if err := table._Load(reader); err != nil {
		return nil, err
	}
	return table, nil
}

// Each row is stored sparse as the columns holding a value plus their
// previous edges and times. A non-negative size on the receiver is the
// expected size.
func (self *RouteTable) _Load(reader *BufferReader) error {
	expected := self.size
	size := -1
	rows := NewList[_TableRow](100)
	for reader.Next() {
		switch reader.Field() {
		case 1:
			size = int(reader.ReadVarint())
			if expected >= 0 && size != expected {
				return fmt.Errorf("route table size %d does not match %d vertices", size, expected)
			}
		case 2:
			row := reader.ReadMessage()
			cols := NewList[int32](0)
			prevs := NewList[int32](0)
			var times []float64
			for row.Next() {
				switch row.Field() {
				case 1:
					cols = row.ReadPacked()
				case 2:
					prevs = row.ReadPacked()
				case 3:
					times = row.ReadPackedDouble()
				default:
					row.Skip()
				}
			}
			if err := row.Err(); err != nil {
				return err
			}
			rows.Add(_TableRow{cols: cols, prevs: prevs, times: times})
		default:
			reader.Skip()
		}
	}
	if err := reader.Err(); err != nil {
		return err
	}
	if size < 0 {
		return fmt.Errorf("route table without size")
	}
	if rows.Length() != size {
		return fmt.Errorf("got %d rows for route table of size %d", rows.Length(), size)
	}
	table := NewRouteTable(size)
	for i, row := range rows {
		cols, prevs, times := row.cols, row.prevs, row.times
		if prevs.Length() != cols.Length() || len(times) != cols.Length() {
			return fmt.Errorf("row %d: column count mismatch", i)
		}
		for k, col := range cols {
			if col < 0 || int(col) >= size {
				return fmt.Errorf("row %d: column %d out of range", i, col)
			}
			table.Set(int32(i), col, RouteEntry{Time: times[k], PrevEdge: prevs[k]})
		}
	}
	*self = *table
	return nil
}
func (self *RouteTable) _Store(writer *BufferWriter) {
	writer.WriteVarint(1, uint64(self.size))
	for i := 0; i < self.size; i++ {
		cols := NewList[int32](self.size)
		prevs := NewList[int32](self.size)
		times := make([]float64, 0, self.size)
		for j := 0; j < self.size; j++ {
			entry := self.Get(int32(i), int32(j))
			if !entry.HasValue() {
				continue
			}
			cols.Add(int32(j))
			prevs.Add(entry.Value.PrevEdge)
			times = append(times, entry.Value.Time)
		}
		writer.WriteMessage(2, func(w *BufferWriter) {
			w.WritePacked(1, cols)
			w.WritePacked(2, prevs)
			w.WritePackedDouble(3, times)
		})
	}
}
