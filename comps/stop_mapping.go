package comps

import (
	"fmt"

	. "github.com/ttpr0/transit-catalogue/util"
)

//*******************************************
// stop mapping
//*******************************************

// StopMapping is the bijection between stop names and dense vertex ids.
// Ids are handed out in order of first assignment and never change.
type StopMapping struct {
	ids   Dict[string, int32]
	names List[string]
}

func NewStopMapping(capacity int) *StopMapping {
	return &StopMapping{
		ids:   NewDict[string, int32](capacity),
		names: NewList[string](capacity),
	}
}

// Assign returns the id of name, registering it if it is new.
func (self *StopMapping) Assign(name string) int32 {
	if id, ok := self.ids[name]; ok {
		return id
	}
	id := int32(self.names.Length())
	self.names.Add(name)
	self.ids[name] = id
	return id
}

func (self *StopMapping) GetID(name string) (int32, bool) {
	id, ok := self.ids[name]
	return id, ok
}
func (self *StopMapping) GetName(id int32) string {
	return self.names[id]
}
func (self *StopMapping) Count() int {
	return self.names.Length()
}

func (self *StopMapping) _New() *StopMapping {
	return NewStopMapping(0)
}
func (self *StopMapping) _Load(reader *BufferReader) error {
	for reader.Next() {
		switch reader.Field() {
		case 1:
			name := reader.ReadString()
			if reader.Err() != nil {
				break
			}
			if self.ids.ContainsKey(name) {
				return fmt.Errorf("duplicate stop id for %s", name)
			}
			self.Assign(name)
		default:
			reader.Skip()
		}
	}
	return reader.Err()
}
func (self *StopMapping) _Store(writer *BufferWriter) {
	for _, name := range self.names {
		writer.WriteString(1, name)
	}
}
