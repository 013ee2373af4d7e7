package comps

import (
	"fmt"

	. "github.com/ttpr0/transit-catalogue/util"
)

//*******************************************
// routing settings
//*******************************************

// RoutingSettings holds the wait time added to every boarding and the bus
// velocity in distance units per time unit.
type RoutingSettings struct {
	BusWaitTime float64
	BusVelocity float64
}

func (self *RoutingSettings) Validate() error {
	if self.BusVelocity == 0 {
		return fmt.Errorf("bus velocity must not be zero: %w", ErrInvalidSettings)
	}
	return nil
}

func (self *RoutingSettings) _New() *RoutingSettings {
	return &RoutingSettings{}
}
func (self *RoutingSettings) _Load(reader *BufferReader) error {
	for reader.Next() {
		switch reader.Field() {
		case 1:
			self.BusWaitTime = reader.ReadDouble()
		case 2:
			self.BusVelocity = reader.ReadDouble()
		default:
			reader.Skip()
		}
	}
	return reader.Err()
}
func (self *RoutingSettings) _Store(writer *BufferWriter) {
	writer.WriteDouble(1, self.BusWaitTime)
	writer.WriteDouble(2, self.BusVelocity)
}
