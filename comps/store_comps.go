package comps

import (
	. "github.com/ttpr0/transit-catalogue/util"
	"google.golang.org/protobuf/encoding/protowire"
)

//*******************************************
// component io
//*******************************************

type IStoreable interface {
	_Store(writer *BufferWriter)
}

// Store writes the component as a sub-message of the given field.
func Store(comp IStoreable, field protowire.Number, writer *BufferWriter) {
	writer.WriteMessage(field, comp._Store)
}

type ILoadable[T any] interface {
	_New() T
	_Load(reader *BufferReader) error
}

// Load reads a component from the current sub-message of reader.
func Load[T ILoadable[T]](reader *BufferReader) (T, error) {
	var comp T
	comp = comp._New()
	sub := reader.ReadMessage()
	if err := reader.Err(); err != nil {
		return comp, err
	}
	if err := comp._Load(sub); err != nil {
		return comp, err
	}
	return comp, nil
}
