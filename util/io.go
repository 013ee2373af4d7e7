package util

import (
	"fmt"
	"math"
	"os"
	"path/filepath"

	"google.golang.org/protobuf/encoding/protowire"
)

//*******************************************
// buffer writer
//*******************************************

// BufferWriter appends protobuf wire-format fields to an in-memory buffer.
type BufferWriter struct {
	buffer []byte
}

func NewBufferWriter() *BufferWriter {
	return &BufferWriter{
		buffer: make([]byte, 0, 1024),
	}
}

func (self *BufferWriter) Bytes() []byte {
	return self.buffer
}

func (self *BufferWriter) WriteVarint(field protowire.Number, value uint64) {
	self.buffer = protowire.AppendTag(self.buffer, field, protowire.VarintType)
	self.buffer = protowire.AppendVarint(self.buffer, value)
}
func (self *BufferWriter) WriteInt(field protowire.Number, value int64) {
	self.WriteVarint(field, protowire.EncodeZigZag(value))
}
func (self *BufferWriter) WriteBool(field protowire.Number, value bool) {
	self.WriteVarint(field, protowire.EncodeBool(value))
}
func (self *BufferWriter) WriteDouble(field protowire.Number, value float64) {
	self.buffer = protowire.AppendTag(self.buffer, field, protowire.Fixed64Type)
	self.buffer = protowire.AppendFixed64(self.buffer, math.Float64bits(value))
}
func (self *BufferWriter) WriteString(field protowire.Number, value string) {
	self.buffer = protowire.AppendTag(self.buffer, field, protowire.BytesType)
	self.buffer = protowire.AppendString(self.buffer, value)
}
func (self *BufferWriter) WriteBytes(field protowire.Number, value []byte) {
	self.buffer = protowire.AppendTag(self.buffer, field, protowire.BytesType)
	self.buffer = protowire.AppendBytes(self.buffer, value)
}

// Writes a length-delimited sub-message filled by the callback.
func (self *BufferWriter) WriteMessage(field protowire.Number, callback func(*BufferWriter)) {
	inner := &BufferWriter{}
	callback(inner)
	self.WriteBytes(field, inner.buffer)
}

// Writes values as a packed repeated varint field.
func (self *BufferWriter) WritePacked(field protowire.Number, values []int32) {
	var packed []byte
	for _, value := range values {
		packed = protowire.AppendVarint(packed, uint64(uint32(value)))
	}
	self.WriteBytes(field, packed)
}
func (self *BufferWriter) WritePackedDouble(field protowire.Number, values []float64) {
	packed := make([]byte, 0, 8*len(values))
	for _, value := range values {
		packed = protowire.AppendFixed64(packed, math.Float64bits(value))
	}
	self.WriteBytes(field, packed)
}

//*******************************************
// buffer reader
//*******************************************

// BufferReader iterates the fields of a protobuf wire-format message.
// The first error stops the iteration and is reported by Err.
type BufferReader struct {
	data  []byte
	field protowire.Number
	typ   protowire.Type
	err   error
}

func NewBufferReader(data []byte) *BufferReader {
	return &BufferReader{
		data: data,
	}
}

func (self *BufferReader) Err() error {
	return self.err
}

// Advances to the next field. Returns false at the end of the message or on error.
func (self *BufferReader) Next() bool {
	if self.err != nil || len(self.data) == 0 {
		return false
	}
	field, typ, n := protowire.ConsumeTag(self.data)
	if n < 0 {
		self.err = protowire.ParseError(n)
		return false
	}
	self.data = self.data[n:]
	self.field = field
	self.typ = typ
	return true
}

func (self *BufferReader) Field() protowire.Number {
	return self.field
}

func (self *BufferReader) _Expect(typ protowire.Type) bool {
	if self.err != nil {
		return false
	}
	if self.typ != typ {
		self.err = fmt.Errorf("field %d: unexpected wire type %d", self.field, self.typ)
		return false
	}
	return true
}

func (self *BufferReader) ReadVarint() uint64 {
	if !self._Expect(protowire.VarintType) {
		return 0
	}
	value, n := protowire.ConsumeVarint(self.data)
	if n < 0 {
		self.err = protowire.ParseError(n)
		return 0
	}
	self.data = self.data[n:]
	return value
}
func (self *BufferReader) ReadInt() int64 {
	return protowire.DecodeZigZag(self.ReadVarint())
}
func (self *BufferReader) ReadBool() bool {
	return protowire.DecodeBool(self.ReadVarint())
}
func (self *BufferReader) ReadDouble() float64 {
	if !self._Expect(protowire.Fixed64Type) {
		return 0
	}
	value, n := protowire.ConsumeFixed64(self.data)
	if n < 0 {
		self.err = protowire.ParseError(n)
		return 0
	}
	self.data = self.data[n:]
	return math.Float64frombits(value)
}
func (self *BufferReader) ReadBytes() []byte {
	if !self._Expect(protowire.BytesType) {
		return nil
	}
	value, n := protowire.ConsumeBytes(self.data)
	if n < 0 {
		self.err = protowire.ParseError(n)
		return nil
	}
	self.data = self.data[n:]
	return value
}
func (self *BufferReader) ReadString() string {
	return string(self.ReadBytes())
}

// Returns a reader over the current length-delimited sub-message.
func (self *BufferReader) ReadMessage() *BufferReader {
	return NewBufferReader(self.ReadBytes())
}

func (self *BufferReader) ReadPacked() []int32 {
	packed := self.ReadBytes()
	values := make([]int32, 0, len(packed))
	for len(packed) > 0 {
		value, n := protowire.ConsumeVarint(packed)
		if n < 0 {
			self.err = protowire.ParseError(n)
			return nil
		}
		values = append(values, int32(uint32(value)))
		packed = packed[n:]
	}
	return values
}
func (self *BufferReader) ReadPackedDouble() []float64 {
	packed := self.ReadBytes()
	values := make([]float64, 0, len(packed)/8)
	for len(packed) > 0 {
		value, n := protowire.ConsumeFixed64(packed)
		if n < 0 {
			self.err = protowire.ParseError(n)
			return nil
		}
		values = append(values, math.Float64frombits(value))
		packed = packed[n:]
	}
	return values
}

// Skips the value of an unknown field.
func (self *BufferReader) Skip() {
	if self.err != nil {
		return
	}
	n := protowire.ConsumeFieldValue(self.field, self.typ, self.data)
	if n < 0 {
		self.err = protowire.ParseError(n)
		return
	}
	self.data = self.data[n:]
}

//*******************************************
// file io
//*******************************************

// Writes data to a temporary file next to file and renames it into place,
// so readers never observe a partially written file.
func WriteToFile(data []byte, file string) error {
	tmp, err := os.CreateTemp(filepath.Dir(file), filepath.Base(file)+".tmp-*")
	if err != nil {
		return err
	}
	tmp_name := tmp.Name()
	defer os.Remove(tmp_name)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp_name, file)
}

func ReadFromFile(file string) ([]byte, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", file, err)
	}
	return data, nil
}
