package packet

import (
	"encoding/binary"
	"math"
)

// Cursor reads little-endian values from a byte slice while tracking the
// read position. It never copies or mutates the underlying buffer.
//
// A read needing more bytes than remain does not advance the position; it
// returns the zero value and latches an insufficient-data error, which
// Err reports and every later read short-circuits on. Decoders guard a
// whole field sequence up front with EnsurePacketSize and check Err once
// at the end.
type Cursor struct {
	buf []byte
	pos int
	err error
}

func NewCursor(buf []byte) *Cursor {
	return &Cursor{buf: buf}
}

// Len is the total length of the underlying buffer.
func (c *Cursor) Len() int { return len(c.buf) }

// Remaining is the number of unread bytes.
func (c *Cursor) Remaining() int { return len(c.buf) - c.pos }

// Consumed is the number of bytes read so far.
func (c *Cursor) Consumed() int { return c.pos }

// Err reports the first read failure, or nil.
func (c *Cursor) Err() error { return c.err }

func (c *Cursor) need(n int) bool {
	if c.err != nil {
		return false
	}
	if r := c.Remaining(); r < n {
		c.err = &InsufficientDataError{Expected: n, Actual: r}
		return false
	}
	return true
}

// Skip advances the position by n bytes without reading them.
func (c *Cursor) Skip(n int) {
	if c.need(n) {
		c.pos += n
	}
}

func (c *Cursor) U8() uint8 {
	if !c.need(1) {
		return 0
	}
	v := c.buf[c.pos]
	c.pos++
	return v
}

func (c *Cursor) I8() int8 {
	return int8(c.U8())
}

func (c *Cursor) U16() uint16 {
	if !c.need(2) {
		return 0
	}
	v := binary.LittleEndian.Uint16(c.buf[c.pos:])
	c.pos += 2
	return v
}

func (c *Cursor) I16() int16 {
	return int16(c.U16())
}

func (c *Cursor) U32() uint32 {
	if !c.need(4) {
		return 0
	}
	v := binary.LittleEndian.Uint32(c.buf[c.pos:])
	c.pos += 4
	return v
}

func (c *Cursor) U64() uint64 {
	if !c.need(8) {
		return 0
	}
	v := binary.LittleEndian.Uint64(c.buf[c.pos:])
	c.pos += 8
	return v
}

func (c *Cursor) F32() float32 {
	return math.Float32frombits(c.U32())
}

// Bytes reads n bytes. The returned slice aliases the underlying buffer.
func (c *Cursor) Bytes(n int) []byte {
	if !c.need(n) {
		return nil
	}
	v := c.buf[c.pos : c.pos+n]
	c.pos += n
	return v
}

// PeekU16 reads a little-endian uint16 without consuming it.
func (c *Cursor) PeekU16() uint16 {
	if !c.need(2) {
		return 0
	}
	return binary.LittleEndian.Uint16(c.buf[c.pos:])
}
