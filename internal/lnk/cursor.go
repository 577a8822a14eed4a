package lnk

import (
	"encoding/binary"
	"fmt"
)

// Cursor is a seekable little-endian reader over a fully buffered link file.
//
// All reads are bounds checked against the buffer: a read that needs more
// bytes than remain fails with an error wrapping ErrTruncated and leaves the
// position unchanged. The position may be set past the end of the buffer;
// subsequent reads then fail.
type Cursor struct {
	data []byte
	pos  int
}

// NewCursor returns a cursor positioned at the first byte of data.
func NewCursor(data []byte) *Cursor {
	return &Cursor{data: data}
}

// Position returns the absolute read position.
func (c *Cursor) Position() int { return c.pos }

// SetPosition moves the read position to the absolute offset p.
// Negative offsets are clamped to zero.
func (c *Cursor) SetPosition(p int) {
	if p < 0 {
		p = 0
	}
	c.pos = p
}

// Len returns the size of the underlying buffer.
func (c *Cursor) Len() int { return len(c.data) }

// Remaining returns how many bytes can still be read from the current position.
func (c *Cursor) Remaining() int {
	if c.pos >= len(c.data) {
		return 0
	}
	return len(c.data) - c.pos
}

// take returns the next n bytes without copying and advances past them.
func (c *Cursor) take(n int) ([]byte, error) {
	if n < 0 {
		return nil, fmt.Errorf("invalid read length %d at offset %d", n, c.pos)
	}
	if c.Remaining() < n {
		return nil, fmt.Errorf("need %d bytes at offset %d, have %d: %w",
			n, c.pos, c.Remaining(), ErrTruncated)
	}
	b := c.data[c.pos : c.pos+n]
	c.pos += n
	return b, nil
}

// ReadU8 reads one byte.
func (c *Cursor) ReadU8() (uint8, error) {
	b, err := c.take(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// ReadU16 reads a little-endian 16-bit integer.
func (c *Cursor) ReadU16() (uint16, error) {
	b, err := c.take(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

// ReadU32 reads a little-endian 32-bit integer.
func (c *Cursor) ReadU32() (uint32, error) {
	b, err := c.take(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

// ReadU64 reads a little-endian 64-bit integer.
func (c *Cursor) ReadU64() (uint64, error) {
	b, err := c.take(8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

// ReadGUID reads a 128-bit identifier, keeping its on-disk byte order.
func (c *Cursor) ReadGUID() (GUID, error) {
	var g GUID
	b, err := c.take(len(g))
	if err != nil {
		return g, err
	}
	copy(g[:], b)
	return g, nil
}

// ReadExact reads exactly n bytes. The returned slice is a copy and does not
// alias the cursor's buffer.
func (c *Cursor) ReadExact(n int) ([]byte, error) {
	b, err := c.take(n)
	if err != nil {
		return nil, err
	}
	out := make([]byte, n)
	copy(out, b)
	return out, nil
}

// Skip advances the position by n bytes, failing if fewer remain.
func (c *Cursor) Skip(n int) error {
	_, err := c.take(n)
	return err
}

// ByteRange is a half-open [Start, End) range of absolute buffer offsets.
type ByteRange struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Len returns the number of bytes covered by the range.
func (r ByteRange) Len() int {
	if r.End <= r.Start {
		return 0
	}
	return r.End - r.Start
}

// Slice returns the bytes of data covered by r, or false if r does not fit.
func (r ByteRange) Slice(data []byte) ([]byte, bool) {
	if r.Start < 0 || r.End < r.Start || r.End > len(data) {
		return nil, false
	}
	return data[r.Start:r.End], true
}
