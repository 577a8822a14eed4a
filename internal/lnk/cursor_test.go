package lnk_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ossyrian/lnkparse/internal/lnk"
)

func TestCursor_Reads(t *testing.T) {
	data := []byte{
		0xAB,
		0x34, 0x12,
		0x78, 0x56, 0x34, 0x12,
		0xF0, 0xDE, 0xBC, 0x9A, 0x78, 0x56, 0x34, 0x12,
	}
	c := lnk.NewCursor(data)

	u8, err := c.ReadU8()
	require.NoError(t, err)
	assert.Equal(t, uint8(0xAB), u8)

	u16, err := c.ReadU16()
	require.NoError(t, err)
	assert.Equal(t, uint16(0x1234), u16)

	u32, err := c.ReadU32()
	require.NoError(t, err)
	assert.Equal(t, uint32(0x12345678), u32)

	u64, err := c.ReadU64()
	require.NoError(t, err)
	assert.Equal(t, uint64(0x123456789ABCDEF0), u64)

	assert.Equal(t, len(data), c.Position())
	assert.Zero(t, c.Remaining())
}

func TestCursor_TruncatedReadKeepsPosition(t *testing.T) {
	c := lnk.NewCursor([]byte{0x01, 0x02, 0x03})
	require.NoError(t, c.Skip(1))

	_, err := c.ReadU32()
	require.Error(t, err)
	assert.ErrorIs(t, err, lnk.ErrTruncated)
	assert.Equal(t, 1, c.Position())

	v, err := c.ReadU16()
	require.NoError(t, err)
	assert.Equal(t, uint16(0x0302), v)
}

func TestCursor_ReadExactCopies(t *testing.T) {
	data := []byte{1, 2, 3, 4}
	c := lnk.NewCursor(data)

	b, err := c.ReadExact(3)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3}, b)

	b[0] = 0xFF
	assert.Equal(t, byte(1), data[0])

	_, err = c.ReadExact(2)
	assert.ErrorIs(t, err, lnk.ErrTruncated)

	_, err = c.ReadExact(-1)
	assert.Error(t, err)
}

func TestCursor_SetPosition(t *testing.T) {
	c := lnk.NewCursor(make([]byte, 8))

	c.SetPosition(6)
	assert.Equal(t, 2, c.Remaining())

	c.SetPosition(-3)
	assert.Equal(t, 0, c.Position())

	c.SetPosition(100)
	assert.Equal(t, 100, c.Position())
	assert.Zero(t, c.Remaining())
	_, err := c.ReadU8()
	assert.ErrorIs(t, err, lnk.ErrTruncated)
}

func TestCursor_ReadGUID(t *testing.T) {
	c := lnk.NewCursor(lnk.LinkCLSID[:])
	g, err := c.ReadGUID()
	require.NoError(t, err)
	assert.Equal(t, lnk.LinkCLSID, g)
}

func TestByteRange_Slice(t *testing.T) {
	data := []byte("abcdef")

	tests := []struct {
		name string
		r    lnk.ByteRange
		want []byte
		ok   bool
	}{
		{name: "inside", r: lnk.ByteRange{Start: 1, End: 4}, want: []byte("bcd"), ok: true},
		{name: "empty", r: lnk.ByteRange{Start: 2, End: 2}, want: []byte{}, ok: true},
		{name: "whole buffer", r: lnk.ByteRange{Start: 0, End: 6}, want: data, ok: true},
		{name: "past end", r: lnk.ByteRange{Start: 4, End: 7}},
		{name: "inverted", r: lnk.ByteRange{Start: 4, End: 3}},
		{name: "negative start", r: lnk.ByteRange{Start: -1, End: 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.r.Slice(data)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}

	assert.Equal(t, 3, lnk.ByteRange{Start: 1, End: 4}.Len())
	assert.Equal(t, 0, lnk.ByteRange{Start: 4, End: 1}.Len())
}
