package lnk_test

import (
	"bytes"
	"encoding/binary"
	"testing"
	"unicode/utf16"

	"github.com/ossyrian/lnkparse/internal/lnk"
)

// le appends each value to buf in little-endian order.
func le(t *testing.T, buf *bytes.Buffer, vs ...any) {
	t.Helper()
	for _, v := range vs {
		if err := binary.Write(buf, binary.LittleEndian, v); err != nil {
			t.Fatalf("binary.Write(%T) failed: %v", v, err)
		}
	}
}

// utf16le encodes s as UTF-16LE without a terminator.
func utf16le(s string) []byte {
	units := utf16.Encode([]rune(s))
	out := make([]byte, len(units)*2)
	for i, u := range units {
		binary.LittleEndian.PutUint16(out[i*2:], u)
	}
	return out
}

// fixed returns b padded with zeros to n bytes.
func fixed(b []byte, n int) []byte {
	out := make([]byte, n)
	copy(out, b)
	return out
}

// buildHeader returns a conforming 76-byte header with the given flags.
func buildHeader(t *testing.T, flags lnk.LinkFlags) []byte {
	t.Helper()
	buf := new(bytes.Buffer)
	le(t, buf,
		uint32(lnk.HeaderSize),
		lnk.LinkCLSID,
		uint32(flags),
		uint32(lnk.FileAttributeArchive),
		uint64(132000000000000000), // creation
		uint64(132000000010000000), // access
		uint64(0),                  // write
		uint32(4096),
		int32(0),
		uint32(lnk.ShowNormal),
		uint16(0),
		uint16(0), uint32(0), uint32(0),
	)
	return buf.Bytes()
}

// countedANSI encodes a StringData entry with a one-byte character width.
func countedANSI(t *testing.T, s string) []byte {
	t.Helper()
	buf := new(bytes.Buffer)
	le(t, buf, uint16(len(s)))
	buf.WriteString(s)
	return buf.Bytes()
}

// countedWide encodes a StringData entry with a two-byte character width.
func countedWide(t *testing.T, s string) []byte {
	t.Helper()
	w := utf16le(s)
	buf := new(bytes.Buffer)
	le(t, buf, uint16(len(w)/2))
	buf.Write(w)
	return buf.Bytes()
}

func blockTag(t *testing.T, buf *bytes.Buffer, size, signature uint32) {
	t.Helper()
	le(t, buf, size, signature)
}

// consoleBlock returns a complete 0xCC-byte console block.
func consoleBlock(t *testing.T, fill uint16, faceName string, fontSize uint32) []byte {
	t.Helper()
	buf := new(bytes.Buffer)
	blockTag(t, buf, 0xCC, lnk.SignatureConsole)
	le(t, buf,
		fill, uint16(0x00F5),    // fill, popup fill
		int16(120), int16(9001), // screen buffer
		int16(120), int16(30),   // window size
		int16(0), int16(0),      // window origin
		uint32(0), uint32(0),    // unused
		fontSize, uint32(0x36), uint32(400),
	)
	buf.Write(fixed(utf16le(faceName), lnk.ConsoleFaceNameSize))
	le(t, buf,
		uint32(25), // cursor size
		uint32(0),  // full screen
		uint32(1),  // quick edit
		uint32(1),  // insert mode
		uint32(1),  // auto position
		uint32(50), // history buffer size
		uint32(4),  // number of history buffers
		uint32(0),  // history no dup
	)
	for i := range 16 {
		le(t, buf, uint32(i*0x111111))
	}
	return buf.Bytes()
}
