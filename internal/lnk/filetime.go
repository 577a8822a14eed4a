package lnk

import (
	"encoding/binary"
	"fmt"
	"time"
)

const (
	filetimeOffset = 116444736000000000 // difference between FILETIME epoch and Unix epoch in 100ns units
	filetimeUnit   = 100                // FILETIME units are 100ns
)

// FileTime is a raw count of 100-nanosecond intervals since 1601-01-01 UTC.
type FileTime uint64

// Time converts the tick count to a UTC time. Zero ticks, meaning no time is
// set, convert to the zero time.Time.
func (t FileTime) Time() time.Time {
	if t == 0 {
		return time.Time{}
	}
	v := int64(t)
	if uint64(t) > uint64(1<<63-1) {
		v = 1<<63 - 1
	}
	sec := (v - filetimeOffset) / (int64(time.Second) / filetimeUnit)
	rem := (v - filetimeOffset) % (int64(time.Second) / filetimeUnit)
	if rem < 0 {
		sec--
		rem += int64(time.Second) / filetimeUnit
	}
	return time.Unix(sec, rem*filetimeUnit).UTC()
}

// GUID is a 128-bit class or object identifier in its on-disk byte order.
type GUID [16]byte

// IsZero reports whether every byte of g is zero.
func (g GUID) IsZero() bool { return g == GUID{} }

// String formats g in the registry form, e.g. 00021401-0000-0000-C000-000000000046.
func (g GUID) String() string {
	return fmt.Sprintf("%08X-%04X-%04X-%X-%X",
		binary.LittleEndian.Uint32(g[0:4]),
		binary.LittleEndian.Uint16(g[4:6]),
		binary.LittleEndian.Uint16(g[6:8]),
		g[8:10], g[10:16])
}
