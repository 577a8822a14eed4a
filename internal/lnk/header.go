package lnk

import (
	"fmt"
)

// HeaderSize is the size of the ShellLinkHeader structure in bytes.
const HeaderSize = 0x4C

// LinkCLSID is the class identifier every shell link header must carry,
// 00021401-0000-0000-C000-000000000046.
var LinkCLSID = GUID{
	0x01, 0x14, 0x02, 0x00, 0x00, 0x00, 0x00, 0x00,
	0xC0, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x46,
}

// Header is the fixed-size leading structure of a shell link. Its LinkFlags
// decide which of the remaining sections are present.
type Header struct {
	HeaderSize     uint32
	LinkCLSID      GUID
	LinkFlags      LinkFlags
	FileAttributes FileAttributeFlags
	CreationTime   FileTime
	AccessTime     FileTime
	WriteTime      FileTime
	// FileSize holds the low 32 bits of the target's size.
	FileSize    uint32
	IconIndex   int32
	ShowCommand ShowCommand
	HotKey      HotKey
	Reserved1   uint16
	Reserved2   uint32
	Reserved3   uint32
}

// DecodeHeader reads exactly HeaderSize bytes from c. It does not check the
// size or class identifier fields; use Validate for that.
func DecodeHeader(c *Cursor) (*Header, error) {
	if c.Remaining() < HeaderSize {
		return nil, sectionError(SectionHeader, fmt.Errorf(
			"could not read header: need %d bytes, have %d: %w", HeaderSize, c.Remaining(), ErrTruncated))
	}

	// the length check above guarantees none of these reads can fail
	h := &Header{}
	h.HeaderSize, _ = c.ReadU32()
	h.LinkCLSID, _ = c.ReadGUID()
	flags, _ := c.ReadU32()
	h.LinkFlags = NewLinkFlags(flags)
	attrs, _ := c.ReadU32()
	h.FileAttributes = NewFileAttributeFlags(attrs)
	ct, _ := c.ReadU64()
	at, _ := c.ReadU64()
	wt, _ := c.ReadU64()
	h.CreationTime, h.AccessTime, h.WriteTime = FileTime(ct), FileTime(at), FileTime(wt)
	h.FileSize, _ = c.ReadU32()
	icon, _ := c.ReadU32()
	h.IconIndex = int32(icon)
	show, _ := c.ReadU32()
	h.ShowCommand = NewShowCommand(show)
	hotKey, _ := c.ReadU16()
	h.HotKey = NewHotKey(hotKey)
	h.Reserved1, _ = c.ReadU16()
	h.Reserved2, _ = c.ReadU32()
	h.Reserved3, _ = c.ReadU32()

	return h, nil
}

// Validate checks the fields whose values are fixed by the format.
func (h *Header) Validate() error {
	if h.HeaderSize != HeaderSize {
		return fmt.Errorf("invalid header size: expected 0x%X, got 0x%X", HeaderSize, h.HeaderSize)
	}
	if h.LinkCLSID != LinkCLSID {
		return fmt.Errorf("invalid link CLSID: expected %s, got %s", LinkCLSID, h.LinkCLSID)
	}
	return nil
}
