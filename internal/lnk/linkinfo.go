package lnk

import (
	"encoding/binary"
	"fmt"
)

// linkInfoUnicodeHeaderSize is the smallest LinkInfo header that carries the
// two unicode offset fields.
const linkInfoUnicodeHeaderSize = 0x24

// LinkInfoOffsets is the fixed header of a LinkInfo structure. Every offset is
// relative to the first byte of the structure.
type LinkInfoOffsets struct {
	Size                            uint32
	HeaderSize                      uint32
	Flags                           LinkInfoFlags
	VolumeIDOffset                  uint32
	LocalBasePathOffset             uint32
	CommonNetworkRelativeLinkOffset uint32
	CommonPathSuffixOffset          uint32
	// Only read when HeaderSize >= 0x24.
	LocalBasePathOffsetUnicode    uint32
	CommonPathSuffixOffsetUnicode uint32
}

// HasUnicodeOffsets reports whether the header is large enough to carry the
// unicode offset fields.
func (o LinkInfoOffsets) HasUnicodeOffsets() bool {
	return o.HeaderSize >= linkInfoUnicodeHeaderSize
}

// fieldRange resolves a string that starts at offset and ends one byte before
// next, both relative to start. An empty or inverted range means the field is
// absent.
func fieldRange(start int, offset, next uint32) (ByteRange, bool) {
	r := ByteRange{Start: start + int(offset), End: start + int(next) - 1}
	if r.End <= r.Start {
		return ByteRange{}, false
	}
	return r, true
}

// LocalBasePathRange ends at the network link when one is present and at the
// common path suffix otherwise.
func (o LinkInfoOffsets) LocalBasePathRange(start int) (ByteRange, bool) {
	next := o.CommonPathSuffixOffset
	if o.Flags.Has(CommonNetworkRelativeLinkAndPathSuffix) {
		next = o.CommonNetworkRelativeLinkOffset
	}
	return fieldRange(start, o.LocalBasePathOffset, next)
}

// CommonPathSuffixRange ends at the unicode local base path when the header
// has unicode offsets and at the end of the structure otherwise.
func (o LinkInfoOffsets) CommonPathSuffixRange(start int) (ByteRange, bool) {
	next := o.Size
	if o.HasUnicodeOffsets() {
		next = o.LocalBasePathOffsetUnicode
	}
	return fieldRange(start, o.CommonPathSuffixOffset, next)
}

// LocalBasePathUnicodeRange starts at the ANSI local base path offset and
// ends at the unicode common path suffix.
func (o LinkInfoOffsets) LocalBasePathUnicodeRange(start int) (ByteRange, bool) {
	if !o.HasUnicodeOffsets() {
		return ByteRange{}, false
	}
	return fieldRange(start, o.LocalBasePathOffset, o.CommonPathSuffixOffsetUnicode)
}

func (o LinkInfoOffsets) CommonPathSuffixUnicodeRange(start int) (ByteRange, bool) {
	if !o.HasUnicodeOffsets() {
		return ByteRange{}, false
	}
	return fieldRange(start, o.CommonPathSuffixOffsetUnicode, o.Size)
}

// LinkInfo holds the information needed to find a link target that has moved.
// Absent strings are nil.
type LinkInfo struct {
	Start   int
	Offsets LinkInfoOffsets

	// VolumeID and CommonNetworkRelativeLink are recognised but not decoded.
	// When set they cover the raw bytes of the sub-structure.
	VolumeID                  *ByteRange
	CommonNetworkRelativeLink *ByteRange

	LocalBasePath           *string
	CommonPathSuffix        *string
	LocalBasePathUnicode    *string
	CommonPathSuffixUnicode *string

	// CommonPathSuffixANSI holds the bytes of CommonPathSuffix decoded as
	// ANSI text, the encoding the suffix is written in.
	CommonPathSuffixANSI *string
}

// DecodeLinkInfo decodes the LinkInfo structure at the cursor when the link
// flags announce one and returns nil otherwise. Only the fixed header fields
// can fail; a string whose offsets do not resolve is left nil. On return the
// cursor sits at the end of the structure as declared by its size field.
func DecodeLinkInfo(c *Cursor, flags LinkFlags, text *TextDecoder) (*LinkInfo, error) {
	if !flags.Has(HasLinkInfo) {
		return nil, nil
	}

	start := c.Position()
	o, err := readLinkInfoOffsets(c)
	if err != nil {
		return nil, sectionError(SectionLinkInfo, err)
	}

	li := &LinkInfo{Start: start, Offsets: o}

	if o.Flags.Has(VolumeIDAndLocalBasePath) {
		if o.VolumeIDOffset != 0 {
			li.VolumeID = c.sizedRange(start + int(o.VolumeIDOffset))
		}
		if r, ok := o.LocalBasePathRange(start); ok {
			li.LocalBasePath = c.fieldString(r, false, text)
		}
		if r, ok := o.CommonPathSuffixRange(start); ok {
			li.CommonPathSuffix = c.fieldString(r, true, text)
			li.CommonPathSuffixANSI = c.fieldString(r, false, text)
		}
		if r, ok := o.LocalBasePathUnicodeRange(start); ok {
			li.LocalBasePathUnicode = c.fieldString(r, true, text)
		}
		if r, ok := o.CommonPathSuffixUnicodeRange(start); ok {
			li.CommonPathSuffixUnicode = c.fieldString(r, true, text)
		}
	}

	if o.Flags.Has(CommonNetworkRelativeLinkAndPathSuffix) && o.CommonNetworkRelativeLinkOffset != 0 {
		li.CommonNetworkRelativeLink = c.sizedRange(start + int(o.CommonNetworkRelativeLinkOffset))
	}

	c.SetPosition(start + int(o.Size))

	return li, nil
}

// TargetPath joins the local base path and common path suffix into the path
// the link pointed at when it was created. The unicode suffix is preferred;
// otherwise the suffix is taken as ANSI text.
func (li *LinkInfo) TargetPath() (string, error) {
	if li == nil {
		return "", ErrMissingField
	}
	base := firstString(li.LocalBasePath, li.LocalBasePathUnicode)
	if base == nil {
		return "", ErrMissingField
	}
	suffix := firstString(li.CommonPathSuffixUnicode, li.CommonPathSuffixANSI)
	if suffix == nil {
		return *base, nil
	}
	return *base + *suffix, nil
}

func readLinkInfoOffsets(c *Cursor) (LinkInfoOffsets, error) {
	var (
		o     LinkInfoOffsets
		flags uint32
	)
	fields := []struct {
		name string
		dst  *uint32
	}{
		{"link info size", &o.Size},
		{"link info header size", &o.HeaderSize},
		{"link info flags", &flags},
		{"volume id offset", &o.VolumeIDOffset},
		{"local base path offset", &o.LocalBasePathOffset},
		{"common network relative link offset", &o.CommonNetworkRelativeLinkOffset},
		{"common path suffix offset", &o.CommonPathSuffixOffset},
	}
	for _, f := range fields {
		v, err := c.ReadU32()
		if err != nil {
			return o, fmt.Errorf("failed to read %s: %w", f.name, err)
		}
		*f.dst = v
	}
	o.Flags = NewLinkInfoFlags(flags)

	if !o.HasUnicodeOffsets() {
		return o, nil
	}
	var err error
	if o.LocalBasePathOffsetUnicode, err = c.ReadU32(); err != nil {
		return o, fmt.Errorf("failed to read local base path offset unicode: %w", err)
	}
	if o.CommonPathSuffixOffsetUnicode, err = c.ReadU32(); err != nil {
		return o, fmt.Errorf("failed to read common path suffix offset unicode: %w", err)
	}
	return o, nil
}

// fieldString decodes the NUL-terminated string held in r. Any failure,
// including a range outside the buffer, yields nil.
func (c *Cursor) fieldString(r ByteRange, wide bool, text *TextDecoder) *string {
	b, ok := r.Slice(c.data)
	if !ok {
		return nil
	}
	var (
		s   string
		err error
	)
	if wide {
		s, err = text.Wide(cutNUL16(b))
	} else {
		s, err = text.ANSI(cutNUL(b))
	}
	if err != nil {
		return nil
	}
	return &s
}

// sizedRange returns the range of a sub-structure that begins with its own
// 32-bit size, or nil if that size cannot be read or overruns the buffer.
func (c *Cursor) sizedRange(at int) *ByteRange {
	head, ok := ByteRange{Start: at, End: at + 4}.Slice(c.data)
	if !ok {
		return nil
	}
	size := int(binary.LittleEndian.Uint32(head))
	r := ByteRange{Start: at, End: at + size}
	if _, ok := r.Slice(c.data); !ok || size < 4 {
		return nil
	}
	return &r
}

func firstString(ss ...*string) *string {
	for _, s := range ss {
		if s != nil && *s != "" {
			return s
		}
	}
	return nil
}
