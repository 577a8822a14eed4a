package lnk

// ConsoleFaceNameSize is the byte length of the face name buffer (32 UTF-16 units).
const ConsoleFaceNameSize = 64

// Coord is a console character-cell coordinate.
type Coord struct {
	X int16 `json:"x"`
	Y int16 `json:"y"`
}

// ConsoleDataBlock holds the display settings used when the link target runs
// in a console window.
type ConsoleDataBlock struct {
	BlockHeader
	FillAttributes         uint16
	PopupFillAttributes    uint16
	ScreenBufferSize       Coord
	WindowSize             Coord
	WindowOrigin           Coord
	Unused1                uint32
	Unused2                uint32
	FontSize               uint32
	FontFamily             uint32
	FontWeight             uint32
	FaceName               string
	CursorSize             uint32
	FullScreen             uint32
	QuickEdit              uint32
	InsertMode             uint32
	AutoPosition           uint32
	HistoryBufferSize      uint32
	NumberOfHistoryBuffers uint32
	HistoryNoDup           uint32
	ColorTable             [16]uint32
}

func (*ConsoleDataBlock) Kind() BlockKind { return KindConsole }

func (r *blockReader) coord() Coord {
	return Coord{X: int16(r.u16()), Y: int16(r.u16())}
}

func decodeConsole(c *Cursor, h BlockHeader, text *TextDecoder) (Block, error) {
	r := &blockReader{c: c}
	b := &ConsoleDataBlock{BlockHeader: h}

	b.FillAttributes = r.u16()
	b.PopupFillAttributes = r.u16()
	b.ScreenBufferSize = r.coord()
	b.WindowSize = r.coord()
	b.WindowOrigin = r.coord()
	b.Unused1 = r.u32()
	b.Unused2 = r.u32()
	b.FontSize = r.u32()
	b.FontFamily = r.u32()
	b.FontWeight = r.u32()
	faceName := r.bytes(ConsoleFaceNameSize)
	b.CursorSize = r.u32()
	b.FullScreen = r.u32()
	b.QuickEdit = r.u32()
	b.InsertMode = r.u32()
	b.AutoPosition = r.u32()
	b.HistoryBufferSize = r.u32()
	b.NumberOfHistoryBuffers = r.u32()
	b.HistoryNoDup = r.u32()
	for i := range b.ColorTable {
		b.ColorTable[i] = r.u32()
	}

	if r.err != nil {
		return nil, r.err
	}
	b.FaceName = text.wideField(faceName)
	return b, nil
}
