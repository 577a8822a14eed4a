package lnk

import "fmt"

// EndReason records why extra data decoding stopped.
type EndReason int

const (
	// EndOfData means the buffer ended exactly at a block boundary.
	EndOfData EndReason = iota
	// TerminalBlock means a block size below 4 closed the section.
	TerminalBlock
	// Truncated means a block tag or payload ran past the end of the buffer.
	Truncated
	// UnknownBlock means a tag matched no known block type.
	UnknownBlock
)

func (r EndReason) String() string {
	switch r {
	case EndOfData:
		return "end of data"
	case TerminalBlock:
		return "terminal block"
	case Truncated:
		return "truncated"
	case UnknownBlock:
		return "unknown block"
	default:
		return fmt.Sprintf("EndReason(%d)", int(r))
	}
}

// Termination describes where and why the extra data section ended. Size and
// Signature hold whatever part of the final tag could be read.
type Termination struct {
	Reason    EndReason
	Offset    int
	Size      uint32
	Signature uint32
	cause     error
}

// Err returns nil for a clean end and an error describing the stop otherwise.
func (t Termination) Err() error {
	switch t.Reason {
	case Truncated:
		if t.cause != nil {
			return fmt.Errorf("extra data block at offset %d: %w", t.Offset, t.cause)
		}
		return fmt.Errorf("extra data block at offset %d: %w", t.Offset, ErrTruncated)
	case UnknownBlock:
		return &UnknownBlockError{Offset: t.Offset, Size: t.Size, Signature: t.Signature}
	default:
		return nil
	}
}

// Clean reports whether the section ended at the end of data or a terminal block.
func (t Termination) Clean() bool {
	return t.Reason == EndOfData || t.Reason == TerminalBlock
}

// ExtraData holds at most one block of each kind. When a kind repeats, the
// last occurrence wins but keeps the position of the first.
type ExtraData struct {
	blocks map[BlockKind]Block
	order  []BlockKind
	End    Termination
}

// DecodeExtraData reads blocks until the buffer ends or a tag cannot be
// decoded. It never fails; the reason it stopped is recorded in End. The
// cursor is left at the start of the tag that stopped decoding.
func DecodeExtraData(c *Cursor, text *TextDecoder) *ExtraData {
	e := &ExtraData{blocks: make(map[BlockKind]Block)}

	for {
		offset := c.Position()
		if c.Remaining() == 0 {
			e.End = Termination{Reason: EndOfData, Offset: offset}
			return e
		}

		size, err := c.ReadU32()
		if err != nil {
			e.stop(c, Termination{Reason: Truncated, Offset: offset, cause: err})
			return e
		}
		if size < 4 {
			e.End = Termination{Reason: TerminalBlock, Offset: offset, Size: size}
			return e
		}

		signature, err := c.ReadU32()
		if err != nil {
			e.stop(c, Termination{Reason: Truncated, Offset: offset, Size: size, cause: err})
			return e
		}

		h := BlockHeader{Size: size, Signature: signature}
		dec, ok := lookupBlock(size, signature)
		if !ok {
			e.stop(c, Termination{Reason: UnknownBlock, Offset: offset, Size: size, Signature: signature})
			return e
		}

		b, err := dec(c, h, text)
		if err != nil {
			e.stop(c, Termination{Reason: Truncated, Offset: offset, Size: size, Signature: signature, cause: err})
			return e
		}
		e.put(b)
	}
}

func (e *ExtraData) stop(c *Cursor, t Termination) {
	c.SetPosition(t.Offset)
	e.End = t
}

func (e *ExtraData) put(b Block) {
	k := b.Kind()
	if _, seen := e.blocks[k]; !seen {
		e.order = append(e.order, k)
	}
	e.blocks[k] = b
}

// Len returns the number of distinct block kinds present.
func (e *ExtraData) Len() int {
	if e == nil {
		return 0
	}
	return len(e.order)
}

// Blocks returns the decoded blocks in the order their kinds first appeared.
func (e *ExtraData) Blocks() []Block {
	if e == nil {
		return nil
	}
	out := make([]Block, 0, len(e.order))
	for _, k := range e.order {
		out = append(out, e.blocks[k])
	}
	return out
}

// Get returns the block of the given kind.
func (e *ExtraData) Get(kind BlockKind) (Block, bool) {
	if e == nil {
		return nil, false
	}
	b, ok := e.blocks[kind]
	return b, ok
}

// lookup returns the block of kind as its concrete type.
func lookup[T Block](e *ExtraData, kind BlockKind) (T, error) {
	var zero T
	b, ok := e.Get(kind)
	if !ok {
		return zero, fmt.Errorf("%s: %w", kind, ErrMissingField)
	}
	return b.(T), nil
}

// EnvironmentVariable returns the EnvironmentVariableDataBlock, or ErrMissingField if the link has none.
func (e *ExtraData) EnvironmentVariable() (*EnvironmentVariableDataBlock, error) {
	return lookup[*EnvironmentVariableDataBlock](e, KindEnvironmentVariable)
}

// Console returns the ConsoleDataBlock, or ErrMissingField if the link has none.
func (e *ExtraData) Console() (*ConsoleDataBlock, error) {
	return lookup[*ConsoleDataBlock](e, KindConsole)
}

// Tracker returns the TrackerDataBlock, or ErrMissingField if the link has none.
func (e *ExtraData) Tracker() (*TrackerDataBlock, error) {
	return lookup[*TrackerDataBlock](e, KindTracker)
}

// ConsoleFE returns the ConsoleFEDataBlock, or ErrMissingField if the link has none.
func (e *ExtraData) ConsoleFE() (*ConsoleFEDataBlock, error) {
	return lookup[*ConsoleFEDataBlock](e, KindConsoleFE)
}

// SpecialFolder returns the SpecialFolderDataBlock, or ErrMissingField if the link has none.
func (e *ExtraData) SpecialFolder() (*SpecialFolderDataBlock, error) {
	return lookup[*SpecialFolderDataBlock](e, KindSpecialFolder)
}

// Darwin returns the DarwinDataBlock, or ErrMissingField if the link has none.
func (e *ExtraData) Darwin() (*DarwinDataBlock, error) {
	return lookup[*DarwinDataBlock](e, KindDarwin)
}

// IconEnvironment returns the IconEnvironmentDataBlock, or ErrMissingField if the link has none.
func (e *ExtraData) IconEnvironment() (*IconEnvironmentDataBlock, error) {
	return lookup[*IconEnvironmentDataBlock](e, KindIconEnvironment)
}

// Shim returns the ShimDataBlock, or ErrMissingField if the link has none.
func (e *ExtraData) Shim() (*ShimDataBlock, error) {
	return lookup[*ShimDataBlock](e, KindShim)
}

// PropertyStore returns the PropertyStoreDataBlock, or ErrMissingField if the link has none.
func (e *ExtraData) PropertyStore() (*PropertyStoreDataBlock, error) {
	return lookup[*PropertyStoreDataBlock](e, KindPropertyStore)
}

// KnownFolder returns the KnownFolderDataBlock, or ErrMissingField if the link has none.
func (e *ExtraData) KnownFolder() (*KnownFolderDataBlock, error) {
	return lookup[*KnownFolderDataBlock](e, KindKnownFolder)
}

// VistaAndAboveIDList returns the VistaAndAboveIDListDataBlock, or ErrMissingField if the link has none.
func (e *ExtraData) VistaAndAboveIDList() (*VistaAndAboveIDListDataBlock, error) {
	return lookup[*VistaAndAboveIDListDataBlock](e, KindVistaAndAboveIDList)
}
