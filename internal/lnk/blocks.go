package lnk

import "fmt"

// Extra data block signatures.
const (
	SignatureEnvironmentVariable uint32 = 0xA0000001
	SignatureConsole             uint32 = 0xA0000002
	SignatureTracker             uint32 = 0xA0000003
	SignatureConsoleFE           uint32 = 0xA0000004
	SignatureSpecialFolder       uint32 = 0xA0000005
	SignatureDarwin              uint32 = 0xA0000006
	SignatureIconEnvironment     uint32 = 0xA0000007
	SignatureShim                uint32 = 0xA0000008
	SignaturePropertyStore       uint32 = 0xA0000009
	SignatureKnownFolder         uint32 = 0xA000000B
	SignatureVistaAndAboveIDList uint32 = 0xA000000C
)

// Declared sizes of the fixed-size blocks.
const (
	environmentVariableBlockSize = 0x314
	consoleBlockSize             = 0xCC
	trackerBlockSize             = 0x60
	consoleFEBlockSize           = 0x0C
	specialFolderBlockSize       = 0x10
	darwinBlockSize              = 0x314
	iconEnvironmentBlockSize     = 0x314
	knownFolderBlockSize         = 0x1C

	// blockHeaderSize is the size and signature pair that opens every block.
	blockHeaderSize = 8

	ansiPathSize    = 260
	unicodePathSize = 520
)

// BlockKind identifies the type of an extra data block.
type BlockKind int

const (
	KindEnvironmentVariable BlockKind = iota + 1
	KindConsole
	KindTracker
	KindConsoleFE
	KindSpecialFolder
	KindDarwin
	KindIconEnvironment
	KindShim
	KindPropertyStore
	KindKnownFolder
	KindVistaAndAboveIDList
)

func (k BlockKind) String() string {
	switch k {
	case KindEnvironmentVariable:
		return "EnvironmentVariableDataBlock"
	case KindConsole:
		return "ConsoleDataBlock"
	case KindTracker:
		return "TrackerDataBlock"
	case KindConsoleFE:
		return "ConsoleFEDataBlock"
	case KindSpecialFolder:
		return "SpecialFolderDataBlock"
	case KindDarwin:
		return "DarwinDataBlock"
	case KindIconEnvironment:
		return "IconEnvironmentDataBlock"
	case KindShim:
		return "ShimDataBlock"
	case KindPropertyStore:
		return "PropertyStoreDataBlock"
	case KindKnownFolder:
		return "KnownFolderDataBlock"
	case KindVistaAndAboveIDList:
		return "VistaAndAboveIDListDataBlock"
	default:
		return fmt.Sprintf("BlockKind(%d)", int(k))
	}
}

// Block is one decoded extra data block. The set of implementations is
// closed; switch on the concrete type or on Kind.
type Block interface {
	Kind() BlockKind
	Header() BlockHeader
	isBlock()
}

// BlockHeader is the (size, signature) tag that opens every block.
type BlockHeader struct {
	Size      uint32
	Signature uint32
}

func (h BlockHeader) Header() BlockHeader { return h }
func (BlockHeader) isBlock()              {}

// payloadSize is the number of bytes that follow the tag.
func (h BlockHeader) payloadSize() int { return int(h.Size) - blockHeaderSize }

// EnvironmentVariableDataBlock holds the target path written with environment variables.
type EnvironmentVariableDataBlock struct {
	BlockHeader
	TargetANSI    string
	TargetUnicode string
}

func (*EnvironmentVariableDataBlock) Kind() BlockKind { return KindEnvironmentVariable }

// IconEnvironmentDataBlock holds the icon path written with environment variables.
type IconEnvironmentDataBlock struct {
	BlockHeader
	TargetANSI    string
	TargetUnicode string
}

func (*IconEnvironmentDataBlock) Kind() BlockKind { return KindIconEnvironment }

// DarwinDataBlock holds the application identifier used to install the
// target on activation.
type DarwinDataBlock struct {
	BlockHeader
	DarwinDataANSI    string
	DarwinDataUnicode string
}

func (*DarwinDataBlock) Kind() BlockKind { return KindDarwin }

// TrackerDataBlock holds the distributed link tracking identifiers.
type TrackerDataBlock struct {
	BlockHeader
	Length  uint32
	Version uint32
	// MachineID is the NetBIOS name of the machine the target was last seen
	// on, NUL padded.
	MachineID  [16]byte
	Droid      [2]GUID
	DroidBirth [2]GUID
}

func (*TrackerDataBlock) Kind() BlockKind { return KindTracker }

// MachineName returns MachineID as text.
func (b *TrackerDataBlock) MachineName() string {
	var d *TextDecoder
	return d.ansiField(b.MachineID[:])
}

// ConsoleFEDataBlock holds the code page used for console text.
type ConsoleFEDataBlock struct {
	BlockHeader
	CodePage uint32
}

func (*ConsoleFEDataBlock) Kind() BlockKind { return KindConsoleFE }

// SpecialFolderDataBlock locates a special folder inside the target ID list.
type SpecialFolderDataBlock struct {
	BlockHeader
	SpecialFolderID uint32
	Offset          uint32
}

func (*SpecialFolderDataBlock) Kind() BlockKind { return KindSpecialFolder }

// KnownFolderDataBlock locates a known folder inside the target ID list.
type KnownFolderDataBlock struct {
	BlockHeader
	KnownFolderID GUID
	Offset        uint32
}

func (*KnownFolderDataBlock) Kind() BlockKind { return KindKnownFolder }

// ShimDataBlock names the compatibility shim applied on activation.
type ShimDataBlock struct {
	BlockHeader
	LayerName string
}

func (*ShimDataBlock) Kind() BlockKind { return KindShim }

// PropertyStoreDataBlock carries a serialized property store, kept opaque.
type PropertyStoreDataBlock struct {
	BlockHeader
	PropertyStore []byte
}

func (*PropertyStoreDataBlock) Kind() BlockKind { return KindPropertyStore }

// VistaAndAboveIDListDataBlock carries an alternate target ID list, kept opaque.
type VistaAndAboveIDListDataBlock struct {
	BlockHeader
	IDList []byte
}

func (*VistaAndAboveIDListDataBlock) Kind() BlockKind { return KindVistaAndAboveIDList }

// blockReader reads consecutive block fields, remembering the first error so
// a decoder can check once at the end.
type blockReader struct {
	c   *Cursor
	err error
}

func (r *blockReader) u16() uint16 {
	if r.err != nil {
		return 0
	}
	v, err := r.c.ReadU16()
	r.err = err
	return v
}

func (r *blockReader) u32() uint32 {
	if r.err != nil {
		return 0
	}
	v, err := r.c.ReadU32()
	r.err = err
	return v
}

func (r *blockReader) guid() GUID {
	if r.err != nil {
		return GUID{}
	}
	v, err := r.c.ReadGUID()
	r.err = err
	return v
}

func (r *blockReader) bytes(n int) []byte {
	if r.err != nil {
		return nil
	}
	v, err := r.c.ReadExact(n)
	r.err = err
	return v
}

type blockDecoder func(c *Cursor, h BlockHeader, text *TextDecoder) (Block, error)

type blockTag struct {
	size      uint32
	signature uint32
}

// fixedBlocks are matched on both size and signature.
var fixedBlocks = map[blockTag]blockDecoder{
	{environmentVariableBlockSize, SignatureEnvironmentVariable}: decodeEnvironmentVariable,
	{consoleBlockSize, SignatureConsole}:                         decodeConsole,
	{trackerBlockSize, SignatureTracker}:                         decodeTracker,
	{consoleFEBlockSize, SignatureConsoleFE}:                     decodeConsoleFE,
	{specialFolderBlockSize, SignatureSpecialFolder}:             decodeSpecialFolder,
	{darwinBlockSize, SignatureDarwin}:                           decodeDarwin,
	{iconEnvironmentBlockSize, SignatureIconEnvironment}:         decodeIconEnvironment,
	{knownFolderBlockSize, SignatureKnownFolder}:                 decodeKnownFolder,
}

// variableBlocks are matched on signature alone; their payload is the
// declared size minus the tag.
var variableBlocks = map[uint32]blockDecoder{
	SignatureShim:                decodeShim,
	SignaturePropertyStore:       decodePropertyStore,
	SignatureVistaAndAboveIDList: decodeVistaAndAboveIDList,
}

func lookupBlock(size, signature uint32) (blockDecoder, bool) {
	if dec, ok := fixedBlocks[blockTag{size, signature}]; ok {
		return dec, true
	}
	if dec, ok := variableBlocks[signature]; ok && size >= blockHeaderSize {
		return dec, true
	}
	return nil, false
}

func decodeEnvironmentVariable(c *Cursor, h BlockHeader, text *TextDecoder) (Block, error) {
	r := &blockReader{c: c}
	ansi, wide := r.bytes(ansiPathSize), r.bytes(unicodePathSize)
	if r.err != nil {
		return nil, r.err
	}
	return &EnvironmentVariableDataBlock{
		BlockHeader:   h,
		TargetANSI:    text.ansiField(ansi),
		TargetUnicode: text.wideField(wide),
	}, nil
}

func decodeIconEnvironment(c *Cursor, h BlockHeader, text *TextDecoder) (Block, error) {
	r := &blockReader{c: c}
	ansi, wide := r.bytes(ansiPathSize), r.bytes(unicodePathSize)
	if r.err != nil {
		return nil, r.err
	}
	return &IconEnvironmentDataBlock{
		BlockHeader:   h,
		TargetANSI:    text.ansiField(ansi),
		TargetUnicode: text.wideField(wide),
	}, nil
}

func decodeDarwin(c *Cursor, h BlockHeader, text *TextDecoder) (Block, error) {
	r := &blockReader{c: c}
	ansi, wide := r.bytes(ansiPathSize), r.bytes(unicodePathSize)
	if r.err != nil {
		return nil, r.err
	}
	return &DarwinDataBlock{
		BlockHeader:       h,
		DarwinDataANSI:    text.ansiField(ansi),
		DarwinDataUnicode: text.wideField(wide),
	}, nil
}

func decodeTracker(c *Cursor, h BlockHeader, _ *TextDecoder) (Block, error) {
	r := &blockReader{c: c}
	b := &TrackerDataBlock{BlockHeader: h}
	b.Length = r.u32()
	b.Version = r.u32()
	copy(b.MachineID[:], r.bytes(len(b.MachineID)))
	b.Droid = [2]GUID{r.guid(), r.guid()}
	b.DroidBirth = [2]GUID{r.guid(), r.guid()}
	if r.err != nil {
		return nil, r.err
	}
	return b, nil
}

func decodeConsoleFE(c *Cursor, h BlockHeader, _ *TextDecoder) (Block, error) {
	cp, err := c.ReadU32()
	if err != nil {
		return nil, err
	}
	return &ConsoleFEDataBlock{BlockHeader: h, CodePage: cp}, nil
}

func decodeSpecialFolder(c *Cursor, h BlockHeader, _ *TextDecoder) (Block, error) {
	r := &blockReader{c: c}
	b := &SpecialFolderDataBlock{BlockHeader: h, SpecialFolderID: r.u32(), Offset: r.u32()}
	if r.err != nil {
		return nil, r.err
	}
	return b, nil
}

func decodeKnownFolder(c *Cursor, h BlockHeader, _ *TextDecoder) (Block, error) {
	r := &blockReader{c: c}
	b := &KnownFolderDataBlock{BlockHeader: h, KnownFolderID: r.guid(), Offset: r.u32()}
	if r.err != nil {
		return nil, r.err
	}
	return b, nil
}

func decodeShim(c *Cursor, h BlockHeader, text *TextDecoder) (Block, error) {
	name, err := c.ReadExact(h.payloadSize())
	if err != nil {
		return nil, err
	}
	return &ShimDataBlock{BlockHeader: h, LayerName: text.wideField(name)}, nil
}

func decodePropertyStore(c *Cursor, h BlockHeader, _ *TextDecoder) (Block, error) {
	store, err := c.ReadExact(h.payloadSize())
	if err != nil {
		return nil, err
	}
	return &PropertyStoreDataBlock{BlockHeader: h, PropertyStore: store}, nil
}

func decodeVistaAndAboveIDList(c *Cursor, h BlockHeader, _ *TextDecoder) (Block, error) {
	idList, err := c.ReadExact(h.payloadSize())
	if err != nil {
		return nil, err
	}
	return &VistaAndAboveIDListDataBlock{BlockHeader: h, IDList: idList}, nil
}
