package lnk

import (
	"fmt"
	"strings"
)

// LinkFlags specifies which optional structures follow the header and how
// strings are encoded.
type LinkFlags uint32

const (
	HasLinkTargetIDList LinkFlags = 1 << iota
	HasLinkInfo
	HasName
	HasRelativePath
	HasWorkingDir
	HasArguments
	HasIconLocation
	IsUnicode
	ForceNoLinkInfo
	HasExpString
	RunInSeparateProcess
	Unused1
	HasDarwinID
	RunAsUser
	HasExpIcon
	NoPidlAlias
	Unused2
	RunWithShimLayer
	ForceNoLinkTrack
	EnableTargetMetadata
	DisableLinkPathTracking
	DisableKnownFolderTracking
	DisableKnownFolderAlias
	AllowLinkToLink
	UnaliasOnSave
	PreferEnvironmentPath
	KeepLocalIDListForUNCTarget

	linkFlagsMask = KeepLocalIDListForUNCTarget<<1 - 1
)

var linkFlagNames = []string{
	"HasLinkTargetIDList", "HasLinkInfo", "HasName", "HasRelativePath",
	"HasWorkingDir", "HasArguments", "HasIconLocation", "IsUnicode",
	"ForceNoLinkInfo", "HasExpString", "RunInSeparateProcess", "Unused1",
	"HasDarwinID", "RunAsUser", "HasExpIcon", "NoPidlAlias", "Unused2",
	"RunWithShimLayer", "ForceNoLinkTrack", "EnableTargetMetadata",
	"DisableLinkPathTracking", "DisableKnownFolderTracking",
	"DisableKnownFolderAlias", "AllowLinkToLink", "UnaliasOnSave",
	"PreferEnvironmentPath", "KeepLocalIDListForUNCTarget",
}

// NewLinkFlags interprets raw as a flag set, dropping undefined bits.
func NewLinkFlags(raw uint32) LinkFlags { return LinkFlags(raw) & linkFlagsMask }

// Has reports whether every bit in f is set.
func (l LinkFlags) Has(f LinkFlags) bool { return l&f == f }

// Names returns the names of the set bits in ascending bit order.
func (l LinkFlags) Names() []string { return bitNames(uint32(l), linkFlagNames) }

func (l LinkFlags) String() string { return joinNames(l.Names()) }

// FileAttributeFlags describes the attributes of the link target.
type FileAttributeFlags uint32

const (
	FileAttributeReadOnly FileAttributeFlags = 1 << iota
	FileAttributeHidden
	FileAttributeSystem
	FileAttributeReserved1
	FileAttributeDirectory
	FileAttributeArchive
	FileAttributeReserved2
	FileAttributeNormal
	FileAttributeTemporary
	FileAttributeSparseFile
	FileAttributeReparsePoint
	FileAttributeCompressed
	FileAttributeOffline
	FileAttributeNotContentIndexed
	FileAttributeEncrypted

	fileAttributeMask = FileAttributeEncrypted<<1 - 1
)

var fileAttributeNames = []string{
	"ReadOnly", "Hidden", "System", "Reserved1", "Directory", "Archive",
	"Reserved2", "Normal", "Temporary", "SparseFile", "ReparsePoint",
	"Compressed", "Offline", "NotContentIndexed", "Encrypted",
}

func NewFileAttributeFlags(raw uint32) FileAttributeFlags {
	return FileAttributeFlags(raw) & fileAttributeMask
}

func (f FileAttributeFlags) Has(a FileAttributeFlags) bool { return f&a == a }

func (f FileAttributeFlags) Names() []string { return bitNames(uint32(f), fileAttributeNames) }

func (f FileAttributeFlags) String() string { return joinNames(f.Names()) }

// ShowCommand is the expected window state of an application launched by the link.
type ShowCommand uint32

const (
	ShowNormal      ShowCommand = 0x1
	ShowMaximized   ShowCommand = 0x3
	ShowMinNoActive ShowCommand = 0x7
)

// NewShowCommand maps raw to a known window state. Any other value is
// treated as ShowNormal.
func NewShowCommand(raw uint32) ShowCommand {
	switch s := ShowCommand(raw); s {
	case ShowNormal, ShowMaximized, ShowMinNoActive:
		return s
	default:
		return ShowNormal
	}
}

func (s ShowCommand) String() string {
	switch s {
	case ShowNormal:
		return "SW_SHOWNORMAL"
	case ShowMaximized:
		return "SW_SHOWMAXIMIZED"
	case ShowMinNoActive:
		return "SW_SHOWMINNOACTIVE"
	default:
		return fmt.Sprintf("ShowCommand(%d)", uint32(s))
	}
}

// LinkInfoFlags specifies which optional fields are present in a LinkInfo structure.
type LinkInfoFlags uint32

const (
	VolumeIDAndLocalBasePath LinkInfoFlags = 1 << iota
	CommonNetworkRelativeLinkAndPathSuffix

	linkInfoFlagsMask = CommonNetworkRelativeLinkAndPathSuffix<<1 - 1
)

var linkInfoFlagNames = []string{"VolumeIDAndLocalBasePath", "CommonNetworkRelativeLinkAndPathSuffix"}

func NewLinkInfoFlags(raw uint32) LinkInfoFlags { return LinkInfoFlags(raw) & linkInfoFlagsMask }

func (f LinkInfoFlags) Has(b LinkInfoFlags) bool { return f&b == b }

func (f LinkInfoFlags) Names() []string { return bitNames(uint32(f), linkInfoFlagNames) }

func (f LinkInfoFlags) String() string { return joinNames(f.Names()) }

// HotKeyModifiers are the modifier keys of a hot key.
type HotKeyModifiers uint8

const (
	HotKeyShift HotKeyModifiers = 1 << iota
	HotKeyControl
	HotKeyAlt

	hotKeyModifierMask = HotKeyAlt<<1 - 1
)

// HotKey is the keystroke combination that activates the link target.
type HotKey struct {
	KeyCode   uint8
	Modifiers HotKeyModifiers
}

// NewHotKey splits the raw 16-bit field into its key code (low byte) and
// modifier mask (high byte).
func NewHotKey(raw uint16) HotKey {
	return HotKey{
		KeyCode:   uint8(raw),
		Modifiers: HotKeyModifiers(raw>>8) & hotKeyModifierMask,
	}
}

// IsZero reports whether no hot key is assigned.
func (h HotKey) IsZero() bool { return h.KeyCode == 0 && h.Modifiers == 0 }

func (h HotKey) String() string {
	if h.IsZero() {
		return ""
	}
	var parts []string
	if h.Modifiers&HotKeyControl != 0 {
		parts = append(parts, "Ctrl")
	}
	if h.Modifiers&HotKeyAlt != 0 {
		parts = append(parts, "Alt")
	}
	if h.Modifiers&HotKeyShift != 0 {
		parts = append(parts, "Shift")
	}
	return strings.Join(append(parts, keyName(h.KeyCode)), "+")
}

func keyName(code uint8) string {
	switch {
	case code >= '0' && code <= '9', code >= 'A' && code <= 'Z':
		return string(rune(code))
	case code >= 0x70 && code <= 0x87:
		return fmt.Sprintf("F%d", code-0x6F)
	case code == 0x90:
		return "NumLock"
	case code == 0x91:
		return "ScrollLock"
	default:
		return fmt.Sprintf("0x%02X", code)
	}
}

func bitNames(v uint32, names []string) []string {
	var out []string
	for i, name := range names {
		if v&(1<<i) != 0 {
			out = append(out, name)
		}
	}
	return out
}

func joinNames(names []string) string {
	if len(names) == 0 {
		return "0"
	}
	return strings.Join(names, "|")
}
