// Package lnktypes is the JSON document model written by lnkparse.
package lnktypes

import (
	"fmt"
	"time"

	"github.com/ossyrian/lnkparse/internal/lnk"
)

// Document is the serializable view of a decoded shell link.
type Document struct {
	Path       string `json:"path,omitempty"`
	TargetPath string `json:"target_path,omitempty"`

	Header           Header      `json:"header"`
	LinkTargetIDList *IDList     `json:"link_target_id_list,omitempty"`
	LinkInfo         *LinkInfo   `json:"link_info,omitempty"`
	StringData       *StringData `json:"string_data,omitempty"`
	ExtraData        *ExtraData  `json:"extra_data,omitempty"`
}

type Header struct {
	HeaderSize     uint32   `json:"header_size"`
	LinkCLSID      string   `json:"link_clsid"`
	LinkFlags      []string `json:"link_flags,omitempty"`
	FileAttributes []string `json:"file_attributes,omitempty"`
	CreationTime   string   `json:"creation_time,omitempty"`
	AccessTime     string   `json:"access_time,omitempty"`
	WriteTime      string   `json:"write_time,omitempty"`
	FileSize       uint32   `json:"file_size"`
	IconIndex      int32    `json:"icon_index"`
	ShowCommand    string   `json:"show_command"`
	HotKey         string   `json:"hot_key,omitempty"`
}

type IDList struct {
	Size  uint16        `json:"size"`
	Items lnk.ByteRange `json:"items"`
}

type LinkInfo struct {
	Size       uint32   `json:"size"`
	HeaderSize uint32   `json:"header_size"`
	Flags      []string `json:"flags,omitempty"`

	VolumeID                  *lnk.ByteRange `json:"volume_id,omitempty"`
	CommonNetworkRelativeLink *lnk.ByteRange `json:"common_network_relative_link,omitempty"`

	LocalBasePath           *string `json:"local_base_path,omitempty"`
	CommonPathSuffix        *string `json:"common_path_suffix,omitempty"`
	LocalBasePathUnicode    *string `json:"local_base_path_unicode,omitempty"`
	CommonPathSuffixUnicode *string `json:"common_path_suffix_unicode,omitempty"`
	CommonPathSuffixANSI    *string `json:"common_path_suffix_ansi,omitempty"`
}

type StringData struct {
	NameString           *string `json:"name_string,omitempty"`
	RelativePath         *string `json:"relative_path,omitempty"`
	WorkingDir           *string `json:"working_dir,omitempty"`
	CommandLineArguments *string `json:"command_line_arguments,omitempty"`
	IconLocation         *string `json:"icon_location,omitempty"`
}

type ExtraData struct {
	Blocks []Block     `json:"blocks"`
	End    Termination `json:"end"`
}

// Block is one extra data block. Fields holds the decoded values keyed by
// field name.
type Block struct {
	Kind      string         `json:"kind"`
	Size      uint32         `json:"size"`
	Signature string         `json:"signature"`
	Fields    map[string]any `json:"fields,omitempty"`
}

type Termination struct {
	Reason    string `json:"reason"`
	Offset    int    `json:"offset"`
	Size      uint32 `json:"size,omitempty"`
	Signature string `json:"signature,omitempty"`
	Error     string `json:"error,omitempty"`
}

// FromLink builds the document for l.
func FromLink(l *lnk.Link) *Document {
	d := &Document{Path: l.Path}
	if target, err := l.TargetPath(); err == nil {
		d.TargetPath = target
	}

	if h := l.Header; h != nil {
		d.Header = Header{
			HeaderSize:     h.HeaderSize,
			LinkCLSID:      h.LinkCLSID.String(),
			LinkFlags:      h.LinkFlags.Names(),
			FileAttributes: h.FileAttributes.Names(),
			CreationTime:   formatTime(h.CreationTime),
			AccessTime:     formatTime(h.AccessTime),
			WriteTime:      formatTime(h.WriteTime),
			FileSize:       h.FileSize,
			IconIndex:      h.IconIndex,
			ShowCommand:    h.ShowCommand.String(),
			HotKey:         h.HotKey.String(),
		}
	}

	if id := l.LinkTargetIDList; id != nil {
		d.LinkTargetIDList = &IDList{Size: id.Size, Items: id.Items}
	}

	if li := l.LinkInfo; li != nil {
		d.LinkInfo = &LinkInfo{
			Size:                      li.Offsets.Size,
			HeaderSize:                li.Offsets.HeaderSize,
			Flags:                     li.Offsets.Flags.Names(),
			VolumeID:                  li.VolumeID,
			CommonNetworkRelativeLink: li.CommonNetworkRelativeLink,
			LocalBasePath:             li.LocalBasePath,
			CommonPathSuffix:          li.CommonPathSuffix,
			LocalBasePathUnicode:      li.LocalBasePathUnicode,
			CommonPathSuffixUnicode:   li.CommonPathSuffixUnicode,
			CommonPathSuffixANSI:      li.CommonPathSuffixANSI,
		}
	}

	if sd := l.StringData; sd != nil {
		d.StringData = &StringData{
			NameString:           sd.NameString,
			RelativePath:         sd.RelativePath,
			WorkingDir:           sd.WorkingDir,
			CommandLineArguments: sd.CommandLineArguments,
			IconLocation:         sd.IconLocation,
		}
	}

	if ed := l.ExtraData; ed != nil {
		d.ExtraData = fromExtraData(ed)
	}

	return d
}

func fromExtraData(ed *lnk.ExtraData) *ExtraData {
	out := &ExtraData{Blocks: make([]Block, 0, ed.Len())}
	for _, b := range ed.Blocks() {
		h := b.Header()
		out.Blocks = append(out.Blocks, Block{
			Kind:      b.Kind().String(),
			Size:      h.Size,
			Signature: hex32(h.Signature),
			Fields:    blockFields(b),
		})
	}

	end := ed.End
	out.End = Termination{
		Reason: end.Reason.String(),
		Offset: end.Offset,
		Size:   end.Size,
	}
	if end.Signature != 0 {
		out.End.Signature = hex32(end.Signature)
	}
	if err := end.Err(); err != nil {
		out.End.Error = err.Error()
	}
	return out
}

func blockFields(b lnk.Block) map[string]any {
	switch b := b.(type) {
	case *lnk.EnvironmentVariableDataBlock:
		return map[string]any{"target_ansi": b.TargetANSI, "target_unicode": b.TargetUnicode}
	case *lnk.IconEnvironmentDataBlock:
		return map[string]any{"target_ansi": b.TargetANSI, "target_unicode": b.TargetUnicode}
	case *lnk.DarwinDataBlock:
		return map[string]any{"darwin_data_ansi": b.DarwinDataANSI, "darwin_data_unicode": b.DarwinDataUnicode}
	case *lnk.ConsoleDataBlock:
		return map[string]any{
			"fill_attributes":           b.FillAttributes,
			"popup_fill_attributes":     b.PopupFillAttributes,
			"screen_buffer_size":        b.ScreenBufferSize,
			"window_size":               b.WindowSize,
			"window_origin":             b.WindowOrigin,
			"font_size":                 b.FontSize,
			"font_family":               b.FontFamily,
			"font_weight":               b.FontWeight,
			"face_name":                 b.FaceName,
			"cursor_size":               b.CursorSize,
			"full_screen":               b.FullScreen != 0,
			"quick_edit":                b.QuickEdit != 0,
			"insert_mode":               b.InsertMode != 0,
			"auto_position":             b.AutoPosition != 0,
			"history_buffer_size":       b.HistoryBufferSize,
			"number_of_history_buffers": b.NumberOfHistoryBuffers,
			"history_no_dup":            b.HistoryNoDup != 0,
			"color_table":               b.ColorTable,
		}
	case *lnk.ConsoleFEDataBlock:
		return map[string]any{"code_page": b.CodePage}
	case *lnk.TrackerDataBlock:
		return map[string]any{
			"length":      b.Length,
			"version":     b.Version,
			"machine_id":  b.MachineName(),
			"droid":       []string{b.Droid[0].String(), b.Droid[1].String()},
			"droid_birth": []string{b.DroidBirth[0].String(), b.DroidBirth[1].String()},
		}
	case *lnk.SpecialFolderDataBlock:
		return map[string]any{"special_folder_id": b.SpecialFolderID, "offset": b.Offset}
	case *lnk.KnownFolderDataBlock:
		return map[string]any{"known_folder_id": b.KnownFolderID.String(), "offset": b.Offset}
	case *lnk.ShimDataBlock:
		return map[string]any{"layer_name": b.LayerName}
	case *lnk.PropertyStoreDataBlock:
		return map[string]any{"length": len(b.PropertyStore)}
	case *lnk.VistaAndAboveIDListDataBlock:
		return map[string]any{"length": len(b.IDList)}
	default:
		return nil
	}
}

func formatTime(t lnk.FileTime) string {
	if t == 0 {
		return ""
	}
	return t.Time().Format(time.RFC3339Nano)
}

func hex32(v uint32) string {
	return fmt.Sprintf("0x%08X", v)
}
