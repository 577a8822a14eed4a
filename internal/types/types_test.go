package lnktypes_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ossyrian/lnkparse/internal/lnk"
	lnktypes "github.com/ossyrian/lnkparse/internal/types"
)

func ptr(s string) *string { return &s }

func sampleLink() *lnk.Link {
	return &lnk.Link{
		Path: "C:\\Users\\me\\Desktop\\App.lnk",
		Header: &lnk.Header{
			HeaderSize:   lnk.HeaderSize,
			LinkCLSID:    lnk.LinkCLSID,
			LinkFlags:    lnk.HasLinkInfo | lnk.HasName | lnk.IsUnicode,
			CreationTime: 116444736000000000,
			ShowCommand:  lnk.ShowMaximized,
			HotKey:       lnk.NewHotKey(0x0674),
		},
		LinkTargetIDList: &lnk.LinkTargetIDList{Size: 4, Items: lnk.ByteRange{Start: 78, End: 82}},
		LinkInfo: &lnk.LinkInfo{
			Offsets:              lnk.LinkInfoOffsets{Size: 0x22, HeaderSize: 0x1C, Flags: lnk.VolumeIDAndLocalBasePath},
			LocalBasePath:        ptr("C:\\App\\"),
			CommonPathSuffixANSI: ptr("app.exe"),
		},
		StringData: &lnk.StringData{NameString: ptr("Test")},
	}
}

func TestFromLink(t *testing.T) {
	doc := lnktypes.FromLink(sampleLink())

	assert.Equal(t, "C:\\App\\app.exe", doc.TargetPath)
	assert.Equal(t, "00021401-0000-0000-C000-000000000046", doc.Header.LinkCLSID)
	assert.Equal(t, []string{"HasLinkInfo", "HasName", "IsUnicode"}, doc.Header.LinkFlags)
	assert.Equal(t, "1970-01-01T00:00:00Z", doc.Header.CreationTime)
	assert.Empty(t, doc.Header.WriteTime)
	assert.Equal(t, "SW_SHOWMAXIMIZED", doc.Header.ShowCommand)
	assert.Equal(t, "Ctrl+Alt+F5", doc.Header.HotKey)
	assert.Equal(t, []string{"VolumeIDAndLocalBasePath"}, doc.LinkInfo.Flags)
	assert.Equal(t, lnk.ByteRange{Start: 78, End: 82}, doc.LinkTargetIDList.Items)
	assert.Nil(t, doc.ExtraData)

	out, err := json.Marshal(doc)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"name_string":"Test"`)
	assert.NotContains(t, string(out), "relative_path")
}

func TestFromLink_ExtraData(t *testing.T) {
	l := sampleLink()

	data := []byte{
		// console FE block, code page 65001
		0x0C, 0x00, 0x00, 0x00, 0x04, 0x00, 0x00, 0xA0, 0xE9, 0xFD, 0x00, 0x00,
		// unknown tag
		0x08, 0x00, 0x00, 0x00, 0x78, 0x56, 0x34, 0x12,
	}
	l.ExtraData = lnk.DecodeExtraData(lnk.NewCursor(data), nil)

	doc := lnktypes.FromLink(l)
	require.NotNil(t, doc.ExtraData)
	require.Len(t, doc.ExtraData.Blocks, 1)

	b := doc.ExtraData.Blocks[0]
	assert.Equal(t, "ConsoleFEDataBlock", b.Kind)
	assert.Equal(t, "0xA0000004", b.Signature)
	assert.Equal(t, uint32(65001), b.Fields["code_page"])

	end := doc.ExtraData.End
	assert.Equal(t, "unknown block", end.Reason)
	assert.Equal(t, 12, end.Offset)
	assert.Equal(t, "0x12345678", end.Signature)
	assert.Contains(t, end.Error, "unknown extra block")
}
