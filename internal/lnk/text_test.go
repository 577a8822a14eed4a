package lnk_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ossyrian/lnkparse/internal/lnk"
)

func TestNewTextDecoder(t *testing.T) {
	d, err := lnk.NewTextDecoder("")
	require.NoError(t, err)
	assert.Equal(t, "utf-8", d.CodePage())

	d, err = lnk.NewTextDecoder("cp1252")
	require.NoError(t, err)
	assert.Equal(t, "windows-1252", d.CodePage())

	d, err = lnk.NewTextDecoder("Shift_JIS")
	require.NoError(t, err)
	assert.Equal(t, "shift_jis", d.CodePage())

	_, err = lnk.NewTextDecoder("not-a-code-page")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown code page")

	var nilDecoder *lnk.TextDecoder
	assert.Equal(t, "utf-8", nilDecoder.CodePage())
}

func TestTextDecoder_Wide(t *testing.T) {
	var d *lnk.TextDecoder

	s, err := d.Wide(utf16le("héllo"))
	require.NoError(t, err)
	assert.Equal(t, "héllo", s)

	// U+1F600 as a surrogate pair
	s, err = d.Wide([]byte{0x3D, 0xD8, 0x00, 0xDE})
	require.NoError(t, err)
	assert.Equal(t, "\U0001F600", s)

	_, err = d.Wide([]byte{'a', 0x00, 'b'})
	assert.ErrorIs(t, err, lnk.ErrInvalidString)

	_, err = d.Wide([]byte{0x00, 0xDC})
	assert.ErrorIs(t, err, lnk.ErrInvalidString)

	_, err = d.Wide([]byte{0x3D, 0xD8, 'a', 0x00})
	assert.ErrorIs(t, err, lnk.ErrInvalidString)
}

func TestTextDecoder_ANSI(t *testing.T) {
	var d *lnk.TextDecoder

	s, err := d.ANSI([]byte("plain"))
	require.NoError(t, err)
	assert.Equal(t, "plain", s)

	_, err = d.ANSI([]byte{0xFF})
	assert.ErrorIs(t, err, lnk.ErrInvalidString)

	sjis, err := lnk.NewTextDecoder("shift_jis")
	require.NoError(t, err)
	// "日本" in Shift JIS
	s, err = sjis.ANSI([]byte{0x93, 0xFA, 0x96, 0x7B})
	require.NoError(t, err)
	assert.Equal(t, "日本", s)
}
