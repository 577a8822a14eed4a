package lnk_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ossyrian/lnkparse/internal/lnk"
)

func TestDecodeStringData_RoundTrip(t *testing.T) {
	values := []string{"", "a", "Test", "C:\\Program Files\\App", strings.Repeat("x", 300)}

	for _, unicode := range []bool{false, true} {
		for _, want := range values {
			flags := lnk.HasName
			encoded := countedANSI(t, want)
			if unicode {
				flags |= lnk.IsUnicode
				encoded = countedWide(t, want)
			}

			c := lnk.NewCursor(encoded)
			sd, err := lnk.DecodeStringData(c, flags, nil)
			require.NoError(t, err)
			require.NotNil(t, sd.NameString, "unicode=%v len=%d", unicode, len(want))
			assert.Equal(t, want, *sd.NameString)
			assert.Equal(t, len(encoded), c.Position())
		}
	}
}

func TestDecodeStringData_FlagClear(t *testing.T) {
	c := lnk.NewCursor(countedANSI(t, "ignored"))
	sd, err := lnk.DecodeStringData(c, lnk.IsUnicode, nil)
	require.NoError(t, err)
	assert.Nil(t, sd.NameString)
	assert.Nil(t, sd.IconLocation)
	assert.Zero(t, c.Position())
}

func TestDecodeStringData_AllFieldsInOrder(t *testing.T) {
	flags := lnk.HasName | lnk.HasRelativePath | lnk.HasWorkingDir | lnk.HasArguments | lnk.HasIconLocation | lnk.IsUnicode

	buf := new(bytes.Buffer)
	for _, s := range []string{"My App", "..\\app.exe", "C:\\work", "--verbose", "%SystemRoot%\\shell32.dll"} {
		buf.Write(countedWide(t, s))
	}

	sd, err := lnk.DecodeStringData(lnk.NewCursor(buf.Bytes()), flags, nil)
	require.NoError(t, err)
	assert.Equal(t, "My App", *sd.NameString)
	assert.Equal(t, "..\\app.exe", *sd.RelativePath)
	assert.Equal(t, "C:\\work", *sd.WorkingDir)
	assert.Equal(t, "--verbose", *sd.CommandLineArguments)
	assert.Equal(t, "%SystemRoot%\\shell32.dll", *sd.IconLocation)
}

func TestDecodeStringData_ANSIAndUnicodeAgree(t *testing.T) {
	for _, s := range []string{"notepad.exe", "C:\\Windows\\System32", "-a -b --c=d"} {
		ansi, err := lnk.DecodeStringData(lnk.NewCursor(countedANSI(t, s)), lnk.HasArguments, nil)
		require.NoError(t, err)
		wide, err := lnk.DecodeStringData(lnk.NewCursor(countedWide(t, s)), lnk.HasArguments|lnk.IsUnicode, nil)
		require.NoError(t, err)
		assert.Equal(t, *ansi.CommandLineArguments, *wide.CommandLineArguments)
	}
}

func TestDecodeStringData_Errors(t *testing.T) {
	tests := []struct {
		name   string
		flags  lnk.LinkFlags
		input  []byte
		target error
		errMsg string
	}{
		{
			name:   "missing count",
			flags:  lnk.HasName,
			input:  []byte{0x05},
			target: lnk.ErrTruncated,
			errMsg: "failed to read name string",
		},
		{
			name:   "short characters",
			flags:  lnk.HasWorkingDir,
			input:  []byte{0x05, 0x00, 'a', 'b'},
			target: lnk.ErrTruncated,
			errMsg: "failed to read working directory",
		},
		{
			name:   "short wide characters",
			flags:  lnk.HasWorkingDir | lnk.IsUnicode,
			input:  []byte{0x02, 0x00, 'a', 0x00, 'b'},
			target: lnk.ErrTruncated,
		},
		{
			name:   "invalid utf-8",
			flags:  lnk.HasArguments,
			input:  []byte{0x02, 0x00, 0xC3, 0x28},
			target: lnk.ErrInvalidString,
			errMsg: "failed to read command line arguments",
		},
		{
			name:   "unpaired surrogate",
			flags:  lnk.HasIconLocation | lnk.IsUnicode,
			input:  []byte{0x01, 0x00, 0x00, 0xD8},
			target: lnk.ErrInvalidString,
			errMsg: "failed to read icon location",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sd, err := lnk.DecodeStringData(lnk.NewCursor(tt.input), tt.flags, nil)
			require.Error(t, err)
			assert.Nil(t, sd)
			assert.ErrorIs(t, err, tt.target)
			if tt.errMsg != "" {
				assert.Contains(t, err.Error(), tt.errMsg)
			}

			var se *lnk.SectionError
			require.True(t, errors.As(err, &se))
			assert.Equal(t, lnk.SectionStringData, se.Section)
		})
	}
}

func TestDecodeStringData_CodePage(t *testing.T) {
	text, err := lnk.NewTextDecoder("windows-1252")
	require.NoError(t, err)

	// "Café" in windows-1252
	input := []byte{0x04, 0x00, 'C', 'a', 'f', 0xE9}
	sd, err := lnk.DecodeStringData(lnk.NewCursor(input), lnk.HasName, text)
	require.NoError(t, err)
	assert.Equal(t, "Café", *sd.NameString)
}
