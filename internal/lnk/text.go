package lnk

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
)

// TextDecoder turns the two string encodings found in link files into Go
// strings. ANSI strings are validated as UTF-8 unless a code page is set, in
// which case they are decoded from that code page. Wide strings are UTF-16LE.
//
// A nil *TextDecoder is valid and behaves like one without a code page.
type TextDecoder struct {
	codePage encoding.Encoding
	name     string
}

// NewTextDecoder returns a decoder for the named ANSI code page
// (e.g. "windows-1252", "shift_jis"). An empty name selects UTF-8.
func NewTextDecoder(codePage string) (*TextDecoder, error) {
	if codePage == "" {
		return &TextDecoder{}, nil
	}
	enc, err := htmlindex.Get(codePage)
	if err != nil {
		return nil, fmt.Errorf("unknown code page %q: %w", codePage, err)
	}
	name, _ := htmlindex.Name(enc)
	return &TextDecoder{codePage: enc, name: name}, nil
}

// CodePage returns the canonical name of the configured code page, or "utf-8".
func (d *TextDecoder) CodePage() string {
	if d == nil || d.codePage == nil {
		return "utf-8"
	}
	return d.name
}

// ANSI decodes b as a single-byte (or code page) string.
func (d *TextDecoder) ANSI(b []byte) (string, error) {
	if d == nil || d.codePage == nil {
		if !utf8.Valid(b) {
			return "", fmt.Errorf("string is not valid UTF-8: %w", ErrInvalidString)
		}
		return string(b), nil
	}
	out, err := d.codePage.NewDecoder().Bytes(b)
	if err != nil {
		return "", fmt.Errorf("string is not valid %s: %v: %w", d.name, err, ErrInvalidString)
	}
	return string(out), nil
}

// Wide decodes b as UTF-16LE. Odd lengths and unpaired surrogates are errors.
func (d *TextDecoder) Wide(b []byte) (string, error) {
	if len(b)%2 != 0 {
		return "", fmt.Errorf("wide string has odd length %d: %w", len(b), ErrInvalidString)
	}
	units := make([]uint16, len(b)/2)
	for i := range units {
		units[i] = binary.LittleEndian.Uint16(b[i*2:])
	}
	for i := 0; i < len(units); i++ {
		switch u := units[i]; {
		case u >= 0xD800 && u < 0xDC00:
			if i+1 >= len(units) || units[i+1] < 0xDC00 || units[i+1] > 0xDFFF {
				return "", fmt.Errorf("unpaired high surrogate 0x%04X at index %d: %w", u, i, ErrInvalidString)
			}
			i++
		case u >= 0xDC00 && u <= 0xDFFF:
			return "", fmt.Errorf("unpaired low surrogate 0x%04X at index %d: %w", u, i, ErrInvalidString)
		}
	}
	return string(utf16.Decode(units)), nil
}

// ansiField decodes a NUL-terminated ANSI string from a fixed-size buffer,
// replacing anything undecodable.
func (d *TextDecoder) ansiField(b []byte) string {
	b = cutNUL(b)
	if d != nil && d.codePage != nil {
		if out, err := d.codePage.NewDecoder().Bytes(b); err == nil {
			return string(out)
		}
	}
	return strings.ToValidUTF8(string(b), "\uFFFD")
}

// wideField decodes a NUL-terminated UTF-16LE string from a fixed-size
// buffer, replacing invalid sequences.
func (d *TextDecoder) wideField(b []byte) string {
	b = cutNUL16(b)
	out, err := unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewDecoder().Bytes(b)
	if err != nil {
		return ""
	}
	return string(out)
}

// cutNUL returns b up to its first NUL byte.
func cutNUL(b []byte) []byte {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		return b[:i]
	}
	return b
}

// cutNUL16 returns b up to its first aligned NUL code unit, dropping a
// trailing odd byte.
func cutNUL16(b []byte) []byte {
	b = b[:len(b)&^1]
	for i := 0; i+1 < len(b); i += 2 {
		if b[i] == 0 && b[i+1] == 0 {
			return b[:i]
		}
	}
	return b
}
