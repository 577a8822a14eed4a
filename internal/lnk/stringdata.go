package lnk

import "fmt"

// StringData holds the optional user-interface and path strings that follow
// LinkInfo. A nil field was not present in the file; a pointer to "" was
// present with zero characters.
type StringData struct {
	NameString           *string
	RelativePath         *string
	WorkingDir           *string
	CommandLineArguments *string
	IconLocation         *string
}

// DecodeStringData reads every string whose flag is set, in file order. Each
// string is a 16-bit character count followed by that many characters, one
// byte wide or, with IsUnicode, two bytes wide. Any failure is fatal.
func DecodeStringData(c *Cursor, flags LinkFlags, text *TextDecoder) (*StringData, error) {
	sd := &StringData{}
	unicode := flags.Has(IsUnicode)

	fields := []struct {
		flag LinkFlags
		name string
		dst  **string
	}{
		{HasName, "name string", &sd.NameString},
		{HasRelativePath, "relative path", &sd.RelativePath},
		{HasWorkingDir, "working directory", &sd.WorkingDir},
		{HasArguments, "command line arguments", &sd.CommandLineArguments},
		{HasIconLocation, "icon location", &sd.IconLocation},
	}

	for _, f := range fields {
		if !flags.Has(f.flag) {
			continue
		}
		s, err := readCountedString(c, unicode, text)
		if err != nil {
			return nil, sectionError(SectionStringData, fmt.Errorf("failed to read %s: %w", f.name, err))
		}
		*f.dst = &s
	}

	return sd, nil
}

func readCountedString(c *Cursor, unicode bool, text *TextDecoder) (string, error) {
	count, err := c.ReadU16()
	if err != nil {
		return "", fmt.Errorf("failed to read character count: %w", err)
	}
	n := int(count)
	if unicode {
		n *= 2
	}
	b, err := c.take(n)
	if err != nil {
		return "", fmt.Errorf("failed to read %d characters: %w", count, err)
	}
	if unicode {
		return text.Wide(b)
	}
	return text.ANSI(b)
}
