package lnk

import "fmt"

// Link is a decoded shell link. Sections absent from the file are nil.
type Link struct {
	// Path is where the link was read from, if it came from a file. It is not
	// used by decoding.
	Path string

	Header           *Header
	LinkTargetIDList *LinkTargetIDList
	LinkInfo         *LinkInfo
	StringData       *StringData
	ExtraData        *ExtraData
}

func (l *Link) stringField(name string, pick func(*StringData) *string) (string, error) {
	if l.StringData == nil {
		return "", fmt.Errorf("%s: %w", name, ErrMissingField)
	}
	s := pick(l.StringData)
	if s == nil {
		return "", fmt.Errorf("%s: %w", name, ErrMissingField)
	}
	return *s, nil
}

// Description returns the name string shown as the link's comment.
func (l *Link) Description() (string, error) {
	return l.stringField("name string", func(sd *StringData) *string { return sd.NameString })
}

// RelativePath returns the relative path of the target from the link.
func (l *Link) RelativePath() (string, error) {
	return l.stringField("relative path", func(sd *StringData) *string { return sd.RelativePath })
}

// WorkingDir returns the working directory used when activating the target.
func (l *Link) WorkingDir() (string, error) {
	return l.stringField("working directory", func(sd *StringData) *string { return sd.WorkingDir })
}

// Arguments returns the command line arguments passed to the target.
func (l *Link) Arguments() (string, error) {
	return l.stringField("command line arguments", func(sd *StringData) *string { return sd.CommandLineArguments })
}

// IconLocation returns the location of the icon shown for the link.
func (l *Link) IconLocation() (string, error) {
	return l.stringField("icon location", func(sd *StringData) *string { return sd.IconLocation })
}

// TargetPath reconstructs the local target path from LinkInfo.
func (l *Link) TargetPath() (string, error) {
	p, err := l.LinkInfo.TargetPath()
	if err != nil {
		return "", fmt.Errorf("target path: %w", err)
	}
	return p, nil
}
