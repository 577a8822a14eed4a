package lnk

import (
	"errors"
	"fmt"
)

var (
	// ErrTruncated indicates the buffer lacked the bytes required for a field.
	ErrTruncated = errors.New("lnk: truncated buffer")
	// ErrInvalidString indicates string bytes were not valid in their declared encoding.
	ErrInvalidString = errors.New("lnk: invalid string data")
	// ErrMissingField indicates a requested property is not present in this link.
	ErrMissingField = errors.New("lnk: field not present")
)

// Section identifies one of the top-level structures of a shell link.
type Section int

const (
	SectionHeader Section = iota
	SectionLinkTargetIDList
	SectionLinkInfo
	SectionStringData
	SectionExtraData
)

func (s Section) String() string {
	switch s {
	case SectionHeader:
		return "header"
	case SectionLinkTargetIDList:
		return "link target id list"
	case SectionLinkInfo:
		return "link info"
	case SectionStringData:
		return "string data"
	case SectionExtraData:
		return "extra data"
	default:
		return "unknown section"
	}
}

// SectionError reports a fatal failure while decoding one section.
type SectionError struct {
	Section Section
	Err     error
}

func (e *SectionError) Error() string {
	return fmt.Sprintf("error parsing %s: %v", e.Section, e.Err)
}

func (e *SectionError) Unwrap() error { return e.Err }

func sectionError(s Section, err error) error {
	if err == nil {
		return nil
	}
	return &SectionError{Section: s, Err: err}
}

// UnknownBlockError reports an extra data tag that matches no known block type.
type UnknownBlockError struct {
	Offset    int
	Size      uint32
	Signature uint32
}

func (e *UnknownBlockError) Error() string {
	return fmt.Sprintf("unknown extra block at offset %d: size: 0x%08x, signature: 0x%08x",
		e.Offset, e.Size, e.Signature)
}
