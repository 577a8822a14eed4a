package lnk

import "fmt"

// LinkTargetIDList marks where the target's item ID list sits in the file.
// The item IDs themselves are not decoded; Items is the range a shell
// namespace decoder would consume.
type LinkTargetIDList struct {
	Size  uint16
	Items ByteRange
}

// DecodeLinkTargetIDList skips the ID list when the header announces one and
// returns nil otherwise.
func DecodeLinkTargetIDList(c *Cursor, flags LinkFlags) (*LinkTargetIDList, error) {
	if !flags.Has(HasLinkTargetIDList) {
		return nil, nil
	}

	size, err := c.ReadU16()
	if err != nil {
		return nil, sectionError(SectionLinkTargetIDList, fmt.Errorf("failed to read id list size: %w", err))
	}

	start := c.Position()
	if err := c.Skip(int(size)); err != nil {
		return nil, sectionError(SectionLinkTargetIDList, fmt.Errorf("failed to skip id list: %w", err))
	}

	return &LinkTargetIDList{
		Size:  size,
		Items: ByteRange{Start: start, End: start + int(size)},
	}, nil
}
