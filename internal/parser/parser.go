package parser

import (
	"fmt"
	"log/slog"

	"github.com/ossyrian/lnkparse/internal/config"
	"github.com/ossyrian/lnkparse/internal/lnk"
	"github.com/ossyrian/lnkparse/internal/mmfile"
)

// LnkReader reads the sections of a shell link in file order.
type LnkReader struct {
	cursor *lnk.Cursor
	config *config.Config
	text   *lnk.TextDecoder
	logger *slog.Logger
	header *lnk.Header // decoded header, steers every later section
}

// NewLnkReader returns a reader over data positioned at the header.
func NewLnkReader(data []byte, cfg *config.Config, logger *slog.Logger) (*LnkReader, error) {
	if cfg == nil {
		cfg = &config.Config{}
	}
	if logger == nil {
		logger = slog.Default()
	}

	text, err := lnk.NewTextDecoder(cfg.CodePage)
	if err != nil {
		return nil, err
	}

	return &LnkReader{
		cursor: lnk.NewCursor(data),
		config: cfg,
		text:   text,
		logger: logger,
	}, nil
}

// ReadHeader decodes the 76-byte header. A header whose size or class
// identifier is off is still returned; the mismatch is only logged.
func (r *LnkReader) ReadHeader() (*lnk.Header, error) {
	h, err := lnk.DecodeHeader(r.cursor)
	if err != nil {
		return nil, err
	}

	if err := h.Validate(); err != nil {
		r.logger.Warn("header does not conform", "error", err)
	}

	r.logger.Info("header decoded",
		"link_flags", h.LinkFlags,
		"file_attributes", h.FileAttributes,
		"file_size", h.FileSize,
		"show_command", h.ShowCommand,
		"hot_key", h.HotKey,
	)

	r.header = h
	return h, nil
}

// ReadLinkTargetIDList skips the item ID list when the header announces one.
func (r *LnkReader) ReadLinkTargetIDList() (*lnk.LinkTargetIDList, error) {
	if err := r.requireHeader(); err != nil {
		return nil, err
	}

	idList, err := lnk.DecodeLinkTargetIDList(r.cursor, r.header.LinkFlags)
	if err != nil {
		return nil, err
	}
	if idList != nil {
		r.logger.Debug("skipped link target id list",
			"size", idList.Size,
			"start", idList.Items.Start,
			"end", idList.Items.End,
		)
	}
	return idList, nil
}

// ReadLinkInfo decodes the LinkInfo structure and logs the resolved target path.
func (r *LnkReader) ReadLinkInfo() (*lnk.LinkInfo, error) {
	if err := r.requireHeader(); err != nil {
		return nil, err
	}

	li, err := lnk.DecodeLinkInfo(r.cursor, r.header.LinkFlags, r.text)
	if err != nil {
		return nil, err
	}
	if li == nil {
		return nil, nil
	}

	r.logger.Debug("read link info",
		"start", li.Start,
		"size", li.Offsets.Size,
		"header_size", li.Offsets.HeaderSize,
		"flags", li.Offsets.Flags,
	)
	if target, err := li.TargetPath(); err == nil {
		r.logger.Info("resolved target path", "target", target)
	}

	return li, nil
}

// ReadStringData decodes the optional strings that follow LinkInfo.
func (r *LnkReader) ReadStringData() (*lnk.StringData, error) {
	if err := r.requireHeader(); err != nil {
		return nil, err
	}

	sd, err := lnk.DecodeStringData(r.cursor, r.header.LinkFlags, r.text)
	if err != nil {
		return nil, err
	}

	r.logger.Debug("read string data",
		"unicode", r.header.LinkFlags.Has(lnk.IsUnicode),
		"end", r.cursor.Position(),
	)
	return sd, nil
}

// ReadExtraData decodes the trailing blocks. In strict mode a truncated or
// unknown final block is returned as an error alongside the decoded blocks.
func (r *LnkReader) ReadExtraData() (*lnk.ExtraData, error) {
	if err := r.requireHeader(); err != nil {
		return nil, err
	}

	ed := lnk.DecodeExtraData(r.cursor, r.text)

	for _, b := range ed.Blocks() {
		h := b.Header()
		r.logger.Debug("read extra data block",
			"kind", b.Kind(),
			"size", h.Size,
			"signature", fmt.Sprintf("0x%08X", h.Signature),
		)
	}
	r.checkBlockFlags(ed)

	r.logger.Info("read extra data",
		"blocks", ed.Len(),
		"end", ed.End.Reason,
		"offset", ed.End.Offset,
	)

	if err := ed.End.Err(); err != nil {
		if r.config.Strict {
			return ed, &lnk.SectionError{Section: lnk.SectionExtraData, Err: err}
		}
		r.logger.Warn("extra data ended early", "error", err)
	}
	return ed, nil
}

// blockFlags pairs blocks with the link flag that announces them.
var blockFlags = []struct {
	kind lnk.BlockKind
	flag lnk.LinkFlags
}{
	{lnk.KindEnvironmentVariable, lnk.HasExpString},
	{lnk.KindIconEnvironment, lnk.HasExpIcon},
	{lnk.KindDarwin, lnk.HasDarwinID},
	{lnk.KindShim, lnk.RunWithShimLayer},
	{lnk.KindPropertyStore, lnk.EnableTargetMetadata},
}

func (r *LnkReader) checkBlockFlags(ed *lnk.ExtraData) {
	for _, bf := range blockFlags {
		if _, ok := ed.Get(bf.kind); ok && !r.header.LinkFlags.Has(bf.flag) {
			r.logger.Warn("block present without its link flag",
				"kind", bf.kind,
				"flag", bf.flag,
			)
		}
	}
}

func (r *LnkReader) requireHeader() error {
	if r.header == nil {
		return fmt.Errorf("header must be read first")
	}
	return nil
}

// Parse decodes a complete shell link held in data. On a strict-mode extra
// data failure the partially decoded link is returned with the error.
func Parse(data []byte, cfg *config.Config) (*lnk.Link, error) {
	if cfg == nil {
		cfg = &config.Config{}
	}
	return parse(data, cfg, slog.With("file", cfg.InputFile))
}

// ParseFile maps path into memory and decodes it.
func ParseFile(path string, cfg *config.Config) (*lnk.Link, error) {
	if cfg == nil {
		cfg = &config.Config{}
	}

	m, err := mmfile.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open link file: %w", err)
	}
	defer m.Close()

	link, err := parse(m.Data, cfg, slog.With("file", path))
	if link != nil {
		link.Path = path
	}
	return link, err
}

func parse(data []byte, cfg *config.Config, logger *slog.Logger) (*lnk.Link, error) {
	logger.Info("starting", "size", len(data))

	reader, err := NewLnkReader(data, cfg, logger)
	if err != nil {
		return nil, err
	}

	link := &lnk.Link{}

	if link.Header, err = reader.ReadHeader(); err != nil {
		return nil, err
	}
	if link.LinkTargetIDList, err = reader.ReadLinkTargetIDList(); err != nil {
		return nil, err
	}
	if link.LinkInfo, err = reader.ReadLinkInfo(); err != nil {
		return nil, err
	}
	if link.StringData, err = reader.ReadStringData(); err != nil {
		return nil, err
	}
	if link.ExtraData, err = reader.ReadExtraData(); err != nil {
		return link, err
	}

	logger.Info("done")
	return link, nil
}
