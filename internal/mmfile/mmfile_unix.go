//go:build unix

package mmfile

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// Open maps path read-only. Empty files are returned as an empty mapping.
func Open(path string) (*Mapping, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	st, err := f.Stat()
	if err != nil {
		return nil, err
	}
	sz := st.Size()
	if sz == 0 {
		return &Mapping{Data: []byte{}}, nil
	}
	if int64(int(sz)) != sz {
		return nil, fmt.Errorf("file too large to map: %s (%d bytes)", path, sz)
	}

	data, err := unix.Mmap(int(f.Fd()), 0, int(sz), unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		return nil, fmt.Errorf("mmap failed: %w", err)
	}

	return &Mapping{
		Data:  data,
		close: func() error { return unix.Munmap(data) },
	}, nil
}
