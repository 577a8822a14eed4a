// Package mmfile loads whole files into memory for random-access decoding.
package mmfile

// Mapping is a read-only view of a file's contents. Data must not be used
// after Close.
type Mapping struct {
	Data  []byte
	close func() error
}

// Close releases the mapping. It is safe to call more than once.
func (m *Mapping) Close() error {
	if m == nil || m.close == nil {
		return nil
	}
	err := m.close()
	m.close = nil
	m.Data = nil
	return err
}
