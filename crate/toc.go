package crate

import (
	"fmt"
	"strings"

	"github.com/sacereda/tinyusdz/bitio"
	"github.com/sacereda/tinyusdz/internal/limits"
	"github.com/sacereda/tinyusdz/value"
)

// TOCEntry is one table-of-contents record: a fixed 16-byte zero-padded
// ASCII name plus the section's absolute byte range, per §4.E/§6.
type TOCEntry struct {
	Name  string
	Start int64
	Size  int64
}

// readTOC reads the "uint64 nSections" count and that many TOCEntry
// records at the header's declared TOC offset.
func readTOC(r *bitio.Reader, hdr Header, lim limits.Limits) ([]TOCEntry, error) {
	if err := r.Seek(hdr.TOCOffset); err != nil {
		return nil, fmt.Errorf("crate: TOC: %w: %v", value.ErrTruncatedSection, err)
	}
	n, err := r.ReadU64()
	if err != nil {
		return nil, fmt.Errorf("crate: TOC section count: %w: %v", value.ErrTruncatedSection, err)
	}
	if err := limits.CheckCount("TOC sections", int(n), lim.MaxTOCSections); err != nil {
		return nil, fmt.Errorf("%w: %v", value.ErrLimitExceeded, err)
	}

	out := make([]TOCEntry, n)
	for i := range out {
		nameBytes, err := r.ReadBytes(sectionNameSize)
		if err != nil {
			return nil, fmt.Errorf("crate: TOC entry %d name: %w: %v", i, value.ErrTruncatedSection, err)
		}
		start, err := r.ReadU64()
		if err != nil {
			return nil, fmt.Errorf("crate: TOC entry %d start: %w: %v", i, value.ErrTruncatedSection, err)
		}
		size, err := r.ReadU64()
		if err != nil {
			return nil, fmt.Errorf("crate: TOC entry %d size: %w: %v", i, value.ErrTruncatedSection, err)
		}
		name := strings.TrimRight(string(nameBytes), "\x00")
		out[i] = TOCEntry{Name: name, Start: int64(start), Size: int64(size)}
	}
	return out, nil
}

// findSection returns the TOC entry named name, or ok=false.
func findSection(toc []TOCEntry, name string) (TOCEntry, bool) {
	for _, e := range toc {
		if e.Name == name {
			return e, true
		}
	}
	return TOCEntry{}, false
}

// sectionBytes seeks r to entry's start and returns entry's raw bytes,
// bounds-checked against the buffer.
func sectionBytes(r *bitio.Reader, entry TOCEntry) ([]byte, error) {
	if err := r.Seek(entry.Start); err != nil {
		return nil, fmt.Errorf("crate: section %s: %w: %v", entry.Name, value.ErrTruncatedSection, err)
	}
	b, err := r.ReadBytes(int(entry.Size))
	if err != nil {
		return nil, fmt.Errorf("crate: section %s: %w: %v", entry.Name, value.ErrTruncatedSection, err)
	}
	return b, nil
}
