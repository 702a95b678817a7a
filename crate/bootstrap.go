package crate

import (
	"fmt"

	"github.com/sacereda/tinyusdz/bitio"
	"github.com/sacereda/tinyusdz/value"
)

// Header is the fixed 24-byte Crate bootstrap block, per §4.E/§6.
type Header struct {
	VersionMajor uint8
	VersionMinor uint8
	VersionPatch uint8
	TOCOffset    int64
}

// readHeader validates the magic and version triple and reads the
// absolute TOC offset, per §8 scenario 1 ("Magic check").
func readHeader(r *bitio.Reader) (Header, error) {
	magic, err := r.ReadBytes(len(Magic))
	if err != nil {
		return Header{}, fmt.Errorf("crate: header: %w: %v", value.ErrIO, err)
	}
	if string(magic) != Magic {
		return Header{}, fmt.Errorf("crate: bad magic %q, want %q: %w", magic, Magic, value.ErrMalformedHeader)
	}

	verBytes, err := r.ReadBytes(3)
	if err != nil {
		return Header{}, fmt.Errorf("crate: version triple: %w: %v", value.ErrMalformedHeader, err)
	}
	if err := r.Skip(5); err != nil { // reserved
		return Header{}, fmt.Errorf("crate: reserved bytes: %w: %v", value.ErrMalformedHeader, err)
	}
	tocOff, err := r.ReadU64()
	if err != nil {
		return Header{}, fmt.Errorf("crate: TOC offset: %w: %v", value.ErrMalformedHeader, err)
	}
	if r.Tell() != headerSize {
		return Header{}, fmt.Errorf("crate: internal: header cursor at %d, want %d: %w", r.Tell(), headerSize, value.ErrInternal)
	}

	return Header{
		VersionMajor: verBytes[0],
		VersionMinor: verBytes[1],
		VersionPatch: verBytes[2],
		TOCOffset:    int64(tocOff),
	}, nil
}
