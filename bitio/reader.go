// Package bitio implements component A: a bounded random-access cursor
// over an in-memory byte buffer. It never owns the buffer and never
// blocks on I/O — callers load the whole Crate or ASCII payload first.
//
// The cursor style (an offset into a borrowed []byte, advanced by each
// Read*) is grounded on stewi1014-encs/gram's Gram type, adapted to
// return typed errors instead of panicking: every operation here is
// bounds-checked and returns (..., error) rather than trusting the
// caller, since Crate/ASCII input is adversarial by design (§5).
package bitio

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Reader is a bounded cursor over buf. The zero value is not usable; use
// NewReader.
type Reader struct {
	buf []byte
	pos int64
}

// NewReader wraps buf for cursor-based reading. buf is not copied; the
// caller must not mutate it while the Reader is in use.
func NewReader(buf []byte) *Reader {
	return &Reader{buf: buf}
}

// Len returns the total buffer length.
func (r *Reader) Len() int64 { return int64(len(r.buf)) }

// Tell returns the current absolute byte offset.
func (r *Reader) Tell() int64 { return r.pos }

// EOF reports whether the cursor is at or past the end of the buffer.
func (r *Reader) EOF() bool { return r.pos >= int64(len(r.buf)) }

// Remaining returns the number of unread bytes.
func (r *Reader) Remaining() int64 { return int64(len(r.buf)) - r.pos }

func (r *Reader) checkBounds(n int64) error {
	if n < 0 {
		return fmt.Errorf("bitio: negative read length %d", n)
	}
	if r.pos < 0 || r.pos > int64(len(r.buf)) {
		return fmt.Errorf("bitio: cursor out of bounds at %d (len=%d)", r.pos, len(r.buf))
	}
	if r.pos+n > int64(len(r.buf)) {
		return fmt.Errorf("bitio: read of %d bytes at offset %d exceeds buffer length %d", n, r.pos, len(r.buf))
	}
	return nil
}

// Seek moves the cursor to an absolute offset. It is an error to seek
// outside [0, len(buf)].
func (r *Reader) Seek(abs int64) error {
	if abs < 0 || abs > int64(len(r.buf)) {
		return fmt.Errorf("bitio: seek to %d out of bounds (len=%d)", abs, len(r.buf))
	}
	r.pos = abs
	return nil
}

// Rewind moves the cursor backward by delta bytes (delta must be >= 0).
func (r *Reader) Rewind(delta int64) error {
	if delta < 0 {
		return fmt.Errorf("bitio: negative rewind %d", delta)
	}
	return r.Seek(r.pos - delta)
}

// Skip advances the cursor forward by n bytes without reading them.
func (r *Reader) Skip(n int64) error {
	if err := r.checkBounds(n); err != nil {
		return err
	}
	r.pos += n
	return nil
}

// ReadBytes returns the next n bytes as a slice into the underlying
// buffer (not a copy) and advances the cursor.
func (r *Reader) ReadBytes(n int) ([]byte, error) {
	if err := r.checkBounds(int64(n)); err != nil {
		return nil, err
	}
	b := r.buf[r.pos : r.pos+int64(n)]
	r.pos += int64(n)
	return b, nil
}

// ReadU8 reads one byte.
func (r *Reader) ReadU8() (uint8, error) {
	if err := r.checkBounds(1); err != nil {
		return 0, err
	}
	v := r.buf[r.pos]
	r.pos++
	return v, nil
}

// ReadU16 reads a little-endian uint16.
func (r *Reader) ReadU16() (uint16, error) {
	b, err := r.ReadBytes(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

// ReadU32 reads a little-endian uint32.
func (r *Reader) ReadU32() (uint32, error) {
	b, err := r.ReadBytes(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

// ReadU64 reads a little-endian uint64.
func (r *Reader) ReadU64() (uint64, error) {
	b, err := r.ReadBytes(8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

// ReadI32 reads a little-endian int32.
func (r *Reader) ReadI32() (int32, error) {
	v, err := r.ReadU32()
	return int32(v), err
}

// ReadI64 reads a little-endian int64.
func (r *Reader) ReadI64() (int64, error) {
	v, err := r.ReadU64()
	return int64(v), err
}

// ReadF16Bits reads a raw 16-bit half-float bit pattern (decoding to
// float32/64 is the codec package's job; the reader only moves bytes).
func (r *Reader) ReadF16Bits() (uint16, error) { return r.ReadU16() }

// ReadF32 reads a little-endian IEEE-754 float32.
func (r *Reader) ReadF32() (float32, error) {
	v, err := r.ReadU32()
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(v), nil
}

// ReadF64 reads a little-endian IEEE-754 float64.
func (r *Reader) ReadF64() (float64, error) {
	v, err := r.ReadU64()
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(v), nil
}

// ReadStringPrefixed reads a length prefix of the given width (1, 2, 4 or
// 8 bytes, little-endian) followed by that many raw bytes, returned as a
// string.
func (r *Reader) ReadStringPrefixed(lenWidth int) (string, error) {
	var n uint64
	switch lenWidth {
	case 1:
		b, err := r.ReadU8()
		if err != nil {
			return "", err
		}
		n = uint64(b)
	case 2:
		v, err := r.ReadU16()
		if err != nil {
			return "", err
		}
		n = uint64(v)
	case 4:
		v, err := r.ReadU32()
		if err != nil {
			return "", err
		}
		n = uint64(v)
	case 8:
		v, err := r.ReadU64()
		if err != nil {
			return "", err
		}
		n = v
	default:
		return "", fmt.Errorf("bitio: unsupported length-prefix width %d", lenWidth)
	}

	if n > uint64(r.Remaining()) {
		return "", fmt.Errorf("bitio: string length %d exceeds remaining buffer %d", n, r.Remaining())
	}
	b, err := r.ReadBytes(int(n))
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Snapshot captures the current cursor position for later Restore, used
// by the ASCII parser's speculative lookahead.
type Snapshot struct {
	pos int64
}

// Snapshot captures the cursor position.
func (r *Reader) Snapshot() Snapshot { return Snapshot{pos: r.pos} }

// Restore rewinds the cursor to a previously captured Snapshot.
func (r *Reader) Restore(s Snapshot) { r.pos = s.pos }

// Clone returns a new Reader over the same underlying buffer, positioned
// at the start. The clone shares buf but has its own independent pos, so
// concurrent goroutines can each Seek/Read through their own clone
// without racing on cursor state; the underlying buf must still not be
// mutated by any of them, per NewReader's contract.
func (r *Reader) Clone() *Reader { return &Reader{buf: r.buf} }
