package codec

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Flag values for the leading byte of a half/float/double array region,
// per §4.C: "Encoded either raw-little-endian or through a 'constant
// span + LZ4' path indicated by a leading flag byte."
const (
	arrayFlagRaw          = 0
	arrayFlagConstantSpan = 1
)

// DecodeFloatArray decodes a §4.C float32 array region.
func DecodeFloatArray(src []byte, count int64) ([]float32, error) {
	raw, err := decodeFloatingArray(src, count, 4)
	if err != nil {
		return nil, err
	}
	out := make([]float32, count)
	for i := range out {
		out[i] = math.Float32frombits(binary.LittleEndian.Uint32(raw[i*4:]))
	}
	return out, nil
}

// DecodeDoubleArray decodes a §4.C float64 array region.
func DecodeDoubleArray(src []byte, count int64) ([]float64, error) {
	raw, err := decodeFloatingArray(src, count, 8)
	if err != nil {
		return nil, err
	}
	out := make([]float64, count)
	for i := range out {
		out[i] = math.Float64frombits(binary.LittleEndian.Uint64(raw[i*8:]))
	}
	return out, nil
}

// DecodeHalfArray decodes a §4.C float16 array region, returning the
// raw 16-bit half-precision bit patterns (half-to-float32 promotion is
// the caller's concern, since not every consumer wants to pay for it).
func DecodeHalfArray(src []byte, count int64) ([]uint16, error) {
	raw, err := decodeFloatingArray(src, count, 2)
	if err != nil {
		return nil, err
	}
	out := make([]uint16, count)
	for i := range out {
		out[i] = binary.LittleEndian.Uint16(raw[i*2:])
	}
	return out, nil
}

// HalfToFloat32 promotes an IEEE-754 half-precision bit pattern to
// float32, per the standard sign(1)/exponent(5)/mantissa(10) layout.
func HalfToFloat32(h uint16) float32 {
	sign := uint32(h>>15) & 0x1
	exp := uint32(h>>10) & 0x1f
	frac := uint32(h) & 0x3ff

	var bits uint32
	switch {
	case exp == 0:
		if frac == 0 {
			bits = sign << 31
		} else {
			// Subnormal half: normalize into a normal float32.
			for frac&0x400 == 0 {
				frac <<= 1
				exp--
			}
			exp++
			frac &= 0x3ff
			bits = sign<<31 | (exp+112)<<23 | frac<<13
		}
	case exp == 0x1f:
		bits = sign<<31 | 0xff<<23 | frac<<13
	default:
		bits = sign<<31 | (exp+112)<<23 | frac<<13
	}
	return math.Float32frombits(bits)
}

// decodeFloatingArray shares the raw/constant-span-LZ4 dispatch across
// half, float, and double arrays. elemWidth is the on-wire element size
// in bytes (2, 4, or 8); it returns count*elemWidth raw little-endian
// bytes.
func decodeFloatingArray(src []byte, count int64, elemWidth int) ([]byte, error) {
	if count < 0 {
		return nil, fmt.Errorf("codec: float array: negative count %d", count)
	}
	if len(src) < 1 {
		return nil, fmt.Errorf("codec: float array: truncated, missing flag byte")
	}
	flag := src[0]
	body := src[1:]
	want := count * int64(elemWidth)

	switch flag {
	case arrayFlagRaw:
		if int64(len(body)) < want {
			return nil, fmt.Errorf("codec: float array: truncated raw payload, need %d bytes have %d", want, len(body))
		}
		return body[:want], nil

	case arrayFlagConstantSpan:
		// A constant-span-encoded region stores the first element raw,
		// followed by one LZ4-framed block holding the remaining
		// count-1 elements; the two are concatenated, matching the raw
		// layout contract.
		if len(body) < elemWidth {
			return nil, fmt.Errorf("codec: float array: truncated constant-span header")
		}
		constant := body[:elemWidth]
		rest := body[elemWidth:]
		decompressed, err := DecompressLZ4Block(rest, want-int64(elemWidth))
		if err != nil {
			return nil, fmt.Errorf("codec: float array: constant-span lz4: %w", err)
		}
		out := make([]byte, 0, want)
		out = append(out, constant...)
		out = append(out, decompressed...)
		if int64(len(out)) != want {
			return nil, fmt.Errorf("codec: float array: constant-span expanded to %d bytes, want %d", len(out), want)
		}
		return out, nil

	default:
		return nil, fmt.Errorf("codec: float array: unknown flag byte %d", flag)
	}
}
