package codec

import "fmt"

// Per-element width codes packed two bits at a time into the header
// byte sequence, per §4.C.
const (
	widthCommon = 0 // element equals the declared common value, no delta stored
	widthSmall  = 1 // delta stored as a single byte
	widthMedium = 2 // delta stored as two bytes
	widthLarge  = 3 // delta stored as four (32-bit) or eight (64-bit) bytes
)

// DecodeCompressedInts32 reconstructs a compressed-integer stream of
// 32-bit elements: a 2-bit-per-element header (packed 4 elements per
// byte) followed by a common value and a packed delta stream. Each
// element's value is common + delta, where delta's byte width is
// selected by that element's header code.
func DecodeCompressedInts32(src []byte, count int64) ([]int32, error) {
	raw, _, err := decodeCompressedInts(src, count, 4)
	if err != nil {
		return nil, err
	}
	out := make([]int32, count)
	for i := range out {
		out[i] = int32(raw[i])
	}
	return out, nil
}

// DecodeCompressedInts64 is the 64-bit-element counterpart of
// DecodeCompressedInts32.
func DecodeCompressedInts64(src []byte, count int64) ([]int64, error) {
	out, _, err := decodeCompressedInts(src, count, 8)
	return out, err
}

// DecodeCompressedInts32Sized is DecodeCompressedInts32 but additionally
// reports how many bytes of src the stream occupied, so callers packing
// several compressed-integer arrays back-to-back in one section (§4.E's
// FIELDS/FIELDSETS/SPECS/PATHS readers) can advance past exactly this
// array without re-parsing it.
func DecodeCompressedInts32Sized(src []byte, count int64) ([]int32, int, error) {
	raw, n, err := decodeCompressedInts(src, count, 4)
	if err != nil {
		return nil, 0, err
	}
	out := make([]int32, count)
	for i := range out {
		out[i] = int32(raw[i])
	}
	return out, n, nil
}

// DecodeCompressedInts64Sized is the 64-bit counterpart of
// DecodeCompressedInts32Sized.
func DecodeCompressedInts64Sized(src []byte, count int64) ([]int64, int, error) {
	return decodeCompressedInts(src, count, 8)
}

// decodeCompressedInts implements the shared §4.C algorithm. width is
// the element width in bytes (4 or 8); large-code deltas use this same
// width. It returns the number of bytes of src consumed alongside the
// decoded values.
func decodeCompressedInts(src []byte, count int64, width int) ([]int64, int, error) {
	if count < 0 {
		return nil, 0, fmt.Errorf("codec: compressed ints: negative count %d", count)
	}
	if count == 0 {
		return nil, 0, nil
	}

	headerLen := (count + 3) / 4
	if int64(len(src)) < headerLen {
		return nil, 0, fmt.Errorf("codec: compressed ints: truncated header, need %d bytes have %d", headerLen, len(src))
	}
	header := src[:headerLen]
	body := src[headerLen:]
	bodyStart := len(body)

	if int64(len(body)) < int64(width) {
		return nil, 0, fmt.Errorf("codec: compressed ints: truncated stream, missing common value")
	}
	common := readSignedLE(body[:width], width)
	body = body[width:]

	out := make([]int64, count)
	for i := int64(0); i < count; i++ {
		code := (header[i/4] >> (uint(i%4) * 2)) & 0x3
		switch code {
		case widthCommon:
			out[i] = common
		case widthSmall:
			if len(body) < 1 {
				return nil, 0, fmt.Errorf("codec: compressed ints: truncated stream at element %d", i)
			}
			out[i] = common + int64(int8(body[0]))
			body = body[1:]
		case widthMedium:
			if len(body) < 2 {
				return nil, 0, fmt.Errorf("codec: compressed ints: truncated stream at element %d", i)
			}
			out[i] = common + int64(int16(le16(body)))
			body = body[2:]
		case widthLarge:
			if len(body) < width {
				return nil, 0, fmt.Errorf("codec: compressed ints: truncated stream at element %d", i)
			}
			out[i] = common + readSignedLE(body[:width], width)
			body = body[width:]
		}
	}
	consumed := int(headerLen) + (bodyStart - len(body))
	return out, consumed, nil
}

func readSignedLE(b []byte, width int) int64 {
	switch width {
	case 4:
		u := uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
		return int64(int32(u))
	case 8:
		return int64(le64(b))
	default:
		panic("codec: unsupported integer width")
	}
}

func le16(b []byte) uint16 {
	return uint16(b[0]) | uint16(b[1])<<8
}
