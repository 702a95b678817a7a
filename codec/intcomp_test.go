package codec

import (
	"reflect"
	"testing"
)

// encode32 hand-builds a §4.C compressed-integer stream for 32-bit
// elements, exercising the common/small/medium/large width codes.
func encode32(t *testing.T, common int32, deltas []struct {
	code  byte
	delta int64
}) []byte {
	t.Helper()
	count := len(deltas)
	headerLen := (count + 3) / 4
	header := make([]byte, headerLen)
	for i, d := range deltas {
		header[i/4] |= d.code << (uint(i%4) * 2)
	}

	body := []byte{byte(common), byte(common >> 8), byte(common >> 16), byte(common >> 24)}
	for _, d := range deltas {
		switch d.code {
		case widthCommon:
		case widthSmall:
			body = append(body, byte(int8(d.delta)))
		case widthMedium:
			v := int16(d.delta)
			body = append(body, byte(v), byte(v>>8))
		case widthLarge:
			v := int32(d.delta)
			body = append(body, byte(v), byte(v>>8), byte(v>>16), byte(v>>24))
		}
	}
	return append(header, body...)
}

func TestDecodeCompressedInts32(t *testing.T) {
	src := encode32(t, 100, []struct {
		code  byte
		delta int64
	}{
		{widthCommon, 0},
		{widthSmall, 5},
		{widthMedium, 1000},
		{widthLarge, 70000},
	})

	got, err := DecodeCompressedInts32(src, 4)
	if err != nil {
		t.Fatalf("DecodeCompressedInts32: %v", err)
	}
	want := []int32{100, 105, 1100, 70100}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("DecodeCompressedInts32 = %v, want %v", got, want)
	}
}

func TestDecodeCompressedInts_Errors(t *testing.T) {
	tests := []struct {
		name  string
		src   []byte
		count int64
	}{
		{"negative_count", []byte{0, 0, 0, 0, 0}, -1},
		{"truncated_header", []byte{}, 4},
		{"truncated_common", []byte{0, 1, 2}, 4},
		{"truncated_element", []byte{1, 1, 2, 3, 4}, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := DecodeCompressedInts32(tt.src, tt.count); err == nil {
				t.Errorf("DecodeCompressedInts32(%v, %d) = nil error, want error", tt.src, tt.count)
			}
		})
	}
}

func TestDecodeCompressedInts32_ZeroCount(t *testing.T) {
	got, err := DecodeCompressedInts32(nil, 0)
	if err != nil {
		t.Fatalf("DecodeCompressedInts32: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("DecodeCompressedInts32(nil, 0) = %v, want empty", got)
	}
}

func TestDecodeCompressedInts64(t *testing.T) {
	// header: one element, code=widthLarge, common 10, delta 9000000000.
	header := []byte{widthLarge}
	common := int64(10)
	delta := int64(9000000000)
	body := appendLE64int(nil, common)
	body = appendLE64int(body, delta)
	src := append(header, body...)

	got, err := DecodeCompressedInts64(src, 1)
	if err != nil {
		t.Fatalf("DecodeCompressedInts64: %v", err)
	}
	want := []int64{common + delta}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("DecodeCompressedInts64 = %v, want %v", got, want)
	}
}

func appendLE64int(b []byte, v int64) []byte {
	u := uint64(v)
	for i := 0; i < 8; i++ {
		b = append(b, byte(u>>(8*i)))
	}
	return b
}
