package codec

import (
	"bytes"
	"encoding/binary"
	"math"
	"testing"
)

func TestDecodeFloatArray_Raw(t *testing.T) {
	values := []float32{1.5, -2.25, 0, 3.125}
	body := []byte{arrayFlagRaw}
	for _, v := range values {
		var buf [4]byte
		binary.LittleEndian.PutUint32(buf[:], math.Float32bits(v))
		body = append(body, buf[:]...)
	}

	got, err := DecodeFloatArray(body, int64(len(values)))
	if err != nil {
		t.Fatalf("DecodeFloatArray: %v", err)
	}
	for i, v := range values {
		if got[i] != v {
			t.Errorf("got[%d] = %v, want %v", i, got[i], v)
		}
	}
}

func TestDecodeDoubleArray_Raw(t *testing.T) {
	values := []float64{1.5, -2.25, 0, 3.125}
	body := []byte{arrayFlagRaw}
	for _, v := range values {
		var buf [8]byte
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(v))
		body = append(body, buf[:]...)
	}

	got, err := DecodeDoubleArray(body, int64(len(values)))
	if err != nil {
		t.Fatalf("DecodeDoubleArray: %v", err)
	}
	for i, v := range values {
		if got[i] != v {
			t.Errorf("got[%d] = %v, want %v", i, got[i], v)
		}
	}
}

func TestDecodeFloatArray_ConstantSpan(t *testing.T) {
	const n = 50
	var constant [4]byte
	binary.LittleEndian.PutUint32(constant[:], math.Float32bits(42.0))

	rest := bytes.Repeat(constant[:], n-1)
	compressed := compressBlock(t, rest)

	frame := []byte{arrayFlagConstantSpan}
	frame = append(frame, constant[:]...)
	frame = append(frame, encodeLZ4SingleChunk(compressed)...)

	got, err := DecodeFloatArray(frame, n)
	if err != nil {
		t.Fatalf("DecodeFloatArray: %v", err)
	}
	for i, v := range got {
		if v != 42.0 {
			t.Errorf("got[%d] = %v, want 42.0", i, v)
		}
	}
}

func encodeLZ4SingleChunk(compressed []byte) []byte {
	frame := []byte{singleChunkSentinel}
	frame = appendLE64(frame, uint64(len(compressed)))
	return append(frame, compressed...)
}

func TestDecodeHalfArray_Raw(t *testing.T) {
	bits := []uint16{0x3C00, 0xC000} // 1.0, -2.0
	body := []byte{arrayFlagRaw}
	for _, b := range bits {
		body = append(body, byte(b), byte(b>>8))
	}

	got, err := DecodeHalfArray(body, int64(len(bits)))
	if err != nil {
		t.Fatalf("DecodeHalfArray: %v", err)
	}
	for i, b := range bits {
		if got[i] != b {
			t.Errorf("got[%d] = %x, want %x", i, got[i], b)
		}
	}
}

func TestHalfToFloat32(t *testing.T) {
	tests := []struct {
		name string
		bits uint16
		want float32
	}{
		{"one", 0x3C00, 1.0},
		{"neg_two", 0xC000, -2.0},
		{"zero", 0x0000, 0.0},
		{"inf", 0x7C00, float32(math.Inf(1))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := HalfToFloat32(tt.bits)
			if got != tt.want {
				t.Errorf("HalfToFloat32(%x) = %v, want %v", tt.bits, got, tt.want)
			}
		})
	}
}

func TestDecodeFloatArray_Errors(t *testing.T) {
	tests := []struct {
		name  string
		src   []byte
		count int64
	}{
		{"empty", nil, 1},
		{"negative_count", []byte{arrayFlagRaw, 0, 0, 0, 0}, -1},
		{"unknown_flag", []byte{0xFF}, 1},
		{"truncated_raw", []byte{arrayFlagRaw, 0, 0}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := DecodeFloatArray(tt.src, tt.count); err == nil {
				t.Errorf("DecodeFloatArray(%v, %d) = nil error, want error", tt.src, tt.count)
			}
		})
	}
}
