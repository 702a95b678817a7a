package codec

import (
	"bytes"
	"testing"

	"github.com/pierrec/lz4/v4"
)

func compressBlock(t *testing.T, data []byte) []byte {
	t.Helper()
	buf := make([]byte, lz4.CompressBlockBound(len(data)))
	var c lz4.Compressor
	n, err := c.CompressBlock(data, buf)
	if err != nil {
		t.Fatalf("CompressBlock: %v", err)
	}
	return buf[:n]
}

func TestDecompressLZ4Block_SingleChunk(t *testing.T) {
	payload := bytes.Repeat([]byte("usd-crate-payload"), 64)
	compressed := compressBlock(t, payload)

	frame := []byte{singleChunkSentinel}
	frame = appendLE64(frame, uint64(len(compressed)))
	frame = append(frame, compressed...)

	got, err := DecompressLZ4Block(frame, int64(len(payload)))
	if err != nil {
		t.Fatalf("DecompressLZ4Block: %v", err)
	}
	if !bytes.Equal(got, payload) {
		t.Errorf("roundtrip mismatch: got %d bytes, want %d", len(got), len(payload))
	}
}

func TestDecompressLZ4Block_MultiChunk(t *testing.T) {
	chunk0 := bytes.Repeat([]byte{0xAA}, 100)
	chunk1 := bytes.Repeat([]byte{0xBB}, 200)
	c0 := compressBlock(t, chunk0)
	c1 := compressBlock(t, chunk1)

	frame := []byte{2}
	frame = appendLE32(frame, uint32(len(c0)))
	frame = append(frame, c0...)
	frame = appendLE32(frame, uint32(len(c1)))
	frame = append(frame, c1...)

	want := append(append([]byte{}, chunk0...), chunk1...)
	got, err := DecompressLZ4Block(frame, int64(len(want)))
	if err != nil {
		t.Fatalf("DecompressLZ4Block: %v", err)
	}
	if !bytes.Equal(got, want) {
		t.Errorf("roundtrip mismatch")
	}
}

func TestDecompressLZ4Block_Errors(t *testing.T) {
	tests := []struct {
		name string
		src  []byte
		size int64
	}{
		{"empty", nil, 0},
		{"negative_size", []byte{1, 0, 0, 0, 0}, -1},
		{"truncated_64bit_size", []byte{singleChunkSentinel, 1, 2}, 10},
		{"truncated_chunk_size", []byte{1, 0, 0}, 10},
		{"chunk_size_exceeds_available", []byte{1, 100, 0, 0, 0}, 10},
		{"chunk_exceeds_max_size", func() []byte {
			b := []byte{singleChunkSentinel}
			b = appendLE64(b, uint64(MaxLZ4ChunkSize)+1)
			return append(b, bytes.Repeat([]byte{0}, 16)...)
		}(), 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := DecompressLZ4Block(tt.src, tt.size); err == nil {
				t.Errorf("DecompressLZ4Block(%q, %d) = nil error, want error", tt.src, tt.size)
			}
		})
	}
}

func appendLE32(b []byte, v uint32) []byte {
	return append(b, byte(v), byte(v>>8), byte(v>>16), byte(v>>24))
}

func appendLE64(b []byte, v uint64) []byte {
	for i := 0; i < 8; i++ {
		b = append(b, byte(v>>(8*i)))
	}
	return b
}
