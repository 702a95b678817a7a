// Package codec implements component C: the LZ4-framed block codec, the
// compressed-integer delta-varint codec, and the half/float/double array
// coders. These are pure functions over byte slices — no stream state —
// so §5's "per-section LZ4 frames and per-section compressed-integer
// arrays are independent" parallel fanout can call them concurrently and
// merge results in source order.
package codec

import (
	"fmt"

	"github.com/pierrec/lz4/v4"
)

// MaxLZ4ChunkSize is the §4.C cap: "Maximum chunk size is 127 MiB."
const MaxLZ4ChunkSize = 127 * 1024 * 1024

// singleChunkSentinel is the nChunks value (127) that means "one
// 64-bit-sized chunk" rather than "127 chunks", per §4.C.
const singleChunkSentinel = 127

// DecompressLZ4Block decompresses a §4.C/§6 LZ4-framed region:
//
//	uint8 nChunks
//	if nChunks == 127: uint64 compressedSize, then one raw LZ4 block
//	else: nChunks * (uint32 compressedSize, raw LZ4 block), packed
//	      back-to-back in the uncompressed output
//
// uncompressedSize is the exact total size the caller expects back (it is
// always known up front from the section header or value-rep array
// count); the decoder rejects frames whose declared sizes disagree with
// the stream bounds.
func DecompressLZ4Block(src []byte, uncompressedSize int64) ([]byte, error) {
	if len(src) < 1 {
		return nil, fmt.Errorf("codec: lz4 frame: truncated, missing nChunks byte")
	}
	if uncompressedSize < 0 {
		return nil, fmt.Errorf("codec: lz4 frame: negative uncompressed size %d", uncompressedSize)
	}

	nChunks := src[0]
	body := src[1:]
	out := make([]byte, uncompressedSize)

	if nChunks == singleChunkSentinel {
		if len(body) < 8 {
			return nil, fmt.Errorf("codec: lz4 frame: truncated 64-bit chunk size")
		}
		compSize := le64(body)
		body = body[8:]
		if compSize > uint64(MaxLZ4ChunkSize) {
			return nil, fmt.Errorf("codec: lz4 frame: compressed size %d exceeds %d byte cap", compSize, MaxLZ4ChunkSize)
		}
		if uint64(len(body)) < compSize {
			return nil, fmt.Errorf("codec: lz4 frame: declared compressed size %d exceeds available %d bytes", compSize, len(body))
		}
		n, err := lz4.UncompressBlock(body[:compSize], out)
		if err != nil {
			return nil, fmt.Errorf("codec: lz4 decompress: %w", err)
		}
		if int64(n) != uncompressedSize {
			return nil, fmt.Errorf("codec: lz4 frame: decompressed %d bytes, want %d", n, uncompressedSize)
		}
		return out, nil
	}

	var outOff int64
	for i := 0; i < int(nChunks); i++ {
		if len(body) < 4 {
			return nil, fmt.Errorf("codec: lz4 frame: truncated chunk %d size", i)
		}
		compSize := le32(body)
		body = body[4:]
		if compSize > MaxLZ4ChunkSize {
			return nil, fmt.Errorf("codec: lz4 frame: chunk %d compressed size %d exceeds %d byte cap", i, compSize, MaxLZ4ChunkSize)
		}
		if uint64(len(body)) < uint64(compSize) {
			return nil, fmt.Errorf("codec: lz4 frame: chunk %d declared size %d exceeds available %d bytes", i, compSize, len(body))
		}
		chunk := body[:compSize]
		body = body[compSize:]

		if outOff > uncompressedSize {
			return nil, fmt.Errorf("codec: lz4 frame: chunk %d would write past declared uncompressed size %d", i, uncompressedSize)
		}
		n, err := lz4.UncompressBlock(chunk, out[outOff:])
		if err != nil {
			return nil, fmt.Errorf("codec: lz4 decompress chunk %d: %w", i, err)
		}
		outOff += int64(n)
	}

	if outOff != uncompressedSize {
		return nil, fmt.Errorf("codec: lz4 frame: decompressed %d bytes total, want %d", outOff, uncompressedSize)
	}
	return out, nil
}

func le32(b []byte) uint32 {
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
}

func le64(b []byte) uint64 {
	var v uint64
	for i := 0; i < 8; i++ {
		v |= uint64(b[i]) << (8 * i)
	}
	return v
}
