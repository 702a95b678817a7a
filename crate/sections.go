package crate

import (
	"bytes"
	"fmt"

	"github.com/sacereda/tinyusdz/bitio"
	"github.com/sacereda/tinyusdz/codec"
	"github.com/sacereda/tinyusdz/internal/limits"
	"github.com/sacereda/tinyusdz/intern"
	"github.com/sacereda/tinyusdz/value"
	"github.com/sacereda/tinyusdz/valuerep"
)

// Field is one entry of the FIELDS section: a token index naming the
// field plus the raw value-rep word describing where/how its value is
// stored, per §4.E.
type Field struct {
	TokenIdx int
	Rep      valuerep.Rep
}

// readTokensSection implements §4.E's TOKENS reader: uint64 count,
// uint64 uncompressedSize, uint64 compressedSize, then an LZ4-compressed
// blob that NUL-splits into count token strings.
func readTokensSection(data []byte, tokens *intern.TokenTable, lim limits.Limits, acct *limits.Accountant) error {
	r := bitio.NewReader(data)
	count, err := r.ReadU64()
	if err != nil {
		return fmt.Errorf("crate: TOKENS count: %w: %v", value.ErrTruncatedSection, err)
	}
	if err := limits.CheckCount("tokens", int(count), lim.MaxTokens); err != nil {
		return fmt.Errorf("%w: %v", value.ErrLimitExceeded, err)
	}
	uncompressedSize, err := r.ReadU64()
	if err != nil {
		return fmt.Errorf("crate: TOKENS uncompressedSize: %w: %v", value.ErrTruncatedSection, err)
	}
	compressedSize, err := r.ReadU64()
	if err != nil {
		return fmt.Errorf("crate: TOKENS compressedSize: %w: %v", value.ErrTruncatedSection, err)
	}
	if err := acct.Charge(int64(uncompressedSize)); err != nil {
		return err
	}
	compBytes, err := r.ReadBytes(int(compressedSize))
	if err != nil {
		return fmt.Errorf("crate: TOKENS payload: %w: %v", value.ErrTruncatedSection, err)
	}
	raw, err := codec.DecompressLZ4Block(compBytes, int64(uncompressedSize))
	if err != nil {
		return fmt.Errorf("crate: TOKENS lz4: %w", err)
	}
	parts := bytes.Split(raw, []byte{0})
	// A trailing NUL produces one empty trailing element; drop it if the
	// count matches without it.
	if len(parts) == int(count)+1 && len(parts[len(parts)-1]) == 0 {
		parts = parts[:len(parts)-1]
	}
	if len(parts) != int(count) {
		return fmt.Errorf("crate: TOKENS: got %d NUL-split strings, want %d: %w", len(parts), count, value.ErrMalformedHeader)
	}
	for _, p := range parts {
		if len(p) > lim.MaxTokenLength {
			return fmt.Errorf("crate: token length %d exceeds limit %d: %w", len(p), lim.MaxTokenLength, value.ErrLimitExceeded)
		}
		tokens.Intern(string(p))
	}
	return nil
}

// readStringsSection implements §4.E's STRINGS reader: count followed by
// a compressed-integer array of token indices. The strings pool maps a
// string index to the token it names.
func readStringsSection(data []byte, tokens *intern.TokenTable, lim limits.Limits) ([]int, error) {
	r := bitio.NewReader(data)
	count, err := r.ReadU64()
	if err != nil {
		return nil, fmt.Errorf("crate: STRINGS count: %w: %v", value.ErrTruncatedSection, err)
	}
	if err := limits.CheckCount("strings", int(count), lim.MaxStrings); err != nil {
		return nil, fmt.Errorf("%w: %v", value.ErrLimitExceeded, err)
	}
	if count == 0 {
		return nil, nil
	}
	rest, err := r.ReadBytes(int(r.Remaining()))
	if err != nil {
		return nil, fmt.Errorf("crate: STRINGS body: %w: %v", value.ErrTruncatedSection, err)
	}
	idxs, err := codec.DecodeCompressedInts32(rest, int64(count))
	if err != nil {
		return nil, fmt.Errorf("crate: STRINGS indices: %w", err)
	}
	out := make([]int, len(idxs))
	for i, v := range idxs {
		if int(v) < 0 || int(v) >= tokens.Len() {
			return nil, fmt.Errorf("crate: STRINGS entry %d references out-of-range token %d: %w", i, v, value.ErrInternal)
		}
		out[i] = int(v)
	}
	return out, nil
}

// readFieldsSection implements §4.E's FIELDS reader: count followed by
// two compressed-integer arrays (token indices, and value-rep words
// decoded as 64-bit blobs).
func readFieldsSection(data []byte, lim limits.Limits) ([]Field, error) {
	r := bitio.NewReader(data)
	count, err := r.ReadU64()
	if err != nil {
		return nil, fmt.Errorf("crate: FIELDS count: %w: %v", value.ErrTruncatedSection, err)
	}
	if err := limits.CheckCount("fields", int(count), lim.MaxFields); err != nil {
		return nil, fmt.Errorf("%w: %v", value.ErrLimitExceeded, err)
	}
	if count == 0 {
		return nil, nil
	}
	rest, err := r.ReadBytes(int(r.Remaining()))
	if err != nil {
		return nil, fmt.Errorf("crate: FIELDS body: %w: %v", value.ErrTruncatedSection, err)
	}
	tokIdxs, n1, err := codec.DecodeCompressedInts32Sized(rest, int64(count))
	if err != nil {
		return nil, fmt.Errorf("crate: FIELDS token indices: %w", err)
	}
	rest = rest[n1:]
	repWords, _, err := codec.DecodeCompressedInts64Sized(rest, int64(count))
	if err != nil {
		return nil, fmt.Errorf("crate: FIELDS value reps: %w", err)
	}

	out := make([]Field, count)
	for i := range out {
		out[i] = Field{TokenIdx: int(tokIdxs[i]), Rep: valuerep.Rep(uint64(repWords[i]))}
	}
	return out, nil
}

// fieldSetsSentinel marks the boundary between two fieldsets in the flat
// FIELDSETS array, per §4.E: "sentinel ~0u terminates each set".
const fieldSetsSentinel = int64(0xFFFFFFFF)

// readFieldSetsSection implements §4.E's FIELDSETS reader: count
// followed by a compressed-integer array of field indices, sentinel
// ~0u-terminated per set.
func readFieldSetsSection(data []byte, lim limits.Limits) ([]int64, error) {
	r := bitio.NewReader(data)
	count, err := r.ReadU64()
	if err != nil {
		return nil, fmt.Errorf("crate: FIELDSETS count: %w: %v", value.ErrTruncatedSection, err)
	}
	if err := limits.CheckCount("fieldSets", int(count), lim.MaxFieldSets); err != nil {
		return nil, fmt.Errorf("%w: %v", value.ErrLimitExceeded, err)
	}
	if count == 0 {
		return nil, nil
	}
	rest, err := r.ReadBytes(int(r.Remaining()))
	if err != nil {
		return nil, fmt.Errorf("crate: FIELDSETS body: %w: %v", value.ErrTruncatedSection, err)
	}
	idxs32, err := codec.DecodeCompressedInts32(rest, int64(count))
	if err != nil {
		return nil, fmt.Errorf("crate: FIELDSETS indices: %w", err)
	}
	out := make([]int64, len(idxs32))
	for i, v := range idxs32 {
		if uint32(v) == uint32(fieldSetsSentinel) {
			out[i] = fieldSetsSentinel
		} else {
			out[i] = int64(v)
		}
	}
	return out, nil
}

// splitFieldSets breaks the flat sentinel-terminated FIELDSETS array into
// per-start-index runs: fieldSetsByStart[i] is the run of field indices
// beginning at flat index i, for every i that starts a run (index 0 and
// every index immediately after a sentinel).
func splitFieldSets(flat []int64) map[int][]int {
	out := make(map[int][]int)
	start := 0
	var cur []int
	for i, v := range flat {
		if v == fieldSetsSentinel {
			out[start] = cur
			cur = nil
			start = i + 1
			continue
		}
		cur = append(cur, int(v))
	}
	if start < len(flat) || len(cur) > 0 {
		out[start] = cur
	}
	return out
}
