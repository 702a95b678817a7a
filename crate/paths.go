package crate

import (
	"fmt"

	"github.com/sacereda/tinyusdz/bitio"
	"github.com/sacereda/tinyusdz/codec"
	"github.com/sacereda/tinyusdz/internal/limits"
	"github.com/sacereda/tinyusdz/intern"
	"github.com/sacereda/tinyusdz/value"
)

// rawPathStreams holds the three parallel compressed-integer streams the
// PATHS section decodes to, before the jump-encoded tree is walked.
type rawPathStreams struct {
	pathIndexes         []int32
	elementTokenIndexes []int32
	jumps               []int32
}

// readPathsSection implements §4.E's PATHS reader: a uint64 path count
// followed by three compressed-integer streams of that length —
// pathIndexes, elementTokenIndexes (signed; negative means property
// path), and jumps (signed; see reconstructPaths for the encoding).
func readPathsSection(data []byte, lim limits.Limits) (rawPathStreams, error) {
	r := bitio.NewReader(data)
	count, err := r.ReadU64()
	if err != nil {
		return rawPathStreams{}, fmt.Errorf("crate: PATHS count: %w: %v", value.ErrTruncatedSection, err)
	}
	if err := limits.CheckCount("paths", int(count), lim.MaxPaths); err != nil {
		return rawPathStreams{}, fmt.Errorf("%w: %v", value.ErrLimitExceeded, err)
	}
	if count == 0 {
		return rawPathStreams{}, nil
	}
	rest, err := r.ReadBytes(int(r.Remaining()))
	if err != nil {
		return rawPathStreams{}, fmt.Errorf("crate: PATHS body: %w: %v", value.ErrTruncatedSection, err)
	}

	pathIdxs, n1, err := codec.DecodeCompressedInts32Sized(rest, int64(count))
	if err != nil {
		return rawPathStreams{}, fmt.Errorf("crate: PATHS pathIndexes: %w", err)
	}
	rest = rest[n1:]
	elemToks, n2, err := codec.DecodeCompressedInts32Sized(rest, int64(count))
	if err != nil {
		return rawPathStreams{}, fmt.Errorf("crate: PATHS elementTokenIndexes: %w", err)
	}
	rest = rest[n2:]
	jumps, _, err := codec.DecodeCompressedInts32Sized(rest, int64(count))
	if err != nil {
		return rawPathStreams{}, fmt.Errorf("crate: PATHS jumps: %w", err)
	}

	return rawPathStreams{pathIndexes: pathIdxs, elementTokenIndexes: elemToks, jumps: jumps}, nil
}

// resumeFrame is a pending sibling continuation on the explicit work
// stack: the array index to resume at and the parent path to resume
// under.
type resumeFrame struct {
	idx    int
	parent value.Path
}

// reconstructPaths walks the jump-encoded arrays with an explicit work
// stack (never native recursion, per §4.E: "trees may exceed thousands
// of levels") and writes each reconstructed path into paths at its
// declared pathIndexes[i] slot.
//
// jumps[i] encodes sibling/child order per §4.E:
//
//	-1         leaf with a sibling continuing at i+1
//	-2         leaf, no sibling: pop the work stack
//	 0         no sibling; child continues at i+1
//	 k > 0     child continues at i+1; sibling continues at i+k
func reconstructPaths(streams rawPathStreams, tokens *intern.TokenTable, paths *intern.PathPool) error {
	n := len(streams.pathIndexes)
	if n == 0 {
		return nil
	}
	if len(streams.elementTokenIndexes) != n || len(streams.jumps) != n {
		return fmt.Errorf("crate: PATHS: mismatched stream lengths (%d/%d/%d): %w",
			n, len(streams.elementTokenIndexes), len(streams.jumps), value.ErrMalformedHeader)
	}

	var stack []resumeFrame
	curIndex := 0
	parent := value.RootPath()

	for {
		if curIndex < 0 || curIndex >= n {
			return fmt.Errorf("crate: PATHS: work index %d out of range [0,%d): %w", curIndex, n, value.ErrMalformedHeader)
		}

		tokenIdx := streams.elementTokenIndexes[curIndex]
		isProperty := tokenIdx < 0
		absIdx := tokenIdx
		if isProperty {
			absIdx = -absIdx
		}
		tok, err := tokens.Get(int(absIdx))
		if err != nil {
			return fmt.Errorf("crate: PATHS node %d: %w", curIndex, err)
		}

		var thisPath value.Path
		if isProperty {
			thisPath = parent.AppendProperty(tok.String())
		} else {
			thisPath = parent.AppendChild(tok.String())
		}

		dstIdx := int(streams.pathIndexes[curIndex])
		if err := paths.Set(dstIdx, thisPath); err != nil {
			return fmt.Errorf("crate: PATHS node %d: %w", curIndex, err)
		}

		jump := streams.jumps[curIndex]
		switch {
		case jump > 0:
			stack = append(stack, resumeFrame{idx: curIndex + int(jump), parent: parent})
			curIndex++
			parent = thisPath
		case jump == 0:
			curIndex++
			parent = thisPath
		case jump == -1:
			curIndex++
			// sibling: parent unchanged
		case jump == -2:
			if len(stack) == 0 {
				return nil
			}
			top := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			curIndex = top.idx
			parent = top.parent
		default:
			return fmt.Errorf("crate: PATHS node %d: invalid jump value %d: %w", curIndex, jump, value.ErrMalformedHeader)
		}
	}
}
