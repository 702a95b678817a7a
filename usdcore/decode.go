// Package usdcore is the top-level entry point wiring the two wire-format
// decoders (§4.E's Crate binary driver, §4.F's ASCII parser) into §4.G's
// schema reconstructor, per SPEC_FULL.md's package layout. This is the one
// piece of a "public façade" this module exposes; it is not the
// file-opening/USDZ-archive/Tydra render-delegate façade spec.md's
// Non-goals name out of scope — just the in-memory Decode(buf) -> typed
// prim tree call a collaborator embedding this module actually needs.
package usdcore

import (
	"bytes"
	"fmt"

	"github.com/sacereda/tinyusdz/ascii"
	"github.com/sacereda/tinyusdz/crate"
	"github.com/sacereda/tinyusdz/internal/limits"
	"github.com/sacereda/tinyusdz/prim"
	"github.com/sacereda/tinyusdz/value"
)

// asciiMagic is the textual format's `#usda` line prefix (§4.F); the
// decimal version number and any following whitespace vary, so only the
// fixed prefix is used for format sniffing.
const asciiMagic = "#usda"

// Result is everything a top-level decode produces: the reconstructed
// typed prim forest (one entry per top-level prim under the decoder's
// synthetic pseudo-root) plus every diagnostic accumulated across both
// the wire-format decode stage and the §4.G reconstruction stage.
type Result struct {
	Prims       []prim.Typed
	Diagnostics *value.Diagnostics
}

// Decode implements §6's external Decode entry point against the §5
// default resource caps.
func Decode(buf []byte) (*Result, error) {
	return DecodeWithLimits(buf, limits.Default())
}

// DecodeWithLimits sniffs the wire format by magic (Crate's "PXR-USDC"
// vs ASCII's "#usda"), runs the matching §4.E/§4.F decoder to produce a
// generic value.Prim tree, then reconstructs that tree into typed schema
// records via prim.Reconstruct (§4.G). Diagnostics from both stages are
// merged into a single Diagnostics, matching §7's "no exceptions, no
// process termination" contract end to end.
func DecodeWithLimits(buf []byte, lim limits.Limits) (*Result, error) {
	var root *value.Prim
	diags := &value.Diagnostics{}

	switch {
	case bytes.HasPrefix(buf, []byte(crate.Magic)):
		r, err := crate.Decode(buf, lim)
		if err != nil {
			return nil, fmt.Errorf("usdcore: crate decode: %w", err)
		}
		root = r.Root
		diags.Merge(r.Diagnostics)

	case bytes.HasPrefix(buf, []byte(asciiMagic)):
		r, err := ascii.DecodeWithLimits(buf, lim)
		if err != nil {
			return nil, fmt.Errorf("usdcore: ascii decode: %w", err)
		}
		root = r.Root
		diags.Merge(r.Diagnostics)

	default:
		return nil, fmt.Errorf("usdcore: unrecognized input: neither %q nor %q magic found: %w",
			crate.Magic, asciiMagic, value.ErrMalformedHeader)
	}

	prims, pdiags, err := prim.Reconstruct(root)
	if err != nil {
		return nil, fmt.Errorf("usdcore: reconstruct: %w", err)
	}
	diags.Merge(pdiags)

	return &Result{Prims: prims, Diagnostics: diags}, nil
}
