package crate

import (
	"fmt"

	"github.com/sacereda/tinyusdz/bitio"
	"github.com/sacereda/tinyusdz/internal/limits"
	"github.com/sacereda/tinyusdz/intern"
	"github.com/sacereda/tinyusdz/value"
	"github.com/sacereda/tinyusdz/valuerep"
)

// Result is everything a Crate decode produces: the generic prim tree
// §4.G consumes, the pools it was built from (kept alive so callers can
// still resolve indices an external collaborator might carry), and the
// accumulated diagnostics.
type Result struct {
	Root        *value.Prim
	Tokens      *intern.TokenTable
	Paths       *intern.PathPool
	Diagnostics *value.Diagnostics
}

// NumPaths reports the size of the reconstructed path pool, per §8
// scenario 1 ("decode succeeds, numPaths()==0").
func (r *Result) NumPaths() int { return r.Paths.Len() }

// Decode implements §4.E end to end: bootstrap, TOC walk, the six
// section readers in TOKENS -> STRINGS -> FIELDS -> FIELDSETS -> PATHS ->
// SPECS dependency order (§5), live-fieldset materialization, and the
// node-hierarchy build.
func Decode(buf []byte, lim limits.Limits) (*Result, error) {
	r := bitio.NewReader(buf)

	hdr, err := readHeader(r)
	if err != nil {
		return nil, err
	}
	toc, err := readTOC(r, hdr, lim)
	if err != nil {
		return nil, err
	}

	acct := limits.NewAccountant(lim.MaxMemoryBudget)
	tokens := intern.NewTokenTable()
	pathPool := intern.NewPathPool()
	diags := &value.Diagnostics{}

	if entry, ok := findSection(toc, SectionTokens); ok {
		data, err := sectionBytes(r, entry)
		if err != nil {
			return nil, err
		}
		if err := readTokensSection(data, tokens, lim, acct); err != nil {
			return nil, err
		}
	}

	if entry, ok := findSection(toc, SectionStrings); ok {
		data, err := sectionBytes(r, entry)
		if err != nil {
			return nil, err
		}
		if err := acct.Charge(int64(len(data))); err != nil {
			return nil, err
		}
		if _, err := readStringsSection(data, tokens, lim); err != nil {
			return nil, err
		}
	}

	var fields []Field
	if entry, ok := findSection(toc, SectionFields); ok {
		data, err := sectionBytes(r, entry)
		if err != nil {
			return nil, err
		}
		if err := acct.Charge(int64(len(data))); err != nil {
			return nil, err
		}
		fields, err = readFieldsSection(data, lim)
		if err != nil {
			return nil, err
		}
	}

	var fieldSetsByStart map[int][]int
	if entry, ok := findSection(toc, SectionFieldSets); ok {
		data, err := sectionBytes(r, entry)
		if err != nil {
			return nil, err
		}
		if err := acct.Charge(int64(len(data))); err != nil {
			return nil, err
		}
		flat, err := readFieldSetsSection(data, lim)
		if err != nil {
			return nil, err
		}
		fieldSetsByStart = splitFieldSets(flat)
	}

	if entry, ok := findSection(toc, SectionPaths); ok {
		data, err := sectionBytes(r, entry)
		if err != nil {
			return nil, err
		}
		if err := acct.Charge(int64(len(data))); err != nil {
			return nil, err
		}
		streams, err := readPathsSection(data, lim)
		if err != nil {
			return nil, err
		}
		if err := reconstructPaths(streams, tokens, pathPool); err != nil {
			return nil, err
		}
	}

	var specs []Spec
	if entry, ok := findSection(toc, SectionSpecs); ok {
		data, err := sectionBytes(r, entry)
		if err != nil {
			return nil, err
		}
		if err := acct.Charge(int64(len(data))); err != nil {
			return nil, err
		}
		var warnings []value.Diagnostic
		specs, warnings, err = readSpecsSection(data, lim)
		if err != nil {
			return nil, err
		}
		for _, w := range warnings {
			diags.AddWarning(w)
		}
	}

	vrDecoder := valuerep.NewDecoder(r, tokens, lim)
	vrDecoder.SetPathPool(pathPool)

	lfsAll, err := liveFieldSets(specs, fieldSetsByStart, fields, tokens, vrDecoder, lim.NumThreads)
	if err != nil {
		return nil, fmt.Errorf("crate: live field-sets: %w", err)
	}

	root, warnings := buildPrimTree(specs, pathPool, lfsAll)
	for _, w := range warnings {
		diags.AddWarning(w)
	}

	return &Result{Root: root, Tokens: tokens, Paths: pathPool, Diagnostics: diags}, nil
}
