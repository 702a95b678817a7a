package crate

import (
	"fmt"

	"github.com/sacereda/tinyusdz/bitio"
	"github.com/sacereda/tinyusdz/codec"
	"github.com/sacereda/tinyusdz/internal/limits"
	"github.com/sacereda/tinyusdz/value"
)

// Spec is one SPECS section record: the path it names, the fieldset that
// holds its authored fields, and its SdfSpecType discriminator, per §4.E.
type Spec struct {
	PathIdx     int
	FieldSetIdx int
	Type        SpecType
}

// readSpecsSection implements §4.E's SPECS reader: count followed by
// three compressed-integer arrays (path index, fieldSet index, spec-type
// ordinal), transposed so each array is coded independently.
func readSpecsSection(data []byte, lim limits.Limits) ([]Spec, []value.Diagnostic, error) {
	r := bitio.NewReader(data)
	count, err := r.ReadU64()
	if err != nil {
		return nil, nil, fmt.Errorf("crate: SPECS count: %w: %v", value.ErrTruncatedSection, err)
	}
	if err := limits.CheckCount("specifiers", int(count), lim.MaxSpecifiers); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", value.ErrLimitExceeded, err)
	}
	if count == 0 {
		return nil, nil, nil
	}
	rest, err := r.ReadBytes(int(r.Remaining()))
	if err != nil {
		return nil, nil, fmt.Errorf("crate: SPECS body: %w: %v", value.ErrTruncatedSection, err)
	}

	pathIdxs, n1, err := codec.DecodeCompressedInts32Sized(rest, int64(count))
	if err != nil {
		return nil, nil, fmt.Errorf("crate: SPECS path indices: %w", err)
	}
	rest = rest[n1:]
	fieldSetIdxs, n2, err := codec.DecodeCompressedInts32Sized(rest, int64(count))
	if err != nil {
		return nil, nil, fmt.Errorf("crate: SPECS fieldSet indices: %w", err)
	}
	rest = rest[n2:]
	specTypes, _, err := codec.DecodeCompressedInts32Sized(rest, int64(count))
	if err != nil {
		return nil, nil, fmt.Errorf("crate: SPECS spec types: %w", err)
	}

	out := make([]Spec, count)
	var warnings []value.Diagnostic
	for i := range out {
		st := specTypes[i]
		if !validSpecType(st) {
			warnings = append(warnings, value.Diagnostic{
				Err:  fmt.Errorf("%w: spec type ordinal %d", value.ErrUnknownEnum, st),
				Note: fmt.Sprintf("spec %d", i),
			})
		}
		out[i] = Spec{
			PathIdx:     int(pathIdxs[i]),
			FieldSetIdx: int(fieldSetIdxs[i]),
			Type:        SpecType(st),
		}
	}
	return out, warnings, nil
}
