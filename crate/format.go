// Package crate implements component E: the Crate binary decoder driver.
// It bootstraps the container header, walks the table of contents,
// decodes each of the six pool sections in dependency order, reconstructs
// the jump-encoded path hierarchy, materializes each spec's live
// field-set, and builds the generic value.Prim tree §4.G consumes.
package crate

import "fmt"

// Magic is the eight-byte Crate container signature, per §6.
const Magic = "PXR-USDC"

// headerSize is the fixed bootstrap header: 8 (magic) + 3 (version) +
// 5 (reserved) + 8 (TOC offset), per §4.E.
const headerSize = 24

// sectionNameSize is the fixed width of a TOC record's zero-padded ASCII
// section name, per §6.
const sectionNameSize = 16

// Section names recognized in the TOC, per §4.E.
const (
	SectionTokens    = "TOKENS"
	SectionStrings   = "STRINGS"
	SectionFields    = "FIELDS"
	SectionFieldSets = "FIELDSETS"
	SectionPaths     = "PATHS"
	SectionSpecs     = "SPECS"
)

// SpecType is the SPECS section's per-spec discriminator (distinct from
// value.Specifier's def/over/class), validated against the closed set
// named in §4.E.
type SpecType int32

const (
	SpecTypeUnknown SpecType = iota
	SpecTypeAttribute
	SpecTypeConnection
	SpecTypeExpression
	SpecTypeMapper
	SpecTypeMapperArg
	SpecTypePrim
	SpecTypePseudoRoot
	SpecTypeRelationship
	SpecTypeRelationshipTarget
	SpecTypeVariant
	SpecTypeVariantSet
)

var specTypeNames = map[SpecType]string{
	SpecTypeAttribute:          "Attribute",
	SpecTypeConnection:         "Connection",
	SpecTypeExpression:         "Expression",
	SpecTypeMapper:             "Mapper",
	SpecTypeMapperArg:          "MapperArg",
	SpecTypePrim:               "Prim",
	SpecTypePseudoRoot:         "PseudoRoot",
	SpecTypeRelationship:       "Relationship",
	SpecTypeRelationshipTarget: "RelationshipTarget",
	SpecTypeVariant:            "Variant",
	SpecTypeVariantSet:         "VariantSet",
}

func (s SpecType) String() string {
	if n, ok := specTypeNames[s]; ok {
		return n
	}
	return fmt.Sprintf("unknown(%d)", int32(s))
}

// validSpecType reports whether ordinal names one of the known spec
// types. §4.E: "the decoder accepts any ordinal but validates against
// the known set" — validation produces a warning, not a hard failure,
// since an unrecognized ordinal from a newer writer shouldn't abort the
// whole decode.
func validSpecType(ordinal int32) bool {
	_, ok := specTypeNames[SpecType(ordinal)]
	return ok
}
