package prim

import "github.com/sacereda/tinyusdz/value"

// Base is the common record every reconstructed typed prim embeds,
// grounded on §9's design note: "schema-typed primitives are distinct
// records, united by a TypedPrim sum or by a trait/interface exposing
// name, spec, prim_type, props, children, meta." Base plays that
// exposed-trait role; Typed is the interface.
type Base struct {
	Spec     value.Specifier
	PrimType string
	Name     string
	Path     value.Path
	Meta     value.PrimMeta
	XformOps []value.XformOp
	Children []Typed

	// Residual holds authored properties the schema table didn't
	// recognize, preserved verbatim per §4.G ("any property not
	// recognized by the schema is preserved verbatim in prim.props").
	Residual map[string]value.Property
}

func newBase(gp *value.Prim) Base {
	return Base{
		Spec:     gp.Spec,
		PrimType: gp.PrimType,
		Name:     gp.Name,
		Path:     gp.Path,
		Meta:     gp.Meta,
		Residual: make(map[string]value.Property),
	}
}

// Typed is implemented by every reconstructed schema-typed prim kind.
type Typed interface {
	AsBase() *Base
}

func (b *Base) AsBase() *Base { return b }

// attrs and rels are the default (empty) schema contribution for a bare
// Base; typed prims embedding a richer mixin (Imageable, GPrim, ...)
// override these to add their own AttrDef/RelDef entries.
func (b *Base) attrs() []AttrDef { return nil }
func (b *Base) rels() []RelDef   { return nil }

// schemaType is the internal interface the dispatch table uses to pull
// a typed prim's schema table back out after construction, satisfied by
// every concrete type in this package through method promotion.
type schemaType interface {
	Typed
	attrs() []AttrDef
	rels() []RelDef
}
