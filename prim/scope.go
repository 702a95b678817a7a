package prim

import "github.com/sacereda/tinyusdz/value"

// Scope is a pure grouping node: Imageable (visibility/purpose/proxyPrim)
// but not Boundable, per usdGeom's Scope (no extent/doubleSided/
// orientation, unlike GPrim).
type Scope struct{ Imageable }

func newScope(gp *value.Prim) *Scope { return &Scope{Imageable: newImageable(gp)} }

// Model is the organizational prim kind named in §3's typed-prim list.
// USD's "model" concept is ordinarily expressed as prim *metadata*
// (PrimMeta.Kind: model/group/assembly/component/subcomponent) rather
// than a prim_type token; §3 lists it as a dispatchable schema kind
// regardless, so it is represented here as a bare Imageable record with
// no schema-specific attributes of its own, reusing PrimMeta.Kind
// (already carried on Base.Meta) for the kind string.
type Model struct{ Imageable }

func newModel(gp *value.Prim) *Model { return &Model{Imageable: newImageable(gp)} }
