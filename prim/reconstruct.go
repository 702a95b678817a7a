package prim

import "github.com/sacereda/tinyusdz/value"

// Generic represents a prim whose prim_type isn't one of §3's named
// schema kinds (including the untyped `def "Foo" {}` form). It still
// gets the common Imageable attribute set resolved; every other authored
// property lands in Base.Residual, per §4.G's "any property not
// recognized by the schema is preserved verbatim" rule applied one level
// up, at the whole-prim-type granularity.
type Generic struct{ Imageable }

func newGeneric(gp *value.Prim) *Generic { return &Generic{Imageable: newImageable(gp)} }

// schemaTable maps a prim_type token to its constructor. Shader is
// handled separately (dispatched a second time on its info:id value).
var schemaTable = map[string]func(*value.Prim) schemaType{
	"Xform":          func(gp *value.Prim) schemaType { return newXform(gp) },
	"Scope":          func(gp *value.Prim) schemaType { return newScope(gp) },
	"Model":          func(gp *value.Prim) schemaType { return newModel(gp) },
	"GeomSubset":     func(gp *value.Prim) schemaType { return newGeomSubset(gp) },
	"Mesh":           func(gp *value.Prim) schemaType { return newGeomMesh(gp) },
	"Sphere":         func(gp *value.Prim) schemaType { return newGeomSphere(gp) },
	"Cube":           func(gp *value.Prim) schemaType { return newGeomCube(gp) },
	"Cone":           func(gp *value.Prim) schemaType { return newGeomCone(gp) },
	"Cylinder":       func(gp *value.Prim) schemaType { return newGeomCylinder(gp) },
	"Capsule":        func(gp *value.Prim) schemaType { return newGeomCapsule(gp) },
	"BasisCurves":    func(gp *value.Prim) schemaType { return newGeomBasisCurves(gp) },
	"Points":         func(gp *value.Prim) schemaType { return newGeomPoints(gp) },
	"Camera":         func(gp *value.Prim) schemaType { return newGeomCamera(gp) },
	"PointInstancer": func(gp *value.Prim) schemaType { return newPointInstancer(gp) },
	"Skeleton":       func(gp *value.Prim) schemaType { return newSkeleton(gp) },
	"SkelRoot":       func(gp *value.Prim) schemaType { return newSkelRoot(gp) },
	"SkelAnimation":  func(gp *value.Prim) schemaType { return newSkelAnimation(gp) },
	"BlendShape":     func(gp *value.Prim) schemaType { return newBlendShape(gp) },
	"Material":       func(gp *value.Prim) schemaType { return newMaterial(gp) },
	"SphereLight":    func(gp *value.Prim) schemaType { return newSphereLight(gp) },
	"RectLight":      func(gp *value.Prim) schemaType { return newRectLight(gp) },
	"DiskLight":      func(gp *value.Prim) schemaType { return newDiskLight(gp) },
	"CylinderLight":  func(gp *value.Prim) schemaType { return newCylinderLight(gp) },
	"DistantLight":   func(gp *value.Prim) schemaType { return newDistantLight(gp) },
	"DomeLight":      func(gp *value.Prim) schemaType { return newDomeLight(gp) },
}

// dispatch selects and constructs the schema record for one generic
// prim, per §4.G's "table keyed on prim_type" dispatch rule, plus the
// second-level "Shader dispatch" on info:id.
func dispatch(gp *value.Prim) (schemaType, error) {
	if gp.PrimType == "Shader" {
		id, ok := ShaderInfoID(gp)
		if !ok {
			return nil, matchError(gp.Path, "info:id", InternalError, "Shader prim missing required uniform token info:id")
		}
		ctor, ok := shaderSubtypes[id]
		if !ok {
			return nil, matchError(gp.Path, "info:id", TypeMismatch, "unknown shader info:id "+id)
		}
		return ctor(gp), nil
	}
	if ctor, ok := schemaTable[gp.PrimType]; ok {
		return ctor(gp), nil
	}
	return newGeneric(gp), nil
}

// Reconstruct implements §4.G end to end: it walks a generic prim tree
// (as produced by /crate or /ascii) and returns the corresponding typed
// prim tree, one Typed per top-level child of root, plus the
// accumulated diagnostics. root itself is the decoders' synthetic
// pseudo-root and is never reconstructed as a schema type.
func Reconstruct(root *value.Prim) ([]Typed, *value.Diagnostics, error) {
	diags := &value.Diagnostics{}
	out := make([]Typed, 0, len(root.Children))
	for _, child := range root.Children {
		t, err := reconstructPrim(child, diags)
		if err != nil {
			return nil, diags, err
		}
		out = append(out, t)
	}
	return out, diags, nil
}

func reconstructPrim(gp *value.Prim, diags *value.Diagnostics) (Typed, error) {
	st, err := dispatch(gp)
	if err != nil {
		return nil, err
	}
	base := st.AsBase()

	if err := resolveProps(gp.Path, gp, st.attrs(), st.rels(), base.Residual, diags); err != nil {
		return nil, err
	}

	if len(gp.XformOps) > 0 {
		ops, err := ResolveXformOps(gp.Path, gp.XformOps)
		if err != nil {
			return nil, err
		}
		base.XformOps = ops
	}

	for _, c := range gp.Children {
		ct, err := reconstructPrim(c, diags)
		if err != nil {
			return nil, err
		}
		base.Children = append(base.Children, ct)
	}

	return st, nil
}
