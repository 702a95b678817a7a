package value

// XformOpKind identifies a single entry in a GeomXformable's xformOpOrder,
// per §4.G / §8 scenario 6.
type XformOpKind uint8

const (
	XformOpTranslate XformOpKind = iota
	XformOpRotateX
	XformOpRotateY
	XformOpRotateZ
	XformOpRotateXYZ
	XformOpRotateXZY
	XformOpRotateYXZ
	XformOpRotateYZX
	XformOpRotateZXY
	XformOpRotateZYX
	XformOpOrient
	XformOpScale
	XformOpTransform
	XformOpResetXformStack
)

// XformOp is one resolved entry of an xformOpOrder token array: the
// operation kind, whether it carries the `!invert!` prefix, and the
// attribute property name it reads its value from (empty for
// ResetXformStack, which carries no value and must be first if present).
type XformOp struct {
	Kind     XformOpKind
	Inverted bool
	Suffix   string // the xformOp:<suffix> part, e.g. "translate" or "rotateY:pivot"
	PropName string
}

// PrimMeta holds the recognized prim-metadata keys from §4.F plus a
// residual map for anything unrecognized.
type PrimMeta struct {
	Kind         string
	Active       *bool
	Hidden       *bool
	References   *ListOp[Reference]
	Payload      *ListOp[Reference]
	Inherits     *ListOp[Path]
	Specializes  *ListOp[Path]
	VariantSets  []string
	Variants     map[string]string
	AssetInfo    Dictionary
	APISchemas   *ListOp[string]
	CustomData   Dictionary
	Doc          string
	Residual     Dictionary // unrecognized keys, preserved verbatim
}

// Reference models a composition-arc target: an optional asset path plus
// a prim path within it. The decoder preserves references/payloads
// verbatim; it never resolves or evaluates them (§1 Non-goals).
type Reference struct {
	AssetPath string
	PrimPath  Path
	LayerOffset LayerOffset
}

// Prim is the generic (untyped) primitive record produced by both
// decoders, per §3. /prim's reconstructor consumes one of these per node
// and emits a strongly-typed Prim in its place.
type Prim struct {
	Spec     Specifier
	PrimType string
	Name     string
	Path     Path
	Props    map[string]Property
	XformOps []string // raw xformOpOrder tokens, resolved into []XformOp by /prim
	Meta     PrimMeta
	Children []*Prim
}

// NewPrim returns an empty generic prim ready to have properties and
// children attached.
func NewPrim(spec Specifier, primType, name string, path Path) *Prim {
	return &Prim{
		Spec:     spec,
		PrimType: primType,
		Name:     name,
		Path:     path,
		Props:    make(map[string]Property),
	}
}
