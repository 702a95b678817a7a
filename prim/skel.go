package prim

import "github.com/sacereda/tinyusdz/value"

// Skeleton, SkelRoot, SkelAnimation, and BlendShape have no header in
// original_source (only usdGeom.hh was retrieved); their attribute names
// and forms below follow §3's own listing plus the standard UsdSkel
// schema's well-known public attribute set.

// Skeleton is a Boundable joint hierarchy.
type Skeleton struct {
	GPrim
	Joints         *Slot
	JointNames     *Slot
	BindTransforms *Slot
	RestTransforms *Slot
}

func newSkeleton(gp *value.Prim) *Skeleton {
	return &Skeleton{
		GPrim:          newGPrim(gp),
		Joints:         newUniformSlot("token", true, value.TokenArray(nil)),
		JointNames:     newUniformSlot("token", true, value.TokenArray(nil)),
		BindTransforms: newUniformSlot("matrix4d", true, value.MatrixArray(value.KindMatrix4d, nil)),
		RestTransforms: newUniformSlot("matrix4d", true, value.MatrixArray(value.KindMatrix4d, nil)),
	}
}

func (s *Skeleton) attrs() []AttrDef {
	return append(s.GPrim.attrs(),
		AttrDef{Name: "joints", Slot: s.Joints},
		AttrDef{Name: "jointNames", Slot: s.JointNames},
		AttrDef{Name: "bindTransforms", Slot: s.BindTransforms},
		AttrDef{Name: "restTransforms", Slot: s.RestTransforms},
	)
}

// SkelRoot is a pure grouping/boundable prim marking the root of a
// skeletal binding subtree; it carries no attributes beyond GPrim's.
type SkelRoot struct{ GPrim }

func newSkelRoot(gp *value.Prim) *SkelRoot { return &SkelRoot{GPrim: newGPrim(gp)} }

// SkelAnimation holds per-joint transform channels, keyed by the same
// joint order as the bound Skeleton's joints attribute. It is not
// Boundable.
type SkelAnimation struct {
	Base
	Joints            *Slot
	Translations      *Slot
	Rotations         *Slot
	Scales            *Slot
	BlendShapes       *Slot
	BlendShapeWeights *Slot
}

func newSkelAnimation(gp *value.Prim) *SkelAnimation {
	return &SkelAnimation{
		Base:              newBase(gp),
		Joints:            newUniformSlot("token", true, value.TokenArray(nil)),
		Translations:      newSlot("vector3f", true),
		Rotations:         newSlot("quatf", true),
		Scales:            newSlot("vector3f", true),
		BlendShapes:       newUniformSlot("token", true, value.TokenArray(nil)),
		BlendShapeWeights: newSlot("float", true),
	}
}

func (a *SkelAnimation) attrs() []AttrDef {
	return []AttrDef{
		{Name: "joints", Slot: a.Joints},
		{Name: "translations", Slot: a.Translations},
		{Name: "rotations", Slot: a.Rotations},
		{Name: "scales", Slot: a.Scales},
		{Name: "blendShapes", Slot: a.BlendShapes},
		{Name: "blendShapeWeights", Slot: a.BlendShapeWeights},
	}
}

// BlendShape describes one target shape's point offsets.
type BlendShape struct {
	Base
	PointIndices  *Slot
	Offsets       *Slot
	NormalOffsets *Slot
}

func newBlendShape(gp *value.Prim) *BlendShape {
	return &BlendShape{
		Base:          newBase(gp),
		PointIndices:  newUniformSlot("int", true, value.IntArray(nil)),
		Offsets:       newUniformSlot("vector3f", true, value.VecArray(value.KindVec3f, nil)),
		NormalOffsets: newUniformSlot("vector3f", true, value.VecArray(value.KindVec3f, nil)),
	}
}

func (b *BlendShape) attrs() []AttrDef {
	return []AttrDef{
		{Name: "pointIndices", Slot: b.PointIndices},
		{Name: "offsets", Slot: b.Offsets},
		{Name: "normalOffsets", Slot: b.NormalOffsets},
	}
}
