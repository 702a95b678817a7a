package prim

import "github.com/sacereda/tinyusdz/value"

// Imageable is the mixin every renderable typed prim shares: visibility,
// purpose, and the proxyPrim relationship, grounded on
// original_source/usdGeom.hh's GPrim fields of the same name.
type Imageable struct {
	Base
	Visibility *Slot
	Purpose    *Slot
	ProxyPrim  *RelSlot
}

func newImageable(gp *value.Prim) Imageable {
	return Imageable{
		Base:       newBase(gp),
		Visibility: enumSlot("token", "inherited", visibilityEnum),
		Purpose:    enumSlot("token", "default", purposeEnum),
		ProxyPrim:  newRelSlot(true),
	}
}

func (im *Imageable) attrs() []AttrDef {
	return []AttrDef{
		{Name: "visibility", Slot: im.Visibility},
		{Name: "purpose", Slot: im.Purpose},
	}
}

func (im *Imageable) rels() []RelDef {
	return []RelDef{{Name: "proxyPrim", Slot: im.ProxyPrim}}
}

// GPrim is the common base of every boundable geometric prim, per
// usdGeom.hh's GPrim: extent, doubleSided, orientation on top of
// Imageable, plus the material-binding relationship family and the
// skel-binding relationships (applied broadly enough in practice that
// modeling them here, rather than per-schema, avoids duplicating the
// same three RelDefs across GeomMesh/GeomSphere/.../PointInstancer).
type GPrim struct {
	Imageable
	Extent      *Slot
	DoubleSided *Slot
	Orientation *Slot

	MaterialBinding          *RelSlot
	MaterialBindingPreview   *RelSlot
	MaterialBindingCorrection *RelSlot
	SkelSkeleton             *RelSlot
	SkelBlendShapeTargets    *RelSlot
	SkelAnimationSource      *RelSlot
}

func newGPrim(gp *value.Prim) GPrim {
	return GPrim{
		Imageable:   newImageable(gp),
		Extent:      newExtentSlot(),
		DoubleSided: newUniformSlot("bool", false, value.Bool(false)),
		Orientation: enumSlot("token", "rightHanded", orientationEnum),

		MaterialBinding:           newRelSlot(true),
		MaterialBindingPreview:    newRelSlot(true),
		MaterialBindingCorrection: newRelSlot(true),
		SkelSkeleton:              newRelSlot(true),
		SkelBlendShapeTargets:     newRelSlot(false),
		SkelAnimationSource:       newRelSlot(true),
	}
}

func (g *GPrim) attrs() []AttrDef {
	return append(g.Imageable.attrs(),
		AttrDef{Name: "extent", Slot: g.Extent},
		AttrDef{Name: "doubleSided", Slot: g.DoubleSided},
		AttrDef{Name: "orientation", Slot: g.Orientation},
	)
}

func (g *GPrim) rels() []RelDef {
	return append(g.Imageable.rels(),
		RelDef{Name: "material:binding", Slot: g.MaterialBinding},
		RelDef{Name: "material:binding:preview", Slot: g.MaterialBindingPreview},
		RelDef{Name: "material:binding:correction", Slot: g.MaterialBindingCorrection},
		RelDef{Name: "skel:skeleton", Slot: g.SkelSkeleton},
		RelDef{Name: "skel:blendShapeTargets", Slot: g.SkelBlendShapeTargets},
		RelDef{Name: "skel:animationSource", Slot: g.SkelAnimationSource},
	)
}

// Xform is a pure transform node: no attributes beyond GPrim/xformOps.
type Xform struct{ GPrim }

func newXform(gp *value.Prim) *Xform { return &Xform{GPrim: newGPrim(gp)} }

// GeomSubset names a face subset of an owning GeomMesh, per usdGeom.hh.
// It is not Boundable (no extent), so it embeds Base directly.
type GeomSubset struct {
	Base
	ElementType *Slot
	FamilyType  *Slot
	FamilyName  *Slot
	Indices     *Slot
}

func newGeomSubset(gp *value.Prim) *GeomSubset {
	return &GeomSubset{
		Base:        newBase(gp),
		ElementType: enumSlot("token", "face", geomSubsetElementTypeEnum),
		FamilyType:  enumSlot("token", "unrestricted", geomSubsetFamilyTypeEnum),
		FamilyName:  newUniformSlot("token", false, value.TokenVal(value.NewToken(""))),
		Indices:     newUniformSlot("int", true, value.IntArray(nil)),
	}
}

func (s *GeomSubset) attrs() []AttrDef {
	return []AttrDef{
		{Name: "elementType", Slot: s.ElementType},
		{Name: "familyName", Slot: s.FamilyName},
		{Name: "indices", Slot: s.Indices},
	}
}

// GeomMesh is a polygonal mesh, per usdGeom.hh's GeomMesh.
type GeomMesh struct {
	GPrim
	Points           *Slot
	Normals          *Slot
	Velocities       *Slot
	FaceVertexCounts *Slot
	FaceVertexIndices *Slot

	CornerIndices      *Slot
	CornerSharpnesses  *Slot
	CreaseIndices      *Slot
	CreaseLengths      *Slot
	CreaseSharpnesses  *Slot
	HoleIndices        *Slot

	InterpolateBoundary            *Slot
	SubdivisionScheme              *Slot
	FaceVaryingLinearInterpolation *Slot
}

func newGeomMesh(gp *value.Prim) *GeomMesh {
	return &GeomMesh{
		GPrim:             newGPrim(gp),
		Points:            newSlot("point3f", true),
		Normals:           newSlot("normal3f", true),
		Velocities:        newSlot("vector3f", true),
		FaceVertexCounts:  newSlot("int", true),
		FaceVertexIndices: newSlot("int", true),

		CornerIndices:     newSlot("int", true),
		CornerSharpnesses: newSlot("float", true),
		CreaseIndices:     newSlot("int", true),
		CreaseLengths:     newSlot("int", true),
		CreaseSharpnesses: newSlot("float", true),
		HoleIndices:       newSlot("int", true),

		InterpolateBoundary:            enumSlot("token", "edgeAndCorner", interpolateBoundaryEnum),
		SubdivisionScheme:              enumSlot("token", "catmullClark", subdivisionSchemeEnum),
		FaceVaryingLinearInterpolation: enumSlot("token", "cornersPlus1", faceVaryingLinearInterpolationEnum),
	}
}

func (m *GeomMesh) attrs() []AttrDef {
	return append(m.GPrim.attrs(),
		AttrDef{Name: "points", Slot: m.Points},
		AttrDef{Name: "normals", Slot: m.Normals},
		AttrDef{Name: "velocities", Slot: m.Velocities},
		AttrDef{Name: "faceVertexCounts", Slot: m.FaceVertexCounts},
		AttrDef{Name: "faceVertexIndices", Slot: m.FaceVertexIndices},
		AttrDef{Name: "cornerIndices", Slot: m.CornerIndices},
		AttrDef{Name: "cornerSharpnesses", Slot: m.CornerSharpnesses},
		AttrDef{Name: "creaseIndices", Slot: m.CreaseIndices},
		AttrDef{Name: "creaseLengths", Slot: m.CreaseLengths},
		AttrDef{Name: "creaseSharpnesses", Slot: m.CreaseSharpnesses},
		AttrDef{Name: "holeIndices", Slot: m.HoleIndices},
		AttrDef{Name: "interpolateBoundary", Slot: m.InterpolateBoundary},
		AttrDef{Name: "subdivisionScheme", Slot: m.SubdivisionScheme},
		AttrDef{Name: "faceVaryingLinearInterpolation", Slot: m.FaceVaryingLinearInterpolation},
	)
}

// GeomSphere, per usdGeom.hh: radius{2.0}.
type GeomSphere struct {
	GPrim
	Radius *Slot
}

func newGeomSphere(gp *value.Prim) *GeomSphere {
	return &GeomSphere{GPrim: newGPrim(gp), Radius: newSlotWithDefault("double", false, value.Double(2.0))}
}

func (s *GeomSphere) attrs() []AttrDef {
	return append(s.GPrim.attrs(), AttrDef{Name: "radius", Slot: s.Radius})
}

// GeomCube, per usdGeom.hh: size{2.0}.
type GeomCube struct {
	GPrim
	Size *Slot
}

func newGeomCube(gp *value.Prim) *GeomCube {
	return &GeomCube{GPrim: newGPrim(gp), Size: newSlotWithDefault("double", false, value.Double(2.0))}
}

func (c *GeomCube) attrs() []AttrDef {
	return append(c.GPrim.attrs(), AttrDef{Name: "size", Slot: c.Size})
}

// axisSlot builds the height/radius/axis solids' shared axis field
// (uniform token, default "Z").
func axisSlot() *Slot { return enumSlot("token", "Z", axisEnum) }

// GeomCone, per usdGeom.hh: height{2.0}, radius{1.0}, axis{Z}.
type GeomCone struct {
	GPrim
	Height *Slot
	Radius *Slot
	Axis   *Slot
}

func newGeomCone(gp *value.Prim) *GeomCone {
	return &GeomCone{
		GPrim:  newGPrim(gp),
		Height: newSlotWithDefault("double", false, value.Double(2.0)),
		Radius: newSlotWithDefault("double", false, value.Double(1.0)),
		Axis:   axisSlot(),
	}
}

func (c *GeomCone) attrs() []AttrDef {
	return append(c.GPrim.attrs(),
		AttrDef{Name: "height", Slot: c.Height},
		AttrDef{Name: "radius", Slot: c.Radius},
		AttrDef{Name: "axis", Slot: c.Axis},
	)
}

// GeomCylinder, per usdGeom.hh: height{2.0}, radius{1.0}, axis{Z}.
type GeomCylinder struct {
	GPrim
	Height *Slot
	Radius *Slot
	Axis   *Slot
}

func newGeomCylinder(gp *value.Prim) *GeomCylinder {
	return &GeomCylinder{
		GPrim:  newGPrim(gp),
		Height: newSlotWithDefault("double", false, value.Double(2.0)),
		Radius: newSlotWithDefault("double", false, value.Double(1.0)),
		Axis:   axisSlot(),
	}
}

func (c *GeomCylinder) attrs() []AttrDef {
	return append(c.GPrim.attrs(),
		AttrDef{Name: "height", Slot: c.Height},
		AttrDef{Name: "radius", Slot: c.Radius},
		AttrDef{Name: "axis", Slot: c.Axis},
	)
}

// GeomCapsule, per usdGeom.hh: height{2.0}, radius{0.5}, axis{Z}.
type GeomCapsule struct {
	GPrim
	Height *Slot
	Radius *Slot
	Axis   *Slot
}

func newGeomCapsule(gp *value.Prim) *GeomCapsule {
	return &GeomCapsule{
		GPrim:  newGPrim(gp),
		Height: newSlotWithDefault("double", false, value.Double(2.0)),
		Radius: newSlotWithDefault("double", false, value.Double(0.5)),
		Axis:   axisSlot(),
	}
}

func (c *GeomCapsule) attrs() []AttrDef {
	return append(c.GPrim.attrs(),
		AttrDef{Name: "height", Slot: c.Height},
		AttrDef{Name: "radius", Slot: c.Radius},
		AttrDef{Name: "axis", Slot: c.Axis},
	)
}

// GeomCamera, per usdGeom.hh's 13-field GeomCamera.
type GeomCamera struct {
	GPrim
	ClippingPlanes           *Slot
	ClippingRange            *Slot
	Exposure                 *Slot
	FocalLength              *Slot
	FocusDistance            *Slot
	HorizontalAperture       *Slot
	HorizontalApertureOffset *Slot
	VerticalAperture         *Slot
	VerticalApertureOffset   *Slot
	FStop                    *Slot
	Projection               *Slot
	StereoRole               *Slot
	ShutterClose             *Slot
	ShutterOpen              *Slot
}

func newGeomCamera(gp *value.Prim) *GeomCamera {
	return &GeomCamera{
		GPrim:                    newGPrim(gp),
		ClippingPlanes:           newSlot("float4", true),
		ClippingRange:            newSlotWithDefault("float2", false, value.Vec(value.KindVec2f, []float64{0.1, 1000000.0})),
		Exposure:                 newSlotWithDefault("float", false, value.Float(0.0)),
		FocalLength:              newSlotWithDefault("float", false, value.Float(50.0)),
		FocusDistance:            newSlotWithDefault("float", false, value.Float(0.0)),
		HorizontalAperture:       newSlotWithDefault("float", false, value.Float(20.965)),
		HorizontalApertureOffset: newSlotWithDefault("float", false, value.Float(0.0)),
		VerticalAperture:         newSlotWithDefault("float", false, value.Float(15.2908)),
		VerticalApertureOffset:   newSlotWithDefault("float", false, value.Float(0.0)),
		FStop:                    newSlotWithDefault("float", false, value.Float(0.0)),
		Projection:               enumSlot("token", "perspective", projectionEnum),
		StereoRole:               enumSlot("token", "mono", stereoRoleEnum),
		ShutterClose:             newSlotWithDefault("double", false, value.Double(0.0)),
		ShutterOpen:              newSlotWithDefault("double", false, value.Double(0.0)),
	}
}

func (c *GeomCamera) attrs() []AttrDef {
	return append(c.GPrim.attrs(),
		AttrDef{Name: "clippingPlanes", Slot: c.ClippingPlanes},
		AttrDef{Name: "clippingRange", Slot: c.ClippingRange},
		AttrDef{Name: "exposure", Slot: c.Exposure},
		AttrDef{Name: "focalLength", Slot: c.FocalLength},
		AttrDef{Name: "focusDistance", Slot: c.FocusDistance},
		AttrDef{Name: "horizontalAperture", Slot: c.HorizontalAperture},
		AttrDef{Name: "horizontalApertureOffset", Slot: c.HorizontalApertureOffset},
		AttrDef{Name: "verticalAperture", Slot: c.VerticalAperture},
		AttrDef{Name: "verticalApertureOffset", Slot: c.VerticalApertureOffset},
		AttrDef{Name: "fStop", Slot: c.FStop},
		AttrDef{Name: "projection", Slot: c.Projection},
		AttrDef{Name: "stereoRole", Slot: c.StereoRole},
		AttrDef{Name: "shutter:close", Slot: c.ShutterClose},
		AttrDef{Name: "shutter:open", Slot: c.ShutterOpen},
	)
}

// GeomBasisCurves, per usdGeom.hh.
type GeomBasisCurves struct {
	GPrim
	Type              *Slot
	Basis             *Slot
	Wrap              *Slot
	Points            *Slot
	Normals           *Slot
	CurveVertexCounts *Slot
	Widths            *Slot
	Velocities        *Slot
	Accelerations     *Slot
}

func newGeomBasisCurves(gp *value.Prim) *GeomBasisCurves {
	return &GeomBasisCurves{
		GPrim:             newGPrim(gp),
		Type:              enumSlot("token", "cubic", basisCurvesTypeEnum),
		Basis:             enumSlot("token", "bezier", basisCurvesBasisEnum),
		Wrap:              enumSlot("token", "nonperiodic", basisCurvesWrapEnum),
		Points:            newSlot("point3f", true),
		Normals:           newSlot("normal3f", true),
		CurveVertexCounts: newSlot("int", true),
		Widths:            newSlot("float", true),
		Velocities:        newSlot("vector3f", true),
		Accelerations:     newSlot("vector3f", true),
	}
}

func (c *GeomBasisCurves) attrs() []AttrDef {
	return append(c.GPrim.attrs(),
		AttrDef{Name: "type", Slot: c.Type},
		AttrDef{Name: "basis", Slot: c.Basis},
		AttrDef{Name: "wrap", Slot: c.Wrap},
		AttrDef{Name: "points", Slot: c.Points},
		AttrDef{Name: "normals", Slot: c.Normals},
		AttrDef{Name: "curveVertexCounts", Slot: c.CurveVertexCounts},
		AttrDef{Name: "widths", Slot: c.Widths},
		AttrDef{Name: "velocities", Slot: c.Velocities},
		AttrDef{Name: "accelerations", Slot: c.Accelerations},
	)
}

// GeomPoints, per usdGeom.hh.
type GeomPoints struct {
	GPrim
	Points        *Slot
	Normals       *Slot
	Widths        *Slot
	Ids           *Slot
	Velocities    *Slot
	Accelerations *Slot
}

func newGeomPoints(gp *value.Prim) *GeomPoints {
	return &GeomPoints{
		GPrim:         newGPrim(gp),
		Points:        newSlot("point3f", true),
		Normals:       newSlot("normal3f", true),
		Widths:        newSlot("float", true),
		Ids:           newSlot("int64", true),
		Velocities:    newSlot("vector3f", true),
		Accelerations: newSlot("vector3f", true),
	}
}

func (p *GeomPoints) attrs() []AttrDef {
	return append(p.GPrim.attrs(),
		AttrDef{Name: "points", Slot: p.Points},
		AttrDef{Name: "normals", Slot: p.Normals},
		AttrDef{Name: "widths", Slot: p.Widths},
		AttrDef{Name: "ids", Slot: p.Ids},
		AttrDef{Name: "velocities", Slot: p.Velocities},
		AttrDef{Name: "accelerations", Slot: p.Accelerations},
	)
}

// PointInstancer, per usdGeom.hh.
type PointInstancer struct {
	GPrim
	Prototypes        *RelSlot
	ProtoIndices      *Slot
	Ids               *Slot
	Positions         *Slot
	Orientations      *Slot
	Scales            *Slot
	Velocities        *Slot
	Accelerations     *Slot
	AngularVelocities *Slot
	InvisibleIds      *Slot
}

func newPointInstancer(gp *value.Prim) *PointInstancer {
	return &PointInstancer{
		GPrim:             newGPrim(gp),
		Prototypes:        newRelSlot(false),
		ProtoIndices:      newSlot("int", true),
		Ids:               newSlot("int64", true),
		Positions:         newSlot("point3f", true),
		Orientations:      newSlot("quath", true),
		Scales:            newSlot("float3", true),
		Velocities:        newSlot("vector3f", true),
		Accelerations:     newSlot("vector3f", true),
		AngularVelocities: newSlot("vector3f", true),
		InvisibleIds:      newSlot("int64", true),
	}
}

func (p *PointInstancer) attrs() []AttrDef {
	return append(p.GPrim.attrs(),
		AttrDef{Name: "protoIndices", Slot: p.ProtoIndices},
		AttrDef{Name: "ids", Slot: p.Ids},
		AttrDef{Name: "positions", Slot: p.Positions},
		AttrDef{Name: "orientations", Slot: p.Orientations},
		AttrDef{Name: "scales", Slot: p.Scales},
		AttrDef{Name: "velocities", Slot: p.Velocities},
		AttrDef{Name: "accelerations", Slot: p.Accelerations},
		AttrDef{Name: "angularVelocities", Slot: p.AngularVelocities},
		AttrDef{Name: "invisibleIds", Slot: p.InvisibleIds},
	)
}

func (p *PointInstancer) rels() []RelDef {
	return append(p.GPrim.rels(), RelDef{Name: "prototypes", Slot: p.Prototypes})
}
