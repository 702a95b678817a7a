package prim

import "github.com/sacereda/tinyusdz/value"

// Closed enum value sets for §4.G's "enum properties", grounded on
// original_source/usdGeom.hh's TfToken enum declarations (Purpose,
// Visibility, Orientation, Axis, SubdivisionScheme, InterpolateBoundary,
// FaceVaryingLinearInterpolation, Projection, StereoRole) plus the
// Wrap enum for GeomBasisCurves.
var (
	purposeEnum = []string{"default", "render", "proxy", "guide"}
	visibilityEnum = []string{"inherited", "invisible"}
	orientationEnum = []string{"rightHanded", "leftHanded"}
	axisEnum = []string{"X", "Y", "Z"}

	subdivisionSchemeEnum = []string{"catmullClark", "loop", "bilinear", "none"}
	interpolateBoundaryEnum = []string{"none", "edgeAndCorner", "edgeOnly"}
	faceVaryingLinearInterpolationEnum = []string{
		"cornersPlus1", "cornersPlus2", "cornersOnly", "boundaries", "none", "all",
	}

	projectionEnum = []string{"perspective", "orthographic"}
	stereoRoleEnum = []string{"mono", "left", "right"}

	// basisCurvesTypeEnum, basisCurvesBasisEnum, basisCurvesWrapEnum back
	// GeomBasisCurves.type/basis/wrap. §9 Open Question (b): the source
	// maps Wrap::Pinned to the same string as Wrap::Periodic in one
	// place; this table keeps them distinct ("pinned" vs "periodic"),
	// matching usdGeom.hh's actual three-way Wrap enum.
	basisCurvesTypeEnum  = []string{"linear", "cubic"}
	basisCurvesBasisEnum = []string{"bezier", "bspline", "catmullRom"}
	basisCurvesWrapEnum  = []string{"nonperiodic", "periodic", "pinned"}

	geomSubsetElementTypeEnum = []string{"face"}
	geomSubsetFamilyTypeEnum  = []string{"partition", "nonOverlapping", "unrestricted"}
)

func enumSlot(typeName, def string, set []string) *Slot {
	return newEnumSlot(typeName, value.TokenVal(value.NewToken(def)), set)
}
