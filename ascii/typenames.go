package ascii

import "github.com/sacereda/tinyusdz/value"

// typeKinds maps the usda spelling of a type name to its Kind. Beyond the
// literal names spec.md's value.Kind table registers, this also carries
// the "role" aliases (point3f, vector3f, normal3f, color3f, texCoord2f,
// ...) that original_source/usdGeom.hh's attribute declarations use —
// each is backed by the same underlying vector storage, so no new Kind is
// needed, only a wider name table.
var typeKinds = map[string]value.Kind{
	"bool":     value.KindBool,
	"uchar":    value.KindUChar,
	"int":      value.KindInt,
	"uint":     value.KindUInt,
	"int64":    value.KindInt64,
	"uint64":   value.KindUInt64,
	"half":     value.KindHalf,
	"float":    value.KindFloat,
	"double":   value.KindDouble,
	"string":   value.KindString,
	"token":    value.KindToken,
	"asset":    value.KindAssetPath,
	"timecode": value.KindTimeCode,

	"quatd": value.KindQuatd,
	"quatf": value.KindQuatf,
	"quath": value.KindQuath,

	"double2": value.KindVec2d,
	"float2":  value.KindVec2f,
	"half2":   value.KindVec2h,
	"int2":    value.KindVec2i,

	"double3": value.KindVec3d,
	"float3":  value.KindVec3f,
	"half3":   value.KindVec3h,
	"int3":    value.KindVec3i,

	"double4": value.KindVec4d,
	"float4":  value.KindVec4f,
	"half4":   value.KindVec4h,
	"int4":    value.KindVec4i,

	"matrix2d": value.KindMatrix2d,
	"matrix3d": value.KindMatrix3d,
	"matrix4d": value.KindMatrix4d,
	"frame4d":  value.KindMatrix4d,

	"dictionary": value.KindDictionary,

	// role aliases, all sharing the plain vector Kind's storage.
	"point3f": value.KindVec3f, "point3d": value.KindVec3d, "point3h": value.KindVec3h,
	"vector3f": value.KindVec3f, "vector3d": value.KindVec3d, "vector3h": value.KindVec3h,
	"normal3f": value.KindVec3f, "normal3d": value.KindVec3d, "normal3h": value.KindVec3h,
	"color3f": value.KindVec3f, "color3d": value.KindVec3d, "color3h": value.KindVec3h,
	"color4f": value.KindVec4f, "color4d": value.KindVec4d, "color4h": value.KindVec4h,
	"texCoord2f": value.KindVec2f, "texCoord2d": value.KindVec2d, "texCoord2h": value.KindVec2h,
}

func vecArity(k value.Kind) int {
	switch k {
	case value.KindVec2d, value.KindVec2f, value.KindVec2h, value.KindVec2i:
		return 2
	case value.KindVec3d, value.KindVec3f, value.KindVec3h, value.KindVec3i:
		return 3
	case value.KindVec4d, value.KindVec4f, value.KindVec4h, value.KindVec4i,
		value.KindQuatd, value.KindQuatf, value.KindQuath:
		return 4
	case value.KindMatrix2d:
		return 4
	case value.KindMatrix3d:
		return 9
	case value.KindMatrix4d:
		return 16
	default:
		return 0
	}
}

func isIntVec(k value.Kind) bool {
	switch k {
	case value.KindVec2i, value.KindVec3i, value.KindVec4i:
		return true
	default:
		return false
	}
}

func isMatrix(k value.Kind) bool {
	switch k {
	case value.KindMatrix2d, value.KindMatrix3d, value.KindMatrix4d:
		return true
	default:
		return false
	}
}

func isVecLike(k value.Kind) bool {
	return vecArity(k) > 0
}
