// Package value implements the shared data model described in component
// H: the tagged Value variant, Path, Attribute, Relationship, Property,
// Animatable, ListOp and TimeSamples types used by every other package in
// this module.
package value

// Kind identifies one of the value variants. The table mirrors the type
// registry a Crate decoder consults when interpreting a value-rep's 6-bit
// type id: every Kind carries a stable numeric id, a string name, and
// whether the array-of-T form is legal for it.
type Kind uint8

const (
	KindInvalid Kind = iota

	// Scalars
	KindBool
	KindUChar
	KindInt
	KindUInt
	KindInt64
	KindUInt64
	KindHalf
	KindFloat
	KindDouble
	KindString
	KindToken
	KindAssetPath

	// Quaternions
	KindQuatd
	KindQuatf
	KindQuath

	// Vectors
	KindVec2d
	KindVec2f
	KindVec2h
	KindVec2i
	KindVec3d
	KindVec3f
	KindVec3h
	KindVec3i
	KindVec4d
	KindVec4f
	KindVec4h
	KindVec4i

	// Matrices
	KindMatrix2d
	KindMatrix3d
	KindMatrix4d

	// Non-arrayable composites
	KindDictionary
	KindTokenListOp
	KindStringListOp
	KindPathListOp
	KindReferenceListOp
	KindIntListOp
	KindInt64ListOp
	KindUIntListOp
	KindUInt64ListOp
	KindPayloadListOp
	KindPathVector
	KindTokenVector
	KindSpecifier
	KindPermission
	KindVariability
	KindVariantSelectionMap
	KindTimeSamples
	KindPayload
	KindDoubleVector
	KindLayerOffsetVector
	KindStringVector
	KindValueBlock
	KindUnregisteredValue
	KindUnregisteredValueListOp
	KindTimeCode

	kindSentinel // must stay last; len(kindSentinel) sizes the registry
)

// TypeInfo describes one Kind's wire identity.
type TypeInfo struct {
	ID            Kind
	Name          string
	SupportsArray bool
}

var typeTable [kindSentinel]TypeInfo

func reg(k Kind, name string, arr bool) {
	typeTable[k] = TypeInfo{ID: k, Name: name, SupportsArray: arr}
}

func init() {
	reg(KindInvalid, "InvaldOrUnsupported", false)

	reg(KindBool, "Bool", true)
	reg(KindUChar, "UChar", true)
	reg(KindInt, "Int", true)
	reg(KindUInt, "UInt", true)
	reg(KindInt64, "Int64", true)
	reg(KindUInt64, "UInt64", true)

	reg(KindHalf, "Half", true)
	reg(KindFloat, "Float", true)
	reg(KindDouble, "Double", true)

	reg(KindString, "String", true)
	reg(KindToken, "Token", true)
	reg(KindAssetPath, "AssetPath", true)

	reg(KindQuatd, "Quatd", true)
	reg(KindQuatf, "Quatf", true)
	reg(KindQuath, "Quath", true)

	reg(KindVec2d, "Vec2d", true)
	reg(KindVec2f, "Vec2f", true)
	reg(KindVec2h, "Vec2h", true)
	reg(KindVec2i, "Vec2i", true)

	reg(KindVec3d, "Vec3d", true)
	reg(KindVec3f, "Vec3f", true)
	reg(KindVec3h, "Vec3h", true)
	reg(KindVec3i, "Vec3i", true)

	reg(KindVec4d, "Vec4d", true)
	reg(KindVec4f, "Vec4f", true)
	reg(KindVec4h, "Vec4h", true)
	reg(KindVec4i, "Vec4i", true)

	reg(KindMatrix2d, "Matrix2d", true)
	reg(KindMatrix3d, "Matrix3d", true)
	reg(KindMatrix4d, "Matrix4d", true)

	reg(KindDictionary, "Dictionary", false)
	reg(KindTokenListOp, "TokenListOp", false)
	reg(KindStringListOp, "StringListOp", false)
	reg(KindPathListOp, "PathListOp", false)
	reg(KindReferenceListOp, "ReferenceListOp", false)
	reg(KindIntListOp, "IntListOp", false)
	reg(KindInt64ListOp, "Int64ListOp", false)
	reg(KindUIntListOp, "UIntListOp", false)
	reg(KindUInt64ListOp, "UInt64ListOp", false)
	reg(KindPayloadListOp, "PayloadListOp", false)

	reg(KindPathVector, "PathVector", false)
	reg(KindTokenVector, "TokenVector", false)

	reg(KindSpecifier, "Specifier", false)
	reg(KindPermission, "Permission", false)
	reg(KindVariability, "Variability", false)

	reg(KindVariantSelectionMap, "VariantSelectionMap", false)
	reg(KindTimeSamples, "TimeSamples", false)
	reg(KindPayload, "Payload", false)
	reg(KindDoubleVector, "DoubleVector", false)
	reg(KindLayerOffsetVector, "LayerOffsetVector", false)
	reg(KindStringVector, "StringVector", false)
	reg(KindValueBlock, "ValueBlock", false)
	reg(KindUnregisteredValue, "UnregisteredValue", false)
	reg(KindUnregisteredValueListOp, "UnregisteredValueListOp", false)

	reg(KindTimeCode, "TimeCode", true)
}

// Info returns the TypeInfo for k, or the zero-value InvaldOrUnsupported
// entry if k is out of range.
func Info(k Kind) TypeInfo {
	if int(k) < 0 || int(k) >= len(typeTable) {
		return typeTable[KindInvalid]
	}
	return typeTable[k]
}

// String returns the type name, matching TypeInfo.Name.
func (k Kind) String() string {
	return Info(k).Name
}

// SupportsArray reports whether the array-of-T form is legal for k.
func (k Kind) SupportsArray() bool {
	return Info(k).SupportsArray
}

// KindByName resolves a type name back to its Kind, or KindInvalid and
// false if unknown.
func KindByName(name string) (Kind, bool) {
	for i := range typeTable {
		if typeTable[i].Name == name {
			return typeTable[i].ID, true
		}
	}
	return KindInvalid, false
}
