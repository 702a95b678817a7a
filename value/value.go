package value

import "fmt"

// Value is the tagged union described in §3: a sum over scalar, tuple and
// composite variants. Only the field matching Kind is valid; accessors
// return a typed error rather than panicking on mismatch (§4.A-style "no
// operation panics" discipline, carried through the whole module).
type Value struct {
	kind Kind
	arr  bool // true if this Value holds []T rather than a scalar T

	boolVal   bool
	intVal    int64
	uintVal   uint64
	floatVal  float64 // also carries half/float widths, stored widened
	strVal    string
	tokenVal  Token
	assetVal  string
	vecVal    []float64 // vec2/3/4 {h,f,d}, quat{h,f,d}: flattened components
	vecIntVal []int64   // vec2/3/4i
	matVal    []float64 // matrix2/3/4d: flattened row-major

	// Array forms use one slice field per storage family (shared by
	// every Kind of that family) rather than one field per array Kind.
	boolArr   []bool
	intArr    []int64
	uintArr   []uint64
	floatArr  []float64
	strArr    []string
	tokenArr  []Token
	assetArr  []string
	vecArr    [][]float64 // one []float64 per element, width implied by Kind
	vecIntArr [][]int64
	matArr    [][]float64

	dict        Dictionary
	listOp      any // *ListOp[T], concrete type implied by Kind
	pathVec     []Path
	tokenVec    []Token
	specifier   Specifier
	permission  Permission
	variability Variability
	variantSel  VariantSelectionMap
	timeSamples *TimeSamples
	doubleVec   []float64
	layerOffVec []LayerOffset
	stringVec   []string
	unreg       string
	timeCode    float64
}

// Dictionary is the non-arrayable composite described in §3: an ordered
// string-keyed map of Values. Duplicate keys resolve "latest write wins"
// per §9 Open Question (a).
type Dictionary struct {
	Keys   []string
	Values []Value
}

// Set assigns d[key] = v, overwriting any prior entry for key ("latest
// write wins").
func (d *Dictionary) Set(key string, v Value) {
	for i, k := range d.Keys {
		if k == key {
			d.Values[i] = v
			return
		}
	}
	d.Keys = append(d.Keys, key)
	d.Values = append(d.Values, v)
}

// Get looks up key, returning ok=false if absent.
func (d *Dictionary) Get(key string) (Value, bool) {
	for i, k := range d.Keys {
		if k == key {
			return d.Values[i], true
		}
	}
	return Value{}, false
}

// Len returns the number of entries.
func (d *Dictionary) Len() int { return len(d.Keys) }

// LayerOffset is an element of LayerOffsetVector: (offset, scale) applied
// to a sublayer's time coordinates.
type LayerOffset struct {
	Offset float64
	Scale  float64
}

// Specifier is one of def/over/class, per the GLOSSARY.
type Specifier uint8

const (
	SpecifierDef Specifier = iota
	SpecifierOver
	SpecifierClass
)

func (s Specifier) String() string {
	switch s {
	case SpecifierDef:
		return "def"
	case SpecifierOver:
		return "over"
	case SpecifierClass:
		return "class"
	default:
		return "invalid"
	}
}

// Permission mirrors the Crate PERMISSION enum.
type Permission uint8

const (
	PermissionPublic Permission = iota
	PermissionPrivate
)

// Variability is uniform (invariant across time) or varying (may be
// time-sampled), per the GLOSSARY.
type Variability uint8

const (
	VariabilityVarying Variability = iota
	VariabilityUniform
)

func (v Variability) String() string {
	if v == VariabilityUniform {
		return "uniform"
	}
	return "varying"
}

// VariantSelectionMap records variant-set name -> selected variant name.
// The decoder preserves it verbatim; it is never evaluated (§1 Non-goals).
type VariantSelectionMap struct {
	Keys   []string
	Values []string
}

// ============================================================
// Constructors — scalars
// ============================================================

func Bool(v bool) Value       { return Value{kind: KindBool, boolVal: v} }
func UChar(v uint8) Value     { return Value{kind: KindUChar, uintVal: uint64(v)} }
func Int(v int32) Value       { return Value{kind: KindInt, intVal: int64(v)} }
func UInt(v uint32) Value     { return Value{kind: KindUInt, uintVal: uint64(v)} }
func Int64(v int64) Value     { return Value{kind: KindInt64, intVal: v} }
func UInt64(v uint64) Value   { return Value{kind: KindUInt64, uintVal: v} }
func Half(v float64) Value    { return Value{kind: KindHalf, floatVal: v} }
func Float(v float64) Value   { return Value{kind: KindFloat, floatVal: v} }
func Double(v float64) Value  { return Value{kind: KindDouble, floatVal: v} }
func Str(v string) Value      { return Value{kind: KindString, strVal: v} }
func TokenVal(v Token) Value  { return Value{kind: KindToken, tokenVal: v} }
func AssetPath(v string) Value { return Value{kind: KindAssetPath, assetVal: v} }
func TimeCode(v float64) Value { return Value{kind: KindTimeCode, timeCode: v} }

// Vec constructs a fixed-width floating point vector/quaternion value
// (Vec2/3/4{h,f,d}, Quat{h,f,d}) from its flattened components.
func Vec(k Kind, comps []float64) Value {
	return Value{kind: k, vecVal: append([]float64(nil), comps...)}
}

// VecI constructs a Vec{2,3,4}i value.
func VecI(k Kind, comps []int64) Value {
	return Value{kind: k, vecIntVal: append([]int64(nil), comps...)}
}

// Matrix constructs a Matrix{2,3,4}d value from its flattened row-major
// elements.
func Matrix(k Kind, elems []float64) Value {
	return Value{kind: k, matVal: append([]float64(nil), elems...)}
}

// ============================================================
// Constructors — arrays
// ============================================================

func BoolArray(v []bool) Value         { return Value{kind: KindBool, arr: true, boolArr: v} }
func IntArray(v []int64) Value         { return Value{kind: KindInt, arr: true, intArr: v} }
func UIntArray(v []uint64) Value       { return Value{kind: KindUInt, arr: true, uintArr: v} }
func Int64Array(v []int64) Value       { return Value{kind: KindInt64, arr: true, intArr: v} }
func UInt64Array(v []uint64) Value     { return Value{kind: KindUInt64, arr: true, uintArr: v} }
func HalfArray(v []float64) Value      { return Value{kind: KindHalf, arr: true, floatArr: v} }
func FloatArray(v []float64) Value     { return Value{kind: KindFloat, arr: true, floatArr: v} }
func DoubleArray(v []float64) Value    { return Value{kind: KindDouble, arr: true, floatArr: v} }
func StrArray(v []string) Value        { return Value{kind: KindString, arr: true, strArr: v} }
func TokenArray(v []Token) Value       { return Value{kind: KindToken, arr: true, tokenArr: v} }
func AssetPathArray(v []string) Value  { return Value{kind: KindAssetPath, arr: true, assetArr: v} }

// VecArray constructs an array of fixed-width vectors/quaternions.
func VecArray(k Kind, comps [][]float64) Value {
	return Value{kind: k, arr: true, vecArr: comps}
}

func VecIArray(k Kind, comps [][]int64) Value {
	return Value{kind: k, arr: true, vecIntArr: comps}
}

func MatrixArray(k Kind, elems [][]float64) Value {
	return Value{kind: k, arr: true, matArr: elems}
}

// ============================================================
// Constructors — non-arrayable composites
// ============================================================

func DictionaryVal(d Dictionary) Value { return Value{kind: KindDictionary, dict: d} }
func PathVector(v []Path) Value        { return Value{kind: KindPathVector, pathVec: v} }
func TokenVector(v []Token) Value      { return Value{kind: KindTokenVector, tokenVec: v} }
func SpecifierVal(s Specifier) Value   { return Value{kind: KindSpecifier, specifier: s} }
func PermissionVal(p Permission) Value { return Value{kind: KindPermission, permission: p} }
func VariabilityVal(v Variability) Value {
	return Value{kind: KindVariability, variability: v}
}
func VariantSelectionMapVal(m VariantSelectionMap) Value {
	return Value{kind: KindVariantSelectionMap, variantSel: m}
}
func TimeSamplesVal(ts *TimeSamples) Value { return Value{kind: KindTimeSamples, timeSamples: ts} }
func DoubleVector(v []float64) Value       { return Value{kind: KindDoubleVector, doubleVec: v} }
func LayerOffsetVector(v []LayerOffset) Value {
	return Value{kind: KindLayerOffsetVector, layerOffVec: v}
}
func StringVector(v []string) Value    { return Value{kind: KindStringVector, stringVec: v} }
func ValueBlock() Value                { return Value{kind: KindValueBlock} }
func UnregisteredValue(repr string) Value {
	return Value{kind: KindUnregisteredValue, unreg: repr}
}

// ListOpVal wraps a concrete *ListOp[T] using the matching list-op Kind.
func ListOpVal(k Kind, op any) Value {
	return Value{kind: k, listOp: op}
}

// ============================================================
// Accessors
// ============================================================

// Kind returns the value's variant tag.
func (v Value) Kind() Kind { return v.kind }

// IsArray reports whether v holds the array-of-T form.
func (v Value) IsArray() bool { return v.arr }

// TypeName returns the registry type name for v, with "[]" appended for
// the array form (e.g. "Vec3f[]").
func (v Value) TypeName() string {
	n := Info(v.kind).Name
	if v.arr {
		return n + "[]"
	}
	return n
}

var errKindMismatch = fmt.Errorf("value: kind mismatch")

func (v Value) checkKind(want Kind, arr bool) error {
	if v.kind != want || v.arr != arr {
		return fmt.Errorf("%w: want %s%s, got %s%s", errKindMismatch,
			Info(want).Name, arraySuffix(arr), Info(v.kind).Name, arraySuffix(v.arr))
	}
	return nil
}

func arraySuffix(arr bool) string {
	if arr {
		return "[]"
	}
	return ""
}

func (v Value) AsBool() (bool, error) {
	if err := v.checkKind(KindBool, false); err != nil {
		return false, err
	}
	return v.boolVal, nil
}

func (v Value) AsInt() (int32, error) {
	if err := v.checkKind(KindInt, false); err != nil {
		return 0, err
	}
	return int32(v.intVal), nil
}

func (v Value) AsUInt() (uint32, error) {
	if err := v.checkKind(KindUInt, false); err != nil {
		return 0, err
	}
	return uint32(v.uintVal), nil
}

func (v Value) AsInt64() (int64, error) {
	if err := v.checkKind(KindInt64, false); err != nil {
		return 0, err
	}
	return v.intVal, nil
}

func (v Value) AsUInt64() (uint64, error) {
	if err := v.checkKind(KindUInt64, false); err != nil {
		return 0, err
	}
	return v.uintVal, nil
}

func (v Value) AsFloat() (float64, error) {
	switch v.kind {
	case KindHalf, KindFloat, KindDouble, KindTimeCode:
		if v.arr {
			return 0, fmt.Errorf("%w: %s is an array", errKindMismatch, v.kind)
		}
		if v.kind == KindTimeCode {
			return v.timeCode, nil
		}
		return v.floatVal, nil
	default:
		return 0, fmt.Errorf("%w: want a floating scalar, got %s", errKindMismatch, v.kind)
	}
}

func (v Value) AsStr() (string, error) {
	if err := v.checkKind(KindString, false); err != nil {
		return "", err
	}
	return v.strVal, nil
}

func (v Value) AsToken() (Token, error) {
	if err := v.checkKind(KindToken, false); err != nil {
		return Token{}, err
	}
	return v.tokenVal, nil
}

func (v Value) AsAssetPath() (string, error) {
	if err := v.checkKind(KindAssetPath, false); err != nil {
		return "", err
	}
	return v.assetVal, nil
}

func (v Value) AsVec() ([]float64, error) {
	if v.vecVal == nil {
		return nil, fmt.Errorf("%w: not a vector/quaternion kind %s", errKindMismatch, v.kind)
	}
	return v.vecVal, nil
}

func (v Value) AsVecI() ([]int64, error) {
	if v.vecIntVal == nil {
		return nil, fmt.Errorf("%w: not an integer vector kind %s", errKindMismatch, v.kind)
	}
	return v.vecIntVal, nil
}

func (v Value) AsMatrix() ([]float64, error) {
	if v.matVal == nil {
		return nil, fmt.Errorf("%w: not a matrix kind %s", errKindMismatch, v.kind)
	}
	return v.matVal, nil
}

func (v Value) AsBoolArray() ([]bool, error) {
	if err := v.checkKind(KindBool, true); err != nil {
		return nil, err
	}
	return v.boolArr, nil
}

func (v Value) AsIntArray() ([]int64, error) {
	if v.kind != KindInt && v.kind != KindInt64 {
		return nil, fmt.Errorf("%w: want Int[]/Int64[], got %s", errKindMismatch, v.kind)
	}
	if !v.arr {
		return nil, fmt.Errorf("%w: %s is a scalar", errKindMismatch, v.kind)
	}
	return v.intArr, nil
}

func (v Value) AsUIntArray() ([]uint64, error) {
	if v.kind != KindUInt && v.kind != KindUInt64 {
		return nil, fmt.Errorf("%w: want UInt[]/UInt64[], got %s", errKindMismatch, v.kind)
	}
	if !v.arr {
		return nil, fmt.Errorf("%w: %s is a scalar", errKindMismatch, v.kind)
	}
	return v.uintArr, nil
}

func (v Value) AsFloatArray() ([]float64, error) {
	switch v.kind {
	case KindHalf, KindFloat, KindDouble:
		if !v.arr {
			return nil, fmt.Errorf("%w: %s is a scalar", errKindMismatch, v.kind)
		}
		return v.floatArr, nil
	default:
		return nil, fmt.Errorf("%w: want a floating array, got %s", errKindMismatch, v.kind)
	}
}

func (v Value) AsStrArray() ([]string, error) {
	if err := v.checkKind(KindString, true); err != nil {
		return nil, err
	}
	return v.strArr, nil
}

func (v Value) AsTokenArray() ([]Token, error) {
	if err := v.checkKind(KindToken, true); err != nil {
		return nil, err
	}
	return v.tokenArr, nil
}

func (v Value) AsVecArray() ([][]float64, error) {
	if v.vecArr == nil {
		return nil, fmt.Errorf("%w: not an array of vectors/quaternions, kind %s", errKindMismatch, v.kind)
	}
	return v.vecArr, nil
}

func (v Value) AsDictionary() (Dictionary, error) {
	if err := v.checkKind(KindDictionary, false); err != nil {
		return Dictionary{}, err
	}
	return v.dict, nil
}

func (v Value) AsPathVector() ([]Path, error) {
	if err := v.checkKind(KindPathVector, false); err != nil {
		return nil, err
	}
	return v.pathVec, nil
}

func (v Value) AsTokenVector() ([]Token, error) {
	if err := v.checkKind(KindTokenVector, false); err != nil {
		return nil, err
	}
	return v.tokenVec, nil
}

func (v Value) AsSpecifier() (Specifier, error) {
	if err := v.checkKind(KindSpecifier, false); err != nil {
		return 0, err
	}
	return v.specifier, nil
}

func (v Value) AsVariability() (Variability, error) {
	if err := v.checkKind(KindVariability, false); err != nil {
		return 0, err
	}
	return v.variability, nil
}

func (v Value) AsTimeSamples() (*TimeSamples, error) {
	if err := v.checkKind(KindTimeSamples, false); err != nil {
		return nil, err
	}
	return v.timeSamples, nil
}

func (v Value) AsListOp() (any, error) {
	if v.listOp == nil {
		return nil, fmt.Errorf("%w: not a list-op kind %s", errKindMismatch, v.kind)
	}
	return v.listOp, nil
}

// IsBlocked reports whether v is the ValueBlock sentinel (§3 Attribute:
// "no value at this time").
func (v Value) IsBlocked() bool { return v.kind == KindValueBlock }
