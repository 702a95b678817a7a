package valuerep

import (
	"fmt"

	"github.com/sacereda/tinyusdz/bitio"
	"github.com/sacereda/tinyusdz/codec"
	"github.com/sacereda/tinyusdz/intern"
	"github.com/sacereda/tinyusdz/internal/limits"
	"github.com/sacereda/tinyusdz/value"
)

// maxRecursionDepth bounds dictionary/listOp/timeSamples nesting so a
// malicious stream of self-referential offsets cannot exhaust the Go
// stack, per §4.D's "cycle guard (bounded recursion depth)".
const maxRecursionDepth = 64

// Decoder turns value-rep words into value.Value, reading nested
// structures from the Crate byte stream as needed. It owns no state of
// its own beyond the reader and pools it was constructed with.
type Decoder struct {
	r      *bitio.Reader
	tokens *intern.TokenTable
	paths  *intern.PathPool
	lim    limits.Limits
}

// NewDecoder builds a Decoder reading from r, resolving token indices
// against tokens, and enforcing lim's resource caps. Path-typed list-ops
// and dictionary values resolve path indices only if SetPathPool is
// called first; without it they fail with value.ErrUnresolvedReference.
func NewDecoder(r *bitio.Reader, tokens *intern.TokenTable, lim limits.Limits) *Decoder {
	return &Decoder{r: r, tokens: tokens, lim: lim}
}

// SetPathPool attaches the path pool built by the Crate driver's path-jump
// reconstruction (§4.E), enabling PathListOp/ReferenceListOp decoding.
func (d *Decoder) SetPathPool(paths *intern.PathPool) { d.paths = paths }

// Clone returns a Decoder that shares tokens, paths and lim with d but
// reads through its own bitio.Reader cloned from d's. Every value-rep
// decode does r.Seek(offset) against the reader's cursor before reading,
// so concurrent callers must each hold a Clone rather than share one
// Decoder: tokens and paths are already safe for concurrent use (both
// guard their maps with a sync.RWMutex), but the reader's cursor is a
// plain unsynchronized field.
func (d *Decoder) Clone() *Decoder {
	return &Decoder{r: d.r.Clone(), tokens: d.tokens, paths: d.paths, lim: d.lim}
}

// Decode interprets rep per the §4.D dispatch table.
func (d *Decoder) Decode(rep Rep) (value.Value, error) {
	return d.decode(rep, 0)
}

func (d *Decoder) decode(rep Rep, depth int) (value.Value, error) {
	if depth > maxRecursionDepth {
		return value.Value{}, fmt.Errorf("valuerep: nesting depth %d exceeds %d: %w", depth, maxRecursionDepth, value.ErrLimitExceeded)
	}
	if rep.IsValueBlock() {
		return value.ValueBlock(), nil
	}

	kind := rep.TypeID()
	info := value.Info(kind)
	if info.ID != kind && kind != value.KindInvalid {
		return value.Value{}, fmt.Errorf("valuerep: unknown type id %d: %w", kind, value.ErrUnknownTypeID)
	}

	if rep.IsArray() {
		return d.decodeArray(kind, rep)
	}
	if rep.IsInlined() {
		return d.decodeInlined(kind, rep.Payload())
	}
	return d.decodeExternalScalar(kind, int64(rep.Payload()), depth)
}

// decodeInlined handles "inlined scalar of trivial type" and "inlined
// scalar of enum type": the payload bits hold the value directly.
func (d *Decoder) decodeInlined(kind value.Kind, payload uint64) (value.Value, error) {
	switch kind {
	case value.KindBool:
		return value.Bool(payload != 0), nil
	case value.KindUChar:
		return value.UChar(uint8(payload)), nil
	case value.KindInt:
		return value.Int(int32(payload)), nil
	case value.KindUInt:
		return value.UInt(uint32(payload)), nil
	case value.KindInt64:
		return value.Int64(signExtend(payload, payloadBits)), nil
	case value.KindUInt64:
		return value.UInt64(payload), nil
	case value.KindSpecifier:
		return value.SpecifierVal(value.Specifier(payload)), nil
	case value.KindPermission:
		return value.PermissionVal(value.Permission(payload)), nil
	case value.KindVariability:
		return value.VariabilityVal(value.Variability(payload)), nil
	case value.KindToken:
		tok, err := d.tokens.Get(int(payload))
		if err != nil {
			return value.Value{}, fmt.Errorf("valuerep: inlined token: %w", err)
		}
		return value.TokenVal(tok), nil
	default:
		return value.Value{}, fmt.Errorf("valuerep: %s has no inlined encoding: %w", info(kind).Name, value.ErrTypeMismatch)
	}
}

// decodeExternalScalar handles "external scalar" and the composite
// (dictionary/listOp/timeSamples/fixed-size vector & matrix) cases that
// share the "payload = absolute byte offset" shape.
func (d *Decoder) decodeExternalScalar(kind value.Kind, offset int64, depth int) (value.Value, error) {
	switch kind {
	case value.KindDictionary:
		return d.decodeDictionaryAt(offset, depth)
	case value.KindTimeSamples:
		return d.decodeTimeSamplesAt(offset, depth)
	case value.KindTokenListOp, value.KindStringListOp, value.KindPathListOp,
		value.KindIntListOp, value.KindInt64ListOp, value.KindUIntListOp,
		value.KindUInt64ListOp, value.KindReferenceListOp, value.KindPayloadListOp,
		value.KindUnregisteredValueListOp:
		return d.decodeListOpAt(kind, offset, depth)
	}

	if n, elemKind, isMatrix := componentLayout(kind); n > 0 {
		return d.decodeFixedCompositeAt(kind, offset, n, elemKind, isMatrix)
	}

	if err := d.r.Seek(offset); err != nil {
		return value.Value{}, fmt.Errorf("valuerep: external scalar: %w", err)
	}
	switch kind {
	case value.KindBool:
		b, err := d.r.ReadU8()
		return value.Bool(b != 0), err
	case value.KindUChar:
		b, err := d.r.ReadU8()
		return value.UChar(b), err
	case value.KindInt:
		v, err := d.r.ReadI32()
		return value.Int(v), err
	case value.KindUInt:
		v, err := d.r.ReadU32()
		return value.UInt(v), err
	case value.KindInt64:
		v, err := d.r.ReadI64()
		return value.Int64(v), err
	case value.KindUInt64:
		v, err := d.r.ReadU64()
		return value.UInt64(v), err
	case value.KindHalf:
		bits, err := d.r.ReadF16Bits()
		if err != nil {
			return value.Value{}, err
		}
		return value.Half(float64(codec.HalfToFloat32(bits))), nil
	case value.KindFloat:
		v, err := d.r.ReadF32()
		return value.Float(float64(v)), err
	case value.KindDouble, value.KindTimeCode:
		v, err := d.r.ReadF64()
		if kind == value.KindTimeCode {
			return value.TimeCode(v), err
		}
		return value.Double(v), err
	case value.KindString:
		s, err := d.r.ReadStringPrefixed(8)
		return value.Str(s), err
	case value.KindToken, value.KindAssetPath:
		idx, err := d.r.ReadU32()
		if err != nil {
			return value.Value{}, err
		}
		tok, err := d.tokens.Get(int(idx))
		if err != nil {
			return value.Value{}, fmt.Errorf("valuerep: external token: %w", err)
		}
		if kind == value.KindAssetPath {
			return value.AssetPath(tok.String()), nil
		}
		return value.TokenVal(tok), nil
	default:
		return value.Value{}, fmt.Errorf("valuerep: %s external scalar not implemented: %w", info(kind).Name, value.ErrTypeMismatch)
	}
}

func info(k value.Kind) value.TypeInfo { return value.Info(k) }

func signExtend(payload uint64, bits int) int64 {
	shift := 64 - bits
	return int64(payload<<uint(shift)) >> uint(shift)
}

// componentLayout reports the flat component count and element kind for
// fixed-size vector/quaternion/matrix types, or (0, _, false) for
// anything else.
func componentLayout(kind value.Kind) (count int, elemKind value.Kind, isMatrix bool) {
	switch kind {
	case value.KindQuatd:
		return 4, value.KindDouble, false
	case value.KindQuatf:
		return 4, value.KindFloat, false
	case value.KindQuath:
		return 4, value.KindHalf, false
	case value.KindVec2d:
		return 2, value.KindDouble, false
	case value.KindVec2f:
		return 2, value.KindFloat, false
	case value.KindVec2h:
		return 2, value.KindHalf, false
	case value.KindVec2i:
		return 2, value.KindInt, false
	case value.KindVec3d:
		return 3, value.KindDouble, false
	case value.KindVec3f:
		return 3, value.KindFloat, false
	case value.KindVec3h:
		return 3, value.KindHalf, false
	case value.KindVec3i:
		return 3, value.KindInt, false
	case value.KindVec4d:
		return 4, value.KindDouble, false
	case value.KindVec4f:
		return 4, value.KindFloat, false
	case value.KindVec4h:
		return 4, value.KindHalf, false
	case value.KindVec4i:
		return 4, value.KindInt, false
	case value.KindMatrix2d:
		return 4, value.KindDouble, true
	case value.KindMatrix3d:
		return 9, value.KindDouble, true
	case value.KindMatrix4d:
		return 16, value.KindDouble, true
	default:
		return 0, value.KindInvalid, false
	}
}

func (d *Decoder) decodeFixedCompositeAt(kind value.Kind, offset int64, n int, elemKind value.Kind, isMatrix bool) (value.Value, error) {
	if err := d.r.Seek(offset); err != nil {
		return value.Value{}, fmt.Errorf("valuerep: composite %s: %w", info(kind).Name, err)
	}
	if elemKind == value.KindInt {
		comps := make([]int64, n)
		for i := range comps {
			v, err := d.r.ReadI32()
			if err != nil {
				return value.Value{}, err
			}
			comps[i] = int64(v)
		}
		return value.VecI(kind, comps), nil
	}

	comps := make([]float64, n)
	for i := range comps {
		v, err := d.readScalarFloat(elemKind)
		if err != nil {
			return value.Value{}, err
		}
		comps[i] = v
	}
	if isMatrix {
		return value.Matrix(kind, comps), nil
	}
	return value.Vec(kind, comps), nil
}

func (d *Decoder) readScalarFloat(elemKind value.Kind) (float64, error) {
	switch elemKind {
	case value.KindHalf:
		bits, err := d.r.ReadF16Bits()
		if err != nil {
			return 0, err
		}
		return float64(codec.HalfToFloat32(bits)), nil
	case value.KindFloat:
		v, err := d.r.ReadF32()
		return float64(v), err
	case value.KindDouble:
		return d.r.ReadF64()
	default:
		return 0, fmt.Errorf("valuerep: unsupported float element kind %s", info(elemKind).Name)
	}
}
