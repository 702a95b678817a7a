package valuerep

import (
	"fmt"

	"github.com/sacereda/tinyusdz/codec"
	"github.com/sacereda/tinyusdz/internal/limits"
	"github.com/sacereda/tinyusdz/value"
)

// decodeArray handles the "array, raw" and "array, compressed" rows of
// §4.D: payload is an offset; the stream there holds a uint64 count
// followed by either raw elements or a codec-specific body.
func (d *Decoder) decodeArray(kind value.Kind, rep Rep) (value.Value, error) {
	if !kind.SupportsArray() {
		return value.Value{}, fmt.Errorf("valuerep: %s does not support array form: %w", info(kind).Name, value.ErrTypeMismatch)
	}
	offset := int64(rep.Payload())
	if err := d.r.Seek(offset); err != nil {
		return value.Value{}, fmt.Errorf("valuerep: array header: %w", err)
	}
	count, err := d.r.ReadU64()
	if err != nil {
		return value.Value{}, fmt.Errorf("valuerep: array count: %w", err)
	}
	if err := limits.CheckCount64("array elements", int64(count), d.lim.MaxArrayElements); err != nil {
		return value.Value{}, err
	}
	n := int64(count)
	compressed := rep.IsCompressed()

	if nc, elemKind, isMatrix := componentLayout(kind); nc > 0 {
		return d.decodeFixedCompositeArray(kind, nc, elemKind, isMatrix, n)
	}

	switch kind {
	case value.KindBool:
		return d.decodeBoolArray(n)
	case value.KindUChar:
		return d.decodeUCharArray(n)
	case value.KindInt:
		ints, err := d.decodeIntArray(n, compressed, 4)
		if err != nil {
			return value.Value{}, err
		}
		return value.IntArray(ints), nil
	case value.KindUInt:
		ints, err := d.decodeIntArray(n, compressed, 4)
		if err != nil {
			return value.Value{}, err
		}
		out := make([]uint64, len(ints))
		for i, v := range ints {
			out[i] = uint64(uint32(v))
		}
		return value.UIntArray(out), nil
	case value.KindInt64:
		ints, err := d.decodeIntArray(n, compressed, 8)
		if err != nil {
			return value.Value{}, err
		}
		return value.Int64Array(ints), nil
	case value.KindUInt64:
		ints, err := d.decodeIntArray(n, compressed, 8)
		if err != nil {
			return value.Value{}, err
		}
		out := make([]uint64, len(ints))
		for i, v := range ints {
			out[i] = uint64(v)
		}
		return value.UInt64Array(out), nil
	case value.KindHalf:
		return d.decodeHalfArrayValue(n)
	case value.KindFloat:
		return d.decodeFloatArrayValue(n)
	case value.KindDouble:
		return d.decodeDoubleArrayValue(n)
	case value.KindString, value.KindToken, value.KindAssetPath:
		return d.decodeTokenIndexedArray(kind, n, compressed)
	default:
		return value.Value{}, fmt.Errorf("valuerep: %s array not implemented: %w", info(kind).Name, value.ErrTypeMismatch)
	}
}

func (d *Decoder) decodeBoolArray(n int64) (value.Value, error) {
	raw, err := d.r.ReadBytes(int(n))
	if err != nil {
		return value.Value{}, fmt.Errorf("valuerep: bool array: %w", err)
	}
	out := make([]bool, n)
	for i, b := range raw {
		out[i] = b != 0
	}
	return value.BoolArray(out), nil
}

func (d *Decoder) decodeUCharArray(n int64) (value.Value, error) {
	raw, err := d.r.ReadBytes(int(n))
	if err != nil {
		return value.Value{}, fmt.Errorf("valuerep: uchar array: %w", err)
	}
	out := make([]uint64, n)
	for i, b := range raw {
		out[i] = uint64(b)
	}
	return value.UIntArray(out), nil
}

// decodeIntArray reads n integers of the given element width, either raw
// little-endian or via the §4.C compressed-integer codec.
func (d *Decoder) decodeIntArray(n int64, compressed bool, width int) ([]int64, error) {
	if !compressed {
		out := make([]int64, n)
		for i := range out {
			if width == 8 {
				v, err := d.r.ReadI64()
				if err != nil {
					return nil, fmt.Errorf("valuerep: int array: %w", err)
				}
				out[i] = v
			} else {
				v, err := d.r.ReadI32()
				if err != nil {
					return nil, fmt.Errorf("valuerep: int array: %w", err)
				}
				out[i] = int64(v)
			}
		}
		return out, nil
	}

	rest, err := d.r.ReadBytes(int(d.r.Remaining()))
	if err != nil {
		return nil, fmt.Errorf("valuerep: compressed int array: %w", err)
	}
	if width == 8 {
		return codec.DecodeCompressedInts64(rest, n)
	}
	vals, err := codec.DecodeCompressedInts32(rest, n)
	if err != nil {
		return nil, err
	}
	out := make([]int64, len(vals))
	for i, v := range vals {
		out[i] = int64(v)
	}
	return out, nil
}

func (d *Decoder) decodeHalfArrayValue(n int64) (value.Value, error) {
	rest, err := d.r.ReadBytes(int(d.r.Remaining()))
	if err != nil {
		return value.Value{}, fmt.Errorf("valuerep: half array: %w", err)
	}
	bits, err := codec.DecodeHalfArray(rest, n)
	if err != nil {
		return value.Value{}, err
	}
	out := make([]float64, len(bits))
	for i, b := range bits {
		out[i] = float64(codec.HalfToFloat32(b))
	}
	return value.HalfArray(out), nil
}

func (d *Decoder) decodeFloatArrayValue(n int64) (value.Value, error) {
	rest, err := d.r.ReadBytes(int(d.r.Remaining()))
	if err != nil {
		return value.Value{}, fmt.Errorf("valuerep: float array: %w", err)
	}
	vals, err := codec.DecodeFloatArray(rest, n)
	if err != nil {
		return value.Value{}, err
	}
	out := make([]float64, len(vals))
	for i, v := range vals {
		out[i] = float64(v)
	}
	return value.FloatArray(out), nil
}

func (d *Decoder) decodeDoubleArrayValue(n int64) (value.Value, error) {
	rest, err := d.r.ReadBytes(int(d.r.Remaining()))
	if err != nil {
		return value.Value{}, fmt.Errorf("valuerep: double array: %w", err)
	}
	vals, err := codec.DecodeDoubleArray(rest, n)
	if err != nil {
		return value.Value{}, err
	}
	return value.DoubleArray(vals), nil
}

func (d *Decoder) decodeTokenIndexedArray(kind value.Kind, n int64, compressed bool) (value.Value, error) {
	var indexes []int64
	var err error
	if compressed {
		rest, rerr := d.r.ReadBytes(int(d.r.Remaining()))
		if rerr != nil {
			return value.Value{}, fmt.Errorf("valuerep: token array: %w", rerr)
		}
		vals, derr := codec.DecodeCompressedInts32(rest, n)
		if derr != nil {
			return value.Value{}, derr
		}
		indexes = make([]int64, len(vals))
		for i, v := range vals {
			indexes[i] = int64(v)
		}
	} else {
		indexes = make([]int64, n)
		for i := range indexes {
			v, rerr := d.r.ReadU32()
			if rerr != nil {
				return value.Value{}, fmt.Errorf("valuerep: token array: %w", rerr)
			}
			indexes[i] = int64(v)
		}
	}

	toks := make([]value.Token, len(indexes))
	for i, idx := range indexes {
		toks[i], err = d.tokens.Get(int(idx))
		if err != nil {
			return value.Value{}, fmt.Errorf("valuerep: token array element %d: %w", i, err)
		}
	}

	switch kind {
	case value.KindString:
		out := make([]string, len(toks))
		for i, t := range toks {
			out[i] = t.String()
		}
		return value.StrArray(out), nil
	case value.KindAssetPath:
		out := make([]string, len(toks))
		for i, t := range toks {
			out[i] = t.String()
		}
		return value.AssetPathArray(out), nil
	default:
		return value.TokenArray(toks), nil
	}
}

func (d *Decoder) decodeFixedCompositeArray(kind value.Kind, n int, elemKind value.Kind, isMatrix bool, count int64) (value.Value, error) {
	if elemKind == value.KindInt {
		out := make([][]int64, count)
		for i := range out {
			comps := make([]int64, n)
			for j := range comps {
				v, err := d.r.ReadI32()
				if err != nil {
					return value.Value{}, fmt.Errorf("valuerep: composite array: %w", err)
				}
				comps[j] = int64(v)
			}
			out[i] = comps
		}
		return value.VecIArray(kind, out), nil
	}

	out := make([][]float64, count)
	for i := range out {
		comps := make([]float64, n)
		for j := range comps {
			v, err := d.readScalarFloat(elemKind)
			if err != nil {
				return value.Value{}, fmt.Errorf("valuerep: composite array: %w", err)
			}
			comps[j] = v
		}
		out[i] = comps
	}
	if isMatrix {
		return value.MatrixArray(kind, out), nil
	}
	return value.VecArray(kind, out), nil
}
