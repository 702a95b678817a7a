package valuerep

import (
	"fmt"

	"github.com/sacereda/tinyusdz/value"
)

// decodeListOpAt implements §4.D list-op decoding: an isExplicit byte
// followed by six length-prefixed element arrays (explicit, added,
// prepended, appended, deleted, ordered), matching value.ListOp[T]'s
// field order.
func (d *Decoder) decodeListOpAt(kind value.Kind, offset int64, depth int) (value.Value, error) {
	if err := d.r.Seek(offset); err != nil {
		return value.Value{}, fmt.Errorf("valuerep: list-op: %w", err)
	}
	explicitByte, err := d.r.ReadU8()
	if err != nil {
		return value.Value{}, fmt.Errorf("valuerep: list-op isExplicit: %w", err)
	}
	isExplicit := explicitByte != 0

	switch kind {
	case value.KindTokenListOp, value.KindStringListOp, value.KindUnregisteredValueListOp:
		lists, err := d.readSixTokenLists(kind)
		if err != nil {
			return value.Value{}, err
		}
		op := value.ListOp[string]{IsExplicit: isExplicit}
		assignSix(&op, lists)
		return value.ListOpVal(kind, op), nil

	case value.KindPathListOp:
		lists, err := d.readSixPathLists()
		if err != nil {
			return value.Value{}, err
		}
		op := value.ListOp[value.Path]{IsExplicit: isExplicit}
		assignSix(&op, lists)
		return value.ListOpVal(kind, op), nil

	case value.KindIntListOp:
		lists, err := d.readSixIntLists(4)
		if err != nil {
			return value.Value{}, err
		}
		op := value.ListOp[int64]{IsExplicit: isExplicit}
		assignSix(&op, lists)
		return value.ListOpVal(kind, op), nil

	case value.KindInt64ListOp, value.KindUIntListOp, value.KindUInt64ListOp:
		lists, err := d.readSixIntLists(8)
		if err != nil {
			return value.Value{}, err
		}
		op := value.ListOp[int64]{IsExplicit: isExplicit}
		assignSix(&op, lists)
		return value.ListOpVal(kind, op), nil

	case value.KindReferenceListOp, value.KindPayloadListOp:
		lists, err := d.readSixReferenceLists()
		if err != nil {
			return value.Value{}, err
		}
		op := value.ListOp[value.Reference]{IsExplicit: isExplicit}
		assignSix(&op, lists)
		return value.ListOpVal(kind, op), nil

	default:
		return value.Value{}, fmt.Errorf("valuerep: %s list-op not implemented: %w", info(kind).Name, value.ErrTypeMismatch)
	}
}

// assignSix maps the six decoded slices onto a ListOp in the declared
// field order: explicit, added, prepended, appended, deleted, ordered.
func assignSix[T any](op *value.ListOp[T], lists [6][]T) {
	op.Explicit = lists[0]
	op.Added = lists[1]
	op.Prepended = lists[2]
	op.Appended = lists[3]
	op.Deleted = lists[4]
	op.Ordered = lists[5]
}

func (d *Decoder) readSixTokenLists(kind value.Kind) ([6][]string, error) {
	var out [6][]string
	for i := range out {
		count, err := d.r.ReadU64()
		if err != nil {
			return out, fmt.Errorf("valuerep: list-op list %d count: %w", i, err)
		}
		list := make([]string, count)
		for j := range list {
			idx, err := d.r.ReadU32()
			if err != nil {
				return out, fmt.Errorf("valuerep: list-op list %d element %d: %w", i, j, err)
			}
			tok, err := d.tokens.Get(int(idx))
			if err != nil {
				return out, fmt.Errorf("valuerep: list-op list %d element %d: %w", i, j, err)
			}
			list[j] = tok.String()
		}
		out[i] = list
	}
	return out, nil
}

func (d *Decoder) readSixPathLists() ([6][]value.Path, error) {
	var out [6][]value.Path
	for i := range out {
		count, err := d.r.ReadU64()
		if err != nil {
			return out, fmt.Errorf("valuerep: list-op list %d count: %w", i, err)
		}
		list := make([]value.Path, count)
		for j := range list {
			idx, err := d.r.ReadU32()
			if err != nil {
				return out, fmt.Errorf("valuerep: list-op list %d element %d: %w", i, j, err)
			}
			p, err := d.resolvePath(int(idx))
			if err != nil {
				return out, fmt.Errorf("valuerep: list-op list %d element %d: %w", i, j, err)
			}
			list[j] = p
		}
		out[i] = list
	}
	return out, nil
}

func (d *Decoder) readSixIntLists(width int) ([6][]int64, error) {
	var out [6][]int64
	for i := range out {
		count, err := d.r.ReadU64()
		if err != nil {
			return out, fmt.Errorf("valuerep: list-op list %d count: %w", i, err)
		}
		list := make([]int64, count)
		for j := range list {
			if width == 8 {
				v, err := d.r.ReadI64()
				if err != nil {
					return out, fmt.Errorf("valuerep: list-op list %d element %d: %w", i, j, err)
				}
				list[j] = v
			} else {
				v, err := d.r.ReadI32()
				if err != nil {
					return out, fmt.Errorf("valuerep: list-op list %d element %d: %w", i, j, err)
				}
				list[j] = int64(v)
			}
		}
		out[i] = list
	}
	return out, nil
}

func (d *Decoder) readSixReferenceLists() ([6][]value.Reference, error) {
	var out [6][]value.Reference
	for i := range out {
		count, err := d.r.ReadU64()
		if err != nil {
			return out, fmt.Errorf("valuerep: list-op list %d count: %w", i, err)
		}
		list := make([]value.Reference, count)
		for j := range list {
			ref, err := d.readReference()
			if err != nil {
				return out, fmt.Errorf("valuerep: list-op list %d element %d: %w", i, j, err)
			}
			list[j] = ref
		}
		out[i] = list
	}
	return out, nil
}

// readReference decodes one reference/payload entry: asset-path token
// index, prim path index, and a layer offset (offset, scale).
func (d *Decoder) readReference() (value.Reference, error) {
	assetIdx, err := d.r.ReadU32()
	if err != nil {
		return value.Reference{}, err
	}
	assetTok, err := d.tokens.Get(int(assetIdx))
	if err != nil {
		return value.Reference{}, err
	}
	pathIdx, err := d.r.ReadU32()
	if err != nil {
		return value.Reference{}, err
	}
	primPath, err := d.resolvePath(int(pathIdx))
	if err != nil {
		return value.Reference{}, err
	}
	off, err := d.r.ReadF64()
	if err != nil {
		return value.Reference{}, err
	}
	scale, err := d.r.ReadF64()
	if err != nil {
		return value.Reference{}, err
	}
	return value.Reference{
		AssetPath:   assetTok.String(),
		PrimPath:    primPath,
		LayerOffset: value.LayerOffset{Offset: off, Scale: scale},
	}, nil
}

func (d *Decoder) resolvePath(idx int) (value.Path, error) {
	if d.paths == nil {
		return value.Path{}, fmt.Errorf("valuerep: path index %d requested but no path pool attached: %w", idx, value.ErrUnresolvedReference)
	}
	return d.paths.Get(idx)
}
