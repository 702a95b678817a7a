package crate

import (
	"github.com/sacereda/tinyusdz/value"
)

// Recognized field names, shared with /ascii's metadata keys (§4.F) so
// both decoders route the same authored concepts into the same
// value.PrimMeta/Attribute/Relationship slots.
const (
	fieldTypeName        = "typeName"
	fieldSpecifier       = "specifier"
	fieldVariability     = "variability"
	fieldDefault         = "default"
	fieldTimeSamples     = "timeSamples"
	fieldConnectionPaths = "connectionPaths"
	fieldTargetPaths     = "targetPaths"

	fieldKind        = "kind"
	fieldActive      = "active"
	fieldHidden      = "hidden"
	fieldReferences  = "references"
	fieldPayload     = "payload"
	fieldInherits    = "inherits"
	fieldSpecializes = "specializes"
	fieldVariantSets = "variantSets"
	fieldVariants    = "variants"
	fieldAssetInfo   = "assetInfo"
	fieldAPISchemas  = "apiSchemas"
	fieldCustomData  = "customData"
	fieldDoc         = "doc"
)

func specifierFromFields(lfs liveFieldSetView) value.Specifier {
	if v, ok := lfs.find(fieldSpecifier); ok {
		if s, err := v.AsSpecifier(); err == nil {
			return s
		}
	}
	return value.SpecifierDef
}

func typeNameFromFields(lfs liveFieldSetView) string {
	if v, ok := lfs.find(fieldTypeName); ok {
		if t, err := v.AsToken(); err == nil {
			return t.String()
		}
		if s, err := v.AsStr(); err == nil {
			return s
		}
	}
	return ""
}

// flattenPathListOp collapses a decoder-preserved ListOp[Path] into a
// concrete target list: the explicit list if isExplicit, else the
// added/prepended/appended lists concatenated. Deleted/ordered entries
// are composition directives the core never evaluates (§1 Non-goals).
func flattenPathListOp(op *value.ListOp[value.Path]) []value.Path {
	if op == nil {
		return nil
	}
	if op.IsExplicit {
		return op.Explicit
	}
	out := make([]value.Path, 0, len(op.Prepended)+len(op.Added)+len(op.Appended))
	out = append(out, op.Prepended...)
	out = append(out, op.Added...)
	out = append(out, op.Appended...)
	return out
}

func flattenStringListOp(op *value.ListOp[string]) []string {
	if op == nil {
		return nil
	}
	if op.IsExplicit {
		return op.Explicit
	}
	out := make([]string, 0, len(op.Prepended)+len(op.Added)+len(op.Appended))
	out = append(out, op.Prepended...)
	out = append(out, op.Added...)
	out = append(out, op.Appended...)
	return out
}

func flattenReferenceListOp(op *value.ListOp[value.Reference]) *value.ListOp[value.Reference] {
	return op
}

// metaFromFields builds a PrimMeta from a Prim/PseudoRoot spec's live
// field-set, recognizing the §4.F prim-meta keys and stashing anything
// else into Residual (§4.F: "Unknown keys are accepted into a residual
// customData-like map").
func metaFromFields(lfs liveFieldSetView, consumed map[string]bool) value.PrimMeta {
	var meta value.PrimMeta
	for _, nv := range lfs {
		switch nv.Name {
		case fieldKind:
			if s, err := nv.Value.AsToken(); err == nil {
				meta.Kind = s.String()
			} else if s, err := nv.Value.AsStr(); err == nil {
				meta.Kind = s
			}
		case fieldActive:
			if b, err := nv.Value.AsBool(); err == nil {
				meta.Active = &b
			}
		case fieldHidden:
			if b, err := nv.Value.AsBool(); err == nil {
				meta.Hidden = &b
			}
		case fieldReferences:
			if op, ok := asReferenceListOp(nv.Value); ok {
				meta.References = op
			}
		case fieldPayload:
			if op, ok := asReferenceListOp(nv.Value); ok {
				meta.Payload = op
			}
		case fieldInherits:
			if op, ok := asPathListOp(nv.Value); ok {
				meta.Inherits = op
			}
		case fieldSpecializes:
			if op, ok := asPathListOp(nv.Value); ok {
				meta.Specializes = op
			}
		case fieldVariantSets:
			if arr, err := nv.Value.AsStrArray(); err == nil {
				meta.VariantSets = arr
			} else if arr, err := nv.Value.AsTokenArray(); err == nil {
				meta.VariantSets = tokensToStrings(arr)
			}
		case fieldVariants:
			if d, err := nv.Value.AsDictionary(); err == nil {
				meta.Variants = dictToStringMap(d)
			}
		case fieldAssetInfo:
			if d, err := nv.Value.AsDictionary(); err == nil {
				meta.AssetInfo = d
			}
		case fieldAPISchemas:
			if op, ok := asStringListOp(nv.Value); ok {
				meta.APISchemas = op
			}
		case fieldCustomData:
			if d, err := nv.Value.AsDictionary(); err == nil {
				meta.CustomData = d
			}
		case fieldDoc:
			if s, err := nv.Value.AsStr(); err == nil {
				meta.Doc = s
			}
		default:
			if consumed[nv.Name] {
				continue
			}
			meta.Residual.Set(nv.Name, nv.Value)
		}
	}
	return meta
}

func asPathListOp(v value.Value) (*value.ListOp[value.Path], bool) {
	op, err := v.AsListOp()
	if err != nil {
		return nil, false
	}
	p, ok := op.(value.ListOp[value.Path])
	if !ok {
		return nil, false
	}
	return &p, true
}

func asStringListOp(v value.Value) (*value.ListOp[string], bool) {
	op, err := v.AsListOp()
	if err != nil {
		return nil, false
	}
	p, ok := op.(value.ListOp[string])
	if !ok {
		return nil, false
	}
	return &p, true
}

func asReferenceListOp(v value.Value) (*value.ListOp[value.Reference], bool) {
	op, err := v.AsListOp()
	if err != nil {
		return nil, false
	}
	p, ok := op.(value.ListOp[value.Reference])
	if !ok {
		return nil, false
	}
	return &p, true
}

func tokensToStrings(toks []value.Token) []string {
	out := make([]string, len(toks))
	for i, t := range toks {
		out[i] = t.String()
	}
	return out
}

func dictToStringMap(d value.Dictionary) map[string]string {
	out := make(map[string]string, d.Len())
	for i, k := range d.Keys {
		if s, err := d.Values[i].AsStr(); err == nil {
			out[k] = s
		} else if t, err := d.Values[i].AsToken(); err == nil {
			out[k] = t.String()
		}
	}
	return out
}
