package ascii

import (
	"fmt"

	"github.com/sacereda/tinyusdz/value"
)

// parseStageMetas implements §4.F's StageMetas production: a parenthesized
// block of the recognized stage-meta keys, with anything unrecognized
// folded into Residual.
func (p *Parser) parseStageMetas() (StageMeta, error) {
	var meta StageMeta
	if _, err := p.expect(TokLParen); err != nil {
		return meta, err
	}
	for {
		t, err := p.peek()
		if err != nil {
			return meta, err
		}
		if t.Kind == TokRParen {
			p.advance()
			break
		}
		key, err := p.expect(TokIdent)
		if err != nil {
			return meta, err
		}
		if _, err := p.expect(TokEquals); err != nil {
			return meta, err
		}
		switch key.Text {
		case "defaultPrim":
			v, err := p.parseTokenLiteral()
			if err != nil {
				return meta, err
			}
			s, _ := v.AsToken()
			meta.DefaultPrim = s.String()
		case "upAxis":
			v, err := p.parseTokenLiteral()
			if err != nil {
				return meta, err
			}
			s, _ := v.AsToken()
			meta.UpAxis = s.String()
		case "metersPerUnit":
			n, err := p.parseSignedNumberToken()
			if err != nil {
				return meta, err
			}
			meta.MetersPerUnit = &n
		case "timeCodesPerSecond":
			n, err := p.parseSignedNumberToken()
			if err != nil {
				return meta, err
			}
			meta.TimeCodesPerSecond = &n
		case "startTimeCode":
			n, err := p.parseSignedNumberToken()
			if err != nil {
				return meta, err
			}
			meta.StartTimeCode = &n
		case "endTimeCode":
			n, err := p.parseSignedNumberToken()
			if err != nil {
				return meta, err
			}
			meta.EndTimeCode = &n
		case "framesPerSecond":
			n, err := p.parseSignedNumberToken()
			if err != nil {
				return meta, err
			}
			meta.FramesPerSecond = &n
		case "doc":
			s, err := p.expect(TokString)
			if err != nil {
				return meta, err
			}
			meta.Doc = s.Text
		case "customLayerData":
			d, err := p.parseDictLiteral()
			if err != nil {
				return meta, err
			}
			meta.CustomLayerData = d
		case "subLayers":
			ss, err := p.parseStringOrTokenList()
			if err != nil {
				return meta, err
			}
			meta.SubLayers = ss
		default:
			v, err := p.inferValue()
			if err != nil {
				return meta, err
			}
			meta.Residual.Set(key.Text, v)
			p.pushWarning(value.Diagnostic{Err: value.ErrInternal, Pos: key.Pos,
				Note: fmt.Sprintf("unrecognized stage-meta key %q folded into residual", key.Text)})
		}
	}
	return meta, nil
}

// primMeta is the parse of a prim's metadata block; it is an alias of
// value.PrimMeta, which parsePrimTree stores directly into Prim.Meta.
type primMeta = value.PrimMeta

// parsePrimMetas implements §4.F's PrimMetas production (the contents of
// the `( ... )` block after a prim's Name), recognizing the §4.F prim-meta
// key set and folding anything else into Residual.
func (p *Parser) parsePrimMetas() (primMeta, error) {
	var meta primMeta
	for {
		t, err := p.peek()
		if err != nil {
			return meta, err
		}
		if t.Kind == TokRParen {
			break
		}
		qual, err := p.parseListEditQual()
		if err != nil {
			return meta, err
		}
		key, err := p.expect(TokIdent)
		if err != nil {
			return meta, err
		}
		if _, err := p.expect(TokEquals); err != nil {
			return meta, err
		}
		switch key.Text {
		case "kind":
			v, err := p.parseTokenLiteral()
			if err != nil {
				return meta, err
			}
			s, _ := v.AsToken()
			meta.Kind = s.String()
		case "active":
			v, err := p.parseBoolLiteral()
			if err != nil {
				return meta, err
			}
			b, _ := v.AsBool()
			meta.Active = &b
		case "hidden":
			v, err := p.parseBoolLiteral()
			if err != nil {
				return meta, err
			}
			b, _ := v.AsBool()
			meta.Hidden = &b
		case "references":
			refs, err := p.parseReferenceList()
			if err != nil {
				return meta, err
			}
			op := applyReferenceQual(qual, refs)
			meta.References = &op
		case "payload":
			refs, err := p.parseReferenceList()
			if err != nil {
				return meta, err
			}
			op := applyReferenceQual(qual, refs)
			meta.Payload = &op
		case "inherits":
			paths, err := p.parsePathList()
			if err != nil {
				return meta, err
			}
			op := applyPathQual(qual, paths)
			meta.Inherits = &op
		case "specializes":
			paths, err := p.parsePathList()
			if err != nil {
				return meta, err
			}
			op := applyPathQual(qual, paths)
			meta.Specializes = &op
		case "variantSets":
			ss, err := p.parseStringOrTokenList()
			if err != nil {
				return meta, err
			}
			meta.VariantSets = ss
		case "variants":
			m, err := p.parseVariantsDict()
			if err != nil {
				return meta, err
			}
			meta.Variants = m
		case "assetInfo":
			d, err := p.parseDictLiteral()
			if err != nil {
				return meta, err
			}
			meta.AssetInfo = d
		case "apiSchemas":
			ss, err := p.parseStringOrTokenList()
			if err != nil {
				return meta, err
			}
			op := applyStringQual(qual, ss)
			meta.APISchemas = &op
		case "customData":
			d, err := p.parseDictLiteral()
			if err != nil {
				return meta, err
			}
			meta.CustomData = d
		case "doc":
			s, err := p.expect(TokString)
			if err != nil {
				return meta, err
			}
			meta.Doc = s.Text
		default:
			v, err := p.inferValue()
			if err != nil {
				return meta, err
			}
			meta.Residual.Set(key.Text, v)
			p.pushWarning(value.Diagnostic{Err: value.ErrInternal, Pos: key.Pos,
				Note: fmt.Sprintf("unrecognized prim-meta key %q folded into residual", key.Text)})
		}
	}
	return meta, nil
}

// parseAttrMetas implements §4.F's AttrMetas production: a bare key=value
// dictionary attached to a property declaration (e.g. `interpolation`,
// `customData`), with everything folded generically since attribute
// metadata has no closed key set in §4.F.
func (p *Parser) parseAttrMetas() (value.Dictionary, error) {
	var d value.Dictionary
	for {
		t, err := p.peek()
		if err != nil {
			return d, err
		}
		if t.Kind == TokRParen {
			break
		}
		key, err := p.expect(TokIdent)
		if err != nil {
			return d, err
		}
		if _, err := p.expect(TokEquals); err != nil {
			return d, err
		}
		var v value.Value
		if key.Text == "customData" {
			dd, err := p.parseDictLiteral()
			if err != nil {
				return d, err
			}
			v = value.DictionaryVal(dd)
		} else {
			v, err = p.inferValue()
			if err != nil {
				return d, err
			}
		}
		d.Set(key.Text, v)
	}
	return d, nil
}
