package ascii

import (
	"math"
	"strconv"
	"strings"

	"github.com/sacereda/tinyusdz/internal/limits"
	"github.com/sacereda/tinyusdz/value"
)

// parseValueForKind implements §4.F's "typed-literal parsing": each type
// has a dedicated reader enforcing arity, and `None` is accepted anywhere
// to denote a blocked attribute value.
func (p *Parser) parseValueForKind(k value.Kind, arr bool) (value.Value, error) {
	t, err := p.peek()
	if err != nil {
		return value.Value{}, err
	}
	if t.Kind == TokIdent && t.Text == "None" {
		p.advance()
		return value.ValueBlock(), nil
	}
	if arr {
		return p.parseArrayForKind(k)
	}
	if isVecLike(k) {
		return p.parseVecForKind(k)
	}
	return p.parseScalarForKind(k)
}

func (p *Parser) parseNumberToken() (float64, error) {
	t, err := p.expect(TokNumber)
	if err != nil {
		return 0, err
	}
	return parseNumberText(t.Text)
}

func parseNumberText(text string) (float64, error) {
	switch text {
	case "inf":
		return math.Inf(1), nil
	case "-inf":
		return math.Inf(-1), nil
	case "nan":
		return math.NaN(), nil
	}
	return strconv.ParseFloat(text, 64)
}

func (p *Parser) parseScalarForKind(k value.Kind) (value.Value, error) {
	switch k {
	case value.KindBool:
		return p.parseBoolLiteral()
	case value.KindUChar:
		n, err := p.parseNumberToken()
		return value.UChar(uint8(n)), err
	case value.KindInt:
		n, err := p.parseSignedNumberToken()
		return value.Int(int32(n)), err
	case value.KindUInt:
		n, err := p.parseNumberToken()
		return value.UInt(uint32(n)), err
	case value.KindInt64:
		n, err := p.parseSignedNumberToken()
		return value.Int64(int64(n)), err
	case value.KindUInt64:
		n, err := p.parseNumberToken()
		return value.UInt64(uint64(n)), err
	case value.KindHalf:
		n, err := p.parseSignedNumberToken()
		return value.Half(n), err
	case value.KindFloat:
		n, err := p.parseSignedNumberToken()
		return value.Float(n), err
	case value.KindDouble:
		n, err := p.parseSignedNumberToken()
		return value.Double(n), err
	case value.KindTimeCode:
		n, err := p.parseSignedNumberToken()
		return value.TimeCode(n), err
	case value.KindString:
		s, err := p.expect(TokString)
		if err != nil {
			return value.Value{}, err
		}
		if err := p.checkStringLength(s); err != nil {
			return value.Value{}, err
		}
		return value.Str(s.Text), nil
	case value.KindToken:
		v, err := p.parseTokenLiteral()
		if err != nil {
			return value.Value{}, err
		}
		if p.lim.MaxTokenLength > 0 {
			if tk, ok := v.AsToken(); ok == nil && len(tk.String()) > p.lim.MaxTokenLength {
				return value.Value{}, p.errorAt("token length %d exceeds limit %d", len(tk.String()), p.lim.MaxTokenLength)
			}
		}
		return v, nil
	case value.KindAssetPath:
		return p.parseAssetLiteral()
	case value.KindDictionary:
		d, err := p.parseDictLiteral()
		return value.DictionaryVal(d), err
	default:
		return value.Value{}, p.errorAt("unsupported scalar type %s", k)
	}
}

// parseSignedNumberToken accepts an optional leading '-' token followed by
// a number, for lexer configurations where the sign wasn't folded into the
// number token itself.
func (p *Parser) parseSignedNumberToken() (float64, error) {
	t, err := p.peek()
	if err != nil {
		return 0, err
	}
	neg := false
	if t.Kind == TokMinus {
		p.advance()
		neg = true
	}
	n, err := p.parseNumberToken()
	if err != nil {
		return 0, err
	}
	if neg {
		return -n, nil
	}
	return n, nil
}

func (p *Parser) parseBoolLiteral() (value.Value, error) {
	t, err := p.advance()
	if err != nil {
		return value.Value{}, err
	}
	switch {
	case t.Kind == TokIdent && t.Text == "true":
		return value.Bool(true), nil
	case t.Kind == TokIdent && t.Text == "false":
		return value.Bool(false), nil
	case t.Kind == TokNumber && t.Text == "1":
		return value.Bool(true), nil
	case t.Kind == TokNumber && t.Text == "0":
		return value.Bool(false), nil
	default:
		return value.Value{}, p.errorAt("expected bool literal, got %q", t.Text)
	}
}

func (p *Parser) parseTokenLiteral() (value.Value, error) {
	t, err := p.advance()
	if err != nil {
		return value.Value{}, err
	}
	switch t.Kind {
	case TokString, TokIdent:
		return value.TokenVal(value.NewToken(t.Text)), nil
	default:
		return value.Value{}, p.errorAt("expected token literal, got %s", t.Kind)
	}
}

func (p *Parser) parseAssetLiteral() (value.Value, error) {
	t, err := p.advance()
	if err != nil {
		return value.Value{}, err
	}
	switch t.Kind {
	case TokAsset, TokString:
		return value.AssetPath(t.Text), nil
	default:
		return value.Value{}, p.errorAt("expected asset path literal, got %s", t.Kind)
	}
}

// parseVecForKind reads a `(c0, c1, ...)` tuple, enforcing the arity of k.
func (p *Parser) parseVecForKind(k value.Kind) (value.Value, error) {
	n := vecArity(k)
	if _, err := p.expect(TokLParen); err != nil {
		return value.Value{}, err
	}
	if isIntVec(k) {
		comps := make([]int64, 0, n)
		for i := 0; i < n; i++ {
			if i > 0 {
				if _, err := p.expect(TokComma); err != nil {
					return value.Value{}, err
				}
			}
			c, err := p.parseSignedNumberToken()
			if err != nil {
				return value.Value{}, err
			}
			comps = append(comps, int64(c))
		}
		if _, err := p.expect(TokRParen); err != nil {
			return value.Value{}, err
		}
		return value.VecI(k, comps), nil
	}
	comps := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		if i > 0 {
			if _, err := p.expect(TokComma); err != nil {
				return value.Value{}, err
			}
		}
		c, err := p.parseSignedNumberToken()
		if err != nil {
			return value.Value{}, err
		}
		comps = append(comps, c)
	}
	if _, err := p.expect(TokRParen); err != nil {
		return value.Value{}, err
	}
	if isMatrix(k) {
		return value.Matrix(k, comps), nil
	}
	return value.Vec(k, comps), nil
}

// parseArrayForKind reads a `[e0, e1, ...]` array with an optional
// trailing comma, per §4.F, including tuple-arrays with `None` elements.
func (p *Parser) parseArrayForKind(k value.Kind) (value.Value, error) {
	if _, err := p.expect(TokLBracket); err != nil {
		return value.Value{}, err
	}
	t, err := p.peek()
	if err != nil {
		return value.Value{}, err
	}
	if t.Kind == TokRBracket {
		p.advance()
		return emptyArrayForKind(k), nil
	}

	switch {
	case isVecLike(k) && !isMatrix(k):
		var comps [][]float64
		var compsI [][]int64
		for {
			et, err := p.peek()
			if err != nil {
				return value.Value{}, err
			}
			if et.Kind == TokIdent && et.Text == "None" {
				p.advance()
				if isIntVec(k) {
					compsI = append(compsI, make([]int64, vecArity(k)))
				} else {
					comps = append(comps, make([]float64, vecArity(k)))
				}
			} else {
				v, err := p.parseVecForKind(k)
				if err != nil {
					return value.Value{}, err
				}
				if isIntVec(k) {
					vi, _ := v.AsVecI()
					compsI = append(compsI, vi)
				} else {
					vv, _ := v.AsVec()
					comps = append(comps, vv)
				}
			}
			if err := p.checkArrayCount(int64(len(comps) + len(compsI))); err != nil {
				return value.Value{}, err
			}
			if done, err := p.consumeCommaOrEnd(); err != nil {
				return value.Value{}, err
			} else if done {
				break
			}
		}
		if isIntVec(k) {
			return value.VecIArray(k, compsI), nil
		}
		return value.VecArray(k, comps), nil

	case isMatrix(k):
		var elems [][]float64
		for {
			v, err := p.parseVecForKind(k)
			if err != nil {
				return value.Value{}, err
			}
			m, _ := v.AsMatrix()
			elems = append(elems, m)
			if err := p.checkArrayCount(int64(len(elems))); err != nil {
				return value.Value{}, err
			}
			if done, err := p.consumeCommaOrEnd(); err != nil {
				return value.Value{}, err
			} else if done {
				break
			}
		}
		return value.MatrixArray(k, elems), nil

	default:
		return p.parseScalarArrayForKind(k)
	}
}

// checkArrayCount enforces §5's MaxArrayElements cap while an array
// literal is still being accumulated, mirroring the running check
// crate's array-value decoder applies before allocating each element.
func (p *Parser) checkArrayCount(n int64) error {
	if p.lim.MaxArrayElements > 0 {
		return limits.CheckCount64("array", n, p.lim.MaxArrayElements)
	}
	return nil
}

func (p *Parser) parseScalarArrayForKind(k value.Kind) (value.Value, error) {
	var bools []bool
	var ints []int64
	var uints []uint64
	var floats []float64
	var strs []string
	var toks []value.Token
	var assets []string

	for {
		switch k {
		case value.KindBool:
			sv, err := p.parseBoolLiteral()
			if err != nil {
				return value.Value{}, err
			}
			v, _ := sv.AsBool()
			bools = append(bools, v)
		case value.KindUChar, value.KindUInt, value.KindUInt64:
			n, err := p.parseNumberToken()
			if err != nil {
				return value.Value{}, err
			}
			uints = append(uints, uint64(n))
		case value.KindInt, value.KindInt64:
			n, err := p.parseSignedNumberToken()
			if err != nil {
				return value.Value{}, err
			}
			ints = append(ints, int64(n))
		case value.KindHalf, value.KindFloat, value.KindDouble:
			n, err := p.parseSignedNumberToken()
			if err != nil {
				return value.Value{}, err
			}
			floats = append(floats, n)
		case value.KindString:
			sv, err := p.expect(TokString)
			if err != nil {
				return value.Value{}, err
			}
			strs = append(strs, sv.Text)
		case value.KindToken:
			sv, err := p.parseTokenLiteral()
			if err != nil {
				return value.Value{}, err
			}
			v, _ := sv.AsToken()
			toks = append(toks, v)
		case value.KindAssetPath:
			sv, err := p.parseAssetLiteral()
			if err != nil {
				return value.Value{}, err
			}
			v, _ := sv.AsAssetPath()
			assets = append(assets, v)
		}
		if err := p.checkArrayCount(int64(len(bools) + len(ints) + len(uints) + len(floats) + len(strs) + len(toks) + len(assets))); err != nil {
			return value.Value{}, err
		}
		if done, err := p.consumeCommaOrEnd(); err != nil {
			return value.Value{}, err
		} else if done {
			break
		}
	}

	switch k {
	case value.KindBool:
		return value.BoolArray(bools), nil
	case value.KindUChar, value.KindUInt, value.KindUInt64:
		return value.UIntArray(uints), nil
	case value.KindInt, value.KindInt64:
		return value.IntArray(ints), nil
	case value.KindHalf, value.KindFloat, value.KindDouble:
		return value.FloatArray(floats), nil
	case value.KindString:
		return value.StrArray(strs), nil
	case value.KindToken:
		return value.TokenArray(toks), nil
	case value.KindAssetPath:
		return value.AssetPathArray(assets), nil
	default:
		return value.Value{}, p.errorAt("unsupported array element type %s", k)
	}
}

// consumeCommaOrEnd consumes a separating comma (with optional trailing
// comma before ']') and reports whether the array is now closed.
func (p *Parser) consumeCommaOrEnd() (bool, error) {
	t, err := p.peek()
	if err != nil {
		return false, err
	}
	switch t.Kind {
	case TokComma:
		p.advance()
		nt, err := p.peek()
		if err != nil {
			return false, err
		}
		if nt.Kind == TokRBracket {
			p.advance()
			return true, nil
		}
		return false, nil
	case TokRBracket:
		p.advance()
		return true, nil
	default:
		return false, p.errorAt("expected ',' or ']', got %s", t.Kind)
	}
}

func emptyArrayForKind(k value.Kind) value.Value {
	switch {
	case k == value.KindBool:
		return value.BoolArray(nil)
	case k == value.KindString:
		return value.StrArray(nil)
	case k == value.KindToken:
		return value.TokenArray(nil)
	case k == value.KindAssetPath:
		return value.AssetPathArray(nil)
	case k == value.KindUChar || k == value.KindUInt || k == value.KindUInt64:
		return value.UIntArray(nil)
	case k == value.KindInt || k == value.KindInt64:
		return value.IntArray(nil)
	case k == value.KindHalf || k == value.KindFloat || k == value.KindDouble:
		return value.FloatArray(nil)
	case isMatrix(k):
		return value.MatrixArray(k, nil)
	case isVecLike(k) && isIntVec(k):
		return value.VecIArray(k, nil)
	case isVecLike(k):
		return value.VecArray(k, nil)
	default:
		return value.Value{}
	}
}

// parseDictLiteral reads a `{ Type Name = Value; ... }` dictionary body,
// per §4.F's Value := ... | Dict production.
func (p *Parser) parseDictLiteral() (value.Dictionary, error) {
	var d value.Dictionary
	if err := p.enterNesting(); err != nil {
		return d, err
	}
	defer p.exitNesting()
	if _, err := p.expect(TokLBrace); err != nil {
		return d, err
	}
	for {
		t, err := p.peek()
		if err != nil {
			return d, err
		}
		if t.Kind == TokRBrace {
			p.advance()
			break
		}
		typeTok, err := p.expect(TokIdent)
		if err != nil {
			return d, err
		}
		arr, err := p.parseArraySuffix()
		if err != nil {
			return d, err
		}
		nameTok, err := p.expect(TokIdent)
		if err != nil {
			return d, err
		}
		if _, err := p.expect(TokEquals); err != nil {
			return d, err
		}
		k, ok := typeKinds[typeTok.Text]
		if !ok {
			return d, p.errorAt("unknown dictionary entry type %q", typeTok.Text)
		}
		v, err := p.parseValueForKind(k, arr)
		if err != nil {
			return d, err
		}
		d.Set(nameTok.Text, v)
		if p.lim.MaxDictElements > 0 {
			if err := limits.CheckCount("dictionary", d.Len(), p.lim.MaxDictElements); err != nil {
				return d, err
			}
		}
		if nt, err := p.peek(); err != nil {
			return d, err
		} else if nt.Kind == TokSemicolon {
			p.advance()
		}
	}
	return d, nil
}

// parseArraySuffix consumes an optional `[]` array marker.
func (p *Parser) parseArraySuffix() (bool, error) {
	t, err := p.peek()
	if err != nil {
		return false, err
	}
	if t.Kind != TokLBracket {
		return false, nil
	}
	cp := p.mark()
	p.advance()
	nt, err := p.peek()
	if err != nil {
		return false, err
	}
	if nt.Kind == TokRBracket {
		p.advance()
		return true, nil
	}
	p.rollback(cp)
	return false, nil
}

// checkStringLength enforces §5's MaxStringLength cap on a string
// literal, mirroring the length check crate's STRINGS section reader
// applies to each pool entry.
func (p *Parser) checkStringLength(t Token) error {
	if p.lim.MaxStringLength > 0 && len(t.Text) > p.lim.MaxStringLength {
		return p.errorf(t.Pos, "string length %d exceeds limit %d", len(t.Text), p.lim.MaxStringLength)
	}
	return nil
}

func (p *Parser) errorAt(format string, args ...any) error {
	pos := value.Position{}
	if t, err := p.peek(); err == nil {
		pos = t.Pos
	}
	return p.errorf(pos, format, args...)
}

// parsePathList reads either a single path literal or a bracketed,
// comma-separated list of path literals.
func (p *Parser) parsePathList() ([]value.Path, error) {
	t, err := p.peek()
	if err != nil {
		return nil, err
	}
	if t.Kind == TokLBracket {
		p.advance()
		var out []value.Path
		for {
			pt, err := p.peek()
			if err != nil {
				return nil, err
			}
			if pt.Kind == TokRBracket {
				p.advance()
				break
			}
			pv, err := p.parseOnePath()
			if err != nil {
				return nil, err
			}
			out = append(out, pv)
			if done, err := p.consumeCommaOrEnd(); err != nil {
				return nil, err
			} else if done {
				break
			}
		}
		return out, nil
	}
	pv, err := p.parseOnePath()
	if err != nil {
		return nil, err
	}
	return []value.Path{pv}, nil
}

func (p *Parser) parseOnePath() (value.Path, error) {
	t, err := p.expect(TokPath)
	if err != nil {
		return value.Path{}, err
	}
	return value.ParsePath(t.Text)
}

// parseReferenceList reads either a single reference (`@asset@</path>` or
// `@asset@`) or a bracketed list of them.
func (p *Parser) parseReferenceList() ([]value.Reference, error) {
	t, err := p.peek()
	if err != nil {
		return nil, err
	}
	if t.Kind == TokLBracket {
		p.advance()
		var out []value.Reference
		for {
			pt, err := p.peek()
			if err != nil {
				return nil, err
			}
			if pt.Kind == TokRBracket {
				p.advance()
				break
			}
			r, err := p.parseOneReference()
			if err != nil {
				return nil, err
			}
			out = append(out, r)
			if done, err := p.consumeCommaOrEnd(); err != nil {
				return nil, err
			} else if done {
				break
			}
		}
		return out, nil
	}
	r, err := p.parseOneReference()
	if err != nil {
		return nil, err
	}
	return []value.Reference{r}, nil
}

func (p *Parser) parseOneReference() (value.Reference, error) {
	var ref value.Reference
	t, err := p.peek()
	if err != nil {
		return ref, err
	}
	if t.Kind == TokAsset || t.Kind == TokString {
		p.advance()
		ref.AssetPath = t.Text
		t, err = p.peek()
		if err != nil {
			return ref, err
		}
	}
	if t.Kind == TokPath {
		pv, err := p.parseOnePath()
		if err != nil {
			return ref, err
		}
		ref.PrimPath = pv
	}
	return ref, nil
}

// parseStringOrTokenList reads a `[a, b, c]` bracketed list of
// string/token literals, used for variantSets/apiSchemas/subLayers.
func (p *Parser) parseStringOrTokenList() ([]string, error) {
	if _, err := p.expect(TokLBracket); err != nil {
		return nil, err
	}
	var out []string
	for {
		t, err := p.peek()
		if err != nil {
			return nil, err
		}
		if t.Kind == TokRBracket {
			p.advance()
			break
		}
		if t.Kind != TokString && t.Kind != TokIdent {
			return nil, p.errorAt("expected string/token in list, got %s", t.Kind)
		}
		p.advance()
		out = append(out, t.Text)
		if done, err := p.consumeCommaOrEnd(); err != nil {
			return nil, err
		} else if done {
			break
		}
	}
	return out, nil
}

// parseVariantsDict reads a `{ "setName" = "variantName"; ... }` map, used
// for the `variants` prim-meta key.
func (p *Parser) parseVariantsDict() (map[string]string, error) {
	if _, err := p.expect(TokLBrace); err != nil {
		return nil, err
	}
	out := map[string]string{}
	for {
		t, err := p.peek()
		if err != nil {
			return nil, err
		}
		if t.Kind == TokRBrace {
			p.advance()
			break
		}
		kt, err := p.expect(TokString)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(TokEquals); err != nil {
			return nil, err
		}
		vt, err := p.expect(TokString)
		if err != nil {
			return nil, err
		}
		out[kt.Text] = vt.Text
		if nt, err := p.peek(); err != nil {
			return nil, err
		} else if nt.Kind == TokSemicolon {
			p.advance()
		}
	}
	return out, nil
}

// inferValue guesses a bare literal's Value shape when no explicit type
// name governs it (unrecognized top-level metadata keys, folded into a
// residual dictionary per §4.F).
func (p *Parser) inferValue() (value.Value, error) {
	t, err := p.peek()
	if err != nil {
		return value.Value{}, err
	}
	switch t.Kind {
	case TokString:
		p.advance()
		return value.Str(t.Text), nil
	case TokNumber, TokMinus:
		n, err := p.parseSignedNumberToken()
		if err != nil {
			return value.Value{}, err
		}
		if strings.ContainsAny(t.Text, ".eEni") {
			return value.Double(n), nil
		}
		return value.Int64(int64(n)), nil
	case TokIdent:
		p.advance()
		if t.Text == "None" {
			return value.ValueBlock(), nil
		}
		if t.Text == "true" {
			return value.Bool(true), nil
		}
		if t.Text == "false" {
			return value.Bool(false), nil
		}
		return value.TokenVal(value.NewToken(t.Text)), nil
	case TokPath:
		pv, err := p.parseOnePath()
		if err != nil {
			return value.Value{}, err
		}
		return value.PathVector([]value.Path{pv}), nil
	case TokLBrace:
		d, err := p.parseDictLiteral()
		return value.DictionaryVal(d), err
	case TokLBracket:
		p.advance()
		var strs []string
		for {
			et, err := p.peek()
			if err != nil {
				return value.Value{}, err
			}
			if et.Kind == TokRBracket {
				p.advance()
				break
			}
			p.advance()
			strs = append(strs, et.Text)
			if done, err := p.consumeCommaOrEnd(); err != nil {
				return value.Value{}, err
			} else if done {
				break
			}
		}
		return value.StrArray(strs), nil
	default:
		return value.Value{}, p.errorAt("cannot infer value shape from %s", t.Kind)
	}
}
