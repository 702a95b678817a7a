package ascii

import (
	"github.com/sacereda/tinyusdz/internal/limits"
	"github.com/sacereda/tinyusdz/value"
)

// Result is everything an ASCII decode produces, shaped to match
// crate.Result so /prim can consume either decoder's output uniformly:
// a generic prim tree plus the accumulated diagnostics. There is no
// token/path pool to keep alive here (§4.F's grammar has no interning
// section), so Result carries only what ASCII actually produces.
type Result struct {
	Root        *value.Prim
	Version     string
	Meta        StageMeta
	Diagnostics *value.Diagnostics
}

// Decode implements §4.F end to end against the §5 default resource
// caps: lex, parse, and build the generic prim tree, mirroring
// crate.Decode's role for the binary format.
func Decode(src []byte) (*Result, error) {
	return DecodeWithLimits(src, limits.Default())
}

// DecodeWithLimits is Decode with an explicit §5 cap table, mirroring
// crate.Decode(buf, lim)'s signature.
func DecodeWithLimits(src []byte, lim limits.Limits) (*Result, error) {
	p := NewParserWithLimits(src, lim)
	f, diags, err := p.ParseFile()
	if err != nil {
		return nil, err
	}
	return &Result{Root: f.Root, Version: f.Version, Meta: f.Meta, Diagnostics: diags}, nil
}
