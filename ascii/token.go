// Package ascii implements component F: a lexer and recursive-descent
// parser for the textual "#usda" scene description format, producing the
// same generic value.Prim tree /crate builds so /prim can reconstruct
// typed prims from either input identically.
package ascii

import "github.com/sacereda/tinyusdz/value"

// TokenKind identifies one lexical token class, per §4.F's lexical rules.
type TokenKind uint8

const (
	TokEOF TokenKind = iota
	TokIdent
	TokString
	TokNumber
	TokPath // <...> path literal, brackets stripped
	TokLBrace
	TokRBrace
	TokLParen
	TokRParen
	TokLBracket
	TokRBracket
	TokEquals
	TokComma
	TokColon
	TokAt // '@' asset-path delimiter (also accepts quoted form)
	TokAsset
	TokDot
	TokMinus
	TokSemicolon
)

// Token is one lexed unit, carrying its raw/decoded text and source
// position for diagnostics (§4.F: "line+column tracked through every byte
// advance").
type Token struct {
	Kind TokenKind
	Text string
	Pos  value.Position
}

func (k TokenKind) String() string {
	switch k {
	case TokEOF:
		return "EOF"
	case TokIdent:
		return "identifier"
	case TokString:
		return "string"
	case TokNumber:
		return "number"
	case TokPath:
		return "path literal"
	case TokLBrace:
		return "'{'"
	case TokRBrace:
		return "'}'"
	case TokLParen:
		return "'('"
	case TokRParen:
		return "')'"
	case TokLBracket:
		return "'['"
	case TokRBracket:
		return "']'"
	case TokEquals:
		return "'='"
	case TokComma:
		return "','"
	case TokColon:
		return "':'"
	case TokAt:
		return "'@'"
	case TokAsset:
		return "asset path"
	case TokDot:
		return "'.'"
	case TokMinus:
		return "'-'"
	case TokSemicolon:
		return "';'"
	default:
		return "unknown"
	}
}
