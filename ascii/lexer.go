package ascii

import (
	"fmt"
	"strings"

	"github.com/sacereda/tinyusdz/value"
)

// lexer is a cursor-tracked byte scanner over the whole input, per §4.F:
// "line+column tracked through every byte advance so diagnostics reference
// exact locations." Unlike bitio.Reader (fixed-width binary fields), text
// lexing needs rune-at-a-time lookahead and column bookkeeping, so this is
// a small purpose-built scanner rather than a bitio.Reader wrapper.
type lexer struct {
	src  []byte
	pos  int
	line int
	col  int
}

func newLexer(src []byte) *lexer {
	return &lexer{src: src, pos: 0, line: 1, col: 1}
}

type lexState struct {
	pos, line, col int
}

func (l *lexer) snapshot() lexState { return lexState{l.pos, l.line, l.col} }
func (l *lexer) restore(s lexState) { l.pos, l.line, l.col = s.pos, s.line, s.col }

func (l *lexer) pos_() value.Position { return value.Position{Line: l.line, Column: l.col} }

func (l *lexer) atEOF() bool { return l.pos >= len(l.src) }

func (l *lexer) peekByte() byte {
	if l.atEOF() {
		return 0
	}
	return l.src[l.pos]
}

func (l *lexer) peekByteAt(off int) byte {
	if l.pos+off >= len(l.src) {
		return 0
	}
	return l.src[l.pos+off]
}

func (l *lexer) advance() byte {
	b := l.src[l.pos]
	l.pos++
	if b == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	return b
}

// skipTrivia consumes whitespace and `#...\n` line comments, which are
// transparent per §4.F.
func (l *lexer) skipTrivia() {
	for !l.atEOF() {
		b := l.peekByte()
		switch {
		case b == ' ' || b == '\t' || b == '\r' || b == '\n':
			l.advance()
		case b == '#':
			for !l.atEOF() && l.peekByte() != '\n' {
				l.advance()
			}
		default:
			return
		}
	}
}

func isIdentStart(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isIdentCont(b byte) bool {
	return isIdentStart(b) || (b >= '0' && b <= '9') || b == ':'
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

// next lexes the next token, per §4.F's lexical rules.
func (l *lexer) next() (Token, error) {
	l.skipTrivia()
	pos := l.pos_()
	if l.atEOF() {
		return Token{Kind: TokEOF, Pos: pos}, nil
	}

	b := l.peekByte()
	switch {
	case b == '{':
		l.advance()
		return Token{Kind: TokLBrace, Text: "{", Pos: pos}, nil
	case b == '}':
		l.advance()
		return Token{Kind: TokRBrace, Text: "}", Pos: pos}, nil
	case b == '(':
		l.advance()
		return Token{Kind: TokLParen, Text: "(", Pos: pos}, nil
	case b == ')':
		l.advance()
		return Token{Kind: TokRParen, Text: ")", Pos: pos}, nil
	case b == '[':
		l.advance()
		return Token{Kind: TokLBracket, Text: "[", Pos: pos}, nil
	case b == ']':
		l.advance()
		return Token{Kind: TokRBracket, Text: "]", Pos: pos}, nil
	case b == '=':
		l.advance()
		return Token{Kind: TokEquals, Text: "=", Pos: pos}, nil
	case b == ',':
		l.advance()
		return Token{Kind: TokComma, Text: ",", Pos: pos}, nil
	case b == ':':
		l.advance()
		return Token{Kind: TokColon, Text: ":", Pos: pos}, nil
	case b == ';':
		l.advance()
		return Token{Kind: TokSemicolon, Text: ";", Pos: pos}, nil
	case b == '<':
		return l.lexPath(pos)
	case b == '"' || b == '\'':
		return l.lexString(pos)
	case b == '@':
		return l.lexAsset(pos)
	case b == '-' && (isDigit(l.peekByteAt(1)) || l.peekByteAt(1) == '.' || startsKeyword(l.src[l.pos+1:], "inf") || startsKeyword(l.src[l.pos+1:], "nan")):
		return l.lexNumber(pos)
	case b == '-':
		l.advance()
		return Token{Kind: TokMinus, Text: "-", Pos: pos}, nil
	case b == '.' && isDigit(l.peekByteAt(1)):
		return l.lexNumber(pos)
	case b == '.':
		l.advance()
		return Token{Kind: TokDot, Text: ".", Pos: pos}, nil
	case isDigit(b):
		return l.lexNumber(pos)
	case isIdentStart(b):
		return l.lexIdentOrKeywordNumber(pos)
	default:
		l.advance()
		return Token{}, fmt.Errorf("%w: unexpected byte %q at %s", value.ErrMalformedHeader, string(b), pos)
	}
}

func startsKeyword(rest []byte, kw string) bool {
	if len(rest) < len(kw) {
		return false
	}
	return string(rest[:len(kw)]) == kw
}

// lexIdentOrKeywordNumber lexes an identifier, except "inf"/"nan" which are
// numeric literals per §4.F.
func (l *lexer) lexIdentOrKeywordNumber(pos value.Position) (Token, error) {
	start := l.pos
	for !l.atEOF() && isIdentCont(l.peekByte()) {
		l.advance()
	}
	text := string(l.src[start:l.pos])
	if text == "inf" || text == "nan" {
		return Token{Kind: TokNumber, Text: text, Pos: pos}, nil
	}
	return Token{Kind: TokIdent, Text: text, Pos: pos}, nil
}

func (l *lexer) lexNumber(pos value.Position) (Token, error) {
	start := l.pos
	if l.peekByte() == '-' {
		l.advance()
	}
	if startsKeyword(l.src[l.pos:], "inf") {
		l.pos += 3
		l.col += 3
		return Token{Kind: TokNumber, Text: string(l.src[start:l.pos]), Pos: pos}, nil
	}
	for !l.atEOF() && isDigit(l.peekByte()) {
		l.advance()
	}
	if l.peekByte() == '.' {
		l.advance()
		for !l.atEOF() && isDigit(l.peekByte()) {
			l.advance()
		}
	}
	if l.peekByte() == 'e' || l.peekByte() == 'E' {
		save := l.snapshot()
		l.advance()
		if l.peekByte() == '+' || l.peekByte() == '-' {
			l.advance()
		}
		if isDigit(l.peekByte()) {
			for !l.atEOF() && isDigit(l.peekByte()) {
				l.advance()
			}
		} else {
			l.restore(save)
		}
	}
	return Token{Kind: TokNumber, Text: string(l.src[start:l.pos]), Pos: pos}, nil
}

// lexPath scans a `<[^>]*>` path literal, stripping the brackets, per §4.F.
func (l *lexer) lexPath(pos value.Position) (Token, error) {
	l.advance() // '<'
	start := l.pos
	for !l.atEOF() && l.peekByte() != '>' {
		l.advance()
	}
	if l.atEOF() {
		return Token{}, fmt.Errorf("%w: unterminated path literal at %s", value.ErrMalformedHeader, pos)
	}
	text := string(l.src[start:l.pos])
	l.advance() // '>'
	return Token{Kind: TokPath, Text: text, Pos: pos}, nil
}

// lexAsset scans an `@...@` asset-path literal.
func (l *lexer) lexAsset(pos value.Position) (Token, error) {
	l.advance() // '@'
	start := l.pos
	for !l.atEOF() && l.peekByte() != '@' {
		l.advance()
	}
	if l.atEOF() {
		return Token{}, fmt.Errorf("%w: unterminated asset path at %s", value.ErrMalformedHeader, pos)
	}
	text := string(l.src[start:l.pos])
	l.advance() // '@'
	return Token{Kind: TokAsset, Text: text, Pos: pos}, nil
}

// lexString scans a single/double or triple-quoted string literal,
// interpreting `\n \t \r \" \\ \xHH` escapes per §4.F.
func (l *lexer) lexString(pos value.Position) (Token, error) {
	quote := l.advance()
	triple := l.peekByte() == quote && l.peekByteAt(1) == quote
	if triple {
		l.advance()
		l.advance()
	}

	var sb strings.Builder
	for {
		if l.atEOF() {
			return Token{}, fmt.Errorf("%w: unterminated string at %s", value.ErrMalformedHeader, pos)
		}
		b := l.peekByte()
		if b == quote {
			if !triple {
				l.advance()
				break
			}
			if l.peekByteAt(1) == quote && l.peekByteAt(2) == quote {
				l.advance()
				l.advance()
				l.advance()
				break
			}
			sb.WriteByte(l.advance())
			continue
		}
		if b == '\\' {
			l.advance()
			if l.atEOF() {
				return Token{}, fmt.Errorf("%w: unterminated escape at %s", value.ErrMalformedHeader, pos)
			}
			esc := l.advance()
			switch esc {
			case 'n':
				sb.WriteByte('\n')
			case 't':
				sb.WriteByte('\t')
			case 'r':
				sb.WriteByte('\r')
			case '"':
				sb.WriteByte('"')
			case '\'':
				sb.WriteByte('\'')
			case '\\':
				sb.WriteByte('\\')
			case 'x':
				hi, lo := l.advance(), l.advance()
				v, err := hexPairToByte(hi, lo)
				if err != nil {
					return Token{}, fmt.Errorf("%w: bad \\x escape at %s: %v", value.ErrMalformedHeader, pos, err)
				}
				sb.WriteByte(v)
			default:
				sb.WriteByte(esc)
			}
			continue
		}
		sb.WriteByte(l.advance())
	}
	return Token{Kind: TokString, Text: sb.String(), Pos: pos}, nil
}

func hexPairToByte(hi, lo byte) (byte, error) {
	h, err := hexDigit(hi)
	if err != nil {
		return 0, err
	}
	l, err := hexDigit(lo)
	if err != nil {
		return 0, err
	}
	return h<<4 | l, nil
}

func hexDigit(b byte) (byte, error) {
	switch {
	case b >= '0' && b <= '9':
		return b - '0', nil
	case b >= 'a' && b <= 'f':
		return b - 'a' + 10, nil
	case b >= 'A' && b <= 'F':
		return b - 'A' + 10, nil
	default:
		return 0, fmt.Errorf("not a hex digit: %q", string(b))
	}
}
