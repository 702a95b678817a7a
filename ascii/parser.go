package ascii

import (
	"fmt"
	"regexp"

	"github.com/sacereda/tinyusdz/internal/limits"
	"github.com/sacereda/tinyusdz/value"
)

// Parser implements §4.F's recursive-descent grammar over a lexer. It
// carries a push/pop diagnostic stack, grounded on original_source/
// ascii-parser.hh's PushError/PopError: speculative productions record a
// mark() before attempting a lookahead-heavy alternative and roll back to
// it (discarding both lexer progress and any diagnostics pushed in the
// meantime) if the alternative doesn't apply.
type Parser struct {
	lex       *lexer
	tok       Token
	buffered  bool
	errStack  []value.Diagnostic
	warnStack []value.Diagnostic
	version   string
	depth     int
	lim       limits.Limits
	acct      *limits.Accountant
}

// maxNestingDepth bounds PrimTree/dictionary-literal recursion, mirroring
// valuerep.maxRecursionDepth's guard against adversarially deep input
// exhausting the Go call stack.
const maxNestingDepth = 64

func (p *Parser) enterNesting() error {
	p.depth++
	if p.depth > maxNestingDepth {
		return fmt.Errorf("ascii: nesting depth %d exceeds %d: %w", p.depth, maxNestingDepth, value.ErrLimitExceeded)
	}
	return nil
}

func (p *Parser) exitNesting() { p.depth-- }

// NewParser constructs a Parser over the given ASCII source bytes, using
// default §5 resource caps. Use NewParserWithLimits to override them.
func NewParser(src []byte) *Parser {
	return NewParserWithLimits(src, limits.Default())
}

// NewParserWithLimits constructs a Parser enforcing the given §5 caps,
// mirroring crate.Decode(buf, lim)'s signature. Scalar token/string
// values are checked against MaxTokenLength/MaxStringLength as they're
// parsed, and the source buffer itself is charged against
// MaxMemoryBudget through the same Accountant crate's section readers
// use.
func NewParserWithLimits(src []byte, lim limits.Limits) *Parser {
	acct := limits.NewAccountant(lim.MaxMemoryBudget)
	return &Parser{lex: newLexer(src), lim: lim, acct: acct}
}

func (p *Parser) peek() (Token, error) {
	if !p.buffered {
		t, err := p.lex.next()
		if err != nil {
			return Token{}, err
		}
		p.tok = t
		p.buffered = true
	}
	return p.tok, nil
}

func (p *Parser) advance() (Token, error) {
	t, err := p.peek()
	if err != nil {
		return Token{}, err
	}
	p.buffered = false
	return t, nil
}

func (p *Parser) expect(k TokenKind) (Token, error) {
	t, err := p.advance()
	if err != nil {
		return Token{}, err
	}
	if t.Kind != k {
		return Token{}, p.errorf(t.Pos, "expected %s, got %s %q", k, t.Kind, t.Text)
	}
	return t, nil
}

func (p *Parser) errorf(pos value.Position, format string, args ...any) error {
	return fmt.Errorf("ascii: %s: %w", pos, fmt.Errorf(format, args...))
}

func (p *Parser) pushError(diag value.Diagnostic)   { p.errStack = append(p.errStack, diag) }
func (p *Parser) pushWarning(diag value.Diagnostic) { p.warnStack = append(p.warnStack, diag) }

type checkpoint struct {
	lex             lexState
	buffered        bool
	tok             Token
	errLen, warnLen int
}

func (p *Parser) mark() checkpoint {
	return checkpoint{lex: p.lex.snapshot(), buffered: p.buffered, tok: p.tok,
		errLen: len(p.errStack), warnLen: len(p.warnStack)}
}

// rollback restores lexer position and withdraws any diagnostics pushed
// since mark(), per §4.F's speculative-parse requirement.
func (p *Parser) rollback(cp checkpoint) {
	p.lex.restore(cp.lex)
	p.buffered = cp.buffered
	p.tok = cp.tok
	p.errStack = p.errStack[:cp.errLen]
	p.warnStack = p.warnStack[:cp.warnLen]
}

// File is the top-level parse result: stage metadata plus the root prim
// tree (a synthetic pseudo-root holding the top-level PrimTree*, matching
// /crate's Result.Root shape so /prim can treat either decoder's output
// uniformly).
type File struct {
	Version string
	Meta    StageMeta
	Root    *value.Prim
}

// StageMeta holds the recognized §4.F stage-meta keys plus a residual map
// for anything unrecognized.
type StageMeta struct {
	DefaultPrim        string
	UpAxis             string
	MetersPerUnit      *float64
	TimeCodesPerSecond *float64
	StartTimeCode      *float64
	EndTimeCode        *float64
	FramesPerSecond    *float64
	Doc                string
	CustomLayerData    value.Dictionary
	SubLayers          []string
	Residual           value.Dictionary
}

var magicRe = regexp.MustCompile(`^#usda\s+(\d+(?:\.\d+)?)\s*`)

// ParseFile implements §4.F's `File := Magic StageMetas? PrimTree*`
// top-level production.
func (p *Parser) ParseFile() (*File, *value.Diagnostics, error) {
	if p.acct != nil {
		if err := p.acct.Charge(int64(len(p.lex.src))); err != nil {
			return nil, nil, err
		}
	}
	ver, rest, err := readMagic(p.lex.src)
	if err != nil {
		return nil, nil, err
	}
	p.version = ver
	p.lex = newLexer(rest)

	f := &File{Version: ver, Root: value.NewPrim(value.SpecifierDef, "", "", value.RootPath())}

	if t, err := p.peek(); err != nil {
		return nil, nil, err
	} else if t.Kind == TokLParen {
		meta, err := p.parseStageMetas()
		if err != nil {
			return nil, nil, err
		}
		f.Meta = meta
	}

	for {
		t, err := p.peek()
		if err != nil {
			return nil, nil, err
		}
		if t.Kind == TokEOF {
			break
		}
		child, err := p.parsePrimTree(f.Root.Path)
		if err != nil {
			p.pushError(value.Diagnostic{Err: err, Pos: t.Pos, Note: "top-level PrimTree"})
			if !p.resyncToTopLevel() {
				break
			}
			continue
		}
		f.Root.Children = append(f.Root.Children, child)
	}

	diags := &value.Diagnostics{Errors: p.errStack, Warnings: p.warnStack}
	return f, diags, nil
}

// resyncToTopLevel skips raw bytes, tracking brace/paren/bracket nesting
// depth, until it reaches a top-level def/over/class keyword or EOF, so
// one malformed PrimTree doesn't abort the whole file's diagnostics.
// Reports whether it found a recognizable resumption point (false at
// EOF). This scans the lexer's raw byte stream directly rather than
// through peek()/advance(): the whole point of resync is to step over
// content the lexer itself can't tokenize (stray punctuation, a
// truncated literal), so it must not depend on lexing succeeding.
func (p *Parser) resyncToTopLevel() bool {
	p.buffered = false
	l := p.lex
	depth := 0
	for !l.atEOF() {
		b := l.peekByte()
		switch b {
		case '{', '(', '[':
			depth++
			l.advance()
			continue
		case '}', ')', ']':
			if depth > 0 {
				depth--
			}
			l.advance()
			continue
		}
		if depth == 0 && isIdentStart(b) {
			save := l.snapshot()
			for !l.atEOF() && isIdentCont(l.peekByte()) {
				l.advance()
			}
			word := string(l.src[save.pos:l.pos])
			if _, isSpec := specifierKeywords[word]; isSpec {
				l.restore(save)
				return true
			}
			continue
		}
		l.advance()
	}
	return false
}

// readMagic validates and strips the `#usda <float>` header line, per
// §4.F. It is read directly off the raw bytes (not through the general
// lexer, since '#' elsewhere means a line comment).
func readMagic(src []byte) (string, []byte, error) {
	nl := indexByte(src, '\n')
	line := src
	rest := src[len(src):]
	if nl >= 0 {
		line = src[:nl]
		rest = src[nl+1:]
	}
	m := magicRe.FindSubmatch(line)
	if m == nil {
		return "", nil, fmt.Errorf("%w: missing '#usda <version>' magic header", value.ErrMalformedHeader)
	}
	return string(m[1]), rest, nil
}

func indexByte(b []byte, c byte) int {
	for i, x := range b {
		if x == c {
			return i
		}
	}
	return -1
}
