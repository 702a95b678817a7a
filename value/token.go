package value

// Token is an interned immutable short string, per §3/GLOSSARY. The Token
// API exposes only string equality and hash, never pointer identity — the
// same discipline the teacher's Pool/PoolRef types follow for its
// deduplicated string pools (see intern.TokenTable, which manufactures Tokens).
type Token struct {
	s string
}

// NewToken wraps a string as a Token. Intern pools use this as their
// single construction point so every other package treats Token as an
// opaque, comparable value.
func NewToken(s string) Token { return Token{s: s} }

// String returns the token text.
func (t Token) String() string { return t.s }

// Empty reports whether the token is the empty string.
func (t Token) Empty() bool { return t.s == "" }
