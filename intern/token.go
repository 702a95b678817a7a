// Package intern implements component B: interned, index-addressed token
// and path storage. Tokens are stored once; repeated reads of the same
// index return the same logical value. Paths are decoded once by the
// Crate path-jump algorithm (§4.E) and then referenced by index
// elsewhere.
//
// The registry's concurrency shape — a map guarded by a sync.RWMutex,
// safe under concurrent readers — is grounded on glyph.PoolRegistry
// (glyph/pool.go), which this module's §5 "Token database" requirement
// describes almost verbatim: "readers from multiple decodes may
// concurrently look up and insert; no decode-scoped invalidation".
package intern

import (
	"fmt"
	"sync"

	"github.com/sacereda/tinyusdz/value"
)

// TokenTable is a per-decode-session, index-addressed set of interned
// tokens. Each decode owns its own table (§9: "must not be required" to
// be process-wide), but the table itself is safe for concurrent readers
// via the embedded mutex, satisfying §5's token-database requirement
// without forcing global state on every caller.
type TokenTable struct {
	mu     sync.RWMutex
	tokens []value.Token
	byText map[string]int
}

// NewTokenTable returns an empty table.
func NewTokenTable() *TokenTable {
	return &TokenTable{byText: make(map[string]int)}
}

// Intern adds s if not already present and returns its stable index.
func (t *TokenTable) Intern(s string) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	if idx, ok := t.byText[s]; ok {
		return idx
	}
	idx := len(t.tokens)
	t.tokens = append(t.tokens, value.NewToken(s))
	t.byText[s] = idx
	return idx
}

// Len returns the number of interned tokens.
func (t *TokenTable) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.tokens)
}

// Get resolves an index to its Token, bounds-checked per §3's invariant
// that every pool index is checked against the pool it resolves into.
func (t *TokenTable) Get(idx int) (value.Token, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if idx < 0 || idx >= len(t.tokens) {
		return value.Token{}, fmt.Errorf("intern: token index %d out of bounds (len=%d)", idx, len(t.tokens))
	}
	return t.tokens[idx], nil
}

// All returns a snapshot of every interned token, in index order.
func (t *TokenTable) All() []value.Token {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]value.Token, len(t.tokens))
	copy(out, t.tokens)
	return out
}
