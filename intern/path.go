package intern

import (
	"fmt"
	"sync"

	"github.com/sacereda/tinyusdz/value"
)

// PathPool is the index-addressed path store described in §4.B. Paths
// are decoded once, by the Crate path-jump reconstruction (§4.E) or by
// the ASCII parser as it encounters path literals, then referenced by
// index everywhere else — "paths without pointers" per §9: node
// relationships are integer indices into this pool, never pointers, so
// cycles are impossible by construction.
type PathPool struct {
	mu    sync.RWMutex
	paths []value.Path
}

// NewPathPool returns an empty pool.
func NewPathPool() *PathPool {
	return &PathPool{}
}

// Add appends a path and returns its stable index.
func (p *PathPool) Add(path value.Path) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	idx := len(p.paths)
	p.paths = append(p.paths, path)
	return idx
}

// Set assigns the path at idx, growing the pool with zero Paths if
// needed. The Crate path-jump reconstruction (§4.E) builds nodes in
// declared stream order but a node's children may be materialized
// before its own slot is finalized, so the pool supports direct indexed
// writes as well as Add.
func (p *PathPool) Set(idx int, path value.Path) error {
	if idx < 0 {
		return fmt.Errorf("intern: negative path index %d", idx)
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	for len(p.paths) <= idx {
		p.paths = append(p.paths, value.Path{})
	}
	p.paths[idx] = path
	return nil
}

// Get resolves an index to its Path, bounds-checked.
func (p *PathPool) Get(idx int) (value.Path, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if idx < 0 || idx >= len(p.paths) {
		return value.Path{}, fmt.Errorf("intern: path index %d out of bounds (len=%d)", idx, len(p.paths))
	}
	return p.paths[idx], nil
}

// Len returns the number of paths in the pool.
func (p *PathPool) Len() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.paths)
}

// All returns a snapshot of every path, in index order.
func (p *PathPool) All() []value.Path {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make([]value.Path, len(p.paths))
	copy(out, p.paths)
	return out
}
