package value

import (
	"errors"
	"fmt"
)

// The §7 error kinds, as sentinel errors. Every layer wraps one of these
// with %w so callers can errors.Is/errors.As across package boundaries,
// the same discipline glyph/pool.go uses for ErrPoolNotFound/ErrPoolIndex.
var (
	ErrIO                  = errors.New("usd: io error")
	ErrMalformedHeader     = errors.New("usd: malformed header")
	ErrUnknownSection      = errors.New("usd: unknown section")
	ErrTruncatedSection    = errors.New("usd: truncated section")
	ErrLimitExceeded       = errors.New("usd: limit exceeded")
	ErrMemoryBudgetExceeded = errors.New("usd: memory budget exceeded")
	ErrUnknownTypeID       = errors.New("usd: unknown type id")
	ErrTypeMismatch        = errors.New("usd: type mismatch")
	ErrVariabilityMismatch = errors.New("usd: variability mismatch")
	ErrConnectionNotAllowed = errors.New("usd: connection not allowed")
	ErrInvalidConnection   = errors.New("usd: invalid connection")
	ErrUnknownEnum         = errors.New("usd: unknown enum value")
	ErrUnresolvedReference = errors.New("usd: unresolved reference")
	ErrInternal            = errors.New("usd: internal error")
)

// Position is a source location: row/column for ASCII text, or a byte
// offset for Crate binary data. Diagnostics carry this so error stacks
// (§4.F, §7) can report exact locations.
type Position struct {
	Line   int // 1-based; 0 if not applicable (binary decode)
	Column int // 1-based; 0 if not applicable
	Offset int64
}

func (p Position) String() string {
	if p.Line > 0 {
		return fmt.Sprintf("%d:%d", p.Line, p.Column)
	}
	return fmt.Sprintf("byte %d", p.Offset)
}

// Diagnostic is one entry in a Diagnostics result: a wrapped error plus
// the context it occurred in.
type Diagnostic struct {
	Err  error
	Pos  Position
	Path Path   // prim/property path the diagnostic concerns, if any
	Note string // free-form context ("field radius", etc.)
}

func (d Diagnostic) Error() string {
	if d.Note != "" {
		return fmt.Sprintf("%s at %s (%s): %v", d.Path, d.Pos, d.Note, d.Err)
	}
	return fmt.Sprintf("%s at %s: %v", d.Path, d.Pos, d.Err)
}

func (d Diagnostic) Unwrap() error { return d.Err }

// Diagnostics is the user-visible result object from §7: ok plus
// concatenated warnings and errors. No exceptions, no process
// termination — every decode step returns one of these (or nothing,
// with the top-level Diagnostics aggregating across steps).
type Diagnostics struct {
	Errors   []Diagnostic
	Warnings []Diagnostic
}

// OK reports whether no hard errors were recorded.
func (d *Diagnostics) OK() bool { return len(d.Errors) == 0 }

// AddError records a hard error.
func (d *Diagnostics) AddError(diag Diagnostic) { d.Errors = append(d.Errors, diag) }

// AddWarning records a soft warning (e.g. an unrecognized-but-authored
// property, per §4.G "Residual").
func (d *Diagnostics) AddWarning(diag Diagnostic) { d.Warnings = append(d.Warnings, diag) }

// Merge appends another Diagnostics' entries onto d.
func (d *Diagnostics) Merge(other *Diagnostics) {
	if other == nil {
		return
	}
	d.Errors = append(d.Errors, other.Errors...)
	d.Warnings = append(d.Warnings, other.Warnings...)
}
