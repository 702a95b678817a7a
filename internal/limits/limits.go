// Package limits implements §5's resource caps: the configurable ceilings
// every Crate/ASCII section reader enforces against adversarial input,
// plus the running memory accountant that trips MemoryBudgetExceeded.
//
// The field names and defaults are grounded directly on
// original_source/crate-reader.hh's CrateReaderConfig struct; this is a
// straight port of that table into a Go struct with a constructor, the
// same shape glyph.AutoInternOpts/DefaultAutoInternOpts use for the
// teacher's own tunable-limits struct.
package limits

import (
	"fmt"

	"github.com/sacereda/tinyusdz/value"
)

// Limits holds the §5 resource-cap table.
type Limits struct {
	NumThreads int // -1 = detect hardware, 0 = disable parallel fanout

	MaxTOCSections int

	MaxTokens     int
	MaxStrings    int
	MaxFields     int
	MaxFieldSets  int
	MaxSpecifiers int
	MaxPaths      int

	MaxIndices         int
	MaxDictElements    int
	MaxArrayElements   int64
	MaxAssetPathElements int

	MaxTokenLength  int
	MaxStringLength int

	MaxMemoryBudget int64
}

// Default returns the §5 default caps.
func Default() Limits {
	return Limits{
		NumThreads: -1,

		MaxTOCSections: 32,

		MaxTokens:     1048576,
		MaxStrings:    1048576,
		MaxFields:     1048576,
		MaxFieldSets:  1048576,
		MaxSpecifiers: 1048576,
		MaxPaths:      1048576,

		MaxIndices:           16777216,
		MaxDictElements:      256,
		MaxArrayElements:     1073741824,
		MaxAssetPathElements: 512,

		MaxTokenLength:  4096,
		MaxStringLength: 67108864,

		MaxMemoryBudget: 2 << 30, // 2 GiB
	}
}

// Accountant tracks cumulative decoded-payload size against a memory
// budget, incremented by every section reader as it materializes pool
// entries (§5: "every section reader increments an accounting total").
type Accountant struct {
	budget int64
	spent  int64
}

// NewAccountant returns an accountant against the given byte budget.
func NewAccountant(budget int64) *Accountant {
	return &Accountant{budget: budget}
}

// Charge records n additional bytes of decoded payload, failing fast
// with MemoryBudgetExceeded if the running total would exceed the
// budget.
func (a *Accountant) Charge(n int64) error {
	if n < 0 {
		return fmt.Errorf("limits: negative charge %d", n)
	}
	if a.spent+n > a.budget {
		return fmt.Errorf("limits: charge of %d bytes would exceed memory budget %d (spent %d): %w", n, a.budget, a.spent, value.ErrMemoryBudgetExceeded)
	}
	a.spent += n
	return nil
}

// Spent returns the cumulative bytes charged so far.
func (a *Accountant) Spent() int64 { return a.spent }

// CheckCount is a small helper every section reader uses to validate a
// decoded element count against its corresponding cap before allocating.
func CheckCount(name string, n, max int) error {
	if n < 0 {
		return fmt.Errorf("limits: %s: negative count %d", name, n)
	}
	if n > max {
		return fmt.Errorf("limits: %s: count %d exceeds limit %d", name, n, max)
	}
	return nil
}

// CheckCount64 is CheckCount for 64-bit counts (array elements).
func CheckCount64(name string, n, max int64) error {
	if n < 0 {
		return fmt.Errorf("limits: %s: negative count %d", name, n)
	}
	if n > max {
		return fmt.Errorf("limits: %s: count %d exceeds limit %d", name, n, max)
	}
	return nil
}
