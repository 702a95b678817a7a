package crate

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/sacereda/tinyusdz/intern"
	"github.com/sacereda/tinyusdz/value"
	"github.com/sacereda/tinyusdz/valuerep"
)

// NamedValue is one entry of a live field-set, per the GLOSSARY: the
// materialized "[(name, value)]" list for a single spec.
type NamedValue struct {
	Name  string
	Value value.Value
}

// materializeFieldSet chases the flat FIELDSETS run starting at
// startIdx through fields, decoding each field's value-rep, per §4.E's
// "Live field-sets" pass.
func materializeFieldSet(startIdx int, run []int, fields []Field, tokens *intern.TokenTable, dec *valuerep.Decoder) ([]NamedValue, error) {
	out := make([]NamedValue, 0, len(run))
	for _, fieldIdx := range run {
		if fieldIdx < 0 || fieldIdx >= len(fields) {
			return nil, fmt.Errorf("crate: fieldset at %d: field index %d out of range [0,%d): %w",
				startIdx, fieldIdx, len(fields), value.ErrInternal)
		}
		f := fields[fieldIdx]
		name, err := tokens.Get(f.TokenIdx)
		if err != nil {
			return nil, fmt.Errorf("crate: fieldset at %d: field %d name: %w", startIdx, fieldIdx, err)
		}
		val, err := dec.Decode(f.Rep)
		if err != nil {
			return nil, fmt.Errorf("crate: fieldset at %d: field %q: %w", startIdx, name.String(), err)
		}
		out = append(out, NamedValue{Name: name.String(), Value: val})
	}
	return out, nil
}

// liveFieldSets materializes every spec's field-set. Per §5, "within
// SPECS, live-fieldset materialization is commutative and
// parallelizable"; results are written into a pre-sized slice indexed by
// spec position so the merge is deterministic and source-ordered
// regardless of how many workers ran, matching the serial path
// byte-for-byte.
//
// dec's bitio.Reader holds a single unsynchronized cursor, so it cannot
// be shared across the worker goroutines below: each Seek+Read* pair
// would race against every other worker's. Each worker instead clones
// dec once via Decoder.Clone before entering its job loop, giving it an
// independent cursor over the same immutable buffer; tokens and paths
// are already safe for concurrent lookup (sync.RWMutex-guarded), so only
// the cursor needed splitting.
func liveFieldSets(specs []Spec, fieldSetsByStart map[int][]int, fields []Field, tokens *intern.TokenTable, dec *valuerep.Decoder, numThreads int) ([][]NamedValue, error) {
	out := make([][]NamedValue, len(specs))
	errs := make([]error, len(specs))

	workers := resolveWorkerCount(numThreads)
	if workers <= 1 || len(specs) <= 1 {
		for i, s := range specs {
			run := fieldSetsByStart[s.FieldSetIdx]
			lfs, err := materializeFieldSet(s.FieldSetIdx, run, fields, tokens, dec)
			if err != nil {
				return nil, err
			}
			out[i] = lfs
		}
		return out, nil
	}

	var wg sync.WaitGroup
	jobs := make(chan int)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			workerDec := dec.Clone()
			for i := range jobs {
				s := specs[i]
				run := fieldSetsByStart[s.FieldSetIdx]
				lfs, err := materializeFieldSet(s.FieldSetIdx, run, fields, tokens, workerDec)
				if err != nil {
					errs[i] = err
					continue
				}
				out[i] = lfs
			}
		}()
	}
	for i := range specs {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

// resolveWorkerCount interprets §5's NumThreads convention: -1 detects
// hardware concurrency, 0 disables parallel fanout (forcing the serial
// path), and a positive value is used verbatim.
func resolveWorkerCount(numThreads int) int {
	switch {
	case numThreads == 0:
		return 1
	case numThreads < 0:
		n := runtime.GOMAXPROCS(0)
		if n < 1 {
			return 1
		}
		return n
	default:
		return numThreads
	}
}

// find looks up a named entry in a live field-set.
func (lfs liveFieldSetView) find(name string) (value.Value, bool) {
	for _, nv := range lfs {
		if nv.Name == name {
			return nv.Value, true
		}
	}
	return value.Value{}, false
}

type liveFieldSetView []NamedValue
