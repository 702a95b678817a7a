// Package prim implements §4.G: the schema-driven reconstructor that
// turns a generic value.Prim tree (as produced by either /crate or
// /ascii) into a tree of strongly-typed prims.
package prim

import (
	"fmt"

	"github.com/sacereda/tinyusdz/value"
)

// SlotKind mirrors the resolved form of one typed attribute after
// matching, echoing value.AttrForm but narrowed to the four states a
// reconstructed Animatable<T> (or plain T) can end up in.
type SlotKind uint8

const (
	SlotUnset SlotKind = iota
	SlotScalar
	SlotBlocked
	SlotTimeSamples
	SlotConnection
)

// Slot is the reconstructed form of one typed attribute or terminal
// output, shared by all four §4.G pattern matchers
// (TypedAttributeWithFallback<Animatable<T>>, TypedAttributeWithFallback<T>,
// TypedAttribute<Animatable<T>>/TypedAttribute<T>, TypedTerminalAttribute<T>).
// Which matcher applies is fixed once, at schema construction, by the
// Uniform/Terminal/Default/FixedLen fields; resolveProps only ever
// mutates the Kind/Scalar/Samples/Connection runtime state.
type Slot struct {
	TypeName string // expected usda type spelling, e.g. "double", "point3f"
	Array    bool   // attribute is authored as typeName[]
	FixedLen int    // >0: authored array must have exactly this many elements (extent)
	Uniform  bool   // TypedAttributeWithFallback<T> / TypedAttribute<T> (no time-samples, no Animatable)
	Terminal bool   // TypedTerminalAttribute<T>: .connect is not allowed
	Default  *value.Value
	EnumSet  []string // non-nil: authored token must be one of these

	Kind       SlotKind
	Scalar     value.Value
	Samples    *value.TimeSamples
	Connection []value.Path
}

func newSlot(typeName string, array bool) *Slot {
	return &Slot{TypeName: typeName, Array: array}
}

func newSlotWithDefault(typeName string, array bool, def value.Value) *Slot {
	return &Slot{TypeName: typeName, Array: array, Default: &def}
}

func newUniformSlot(typeName string, array bool, def value.Value) *Slot {
	return &Slot{TypeName: typeName, Array: array, Uniform: true, Default: &def}
}

func newEnumSlot(typeName string, def value.Value, enumSet []string) *Slot {
	return &Slot{TypeName: typeName, Uniform: true, Default: &def, EnumSet: enumSet}
}

func newTerminalSlot(typeName string) *Slot {
	return &Slot{TypeName: typeName, Terminal: true}
}

func newExtentSlot() *Slot {
	return &Slot{TypeName: "float3", Array: true, FixedLen: 2}
}

// IsSet reports whether the slot carries an authored value (of any
// form, including explicitly blocked).
func (s *Slot) IsSet() bool { return s.Kind != SlotUnset }

// Value returns the effective scalar: the authored one if the slot is
// in scalar form, otherwise the schema default. ok is false when the
// slot has no single scalar to offer (unset with no default, blocked,
// time-sampled, or connected).
func (s *Slot) Value() (value.Value, bool) {
	switch s.Kind {
	case SlotScalar:
		return s.Scalar, true
	case SlotUnset:
		if s.Default != nil {
			return *s.Default, true
		}
	}
	return value.Value{}, false
}

// Animatable synthesizes §4.G's "convert to Animatable<T>, preserving
// blocked samples" resolution outcome from the slot's resolved state,
// instantiated at T = value.Value since Slot itself is deliberately
// non-generic: every schema field already
// carries its own expected TypeName, so a caller that needs the §4.H
// Animatable<T> view for one property gets it here without every Slot
// in the schema table needing to be a distinct generic instantiation.
func (s *Slot) Animatable() value.Animatable[value.Value] {
	switch s.Kind {
	case SlotConnection:
		return value.FromConnection[value.Value](s.Connection)
	case SlotBlocked:
		return value.Blocked[value.Value]()
	case SlotTimeSamples:
		flat := s.Samples.Flatten()
		samples := make([]value.AnimSample[value.Value], len(flat))
		for i, ts := range flat {
			samples[i] = value.AnimSample[value.Value]{Time: ts.Time, Value: ts.Value, Blocked: ts.Blocked}
		}
		return value.FromTimeSamples(samples)
	case SlotScalar:
		return value.FromScalar(s.Scalar)
	default:
		if s.Default != nil {
			return value.FromScalar(*s.Default)
		}
		return value.Animatable[value.Value]{}
	}
}

// FailureMode is one of §4.G's named matcher outcomes. Success and
// AlreadyProcessed are silent; a property no schema field matches is
// filed into the prim's residual map with a warning (see resolveProps);
// every other value is surfaced to the caller as an error.
type FailureMode uint8

const (
	Success FailureMode = iota
	Unmatched
	AlreadyProcessed
	TypeMismatch
	VariabilityMismatch
	ConnectionNotAllowed
	InvalidConnection
	InternalError
)

func (f FailureMode) String() string {
	switch f {
	case Success:
		return "Success"
	case Unmatched:
		return "Unmatched"
	case AlreadyProcessed:
		return "AlreadyProcessed"
	case TypeMismatch:
		return "TypeMismatch"
	case VariabilityMismatch:
		return "VariabilityMismatch"
	case ConnectionNotAllowed:
		return "ConnectionNotAllowed"
	case InvalidConnection:
		return "InvalidConnection"
	case InternalError:
		return "InternalError"
	default:
		return "Unknown"
	}
}

// matchError formats a failure mode as the path+property-qualified error
// §4.G requires ("all others are raised to the caller with a formatted
// path+property context"), wrapping the matching §7 sentinel so callers
// can errors.Is across package boundaries.
func matchError(path value.Path, propName string, f FailureMode, detail string) error {
	var sentinel error
	switch f {
	case TypeMismatch:
		sentinel = value.ErrTypeMismatch
	case VariabilityMismatch:
		sentinel = value.ErrVariabilityMismatch
	case ConnectionNotAllowed:
		sentinel = value.ErrConnectionNotAllowed
	case InvalidConnection:
		sentinel = value.ErrInvalidConnection
	default:
		sentinel = value.ErrInternal
	}
	if detail != "" {
		return fmt.Errorf("%s: %s.%s: %s: %w", f, path, propName, detail, sentinel)
	}
	return fmt.Errorf("%s: %s.%s: %w", f, path, propName, sentinel)
}
