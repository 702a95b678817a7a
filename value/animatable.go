package value

import "fmt"

// AnimKind discriminates which form an Animatable currently holds.
type AnimKind uint8

const (
	AnimScalar AnimKind = iota
	AnimTimeSamples
	AnimConnection
)

// Animatable is the union of scalar, time-samples and connection forms
// described in §3/GLOSSARY. §3's invariant forbids mixing a connection
// and a value in the same slot; the zero value is AnimScalar holding the
// zero T.
type Animatable[T any] struct {
	kind    AnimKind
	scalar  T
	blocked bool
	samples []AnimSample[T]
	conn    []Path
}

// AnimSample is a single time-sampled entry for Animatable[T].
type AnimSample[T any] struct {
	Time    float64
	Value   T
	Blocked bool
}

// FromScalar builds a scalar Animatable.
func FromScalar[T any](v T) Animatable[T] {
	return Animatable[T]{kind: AnimScalar, scalar: v}
}

// Blocked builds a scalar Animatable in the explicitly-blocked state
// (ASCII `= None`, per §8 scenario 3).
func Blocked[T any]() Animatable[T] {
	return Animatable[T]{kind: AnimScalar, blocked: true}
}

// FromTimeSamples builds a time-sampled Animatable. Samples must already
// be in non-decreasing time order; callers sort before constructing.
func FromTimeSamples[T any](samples []AnimSample[T]) Animatable[T] {
	return Animatable[T]{kind: AnimTimeSamples, samples: samples}
}

// FromConnection builds a connection Animatable targeting one or more
// paths.
func FromConnection[T any](targets []Path) Animatable[T] {
	return Animatable[T]{kind: AnimConnection, conn: targets}
}

// Kind reports which form is held.
func (a Animatable[T]) Kind() AnimKind { return a.kind }

// IsConnection reports whether a is a connection.
func (a Animatable[T]) IsConnection() bool { return a.kind == AnimConnection }

// IsTimeSamples reports whether a holds time samples.
func (a Animatable[T]) IsTimeSamples() bool { return a.kind == AnimTimeSamples }

// IsBlocked reports whether a is a scalar explicitly set to "no value".
func (a Animatable[T]) IsBlocked() bool { return a.kind == AnimScalar && a.blocked }

// Scalar returns the scalar value, erroring if a is not in scalar form.
func (a Animatable[T]) Scalar() (T, error) {
	var zero T
	if a.kind != AnimScalar {
		return zero, fmt.Errorf("value: not a scalar animatable")
	}
	if a.blocked {
		return zero, fmt.Errorf("value: scalar is blocked")
	}
	return a.scalar, nil
}

// TimeSampleValues returns the raw per-sample entries.
func (a Animatable[T]) TimeSampleValues() ([]AnimSample[T], error) {
	if a.kind != AnimTimeSamples {
		return nil, fmt.Errorf("value: not a time-sampled animatable")
	}
	return a.samples, nil
}

// ConnectionTargets returns the connection's target paths.
func (a Animatable[T]) ConnectionTargets() ([]Path, error) {
	if a.kind != AnimConnection {
		return nil, fmt.Errorf("value: not a connection animatable")
	}
	return a.conn, nil
}

// Sample evaluates a at time t using held interpolation: the value at the
// greatest sample time <= t, or the first sample when t precedes every
// sample. ok is false when the chosen sample is blocked, the table is
// empty, a is a blocked scalar, or a is a connection. Linear interpolation is left to callers that
// know T's numeric semantics (see TimeSamples.Sample for the Value case).
func (a Animatable[T]) Sample(t float64) (T, bool) {
	var zero T
	switch a.kind {
	case AnimScalar:
		if a.blocked {
			return zero, false
		}
		return a.scalar, true
	case AnimTimeSamples:
		if len(a.samples) == 0 {
			return zero, false
		}
		best := -1
		for i, s := range a.samples {
			if s.Time <= t {
				best = i
			} else {
				break
			}
		}
		if best < 0 {
			best = 0
		}
		if a.samples[best].Blocked {
			return zero, false
		}
		return a.samples[best].Value, true
	default:
		return zero, false
	}
}
