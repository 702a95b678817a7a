package value

import "sort"

// TimeSample pairs a time coordinate with either a Value or the "blocked"
// sentinel (no value authored at this time), per §3.
type TimeSample struct {
	Time    float64
	Value   Value
	Blocked bool
}

// TimeSamples is a sorted (time -> value|blocked) table, per the GLOSSARY.
// §3's invariant requires Times to be non-decreasing; duplicate times are
// legal and "latest write wins" when flattened (§9 Open Question (a), the
// same rule Dictionary follows).
type TimeSamples struct {
	Samples []TimeSample
}

// Times returns the (possibly duplicated) sample times in table order.
func (ts *TimeSamples) Times() []float64 {
	out := make([]float64, len(ts.Samples))
	for i, s := range ts.Samples {
		out[i] = s.Time
	}
	return out
}

// IsSorted reports whether Samples is non-decreasing by Time.
func (ts *TimeSamples) IsSorted() bool {
	return sort.SliceIsSorted(ts.Samples, func(i, j int) bool {
		return ts.Samples[i].Time < ts.Samples[j].Time
	})
}

// Flatten collapses duplicate times, keeping the last-written sample for
// each distinct time while preserving time order.
func (ts *TimeSamples) Flatten() []TimeSample {
	if len(ts.Samples) == 0 {
		return nil
	}
	out := make([]TimeSample, 0, len(ts.Samples))
	for _, s := range ts.Samples {
		if n := len(out); n > 0 && out[n-1].Time == s.Time {
			out[n-1] = s
			continue
		}
		out = append(out, s)
	}
	return out
}

// Interpolation selects how Sample resolves times that fall between two
// authored samples.
type Interpolation uint8

const (
	InterpolationHeld Interpolation = iota
	InterpolationLinear
)

// Sample evaluates the table at time t under the given interpolation, per
// §8's testable property: held interpolation returns the value at the
// greatest sample time <= t; linear interpolation lerps between the
// bracketing samples for numeric values. ok is false if the table is
// empty or the governing sample (the greatest at or before t, or the
// first when t precedes every sample) is blocked.
func (ts *TimeSamples) Sample(t float64, interp Interpolation) (Value, bool) {
	flat := ts.Flatten()
	if len(flat) == 0 {
		return Value{}, false
	}

	idx := sort.Search(len(flat), func(i int) bool { return flat[i].Time > t })
	// flat[idx-1] is the greatest sample with Time <= t (if any).
	if idx == 0 {
		// t precedes every sample: hold the first sample backward.
		if flat[0].Blocked {
			return Value{}, false
		}
		return flat[0].Value, true
	}

	lo := flat[idx-1]
	if interp == InterpolationHeld || idx == len(flat) {
		if lo.Blocked {
			return Value{}, false
		}
		return lo.Value, true
	}

	hi := flat[idx]
	if lo.Blocked || hi.Blocked {
		if lo.Blocked {
			return Value{}, false
		}
		return lo.Value, true
	}
	loN, loOK := lo.Value.Number()
	hiN, hiOK := hi.Value.Number()
	if !loOK || !hiOK || hi.Time == lo.Time {
		return lo.Value, true
	}
	frac := (t - lo.Time) / (hi.Time - lo.Time)
	return Double(loN + (hiN-loN)*frac), true
}

// Number returns v as a float64 if it holds a numeric scalar kind,
// supporting the linear-interpolation Sample path above.
func (v Value) Number() (float64, bool) {
	switch v.kind {
	case KindHalf, KindFloat, KindDouble:
		if v.arr {
			return 0, false
		}
		return v.floatVal, true
	case KindTimeCode:
		return v.timeCode, true
	case KindInt:
		return float64(v.intVal), !v.arr
	case KindInt64:
		return float64(v.intVal), !v.arr
	case KindUInt:
		return float64(v.uintVal), !v.arr
	case KindUInt64:
		return float64(v.uintVal), !v.arr
	default:
		return 0, false
	}
}

// DefaultSample returns the value TimeCode::Default resolves to: the
// first sample's value, per §8.
func (ts *TimeSamples) DefaultSample() (Value, bool) {
	if len(ts.Samples) == 0 {
		return Value{}, false
	}
	first := ts.Samples[0]
	if first.Blocked {
		return Value{}, false
	}
	return first.Value, true
}
