package valuerep

import (
	"fmt"

	"github.com/sacereda/tinyusdz/internal/limits"
	"github.com/sacereda/tinyusdz/value"
)

// decodeTimeSamplesAt implements §4.D time-sample decoding: a recursive
// value-rep for the times array (doubles), followed by a packed vector
// of per-sample value-reps, materialized into a TimeSamples container.
// Blocked samples arrive as the sentinel value-rep (§4.D).
func (d *Decoder) decodeTimeSamplesAt(offset int64, depth int) (value.Value, error) {
	if err := d.r.Seek(offset); err != nil {
		return value.Value{}, fmt.Errorf("valuerep: time samples: %w", err)
	}

	timesWord, err := d.r.ReadU64()
	if err != nil {
		return value.Value{}, fmt.Errorf("valuerep: time samples times rep: %w", err)
	}
	timesVal, err := d.decode(Rep(timesWord), depth+1)
	if err != nil {
		return value.Value{}, fmt.Errorf("valuerep: time samples times array: %w", err)
	}
	times, err := timesVal.AsFloatArray()
	if err != nil {
		return value.Value{}, fmt.Errorf("valuerep: time samples times array: %w", err)
	}
	if err := limits.CheckCount64("time samples", int64(len(times)), d.lim.MaxArrayElements); err != nil {
		return value.Value{}, err
	}

	samples := make([]value.TimeSample, len(times))
	for i, t := range times {
		word, err := d.r.ReadU64()
		if err != nil {
			return value.Value{}, fmt.Errorf("valuerep: time sample %d rep: %w", i, err)
		}
		rep := Rep(word)
		if rep.IsValueBlock() {
			samples[i] = value.TimeSample{Time: t, Blocked: true}
			continue
		}
		v, err := d.decode(rep, depth+1)
		if err != nil {
			return value.Value{}, fmt.Errorf("valuerep: time sample %d value: %w", i, err)
		}
		samples[i] = value.TimeSample{Time: t, Value: v}
	}

	ts := &value.TimeSamples{Samples: samples}
	return value.TimeSamplesVal(ts), nil
}
