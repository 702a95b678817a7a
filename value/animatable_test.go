package value

import "testing"

func TestAnimatable_SampleScalar(t *testing.T) {
	a := FromScalar(42)
	got, ok := a.Sample(0)
	if !ok || got != 42 {
		t.Errorf("Sample(0) = %v, %v, want 42, true", got, ok)
	}
}

func TestAnimatable_SampleBlockedScalar(t *testing.T) {
	a := Blocked[int]()
	if _, ok := a.Sample(0); ok {
		t.Error("Sample on a blocked scalar: want ok=false")
	}
	if _, err := a.Scalar(); err == nil {
		t.Error("Scalar on a blocked animatable: want error, got nil")
	}
}

func TestAnimatable_SampleHeldTimeSamples(t *testing.T) {
	a := FromTimeSamples([]AnimSample[int]{
		{Time: 1, Value: 10},
		{Time: 2, Value: 20},
		{Time: 3, Value: 30},
	})
	// §8: held interpolation returns the value at the greatest t' <= t.
	cases := []struct {
		t    float64
		want int
	}{
		{0, 10}, // precedes every sample: hold the first backward
		{1, 10},
		{1.5, 10},
		{2, 20},
		{5, 30},
	}
	for _, c := range cases {
		got, ok := a.Sample(c.t)
		if !ok || got != c.want {
			t.Errorf("Sample(%v) = %v, %v, want %v, true", c.t, got, ok, c.want)
		}
	}
}

func TestAnimatable_SampleTimeSamplesAllBlockedBeforeT(t *testing.T) {
	a := FromTimeSamples([]AnimSample[int]{
		{Time: 1, Blocked: true},
	})
	if _, ok := a.Sample(5); ok {
		t.Error("Sample past a blocked-only table: want ok=false")
	}
}

func TestAnimatable_WrongFormAccessorsError(t *testing.T) {
	a := FromScalar(1)
	if _, err := a.TimeSampleValues(); err == nil {
		t.Error("TimeSampleValues on a scalar: want error, got nil")
	}
	if _, err := a.ConnectionTargets(); err == nil {
		t.Error("ConnectionTargets on a scalar: want error, got nil")
	}

	c := FromConnection[int]([]Path{RootPath()})
	if _, err := c.Scalar(); err == nil {
		t.Error("Scalar on a connection: want error, got nil")
	}
}

func TestTimeSamples_SampleHeld(t *testing.T) {
	ts := &TimeSamples{Samples: []TimeSample{
		{Time: 1, Value: Double(10)},
		{Time: 2, Value: Double(20)},
	}}
	got, ok := ts.Sample(1.5, InterpolationHeld)
	if !ok {
		t.Fatal("Sample: want ok=true")
	}
	f, _ := got.AsFloat()
	if f != 10 {
		t.Errorf("held Sample(1.5) = %v, want 10", f)
	}
}

func TestTimeSamples_SampleLinear(t *testing.T) {
	ts := &TimeSamples{Samples: []TimeSample{
		{Time: 0, Value: Double(0)},
		{Time: 10, Value: Double(100)},
	}}
	got, ok := ts.Sample(2.5, InterpolationLinear)
	if !ok {
		t.Fatal("Sample: want ok=true")
	}
	f, _ := got.AsFloat()
	if f != 25 {
		t.Errorf("linear Sample(2.5) = %v, want 25 (lerp)", f)
	}
}

func TestTimeSamples_SampleLinearStopsAtBlockedLower(t *testing.T) {
	ts := &TimeSamples{Samples: []TimeSample{
		{Time: 0, Blocked: true},
		{Time: 10, Value: Double(100)},
	}}
	if _, ok := ts.Sample(5, InterpolationLinear); ok {
		t.Error("linear Sample with a blocked lower bracket: want ok=false")
	}
}

func TestTimeSamples_SampleEmptyTable(t *testing.T) {
	ts := &TimeSamples{}
	if _, ok := ts.Sample(0, InterpolationHeld); ok {
		t.Error("Sample on an empty table: want ok=false")
	}
}

func TestTimeSamples_SampleDuplicateTimeLatestWriteWins(t *testing.T) {
	ts := &TimeSamples{Samples: []TimeSample{
		{Time: 1, Value: Double(1)},
		{Time: 1, Value: Double(99)},
	}}
	got, ok := ts.Sample(1, InterpolationHeld)
	if !ok {
		t.Fatal("Sample: want ok=true")
	}
	f, _ := got.AsFloat()
	if f != 99 {
		t.Errorf("Sample(1) = %v, want 99 (latest write wins)", f)
	}
}
