package prim

import (
	"testing"

	"github.com/sacereda/tinyusdz/value"
)

func TestSlot_AnimatableScalar(t *testing.T) {
	s := newSlot("double", false)
	s.Kind = SlotScalar
	s.Scalar = value.Double(2.5)

	a := s.Animatable()
	if a.Kind() != value.AnimScalar {
		t.Fatalf("Kind() = %v, want AnimScalar", a.Kind())
	}
	got, err := a.Scalar()
	if err != nil {
		t.Fatalf("Scalar(): %v", err)
	}
	f, err := got.AsFloat()
	if err != nil || f != 2.5 {
		t.Errorf("Scalar().AsFloat() = %v (%v), want 2.5", f, err)
	}
}

func TestSlot_AnimatableBlocked(t *testing.T) {
	s := newSlot("double", false)
	s.Kind = SlotBlocked

	a := s.Animatable()
	if !a.IsBlocked() {
		t.Error("IsBlocked() = false, want true")
	}
}

func TestSlot_AnimatableTimeSamples(t *testing.T) {
	s := newSlot("double", false)
	s.Kind = SlotTimeSamples
	s.Samples = &value.TimeSamples{Samples: []value.TimeSample{
		{Time: 1, Value: value.Double(1)},
		{Time: 2, Value: value.Double(2)},
		{Time: 2, Value: value.Double(20)}, // duplicate time: latest write wins
	}}

	a := s.Animatable()
	if !a.IsTimeSamples() {
		t.Fatalf("IsTimeSamples() = false, want true")
	}
	samples, err := a.TimeSampleValues()
	if err != nil {
		t.Fatalf("TimeSampleValues(): %v", err)
	}
	if len(samples) != 2 {
		t.Fatalf("len(samples) = %d, want 2 (duplicate time flattened)", len(samples))
	}
	f, err := samples[1].Value.AsFloat()
	if err != nil || f != 20 {
		t.Errorf("samples[1].Value = %v (%v), want 20 (latest write wins)", f, err)
	}
}

func TestSlot_AnimatableConnection(t *testing.T) {
	target, _ := value.ParsePath("/World/Light.inputs:color")
	s := newTerminalSlot("color3f")
	s.Kind = SlotConnection
	s.Connection = []value.Path{target}

	a := s.Animatable()
	if !a.IsConnection() {
		t.Fatalf("IsConnection() = false, want true")
	}
	targets, err := a.ConnectionTargets()
	if err != nil {
		t.Fatalf("ConnectionTargets(): %v", err)
	}
	if len(targets) != 1 || targets[0].String() != "/World/Light.inputs:color" {
		t.Errorf("ConnectionTargets() = %v, want [/World/Light.inputs:color]", targets)
	}
}

func TestSlot_AnimatableUnsetWithDefault(t *testing.T) {
	def := value.Bool(true)
	s := newSlotWithDefault("bool", false, def)

	a := s.Animatable()
	got, err := a.Scalar()
	if err != nil {
		t.Fatalf("Scalar(): %v", err)
	}
	b, err := got.AsBool()
	if err != nil || !b {
		t.Errorf("Scalar().AsBool() = %v (%v), want true", b, err)
	}
}

func TestSlot_AnimatableUnsetWithoutDefault(t *testing.T) {
	s := newSlot("double", false)

	a := s.Animatable()
	if a.Kind() != value.AnimScalar || a.IsBlocked() {
		t.Fatalf("zero-value Animatable: Kind()=%v IsBlocked()=%v, want AnimScalar/false", a.Kind(), a.IsBlocked())
	}
}
