package prim

import (
	"errors"
	"testing"

	"github.com/sacereda/tinyusdz/value"
)

func TestResolveAttrSlot_UniformScalarSuccess(t *testing.T) {
	slot := newUniformSlot("bool", false, value.Bool(false))
	attr := value.NewScalarAttribute("bool", value.VariabilityUniform, value.Bool(true))
	if err := resolveAttrSlot(value.RootPath(), "doubleSided", "doubleSided", false, slot, attr); err != nil {
		t.Fatalf("resolveAttrSlot: %v", err)
	}
	if slot.Kind != SlotScalar {
		t.Fatalf("Kind = %v, want SlotScalar", slot.Kind)
	}
	v, _ := slot.Value()
	b, err := v.AsBool()
	if err != nil || !b {
		t.Errorf("Value = %v (%v), want true", b, err)
	}
}

func TestResolveAttrSlot_UniformTimeSamplesIsVariabilityMismatch(t *testing.T) {
	slot := newUniformSlot("bool", false, value.Bool(false))
	ts := &value.TimeSamples{Samples: []value.TimeSample{{Time: 0, Value: value.Bool(true)}}}
	attr := value.NewTimeSampledAttribute("bool", ts)
	err := resolveAttrSlot(value.RootPath(), "doubleSided", "doubleSided", false, slot, attr)
	if !errors.Is(err, value.ErrVariabilityMismatch) {
		t.Errorf("err = %v, want ErrVariabilityMismatch", err)
	}
}

func TestResolveAttrSlot_VaryingTimeSamplesSuccess(t *testing.T) {
	slot := newSlotWithDefault("double", false, value.Double(2.0))
	ts := &value.TimeSamples{Samples: []value.TimeSample{
		{Time: 0, Value: value.Double(1.0)},
		{Time: 1, Value: value.Double(2.0)},
	}}
	attr := value.NewTimeSampledAttribute("double", ts)
	if err := resolveAttrSlot(value.RootPath(), "radius", "radius", false, slot, attr); err != nil {
		t.Fatalf("resolveAttrSlot: %v", err)
	}
	if slot.Kind != SlotTimeSamples || slot.Samples != ts {
		t.Errorf("Kind/Samples = %v/%v, want SlotTimeSamples/%v", slot.Kind, slot.Samples, ts)
	}
}

func TestResolveAttrSlot_ConnectSuccess(t *testing.T) {
	slot := newSlotWithDefault("color3f", false, value.Vec(value.KindVec3f, []float64{0.18, 0.18, 0.18}))
	target, _ := value.ParsePath("/Mat/Tex.outputs:rgb")
	attr := value.NewConnectionAttribute("color3f", []value.Path{target})
	if err := resolveAttrSlot(value.RootPath(), "inputs:diffuseColor.connect", "inputs:diffuseColor", true, slot, attr); err != nil {
		t.Fatalf("resolveAttrSlot: %v", err)
	}
	if slot.Kind != SlotConnection || len(slot.Connection) != 1 {
		t.Fatalf("Kind/Connection = %v/%v", slot.Kind, slot.Connection)
	}
}

func TestResolveAttrSlot_ConnectOnTerminalIsConnectionNotAllowed(t *testing.T) {
	slot := newTerminalSlot("token")
	target, _ := value.ParsePath("/Mat/Foo.result")
	attr := value.NewConnectionAttribute("token", []value.Path{target})
	err := resolveAttrSlot(value.RootPath(), "outputs:surface.connect", "outputs:surface", true, slot, attr)
	if !errors.Is(err, value.ErrConnectionNotAllowed) {
		t.Errorf("err = %v, want ErrConnectionNotAllowed", err)
	}
}

func TestResolveAttrSlot_TypeMismatch(t *testing.T) {
	slot := newSlotWithDefault("double", false, value.Double(2.0))
	attr := value.NewScalarAttribute("int", value.VariabilityVarying, value.Int(1))
	err := resolveAttrSlot(value.RootPath(), "radius", "radius", false, slot, attr)
	if !errors.Is(err, value.ErrTypeMismatch) {
		t.Errorf("err = %v, want ErrTypeMismatch", err)
	}
}

func TestResolveAttrSlot_BlockedSuccess(t *testing.T) {
	slot := newSlotWithDefault("double", false, value.Double(2.0))
	attr := value.NewBlockedAttribute("double", value.VariabilityVarying)
	if err := resolveAttrSlot(value.RootPath(), "radius", "radius", false, slot, attr); err != nil {
		t.Fatalf("resolveAttrSlot: %v", err)
	}
	if slot.Kind != SlotBlocked {
		t.Errorf("Kind = %v, want SlotBlocked", slot.Kind)
	}
	if _, ok := slot.Value(); ok {
		t.Error("Value() ok for a blocked slot, want false")
	}
}

func TestResolveAttrSlot_ExtentWrongLength(t *testing.T) {
	slot := newExtentSlot()
	arr := value.VecArray(value.KindVec3f, [][]float64{{0, 0, 0}})
	attr := value.NewScalarAttribute("float3", value.VariabilityVarying, arr)
	err := resolveAttrSlot(value.RootPath(), "extent", "extent", false, slot, attr)
	if !errors.Is(err, value.ErrTypeMismatch) {
		t.Errorf("err = %v, want ErrTypeMismatch for a 1-element extent", err)
	}
}

func TestResolveAttrSlot_ExtentCorrectLength(t *testing.T) {
	slot := newExtentSlot()
	arr := value.VecArray(value.KindVec3f, [][]float64{{-1, -1, -1}, {1, 1, 1}})
	attr := value.NewScalarAttribute("float3", value.VariabilityVarying, arr)
	if err := resolveAttrSlot(value.RootPath(), "extent", "extent", false, slot, attr); err != nil {
		t.Fatalf("resolveAttrSlot: %v", err)
	}
	if slot.Kind != SlotScalar {
		t.Errorf("Kind = %v, want SlotScalar", slot.Kind)
	}
}

func TestResolveAttrSlot_ExtentUniformIsVariabilityMismatch(t *testing.T) {
	slot := newExtentSlot()
	arr := value.VecArray(value.KindVec3f, [][]float64{{-1, -1, -1}, {1, 1, 1}})
	attr := value.NewScalarAttribute("float3", value.VariabilityUniform, arr)
	err := resolveAttrSlot(value.RootPath(), "extent", "extent", false, slot, attr)
	if !errors.Is(err, value.ErrVariabilityMismatch) {
		t.Errorf("err = %v, want ErrVariabilityMismatch for a uniform-qualified extent", err)
	}
}

func TestResolveAttrSlot_EnumRejectsUnknownToken(t *testing.T) {
	slot := enumSlot("token", "default", purposeEnum)
	attr := value.NewScalarAttribute("token", value.VariabilityUniform, value.TokenVal(value.NewToken("bogus")))
	err := resolveAttrSlot(value.RootPath(), "purpose", "purpose", false, slot, attr)
	if !errors.Is(err, value.ErrTypeMismatch) {
		t.Errorf("err = %v, want ErrTypeMismatch for unrecognized enum value", err)
	}
}

func TestResolveAttrSlot_EnumAcceptsKnownToken(t *testing.T) {
	slot := enumSlot("token", "default", purposeEnum)
	attr := value.NewScalarAttribute("token", value.VariabilityUniform, value.TokenVal(value.NewToken("render")))
	if err := resolveAttrSlot(value.RootPath(), "purpose", "purpose", false, slot, attr); err != nil {
		t.Fatalf("resolveAttrSlot: %v", err)
	}
}

// §9 Open Question (b): pinned and periodic must stay distinct wrap
// values, not be collapsed into a single boolean.
func TestBasisCurvesWrapEnum_PinnedAndPeriodicDistinct(t *testing.T) {
	if !enumContains(basisCurvesWrapEnum, "pinned") || !enumContains(basisCurvesWrapEnum, "periodic") {
		t.Fatalf("basisCurvesWrapEnum = %v, want both pinned and periodic", basisCurvesWrapEnum)
	}
	if enumContains(basisCurvesWrapEnum, "pinned") && "pinned" == "periodic" {
		t.Fatal("pinned and periodic must not be the same string")
	}
}
