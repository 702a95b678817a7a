package prim

import (
	"testing"

	"github.com/sacereda/tinyusdz/value"
)

func TestResolveXformOps_ResetMustBeFirst(t *testing.T) {
	_, err := ResolveXformOps(value.RootPath(), []string{"xformOp:translate", "!resetXformStack!"})
	if err == nil {
		t.Fatal("want error when !resetXformStack! is not first, got nil")
	}
}

func TestResolveXformOps_ResetCarriesNoValue(t *testing.T) {
	ops, err := ResolveXformOps(value.RootPath(), []string{"!resetXformStack!"})
	if err != nil {
		t.Fatalf("ResolveXformOps: %v", err)
	}
	if len(ops) != 1 || ops[0].Kind != value.XformOpResetXformStack {
		t.Fatalf("ops = %+v, want a single ResetXformStack", ops)
	}
	if ops[0].PropName != "" {
		t.Errorf("PropName = %q, want empty", ops[0].PropName)
	}
}

func TestResolveXformOps_InvertPrefix(t *testing.T) {
	ops, err := ResolveXformOps(value.RootPath(), []string{"!invert!xformOp:translate"})
	if err != nil {
		t.Fatalf("ResolveXformOps: %v", err)
	}
	if len(ops) != 1 {
		t.Fatalf("ops = %d, want 1", len(ops))
	}
	if !ops[0].Inverted {
		t.Error("Inverted = false, want true")
	}
	if ops[0].Kind != value.XformOpTranslate {
		t.Errorf("Kind = %v, want Translate", ops[0].Kind)
	}
	if ops[0].PropName != "xformOp:translate" {
		t.Errorf("PropName = %q, want xformOp:translate", ops[0].PropName)
	}
}

func TestResolveXformOps_CustomSuffix(t *testing.T) {
	ops, err := ResolveXformOps(value.RootPath(), []string{"xformOp:translate:pivot"})
	if err != nil {
		t.Fatalf("ResolveXformOps: %v", err)
	}
	if ops[0].Suffix != "translate:pivot" {
		t.Errorf("Suffix = %q, want translate:pivot", ops[0].Suffix)
	}
	if ops[0].PropName != "xformOp:translate:pivot" {
		t.Errorf("PropName = %q, want xformOp:translate:pivot", ops[0].PropName)
	}
}

// Regression test for §9 Open Question (c): each op's Kind/Suffix/PropName
// must be derived from its own token, never a shared or reused variable
// left over from a prior iteration (the bug affected rotateY/rotateZ
// specifically).
func TestResolveXformOps_PerOpSuffixIndependence(t *testing.T) {
	ops, err := ResolveXformOps(value.RootPath(), []string{
		"xformOp:rotateY:spin",
		"xformOp:rotateZ",
	})
	if err != nil {
		t.Fatalf("ResolveXformOps: %v", err)
	}
	if len(ops) != 2 {
		t.Fatalf("ops = %d, want 2", len(ops))
	}
	if ops[0].Kind != value.XformOpRotateY || ops[0].Suffix != "rotateY:spin" || ops[0].PropName != "xformOp:rotateY:spin" {
		t.Errorf("ops[0] = %+v, want RotateY/rotateY:spin/xformOp:rotateY:spin", ops[0])
	}
	if ops[1].Kind != value.XformOpRotateZ || ops[1].Suffix != "rotateZ" || ops[1].PropName != "xformOp:rotateZ" {
		t.Errorf("ops[1] = %+v, want RotateZ/rotateZ/xformOp:rotateZ", ops[1])
	}
}

func TestResolveXformOps_UnknownOpName(t *testing.T) {
	_, err := ResolveXformOps(value.RootPath(), []string{"xformOp:bogus"})
	if err == nil {
		t.Fatal("want error for an unrecognized xformOp name, got nil")
	}
}
