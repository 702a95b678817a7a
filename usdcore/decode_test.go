package usdcore

import (
	"errors"
	"testing"

	"github.com/sacereda/tinyusdz/prim"
	"github.com/sacereda/tinyusdz/value"
)

func TestDecode_UnrecognizedInput(t *testing.T) {
	_, err := Decode([]byte("not a usd file at all"))
	if !errors.Is(err, value.ErrMalformedHeader) {
		t.Fatalf("err = %v, want ErrMalformedHeader", err)
	}
}

func TestDecode_AsciiEndToEnd(t *testing.T) {
	src := `#usda 1.0
def Sphere "Ball"
{
    double radius = 3.0
    uniform token[] xformOpOrder = ["xformOp:translate"]
    double3 xformOp:translate = (1, 2, 3)
}
`
	res, err := Decode([]byte(src))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !res.Diagnostics.OK() {
		t.Fatalf("Diagnostics: %v", res.Diagnostics.Errors)
	}
	if len(res.Prims) != 1 {
		t.Fatalf("Prims = %d, want 1", len(res.Prims))
	}
	ball, ok := res.Prims[0].(*prim.GeomSphere)
	if !ok {
		t.Fatalf("Prims[0] = %T, want *prim.GeomSphere", res.Prims[0])
	}
	v, ok := ball.Radius.Value()
	if !ok {
		t.Fatal("Radius.Value() not ok")
	}
	f, err := v.AsFloat()
	if err != nil || f != 3.0 {
		t.Errorf("Radius = %v (%v), want 3.0", f, err)
	}
	if len(ball.AsBase().XformOps) != 1 {
		t.Fatalf("XformOps = %d, want 1", len(ball.AsBase().XformOps))
	}
	if ball.AsBase().XformOps[0].Kind != value.XformOpTranslate {
		t.Errorf("XformOps[0].Kind = %v, want Translate", ball.AsBase().XformOps[0].Kind)
	}
}

func TestDecode_CrateBadMagicFallsThroughToUnrecognized(t *testing.T) {
	_, err := Decode([]byte{0, 1, 2, 3})
	if !errors.Is(err, value.ErrMalformedHeader) {
		t.Fatalf("err = %v, want ErrMalformedHeader", err)
	}
}
