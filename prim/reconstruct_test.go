package prim

import (
	"errors"
	"testing"

	"github.com/sacereda/tinyusdz/value"
)

func newRoot() *value.Prim {
	return value.NewPrim(value.SpecifierDef, "", "", value.RootPath())
}

func TestReconstruct_GeomSphereRadiusDefault(t *testing.T) {
	root := newRoot()
	sphere := value.NewPrim(value.SpecifierDef, "Sphere", "S", value.RootPath().AppendChild("S"))
	root.Children = append(root.Children, sphere)

	out, diags, err := Reconstruct(root)
	if err != nil {
		t.Fatalf("Reconstruct: %v", err)
	}
	if !diags.OK() {
		t.Fatalf("diagnostics: %v", diags.Errors)
	}
	if len(out) != 1 {
		t.Fatalf("out = %d, want 1", len(out))
	}
	s, ok := out[0].(*GeomSphere)
	if !ok {
		t.Fatalf("out[0] = %T, want *GeomSphere", out[0])
	}
	v, ok := s.Radius.Value()
	if !ok {
		t.Fatal("Radius.Value() not ok")
	}
	f, err := v.AsFloat()
	if err != nil || f != 2.0 {
		t.Errorf("Radius default = %v (%v), want 2.0", f, err)
	}
}

// §8 scenario 5: authoring int radius=1 under a GeomSphere fails with
// TypeMismatch naming radius, expected double, got int.
func TestReconstruct_TypeMismatch(t *testing.T) {
	root := newRoot()
	sphere := value.NewPrim(value.SpecifierDef, "Sphere", "S", value.RootPath().AppendChild("S"))
	sphere.Props["radius"] = value.NewAttributeProperty(
		value.NewScalarAttribute("int", value.VariabilityVarying, value.Int(1)))
	root.Children = append(root.Children, sphere)

	_, _, err := Reconstruct(root)
	if err == nil {
		t.Fatal("Reconstruct: want TypeMismatch error, got nil")
	}
	if !errors.Is(err, value.ErrTypeMismatch) {
		t.Errorf("err = %v, want wrapping ErrTypeMismatch", err)
	}
}

// §8 scenario 2 (adapted to GeomSphere.radius's real usdGeom.hh type,
// double, rather than the spec text's illustrative "float"): a varying
// time-sampled radius reconstructs with the samples intact.
func TestReconstruct_VaryingTimeSamples(t *testing.T) {
	root := newRoot()
	sphere := value.NewPrim(value.SpecifierDef, "Sphere", "S", value.RootPath().AppendChild("S"))
	ts := &value.TimeSamples{Samples: []value.TimeSample{
		{Time: 0, Value: value.Double(1.2)},
		{Time: 1, Value: value.Double(2.3)},
	}}
	sphere.Props["radius"] = value.NewAttributeProperty(value.NewTimeSampledAttribute("double", ts))
	root.Children = append(root.Children, sphere)

	out, diags, err := Reconstruct(root)
	if err != nil {
		t.Fatalf("Reconstruct: %v", err)
	}
	if !diags.OK() {
		t.Fatalf("diagnostics: %v", diags.Errors)
	}
	s := out[0].(*GeomSphere)
	if s.Radius.Kind != SlotTimeSamples {
		t.Fatalf("Radius.Kind = %v, want SlotTimeSamples", s.Radius.Kind)
	}
	times := s.Radius.Samples.Times()
	if len(times) != 2 || times[0] != 0 || times[1] != 1 {
		t.Errorf("times = %v, want [0 1]", times)
	}
}

// §8 scenario 3: a uniform attribute cannot carry a time-samples table.
func TestReconstruct_VariabilityMismatch(t *testing.T) {
	root := newRoot()
	cube := value.NewPrim(value.SpecifierDef, "Cube", "C", value.RootPath().AppendChild("C"))
	ts := &value.TimeSamples{Samples: []value.TimeSample{{Time: 0, Value: value.Double(1.0)}}}
	cube.Props["doubleSided"] = value.NewAttributeProperty(value.NewTimeSampledAttribute("bool", ts))
	root.Children = append(root.Children, cube)

	_, _, err := Reconstruct(root)
	if !errors.Is(err, value.ErrVariabilityMismatch) {
		t.Errorf("err = %v, want wrapping ErrVariabilityMismatch", err)
	}
}

// §8 scenario 3: an explicitly blocked attribute reconstructs with no
// value and no connection.
func TestReconstruct_BlockedAttribute(t *testing.T) {
	root := newRoot()
	sphere := value.NewPrim(value.SpecifierDef, "Sphere", "S", value.RootPath().AppendChild("S"))
	sphere.Props["radius"] = value.NewAttributeProperty(value.NewBlockedAttribute("double", value.VariabilityVarying))
	root.Children = append(root.Children, sphere)

	out, _, err := Reconstruct(root)
	if err != nil {
		t.Fatalf("Reconstruct: %v", err)
	}
	s := out[0].(*GeomSphere)
	if s.Radius.Kind != SlotBlocked {
		t.Errorf("Radius.Kind = %v, want SlotBlocked", s.Radius.Kind)
	}
	if _, ok := s.Radius.Value(); ok {
		t.Error("Value() ok for a blocked slot, want false")
	}
}

// §8 scenario 4: a connection attribute under UsdPreviewSurface.
func TestReconstruct_ShaderConnection(t *testing.T) {
	root := newRoot()
	mat := value.NewPrim(value.SpecifierDef, "Material", "Mat", value.RootPath().AppendChild("Mat"))
	surf := value.NewPrim(value.SpecifierDef, "Shader", "Surf", mat.Path.AppendChild("Surf"))
	surf.Props["info:id"] = value.NewAttributeProperty(
		value.NewScalarAttribute("token", value.VariabilityUniform, value.TokenVal(value.NewToken("UsdPreviewSurface"))))
	target, err := value.ParsePath("/Mat/Tex.outputs:rgb")
	if err != nil {
		t.Fatalf("ParsePath: %v", err)
	}
	surf.Props["inputs:diffuseColor.connect"] = value.NewAttributeProperty(
		value.NewConnectionAttribute("color3f", []value.Path{target}))
	mat.Children = append(mat.Children, surf)
	root.Children = append(root.Children, mat)

	out, diags, err := Reconstruct(root)
	if err != nil {
		t.Fatalf("Reconstruct: %v", err)
	}
	if !diags.OK() {
		t.Fatalf("diagnostics: %v", diags.Errors)
	}
	surfTyped := out[0].AsBase().Children[0].(*UsdPreviewSurface)
	if surfTyped.DiffuseColor.Kind != SlotConnection {
		t.Fatalf("DiffuseColor.Kind = %v, want SlotConnection", surfTyped.DiffuseColor.Kind)
	}
	if len(surfTyped.DiffuseColor.Connection) != 1 || surfTyped.DiffuseColor.Connection[0].String() != "/Mat/Tex.outputs:rgb" {
		t.Errorf("Connection = %v, want [/Mat/Tex.outputs:rgb]", surfTyped.DiffuseColor.Connection)
	}
}

func TestReconstruct_UnknownShaderInfoID(t *testing.T) {
	root := newRoot()
	shader := value.NewPrim(value.SpecifierDef, "Shader", "Weird", value.RootPath().AppendChild("Weird"))
	shader.Props["info:id"] = value.NewAttributeProperty(
		value.NewScalarAttribute("token", value.VariabilityUniform, value.TokenVal(value.NewToken("NotARealShader"))))
	root.Children = append(root.Children, shader)

	_, _, err := Reconstruct(root)
	if !errors.Is(err, value.ErrTypeMismatch) {
		t.Errorf("err = %v, want wrapping ErrTypeMismatch for unknown info:id", err)
	}
}

func TestReconstruct_UnknownEnumValue(t *testing.T) {
	root := newRoot()
	sphere := value.NewPrim(value.SpecifierDef, "Sphere", "S", value.RootPath().AppendChild("S"))
	sphere.Props["purpose"] = value.NewAttributeProperty(
		value.NewScalarAttribute("token", value.VariabilityUniform, value.TokenVal(value.NewToken("bogus"))))
	root.Children = append(root.Children, sphere)

	_, _, err := Reconstruct(root)
	if !errors.Is(err, value.ErrTypeMismatch) {
		t.Errorf("err = %v, want wrapping ErrTypeMismatch for unrecognized enum value", err)
	}
}

func TestReconstruct_ResidualPropertyWarns(t *testing.T) {
	root := newRoot()
	sphere := value.NewPrim(value.SpecifierDef, "Sphere", "S", value.RootPath().AppendChild("S"))
	sphere.Props["primvars:displayColor"] = value.NewAttributeProperty(
		value.NewScalarAttribute("color3f", value.VariabilityVarying, value.Vec(value.KindVec3f, []float64{1, 0, 0})))
	root.Children = append(root.Children, sphere)

	out, diags, err := Reconstruct(root)
	if err != nil {
		t.Fatalf("Reconstruct: %v", err)
	}
	if len(diags.Warnings) != 1 {
		t.Fatalf("Warnings = %d, want 1", len(diags.Warnings))
	}
	s := out[0].AsBase()
	if _, ok := s.Residual["primvars:displayColor"]; !ok {
		t.Error("primvars:displayColor not preserved in Residual")
	}
}

// §8 scenario 6: xform op order resolution, wired end to end.
func TestReconstruct_XformOpOrder(t *testing.T) {
	root := newRoot()
	x := value.NewPrim(value.SpecifierDef, "Xform", "X", value.RootPath().AppendChild("X"))
	x.XformOps = []string{"!resetXformStack!", "xformOp:translate", "!invert!xformOp:rotateY"}
	root.Children = append(root.Children, x)

	out, _, err := Reconstruct(root)
	if err != nil {
		t.Fatalf("Reconstruct: %v", err)
	}
	ops := out[0].AsBase().XformOps
	if len(ops) != 3 {
		t.Fatalf("XformOps = %d, want 3", len(ops))
	}
	if ops[0].Kind != value.XformOpResetXformStack {
		t.Errorf("ops[0].Kind = %v, want ResetXformStack", ops[0].Kind)
	}
	if ops[1].Kind != value.XformOpTranslate || ops[1].Inverted {
		t.Errorf("ops[1] = %+v, want Translate, not inverted", ops[1])
	}
	if ops[2].Kind != value.XformOpRotateY || !ops[2].Inverted {
		t.Errorf("ops[2] = %+v, want RotateY, inverted", ops[2])
	}
}
