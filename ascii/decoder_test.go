package ascii

import (
	"strings"
	"testing"

	"github.com/sacereda/tinyusdz/internal/limits"
)

func TestDecode_BadMagic(t *testing.T) {
	if _, err := Decode([]byte("not a usda file\n")); err == nil {
		t.Fatal("Decode: want error for missing magic header, got nil")
	}
}

func TestDecode_MinimalStageMeta(t *testing.T) {
	src := `#usda 1.0
(
    defaultPrim = "World"
    upAxis = "Y"
    metersPerUnit = 0.01
    doc = "a test stage"
)
`
	res, err := Decode([]byte(src))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if res.Meta.DefaultPrim != "World" {
		t.Errorf("DefaultPrim = %q, want World", res.Meta.DefaultPrim)
	}
	if res.Meta.UpAxis != "Y" {
		t.Errorf("UpAxis = %q, want Y", res.Meta.UpAxis)
	}
	if res.Meta.MetersPerUnit == nil || *res.Meta.MetersPerUnit != 0.01 {
		t.Errorf("MetersPerUnit = %v, want 0.01", res.Meta.MetersPerUnit)
	}
	if len(res.Root.Children) != 0 {
		t.Errorf("Root.Children = %d, want 0", len(res.Root.Children))
	}
	if !res.Diagnostics.OK() {
		t.Errorf("Diagnostics.OK() = false, errors: %v", res.Diagnostics.Errors)
	}
}

func TestDecode_SimplePrimWithScalarAttribute(t *testing.T) {
	src := `#usda 1.0
def Xform "Foo"
{
    double radius = 2.5
}
`
	res, err := Decode([]byte(src))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(res.Root.Children) != 1 {
		t.Fatalf("Root.Children = %d, want 1", len(res.Root.Children))
	}
	foo := res.Root.Children[0]
	if foo.Name != "Foo" || foo.PrimType != "Xform" {
		t.Errorf("prim = %+v, want Name=Foo PrimType=Xform", foo)
	}
	prop, ok := foo.Props["radius"]
	if !ok || prop.IsRelationship {
		t.Fatalf("Props[radius] missing or a relationship: %+v", prop)
	}
	v, err := prop.Attr.Scalar()
	if err != nil {
		t.Fatalf("Scalar: %v", err)
	}
	f, err := v.AsFloat()
	if err != nil || f != 2.5 {
		t.Errorf("radius = %v (%v), want 2.5", f, err)
	}
}

func TestDecode_ArrayValuedAttribute(t *testing.T) {
	src := `#usda 1.0
def Mesh "M"
{
    int[] faceVertexCounts = [3, 3, 4]
    point3f[] points = [(0, 0, 0), (1, 0, 0), (1, 1, 0), (0, 1, 0)]
}
`
	res, err := Decode([]byte(src))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	m := res.Root.Children[0]
	counts, err := m.Props["faceVertexCounts"].Attr.Scalar()
	if err != nil {
		t.Fatalf("Scalar: %v", err)
	}
	ints, err := counts.AsIntArray()
	if err != nil || len(ints) != 3 {
		t.Fatalf("faceVertexCounts = %v (%v), want 3 elements", ints, err)
	}
	pts, err := m.Props["points"].Attr.Scalar()
	if err != nil {
		t.Fatalf("Scalar: %v", err)
	}
	arr, err := pts.AsVecArray()
	if err != nil || len(arr) != 4 {
		t.Fatalf("points = %v (%v), want 4 elements", arr, err)
	}
}

func TestDecode_ConnectionAttribute(t *testing.T) {
	src := `#usda 1.0
def Material "Mat"
{
    def Shader "Surf"
    {
        color3f inputs:diffuseColor.connect = </Mat/Tex.outputs:rgb>
    }
}
`
	res, err := Decode([]byte(src))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	surf := res.Root.Children[0].Children[0]
	prop, ok := surf.Props["inputs:diffuseColor"]
	if !ok {
		t.Fatalf("missing inputs:diffuseColor property")
	}
	if !prop.Attr.IsConnection() {
		t.Fatalf("attribute is not a connection: %+v", prop.Attr)
	}
	targets, err := prop.Attr.ConnectionTargets()
	if err != nil || len(targets) != 1 {
		t.Fatalf("ConnectionTargets = %v (%v), want 1", targets, err)
	}
	if got := targets[0].String(); got != "/Mat/Tex.outputs:rgb" {
		t.Errorf("target = %q, want /Mat/Tex.outputs:rgb", got)
	}
}

func TestDecode_TimeSampledAttribute(t *testing.T) {
	src := `#usda 1.0
def Xform "Anim"
{
    double xformOp:translate.timeSamples = {
        1: 0,
        24: 10,
    }
}
`
	res, err := Decode([]byte(src))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	prop := res.Root.Children[0].Props["xformOp:translate"]
	if !prop.Attr.IsTimeSamples() {
		t.Fatalf("attribute is not time-sampled: %+v", prop.Attr)
	}
	ts, err := prop.Attr.TimeSamplesTable()
	if err != nil {
		t.Fatalf("TimeSamplesTable: %v", err)
	}
	if len(ts.Samples) != 2 {
		t.Fatalf("Samples = %d, want 2", len(ts.Samples))
	}
	if ts.Samples[0].Time != 1 || ts.Samples[1].Time != 24 {
		t.Errorf("Samples times = %v, want [1 24]", ts.Times())
	}
}

func TestDecode_RelationshipDecl(t *testing.T) {
	src := `#usda 1.0
def Mesh "M"
{
    rel material:binding = </Materials/Mat>
}
`
	res, err := Decode([]byte(src))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	prop, ok := res.Root.Children[0].Props["material:binding"]
	if !ok || !prop.IsRelationship {
		t.Fatalf("Props[material:binding] missing or not a relationship: %+v", prop)
	}
	if len(prop.Rel.Targets) != 1 || prop.Rel.Targets[0].String() != "/Materials/Mat" {
		t.Errorf("Targets = %v, want [/Materials/Mat]", prop.Rel.Targets)
	}
}

func TestDecode_ResyncSkipsMalformedTopLevelPrim(t *testing.T) {
	src := `#usda 1.0
def Xform "Good1"
{
}
def ???
def Xform "Good2"
{
}
`
	res, err := Decode([]byte(src))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if res.Diagnostics.OK() {
		t.Fatal("Diagnostics.OK() = true, want at least one recorded error")
	}
	var names []string
	for _, c := range res.Root.Children {
		names = append(names, c.Name)
	}
	want := "Good1,Good2"
	if got := strings.Join(names, ","); got != want {
		t.Errorf("recovered prims = %q, want %q", got, want)
	}
}

func TestDecode_NestingDepthLimit(t *testing.T) {
	var sb strings.Builder
	sb.WriteString("#usda 1.0\n")
	for i := 0; i < maxNestingDepth+8; i++ {
		sb.WriteString(`def Xform "N" { `)
	}
	for i := 0; i < maxNestingDepth+8; i++ {
		sb.WriteString(`} `)
	}
	// The nesting-depth violation surfaces inside the outermost top-level
	// PrimTree, so ParseFile's resync recovery catches it as a
	// diagnostic rather than a hard Decode error (only structural
	// failures like a bad magic header abort Decode outright).
	res, err := Decode([]byte(sb.String()))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if res.Diagnostics.OK() {
		t.Fatal("Diagnostics.OK() = true, want a recorded nesting-depth error")
	}
}

func TestDecodeWithLimits_StringLengthCap(t *testing.T) {
	lim := limits.Default()
	lim.MaxStringLength = 4
	src := "#usda 1.0\ndef Xform \"X\"\n{\n    string note = \"this is way too long\"\n}\n"
	res, err := DecodeWithLimits([]byte(src), lim)
	if err != nil {
		t.Fatalf("DecodeWithLimits: %v", err)
	}
	if res.Diagnostics.OK() {
		t.Fatal("Diagnostics.OK() = true, want string-length error recorded")
	}
}

func TestParseFile_DiagnosticsIncludeResidualWarnings(t *testing.T) {
	src := `#usda 1.0
(
    someUnknownStageKey = "x"
)
`
	p := NewParser([]byte(src))
	_, diags, err := p.ParseFile()
	if err != nil {
		t.Fatalf("ParseFile: %v", err)
	}
	if len(diags.Warnings) != 1 {
		t.Fatalf("Warnings = %d, want 1", len(diags.Warnings))
	}
}
