package crate

import (
	"encoding/binary"
	"testing"

	"github.com/sacereda/tinyusdz/internal/limits"
	"github.com/sacereda/tinyusdz/intern"
	"github.com/sacereda/tinyusdz/value"
)

// buildEmptyTOCFile constructs §8 scenario 1's minimal input: a valid
// bootstrap header followed by a TOC declaring zero sections.
func buildEmptyTOCFile() []byte {
	buf := make([]byte, 0, 32)
	buf = append(buf, []byte(Magic)...)
	buf = append(buf, 1, 0, 0)           // version triple
	buf = append(buf, make([]byte, 5)...) // reserved
	tocOff := make([]byte, 8)
	binary.LittleEndian.PutUint64(tocOff, 24)
	buf = append(buf, tocOff...)
	buf = append(buf, make([]byte, 8)...) // nSections = 0
	return buf
}

func TestDecode_EmptyTOC(t *testing.T) {
	buf := buildEmptyTOCFile()
	res, err := Decode(buf, limits.Default())
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if res.NumPaths() != 0 {
		t.Errorf("NumPaths() = %d, want 0", res.NumPaths())
	}
	if !res.Diagnostics.OK() {
		t.Errorf("Diagnostics.OK() = false, errors: %v", res.Diagnostics.Errors)
	}
}

func TestDecode_BadMagic(t *testing.T) {
	buf := buildEmptyTOCFile()
	buf[0] = 'X'
	if _, err := Decode(buf, limits.Default()); err == nil {
		t.Fatal("Decode: want error for bad magic, got nil")
	}
}

func TestReconstructPaths_SiblingsAndChildren(t *testing.T) {
	// Tree: /A with child /A/B, and /C as A's sibling, encoded in
	// depth-first order A, B, C.
	toks := intern.NewTokenTable()
	idxA := toks.Intern("A")
	idxB := toks.Intern("B")
	idxC := toks.Intern("C")

	// node0: A, has child (node1=B) and sibling (node2=C): jump=2
	// node1: B, leaf, no sibling: jump=-2 (pop back to node0's sibling frame)
	// node2: C, leaf, no sibling: jump=-2
	streams := rawPathStreams{
		pathIndexes:         []int32{0, 1, 2},
		elementTokenIndexes: []int32{int32(idxA), int32(idxB), int32(idxC)},
		jumps:               []int32{2, -2, -2},
	}

	pool := intern.NewPathPool()
	if err := reconstructPaths(streams, toks, pool); err != nil {
		t.Fatalf("reconstructPaths: %v", err)
	}
	if pool.Len() != 3 {
		t.Fatalf("pool.Len() = %d, want 3", pool.Len())
	}
	pA, _ := pool.Get(0)
	pB, _ := pool.Get(1)
	pC, _ := pool.Get(2)
	if got, want := pA.String(), "/A"; got != want {
		t.Errorf("path[0] = %q, want %q", got, want)
	}
	if got, want := pB.String(), "/A/B"; got != want {
		t.Errorf("path[1] = %q, want %q", got, want)
	}
	if got, want := pC.String(), "/C"; got != want {
		t.Errorf("path[2] = %q, want %q", got, want)
	}
}

func TestSplitFieldSets(t *testing.T) {
	flat := []int64{0, 1, fieldSetsSentinel, 2, fieldSetsSentinel}
	got := splitFieldSets(flat)
	if len(got[0]) != 2 || got[0][0] != 0 || got[0][1] != 1 {
		t.Errorf("run at 0 = %v, want [0 1]", got[0])
	}
	if len(got[3]) != 1 || got[3][0] != 2 {
		t.Errorf("run at 3 = %v, want [2]", got[3])
	}
}

func TestBuildPrimTree_AttachesProperty(t *testing.T) {
	pool := intern.NewPathPool()
	rootPath := value.RootPath()
	spherePath := rootPath.AppendChild("Sphere")
	radiusPath := spherePath.AppendProperty("radius")
	pool.Set(0, rootPath)
	pool.Set(1, spherePath)
	pool.Set(2, radiusPath)

	specs := []Spec{
		{PathIdx: 0, Type: SpecTypePseudoRoot},
		{PathIdx: 1, Type: SpecTypePrim},
		{PathIdx: 2, Type: SpecTypeAttribute},
	}
	lfsAll := [][]NamedValue{
		{},
		{{Name: fieldTypeName, Value: value.TokenVal(value.NewToken("GeomSphere"))}},
		{
			{Name: fieldTypeName, Value: value.TokenVal(value.NewToken("double"))},
			{Name: fieldVariability, Value: value.VariabilityVal(value.VariabilityUniform)},
			{Name: fieldDefault, Value: value.Double(2.5)},
		},
	}

	root, warnings := buildPrimTree(specs, pool, lfsAll)
	if len(warnings) != 0 {
		t.Fatalf("warnings = %v, want none", warnings)
	}
	if len(root.Children) != 1 {
		t.Fatalf("root.Children = %d, want 1", len(root.Children))
	}
	sphere := root.Children[0]
	if sphere.PrimType != "GeomSphere" {
		t.Errorf("PrimType = %q, want GeomSphere", sphere.PrimType)
	}
	prop, ok := sphere.Props["radius"]
	if !ok {
		t.Fatal("radius property missing")
	}
	scalar, err := prop.Attr.Scalar()
	if err != nil {
		t.Fatalf("Scalar: %v", err)
	}
	f, err := scalar.AsFloat()
	if err != nil || f != 2.5 {
		t.Errorf("radius = %v, %v, want 2.5, nil", f, err)
	}
}
