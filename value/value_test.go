package value

import "testing"

func TestValue_ScalarRoundTrip(t *testing.T) {
	v := Double(2.5)
	if v.Kind() != KindDouble || v.IsArray() {
		t.Fatalf("Kind/IsArray = %v/%v, want KindDouble/false", v.Kind(), v.IsArray())
	}
	f, err := v.AsFloat()
	if err != nil || f != 2.5 {
		t.Errorf("AsFloat = %v (%v), want 2.5", f, err)
	}
}

func TestValue_KindMismatchErrors(t *testing.T) {
	v := Int(1)
	if _, err := v.AsBool(); err == nil {
		t.Error("AsBool on an Int value: want error, got nil")
	}
	if _, err := v.AsStr(); err == nil {
		t.Error("AsStr on an Int value: want error, got nil")
	}
}

func TestValue_ArrayVsScalarDistinct(t *testing.T) {
	scalar := Float(1.0)
	arr := FloatArray([]float64{1.0, 2.0})
	if scalar.IsArray() {
		t.Error("scalar Float reports IsArray() = true")
	}
	if !arr.IsArray() {
		t.Error("FloatArray reports IsArray() = false")
	}
	if _, err := scalar.AsFloatArray(); err == nil {
		t.Error("AsFloatArray on a scalar: want error, got nil")
	}
	if _, err := arr.AsFloat(); err == nil {
		t.Error("AsFloat on an array: want error, got nil")
	}
}

func TestValue_TypeNameAddsArraySuffix(t *testing.T) {
	if got := Vec(KindVec3f, []float64{0, 0, 0}).TypeName(); got == "" {
		t.Fatal("TypeName() empty for a scalar vec3f")
	}
	scalarName := Float(1.0).TypeName()
	arrName := FloatArray([]float64{1.0}).TypeName()
	if arrName != scalarName+"[]" {
		t.Errorf("array TypeName = %q, want %q", arrName, scalarName+"[]")
	}
}

func TestValue_IsBlocked(t *testing.T) {
	if !ValueBlock().IsBlocked() {
		t.Error("ValueBlock().IsBlocked() = false, want true")
	}
	if Float(1.0).IsBlocked() {
		t.Error("Float(1.0).IsBlocked() = true, want false")
	}
}

func TestDictionary_LatestWriteWins(t *testing.T) {
	var d Dictionary
	d.Set("k", Int(1))
	d.Set("k", Int(2))
	if d.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", d.Len())
	}
	v, ok := d.Get("k")
	if !ok {
		t.Fatal("Get(k) not ok")
	}
	i, err := v.AsInt()
	if err != nil || i != 2 {
		t.Errorf("Get(k) = %v (%v), want 2", i, err)
	}
}

func TestDictionary_GetMissingKey(t *testing.T) {
	var d Dictionary
	if _, ok := d.Get("missing"); ok {
		t.Error("Get on empty dictionary: want ok=false")
	}
}

func TestListOp_IsEmpty(t *testing.T) {
	var op ListOp[string]
	if !op.IsEmpty() {
		t.Error("zero-value ListOp.IsEmpty() = false, want true")
	}
	op.Added = []string{"x"}
	if op.IsEmpty() {
		t.Error("ListOp with Added entries reports IsEmpty() = true")
	}
}
