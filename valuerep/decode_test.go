package valuerep

import (
	"math"
	"testing"

	"github.com/sacereda/tinyusdz/bitio"
	"github.com/sacereda/tinyusdz/intern"
	"github.com/sacereda/tinyusdz/internal/limits"
	"github.com/sacereda/tinyusdz/value"
)

func newDecoder(buf []byte) (*Decoder, *intern.TokenTable) {
	toks := intern.NewTokenTable()
	r := bitio.NewReader(buf)
	return NewDecoder(r, toks, limits.Default()), toks
}

func TestDecode_InlinedScalars(t *testing.T) {
	d, toks := newDecoder(nil)
	idx := toks.Intern("myToken")

	tests := []struct {
		name string
		rep  Rep
		want func(t *testing.T, v value.Value)
	}{
		{"bool_true", NewRep(value.KindBool, false, true, false, 1), func(t *testing.T, v value.Value) {
			b, err := v.AsBool()
			if err != nil || !b {
				t.Errorf("AsBool() = %v, %v, want true, nil", b, err)
			}
		}},
		{"int", NewRep(value.KindInt, false, true, false, 42), func(t *testing.T, v value.Value) {
			n, err := v.AsInt()
			if err != nil || n != 42 {
				t.Errorf("AsInt() = %v, %v, want 42, nil", n, err)
			}
		}},
		{"token", NewRep(value.KindToken, false, true, false, uint64(idx)), func(t *testing.T, v value.Value) {
			tok, err := v.AsToken()
			if err != nil || tok.String() != "myToken" {
				t.Errorf("AsToken() = %v, %v, want myToken, nil", tok, err)
			}
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := d.Decode(tt.rep)
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}
			tt.want(t, v)
		})
	}
}

func TestDecode_ValueBlockSentinel(t *testing.T) {
	d, _ := newDecoder(nil)
	v, err := d.Decode(ValueBlockRep())
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !v.IsBlocked() {
		t.Errorf("Decode(ValueBlockRep()) not blocked")
	}
}

func TestDecode_ExternalScalarDouble(t *testing.T) {
	// Payload offset 0 points at a raw float64.
	var buf []byte
	buf = append(buf, leBytes64(3.5)...)
	d, _ := newDecoder(buf)

	rep := NewRep(value.KindDouble, false, false, false, 0)
	v, err := d.Decode(rep)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	got, err := v.AsFloat()
	if err != nil || got != 3.5 {
		t.Errorf("AsFloat() = %v, %v, want 3.5, nil", got, err)
	}
}

func TestDecode_RawArray(t *testing.T) {
	var buf []byte
	buf = appendLE64(buf, 3) // count
	for _, v := range []int32{10, -20, 30} {
		buf = appendLE32(buf, uint32(v))
	}
	d, _ := newDecoder(buf)

	rep := NewRep(value.KindInt, true, false, false, 0)
	v, err := d.Decode(rep)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	got, err := v.AsIntArray()
	if err != nil {
		t.Fatalf("AsIntArray: %v", err)
	}
	want := []int64{10, -20, 30}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("got[%d] = %d, want %d", i, got[i], want[i])
		}
	}
}

func TestDecode_Dictionary(t *testing.T) {
	toks := intern.NewTokenTable()
	keyIdx := toks.Intern("count")

	var buf []byte
	buf = appendLE64(buf, 1) // one entry
	buf = appendLE32(buf, uint32(keyIdx))
	valRep := NewRep(value.KindInt, false, true, false, 99)
	buf = appendLE64Raw(buf, uint64(valRep))

	r := bitio.NewReader(buf)
	d := NewDecoder(r, toks, limits.Default())

	rep := NewRep(value.KindDictionary, false, false, false, 0)
	v, err := d.Decode(rep)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	dict, err := v.AsDictionary()
	if err != nil {
		t.Fatalf("AsDictionary: %v", err)
	}
	got, ok := dict.Get("count")
	if !ok {
		t.Fatalf("dict missing key %q", "count")
	}
	n, err := got.AsInt()
	if err != nil || n != 99 {
		t.Errorf("dict[count] = %v, %v, want 99, nil", n, err)
	}
}

func TestDecode_UnknownTypeID(t *testing.T) {
	d, _ := newDecoder(nil)
	rep := NewRep(63, false, true, false, 0)
	if _, err := d.Decode(rep); err == nil {
		t.Errorf("Decode(unknown type) = nil error, want error")
	}
}

func leBytes64(f float64) []byte {
	return appendLE64Raw(nil, math.Float64bits(f))
}

func appendLE64Raw(b []byte, v uint64) []byte {
	for i := 0; i < 8; i++ {
		b = append(b, byte(v>>(8*i)))
	}
	return b
}

func appendLE64(b []byte, v uint64) []byte { return appendLE64Raw(b, v) }

func appendLE32(b []byte, v uint32) []byte {
	return append(b, byte(v), byte(v>>8), byte(v>>16), byte(v>>24))
}
