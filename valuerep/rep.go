// Package valuerep implements component D: decoding the Crate format's
// 8-byte value-rep word and the recursive structures (arrays,
// dictionaries, list-ops, time samples) it can point to.
package valuerep

import "github.com/sacereda/tinyusdz/value"

// Rep is a raw 8-byte value-rep word: type_id (6 bits) | is_array (1) |
// is_inlined (1) | is_compressed (1) | payload (55 bits), per §4.D.
type Rep uint64

const (
	typeIDBits  = 6
	payloadBits = 55

	typeIDMask  = (uint64(1) << typeIDBits) - 1
	payloadMask = (uint64(1) << payloadBits) - 1
)

// NewRep packs a value-rep word from its fields, used by tests and by
// the synthetic sentinel reps (blocked samples, §4.D).
func NewRep(typeID value.Kind, isArray, isInlined, isCompressed bool, payload uint64) Rep {
	var w uint64
	w |= uint64(typeID) & typeIDMask
	if isArray {
		w |= 1 << typeIDBits
	}
	if isInlined {
		w |= 1 << (typeIDBits + 1)
	}
	if isCompressed {
		w |= 1 << (typeIDBits + 2)
	}
	w |= (payload & payloadMask) << (typeIDBits + 3)
	return Rep(w)
}

// TypeID returns the value-rep's 6-bit type id.
func (r Rep) TypeID() value.Kind { return value.Kind(uint64(r) & typeIDMask) }

// IsArray reports the array bit.
func (r Rep) IsArray() bool { return uint64(r)&(1<<typeIDBits) != 0 }

// IsInlined reports the inlined bit.
func (r Rep) IsInlined() bool { return uint64(r)&(1<<(typeIDBits+1)) != 0 }

// IsCompressed reports the compressed bit.
func (r Rep) IsCompressed() bool { return uint64(r)&(1<<(typeIDBits+2)) != 0 }

// Payload returns the 55-bit payload (an inlined value or an absolute
// byte offset, depending on IsInlined).
func (r Rep) Payload() uint64 { return (uint64(r) >> (typeIDBits + 3)) & payloadMask }

// valueBlockSentinel is the value-rep value §4.D's "Blocked samples are
// represented by a sentinel value-rep" refers to: an inlined, all-ones
// payload of KindValueBlock, chosen so it can never collide with a real
// offset or ordinal.
var valueBlockSentinel = NewRep(value.KindValueBlock, false, true, false, payloadMask)

// IsValueBlock reports whether r is the blocked-sample sentinel.
func (r Rep) IsValueBlock() bool { return r == valueBlockSentinel }

// ValueBlockRep returns the sentinel value-rep used to mark a blocked
// time sample.
func ValueBlockRep() Rep { return valueBlockSentinel }
