package valuerep

import (
	"fmt"

	"github.com/sacereda/tinyusdz/internal/limits"
	"github.com/sacereda/tinyusdz/value"
)

// decodeDictionaryAt implements §4.D dictionary decoding: a uint64 count
// followed by count entries of (tokenIndex key, valueRep value),
// recursively decoded.
func (d *Decoder) decodeDictionaryAt(offset int64, depth int) (value.Value, error) {
	if err := d.r.Seek(offset); err != nil {
		return value.Value{}, fmt.Errorf("valuerep: dictionary: %w", err)
	}
	count, err := d.r.ReadU64()
	if err != nil {
		return value.Value{}, fmt.Errorf("valuerep: dictionary count: %w", err)
	}
	if err := limits.CheckCount64("dictionary entries", int64(count), int64(d.lim.MaxDictElements)); err != nil {
		return value.Value{}, err
	}

	var dict value.Dictionary
	for i := uint64(0); i < count; i++ {
		keyIdx, err := d.r.ReadU32()
		if err != nil {
			return value.Value{}, fmt.Errorf("valuerep: dictionary key %d: %w", i, err)
		}
		key, err := d.tokens.Get(int(keyIdx))
		if err != nil {
			return value.Value{}, fmt.Errorf("valuerep: dictionary key %d: %w", i, err)
		}
		word, err := d.r.ReadU64()
		if err != nil {
			return value.Value{}, fmt.Errorf("valuerep: dictionary value %d: %w", i, err)
		}
		val, err := d.decode(Rep(word), depth+1)
		if err != nil {
			return value.Value{}, fmt.Errorf("valuerep: dictionary value for %q: %w", key.String(), err)
		}
		dict.Set(key.String(), val)
	}
	return value.DictionaryVal(dict), nil
}
