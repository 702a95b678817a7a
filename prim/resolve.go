package prim

import (
	"sort"
	"strings"

	"github.com/sacereda/tinyusdz/value"
)

// AttrDef binds one schema attribute name to the Slot that receives its
// resolved value. Slot itself already carries every fact the four §4.G
// matchers need (Uniform, Terminal, Default, EnumSet, FixedLen), so the
// dispatch table here only needs a name.
type AttrDef struct {
	Name string
	Slot *Slot
}

// RelSlot is the resolved form of a §4.G relationship property
// (proxyPrim, material:binding, skel:skeleton, ...).
type RelSlot struct {
	Single  bool // authoring more than one target is InvalidConnection
	Targets []value.Path
	Meta    value.Dictionary
}

func newRelSlot(single bool) *RelSlot { return &RelSlot{Single: single} }

// RelDef binds one schema relationship name to the RelSlot that
// receives its resolved targets.
type RelDef struct {
	Name string
	Slot *RelSlot
}

// resolveProps implements §4.G's per-property resolution table against
// gp's authored properties, routing each into the matching AttrDef/RelDef
// (matched by base name, with a ".connect" suffix stripped) or, when
// nothing matches, filing it into residual with a warning ("any property
// not recognized by the schema is preserved verbatim... warnings are
// emitted but never fatal"). Properties are visited in sorted name order
// so that which failure is reported first is deterministic.
func resolveProps(path value.Path, gp *value.Prim, attrs []AttrDef, rels []RelDef, residual map[string]value.Property, diags *value.Diagnostics) error {
	attrByName := make(map[string]*Slot, len(attrs))
	for _, a := range attrs {
		attrByName[a.Name] = a.Slot
	}
	relByName := make(map[string]*RelSlot, len(rels))
	for _, r := range rels {
		relByName[r.Name] = r.Slot
	}

	names := make([]string, 0, len(gp.Props))
	for name := range gp.Props {
		names = append(names, name)
	}
	sort.Strings(names)

	processed := make(map[string]bool, len(names))

	for _, name := range names {
		prop := gp.Props[name]
		base := strings.TrimSuffix(name, ".connect")

		if base == "xformOpOrder" {
			// Consumed at the Base level via ResolveXformOps, using
			// gp.XformOps (the decoder's already-extracted raw tokens)
			// rather than this Slot machinery.
			continue
		}

		if rslot, ok := relByName[base]; ok {
			if processed[base] {
				continue // AlreadyProcessed: proceeds silently
			}
			if !prop.IsRelationship {
				return matchError(path, name, TypeMismatch, "expected a relationship")
			}
			if rslot.Single && len(prop.Rel.Targets) > 1 {
				return matchError(path, name, InvalidConnection, "relationship accepts at most one target")
			}
			rslot.Targets = prop.Rel.Targets
			rslot.Meta = prop.Rel.Meta
			processed[base] = true
			continue
		}

		slot, ok := attrByName[base]
		if !ok {
			residual[name] = prop
			diags.AddWarning(value.Diagnostic{
				Err:  value.ErrInternal,
				Path: path,
				Note: "unrecognized property " + name,
			})
			continue
		}
		if processed[base] {
			continue
		}
		if prop.IsRelationship {
			return matchError(path, name, TypeMismatch, "expected an attribute, got a relationship")
		}

		if err := resolveAttrSlot(path, name, base, strings.HasSuffix(name, ".connect"), slot, prop.Attr); err != nil {
			return err
		}
		processed[base] = true
	}
	return nil
}

// resolveAttrSlot applies §4.G's per-attribute table to one authored
// property against its matched Slot.
func resolveAttrSlot(path value.Path, name, base string, isConnSuffix bool, slot *Slot, attr value.Attribute) error {
	if isConnSuffix || attr.IsConnection() {
		if slot.Terminal {
			return matchError(path, name, ConnectionNotAllowed, "")
		}
		targets, err := attr.ConnectionTargets()
		if err != nil || len(targets) == 0 {
			return matchError(path, name, InvalidConnection, "connection carries no target paths")
		}
		slot.Kind = SlotConnection
		slot.Connection = targets
		return nil
	}

	if !typeNamesCompatible(attr.TypeName, slot.TypeName) {
		return matchError(path, name, TypeMismatch, "expected "+slot.TypeName+", got "+attr.TypeName)
	}

	if attr.IsBlocked() {
		slot.Kind = SlotBlocked
		return nil
	}

	if attr.IsTimeSamples() {
		if slot.Uniform {
			return matchError(path, name, VariabilityMismatch, "uniform attribute cannot be time-sampled")
		}
		ts, err := attr.TimeSamplesTable()
		if err != nil {
			return matchError(path, name, InternalError, err.Error())
		}
		if slot.FixedLen > 0 {
			for _, s := range ts.Flatten() {
				if s.Blocked {
					continue
				}
				if n, ok := arrayLen(s.Value); !ok || n != slot.FixedLen {
					return matchError(path, name, TypeMismatch, "extent sample must have exactly 2 elements")
				}
			}
		}
		slot.Kind = SlotTimeSamples
		slot.Samples = ts
		return nil
	}

	v, err := attr.Scalar()
	if err != nil {
		return matchError(path, name, InternalError, err.Error())
	}
	if slot.FixedLen > 0 {
		if attr.Variability == value.VariabilityUniform {
			return matchError(path, name, VariabilityMismatch, "extent must be varying")
		}
		if n, ok := arrayLen(v); !ok || n != slot.FixedLen {
			return matchError(path, name, TypeMismatch, "extent must have exactly 2 elements")
		}
	}
	if slot.EnumSet != nil {
		tok, err := v.AsToken()
		if err != nil {
			return matchError(path, name, TypeMismatch, "expected token")
		}
		if !enumContains(slot.EnumSet, tok.String()) {
			return matchError(path, name, TypeMismatch, "unknown enum value "+tok.String()+", want one of "+strings.Join(slot.EnumSet, ", "))
		}
	}
	slot.Kind = SlotScalar
	slot.Scalar = v
	return nil
}

// arrayLen returns the element count of any array-form Value, used by
// the extent size check (float3[2]).
func arrayLen(v value.Value) (int, bool) {
	if !v.IsArray() {
		return 0, false
	}
	if arr, err := v.AsVecArray(); err == nil {
		return len(arr), true
	}
	if arr, err := v.AsFloatArray(); err == nil {
		return len(arr), true
	}
	if arr, err := v.AsIntArray(); err == nil {
		return len(arr), true
	}
	return 0, false
}

func enumContains(set []string, s string) bool {
	for _, x := range set {
		if x == s {
			return true
		}
	}
	return false
}
