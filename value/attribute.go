package value

import "fmt"

// AttrForm discriminates which form an Attribute holds: one of the three
// value forms in §3's Attribute definition (scalar, time-samples,
// connection), or declared-only, or explicitly blocked.
type AttrForm uint8

const (
	AttrDeclared   AttrForm = iota // declared only, no value authored
	AttrScalar                     // a single scalar Value
	AttrBlocked                    // explicit "no value" (ASCII `= None`)
	AttrTimeSamples                // a TimeSamples table
	AttrConnection                 // 1..N target paths
)

// Attribute is a named typed value on a prim, per the GLOSSARY. It
// carries the type name and variability from §3 plus an open-ended
// metadata dictionary; the generic reconstruction layer in /prim routes
// instances of this type into strongly-typed Animatable[T] slots.
type Attribute struct {
	TypeName    string
	Variability Variability
	Meta        Dictionary

	form    AttrForm
	scalar  Value
	samples *TimeSamples
	conn    []Path
}

// NewDeclaredAttribute returns an attribute with no authored value —
// "declared only" per §3's Property definition.
func NewDeclaredAttribute(typeName string, variability Variability) Attribute {
	return Attribute{TypeName: typeName, Variability: variability, form: AttrDeclared}
}

// NewScalarAttribute returns an attribute holding a single scalar value.
func NewScalarAttribute(typeName string, variability Variability, v Value) Attribute {
	return Attribute{TypeName: typeName, Variability: variability, form: AttrScalar, scalar: v}
}

// NewBlockedAttribute returns an attribute explicitly set to "no value at
// this time" (§8 scenario 3).
func NewBlockedAttribute(typeName string, variability Variability) Attribute {
	return Attribute{TypeName: typeName, Variability: variability, form: AttrBlocked}
}

// NewTimeSampledAttribute returns a varying attribute holding a
// TimeSamples table.
func NewTimeSampledAttribute(typeName string, ts *TimeSamples) Attribute {
	return Attribute{TypeName: typeName, Variability: VariabilityVarying, form: AttrTimeSamples, samples: ts}
}

// NewConnectionAttribute returns an attribute that is a connection to one
// or more target paths (§8 scenario 4).
func NewConnectionAttribute(typeName string, targets []Path) Attribute {
	return Attribute{TypeName: typeName, form: AttrConnection, conn: targets}
}

// Form reports which AttrForm is populated.
func (a Attribute) Form() AttrForm { return a.form }

// IsConnection reports whether a is a connection (§8: "X.connect").
func (a Attribute) IsConnection() bool { return a.form == AttrConnection }

// IsBlocked reports whether a is the explicit "no value" sentinel.
func (a Attribute) IsBlocked() bool { return a.form == AttrBlocked }

// IsTimeSamples reports whether a holds a TimeSamples table.
func (a Attribute) IsTimeSamples() bool { return a.form == AttrTimeSamples }

// Scalar returns the scalar value, erroring if a is not in scalar form.
func (a Attribute) Scalar() (Value, error) {
	if a.form != AttrScalar {
		return Value{}, fmt.Errorf("value: attribute is not a scalar (form=%d)", a.form)
	}
	return a.scalar, nil
}

// TimeSamplesTable returns the time-samples table, erroring if a is not
// time-sampled.
func (a Attribute) TimeSamplesTable() (*TimeSamples, error) {
	if a.form != AttrTimeSamples {
		return nil, fmt.Errorf("value: attribute is not time-sampled (form=%d)", a.form)
	}
	return a.samples, nil
}

// ConnectionTargets returns the connection's target paths.
func (a Attribute) ConnectionTargets() ([]Path, error) {
	if a.form != AttrConnection {
		return nil, fmt.Errorf("value: attribute is not a connection (form=%d)", a.form)
	}
	return a.conn, nil
}

// Relationship is a typeless pointer to other prim paths, per the
// GLOSSARY: empty, a single target, or a vector of targets.
type Relationship struct {
	Targets []Path
	Meta    Dictionary
}

// IsEmpty reports whether the relationship has no targets.
func (r Relationship) IsEmpty() bool { return len(r.Targets) == 0 }

// Property is either an Attribute or a Relationship (§3). Every Property
// can additionally act as a connection carrier via Attribute's
// AttrConnection form.
type Property struct {
	IsRelationship bool
	Attr           Attribute
	Rel            Relationship
}

// NewAttributeProperty wraps an Attribute as a Property.
func NewAttributeProperty(a Attribute) Property {
	return Property{IsRelationship: false, Attr: a}
}

// NewRelationshipProperty wraps a Relationship as a Property.
func NewRelationshipProperty(r Relationship) Property {
	return Property{IsRelationship: true, Rel: r}
}
