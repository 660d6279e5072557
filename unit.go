package quantops

import "math"

// Unit is the contract shared by AtomicUnit and CompositeUnit: anything that
// carries a dimensionality, a scale (the multiplicative factor from its own
// numeric reading to the registry's canonical base) and a registry back-
// reference used for identity checks.
type Unit interface {
	Dimensionality() Dimensionality
	Scale() float64
	Registry() *Registry
}

// AtomicUnit is a single named unit: a label, an optional symbol, a
// dimensionality, a scale and an additive offset. The offset is only ever
// applied along the single path spelled out in AtomicUnit.MulScalar; every
// other arithmetic path treats the unit as if its offset were zero.
type AtomicUnit struct {
	id             string
	labelSingular  string
	labelPlural    string
	hasSymbol      bool
	symbolSingular string
	symbolPlural   string
	dimensionality Dimensionality
	scale          float64
	offset         float64
	registry       *Registry
}

// ID returns the unit's registry-unique identifier: its singular symbol if
// it has one, else its singular label.
func (u *AtomicUnit) ID() string { return u.id }

// Label returns the singular or plural label form.
func (u *AtomicUnit) Label(plural bool) string {
	if plural {
		return u.labelPlural
	}
	return u.labelSingular
}

// Symbol returns the singular or plural symbol form and whether the unit has
// a symbol at all (some units are label-only).
func (u *AtomicUnit) Symbol(plural bool) (string, bool) {
	if !u.hasSymbol {
		return "", false
	}
	if plural {
		return u.symbolPlural, true
	}
	return u.symbolSingular, true
}

func (u *AtomicUnit) Dimensionality() Dimensionality { return u.dimensionality }
func (u *AtomicUnit) Scale() float64                 { return u.scale }
func (u *AtomicUnit) Offset() float64                { return u.offset }
func (u *AtomicUnit) Registry() *Registry             { return u.registry }

// asComposite produces the CompositeUnit view of u used by every arithmetic
// path except AtomicUnit.MulScalar: offset is dropped.
func (u *AtomicUnit) asComposite() *CompositeUnit {
	return &CompositeUnit{dimensionality: u.dimensionality, scale: u.scale, registry: u.registry}
}

// MulUnit composes u with another unit into a CompositeUnit, ignoring any
// offset u might carry.
func (u *AtomicUnit) MulUnit(other Unit) (*CompositeUnit, error) {
	return u.asComposite().MulUnit(other)
}

// DivUnit composes u with another unit into a CompositeUnit, ignoring any
// offset u might carry.
func (u *AtomicUnit) DivUnit(other Unit) (*CompositeUnit, error) {
	return u.asComposite().DivUnit(other)
}

// Pow raises u to a power, producing a CompositeUnit (which, per spec, never
// carries an offset).
func (u *AtomicUnit) Pow(k float64) *CompositeUnit {
	return u.asComposite().Pow(k)
}

// MulScalar is the only arithmetic path that applies u's offset: the result
// is scalar*u.scale, plus u.offset if it is non-zero.
func (u *AtomicUnit) MulScalar(scalar float64) *Quantity {
	value := scalar * u.scale
	if u.offset != 0 {
		value += u.offset
	}
	return &Quantity{dimensionality: u.dimensionality, value: value, registry: u.registry}
}

// MulQuantity composes u with a quantity, ignoring any offset u might carry.
func (u *AtomicUnit) MulQuantity(q *Quantity) (*Quantity, error) {
	return u.asComposite().MulQuantity(q)
}

// DivQuantity divides u by a quantity, ignoring any offset u might carry.
func (u *AtomicUnit) DivQuantity(q *Quantity) (*Quantity, error) {
	return u.asComposite().DivQuantity(q)
}

// CompositeUnit is the product form resulting from any algebraic combination
// of units: it has no label, no symbol and no offset.
type CompositeUnit struct {
	dimensionality Dimensionality
	scale          float64
	registry       *Registry
}

func (u *CompositeUnit) Dimensionality() Dimensionality { return u.dimensionality }
func (u *CompositeUnit) Scale() float64                 { return u.scale }
func (u *CompositeUnit) Registry() *Registry             { return u.registry }

func (u *CompositeUnit) MulUnit(other Unit) (*CompositeUnit, error) {
	if u.registry != other.Registry() {
		return nil, errDifferentRegistries()
	}
	return &CompositeUnit{
		dimensionality: u.dimensionality.Mul(other.Dimensionality()),
		scale:          u.scale * other.Scale(),
		registry:       u.registry,
	}, nil
}

func (u *CompositeUnit) DivUnit(other Unit) (*CompositeUnit, error) {
	if u.registry != other.Registry() {
		return nil, errDifferentRegistries()
	}
	return &CompositeUnit{
		dimensionality: u.dimensionality.Div(other.Dimensionality()),
		scale:          u.scale / other.Scale(),
		registry:       u.registry,
	}, nil
}

func (u *CompositeUnit) Pow(k float64) *CompositeUnit {
	return &CompositeUnit{
		dimensionality: u.dimensionality.Pow(k),
		scale:          math.Pow(u.scale, k),
		registry:       u.registry,
	}
}

// MulScalar promotes scalar to a dimensionless quantity of u's registry and
// composes: composite units never apply an offset.
func (u *CompositeUnit) MulScalar(scalar float64) *Quantity {
	return &Quantity{dimensionality: u.dimensionality, value: scalar * u.scale, registry: u.registry}
}

func (u *CompositeUnit) MulQuantity(q *Quantity) (*Quantity, error) {
	if u.registry != q.registry {
		return nil, errDifferentRegistries()
	}
	return &Quantity{
		dimensionality: u.dimensionality.Mul(q.dimensionality),
		value:          u.scale * q.value,
		registry:       u.registry,
	}, nil
}

func (u *CompositeUnit) DivQuantity(q *Quantity) (*Quantity, error) {
	if u.registry != q.registry {
		return nil, errDifferentRegistries()
	}
	return &Quantity{
		dimensionality: u.dimensionality.Div(q.dimensionality),
		value:          u.scale / q.value,
		registry:       u.registry,
	}, nil
}

// Quantity is a value paired with a dimensionality, bound to a registry.
// Its value is always the magnitude in the canonical base of its
// dimensionality.
type Quantity struct {
	dimensionality Dimensionality
	value          float64
	registry       *Registry
}

func (q *Quantity) Dimensionality() Dimensionality { return q.dimensionality }
func (q *Quantity) Value() float64                 { return q.value }
func (q *Quantity) Registry() *Registry             { return q.registry }

func (q *Quantity) checkRegistry(other *Quantity) error {
	if q.registry != other.registry {
		return errDifferentRegistries()
	}
	return nil
}

func (q *Quantity) checkDimensionality(other *Quantity) error {
	if !q.dimensionality.Equal(other.dimensionality) {
		return errDifferentDimensionalities()
	}
	return nil
}

// Add requires matching dimensionality and registry.
func (q *Quantity) Add(other *Quantity) (*Quantity, error) {
	if err := q.checkRegistry(other); err != nil {
		return nil, err
	}
	if err := q.checkDimensionality(other); err != nil {
		return nil, err
	}
	return &Quantity{dimensionality: q.dimensionality, value: q.value + other.value, registry: q.registry}, nil
}

// Sub requires matching dimensionality and registry.
func (q *Quantity) Sub(other *Quantity) (*Quantity, error) {
	if err := q.checkRegistry(other); err != nil {
		return nil, err
	}
	if err := q.checkDimensionality(other); err != nil {
		return nil, err
	}
	return &Quantity{dimensionality: q.dimensionality, value: q.value - other.value, registry: q.registry}, nil
}

// MulScalar composes with a bare number by promoting it to a dimensionless
// quantity of the same registry.
func (q *Quantity) MulScalar(x float64) *Quantity {
	return &Quantity{dimensionality: q.dimensionality, value: q.value * x, registry: q.registry}
}

// DivScalar composes with a bare number by promoting it to a dimensionless
// quantity of the same registry.
func (q *Quantity) DivScalar(x float64) *Quantity {
	return &Quantity{dimensionality: q.dimensionality, value: q.value / x, registry: q.registry}
}

// MulQuantity composes dimensionalities; there is no dimensionality
// constraint on multiplication.
func (q *Quantity) MulQuantity(other *Quantity) (*Quantity, error) {
	if err := q.checkRegistry(other); err != nil {
		return nil, err
	}
	return &Quantity{
		dimensionality: q.dimensionality.Mul(other.dimensionality),
		value:          q.value * other.value,
		registry:       q.registry,
	}, nil
}

// DivQuantity composes dimensionalities; there is no dimensionality
// constraint on division.
func (q *Quantity) DivQuantity(other *Quantity) (*Quantity, error) {
	if err := q.checkRegistry(other); err != nil {
		return nil, err
	}
	return &Quantity{
		dimensionality: q.dimensionality.Div(other.dimensionality),
		value:          q.value / other.value,
		registry:       q.registry,
	}, nil
}

// MulUnit composes q with a unit, ignoring any offset the unit might carry
// (offset only applies along AtomicUnit.MulScalar).
func (q *Quantity) MulUnit(u Unit) (*Quantity, error) {
	if q.registry != u.Registry() {
		return nil, errDifferentRegistries()
	}
	return &Quantity{
		dimensionality: q.dimensionality.Mul(u.Dimensionality()),
		value:          q.value * u.Scale(),
		registry:       q.registry,
	}, nil
}

// DivUnit composes q with a unit, ignoring any offset the unit might carry.
func (q *Quantity) DivUnit(u Unit) (*Quantity, error) {
	if q.registry != u.Registry() {
		return nil, errDifferentRegistries()
	}
	return &Quantity{
		dimensionality: q.dimensionality.Div(u.Dimensionality()),
		value:          q.value / u.Scale(),
		registry:       q.registry,
	}, nil
}

// Pow multiplies every dimensionality exponent by k.
func (q *Quantity) Pow(k float64) *Quantity {
	return &Quantity{
		dimensionality: q.dimensionality.Pow(k),
		value:          math.Pow(q.value, k),
		registry:       q.registry,
	}
}

// Less requires equal dimensionality and equal registry; it raises where
// Equal does not, per the resolved open question in SPEC_FULL.md §11.
func (q *Quantity) Less(other *Quantity) (bool, error) {
	if err := q.checkRegistry(other); err != nil {
		return false, err
	}
	if err := q.checkDimensionality(other); err != nil {
		return false, err
	}
	return q.value < other.value, nil
}

// Equal never raises: quantities of different dimensionality (or different
// registries) simply compare unequal.
func (q *Quantity) Equal(other *Quantity) bool {
	if q == other {
		return true
	}
	if q == nil || other == nil {
		return false
	}
	if q.registry != other.registry {
		return false
	}
	if !q.dimensionality.Equal(other.dimensionality) {
		return false
	}
	return q.value == other.value
}

// MagnitudeAs returns the magnitude of q expressed in u, requiring matching
// dimensionality and registry.
func (q *Quantity) MagnitudeAs(u Unit) (float64, error) {
	if q.registry != u.Registry() {
		return 0, errDifferentRegistries()
	}
	if !q.dimensionality.Equal(u.Dimensionality()) {
		return 0, errDifferentDimensionalities()
	}
	offset := 0.0
	if au, ok := u.(*AtomicUnit); ok {
		offset = au.offset
	}
	return (q.value - offset) / u.Scale(), nil
}
