package quantops

import "math"

// ConstPart is one constant (non-variable) component of an assembly: a unit
// raised to a power.
type ConstPart struct {
	Unit  *AtomicUnit
	Power float64
}

// VarPart is the assembly slot whose unit is not fixed but chosen from a set
// of candidates (a "unit group"). An assembly has at most one of these.
type VarPart struct {
	Candidates []*AtomicUnit
	Power      float64
}

// UnitAssembly is the parsed, not-yet-instantiated form of a unit
// presentation: constant parts before and after an optional variable part.
// It is constructed only by the parser.
type UnitAssembly struct {
	Before   []ConstPart
	Variable *VarPart
	After    []ConstPart
}

// ConstantUnitAssembly is the fully-instantiated form of an assembly: an
// ordered sequence of constant parts. It results from expanding a
// UnitAssembly by substituting one member of the variable candidate set (or,
// for assemblies with no variable part, is simply the constant parts as
// parsed).
type ConstantUnitAssembly []ConstPart

// Dimensionality computes the composed dimensionality of a: the product of
// each part's unit dimensionality raised to its power.
func (a ConstantUnitAssembly) Dimensionality() Dimensionality {
	d := Dimensionality{}
	for _, part := range a {
		d = d.Mul(part.Unit.Dimensionality().Pow(part.Power))
	}
	return d
}

// Scale computes the composed scale of a: the product of each part's unit
// scale raised to its power.
func (a ConstantUnitAssembly) Scale() float64 {
	scale := 1.0
	for _, part := range a {
		scale *= math.Pow(part.Unit.Scale(), part.Power)
	}
	return scale
}

// expandAssembly turns a parsed UnitAssembly into one ConstantUnitAssembly
// per candidate of its variable part (or a single ConstantUnitAssembly if it
// has none), inserting the expanded part between Before and After.
func expandAssembly(a *UnitAssembly) []ConstantUnitAssembly {
	if a.Variable == nil {
		combined := make(ConstantUnitAssembly, 0, len(a.Before))
		combined = append(combined, a.Before...)
		return []ConstantUnitAssembly{combined}
	}

	out := make([]ConstantUnitAssembly, 0, len(a.Variable.Candidates))
	for _, unit := range a.Variable.Candidates {
		combined := make(ConstantUnitAssembly, 0, len(a.Before)+1+len(a.After))
		combined = append(combined, a.Before...)
		combined = append(combined, ConstPart{Unit: unit, Power: a.Variable.Power})
		combined = append(combined, a.After...)
		out = append(out, combined)
	}
	return out
}
