package quantops

import (
	"fmt"
	"io"
	"sort"

	"github.com/BurntSushi/toml"
)

// Registry is the immutable root of unit ownership: every AtomicUnit,
// CompositeUnit and Quantity carries a back-reference to the Registry that
// produced it, and cross-registry arithmetic is rejected by pointer
// identity rather than by structural comparison.
type Registry struct {
	unitsByID   map[string]*AtomicUnit
	unitsByName map[string]*AtomicUnit
	unitGroups  map[string][]*AtomicUnit
	contexts    map[string]*Context
}

func newRegistry() *Registry {
	return &Registry{
		unitsByID:   make(map[string]*AtomicUnit),
		unitsByName: make(map[string]*AtomicUnit),
		unitGroups:  make(map[string][]*AtomicUnit),
		contexts:    make(map[string]*Context),
	}
}

// Unit resolves name strictly against the registry's flat name index: every
// label, symbol and alias a unit (or one of its prefixed derivatives) was
// registered under. It never consults unit groups.
func (r *Registry) Unit(name string) (*AtomicUnit, error) {
	u, ok := r.unitsByName[name]
	if !ok {
		return nil, &InvalidUnitNameError{Name: name}
	}
	return u, nil
}

// MustUnit is Unit, panicking on failure; intended for registry setup code
// and tests that reference a unit known to exist.
func (r *Registry) MustUnit(name string) *AtomicUnit {
	u, err := r.Unit(name)
	if err != nil {
		panic(err)
	}
	return u
}

func (r *Registry) lookupByName(name string) (*AtomicUnit, bool) {
	u, ok := r.unitsByName[name]
	return u, ok
}

func (r *Registry) unitGroup(name string) ([]*AtomicUnit, bool) {
	g, ok := r.unitGroups[name]
	return g, ok
}

// Dimensionless wraps value as a dimensionless Quantity of this registry —
// the quantity a bare scalar literal parses to when no unit follows it.
func (r *Registry) Dimensionless(value float64) *Quantity {
	return &Quantity{dimensionality: Dimensionality{}, value: value, registry: r}
}

// ParseQuantity parses s as a quantity: a scalar optionally followed by a
// composite unit expression, consuming the whole of s.
func (r *Registry) ParseQuantity(s string) (*Quantity, error) {
	located := NewLocatedString(s)
	tokens, err := tokenize(located)
	if err != nil {
		return nil, err
	}
	w := newTokenWalker(r, located, tokens)
	q, err := w.AcceptQuantity()
	if err != nil {
		return nil, err
	}
	if q == nil {
		return nil, &ParseError{Message: "expected a quantity", Area: w.peekArea()}
	}
	if err := w.ExpectEOF(); err != nil {
		return nil, err
	}
	return q, nil
}

// ParseMeasurement parses s as quantity [('±'|'+-') quantity], returning the
// central value and, if present, the uncertainty.
func (r *Registry) ParseMeasurement(s string) (*Quantity, *Quantity, error) {
	located := NewLocatedString(s)
	tokens, err := tokenize(located)
	if err != nil {
		return nil, nil, err
	}
	w := newTokenWalker(r, located, tokens)
	q, unc, err := w.AcceptMeasurement()
	if err != nil {
		return nil, nil, err
	}
	if q == nil {
		return nil, nil, &ParseError{Message: "expected a quantity", Area: w.peekArea()}
	}
	if err := w.ExpectEOF(); err != nil {
		return nil, nil, err
	}
	return q, unc, nil
}

// ParseRange parses s as quantity '-' quantity, returning the lower and
// upper bounds.
func (r *Registry) ParseRange(s string) (*Quantity, *Quantity, error) {
	located := NewLocatedString(s)
	tokens, err := tokenize(located)
	if err != nil {
		return nil, nil, err
	}
	w := newTokenWalker(r, located, tokens)
	lo, hi, err := w.AcceptRange()
	if err != nil {
		return nil, nil, err
	}
	if err := w.ExpectEOF(); err != nil {
		return nil, nil, err
	}
	return lo, hi, nil
}

// ParseAssembly parses s as a standalone unit assembly (the grammar used for
// context option strings), consuming the whole of s.
func (r *Registry) ParseAssembly(s string) (*UnitAssembly, Dimensionality, error) {
	located := NewLocatedString(s)
	tokens, err := tokenize(located)
	if err != nil {
		return nil, nil, err
	}
	w := newTokenWalker(r, located, tokens)
	assembly, dim, err := w.AcceptAssembly()
	if err != nil {
		return nil, nil, err
	}
	if assembly == nil {
		return nil, nil, &ParseError{Message: "expected a unit assembly", Area: w.peekArea()}
	}
	if err := w.ExpectEOF(); err != nil {
		return nil, nil, err
	}
	return assembly, dim, nil
}

// ParseAssemblyContext parses s as an assembly and wraps it as a synthetic,
// single-variant SI Context — the supplemented "use this one string as an ad
// hoc presentation" path named in SPEC_FULL.md, letting callers format
// against a unit expression without first registering it under a name.
func (r *Registry) ParseAssemblyContext(s string) (*Context, error) {
	assembly, dim, err := r.ParseAssembly(s)
	if err != nil {
		return nil, err
	}
	expansions := expandAssembly(assembly)
	options := make([]ContextVariantOption, 0, len(expansions))
	for _, e := range expansions {
		options = append(options, ContextVariantOption{Assembly: e, Scale: e.Scale()})
	}
	return &Context{
		Dimensionality: dim,
		Variants: []ContextVariant{{
			Options: options,
			Systems: map[string]struct{}{"SI": {}},
		}},
	}, nil
}

// Context looks up a named, registered context (as opposed to the ad hoc
// ones ParseAssemblyContext builds).
func (r *Registry) Context(name string) (*Context, bool) {
	c, ok := r.contexts[name]
	return c, ok
}

func toDimensionality(m map[string]float64) Dimensionality {
	out := make(map[DimensionName]float64, len(m))
	for k, v := range m {
		out[DimensionName(k)] = v
	}
	return NewDimensionality(out)
}

// Load reads a registry document and compiles it into a Registry: prefix
// systems are transitively expanded, units are materialized (base form plus
// one derivative per applicable prefix) and indexed, and finally contexts
// are compiled by parsing each of their option strings against the
// units now in scope. A built-in dimensionless unit and context are always
// present, independent of the document.
func Load(r io.Reader) (*Registry, error) {
	var doc registryDocument
	md, err := toml.NewDecoder(r).Decode(&doc)
	if err != nil {
		return nil, &RegistryError{Message: fmt.Sprintf("decode registry: %v", err)}
	}
	return buildRegistry(&doc, md)
}

func buildRegistry(doc *registryDocument, md toml.MetaData) (*Registry, error) {
	reg := newRegistry()

	dimensionless := &AtomicUnit{
		id:            "dimensionless",
		labelSingular: "dimensionless",
		labelPlural:   "dimensionless",
		dimensionality: Dimensionality{},
		scale:         1,
		registry:      reg,
	}
	reg.unitsByID[dimensionless.id] = dimensionless
	reg.unitsByName[dimensionless.id] = dimensionless
	reg.contexts["dimensionless"] = &Context{
		Name:           "dimensionless",
		Dimensionality: Dimensionality{},
		Variants: []ContextVariant{{
			Options: []ContextVariantOption{{Assembly: ConstantUnitAssembly{}, Scale: 1}},
			Systems: map[string]struct{}{"SI": {}},
		}},
	}

	prefixSystems, err := expandPrefixSystems(doc.PrefixSystems)
	if err != nil {
		return nil, err
	}

	for _, du := range doc.Units {
		if err := loadUnit(reg, md, du, prefixSystems); err != nil {
			return nil, err
		}
	}

	for _, dc := range doc.Contexts {
		ctx, err := loadContext(reg, dc)
		if err != nil {
			return nil, err
		}
		reg.contexts[dc.Name] = ctx
	}

	return reg, nil
}

// expandPrefixSystems resolves each system's Extend references into a flat
// name -> prefixes map. Each system is expanded on its own by a recursive
// walk over its extend references with a set of already-visited systems, so
// cycles between extend references terminate instead of looping: a system
// reached a second time during one expansion contributes nothing more.
func expandPrefixSystems(systems []registryPrefixSystem) (map[string][]registryPrefix, error) {
	byName := make(map[string]registryPrefixSystem, len(systems))
	for _, s := range systems {
		byName[s.Name] = s
	}

	resolved := make(map[string][]registryPrefix, len(systems))

	var resolve func(name string, seen map[string]bool) ([]registryPrefix, error)
	resolve = func(name string, seen map[string]bool) ([]registryPrefix, error) {
		if seen[name] {
			// cycle: stop expanding further, contribute nothing more
			return nil, nil
		}
		seen[name] = true
		sys, ok := byName[name]
		if !ok {
			return nil, &RegistryError{Message: fmt.Sprintf("unknown prefix system %q in extend", name)}
		}
		var all []registryPrefix
		for _, parent := range sys.Extend {
			p, err := resolve(parent, seen)
			if err != nil {
				return nil, err
			}
			all = append(all, p...)
		}
		all = append(all, sys.Prefixes...)
		return all, nil
	}

	for name := range byName {
		p, err := resolve(name, map[string]bool{})
		if err != nil {
			return nil, err
		}
		resolved[name] = p
	}
	return resolved, nil
}

func loadUnit(reg *Registry, md toml.MetaData, du registryUnit, prefixSystems map[string][]registryPrefix) error {
	labelSingular, labelPlural, err := decodeStringPair(md, du.Label)
	if err != nil {
		return &RegistryError{Message: fmt.Sprintf("unit label: %v", err)}
	}

	var symbolSingular, symbolPlural string
	hasSymbol := du.Symbol != nil
	if hasSymbol {
		symbolSingular, symbolPlural, err = decodeStringPair(md, *du.Symbol)
		if err != nil {
			return &RegistryError{Message: fmt.Sprintf("unit symbol: %v", err)}
		}
	}

	dimensionality := toDimensionality(du.Dimensionality)
	offset := 0.0
	if du.Offset != nil {
		offset = *du.Offset
	}
	value := 1.0
	if du.Value != nil {
		value = *du.Value
	}

	id := labelSingular
	if hasSymbol {
		id = symbolSingular
	}

	unit := &AtomicUnit{
		id:             id,
		labelSingular:  labelSingular,
		labelPlural:    labelPlural,
		hasSymbol:      hasSymbol,
		symbolSingular: symbolSingular,
		symbolPlural:   symbolPlural,
		dimensionality: dimensionality,
		scale:          value,
		offset:         offset,
		registry:       reg,
	}

	reg.unitsByID[unit.id] = unit
	registerAliases(reg, unit, du.LabelNames, unit.labelSingular, unit.labelPlural)
	if hasSymbol {
		registerAliases(reg, unit, du.SymbolNames, unit.symbolSingular, unit.symbolPlural)
	}

	allUnits := []*AtomicUnit{unit}

	for _, prefixSystemName := range du.Prefixes {
		prefixes := prefixSystems[prefixSystemName]
		for _, prefix := range prefixes {
			prefixed := &AtomicUnit{
				id:             prefix.Symbol + unit.symbolSingular,
				labelSingular:  prefix.Label + unit.labelSingular,
				labelPlural:    prefix.Label + unit.labelPlural,
				hasSymbol:      hasSymbol,
				dimensionality: dimensionality,
				scale:          prefix.Factor * unit.scale,
				offset:         0,
				registry:       reg,
			}
			if hasSymbol {
				prefixed.symbolSingular = prefix.Symbol + unit.symbolSingular
				prefixed.symbolPlural = prefix.Symbol + unit.symbolPlural
			}
			if !hasSymbol {
				prefixed.id = prefix.Label + unit.labelSingular
			}

			reg.unitsByID[prefixed.id] = prefixed
			registerAliases(reg, prefixed, nil, prefixed.labelSingular, prefixed.labelPlural)
			if hasSymbol {
				symbolNames := prefix.SymbolNames
				if len(symbolNames) == 0 {
					symbolNames = []string{prefix.Symbol}
				}
				for _, ps := range symbolNames {
					for _, us := range effectiveSymbolNames(du.SymbolNames, unit) {
						reg.unitsByName[ps+us] = prefixed
					}
				}
			}
			allUnits = append(allUnits, prefixed)
		}
	}

	if key, ok := dimensionGroupKey(dimensionality); ok {
		addToGroup(reg, key, allUnits)
	}
	if hasSymbol {
		addToGroup(reg, unit.symbolSingular, allUnits)
	} else {
		addToGroup(reg, unit.labelSingular, allUnits)
	}

	return nil
}

func effectiveSymbolNames(declared []string, unit *AtomicUnit) []string {
	if len(declared) > 0 {
		return declared
	}
	return []string{unit.symbolSingular, unit.symbolPlural}
}

func registerAliases(reg *Registry, unit *AtomicUnit, declared []string, singular, plural string) {
	if len(declared) > 0 {
		for _, a := range declared {
			reg.unitsByName[a] = unit
		}
		return
	}
	reg.unitsByName[singular] = unit
	if plural != singular {
		reg.unitsByName[plural] = unit
	}
}

// dimensionGroupKey returns the group key a unit's dimensionality maps it
// to: the dimension's own name, but only when the unit is a pure, first
// power measure of exactly one dimension (e.g. meters are a "length", but
// meters-per-second are not a group of anything).
func dimensionGroupKey(d Dimensionality) (string, bool) {
	if len(d) != 1 {
		return "", false
	}
	for name, exp := range d {
		if exp == 1 {
			return string(name), true
		}
	}
	return "", false
}

// addToGroup appends units to the group under key, skipping any already
// present (by id) so repeated expansion of the same unit through multiple
// prefix systems never duplicates a group entry.
func addToGroup(reg *Registry, key string, units []*AtomicUnit) {
	existing := reg.unitGroups[key]
	seen := make(map[string]bool, len(existing))
	for _, u := range existing {
		seen[u.id] = true
	}
	for _, u := range units {
		if !seen[u.id] {
			existing = append(existing, u)
			seen[u.id] = true
		}
	}
	reg.unitGroups[key] = existing
}

func loadContext(reg *Registry, dc registryContext) (*Context, error) {
	ctx := &Context{Name: dc.Name}
	for _, dv := range dc.Variants {
		variant := ContextVariant{Systems: make(map[string]struct{}, len(dv.Systems))}
		for _, s := range dv.Systems {
			variant.Systems[s] = struct{}{}
		}
		if len(variant.Systems) == 0 {
			variant.Systems["SI"] = struct{}{}
		}
		for _, optionStr := range dv.Options {
			assembly, dim, err := reg.ParseAssembly(optionStr)
			if err != nil {
				return nil, err
			}
			if ctx.Dimensionality == nil {
				ctx.Dimensionality = dim
			} else if !ctx.Dimensionality.Equal(dim) {
				return nil, &RegistryError{Message: fmt.Sprintf("context %q: option %q has a different dimensionality than earlier options", dc.Name, optionStr)}
			}
			for _, expanded := range expandAssembly(assembly) {
				variant.Options = append(variant.Options, ContextVariantOption{Assembly: expanded, Scale: expanded.Scale()})
			}
		}
		ctx.Variants = append(ctx.Variants, variant)
	}
	return ctx, nil
}

func sortedSystems(m map[string]struct{}) []string {
	out := make([]string, 0, len(m))
	for s := range m {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}
