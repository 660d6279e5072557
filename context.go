package quantops

// ContextVariantOption is one presentable assembly within a variant, paired
// with its composed scale (the ratio between one unit of the assembly and
// the dimensionality's canonical base).
type ContextVariantOption struct {
	Assembly ConstantUnitAssembly
	Scale    float64
}

// ContextVariant is a set of interchangeable options (e.g. "meter" and
// "foot" both presenting a length) tagged with the measurement systems
// ("SI", "USCustomary", ...) it applies under.
type ContextVariant struct {
	Options []ContextVariantOption
	Systems map[string]struct{}
}

// HasSystem reports whether v applies under the named measurement system.
func (v ContextVariant) HasSystem(system string) bool {
	_, ok := v.Systems[system]
	return ok
}

// Context is a named presentation catalog for quantities of one
// dimensionality: a list of variants, each scoped to one or more
// measurement systems, each offering one or more candidate assemblies to
// choose the best-fitting one from at format time.
type Context struct {
	Name           string
	Dimensionality Dimensionality
	Variants       []ContextVariant
}

// VariantFor returns the first variant scoped to system, if any.
func (c *Context) VariantFor(system string) (*ContextVariant, bool) {
	for i := range c.Variants {
		if c.Variants[i].HasSystem(system) {
			return &c.Variants[i], true
		}
	}
	return nil, false
}
