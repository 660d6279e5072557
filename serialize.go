package quantops

import "encoding/json"

// serializedAssemblyPart is the wire form of one ConstPart: [unit id, power].
type serializedAssemblyPart [2]interface{}

type serializedOption struct {
	Assembly []serializedAssemblyPart `json:"assembly"`
	Scale    float64                  `json:"value"`
}

type serializedVariant struct {
	Options []serializedOption `json:"options"`
	Systems []string           `json:"systems"`
}

type serializedContext struct {
	Variants []serializedVariant `json:"variants"`
}

type serializedUnit struct {
	Label  [2]string  `json:"label"`
	Symbol *[2]string `json:"symbol"`
	Offset float64    `json:"offset"`
	Scale  float64    `json:"value"`
}

type serializedRegistry struct {
	Contexts map[string]serializedContext `json:"contexts"`
	Units    map[string]serializedUnit    `json:"units"`
}

// Serialize renders the registry's contexts and units as the stable JSON
// wire contract named in SPEC_FULL.md: the shape a downstream process (a
// UI, another service) consumes without ever needing to re-run Load against
// the original declarative source.
func (r *Registry) Serialize() ([]byte, error) {
	out := serializedRegistry{
		Contexts: make(map[string]serializedContext, len(r.contexts)),
		Units:    make(map[string]serializedUnit, len(r.unitsByID)),
	}

	for name, ctx := range r.contexts {
		sctx := serializedContext{Variants: make([]serializedVariant, 0, len(ctx.Variants))}
		for _, v := range ctx.Variants {
			sv := serializedVariant{
				Systems: sortedSystems(v.Systems),
				Options: make([]serializedOption, 0, len(v.Options)),
			}
			for _, opt := range v.Options {
				sopt := serializedOption{Scale: opt.Scale, Assembly: make([]serializedAssemblyPart, 0, len(opt.Assembly))}
				for _, part := range opt.Assembly {
					sopt.Assembly = append(sopt.Assembly, serializedAssemblyPart{part.Unit.ID(), part.Power})
				}
				sv.Options = append(sv.Options, sopt)
			}
			sctx.Variants = append(sctx.Variants, sv)
		}
		out.Contexts[name] = sctx
	}

	for id, u := range r.unitsByID {
		su := serializedUnit{
			Label:  [2]string{u.Label(false), u.Label(true)},
			Offset: u.offset,
			Scale:  u.scale,
		}
		if sing, ok := u.Symbol(false); ok {
			plur, _ := u.Symbol(true)
			su.Symbol = &[2]string{sing, plur}
		}
		out.Units[id] = su
	}

	return json.Marshal(out)
}
