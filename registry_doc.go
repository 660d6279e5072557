package quantops

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// registryDocument is the TOML shape a registry is loaded from: prefix
// systems, units and the contexts that present them. It mirrors the
// declarative unit.csv the teacher package embedded, generalized to the
// richer shape this domain needs (prefix expansion, multi-option contexts).
type registryDocument struct {
	PrefixSystems []registryPrefixSystem `toml:"prefix_systems"`
	Units         []registryUnit         `toml:"units"`
	Contexts      []registryContext      `toml:"contexts"`
}

type registryPrefixSystem struct {
	Name     string           `toml:"name"`
	Extend   []string         `toml:"extend"`
	Prefixes []registryPrefix `toml:"prefixes"`
}

type registryPrefix struct {
	Factor      float64  `toml:"factor"`
	Label       string   `toml:"label"`
	Symbol      string   `toml:"symbol"`
	SymbolNames []string `toml:"symbol_names"`
}

// registryUnit is a single declared unit. Label and Symbol decode lazily as
// toml.Primitive because each may be either a bare string (singular==plural)
// or a [singular, plural] pair; decodeStringPair resolves which.
type registryUnit struct {
	Dimensionality map[string]float64 `toml:"dimensionality"`
	Label          toml.Primitive     `toml:"label"`
	LabelNames     []string           `toml:"label_names"`
	Symbol         *toml.Primitive    `toml:"symbol"`
	SymbolNames    []string           `toml:"symbol_names"`
	Prefixes       []string           `toml:"prefixes"`
	Offset         *float64           `toml:"offset"`
	Value          *float64           `toml:"value"`
}

type registryContext struct {
	Name     string                   `toml:"name"`
	Variants []registryContextVariant `toml:"variants"`
}

type registryContextVariant struct {
	Options []string `toml:"options"`
	Systems []string `toml:"systems"`
}

// decodeStringPair resolves a toml.Primitive that is either a bare string or
// a two-element array into (singular, plural).
func decodeStringPair(md toml.MetaData, prim toml.Primitive) (string, string, error) {
	var single string
	if err := md.PrimitiveDecode(prim, &single); err == nil {
		return single, single, nil
	}
	var pair []string
	if err := md.PrimitiveDecode(prim, &pair); err != nil {
		return "", "", fmt.Errorf("expected a string or a [singular, plural] pair: %w", err)
	}
	if len(pair) != 2 {
		return "", "", fmt.Errorf("expected a [singular, plural] pair, got %d elements", len(pair))
	}
	return pair[0], pair[1], nil
}
