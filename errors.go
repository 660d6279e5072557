package quantops

import "fmt"

// LexError reports a single unrecognized character in the source text.
type LexError struct {
	Area LocationArea
}

func (e *LexError) Error() string {
	return fmt.Sprintf("invalid value at %s", e.Area)
}

// ParseError reports a token that was present but wrong, expected but
// absent (end of input), or an unmatched parenthesis.
type ParseError struct {
	Message string
	Area    LocationArea
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s at %s", e.Message, e.Area)
}

// NameError reports an identifier that does not resolve to a unit (or, in
// assembly context, to a unit or unit group).
type NameError struct {
	Message string
	Area    LocationArea
}

func (e *NameError) Error() string {
	return fmt.Sprintf("%s at %s", e.Message, e.Area)
}

// DimensionalError reports arithmetic across mismatched dimensionalities
// where the operation requires a match, or formatting against a context of
// a different dimensionality.
type DimensionalError struct {
	Message string
}

func (e *DimensionalError) Error() string {
	return e.Message
}

// RegistryError reports a cross-registry operation or a load-time failure
// (an undecodable document, a bad unit label or symbol, an unknown prefix
// system in extend, mismatched option dimensionality within a context).
type RegistryError struct {
	Message string
}

func (e *RegistryError) Error() string {
	return e.Message
}

// InvalidUnitNameError reports Registry.Unit being called with a name that
// does not resolve to any known unit.
type InvalidUnitNameError struct {
	Name string
}

func (e *InvalidUnitNameError) Error() string {
	return fmt.Sprintf("invalid unit name: %s", e.Name)
}

func errDifferentRegistries() error {
	return &RegistryError{Message: "operation with different registries"}
}

func errDifferentDimensionalities() error {
	return &DimensionalError{Message: "operation with different dimensionalities"}
}
