package quantops

import (
	_ "embed"
	"io"
	"strings"
)

//go:embed si.toml
var defaultRegistrySource string

// Default is the bundled SI-leaning registry, loaded once at package init
// the way the teacher package builds its StdUm singleton from an embedded
// CSV asset. Most callers that don't need a custom unit system can use this
// directly instead of calling Load themselves.
var Default = MustLoad(strings.NewReader(defaultRegistrySource))

// MustLoad is Load, panicking on failure; intended for package-init-time
// loading of a registry known to be well-formed (see Default above).
func MustLoad(r io.Reader) *Registry {
	reg, err := Load(r)
	if err != nil {
		panic(err)
	}
	return reg
}
