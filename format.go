package quantops

import (
	"math"
	"strconv"
	"strings"
)

// FormatStyle selects between a unit's symbol ("m/s") and its label
// ("meters per second") when rendering an assembly.
type FormatStyle int

const (
	StyleSymbol FormatStyle = iota
	StyleLabel
)

// Format renders q against the named context: it picks the variant scoped
// to system, then the best-fitting option within that variant, then renders
// the rescaled magnitude alongside the option's assembly.
//
// resolution controls how many decimal digits are shown: a positive value
// asks for ceil(-log10(resolution/scale)) digits (floored at zero, so a
// coarse resolution never asks for negative digits); a non-positive
// resolution (including the zero value) falls back to a fixed two decimal
// digits, matching how this registry's predecessor always formatted before
// resolution-aware rendering was added.
func (q *Quantity) Format(contextName string, resolution float64, style FormatStyle, system string) (string, error) {
	ctx, ok := q.registry.contexts[contextName]
	if !ok {
		return "", &DimensionalError{Message: "unknown context: " + contextName}
	}
	if !q.dimensionality.Equal(ctx.Dimensionality) {
		return "", &DimensionalError{Message: "quantity dimensionality does not match context " + contextName}
	}
	if system == "" {
		system = "SI"
	}
	variant, ok := ctx.VariantFor(system)
	if !ok {
		return "", &DimensionalError{Message: "context " + contextName + " has no variant for system " + system}
	}
	if len(variant.Options) == 0 {
		return "", &DimensionalError{Message: "context " + contextName + " has no options for system " + system}
	}

	var chosen ContextVariantOption
	if math.IsNaN(q.value) || math.IsInf(q.value, 0) {
		chosen = variant.Options[0]
	} else {
		chosen = selectBestOption(variant.Options, q.value)
	}

	value := q.value
	if len(chosen.Assembly) == 1 {
		value -= chosen.Assembly[0].Unit.offset
	}
	value /= chosen.Scale

	numStr := formatNumber(value, resolution, chosen.Scale)
	assemblyStr := formatAssembly(chosen.Assembly, style)

	if assemblyStr == "" {
		return numStr, nil
	}
	return numStr + " " + assemblyStr, nil
}

type selectionKeyT struct {
	lt1 bool
	mag float64
}

// computeSelectionKey mirrors the ranking tuple (v<1, v>1 ? v : -v): among
// candidates that are at least 1, the smallest wins (prefers "just above
// 1"); failing that, candidates below 1 are preferred over ones that
// reduce further still.
func computeSelectionKey(value, scale float64) selectionKeyT {
	v := value / scale
	lt1 := v < 1
	mag := v
	if !(v > 1) {
		mag = -v
	}
	return selectionKeyT{lt1: lt1, mag: mag}
}

func (a selectionKeyT) less(b selectionKeyT) bool {
	if a.lt1 != b.lt1 {
		return !a.lt1
	}
	return a.mag < b.mag
}

func selectBestOption(options []ContextVariantOption, value float64) ContextVariantOption {
	best := options[0]
	bestKey := computeSelectionKey(value, best.Scale)
	for _, opt := range options[1:] {
		key := computeSelectionKey(value, opt.Scale)
		if key.less(bestKey) {
			best, bestKey = opt, key
		}
	}
	return best
}

func formatNumber(value, resolution, scale float64) string {
	neg := value < 0
	mag := math.Abs(value)

	var s string
	if resolution > 0 {
		digits := math.Ceil(-math.Log10(resolution / scale))
		if digits < 0 {
			digits = 0
		}
		s = strconv.FormatFloat(mag, 'f', int(digits), 64)
	} else {
		s = strconv.FormatFloat(mag, 'f', 2, 64)
	}
	if neg {
		return "-" + s
	}
	return s
}

// formatAssembly renders a ConstantUnitAssembly, pluralizing only the first
// part (and only when its power is positive), separating subsequent parts
// with '*' or '/' depending on the sign of their power, and suppressing the
// superscript entirely for a bare first-power unit or an implied /unit.
func formatAssembly(assembly ConstantUnitAssembly, style FormatStyle) string {
	var b strings.Builder
	for i, part := range assembly {
		if i > 0 {
			if part.Power < 0 {
				b.WriteByte('/')
			} else {
				b.WriteByte('*')
			}
		}

		plural := i == 0 && part.Power > 0
		var name string
		if style == StyleLabel {
			name = part.Unit.Label(plural)
		} else if sym, ok := part.Unit.Symbol(plural); ok {
			name = sym
		} else {
			name = part.Unit.Label(plural)
		}
		b.WriteString(name)

		factor := part.Power
		if factor != 1 && (i < 1 || factor != -1) {
			supVal := factor
			if i > 0 {
				supVal = math.Abs(factor)
			}
			b.WriteString(formatSuperscript(supVal))
		}
	}
	return b.String()
}
