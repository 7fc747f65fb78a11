package models

import "strings"

// LoopGrowth is how many times a loop body runs relative to the input size n.
type LoopGrowth int

const (
	GrowthConstant LoopGrowth = iota
	GrowthLinear
	GrowthLogarithmic
	GrowthUnknown
)

func (g LoopGrowth) String() string {
	switch g {
	case GrowthConstant:
		return "CONSTANT"
	case GrowthLinear:
		return "LINEAR"
	case GrowthLogarithmic:
		return "LOGARITHMIC"
	default:
		return "UNKNOWN"
	}
}

// Term is the factor the growth contributes to a big-O expression.
func (g LoopGrowth) Term() string {
	switch g {
	case GrowthConstant:
		return "1"
	case GrowthLinear:
		return "n"
	case GrowthLogarithmic:
		return "log n"
	default:
		return "?"
	}
}

// MarshalText renders the growth by name in JSON and YAML output.
func (g LoopGrowth) MarshalText() ([]byte, error) {
	return []byte(g.String()), nil
}

// FormatGrowths renders a growth sequence as "[LINEAR, LOGARITHMIC]".
func FormatGrowths(loops []LoopGrowth) string {
	parts := make([]string, len(loops))
	for i, g := range loops {
		parts[i] = g.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
