package detectors

import (
	"bigocheck/internal/models"
	"bigocheck/internal/syntax"
)

// ClassifyLoop estimates how many times the loop body runs relative to n.
//
// Counted loops are judged by their update clause: single steps and
// additive updates are linear, multiplicative updates logarithmic, and any
// other shape defaults to linear. Collection iteration is always linear.
// Condition-only loops are judged by the update shapes found anywhere in
// their body. Nodes that are not loops are UNKNOWN.
func ClassifyLoop(n *syntax.Node) models.LoopGrowth {
	if n == nil {
		return models.GrowthUnknown
	}

	switch n.Kind {
	case syntax.KindFor:
		if n.Update == nil {
			return models.GrowthLinear
		}
		if g, ok := updateGrowth(n.Update); ok {
			return g
		}
		return models.GrowthLinear

	case syntax.KindForEach:
		return models.GrowthLinear

	case syntax.KindWhile, syntax.KindDoWhile:
		return bodyGrowth(n.Body)

	default:
		return models.GrowthUnknown
	}
}

// updateGrowth classifies a single update expression. ok is false when the
// expression has no recognizable shape.
func updateGrowth(u *syntax.Node) (g models.LoopGrowth, ok bool) {
	switch u.Kind {
	case syntax.KindUnaryUpdate:
		if isStep(u.Op) {
			return models.GrowthLinear, true
		}
	case syntax.KindAssignUpdate:
		if isMultiplicative(u.Op) {
			return models.GrowthLogarithmic, true
		}
		if isAdditive(u.Op) {
			return models.GrowthLinear, true
		}
	}
	return models.GrowthUnknown, false
}

// bodyGrowth scans a loop body for update shapes. Nested loops are scanned
// too; nested function declarations are not. A multiplicative update wins.
func bodyGrowth(body []*syntax.Node) models.LoopGrowth {
	hasMultiply := false
	for _, stmt := range body {
		syntax.Walk(stmt, func(n *syntax.Node) bool {
			if n.Kind == syntax.KindFunctionDecl {
				return false
			}
			if g, ok := updateGrowth(n); ok && g == models.GrowthLogarithmic {
				hasMultiply = true
			}
			return !hasMultiply
		})
	}

	if hasMultiply {
		return models.GrowthLogarithmic
	}
	// steps, additive updates and bodies without any update are all linear
	return models.GrowthLinear
}

func isStep(op string) bool {
	return op == "++" || op == "--"
}

func isMultiplicative(op string) bool {
	switch op {
	case "*=", "/=", "<<=", ">>=", ">>>=":
		return true
	}
	return false
}

func isAdditive(op string) bool {
	return op == "+=" || op == "-="
}
