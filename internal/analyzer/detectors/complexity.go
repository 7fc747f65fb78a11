package detectors

import (
	analysis "bigocheck/internal/context"
	"bigocheck/internal/models"
	"bigocheck/internal/syntax"
)

// ComplexityDetector walks a syntax tree once and fills one report per
// declared function with its loop growths, nesting depth and callees.
type ComplexityDetector struct{}

func NewComplexityDetector() *ComplexityDetector {
	return &ComplexityDetector{}
}

func (d *ComplexityDetector) Name() string {
	return "Loop Complexity Detector"
}

func (d *ComplexityDetector) Detect(root *syntax.Node, reports *models.ReportSet) {
	v := &complexityVisitor{ctx: analysis.NewAnalysisContext(reports)}
	v.visit(root)
}

type complexityVisitor struct {
	ctx *analysis.AnalysisContext
}

func (v *complexityVisitor) visit(n *syntax.Node) {
	if n == nil {
		return
	}

	switch n.Kind {
	case syntax.KindFunctionDecl:
		v.ctx.EnterFunction(n.Name, n.Line)
		v.visitAll(n.Children)
		v.visitAll(n.Body)
		v.ctx.ExitFunction()

	case syntax.KindFor, syntax.KindForEach, syntax.KindWhile, syntax.KindDoWhile:
		depth := v.ctx.EnterLoop()
		if report := v.ctx.Current(); report != nil {
			report.AddLoop(ClassifyLoop(n), depth)
		}
		v.visitAll(n.Children)
		v.visit(n.Update)
		v.visitAll(n.Body)
		v.ctx.ExitLoop()

	case syntax.KindCall:
		if report := v.ctx.Current(); report != nil && n.Name != "" {
			report.AddCall(n.Name)
			if n.Name == report.Name {
				report.IsRecursive = true
			}
		}
		v.visitAll(n.Children)

	case syntax.KindUnit, syntax.KindGroup, syntax.KindUnaryUpdate, syntax.KindAssignUpdate:
		v.visitAll(n.Children)
		v.visitAll(n.Body)
	}
}

func (v *complexityVisitor) visitAll(nodes []*syntax.Node) {
	for _, n := range nodes {
		v.visit(n)
	}
}
