package context

import "bigocheck/internal/models"

// AnalysisContext is the traversal cursor threaded through one walk of a
// syntax tree: the function being analysed and the live loop depth.
// Entering a nested function saves the outer frame and leaving restores it,
// so inner loops and calls never leak into the outer report.
type AnalysisContext struct {
	Reports *models.ReportSet

	current   *models.MethodReport
	loopDepth int
	frames    []frame
}

type frame struct {
	report    *models.MethodReport
	loopDepth int
}

func NewAnalysisContext(reports *models.ReportSet) *AnalysisContext {
	if reports == nil {
		reports = models.NewReportSet()
	}
	return &AnalysisContext{Reports: reports}
}

// EnterFunction makes name the active function with a fresh loop depth.
func (c *AnalysisContext) EnterFunction(name string, line int) *models.MethodReport {
	c.frames = append(c.frames, frame{report: c.current, loopDepth: c.loopDepth})
	c.current = c.Reports.Declare(name, line)
	c.loopDepth = 0
	return c.current
}

// ExitFunction restores the enclosing function, if any.
func (c *AnalysisContext) ExitFunction() {
	if len(c.frames) == 0 {
		c.current = nil
		c.loopDepth = 0
		return
	}
	top := c.frames[len(c.frames)-1]
	c.frames = c.frames[:len(c.frames)-1]
	c.current = top.report
	c.loopDepth = top.loopDepth
}

// EnterLoop increments the loop depth and returns the new value.
func (c *AnalysisContext) EnterLoop() int {
	c.loopDepth++
	return c.loopDepth
}

func (c *AnalysisContext) ExitLoop() {
	if c.loopDepth > 0 {
		c.loopDepth--
	}
}

// Current returns the active function's report, nil outside any function.
func (c *AnalysisContext) Current() *models.MethodReport {
	return c.current
}

func (c *AnalysisContext) LoopDepth() int {
	return c.loopDepth
}
