package models

import "strings"

// MethodReport accumulates the analysis of one function name.
//
// Functions that share a name (overloads, methods on different receivers)
// are merged into a single report.
type MethodReport struct {
	Name           string
	Loops          []LoopGrowth
	MaxNestedDepth int
	IsRecursive    bool
	Line           int

	callees []string
	called  map[string]struct{}
}

func NewMethodReport(name string) *MethodReport {
	return &MethodReport{
		Name:   name,
		Loops:  make([]LoopGrowth, 0),
		called: make(map[string]struct{}),
	}
}

// AddLoop records a loop seen at the given live nesting depth.
func (r *MethodReport) AddLoop(growth LoopGrowth, depth int) {
	r.Loops = append(r.Loops, growth)
	if depth > r.MaxNestedDepth {
		r.MaxNestedDepth = depth
	}
}

// AddCall records a callee name. It returns false if the name was already known.
func (r *MethodReport) AddCall(name string) bool {
	if r.called == nil {
		r.called = make(map[string]struct{})
	}
	if _, ok := r.called[name]; ok {
		return false
	}
	r.called[name] = struct{}{}
	r.callees = append(r.callees, name)
	return true
}

// Calls reports whether the function body calls name.
func (r *MethodReport) Calls(name string) bool {
	_, ok := r.called[name]
	return ok
}

// Callees returns the called names in first-call order.
func (r *MethodReport) Callees() []string {
	out := make([]string, len(r.callees))
	copy(out, r.callees)
	return out
}

// SpaceComplexity models call-stack growth: O(n) for recursive functions.
func (r *MethodReport) SpaceComplexity() string {
	if r.IsRecursive {
		return "O(n)"
	}
	return "O(1)"
}

// TimeComplexity composes the loop growths into a big-O expression. The
// first MaxNestedDepth loops in traversal order are treated as the nested
// chain and multiplied; later loops are treated as sequential and added.
func (r *MethodReport) TimeComplexity() string {
	if len(r.Loops) == 0 {
		if r.IsRecursive {
			return "O(n)"
		}
		return "O(1)"
	}

	var sb strings.Builder
	sb.WriteString("O(")
	for i, g := range r.Loops {
		switch {
		case i >= r.MaxNestedDepth:
			sb.WriteString(" + ")
		case i > 0:
			sb.WriteString(" * ")
		}
		sb.WriteString(g.Term())
	}
	sb.WriteString(")")
	return sb.String()
}

// LoopsString renders the ordered loop growths.
func (r *MethodReport) LoopsString() string {
	return FormatGrowths(r.Loops)
}

// Severity grades the report by nesting depth; recursion lifts LOW to MEDIUM.
func (r *MethodReport) Severity() Severity {
	var s Severity
	switch {
	case r.MaxNestedDepth <= 1:
		s = SeverityLow
	case r.MaxNestedDepth == 2:
		s = SeverityMedium
	case r.MaxNestedDepth == 3:
		s = SeverityHigh
	default:
		s = SeverityCritical
	}
	if r.IsRecursive && s < SeverityMedium {
		s = SeverityMedium
	}
	return s
}

// Result renders the report into its boundary form.
func (r *MethodReport) Result() MethodResult {
	return MethodResult{
		Method:          r.Name,
		TimeComplexity:  r.TimeComplexity(),
		SpaceComplexity: r.SpaceComplexity(),
		IsRecursive:     r.IsRecursive,
		NestedDepth:     r.MaxNestedDepth,
		Loops:           r.LoopsString(),
		Line:            r.Line,
		Severity:        r.Severity().String(),
	}
}
