package detectors

import (
	"bigocheck/internal/models"
	"bigocheck/internal/syntax"
)

// RecursionDetector marks every function that lies on a cycle of the call
// graph, which catches mutual recursion the traversal cannot see.
//
// Nodes are the declared functions; an edge a -> b exists when a calls b.
// Calls to names without a report are external and are not followed.
type RecursionDetector struct{}

func NewRecursionDetector() *RecursionDetector {
	return &RecursionDetector{}
}

func (d *RecursionDetector) Name() string {
	return "Recursion Detector"
}

func (d *RecursionDetector) Detect(_ *syntax.Node, reports *models.ReportSet) {
	for _, cycle := range FindCycles(reports) {
		for _, name := range cycle {
			reports.Get(name).IsRecursive = true
		}
	}
}

type visitState int

const (
	unvisited visitState = iota
	inProgress
	done
)

// FindCycles returns the groups of functions that call each other in a
// cycle: strongly connected components with more than one member, plus
// single functions calling themselves. Members are listed in the order the
// search reached them.
func FindCycles(reports *models.ReportSet) [][]string {
	f := &cycleFinder{
		reports: reports,
		state:   make(map[string]visitState, reports.Len()),
		index:   make(map[string]int, reports.Len()),
		low:     make(map[string]int, reports.Len()),
	}
	for _, r := range reports.Reports() {
		if f.state[r.Name] == unvisited {
			f.dfs(r.Name)
		}
	}
	return f.cycles
}

// cycleFinder is a three-state depth-first search with lowlink numbering,
// linear in functions plus call edges.
type cycleFinder struct {
	reports *models.ReportSet
	state   map[string]visitState
	index   map[string]int
	low     map[string]int
	stack   []string
	counter int
	cycles  [][]string
}

func (f *cycleFinder) dfs(name string) {
	f.state[name] = inProgress
	f.index[name] = f.counter
	f.low[name] = f.counter
	f.counter++
	f.stack = append(f.stack, name)

	report := f.reports.Get(name)
	for _, callee := range report.Callees() {
		if f.reports.Get(callee) == nil {
			continue
		}
		switch f.state[callee] {
		case unvisited:
			f.dfs(callee)
			f.low[name] = min(f.low[name], f.low[callee])
		case inProgress:
			f.low[name] = min(f.low[name], f.index[callee])
		}
	}

	if f.low[name] != f.index[name] {
		return
	}

	// name roots a component; pop it off the stack
	var component []string
	for {
		top := f.stack[len(f.stack)-1]
		f.stack = f.stack[:len(f.stack)-1]
		f.state[top] = done
		component = append(component, top)
		if top == name {
			break
		}
	}
	if len(component) > 1 || report.Calls(name) {
		for i, j := 0, len(component)-1; i < j; i, j = i+1, j-1 {
			component[i], component[j] = component[j], component[i]
		}
		f.cycles = append(f.cycles, component)
	}
}
