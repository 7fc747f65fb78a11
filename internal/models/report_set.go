package models

// ReportSet holds the reports of one analysis in first-declaration order.
// It is not safe for concurrent use.
type ReportSet struct {
	order  []*MethodReport
	byName map[string]*MethodReport
}

func NewReportSet() *ReportSet {
	return &ReportSet{
		byName: make(map[string]*MethodReport),
	}
}

// Declare returns the report for name, creating it on first sight.
func (s *ReportSet) Declare(name string, line int) *MethodReport {
	if r, ok := s.byName[name]; ok {
		return r
	}
	r := NewMethodReport(name)
	r.Line = line
	s.byName[name] = r
	s.order = append(s.order, r)
	return r
}

// Get returns the report for name, or nil when no such function was declared.
func (s *ReportSet) Get(name string) *MethodReport {
	return s.byName[name]
}

// Reports returns all reports in first-declaration order.
func (s *ReportSet) Reports() []*MethodReport {
	out := make([]*MethodReport, len(s.order))
	copy(out, s.order)
	return out
}

func (s *ReportSet) Len() int {
	return len(s.order)
}

// Results renders every report into its boundary form.
func (s *ReportSet) Results() []MethodResult {
	out := make([]MethodResult, 0, len(s.order))
	for _, r := range s.order {
		out = append(out, r.Result())
	}
	return out
}
