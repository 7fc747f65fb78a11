package models

type Severity int

const (
	SeverityLow Severity = iota
	SeverityMedium
	SeverityHigh
	SeverityCritical
)

func (s Severity) String() string {
	switch s {
	case SeverityLow:
		return "LOW"
	case SeverityMedium:
		return "MEDIUM"
	case SeverityHigh:
		return "HIGH"
	case SeverityCritical:
		return "CRITICAL"
	default:
		return "UNKNOWN"
	}
}

// MethodResult is the rendered estimate of one function.
type MethodResult struct {
	Method          string `json:"method"`
	TimeComplexity  string `json:"timeComplexity"`
	SpaceComplexity string `json:"spaceComplexity"`
	IsRecursive     bool   `json:"isRecursive"`
	NestedDepth     int    `json:"nestedDepth"`
	Loops           string `json:"loops"`
	Line            int    `json:"line,omitempty"`
	Severity        string `json:"severity,omitempty"`
}

// Response is the document returned by the HTTP and MCP boundaries.
type Response struct {
	Success bool           `json:"success"`
	Results []MethodResult `json:"results,omitempty"`
	Error   string         `json:"error,omitempty"`
}

// NewErrorResponse reports a failed analysis without any partial results.
func NewErrorResponse(err error) Response {
	msg := err.Error()
	if e, ok := err.(*Error); ok {
		msg = e.Message()
	}
	return Response{Success: false, Error: msg}
}

func NewResponse(results []MethodResult) Response {
	if results == nil {
		results = make([]MethodResult, 0)
	}
	return Response{Success: true, Results: results}
}

// FileResult is the outcome of analysing one file.
type FileResult struct {
	File     string         `json:"file"`
	Language string         `json:"language"`
	Methods  []MethodResult `json:"methods"`
	Error    string         `json:"error,omitempty"`
}

// Failed reports whether the file could not be analysed.
func (f FileResult) Failed() bool {
	return f.Error != ""
}

// AnalysisResult aggregates the outcome of a batch of files.
type AnalysisResult struct {
	Files             []FileResult   `json:"files"`
	FilesAnalyzed     int            `json:"files_analyzed"`
	FilesFailed       int            `json:"files_failed"`
	TotalMethods      int            `json:"total_methods"`
	RecursiveMethods  int            `json:"recursive_methods"`
	MethodsBySeverity map[string]int `json:"methods_by_severity"`
	MaxNestedDepth    int            `json:"max_nested_depth"`
	AnalysisDuration  string         `json:"analysis_duration"`
}

func NewAnalysisResult() *AnalysisResult {
	return &AnalysisResult{
		Files:             make([]FileResult, 0),
		MethodsBySeverity: make(map[string]int),
	}
}

// AddFile appends a file outcome and updates the totals.
func (ar *AnalysisResult) AddFile(f FileResult) {
	ar.Files = append(ar.Files, f)
	if f.Failed() {
		ar.FilesFailed++
		return
	}
	ar.FilesAnalyzed++
	for _, m := range f.Methods {
		ar.TotalMethods++
		if m.IsRecursive {
			ar.RecursiveMethods++
		}
		if m.NestedDepth > ar.MaxNestedDepth {
			ar.MaxNestedDepth = m.NestedDepth
		}
		ar.MethodsBySeverity[m.Severity]++
	}
}

// ExceedsDepth returns the methods nesting loops deeper than limit.
func (ar *AnalysisResult) ExceedsDepth(limit int) []MethodResult {
	var out []MethodResult
	for _, f := range ar.Files {
		for _, m := range f.Methods {
			if m.NestedDepth > limit {
				out = append(out, m)
			}
		}
	}
	return out
}
