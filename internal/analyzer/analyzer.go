package analyzer

import (
	"context"
	"fmt"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"bigocheck/internal/analyzer/detectors"
	"bigocheck/internal/config"
	"bigocheck/internal/logger"
	"bigocheck/internal/models"
	"bigocheck/internal/syntax"
	"bigocheck/internal/syntax/golang"
	"bigocheck/internal/syntax/java"
)

// Analyzer parses sources and runs the detectors over the resulting tree.
// Every analysis owns a fresh ReportSet, so one Analyzer serves concurrent
// callers.
type Analyzer struct {
	registry  *syntax.Registry
	detectors []Detector
	config    *config.Config
}

// Detector is one pass over a parsed unit. Passes run in order and share the
// unit's ReportSet.
type Detector interface {
	Name() string
	Detect(root *syntax.Node, reports *models.ReportSet)
}

func NewAnalyzer() *Analyzer {
	return NewAnalyzerWithConfig(config.DefaultConfig())
}

func NewAnalyzerWithConfig(cfg *config.Config) *Analyzer {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &Analyzer{
		registry: syntax.NewRegistry(golang.NewParser(), java.NewParser()),
		detectors: []Detector{
			detectors.NewComplexityDetector(),
			// must run after the traversal has collected every call edge
			detectors.NewRecursionDetector(),
		},
		config: cfg,
	}
}

// Registry exposes the language providers, e.g. for file filtering.
func (a *Analyzer) Registry() *syntax.Registry {
	return a.registry
}

// Analyze runs the detectors over an already parsed tree.
func (a *Analyzer) Analyze(root *syntax.Node) *models.ReportSet {
	reports := models.NewReportSet()
	for _, d := range a.detectors {
		d.Detect(root, reports)
	}
	return reports
}

// AnalyzeSource parses src in the given language and returns its reports.
// An empty language selects the configured default. A parse failure returns
// the error and no reports.
func (a *Analyzer) AnalyzeSource(lang syntax.Language, filename string, src []byte) (*models.ReportSet, error) {
	if lang == "" {
		lang = syntax.Language(a.config.Analysis.DefaultLanguage)
	}
	provider, err := a.registry.ForLanguage(lang)
	if err != nil {
		return nil, err
	}
	return a.analyzeWith(provider, filename, src)
}

// Respond analyses src and renders the boundary document: every function's
// estimate on success, or only the error message on failure.
func (a *Analyzer) Respond(lang syntax.Language, filename string, src []byte) models.Response {
	reports, err := a.AnalyzeSource(lang, filename, src)
	if err != nil {
		return models.NewErrorResponse(err)
	}
	return models.NewResponse(reports.Results())
}

// AnalyzeFile picks the provider from the file extension.
func (a *Analyzer) AnalyzeFile(filename string) (*models.ReportSet, error) {
	provider, err := a.registry.ForFile(filename)
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(filename)
	if err != nil {
		return nil, models.NewError(err, models.ErrorCodeFileNotFound, map[string]any{"file": filename})
	}
	if limit := int64(a.config.Files.MaxFileSize) * 1024; info.Size() > limit {
		return nil, models.NewError(
			fmt.Errorf("%s is %d bytes, limit is %d", filename, info.Size(), limit),
			models.ErrorCodeFileTooLarge,
			map[string]any{"file": filename},
		)
	}

	src, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", filename, err)
	}
	return a.analyzeWith(provider, filename, src)
}

func (a *Analyzer) analyzeWith(provider syntax.Provider, filename string, src []byte) (*models.ReportSet, error) {
	root, err := provider.Parse(filename, src)
	if err != nil {
		return nil, err
	}
	reports := a.Analyze(root)
	logger.Debug("analyzed source", "file", filename, "language", provider.Language(), "functions", reports.Len())
	return reports, nil
}

// AnalyzeFiles analyses each file on a bounded worker pool. A file that
// fails is recorded in the result and does not stop the others. Results
// keep the order of filenames.
func (a *Analyzer) AnalyzeFiles(ctx context.Context, filenames []string) (*models.AnalysisResult, error) {
	startTime := time.Now()
	files := make([]models.FileResult, len(filenames))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(a.config.Analysis.MaxWorkers, 1))
	for i, filename := range filenames {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			files[i] = a.fileResult(filename)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("analysis interrupted: %w", err)
	}

	result := models.NewAnalysisResult()
	for _, f := range files {
		result.AddFile(f)
	}
	result.AnalysisDuration = time.Since(startTime).String()
	return result, nil
}

func (a *Analyzer) fileResult(filename string) models.FileResult {
	f := models.FileResult{File: filename, Methods: make([]models.MethodResult, 0)}
	if p, err := a.registry.ForFile(filename); err == nil {
		f.Language = string(p.Language())
	}

	reports, err := a.AnalyzeFile(filename)
	if err != nil {
		logger.Warn("analysis failed", "file", filename, "err", err)
		f.Error = err.Error()
		return f
	}
	f.Methods = reports.Results()
	return f
}

// GetDetectorNames returns the names of all active detectors
func (a *Analyzer) GetDetectorNames() []string {
	names := make([]string, len(a.detectors))
	for i, detector := range a.detectors {
		names[i] = detector.Name()
	}
	return names
}
