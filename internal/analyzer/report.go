package analyzer

import (
	"encoding/json"
	"fmt"
	"strings"

	"bigocheck/internal/config"
	"bigocheck/internal/models"

	"github.com/fatih/color"
)

// ReportGenerator handles formatting and displaying analysis results
type ReportGenerator struct {
	format string
	config *config.Config
}

// NewReportGenerator creates a new report generator
func NewReportGenerator(format string) *ReportGenerator {
	return &ReportGenerator{
		format: format,
		config: config.DefaultConfig(),
	}
}

func NewReportGeneratorWithConfig(cfg *config.Config) *ReportGenerator {
	return &ReportGenerator{
		format: cfg.Output.Format,
		config: cfg,
	}
}

// Generate creates a formatted report from analysis results
func (r *ReportGenerator) Generate(result *models.AnalysisResult) string {
	switch r.format {
	case "json":
		return r.generateJSON(result)
	default:
		return r.generateConsole(result)
	}
}

func (r *ReportGenerator) generateJSON(result *models.AnalysisResult) string {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Sprintf("Error generating JSON report: %v", err)
	}
	return string(data) + "\n"
}

func (r *ReportGenerator) generateConsole(result *models.AnalysisResult) string {
	var report strings.Builder

	useColors := true
	verbose := false
	if r.config != nil {
		useColors = r.config.Output.Colors
		verbose = r.config.Output.Verbose
	}

	p := printer{colors: useColors}

	report.WriteString(p.paint(color.FgCyan, "🔍 ", "BigOCheck Complexity Report\n"))
	if useColors {
		report.WriteString(color.WhiteString("═══════════════════════════════════════\n\n"))
	} else {
		report.WriteString("=======================================\n\n")
	}

	if verbose && r.config != nil {
		r.writeConfigInfo(&report, p)
	}

	r.writeSummary(&report, result, p)

	for _, file := range result.Files {
		r.writeFile(&report, file, p)
	}

	report.WriteString(p.paint(color.FgWhite, "", fmt.Sprintf("Analysis completed in %s\n", result.AnalysisDuration)))
	return report.String()
}

// printer applies a color and an emoji prefix only when colors are enabled.
type printer struct {
	colors bool
}

func (p printer) paint(attr color.Attribute, emoji, text string) string {
	if !p.colors {
		return text
	}
	return color.New(attr).Sprint(emoji + text)
}

func (r *ReportGenerator) writeConfigInfo(report *strings.Builder, p printer) {
	report.WriteString(p.paint(color.FgWhite, "📋 ", "Configuration:\n"))
	report.WriteString(fmt.Sprintf("   Default language: %s\n", r.config.Analysis.DefaultLanguage))
	report.WriteString(fmt.Sprintf("   Workers: %d\n", r.config.Analysis.MaxWorkers))
	if r.config.Rules.NestedLoops.Enabled {
		report.WriteString(fmt.Sprintf("   Max nested depth: %d\n", r.config.Rules.NestedLoops.MaxDepth))
	}
	report.WriteString("\n")
}

func (r *ReportGenerator) writeSummary(report *strings.Builder, result *models.AnalysisResult, p printer) {
	report.WriteString(p.paint(color.FgWhite, "📊 ", "Summary:\n"))
	report.WriteString(fmt.Sprintf("   Files analyzed: %d\n", result.FilesAnalyzed))
	if result.FilesFailed > 0 {
		report.WriteString(p.paint(color.FgRed, "", fmt.Sprintf("   Files failed: %d\n", result.FilesFailed)))
	}
	report.WriteString(fmt.Sprintf("   Functions: %d\n", result.TotalMethods))
	report.WriteString(fmt.Sprintf("   Recursive functions: %d\n", result.RecursiveMethods))
	report.WriteString(fmt.Sprintf("   Deepest loop nesting: %d\n", result.MaxNestedDepth))

	for _, severity := range []string{"CRITICAL", "HIGH", "MEDIUM", "LOW"} {
		if count := result.MethodsBySeverity[severity]; count > 0 {
			emoji, attr := severityDisplay(severity)
			report.WriteString(fmt.Sprintf("   %s: %d\n", p.paint(attr, emoji+" ", severity), count))
		}
	}
	report.WriteString("\n")
}

func (r *ReportGenerator) writeFile(report *strings.Builder, file models.FileResult, p printer) {
	report.WriteString(p.paint(color.FgCyan, "📄 ", file.File))
	if file.Language != "" {
		report.WriteString(fmt.Sprintf(" (%s)", file.Language))
	}
	report.WriteString("\n")
	report.WriteString(strings.Repeat("─", 50) + "\n")

	if file.Failed() {
		report.WriteString(p.paint(color.FgRed, "❌ ", fmt.Sprintf("   %s\n\n", file.Error)))
		return
	}
	if len(file.Methods) == 0 {
		report.WriteString("   No functions found\n\n")
		return
	}

	maxDepth := 0
	highlightRecursion := true
	if r.config != nil {
		if r.config.Rules.NestedLoops.Enabled {
			maxDepth = r.config.Rules.NestedLoops.MaxDepth
		}
		highlightRecursion = r.config.Rules.Recursion.Enabled
	}

	for _, m := range file.Methods {
		emoji, attr := severityDisplay(m.Severity)
		name := m.Method
		if m.IsRecursive && highlightRecursion {
			name += " ↻"
		}
		report.WriteString(fmt.Sprintf("   %s  time %s  space %s\n",
			p.paint(attr, emoji+" ", name),
			p.paint(color.FgYellow, "", m.TimeComplexity),
			m.SpaceComplexity))
		report.WriteString(fmt.Sprintf("      loops %s, nested depth %d", m.Loops, m.NestedDepth))
		if m.Line > 0 {
			report.WriteString(fmt.Sprintf(", line %d", m.Line))
		}
		report.WriteString("\n")
		if maxDepth > 0 && m.NestedDepth > maxDepth {
			report.WriteString(p.paint(color.FgRed, "      💡 ", fmt.Sprintf("nesting exceeds %d; consider a map lookup or pre-sorting to flatten the inner loops\n", maxDepth)))
		}
	}
	report.WriteString("\n")
}

// severityDisplay returns emoji and color for a severity level
func severityDisplay(severity string) (string, color.Attribute) {
	switch severity {
	case "CRITICAL":
		return "🚨", color.FgHiRed
	case "HIGH":
		return "❌", color.FgRed
	case "MEDIUM":
		return "⚠️", color.FgYellow
	case "LOW":
		return "✅", color.FgGreen
	default:
		return "❓", color.FgWhite
	}
}
