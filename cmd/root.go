package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"bigocheck/internal/analyzer"
	"bigocheck/internal/config"
	"bigocheck/internal/logger"
	"bigocheck/internal/models"
	"bigocheck/internal/syntax"
	"bigocheck/internal/watcher"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// Version is set at build time with -ldflags.
var Version = "dev"

var (
	formatFlag         string
	watchFlag          bool
	configFlag         string
	generateConfigFlag bool
	outputFlag         string
	failDepthFlag      int
	debugFlag          bool
	noColorFlag        bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "bigocheck [files or directories]",
	Short: "Estimate the time and space complexity of every function",
	Long: `bigocheck statically estimates the asymptotic time and space complexity
of each function or method in Go and Java sources. It classifies every loop by
how its control variable changes, composes nested and sequential loops into a
big-O expression, and detects direct and mutual recursion from the call graph.

The estimate is a heuristic from syntactic shape; no code is executed.

Examples:
  bigocheck .                              # Analyze current directory
  bigocheck Sort.java search.go            # Analyze specific files
  bigocheck --format=json .                # Output results in JSON format
  bigocheck --fail-depth=2 ./internal      # Exit 1 when loops nest deeper than 2
  bigocheck --config=.bigocheck.yml        # Use custom config
  bigocheck --generate-config              # Generate sample config file
  bigocheck serve                          # Start the HTTP analyzer`,
	Version:           Version,
	PersistentPreRunE: setup,
	RunE:              runAnalysis,
	SilenceUsage:      true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		color.Red("Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Path to configuration file")
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&noColorFlag, "no-color", false, "Disable colored output")

	rootCmd.Flags().StringVarP(&formatFlag, "format", "f", "", "Output format (console, json)")
	rootCmd.Flags().BoolVarP(&watchFlag, "watch", "w", false, "Watch mode for development")
	rootCmd.Flags().BoolVar(&generateConfigFlag, "generate-config", false, "Generate sample configuration file")
	rootCmd.Flags().StringVarP(&outputFlag, "output", "o", "", "Write the report to a file")
	rootCmd.Flags().IntVar(&failDepthFlag, "fail-depth", 0, "Exit with status 1 when any function nests loops deeper than this")
}

// cfg is loaded once per invocation by setup.
var cfg *config.Config

func setup(cmd *cobra.Command, args []string) error {
	loaded, err := config.LoadConfig(configFlag)
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}
	cfg = loaded

	if err := logger.SetLevelName(cfg.Logging.Level); err != nil {
		return fmt.Errorf("invalid logging level %q: %w", cfg.Logging.Level, err)
	}
	if debugFlag {
		logger.SetDebug(true)
	}
	if noColorFlag {
		cfg.Output.Colors = false
		color.NoColor = true
	}
	return nil
}

func runAnalysis(cmd *cobra.Command, args []string) error {
	if generateConfigFlag {
		return generateConfig()
	}

	if formatFlag != "" {
		cfg.Output.Format = formatFlag
	}
	if outputFlag != "" {
		cfg.Output.OutputFile = outputFlag
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	if len(args) == 0 {
		args = []string{"."}
	}

	analyzerEngine := analyzer.NewAnalyzerWithConfig(cfg)
	registry := analyzerEngine.Registry()

	var files []string
	for _, arg := range args {
		found, err := collectSourceFiles(arg, registry)
		if err != nil {
			color.Red("Error collecting files from %s: %v\n", arg, err)
			continue
		}
		files = append(files, found...)
	}

	if len(files) == 0 {
		color.Yellow("⚠️  No source files found to analyze (%s)\n", strings.Join(registry.Extensions(), ", "))
		return nil
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if watchFlag {
		return runWatch(ctx, analyzerEngine, args, files)
	}

	result, err := analyze(ctx, analyzerEngine, files)
	if err != nil {
		return err
	}

	if failDepthFlag > 0 {
		if offenders := result.ExceedsDepth(failDepthFlag); len(offenders) > 0 {
			return fmt.Errorf("%d function(s) nest loops deeper than %d", len(offenders), failDepthFlag)
		}
	}
	return nil
}

// analyze runs one batch and writes the report.
func analyze(ctx context.Context, engine *analyzer.Analyzer, files []string) (*models.AnalysisResult, error) {
	if cfg.Output.Format == "console" {
		if cfg.Output.Verbose {
			color.Cyan("🔍 Analyzing %d files with %s...\n", len(files), strings.Join(engine.GetDetectorNames(), ", "))
			if configFlag != "" {
				color.Cyan("📋 Using configuration: %s\n", configFlag)
			}
		} else {
			color.Cyan("🔍 Analyzing %d files...\n\n", len(files))
		}
	}

	result, err := engine.AnalyzeFiles(ctx, files)
	if err != nil {
		return nil, fmt.Errorf("analysis failed: %w", err)
	}

	report := analyzer.NewReportGeneratorWithConfig(cfg).Generate(result)

	if cfg.Output.OutputFile != "" {
		if err := writeReportToFile(report, cfg.Output.OutputFile); err != nil {
			color.Red("Failed to write report to file: %v\n", err)
		} else {
			color.Green("📄 Report saved to: %s\n", cfg.Output.OutputFile)
		}
	} else {
		fmt.Print(report)
	}
	return result, nil
}

func runWatch(ctx context.Context, engine *analyzer.Analyzer, paths, files []string) error {
	if _, err := analyze(ctx, engine, files); err != nil {
		return err
	}

	fw, err := watcher.NewFileWatcher(cfg, engine.Registry().Extensions())
	if err != nil {
		return err
	}
	defer fw.Close()

	err = fw.Watch(paths, func(changed []string) error {
		var existing []string
		for _, f := range changed {
			if _, err := os.Stat(f); err == nil {
				existing = append(existing, f)
			}
		}
		if len(existing) == 0 {
			return nil
		}
		color.Cyan("\n♻️  %d file(s) changed\n", len(existing))
		_, err := analyze(ctx, engine, existing)
		return err
	})
	if err != nil {
		return err
	}

	color.Cyan("👀 Watching %d directories, press Ctrl+C to stop\n", len(fw.GetWatchedPaths()))
	<-ctx.Done()
	return nil
}

func writeReportToFile(report, filePath string) error {
	dir := filepath.Dir(filePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	return os.WriteFile(filePath, []byte(report), 0644)
}

func generateConfig() error {
	configPath := ".bigocheck.yml"
	if err := config.GenerateConfig(configPath); err != nil {
		return fmt.Errorf("failed to generate config file: %w", err)
	}
	color.Green("✅ Generated sample configuration file: %s\n", configPath)
	color.Cyan("📝 Edit this file to customize bigocheck behavior\n")
	color.Cyan("🚀 Run 'bigocheck --config=%s .' to use it\n", configPath)
	return nil
}

// collectSourceFiles recursively finds the files a registered parser handles
func collectSourceFiles(path string, registry *syntax.Registry) ([]string, error) {
	var files []string

	err := filepath.Walk(path, func(filePath string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if info.IsDir() {
			name := info.Name()
			if filePath != path && (name == "vendor" || name == ".git" || name == "node_modules" || cfg.Excluded(filePath)) {
				return filepath.SkipDir
			}
			return nil
		}

		if !registry.Supports(filePath) {
			return nil
		}
		if config.IsTestFile(filePath) && !cfg.Files.IncludeTests {
			return nil
		}
		// explicitly named files are always analysed
		if filePath != path && (!cfg.Included(filePath) || cfg.Excluded(filePath)) {
			return nil
		}
		files = append(files, filePath)
		return nil
	})

	return files, err
}
