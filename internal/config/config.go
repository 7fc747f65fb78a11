// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"
)

// Config represents the configuration for bigocheck
type Config struct {
	Version string `yaml:"version" json:"version"`

	Analysis AnalysisConfig `yaml:"analysis" json:"analysis"`
	Output   OutputConfig   `yaml:"output" json:"output"`
	Rules    RulesConfig    `yaml:"rules" json:"rules"`
	Files    FilesConfig    `yaml:"files" json:"files"`
	Server   ServerConfig   `yaml:"server" json:"server"`
	Logging  LoggingConfig  `yaml:"logging" json:"logging"`
}

type AnalysisConfig struct {
	// Files analysed concurrently; each analysis stays single-threaded
	MaxWorkers int `yaml:"max_workers" json:"max_workers"`

	// Language assumed when a source has no file name, e.g. HTTP bodies
	DefaultLanguage string `yaml:"default_language" json:"default_language"`
}

type OutputConfig struct {
	Format     string `yaml:"format" json:"format"`
	Colors     bool   `yaml:"colors" json:"colors"`
	Verbose    bool   `yaml:"verbose" json:"verbose"`
	OutputFile string `yaml:"output_file,omitempty" json:"output_file,omitempty"`
}

type RulesConfig struct {
	NestedLoops NestedLoopConfig `yaml:"nested_loops" json:"nested_loops"`
	Recursion   RecursionConfig  `yaml:"recursion" json:"recursion"`
}

type NestedLoopConfig struct {
	Enabled bool `yaml:"enabled" json:"enabled"`
	// Functions nesting deeper than this get a hint in the console report
	MaxDepth int `yaml:"max_depth" json:"max_depth"`
}

type RecursionConfig struct {
	// Highlight recursive functions in the console report
	Enabled bool `yaml:"enabled" json:"enabled"`
}

type FilesConfig struct {
	Include      []string `yaml:"include" json:"include"`
	Exclude      []string `yaml:"exclude" json:"exclude"`
	IncludeTests bool     `yaml:"include_tests" json:"include_tests"`
	// Max file size (in KB)
	MaxFileSize int `yaml:"max_file_size" json:"max_file_size"`
}

type ServerConfig struct {
	Addr            string `yaml:"addr" json:"addr"`
	AnalyzePath     string `yaml:"analyze_path" json:"analyze_path"`
	MaxBodyKB       int    `yaml:"max_body_kb" json:"max_body_kb"`
	ShutdownTimeout int    `yaml:"shutdown_timeout_seconds" json:"shutdown_timeout_seconds"`
}

type LoggingConfig struct {
	Level string `yaml:"level" json:"level"`
}

func DefaultConfig() *Config {
	return &Config{
		Version: "1.0",
		Analysis: AnalysisConfig{
			MaxWorkers:      4,
			DefaultLanguage: "java",
		},
		Output: OutputConfig{
			Format:  "console",
			Colors:  true,
			Verbose: false,
		},
		Rules: RulesConfig{
			NestedLoops: NestedLoopConfig{
				Enabled:  true,
				MaxDepth: 3,
			},
			Recursion: RecursionConfig{
				Enabled: true,
			},
		},
		Files: FilesConfig{
			Include:      []string{"**/*.go", "**/*.java"},
			Exclude:      []string{"vendor/**", "**/.git/**", "**/node_modules/**"},
			IncludeTests: false,
			MaxFileSize:  1024, // 1MB
		},
		Server: ServerConfig{
			Addr:            ":8080",
			AnalyzePath:     "/analyze",
			MaxBodyKB:       1024,
			ShutdownTimeout: 5,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// LoadConfig loads configuration from file or returns default
func LoadConfig(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = findConfigFile()
	}

	if configPath == "" {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
	}

	return ParseConfig(data, configPath)
}

// ParseConfig decodes YAML over the defaults and validates the result.
func ParseConfig(data []byte, source string) (*Config, error) {
	config := DefaultConfig()

	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", source, err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// findConfigFile looks for config files in common locations
func findConfigFile() string {
	possiblePaths := []string{
		".bigocheck.yml",
		".bigocheck.yaml",
		"bigocheck.yml",
		"bigocheck.yaml",
		".config/bigocheck.yml",
		".config/bigocheck.yaml",
	}

	for _, path := range possiblePaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	validFormats := []string{"console", "json"}
	if !slices.Contains(validFormats, c.Output.Format) {
		return fmt.Errorf("invalid output format: %s (valid: %v)", c.Output.Format, validFormats)
	}

	if c.Analysis.MaxWorkers < 1 {
		return fmt.Errorf("max_workers must be at least 1")
	}

	validLanguages := []string{"go", "java"}
	if !slices.Contains(validLanguages, c.Analysis.DefaultLanguage) {
		return fmt.Errorf("invalid default_language: %s (valid: %v)", c.Analysis.DefaultLanguage, validLanguages)
	}

	if c.Rules.NestedLoops.Enabled && c.Rules.NestedLoops.MaxDepth < 1 {
		return fmt.Errorf("nested_loops.max_depth must be at least 1")
	}

	for _, pattern := range append(slices.Clone(c.Files.Include), c.Files.Exclude...) {
		if !doublestar.ValidatePattern(pattern) {
			return fmt.Errorf("invalid file pattern: %q", pattern)
		}
	}

	if c.Files.MaxFileSize < 1 {
		return fmt.Errorf("max_file_size must be at least 1 KB")
	}

	if c.Server.MaxBodyKB < 1 {
		return fmt.Errorf("server.max_body_kb must be at least 1")
	}

	if c.Server.AnalyzePath == "" || c.Server.AnalyzePath[0] != '/' || c.Server.AnalyzePath == "/" {
		return fmt.Errorf("server.analyze_path must be an absolute path other than /")
	}

	return nil
}

// SaveConfig saves configuration to file
func (c *Config) SaveConfig(configPath string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// GenerateConfig creates a sample configuration file
func GenerateConfig(configPath string) error {
	config := DefaultConfig()
	return config.SaveConfig(configPath)
}

// Excluded reports whether a slash-separated path matches an exclude pattern.
func (c *Config) Excluded(path string) bool {
	path = matchPath(path)
	for _, pattern := range c.Files.Exclude {
		if ok, _ := doublestar.Match(pattern, path); ok {
			return true
		}
	}
	return false
}

// Included reports whether a path matches an include pattern, or whether
// no include patterns are configured.
func (c *Config) Included(path string) bool {
	if len(c.Files.Include) == 0 {
		return true
	}
	path = matchPath(path)
	for _, pattern := range c.Files.Include {
		if ok, _ := doublestar.Match(pattern, path); ok {
			return true
		}
	}
	return false
}

// IsTestFile reports whether the file is a Go or Java test source.
func IsTestFile(path string) bool {
	base := filepath.Base(path)
	switch filepath.Ext(base) {
	case ".go":
		return strings.HasSuffix(base, "_test.go")
	case ".java":
		name := strings.TrimSuffix(base, ".java")
		return name != "Test" && strings.HasSuffix(name, "Test")
	}
	return false
}

func matchPath(path string) string {
	path = filepath.ToSlash(filepath.Clean(path))
	return strings.TrimLeft(path, "/")
}
