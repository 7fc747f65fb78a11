package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bigocheck/internal/analyzer"
	"bigocheck/internal/config"
	"bigocheck/internal/syntax"
)

func writeFile(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))
}

func TestCollectSourceFiles(t *testing.T) {
	cfg = config.DefaultConfig()
	registry := analyzer.NewAnalyzer().Registry()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "main.go"))
	writeFile(t, filepath.Join(dir, "main_test.go"))
	writeFile(t, filepath.Join(dir, "src", "Sort.java"))
	writeFile(t, filepath.Join(dir, "src", "SortTest.java"))
	writeFile(t, filepath.Join(dir, "vendor", "dep", "dep.go"))
	writeFile(t, filepath.Join(dir, "README.md"))

	t.Run("Should find supported sources and skip tests and vendored code", func(t *testing.T) {
		files, err := collectSourceFiles(dir, registry)
		require.NoError(t, err)
		assert.Equal(t, []string{
			filepath.Join(dir, "main.go"),
			filepath.Join(dir, "src", "Sort.java"),
		}, files)
	})

	t.Run("Should include tests when configured", func(t *testing.T) {
		cfg.Files.IncludeTests = true
		defer func() { cfg.Files.IncludeTests = false }()

		files, err := collectSourceFiles(dir, registry)
		require.NoError(t, err)
		assert.Len(t, files, 4)
	})

	t.Run("Should accept a single named file", func(t *testing.T) {
		path := filepath.Join(dir, "src", "Sort.java")
		files, err := collectSourceFiles(path, registry)
		require.NoError(t, err)
		assert.Equal(t, []string{path}, files)
	})

	t.Run("Should fail on missing paths", func(t *testing.T) {
		_, err := collectSourceFiles(filepath.Join(dir, "missing"), registry)
		assert.Error(t, err)
	})
}

func TestDemoSummary(t *testing.T) {
	engine := analyzer.NewAnalyzer()
	reports, err := engine.AnalyzeSource(syntax.LanguageJava, "Test.java", []byte(demoSource))
	require.NoError(t, err)

	depth, recursive := summarize(reports)
	assert.Equal(t, 0, depth)
	assert.Equal(t, []string{"fact"}, recursive)

	assert.Equal(t, "O(1)", polynomial(0))
	assert.Equal(t, "O(n)", polynomial(1))
	assert.Equal(t, "O(n^3)", polynomial(3))
}

func TestPageURL(t *testing.T) {
	assert.Equal(t, "http://localhost:8080/", pageURL(":8080"))
	assert.Equal(t, "http://127.0.0.1:9000/", pageURL("127.0.0.1:9000"))
}
