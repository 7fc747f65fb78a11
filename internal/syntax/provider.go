package syntax

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"bigocheck/internal/models"
)

// Language identifies a source language a Provider can parse.
type Language string

const (
	LanguageGo   Language = "go"
	LanguageJava Language = "java"
)

// Provider turns one compilation unit into a reduced syntax tree.
// Parse never returns a partial tree: on any syntax error it returns a
// PARSE_FAILURE error and a nil node.
type Provider interface {
	Language() Language
	Extensions() []string
	Parse(filename string, src []byte) (*Node, error)
}

// Registry maps languages and file extensions to providers.
type Registry struct {
	byLanguage  map[Language]Provider
	byExtension map[string]Provider
}

func NewRegistry(providers ...Provider) *Registry {
	r := &Registry{
		byLanguage:  make(map[Language]Provider),
		byExtension: make(map[string]Provider),
	}
	for _, p := range providers {
		r.Register(p)
	}
	return r
}

// Register adds a provider, replacing any previous one for the same language.
func (r *Registry) Register(p Provider) {
	r.byLanguage[p.Language()] = p
	for _, ext := range p.Extensions() {
		r.byExtension[strings.ToLower(ext)] = p
	}
}

// ForLanguage returns the provider for a language name such as "go" or "java".
func (r *Registry) ForLanguage(lang Language) (Provider, error) {
	p, ok := r.byLanguage[Language(strings.ToLower(string(lang)))]
	if !ok {
		return nil, models.NewError(
			fmt.Errorf("unsupported language %q (supported: %s)", lang, strings.Join(r.Languages(), ", ")),
			models.ErrorCodeUnsupportedLanguage,
			map[string]any{"language": string(lang)},
		)
	}
	return p, nil
}

// ForFile picks a provider by the file extension.
func (r *Registry) ForFile(filename string) (Provider, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	p, ok := r.byExtension[ext]
	if !ok {
		return nil, models.NewError(
			fmt.Errorf("no parser for %s files", ext),
			models.ErrorCodeUnsupportedLanguage,
			map[string]any{"file": filename},
		)
	}
	return p, nil
}

// Supports reports whether some provider handles the file extension.
func (r *Registry) Supports(filename string) bool {
	_, ok := r.byExtension[strings.ToLower(filepath.Ext(filename))]
	return ok
}

// Languages returns the registered language names, sorted.
func (r *Registry) Languages() []string {
	names := make([]string, 0, len(r.byLanguage))
	for lang := range r.byLanguage {
		names = append(names, string(lang))
	}
	sort.Strings(names)
	return names
}

// Extensions returns the registered file extensions, sorted.
func (r *Registry) Extensions() []string {
	exts := make([]string, 0, len(r.byExtension))
	for ext := range r.byExtension {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}
