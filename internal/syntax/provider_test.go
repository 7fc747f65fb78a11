package syntax_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bigocheck/internal/models"
	"bigocheck/internal/syntax"
)

type stubProvider struct {
	lang syntax.Language
	exts []string
}

func (p stubProvider) Language() syntax.Language { return p.lang }
func (p stubProvider) Extensions() []string      { return p.exts }
func (p stubProvider) Parse(string, []byte) (*syntax.Node, error) {
	return syntax.Unit(), nil
}

func TestRegistry(t *testing.T) {
	registry := syntax.NewRegistry(
		stubProvider{lang: syntax.LanguageGo, exts: []string{".go"}},
		stubProvider{lang: syntax.LanguageJava, exts: []string{".java"}},
	)

	t.Run("Should find providers by language name regardless of case", func(t *testing.T) {
		p, err := registry.ForLanguage("JAVA")
		require.NoError(t, err)
		assert.Equal(t, syntax.LanguageJava, p.Language())
	})

	t.Run("Should reject unknown languages with a coded error", func(t *testing.T) {
		_, err := registry.ForLanguage("cobol")
		require.Error(t, err)
		assert.True(t, models.HasCode(err, models.ErrorCodeUnsupportedLanguage))
		assert.Contains(t, err.Error(), "go, java")
	})

	t.Run("Should pick providers by file extension", func(t *testing.T) {
		p, err := registry.ForFile("src/Main.JAVA")
		require.NoError(t, err)
		assert.Equal(t, syntax.LanguageJava, p.Language())

		assert.True(t, registry.Supports("main.go"))
		assert.False(t, registry.Supports("README.md"))

		_, err = registry.ForFile("script.py")
		assert.True(t, models.HasCode(err, models.ErrorCodeUnsupportedLanguage))
	})

	t.Run("Should list languages and extensions sorted", func(t *testing.T) {
		assert.Equal(t, []string{"go", "java"}, registry.Languages())
		assert.Equal(t, []string{".go", ".java"}, registry.Extensions())
	})
}

func TestNode(t *testing.T) {
	t.Run("Should skip nil children", func(t *testing.T) {
		n := syntax.Unit()
		n.Add(nil, &syntax.Node{Kind: syntax.KindCall, Name: "f"}, nil)
		n.AddBody(nil)
		assert.Len(t, n.Children, 1)
		assert.Empty(t, n.Body)
	})

	t.Run("Should collapse trivial groups", func(t *testing.T) {
		call := &syntax.Node{Kind: syntax.KindCall, Name: "f"}
		assert.Nil(t, syntax.Group(1))
		assert.Same(t, call, syntax.Group(1, nil, call))

		g := syntax.Group(3, call, &syntax.Node{Kind: syntax.KindCall, Name: "g"})
		require.NotNil(t, g)
		assert.Equal(t, syntax.KindGroup, g.Kind)
		assert.Equal(t, 3, g.Line)
		assert.Len(t, g.Children, 2)
	})

	t.Run("Should walk children then update then body", func(t *testing.T) {
		loop := &syntax.Node{
			Kind:     syntax.KindFor,
			Children: []*syntax.Node{{Kind: syntax.KindCall, Name: "cond"}},
			Update:   &syntax.Node{Kind: syntax.KindUnaryUpdate, Op: "++"},
			Body: []*syntax.Node{
				{Kind: syntax.KindWhile},
				{Kind: syntax.KindCall, Name: "work"},
			},
		}

		var kinds []string
		syntax.Walk(loop, func(n *syntax.Node) bool {
			kinds = append(kinds, n.Kind.String())
			return true
		})
		assert.Equal(t, []string{"For", "Call", "UnaryUpdate", "While", "Call"}, kinds)
		assert.Equal(t, 2, syntax.CountLoops(loop))
	})

	t.Run("Should not descend when the callback declines", func(t *testing.T) {
		fn := &syntax.Node{Kind: syntax.KindFunctionDecl, Body: []*syntax.Node{{Kind: syntax.KindFor}}}
		visited := 0
		syntax.Walk(fn, func(n *syntax.Node) bool {
			visited++
			return n.Kind != syntax.KindFunctionDecl
		})
		assert.Equal(t, 1, visited)
	})

	t.Run("Should name every kind", func(t *testing.T) {
		assert.Equal(t, "DoWhile", syntax.KindDoWhile.String())
		assert.Equal(t, "Kind(42)", syntax.Kind(42).String())
		assert.True(t, syntax.KindForEach.IsLoop())
		assert.False(t, syntax.KindCall.IsLoop())
	})
}
