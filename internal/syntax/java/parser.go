package java

import (
	"fmt"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_java "github.com/tree-sitter/tree-sitter-java/bindings/go"

	"bigocheck/internal/models"
	"bigocheck/internal/syntax"
)

// Parser reduces Java compilation units to syntax.Node trees using the
// tree-sitter Java grammar. A tree-sitter parser is created per call, so one
// Parser may be shared by concurrent analyses.
type Parser struct {
	language *tree_sitter.Language
}

func NewParser() *Parser {
	return &Parser{
		language: tree_sitter.NewLanguage(tree_sitter_java.Language()),
	}
}

func (p *Parser) Language() syntax.Language {
	return syntax.LanguageJava
}

func (p *Parser) Extensions() []string {
	return []string{".java"}
}

func (p *Parser) Parse(filename string, src []byte) (*syntax.Node, error) {
	parser := tree_sitter.NewParser()
	defer parser.Close()
	if err := parser.SetLanguage(p.language); err != nil {
		return nil, fmt.Errorf("failed to load java grammar: %w", err)
	}

	tree := parser.Parse(src, nil)
	if tree == nil {
		return nil, models.NewParseFailure(filename, 0, 0, "parser returned no tree")
	}
	defer tree.Close()

	root := tree.RootNode()
	if root == nil {
		return nil, models.NewParseFailure(filename, 0, 0, "parser returned no tree")
	}
	if root.HasError() {
		bad := firstError(root)
		if bad == nil {
			return nil, models.NewParseFailure(filename, 0, 0, "syntax error")
		}
		pos := bad.StartPosition()
		msg := "syntax error"
		if bad.IsMissing() {
			msg = fmt.Sprintf("missing %q", bad.Kind())
		} else if text := bad.Utf8Text(src); len(text) > 0 && len(text) <= 40 {
			msg = fmt.Sprintf("syntax error near %q", text)
		}
		return nil, models.NewParseFailure(filename, int(pos.Row)+1, int(pos.Column)+1, msg)
	}

	b := &builder{src: src}
	unit := syntax.Unit()
	unit.Add(b.children(root)...)
	return unit, nil
}

// firstError returns the first ERROR or MISSING node in document order.
func firstError(n *tree_sitter.Node) *tree_sitter.Node {
	if n.IsError() || n.IsMissing() {
		return n
	}
	if !n.HasError() {
		return nil
	}
	for i := uint(0); i < n.ChildCount(); i++ {
		child := n.Child(i)
		if child == nil {
			continue
		}
		if bad := firstError(child); bad != nil {
			return bad
		}
	}
	return nil
}

type builder struct {
	src []byte
}

func line(n *tree_sitter.Node) int {
	return int(n.StartPosition().Row) + 1
}

func sameNode(a, b *tree_sitter.Node) bool {
	if a == nil || b == nil {
		return false
	}
	return a.StartByte() == b.StartByte() && a.EndByte() == b.EndByte() && a.Kind() == b.Kind()
}

func (b *builder) nodes(n *tree_sitter.Node) []*syntax.Node {
	if n == nil || !n.IsNamed() {
		return nil
	}

	switch n.Kind() {
	case "method_declaration", "constructor_declaration":
		fn := &syntax.Node{Kind: syntax.KindFunctionDecl, Line: line(n)}
		if name := n.ChildByFieldName("name"); name != nil {
			fn.Name = name.Utf8Text(b.src)
		}
		if body := n.ChildByFieldName("body"); body != nil {
			fn.AddBody(b.children(body)...)
		}
		return []*syntax.Node{fn}

	case "for_statement":
		return []*syntax.Node{b.forStatement(n)}

	case "enhanced_for_statement":
		return []*syntax.Node{b.loop(n, syntax.KindForEach)}

	case "while_statement":
		return []*syntax.Node{b.loop(n, syntax.KindWhile)}

	case "do_statement":
		return []*syntax.Node{b.loop(n, syntax.KindDoWhile)}

	case "method_invocation":
		call := &syntax.Node{Kind: syntax.KindCall, Line: line(n)}
		if name := n.ChildByFieldName("name"); name != nil {
			call.Name = name.Utf8Text(b.src)
		}
		call.Add(b.children(n)...)
		return []*syntax.Node{call}

	case "update_expression":
		upd := &syntax.Node{Kind: syntax.KindUnaryUpdate, Line: line(n)}
		for i := uint(0); i < n.ChildCount(); i++ {
			child := n.Child(i)
			if child == nil {
				continue
			}
			if k := child.Kind(); !child.IsNamed() && (k == "++" || k == "--") {
				upd.Op = k
			}
		}
		upd.Add(b.children(n)...)
		return []*syntax.Node{upd}

	case "assignment_expression":
		op := n.ChildByFieldName("operator")
		if op != nil && op.Kind() != "=" {
			upd := &syntax.Node{Kind: syntax.KindAssignUpdate, Op: op.Kind(), Line: line(n)}
			upd.Add(b.children(n)...)
			return []*syntax.Node{upd}
		}
	}

	return b.children(n)
}

// loop builds a loop node whose "body" field goes to Body and every other
// child to Children.
func (b *builder) loop(n *tree_sitter.Node, kind syntax.Kind) *syntax.Node {
	node := &syntax.Node{Kind: kind, Line: line(n)}
	body := n.ChildByFieldName("body")
	for i := uint(0); i < n.ChildCount(); i++ {
		child := n.Child(i)
		if child == nil {
			continue
		}
		if sameNode(child, body) {
			node.AddBody(b.nodes(child)...)
			continue
		}
		node.Add(b.nodes(child)...)
	}
	return node
}

func (b *builder) forStatement(n *tree_sitter.Node) *syntax.Node {
	node := &syntax.Node{Kind: syntax.KindFor, Line: line(n)}
	body := n.ChildByFieldName("body")
	update := n.ChildByFieldName("update")
	for i := uint(0); i < n.ChildCount(); i++ {
		child := n.Child(i)
		if child == nil {
			continue
		}
		switch {
		case sameNode(child, body):
			node.AddBody(b.nodes(child)...)
		case sameNode(child, update):
			upd := b.nodes(child)
			if len(upd) == 1 && (upd[0].Kind == syntax.KindUnaryUpdate || upd[0].Kind == syntax.KindAssignUpdate) {
				node.Update = upd[0]
			} else {
				node.Update = &syntax.Node{Kind: syntax.KindGroup, Children: upd, Line: line(child)}
			}
		default:
			node.Add(b.nodes(child)...)
		}
	}
	return node
}

func (b *builder) children(n *tree_sitter.Node) []*syntax.Node {
	var out []*syntax.Node
	for i := uint(0); i < n.ChildCount(); i++ {
		child := n.Child(i)
		if child == nil {
			continue
		}
		out = append(out, b.nodes(child)...)
	}
	return out
}
