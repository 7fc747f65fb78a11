package golang

import (
	"go/ast"
	"go/parser"
	"go/scanner"
	"go/token"

	"bigocheck/internal/models"
	"bigocheck/internal/syntax"
)

// Parser reduces Go source files to syntax.Node trees.
type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

func (p *Parser) Language() syntax.Language {
	return syntax.LanguageGo
}

func (p *Parser) Extensions() []string {
	return []string{".go"}
}

func (p *Parser) Parse(filename string, src []byte) (*syntax.Node, error) {
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, filename, src, parser.SkipObjectResolution)
	if err != nil {
		if list, ok := err.(scanner.ErrorList); ok && len(list) > 0 {
			first := list[0]
			return nil, models.NewParseFailure(filename, first.Pos.Line, first.Pos.Column, first.Msg)
		}
		return nil, models.NewParseFailure(filename, 0, 0, err.Error())
	}

	b := &builder{fset: fset}
	unit := syntax.Unit()
	for _, decl := range file.Decls {
		unit.Add(b.nodes(decl)...)
	}
	return unit, nil
}

type builder struct {
	fset *token.FileSet
}

func (b *builder) line(pos token.Pos) int {
	return b.fset.Position(pos).Line
}

// nodes converts n into the relevant nodes it contains, in source order.
func (b *builder) nodes(n ast.Node) []*syntax.Node {
	if n == nil {
		return nil
	}

	switch n := n.(type) {
	case *ast.FuncDecl:
		fn := &syntax.Node{Kind: syntax.KindFunctionDecl, Name: funcName(n), Line: b.line(n.Pos())}
		if n.Body != nil {
			fn.AddBody(b.list(n.Body.List)...)
		}
		return []*syntax.Node{fn}

	case *ast.ForStmt:
		return []*syntax.Node{b.forStmt(n)}

	case *ast.RangeStmt:
		loop := &syntax.Node{Kind: syntax.KindForEach, Line: b.line(n.Pos())}
		loop.Add(b.nodes(n.X)...)
		loop.AddBody(b.list(n.Body.List)...)
		return []*syntax.Node{loop}

	case *ast.IncDecStmt:
		upd := &syntax.Node{Kind: syntax.KindUnaryUpdate, Op: n.Tok.String(), Line: b.line(n.Pos())}
		upd.Add(b.nodes(n.X)...)
		return []*syntax.Node{upd}

	case *ast.AssignStmt:
		if isCompound(n.Tok) {
			upd := &syntax.Node{Kind: syntax.KindAssignUpdate, Op: n.Tok.String(), Line: b.line(n.Pos())}
			upd.Add(b.exprs(n.Lhs)...)
			upd.Add(b.exprs(n.Rhs)...)
			return []*syntax.Node{upd}
		}

	case *ast.CallExpr:
		var out []*syntax.Node
		if name := calleeName(n.Fun); name != "" {
			call := &syntax.Node{Kind: syntax.KindCall, Name: name, Line: b.line(n.Pos())}
			call.Add(b.calleeOperands(n.Fun)...)
			call.Add(b.exprs(n.Args)...)
			return []*syntax.Node{call}
		}
		out = append(out, b.nodes(n.Fun)...)
		return append(out, b.exprs(n.Args)...)
	}

	return b.children(n)
}

func (b *builder) forStmt(n *ast.ForStmt) *syntax.Node {
	loop := &syntax.Node{Kind: syntax.KindFor, Line: b.line(n.Pos())}
	if n.Init == nil && n.Post == nil {
		// for cond {} and for {} are Go's while loops
		loop.Kind = syntax.KindWhile
	}
	loop.Add(b.nodes(n.Init)...)
	loop.Add(b.nodes(n.Cond)...)
	if n.Post != nil {
		post := b.nodes(n.Post)
		if len(post) == 1 && (post[0].Kind == syntax.KindUnaryUpdate || post[0].Kind == syntax.KindAssignUpdate) {
			loop.Update = post[0]
		} else {
			loop.Update = &syntax.Node{Kind: syntax.KindGroup, Children: post, Line: b.line(n.Post.Pos())}
		}
	}
	loop.AddBody(b.list(n.Body.List)...)
	return loop
}

// children flattens the direct AST children of n.
func (b *builder) children(n ast.Node) []*syntax.Node {
	var out []*syntax.Node
	first := true
	ast.Inspect(n, func(c ast.Node) bool {
		if first {
			first = false
			return true
		}
		if c == nil {
			return false
		}
		out = append(out, b.nodes(c)...)
		return false
	})
	return out
}

func (b *builder) list(stmts []ast.Stmt) []*syntax.Node {
	var out []*syntax.Node
	for _, s := range stmts {
		out = append(out, b.nodes(s)...)
	}
	return out
}

func (b *builder) exprs(exprs []ast.Expr) []*syntax.Node {
	var out []*syntax.Node
	for _, e := range exprs {
		out = append(out, b.nodes(e)...)
	}
	return out
}

// calleeOperands keeps calls nested in the callee expression, e.g. the
// receiver in a().b().
func (b *builder) calleeOperands(fun ast.Expr) []*syntax.Node {
	switch f := fun.(type) {
	case *ast.SelectorExpr:
		return b.nodes(f.X)
	case *ast.ParenExpr:
		return b.calleeOperands(f.X)
	case *ast.IndexExpr:
		return append(b.calleeOperands(f.X), b.nodes(f.Index)...)
	case *ast.IndexListExpr:
		return append(b.calleeOperands(f.X), b.exprs(f.Indices)...)
	}
	return nil
}

func funcName(fn *ast.FuncDecl) string {
	if fn.Name != nil {
		return fn.Name.Name
	}
	return "anonymous"
}

// calleeName returns the textual name of a call target, or "" when the
// target is not a plain or selected identifier.
func calleeName(fun ast.Expr) string {
	switch f := fun.(type) {
	case *ast.Ident:
		return f.Name
	case *ast.SelectorExpr:
		return f.Sel.Name
	case *ast.ParenExpr:
		return calleeName(f.X)
	case *ast.IndexExpr:
		return calleeName(f.X)
	case *ast.IndexListExpr:
		return calleeName(f.X)
	}
	return ""
}

func isCompound(tok token.Token) bool {
	switch tok {
	case token.ADD_ASSIGN, token.SUB_ASSIGN, token.MUL_ASSIGN, token.QUO_ASSIGN,
		token.REM_ASSIGN, token.SHL_ASSIGN, token.SHR_ASSIGN,
		token.AND_ASSIGN, token.OR_ASSIGN, token.XOR_ASSIGN, token.AND_NOT_ASSIGN:
		return true
	}
	return false
}
