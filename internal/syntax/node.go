package syntax

import "fmt"

// Kind is the closed set of node kinds the complexity analysis understands.
type Kind int

const (
	KindUnit Kind = iota
	KindGroup
	KindFunctionDecl
	KindFor
	KindForEach
	KindWhile
	KindDoWhile
	KindCall
	KindUnaryUpdate
	KindAssignUpdate
)

func (k Kind) String() string {
	switch k {
	case KindUnit:
		return "Unit"
	case KindGroup:
		return "Group"
	case KindFunctionDecl:
		return "FunctionDecl"
	case KindFor:
		return "For"
	case KindForEach:
		return "ForEach"
	case KindWhile:
		return "While"
	case KindDoWhile:
		return "DoWhile"
	case KindCall:
		return "Call"
	case KindUnaryUpdate:
		return "UnaryUpdate"
	case KindAssignUpdate:
		return "AssignUpdate"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// IsLoop reports whether the kind is one of the loop statements.
func (k Kind) IsLoop() bool {
	switch k {
	case KindFor, KindForEach, KindWhile, KindDoWhile:
		return true
	default:
		return false
	}
}

// Node is one element of the reduced syntax tree produced by a Provider.
//
// Providers keep only the nodes listed in Kind and flatten everything else,
// so Children and Body hold the relevant descendants in source order.
type Node struct {
	Kind Kind
	// Name is the declared name for FunctionDecl and the callee name for Call.
	Name string
	// Op is the operator of UnaryUpdate ("++", "--") and AssignUpdate ("+=", "*=", ...).
	Op string
	// Update is the first update clause of a For loop, nil when the loop has none.
	Update   *Node
	Children []*Node
	Body     []*Node
	Line     int
}

// Unit returns an empty compilation unit node.
func Unit() *Node {
	return &Node{Kind: KindUnit}
}

// Add appends child nodes, skipping nils.
func (n *Node) Add(children ...*Node) {
	for _, c := range children {
		if c != nil {
			n.Children = append(n.Children, c)
		}
	}
}

// AddBody appends body nodes, skipping nils.
func (n *Node) AddBody(children ...*Node) {
	for _, c := range children {
		if c != nil {
			n.Body = append(n.Body, c)
		}
	}
}

// Group wraps nodes into an opaque Group. It returns nil for an empty list
// and the single node itself when only one is given.
func Group(line int, nodes ...*Node) *Node {
	var kept []*Node
	for _, n := range nodes {
		if n != nil {
			kept = append(kept, n)
		}
	}
	switch len(kept) {
	case 0:
		return nil
	case 1:
		return kept[0]
	}
	return &Node{Kind: KindGroup, Children: kept, Line: line}
}

// Walk visits n and its descendants depth-first. The callback returns false
// to skip the node's descendants. Children are visited before Update and Body.
func Walk(n *Node, fn func(*Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	for _, c := range n.Children {
		Walk(c, fn)
	}
	Walk(n.Update, fn)
	for _, c := range n.Body {
		Walk(c, fn)
	}
}

// CountLoops returns the number of loop nodes under n, n included.
func CountLoops(n *Node) int {
	count := 0
	Walk(n, func(node *Node) bool {
		if node.Kind.IsLoop() {
			count++
		}
		return true
	})
	return count
}
