package component

import (
	sitter "github.com/tree-sitter/go-tree-sitter"
)

// Tree-sitter node kinds the component engine reads.
const (
	nodeFunctionDeclaration  = "function_declaration"
	nodeGeneratorDeclaration = "generator_function_declaration"
	nodeFunctionExpression   = "function_expression"
	nodeGeneratorFunction    = "generator_function"
	nodeArrowFunction        = "arrow_function"

	nodeVariableDeclarator = "variable_declarator"
	nodeParenthesized      = "parenthesized_expression"
	nodeIdentifier         = "identifier"
	nodeComment            = "comment"

	nodeObjectPattern     = "object_pattern"
	nodeAssignmentPattern = "assignment_pattern"
	nodeRequiredParameter = "required_parameter"
	nodeOptionalParameter = "optional_parameter"

	nodeArguments      = "arguments"
	nodeCallExpression = "call_expression"
)

type FunctionKind int

const (
	KindDeclaration FunctionKind = iota
	KindExpression
	KindArrow
)

func (k FunctionKind) String() string {
	switch k {
	case KindDeclaration:
		return "declaration"
	case KindExpression:
		return "expression"
	case KindArrow:
		return "arrow"
	}
	return "unknown"
}

// Function is one function definition in a parsed tree. The set of
// implementations is closed: *Declaration, *Expression and *Arrow.
//
// A Function borrows its node from the tree; it must not outlive the tree
// or be kept across pipeline runs.
type Function interface {
	Kind() FunctionKind
	Node() *sitter.Node
	// Params returns the formal parameters in order, comments excluded.
	Params() []*sitter.Node
	// DisplayName is the best human-readable name, for reports only.
	DisplayName() string
	Line() int

	sealed()
}

type funcBase struct {
	node   *sitter.Node
	params []*sitter.Node
}

func (b *funcBase) Node() *sitter.Node     { return b.node }
func (b *funcBase) Params() []*sitter.Node { return b.params }
func (b *funcBase) Line() int              { return int(b.node.StartPosition().Row) + 1 }
func (b *funcBase) sealed()                {}

// Declaration is `function Name() {}`, the only variant that owns its name.
type Declaration struct {
	funcBase
	Name string
}

func (d *Declaration) Kind() FunctionKind  { return KindDeclaration }
func (d *Declaration) DisplayName() string { return d.Name }

// Expression is `function () {}` or `function inner() {}` used as a value.
// Binding is the identifier of the variable it initializes, if any.
type Expression struct {
	funcBase
	OwnName string
	Binding string
}

func (e *Expression) Kind() FunctionKind { return KindExpression }
func (e *Expression) DisplayName() string {
	if e.Binding != "" {
		return e.Binding
	}
	return e.OwnName
}

// Arrow is `(...) => ...`. Binding is the identifier of the variable it
// initializes, if any.
type Arrow struct {
	funcBase
	Binding string
}

func (a *Arrow) Kind() FunctionKind  { return KindArrow }
func (a *Arrow) DisplayName() string { return a.Binding }

// IsFunctionNode reports whether node is one of the function kinds FromNode accepts.
func IsFunctionNode(node *sitter.Node) bool {
	if node == nil {
		return false
	}
	switch node.Kind() {
	case nodeFunctionDeclaration, nodeGeneratorDeclaration,
		nodeFunctionExpression, nodeGeneratorFunction, nodeArrowFunction:
		return true
	}
	return false
}

// FromNode builds the Function variant for node. It returns false for any
// node that is not a function declaration, function expression or arrow
// function (methods and getters included).
func FromNode(node *sitter.Node, source []byte) (Function, bool) {
	if !IsFunctionNode(node) {
		return nil, false
	}
	base := funcBase{node: node, params: collectParams(node)}

	switch node.Kind() {
	case nodeFunctionDeclaration, nodeGeneratorDeclaration:
		return &Declaration{funcBase: base, Name: identifierText(node.ChildByFieldName("name"), source)}, true
	case nodeFunctionExpression, nodeGeneratorFunction:
		return &Expression{
			funcBase: base,
			OwnName:  identifierText(node.ChildByFieldName("name"), source),
			Binding:  parentBinding(node, source),
		}, true
	default:
		return &Arrow{funcBase: base, Binding: parentBinding(node, source)}, true
	}
}

func collectParams(node *sitter.Node) []*sitter.Node {
	// `x => ...` stores its lone identifier under "parameter".
	if single := node.ChildByFieldName("parameter"); single != nil {
		return []*sitter.Node{single}
	}
	list := node.ChildByFieldName("parameters")
	if list == nil {
		return nil
	}
	params := make([]*sitter.Node, 0, list.NamedChildCount())
	for i := uint(0); i < list.NamedChildCount(); i++ {
		child := list.NamedChild(i)
		if child == nil || child.Kind() == nodeComment {
			continue
		}
		params = append(params, child)
	}
	return params
}

// unwrapParens returns the nearest ancestor of node that is not a
// parenthesized expression.
func unwrapParens(node *sitter.Node) *sitter.Node {
	parent := node.Parent()
	for parent != nil && parent.Kind() == nodeParenthesized {
		parent = parent.Parent()
	}
	return parent
}

// enclosingDeclarator returns the variable declarator whose value is node,
// looking through parentheses.
func enclosingDeclarator(node *sitter.Node) *sitter.Node {
	parent := unwrapParens(node)
	if parent == nil || parent.Kind() != nodeVariableDeclarator {
		return nil
	}
	value := parent.ChildByFieldName("value")
	if value == nil || value.StartByte() > node.StartByte() || value.EndByte() < node.EndByte() {
		return nil
	}
	return parent
}

// parentBinding is the declarator identifier a function value is assigned
// to. Destructuring declarators have no single binding name.
func parentBinding(node *sitter.Node, source []byte) string {
	decl := enclosingDeclarator(node)
	if decl == nil {
		return ""
	}
	return identifierText(decl.ChildByFieldName("name"), source)
}

func identifierText(node *sitter.Node, source []byte) string {
	if node == nil || node.Kind() != nodeIdentifier {
		return ""
	}
	return node.Utf8Text(source)
}
