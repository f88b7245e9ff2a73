package transform

import (
	"undestructure/internal/engine/component"
	"undestructure/internal/engine/parser"
)

// Finding describes one component function.
type Finding struct {
	Path   string           `json:"path"`
	Name   string           `json:"name,omitempty"`
	Kind   string           `json:"kind"`
	Line   int              `json:"line"`
	Column int              `json:"column"`
	Result component.Result `json:"result"`
	// Props lists the destructured keys, in source order, when Result is
	// ComponentWithDestructuring.
	Props      []string `json:"props,omitempty"`
	Rest       string   `json:"rest,omitempty"`
	HasDefault bool     `json:"has_default,omitempty"`
}

func newFinding(tree *parser.Tree, fn component.Function, result component.Result) Finding {
	pos := fn.Node().StartPosition()
	f := Finding{
		Path:   tree.Path,
		Name:   fn.DisplayName(),
		Kind:   fn.Kind().String(),
		Line:   int(pos.Row) + 1,
		Column: int(pos.Column) + 1,
		Result: result,
	}
	if result.NeedsRewrite() {
		shape := DescribeProps(fn, tree.Source)
		f.Props = shape.Keys
		f.Rest = shape.Rest
		f.HasDefault = shape.HasDefault
	}
	return f
}
