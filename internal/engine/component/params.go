package component

import sitter "github.com/tree-sitter/go-tree-sitter"

// HasDestructuredFirstParam reports whether fn's first parameter is an object
// pattern, either bare (`({ a })`) or behind a default (`({ a } = {})`).
// Array patterns and plain identifiers never qualify.
func HasDestructuredFirstParam(fn Function) bool {
	if fn == nil {
		return false
	}
	params := fn.Params()
	if len(params) == 0 {
		return false
	}
	return isObjectDestructuring(params[0])
}

func isObjectDestructuring(param *sitter.Node) bool {
	if param == nil {
		return false
	}
	switch param.Kind() {
	case nodeObjectPattern:
		return true
	case nodeAssignmentPattern:
		left := param.ChildByFieldName("left")
		return left != nil && left.Kind() == nodeObjectPattern
	case nodeRequiredParameter, nodeOptionalParameter:
		// TypeScript wraps every parameter; a default lives under "value"
		// rather than in an assignment_pattern.
		return isObjectDestructuring(param.ChildByFieldName("pattern"))
	}
	return false
}
