package transform

import (
	"undestructure/internal/engine/component"

	sitter "github.com/tree-sitter/go-tree-sitter"
)

// PropsShape is what a destructured props parameter pulls out of the object.
type PropsShape struct {
	Keys       []string
	Rest       string
	HasDefault bool
}

// DescribeProps reads the object pattern of fn's first parameter. It returns
// an empty shape when the first parameter is not object destructuring.
func DescribeProps(fn component.Function, source []byte) PropsShape {
	var shape PropsShape
	if !component.HasDestructuredFirstParam(fn) {
		return shape
	}

	pattern := fn.Params()[0]
	switch pattern.Kind() {
	case "required_parameter", "optional_parameter":
		shape.HasDefault = pattern.ChildByFieldName("value") != nil
		pattern = pattern.ChildByFieldName("pattern")
	case "assignment_pattern":
		shape.HasDefault = true
		pattern = pattern.ChildByFieldName("left")
	}
	if pattern == nil {
		return shape
	}

	for i := uint(0); i < pattern.NamedChildCount(); i++ {
		entry := pattern.NamedChild(i)
		switch entry.Kind() {
		case "shorthand_property_identifier_pattern":
			shape.Keys = append(shape.Keys, entry.Utf8Text(source))
		case "pair_pattern":
			shape.Keys = append(shape.Keys, text(entry.ChildByFieldName("key"), source))
		case "object_assignment_pattern":
			shape.Keys = append(shape.Keys, text(entry.ChildByFieldName("left"), source))
		case "rest_pattern":
			shape.Rest = restName(entry, source)
		}
	}
	return shape
}

func restName(rest *sitter.Node, source []byte) string {
	for i := uint(0); i < rest.NamedChildCount(); i++ {
		if child := rest.NamedChild(i); child.Kind() == "identifier" {
			return child.Utf8Text(source)
		}
	}
	return ""
}

func text(node *sitter.Node, source []byte) string {
	if node == nil {
		return ""
	}
	return node.Utf8Text(source)
}
