package component

import (
	"slices"
	"strings"

	"undestructure/internal/core/errors"

	sitter "github.com/tree-sitter/go-tree-sitter"
)

// AnnotationDetector reports whether a function is explicitly marked as a
// component. It may record bookkeeping in state but must not touch fn.
type AnnotationDetector interface {
	IsAnnotated(opts Options, fn Function, state *State) (bool, error)
}

// ImportCollector is implemented by detectors that must see a file's import
// declarations before the first function in it is classified.
type ImportCollector interface {
	CollectImports(root *sitter.Node, opts Options, state *State) error
}

const (
	nodeProgram         = "program"
	nodeImportStatement = "import_statement"
	nodeImportClause    = "import_clause"
	nodeNamespaceImport = "namespace_import"
	nodeNamedImports    = "named_imports"
	nodeImportSpecifier = "import_specifier"
	nodeMemberExpr      = "member_expression"
	nodeGenericType     = "generic_type"
	nodeTypeIdentifier  = "type_identifier"
	nodeNestedTypeIdent = "nested_type_identifier"
)

// MacroDetector recognizes two markers:
//
//	component(({ a }) => ...)         // macro imported from a MacroModule
//	const A: Component<P> = ({ a }) => // type imported from a TypeModule
//
// It is bound to the source of one file.
type MacroDetector struct {
	source []byte
}

func NewMacroDetector(source []byte) *MacroDetector {
	return &MacroDetector{source: source}
}

// Validate rejects option sets the detector cannot act on.
func (o AnnotationOptions) Validate() error {
	if len(o.MacroNames) == 0 && len(o.TypeNames) == 0 {
		return errors.New(errors.CodeValidationError, "annotation detector needs at least one macro name or type name")
	}
	if len(o.MacroNames) > 0 && len(o.MacroModules) == 0 {
		return errors.AddContext(errors.New(errors.CodeValidationError, "macro names configured without macro modules"), errors.CtxOption, "macro_modules")
	}
	if len(o.TypeNames) > 0 && len(o.TypeModules) == 0 {
		return errors.AddContext(errors.New(errors.CodeValidationError, "type names configured without type modules"), errors.CtxOption, "type_modules")
	}
	for _, list := range [][]string{o.MacroModules, o.MacroNames, o.TypeModules, o.TypeNames} {
		for _, v := range list {
			if strings.TrimSpace(v) == "" {
				return errors.New(errors.CodeValidationError, "annotation options must not contain blank entries")
			}
		}
	}
	return nil
}

// CollectImports records every local binding of a configured macro or type.
// Namespace imports are recorded as `ns.name`.
func (d *MacroDetector) CollectImports(root *sitter.Node, opts Options, state *State) error {
	if err := opts.Annotation.Validate(); err != nil {
		return err
	}
	if root == nil || root.Kind() != nodeProgram {
		return nil
	}

	for i := uint(0); i < root.NamedChildCount(); i++ {
		stmt := root.NamedChild(i)
		if stmt == nil || stmt.Kind() != nodeImportStatement {
			continue
		}
		module := unquote(d.text(stmt.ChildByFieldName("source")))
		isMacro := slices.Contains(opts.Annotation.MacroModules, module)
		isType := slices.Contains(opts.Annotation.TypeModules, module)
		if !isMacro && !isType {
			continue
		}
		for j := uint(0); j < stmt.NamedChildCount(); j++ {
			clause := stmt.NamedChild(j)
			if clause == nil || clause.Kind() != nodeImportClause {
				continue
			}
			d.collectClause(clause, module, isMacro, isType, opts.Annotation, state)
		}
	}
	return nil
}

func (d *MacroDetector) collectClause(clause *sitter.Node, module string, isMacro, isType bool, opts AnnotationOptions, state *State) {
	record := func(imported, local string) {
		if isMacro && slices.Contains(opts.MacroNames, imported) {
			state.addMacro(local, module)
		}
		if isType && slices.Contains(opts.TypeNames, imported) {
			state.addType(local, module)
		}
	}

	for i := uint(0); i < clause.NamedChildCount(); i++ {
		child := clause.NamedChild(i)
		switch child.Kind() {
		case nodeNamespaceImport:
			ns := firstIdentifier(child, d.source)
			if ns == "" {
				continue
			}
			for _, name := range opts.MacroNames {
				record(name, ns+"."+name)
			}
			for _, name := range opts.TypeNames {
				record(name, ns+"."+name)
			}
		case nodeNamedImports:
			for j := uint(0); j < child.NamedChildCount(); j++ {
				spec := child.NamedChild(j)
				if spec == nil || spec.Kind() != nodeImportSpecifier {
					continue
				}
				imported := unquote(d.text(spec.ChildByFieldName("name")))
				local := d.text(spec.ChildByFieldName("alias"))
				if local == "" {
					local = imported
				}
				record(imported, local)
			}
		}
	}
}

func (d *MacroDetector) IsAnnotated(opts Options, fn Function, state *State) (bool, error) {
	if fn == nil {
		return false, nil
	}
	if err := opts.Annotation.Validate(); err != nil {
		return false, errors.AddContext(err, errors.CtxFunction, fn.DisplayName())
	}
	if state == nil {
		return false, nil
	}

	if callee := d.macroCallee(fn.Node()); callee != "" && state.IsMacroBinding(callee) {
		state.markAnnotated()
		return true, nil
	}
	if typeName := d.declaredType(fn.Node()); typeName != "" && state.IsTypeBinding(typeName) {
		state.markAnnotated()
		return true, nil
	}
	return false, nil
}

// macroCallee returns the callee text when node is the first argument of a
// call, e.g. "component" or "m.component".
func (d *MacroDetector) macroCallee(node *sitter.Node) string {
	args := unwrapParens(node)
	if args == nil || args.Kind() != nodeArguments {
		return ""
	}
	first := firstArgument(args)
	if first == nil || first.Id() != node.Id() {
		return ""
	}
	call := args.Parent()
	if call == nil || call.Kind() != nodeCallExpression {
		return ""
	}

	callee := call.ChildByFieldName("function")
	if callee == nil {
		return ""
	}
	switch callee.Kind() {
	case nodeIdentifier:
		return d.text(callee)
	case nodeMemberExpr:
		object := callee.ChildByFieldName("object")
		property := callee.ChildByFieldName("property")
		if object == nil || property == nil || object.Kind() != nodeIdentifier {
			return ""
		}
		return d.text(object) + "." + d.text(property)
	}
	return ""
}

// declaredType returns the base name of the type annotation on the variable
// node initializes: `Component` for `const A: Component<P> = ...`.
func (d *MacroDetector) declaredType(node *sitter.Node) string {
	decl := enclosingDeclarator(node)
	if decl == nil {
		return ""
	}
	annotation := decl.ChildByFieldName("type")
	if annotation == nil || annotation.NamedChildCount() == 0 {
		return ""
	}
	typ := annotation.NamedChild(0)
	if typ.Kind() == nodeGenericType {
		typ = typ.ChildByFieldName("name")
	}
	if typ == nil {
		return ""
	}
	switch typ.Kind() {
	case nodeTypeIdentifier, nodeNestedTypeIdent:
		return strings.Join(strings.Fields(d.text(typ)), "")
	}
	return ""
}

func (d *MacroDetector) text(node *sitter.Node) string {
	if node == nil {
		return ""
	}
	return node.Utf8Text(d.source)
}

// firstArgument skips comments and unwraps parentheses.
func firstArgument(args *sitter.Node) *sitter.Node {
	for i := uint(0); i < args.NamedChildCount(); i++ {
		arg := args.NamedChild(i)
		if arg == nil || arg.Kind() == nodeComment {
			continue
		}
		for arg != nil && arg.Kind() == nodeParenthesized && arg.NamedChildCount() > 0 {
			arg = arg.NamedChild(0)
		}
		return arg
	}
	return nil
}

func firstIdentifier(node *sitter.Node, source []byte) string {
	for i := uint(0); i < node.NamedChildCount(); i++ {
		if child := node.NamedChild(i); child.Kind() == nodeIdentifier {
			return child.Utf8Text(source)
		}
	}
	return ""
}

func unquote(s string) string {
	return strings.Trim(strings.TrimSpace(s), "\"'`")
}
