package component

// Options is the per-run configuration of the classifier. It is built once
// and never mutated while a run is in progress.
type Options struct {
	// UppercaseFuncNames enables the naming fallback: unannotated functions
	// whose bound name starts with an uppercase character are components.
	UppercaseFuncNames bool
	Annotation         AnnotationOptions
}

// AnnotationOptions selects which imports mark a function as a component.
type AnnotationOptions struct {
	// MacroModules/MacroNames: `import { component } from "undestructure-macros"`
	// then `component((props) => ...)`.
	MacroModules []string
	MacroNames   []string
	// TypeModules/TypeNames: `import { Component } from "solid-js"` then
	// `const Foo: Component<P> = (props) => ...`.
	TypeModules []string
	TypeNames   []string
}

func DefaultAnnotationOptions() AnnotationOptions {
	return AnnotationOptions{
		MacroModules: []string{"undestructure-macros"},
		MacroNames:   []string{"component"},
		TypeModules:  []string{"solid-js"},
		TypeNames:    []string{"Component", "ParentComponent", "FlowComponent", "VoidComponent"},
	}
}

func DefaultOptions() Options {
	return Options{
		UppercaseFuncNames: false,
		Annotation:         DefaultAnnotationOptions(),
	}
}
