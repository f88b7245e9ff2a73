package component

import (
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// boundName is the name the naming heuristic looks at. Named function
// expressions use the variable they are assigned to, not their own name.
func boundName(fn Function) string {
	switch f := fn.(type) {
	case *Declaration:
		return f.Name
	case *Expression:
		return f.Binding
	case *Arrow:
		return f.Binding
	}
	return ""
}

// IsUppercaseComponentName reports whether fn's bound name starts with a
// character that upper-cases to itself. Only the first character is
// compared, so names starting with `_`, `$` or a digit also qualify.
// Upper-casing uses the full Unicode mapping, where `ß` becomes `SS`.
// A character outside the Basic Multilingual Plane qualifies: the check
// looks at one UTF-16 unit, and a lone surrogate has no case.
func IsUppercaseComponentName(opts Options, fn Function) bool {
	if !opts.UppercaseFuncNames {
		return false
	}

	name := boundName(fn)
	if name == "" {
		return false
	}

	first, _ := utf8.DecodeRuneInString(name)
	if first > 0xFFFF {
		return true
	}
	head := string(first)
	return cases.Upper(language.Und).String(head) == head
}
