package component

import "fmt"

// Result is the classification outcome for one function.
type Result int

const (
	NotComponent Result = iota
	ComponentNoDestructuring
	ComponentWithDestructuring
)

func (r Result) IsComponent() bool {
	return r == ComponentNoDestructuring || r == ComponentWithDestructuring
}

// NeedsRewrite reports whether the props parameter must be rewritten.
func (r Result) NeedsRewrite() bool {
	return r == ComponentWithDestructuring
}

func (r Result) String() string {
	switch r {
	case NotComponent:
		return "not_component"
	case ComponentNoDestructuring:
		return "component"
	case ComponentWithDestructuring:
		return "component_destructuring"
	}
	return fmt.Sprintf("Result(%d)", int(r))
}

func (r Result) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

func (r *Result) UnmarshalText(text []byte) error {
	switch string(text) {
	case "not_component":
		*r = NotComponent
	case "component":
		*r = ComponentNoDestructuring
	case "component_destructuring":
		*r = ComponentWithDestructuring
	default:
		return fmt.Errorf("unknown classification result %q", string(text))
	}
	return nil
}
