package component

import "sort"

// State is the run-scoped bookkeeping of the annotation detector: which
// local names resolve to a component macro or a component type. The detector
// is its only writer; everything else reads it.
type State struct {
	macros    map[string]string // local binding -> source module
	types     map[string]string
	annotated int
}

func NewState() *State {
	return &State{
		macros: make(map[string]string),
		types:  make(map[string]string),
	}
}

func (s *State) addMacro(local, module string) { s.macros[local] = module }
func (s *State) addType(local, module string)  { s.types[local] = module }
func (s *State) markAnnotated()                { s.annotated++ }

func (s *State) IsMacroBinding(local string) bool {
	_, ok := s.macros[local]
	return ok
}

func (s *State) IsTypeBinding(local string) bool {
	_, ok := s.types[local]
	return ok
}

// MacroBindings returns the local names bound to a component macro, sorted.
func (s *State) MacroBindings() []string { return sortedKeys(s.macros) }

// TypeBindings returns the local names bound to a component type, sorted.
func (s *State) TypeBindings() []string { return sortedKeys(s.types) }

// AnnotatedCount is how many functions the detector has reported as annotated.
func (s *State) AnnotatedCount() int { return s.annotated }

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
