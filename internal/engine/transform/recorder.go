package transform

import (
	"sync"

	"undestructure/internal/engine/component"
	"undestructure/internal/engine/parser"
)

// Recorder is a Rewriter that collects rewrite targets instead of editing
// source. Safe for concurrent use so one Recorder can span a whole scan.
type Recorder struct {
	mu      sync.Mutex
	targets []Finding
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Rewrite(tree *parser.Tree, fn component.Function) error {
	f := newFinding(tree, fn, component.ComponentWithDestructuring)
	r.mu.Lock()
	r.targets = append(r.targets, f)
	r.mu.Unlock()
	return nil
}

// Targets returns a copy of the recorded rewrite targets.
func (r *Recorder) Targets() []Finding {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Finding, len(r.targets))
	copy(out, r.targets)
	return out
}
