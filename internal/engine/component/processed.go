package component

import sitter "github.com/tree-sitter/go-tree-sitter"

// ProcessedSet records the function nodes a run has already handed to the
// rewriter, so a revisit of the same node is never classified again.
// Node identity is only meaningful within one tree.
type ProcessedSet struct {
	ids map[uintptr]struct{}
}

func NewProcessedSet() *ProcessedSet {
	return &ProcessedSet{ids: make(map[uintptr]struct{})}
}

func (p *ProcessedSet) Mark(fn Function) {
	if fn == nil {
		return
	}
	p.ids[fn.Node().Id()] = struct{}{}
}

func (p *ProcessedSet) Has(fn Function) bool {
	if p == nil || fn == nil {
		return false
	}
	_, ok := p.ids[fn.Node().Id()]
	return ok
}

func (p *ProcessedSet) MarkNode(node *sitter.Node) {
	if node != nil {
		p.ids[node.Id()] = struct{}{}
	}
}

func (p *ProcessedSet) Len() int { return len(p.ids) }
