package transform

import (
	"context"

	"undestructure/internal/core/errors"
	"undestructure/internal/engine/component"
	"undestructure/internal/engine/parser"
	"undestructure/internal/shared/observability"

	sitter "github.com/tree-sitter/go-tree-sitter"
)

// Rewriter consumes functions classified as ComponentWithDestructuring.
// The pipeline marks the function processed once Rewrite returns nil.
type Rewriter interface {
	Rewrite(tree *parser.Tree, fn component.Function) error
}

// Outcome is the result of one pipeline run over a tree.
type Outcome struct {
	Path       string
	Language   string
	Findings   []Finding
	Classified int
	Annotated  int
	Rewritten  int
}

// Pipeline owns the run-scoped state for one tree: the processed set and the
// annotation bookkeeping. It is not safe for concurrent use.
type Pipeline struct {
	tree       *parser.Tree
	opts       component.Options
	detector   component.AnnotationDetector
	classifier *component.Classifier
	rewriter   Rewriter
	prepared   bool
}

func New(tree *parser.Tree, opts component.Options, rewriter Rewriter) *Pipeline {
	return NewWithDetector(tree, opts, component.NewMacroDetector(tree.Source), rewriter)
}

func NewWithDetector(tree *parser.Tree, opts component.Options, detector component.AnnotationDetector, rewriter Rewriter) *Pipeline {
	return &Pipeline{
		tree:       tree,
		opts:       opts,
		detector:   detector,
		classifier: component.NewClassifier(opts, detector, component.NewProcessedSet(), component.NewState()),
		rewriter:   rewriter,
	}
}

// Run is New followed by a single Traverse.
func Run(ctx context.Context, tree *parser.Tree, opts component.Options, rewriter Rewriter) (*Outcome, error) {
	return New(tree, opts, rewriter).Traverse(ctx)
}

// Traverse visits every function in document order, parents before the
// functions nested in them. It may be called again on the same pipeline;
// functions rewritten by an earlier pass classify as NotComponent.
func (p *Pipeline) Traverse(ctx context.Context) (*Outcome, error) {
	root := p.tree.Root()
	out := &Outcome{Path: p.tree.Path, Language: p.tree.Language}
	if root == nil {
		return out, nil
	}

	if !p.prepared {
		if collector, ok := p.detector.(component.ImportCollector); ok {
			if err := collector.CollectImports(root, p.opts, p.classifier.State()); err != nil {
				return nil, errors.AddContext(err, errors.CtxPath, p.tree.Path)
			}
		}
		p.prepared = true
	}

	stack := []*sitter.Node{root}
	for len(stack) > 0 {
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if component.IsFunctionNode(node) {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			if err := p.visit(node, out); err != nil {
				return nil, err
			}
		}

		for i := node.NamedChildCount(); i > 0; i-- {
			if child := node.NamedChild(i - 1); child != nil {
				stack = append(stack, child)
			}
		}
	}

	out.Annotated = p.classifier.State().AnnotatedCount()
	return out, nil
}

func (p *Pipeline) visit(node *sitter.Node, out *Outcome) error {
	fn, ok := component.FromNode(node, p.tree.Source)
	if !ok {
		return nil
	}

	result, err := p.classifier.Classify(fn)
	if err != nil {
		err = errors.AddContext(err, errors.CtxPath, p.tree.Path)
		return errors.AddContext(err, errors.CtxFunction, fn.DisplayName())
	}
	out.Classified++
	observability.FunctionsClassifiedTotal.WithLabelValues(result.String()).Inc()

	if !result.IsComponent() {
		return nil
	}
	out.Findings = append(out.Findings, newFinding(p.tree, fn, result))

	if !result.NeedsRewrite() {
		return nil
	}
	if p.rewriter != nil {
		if err := p.rewriter.Rewrite(p.tree, fn); err != nil {
			return errors.AddContext(err, errors.CtxFunction, fn.DisplayName())
		}
	}
	p.classifier.Processed().Mark(fn)
	out.Rewritten++
	return nil
}

// State exposes the annotation bookkeeping collected so far.
func (p *Pipeline) State() *component.State {
	return p.classifier.State()
}
