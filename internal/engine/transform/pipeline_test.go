package transform

import (
	"context"
	"errors"
	"testing"

	coreerrors "undestructure/internal/core/errors"
	"undestructure/internal/engine/component"
	"undestructure/internal/engine/parser"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseTree(t *testing.T, path, code string) *parser.Tree {
	t.Helper()
	loader, err := parser.NewGrammarLoader()
	require.NoError(t, err)
	p, err := parser.NewParser(loader)
	require.NoError(t, err)
	tree, err := p.ParseFile(path, []byte(code))
	require.NoError(t, err)
	t.Cleanup(tree.Close)
	return tree
}

func uppercaseOpts() component.Options {
	opts := component.DefaultOptions()
	opts.UppercaseFuncNames = true
	return opts
}

const playground = `
import { component } from 'undestructure-macros'

component(({ a, b, c, ...other }) => <div>{a} {b} {c} {other.d}</div>)

const ArrowComp = ({ a, b, c, ...other }) => <div>{a} {b} {c} {other.d}</div>

const FunctionExpressionComp = function ({ a, b, c, ...other }) { return <div>{a} {b} {c} {other.d}</div>; }

const NamedExpressionComp = function Comp({ a, b, c, ...other }) { return <div>{a} {b} {c} {other.d}</div>; }

function FunctionComp({ a, b, c, ...other }) { return <div>{a} {b} {c} {other.d}</div>; }

function notAComponent({ a, b, c, ...other }) { return 2 + 2; }

const Plain = (props) => <div>{props.a}</div>
`

func TestRun_Playground(t *testing.T) {
	tree := parseTree(t, "playground.jsx", playground)
	rec := NewRecorder()

	out, err := Run(context.Background(), tree, uppercaseOpts(), rec)
	require.NoError(t, err)

	assert.Equal(t, 7, out.Classified)
	assert.Equal(t, 1, out.Annotated)
	assert.Equal(t, 5, out.Rewritten)
	require.Len(t, out.Findings, 6)

	names := make([]string, 0, len(out.Findings))
	for _, f := range out.Findings {
		names = append(names, f.Name)
	}
	assert.Equal(t, []string{"", "ArrowComp", "FunctionExpressionComp", "NamedExpressionComp", "FunctionComp", "Plain"}, names)

	plain := out.Findings[5]
	assert.Equal(t, component.ComponentNoDestructuring, plain.Result)
	assert.Empty(t, plain.Props)

	arrow := out.Findings[1]
	assert.Equal(t, component.ComponentWithDestructuring, arrow.Result)
	assert.Equal(t, "arrow", arrow.Kind)
	assert.Equal(t, 6, arrow.Line)
	assert.Equal(t, []string{"a", "b", "c"}, arrow.Props)
	assert.Equal(t, "other", arrow.Rest)

	assert.Len(t, rec.Targets(), 5)
}

func TestRun_NamingDisabledLeavesOnlyAnnotated(t *testing.T) {
	tree := parseTree(t, "playground.jsx", playground)

	out, err := Run(context.Background(), tree, component.DefaultOptions(), NewRecorder())
	require.NoError(t, err)

	require.Len(t, out.Findings, 1)
	assert.Equal(t, component.ComponentWithDestructuring, out.Findings[0].Result)
	assert.Equal(t, 4, out.Findings[0].Line)
}

func TestTraverse_SecondPassSkipsRewrittenFunctions(t *testing.T) {
	tree := parseTree(t, "app.jsx", `
function App({ title }) { return <h1>{title}</h1> }
const View = (props) => <p>{props.text}</p>
`)
	rec := NewRecorder()
	p := New(tree, uppercaseOpts(), rec)

	first, err := p.Traverse(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, first.Rewritten)

	second, err := p.Traverse(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, second.Rewritten)
	for _, f := range second.Findings {
		assert.NotEqual(t, component.ComponentWithDestructuring, f.Result, "processed function %q re-classified", f.Name)
	}
	assert.Len(t, rec.Targets(), 1)
}

func TestTraverse_NestedFunctionsInDocumentOrder(t *testing.T) {
	tree := parseTree(t, "nested.jsx", `
function Outer({ items }) {
  const Row = ({ item }) => <li>{item}</li>
  return items.map((item) => <Row item={item} />)
}
`)
	out, err := Run(context.Background(), tree, uppercaseOpts(), nil)
	require.NoError(t, err)

	require.Len(t, out.Findings, 2)
	assert.Equal(t, "Outer", out.Findings[0].Name)
	assert.Equal(t, "Row", out.Findings[1].Name)
	assert.Equal(t, 3, out.Classified)
}

func TestTraverse_PropsShapeWithDefaults(t *testing.T) {
	tree := parseTree(t, "card.tsx", `
const Card = ({ title, size = "md", onClick: handler }: Props = defaults) => <div onClick={handler}>{title}</div>
`)
	out, err := Run(context.Background(), tree, uppercaseOpts(), nil)
	require.NoError(t, err)

	require.Len(t, out.Findings, 1)
	f := out.Findings[0]
	assert.Equal(t, []string{"title", "size", "onClick"}, f.Props)
	assert.True(t, f.HasDefault)
	assert.Empty(t, f.Rest)
}

type failingRewriter struct{}

func (failingRewriter) Rewrite(*parser.Tree, component.Function) error {
	return errors.New("disk full")
}

func TestTraverse_RewriterErrorStopsRun(t *testing.T) {
	tree := parseTree(t, "app.jsx", `function App({ title }) { return title }`)

	_, err := Run(context.Background(), tree, uppercaseOpts(), failingRewriter{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
}

func TestTraverse_InvalidAnnotationOptions(t *testing.T) {
	tree := parseTree(t, "app.jsx", `function App({ title }) { return title }`)
	opts := uppercaseOpts()
	opts.Annotation = component.AnnotationOptions{}

	_, err := Run(context.Background(), tree, opts, nil)
	assert.True(t, coreerrors.IsCode(err, coreerrors.CodeValidationError), "got %v", err)
}

func TestTraverse_CancelledContext(t *testing.T) {
	tree := parseTree(t, "app.jsx", `function App({ title }) { return title }`)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Run(ctx, tree, uppercaseOpts(), nil)
	assert.ErrorIs(t, err, context.Canceled)
}
