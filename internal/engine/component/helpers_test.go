package component

import (
	"testing"

	"undestructure/internal/engine/parser"

	sitter "github.com/tree-sitter/go-tree-sitter"
)

type parsedFile struct {
	tree      *parser.Tree
	functions []Function
}

func parse(t *testing.T, path, code string) parsedFile {
	t.Helper()
	loader, err := parser.NewGrammarLoader()
	if err != nil {
		t.Fatal(err)
	}
	p, err := parser.NewParser(loader)
	if err != nil {
		t.Fatal(err)
	}
	tree, err := p.ParseFile(path, []byte(code))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(tree.Close)
	if tree.HasErrors() {
		t.Fatalf("unexpected syntax errors in %s:\n%s", path, code)
	}

	var fns []Function
	var walk func(n *sitter.Node)
	walk = func(n *sitter.Node) {
		if fn, ok := FromNode(n, tree.Source); ok {
			fns = append(fns, fn)
		}
		for i := uint(0); i < n.NamedChildCount(); i++ {
			walk(n.NamedChild(i))
		}
	}
	walk(tree.Root())
	return parsedFile{tree: tree, functions: fns}
}

// only returns the single function of a one-function snippet.
func only(t *testing.T, pf parsedFile) Function {
	t.Helper()
	if len(pf.functions) != 1 {
		t.Fatalf("expected exactly one function, found %d", len(pf.functions))
	}
	return pf.functions[0]
}

func classifyOne(t *testing.T, path, code string, opts Options) (Result, *State) {
	t.Helper()
	pf := parse(t, path, code)
	fn := only(t, pf)

	state := NewState()
	detector := NewMacroDetector(pf.tree.Source)
	if err := detector.CollectImports(pf.tree.Root(), opts, state); err != nil {
		t.Fatal(err)
	}
	res, err := NewClassifier(opts, detector, NewProcessedSet(), state).Classify(fn)
	if err != nil {
		t.Fatal(err)
	}
	return res, state
}

func uppercaseOn() Options {
	opts := DefaultOptions()
	opts.UppercaseFuncNames = true
	return opts
}
