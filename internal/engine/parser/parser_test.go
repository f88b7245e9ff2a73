package parser

import (
	"sync"
	"testing"

	"undestructure/internal/core/errors"
)

func newTestParser(t *testing.T) *Parser {
	t.Helper()
	loader, err := NewGrammarLoader()
	if err != nil {
		t.Fatal(err)
	}
	p, err := NewParser(loader)
	if err != nil {
		t.Fatal(err)
	}
	return p
}

func TestParseFile_DetectsLanguage(t *testing.T) {
	p := newTestParser(t)

	cases := map[string]string{
		"App.jsx":       LangJavaScript,
		"lib/index.mjs": LangJavaScript,
		"config.cjs":    LangJavaScript,
		"store.ts":      LangTypeScript,
		"Button.tsx":    LangTSX,
		"README.md":     "",
	}
	for path, want := range cases {
		if got := p.GetLanguage(path); got != want {
			t.Errorf("GetLanguage(%q) = %q, want %q", path, got, want)
		}
	}
}

func TestParseFile_JSX(t *testing.T) {
	p := newTestParser(t)

	tree, err := p.ParseFile("App.jsx", []byte(`const App = ({ title }) => <h1>{title}</h1>`))
	if err != nil {
		t.Fatal(err)
	}
	defer tree.Close()

	if tree.Language != LangJavaScript {
		t.Errorf("expected javascript, got %s", tree.Language)
	}
	if tree.Root() == nil || tree.Root().Kind() != "program" {
		t.Fatalf("expected program root, got %v", tree.Root())
	}
	if tree.HasErrors() {
		t.Error("expected JSX to parse without errors")
	}
}

func TestParseFile_TSX(t *testing.T) {
	p := newTestParser(t)

	src := `const Card: Component<Props> = ({ title }: Props) => <div>{title}</div>`
	tree, err := p.ParseFile("Card.tsx", []byte(src))
	if err != nil {
		t.Fatal(err)
	}
	defer tree.Close()

	if tree.HasErrors() {
		t.Error("expected TSX to parse without errors")
	}
}

func TestParseFile_Unsupported(t *testing.T) {
	p := newTestParser(t)

	_, err := p.ParseFile("main.go", []byte("package main"))
	if !errors.IsCode(err, errors.CodeNotSupported) {
		t.Fatalf("expected NOT_SUPPORTED, got %v", err)
	}
}

func TestIsTestFile(t *testing.T) {
	p := newTestParser(t)

	if !p.IsTestFile("src/Button.test.tsx") {
		t.Error("expected Button.test.tsx to be a test file")
	}
	if p.IsTestFile("src/Button.tsx") {
		t.Error("expected Button.tsx not to be a test file")
	}
}

func TestExtensionIndex_RejectsDuplicates(t *testing.T) {
	registry := DefaultLanguageRegistry()
	ts := registry[LangTypeScript]
	ts.Extensions = append(ts.Extensions, ".js")
	registry[LangTypeScript] = ts

	if _, err := NewGrammarLoaderWithRegistry(registry); err == nil {
		t.Fatal("expected duplicate extension validation error")
	}
}

func TestParserPool_ConcurrentParse(t *testing.T) {
	p := newTestParser(t)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tree, err := p.ParseFile("a.js", []byte(`function A({ x }) { return x }`))
			if err != nil {
				t.Error(err)
				return
			}
			tree.Close()
		}()
	}
	wg.Wait()

	if leased := p.pools[LangJavaScript].Leased(); leased != 0 {
		t.Errorf("expected all parsers returned, %d still leased", leased)
	}
}
