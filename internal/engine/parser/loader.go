package parser

import (
	"fmt"

	"undestructure/internal/shared/util"

	sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_javascript "github.com/tree-sitter/tree-sitter-javascript/bindings/go"
	tree_sitter_typescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"
)

type GrammarLoader struct {
	languages map[string]*sitter.Language
	registry  map[string]LanguageSpec
}

func NewGrammarLoader() (*GrammarLoader, error) {
	return NewGrammarLoaderWithRegistry(DefaultLanguageRegistry())
}

func NewGrammarLoaderWithRegistry(registry map[string]LanguageSpec) (*GrammarLoader, error) {
	if registry == nil {
		registry = DefaultLanguageRegistry()
	}
	if _, err := extensionIndex(registry); err != nil {
		return nil, err
	}

	gl := &GrammarLoader{
		languages: make(map[string]*sitter.Language),
		registry:  registry,
	}

	for _, langID := range util.SortedStringKeys(registry) {
		switch langID {
		case LangJavaScript:
			// The javascript grammar parses JSX without a separate dialect.
			gl.languages[langID] = sitter.NewLanguage(tree_sitter_javascript.Language())
		case LangTypeScript:
			gl.languages[langID] = sitter.NewLanguage(tree_sitter_typescript.LanguageTypescript())
		case LangTSX:
			gl.languages[langID] = sitter.NewLanguage(tree_sitter_typescript.LanguageTSX())
		default:
			return nil, fmt.Errorf("language %q is registered but no runtime grammar is bundled", langID)
		}
	}

	return gl, nil
}

func (gl *GrammarLoader) Language(name string) *sitter.Language {
	return gl.languages[name]
}

func (gl *GrammarLoader) LanguageRegistry() map[string]LanguageSpec {
	out := make(map[string]LanguageSpec, len(gl.registry))
	for name, spec := range gl.registry {
		out[name] = spec
	}
	return out
}
