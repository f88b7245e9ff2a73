package parser

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"undestructure/internal/core/errors"
	"undestructure/internal/shared/observability"
	"undestructure/internal/shared/util"

	sitter "github.com/tree-sitter/go-tree-sitter"
)

// Tree is a parsed source file. The caller owns it and must Close it.
type Tree struct {
	Path     string
	Language string
	Source   []byte
	ParsedAt time.Time

	tree *sitter.Tree
}

func (t *Tree) Root() *sitter.Node {
	if t == nil || t.tree == nil {
		return nil
	}
	return t.tree.RootNode()
}

// HasErrors reports whether tree-sitter had to recover from syntax errors.
func (t *Tree) HasErrors() bool {
	root := t.Root()
	return root != nil && root.HasError()
}

func (t *Tree) Close() {
	if t != nil && t.tree != nil {
		t.tree.Close()
		t.tree = nil
	}
}

type Parser struct {
	loader     *GrammarLoader
	pools      map[string]*ParserPool
	extensions map[string]string
	testSuffix []string
}

func NewParser(loader *GrammarLoader) (*Parser, error) {
	registry := loader.LanguageRegistry()
	index, err := extensionIndex(registry)
	if err != nil {
		return nil, err
	}

	p := &Parser{
		loader:     loader,
		pools:      make(map[string]*ParserPool, len(registry)),
		extensions: index,
	}
	for _, name := range util.SortedStringKeys(registry) {
		if lang := loader.Language(name); lang != nil {
			p.pools[name] = NewParserPool(lang)
		}
		p.testSuffix = append(p.testSuffix, registry[name].TestFileSuffixes...)
	}
	return p, nil
}

func (p *Parser) ParseFile(path string, content []byte) (*Tree, error) {
	lang := p.GetLanguage(path)
	if lang == "" {
		return nil, errors.AddContext(errors.New(errors.CodeNotSupported, "unsupported language"), errors.CtxPath, path)
	}

	pool := p.pools[lang]
	if pool == nil {
		return nil, errors.New(errors.CodeInternal, fmt.Sprintf("grammar not loaded: %s", lang))
	}

	start := time.Now()
	sp := pool.Get()
	defer pool.Put(sp)

	tree := sp.Parse(content, nil)
	observability.ParsingDuration.WithLabelValues(lang).Observe(time.Since(start).Seconds())
	if tree == nil {
		err := errors.AddContext(errors.New(errors.CodeParseFailed, "parse failed"), errors.CtxPath, path)
		return nil, errors.AddContext(err, errors.CtxLanguage, lang)
	}

	return &Tree{
		Path:     path,
		Language: lang,
		Source:   content,
		ParsedAt: time.Now(),
		tree:     tree,
	}, nil
}

func (p *Parser) GetLanguage(path string) string {
	return detectLanguage(p.extensions, path)
}

func (p *Parser) IsSupportedPath(path string) bool {
	return p.GetLanguage(path) != ""
}

func (p *Parser) IsTestFile(path string) bool {
	base := strings.ToLower(filepath.Base(path))
	for _, suffix := range p.testSuffix {
		if strings.HasSuffix(base, strings.ToLower(suffix)) {
			return true
		}
	}
	return false
}

func (p *Parser) SupportedExtensions() []string {
	return util.SortedStringKeys(p.extensions)
}

// SupportedTestFileSuffixes lists the file name suffixes treated as tests.
func (p *Parser) SupportedTestFileSuffixes() []string {
	return append([]string(nil), p.testSuffix...)
}
