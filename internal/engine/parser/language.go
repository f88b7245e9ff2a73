package parser

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
)

const (
	LangJavaScript = "javascript"
	LangTypeScript = "typescript"
	LangTSX        = "tsx"
)

// LanguageSpec describes which files a grammar is responsible for.
type LanguageSpec struct {
	Name             string
	Extensions       []string
	TestFileSuffixes []string
}

var defaultLanguageSpecs = map[string]LanguageSpec{
	LangJavaScript: {
		Name:             LangJavaScript,
		Extensions:       []string{".js", ".jsx", ".mjs", ".cjs"},
		TestFileSuffixes: []string{".test.js", ".spec.js", ".test.jsx", ".spec.jsx"},
	},
	LangTypeScript: {
		Name:             LangTypeScript,
		Extensions:       []string{".ts", ".mts", ".cts"},
		TestFileSuffixes: []string{".test.ts", ".spec.ts"},
	},
	LangTSX: {
		Name:             LangTSX,
		Extensions:       []string{".tsx"},
		TestFileSuffixes: []string{".test.tsx", ".spec.tsx"},
	},
}

// DefaultLanguageRegistry returns a fresh copy of the built-in language table.
func DefaultLanguageRegistry() map[string]LanguageSpec {
	out := make(map[string]LanguageSpec, len(defaultLanguageSpecs))
	for name, spec := range defaultLanguageSpecs {
		spec.Extensions = append([]string(nil), spec.Extensions...)
		spec.TestFileSuffixes = append([]string(nil), spec.TestFileSuffixes...)
		out[name] = spec
	}
	return out
}

// extensionIndex maps lowercase extensions to language names and rejects
// an extension claimed by two languages.
func extensionIndex(registry map[string]LanguageSpec) (map[string]string, error) {
	index := make(map[string]string)
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		for _, ext := range registry[name].Extensions {
			ext = strings.ToLower(strings.TrimSpace(ext))
			if ext == "" {
				continue
			}
			if !strings.HasPrefix(ext, ".") {
				ext = "." + ext
			}
			if owner, ok := index[ext]; ok && owner != name {
				return nil, fmt.Errorf("extension %s claimed by both %s and %s", ext, owner, name)
			}
			index[ext] = name
		}
	}
	return index, nil
}

func detectLanguage(index map[string]string, path string) string {
	return index[strings.ToLower(filepath.Ext(path))]
}
