package app

import (
	"sync"

	"undestructure/internal/core/config"
	"undestructure/internal/core/watcher"
	"undestructure/internal/data/history"
	"undestructure/internal/engine/component"
	"undestructure/internal/engine/parser"

	"github.com/gobwas/glob"
)

// App scans JavaScript and TypeScript sources for component functions.
type App struct {
	Config       *config.Config
	IncludeTests bool

	codeParser *parser.Parser
	opts       component.Options

	includeGlobs     []glob.Glob
	excludeDirGlobs  []glob.Glob
	excludeFileGlobs []glob.Glob

	historyStore *history.Store

	activeWatcher *watcher.Watcher
	updateMu      sync.RWMutex
	onUpdate      func(*Report)
}

func New(cfg *config.Config) (*App, error) {
	if cfg == nil {
		cfg = config.Default()
	}

	loader, err := parser.NewGrammarLoader()
	if err != nil {
		return nil, err
	}
	p, err := parser.NewParser(loader)
	if err != nil {
		return nil, err
	}

	includeGlobs, err := compileGlobs(cfg.Scan.Include, "include", '/')
	if err != nil {
		return nil, err
	}
	excludeDirGlobs, err := compileGlobs(cfg.Scan.ExcludeDirs, "exclude dir")
	if err != nil {
		return nil, err
	}
	excludeFileGlobs, err := compileGlobs(cfg.Scan.ExcludeFiles, "exclude file")
	if err != nil {
		return nil, err
	}

	return &App{
		Config:           cfg,
		IncludeTests:     cfg.Scan.IncludeTests,
		codeParser:       p,
		opts:             cfg.ComponentOptions(),
		includeGlobs:     includeGlobs,
		excludeDirGlobs:  excludeDirGlobs,
		excludeFileGlobs: excludeFileGlobs,
	}, nil
}

// Options returns the classifier options derived from the config.
func (a *App) Options() component.Options {
	return a.opts
}

func (a *App) Parser() *parser.Parser {
	return a.codeParser
}

// SetUpdateCallback registers a function that receives every report produced
// by the watch loop.
func (a *App) SetUpdateCallback(fn func(*Report)) {
	a.updateMu.Lock()
	defer a.updateMu.Unlock()
	a.onUpdate = fn
}

func (a *App) emitUpdate(report *Report) {
	a.updateMu.RLock()
	fn := a.onUpdate
	a.updateMu.RUnlock()
	if fn != nil {
		fn(report)
	}
}

func (a *App) Close() error {
	var firstErr error
	if a.activeWatcher != nil {
		if err := a.activeWatcher.Close(); err != nil {
			firstErr = err
		}
		a.activeWatcher = nil
	}
	if a.historyStore != nil {
		if err := a.historyStore.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		a.historyStore = nil
	}
	return firstErr
}
