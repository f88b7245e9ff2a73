package app

import (
	"context"
	"log/slog"
	"os"
	"sort"
	"time"

	"undestructure/internal/core/watcher"
	"undestructure/internal/shared/util"
)

// StartWatcher watches roots (or the configured scan paths) and rescans the
// changed files after each debounced batch. Each batch produces a report
// that goes to the update callback and, when enabled, to history.
func (a *App) StartWatcher(ctx context.Context, roots []string) error {
	if len(roots) == 0 {
		roots = a.Config.Scan.Paths
	}

	perMinute := a.Config.Watch.MaxRescansPerMinute
	limiter := util.NewLimiter(float64(perMinute)/60.0, max(1, perMinute))

	w, err := watcher.NewWatcher(
		a.Config.Watch.Debounce,
		a.Config.Scan.ExcludeDirs,
		a.Config.Scan.ExcludeFiles,
		func(paths []string) {
			if err := limiter.Wait(ctx, 1); err != nil {
				return
			}
			a.HandleChanges(ctx, paths)
		},
	)
	if err != nil {
		return err
	}

	testSuffixes := []string(nil)
	if !a.IncludeTests {
		testSuffixes = a.codeParser.SupportedTestFileSuffixes()
	}
	w.SetLanguageFilters(a.codeParser.SupportedExtensions(), testSuffixes)
	a.activeWatcher = w
	return w.Watch(roots)
}

// HandleChanges rescans the given paths. Deleted files are dropped.
func (a *App) HandleChanges(ctx context.Context, paths []string) {
	existing := make([]string, 0, len(paths))
	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			slog.Debug("skipping removed file", "path", path)
			continue
		}
		if !a.codeParser.IsSupportedPath(path) {
			continue
		}
		existing = append(existing, path)
	}
	if len(existing) == 0 {
		return
	}
	sort.Strings(existing)

	report, err := a.scanChanged(ctx, existing)
	if err != nil {
		slog.Error("rescan failed", "error", err)
		return
	}
	if _, err := a.RecordReport(report); err != nil {
		slog.Warn("failed to record rescan", "error", err)
	}
	a.emitUpdate(report)
}

func (a *App) scanChanged(ctx context.Context, files []string) (*Report, error) {
	start := time.Now()
	report, err := a.scanFiles(ctx, files)
	if err != nil {
		return nil, err
	}
	report.StartedAt = start
	report.FinishedAt = time.Now()
	return report, nil
}
