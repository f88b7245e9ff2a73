package app

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"time"

	"undestructure/internal/core/errors"
	"undestructure/internal/engine/transform"
	"undestructure/internal/shared/observability"
	"undestructure/internal/shared/util"

	"github.com/gobwas/glob"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/errgroup"
)

func compileGlobs(patterns []string, label string, separators ...rune) ([]glob.Glob, error) {
	out := make([]glob.Glob, 0, len(patterns))
	for _, pattern := range patterns {
		g, err := glob.Compile(pattern, separators...)
		if err != nil {
			return nil, errors.AddContext(
				errors.Wrap(err, errors.CodeValidationError, fmt.Sprintf("invalid %s pattern %q", label, pattern)),
				errors.CtxOption, "scan",
			)
		}
		out = append(out, g)
	}
	return out, nil
}

func matchAny(globs []glob.Glob, s string) bool {
	for _, g := range globs {
		if g.Match(s) {
			return true
		}
	}
	return false
}

// CollectFiles walks the given roots and returns the supported source files
// that pass the include and exclude filters, sorted and deduplicated.
// A root may also name a single file.
func (a *App) CollectFiles(roots []string) ([]string, error) {
	seen := make(map[string]struct{})

	for _, root := range roots {
		info, err := os.Stat(root)
		if err != nil {
			return nil, errors.AddContext(errors.Wrap(err, errors.CodeNotFound, "stat scan path"), errors.CtxPath, root)
		}
		if !info.IsDir() {
			if a.codeParser.IsSupportedPath(root) {
				seen[filepath.Clean(root)] = struct{}{}
			}
			continue
		}

		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}

			base := filepath.Base(path)
			if d.IsDir() {
				if path != root && matchAny(a.excludeDirGlobs, base) {
					return filepath.SkipDir
				}
				return nil
			}

			if !a.codeParser.IsSupportedPath(path) {
				return nil
			}
			if !a.IncludeTests && a.codeParser.IsTestFile(path) {
				return nil
			}
			if matchAny(a.excludeFileGlobs, base) {
				return nil
			}

			rel, relErr := filepath.Rel(root, path)
			if relErr != nil {
				rel = path
			}
			if len(a.includeGlobs) > 0 && !matchAny(a.includeGlobs, util.NormalizePatternPath(rel)) {
				return nil
			}

			seen[path] = struct{}{}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	files := make([]string, 0, len(seen))
	for path := range seen {
		files = append(files, path)
	}
	sort.Strings(files)
	return files, nil
}

// Scan classifies every collected file under roots, or under the configured
// scan paths when roots is empty. Per-file failures are logged and recorded
// on the report; they never abort the scan.
func (a *App) Scan(ctx context.Context, roots []string) (*Report, error) {
	if len(roots) == 0 {
		roots = a.Config.Scan.Paths
	}

	ctx, span := observability.Tracer.Start(ctx, "app.Scan")
	defer span.End()

	start := time.Now()
	files, err := a.CollectFiles(roots)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	span.SetAttributes(attribute.Int("files", len(files)))

	report, err := a.scanFiles(ctx, files)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	report.StartedAt = start
	report.FinishedAt = time.Now()
	observability.ScanDuration.Observe(report.FinishedAt.Sub(start).Seconds())

	span.SetAttributes(
		attribute.Int("components", report.Components),
		attribute.Int("rewrites", report.Rewrites),
	)
	return report, nil
}

func (a *App) scanFiles(ctx context.Context, files []string) (*Report, error) {
	results := make([]*FileResult, len(files))
	failures := make([]error, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, a.Config.Scan.Workers))

	for i, path := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := a.ScanFile(gctx, path)
			if err != nil {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				observability.FileErrorsTotal.Inc()
				slog.Warn("failed to scan file", "path", path, "error", err)
				failures[i] = err
				return nil
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	report := newReport(a.Config.History.Project)
	for i, path := range files {
		if failures[i] != nil {
			report.addFailure(path, failures[i])
			continue
		}
		report.addFile(results[i])
	}
	return report, nil
}

// ScanFile parses one file and runs the component pipeline over it.
func (a *App) ScanFile(ctx context.Context, path string) (*FileResult, error) {
	ctx, span := observability.Tracer.Start(ctx, "app.ScanFile", traceAttrs(path)...)
	defer span.End()

	content, err := os.ReadFile(path)
	if err != nil {
		span.RecordError(err)
		return nil, errors.AddContext(errors.Wrap(err, errors.CodeNotFound, "read source"), errors.CtxPath, path)
	}

	tree, err := a.codeParser.ParseFile(path, content)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	defer tree.Close()

	if tree.HasErrors() {
		slog.Debug("source contains syntax errors", "path", path)
	}

	recorder := transform.NewRecorder()
	outcome, err := transform.Run(ctx, tree, a.opts, recorder)
	if err != nil {
		span.RecordError(err)
		return nil, errors.AddContext(err, errors.CtxPath, path)
	}
	observability.FilesScannedTotal.WithLabelValues(tree.Language).Inc()

	return &FileResult{
		Path:        path,
		Language:    tree.Language,
		Functions:   outcome.Classified,
		Annotated:   outcome.Annotated,
		Rewritten:   len(recorder.Targets()),
		SyntaxError: tree.HasErrors(),
		Findings:    outcome.Findings,
	}, nil
}
