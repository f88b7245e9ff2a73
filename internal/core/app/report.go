package app

import (
	"time"

	"undestructure/internal/core/errors"
	"undestructure/internal/data/history"
	"undestructure/internal/engine/component"
	"undestructure/internal/engine/transform"
)

// FileResult is the pipeline outcome for one source file. Rewritten counts
// the functions handed to the rewriter.
type FileResult struct {
	Path        string              `json:"path"`
	Language    string              `json:"language"`
	Functions   int                 `json:"functions"`
	Annotated   int                 `json:"annotated"`
	Rewritten   int                 `json:"rewritten"`
	SyntaxError bool                `json:"syntax_error,omitempty"`
	Findings    []transform.Finding `json:"findings,omitempty"`
}

// FileError records a file the scan had to skip.
type FileError struct {
	Path    string `json:"path"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Report aggregates a scan.
type Report struct {
	Project    string              `json:"project"`
	StartedAt  time.Time           `json:"started_at"`
	FinishedAt time.Time           `json:"finished_at"`
	Files      []FileResult        `json:"files"`
	FileErrors []FileError         `json:"file_errors,omitempty"`
	Functions  int                 `json:"functions"`
	Components int                 `json:"components"`
	Annotated  int                 `json:"annotated"`
	Rewrites   int                 `json:"rewrites"`
	Findings   []transform.Finding `json:"findings"`
}

func newReport(project string) *Report {
	return &Report{
		Project:  project,
		Files:    []FileResult{},
		Findings: []transform.Finding{},
	}
}

func (r *Report) addFile(res *FileResult) {
	if res == nil {
		return
	}
	r.Files = append(r.Files, *res)
	r.Functions += res.Functions
	r.Annotated += res.Annotated
	r.Rewrites += res.Rewritten
	r.Components += len(res.Findings)
	r.Findings = append(r.Findings, res.Findings...)
}

func (r *Report) addFailure(path string, err error) {
	r.FileErrors = append(r.FileErrors, FileError{
		Path:    path,
		Code:    string(errors.CodeOf(err)),
		Message: err.Error(),
	})
}

// HasDestructuring reports whether any component still destructures its props.
func (r *Report) HasDestructuring() bool {
	for _, f := range r.Findings {
		if f.Result == component.ComponentWithDestructuring {
			return true
		}
	}
	return false
}

// Duration is the wall time of the scan.
func (r *Report) Duration() time.Duration {
	if r.FinishedAt.Before(r.StartedAt) {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}

// HistoryRun converts the report into its persisted form.
func (r *Report) HistoryRun() history.Run {
	run := history.Run{
		Project:    r.Project,
		StartedAt:  r.StartedAt,
		FinishedAt: r.FinishedAt,
		Files:      len(r.Files),
		FileErrors: len(r.FileErrors),
		Functions:  r.Functions,
		Components: r.Components,
		Rewrites:   r.Rewrites,
		Findings:   make([]history.Finding, 0, len(r.Findings)),
	}
	for _, f := range r.Findings {
		run.Findings = append(run.Findings, history.Finding{
			Path:       f.Path,
			Name:       f.Name,
			Kind:       f.Kind,
			Line:       f.Line,
			Column:     f.Column,
			Result:     f.Result.String(),
			Props:      f.Props,
			Rest:       f.Rest,
			HasDefault: f.HasDefault,
		})
	}
	return run
}
