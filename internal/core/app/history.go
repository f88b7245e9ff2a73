package app

import (
	"log/slog"

	"undestructure/internal/data/history"
)

// HistoryStore opens the configured sqlite store on first use. It returns
// nil when history is disabled.
func (a *App) HistoryStore() (*history.Store, error) {
	if !a.Config.History.Enabled {
		return nil, nil
	}
	if a.historyStore != nil {
		return a.historyStore, nil
	}
	store, err := history.Open(a.Config.History.Path)
	if err != nil {
		return nil, err
	}
	a.historyStore = store
	return store, nil
}

// RecordReport persists the report when history is enabled and returns the
// stored run ID, or "" when nothing was written.
func (a *App) RecordReport(report *Report) (string, error) {
	store, err := a.HistoryStore()
	if err != nil || store == nil {
		return "", err
	}
	id, err := store.SaveRun(report.HistoryRun())
	if err != nil {
		return "", err
	}
	slog.Debug("stored scan run", "id", id, "project", report.Project, "components", report.Components)
	return id, nil
}
