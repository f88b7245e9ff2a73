package history

import "time"

const SchemaVersion = 1

// Run is one persisted scan.
type Run struct {
	ID         string
	Project    string
	StartedAt  time.Time
	FinishedAt time.Time
	Files      int
	FileErrors int
	Functions  int
	Components int
	Rewrites   int
	Findings   []Finding
}

// Finding is one component function recorded for a run.
type Finding struct {
	Path       string
	Name       string
	Kind       string
	Line       int
	Column     int
	Result     string
	Props      []string
	Rest       string
	HasDefault bool
}
