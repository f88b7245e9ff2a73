package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics definitions
var (
	ParsingDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "undestructure_parse_seconds",
		Help:    "Time spent parsing a source file.",
		Buckets: prometheus.DefBuckets,
	}, []string{"language"})

	FilesScannedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "undestructure_files_scanned_total",
		Help: "Total number of source files run through the component pipeline.",
	}, []string{"language"})

	FileErrorsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "undestructure_file_errors_total",
		Help: "Total number of files skipped because they could not be read or parsed.",
	})

	FunctionsClassifiedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "undestructure_functions_classified_total",
		Help: "Total number of function nodes classified, by result.",
	}, []string{"result"})

	ScanDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "undestructure_scan_seconds",
		Help:    "Wall time of a full scan over the configured paths.",
		Buckets: prometheus.DefBuckets,
	})

	WatcherEventsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "undestructure_watcher_events_total",
		Help: "Total number of file system events received by the watcher.",
	})
)
