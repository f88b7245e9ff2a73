package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// ApplyEnvOverrides applies UNDESTRUCTURE_[SECTION]_[KEY] environment overrides.
func ApplyEnvOverrides(cfg *Config) {
	setEnvBool(&cfg.UppercaseFuncNames, "UNDESTRUCTURE_UPPERCASE_FUNC_NAMES")

	setEnvInt(&cfg.Scan.Workers, "UNDESTRUCTURE_SCAN_WORKERS")
	setEnvBool(&cfg.Scan.IncludeTests, "UNDESTRUCTURE_SCAN_INCLUDE_TESTS")

	setEnvDuration(&cfg.Watch.Debounce, "UNDESTRUCTURE_WATCH_DEBOUNCE")

	setEnvBool(&cfg.History.Enabled, "UNDESTRUCTURE_HISTORY_ENABLED")
	setEnvString(&cfg.History.Path, "UNDESTRUCTURE_HISTORY_PATH")

	setEnvString(&cfg.Output.Format, "UNDESTRUCTURE_OUTPUT_FORMAT")

	setEnvString(&cfg.Observability.MetricsAddr, "UNDESTRUCTURE_OBSERVABILITY_METRICS_ADDR")
	setEnvString(&cfg.Observability.OTLPEndpoint, "UNDESTRUCTURE_OBSERVABILITY_OTLP_ENDPOINT")
}

func setEnvString(target *string, key string) {
	if val, ok := os.LookupEnv(key); ok {
		*target = strings.TrimSpace(val)
	}
}

func setEnvBool(target *bool, key string) {
	val, ok := os.LookupEnv(key)
	if !ok {
		return
	}
	b, err := strconv.ParseBool(strings.TrimSpace(val))
	if err != nil {
		slog.Warn("ignoring invalid boolean env override", "key", key, "value", val)
		return
	}
	*target = b
}

func setEnvInt(target *int, key string) {
	val, ok := os.LookupEnv(key)
	if !ok {
		return
	}
	i, err := strconv.Atoi(strings.TrimSpace(val))
	if err != nil {
		slog.Warn("ignoring invalid integer env override", "key", key, "value", val)
		return
	}
	*target = i
}

func setEnvDuration(target *time.Duration, key string) {
	val, ok := os.LookupEnv(key)
	if !ok {
		return
	}
	d, err := time.ParseDuration(strings.TrimSpace(val))
	if err != nil {
		slog.Warn("ignoring invalid duration env override", "key", key, "value", val)
		return
	}
	*target = d
}
