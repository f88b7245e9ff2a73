package config

import (
	"time"

	"undestructure/internal/engine/component"
)

type Config struct {
	Version            int           `toml:"version"`
	UppercaseFuncNames bool          `toml:"uppercase_func_names"`
	Annotation         Annotation    `toml:"annotation"`
	Scan               Scan          `toml:"scan"`
	Watch              Watch         `toml:"watch"`
	History            History       `toml:"history"`
	Output             Output        `toml:"output"`
	Observability      Observability `toml:"observability"`
}

type Annotation struct {
	MacroModules []string `toml:"macro_modules"`
	MacroNames   []string `toml:"macro_names"`
	TypeModules  []string `toml:"type_modules"`
	TypeNames    []string `toml:"type_names"`
}

type Scan struct {
	Paths        []string `toml:"paths"`
	Include      []string `toml:"include"`
	ExcludeDirs  []string `toml:"exclude_dirs"`
	ExcludeFiles []string `toml:"exclude_files"`
	IncludeTests bool     `toml:"include_tests"`
	Workers      int      `toml:"workers"`
}

type Watch struct {
	Debounce time.Duration `toml:"debounce"`
	// MaxRescansPerMinute throttles bursts of change notifications.
	MaxRescansPerMinute int `toml:"max_rescans_per_minute"`
}

type History struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path"`
	Project string `toml:"project"`
}

type Output struct {
	Format string `toml:"format"` // text or json
	File   string `toml:"file"`
}

type Observability struct {
	MetricsAddr  string `toml:"metrics_addr"`
	OTLPEndpoint string `toml:"otlp_endpoint"`
}

// ComponentOptions converts the file-level settings into classifier options.
func (c *Config) ComponentOptions() component.Options {
	return component.Options{
		UppercaseFuncNames: c.UppercaseFuncNames,
		Annotation: component.AnnotationOptions{
			MacroModules: append([]string(nil), c.Annotation.MacroModules...),
			MacroNames:   append([]string(nil), c.Annotation.MacroNames...),
			TypeModules:  append([]string(nil), c.Annotation.TypeModules...),
			TypeNames:    append([]string(nil), c.Annotation.TypeNames...),
		},
	}
}
