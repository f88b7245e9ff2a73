package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"undestructure/internal/core/errors"
	"undestructure/internal/engine/component"

	"github.com/BurntSushi/toml"
	"github.com/gobwas/glob"
)

const (
	DefaultConfigPath = "./undestructure.toml"
	currentVersion    = 1
)

// Load reads a TOML config file. Keys the schema does not know are logged
// at debug level and otherwise ignored.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.AddContext(errors.Wrap(err, errors.CodeNotFound, "read config"), errors.CtxPath, path)
	}
	return Parse(string(data))
}

func Parse(data string) (*Config, error) {
	var cfg Config
	md, err := toml.Decode(data, &cfg)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeValidationError, "decode config")
	}
	for _, key := range md.Undecoded() {
		slog.Debug("ignoring unknown config key", "key", key.String())
	}

	applyDefaults(&cfg, md)
	ApplyEnvOverrides(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	var cfg Config
	applyDefaults(&cfg, toml.MetaData{})
	return &cfg
}

func applyDefaults(cfg *Config, md toml.MetaData) {
	if cfg.Version == 0 {
		cfg.Version = currentVersion
	}

	// A present [annotation] table is taken verbatim so users can disable
	// one annotation kind by leaving its lists empty.
	if !md.IsDefined("annotation") {
		defaults := component.DefaultAnnotationOptions()
		cfg.Annotation = Annotation{
			MacroModules: defaults.MacroModules,
			MacroNames:   defaults.MacroNames,
			TypeModules:  defaults.TypeModules,
			TypeNames:    defaults.TypeNames,
		}
	}

	if len(cfg.Scan.Paths) == 0 {
		cfg.Scan.Paths = []string{"."}
	}
	if len(cfg.Scan.Include) == 0 {
		cfg.Scan.Include = []string{"**.{js,jsx,mjs,cjs,ts,mts,cts,tsx}"}
	}
	if !md.IsDefined("scan", "exclude_dirs") && len(cfg.Scan.ExcludeDirs) == 0 {
		cfg.Scan.ExcludeDirs = []string{"node_modules", ".git", "dist", "build", "coverage"}
	}
	if !md.IsDefined("scan", "exclude_files") && len(cfg.Scan.ExcludeFiles) == 0 {
		cfg.Scan.ExcludeFiles = []string{"*.min.js", "*.d.ts"}
	}
	if cfg.Scan.Workers <= 0 {
		cfg.Scan.Workers = 4
	}

	if cfg.Watch.Debounce <= 0 {
		cfg.Watch.Debounce = 300 * time.Millisecond
	}
	if cfg.Watch.MaxRescansPerMinute <= 0 {
		cfg.Watch.MaxRescansPerMinute = 30
	}

	if strings.TrimSpace(cfg.History.Path) == "" {
		cfg.History.Path = "data/undestructure.db"
	}
	if strings.TrimSpace(cfg.History.Project) == "" {
		cfg.History.Project = "default"
	}

	if strings.TrimSpace(cfg.Output.Format) == "" {
		cfg.Output.Format = "text"
	}
}

func Validate(cfg *Config) error {
	if err := validateVersion(cfg); err != nil {
		return err
	}
	if err := cfg.ComponentOptions().Annotation.Validate(); err != nil {
		return err
	}
	if err := validateScan(cfg); err != nil {
		return err
	}
	return validateOutput(cfg)
}

func validateVersion(cfg *Config) error {
	if cfg.Version != currentVersion {
		return invalid("version", fmt.Sprintf("unsupported config version %d", cfg.Version))
	}
	return nil
}

func validateScan(cfg *Config) error {
	for _, group := range [][]string{cfg.Scan.Include, cfg.Scan.ExcludeDirs, cfg.Scan.ExcludeFiles} {
		for _, pattern := range group {
			if _, err := glob.Compile(pattern, '/'); err != nil {
				return errors.AddContext(errors.Wrap(err, errors.CodeValidationError, fmt.Sprintf("invalid glob %q", pattern)), errors.CtxOption, "scan")
			}
		}
	}
	if cfg.Scan.Workers > 256 {
		return invalid("scan.workers", "workers must be at most 256")
	}
	return nil
}

func validateOutput(cfg *Config) error {
	switch cfg.Output.Format {
	case "text", "json":
		return nil
	}
	return invalid("output.format", fmt.Sprintf("unknown output format %q (want text or json)", cfg.Output.Format))
}

func invalid(option, msg string) error {
	return errors.AddContext(errors.New(errors.CodeValidationError, msg), errors.CtxOption, option)
}
