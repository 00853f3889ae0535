// Package project loads the optional migralint.toml manifest that tunes an
// analysis run: marker names, parallelism, diagnostic limits and per-rule
// severity overrides.
package project

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"

	"migralint/internal/diag"
	"migralint/internal/rules"
)

// ManifestName is the file the CLI looks for when walking up from the start
// directory.
const ManifestName = "migralint.toml"

// Severity override keys accepted under [severity].
var severityKeys = map[string]diag.Code{
	"missing_annotation": diag.MigMissingAnnotation,
	"missing_field":      diag.MigMissingField,
	"invalid_field":      diag.MigInvalidField,
	"duplicate_version":  diag.MigDuplicateVersion,
}

// Manifest is the resolved configuration for one analysis run.
type Manifest struct {
	Capability     string
	Annotation     string
	Jobs           int
	MaxDiagnostics int
	Severities     map[diag.Code]diag.Severity
}

type manifestTOML struct {
	Analysis struct {
		Capability     string `toml:"capability"`
		Annotation     string `toml:"annotation"`
		Jobs           int    `toml:"jobs"`
		MaxDiagnostics int    `toml:"max_diagnostics"`
	} `toml:"analysis"`
	Severity map[string]string `toml:"severity"`
}

// Default returns the manifest used when no migralint.toml exists.
func Default() Manifest {
	return Manifest{
		Capability:     rules.DefaultCapability,
		Annotation:     rules.DefaultAnnotation,
		MaxDiagnostics: 100,
	}
}

// Load parses a migralint.toml. Unset fields fall back to defaults; unknown
// severity rule names or levels are errors.
func Load(path string) (Manifest, error) {
	var cfg manifestTOML
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Manifest{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}

	m := Default()
	if v := strings.TrimSpace(cfg.Analysis.Capability); v != "" {
		m.Capability = v
	}
	if v := strings.TrimSpace(cfg.Analysis.Annotation); v != "" {
		m.Annotation = v
	}
	if cfg.Analysis.Jobs > 0 {
		m.Jobs = cfg.Analysis.Jobs
	}
	if cfg.Analysis.MaxDiagnostics > 0 {
		m.MaxDiagnostics = cfg.Analysis.MaxDiagnostics
	}

	for key, level := range cfg.Severity {
		code, ok := severityKeys[key]
		if !ok {
			return Manifest{}, fmt.Errorf("%s: unknown rule %q in [severity]", path, key)
		}
		sev, ok := diag.ParseSeverity(level)
		if !ok {
			return Manifest{}, fmt.Errorf("%s: unknown severity %q for rule %q", path, level, key)
		}
		if m.Severities == nil {
			m.Severities = make(map[diag.Code]diag.Severity)
		}
		m.Severities[code] = sev
	}
	return m, nil
}

// RulesConfig converts the manifest into the rule engine's configuration.
func (m Manifest) RulesConfig() rules.Config {
	return rules.Config{
		Capability: m.Capability,
		Annotation: m.Annotation,
		Severities: m.Severities,
	}
}
