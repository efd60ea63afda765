// Package config decodes the ambient settings that shape logging
// verbosity and soft document-size guards, grounded on
// aiseeq-glint/pkg/core/config.go's YAML-struct loader and reusing the
// same gopkg.in/yaml.v3 dependency session already pulls in for the
// document tree itself.
package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Options is the top-level ambient configuration for a session/fsm run.
type Options struct {
	// LogLevel is a logrus level name ("debug", "info", "warn", …).
	LogLevel string `yaml:"log_level"`
	// MaxTransitionsPerState is a soft guard: documents exceeding it are
	// logged at warning level but still validated in full — it never
	// gates or alters any of the 11 invariants.
	MaxTransitionsPerState int `yaml:"max_transitions_per_state"`
}

// Default returns the zero-configuration defaults: info-level logging, no
// soft transition-count guard.
func Default() Options {
	return Options{LogLevel: "info", MaxTransitionsPerState: 0}
}

// Load reads and decodes Options from a YAML file at path. A missing file
// is not an error: Default() is returned unchanged.
func Load(path string) (Options, error) {
	opts := Default()
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return opts, nil
	}
	if err != nil {
		return opts, err
	}
	if err := yaml.Unmarshal(data, &opts); err != nil {
		return Options{}, err
	}
	return opts, nil
}
