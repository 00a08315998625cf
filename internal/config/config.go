// Package config holds the immutable pipeline configuration.
//
// A Config is loaded once from the configuration directory and passed by
// value into every component that needs it; there is no global state.
package config

import "path/filepath"

// ScriptTask is one auxiliary figure-generating script from the
// configuration, invoked exactly once per pipeline execution.
// ExtraArgs is a shell-quoted string appended after the standard
// positional contract.
type ScriptTask struct {
	Path      string `json:"path" yaml:"path"`
	ExtraArgs string `json:"extra_args,omitempty" yaml:"extra_args,omitempty"`
}

// Config is the parsed configuration for one pipeline invocation.
type Config struct {
	// ConfigDirectory is the directory the config was loaded from;
	// relative paths below resolve against it.
	ConfigDirectory string `json:"-" yaml:"-"`

	Stylesheet        string       `json:"stylesheet,omitempty" yaml:"stylesheet,omitempty"`
	PlotsDirectory    string       `json:"plots_directory" yaml:"plots_directory"`
	RegistrationFile  string       `json:"registration_file,omitempty" yaml:"registration_file,omitempty"`
	ObservationalData string       `json:"observational_data,omitempty" yaml:"observational_data,omitempty"`
	Scripts           []ScriptTask `json:"scripts,omitempty" yaml:"scripts,omitempty"`
}

// PlotsPath returns the absolute-or-config-relative plot definition directory.
func (c Config) PlotsPath() string {
	return c.resolve(c.PlotsDirectory)
}

// StylesheetPath returns the stylesheet location, or "" if none configured.
func (c Config) StylesheetPath() string {
	if c.Stylesheet == "" {
		return ""
	}
	return c.resolve(c.Stylesheet)
}

// RegistrationPath returns the optional derived-column registration file,
// or "" if none configured.
func (c Config) RegistrationPath() string {
	if c.RegistrationFile == "" {
		return ""
	}
	return c.resolve(c.RegistrationFile)
}

// ObservationalDataPath returns the observational-data directory, or "".
func (c Config) ObservationalDataPath() string {
	if c.ObservationalData == "" {
		return ""
	}
	return c.resolve(c.ObservationalData)
}

// ScriptPath resolves a script task path against the config directory.
func (c Config) ScriptPath(t ScriptTask) string {
	return c.resolve(t.Path)
}

func (c Config) resolve(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.ConfigDirectory, p)
}
