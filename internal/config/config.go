// Package config holds the installer's configuration: compiled-in
// defaults for the ClipABit plugin, optionally overridden by an
// installer.yaml placed next to the binary or passed via --config.
// Unlike the plugin manifest, an unparseable configuration file is a
// hard error: explicit configuration is trusted, so a broken one must
// not be silently ignored.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/Masterminds/semver/v3"
	"gopkg.in/yaml.v3"
)

// DefaultFileName is the configuration file the installer looks for
// next to its own binary when --config is not given.
const DefaultFileName = "installer.yaml"

// Config is the full installer configuration.
type Config struct {
	Plugin PluginConfig `yaml:"plugin"`
	Python PythonConfig `yaml:"python"`
}

// PluginConfig describes the plugin being installed.
type PluginConfig struct {
	// Name is the directory name created in the Resolve scripts dir.
	Name string `yaml:"name"`

	// EntryFile is the plugin entry point inside the source tree.
	EntryFile string `yaml:"entry_file"`

	// SourceDir is the plugin source tree, relative to the installer
	// binary unless absolute.
	SourceDir string `yaml:"source_dir"`

	// SupportURL is printed in the completion message.
	SupportURL string `yaml:"support_url"`
}

// PythonConfig describes the Python runtime requirements.
type PythonConfig struct {
	// Interpreters are the candidate interpreter names tried in PATH
	// order.
	Interpreters []string `yaml:"interpreters"`

	// MinVersion is the minimum interpreter version, e.g. "3.8".
	MinVersion string `yaml:"min_version"`

	// FallbackDependencies overrides the compiled-in dependency list
	// used when the plugin manifest cannot be read. Empty means the
	// compiled-in list.
	FallbackDependencies []string `yaml:"fallback_dependencies"`

	// ImportNames maps distribution names to the module imported at
	// verification time, for packages where the two differ.
	ImportNames map[string]string `yaml:"import_names"`
}

// Default returns the compiled-in configuration for ClipABit.
func Default() *Config {
	return &Config{
		Plugin: PluginConfig{
			Name:       "ClipABit",
			EntryFile:  "clipabit.py",
			SourceDir:  filepath.FromSlash("frontend/plugin"),
			SupportURL: "https://github.com/clipabit/clipabit",
		},
		Python: PythonConfig{
			Interpreters: []string{"python3", "python"},
			MinVersion:   "3.8.0",
		},
	}
}

// Load reads the configuration at path, overlaying it on the defaults.
// A missing file yields the defaults; a present but unparseable file is
// an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	return cfg, nil
}

// MinRuntimeVersion parses the configured minimum Python version.
func (c *Config) MinRuntimeVersion() (*semver.Version, error) {
	v, err := semver.NewVersion(c.Python.MinVersion)
	if err != nil {
		return nil, fmt.Errorf("invalid python.min_version %q: %w", c.Python.MinVersion, err)
	}
	return v, nil
}

// SourcePath resolves the plugin source tree against baseDir (the
// installer binary's directory) unless the configured path is absolute.
func (c *Config) SourcePath(baseDir string) string {
	if filepath.IsAbs(c.Plugin.SourceDir) {
		return c.Plugin.SourceDir
	}
	return filepath.Join(baseDir, c.Plugin.SourceDir)
}

// ManifestPath is the pyproject.toml location inside the source tree.
func (c *Config) ManifestPath(baseDir string) string {
	return filepath.Join(c.SourcePath(baseDir), "pyproject.toml")
}
