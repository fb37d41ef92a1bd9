// Package manifest resolves the plugin's declared Python dependencies
// from its pyproject.toml. Resolution never fails the run: an absent or
// unreadable manifest falls back to a fixed dependency list, while a
// manifest that explicitly declares an empty dependency table is
// trusted as-is.
package manifest

import (
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Source identifies which resolution strategy produced a dependency list.
type Source int

const (
	// SourceManifest means the manifest was parsed and declared a
	// non-empty dependency list.
	SourceManifest Source = iota
	// SourceEmpty means the manifest was parsed and declared no
	// dependencies. This is trusted: the fallback list is NOT used.
	SourceEmpty
	// SourceFallback means the manifest was missing or unparseable and
	// the compiled-in fallback list was used instead.
	SourceFallback
)

// String returns a human-readable source name.
func (s Source) String() string {
	switch s {
	case SourceManifest:
		return "manifest"
	case SourceEmpty:
		return "manifest (empty)"
	default:
		return "fallback"
	}
}

// Resolution is the outcome of dependency resolution.
type Resolution struct {
	// Dependencies is the ordered dependency list to install. May be
	// empty when the manifest explicitly declares no dependencies.
	Dependencies []string

	// Source records which strategy produced Dependencies.
	Source Source

	// Err is the underlying read/parse failure when Source is
	// SourceFallback and a manifest file was present but unusable.
	// Informational only; resolution itself never fails.
	Err error
}

// FallbackDependencies returns the fixed dependency list used when the
// manifest cannot be read. Returned as a fresh slice so callers can't
// mutate the canonical copy.
func FallbackDependencies() []string {
	return []string{
		"pyqt6>=6.10.0",
		"requests>=2.31.0",
		"watchdog>=3.0.0",
	}
}

// pyproject models the subset of pyproject.toml this installer reads.
type pyproject struct {
	Project struct {
		Dependencies []string `toml:"dependencies"`
	} `toml:"project"`
}

// Resolve reads project.dependencies from the pyproject.toml at path.
// Missing file or parse failure yields the compiled-in fallback list; a
// parsed manifest with an empty dependency table yields an empty list.
// The asymmetry is deliberate: an explicit empty declaration is
// trusted, an unreadable one is not.
func Resolve(path string) Resolution {
	return ResolveWith(path, nil)
}

// ResolveWith is Resolve with a custom fallback list for when the
// manifest cannot be read. An empty fallback means the compiled-in
// list.
func ResolveWith(path string, fallback []string) Resolution {
	if len(fallback) == 0 {
		fallback = FallbackDependencies()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Resolution{
			Dependencies: fallback,
			Source:       SourceFallback,
			Err:          err,
		}
	}

	var doc pyproject
	if err := toml.Unmarshal(data, &doc); err != nil {
		return Resolution{
			Dependencies: fallback,
			Source:       SourceFallback,
			Err:          err,
		}
	}

	if len(doc.Project.Dependencies) == 0 {
		return Resolution{Source: SourceEmpty}
	}

	return Resolution{
		Dependencies: doc.Project.Dependencies,
		Source:       SourceManifest,
	}
}
