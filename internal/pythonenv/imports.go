package pythonenv

import (
	"context"
	"fmt"
	"strings"

	"github.com/clipabit/clipabit-installer/internal/logging"
)

// defaultImportNames maps PyPI distribution names to the module name
// they expose at import time, for the cases where the two differ.
var defaultImportNames = map[string]string{ //nolint:gochecknoglobals // Fixed lookup table
	"pyqt6":  "PyQt6",
	"pyqt5":  "PyQt5",
	"pyyaml": "yaml",
	"pillow": "PIL",
}

// ModuleName derives the importable module name from a version-
// constrained dependency spec such as "pyqt6>=6.10.0". Overrides take
// precedence over the built-in table; otherwise the distribution name
// is used with dashes mapped to underscores.
func ModuleName(dep string, overrides map[string]string) string {
	name := dep
	if idx := strings.IndexAny(name, "<>=!~; ["); idx >= 0 {
		name = name[:idx]
	}
	name = strings.TrimSpace(name)

	key := strings.ToLower(name)
	if module, ok := overrides[key]; ok {
		return module
	}
	if module, ok := defaultImportNames[key]; ok {
		return module
	}
	return strings.ReplaceAll(name, "-", "_")
}

// CheckImports verifies every dependency is importable in the runtime's
// default environment by running a single "-c import a, b, c". An empty
// deps slice succeeds without invoking any subprocess. A non-zero exit
// returns ErrImportsFailed; the deployment itself is untouched, so
// callers treat this as a warning rather than a fatal failure.
func CheckImports(ctx context.Context, interp string, deps []string, overrides map[string]string) error {
	if len(deps) == 0 {
		return nil
	}

	modules := make([]string, 0, len(deps))
	for _, dep := range deps {
		modules = append(modules, ModuleName(dep, overrides))
	}

	stmt := "import " + strings.Join(modules, ", ")

	log := logging.FromContext(ctx)
	log.Debug().
		Str("component", "pythonenv").
		Str("statement", stmt).
		Msg("verifying dependency imports")

	if _, stderr, err := Runner.Run(ctx, interp, "-c", stmt); err != nil {
		return fmt.Errorf("%w: %s", ErrImportsFailed, strings.TrimSpace(string(stderr)))
	}

	return nil
}
