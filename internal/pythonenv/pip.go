package pythonenv

import (
	"context"
	"fmt"

	"github.com/clipabit/clipabit-installer/internal/logging"
)

// ProgressFunc receives human-readable progress messages during long
// operations. A nil ProgressFunc is valid and silently ignored.
type ProgressFunc func(message string)

// InstallDependencies installs each dependency spec in order via
// "-m pip install --upgrade". An empty deps slice succeeds without
// invoking any subprocess. The first failing install aborts the rest
// and returns an InstallError carrying pip's stderr; packages installed
// before the failure stay installed. No retries.
func InstallDependencies(ctx context.Context, interp string, deps []string, progress ProgressFunc) error {
	if len(deps) == 0 {
		return nil
	}

	log := logging.FromContext(ctx)

	for _, dep := range deps {
		if progress != nil {
			progress(fmt.Sprintf("Installing %s...", dep))
		}

		log.Debug().
			Str("component", "pythonenv").
			Str("dependency", dep).
			Msg("installing dependency")

		if _, stderr, err := Runner.Run(ctx, interp, "-m", "pip", "install", "--upgrade", dep); err != nil {
			log.Error().
				Str("component", "pythonenv").
				Str("dependency", dep).
				Err(err).
				Msg("dependency install failed")
			return InstallError(dep, string(stderr))
		}

		if progress != nil {
			progress(fmt.Sprintf("Installed %s", dep))
		}
	}

	return nil
}
