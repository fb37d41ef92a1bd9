package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/clipabit/clipabit-installer/internal/manifest"
	"github.com/clipabit/clipabit-installer/internal/pythonenv"
	"github.com/clipabit/clipabit-installer/internal/ui"
)

// NewDepsCmd creates the deps command: it shows the resolved dependency
// list, and with --install also installs it.
func NewDepsCmd() *cobra.Command {
	var install bool

	cmd := &cobra.Command{
		Use:   "deps",
		Short: "Resolve (and optionally install) the Python dependencies",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, baseDir, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			resolution := manifest.ResolveWith(cfg.ManifestPath(baseDir), cfg.Python.FallbackDependencies)

			switch resolution.Source {
			case manifest.SourceManifest:
				fmt.Fprintln(out, ui.Success(fmt.Sprintf(
					"Loaded %d dependencies from pyproject.toml", len(resolution.Dependencies))))
			case manifest.SourceEmpty:
				fmt.Fprintln(out, ui.Warning("No dependencies declared in pyproject.toml"))
			case manifest.SourceFallback:
				fmt.Fprintln(out, ui.Warning(fmt.Sprintf(
					"pyproject.toml unavailable, using fallback dependencies (%v)", resolution.Err)))
			}

			for _, dep := range resolution.Dependencies {
				fmt.Fprintf(out, "  %s\n", dep)
			}

			if !install {
				return nil
			}

			interp, err := pythonenv.FindInterpreter(cfg.Python.Interpreters...)
			if err != nil {
				return err
			}
			return pythonenv.InstallDependencies(cmd.Context(), interp, resolution.Dependencies,
				func(msg string) { fmt.Fprintln(out, ui.Info(msg)) })
		},
	}

	cmd.Flags().BoolVar(&install, "install", false, "install the resolved dependencies")
	return cmd
}
