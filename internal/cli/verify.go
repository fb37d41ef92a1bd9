package cli

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/clipabit/clipabit-installer/internal/deploy"
	"github.com/clipabit/clipabit-installer/internal/manifest"
	"github.com/clipabit/clipabit-installer/internal/platform"
	"github.com/clipabit/clipabit-installer/internal/pythonenv"
	"github.com/clipabit/clipabit-installer/internal/ui"
)

// NewVerifyCmd creates the verify command: it re-resolves the target
// directory, checks the deployed entry file, and confirms every
// dependency imports in the runtime. Run standalone, a verification
// failure is an error (unlike during installation, where it only
// downgrades the outcome to a warning).
func NewVerifyCmd() *cobra.Command {
	var targetDir string

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Verify an existing installation",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, baseDir, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			ctx := cmd.Context()

			root := targetDir
			if root == "" {
				p := platform.Detect()
				if err := p.Check(runtime.GOOS); err != nil {
					return err
				}
				candidates, candErr := deploy.DefaultCandidates(p)
				if candErr != nil {
					return candErr
				}
				root = deploy.ResolveTargetDir(candidates)
			}

			if err := deploy.VerifyFiles(root, cfg.Plugin.Name, cfg.Plugin.EntryFile); err != nil {
				return err
			}
			fmt.Fprintln(out, ui.Success("Plugin file verified."))

			resolution := manifest.ResolveWith(cfg.ManifestPath(baseDir), cfg.Python.FallbackDependencies)
			interp, err := pythonenv.FindInterpreter(cfg.Python.Interpreters...)
			if err != nil {
				return err
			}

			if err := pythonenv.CheckImports(ctx, interp, resolution.Dependencies, cfg.Python.ImportNames); err != nil {
				return err
			}
			fmt.Fprintln(out, ui.Success("All dependencies are accessible."))
			return nil
		},
	}

	cmd.Flags().StringVar(&targetDir, "target-dir", "", "override the Resolve scripts directory")
	return cmd
}
