package cli

import (
	"runtime"

	"github.com/spf13/cobra"

	"github.com/clipabit/clipabit-installer/internal/installer"
	"github.com/clipabit/clipabit-installer/internal/platform"
)

// NewInstallCmd creates the install command, the explicit form of the
// root command's default action.
func NewInstallCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "install",
		Short: "Run the full installation pipeline",
		Long: `Runs every installation stage in order: platform check, DaVinci Resolve
detection, Python and pip verification, dependency installation, plugin
deployment, and verification. The first failing stage aborts the run.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInstall(cmd)
		},
	}

	addInstallFlags(cmd)
	return cmd
}

// addInstallFlags registers the flags shared by the root command and
// the explicit install subcommand.
func addInstallFlags(cmd *cobra.Command) {
	cmd.Flags().String("target-dir", "", "override the Resolve scripts directory")
	cmd.Flags().String("source-dir", "", "override the plugin source directory")
}

// runInstall executes the installation state machine and maps its
// terminal outcome to the process result: warnings still succeed,
// aborts surface the gate failure (exit code 1).
func runInstall(cmd *cobra.Command) error {
	cfg, baseDir, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	if sourceDir, _ := cmd.Flags().GetString("source-dir"); sourceDir != "" {
		cfg.Plugin.SourceDir = sourceDir
	}
	targetDir, _ := cmd.Flags().GetString("target-dir")

	pipe := installer.New(installer.Options{
		Config:             cfg,
		BaseDir:            baseDir,
		Out:                cmd.OutOrStdout(),
		Platform:           platform.Detect(),
		GOOS:               runtime.GOOS,
		TargetRootOverride: targetDir,
	})

	result := pipe.Run(cmd.Context())
	if result.Outcome == installer.Aborted {
		return result.Reason
	}
	return nil
}
