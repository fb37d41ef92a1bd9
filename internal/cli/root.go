// Package cli wires the installer's cobra command tree: the default
// install pipeline plus diagnostic subcommands for environment checks,
// dependency resolution, and post-install verification.
package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/clipabit/clipabit-installer/internal/config"
)

// NewRootCmd creates the root command. Running it with no subcommand
// executes the full installation pipeline.
func NewRootCmd(ver string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clipabit-installer",
		Short: "Install the ClipABit plugin for DaVinci Resolve",
		Long: `Installs the ClipABit plugin for DaVinci Resolve on macOS and Windows:
verifies the environment, installs Python dependencies, and deploys the plugin
into the Resolve Fusion scripts directory.`,
		Version: ver,
		Example: rootCmdExample,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			setupLogging(cmd)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInstall(cmd)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	cmd.PersistentFlags().
		String("config", "", "installer configuration file (default: installer.yaml beside the binary)")
	addInstallFlags(cmd)

	cmd.AddCommand(NewInstallCmd(), NewDoctorCmd(), NewDepsCmd(), NewVerifyCmd())
	return cmd
}

const rootCmdExample = `  # Run the full installation
  clipabit-installer

  # Check the environment without changing anything
  clipabit-installer doctor

  # Show the resolved dependency list
  clipabit-installer deps

  # Re-verify an existing installation
  clipabit-installer verify

  # Install into a specific Resolve scripts directory
  clipabit-installer install --target-dir "/Library/Application Support/Blackmagic Design/DaVinci Resolve/Fusion/Scripts/Utility"`

// loadConfig reads the installer configuration honoring the --config
// flag, defaulting to installer.yaml beside the binary.
func loadConfig(cmd *cobra.Command) (*config.Config, string, error) {
	baseDir, err := installerDir()
	if err != nil {
		return nil, "", err
	}

	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		path = filepath.Join(baseDir, config.DefaultFileName)
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, "", err
	}
	return cfg, baseDir, nil
}

// installerDir resolves the directory holding the installer binary; the
// plugin source tree and manifest are located relative to it.
func installerDir() (string, error) {
	execPath, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("resolving executable path: %w", err)
	}
	execPath, err = filepath.EvalSymlinks(execPath)
	if err != nil {
		return "", fmt.Errorf("resolving symlinks for executable: %w", err)
	}
	return filepath.Dir(execPath), nil
}
