// Command clipabit-installer installs the ClipABit plugin for DaVinci
// Resolve. It verifies the host environment, installs the plugin's
// Python dependencies, deploys the plugin tree into the Resolve Fusion
// scripts directory, and verifies the result.
package main

import (
	"fmt"
	"os"

	"github.com/clipabit/clipabit-installer/internal/cli"
	"github.com/clipabit/clipabit-installer/internal/ui"
)

// version is overridden at build time via -ldflags.
var version = "dev"

func main() {
	cmd := cli.NewRootCmd(version)
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.Error(err.Error()))
		os.Exit(1)
	}
}
