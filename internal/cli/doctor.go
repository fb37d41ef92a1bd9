package cli

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/clipabit/clipabit-installer/internal/deploy"
	"github.com/clipabit/clipabit-installer/internal/hostapp"
	"github.com/clipabit/clipabit-installer/internal/platform"
	"github.com/clipabit/clipabit-installer/internal/pythonenv"
	"github.com/clipabit/clipabit-installer/internal/ui"
)

// NewDoctorCmd creates the doctor command: it runs every environment
// check the installer would run, without any side effect. pip is probed
// but never self-healed, and nothing is installed or copied.
func NewDoctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check the environment without installing anything",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, _, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			ctx := cmd.Context()
			fmt.Fprintln(out, ui.Header("Environment Check"))

			failures := 0
			report := func(err error, okFormat string, args ...any) {
				if err != nil {
					failures++
					fmt.Fprintln(out, ui.Error(err.Error()))
					return
				}
				fmt.Fprintln(out, ui.Success(fmt.Sprintf(okFormat, args...)))
			}

			p := platform.Detect()
			report(p.Check(runtime.GOOS), "Running on %s", p)

			if p.Supported() {
				candidates, candErr := hostapp.DefaultCandidates(p)
				if candErr == nil {
					appPath, detectErr := hostapp.Detect(candidates)
					report(detectErr, "Found DaVinci Resolve at: %s", appPath)
				}

				targetCandidates, candErr := deploy.DefaultCandidates(p)
				if candErr == nil {
					fmt.Fprintln(out, ui.Info(
						"Plugin directory: "+deploy.ResolveTargetDir(targetCandidates)))
				}
			}

			minVersion, err := cfg.MinRuntimeVersion()
			if err != nil {
				return err
			}

			interp, interpErr := pythonenv.FindInterpreter(cfg.Python.Interpreters...)
			report(interpErr, "Python interpreter: %s", interp)

			if interpErr == nil {
				info, runtimeErr := pythonenv.CheckRuntime(ctx, interp, minVersion)
				if runtimeErr == nil {
					report(nil, "Python version: %s", info.Version)
				} else {
					report(runtimeErr, "")
				}

				pipVersion, pipErr := pythonenv.PipVersion(ctx, interp)
				report(pipErr, "Found %s", pipVersion)
			}

			if failures > 0 {
				return fmt.Errorf("%d environment check(s) failed", failures)
			}
			fmt.Fprintln(out, ui.Success("Environment looks good."))
			return nil
		},
	}
}
