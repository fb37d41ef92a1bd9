package cli

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/clipabit/clipabit-installer/internal/logging"
)

// isTerminal checks if the given writer is a terminal.
func isTerminal(w any) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// setupLogging configures the run's logger from CLI flags and stores it
// on the command context together with a fresh trace ID, so every stage
// of the pipeline logs with the same correlation ID.
func setupLogging(cmd *cobra.Command) {
	level := "warn"
	if debug, _ := cmd.Flags().GetBool("debug"); debug {
		level = "debug"
	}

	errOut := cmd.ErrOrStderr()
	logger := logging.ComponentLogger(
		logging.New(logging.Config{Level: level, NoColor: !isTerminal(errOut), Out: errOut}),
		"cli",
	)

	ctx := cmd.Context()
	traceID := logging.GetOrGenerateTraceID(ctx)
	ctx = logging.ContextWithTraceID(ctx, traceID)

	logger = logger.With().Str("trace_id", traceID).Logger()
	cmd.SetContext(logger.WithContext(ctx))

	logger.Debug().Str("command", cmd.Name()).Msg("command started")
}
