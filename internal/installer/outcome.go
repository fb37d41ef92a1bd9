// Package installer runs the installation state machine: an ordered
// sequence of environment checks and side-effecting operations, each
// gated on the success of the previous one. Any failing gate aborts the
// run, except post-deploy verification, which degrades to a warning
// because the files are already in place.
package installer

// State is a position in the installation state machine.
type State int

const (
	// StateStart is the initial state before any gate has run.
	StateStart State = iota
	// StatePlatformOK follows a successful OS check.
	StatePlatformOK
	// StateAppFound follows detection of a DaVinci Resolve install.
	StateAppFound
	// StateRuntimeOK follows Python runtime verification.
	StateRuntimeOK
	// StatePkgMgrOK follows pip verification (or self-heal).
	StatePkgMgrOK
	// StateDepsResolved follows dependency resolution.
	StateDepsResolved
	// StateDepsInstalled follows dependency installation.
	StateDepsInstalled
	// StateFilesDeployed follows the plugin tree copy.
	StateFilesDeployed
	// StateVerified is the fully verified terminal state.
	StateVerified
	// StateVerifiedWithWarnings is the terminal state when files are
	// deployed but post-deploy verification failed.
	StateVerifiedWithWarnings
)

// String returns the state name used in logs.
func (s State) String() string {
	switch s {
	case StateStart:
		return "start"
	case StatePlatformOK:
		return "platform_ok"
	case StateAppFound:
		return "app_found"
	case StateRuntimeOK:
		return "runtime_ok"
	case StatePkgMgrOK:
		return "pkg_mgr_ok"
	case StateDepsResolved:
		return "deps_resolved"
	case StateDepsInstalled:
		return "deps_installed"
	case StateFilesDeployed:
		return "files_deployed"
	case StateVerified:
		return "verified"
	case StateVerifiedWithWarnings:
		return "verified_with_warnings"
	default:
		return "unknown"
	}
}

// Outcome is the terminal status of one installer run. It exists only
// for the duration of the process and determines the exit code.
type Outcome int

const (
	// Success means every gate passed.
	Success Outcome = iota
	// SuccessWithWarnings means files are deployed but verification
	// reported problems.
	SuccessWithWarnings
	// Aborted means a fatal gate failed and the pipeline stopped.
	Aborted
)

// ExitCode maps the outcome to the process exit code: warnings still
// count as success.
func (o Outcome) ExitCode() int {
	if o == Aborted {
		return 1
	}
	return 0
}

// Result is the terminal report of a pipeline run.
type Result struct {
	// Outcome is the terminal status.
	Outcome Outcome

	// State is the last state reached before termination.
	State State

	// Reason is the gate failure that caused an abort, or the
	// verification failure behind SuccessWithWarnings. Nil on Success.
	Reason error

	// TargetDir is the resolved installation directory, when the run
	// got far enough to resolve it.
	TargetDir string
}
