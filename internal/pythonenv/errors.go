// Package pythonenv verifies and repairs the Python environment the
// ClipABit plugin runs in: interpreter presence and version, pip
// availability (with a one-shot ensurepip self-heal), dependency
// installation, and post-deploy import verification. Python and pip are
// opaque subprocesses; only exit codes and captured streams are
// consumed.
package pythonenv

import (
	"errors"
	"fmt"
	"strings"
)

// pythonDownloadURL is where operators can obtain a Python runtime.
const pythonDownloadURL = "https://www.python.org/downloads/"

// Sentinel errors for structured handling across the pipeline.
var (
	// ErrPythonNotFound indicates no usable Python interpreter is in PATH.
	ErrPythonNotFound = fmt.Errorf(
		"python 3 not found in PATH; install it from %s", pythonDownloadURL)

	// ErrPythonTooOld indicates the interpreter predates the minimum
	// supported version.
	ErrPythonTooOld = errors.New("python version too old")

	// ErrVersionUnparseable indicates the interpreter's --version output
	// could not be understood.
	ErrVersionUnparseable = errors.New("could not parse python version output")

	// ErrPipUnavailable indicates pip is missing and the ensurepip
	// self-heal also failed.
	ErrPipUnavailable = errors.New("pip is not available and could not be installed")

	// ErrInstallFailed indicates a dependency failed to install.
	ErrInstallFailed = errors.New("dependency installation failed")

	// ErrImportsFailed indicates one or more installed dependencies are
	// not importable in the runtime's default environment.
	ErrImportsFailed = errors.New("some dependencies are not importable")
)

// InstallError wraps ErrInstallFailed with the failing dependency and
// the captured pip stderr.
func InstallError(dep, stderr string) error {
	detail := strings.TrimSpace(stderr)
	if detail == "" {
		detail = "unknown error"
	}
	return fmt.Errorf("%w: %s: %s", ErrInstallFailed, dep, detail)
}
