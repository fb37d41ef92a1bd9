package pythonenv

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/clipabit/clipabit-installer/internal/logging"
)

// MinRuntimeVersion is the minimum Python version the plugin supports.
var MinRuntimeVersion = semver.MustParse("3.8.0") //nolint:gochecknoglobals // Immutable floor, compared never mutated

// RuntimeInfo describes a verified Python interpreter.
type RuntimeInfo struct {
	// Path is the resolved interpreter location in PATH.
	Path string

	// Version is the parsed interpreter version.
	Version *semver.Version
}

// FindInterpreter locates a Python interpreter by trying each candidate
// name in PATH order. Returns ErrPythonNotFound when none resolve.
func FindInterpreter(names ...string) (string, error) {
	for _, name := range names {
		if path, err := exec.LookPath(name); err == nil {
			return path, nil
		}
	}
	return "", ErrPythonNotFound
}

// CheckRuntime verifies the interpreter at interp reports a version at
// or above min. The reported version is compared as an ordered version,
// never as a string. Any invocation failure means the runtime is
// unusable and is returned as ErrPythonNotFound.
func CheckRuntime(ctx context.Context, interp string, min *semver.Version) (*RuntimeInfo, error) {
	log := logging.FromContext(ctx)

	stdout, stderr, err := Runner.Run(ctx, interp, "--version")
	if err != nil {
		return nil, fmt.Errorf("%w: running %s --version: %s",
			ErrPythonNotFound, interp, strings.TrimSpace(string(stderr)))
	}

	// Python 2 printed the version on stderr; accept either stream.
	raw := strings.TrimSpace(string(stdout))
	if raw == "" {
		raw = strings.TrimSpace(string(stderr))
	}

	version, err := parseVersion(raw)
	if err != nil {
		return nil, err
	}

	log.Debug().
		Str("component", "pythonenv").
		Str("interpreter", interp).
		Str("version", version.String()).
		Msg("python runtime detected")

	if version.LessThan(min) {
		return nil, fmt.Errorf("%w: found %s, need %s or newer",
			ErrPythonTooOld, version, min)
	}

	return &RuntimeInfo{Path: interp, Version: version}, nil
}

// parseVersion extracts a semver version from "Python X.Y.Z" output.
func parseVersion(raw string) (*semver.Version, error) {
	fields := strings.Fields(raw)
	if len(fields) < 2 || fields[0] != "Python" {
		return nil, fmt.Errorf("%w: %q", ErrVersionUnparseable, raw)
	}

	version, err := semver.NewVersion(fields[1])
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %w", ErrVersionUnparseable, raw, err)
	}
	return version, nil
}

// PipVersion reports the pip version line via "-m pip --version".
// Read-only: no self-heal is attempted.
func PipVersion(ctx context.Context, interp string) (string, error) {
	stdout, stderr, err := Runner.Run(ctx, interp, "-m", "pip", "--version")
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrPipUnavailable, strings.TrimSpace(string(stderr)))
	}
	return strings.TrimSpace(string(stdout)), nil
}

// CheckPip verifies pip is usable via "-m pip --version". On failure it
// attempts a one-shot self-heal with "-m ensurepip --default-pip" and
// re-verifies. Returns the pip version line on success.
func CheckPip(ctx context.Context, interp string) (string, error) {
	log := logging.FromContext(ctx)

	version, err := PipVersion(ctx, interp)
	if err == nil {
		return version, nil
	}

	log.Warn().
		Str("component", "pythonenv").
		Str("interpreter", interp).
		Msg("pip missing, attempting ensurepip bootstrap")

	if _, stderr, healErr := Runner.Run(ctx, interp, "-m", "ensurepip", "--default-pip"); healErr != nil {
		return "", fmt.Errorf("%w: ensurepip failed: %s",
			ErrPipUnavailable, strings.TrimSpace(string(stderr)))
	}

	version, err = PipVersion(ctx, interp)
	if err != nil {
		return "", fmt.Errorf("%w: pip still unusable after ensurepip", ErrPipUnavailable)
	}

	return version, nil
}
