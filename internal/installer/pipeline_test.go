package installer

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/Masterminds/semver/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clipabit/clipabit-installer/internal/config"
	"github.com/clipabit/clipabit-installer/internal/deploy"
	"github.com/clipabit/clipabit-installer/internal/hostapp"
	"github.com/clipabit/clipabit-installer/internal/manifest"
	"github.com/clipabit/clipabit-installer/internal/platform"
	"github.com/clipabit/clipabit-installer/internal/pythonenv"
)

// fakeEnv records which stages ran and scripts their results.
type fakeEnv struct {
	calls []string

	detectHostErr   error
	runtimeErr      error
	pipErr          error
	resolution      manifest.Resolution
	installErr      error
	deployErr       error
	verifyFilesErr  error
	checkImportsErr error

	installedDeps []string
}

func (f *fakeEnv) hooks() Hooks {
	return Hooks{
		HostCandidates: func(p platform.Platform) ([]string, error) {
			f.calls = append(f.calls, "host_candidates")
			return hostapp.DefaultCandidates(p)
		},
		DetectHost: func([]string) (string, error) {
			f.calls = append(f.calls, "detect_host")
			if f.detectHostErr != nil {
				return "", f.detectHostErr
			}
			return "/Applications/DaVinci Resolve/DaVinci Resolve.app", nil
		},
		FindInterpreter: func(...string) (string, error) {
			f.calls = append(f.calls, "find_interpreter")
			return "/usr/bin/python3", nil
		},
		CheckRuntime: func(_ context.Context, interp string, _ *semver.Version) (*pythonenv.RuntimeInfo, error) {
			f.calls = append(f.calls, "check_runtime")
			if f.runtimeErr != nil {
				return nil, f.runtimeErr
			}
			return &pythonenv.RuntimeInfo{Path: interp, Version: semver.MustParse("3.9.7")}, nil
		},
		CheckPip: func(context.Context, string) (string, error) {
			f.calls = append(f.calls, "check_pip")
			if f.pipErr != nil {
				return "", f.pipErr
			}
			return "pip 23.0.1", nil
		},
		ResolveManifest: func(string, []string) manifest.Resolution {
			f.calls = append(f.calls, "resolve_manifest")
			return f.resolution
		},
		InstallDeps: func(_ context.Context, _ string, deps []string, _ pythonenv.ProgressFunc) error {
			f.calls = append(f.calls, "install_deps")
			f.installedDeps = deps
			return f.installErr
		},
		TargetCandidates: func(platform.Platform) (deploy.Candidates, error) {
			f.calls = append(f.calls, "target_candidates")
			return deploy.Candidates{User: "/tmp/user-scope", System: "/tmp/system-scope"}, nil
		},
		Deploy: func(_ context.Context, opts deploy.Options) (string, error) {
			f.calls = append(f.calls, "deploy")
			if f.deployErr != nil {
				return "", f.deployErr
			}
			return opts.TargetRoot + "/" + opts.PluginName, nil
		},
		VerifyFiles: func(string, string, string) error {
			f.calls = append(f.calls, "verify_files")
			return f.verifyFilesErr
		},
		CheckImports: func(context.Context, string, []string, map[string]string) error {
			f.calls = append(f.calls, "check_imports")
			return f.checkImportsErr
		},
	}
}

func (f *fakeEnv) called(name string) bool {
	for _, c := range f.calls {
		if c == name {
			return true
		}
	}
	return false
}

func newTestPipeline(f *fakeEnv, p platform.Platform, goos string) (*Pipeline, *bytes.Buffer) {
	out := &bytes.Buffer{}
	pipe := NewWithHooks(Options{
		Config:             config.Default(),
		BaseDir:            "/opt/clipabit",
		Out:                out,
		Platform:           p,
		GOOS:               goos,
		TargetRootOverride: "/tmp/user-scope",
	}, f.hooks())
	return pipe, out
}

func manifestDeps(deps ...string) manifest.Resolution {
	return manifest.Resolution{Dependencies: deps, Source: manifest.SourceManifest}
}

func TestRun_UnsupportedPlatformHaltsImmediately(t *testing.T) {
	t.Parallel()

	f := &fakeEnv{}
	pipe, out := newTestPipeline(f, platform.FromGOOS("linux"), "linux")

	result := pipe.Run(context.Background())
	assert.Equal(t, Aborted, result.Outcome)
	assert.Equal(t, StateStart, result.State)
	assert.Equal(t, 1, result.Outcome.ExitCode())
	assert.ErrorIs(t, result.Reason, platform.ErrUnsupported)

	// Halted before touching anything: no probe, no subprocess, no copy.
	assert.Empty(t, f.calls)
	assert.Contains(t, out.String(), "Installation aborted")
}

func TestRun_HappyPath(t *testing.T) {
	t.Parallel()

	f := &fakeEnv{resolution: manifestDeps("pyqt6>=6.10.0", "requests>=2.31.0")}
	pipe, out := newTestPipeline(f, platform.Darwin, "darwin")

	result := pipe.Run(context.Background())
	require.Nil(t, result.Reason)
	assert.Equal(t, Success, result.Outcome)
	assert.Equal(t, StateVerified, result.State)
	assert.Equal(t, 0, result.Outcome.ExitCode())
	assert.Equal(t, "/tmp/user-scope", result.TargetDir)

	assert.Equal(t, []string{"pyqt6>=6.10.0", "requests>=2.31.0"}, f.installedDeps)
	assert.Contains(t, out.String(), "Installation Complete!")
	assert.Contains(t, out.String(), "Fusion page")
}

func TestRun_ImportCheckFailureIsWarningOnly(t *testing.T) {
	t.Parallel()

	f := &fakeEnv{
		resolution:      manifestDeps("pyqt6>=6.10.0"),
		checkImportsErr: pythonenv.ErrImportsFailed,
	}
	pipe, out := newTestPipeline(f, platform.Darwin, "darwin")

	result := pipe.Run(context.Background())
	assert.Equal(t, SuccessWithWarnings, result.Outcome)
	assert.Equal(t, StateVerifiedWithWarnings, result.State)
	assert.Equal(t, 0, result.Outcome.ExitCode())
	assert.ErrorIs(t, result.Reason, pythonenv.ErrImportsFailed)

	// Files stayed deployed.
	assert.True(t, f.called("deploy"))
	assert.Contains(t, out.String(), "completed with warnings")
	assert.NotContains(t, out.String(), "Installation Complete!")
}

func TestRun_MissingEntryFileIsWarningOnly(t *testing.T) {
	t.Parallel()

	f := &fakeEnv{
		resolution:     manifestDeps("pyqt6>=6.10.0"),
		verifyFilesErr: deploy.ErrEntryMissing,
	}
	pipe, _ := newTestPipeline(f, platform.Darwin, "darwin")

	result := pipe.Run(context.Background())
	assert.Equal(t, SuccessWithWarnings, result.Outcome)
	// Import check is skipped once the entry file is known to be missing.
	assert.False(t, f.called("check_imports"))
}

func TestRun_HostAppMissingAborts(t *testing.T) {
	t.Parallel()

	f := &fakeEnv{detectHostErr: hostapp.ErrNotFound}
	pipe, _ := newTestPipeline(f, platform.Darwin, "darwin")

	result := pipe.Run(context.Background())
	assert.Equal(t, Aborted, result.Outcome)
	assert.Equal(t, StatePlatformOK, result.State)
	assert.False(t, f.called("find_interpreter"))
	assert.False(t, f.called("deploy"))
}

func TestRun_RuntimeTooOldAborts(t *testing.T) {
	t.Parallel()

	f := &fakeEnv{runtimeErr: pythonenv.ErrPythonTooOld}
	pipe, _ := newTestPipeline(f, platform.Darwin, "darwin")

	result := pipe.Run(context.Background())
	assert.Equal(t, Aborted, result.Outcome)
	assert.Equal(t, StateAppFound, result.State)
	assert.False(t, f.called("check_pip"))
}

func TestRun_PipUnavailableAborts(t *testing.T) {
	t.Parallel()

	f := &fakeEnv{pipErr: pythonenv.ErrPipUnavailable}
	pipe, _ := newTestPipeline(f, platform.Darwin, "darwin")

	result := pipe.Run(context.Background())
	assert.Equal(t, Aborted, result.Outcome)
	assert.Equal(t, StateRuntimeOK, result.State)
	assert.False(t, f.called("resolve_manifest"))
}

func TestRun_DependencyInstallFailureAborts(t *testing.T) {
	t.Parallel()

	f := &fakeEnv{
		resolution: manifestDeps("pyqt6>=6.10.0"),
		installErr: pythonenv.ErrInstallFailed,
	}
	pipe, _ := newTestPipeline(f, platform.Darwin, "darwin")

	result := pipe.Run(context.Background())
	assert.Equal(t, Aborted, result.Outcome)
	assert.Equal(t, StateDepsResolved, result.State)
	assert.False(t, f.called("deploy"), "no filesystem mutation after an install failure")
}

func TestRun_EmptyDependencyListSkipsInstaller(t *testing.T) {
	t.Parallel()

	f := &fakeEnv{resolution: manifest.Resolution{Source: manifest.SourceEmpty}}
	pipe, out := newTestPipeline(f, platform.Darwin, "darwin")

	result := pipe.Run(context.Background())
	assert.Equal(t, Success, result.Outcome)
	assert.False(t, f.called("install_deps"))
	assert.Contains(t, out.String(), "No dependencies to install.")
}

func TestRun_FallbackResolutionWarns(t *testing.T) {
	t.Parallel()

	f := &fakeEnv{resolution: manifest.Resolution{
		Dependencies: manifest.FallbackDependencies(),
		Source:       manifest.SourceFallback,
		Err:          errors.New("no such file"),
	}}
	pipe, out := newTestPipeline(f, platform.Darwin, "darwin")

	result := pipe.Run(context.Background())
	assert.Equal(t, Success, result.Outcome)
	assert.Contains(t, out.String(), "fallback dependencies")
	assert.Equal(t, manifest.FallbackDependencies(), f.installedDeps)
}

func TestRun_DeployFailureAborts(t *testing.T) {
	t.Parallel()

	f := &fakeEnv{
		resolution: manifestDeps("requests>=2.31.0"),
		deployErr:  deploy.ErrSourceMissing,
	}
	pipe, _ := newTestPipeline(f, platform.Darwin, "darwin")

	result := pipe.Run(context.Background())
	assert.Equal(t, Aborted, result.Outcome)
	assert.Equal(t, StateDepsInstalled, result.State)
	assert.False(t, f.called("verify_files"))
}

func TestRun_TargetRootOverrideSkipsResolution(t *testing.T) {
	t.Parallel()

	f := &fakeEnv{resolution: manifestDeps("requests>=2.31.0")}
	pipe, _ := newTestPipeline(f, platform.Windows, "windows")

	result := pipe.Run(context.Background())
	assert.Equal(t, Success, result.Outcome)
	assert.False(t, f.called("target_candidates"))
	assert.Equal(t, "/tmp/user-scope", result.TargetDir)
}

func TestOutcomeExitCodes(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0, Success.ExitCode())
	assert.Equal(t, 0, SuccessWithWarnings.ExitCode())
	assert.Equal(t, 1, Aborted.ExitCode())
}

func TestStateString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "start", StateStart.String())
	assert.Equal(t, "files_deployed", StateFilesDeployed.String())
	assert.Equal(t, "verified_with_warnings", StateVerifiedWithWarnings.String())
}
