package installer

import (
	"context"
	"fmt"
	"io"

	"github.com/Masterminds/semver/v3"

	"github.com/clipabit/clipabit-installer/internal/config"
	"github.com/clipabit/clipabit-installer/internal/deploy"
	"github.com/clipabit/clipabit-installer/internal/hostapp"
	"github.com/clipabit/clipabit-installer/internal/logging"
	"github.com/clipabit/clipabit-installer/internal/manifest"
	"github.com/clipabit/clipabit-installer/internal/platform"
	"github.com/clipabit/clipabit-installer/internal/pythonenv"
	"github.com/clipabit/clipabit-installer/internal/ui"
)

// Options configures a pipeline run.
type Options struct {
	// Config is the installer configuration (never nil).
	Config *config.Config

	// BaseDir is the directory containing the installer binary and the
	// plugin source tree.
	BaseDir string

	// Out receives the human-readable status lines.
	Out io.Writer

	// Platform is the detected host platform.
	Platform platform.Platform

	// GOOS is the raw OS identifier, used in diagnostics.
	GOOS string

	// TargetRootOverride bypasses plugin-directory resolution when set.
	TargetRootOverride string
}

// Hooks are the pipeline's seams to its collaborators. Production runs
// use defaultHooks; tests substitute fakes so no real subprocess or
// host filesystem layout is needed.
type Hooks struct {
	HostCandidates   func(platform.Platform) ([]string, error)
	DetectHost       func([]string) (string, error)
	FindInterpreter  func(...string) (string, error)
	CheckRuntime     func(context.Context, string, *semver.Version) (*pythonenv.RuntimeInfo, error)
	CheckPip         func(context.Context, string) (string, error)
	ResolveManifest  func(string, []string) manifest.Resolution
	InstallDeps      func(context.Context, string, []string, pythonenv.ProgressFunc) error
	TargetCandidates func(platform.Platform) (deploy.Candidates, error)
	Deploy           func(context.Context, deploy.Options) (string, error)
	VerifyFiles      func(string, string, string) error
	CheckImports     func(context.Context, string, []string, map[string]string) error
}

func defaultHooks() Hooks {
	return Hooks{
		HostCandidates:   hostapp.DefaultCandidates,
		DetectHost:       hostapp.Detect,
		FindInterpreter:  pythonenv.FindInterpreter,
		CheckRuntime:     pythonenv.CheckRuntime,
		CheckPip:         pythonenv.CheckPip,
		ResolveManifest:  manifest.ResolveWith,
		InstallDeps:      pythonenv.InstallDependencies,
		TargetCandidates: deploy.DefaultCandidates,
		Deploy:           deploy.Deploy,
		VerifyFiles:      deploy.VerifyFiles,
		CheckImports:     pythonenv.CheckImports,
	}
}

// Pipeline is the installation state machine. Strictly sequential: each
// stage blocks until its external operations complete, and the first
// fatal failure terminates the run.
type Pipeline struct {
	opts  Options
	hooks Hooks
}

// New builds a production pipeline.
func New(opts Options) *Pipeline {
	return NewWithHooks(opts, defaultHooks())
}

// NewWithHooks builds a pipeline with substituted collaborators.
func NewWithHooks(opts Options, hooks Hooks) *Pipeline {
	if opts.Out == nil {
		opts.Out = io.Discard
	}
	return &Pipeline{opts: opts, hooks: hooks}
}

func (p *Pipeline) printf(format string, args ...any) {
	fmt.Fprintln(p.opts.Out, fmt.Sprintf(format, args...))
}

func (p *Pipeline) say(c ui.Category, format string, args ...any) {
	fmt.Fprintln(p.opts.Out, ui.Render(c, fmt.Sprintf(format, args...)))
}

// abort reports a fatal gate failure and produces the terminal result.
func (p *Pipeline) abort(ctx context.Context, state State, err error) Result {
	log := logging.FromContext(ctx)
	log.Error().
		Str("component", "installer").
		Str("state", state.String()).
		Err(err).
		Msg("installation aborted")

	p.say(ui.CategoryError, "Installation aborted: %v", err)
	return Result{Outcome: Aborted, State: state, Reason: err}
}

// Run executes the state machine:
//
//	Start → PlatformOK → AppFound → RuntimeOK → PkgMgrOK →
//	DepsResolved → DepsInstalled → FilesDeployed →
//	{Verified | VerifiedWithWarnings}
//
// Every gate failure is fatal except the final verification, which
// downgrades to SuccessWithWarnings because the files are already
// deployed.
func (p *Pipeline) Run(ctx context.Context) Result {
	cfg := p.opts.Config
	state := StateStart

	p.say(ui.CategoryHeader, "%s Plugin Installer", cfg.Plugin.Name)

	// Gate 1: supported OS.
	if err := p.opts.Platform.Check(p.opts.GOOS); err != nil {
		return p.abort(ctx, state, err)
	}
	state = StatePlatformOK
	p.say(ui.CategorySuccess, "Running on %s", p.opts.Platform)

	// Gate 2: DaVinci Resolve present.
	p.say(ui.CategoryInfo, "Checking for DaVinci Resolve installation...")
	candidates, err := p.hooks.HostCandidates(p.opts.Platform)
	if err != nil {
		return p.abort(ctx, state, err)
	}
	appPath, err := p.hooks.DetectHost(candidates)
	if err != nil {
		return p.abort(ctx, state, err)
	}
	state = StateAppFound
	p.say(ui.CategorySuccess, "Found DaVinci Resolve at: %s", appPath)

	// Gate 3: Python runtime at or above the floor.
	p.say(ui.CategoryInfo, "Checking for Python installation...")
	minVersion, err := cfg.MinRuntimeVersion()
	if err != nil {
		return p.abort(ctx, state, err)
	}
	interp, err := p.hooks.FindInterpreter(cfg.Python.Interpreters...)
	if err != nil {
		return p.abort(ctx, state, err)
	}
	runtimeInfo, err := p.hooks.CheckRuntime(ctx, interp, minVersion)
	if err != nil {
		return p.abort(ctx, state, err)
	}
	state = StateRuntimeOK
	p.say(ui.CategorySuccess, "Found Python %s", runtimeInfo.Version)
	p.say(ui.CategorySuccess, "Python executable: %s", runtimeInfo.Path)

	// Gate 4: pip usable, self-healing once if absent.
	p.say(ui.CategoryInfo, "Checking for pip...")
	pipVersion, err := p.hooks.CheckPip(ctx, interp)
	if err != nil {
		return p.abort(ctx, state, err)
	}
	state = StatePkgMgrOK
	p.say(ui.CategorySuccess, "Found %s", pipVersion)

	// Gate 5: dependency resolution (never fatal).
	resolution := p.hooks.ResolveManifest(cfg.ManifestPath(p.opts.BaseDir), cfg.Python.FallbackDependencies)
	switch resolution.Source {
	case manifest.SourceManifest:
		p.say(ui.CategorySuccess, "Loaded %d dependencies from pyproject.toml", len(resolution.Dependencies))
	case manifest.SourceEmpty:
		p.say(ui.CategoryWarning, "No dependencies declared in pyproject.toml")
	case manifest.SourceFallback:
		p.say(ui.CategoryWarning, "pyproject.toml unavailable, using fallback dependencies (%v)", resolution.Err)
	}
	state = StateDepsResolved

	// Gate 6: dependency installation, first failure aborts.
	if len(resolution.Dependencies) == 0 {
		p.say(ui.CategoryWarning, "No dependencies to install.")
	} else {
		p.say(ui.CategoryInfo, "Installing Python dependencies...")
		err = p.hooks.InstallDeps(ctx, interp, resolution.Dependencies, func(msg string) {
			p.say(ui.CategoryInfo, "%s", msg)
		})
		if err != nil {
			return p.abort(ctx, state, err)
		}
		p.say(ui.CategorySuccess, "All dependencies installed successfully.")
	}
	state = StateDepsInstalled

	// Gate 7: deploy the plugin tree.
	p.say(ui.CategoryInfo, "Installing %s plugin...", cfg.Plugin.Name)
	targetRoot := p.opts.TargetRootOverride
	if targetRoot == "" {
		targetCandidates, candErr := p.hooks.TargetCandidates(p.opts.Platform)
		if candErr != nil {
			return p.abort(ctx, state, candErr)
		}
		targetRoot = deploy.ResolveTargetDir(targetCandidates)
	}

	sourceDir := cfg.SourcePath(p.opts.BaseDir)
	p.say(ui.CategoryInfo, "Source: %s", sourceDir)
	p.say(ui.CategoryInfo, "Target: %s", targetRoot)

	installedDir, err := p.hooks.Deploy(ctx, deploy.Options{
		SourceDir:  sourceDir,
		TargetRoot: targetRoot,
		PluginName: cfg.Plugin.Name,
		EntryFile:  cfg.Plugin.EntryFile,
	})
	if err != nil {
		return p.abort(ctx, state, err)
	}
	state = StateFilesDeployed
	p.say(ui.CategorySuccess, "Plugin files copied to: %s", installedDir)

	// Final gate: verification. Failure here is a warning, not an abort.
	p.say(ui.CategoryInfo, "Verifying installation...")
	verifyErr := p.hooks.VerifyFiles(targetRoot, cfg.Plugin.Name, cfg.Plugin.EntryFile)
	if verifyErr == nil {
		p.say(ui.CategorySuccess, "Plugin file verified.")
		p.say(ui.CategoryInfo, "Checking dependencies...")
		verifyErr = p.hooks.CheckImports(ctx, interp, resolution.Dependencies, cfg.Python.ImportNames)
	}

	if verifyErr != nil {
		p.say(ui.CategoryWarning, "Installation completed with warnings: %v", verifyErr)
		return Result{
			Outcome:   SuccessWithWarnings,
			State:     StateVerifiedWithWarnings,
			Reason:    verifyErr,
			TargetDir: targetRoot,
		}
	}

	p.say(ui.CategorySuccess, "All dependencies are accessible.")
	p.printCompletion()
	return Result{Outcome: Success, State: StateVerified, TargetDir: targetRoot}
}

// printCompletion prints the post-install usage guide.
func (p *Pipeline) printCompletion() {
	cfg := p.opts.Config
	p.say(ui.CategoryHeader, "Installation Complete!")
	p.say(ui.CategorySuccess, "%s plugin has been installed successfully.", cfg.Plugin.Name)
	p.printf("")
	p.say(ui.CategoryInfo, "To use the plugin in DaVinci Resolve:")
	p.printf("  1. Open DaVinci Resolve")
	p.printf("  2. Go to the Fusion page")
	p.printf("  3. Open the Script menu")
	p.printf("  4. Select 'Utility' → '%s'", cfg.Plugin.Name)
	p.printf("")
	p.say(ui.CategoryInfo, "For support, visit: %s", cfg.Plugin.SupportURL)
}
