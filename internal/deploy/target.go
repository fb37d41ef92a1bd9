package deploy

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/clipabit/clipabit-installer/internal/platform"
)

// fusionScriptsSuffix is the path below each root where Resolve scans
// for utility scripts.
const fusionScriptsSuffix = "Fusion/Scripts/Utility"

// Candidates is the pair of plugin-discovery directories Resolve scans
// on one platform: one private to the current account, one shared
// machine-wide.
type Candidates struct {
	// User is the account-private scripts directory.
	User string

	// System is the machine-wide scripts directory.
	System string
}

// DefaultCandidates returns the Resolve Fusion scripts directories for
// the given platform.
func DefaultCandidates(p platform.Platform) (Candidates, error) {
	switch p {
	case platform.Darwin:
		home, err := os.UserHomeDir()
		if err != nil {
			return Candidates{}, fmt.Errorf("resolving home directory: %w", err)
		}
		return Candidates{
			User: filepath.Join(home,
				"Library/Application Support/Blackmagic Design/DaVinci Resolve", fusionScriptsSuffix),
			System: filepath.Join(
				"/Library/Application Support/Blackmagic Design/DaVinci Resolve", fusionScriptsSuffix),
		}, nil
	case platform.Windows:
		return Candidates{
			User: filepath.Join(os.Getenv("APPDATA"),
				"Blackmagic Design/DaVinci Resolve/Support", fusionScriptsSuffix),
			System: filepath.Join(os.Getenv("PROGRAMDATA"),
				"Blackmagic Design/DaVinci Resolve", fusionScriptsSuffix),
		}, nil
	default:
		return Candidates{}, ErrUnsupportedPlatform
	}
}

// ResolveTargetDir selects the directory to install into. The user
// scope wins unless it is absent while the system scope exists. Pure
// over filesystem existence: deterministic and idempotent for an
// unchanged filesystem, and creates nothing.
func ResolveTargetDir(c Candidates) string {
	if dirExists(c.User) || !dirExists(c.System) {
		return c.User
	}
	return c.System
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
