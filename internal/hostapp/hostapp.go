// Package hostapp detects a DaVinci Resolve installation by probing its
// well-known filesystem locations. Resolve is never launched or
// controlled; presence of its application bundle or executable is the
// only signal consumed.
package hostapp

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/clipabit/clipabit-installer/internal/platform"
)

// DownloadURL is where operators can obtain DaVinci Resolve.
const DownloadURL = "https://www.blackmagicdesign.com/products/davinciresolve/"

// ErrNotFound indicates no DaVinci Resolve installation was found at any
// of the probed locations.
var ErrNotFound = fmt.Errorf(
	"DaVinci Resolve not found; install it from %s and re-run the installer", DownloadURL)

// ErrUnsupportedPlatform indicates candidates were requested for an OS
// the installer does not support.
var ErrUnsupportedPlatform = errors.New("no DaVinci Resolve install locations known for this platform")

// DefaultCandidates returns the fixed, platform-specific list of paths
// where DaVinci Resolve (standard and Studio editions) installs itself.
func DefaultCandidates(p platform.Platform) ([]string, error) {
	switch p {
	case platform.Darwin:
		return []string{
			"/Applications/DaVinci Resolve/DaVinci Resolve.app",
			"/Applications/DaVinci Resolve Studio/DaVinci Resolve Studio.app",
		}, nil
	case platform.Windows:
		return []string{
			filepath.Join(`C:\Program Files\Blackmagic Design\DaVinci Resolve`, "Resolve.exe"),
			filepath.Join(`C:\Program Files\Blackmagic Design\DaVinci Resolve Studio`, "Resolve.exe"),
		}, nil
	default:
		return nil, ErrUnsupportedPlatform
	}
}

// Detect probes paths in order and returns the first that exists.
// Returns ErrNotFound when none exist. Read-only: no side effects
// beyond os.Stat calls.
func Detect(paths []string) (string, error) {
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}
	return "", ErrNotFound
}
