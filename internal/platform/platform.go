// Package platform identifies the host operating system. The installer
// supports macOS and Windows only; everything else is Unsupported and
// fatal for the run.
package platform

import (
	"errors"
	"fmt"
	"runtime"
)

// Platform is the host OS family, determined once at startup and
// immutable for the run.
type Platform int

const (
	// Unsupported is any OS other than macOS or Windows.
	Unsupported Platform = iota
	// Darwin is macOS.
	Darwin
	// Windows is Microsoft Windows.
	Windows
)

// ErrUnsupported indicates the installer is running on an OS it does
// not support.
var ErrUnsupported = errors.New("unsupported platform: this installer supports macOS and Windows only")

// Detect returns the Platform for the running OS.
func Detect() Platform {
	return FromGOOS(runtime.GOOS)
}

// FromGOOS maps a GOOS string to a Platform. Exposed so tests can
// exercise the mapping without cross-compiling.
func FromGOOS(goos string) Platform {
	switch goos {
	case "darwin":
		return Darwin
	case "windows":
		return Windows
	default:
		return Unsupported
	}
}

// Supported reports whether p is an OS the installer can target.
func (p Platform) Supported() bool {
	return p == Darwin || p == Windows
}

// String returns a human-readable platform name.
func (p Platform) String() string {
	switch p {
	case Darwin:
		return "macOS"
	case Windows:
		return "Windows"
	default:
		return "unsupported"
	}
}

// Check validates that p is supported, returning ErrUnsupported wrapped
// with the offending GOOS-level name otherwise.
func (p Platform) Check(goos string) error {
	if p.Supported() {
		return nil
	}
	return fmt.Errorf("%w (detected %q)", ErrUnsupported, goos)
}
