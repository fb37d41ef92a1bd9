// Package deploy resolves the DaVinci Resolve plugin discovery directory
// and installs the ClipABit plugin tree into it. The target plugin
// directory is treated as exclusively owned by the installer: any prior
// installation is replaced wholesale, never merged.
package deploy

import "errors"

var (
	// ErrSourceMissing indicates the plugin source tree is absent. This
	// is a packaging defect in the installer distribution, not operator
	// error.
	ErrSourceMissing = errors.New("plugin source directory not found")

	// ErrEntryMissing indicates the deployed entry-point file does not
	// exist, meaning the installation is broken.
	ErrEntryMissing = errors.New("plugin entry file not found after installation")

	// ErrUnsupportedPlatform indicates plugin directory candidates were
	// requested for an OS the installer does not support.
	ErrUnsupportedPlatform = errors.New("no plugin directories known for this platform")
)
