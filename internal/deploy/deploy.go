package deploy

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/clipabit/clipabit-installer/internal/logging"
)

// entryFileMode is the best-effort permission set on the entry-point
// file after deployment.
const entryFileMode = 0o755

// Options configures a plugin deployment.
type Options struct {
	// SourceDir is the plugin source tree shipped with the installer.
	SourceDir string

	// TargetRoot is the resolved Resolve scripts directory.
	TargetRoot string

	// PluginName is the directory name created under TargetRoot.
	PluginName string

	// EntryFile is the plugin's entry-point file name inside the tree.
	EntryFile string
}

// Deploy installs the plugin tree. It fails if the source is absent,
// creates the target root (idempotent), removes any prior installation
// entirely, copies the full source tree, and finally sets executable
// permission on the entry file. The permission step is best effort and
// never fails the deployment. Returns the installed plugin directory.
func Deploy(ctx context.Context, opts Options) (string, error) {
	log := logging.FromContext(ctx)

	srcInfo, err := os.Stat(opts.SourceDir)
	if err != nil || !srcInfo.IsDir() {
		return "", fmt.Errorf("%w: %s", ErrSourceMissing, opts.SourceDir)
	}

	target := filepath.Join(opts.TargetRoot, opts.PluginName)

	log.Debug().
		Str("component", "deploy").
		Str("source", opts.SourceDir).
		Str("target", target).
		Msg("deploying plugin tree")

	if err := os.MkdirAll(opts.TargetRoot, 0o755); err != nil {
		return "", fmt.Errorf("creating plugin directory %s: %w", opts.TargetRoot, err)
	}

	// Destructive overwrite: a prior installation is removed wholesale,
	// never merged with the new tree.
	if _, err := os.Stat(target); err == nil {
		log.Info().
			Str("component", "deploy").
			Str("target", target).
			Msg("removing existing installation")
		if err := os.RemoveAll(target); err != nil {
			return "", fmt.Errorf("removing existing installation %s: %w", target, err)
		}
	}

	if err := copyTree(opts.SourceDir, target); err != nil {
		return "", fmt.Errorf("copying plugin files: %w", err)
	}

	if opts.EntryFile != "" {
		entry := filepath.Join(target, opts.EntryFile)
		if _, err := os.Stat(entry); err == nil {
			// Meaningless on Windows; harmless to attempt everywhere.
			_ = os.Chmod(entry, entryFileMode)
		}
	}

	log.Info().
		Str("component", "deploy").
		Str("target", target).
		Msg("plugin files deployed")

	return target, nil
}

// VerifyFiles checks that the deployed entry-point file exists under
// targetRoot. Absence means the installation is broken.
func VerifyFiles(targetRoot, pluginName, entryFile string) error {
	entry := filepath.Join(targetRoot, pluginName, entryFile)
	if _, err := os.Stat(entry); err != nil {
		return fmt.Errorf("%w: %s", ErrEntryMissing, entry)
	}
	return nil
}

// copyTree recursively copies the directory tree at src to dst,
// preserving file modes. dst must not exist yet.
func copyTree(src, dst string) error {
	return filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		dest := filepath.Join(dst, rel)

		if d.IsDir() {
			info, infoErr := d.Info()
			if infoErr != nil {
				return infoErr
			}
			return os.MkdirAll(dest, info.Mode().Perm())
		}

		return copyFile(path, dest)
	})
}

// copyFile copies a file from src to dst, preserving permissions.
func copyFile(src, dst string) error {
	srcFile, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("opening source: %w", err)
	}
	defer srcFile.Close()

	srcInfo, err := srcFile.Stat()
	if err != nil {
		return fmt.Errorf("stat source: %w", err)
	}

	dstFile, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, srcInfo.Mode().Perm())
	if err != nil {
		return fmt.Errorf("creating destination: %w", err)
	}

	if _, copyErr := io.Copy(dstFile, srcFile); copyErr != nil {
		_ = dstFile.Close()
		return fmt.Errorf("copying file: %w", copyErr)
	}

	if closeErr := dstFile.Close(); closeErr != nil {
		return fmt.Errorf("closing destination: %w", closeErr)
	}

	return nil
}
