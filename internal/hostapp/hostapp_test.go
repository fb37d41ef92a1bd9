package hostapp

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clipabit/clipabit-installer/internal/platform"
)

func TestDefaultCandidates(t *testing.T) {
	t.Parallel()

	darwin, err := DefaultCandidates(platform.Darwin)
	require.NoError(t, err)
	require.Len(t, darwin, 2)
	assert.Contains(t, darwin[0], "DaVinci Resolve.app")
	assert.Contains(t, darwin[1], "Studio")

	windows, err := DefaultCandidates(platform.Windows)
	require.NoError(t, err)
	require.Len(t, windows, 2)
	assert.Contains(t, windows[0], "Resolve.exe")
	assert.Contains(t, windows[1], "Studio")

	_, err = DefaultCandidates(platform.Unsupported)
	assert.ErrorIs(t, err, ErrUnsupportedPlatform)
}

func TestDetect_FirstExistingWins(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	standard := filepath.Join(dir, "DaVinci Resolve.app")
	studio := filepath.Join(dir, "DaVinci Resolve Studio.app")
	require.NoError(t, os.MkdirAll(studio, 0o755))

	found, err := Detect([]string{standard, studio})
	require.NoError(t, err)
	assert.Equal(t, studio, found)

	// When both exist the first candidate wins.
	require.NoError(t, os.MkdirAll(standard, 0o755))
	found, err = Detect([]string{standard, studio})
	require.NoError(t, err)
	assert.Equal(t, standard, found)
}

func TestDetect_NoneExist(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	_, err := Detect([]string{filepath.Join(dir, "missing-a"), filepath.Join(dir, "missing-b")})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), DownloadURL)
}
