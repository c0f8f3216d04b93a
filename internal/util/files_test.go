package util

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"transmux/internal/config"
)

func TestSanitizeFilename(t *testing.T) {
	assert.Equal(t, "my_video_", SanitizeFilename(`my/video?`))
	assert.Equal(t, "a b", SanitizeFilename("a    b"))
	assert.Equal(t, "plain.mp4", SanitizeFilename("plain.mp4"))
	assert.LessOrEqual(t, len(SanitizeFilename(string(make([]byte, 400)))), 200)
}

func TestSweepScratchDirRemovesExpiredArtifacts(t *testing.T) {
	dir := t.TempDir()
	config.ScratchDir = dir
	config.OutputRetention = 20 * time.Minute

	expired := filepath.Join(dir, "old_output.mp4")
	fresh := filepath.Join(dir, "new_output.mp4")
	require.NoError(t, os.WriteFile(expired, []byte("x"), 0644))
	require.NoError(t, os.WriteFile(fresh, []byte("y"), 0644))

	past := time.Now().Add(-time.Hour)
	require.NoError(t, os.Chtimes(expired, past, past))

	SweepScratchDir()

	_, err := os.Stat(expired)
	assert.True(t, os.IsNotExist(err), "expired artifact should be swept")
	_, err = os.Stat(fresh)
	assert.NoError(t, err, "fresh artifact must survive the sweep")
}

func TestEnsureScratchDirClearsLeftovers(t *testing.T) {
	dir := t.TempDir()
	config.ScratchDir = dir
	require.NoError(t, os.WriteFile(filepath.Join(dir, "stale_output.mp4"), []byte("x"), 0644))

	EnsureScratchDir()

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
