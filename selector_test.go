package dropzone

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFiles(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(name), 0o644))
	}
}

func TestPathSelector(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "a.png", "b.txt")

	batch, err := PathSelector(filepath.Join(dir, "a.png"), filepath.Join(dir, "b.txt")).Select(context.Background())
	require.NoError(t, err)
	require.Len(t, batch, 2)
	assert.Equal(t, "a.png", batch[0].Name())
	assert.Equal(t, "image/png", batch[0].MIMEType())
	assert.Equal(t, "text/plain", batch[1].MIMEType())

	_, err = PathSelector(filepath.Join(dir, "missing")).Select(context.Background())
	assert.Error(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = PathSelector(filepath.Join(dir, "a.png")).Select(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestGlobSelector(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "b.png", "a.png", "notes.txt")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.png"), 0o755))

	s, err := GlobSelector(dir, "*.png")
	require.NoError(t, err)
	batch, err := s.Select(context.Background())
	require.NoError(t, err)
	require.Len(t, batch, 2)
	assert.Equal(t, "a.png", batch[0].Name())
	assert.Equal(t, "b.png", batch[1].Name())

	all, err := GlobSelector(dir, "")
	require.NoError(t, err)
	batch, err = all.Select(context.Background())
	require.NoError(t, err)
	assert.Len(t, batch, 3)

	_, err = GlobSelector(dir, "[")
	assert.Error(t, err)

	missing, err := GlobSelector(filepath.Join(dir, "nope"), "*")
	require.NoError(t, err)
	_, err = missing.Select(context.Background())
	assert.Error(t, err)
}

func TestTriggerSelection_GlobSelector(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "a.png", "b.png")

	s, err := GlobSelector(dir, "*.png")
	require.NoError(t, err)
	dz, _, _ := newTestDropzone(t, testConfig(), WithSelector(s))

	result, err := dz.TriggerSelection(context.Background())
	require.NoError(t, err)
	assert.Len(t, result.Accepted, 2)
	assert.Equal(t, 2, dz.Len())
}
