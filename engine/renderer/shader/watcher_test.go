package shader

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/backend"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcherReloadsOnChange(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "shared.glsl", "float k = 1.0;")
	vs := writeFile(t, dir, "flat.vert", "#version 410 core\n#include \"shared.glsl\"\nvoid main() {}\n")
	fs := writeFile(t, dir, "flat.frag", fragmentSrc)
	rec := newRecorder()

	s, err := NewShader(rec, vs, fs)
	require.NoError(t, err)
	first := s.Handle()

	w, err := NewWatcher()
	require.NoError(t, err)
	defer w.Close()
	require.NoError(t, w.Add(s))
	require.NoError(t, w.Add(s))

	n, err := w.Poll()
	assert.NoError(t, err)
	assert.Zero(t, n)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "shared.glsl"), []byte("float k = 2.0;"), 0o644))

	reloaded := 0
	require.Eventually(t, func() bool {
		n, _ := w.Poll()
		reloaded += n
		return reloaded > 0
	}, 5*time.Second, 20*time.Millisecond)
	assert.NotEqual(t, first, s.Handle())
}

func TestWatcherKeepsProgramOnFailedReload(t *testing.T) {
	dir := t.TempDir()
	vs := writeFile(t, dir, "flat.vert", vertexSrc)
	fs := writeFile(t, dir, "flat.frag", fragmentSrc)
	rec := newRecorder()

	s, err := NewShader(rec, vs, fs)
	require.NoError(t, err)
	first := s.Handle()

	w, err := NewWatcher()
	require.NoError(t, err)
	defer w.Close()
	require.NoError(t, w.Add(s))

	rec.CompileErrors[backend.ShaderStageFragment] = "broken"
	w.(*watcher).markDirty(fs)

	n, err := w.Poll()
	assert.Zero(t, n)
	assert.ErrorIs(t, err, ErrCompile)
	assert.Equal(t, first, s.Handle())
}

func TestWatcherRemove(t *testing.T) {
	dir := t.TempDir()
	vs := writeFile(t, dir, "flat.vert", vertexSrc)
	fs := writeFile(t, dir, "flat.frag", fragmentSrc)
	s, err := NewShader(newRecorder(), vs, fs)
	require.NoError(t, err)

	w, err := NewWatcher()
	require.NoError(t, err)
	require.NoError(t, w.Add(s))
	w.Remove(s)

	w.(*watcher).markDirty(vs)
	n, err := w.Poll()
	assert.NoError(t, err)
	assert.Zero(t, n)

	assert.NoError(t, w.Close())
	assert.NoError(t, w.Close())
}
