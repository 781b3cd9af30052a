package texture

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/Carmen-Shannon/oxy-gl/common"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/backend"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/backend/backendtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writePNG writes a 2x2 image whose top row is red and bottom row is blue.
func writePNG(t *testing.T, dir, name string) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	for x := 0; x < 2; x++ {
		img.Set(x, 0, color.RGBA{255, 0, 0, 255})
		img.Set(x, 1, color.RGBA{0, 0, 255, 255})
	}
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())
	return path
}

func TestLoadImage(t *testing.T) {
	path := writePNG(t, t.TempDir(), "quad.png")

	data, err := LoadImage(path, false)
	require.NoError(t, err)
	assert.True(t, data.Valid())
	assert.Equal(t, uint32(2), data.Width)
	assert.Equal(t, "image/png", data.MimeType)
	assert.Equal(t, path, data.Path)
	assert.Equal(t, []byte{255, 0, 0, 255}, data.Pixels[:4])
}

func TestLoadImageFlipV(t *testing.T) {
	path := writePNG(t, t.TempDir(), "quad.png")

	data, err := LoadImage(path, true)
	require.NoError(t, err)
	assert.Equal(t, []byte{0, 0, 255, 255}, data.Pixels[:4])
	assert.Equal(t, []byte{255, 0, 0, 255}, data.Pixels[8:12])
}

func TestLoadImageErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadImage(filepath.Join(dir, "missing.png"), true)
	assert.True(t, errors.Is(err, ErrLoad))

	text := filepath.Join(dir, "notes.png")
	require.NoError(t, os.WriteFile(text, []byte("definitely not an image"), 0o644))
	_, err = LoadImage(text, true)
	assert.True(t, errors.Is(err, ErrUnsupportedFormat))
}

func TestLoadImagesKeepsOrder(t *testing.T) {
	dir := t.TempDir()
	paths := []string{
		writePNG(t, dir, "a.png"),
		filepath.Join(dir, "missing.png"),
		writePNG(t, dir, "c.png"),
	}

	out, err := LoadImages(paths, false, 2)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrLoad))
	require.Len(t, out, 3)
	assert.Equal(t, paths[0], out[0].Path)
	assert.False(t, out[1].Valid())
	assert.Equal(t, paths[2], out[2].Path)
}

func TestNewTexture2D(t *testing.T) {
	rec := backendtest.NewRecorder()
	data := common.Checkerboard(8, 2, [4]byte{255, 255, 255, 255}, [4]byte{0, 0, 0, 255})

	tex, err := NewTexture2D(rec, data, WithWrap(backend.TextureWrapClampToEdge))
	require.NoError(t, err)
	w, h := tex.Size()
	assert.Equal(t, uint32(8), w)
	assert.Equal(t, uint32(8), h)
	assert.Equal(t, 1, rec.Count("GenerateMipmap"))

	calls := rec.Calls()
	for _, c := range calls {
		if c.Name == "TexParameters" {
			assert.Equal(t, backend.TextureWrapClampToEdge, c.Args[0])
		}
	}

	tex.Bind(3)
	assert.Equal(t, tex.Handle(), rec.BoundTextures[3])

	h0 := tex.Handle()
	tex.Destroy()
	assert.False(t, rec.IsLive(h0))
}

func TestNewTexture2DWithoutMipmaps(t *testing.T) {
	rec := backendtest.NewRecorder()
	data := common.Checkerboard(4, 1, [4]byte{}, [4]byte{255, 255, 255, 255})

	_, err := NewTexture2D(rec, data, WithMipmaps(false))
	require.NoError(t, err)
	assert.Equal(t, 0, rec.Count("GenerateMipmap"))
	for _, c := range rec.Calls() {
		if c.Name == "TexParameters" {
			assert.Equal(t, backend.TextureFilterLinear, c.Args[1])
		}
	}
}

func TestNewTexture2DInvalid(t *testing.T) {
	rec := backendtest.NewRecorder()
	_, err := NewTexture2D(rec, common.TextureStagingData{Width: 2, Height: 2, Pixels: []byte{1}})
	assert.True(t, errors.Is(err, ErrInvalidData))
	assert.Empty(t, rec.Calls())
}
