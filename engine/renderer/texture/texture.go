package texture

import (
	"errors"
	"fmt"

	"github.com/Carmen-Shannon/oxy-gl/common"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/backend"
)

// ErrInvalidData is returned by NewTexture2D when the staging data does not hold width*height RGBA pixels.
var ErrInvalidData = errors.New("invalid texture staging data")

type texture2D struct {
	backend backend.Backend
	handle  backend.Handle
	width   uint32
	height  uint32
	path    string

	wrap      backend.TextureWrap
	minFilter backend.TextureFilter
	magFilter backend.TextureFilter
	mipmaps   bool
}

// Texture2D is an RGBA texture uploaded to the GPU.
type Texture2D interface {
	// Bind activates texture unit slot and binds the texture to it.
	//
	// Parameters:
	//   - slot: the texture unit, matched by a sampler uniform set to the same value
	Bind(slot uint32)

	// Handle returns the backend texture handle, 0 after Destroy.
	Handle() backend.Handle

	// Size returns the texture dimensions in pixels.
	Size() (width, height uint32)

	// Path returns the source file, empty for generated textures.
	Path() string

	// Destroy deletes the texture.
	Destroy()
}

var _ Texture2D = &texture2D{}

// NewTexture2D uploads staging data as a 2D texture. By default the texture repeats, filters linearly and
// has a mip chain.
//
// Parameters:
//   - b: the backend to create the texture on
//   - data: decoded RGBA pixels, from LoadImage or common.Checkerboard
//   - options: functional options such as WithWrap
//
// Returns:
//   - Texture2D: the uploaded texture
//   - error: ErrInvalidData if the pixel buffer does not match the dimensions
func NewTexture2D(b backend.Backend, data common.TextureStagingData, options ...Texture2DBuilderOption) (Texture2D, error) {
	if !data.Valid() {
		return nil, fmt.Errorf("%w: %dx%d with %d bytes", ErrInvalidData, data.Width, data.Height, len(data.Pixels))
	}

	t := &texture2D{
		backend:   b,
		width:     data.Width,
		height:    data.Height,
		path:      data.Path,
		wrap:      backend.TextureWrapRepeat,
		minFilter: backend.TextureFilterLinearMipmapLinear,
		magFilter: backend.TextureFilterLinear,
		mipmaps:   true,
	}
	for _, opt := range options {
		opt(t)
	}
	if !t.mipmaps {
		switch t.minFilter {
		case backend.TextureFilterLinearMipmapLinear:
			t.minFilter = backend.TextureFilterLinear
		case backend.TextureFilterNearestMipmapNearest:
			t.minFilter = backend.TextureFilterNearest
		}
	}

	t.handle = b.CreateTexture()
	b.BindTexture(0, t.handle)
	b.TexParameters(t.wrap, t.minFilter, t.magFilter)
	b.TexImage2D(int32(t.width), int32(t.height), backend.PixelFormatRGBA, data.Pixels)
	if t.mipmaps {
		b.GenerateMipmap()
	}
	return t, nil
}

func (t *texture2D) Bind(slot uint32) {
	t.backend.BindTexture(slot, t.handle)
}

func (t *texture2D) Handle() backend.Handle {
	return t.handle
}

func (t *texture2D) Size() (uint32, uint32) {
	return t.width, t.height
}

func (t *texture2D) Path() string {
	return t.path
}

func (t *texture2D) Destroy() {
	if t.handle == 0 {
		return
	}
	t.backend.DeleteTexture(t.handle)
	t.handle = 0
}
