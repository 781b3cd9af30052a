package texture

import "github.com/Carmen-Shannon/oxy-gl/engine/renderer/backend"

type Texture2DBuilderOption func(*texture2D)

// WithWrap sets the wrap mode for both texture axes.
//
// Parameters:
//   - wrap: the wrap mode
//
// Returns:
//   - Texture2DBuilderOption: a function that sets the wrap mode
func WithWrap(wrap backend.TextureWrap) Texture2DBuilderOption {
	return func(t *texture2D) {
		t.wrap = wrap
	}
}

// WithFilter sets the minification and magnification filters.
//
// Parameters:
//   - minFilter: the minification filter
//   - magFilter: the magnification filter
//
// Returns:
//   - Texture2DBuilderOption: a function that sets the filters
func WithFilter(minFilter, magFilter backend.TextureFilter) Texture2DBuilderOption {
	return func(t *texture2D) {
		t.minFilter = minFilter
		t.magFilter = magFilter
	}
}

// WithMipmaps toggles mip chain generation. Without mipmaps, mipmapped minification filters fall back to
// their base filter.
//
// Parameters:
//   - enabled: true to generate mipmaps
//
// Returns:
//   - Texture2DBuilderOption: a function that sets mipmap generation
func WithMipmaps(enabled bool) Texture2DBuilderOption {
	return func(t *texture2D) {
		t.mipmaps = enabled
	}
}
