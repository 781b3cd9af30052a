package renderer

import "github.com/go-gl/mathgl/mgl32"

// RendererBuilderOption is a functional option applied to a renderer during construction via NewRenderer.
type RendererBuilderOption func(*renderer)

// WithClearColor sets the initial clear color.
//
// Parameters:
//   - color: RGBA color with components in [0, 1]
//
// Returns:
//   - RendererBuilderOption: a function that applies the clear color option to a renderer
func WithClearColor(color mgl32.Vec4) RendererBuilderOption {
	return func(r *renderer) {
		r.clearColor = color
	}
}

// WithViewport sets the initial viewport size.
//
// Parameters:
//   - width: framebuffer width in pixels
//   - height: framebuffer height in pixels
//
// Returns:
//   - RendererBuilderOption: a function that applies the viewport option to a renderer
func WithViewport(width, height int) RendererBuilderOption {
	return func(r *renderer) {
		r.width = width
		r.height = height
	}
}

// WithDepthTest enables or disables depth testing from the start.
//
// Parameters:
//   - enabled: true to enable depth testing
//
// Returns:
//   - RendererBuilderOption: a function that applies the depth test option to a renderer
func WithDepthTest(enabled bool) RendererBuilderOption {
	return func(r *renderer) {
		r.depthTest = enabled
	}
}

// WithUniformNames overrides the uniform names Submit uploads to.
// An empty viewPosition disables the camera position upload.
//
// Parameters:
//   - viewProjection: name of the view-projection matrix uniform
//   - model: name of the model matrix uniform
//   - viewPosition: name of the camera position uniform
//
// Returns:
//   - RendererBuilderOption: a function that applies the uniform names to a renderer
func WithUniformNames(viewProjection, model, viewPosition string) RendererBuilderOption {
	return func(r *renderer) {
		r.viewProjectionUniform = viewProjection
		r.modelUniform = model
		r.viewPositionUniform = viewPosition
	}
}
