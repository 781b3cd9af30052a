package scene

import (
	"github.com/Carmen-Shannon/oxy-gl/engine/game_object"
	"github.com/Carmen-Shannon/oxy-gl/engine/light"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/shader"
)

// SceneBuilderOption is a functional option for configuring a Scene.
// Use the With* functions to create options.
type SceneBuilderOption func(s *scene)

// WithActive sets whether the scene is active for rendering.
//
// Parameters:
//   - active: whether the scene is active
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithActive(active bool) SceneBuilderOption {
	return func(s *scene) {
		s.active = active
	}
}

// WithObjects adds initial objects drawn with sh.
// Objects without IDs will be assigned new IDs.
//
// Parameters:
//   - sh: the shader the objects are drawn with
//   - objects: the objects to add
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithObjects(sh shader.Shader, objects ...game_object.GameObject) SceneBuilderOption {
	return func(s *scene) {
		for _, obj := range objects {
			s.add(obj, sh)
		}
	}
}

// WithLights adds initial lights.
//
// Parameters:
//   - lights: the lights to add
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithLights(lights ...light.Light) SceneBuilderOption {
	return func(s *scene) {
		s.lights = append(s.lights, lights...)
	}
}

// WithFrustumCulling toggles skipping objects outside the camera frustum. Enabled by default.
//
// Parameters:
//   - enabled: whether Draw culls against the camera frustum
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithFrustumCulling(enabled bool) SceneBuilderOption {
	return func(s *scene) {
		s.frustumCulling = enabled
	}
}

// WithLightLimits sets the light array sizes of the scene's shaders. Use it when the shaders are built
// with MAX_POINT_LIGHTS or MAX_SPOT_LIGHTS defines other than the defaults.
//
// Parameters:
//   - maxPoint: the shaders' MAX_POINT_LIGHTS
//   - maxSpot: the shaders' MAX_SPOT_LIGHTS
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithLightLimits(maxPoint, maxSpot int32) SceneBuilderOption {
	return func(s *scene) {
		s.maxPointLights = maxPoint
		s.maxSpotLights = maxSpot
	}
}
