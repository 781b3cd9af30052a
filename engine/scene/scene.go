package scene

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/Carmen-Shannon/oxy-gl/common"
	"github.com/Carmen-Shannon/oxy-gl/engine/camera"
	"github.com/Carmen-Shannon/oxy-gl/engine/game_object"
	"github.com/Carmen-Shannon/oxy-gl/engine/light"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/shader"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// MaterialUniform is the uniform struct name materials are uploaded to.
const MaterialUniform = "material"

// entry pairs a GameObject with the shader it is drawn with.
type entry struct {
	obj    game_object.GameObject
	shader shader.Shader
}

type scene struct {
	mu *sync.Mutex

	name     string
	active   bool
	camera   camera.Camera
	renderer renderer.Renderer

	registry map[uint64]entry
	nextID   uint64
	lights   []light.Light

	frustumCulling bool
	culled         int

	maxPointLights int32
	maxSpotLights  int32
}

// Scene is a set of GameObjects, each drawn with its own shader, plus the lights shared by every lit
// shader. Draw is called between Renderer.BeginScene and Renderer.EndScene.
// Thread-safe for concurrent access.
type Scene interface {
	// Name returns the scene's identifier.
	Name() string

	// SetName sets the scene's identifier.
	SetName(name string)

	// Active returns whether this scene is currently active for rendering.
	Active() bool

	// SetActive sets whether this scene is active for rendering.
	SetActive(active bool)

	// Camera returns the scene's camera.
	Camera() camera.Camera

	// SetCamera replaces the scene's camera.
	//
	// Parameters:
	//   - cam: the new camera
	SetCamera(cam camera.Camera)

	// Renderer returns the scene's renderer.
	Renderer() renderer.Renderer

	// Count returns the number of GameObjects in the scene.
	//
	// Returns:
	//   - int: count of registered GameObjects
	Count() int

	// Add registers a GameObject drawn with s. Objects without an ID are assigned one.
	// The object's Model is uploaded lazily on the first Draw.
	//
	// Parameters:
	//   - obj: the object to add
	//   - s: the shader used to draw it
	//
	// Returns:
	//   - uint64: the object's ID
	Add(obj game_object.GameObject, s shader.Shader) uint64

	// Get returns the object with the given ID, or nil.
	//
	// Parameters:
	//   - id: the object ID
	//
	// Returns:
	//   - game_object.GameObject: the object or nil
	Get(id uint64) game_object.GameObject

	// Remove unregisters the object with the given ID. GPU resources of its Model are kept because
	// other objects may share it.
	//
	// Parameters:
	//   - id: the object ID
	Remove(id uint64)

	// Objects returns the registered objects ordered by ID.
	Objects() []game_object.GameObject

	// AddLight adds a light uploaded to every shader before drawing.
	//
	// Parameters:
	//   - l: the light to add
	AddLight(l light.Light)

	// RemoveLight removes a previously added light.
	//
	// Parameters:
	//   - l: the light to remove
	RemoveLight(l light.Light)

	// Lights returns a copy of the scene's lights.
	Lights() []light.Light

	// Update advances every enabled object by deltaTime.
	//
	// Parameters:
	//   - deltaTime: the frame time in seconds
	Update(deltaTime float32)

	// Draw submits every enabled object with a Model to the renderer, grouped by shader. Lights are
	// uploaded once per shader and materials once per object. Inactive scenes draw nothing.
	// With frustum culling on, objects whose bounding sphere lies outside the camera frustum are
	// skipped.
	//
	// Returns:
	//   - error: the joined upload errors; objects that fail to upload are skipped
	Draw() error

	// Culled returns the number of objects skipped by frustum culling in the last Draw.
	Culled() int

	// Destroy releases the GPU resources of every registered Model.
	Destroy()
}

var _ Scene = &scene{}

// NewScene creates a new active Scene.
//
// Parameters:
//   - name: the scene's identifier
//   - cam: the camera the scene is viewed from
//   - r: the renderer objects are submitted to
//   - options: functional options to configure the scene
//
// Returns:
//   - Scene: the newly created scene
func NewScene(name string, cam camera.Camera, r renderer.Renderer, options ...SceneBuilderOption) Scene {
	s := &scene{
		mu:       &sync.Mutex{},
		name:     name,
		active:   true,
		camera:   cam,
		renderer: r,
		registry: make(map[uint64]entry),
		nextID:   1,

		frustumCulling: true,
		maxPointLights: light.MaxPointLights,
		maxSpotLights:  light.MaxSpotLights,
	}
	for _, opt := range options {
		opt(s)
	}
	return s
}

func (s *scene) Name() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.name
}

func (s *scene) SetName(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.name = name
}

func (s *scene) Active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

func (s *scene) SetActive(active bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = active
}

func (s *scene) Camera() camera.Camera {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.camera
}

func (s *scene) SetCamera(cam camera.Camera) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.camera = cam
}

func (s *scene) Renderer() renderer.Renderer {
	return s.renderer
}

func (s *scene) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.registry)
}

func (s *scene) Add(obj game_object.GameObject, sh shader.Shader) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.add(obj, sh)
}

// add registers obj. Caller must hold the mutex.
func (s *scene) add(obj game_object.GameObject, sh shader.Shader) uint64 {
	if obj.ID() == 0 {
		obj.SetID(s.nextID)
	}
	if obj.ID() >= s.nextID {
		s.nextID = obj.ID() + 1
	}
	s.registry[obj.ID()] = entry{obj: obj, shader: sh}
	return obj.ID()
}

func (s *scene) Get(id uint64) game_object.GameObject {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.registry[id].obj
}

func (s *scene) Remove(id uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.registry, id)
}

func (s *scene) Objects() []game_object.GameObject {
	entries := s.sortedEntries()
	objects := make([]game_object.GameObject, len(entries))
	for i, e := range entries {
		objects[i] = e.obj
	}
	return objects
}

func (s *scene) AddLight(l light.Light) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lights = append(s.lights, l)
}

func (s *scene) RemoveLight(l light.Light) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lights = slices.DeleteFunc(s.lights, func(existing light.Light) bool {
		return existing == l
	})
}

func (s *scene) Lights() []light.Light {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.lights)
}

func (s *scene) Update(deltaTime float32) {
	for _, e := range s.sortedEntries() {
		if e.obj.Enabled() {
			e.obj.Update(deltaTime)
		}
	}
}

func (s *scene) Draw() error {
	if !s.Active() {
		return nil
	}
	lights := s.Lights()
	b := s.renderer.Backend()

	s.mu.Lock()
	cam, culling := s.camera, s.frustumCulling
	maxPoint, maxSpot := s.maxPointLights, s.maxSpotLights
	s.mu.Unlock()
	var frustum common.Frustum
	if culling && cam != nil {
		frustum = common.ExtractFrustum(cam.ViewProjectionMatrix())
	} else {
		culling = false
	}

	var errs []error
	var bound shader.Shader
	culled := 0
	for _, e := range s.sortedByShader() {
		if !e.obj.Enabled() || e.obj.Model() == nil || e.shader == nil {
			continue
		}
		mdl := e.obj.Model()
		if culling && !inFrustum(frustum, e.obj) {
			culled++
			continue
		}
		va, err := mdl.Upload(b)
		if err != nil {
			errs = append(errs, fmt.Errorf("object %d: %w", e.obj.ID(), err))
			continue
		}

		if e.shader != bound {
			e.shader.Bind()
			if len(lights) > 0 {
				light.ApplyAllWithLimits(e.shader, lights, maxPoint, maxSpot)
			}
			bound = e.shader
		}
		if mat := mdl.Material(); mat != nil {
			mat.Apply(e.shader, MaterialUniform)
		}
		s.renderer.Submit(e.shader, va, e.obj.ModelMatrix())
	}

	s.mu.Lock()
	s.culled = culled
	s.mu.Unlock()
	return errors.Join(errs...)
}

func (s *scene) Culled() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.culled
}

// inFrustum tests the model's bounding sphere, moved to the object's position and scaled by its
// largest scale axis. Models without a radius are always drawn.
func inFrustum(f common.Frustum, obj game_object.GameObject) bool {
	radius := obj.Model().BoundingRadius()
	if radius <= 0 {
		return true
	}
	sx, sy, sz := obj.Scale()
	radius *= max(math32.Abs(sx), math32.Abs(sy), math32.Abs(sz))
	x, y, z := obj.Position()
	return f.IntersectsSphere(mgl32.Vec3{x, y, z}, radius)
}

func (s *scene) Destroy() {
	for _, e := range s.sortedEntries() {
		if m := e.obj.Model(); m != nil {
			m.Destroy()
		}
	}
}

func (s *scene) sortedEntries() []entry {
	s.mu.Lock()
	entries := make([]entry, 0, len(s.registry))
	for _, e := range s.registry {
		entries = append(entries, e)
	}
	s.mu.Unlock()
	slices.SortFunc(entries, func(a, b entry) int {
		return compareID(a.obj.ID(), b.obj.ID())
	})
	return entries
}

// sortedByShader orders entries by shader handle, then ID, so each shader is bound once per Draw.
func (s *scene) sortedByShader() []entry {
	entries := s.sortedEntries()
	slices.SortStableFunc(entries, func(a, b entry) int {
		return compareID(uint64(shaderHandle(a.shader)), uint64(shaderHandle(b.shader)))
	})
	return entries
}

func shaderHandle(sh shader.Shader) uint32 {
	if sh == nil {
		return 0
	}
	return uint32(sh.Handle())
}

func compareID(a, b uint64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
