package shader

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/backend"
	"github.com/go-gl/mathgl/mgl32"
)

// shader is the implementation of the Shader interface.
type shader struct {
	mu *sync.Mutex

	name         string
	backend      backend.Backend
	program      backend.Handle
	vertexPath   string
	fragmentPath string
	vertexSrc    string
	fragmentSrc  string
	dependencies []string

	locations map[string]int32
	missing   map[string]struct{}

	pp PreProcessor
}

// Shader is a linked GPU program built from a vertex and a fragment stage.
//
// The Set* methods upload to the currently bound program, so Bind the shader first. Uniform locations
// are resolved once when the program links; setting a name the program does not use is a no-op.
type Shader interface {
	// Name returns the shader's name, used in logs and errors.
	Name() string

	// Handle returns the backend program handle, 0 after Destroy.
	Handle() backend.Handle

	// Bind makes this the current program.
	Bind()

	// Unbind clears the current program.
	Unbind()

	SetFloat(name string, v float32)
	SetVec2(name string, v mgl32.Vec2)
	SetVec3(name string, v mgl32.Vec3)
	SetVec4(name string, v mgl32.Vec4)
	SetInt(name string, v int32)
	SetBool(name string, v bool)
	SetMat3(name string, m mgl32.Mat3)
	SetMat4(name string, m mgl32.Mat4)

	// HasUniform reports whether name resolves to an active uniform.
	HasUniform(name string) bool

	// Uniforms returns the names in the uniform location cache.
	Uniforms() []string

	// Paths returns the vertex and fragment source paths, empty for source-built shaders.
	Paths() (vertex, fragment string)

	// Dependencies returns every file the current program was built from: both stage files and their
	// includes.
	Dependencies() []string

	// Reload rebuilds the program from its source files. On failure the previous program stays in use
	// and the error is returned.
	//
	// Returns:
	//   - error: a *Error if the rebuild failed
	Reload() error

	// Destroy deletes the program.
	Destroy()
}

var _ Shader = &shader{}

// NewShader reads, pre-processes, compiles and links a program from a vertex and a fragment source file.
//
// Parameters:
//   - b: the backend to build the program on
//   - vertexPath: path to the vertex stage source
//   - fragmentPath: path to the fragment stage source
//   - options: functional options such as WithName
//
// Returns:
//   - Shader: the linked shader
//   - error: a *Error describing the failed step; no GPU objects are left behind
func NewShader(b backend.Backend, vertexPath, fragmentPath string, options ...ShaderBuilderOption) (Shader, error) {
	s := newShader(b, options...)
	s.vertexPath = vertexPath
	s.fragmentPath = fragmentPath
	if s.name == "" {
		s.name = strings.TrimSuffix(filepath.Base(vertexPath), filepath.Ext(vertexPath))
	}

	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// NewShaderFromSource compiles and links a program from in-memory sources. Quoted includes resolve
// against the working directory.
//
// Parameters:
//   - b: the backend to build the program on
//   - name: the shader name
//   - vertexSrc: vertex stage source
//   - fragmentSrc: fragment stage source
//   - options: functional options
//
// Returns:
//   - Shader: the linked shader
//   - error: a *Error describing the failed step
func NewShaderFromSource(b backend.Backend, name, vertexSrc, fragmentSrc string, options ...ShaderBuilderOption) (Shader, error) {
	s := newShader(b, options...)
	if s.name == "" {
		s.name = name
	}
	s.vertexSrc = vertexSrc
	s.fragmentSrc = fragmentSrc

	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

func newShader(b backend.Backend, options ...ShaderBuilderOption) *shader {
	s := &shader{
		mu:        &sync.Mutex{},
		backend:   b,
		locations: make(map[string]int32),
		missing:   make(map[string]struct{}),
	}
	for _, opt := range options {
		opt(s)
	}
	if s.pp == nil {
		s.pp = NewPreProcessor()
	}
	return s
}

func (s *shader) Name() string {
	return s.name
}

func (s *shader) Handle() backend.Handle {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.program
}

func (s *shader) Bind() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.backend.UseProgram(s.program)
}

func (s *shader) Unbind() {
	s.backend.UseProgram(0)
}

func (s *shader) SetFloat(name string, v float32) {
	if loc, ok := s.location(name); ok {
		s.backend.Uniform1f(loc, v)
	}
}

func (s *shader) SetVec2(name string, v mgl32.Vec2) {
	if loc, ok := s.location(name); ok {
		s.backend.Uniform2f(loc, v[0], v[1])
	}
}

func (s *shader) SetVec3(name string, v mgl32.Vec3) {
	if loc, ok := s.location(name); ok {
		s.backend.Uniform3f(loc, v[0], v[1], v[2])
	}
}

func (s *shader) SetVec4(name string, v mgl32.Vec4) {
	if loc, ok := s.location(name); ok {
		s.backend.Uniform4f(loc, v[0], v[1], v[2], v[3])
	}
}

func (s *shader) SetInt(name string, v int32) {
	if loc, ok := s.location(name); ok {
		s.backend.Uniform1i(loc, v)
	}
}

func (s *shader) SetBool(name string, v bool) {
	var i int32
	if v {
		i = 1
	}
	s.SetInt(name, i)
}

func (s *shader) SetMat3(name string, m mgl32.Mat3) {
	if loc, ok := s.location(name); ok {
		s.backend.UniformMatrix3fv(loc, m)
	}
}

func (s *shader) SetMat4(name string, m mgl32.Mat4) {
	if loc, ok := s.location(name); ok {
		s.backend.UniformMatrix4fv(loc, m)
	}
}

func (s *shader) HasUniform(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.locations[name]
	return ok
}

func (s *shader) Uniforms() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.locations))
	for name := range s.locations {
		out = append(out, name)
	}
	return out
}

func (s *shader) Paths() (string, string) {
	return s.vertexPath, s.fragmentPath
}

func (s *shader) Dependencies() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.dependencies))
	copy(out, s.dependencies)
	return out
}

func (s *shader) Reload() error {
	vertexSrc, vertexDeps, err := s.loadStage(backend.ShaderStageVertex, s.vertexPath, s.vertexSrc)
	if err != nil {
		return err
	}
	fragmentSrc, fragmentDeps, err := s.loadStage(backend.ShaderStageFragment, s.fragmentPath, s.fragmentSrc)
	if err != nil {
		return err
	}

	program, err := s.link(vertexSrc, fragmentSrc)
	if err != nil {
		return err
	}
	locations := s.cacheUniforms(program)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.program != 0 {
		s.backend.DeleteProgram(s.program)
		slog.Info("shader reloaded", "shader", s.name)
	}
	s.program = program
	s.locations = locations
	s.missing = make(map[string]struct{})
	s.dependencies = mergeDependencies(vertexDeps, fragmentDeps)
	return nil
}

func (s *shader) Destroy() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.program != 0 {
		s.backend.DeleteProgram(s.program)
		s.program = 0
	}
	s.locations = make(map[string]int32)
}

// loadStage reads a stage from path (when set) or uses src, then runs the pre-processor.
//
// Returns:
//   - string: the expanded source
//   - []string: the stage file followed by its includes
//   - error: a *Error of kind read or preprocess
func (s *shader) loadStage(stage backend.ShaderStage, path, src string) (string, []string, error) {
	dir := "."
	var deps []string
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return "", nil, &Error{Kind: ErrorKindRead, Shader: s.name, Stage: stage, Path: path, Err: err}
		}
		src = string(data)
		abs, err := filepath.Abs(path)
		if err != nil {
			abs = path
		}
		deps = append(deps, abs)
		dir = filepath.Dir(abs)
	}

	out, err := s.pp.Process(src, dir)
	if err != nil {
		return "", nil, &Error{Kind: ErrorKindPreprocess, Shader: s.name, Stage: stage, Path: path, Err: err}
	}
	return out, append(deps, s.pp.Dependencies()...), nil
}

// link compiles both stages and links them. Stage objects are detached and deleted once the program is
// linked, and everything created is deleted on failure.
func (s *shader) link(vertexSrc, fragmentSrc string) (backend.Handle, error) {
	vs, err := s.compile(backend.ShaderStageVertex, vertexSrc)
	if err != nil {
		return 0, err
	}
	fs, err := s.compile(backend.ShaderStageFragment, fragmentSrc)
	if err != nil {
		s.backend.DeleteShader(vs)
		return 0, err
	}

	program := s.backend.CreateProgram()
	s.backend.AttachShader(program, vs)
	s.backend.AttachShader(program, fs)
	ok, log := s.backend.LinkProgram(program)
	if !ok {
		s.backend.DeleteProgram(program)
		s.backend.DeleteShader(vs)
		s.backend.DeleteShader(fs)
		return 0, &Error{Kind: ErrorKindLink, Shader: s.name, Log: log}
	}
	if log != "" {
		slog.Warn("shader link log", "shader", s.name, "log", log)
	}

	s.backend.DetachShader(program, vs)
	s.backend.DetachShader(program, fs)
	s.backend.DeleteShader(vs)
	s.backend.DeleteShader(fs)
	return program, nil
}

func (s *shader) compile(stage backend.ShaderStage, source string) (backend.Handle, error) {
	h := s.backend.CreateShader(stage)
	ok, log := s.backend.CompileShader(h, source)
	if !ok {
		s.backend.DeleteShader(h)
		path := s.vertexPath
		if stage == backend.ShaderStageFragment {
			path = s.fragmentPath
		}
		return 0, &Error{Kind: ErrorKindCompile, Shader: s.name, Stage: stage, Path: path, Log: log}
	}
	if log != "" {
		slog.Warn("shader compile log", "shader", s.name, "stage", stage.String(), "log", log)
	}
	return h, nil
}

// cacheUniforms builds the name to location map of a linked program. Arrays are reported as "name[0]";
// they are also reachable as "name" and as "name[i]" for every element.
func (s *shader) cacheUniforms(program backend.Handle) map[string]int32 {
	locations := make(map[string]int32)
	for _, u := range s.backend.ActiveUniforms(program) {
		loc := s.backend.UniformLocation(program, u.Name)
		if loc < 0 {
			continue
		}
		locations[u.Name] = loc

		base, ok := strings.CutSuffix(u.Name, "[0]")
		if !ok {
			continue
		}
		locations[base] = loc
		for i := int32(1); i < u.Size; i++ {
			element := fmt.Sprintf("%s[%d]", base, i)
			if l := s.backend.UniformLocation(program, element); l >= 0 {
				locations[element] = l
			}
		}
	}
	return locations
}

func (s *shader) location(name string) (int32, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	loc, ok := s.locations[name]
	if ok {
		return loc, true
	}
	if _, logged := s.missing[name]; !logged {
		s.missing[name] = struct{}{}
		slog.Debug("uniform not active in program", "shader", s.name, "uniform", name)
	}
	return -1, false
}

func mergeDependencies(lists ...[]string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, list := range lists {
		for _, p := range list {
			if !seen[p] {
				seen[p] = true
				out = append(out, p)
			}
		}
	}
	return out
}
