package shader

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/backend"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/backend/backendtest"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const vertexSrc = `#version 410 core
layout (location = 0) in vec3 a_Position;
uniform mat4 u_ViewProjection;
uniform mat4 u_Model;
void main() { gl_Position = u_ViewProjection * u_Model * vec4(a_Position, 1.0); }
`

const fragmentSrc = `#version 410 core
out vec4 FragColor;
uniform vec4 u_Color;
void main() { FragColor = u_Color; }
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func newRecorder() *backendtest.Recorder {
	rec := backendtest.NewRecorder()
	rec.Uniforms = []backend.UniformInfo{
		{Name: "u_ViewProjection", Size: 1},
		{Name: "u_Model", Size: 1},
		{Name: "u_Color", Size: 1},
		{Name: "u_Offsets[0]", Size: 3},
	}
	return rec
}

func TestNewShaderFromFiles(t *testing.T) {
	dir := t.TempDir()
	vs := writeFile(t, dir, "flat.vert", vertexSrc)
	fs := writeFile(t, dir, "flat.frag", fragmentSrc)
	rec := newRecorder()

	s, err := NewShader(rec, vs, fs)
	require.NoError(t, err)
	assert.Equal(t, "flat", s.Name())
	assert.True(t, rec.IsLive(s.Handle()))

	// Both stages are detached and deleted after linking.
	assert.Equal(t, 2, rec.Count("DetachShader"))
	assert.Equal(t, 2, rec.Count("DeleteShader"))
	for h, kind := range rec.Live {
		assert.NotEqual(t, "shader", kind, "stage %d left alive", h)
	}

	deps := s.Dependencies()
	require.Len(t, deps, 2)
	assert.Equal(t, "flat.vert", filepath.Base(deps[0]))
}

func TestUniformCache(t *testing.T) {
	rec := newRecorder()
	s, err := NewShaderFromSource(rec, "flat", vertexSrc, fragmentSrc)
	require.NoError(t, err)

	for _, name := range []string{"u_Model", "u_Color", "u_Offsets[0]", "u_Offsets", "u_Offsets[1]", "u_Offsets[2]"} {
		assert.True(t, s.HasUniform(name), name)
	}
	assert.False(t, s.HasUniform("u_Offsets[3]"))

	s.Bind()
	assert.Equal(t, s.Handle(), rec.BoundProgram)

	lookups := rec.Count("UniformLocation")
	s.SetVec4("u_Color", mgl32.Vec4{1, 0, 0, 1})
	s.SetMat4("u_Model", mgl32.Ident4())
	s.SetFloat("u_Offsets[2]", 0.5)
	assert.Equal(t, lookups, rec.Count("UniformLocation"), "setters must not query locations")

	assert.Equal(t, [4]float32{1, 0, 0, 1}, rec.UniformValues[rec.Location("u_Color")])
	assert.Equal(t, [16]float32(mgl32.Ident4()), rec.UniformValues[rec.Location("u_Model")])
	assert.Equal(t, float32(0.5), rec.UniformValues[rec.Location("u_Offsets[2]")])
}

func TestSetUnknownUniformIsNoop(t *testing.T) {
	rec := newRecorder()
	s, err := NewShaderFromSource(rec, "flat", vertexSrc, fragmentSrc)
	require.NoError(t, err)

	rec.Reset()
	s.SetFloat("u_Missing", 1)
	s.SetFloat("u_Missing", 2)
	s.SetBool("u_AlsoMissing", true)
	assert.Empty(t, rec.Calls())
}

func TestSetBoolAndInt(t *testing.T) {
	rec := newRecorder()
	rec.Uniforms = append(rec.Uniforms, backend.UniformInfo{Name: "u_Enabled", Size: 1})
	s, err := NewShaderFromSource(rec, "flat", vertexSrc, fragmentSrc)
	require.NoError(t, err)

	s.SetBool("u_Enabled", true)
	assert.Equal(t, int32(1), rec.UniformValues[rec.Location("u_Enabled")])
	s.SetBool("u_Enabled", false)
	assert.Equal(t, int32(0), rec.UniformValues[rec.Location("u_Enabled")])
}

func TestReadError(t *testing.T) {
	rec := newRecorder()
	_, err := NewShader(rec, filepath.Join(t.TempDir(), "missing.vert"), "missing.frag")

	var serr *Error
	require.True(t, errors.As(err, &serr))
	assert.Equal(t, ErrorKindRead, serr.Kind)
	assert.True(t, errors.Is(err, ErrReadSource))
	assert.True(t, errors.Is(err, os.ErrNotExist))
	assert.Empty(t, rec.Calls())
}

func TestCompileErrorCleansUp(t *testing.T) {
	rec := newRecorder()
	rec.CompileErrors[backend.ShaderStageFragment] = "0:3(1): error: syntax error"

	_, err := NewShaderFromSource(rec, "broken", vertexSrc, fragmentSrc)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrCompile))
	assert.False(t, errors.Is(err, ErrLink))

	var serr *Error
	require.True(t, errors.As(err, &serr))
	assert.Equal(t, backend.ShaderStageFragment, serr.Stage)
	assert.Contains(t, serr.Log, "syntax error")
	assert.Contains(t, err.Error(), "fragment")
	assert.Empty(t, rec.Live)
}

func TestLinkErrorCleansUp(t *testing.T) {
	rec := newRecorder()
	rec.LinkError = "error: u_Color type mismatch"

	_, err := NewShaderFromSource(rec, "broken", vertexSrc, fragmentSrc)
	assert.True(t, errors.Is(err, ErrLink))
	assert.Empty(t, rec.Live)
}

func TestReloadKeepsPreviousProgramOnFailure(t *testing.T) {
	dir := t.TempDir()
	vs := writeFile(t, dir, "flat.vert", vertexSrc)
	fs := writeFile(t, dir, "flat.frag", fragmentSrc)
	rec := newRecorder()

	s, err := NewShader(rec, vs, fs)
	require.NoError(t, err)
	first := s.Handle()

	rec.CompileErrors[backend.ShaderStageVertex] = "broken"
	require.Error(t, s.Reload())
	assert.Equal(t, first, s.Handle())
	assert.True(t, rec.IsLive(first))

	delete(rec.CompileErrors, backend.ShaderStageVertex)
	require.NoError(t, s.Reload())
	assert.NotEqual(t, first, s.Handle())
	assert.False(t, rec.IsLive(first))
	assert.True(t, s.HasUniform("u_Color"))
}

func TestIncludesAndDefines(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "common"), 0o755))
	writeFile(t, dir, "common/math.glsl", "float square(float x) { return x * x; }")
	vs := writeFile(t, dir, "lit.vert", "#version 410 core\n#include \"common/math.glsl\"\nvoid main() {}\n")
	fs := writeFile(t, dir, "lit.frag", "#version 410 core\n#include <light>\n#include <material>\nvoid main() {}\n")
	rec := newRecorder()

	s, err := NewShader(rec, vs, fs, WithName("lit"), WithDefine("MAX_POINT_LIGHTS", "8"))
	require.NoError(t, err)

	var sources []string
	for _, src := range rec.Sources {
		sources = append(sources, src)
	}
	joined := strings.Join(sources, "\n")
	assert.Contains(t, joined, "float square")
	assert.Contains(t, joined, "struct PointLight")
	assert.Contains(t, joined, "uniform Material material;")
	assert.Contains(t, joined, "#version 410 core\n#define MAX_POINT_LIGHTS 8\n")
	assert.NotContains(t, joined, "#include")

	deps := s.Dependencies()
	require.Len(t, deps, 3)
	assert.Equal(t, "math.glsl", filepath.Base(deps[1]))
}

func TestPreprocessErrors(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.glsl", "#include \"b.glsl\"")
	writeFile(t, dir, "b.glsl", "#include \"a.glsl\"")

	pp := NewPreProcessor()
	_, err := pp.Process("#include \"a.glsl\"", dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cycle")

	_, err = pp.Process("#include <nope>", dir)
	assert.Contains(t, err.Error(), "unknown include")

	_, err = pp.Process("#include nope", dir)
	assert.Contains(t, err.Error(), "malformed")

	rec := newRecorder()
	_, err = NewShaderFromSource(rec, "bad", "#include <nope>", fragmentSrc)
	assert.True(t, errors.Is(err, ErrPreprocess))
	assert.Empty(t, rec.Calls())
}

func TestDestroy(t *testing.T) {
	rec := newRecorder()
	s, err := NewShaderFromSource(rec, "flat", vertexSrc, fragmentSrc)
	require.NoError(t, err)
	h := s.Handle()

	s.Destroy()
	assert.False(t, rec.IsLive(h))
	assert.Zero(t, s.Handle())
	assert.False(t, s.HasUniform("u_Color"))
}
