package shader

import (
	"errors"
	"fmt"

	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/backend"
)

// ErrorKind classifies the step at which building a shader program failed.
type ErrorKind int

const (
	// ErrorKindRead means a source file could not be read.
	ErrorKindRead ErrorKind = iota

	// ErrorKindPreprocess means an #include could not be resolved.
	ErrorKindPreprocess

	// ErrorKindCompile means a stage failed to compile.
	ErrorKindCompile

	// ErrorKindLink means the program failed to link.
	ErrorKindLink
)

// Sentinels matched by errors.Is against an *Error of the corresponding kind.
var (
	ErrReadSource = errors.New("shader source read failed")
	ErrPreprocess = errors.New("shader pre-processing failed")
	ErrCompile    = errors.New("shader compilation failed")
	ErrLink       = errors.New("shader program link failed")
)

func (k ErrorKind) sentinel() error {
	switch k {
	case ErrorKindRead:
		return ErrReadSource
	case ErrorKindPreprocess:
		return ErrPreprocess
	case ErrorKindCompile:
		return ErrCompile
	case ErrorKindLink:
		return ErrLink
	}
	return nil
}

func (k ErrorKind) String() string {
	switch k {
	case ErrorKindRead:
		return "read"
	case ErrorKindPreprocess:
		return "preprocess"
	case ErrorKindCompile:
		return "compile"
	case ErrorKindLink:
		return "link"
	}
	return "unknown"
}

// Error describes a failed shader build. Log carries the driver info log for compile and link failures.
type Error struct {
	// Kind is the failed step.
	Kind ErrorKind

	// Shader is the shader's name.
	Shader string

	// Stage is the failing stage for read, preprocess and compile errors.
	Stage backend.ShaderStage

	// Path is the offending file, empty for source-built shaders and link errors.
	Path string

	// Log is the driver info log.
	Log string

	// Err is the underlying error, if any.
	Err error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("shader %q: %s", e.Shader, e.Kind.sentinel())
	if e.Kind != ErrorKindLink {
		msg += fmt.Sprintf(" (%s stage)", e.Stage)
	}
	if e.Path != "" {
		msg += " in " + e.Path
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	if e.Log != "" {
		msg += "\n" + e.Log
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is the sentinel for e's kind.
func (e *Error) Is(target error) bool {
	return target != nil && target == e.Kind.sentinel()
}
