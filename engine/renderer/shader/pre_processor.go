// pre_processor.go implements the GLSL pre-processor. It expands #include directives before a stage
// is handed to the driver and records every file it read so the hot-reload watcher knows which files a
// shader depends on.
//
// Two include forms are supported:
//   - #include "path.glsl" splices a file, resolved relative to the including file's directory.
//   - #include <name> splices a snippet from the registry (light, material by default).
//
// Defines registered on the pre-processor are inserted right after the #version line.
package shader

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Carmen-Shannon/oxy-gl/engine/light"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/material"
)

const includeDirective = "#include"

// preProcessor is the implementation of the PreProcessor interface.
type preProcessor struct {
	// registry maps <name> includes to embedded GLSL snippets.
	registry map[string]string

	// defines are emitted as #define lines after #version, in key order.
	defines map[string]string

	// dependencies accumulates every file read during the most recent Process call.
	dependencies []string
}

// PreProcessor expands #include directives in GLSL source.
type PreProcessor interface {
	// Process expands includes in source. Relative file includes are resolved against dir.
	// The dependency list is reset at the start of each call.
	//
	// Parameters:
	//   - source: the GLSL source
	//   - dir: directory used to resolve "quoted" includes, usually the directory of the source file
	//
	// Returns:
	//   - string: the expanded source
	//   - error: if an include is malformed, unknown, unreadable or cyclic
	Process(source, dir string) (string, error)

	// Dependencies returns the absolute paths of files included during the most recent Process call,
	// in first-seen order.
	//
	// Returns:
	//   - []string: the included files
	Dependencies() []string

	// Register adds or replaces a <name> include snippet.
	//
	// Parameters:
	//   - name: the name used inside the angle brackets
	//   - source: the GLSL snippet
	Register(name, source string)

	// Define adds a #define emitted after the #version line of every processed source.
	//
	// Parameters:
	//   - name: the macro name
	//   - value: the macro value, may be empty
	Define(name, value string)
}

var _ PreProcessor = &preProcessor{}

// NewPreProcessor creates a PreProcessor with the built-in snippets registered.
//
// Returns:
//   - PreProcessor: a ready-to-use pre-processor
func NewPreProcessor() PreProcessor {
	return &preProcessor{
		registry: map[string]string{
			"light":    light.GLSLSource,
			"material": material.GLSLSource,
		},
		defines: make(map[string]string),
	}
}

func (p *preProcessor) Register(name, source string) {
	p.registry[name] = source
}

func (p *preProcessor) Define(name, value string) {
	p.defines[name] = value
}

func (p *preProcessor) Dependencies() []string {
	out := make([]string, len(p.dependencies))
	copy(out, p.dependencies)
	return out
}

func (p *preProcessor) Process(source, dir string) (string, error) {
	p.dependencies = p.dependencies[:0]
	seen := make(map[string]bool)

	out, err := p.expand(source, dir, "", nil, seen)
	if err != nil {
		return "", err
	}
	return p.insertDefines(out), nil
}

// expand recursively splices includes. stack holds the files currently being expanded for cycle detection.
func (p *preProcessor) expand(source, dir, file string, stack []string, seen map[string]bool) (string, error) {
	lines := strings.Split(source, "\n")
	out := make([]string, 0, len(lines))

	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if !strings.HasPrefix(trimmed, includeDirective) {
			out = append(out, line)
			continue
		}

		arg := strings.TrimSpace(strings.TrimPrefix(trimmed, includeDirective))
		switch {
		case len(arg) >= 2 && arg[0] == '<' && arg[len(arg)-1] == '>':
			name := arg[1 : len(arg)-1]
			snippet, ok := p.registry[name]
			if !ok {
				return "", fmt.Errorf("%sline %d: unknown include <%s>", location(file), i+1, name)
			}
			out = append(out, snippet)

		case len(arg) >= 2 && arg[0] == '"' && arg[len(arg)-1] == '"':
			path := arg[1 : len(arg)-1]
			if !filepath.IsAbs(path) {
				path = filepath.Join(dir, path)
			}
			abs, err := filepath.Abs(path)
			if err != nil {
				return "", fmt.Errorf("%sline %d: resolve %q: %w", location(file), i+1, path, err)
			}
			for _, s := range stack {
				if s == abs {
					return "", fmt.Errorf("%sline %d: include cycle through %s", location(file), i+1, abs)
				}
			}

			data, err := os.ReadFile(abs)
			if err != nil {
				return "", fmt.Errorf("%sline %d: %w", location(file), i+1, err)
			}
			if !seen[abs] {
				seen[abs] = true
				p.dependencies = append(p.dependencies, abs)
			}

			expanded, err := p.expand(string(data), filepath.Dir(abs), abs, append(stack, abs), seen)
			if err != nil {
				return "", err
			}
			out = append(out, expanded)

		default:
			return "", fmt.Errorf("%sline %d: malformed #include %q", location(file), i+1, arg)
		}
	}
	return strings.Join(out, "\n"), nil
}

// insertDefines places the registered defines after the first #version line, or at the top if there is none.
func (p *preProcessor) insertDefines(source string) string {
	if len(p.defines) == 0 {
		return source
	}

	names := make([]string, 0, len(p.defines))
	for name := range p.defines {
		names = append(names, name)
	}
	sort.Strings(names)

	var defs strings.Builder
	for _, name := range names {
		defs.WriteString(strings.TrimSpace(fmt.Sprintf("#define %s %s", name, p.defines[name])))
		defs.WriteString("\n")
	}

	lines := strings.SplitAfter(source, "\n")
	for i, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "#version") {
			if !strings.HasSuffix(line, "\n") {
				lines[i] = line + "\n"
			}
			return strings.Join(lines[:i+1], "") + defs.String() + strings.Join(lines[i+1:], "")
		}
	}
	return defs.String() + source
}

func location(file string) string {
	if file == "" {
		return ""
	}
	return file + ": "
}
