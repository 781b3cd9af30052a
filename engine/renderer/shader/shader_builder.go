package shader

type ShaderBuilderOption func(*shader)

// WithName sets the shader name used in logs and errors. Defaults to the vertex file's base name.
//
// Parameters:
//   - name: the shader name
//
// Returns:
//   - ShaderBuilderOption: a function that sets the name
func WithName(name string) ShaderBuilderOption {
	return func(s *shader) {
		s.name = name
	}
}

// WithPreProcessor replaces the default pre-processor, for example one with extra registered snippets.
//
// Parameters:
//   - pp: the pre-processor
//
// Returns:
//   - ShaderBuilderOption: a function that sets the pre-processor
func WithPreProcessor(pp PreProcessor) ShaderBuilderOption {
	return func(s *shader) {
		s.pp = pp
	}
}

// WithDefine adds a #define inserted after the #version line of both stages.
// Options apply in order, so WithDefine after WithPreProcessor defines on that pre-processor.
//
// Parameters:
//   - name: the macro name
//   - value: the macro value
//
// Returns:
//   - ShaderBuilderOption: a function that adds the define
func WithDefine(name, value string) ShaderBuilderOption {
	return func(s *shader) {
		if s.pp == nil {
			s.pp = NewPreProcessor()
		}
		s.pp.Define(name, value)
	}
}
