// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package processor

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"

	"github.com/gogpu/shadertool/glsl"
	"github.com/gogpu/shadertool/internal/logging/logfields"
	"github.com/gogpu/shadertool/spirv"
)

// GLSLName is the name of the GLSL processor.
const GLSLName = "glsl"

// Validator checks generated GLSL source for the given stage.
type Validator interface {
	Validate(ctx context.Context, source, stage string) error
}

// GLSL cross-compiles the shader to GLSL for OpenGL.
type GLSL struct {
	base

	// Compiler and Validator replace the external tools when set.
	Compiler  glsl.Compiler
	Validator Validator
}

// NewGLSL returns the GLSL processor.
func NewGLSL() *GLSL {
	return &GLSL{
		base: base{
			name:        GLSLName,
			description: "Output GLSL code compatible with OpenGL",
		},
	}
}

// AddFlags registers --glsl and the GLSL output options.
func (p *GLSL) AddFlags(flags *pflag.FlagSet) {
	p.addEnableFlag(flags)
	flags.String(GLSLOutputKey, "", "Path of the file to write the GLSL code to")
	flags.String(GLSLVersionKey, glsl.Version150.VersionNumber(), "GLSL version to generate")
	flags.Bool(GLSLValidateKey, false, "Check the generated code with glslangValidator")
	flags.String(SpirvCrossKey, "spirv-cross", "spirv-cross binary used for cross-compilation")
	flags.String(GlslangValidatorKey, "glslangValidator", "glslangValidator binary used with --"+GLSLValidateKey)
}

// ProcessShader compiles code and writes the GLSL source to the configured
// output.
func (p *GLSL) ProcessShader(ctx context.Context, shaderPath string, code []uint32, cfg *Config) error {
	scopedLog := log.WithFields(logrus.Fields{
		logfields.Processor: p.Name(),
		logfields.Path:      shaderPath,
	})

	compiler := p.Compiler
	if compiler == nil {
		compiler = glsl.NewCrossCompiler(cfg.GLSL.SpirvCross)
	}

	source, err := compiler.Compile(ctx, code, glsl.Options{LangVersion: cfg.GLSL.Version})
	if err != nil {
		return fmt.Errorf("failed to compile to GLSL: %w", err)
	}
	scopedLog.WithField(logfields.Size, len(source)).Debug("Generated GLSL")

	if cfg.GLSL.Validate {
		if err := p.validate(ctx, code, source, cfg); err != nil {
			return err
		}
		scopedLog.Debug("GLSL validated")
	}

	return writeOutput(cfg.GLSL.Output, []byte(source))
}

// validate runs the validator with the stage of the module's first entry
// point.
func (p *GLSL) validate(ctx context.Context, code []uint32, source string, cfg *Config) error {
	r, err := spirv.Reflect(code)
	if err != nil {
		return fmt.Errorf("failed to determine shader stage: %w", err)
	}
	entryPoints := r.EntryPoints()
	if len(entryPoints) == 0 {
		return errors.New("failed to determine shader stage: module has no entry point")
	}
	stage, ok := glsl.Stage(entryPoints[0].Model)
	if !ok {
		return fmt.Errorf("failed to determine shader stage: %s has no GLSL equivalent", entryPoints[0].Model)
	}

	validator := p.Validator
	if validator == nil {
		validator = glsl.NewValidator(cfg.GLSL.GlslangValidator)
	}
	if err := validator.Validate(ctx, source, stage); err != nil {
		return fmt.Errorf("generated GLSL failed validation: %w", err)
	}
	return nil
}
