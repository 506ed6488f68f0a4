// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package processor

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/shadertool/glsl"
	"github.com/gogpu/shadertool/internal/testshader"
	"github.com/gogpu/shadertool/spirv"
	"github.com/gogpu/shadertool/ubo"
)

type fakeCompiler struct {
	source  string
	err     error
	options glsl.Options
	code    []uint32
}

func (c *fakeCompiler) Compile(_ context.Context, code []uint32, options glsl.Options) (string, error) {
	c.code = code
	c.options = options
	return c.source, c.err
}

type fakeValidator struct {
	stage string
	err   error
}

func (v *fakeValidator) Validate(_ context.Context, _, stage string) error {
	v.stage = stage
	return v.err
}

func processors() []Processor {
	return []Processor{NewGLSL(), NewStructs()}
}

// newViper parses args against the flags of all processors.
func newViper(t *testing.T, args ...string) *viper.Viper {
	t.Helper()
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	for _, p := range processors() {
		p.AddFlags(flags)
	}
	require.NoError(t, flags.Parse(args))

	vp := viper.New()
	require.NoError(t, vp.BindPFlags(flags))
	return vp
}

func TestNewConfigDefaults(t *testing.T) {
	cfg, err := NewConfig(newViper(t), processors())
	require.NoError(t, err)

	assert.False(t, cfg.IsEnabled(GLSLName))
	assert.False(t, cfg.IsEnabled(StructsName))
	assert.False(t, cfg.IsEnabled("unknown"))
	assert.Equal(t, glsl.Version150, cfg.GLSL.Version)
	assert.Equal(t, "spirv-cross", cfg.GLSL.SpirvCross)
	assert.Equal(t, "glslangValidator", cfg.GLSL.GlslangValidator)
	assert.Empty(t, cfg.GLSL.Output)
	assert.Empty(t, cfg.Structs.Output)
}

func TestNewConfigFlags(t *testing.T) {
	dir := t.TempDir()
	existing := filepath.Join(dir, "existing.h")
	require.NoError(t, os.WriteFile(existing, []byte("old"), 0o644))

	cfg, err := NewConfig(newViper(t,
		"--glsl", "--glsl-output", filepath.Join(dir, "new.glsl"),
		"--glsl-version", "330", "--glsl-validate",
		"--structs", "--structs-output", existing,
	), processors())
	require.NoError(t, err)

	assert.True(t, cfg.IsEnabled(GLSLName))
	assert.True(t, cfg.IsEnabled(StructsName))
	assert.Equal(t, glsl.Version330, cfg.GLSL.Version)
	assert.True(t, cfg.GLSL.Validate)
	assert.Equal(t, existing, cfg.Structs.Output)
}

func TestNewConfigEnv(t *testing.T) {
	t.Setenv("SHADERTOOL_STRUCTS", "true")
	t.Setenv("SHADERTOOL_STRUCTS_OUTPUT", "out.h")

	vp := newViper(t)
	vp.SetEnvPrefix("shadertool")
	vp.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	vp.AutomaticEnv()

	cfg, err := NewConfig(vp, processors())
	require.NoError(t, err)
	assert.True(t, cfg.IsEnabled(StructsName))
	assert.Equal(t, "out.h", cfg.Structs.Output)
}

func TestNewConfigErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := NewConfig(newViper(t, "--glsl-output", dir), processors())
	assert.ErrorContains(t, err, "--glsl-output")

	_, err = NewConfig(newViper(t, "--structs-output", dir), processors())
	assert.ErrorContains(t, err, "--structs-output")

	_, err = NewConfig(newViper(t, "--glsl-version", "abc"), processors())
	assert.ErrorContains(t, err, "--glsl-version")
}

func TestCheckOutputPath(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(file, nil, 0o644))

	assert.NoError(t, CheckOutputPath(""))
	assert.NoError(t, CheckOutputPath(file))
	assert.NoError(t, CheckOutputPath(filepath.Join(dir, "missing")))
	assert.Error(t, CheckOutputPath(dir))
}

func TestWriteOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")

	require.NoError(t, writeOutput(path, []byte("first")))
	require.NoError(t, writeOutput(path, []byte("second")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))

	assert.ErrorIs(t, writeOutput("", nil), ErrOutputPathUnset)
	assert.Error(t, writeOutput(filepath.Join(t.TempDir(), "missing", "out.txt"), nil))
}

func TestGLSLProcessShader(t *testing.T) {
	out := filepath.Join(t.TempDir(), "shader.glsl")
	compiler := &fakeCompiler{source: "#version 150\nvoid main() {}\n"}
	p := NewGLSL()
	p.Compiler = compiler

	code := testshader.ParamsShader()
	cfg := &Config{GLSL: GLSLConfig{Output: out, Version: glsl.Version150}}
	require.NoError(t, p.ProcessShader(context.Background(), "shader.spv", code, cfg))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, compiler.source, string(data))
	assert.Equal(t, code, compiler.code)
	assert.Equal(t, glsl.Version150, compiler.options.LangVersion)
	assert.False(t, compiler.options.Enable420Pack)
}

func TestGLSLProcessShaderValidate(t *testing.T) {
	out := filepath.Join(t.TempDir(), "shader.glsl")
	validator := &fakeValidator{}
	p := NewGLSL()
	p.Compiler = &fakeCompiler{source: "void main() {}"}
	p.Validator = validator

	cfg := &Config{GLSL: GLSLConfig{Output: out, Validate: true}}
	code := testshader.Module(spirv.ExecutionModelVertex, testshader.Params)
	require.NoError(t, p.ProcessShader(context.Background(), "shader.spv", code, cfg))
	assert.Equal(t, "vert", validator.stage)

	// A failed validation leaves the previous output in place.
	validator.err = errors.New("ERROR: 0:1: syntax error")
	p.Compiler = &fakeCompiler{source: "broken"}
	err := p.ProcessShader(context.Background(), "shader.spv", code, cfg)
	require.ErrorContains(t, err, "syntax error")

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "void main() {}", string(data))
}

func TestGLSLProcessShaderErrors(t *testing.T) {
	t.Run("compiler", func(t *testing.T) {
		out := filepath.Join(t.TempDir(), "shader.glsl")
		p := NewGLSL()
		p.Compiler = &fakeCompiler{err: &glsl.CompileError{Output: "invalid magic"}}

		err := p.ProcessShader(context.Background(), "shader.spv", nil, &Config{GLSL: GLSLConfig{Output: out}})
		var cerr *glsl.CompileError
		require.ErrorAs(t, err, &cerr)
		assert.NoFileExists(t, out)
	})

	t.Run("output unset", func(t *testing.T) {
		p := NewGLSL()
		p.Compiler = &fakeCompiler{source: "x"}
		err := p.ProcessShader(context.Background(), "shader.spv", nil, &Config{})
		assert.ErrorIs(t, err, ErrOutputPathUnset)
	})

	t.Run("no entry point", func(t *testing.T) {
		p := NewGLSL()
		p.Compiler = &fakeCompiler{source: "x"}
		p.Validator = &fakeValidator{}

		mb := spirv.NewModuleBuilder(spirv.Version1_0)
		mb.AddCapability(spirv.CapabilityShader)
		err := p.ProcessShader(context.Background(), "shader.spv", mb.BuildWords(),
			&Config{GLSL: GLSLConfig{Output: filepath.Join(t.TempDir(), "x"), Validate: true}})
		assert.ErrorContains(t, err, "no entry point")
	})

	t.Run("missing tool", func(t *testing.T) {
		p := NewGLSL()
		cfg := &Config{GLSL: GLSLConfig{Output: filepath.Join(t.TempDir(), "x"), SpirvCross: "shadertool-no-such-binary"}}
		err := p.ProcessShader(context.Background(), "shader.spv", testshader.ParamsShader(), cfg)
		assert.ErrorIs(t, err, glsl.ErrCompilerNotFound)
	})
}

func TestStructsProcessShader(t *testing.T) {
	out := filepath.Join(t.TempDir(), "params.h")
	p := NewStructs()

	cfg := &Config{Structs: StructsConfig{Output: out}}
	require.NoError(t, p.ProcessShader(context.Background(), "shaders/main.frag.spv", testshader.ParamsShader(), cfg))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	expected, err := os.ReadFile(filepath.Join("..", "ubo", "testdata", "params.h"))
	require.NoError(t, err)
	assert.Equal(t, string(expected), string(data))
}

func TestStructsProcessShaderUnsupported(t *testing.T) {
	out := filepath.Join(t.TempDir(), "bad.h")
	require.NoError(t, os.WriteFile(out, []byte("previous"), 0o644))

	code := testshader.Module(spirv.ExecutionModelFragment, testshader.Params, testshader.Block{
		Name:    "Textures",
		Members: []testshader.Member{{Name: "tex", Type: testshader.Sampler2D}},
	})
	err := NewStructs().ProcessShader(context.Background(), "bad.spv", code, &Config{Structs: StructsConfig{Output: out}})
	require.Error(t, err)
	assert.True(t, ubo.IsUnsupportedType(err))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "previous", string(data))
}

func TestStructsProcessShaderMalformed(t *testing.T) {
	err := NewStructs().ProcessShader(context.Background(), "bad.spv", []uint32{1, 2, 3}, &Config{})
	var serr *spirv.Error
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, spirv.ErrInvalidHeader, serr.Kind)
}
