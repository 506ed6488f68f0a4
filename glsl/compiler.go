// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package glsl

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/gogpu/shadertool/spirv"
)

// ErrCompilerNotFound is returned when spirv-cross or glslangValidator cannot
// be located.
var ErrCompilerNotFound = errors.New("glsl: compiler binary not found")

// CompileError reports a failed external tool invocation. Output holds the
// tool's diagnostics verbatim.
type CompileError struct {
	Args   []string
	Output string
	Err    error
}

func (e *CompileError) Error() string {
	msg := fmt.Sprintf("failed to run %v: %v", e.Args, e.Err)
	if out := strings.TrimSpace(e.Output); out != "" {
		msg += "\n" + out
	}
	return msg
}

func (e *CompileError) Unwrap() error {
	return e.Err
}

// Options configures GLSL code generation.
type Options struct {
	// LangVersion is the target GLSL version.
	// Defaults to Version150 if zero.
	LangVersion Version

	// Enable420Pack allows the GL_ARB_shading_language_420pack extension
	// (explicit binding layouts) in the output.
	Enable420Pack bool
}

// DefaultOptions returns the options used for OpenGL output: GLSL 150 core
// without the 420pack extension.
func DefaultOptions() Options {
	return Options{
		LangVersion: Version150,
	}
}

// Compiler cross-compiles SPIR-V to GLSL source.
type Compiler interface {
	Compile(ctx context.Context, code []uint32, options Options) (string, error)
}

// CrossCompiler drives the spirv-cross command line tool.
type CrossCompiler struct {
	Bin string
}

// NewCrossCompiler returns a CrossCompiler running bin, or "spirv-cross"
// from PATH when bin is empty.
func NewCrossCompiler(bin string) *CrossCompiler {
	if bin == "" {
		bin = "spirv-cross"
	}
	return &CrossCompiler{Bin: bin}
}

func (c *CrossCompiler) args(options Options) []string {
	if options.LangVersion.Major == 0 {
		options.LangVersion = Version150
	}

	args := []string{"--version", options.LangVersion.VersionNumber()}
	if options.LangVersion.ES {
		args = append(args, "--es")
	} else {
		args = append(args, "--no-es")
	}
	if !options.Enable420Pack {
		args = append(args, "--no-420pack-extension")
	}
	return append(args, "-")
}

// Compile pipes code to spirv-cross and returns the generated source.
func (c *CrossCompiler) Compile(ctx context.Context, code []uint32, options Options) (string, error) {
	cmd := exec.CommandContext(ctx, c.Bin, c.args(options)...)
	cmd.Stdin = bytes.NewReader(spirv.EncodeWords(code))

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	out, err := cmd.Output()
	if err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return "", fmt.Errorf("%w: %q", ErrCompilerNotFound, c.Bin)
		}
		return "", &CompileError{Args: cmd.Args, Output: stderr.String(), Err: err}
	}

	return string(out), nil
}
