// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package glsl

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/gogpu/shadertool/spirv"
)

// Stage returns the glslangValidator stage name for an execution model.
func Stage(model spirv.ExecutionModel) (string, bool) {
	switch model {
	case spirv.ExecutionModelVertex:
		return "vert", true
	case spirv.ExecutionModelTessellationControl:
		return "tesc", true
	case spirv.ExecutionModelTessellationEvaluation:
		return "tese", true
	case spirv.ExecutionModelGeometry:
		return "geom", true
	case spirv.ExecutionModelFragment:
		return "frag", true
	case spirv.ExecutionModelGLCompute:
		return "comp", true
	default:
		return "", false
	}
}

// Validator is the OpenGL reference compiler, used to check that generated
// GLSL still compiles.
type Validator struct {
	Bin string
}

// NewValidator returns a Validator running bin, or "glslangValidator" from
// PATH when bin is empty.
func NewValidator(bin string) *Validator {
	if bin == "" {
		bin = "glslangValidator"
	}
	return &Validator{Bin: bin}
}

// Validate compiles source as the given stage and reports any diagnostics.
func (v *Validator) Validate(ctx context.Context, source, stage string) error {
	cmd := exec.CommandContext(ctx, v.Bin, "--stdin", "-S", stage)
	cmd.Stdin = strings.NewReader(source)

	// glslangValidator prints diagnostics on stdout.
	out, err := cmd.CombinedOutput()
	if err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return fmt.Errorf("%w: %q", ErrCompilerNotFound, v.Bin)
		}
		return &CompileError{Args: cmd.Args, Output: string(out), Err: err}
	}
	return nil
}
