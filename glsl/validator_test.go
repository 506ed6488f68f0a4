// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package glsl

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/shadertool/spirv"
)

func TestStage(t *testing.T) {
	tests := []struct {
		model spirv.ExecutionModel
		stage string
		ok    bool
	}{
		{spirv.ExecutionModelVertex, "vert", true},
		{spirv.ExecutionModelTessellationControl, "tesc", true},
		{spirv.ExecutionModelTessellationEvaluation, "tese", true},
		{spirv.ExecutionModelGeometry, "geom", true},
		{spirv.ExecutionModelFragment, "frag", true},
		{spirv.ExecutionModelGLCompute, "comp", true},
		{spirv.ExecutionModelKernel, "", false},
	}
	for _, tt := range tests {
		stage, ok := Stage(tt.model)
		assert.Equal(t, tt.stage, stage)
		assert.Equal(t, tt.ok, ok)
	}
}

func TestValidator(t *testing.T) {
	// Accept sources containing "main" and echo the stage argument.
	bin := fakeTool(t, `if grep -q main; then exit 0; fi; echo "ERROR: stage $3"; exit 2`+"\n")
	v := NewValidator(bin)

	require.NoError(t, v.Validate(context.Background(), "void main() {}", "frag"))

	err := v.Validate(context.Background(), "void f() {}", "vert")
	var cerr *CompileError
	require.ErrorAs(t, err, &cerr)
	assert.Contains(t, cerr.Output, "ERROR: stage vert")
	assert.Equal(t, []string{bin, "--stdin", "-S", "vert"}, cerr.Args)
}

func TestValidatorNotFound(t *testing.T) {
	assert.Equal(t, "glslangValidator", NewValidator("").Bin)

	err := NewValidator("shadertool-no-such-binary").Validate(context.Background(), "", "frag")
	assert.ErrorIs(t, err, ErrCompilerNotFound)
}
