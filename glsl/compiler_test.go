// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package glsl

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/shadertool/internal/testshader"
	"github.com/gogpu/shadertool/spirv"
)

func TestVersionString(t *testing.T) {
	tests := []struct {
		version Version
		str     string
		number  string
	}{
		{Version150, "150 core", "150"},
		{Version330, "330 core", "330"},
		{Version450, "450 core", "450"},
		{VersionES300, "300 es", "300"},
		{VersionES310, "310 es", "310"},
	}
	for _, tt := range tests {
		t.Run(tt.str, func(t *testing.T) {
			assert.Equal(t, tt.str, tt.version.String())
			assert.Equal(t, tt.number, tt.version.VersionNumber())
		})
	}
}

func TestParseVersion(t *testing.T) {
	v, err := ParseVersion("150", false)
	require.NoError(t, err)
	assert.Equal(t, Version150, v)

	v, err = ParseVersion("300", true)
	require.NoError(t, err)
	assert.Equal(t, VersionES300, v)

	for _, bad := range []string{"", "abc", "15", "1500"} {
		_, err := ParseVersion(bad, false)
		assert.Error(t, err, bad)
	}
}

func TestCrossCompilerArgs(t *testing.T) {
	c := NewCrossCompiler("")
	assert.Equal(t, "spirv-cross", c.Bin)

	tests := []struct {
		name    string
		options Options
		want    []string
	}{
		{"default", DefaultOptions(), []string{"--version", "150", "--no-es", "--no-420pack-extension", "-"}},
		{"zero", Options{}, []string{"--version", "150", "--no-es", "--no-420pack-extension", "-"}},
		{"es", Options{LangVersion: VersionES300}, []string{"--version", "300", "--es", "--no-420pack-extension", "-"}},
		{"420pack", Options{LangVersion: Version450, Enable420Pack: true}, []string{"--version", "450", "--no-es", "-"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.args(tt.options))
		})
	}
}

// fakeTool writes an executable shell script into a temp dir.
func fakeTool(t *testing.T, script string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell scripts are not executable on windows")
	}
	path := filepath.Join(t.TempDir(), "tool")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+script), 0o755))
	return path
}

func TestCrossCompilerCompile(t *testing.T) {
	// Echo the arguments and the input size so both are observable.
	bin := fakeTool(t, `echo "// $@"; echo "// $(wc -c | tr -d ' ')"`+"\n")

	code := testshader.ParamsShader()
	out, err := NewCrossCompiler(bin).Compile(context.Background(), code, DefaultOptions())
	require.NoError(t, err)
	assert.Contains(t, out, "// --version 150 --no-es --no-420pack-extension -")
	assert.Contains(t, out, "// "+strconv.Itoa(len(spirv.EncodeWords(code))))
}

func TestCrossCompilerFailure(t *testing.T) {
	bin := fakeTool(t, "echo 'error: bad module' >&2\nexit 3\n")

	_, err := NewCrossCompiler(bin).Compile(context.Background(), []uint32{spirv.MagicNumber}, DefaultOptions())
	require.Error(t, err)

	var cerr *CompileError
	require.ErrorAs(t, err, &cerr)
	assert.Contains(t, cerr.Output, "bad module")
	assert.Contains(t, err.Error(), "bad module")

	var exitErr *exec.ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 3, exitErr.ExitCode())
}

func TestCrossCompilerNotFound(t *testing.T) {
	_, err := NewCrossCompiler("shadertool-no-such-binary").Compile(context.Background(), nil, DefaultOptions())
	assert.ErrorIs(t, err, ErrCompilerNotFound)
}

func TestCrossCompilerCanceled(t *testing.T) {
	bin := fakeTool(t, "sleep 5\n")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewCrossCompiler(bin).Compile(ctx, nil, DefaultOptions())
	assert.Error(t, err)
}

// TestSpirvCross runs the real tool when it is installed.
func TestSpirvCross(t *testing.T) {
	if _, err := exec.LookPath("spirv-cross"); err != nil {
		t.Skip("spirv-cross not installed")
	}

	out, err := NewCrossCompiler("").Compile(context.Background(), testshader.ParamsShader(), DefaultOptions())
	require.NoError(t, err)
	assert.Contains(t, out, "#version 150")
	assert.Contains(t, out, "Params")

	if _, err := exec.LookPath("glslangValidator"); err == nil {
		assert.NoError(t, NewValidator("").Validate(context.Background(), out, "frag"))
	}
}
