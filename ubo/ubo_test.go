// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package ubo_test

import (
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/shadertool/internal/testshader"
	"github.com/gogpu/shadertool/spirv"
	"github.com/gogpu/shadertool/ubo"
)

func uniformBuffers(t *testing.T, words []uint32) []spirv.UniformBuffer {
	t.Helper()
	r, err := spirv.Reflect(words)
	require.NoError(t, err)
	buffers, err := r.UniformBuffers()
	require.NoError(t, err)
	return buffers
}

var (
	matrices = testshader.Block{
		Name: "Matrices",
		Members: []testshader.Member{
			{Name: "mvp", Type: testshader.Mat(4, 4), Offset: 0},
			{Name: "normal", Type: testshader.Mat(3, 3), Offset: 64},
		},
	}
	lighting = testshader.Block{
		Name: "Lighting",
		Members: []testshader.Member{
			{Name: "count", Type: testshader.Int, Offset: 0},
			{Name: "enabled", Type: testshader.Bool, Offset: 4},
			{Name: "weights", Type: testshader.Array(testshader.Float, 4, 4), Offset: 16},
			{Name: "scale", Type: testshader.Double, Offset: 32},
		},
	}
)

// compareGolden compares actual output with testdata/name. If UPDATE_GOLDEN
// is set, writes actual output as the new golden file.
func compareGolden(t *testing.T, name string, actual []byte) {
	t.Helper()
	path := filepath.Join("testdata", name)

	if os.Getenv("UPDATE_GOLDEN") != "" {
		require.NoError(t, os.WriteFile(path, actual, 0o644))
		t.Logf("updated golden file: %s", path)
		return
	}

	expected, err := os.ReadFile(path)
	require.NoError(t, err, "run with UPDATE_GOLDEN=1 to create")

	// Git may convert \n to \r\n on Windows checkout.
	assert.Equal(t, strings.ReplaceAll(string(expected), "\r\n", "\n"), string(actual))
}

func TestGenerateGolden(t *testing.T) {
	tests := []struct {
		golden string
		path   string
		words  []uint32
	}{
		{"params.h", "shaders/main.frag.spv", testshader.ParamsShader()},
		{"multi.h", "sprites/quad-2.vert.spv", testshader.Module(spirv.ExecutionModelVertex, matrices, lighting)},
		{"empty.h", "empty.spv", testshader.Module(spirv.ExecutionModelFragment)},
	}

	for _, tt := range tests {
		t.Run(tt.golden, func(t *testing.T) {
			out, err := ubo.Generate(tt.path, uniformBuffers(t, tt.words))
			require.NoError(t, err)
			compareGolden(t, tt.golden, out)
		})
	}
}

func TestComputeParams(t *testing.T) {
	buffers := uniformBuffers(t, testshader.ParamsShader())
	require.Len(t, buffers, 1)

	l, err := ubo.Compute("main.frag.spv", buffers[0])
	require.NoError(t, err)

	assert.Equal(t, "Params_main_frag", l.Name)
	assert.Equal(t, uint32(28), l.Size)
	assert.Equal(t, []ubo.Field{
		{Name: "a", Type: "float", Size: 4, Offset: 0},
		{Name: "_padding0", Type: "uint8_t", Size: 12, Offset: 4, Padding: true},
		{Name: "b", Type: "SPIRV_FLOAT_VEC3", Size: 12, Offset: 16},
	}, l.Fields)
	assert.Len(t, l.Members(), 2)
}

func TestComputePaddingCounter(t *testing.T) {
	buffers := uniformBuffers(t, testshader.Module(spirv.ExecutionModelFragment, testshader.Block{
		Name: "Gaps",
		Members: []testshader.Member{
			{Name: "a", Type: testshader.Float, Offset: 0},
			{Name: "b", Type: testshader.Float, Offset: 16},
			{Name: "c", Type: testshader.Vec(2), Offset: 32},
			{Name: "d", Type: testshader.Vec(4), Offset: 48},
		},
	}))

	l, err := ubo.Compute("gaps.spv", buffers[0])
	require.NoError(t, err)

	var pads []string
	var total uint32
	for _, f := range l.Fields {
		if f.Padding {
			pads = append(pads, f.Name+"["+strconv.Itoa(int(f.Size))+"]")
		}
		total += f.Size
	}
	assert.Equal(t, []string{"_padding0[12]", "_padding1[12]", "_padding2[8]"}, pads)
	assert.Equal(t, l.Size, total)
	assert.Equal(t, uint32(64), l.Size)
}

func TestComputeMemberNameFallback(t *testing.T) {
	buffers := uniformBuffers(t, testshader.Module(spirv.ExecutionModelFragment, testshader.Block{
		Name: "Anon",
		Members: []testshader.Member{
			{Type: testshader.Float, Offset: 0},
			{Name: "b", Type: testshader.Float, Offset: 4},
		},
	}))

	l, err := ubo.Compute("anon.spv", buffers[0])
	require.NoError(t, err)
	assert.Equal(t, "_m0", l.Fields[0].Name)
	assert.Equal(t, "b", l.Fields[1].Name)
}

var (
	sizeAssert   = regexp.MustCompile(`static_assert\(sizeof\((\w+)\) == (\d+),`)
	offsetAssert = regexp.MustCompile(`static_assert\(offsetof\((\w+), (\w+)\) == (\d+),`)
)

// TestGenerateAsserts checks every emitted assert against the reflected
// layout of the module.
func TestGenerateAsserts(t *testing.T) {
	buffers := uniformBuffers(t, testshader.Module(spirv.ExecutionModelVertex, testshader.Params, matrices, lighting))
	require.Len(t, buffers, 3)

	out, err := ubo.Generate("multi.vert.spv", buffers)
	require.NoError(t, err)
	text := string(out)

	assert.Equal(t, len(buffers), strings.Count(text, "struct ")-strings.Count(text, "Size of struct "))

	sizes := sizeAssert.FindAllStringSubmatch(text, -1)
	require.Len(t, sizes, len(buffers))

	offsets := offsetAssert.FindAllStringSubmatch(text, -1)
	var i int
	for b, buf := range buffers {
		name := ubo.StructName(buf.Name, "multi.vert.spv")
		assert.Equal(t, name, sizes[b][1])
		assert.Equal(t, strconv.Itoa(int(buf.Size)), sizes[b][2])

		for _, m := range buf.Type.Members {
			require.Less(t, i, len(offsets))
			assert.Equal(t, name, offsets[i][1])
			assert.Equal(t, m.Name, offsets[i][2])
			assert.Equal(t, strconv.Itoa(int(m.Offset)), offsets[i][3])
			i++
		}
	}
	assert.Equal(t, len(offsets), i)
}

func TestGenerateDeterministic(t *testing.T) {
	words := testshader.Module(spirv.ExecutionModelVertex, matrices, lighting, testshader.Params)

	first, err := ubo.Generate("a.spv", uniformBuffers(t, words))
	require.NoError(t, err)
	second, err := ubo.Generate("a.spv", uniformBuffers(t, words))
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestGenerateUnnamedBlock(t *testing.T) {
	buffers := uniformBuffers(t, testshader.Module(spirv.ExecutionModelFragment, testshader.Block{
		Members: []testshader.Member{{Name: "x", Type: testshader.Float}},
	}))

	out, err := ubo.Generate("u.spv", buffers)
	require.NoError(t, err)
	assert.Regexp(t, `struct _\d+_u \{`, string(out))
}

func TestUnsupportedTypes(t *testing.T) {
	tests := []struct {
		name   string
		member testshader.TypeSpec
		kind   ubo.ErrorKind
	}{
		{"sampler", testshader.Sampler2D, ubo.ErrUnsupportedType},
		{"half", testshader.Half, ubo.ErrUnsupportedType},
		{"ivec", testshader.IVec(3), ubo.ErrUnsupportedType},
		{"struct", testshader.Struct(testshader.Member{Name: "x", Type: testshader.Float}), ubo.ErrUnsupportedType},
		{"padded array", testshader.Array(testshader.Float, 4, 16), ubo.ErrUnsupportedArray},
		{"array of unsupported", testshader.Array(testshader.IVec(2), 2, 8), ubo.ErrUnsupportedType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buffers := uniformBuffers(t, testshader.Module(spirv.ExecutionModelFragment,
				testshader.Params,
				testshader.Block{
					Name: "Bad",
					Members: []testshader.Member{
						{Name: "ok", Type: testshader.Float},
						{Name: "bad", Type: tt.member, Offset: 16},
					},
				}))

			out, err := ubo.Generate("bad.spv", buffers)
			require.Error(t, err)
			assert.Nil(t, out)
			assert.True(t, ubo.IsUnsupportedType(err))

			var uerr *ubo.Error
			require.ErrorAs(t, err, &uerr)
			assert.Equal(t, tt.kind, uerr.Kind)
			assert.Equal(t, "Bad", uerr.Block)
			assert.Equal(t, "bad", uerr.Member)
		})
	}
}

func TestCppType(t *testing.T) {
	tests := []struct {
		typ  spirv.Type
		want string
		size uint32
	}{
		{spirv.Type{BaseType: spirv.BaseBoolean, Width: 32, VecSize: 1, Columns: 1}, "std::uint32_t", 4},
		{spirv.Type{BaseType: spirv.BaseSByte, Width: 8, VecSize: 1, Columns: 1}, "std::int8_t", 1},
		{spirv.Type{BaseType: spirv.BaseUByte, Width: 8, VecSize: 1, Columns: 1}, "std::uint8_t", 1},
		{spirv.Type{BaseType: spirv.BaseShort, Width: 16, VecSize: 1, Columns: 1}, "std::int16_t", 2},
		{spirv.Type{BaseType: spirv.BaseUShort, Width: 16, VecSize: 1, Columns: 1}, "std::uint16_t", 2},
		{spirv.Type{BaseType: spirv.BaseInt, Width: 32, VecSize: 1, Columns: 1}, "std::int32_t", 4},
		{spirv.Type{BaseType: spirv.BaseUInt, Width: 32, VecSize: 1, Columns: 1}, "std::uint32_t", 4},
		{spirv.Type{BaseType: spirv.BaseInt64, Width: 64, VecSize: 1, Columns: 1}, "std::int64_t", 8},
		{spirv.Type{BaseType: spirv.BaseUInt64, Width: 64, VecSize: 1, Columns: 1}, "std::uint64_t", 8},
		{spirv.Type{BaseType: spirv.BaseFloat, Width: 32, VecSize: 1, Columns: 1}, "float", 4},
		{spirv.Type{BaseType: spirv.BaseDouble, Width: 64, VecSize: 1, Columns: 1}, "double", 8},
		{spirv.Type{BaseType: spirv.BaseFloat, Width: 32, VecSize: 4, Columns: 1}, "SPIRV_FLOAT_VEC4", 16},
		{spirv.Type{BaseType: spirv.BaseFloat, Width: 32, VecSize: 2, Columns: 3}, "SPIRV_FLOAT_MAT_2x3", 24},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			got, size, err := ubo.CppType(&tt.typ)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.size, size)
		})
	}
}

func TestSanitizeIdentifier(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"main", "main"},
		{"main.frag", "main_frag"},
		{"post-fx 2", "post_fx_2"},
		{"ünï", "__n__"},
	}
	for _, tt := range tests {
		got := ubo.SanitizeIdentifier(tt.in)
		assert.Equal(t, tt.want, got)
		assert.Len(t, got, len(tt.in))
		assert.Regexp(t, `^[A-Za-z0-9_]*$`, got)
	}
}

func TestStructName(t *testing.T) {
	tests := []struct {
		block, path, want string
	}{
		{"Params", "main.frag.spv", "Params_main_frag"},
		{"Params", filepath.Join("dir.d", "main.spv"), "Params_main"},
		{"Globals", "shader", "Globals_shader"},
		{"_12", "post-fx.vert.spv", "_12_post_fx_vert"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ubo.StructName(tt.block, tt.path))
	}
}
