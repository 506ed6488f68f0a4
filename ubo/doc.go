// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package ubo generates C++ structs matching the uniform blocks of a SPIR-V
// shader.
//
// Each block becomes a struct named after the block and the shader file.
// Explicit uint8_t padding arrays reproduce the offsets the shader was
// compiled with, and static_asserts make the host compiler verify the
// result:
//
//	struct Params_main_frag {
//		float a;
//		uint8_t _padding0[12];
//		SPIRV_FLOAT_VEC3 b;
//	};
//	static_assert(sizeof(Params_main_frag) == 28, "...");
//	static_assert(offsetof(Params_main_frag, a) == 0, "...");
//	static_assert(offsetof(Params_main_frag, b) == 16, "...");
//
// Vector and matrix members use SPIRV_FLOAT_VEC<n> and
// SPIRV_FLOAT_MAT_<rows>x<columns>, which the including code must define.
// Only scalar, float vector, float matrix and tightly packed array members
// are supported.
package ubo
