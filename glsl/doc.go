// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package glsl turns SPIR-V binaries back into GLSL for OpenGL.
//
// Cross-compilation is delegated to the spirv-cross tool; this package
// only models the target version and drives the process:
//
//	c := glsl.NewCrossCompiler("")
//	source, err := c.Compile(ctx, words, glsl.DefaultOptions())
//
// The default target is GLSL 1.50 core profile without the 420pack
// extension, the most portable desktop profile.
//
// # Validation
//
// Validator runs glslangValidator on generated source, which is useful as
// a round-trip check that the output is accepted by a GLSL front end.
package glsl
