// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package processor implements the post-processing steps applied to a
// compiled SPIR-V shader.
//
// Each Processor registers an enable flag named after itself plus its own
// options, and writes exactly one output file. The glsl processor emits
// OpenGL GLSL through spirv-cross; the structs processor emits a C++ header
// mirroring the shader's uniform blocks.
//
// Outputs are replaced atomically, so a failing processor never leaves a
// partially written file behind.
package processor
