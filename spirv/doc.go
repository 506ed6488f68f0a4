// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package spirv reads, inspects and writes SPIR-V binaries.
//
// SPIR-V is the standard intermediate language for GPU shaders,
// used by Vulkan, OpenCL, and other APIs.
//
// # Loading
//
// LoadFile reads a module as little-endian 32-bit words. Parse splits the
// words into instructions and accepts modules written with the opposite
// byte order:
//
//	words, err := spirv.LoadFile("main.frag.spv")
//	if err != nil {
//		log.Fatal(err)
//	}
//	module, err := spirv.Parse(words)
//
// # Reflection
//
// Reflect resolves names, decorations and types of a module. Uniform blocks
// are reported with their declared layout:
//
//	r, err := spirv.Reflect(words)
//	buffers, err := r.UniformBuffers()
//	for _, buf := range buffers {
//		fmt.Println(buf.Name, buf.Size)
//	}
//
// Sizes follow the layout decorations of the module: a struct's size is
// the offset of its last member plus that member's size, where arrays use
// their ArrayStride and matrices their MatrixStride.
//
// # Binary Writer
//
// ModuleBuilder constructs SPIR-V modules programmatically:
//
//	builder := spirv.NewModuleBuilder(spirv.Version1_3)
//	builder.AddCapability(spirv.CapabilityShader)
//	builder.SetMemoryModel(spirv.AddressingModelLogical, spirv.MemoryModelGLSL450)
//
//	// Add types
//	floatType := builder.AddTypeFloat(32)
//	vec4Type := builder.AddTypeVector(floatType, 4)
//
//	// Build binary
//	binary := builder.Build()
//
// # SPIR-V Structure
//
// SPIR-V modules consist of:
//   - Header (magic, version, generator, bound, schema)
//   - Capabilities (required features)
//   - Extensions (optional extensions)
//   - Extended instruction imports (GLSL.std.450, etc.)
//   - Memory model (addressing and memory model)
//   - Entry points (shader entry functions)
//   - Execution modes (entry point configuration)
//   - Debug information (names, source)
//   - Annotations (decorations)
//   - Types, constants, and global variables
//   - Function definitions
//
// Disassemble prints a module in the style of spirv-dis.
package spirv
