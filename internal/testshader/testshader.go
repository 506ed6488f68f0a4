// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package testshader builds small SPIR-V modules with uniform blocks for
// tests.
package testshader

import (
	"fmt"

	"github.com/gogpu/shadertool/spirv"
)

// Kind is the scalar kind of a member type.
type Kind uint8

const (
	KindFloat Kind = iota
	KindInt
	KindUInt
	KindBool
	KindSampledImage
	KindStruct
)

// TypeSpec describes the type of a block member.
type TypeSpec struct {
	Kind    Kind
	Width   uint32
	VecSize uint32
	Columns uint32

	// ArrayLength makes the member a sized array of the type.
	ArrayLength uint32
	ArrayStride uint32

	// Fields are the members of a KindStruct type.
	Fields []Member
}

// Common member types.
var (
	Float  = TypeSpec{Kind: KindFloat, Width: 32}
	Double = TypeSpec{Kind: KindFloat, Width: 64}
	Half   = TypeSpec{Kind: KindFloat, Width: 16}
	Int    = TypeSpec{Kind: KindInt, Width: 32}
	UInt   = TypeSpec{Kind: KindUInt, Width: 32}
	Bool   = TypeSpec{Kind: KindBool}

	Sampler2D = TypeSpec{Kind: KindSampledImage}
)

// Vec returns a float vector type with n components.
func Vec(n uint32) TypeSpec {
	return TypeSpec{Kind: KindFloat, Width: 32, VecSize: n}
}

// IVec returns a signed integer vector type with n components.
func IVec(n uint32) TypeSpec {
	return TypeSpec{Kind: KindInt, Width: 32, VecSize: n}
}

// Mat returns a float matrix type with the given column and row counts.
func Mat(columns, rows uint32) TypeSpec {
	return TypeSpec{Kind: KindFloat, Width: 32, VecSize: rows, Columns: columns}
}

// Scalar returns an integer or float scalar of the given width.
func Scalar(kind Kind, width uint32) TypeSpec {
	return TypeSpec{Kind: kind, Width: width}
}

// Array returns t as a sized array.
func Array(t TypeSpec, length, stride uint32) TypeSpec {
	t.ArrayLength = length
	t.ArrayStride = stride
	return t
}

// Struct returns a nested struct type.
func Struct(fields ...Member) TypeSpec {
	return TypeSpec{Kind: KindStruct, Fields: fields}
}

// Member is a uniform block member with its declared offset.
type Member struct {
	Name   string
	Type   TypeSpec
	Offset uint32
}

// Block is a uniform block. An empty Name leaves the block type unnamed.
type Block struct {
	Name     string
	Instance string
	Members  []Member
}

type builder struct {
	mb    *spirv.ModuleBuilder
	cache map[string]uint32
}

func (b *builder) cached(key string, create func() uint32) uint32 {
	if id, ok := b.cache[key]; ok {
		return id
	}
	id := create()
	b.cache[key] = id
	return id
}

func (b *builder) scalar(t TypeSpec) uint32 {
	switch t.Kind {
	case KindFloat:
		return b.cached(fmt.Sprintf("f%d", t.Width), func() uint32 { return b.mb.AddTypeFloat(t.Width) })
	case KindInt:
		return b.cached(fmt.Sprintf("i%d", t.Width), func() uint32 { return b.mb.AddTypeInt(t.Width, true) })
	case KindUInt:
		return b.cached(fmt.Sprintf("u%d", t.Width), func() uint32 { return b.mb.AddTypeInt(t.Width, false) })
	case KindBool:
		return b.cached("bool", b.mb.AddTypeBool)
	case KindSampledImage:
		return b.cached("sampler2D", func() uint32 {
			image := b.mb.AddTypeImage(b.scalar(Float), spirv.Dim2D, 0, 0, 0, 1)
			return b.mb.AddTypeSampledImage(image)
		})
	}
	panic(fmt.Sprintf("testshader: unknown kind %d", t.Kind))
}

func (b *builder) typeID(t TypeSpec) uint32 {
	if t.ArrayLength > 0 {
		elem := t
		elem.ArrayLength, elem.ArrayStride = 0, 0
		length := b.mb.AddConstant(b.scalar(UInt), t.ArrayLength)
		id := b.mb.AddTypeArray(b.typeID(elem), length)
		if t.ArrayStride > 0 {
			b.mb.AddDecorate(id, spirv.DecorationArrayStride, t.ArrayStride)
		}
		return id
	}

	if t.Kind == KindStruct {
		return b.structType("", t.Fields)
	}

	id := b.scalar(t)
	if t.VecSize > 1 {
		vec := id
		id = b.cached(fmt.Sprintf("v%d-%d", vec, t.VecSize), func() uint32 { return b.mb.AddTypeVector(vec, t.VecSize) })
	}
	if t.Columns > 1 {
		col := id
		id = b.cached(fmt.Sprintf("m%d-%d", col, t.Columns), func() uint32 { return b.mb.AddTypeMatrix(col, t.Columns) })
	}
	return id
}

func (b *builder) structType(name string, members []Member) uint32 {
	memberTypes := make([]uint32, len(members))
	for i, m := range members {
		memberTypes[i] = b.typeID(m.Type)
	}

	id := b.mb.AddTypeStruct(memberTypes...)
	if name != "" {
		b.mb.AddName(id, name)
	}
	for i, m := range members {
		idx := uint32(i)
		if m.Name != "" {
			b.mb.AddMemberName(id, idx, m.Name)
		}
		b.mb.AddMemberDecorate(id, idx, spirv.DecorationOffset, m.Offset)
		if m.Type.Columns > 1 {
			b.mb.AddMemberDecorate(id, idx, spirv.DecorationColMajor)
			b.mb.AddMemberDecorate(id, idx, spirv.DecorationMatrixStride, 16)
		}
	}
	return id
}

// Module builds a shader module with one entry point of the given stage and
// one uniform block variable per block, bound at set 0 in order.
func Module(stage spirv.ExecutionModel, blocks ...Block) []uint32 {
	b := &builder{
		mb:    spirv.NewModuleBuilder(spirv.Version1_0),
		cache: make(map[string]uint32),
	}
	b.mb.AddCapability(spirv.CapabilityShader)
	b.mb.SetMemoryModel(spirv.AddressingModelLogical, spirv.MemoryModelGLSL450)

	voidType := b.mb.AddTypeVoid()
	fnType := b.mb.AddTypeFunction(voidType)

	for i, block := range blocks {
		structID := b.structType(block.Name, block.Members)
		b.mb.AddDecorate(structID, spirv.DecorationBlock)

		ptr := b.mb.AddTypePointer(spirv.StorageClassUniform, structID)
		variable := b.mb.AddVariable(ptr, spirv.StorageClassUniform)
		if block.Instance != "" {
			b.mb.AddName(variable, block.Instance)
		}
		b.mb.AddDecorate(variable, spirv.DecorationDescriptorSet, 0)
		b.mb.AddDecorate(variable, spirv.DecorationBinding, uint32(i))
	}

	fn := b.mb.AddFunction(fnType, voidType, spirv.FunctionControlNone)
	b.mb.AddLabel()
	b.mb.AddReturn()
	b.mb.AddFunctionEnd()
	b.mb.AddName(fn, "main")
	b.mb.AddEntryPoint(stage, fn, "main", nil)
	if stage == spirv.ExecutionModelFragment {
		b.mb.AddExecutionMode(fn, spirv.ExecutionModeOriginUpperLeft)
	}

	return b.mb.BuildWords()
}

// Params is the block `Params { float a; vec3 b; }` laid out with std140
// rules: a at 0 and b at 16, 28 bytes in total.
var Params = Block{
	Name:     "Params",
	Instance: "params",
	Members: []Member{
		{Name: "a", Type: Float, Offset: 0},
		{Name: "b", Type: Vec(3), Offset: 16},
	},
}

// ParamsShader returns a fragment shader using the Params block.
func ParamsShader() []uint32 {
	return Module(spirv.ExecutionModelFragment, Params)
}
