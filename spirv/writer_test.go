// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package spirv

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModuleBuilder_MinimalModule(t *testing.T) {
	builder := NewModuleBuilder(Version1_3)
	builder.AddCapability(CapabilityShader)
	builder.SetMemoryModel(AddressingModelLogical, MemoryModelGLSL450)

	data := builder.Build()
	require.GreaterOrEqual(t, len(data), 20, "module must contain a header")

	assert.Equal(t, uint32(MagicNumber), binary.LittleEndian.Uint32(data[0:4]), "magic")
	assert.Equal(t, uint32(1<<16|3<<8), binary.LittleEndian.Uint32(data[4:8]), "version")
	assert.Equal(t, uint32(GeneratorID), binary.LittleEndian.Uint32(data[8:12]), "generator")
	assert.NotZero(t, binary.LittleEndian.Uint32(data[12:16]), "bound")
	assert.Zero(t, binary.LittleEndian.Uint32(data[16:20]), "schema")
}

func TestModuleBuilder_SectionOrder(t *testing.T) {
	builder := NewModuleBuilder(Version1_0)

	// Add out of layout order; Build must still emit logical layout order.
	floatType := builder.AddTypeFloat(32)
	builder.AddName(floatType, "float")
	builder.SetMemoryModel(AddressingModelLogical, MemoryModelGLSL450)
	builder.AddCapability(CapabilityShader)

	m, err := Parse(builder.BuildWords())
	require.NoError(t, err)

	var opcodes []OpCode
	for _, in := range m.Instructions {
		opcodes = append(opcodes, in.Opcode)
	}
	assert.Equal(t, []OpCode{OpCapability, OpMemoryModel, OpName, OpTypeFloat}, opcodes)
}

func TestModuleBuilder_IDAllocation(t *testing.T) {
	builder := NewModuleBuilder(Version1_3)

	id1 := builder.AllocID()
	id2 := builder.AllocID()
	id3 := builder.AllocID()

	assert.NotZero(t, id1, "IDs should never be 0")
	assert.Less(t, id1, id2)
	assert.Less(t, id2, id3)

	m, err := Parse(builder.BuildWords())
	require.NoError(t, err)
	assert.Equal(t, id3+1, m.Bound, "bound is one past the largest ID")
}

func TestInstructionBuilder_String(t *testing.T) {
	tests := []struct {
		in    string
		words int
	}{
		{"", 1},
		{"abc", 1},
		{"main", 2},
		{"hello", 2},
		{"GLSL.std.450", 4},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			builder := NewInstructionBuilder()
			builder.AddString(tt.in)
			inst := builder.Build(OpName)

			encoded := inst.Encode()
			assert.Equal(t, OpName, OpCode(encoded[0]&0xFFFF))
			assert.Equal(t, uint32(tt.words+1), encoded[0]>>16)

			got, n := DecodeString(inst.Words)
			assert.Equal(t, tt.in, got)
			assert.Equal(t, tt.words, n)
		})
	}
}
