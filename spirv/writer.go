// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package spirv

import "math"

// Instruction represents a SPIR-V instruction.
type Instruction struct {
	Opcode OpCode
	Words  []uint32 // result type ID, result ID, operands
}

// Encode encodes the instruction to binary.
func (i Instruction) Encode() []uint32 {
	wordCount := uint32(len(i.Words) + 1) // +1 for opcode word
	result := make([]uint32, 0, wordCount)
	result = append(result, (wordCount<<16)|uint32(i.Opcode))
	result = append(result, i.Words...)
	return result
}

// InstructionBuilder builds SPIR-V instructions.
type InstructionBuilder struct {
	words []uint32
}

// NewInstructionBuilder creates a new instruction builder.
func NewInstructionBuilder() *InstructionBuilder {
	return &InstructionBuilder{
		words: make([]uint32, 0, 8),
	}
}

// AddWord adds a word to the instruction.
func (b *InstructionBuilder) AddWord(words ...uint32) {
	b.words = append(b.words, words...)
}

// AddString adds a null-terminated UTF-8 string, padded to a word boundary.
func (b *InstructionBuilder) AddString(s string) {
	b.words = append(b.words, encodeString(s)...)
}

// Build builds the instruction with the given opcode.
func (b *InstructionBuilder) Build(opcode OpCode) Instruction {
	return Instruction{
		Opcode: opcode,
		Words:  b.words,
	}
}

func encodeString(s string) []uint32 {
	data := append([]byte(s), 0)
	for len(data)%4 != 0 {
		data = append(data, 0)
	}
	return DecodeWords(data)
}

// ModuleBuilder builds complete SPIR-V modules.
//
// Instructions are grouped by logical layout section so callers may add
// them in any order.
type ModuleBuilder struct {
	version   Version
	generator uint32

	capabilities   []Instruction
	extensions     []Instruction
	extInstImports []Instruction
	memoryModel    *Instruction
	entryPoints    []Instruction
	executionModes []Instruction
	debugNames     []Instruction // OpName, OpMemberName
	annotations    []Instruction // OpDecorate, OpMemberDecorate
	types          []Instruction // OpType*, OpConstant*
	globalVars     []Instruction // OpVariable (global)
	functions      []Instruction // OpFunction...OpFunctionEnd

	nextID uint32
}

// NewModuleBuilder creates a new SPIR-V module builder.
func NewModuleBuilder(version Version) *ModuleBuilder {
	return &ModuleBuilder{
		version:   version,
		generator: GeneratorID,
		nextID:    1,
	}
}

// AllocID allocates a new SPIR-V ID.
func (b *ModuleBuilder) AllocID() uint32 {
	id := b.nextID
	b.nextID++
	return id
}

func inst(opcode OpCode, words ...uint32) Instruction {
	return Instruction{Opcode: opcode, Words: words}
}

// addType appends a type or constant instruction whose first operand is
// the new result ID.
func (b *ModuleBuilder) addType(opcode OpCode, operands ...uint32) uint32 {
	id := b.AllocID()
	b.types = append(b.types, inst(opcode, append([]uint32{id}, operands...)...))
	return id
}

// AddCapability adds a capability.
func (b *ModuleBuilder) AddCapability(capability Capability) {
	b.capabilities = append(b.capabilities, inst(OpCapability, uint32(capability)))
}

// AddExtension adds an extension.
func (b *ModuleBuilder) AddExtension(name string) {
	b.extensions = append(b.extensions, inst(OpExtension, encodeString(name)...))
}

// AddExtInstImport imports an extended instruction set.
func (b *ModuleBuilder) AddExtInstImport(name string) uint32 {
	id := b.AllocID()
	b.extInstImports = append(b.extInstImports, inst(OpExtInstImport, append([]uint32{id}, encodeString(name)...)...))
	return id
}

// SetMemoryModel sets the memory model.
func (b *ModuleBuilder) SetMemoryModel(addressing AddressingModel, memory MemoryModel) {
	i := inst(OpMemoryModel, uint32(addressing), uint32(memory))
	b.memoryModel = &i
}

// AddEntryPoint adds an entry point.
func (b *ModuleBuilder) AddEntryPoint(execModel ExecutionModel, funcID uint32, name string, interfaces []uint32) {
	builder := NewInstructionBuilder()
	builder.AddWord(uint32(execModel), funcID)
	builder.AddString(name)
	builder.AddWord(interfaces...)
	b.entryPoints = append(b.entryPoints, builder.Build(OpEntryPoint))
}

// AddExecutionMode adds an execution mode.
func (b *ModuleBuilder) AddExecutionMode(entryPoint uint32, mode ExecutionMode, params ...uint32) {
	b.executionModes = append(b.executionModes, inst(OpExecutionMode, append([]uint32{entryPoint, uint32(mode)}, params...)...))
}

// AddName adds a debug name.
func (b *ModuleBuilder) AddName(id uint32, name string) {
	b.debugNames = append(b.debugNames, inst(OpName, append([]uint32{id}, encodeString(name)...)...))
}

// AddMemberName adds a debug member name.
func (b *ModuleBuilder) AddMemberName(structID, member uint32, name string) {
	b.debugNames = append(b.debugNames, inst(OpMemberName, append([]uint32{structID, member}, encodeString(name)...)...))
}

// AddDecorate adds a decoration.
func (b *ModuleBuilder) AddDecorate(id uint32, decoration Decoration, params ...uint32) {
	b.annotations = append(b.annotations, inst(OpDecorate, append([]uint32{id, uint32(decoration)}, params...)...))
}

// AddMemberDecorate adds a member decoration.
func (b *ModuleBuilder) AddMemberDecorate(structID, member uint32, decoration Decoration, params ...uint32) {
	b.annotations = append(b.annotations, inst(OpMemberDecorate, append([]uint32{structID, member, uint32(decoration)}, params...)...))
}

// AddTypeVoid adds OpTypeVoid.
func (b *ModuleBuilder) AddTypeVoid() uint32 { return b.addType(OpTypeVoid) }

// AddTypeBool adds OpTypeBool.
func (b *ModuleBuilder) AddTypeBool() uint32 { return b.addType(OpTypeBool) }

// AddTypeFloat adds OpTypeFloat.
func (b *ModuleBuilder) AddTypeFloat(width uint32) uint32 { return b.addType(OpTypeFloat, width) }

// AddTypeInt adds OpTypeInt.
func (b *ModuleBuilder) AddTypeInt(width uint32, signed bool) uint32 {
	var signedness uint32
	if signed {
		signedness = 1
	}
	return b.addType(OpTypeInt, width, signedness)
}

// AddTypeVector adds OpTypeVector.
func (b *ModuleBuilder) AddTypeVector(componentType uint32, count uint32) uint32 {
	return b.addType(OpTypeVector, componentType, count)
}

// AddTypeMatrix adds OpTypeMatrix.
func (b *ModuleBuilder) AddTypeMatrix(columnType uint32, columnCount uint32) uint32 {
	return b.addType(OpTypeMatrix, columnType, columnCount)
}

// AddTypeImage adds OpTypeImage with an unknown image format.
func (b *ModuleBuilder) AddTypeImage(sampledType uint32, dim Dim, depth, arrayed, multisampled, sampled uint32) uint32 {
	return b.addType(OpTypeImage, sampledType, uint32(dim), depth, arrayed, multisampled, sampled, 0)
}

// AddTypeSampler adds OpTypeSampler.
func (b *ModuleBuilder) AddTypeSampler() uint32 { return b.addType(OpTypeSampler) }

// AddTypeSampledImage adds OpTypeSampledImage.
func (b *ModuleBuilder) AddTypeSampledImage(imageType uint32) uint32 {
	return b.addType(OpTypeSampledImage, imageType)
}

// AddTypeArray adds OpTypeArray.
func (b *ModuleBuilder) AddTypeArray(elementType uint32, length uint32) uint32 {
	return b.addType(OpTypeArray, elementType, length) // length is a constant ID
}

// AddTypeRuntimeArray adds OpTypeRuntimeArray.
func (b *ModuleBuilder) AddTypeRuntimeArray(elementType uint32) uint32 {
	return b.addType(OpTypeRuntimeArray, elementType)
}

// AddTypeStruct adds OpTypeStruct.
func (b *ModuleBuilder) AddTypeStruct(memberTypes ...uint32) uint32 {
	return b.addType(OpTypeStruct, memberTypes...)
}

// AddTypePointer adds OpTypePointer.
func (b *ModuleBuilder) AddTypePointer(storageClass StorageClass, baseType uint32) uint32 {
	return b.addType(OpTypePointer, uint32(storageClass), baseType)
}

// AddTypeFunction adds OpTypeFunction.
func (b *ModuleBuilder) AddTypeFunction(returnType uint32, paramTypes ...uint32) uint32 {
	return b.addType(OpTypeFunction, append([]uint32{returnType}, paramTypes...)...)
}

// AddConstant adds OpConstant.
func (b *ModuleBuilder) AddConstant(typeID uint32, values ...uint32) uint32 {
	id := b.AllocID()
	b.types = append(b.types, inst(OpConstant, append([]uint32{typeID, id}, values...)...))
	return id
}

// AddConstantFloat32 adds a 32-bit float constant.
func (b *ModuleBuilder) AddConstantFloat32(typeID uint32, value float32) uint32 {
	return b.AddConstant(typeID, math.Float32bits(value))
}

// AddVariable adds OpVariable.
func (b *ModuleBuilder) AddVariable(pointerType uint32, storageClass StorageClass) uint32 {
	id := b.AllocID()
	b.globalVars = append(b.globalVars, inst(OpVariable, pointerType, id, uint32(storageClass)))
	return id
}

// AddFunction adds a function definition.
func (b *ModuleBuilder) AddFunction(funcType uint32, returnType uint32, control FunctionControl) uint32 {
	id := b.AllocID()
	b.functions = append(b.functions, inst(OpFunction, returnType, id, uint32(control), funcType))
	return id
}

// AddLabel adds a label.
func (b *ModuleBuilder) AddLabel() uint32 {
	id := b.AllocID()
	b.functions = append(b.functions, inst(OpLabel, id))
	return id
}

// AddReturn adds OpReturn.
func (b *ModuleBuilder) AddReturn() {
	b.functions = append(b.functions, inst(OpReturn))
}

// AddFunctionEnd adds OpFunctionEnd.
func (b *ModuleBuilder) AddFunctionEnd() {
	b.functions = append(b.functions, inst(OpFunctionEnd))
}

// BuildWords generates the final SPIR-V module as words.
func (b *ModuleBuilder) BuildWords() []uint32 {
	words := []uint32{
		MagicNumber,
		versionToWord(b.version),
		b.generator,
		b.nextID, // bound
		0,        // schema
	}

	sections := [][]Instruction{
		b.capabilities,
		b.extensions,
		b.extInstImports,
	}
	if b.memoryModel != nil {
		sections = append(sections, []Instruction{*b.memoryModel})
	}
	sections = append(sections,
		b.entryPoints,
		b.executionModes,
		b.debugNames,
		b.annotations,
		b.types,
		b.globalVars,
		b.functions,
	)

	for _, section := range sections {
		for _, i := range section {
			words = append(words, i.Encode()...)
		}
	}
	return words
}

// Build generates the final SPIR-V binary.
func (b *ModuleBuilder) Build() []byte {
	return EncodeWords(b.BuildWords())
}
