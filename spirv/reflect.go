// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package spirv

import "fmt"

// EntryPoint is a reflected OpEntryPoint.
type EntryPoint struct {
	Name     string
	Model    ExecutionModel
	Function uint32
}

// UniformBuffer is a uniform block resource discovered in a module.
type UniformBuffer struct {
	// VariableID is the result ID of the OpVariable.
	VariableID uint32

	// Name is the block type name, or "_<VariableID>" if the block is unnamed.
	Name string

	DescriptorSet uint32
	Binding       uint32

	// Type is the block struct type, with any array dimensions of the
	// variable removed.
	Type *Type

	// Size is the declared size of the block in bytes.
	Size uint32
}

type pointer struct {
	storage StorageClass
	pointee uint32
}

type variable struct {
	id      uint32
	typeID  uint32
	storage StorageClass
}

type decorationSet map[Decoration][]uint32

func (d decorationSet) has(dec Decoration) bool {
	_, ok := d[dec]
	return ok
}

func (d decorationSet) literal(dec Decoration) uint32 {
	if v := d[dec]; len(v) > 0 {
		return v[0]
	}
	return 0
}

// Reflection holds resource and type metadata extracted from a module.
type Reflection struct {
	module *Module

	names             map[uint32]string
	memberNames       map[uint32]map[uint32]string
	decorations       map[uint32]decorationSet
	memberDecorations map[uint32]map[uint32]decorationSet

	typeDefs  map[uint32]int // result ID -> instruction index
	types     map[uint32]*Type
	resolving map[uint32]bool
	constants map[uint32]uint32
	pointers  map[uint32]pointer
	variables []variable

	entryPoints []EntryPoint
}

// Reflect parses words and collects reflection data.
func Reflect(words []uint32) (*Reflection, error) {
	module, err := Parse(words)
	if err != nil {
		return nil, err
	}
	return ReflectModule(module)
}

// ReflectModule collects reflection data from an already parsed module.
func ReflectModule(module *Module) (*Reflection, error) {
	r := &Reflection{
		module:            module,
		names:             make(map[uint32]string),
		memberNames:       make(map[uint32]map[uint32]string),
		decorations:       make(map[uint32]decorationSet),
		memberDecorations: make(map[uint32]map[uint32]decorationSet),
		typeDefs:          make(map[uint32]int),
		types:             make(map[uint32]*Type),
		resolving:         make(map[uint32]bool),
		constants:         make(map[uint32]uint32),
		pointers:          make(map[uint32]pointer),
	}

	for i, in := range module.Instructions {
		if err := r.scan(i, in); err != nil {
			return nil, err
		}
	}
	return r, nil
}

//nolint:gocyclo,cyclop // one case per instruction of interest
func (r *Reflection) scan(index int, in Instruction) error {
	w := in.Words
	need := func(n int) error {
		if len(w) < n {
			return errorAt(ErrInvalidOperand, r.module.Offset(index),
				"opcode %d has %d operands, want at least %d", in.Opcode, len(w), n)
		}
		return nil
	}

	switch in.Opcode {
	case OpName:
		if err := need(1); err != nil {
			return err
		}
		r.names[w[0]], _ = DecodeString(w[1:])

	case OpMemberName:
		if err := need(2); err != nil {
			return err
		}
		if r.memberNames[w[0]] == nil {
			r.memberNames[w[0]] = make(map[uint32]string)
		}
		r.memberNames[w[0]][w[1]], _ = DecodeString(w[2:])

	case OpDecorate:
		if err := need(2); err != nil {
			return err
		}
		if r.decorations[w[0]] == nil {
			r.decorations[w[0]] = make(decorationSet)
		}
		r.decorations[w[0]][Decoration(w[1])] = w[2:]

	case OpMemberDecorate:
		if err := need(3); err != nil {
			return err
		}
		members := r.memberDecorations[w[0]]
		if members == nil {
			members = make(map[uint32]decorationSet)
			r.memberDecorations[w[0]] = members
		}
		if members[w[1]] == nil {
			members[w[1]] = make(decorationSet)
		}
		members[w[1]][Decoration(w[2])] = w[3:]

	case OpEntryPoint:
		if err := need(3); err != nil {
			return err
		}
		name, _ := DecodeString(w[2:])
		r.entryPoints = append(r.entryPoints, EntryPoint{
			Name:     name,
			Model:    ExecutionModel(w[0]),
			Function: w[1],
		})

	case OpTypeVoid, OpTypeBool, OpTypeInt, OpTypeFloat, OpTypeVector,
		OpTypeMatrix, OpTypeImage, OpTypeSampler, OpTypeSampledImage,
		OpTypeArray, OpTypeRuntimeArray, OpTypeStruct, OpTypeOpaque:
		if err := need(1); err != nil {
			return err
		}
		r.typeDefs[w[0]] = index

	case OpTypePointer:
		if err := need(3); err != nil {
			return err
		}
		r.pointers[w[0]] = pointer{storage: StorageClass(w[1]), pointee: w[2]}

	case OpConstant, OpSpecConstant:
		if err := need(3); err != nil {
			return err
		}
		r.constants[w[1]] = w[2]

	case OpVariable:
		if err := need(3); err != nil {
			return err
		}
		r.variables = append(r.variables, variable{id: w[1], typeID: w[0], storage: StorageClass(w[2])})
	}
	return nil
}

// Module returns the parsed module backing the reflection.
func (r *Reflection) Module() *Module {
	return r.module
}

// Name returns the debug name of id, or "" if it has none.
func (r *Reflection) Name(id uint32) string {
	return r.names[id]
}

// MemberName returns the debug name of a struct member, or "" if it has none.
func (r *Reflection) MemberName(structID, member uint32) string {
	return r.memberNames[structID][member]
}

// EntryPoints returns the module's entry points in declaration order.
func (r *Reflection) EntryPoints() []EntryPoint {
	return r.entryPoints
}

// Type resolves the type with the given result ID.
func (r *Reflection) Type(id uint32) (*Type, error) {
	if t, ok := r.types[id]; ok {
		return t, nil
	}
	index, ok := r.typeDefs[id]
	if !ok {
		return nil, NewError(ErrUnknownID, fmt.Sprintf("type %%%d is not defined", id))
	}
	if r.resolving[id] {
		return nil, errorAt(ErrInvalidOperand, r.module.Offset(index), "type %%%d refers to itself", id)
	}
	r.resolving[id] = true
	defer delete(r.resolving, id)

	t, err := r.buildType(index, r.module.Instructions[index])
	if err != nil {
		return nil, err
	}
	r.types[id] = t
	return t, nil
}

//nolint:gocyclo,cyclop // one case per type opcode
func (r *Reflection) buildType(index int, in Instruction) (*Type, error) {
	w := in.Words
	t := &Type{ID: w[0], VecSize: 1, Columns: 1}
	need := func(n int) error {
		if len(w) < n {
			return errorAt(ErrInvalidOperand, r.module.Offset(index),
				"type %%%d has %d operands, want %d", w[0], len(w), n)
		}
		return nil
	}

	switch in.Opcode {
	case OpTypeVoid:
		t.BaseType = BaseVoid

	case OpTypeBool:
		t.BaseType = BaseBoolean
		t.Width = 32

	case OpTypeInt:
		if err := need(3); err != nil {
			return nil, err
		}
		t.Width = w[1]
		t.BaseType = intBaseType(w[1], w[2] != 0)

	case OpTypeFloat:
		if err := need(2); err != nil {
			return nil, err
		}
		t.Width = w[1]
		switch w[1] {
		case 16:
			t.BaseType = BaseHalf
		case 32:
			t.BaseType = BaseFloat
		case 64:
			t.BaseType = BaseDouble
		}

	case OpTypeVector, OpTypeMatrix:
		if err := need(3); err != nil {
			return nil, err
		}
		component, err := r.Type(w[1])
		if err != nil {
			return nil, err
		}
		*t = *component
		t.ID = w[0]
		if in.Opcode == OpTypeVector {
			t.VecSize = w[2]
		} else {
			t.Columns = w[2]
		}

	case OpTypeArray, OpTypeRuntimeArray:
		if err := need(2); err != nil {
			return nil, err
		}
		elem, err := r.Type(w[1])
		if err != nil {
			return nil, err
		}
		*t = Type{
			ID:       w[0],
			BaseType: elem.BaseType,
			Width:    elem.Width,
			VecSize:  elem.VecSize,
			Columns:  elem.Columns,
			Elem:     elem,
			Members:  elem.Members,
		}
		if in.Opcode == OpTypeArray {
			if err := need(3); err != nil {
				return nil, err
			}
			length, ok := r.constants[w[2]]
			if !ok {
				return nil, errorAt(ErrUnknownID, r.module.Offset(index),
					"array %%%d length constant %%%d is not defined", w[0], w[2])
			}
			t.ArrayLength = length
		}
		t.ArrayStride = r.decorations[w[0]].literal(DecorationArrayStride)

	case OpTypeStruct:
		t.BaseType = BaseStruct
		decs := r.decorations[w[0]]
		t.Block = decs.has(DecorationBlock)
		t.BufferBlock = decs.has(DecorationBufferBlock)
		for i, memberID := range w[1:] {
			memberType, err := r.Type(memberID)
			if err != nil {
				return nil, err
			}
			md := r.memberDecorations[w[0]][uint32(i)]
			t.Members = append(t.Members, StructMember{
				Name:         r.MemberName(w[0], uint32(i)),
				Type:         memberType,
				Offset:       md.literal(DecorationOffset),
				MatrixStride: md.literal(DecorationMatrixStride),
				RowMajor:     md.has(DecorationRowMajor),
			})
		}

	case OpTypeImage:
		t.BaseType = BaseImage

	case OpTypeSampledImage:
		t.BaseType = BaseSampledImage

	case OpTypeSampler:
		t.BaseType = BaseSampler
	}

	return t, nil
}

func intBaseType(width uint32, signed bool) BaseType {
	switch {
	case width == 8 && signed:
		return BaseSByte
	case width == 8:
		return BaseUByte
	case width == 16 && signed:
		return BaseShort
	case width == 16:
		return BaseUShort
	case width == 32 && signed:
		return BaseInt
	case width == 32:
		return BaseUInt
	case width == 64 && signed:
		return BaseInt64
	case width == 64:
		return BaseUInt64
	default:
		return BaseUnknown
	}
}

// UniformBuffers returns the module's uniform blocks in declaration order.
// A uniform block is a Uniform storage class variable whose pointee, after
// removing array dimensions, is a struct decorated with Block.
func (r *Reflection) UniformBuffers() ([]UniformBuffer, error) {
	var buffers []UniformBuffer

	for _, v := range r.variables {
		if v.storage != StorageClassUniform {
			continue
		}
		ptr, ok := r.pointers[v.typeID]
		if !ok {
			return nil, NewError(ErrUnknownID, fmt.Sprintf("variable %%%d has undefined pointer type %%%d", v.id, v.typeID))
		}
		t, err := r.Type(ptr.pointee)
		if err != nil {
			return nil, err
		}
		for t.IsArray() {
			t = t.Elem
		}
		if t.BaseType != BaseStruct || !t.Block {
			continue
		}

		name := r.Name(t.ID)
		if name == "" {
			name = fmt.Sprintf("_%d", v.id)
		}
		decs := r.decorations[v.id]
		buffers = append(buffers, UniformBuffer{
			VariableID:    v.id,
			Name:          name,
			DescriptorSet: decs.literal(DecorationDescriptorSet),
			Binding:       decs.literal(DecorationBinding),
			Type:          t,
			Size:          DeclaredStructSize(t),
		})
	}

	return buffers, nil
}
