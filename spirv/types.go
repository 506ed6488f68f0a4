// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package spirv

// BaseType is the fundamental kind of a reflected type. Vectors, matrices
// and arrays share the base type of their scalar element.
type BaseType uint8

const (
	BaseUnknown BaseType = iota
	BaseVoid
	BaseBoolean
	BaseSByte
	BaseUByte
	BaseShort
	BaseUShort
	BaseInt
	BaseUInt
	BaseInt64
	BaseUInt64
	BaseHalf
	BaseFloat
	BaseDouble
	BaseStruct
	BaseImage
	BaseSampledImage
	BaseSampler
)

var baseTypeNames = [...]string{
	BaseUnknown:      "Unknown",
	BaseVoid:         "Void",
	BaseBoolean:      "Boolean",
	BaseSByte:        "SByte",
	BaseUByte:        "UByte",
	BaseShort:        "Short",
	BaseUShort:       "UShort",
	BaseInt:          "Int",
	BaseUInt:         "UInt",
	BaseInt64:        "Int64",
	BaseUInt64:       "UInt64",
	BaseHalf:         "Half",
	BaseFloat:        "Float",
	BaseDouble:       "Double",
	BaseStruct:       "Struct",
	BaseImage:        "Image",
	BaseSampledImage: "SampledImage",
	BaseSampler:      "Sampler",
}

func (t BaseType) String() string {
	if int(t) < len(baseTypeNames) {
		return baseTypeNames[t]
	}
	return "Unknown"
}

// Type is a reflected SPIR-V type.
type Type struct {
	// ID is the result ID of the defining OpType* instruction.
	ID uint32

	BaseType BaseType

	// Width is the scalar width in bits. Booleans report 32, the size
	// they occupy in externally visible buffers.
	Width uint32

	// VecSize is the component count, 1 for scalars.
	VecSize uint32

	// Columns is the matrix column count, 1 for non-matrices.
	Columns uint32

	// Elem is the element type of an array; nil for non-arrays.
	Elem *Type

	// ArrayLength is the element count of a sized array, 0 for runtime arrays.
	ArrayLength uint32

	// ArrayStride is the ArrayStride decoration of an array type.
	ArrayStride uint32

	// Members lists the members of a struct type.
	Members []StructMember

	// Block and BufferBlock mirror the struct decorations of the same name.
	Block       bool
	BufferBlock bool
}

// StructMember is one member of a struct type.
type StructMember struct {
	Name string
	Type *Type

	// Offset is the member's byte offset as declared by the Offset decoration.
	Offset uint32

	MatrixStride uint32
	RowMajor     bool
}

// IsArray reports whether t is a sized or runtime array.
func (t *Type) IsArray() bool {
	return t.Elem != nil
}

// IsRuntimeArray reports whether t is an array without a declared length.
func (t *Type) IsRuntimeArray() bool {
	return t.Elem != nil && t.ArrayLength == 0
}

// IsScalar reports whether t is a single non-composite value.
func (t *Type) IsScalar() bool {
	return !t.IsArray() && t.BaseType != BaseStruct && t.VecSize == 1 && t.Columns == 1
}

// DeclaredStructSize returns the byte size of a struct as declared by its
// member offsets: the offset of the last member plus that member's size.
func DeclaredStructSize(t *Type) uint32 {
	if len(t.Members) == 0 {
		return 0
	}
	last := t.Members[len(t.Members)-1]
	return last.Offset + DeclaredMemberSize(last)
}

// DeclaredMemberSize returns the byte size a struct member occupies under
// the layout decorations of the module.
func DeclaredMemberSize(m StructMember) uint32 {
	return declaredSize(m.Type, m.MatrixStride, m.RowMajor)
}

func declaredSize(t *Type, matrixStride uint32, rowMajor bool) uint32 {
	if t.IsArray() {
		if t.ArrayLength == 0 {
			return 0
		}
		if t.ArrayStride != 0 {
			return t.ArrayStride * t.ArrayLength
		}
		return declaredSize(t.Elem, matrixStride, rowMajor) * t.ArrayLength
	}

	if t.BaseType == BaseStruct {
		return DeclaredStructSize(t)
	}

	component := t.Width / 8
	if t.Columns == 1 {
		return component * t.VecSize
	}
	if matrixStride == 0 {
		return component * t.VecSize * t.Columns
	}
	if rowMajor {
		return matrixStride * t.VecSize
	}
	return matrixStride * t.Columns
}
