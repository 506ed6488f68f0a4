// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package ubo

import (
	"fmt"

	"github.com/gogpu/shadertool/spirv"
)

// scalarTypes maps SPIR-V base types to C++ types. Booleans are emitted as
// 32-bit integers so their size does not depend on the host compiler.
var scalarTypes = map[spirv.BaseType]string{
	spirv.BaseBoolean: "std::uint32_t",
	spirv.BaseSByte:   "std::int8_t",
	spirv.BaseUByte:   "std::uint8_t",
	spirv.BaseShort:   "std::int16_t",
	spirv.BaseUShort:  "std::uint16_t",
	spirv.BaseInt:     "std::int32_t",
	spirv.BaseUInt:    "std::uint32_t",
	spirv.BaseInt64:   "std::int64_t",
	spirv.BaseUInt64:  "std::uint64_t",
	spirv.BaseFloat:   "float",
	spirv.BaseDouble:  "double",
}

// scalarSize returns the host byte size of one component.
func scalarSize(base spirv.BaseType) (uint32, bool) {
	switch base {
	case spirv.BaseSByte, spirv.BaseUByte:
		return 1, true
	case spirv.BaseShort, spirv.BaseUShort:
		return 2, true
	case spirv.BaseBoolean, spirv.BaseInt, spirv.BaseUInt, spirv.BaseFloat:
		return 4, true
	case spirv.BaseInt64, spirv.BaseUInt64, spirv.BaseDouble:
		return 8, true
	default:
		return 0, false
	}
}

// CppType returns the C++ spelling of t and the number of bytes it occupies
// in the generated struct.
func CppType(t *spirv.Type) (string, uint32, error) {
	if t.IsArray() {
		return arrayType(t)
	}

	name, ok := scalarTypes[t.BaseType]
	if !ok {
		return "", 0, unsupported(ErrUnsupportedType, "unsupported type %s in uniform buffer", t.BaseType)
	}
	size, _ := scalarSize(t.BaseType)
	size *= t.VecSize * t.Columns

	if t.VecSize == 1 && t.Columns == 1 {
		return name, size, nil
	}
	if t.BaseType != spirv.BaseFloat {
		return "", 0, unsupported(ErrUnsupportedType, "unsupported %s vector or matrix type", t.BaseType)
	}
	if t.Columns == 1 {
		return fmt.Sprintf("SPIRV_FLOAT_VEC%d", t.VecSize), size, nil
	}
	return fmt.Sprintf("SPIRV_FLOAT_MAT_%dx%d", t.VecSize, t.Columns), size, nil
}

// arrayType maps a sized array to std::array. The element stride must match
// the element's host size, otherwise the elements would not line up.
func arrayType(t *spirv.Type) (string, uint32, error) {
	if t.IsRuntimeArray() {
		return "", 0, unsupported(ErrUnsupportedArray, "runtime arrays are not supported")
	}

	elem, size, err := CppType(t.Elem)
	if err != nil {
		return "", 0, err
	}
	if t.ArrayStride != 0 && t.ArrayStride != size {
		return "", 0, unsupported(ErrUnsupportedArray,
			"array stride %d does not match element size %d", t.ArrayStride, size)
	}
	return fmt.Sprintf("std::array<%s, %d>", elem, t.ArrayLength), size * t.ArrayLength, nil
}
