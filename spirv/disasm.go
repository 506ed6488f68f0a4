// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package spirv

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// hasResultType reports whether an instruction's first two operands are a
// result type ID and a result ID.
func hasResultType(op OpCode) bool {
	switch op {
	case OpUndef, OpExtInst, OpConstantTrue, OpConstantFalse, OpConstant,
		OpConstantComposite, OpConstantNull, OpSpecConstantTrue,
		OpSpecConstantFalse, OpSpecConstant, OpFunction, OpFunctionParameter,
		OpFunctionCall, OpVariable, OpLoad, OpAccessChain:
		return true
	}
	// Composite, image, conversion, arithmetic, relational and bit ops.
	return (op >= 77 && op <= 205 && op != 99) || op == 245 // 99 is OpImageWrite
}

func isTypeDeclaration(op OpCode) bool {
	return op >= OpTypeVoid && op <= OpTypeFunction
}

func id(n uint32) string {
	return fmt.Sprintf("%%_%d", n)
}

func ids(words []uint32) string {
	parts := make([]string, len(words))
	for i, w := range words {
		parts[i] = id(w)
	}
	return strings.Join(parts, " ")
}

func literals(words []uint32) string {
	parts := make([]string, len(words))
	for i, w := range words {
		parts[i] = fmt.Sprintf("%d", w)
	}
	return strings.Join(parts, " ")
}

// Disassemble writes a textual listing of m in the style of spirv-dis.
func Disassemble(out io.Writer, m *Module) error {
	bw := bufio.NewWriter(out)

	fmt.Fprintf(bw, "; SPIR-V\n")
	fmt.Fprintf(bw, "; Version: %s\n", m.Version)
	fmt.Fprintf(bw, "; Generator: 0x%08X\n", m.Generator)
	fmt.Fprintf(bw, "; Bound: %d\n", m.Bound)
	fmt.Fprintf(bw, "; Schema: %d\n\n", m.Schema)

	for _, in := range m.Instructions {
		fmt.Fprintln(bw, formatInstruction(in))
	}

	return bw.Flush()
}

//nolint:gocyclo,cyclop // switch cases for SPIR-V opcodes
func formatInstruction(in Instruction) string {
	const (
		noResult = "               "
		result   = "         "
	)
	ops := in.Words
	name := in.Opcode.String()

	switch {
	case in.Opcode == OpCapability && len(ops) == 1:
		return fmt.Sprintf("%s%s %s", noResult, name, lookup(capabilityNames, ops[0]))

	case in.Opcode == OpExtInstImport && len(ops) >= 1:
		str, _ := DecodeString(ops[1:])
		return fmt.Sprintf("%s%s = %s %q", result, id(ops[0]), name, str)

	case in.Opcode == OpExtension || in.Opcode == OpSourceExtension:
		str, _ := DecodeString(ops)
		return fmt.Sprintf("%s%s %q", noResult, name, str)

	case in.Opcode == OpMemoryModel && len(ops) == 2:
		return fmt.Sprintf("%s%s %s %s", noResult, name,
			lookup(addressingModelNames, ops[0]), lookup(memoryModelNames, ops[1]))

	case in.Opcode == OpEntryPoint && len(ops) >= 3:
		str, strWords := DecodeString(ops[2:])
		line := fmt.Sprintf("%s%s %s %s %q", noResult, name, lookup(executionModelNames, ops[0]), id(ops[1]), str)
		if rest := ops[2+strWords:]; len(rest) > 0 {
			line += " " + ids(rest)
		}
		return line

	case in.Opcode == OpExecutionMode && len(ops) >= 2:
		line := fmt.Sprintf("%s%s %s %s", noResult, name, id(ops[0]), lookup(executionModeNames, ops[1]))
		if len(ops) > 2 {
			line += " " + literals(ops[2:])
		}
		return line

	case in.Opcode == OpName && len(ops) >= 1:
		str, _ := DecodeString(ops[1:])
		return fmt.Sprintf("%s%s %s %q", noResult, name, id(ops[0]), str)

	case in.Opcode == OpMemberName && len(ops) >= 2:
		str, _ := DecodeString(ops[2:])
		return fmt.Sprintf("%s%s %s %d %q", noResult, name, id(ops[0]), ops[1], str)

	case in.Opcode == OpDecorate && len(ops) >= 2:
		line := fmt.Sprintf("%s%s %s %s", noResult, name, id(ops[0]), lookup(decorationNames, ops[1]))
		if Decoration(ops[1]) == DecorationBuiltIn && len(ops) > 2 {
			return line + " " + lookup(builtinNames, ops[2])
		}
		if len(ops) > 2 {
			line += " " + literals(ops[2:])
		}
		return line

	case in.Opcode == OpMemberDecorate && len(ops) >= 3:
		line := fmt.Sprintf("%s%s %s %d %s", noResult, name, id(ops[0]), ops[1], lookup(decorationNames, ops[2]))
		if len(ops) > 3 {
			line += " " + literals(ops[3:])
		}
		return line

	case in.Opcode == OpTypeInt && len(ops) == 3, in.Opcode == OpTypeFloat && len(ops) >= 2:
		return fmt.Sprintf("%s%s = %s %s", result, id(ops[0]), name, literals(ops[1:]))

	case (in.Opcode == OpTypeVector || in.Opcode == OpTypeMatrix) && len(ops) == 3:
		return fmt.Sprintf("%s%s = %s %s %d", result, id(ops[0]), name, id(ops[1]), ops[2])

	case in.Opcode == OpTypeImage && len(ops) >= 7:
		return fmt.Sprintf("%s%s = %s %s %s %s", result, id(ops[0]), name, id(ops[1]),
			lookup(dimNames, ops[2]), literals(ops[3:]))

	case in.Opcode == OpTypePointer && len(ops) == 3:
		return fmt.Sprintf("%s%s = %s %s %s", result, id(ops[0]), name, lookup(storageClassNames, ops[1]), id(ops[2]))

	case isTypeDeclaration(in.Opcode) && len(ops) >= 1:
		line := fmt.Sprintf("%s%s = %s", result, id(ops[0]), name)
		if len(ops) > 1 {
			line += " " + ids(ops[1:])
		}
		return line

	case in.Opcode == OpVariable && len(ops) >= 3:
		line := fmt.Sprintf("%s%s = %s %s %s", result, id(ops[1]), name, id(ops[0]), lookup(storageClassNames, ops[2]))
		if len(ops) > 3 {
			line += " " + id(ops[3])
		}
		return line

	case (in.Opcode == OpConstant || in.Opcode == OpSpecConstant) && len(ops) >= 3:
		return fmt.Sprintf("%s%s = %s %s %s", result, id(ops[1]), name, id(ops[0]), literals(ops[2:]))

	case in.Opcode == OpFunction && len(ops) == 4:
		return fmt.Sprintf("%s%s = %s %s %d %s", result, id(ops[1]), name, id(ops[0]), ops[2], id(ops[3]))

	case in.Opcode == OpLabel && len(ops) == 1:
		return fmt.Sprintf("%s%s = %s", result, id(ops[0]), name)

	case hasResultType(in.Opcode) && len(ops) >= 2:
		line := fmt.Sprintf("%s%s = %s %s", result, id(ops[1]), name, id(ops[0]))
		if len(ops) > 2 {
			line += " " + ids(ops[2:])
		}
		return line

	default:
		line := noResult + name
		if len(ops) > 0 {
			line += " " + ids(ops)
		}
		return line
	}
}

// DescribeType renders a reflected type in GLSL-like notation, for
// diagnostics and reflection dumps.
func DescribeType(t *Type) string {
	var base string
	switch {
	case t.IsArray():
		if t.IsRuntimeArray() {
			return DescribeType(t.Elem) + "[]"
		}
		return fmt.Sprintf("%s[%d]", DescribeType(t.Elem), t.ArrayLength)
	case t.BaseType == BaseStruct:
		return "struct"
	case t.Columns > 1:
		base = fmt.Sprintf("%s mat%dx%d", t.BaseType, t.Columns, t.VecSize)
	case t.VecSize > 1:
		base = fmt.Sprintf("%s vec%d", t.BaseType, t.VecSize)
	default:
		base = t.BaseType.String()
	}
	return base
}
