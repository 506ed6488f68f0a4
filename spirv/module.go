// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package spirv

import (
	"math/bits"
	"strings"
)

// Module is a decoded SPIR-V instruction stream.
type Module struct {
	Version   Version
	Generator uint32
	Bound     uint32
	Schema    uint32

	Instructions []Instruction

	// offsets holds the word index of each instruction's first word.
	offsets []int
}

// Offset returns the word index at which instruction i starts.
func (m *Module) Offset(i int) int {
	return m.offsets[i]
}

// Parse decodes a word buffer into a Module.
//
// A module written with the opposite byte order is detected through the
// magic number and swapped. Instruction operands are not interpreted.
func Parse(words []uint32) (*Module, error) {
	if len(words) < HeaderWords {
		return nil, NewError(ErrInvalidHeader, "module is shorter than its header")
	}

	switch words[0] {
	case MagicNumber:
	case bits.ReverseBytes32(MagicNumber):
		swapped := make([]uint32, len(words))
		for i, w := range words {
			swapped[i] = bits.ReverseBytes32(w)
		}
		words = swapped
	default:
		return nil, errorAt(ErrInvalidHeader, 0, "invalid magic number 0x%08X", words[0])
	}

	m := &Module{
		Version:   versionFromWord(words[1]),
		Generator: words[2],
		Bound:     words[3],
		Schema:    words[4],
	}

	offset := HeaderWords
	for offset < len(words) {
		word := words[offset]
		opcode := OpCode(word & 0xFFFF)
		wordCount := int(word >> 16)

		if wordCount == 0 {
			return nil, errorAt(ErrTruncatedInstruction, offset, "zero word count for opcode %d", opcode)
		}
		if offset+wordCount > len(words) {
			return nil, errorAt(ErrTruncatedInstruction, offset,
				"opcode %d needs %d words, %d left", opcode, wordCount, len(words)-offset)
		}

		m.Instructions = append(m.Instructions, Instruction{
			Opcode: opcode,
			Words:  words[offset+1 : offset+wordCount],
		})
		m.offsets = append(m.offsets, offset)
		offset += wordCount
	}

	return m, nil
}

// DecodeString decodes a null-terminated literal string packed into words
// and returns it with the number of words it occupied.
func DecodeString(words []uint32) (string, int) {
	var sb strings.Builder
	for i, word := range words {
		for shift := 0; shift < 32; shift += 8 {
			b := byte(word >> shift)
			if b == 0 {
				return sb.String(), i + 1
			}
			sb.WriteByte(b)
		}
	}
	return sb.String(), len(words)
}
