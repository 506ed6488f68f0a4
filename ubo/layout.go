// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package ubo

import (
	"errors"
	"fmt"

	"github.com/gogpu/shadertool/spirv"
)

// Field is one field of a generated struct.
type Field struct {
	Name string
	Type string

	// Size is the host byte size of the field.
	Size uint32

	// Offset is the byte offset of the field within the struct.
	Offset uint32

	// Padding marks fields inserted to reach the next declared offset.
	Padding bool
}

// Layout is a C++ struct mirroring one uniform block.
type Layout struct {
	Name string

	// Size is the declared size of the uniform block.
	Size uint32

	Fields []Field
}

// Members returns the non-padding fields in declaration order.
func (l *Layout) Members() []Field {
	members := make([]Field, 0, len(l.Fields))
	for _, f := range l.Fields {
		if !f.Padding {
			members = append(members, f)
		}
	}
	return members
}

// Compute lays out the struct for a uniform buffer declared in the shader
// at shaderPath. Padding fields are inserted wherever a member's declared
// offset is past the end of the previous member, and at the end if the
// members do not cover the declared size.
func Compute(shaderPath string, buf spirv.UniformBuffer) (*Layout, error) {
	l := &Layout{
		Name: StructName(buf.Name, shaderPath),
		Size: buf.Size,
	}

	var offset uint32
	var pads int
	pad := func(size uint32) {
		l.Fields = append(l.Fields, Field{
			Name:    fmt.Sprintf("_padding%d", pads),
			Type:    "uint8_t",
			Size:    size,
			Offset:  offset,
			Padding: true,
		})
	}

	for i, m := range buf.Type.Members {
		name := m.Name
		if name == "" {
			name = fmt.Sprintf("_m%d", i)
		}

		cppType, size, err := CppType(m.Type)
		if err != nil {
			var te *typeError
			if errors.As(err, &te) {
				return nil, &Error{Kind: te.kind, Block: buf.Name, Member: name, Message: te.message}
			}
			return nil, err
		}

		if m.Offset > offset {
			pad(m.Offset - offset)
			pads++
			offset = m.Offset
		}

		l.Fields = append(l.Fields, Field{
			Name:   name,
			Type:   cppType,
			Size:   size,
			Offset: m.Offset,
		})
		offset += size
	}

	if offset < l.Size {
		pad(l.Size - offset)
	}

	return l, nil
}
