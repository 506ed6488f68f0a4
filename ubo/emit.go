// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package ubo

import (
	"fmt"
	"io"
	"strings"

	"github.com/gogpu/shadertool/spirv"
)

// Preamble starts every generated header.
const Preamble = "\n#pragma once\n\n#include <cstdint>\n#include <array>\n\n"

// Generate returns the header declaring one struct per uniform buffer, in
// the order given. Nothing is returned if any block fails to lay out.
func Generate(shaderPath string, buffers []spirv.UniformBuffer) ([]byte, error) {
	layouts := make([]*Layout, 0, len(buffers))
	for _, buf := range buffers {
		l, err := Compute(shaderPath, buf)
		if err != nil {
			return nil, err
		}
		layouts = append(layouts, l)
	}

	var sb strings.Builder
	sb.WriteString(Preamble)
	for _, l := range layouts {
		if err := WriteLayout(&sb, l); err != nil {
			return nil, err
		}
	}
	return []byte(sb.String()), nil
}

// WriteLayout writes the struct declaration of l followed by the
// static_asserts checking its size and member offsets.
func WriteLayout(w io.Writer, l *Layout) error {
	var sb strings.Builder

	fmt.Fprintf(&sb, "struct %s {\n", l.Name)
	for _, f := range l.Fields {
		if f.Padding {
			fmt.Fprintf(&sb, "\t%s %s[%d];\n", f.Type, f.Name, f.Size)
			continue
		}
		fmt.Fprintf(&sb, "\t%s %s;\n", f.Type, f.Name)
	}
	sb.WriteString("};\n")

	fmt.Fprintf(&sb, "static_assert(sizeof(%s) == %d, \"Size of struct %s does not match what is expected for the uniform block!\");\n",
		l.Name, l.Size, l.Name)
	for _, f := range l.Members() {
		fmt.Fprintf(&sb, "static_assert(offsetof(%s, %s) == %d, \"Offset of member %s does not match the uniform buffer offset!\");\n",
			l.Name, f.Name, f.Offset, f.Name)
	}

	_, err := io.WriteString(w, sb.String())
	return err
}
