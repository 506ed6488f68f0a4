// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Command spvdis prints a SPIR-V module as text.
//
// Usage:
//
//	spvdis <file.spv>              # spirv-dis style listing
//	spvdis --uniforms <file.spv>   # reflected uniform buffer layouts
package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/gogpu/shadertool/spirv"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var uniforms bool

	cmd := &cobra.Command{
		Use:          "spvdis [--uniforms] <file.spv>",
		Short:        "SPIR-V disassembler",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			words, err := spirv.LoadFile(args[0])
			if err != nil {
				return err
			}
			if uniforms {
				return printUniforms(cmd.OutOrStdout(), words)
			}
			m, err := spirv.Parse(words)
			if err != nil {
				return err
			}
			return spirv.Disassemble(cmd.OutOrStdout(), m)
		},
	}
	cmd.Flags().BoolVar(&uniforms, "uniforms", false, "Print the uniform buffer layouts instead of the instructions")

	return cmd
}

func printUniforms(out io.Writer, words []uint32) error {
	r, err := spirv.Reflect(words)
	if err != nil {
		return err
	}
	buffers, err := r.UniformBuffers()
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	for _, buf := range buffers {
		fmt.Fprintf(w, "%s (set %d, binding %d, %d bytes)\n", buf.Name, buf.DescriptorSet, buf.Binding, buf.Size)
		for _, m := range buf.Type.Members {
			fmt.Fprintf(w, "\t%d\t%s\t%s\t%d\n", m.Offset, m.Name, spirv.DescribeType(m.Type), spirv.DeclaredMemberSize(m))
		}
	}
	return w.Flush()
}
