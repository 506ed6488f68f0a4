// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package processor

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"

	"github.com/gogpu/shadertool/internal/logging/logfields"
	"github.com/gogpu/shadertool/spirv"
	"github.com/gogpu/shadertool/ubo"
)

// StructsName is the name of the uniform structs processor.
const StructsName = "structs"

// Structs writes a C++ header with one struct per uniform buffer.
type Structs struct {
	base
}

// NewStructs returns the uniform structs processor.
func NewStructs() *Structs {
	return &Structs{
		base: base{
			name:        StructsName,
			description: "Output C++ structs for uniform buffer types",
		},
	}
}

// AddFlags registers --structs and --structs-output.
func (p *Structs) AddFlags(flags *pflag.FlagSet) {
	p.addEnableFlag(flags)
	flags.String(StructsOutputKey, "", "Path of the file to write the C++ structs to")
}

// ProcessShader reflects the uniform buffers of code and writes the header.
// Nothing is written if any buffer contains an unsupported member.
func (p *Structs) ProcessShader(ctx context.Context, shaderPath string, code []uint32, cfg *Config) error {
	r, err := spirv.Reflect(code)
	if err != nil {
		return fmt.Errorf("failed to reflect shader: %w", err)
	}
	buffers, err := r.UniformBuffers()
	if err != nil {
		return fmt.Errorf("failed to reflect uniform buffers: %w", err)
	}

	for _, buf := range buffers {
		log.WithFields(logrus.Fields{
			logfields.Processor: p.Name(),
			logfields.Block:     buf.Name,
			logfields.Size:      buf.Size,
		}).Debug("Found uniform buffer")
	}

	header, err := ubo.Generate(shaderPath, buffers)
	if err != nil {
		return err
	}
	return writeOutput(cfg.Structs.Output, header)
}
