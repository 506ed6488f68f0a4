// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package shadertool post-processes compiled SPIR-V shaders.
//
// A shader binary is loaded once and handed to every enabled processor:
//
//	procs := shadertool.Processors()
//	cfg, err := processor.NewConfig(vp, procs)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	err = shadertool.Run(ctx, "main.frag.spv", cfg, procs, os.Stdout)
//
// The glsl processor writes GLSL for OpenGL and the structs processor
// writes C++ structs matching the shader's uniform blocks. A failing
// processor does not stop the others; all failures are returned together.
package shadertool

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/gogpu/shadertool/internal/logging"
	"github.com/gogpu/shadertool/internal/logging/logfields"
	"github.com/gogpu/shadertool/processor"
	"github.com/gogpu/shadertool/spirv"
)

var log = logging.DefaultLogger.WithField(logfields.LogSubsys, "shadertool")

var (
	blue = color.New(color.FgBlue).SprintFunc()
	red  = color.New(color.FgRed).SprintFunc()
	bold = color.New(color.Bold).SprintFunc()
)

// LoadError is returned when the shader binary cannot be read.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("failed to read %q: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// ProcessorError is returned for each processor that failed.
type ProcessorError struct {
	Path      string
	Processor string
	Err       error
}

func (e *ProcessorError) Error() string {
	return fmt.Sprintf("failed processing %q with processor %s: %v", e.Path, e.Processor, e.Err)
}

func (e *ProcessorError) Unwrap() error {
	return e.Err
}

// Processors returns every available processor in the order they run.
func Processors() []processor.Processor {
	return []processor.Processor{
		processor.NewGLSL(),
		processor.NewStructs(),
	}
}

// Run loads the shader at shaderPath and passes it to each processor that
// cfg enables. Failures are reported on out as they happen and returned
// joined. If the shader cannot be loaded, no processor runs.
func Run(ctx context.Context, shaderPath string, cfg *processor.Config, procs []processor.Processor, out io.Writer) error {
	scopedLog := log.WithField(logfields.Path, shaderPath)

	code, err := spirv.LoadFile(shaderPath)
	if err != nil {
		fmt.Fprintf(out, "Failed to read %s:%s\n", blue(fmt.Sprintf("%q", shaderPath)), red(err))
		return &LoadError{Path: shaderPath, Err: err}
	}
	scopedLog.WithField(logfields.Words, len(code)).Debug("Loaded shader")

	var errs []error
	for _, p := range procs {
		if !cfg.IsEnabled(p.Name()) {
			continue
		}

		procLog := scopedLog.WithField(logfields.Processor, p.Name())
		procLog.Debug("Running processor")

		if err := p.ProcessShader(ctx, shaderPath, code, cfg); err != nil {
			fmt.Fprintf(out, "Failed processing %s with processor %s: %s\n",
				blue(fmt.Sprintf("%q", shaderPath)), bold(p.Name()), red(err))
			procLog.WithError(err).Debug("Processor failed")
			errs = append(errs, &ProcessorError{Path: shaderPath, Processor: p.Name(), Err: err})
			continue
		}
		procLog.Debug("Processor finished")
	}

	return errors.Join(errs...)
}
