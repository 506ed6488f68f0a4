// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package processor

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/google/renameio/v2"
	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"

	"github.com/gogpu/shadertool/internal/logging"
	"github.com/gogpu/shadertool/internal/logging/logfields"
)

var log = logging.DefaultLogger.WithField(logfields.LogSubsys, "processor")

// ErrOutputPathUnset is returned when an enabled processor has no output
// path to write to.
var ErrOutputPathUnset = errors.New("no output path given")

// Processor turns a loaded shader binary into one output file.
type Processor interface {
	// Name identifies the processor. It is also the flag that enables it.
	Name() string

	// Description is the help text of the enable flag.
	Description() string

	// AddFlags registers the enable flag and the processor options.
	AddFlags(flags *pflag.FlagSet)

	// ProcessShader writes the processor output for the shader at
	// shaderPath, whose words are code.
	ProcessShader(ctx context.Context, shaderPath string, code []uint32, cfg *Config) error
}

// base implements the identity part of Processor.
type base struct {
	name        string
	description string
}

func (b *base) Name() string {
	return b.name
}

func (b *base) Description() string {
	return b.description
}

func (b *base) addEnableFlag(flags *pflag.FlagSet) {
	flags.Bool(b.name, false, b.description)
}

// writeOutput atomically replaces path with data. A failed write leaves any
// previous file untouched.
func writeOutput(path string, data []byte) error {
	if path == "" {
		return ErrOutputPathUnset
	}

	log.WithFields(logrus.Fields{
		logfields.Output: path,
		logfields.Size:   len(data),
	}).Debug("Writing output")

	f, err := renameio.TempFile(filepath.Dir(path), path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Cleanup()

	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := f.Chmod(0o644); err != nil {
		return fmt.Errorf("failed to set permissions of %s: %w", path, err)
	}
	if err := f.CloseAtomicallyReplace(); err != nil {
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}
