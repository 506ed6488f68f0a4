// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package processor

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/viper"

	"github.com/gogpu/shadertool/glsl"
)

// Option keys, shared by flags, environment variables and config files.
const (
	GLSLOutputKey       = "glsl-output"
	GLSLVersionKey      = "glsl-version"
	GLSLValidateKey     = "glsl-validate"
	SpirvCrossKey       = "spirv-cross"
	GlslangValidatorKey = "glslang-validator"
	StructsOutputKey    = "structs-output"
)

// Config is the resolved configuration of all processors. It is built once
// by NewConfig and not modified afterwards.
type Config struct {
	// Enabled holds the processors requested by name.
	Enabled map[string]bool

	GLSL    GLSLConfig
	Structs StructsConfig
}

// GLSLConfig holds the options of the glsl processor.
type GLSLConfig struct {
	Output   string
	Version  glsl.Version
	Validate bool

	// SpirvCross and GlslangValidator name the external tools. Empty
	// values use the tool from PATH.
	SpirvCross       string
	GlslangValidator string
}

// StructsConfig holds the options of the structs processor.
type StructsConfig struct {
	Output string
}

// IsEnabled reports whether the processor called name was requested.
func (c *Config) IsEnabled(name string) bool {
	return c.Enabled[name]
}

// NewConfig resolves the options registered by the AddFlags methods of
// procs. Output paths must be an existing regular file or not exist yet.
func NewConfig(vp *viper.Viper, procs []Processor) (*Config, error) {
	cfg := &Config{
		Enabled: make(map[string]bool, len(procs)),
		GLSL: GLSLConfig{
			Output:           vp.GetString(GLSLOutputKey),
			Version:          glsl.Version150,
			Validate:         vp.GetBool(GLSLValidateKey),
			SpirvCross:       vp.GetString(SpirvCrossKey),
			GlslangValidator: vp.GetString(GlslangValidatorKey),
		},
		Structs: StructsConfig{
			Output: vp.GetString(StructsOutputKey),
		},
	}
	for _, p := range procs {
		cfg.Enabled[p.Name()] = vp.GetBool(p.Name())
	}

	if s := vp.GetString(GLSLVersionKey); s != "" {
		v, err := glsl.ParseVersion(s, false)
		if err != nil {
			return nil, fmt.Errorf("--%s: %w", GLSLVersionKey, err)
		}
		cfg.GLSL.Version = v
	}

	var errs []error
	for _, o := range []struct{ key, path string }{
		{GLSLOutputKey, cfg.GLSL.Output},
		{StructsOutputKey, cfg.Structs.Output},
	} {
		if err := CheckOutputPath(o.path); err != nil {
			errs = append(errs, fmt.Errorf("--%s: %w", o.key, err))
		}
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}

	return cfg, nil
}

// CheckOutputPath accepts an empty path, a path that does not exist and a
// path naming an existing regular file.
func CheckOutputPath(path string) error {
	if path == "" {
		return nil
	}
	fi, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	if !fi.Mode().IsRegular() {
		return fmt.Errorf("%s exists and is not a regular file", path)
	}
	return nil
}
