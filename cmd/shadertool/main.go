// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Command shadertool post-processes compiled SPIR-V shaders.
//
// Usage:
//
//	shadertool [flags] <shader.spv>
//
// Examples:
//
//	shadertool --glsl --glsl-output main.frag.glsl main.frag.spv
//	shadertool --structs --structs-output main_frag.h main.frag.spv
//	SHADERTOOL_STRUCTS=true SHADERTOOL_STRUCTS_OUTPUT=main_frag.h shadertool main.frag.spv
//
// Every flag can also be given as a SHADERTOOL_<FLAG> environment variable
// or as a key of the YAML file passed with --config.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/gogpu/shadertool"
	"github.com/gogpu/shadertool/internal/logging"
	"github.com/gogpu/shadertool/internal/logging/logfields"
	"github.com/gogpu/shadertool/processor"
)

const (
	debugKey     = "debug"
	configKey    = "config"
	logFormatKey = "log-format"
)

var log = logging.DefaultLogger.WithField(logfields.LogSubsys, "shadertool-cmd")

// errProcessing is returned once Run has already reported its failures.
var errProcessing = errors.New("shader processing failed")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := newRootCmd(os.Stdout).ExecuteContext(ctx)
	stop()

	if err != nil {
		if !errors.Is(err, errProcessing) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}

func newRootCmd(out io.Writer) *cobra.Command {
	vp := viper.New()
	procs := shadertool.Processors()

	rootCmd := &cobra.Command{
		Use:           "shadertool [flags] <shader.spv>",
		Short:         "A tool for post processing SPIR-V shaders",
		Args:          shaderArg,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), vp, procs, args[0], out)
		},
	}

	flags := rootCmd.Flags()
	for _, p := range procs {
		p.AddFlags(flags)
	}
	flags.BoolP(debugKey, "D", false, "Enable debug messages")
	flags.String(logFormatKey, string(logging.DefaultLogFormat), "Log format (text or json)")
	flags.String(configKey, "", "YAML file to read options from")

	// Use Viper for configuration so that we can parse both command line
	// flags and environment variables
	vp.BindPFlags(flags)
	vp.SetEnvPrefix("shadertool")
	vp.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	vp.AutomaticEnv()

	return rootCmd
}

// shaderArg requires exactly one argument naming an existing file.
func shaderArg(cmd *cobra.Command, args []string) error {
	if err := cobra.ExactArgs(1)(cmd, args); err != nil {
		return err
	}
	fi, err := os.Stat(args[0])
	if err != nil {
		return fmt.Errorf("shader: %w", err)
	}
	if fi.IsDir() {
		return fmt.Errorf("shader: %s is a directory", args[0])
	}
	return nil
}

func run(ctx context.Context, vp *viper.Viper, procs []processor.Processor, shaderPath string, out io.Writer) error {
	if path := vp.GetString(configKey); path != "" {
		vp.SetConfigFile(path)
		if err := vp.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config from file '%s': %w", path, err)
		}
	}

	logging.SetLogFormat(vp.GetString(logFormatKey))
	if vp.GetBool(debugKey) {
		logging.SetLogLevelToDebug()
	}

	cfg, err := processor.NewConfig(vp, procs)
	if err != nil {
		return err
	}

	var enabled []string
	for _, p := range procs {
		if cfg.IsEnabled(p.Name()) {
			enabled = append(enabled, p.Name())
		}
	}
	log.WithFields(logrus.Fields{
		logfields.Path:      shaderPath,
		logfields.Processor: enabled,
	}).Debug("Processing shader")

	if err := shadertool.Run(ctx, shaderPath, cfg, procs, out); err != nil {
		log.WithError(err).Debug("Processing failed")
		return errProcessing
	}
	return nil
}
