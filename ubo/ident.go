// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package ubo

import (
	"path/filepath"
	"strings"
)

// SanitizeIdentifier replaces every byte that is not an ASCII letter or
// digit with an underscore. The result has the same byte length as s.
func SanitizeIdentifier(s string) string {
	b := []byte(s)
	for i, c := range b {
		if !isAlnum(c) {
			b[i] = '_'
		}
	}
	return string(b)
}

func isAlnum(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || ('0' <= c && c <= '9')
}

// fileStem returns the base name of path without its last extension.
// Dot files such as ".spv" keep their full name.
func fileStem(path string) string {
	base := filepath.Base(path)
	if i := strings.LastIndexByte(base, '.'); i > 0 {
		return base[:i]
	}
	return base
}

// StructName returns the C++ struct name for a uniform block declared in the
// shader at shaderPath, e.g. "Params_main_frag" for block Params in
// "main.frag.spv".
func StructName(block, shaderPath string) string {
	return block + "_" + SanitizeIdentifier(fileStem(shaderPath))
}
