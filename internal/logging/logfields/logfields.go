// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package logfields defines common logging fields which are used across packages
package logfields

const (
	// LogSubsys is the field denoting the subsystem when logging
	LogSubsys = "subsys"

	// Processor is the name of a shader processor
	Processor = "processor"

	// Path is a filesystem path
	Path = "path"

	// Output is the path a processor writes to
	Output = "output"

	// Words is the number of 32-bit words in a shader binary
	Words = "words"

	// Block is the name of a uniform block
	Block = "block"

	// Size is a size in bytes
	Size = "size"

	// Stage is a shader stage name
	Stage = "stage"
)
