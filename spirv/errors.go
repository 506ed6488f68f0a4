// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package spirv

import "fmt"

// ErrorKind categorizes SPIR-V decoding errors.
type ErrorKind uint8

const (
	// ErrInvalidHeader indicates a missing or malformed module header.
	ErrInvalidHeader ErrorKind = iota

	// ErrTruncatedInstruction indicates an instruction whose word count runs
	// past the end of the module, or is zero.
	ErrTruncatedInstruction

	// ErrUnknownID indicates a reference to an ID that was never defined.
	ErrUnknownID

	// ErrInvalidOperand indicates an instruction with missing or bad operands.
	ErrInvalidOperand
)

// String returns a human-readable error kind name.
func (k ErrorKind) String() string {
	switch k {
	case ErrInvalidHeader:
		return "InvalidHeader"
	case ErrTruncatedInstruction:
		return "TruncatedInstruction"
	case ErrUnknownID:
		return "UnknownID"
	case ErrInvalidOperand:
		return "InvalidOperand"
	default:
		return "Unknown"
	}
}

// Error represents a failure to decode or reflect a SPIR-V module.
type Error struct {
	// Kind categorizes the error.
	Kind ErrorKind

	// Message provides details about the error.
	Message string

	// Word is the word index in the module where the problem was found,
	// or -1 when not tied to a position.
	Word int
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Word >= 0 {
		return fmt.Sprintf("spirv %s at word %d: %s", e.Kind, e.Word, e.Message)
	}
	return fmt.Sprintf("spirv %s: %s", e.Kind, e.Message)
}

// NewError creates a new error without position information.
func NewError(kind ErrorKind, message string) *Error {
	return &Error{Kind: kind, Message: message, Word: -1}
}

func errorAt(kind ErrorKind, word int, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Word: word}
}
