// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package ubo

import (
	"errors"
	"fmt"
)

// ErrorKind categorizes uniform struct generation errors.
type ErrorKind uint8

const (
	// ErrUnsupportedType indicates a member type with no C++ equivalent.
	ErrUnsupportedType ErrorKind = iota

	// ErrUnsupportedArray indicates an array that cannot be mirrored by
	// std::array, either unsized or with a padded stride.
	ErrUnsupportedArray
)

// String returns a human-readable error kind name.
func (k ErrorKind) String() string {
	switch k {
	case ErrUnsupportedType:
		return "UnsupportedType"
	case ErrUnsupportedArray:
		return "UnsupportedArray"
	default:
		return "Unknown"
	}
}

// Error reports a uniform block member that cannot be emitted.
type Error struct {
	Kind ErrorKind

	// Block and Member locate the offending member. Member is empty for
	// errors about the block itself.
	Block  string
	Member string

	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Member != "" {
		return fmt.Sprintf("ubo %s in %s.%s: %s", e.Kind, e.Block, e.Member, e.Message)
	}
	return fmt.Sprintf("ubo %s in %s: %s", e.Kind, e.Block, e.Message)
}

// IsUnsupportedType reports whether err, or any error it wraps, is an
// unsupported type or array error.
func IsUnsupportedType(err error) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.Kind == ErrUnsupportedType || e.Kind == ErrUnsupportedArray
}

// typeError is returned by the type mapping before the member is known.
type typeError struct {
	kind    ErrorKind
	message string
}

func (e *typeError) Error() string {
	return e.message
}

func unsupported(kind ErrorKind, format string, args ...any) *typeError {
	return &typeError{kind: kind, message: fmt.Sprintf(format, args...)}
}
