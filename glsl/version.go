// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package glsl

import (
	"fmt"
	"strconv"
)

// Version represents a GLSL version.
type Version struct {
	Major uint8
	Minor uint8
	ES    bool // true for GLSL ES (OpenGL ES / WebGL)
}

// Common GLSL versions.
var (
	// Desktop OpenGL versions
	Version150 = Version{Major: 1, Minor: 50, ES: false} // OpenGL 3.2 Core
	Version330 = Version{Major: 3, Minor: 30, ES: false} // OpenGL 3.3 Core
	Version410 = Version{Major: 4, Minor: 10, ES: false} // OpenGL 4.1
	Version450 = Version{Major: 4, Minor: 50, ES: false} // OpenGL 4.5

	// OpenGL ES / WebGL versions
	VersionES300 = Version{Major: 3, Minor: 0, ES: true} // ES 3.0 / WebGL 2.0
	VersionES310 = Version{Major: 3, Minor: 10, ES: true}
)

// String returns the version as a GLSL version directive value.
func (v Version) String() string {
	if v.ES {
		return fmt.Sprintf("%d%02d es", v.Major, v.Minor)
	}
	return fmt.Sprintf("%d%02d core", v.Major, v.Minor)
}

// VersionNumber returns just the numeric version (e.g., "150", "300").
func (v Version) VersionNumber() string {
	return fmt.Sprintf("%d%02d", v.Major, v.Minor)
}

// ParseVersion converts a numeric version such as 150 or "300" into a
// Version. Desktop GLSL is assumed unless es is set.
func ParseVersion(number string, es bool) (Version, error) {
	n, err := strconv.Atoi(number)
	if err != nil || n < 100 || n > 999 {
		return Version{}, fmt.Errorf("invalid GLSL version %q", number)
	}
	return Version{Major: uint8(n / 100), Minor: uint8(n % 100), ES: es}, nil
}
