// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package spirv

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
)

// LoadFile reads a SPIR-V binary into a word buffer.
//
// The word count is the file length divided by four; a trailing partial
// word is dropped. No header validation is performed.
func LoadFile(path string) ([]uint32, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	data := make([]byte, info.Size())
	if _, err := io.ReadFull(f, data); err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	return DecodeWords(data), nil
}

// DecodeWords converts little-endian bytes to words, truncating any
// trailing partial word.
func DecodeWords(data []byte) []uint32 {
	words := make([]uint32, len(data)/4)
	for i := range words {
		words[i] = binary.LittleEndian.Uint32(data[i*4:])
	}
	return words
}

// EncodeWords converts words to little-endian bytes.
func EncodeWords(words []uint32) []byte {
	data := make([]byte, len(words)*4)
	for i, word := range words {
		binary.LittleEndian.PutUint32(data[i*4:], word)
	}
	return data
}
