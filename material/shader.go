// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package material

import (
	_ "embed"
	"fmt"
	"sync"

	"github.com/gogpu/naga"
)

//go:embed shaders/basic.wgsl
var basicShaderSource string

// basicSPIRV compiles the basic shader once.
var basicSPIRV = sync.OnceValues(func() ([]uint32, error) {
	return compileSPIRV(basicShaderSource)
})

// compileSPIRV compiles WGSL to SPIR-V words.
func compileSPIRV(source string) ([]uint32, error) {
	spirvBytes, err := naga.Compile(source)
	if err != nil {
		return nil, fmt.Errorf("material: compile shader: %w", err)
	}
	// SPIR-V is a stream of little-endian 32-bit words.
	words := make([]uint32, len(spirvBytes)/4)
	for i := range words {
		words[i] = uint32(spirvBytes[i*4]) |
			uint32(spirvBytes[i*4+1])<<8 |
			uint32(spirvBytes[i*4+2])<<16 |
			uint32(spirvBytes[i*4+3])<<24
	}
	return words, nil
}
