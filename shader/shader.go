package shader

import (
	_ "embed"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/gogpu/naga"
	"github.com/gogpu/wgpu/hal"
)

//go:embed shaders/engine.wgsl
var engineShaderWGSL string

// Entry point names in engine.wgsl.
const (
	VertexEntryPoint   = "vs_main"
	FragmentEntryPoint = "fs_main"
)

// Source returns the embedded WGSL source for the engine render shader.
func Source() (string, error) {
	if engineShaderWGSL == "" {
		return "", errors.New("engine shader source is empty")
	}
	return engineShaderWGSL, nil
}

// Validate compiles the embedded WGSL through naga and discards the
// output. It exists so callers can fail fast at startup instead of at
// first pipeline creation.
func Validate() error {
	src, err := Source()
	if err != nil {
		return err
	}
	if _, err := naga.Compile(src); err != nil {
		return fmt.Errorf("compile engine shader: %w", err)
	}
	return nil
}

// CompileSPIRV compiles the embedded WGSL to SPIR-V words.
func CompileSPIRV() ([]uint32, error) {
	src, err := Source()
	if err != nil {
		return nil, err
	}
	spirvBytes, err := naga.Compile(src)
	if err != nil {
		return nil, fmt.Errorf("compile engine shader: %w", err)
	}
	if len(spirvBytes)%4 != 0 {
		return nil, fmt.Errorf("compile engine shader: output length %d is not word-aligned", len(spirvBytes))
	}

	// SPIR-V is little-endian 32-bit words.
	words := make([]uint32, len(spirvBytes)/4)
	for i := range words {
		words[i] = binary.LittleEndian.Uint32(spirvBytes[i*4:])
	}
	return words, nil
}

// NewModule creates a hal shader module from the embedded WGSL source.
// The backend compiles the source itself, so WGSL is handed over as-is.
func NewModule(device hal.Device, label string) (hal.ShaderModule, error) {
	src, err := Source()
	if err != nil {
		return nil, err
	}
	module, err := device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  label,
		Source: hal.ShaderSource{WGSL: src},
	})
	if err != nil {
		return nil, fmt.Errorf("create engine shader module: %w", err)
	}
	return module, nil
}
