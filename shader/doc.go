// Package shader holds the engine's WGSL render shader and a pure Go
// reference of its two stages.
//
// The WGSL source is embedded and compiled through naga; the Go reference
// stages (VertexMain, FragmentMain) compute the exact same values on the
// CPU, which lets tests pin the shader semantics and lets the software
// rasterizer share one definition of the per-vertex and per-fragment math.
package shader
