// Package pipeline is the GPU side of the engine, built on the wgpu hal
// layer: device acquisition, the render pipeline with its split uniform
// binding layout, vertex/index/uniform buffer management, and a frame
// drawer with offscreen rendering and CPU readback.
package pipeline
