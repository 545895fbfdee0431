// Package webengine provides the rendering core of a small real-time
// engine: a vertex/fragment shader pair and the host-side plumbing that
// feeds it.
//
// # Overview
//
// The core is deliberately small. The vertex stage transforms model-space
// positions into clip space with a single uniform matrix and passes the
// per-vertex color through; the fragment stage multiplies the interpolated
// color by an engine-wide tint. Everything else in this module exists to
// express that contract precisely: the uniform binding layout, the vertex
// attribute layout, and the buffer encodings the GPU expects.
//
// # Quick Start
//
//	import (
//	    "github.com/mkualquiera/webengine"
//	    "github.com/mkualquiera/webengine/pipeline"
//	)
//
//	dev, _ := pipeline.Open(pipeline.BackendAuto)
//	defer dev.Close()
//
//	rs, _ := pipeline.NewRenderSystem(dev, 800, 600)
//	defer rs.Destroy()
//
//	d := rs.BeginFrame()
//	d.Clear(webengine.Black)
//	d.DrawSquare(nil, &webengine.Red)
//	d.Flush()
//
// # Architecture
//
// The module is organized into:
//   - Root: value types shared by every backend (Vec3, Vec4, Mat4,
//     Transform, EngineColor, Vertex, Mesh), logging, and configuration.
//   - shader: the WGSL source, its entry points, and pure Go reference
//     implementations of both stages.
//   - pipeline: GPU rendering over gogpu/wgpu with the binding contract
//     enforced at construction time.
//   - raster: a software rasterizer executing the identical stage
//     semantics on the CPU.
//
// # Coordinate System
//
// Clip space follows the WebGPU convention: x and y in [-1, 1] with y up,
// z in [0, 1]. The orthographic helpers map a pixel rectangle with the
// origin at the top-left onto that cube, so screen coordinates behave the
// way 2D engines expect (x right, y down).
package webengine

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0
)
