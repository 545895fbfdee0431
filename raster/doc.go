// Package raster is a CPU reference rasterizer for the engine's render
// pipeline. It runs the same vertex and fragment math as the GPU path
// (via package shader) over a plain RGBA target, with the pipeline's
// fixed state baked in: triangle lists, CCW front faces with back-face
// culling, depth range [0,1], replace writes.
//
// It exists for tests and headless environments where no GPU backend is
// available but real pixels are wanted.
package raster
