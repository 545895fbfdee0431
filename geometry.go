package webengine

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Vertex is one entry of a vertex buffer: a model-space position and a
// base RGB color. The field order and types are the wire layout the
// pipeline's vertex attributes describe:
//
//	position (vec3<f32>) = 12 bytes (location 0)
//	color    (vec3<f32>) = 12 bytes (location 1)
//
// Total = 24 bytes per vertex.
type Vertex struct {
	Position [3]float32
	Color    [3]float32
}

// VertexStride is the byte stride per vertex.
const VertexStride = 24

// IndexByteSize is the size of one index: indices are uint16 on the wire.
const IndexByteSize = 2

// Mesh is indexed triangle-list geometry: a vertex slice and uint16
// indices, three per triangle.
type Mesh struct {
	Vertices []Vertex
	Indices  []uint16
}

// UnitSquare returns the prebaked unit square: four white vertices on
// [0,1]x[0,1] at z=0 and two triangles. Scale it through a Transform to
// draw rectangles of any size.
func UnitSquare() Mesh {
	return Mesh{
		Vertices: []Vertex{
			{Position: [3]float32{0, 0, 0}, Color: [3]float32{1, 1, 1}}, // Top Left
			{Position: [3]float32{0, 1, 0}, Color: [3]float32{1, 1, 1}}, // Bottom Left
			{Position: [3]float32{1, 1, 0}, Color: [3]float32{1, 1, 1}}, // Bottom Right
			{Position: [3]float32{1, 0, 0}, Color: [3]float32{1, 1, 1}}, // Top Right
		},
		Indices: []uint16{0, 1, 2, 3, 0, 2},
	}
}

// IndexCount returns the number of indices.
func (m Mesh) IndexCount() uint32 {
	return uint32(len(m.Indices))
}

// Validate checks that the mesh is drawable: at least one full triangle,
// a triangle-aligned index count, and every index in range.
func (m Mesh) Validate() error {
	if len(m.Vertices) == 0 {
		return fmt.Errorf("webengine: mesh has no vertices")
	}
	if len(m.Indices) == 0 || len(m.Indices)%3 != 0 {
		return fmt.Errorf("webengine: index count %d is not a positive multiple of 3", len(m.Indices))
	}
	for i, idx := range m.Indices {
		if int(idx) >= len(m.Vertices) {
			return fmt.Errorf("webengine: index %d at position %d out of range (have %d vertices)", idx, i, len(m.Vertices))
		}
	}
	return nil
}

// VertexBytes returns the vertex data in wire form: per vertex, position
// then color, each component a little-endian float32.
func (m Mesh) VertexBytes() []byte {
	buf := make([]byte, len(m.Vertices)*VertexStride)
	for i, v := range m.Vertices {
		off := i * VertexStride
		putFloat32(buf[off:], v.Position[0])
		putFloat32(buf[off+4:], v.Position[1])
		putFloat32(buf[off+8:], v.Position[2])
		putFloat32(buf[off+12:], v.Color[0])
		putFloat32(buf[off+16:], v.Color[1])
		putFloat32(buf[off+20:], v.Color[2])
	}
	return buf
}

// IndexBytes returns the index data as little-endian uint16 words.
func (m Mesh) IndexBytes() []byte {
	buf := make([]byte, len(m.Indices)*IndexByteSize)
	for i, idx := range m.Indices {
		binary.LittleEndian.PutUint16(buf[i*2:], idx)
	}
	return buf
}

func putFloat32(buf []byte, f float32) {
	binary.LittleEndian.PutUint32(buf, math.Float32bits(f))
}
