package webengine

import (
	"encoding/binary"
	"math"
)

// TransformByteSize is the size of the transform uniform wire form:
// one mat4x4<f32>, 16 little-endian float32 words.
const TransformByteSize = 64

// Transform is the uniform transform bound at group 0, binding 0.
// It wraps a composite (model-view-projection or equivalent) matrix and
// is a value type: the compose methods return new Transforms, so a
// Transform already uploaded to the GPU is never mutated in place.
type Transform struct {
	matrix Mat4
}

// NewTransform returns the identity transform.
func NewTransform() Transform {
	return Transform{matrix: Mat4Identity()}
}

// TransformFromMatrix wraps an existing matrix.
func TransformFromMatrix(m Mat4) Transform {
	return Transform{matrix: m}
}

// Orthographic returns the transform mapping the pixel rectangle
// [0,width]x[0,height] (origin top-left, y down) onto clip space, with a
// generous depth range so flat 2D content never clips on z.
func Orthographic(width, height float32) Transform {
	return Transform{matrix: Mat4OrthographicRH(0, width, height, 0, -100, 100)}
}

// OrthographicSizeInvariant returns the orthographic transform over the
// unit rectangle. Content drawn through it keeps its proportions of the
// viewport regardless of surface size.
func OrthographicSizeInvariant() Transform {
	return Transform{matrix: Mat4OrthographicRH(0, 1, 1, 0, -100, 100)}
}

// Matrix returns the underlying matrix.
func (t Transform) Matrix() Mat4 {
	return t.matrix
}

// Translate returns the transform composed with a translation.
func (t Transform) Translate(v Vec3) Transform {
	return Transform{matrix: t.matrix.Mul(Mat4Translation(v))}
}

// Rotate returns the transform composed with a rotation of angle radians
// around the given axis.
func (t Transform) Rotate(angle float32, axis Vec3) Transform {
	return Transform{matrix: t.matrix.Mul(Mat4AxisAngle(axis, angle))}
}

// Scale returns the transform composed with a non-uniform scale.
func (t Transform) Scale(v Vec3) Transform {
	return Transform{matrix: t.matrix.Mul(Mat4Scaling(v))}
}

// Project transforms a point: (matrix * [p, 1]) truncated to xyz.
// No perspective divide is applied; orthographic transforms keep w=1.
func (t Transform) Project(p Vec3) Vec3 {
	return t.matrix.MulVec4(p.Extend(1)).Truncate()
}

// MapTowards re-expresses this transform in the space of other:
// other.inverse * t. Useful for converting between two camera spaces.
func (t Transform) MapTowards(other Transform) Transform {
	return Transform{matrix: other.matrix.Invert().Mul(t.matrix)}
}

// Bytes returns the 64-byte uniform wire form: the matrix columns in
// order, each element a little-endian float32.
func (t Transform) Bytes() []byte {
	buf := make([]byte, TransformByteSize)
	for i, f := range t.matrix {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return buf
}
