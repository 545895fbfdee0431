package webengine

import "math"

// Mat4 is a 4x4 float32 matrix in column-major order, the layout WGSL
// uses for mat4x4<f32>. Element (row r, column c) is m[c*4+r], and the
// uniform wire form is the 16 elements in this exact order.
type Mat4 [16]float32

// Mat4Identity returns the identity matrix.
func Mat4Identity() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Mat4FromCols builds a matrix from four column vectors.
func Mat4FromCols(c0, c1, c2, c3 Vec4) Mat4 {
	return Mat4{
		c0.X, c0.Y, c0.Z, c0.W,
		c1.X, c1.Y, c1.Z, c1.W,
		c2.X, c2.Y, c2.Z, c2.W,
		c3.X, c3.Y, c3.Z, c3.W,
	}
}

// Mat4Translation returns a translation matrix.
func Mat4Translation(v Vec3) Mat4 {
	m := Mat4Identity()
	m[12] = v.X
	m[13] = v.Y
	m[14] = v.Z
	return m
}

// Mat4Scaling returns a non-uniform scaling matrix.
func Mat4Scaling(v Vec3) Mat4 {
	m := Mat4Identity()
	m[0] = v.X
	m[5] = v.Y
	m[10] = v.Z
	return m
}

// Mat4AxisAngle returns a rotation matrix around the given axis by angle
// radians. The axis is normalized internally; a zero axis yields the
// identity matrix.
func Mat4AxisAngle(axis Vec3, angle float32) Mat4 {
	a := axis.Normalize()
	if a == (Vec3{}) {
		return Mat4Identity()
	}
	sin := float32(math.Sin(float64(angle)))
	cos := float32(math.Cos(float64(angle)))
	omc := 1 - cos
	x, y, z := a.X, a.Y, a.Z
	return Mat4{
		cos + x*x*omc, y*x*omc + z*sin, z*x*omc - y*sin, 0,
		x*y*omc - z*sin, cos + y*y*omc, z*y*omc + x*sin, 0,
		x*z*omc + y*sin, y*z*omc - x*sin, cos + z*z*omc, 0,
		0, 0, 0, 1,
	}
}

// Mat4OrthographicRH returns a right-handed orthographic projection
// mapping the box [left,right]x[bottom,top]x[near,far] onto clip space
// with z in [0, 1] (the WebGPU depth convention).
func Mat4OrthographicRH(left, right, bottom, top, near, far float32) Mat4 {
	rcpWidth := 1 / (right - left)
	rcpHeight := 1 / (top - bottom)
	r := 1 / (near - far)
	return Mat4{
		2 * rcpWidth, 0, 0, 0,
		0, 2 * rcpHeight, 0, 0,
		0, 0, r, 0,
		-(left + right) * rcpWidth, -(top + bottom) * rcpHeight, r * near, 1,
	}
}

// At returns element (row, col).
func (m Mat4) At(row, col int) float32 {
	return m[col*4+row]
}

// Col returns the given column as a Vec4.
func (m Mat4) Col(c int) Vec4 {
	return Vec4{X: m[c*4], Y: m[c*4+1], Z: m[c*4+2], W: m[c*4+3]}
}

// Mul returns the matrix product m * n.
func (m Mat4) Mul(n Mat4) Mat4 {
	var out Mat4
	for c := 0; c < 4; c++ {
		for r := 0; r < 4; r++ {
			var sum float32
			for k := 0; k < 4; k++ {
				sum += m[k*4+r] * n[c*4+k]
			}
			out[c*4+r] = sum
		}
	}
	return out
}

// MulVec4 returns the product m * v. This is the vertex-stage transform:
// clip_position = matrix * vec4(position, 1).
func (m Mat4) MulVec4(v Vec4) Vec4 {
	return Vec4{
		X: m[0]*v.X + m[4]*v.Y + m[8]*v.Z + m[12]*v.W,
		Y: m[1]*v.X + m[5]*v.Y + m[9]*v.Z + m[13]*v.W,
		Z: m[2]*v.X + m[6]*v.Y + m[10]*v.Z + m[14]*v.W,
		W: m[3]*v.X + m[7]*v.Y + m[11]*v.Z + m[15]*v.W,
	}
}

// Transpose returns the transposed matrix.
func (m Mat4) Transpose() Mat4 {
	var out Mat4
	for c := 0; c < 4; c++ {
		for r := 0; r < 4; r++ {
			out[r*4+c] = m[c*4+r]
		}
	}
	return out
}

// Invert returns the inverse matrix.
// Returns the identity matrix if the matrix is not invertible.
func (m Mat4) Invert() Mat4 {
	a00, a01, a02, a03 := m[0], m[1], m[2], m[3]
	a10, a11, a12, a13 := m[4], m[5], m[6], m[7]
	a20, a21, a22, a23 := m[8], m[9], m[10], m[11]
	a30, a31, a32, a33 := m[12], m[13], m[14], m[15]

	b00 := a00*a11 - a01*a10
	b01 := a00*a12 - a02*a10
	b02 := a00*a13 - a03*a10
	b03 := a01*a12 - a02*a11
	b04 := a01*a13 - a03*a11
	b05 := a02*a13 - a03*a12
	b06 := a20*a31 - a21*a30
	b07 := a20*a32 - a22*a30
	b08 := a20*a33 - a23*a30
	b09 := a21*a32 - a22*a31
	b10 := a21*a33 - a23*a31
	b11 := a22*a33 - a23*a32

	det := b00*b11 - b01*b10 + b02*b09 + b03*b08 - b04*b07 + b05*b06
	if abs32(det) < 1e-10 {
		return Mat4Identity()
	}
	invDet := 1 / det

	return Mat4{
		(a11*b11 - a12*b10 + a13*b09) * invDet,
		(a02*b10 - a01*b11 - a03*b09) * invDet,
		(a31*b05 - a32*b04 + a33*b03) * invDet,
		(a22*b04 - a21*b05 - a23*b03) * invDet,
		(a12*b08 - a10*b11 - a13*b07) * invDet,
		(a00*b11 - a02*b08 + a03*b07) * invDet,
		(a32*b02 - a30*b05 - a33*b01) * invDet,
		(a20*b05 - a22*b02 + a23*b01) * invDet,
		(a10*b10 - a11*b08 + a13*b06) * invDet,
		(a01*b08 - a00*b10 - a03*b06) * invDet,
		(a30*b04 - a31*b02 + a33*b00) * invDet,
		(a21*b02 - a20*b04 - a23*b00) * invDet,
		(a11*b07 - a10*b09 - a12*b06) * invDet,
		(a00*b09 - a01*b07 + a02*b06) * invDet,
		(a31*b01 - a30*b03 - a32*b00) * invDet,
		(a20*b03 - a21*b01 + a22*b00) * invDet,
	}
}

// IsIdentity returns true if the matrix is exactly the identity matrix.
func (m Mat4) IsIdentity() bool {
	return m == Mat4Identity()
}

// Approx returns true if two matrices are approximately equal within epsilon.
func (m Mat4) Approx(n Mat4, epsilon float32) bool {
	for i := range m {
		if abs32(m[i]-n[i]) >= epsilon {
			return false
		}
	}
	return true
}
