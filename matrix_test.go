package webengine

import (
	"math"
	"testing"
)

func TestMat4_Identity(t *testing.T) {
	m := Mat4Identity()
	if !m.IsIdentity() {
		t.Error("Mat4Identity is not identity")
	}

	v := V4(1, 2, 3, 1)
	if got := m.MulVec4(v); got != v {
		t.Errorf("identity * %v = %v", v, got)
	}
}

func TestMat4_ColumnMajorLayout(t *testing.T) {
	// Translation lives in the fourth column; column-major means
	// elements 12..14 of the flat array.
	m := Mat4Translation(V3(10, 20, 30))
	if m[12] != 10 || m[13] != 20 || m[14] != 30 {
		t.Errorf("translation column = (%v, %v, %v), want (10, 20, 30)", m[12], m[13], m[14])
	}
	if m.At(0, 3) != 10 || m.At(1, 3) != 20 || m.At(2, 3) != 30 {
		t.Error("At(row, 3) does not address the translation column")
	}
	if got := m.Col(3); got != V4(10, 20, 30, 1) {
		t.Errorf("Col(3) = %v, want (10, 20, 30, 1)", got)
	}
}

func TestMat4_Translation(t *testing.T) {
	m := Mat4Translation(V3(5, -3, 2))
	got := m.MulVec4(V4(1, 1, 1, 1))
	if !got.Approx(V4(6, -2, 3, 1), 1e-6) {
		t.Errorf("translate(1,1,1) = %v, want (6, -2, 3, 1)", got)
	}

	// Directions (w=0) are unaffected by translation.
	dir := m.MulVec4(V4(1, 1, 1, 0))
	if !dir.Approx(V4(1, 1, 1, 0), 1e-6) {
		t.Errorf("translate direction = %v, want (1, 1, 1, 0)", dir)
	}
}

func TestMat4_Scaling(t *testing.T) {
	m := Mat4Scaling(V3(2, 3, 4))
	got := m.MulVec4(V4(1, 1, 1, 1))
	if !got.Approx(V4(2, 3, 4, 1), 1e-6) {
		t.Errorf("scale(1,1,1) = %v, want (2, 3, 4, 1)", got)
	}
}

func TestMat4_AxisAngle(t *testing.T) {
	// Quarter turn around z maps +x to +y.
	m := Mat4AxisAngle(V3(0, 0, 1), float32(math.Pi/2))
	got := m.MulVec4(V4(1, 0, 0, 1))
	if !got.Approx(V4(0, 1, 0, 1), 1e-6) {
		t.Errorf("rotZ(90) * x = %v, want (0, 1, 0, 1)", got)
	}

	// Zero axis degrades to identity.
	if !Mat4AxisAngle(Vec3{}, 1).IsIdentity() {
		t.Error("zero-axis rotation is not identity")
	}
}

func TestMat4_Mul(t *testing.T) {
	tr := Mat4Translation(V3(1, 0, 0))
	sc := Mat4Scaling(V3(2, 2, 2))

	// tr * sc scales first, then translates.
	got := tr.Mul(sc).MulVec4(V4(1, 1, 1, 1))
	if !got.Approx(V4(3, 2, 2, 1), 1e-6) {
		t.Errorf("(T*S)v = %v, want (3, 2, 2, 1)", got)
	}

	// sc * tr translates first, then scales.
	got = sc.Mul(tr).MulVec4(V4(1, 1, 1, 1))
	if !got.Approx(V4(4, 2, 2, 1), 1e-6) {
		t.Errorf("(S*T)v = %v, want (4, 2, 2, 1)", got)
	}
}

func TestMat4_MulIdentity(t *testing.T) {
	m := Mat4Translation(V3(1, 2, 3)).Mul(Mat4Scaling(V3(4, 5, 6)))
	if !m.Mul(Mat4Identity()).Approx(m, 1e-6) {
		t.Error("m * I != m")
	}
	if !Mat4Identity().Mul(m).Approx(m, 1e-6) {
		t.Error("I * m != m")
	}
}

func TestMat4_Transpose(t *testing.T) {
	m := Mat4Translation(V3(1, 2, 3))
	tt := m.Transpose()
	if tt.At(3, 0) != 1 || tt.At(3, 1) != 2 || tt.At(3, 2) != 3 {
		t.Errorf("transpose moved translation to %v %v %v", tt.At(3, 0), tt.At(3, 1), tt.At(3, 2))
	}
	if !tt.Transpose().Approx(m, 1e-6) {
		t.Error("double transpose != original")
	}
}

func TestMat4_Invert(t *testing.T) {
	tests := []struct {
		name string
		m    Mat4
	}{
		{"identity", Mat4Identity()},
		{"translation", Mat4Translation(V3(7, -2, 3))},
		{"scaling", Mat4Scaling(V3(2, 4, 0.5))},
		{"rotation", Mat4AxisAngle(V3(1, 1, 0), 0.7)},
		{"composite", Mat4Translation(V3(1, 2, 3)).Mul(Mat4AxisAngle(V3(0, 1, 0), 1.1)).Mul(Mat4Scaling(V3(2, 2, 2)))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv := tt.m.Invert()
			if !tt.m.Mul(inv).Approx(Mat4Identity(), 1e-4) {
				t.Errorf("m * m^-1 = %v, want identity", tt.m.Mul(inv))
			}
		})
	}
}

func TestMat4_InvertSingular(t *testing.T) {
	// Singular matrices invert to identity, matching the 2D matrix
	// convention elsewhere in the ecosystem.
	var zero Mat4
	if !zero.Invert().IsIdentity() {
		t.Error("singular Invert did not return identity")
	}
}

func TestMat4_OrthographicRH(t *testing.T) {
	// 0..100 pixel space, y down. Top-left pixel corner maps to (-1, 1),
	// bottom-right to (1, -1), center to origin.
	m := Mat4OrthographicRH(0, 100, 100, 0, -100, 100)

	tests := []struct {
		name   string
		in     Vec4
		expect Vec4
	}{
		{"top left", V4(0, 0, 0, 1), V4(-1, 1, 0.5, 1)},
		{"bottom right", V4(100, 100, 0, 1), V4(1, -1, 0.5, 1)},
		{"center", V4(50, 50, 0, 1), V4(0, 0, 0.5, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := m.MulVec4(tt.in); !got.Approx(tt.expect, 1e-6) {
				t.Errorf("ortho * %v = %v, want %v", tt.in, got, tt.expect)
			}
		})
	}
}

func TestMat4_OrthographicDepthRange(t *testing.T) {
	// WebGPU convention: z maps to [0, 1]. Right-handed means the view
	// direction is -z, so the near plane sits at z = -near.
	m := Mat4OrthographicRH(0, 1, 1, 0, -100, 100)
	near := m.MulVec4(V4(0, 0, 100, 1))
	far := m.MulVec4(V4(0, 0, -100, 1))
	if abs32(near.Z-0) > 1e-6 {
		t.Errorf("near plane z = %v, want 0", near.Z)
	}
	if abs32(far.Z-1) > 1e-6 {
		t.Errorf("far plane z = %v, want 1", far.Z)
	}
}
