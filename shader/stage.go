package shader

import (
	"github.com/mkualquiera/webengine"
)

// VertexInput mirrors the vertex attributes the pipeline feeds into
// vs_main: position at location 0, color at location 1.
type VertexInput struct {
	Position webengine.Vec3
	Color    webengine.Vec3
}

// VertexOutput mirrors the vs_main output: the clip-space position
// builtin and the interpolated color at location 0.
type VertexOutput struct {
	ClipPosition webengine.Vec4
	Color        webengine.Vec3
}

// VertexMain is the Go reference of vs_main. The position is homogenized
// with w=1 and transformed by the uniform matrix; the color passes
// through untouched.
func VertexMain(in VertexInput, transform webengine.Mat4) VertexOutput {
	return VertexOutput{
		ClipPosition: transform.MulVec4(in.Position.Extend(1)),
		Color:        in.Color,
	}
}

// FragmentMain is the Go reference of fs_main. The interpolated vertex
// color is extended to RGBA with alpha 1 and tinted component-wise by
// the engine color. A zero engine component zeroes that channel exactly;
// components above 1 amplify.
func FragmentMain(color webengine.Vec3, engine webengine.EngineColor) webengine.Vec4 {
	return color.Extend(1).Hadamard(engine.Vec4())
}
