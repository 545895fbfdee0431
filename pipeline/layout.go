package pipeline

import (
	"fmt"
	"strings"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/mkualquiera/webengine"
)

// Binding contract between host and shader. The transform matrix lives
// alone in group 0 at binding 0 and is visible to the vertex stage; the
// engine color lives alone in group 1 at binding 1 and is visible to the
// fragment stage. Keeping the two uniforms in separate groups lets either
// rebind without invalidating the other.
const (
	TransformGroup        = 0
	TransformBindingIndex = 0
	ColorGroup            = 1
	ColorBindingIndex     = 1
)

// Vertex attribute shader locations.
const (
	PositionLocation = 0
	ColorLocation    = 1
)

// Uniform buffer sizes in bytes.
const (
	TransformUniformSize = webengine.TransformByteSize
	ColorUniformSize     = webengine.ColorByteSize
)

// VertexLayout returns the vertex buffer layout for the engine pipeline.
// Layout per vertex:
//
//	position (vec3<f32>) = 12 bytes (location 0)
//	color    (vec3<f32>) = 12 bytes (location 1)
func VertexLayout() []gputypes.VertexBufferLayout {
	return []gputypes.VertexBufferLayout{
		{
			ArrayStride: webengine.VertexStride,
			StepMode:    gputypes.VertexStepModeVertex,
			Attributes: []gputypes.VertexAttribute{
				{Format: gputypes.VertexFormatFloat32x3, Offset: 0, ShaderLocation: PositionLocation},
				{Format: gputypes.VertexFormatFloat32x3, Offset: 12, ShaderLocation: ColorLocation},
			},
		},
	}
}

// ValidateContract checks that a WGSL source declares the bindings and
// entry points this pipeline is built around. Run before pipeline
// construction so a drifted shader fails with a configuration error
// instead of a backend validation failure mid-frame.
func ValidateContract(source string) error {
	required := []string{
		fmt.Sprintf("@group(%d) @binding(%d)", TransformGroup, TransformBindingIndex),
		fmt.Sprintf("@group(%d) @binding(%d)", ColorGroup, ColorBindingIndex),
		fmt.Sprintf("@location(%d) position", PositionLocation),
		fmt.Sprintf("@location(%d) color", ColorLocation),
	}
	for _, want := range required {
		if !strings.Contains(source, want) {
			return fmt.Errorf("shader contract: source missing %q", want)
		}
	}
	return nil
}

// TransformLayoutDesc returns the bind group layout for group 0: a single
// uniform buffer holding the transform matrix, vertex stage only.
func TransformLayoutDesc(label string) *hal.BindGroupLayoutDescriptor {
	return &hal.BindGroupLayoutDescriptor{
		Label: label + "_transform_layout",
		Entries: []gputypes.BindGroupLayoutEntry{
			{
				Binding:    TransformBindingIndex,
				Visibility: gputypes.ShaderStageVertex,
				Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform},
			},
		},
	}
}

// ColorLayoutDesc returns the bind group layout for group 1: a single
// uniform buffer holding the engine color, fragment stage only.
func ColorLayoutDesc(label string) *hal.BindGroupLayoutDescriptor {
	return &hal.BindGroupLayoutDescriptor{
		Label: label + "_color_layout",
		Entries: []gputypes.BindGroupLayoutEntry{
			{
				Binding:    ColorBindingIndex,
				Visibility: gputypes.ShaderStageFragment,
				Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform},
			},
		},
	}
}
