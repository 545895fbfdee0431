package pipeline

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/mkualquiera/webengine"
)

// TransformBinding owns the uniform buffer and bind group for the
// vertex-stage transform matrix (group 0, binding 0).
type TransformBinding struct {
	buf   hal.Buffer
	group hal.BindGroup
}

// NewTransformBinding creates the 64-byte transform uniform buffer and
// its bind group against the given group 0 layout.
func NewTransformBinding(device hal.Device, layout hal.BindGroupLayout, label string) (*TransformBinding, error) {
	buf, err := device.CreateBuffer(&hal.BufferDescriptor{
		Label: label + "_transform_ubo",
		Size:  TransformUniformSize,
		Usage: gputypes.BufferUsageUniform | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("create transform uniform buffer: %w", err)
	}

	group, err := device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:  label + "_transform_bg",
		Layout: layout,
		Entries: []gputypes.BindGroupEntry{{
			Binding: TransformBindingIndex,
			Resource: gputypes.BufferBinding{
				Buffer: buf.NativeHandle(),
				Offset: 0,
				Size:   0, // 0 = entire buffer
			},
		}},
	})
	if err != nil {
		device.DestroyBuffer(buf)
		return nil, fmt.Errorf("create transform bind group: %w", err)
	}

	return &TransformBinding{buf: buf, group: group}, nil
}

// Write uploads the transform's wire form into the uniform buffer.
func (b *TransformBinding) Write(queue hal.Queue, t webengine.Transform) {
	queue.WriteBuffer(b.buf, 0, t.Bytes())
}

// BindGroup returns the bind group to set at group 0.
func (b *TransformBinding) BindGroup() hal.BindGroup {
	return b.group
}

// Destroy releases the bind group and buffer. Safe to call twice.
func (b *TransformBinding) Destroy(device hal.Device) {
	if b.group != nil {
		device.DestroyBindGroup(b.group)
		b.group = nil
	}
	if b.buf != nil {
		device.DestroyBuffer(b.buf)
		b.buf = nil
	}
}

// ColorBinding owns the uniform buffer and bind group for the
// fragment-stage engine color (group 1, binding 1).
type ColorBinding struct {
	buf   hal.Buffer
	group hal.BindGroup
}

// NewColorBinding creates the 16-byte color uniform buffer and its bind
// group against the given group 1 layout.
func NewColorBinding(device hal.Device, layout hal.BindGroupLayout, label string) (*ColorBinding, error) {
	buf, err := device.CreateBuffer(&hal.BufferDescriptor{
		Label: label + "_color_ubo",
		Size:  ColorUniformSize,
		Usage: gputypes.BufferUsageUniform | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("create color uniform buffer: %w", err)
	}

	group, err := device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:  label + "_color_bg",
		Layout: layout,
		Entries: []gputypes.BindGroupEntry{{
			Binding: ColorBindingIndex,
			Resource: gputypes.BufferBinding{
				Buffer: buf.NativeHandle(),
				Offset: 0,
				Size:   0, // 0 = entire buffer
			},
		}},
	})
	if err != nil {
		device.DestroyBuffer(buf)
		return nil, fmt.Errorf("create color bind group: %w", err)
	}

	return &ColorBinding{buf: buf, group: group}, nil
}

// Write uploads the color's wire form into the uniform buffer.
func (b *ColorBinding) Write(queue hal.Queue, c webengine.EngineColor) {
	queue.WriteBuffer(b.buf, 0, c.Bytes())
}

// BindGroup returns the bind group to set at group 1.
func (b *ColorBinding) BindGroup() hal.BindGroup {
	return b.group
}

// Destroy releases the bind group and buffer. Safe to call twice.
func (b *ColorBinding) Destroy(device hal.Device) {
	if b.group != nil {
		device.DestroyBindGroup(b.group)
		b.group = nil
	}
	if b.buf != nil {
		device.DestroyBuffer(b.buf)
		b.buf = nil
	}
}
