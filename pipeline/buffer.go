package pipeline

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/mkualquiera/webengine"
)

// copyBufferAlignment is the required alignment of buffer copy sizes.
// Write payloads are zero-padded up to it.
const copyBufferAlignment = 4

// padToCopyAlignment returns data padded with zero bytes to a multiple
// of copyBufferAlignment. The input is returned unchanged when already
// aligned.
func padToCopyAlignment(data []byte) []byte {
	rem := len(data) % copyBufferAlignment
	if rem == 0 {
		return data
	}
	padded := make([]byte, len(data)+copyBufferAlignment-rem)
	copy(padded, data)
	return padded
}

// GeometryBuffers holds the uploaded GPU form of a mesh: a vertex
// buffer, an index buffer, and the index count to draw with.
type GeometryBuffers struct {
	Vertices   hal.Buffer
	Indices    hal.Buffer
	IndexCount uint32
}

// UploadMesh validates the mesh and uploads its vertex and index data
// into fresh GPU buffers.
func UploadMesh(device hal.Device, queue hal.Queue, label string, mesh webengine.Mesh) (*GeometryBuffers, error) {
	if err := mesh.Validate(); err != nil {
		return nil, err
	}

	vbuf, err := uploadBuffer(device, queue, label+"_vertices", mesh.VertexBytes(), gputypes.BufferUsageVertex)
	if err != nil {
		return nil, fmt.Errorf("upload vertex buffer: %w", err)
	}
	ibuf, err := uploadBuffer(device, queue, label+"_indices", mesh.IndexBytes(), gputypes.BufferUsageIndex)
	if err != nil {
		device.DestroyBuffer(vbuf)
		return nil, fmt.Errorf("upload index buffer: %w", err)
	}

	return &GeometryBuffers{
		Vertices:   vbuf,
		Indices:    ibuf,
		IndexCount: mesh.IndexCount(),
	}, nil
}

// Destroy releases both buffers. Safe to call twice.
func (g *GeometryBuffers) Destroy(device hal.Device) {
	if g.Indices != nil {
		device.DestroyBuffer(g.Indices)
		g.Indices = nil
	}
	if g.Vertices != nil {
		device.DestroyBuffer(g.Vertices)
		g.Vertices = nil
	}
}

func uploadBuffer(device hal.Device, queue hal.Queue, label string, data []byte, usage gputypes.BufferUsage) (hal.Buffer, error) {
	padded := padToCopyAlignment(data)
	buf, err := device.CreateBuffer(&hal.BufferDescriptor{
		Label: label,
		Size:  uint64(len(padded)),
		Usage: usage | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, err
	}
	queue.WriteBuffer(buf, 0, padded)
	return buf, nil
}
