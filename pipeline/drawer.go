package pipeline

import (
	"fmt"
	"image"
	"time"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/mkualquiera/webengine"
)

// gpuTimeout bounds every fence wait.
const gpuTimeout = 5 * time.Second

// bytesPerRowAlignment is the required row pitch alignment for
// texture-to-buffer copies.
const bytesPerRowAlignment = 256

// Drawer records and batches draw commands for one frame.
//
// Draws that share the current transform and color are recorded as
// separate command buffers and submitted together on Flush. Changing
// either uniform first submits the batch: the uniform buffers are
// written through the queue, so a write becomes visible to every
// command buffer submitted after it, and pending draws must reach the
// GPU before the value changes under them.
type Drawer struct {
	rs *RenderSystem

	pending []hal.CommandBuffer

	curTransform webengine.Transform
	curColor     webengine.EngineColor
}

// BeginFrame starts a new frame. The uniform state is reset to the
// defaults: the pixel-space orthographic transform and a white tint.
func (rs *RenderSystem) BeginFrame() *Drawer {
	d := &Drawer{
		rs:           rs,
		curTransform: rs.Ortho(),
		curColor:     webengine.White,
	}
	rs.transform.Write(rs.dev.Queue, d.curTransform)
	rs.color.Write(rs.dev.Queue, d.curColor)
	return d
}

// Clear records a pass that clears the render target to the given color.
func (d *Drawer) Clear(c webengine.EngineColor) error {
	return d.recordPass("clear", gputypes.LoadOpClear, c, nil)
}

// ClearDefault clears to the render system's configured clear color.
func (d *Drawer) ClearDefault() error {
	return d.Clear(d.rs.cfg.clearColor)
}

// ApplyTransform sets the transform for subsequent draws. Pending draws
// are submitted first so they still see the previous value.
func (d *Drawer) ApplyTransform(t webengine.Transform) error {
	if t == d.curTransform {
		return nil
	}
	if err := d.submitPending(); err != nil {
		return err
	}
	d.rs.transform.Write(d.rs.dev.Queue, t)
	d.curTransform = t
	return nil
}

// SetColor sets the engine tint for subsequent draws. Pending draws are
// submitted first so they still see the previous value.
func (d *Drawer) SetColor(c webengine.EngineColor) error {
	if c == d.curColor {
		return nil
	}
	if err := d.submitPending(); err != nil {
		return err
	}
	d.rs.color.Write(d.rs.dev.Queue, c)
	d.curColor = c
	return nil
}

// Draw records an indexed draw of the given geometry. A nil transform
// defaults to the pixel-space orthographic transform; a nil color
// defaults to white (no tint).
func (d *Drawer) Draw(geom *GeometryBuffers, t *webengine.Transform, c *webengine.EngineColor) error {
	transform := d.rs.Ortho()
	if t != nil {
		transform = *t
	}
	color := webengine.White
	if c != nil {
		color = *c
	}

	if err := d.ApplyTransform(transform); err != nil {
		return err
	}
	if err := d.SetColor(color); err != nil {
		return err
	}
	return d.recordPass("draw", gputypes.LoadOpLoad, webengine.EngineColor{}, geom)
}

// DrawSquare draws the prebaked unit square. Scale and translate it
// through the transform to place rectangles.
func (d *Drawer) DrawSquare(t *webengine.Transform, c *webengine.EngineColor) error {
	return d.Draw(d.rs.square, t, c)
}

// recordPass records a single render pass into a fresh command buffer
// and appends it to the pending batch. With a nil geom the pass only
// loads/clears the target.
func (d *Drawer) recordPass(kind string, loadOp gputypes.LoadOp, clear webengine.EngineColor, geom *GeometryBuffers) error {
	rs := d.rs
	encoder, err := rs.dev.Device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{
		Label: rs.cfg.label + "_" + kind + "_encoder",
	})
	if err != nil {
		return fmt.Errorf("create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding(rs.cfg.label + "_" + kind); err != nil {
		return fmt.Errorf("begin encoding: %w", err)
	}

	rp := encoder.BeginRenderPass(&hal.RenderPassDescriptor{
		Label: rs.cfg.label + "_" + kind + "_pass",
		ColorAttachments: []hal.RenderPassColorAttachment{{
			View:    rs.targetView,
			LoadOp:  loadOp,
			StoreOp: gputypes.StoreOpStore,
			ClearValue: gputypes.Color{
				R: float64(clear.R),
				G: float64(clear.G),
				B: float64(clear.B),
				A: float64(clear.A),
			},
		}},
	})
	if geom != nil {
		rp.SetPipeline(rs.pipeline)
		rp.SetBindGroup(TransformGroup, rs.transform.BindGroup(), nil)
		rp.SetBindGroup(ColorGroup, rs.color.BindGroup(), nil)
		rp.SetVertexBuffer(0, geom.Vertices, 0)
		rp.SetIndexBuffer(geom.Indices, gputypes.IndexFormatUint16, 0)
		rp.DrawIndexed(geom.IndexCount, 1, 0, 0, 0)
	}
	rp.End()

	cmdBuf, err := encoder.EndEncoding()
	if err != nil {
		return fmt.Errorf("end encoding: %w", err)
	}
	d.pending = append(d.pending, cmdBuf)
	return nil
}

// submitPending submits the batched command buffers and waits for the
// GPU to finish them. A no-op with an empty batch.
func (d *Drawer) submitPending() error {
	if len(d.pending) == 0 {
		return nil
	}
	rs := d.rs
	defer func() {
		for _, cb := range d.pending {
			rs.dev.Device.FreeCommandBuffer(cb)
		}
		d.pending = d.pending[:0]
	}()

	fence, err := rs.dev.Device.CreateFence()
	if err != nil {
		return fmt.Errorf("create fence: %w", err)
	}
	defer rs.dev.Device.DestroyFence(fence)

	if err := rs.dev.Queue.Submit(d.pending, fence, 1); err != nil {
		return fmt.Errorf("submit: %w", err)
	}
	ok, err := rs.dev.Device.Wait(fence, 1, gpuTimeout)
	if err != nil || !ok {
		return fmt.Errorf("wait for GPU: ok=%v err=%w", ok, err)
	}
	return nil
}

// Flush submits all pending draws and blocks until the GPU has finished.
func (d *Drawer) Flush() error {
	return d.submitPending()
}

// Readback flushes pending draws, copies the render target to a staging
// buffer, and returns the frame as an RGBA image.
func (d *Drawer) Readback() (*image.RGBA, error) {
	if err := d.Flush(); err != nil {
		return nil, err
	}

	rs := d.rs
	w, h := rs.width, rs.height

	// WebGPU (and DX12) requires BytesPerRow aligned to 256 bytes.
	bytesPerRow := w * 4
	alignedBytesPerRow := (bytesPerRow + bytesPerRowAlignment - 1) &^ (bytesPerRowAlignment - 1)
	stagingSize := uint64(alignedBytesPerRow) * uint64(h)

	staging, err := rs.dev.Device.CreateBuffer(&hal.BufferDescriptor{
		Label: rs.cfg.label + "_staging",
		Size:  stagingSize,
		Usage: gputypes.BufferUsageMapRead | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("create staging buffer: %w", err)
	}
	defer rs.dev.Device.DestroyBuffer(staging)

	encoder, err := rs.dev.Device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{
		Label: rs.cfg.label + "_readback_encoder",
	})
	if err != nil {
		return nil, fmt.Errorf("create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding(rs.cfg.label + "_readback"); err != nil {
		return nil, fmt.Errorf("begin encoding: %w", err)
	}

	// The target sits in attachment layout after rendering; the copy
	// needs it in copy-source layout. No-op on the noop backend.
	encoder.TransitionTextures([]hal.TextureBarrier{{
		Texture: rs.target,
		Usage: hal.TextureUsageTransition{
			OldUsage: gputypes.TextureUsageRenderAttachment,
			NewUsage: gputypes.TextureUsageCopySrc,
		},
	}})
	encoder.CopyTextureToBuffer(rs.target, staging, []hal.BufferTextureCopy{{
		BufferLayout: hal.ImageDataLayout{Offset: 0, BytesPerRow: alignedBytesPerRow, RowsPerImage: h},
		TextureBase:  hal.ImageCopyTexture{Texture: rs.target, MipLevel: 0},
		Size:         hal.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1},
	}})
	encoder.TransitionTextures([]hal.TextureBarrier{{
		Texture: rs.target,
		Usage: hal.TextureUsageTransition{
			OldUsage: gputypes.TextureUsageCopySrc,
			NewUsage: gputypes.TextureUsageRenderAttachment,
		},
	}})

	cmdBuf, err := encoder.EndEncoding()
	if err != nil {
		return nil, fmt.Errorf("end encoding: %w", err)
	}
	defer rs.dev.Device.FreeCommandBuffer(cmdBuf)

	fence, err := rs.dev.Device.CreateFence()
	if err != nil {
		return nil, fmt.Errorf("create fence: %w", err)
	}
	defer rs.dev.Device.DestroyFence(fence)

	if err := rs.dev.Queue.Submit([]hal.CommandBuffer{cmdBuf}, fence, 1); err != nil {
		return nil, fmt.Errorf("submit readback: %w", err)
	}
	ok, err := rs.dev.Device.Wait(fence, 1, gpuTimeout)
	if err != nil || !ok {
		return nil, fmt.Errorf("wait for GPU: ok=%v err=%w", ok, err)
	}

	raw := make([]byte, stagingSize)
	if err := rs.dev.Queue.ReadBuffer(staging, 0, raw); err != nil {
		return nil, fmt.Errorf("readback: %w", err)
	}

	img := image.NewRGBA(image.Rect(0, 0, int(w), int(h)))
	bgra := rs.cfg.format == gputypes.TextureFormatBGRA8Unorm
	for y := uint32(0); y < h; y++ {
		src := raw[y*alignedBytesPerRow:]
		dst := img.Pix[int(y)*img.Stride:]
		if bgra {
			for x := uint32(0); x < w; x++ {
				dst[x*4+0] = src[x*4+2]
				dst[x*4+1] = src[x*4+1]
				dst[x*4+2] = src[x*4+0]
				dst[x*4+3] = src[x*4+3]
			}
		} else {
			copy(dst[:bytesPerRow], src[:bytesPerRow])
		}
	}
	return img, nil
}
