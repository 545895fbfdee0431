package pipeline

import (
	"testing"

	"github.com/mkualquiera/webengine"
)

// newTestSystem creates a render system on a noop device.
func newTestSystem(t *testing.T) *RenderSystem {
	t.Helper()
	dev := openTestDevice(t)
	rs, err := NewRenderSystem(dev, 64, 48)
	if err != nil {
		t.Fatalf("NewRenderSystem failed: %v", err)
	}
	t.Cleanup(rs.Destroy)
	return rs
}

func TestNewRenderSystem(t *testing.T) {
	rs := newTestSystem(t)

	if rs.pipeline == nil {
		t.Error("expected non-nil pipeline")
	}
	if rs.transform == nil || rs.color == nil {
		t.Error("expected uniform bindings")
	}
	if rs.square == nil || rs.square.IndexCount != 6 {
		t.Error("expected prebaked unit square geometry")
	}
	if w, h := rs.Size(); w != 64 || h != 48 {
		t.Errorf("size = %dx%d, want 64x48", w, h)
	}
}

func TestNewRenderSystem_EmptySize(t *testing.T) {
	dev := openTestDevice(t)
	if _, err := NewRenderSystem(dev, 0, 48); err == nil {
		t.Error("expected error for zero width")
	}
}

func TestRenderSystem_Resize(t *testing.T) {
	rs := newTestSystem(t)

	if err := rs.Resize(128, 96); err != nil {
		t.Fatalf("Resize failed: %v", err)
	}
	if w, h := rs.Size(); w != 128 || h != 96 {
		t.Errorf("size = %dx%d, want 128x96", w, h)
	}

	// Same size is a no-op.
	view := rs.targetView
	if err := rs.Resize(128, 96); err != nil {
		t.Fatalf("Resize (no-op) failed: %v", err)
	}
	if rs.targetView != view {
		t.Error("no-op resize must keep the target")
	}

	if err := rs.Resize(0, 0); err == nil {
		t.Error("expected error for empty size")
	}
}

func TestRenderSystem_Ortho(t *testing.T) {
	rs := newTestSystem(t)
	ortho := rs.Ortho()

	// Top-left pixel corner maps to clip-space (-1, 1).
	got := ortho.Project(webengine.V3(0, 0, 0))
	if !got.Approx(webengine.V3(-1, 1, 0.5), 1e-5) {
		t.Errorf("Project(0,0) = %v, want (-1, 1, 0.5)", got)
	}
	// Bottom-right pixel corner maps to clip-space (1, -1).
	got = ortho.Project(webengine.V3(64, 48, 0))
	if !got.Approx(webengine.V3(1, -1, 0.5), 1e-5) {
		t.Errorf("Project(64,48) = %v, want (1, -1, 0.5)", got)
	}
}

func TestRenderSystem_DestroyTwice(t *testing.T) {
	dev := openTestDevice(t)
	rs, err := NewRenderSystem(dev, 8, 8)
	if err != nil {
		t.Fatalf("NewRenderSystem failed: %v", err)
	}
	rs.Destroy()
	rs.Destroy() // must be safe
}

func TestDrawer_Frame(t *testing.T) {
	rs := newTestSystem(t)
	d := rs.BeginFrame()

	if err := d.ClearDefault(); err != nil {
		t.Fatalf("ClearDefault failed: %v", err)
	}
	if err := d.DrawSquare(nil, nil); err != nil {
		t.Fatalf("DrawSquare failed: %v", err)
	}

	placed := rs.Ortho().Translate(webengine.V3(10, 10, 0)).Scale(webengine.V3(20, 20, 1))
	if err := d.DrawSquare(&placed, &webengine.Purple); err != nil {
		t.Fatalf("DrawSquare (placed) failed: %v", err)
	}

	if err := d.Flush(); err != nil {
		t.Fatalf("Flush failed: %v", err)
	}
	if len(d.pending) != 0 {
		t.Errorf("pending after Flush = %d, want 0", len(d.pending))
	}
}

func TestDrawer_UniformChangeFlushesPending(t *testing.T) {
	rs := newTestSystem(t)
	d := rs.BeginFrame()

	if err := d.DrawSquare(nil, nil); err != nil {
		t.Fatalf("DrawSquare failed: %v", err)
	}
	if len(d.pending) != 1 {
		t.Fatalf("pending = %d, want 1", len(d.pending))
	}

	// A new color must submit the batch before the uniform write.
	if err := d.SetColor(webengine.Red); err != nil {
		t.Fatalf("SetColor failed: %v", err)
	}
	if len(d.pending) != 0 {
		t.Errorf("pending after SetColor = %d, want 0", len(d.pending))
	}

	// Re-applying the same color keeps the batch.
	if err := d.DrawSquare(nil, &webengine.Red); err != nil {
		t.Fatalf("DrawSquare failed: %v", err)
	}
	if err := d.SetColor(webengine.Red); err != nil {
		t.Fatalf("SetColor (same) failed: %v", err)
	}
	if len(d.pending) != 1 {
		t.Errorf("pending after same-color SetColor = %d, want 1", len(d.pending))
	}

	if err := d.Flush(); err != nil {
		t.Fatalf("Flush failed: %v", err)
	}
}

func TestDrawer_Readback(t *testing.T) {
	rs := newTestSystem(t)
	d := rs.BeginFrame()

	if err := d.Clear(webengine.Blue); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if err := d.DrawSquare(nil, nil); err != nil {
		t.Fatalf("DrawSquare failed: %v", err)
	}

	img, err := d.Readback()
	if err != nil {
		t.Fatalf("Readback failed: %v", err)
	}
	if img.Bounds().Dx() != 64 || img.Bounds().Dy() != 48 {
		t.Errorf("image bounds = %v, want 64x48", img.Bounds())
	}
}
