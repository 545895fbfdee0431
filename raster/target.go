package raster

import (
	"image"

	xdraw "golang.org/x/image/draw"

	"github.com/mkualquiera/webengine"
)

// Target is a CPU render target: tightly packed RGBA pixels, origin at
// the top-left.
type Target struct {
	Width, Height int
	Pix           []uint8
}

// NewTarget allocates a zeroed target of the given size.
func NewTarget(width, height int) *Target {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	return &Target{
		Width:  width,
		Height: height,
		Pix:    make([]uint8, width*height*4),
	}
}

// Clear fills the whole target with the given color.
func (t *Target) Clear(c webengine.EngineColor) {
	r, g, b, a := rgba8(c.Vec4())
	for i := 0; i < len(t.Pix); i += 4 {
		t.Pix[i+0] = r
		t.Pix[i+1] = g
		t.Pix[i+2] = b
		t.Pix[i+3] = a
	}
}

// At returns the pixel at (x, y). Out-of-bounds reads return zero.
func (t *Target) At(x, y int) [4]uint8 {
	if x < 0 || y < 0 || x >= t.Width || y >= t.Height {
		return [4]uint8{}
	}
	i := (y*t.Width + x) * 4
	return [4]uint8{t.Pix[i], t.Pix[i+1], t.Pix[i+2], t.Pix[i+3]}
}

// set writes a fragment output, replacing the previous pixel. The
// pipeline runs without blending, so there is no read-modify-write.
func (t *Target) set(x, y int, c webengine.Vec4) {
	i := (y*t.Width + x) * 4
	t.Pix[i+0], t.Pix[i+1], t.Pix[i+2], t.Pix[i+3] = rgba8(c)
}

// Image returns the target as an image.RGBA sharing the pixel storage.
func (t *Target) Image() *image.RGBA {
	return &image.RGBA{
		Pix:    t.Pix,
		Stride: t.Width * 4,
		Rect:   image.Rect(0, 0, t.Width, t.Height),
	}
}

// Scaled returns a copy of the target resampled to the given size.
func (t *Target) Scaled(width, height int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), t.Image(), t.Image().Bounds(), xdraw.Src, nil)
	return dst
}

// rgba8 converts a fragment output to 8-bit RGBA, clamping into [0, 1].
func rgba8(c webengine.Vec4) (r, g, b, a uint8) {
	return channel8(c.X), channel8(c.Y), channel8(c.Z), channel8(c.W)
}

func channel8(f float32) uint8 {
	v := f * 255
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v + 0.5)
}
