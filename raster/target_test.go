package raster

import (
	"testing"

	"github.com/mkualquiera/webengine"
)

func TestTarget_Clear(t *testing.T) {
	target := NewTarget(4, 4)
	target.Clear(webengine.Purple)

	want := [4]uint8{128, 0, 128, 255}
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			if got := target.At(x, y); got != want {
				t.Fatalf("pixel (%d,%d) = %v, want %v", x, y, got, want)
			}
		}
	}
}

func TestTarget_AtOutOfBounds(t *testing.T) {
	target := NewTarget(2, 2)
	target.Clear(webengine.White)

	for _, p := range [][2]int{{-1, 0}, {0, -1}, {2, 0}, {0, 2}} {
		if got := target.At(p[0], p[1]); got != ([4]uint8{}) {
			t.Errorf("At(%d,%d) = %v, want zero", p[0], p[1], got)
		}
	}
}

func TestTarget_Image(t *testing.T) {
	target := NewTarget(3, 2)
	img := target.Image()

	if img.Bounds().Dx() != 3 || img.Bounds().Dy() != 2 {
		t.Errorf("bounds = %v, want 3x2", img.Bounds())
	}

	// The image shares storage with the target.
	target.Clear(webengine.Red)
	if img.Pix[0] != 255 || img.Pix[1] != 0 {
		t.Error("image does not share target storage")
	}
}

func TestTarget_Scaled(t *testing.T) {
	target := NewTarget(4, 4)
	target.Clear(webengine.Blue)

	img := target.Scaled(8, 8)
	if img.Bounds().Dx() != 8 || img.Bounds().Dy() != 8 {
		t.Errorf("bounds = %v, want 8x8", img.Bounds())
	}
	r, g, b, a := img.At(4, 4).RGBA()
	if r != 0 || g != 0 || b != 0xffff || a != 0xffff {
		t.Errorf("scaled pixel = (%d,%d,%d,%d), want blue", r, g, b, a)
	}
}

func TestChannel8_Clamps(t *testing.T) {
	tests := []struct {
		in   float32
		want uint8
	}{
		{-1, 0},
		{0, 0},
		{0.5, 128},
		{1, 255},
		{2.5, 255},
	}
	for _, tt := range tests {
		if got := channel8(tt.in); got != tt.want {
			t.Errorf("channel8(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestNewTarget_MinimumSize(t *testing.T) {
	target := NewTarget(0, -3)
	if target.Width != 1 || target.Height != 1 {
		t.Errorf("size = %dx%d, want 1x1", target.Width, target.Height)
	}
}
