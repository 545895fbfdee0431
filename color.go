package webengine

import (
	"encoding/binary"
	"image/color"
	"math"
)

// ColorByteSize is the size of the color uniform wire form:
// one vec4<f32>, 4 little-endian float32 words.
const ColorByteSize = 16

// EngineColor is the RGBA tint uniform bound at group 1, binding 1.
// Components are float32 and conventionally in [0, 1], but values above 1
// are legal and act as amplification (the fragment stage multiplies, it
// does not clamp).
type EngineColor struct {
	R, G, B, A float32
}

// Predefined engine colors.
var (
	White  = EngineColor{R: 1, G: 1, B: 1, A: 1}
	Black  = EngineColor{R: 0, G: 0, B: 0, A: 1}
	Red    = EngineColor{R: 1, G: 0, B: 0, A: 1}
	Green  = EngineColor{R: 0, G: 1, B: 0, A: 1}
	Blue   = EngineColor{R: 0, G: 0, B: 1, A: 1}
	Purple = EngineColor{R: 0.5, G: 0, B: 0.5, A: 1}
)

// RGBAf creates an EngineColor from four components.
func RGBAf(r, g, b, a float32) EngineColor {
	return EngineColor{R: r, G: g, B: b, A: a}
}

// Mul returns the component-wise (Hadamard) product of two colors.
// A zero component in either operand yields exactly zero in the result;
// this is the tint/mask semantic of the fragment stage.
func (c EngineColor) Mul(o EngineColor) EngineColor {
	return EngineColor{R: c.R * o.R, G: c.G * o.G, B: c.B * o.B, A: c.A * o.A}
}

// Vec4 returns the color as a Vec4 in RGBA order.
func (c EngineColor) Vec4() Vec4 {
	return Vec4{X: c.R, Y: c.G, Z: c.B, W: c.A}
}

// Bytes returns the 16-byte uniform wire form: R, G, B, A as
// little-endian float32 words.
func (c EngineColor) Bytes() []byte {
	buf := make([]byte, ColorByteSize)
	binary.LittleEndian.PutUint32(buf[0:4], math.Float32bits(c.R))
	binary.LittleEndian.PutUint32(buf[4:8], math.Float32bits(c.G))
	binary.LittleEndian.PutUint32(buf[8:12], math.Float32bits(c.B))
	binary.LittleEndian.PutUint32(buf[12:16], math.Float32bits(c.A))
	return buf
}

// Color converts the engine color to the standard color.Color interface,
// clamping components into [0, 1].
func (c EngineColor) Color() color.Color {
	return color.NRGBA{
		R: clamp255(c.R),
		G: clamp255(c.G),
		B: clamp255(c.B),
		A: clamp255(c.A),
	}
}

// FromColor converts a standard color.Color to an EngineColor.
func FromColor(c color.Color) EngineColor {
	r, g, b, a := c.RGBA()
	return EngineColor{
		R: float32(r) / 65535,
		G: float32(g) / 65535,
		B: float32(b) / 65535,
		A: float32(a) / 65535,
	}
}

// Approx returns true if two colors are approximately equal within epsilon.
func (c EngineColor) Approx(o EngineColor, epsilon float32) bool {
	return abs32(c.R-o.R) < epsilon &&
		abs32(c.G-o.G) < epsilon &&
		abs32(c.B-o.B) < epsilon &&
		abs32(c.A-o.A) < epsilon
}

func clamp255(f float32) uint8 {
	v := f * 255
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v + 0.5)
}
