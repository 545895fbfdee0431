package raster

import (
	"math"

	"github.com/mkualquiera/webengine"
	"github.com/mkualquiera/webengine/shader"
)

// Rasterizer draws meshes onto a Target with the engine's pipeline
// semantics.
type Rasterizer struct {
	target *Target
}

// New creates a rasterizer over the given target.
func New(target *Target) *Rasterizer {
	return &Rasterizer{target: target}
}

// Target returns the underlying render target.
func (r *Rasterizer) Target() *Target {
	return r.target
}

// Draw rasterizes the mesh with the given transform and engine tint.
// Each triangle runs the vertex stage per vertex, is culled if
// back-facing or behind the eye, and shades covered pixels through the
// fragment stage with perspective-correct color interpolation.
func (r *Rasterizer) Draw(mesh webengine.Mesh, transform webengine.Transform, tint webengine.EngineColor) error {
	if err := mesh.Validate(); err != nil {
		return err
	}

	outs := make([]shader.VertexOutput, len(mesh.Vertices))
	for i, v := range mesh.Vertices {
		outs[i] = shader.VertexMain(shader.VertexInput{
			Position: webengine.V3(v.Position[0], v.Position[1], v.Position[2]),
			Color:    webengine.V3(v.Color[0], v.Color[1], v.Color[2]),
		}, transform.Matrix())
	}

	for i := 0; i+2 < len(mesh.Indices); i += 3 {
		r.triangle(
			outs[mesh.Indices[i]],
			outs[mesh.Indices[i+1]],
			outs[mesh.Indices[i+2]],
			tint,
		)
	}
	return nil
}

// screenVertex is a vertex after the perspective divide and viewport
// transform. invW carries 1/clip.w for perspective-correct
// interpolation.
type screenVertex struct {
	x, y, z float32
	invW    float32
	color   webengine.Vec3
}

func (r *Rasterizer) triangle(v0, v1, v2 shader.VertexOutput, tint webengine.EngineColor) {
	// Primitives reaching behind the eye are dropped whole rather than
	// clipped; fine for the orthographic transforms the engine uses.
	if v0.ClipPosition.W <= 0 || v1.ClipPosition.W <= 0 || v2.ClipPosition.W <= 0 {
		return
	}

	w := float32(r.target.Width)
	h := float32(r.target.Height)
	s0 := toScreen(v0, w, h)
	s1 := toScreen(v1, w, h)
	s2 := toScreen(v2, w, h)

	// Signed doubled area in screen space. Screen y points down, so a
	// triangle that is CCW in clip space comes out negative here; back
	// faces (non-negative area) are culled, degenerate triangles with
	// them.
	area := edge(s0, s1, s2)
	if area >= 0 {
		return
	}

	minX := clampInt(int(floor3(s0.x, s1.x, s2.x)), 0, r.target.Width-1)
	maxX := clampInt(int(ceil3(s0.x, s1.x, s2.x)), 0, r.target.Width-1)
	minY := clampInt(int(floor3(s0.y, s1.y, s2.y)), 0, r.target.Height-1)
	maxY := clampInt(int(ceil3(s0.y, s1.y, s2.y)), 0, r.target.Height-1)

	for py := minY; py <= maxY; py++ {
		for px := minX; px <= maxX; px++ {
			p := screenVertex{x: float32(px) + 0.5, y: float32(py) + 0.5}

			// Edge functions share the sign of the (negative) area for
			// covered pixels.
			e0 := edge(s1, s2, p)
			e1 := edge(s2, s0, p)
			e2 := edge(s0, s1, p)
			if e0 > 0 || e1 > 0 || e2 > 0 {
				continue
			}

			b0 := e0 / area
			b1 := e1 / area
			b2 := e2 / area

			z := b0*s0.z + b1*s1.z + b2*s2.z
			if z < 0 || z > 1 {
				continue
			}

			// Perspective-correct interpolation: weight by 1/w, then
			// renormalize. With w=1 everywhere this reduces to plain
			// barycentric interpolation.
			w0 := b0 * s0.invW
			w1 := b1 * s1.invW
			w2 := b2 * s2.invW
			sum := w0 + w1 + w2
			if sum == 0 {
				continue
			}
			color := s0.color.Mul(w0 / sum).
				Add(s1.color.Mul(w1 / sum)).
				Add(s2.color.Mul(w2 / sum))

			r.target.set(px, py, shader.FragmentMain(color, tint))
		}
	}
}

// toScreen applies the perspective divide and maps NDC onto pixel
// coordinates: x left-to-right, y flipped so +1 in NDC is the top row.
func toScreen(v shader.VertexOutput, w, h float32) screenVertex {
	invW := 1 / v.ClipPosition.W
	ndcX := v.ClipPosition.X * invW
	ndcY := v.ClipPosition.Y * invW
	ndcZ := v.ClipPosition.Z * invW
	return screenVertex{
		x:     (ndcX + 1) / 2 * w,
		y:     (1 - ndcY) / 2 * h,
		z:     ndcZ,
		invW:  invW,
		color: v.Color,
	}
}

// edge is the doubled signed area of triangle (a, b, p).
func edge(a, b, p screenVertex) float32 {
	return (b.x-a.x)*(p.y-a.y) - (b.y-a.y)*(p.x-a.x)
}

func floor3(a, b, c float32) float64 {
	return math.Floor(float64(min3(a, b, c)))
}

func ceil3(a, b, c float32) float64 {
	return math.Ceil(float64(max3(a, b, c)))
}

func min3(a, b, c float32) float32 {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	return m
}

func max3(a, b, c float32) float32 {
	m := a
	if b > m {
		m = b
	}
	if c > m {
		m = c
	}
	return m
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
