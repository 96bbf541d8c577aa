// demoshader.go - Minimal Gouraud-style shader shared by the example binaries

/*
Package demoshader implements the smallest Shader that is still interesting
to look at: per-vertex packed colors, interpolated with the rasterizer's
perspective-correct weights, no texturing or lighting. It exists purely so
cmd/rastdump, cmd/rastgui, and cmd/rastterm can share one Uniform/Working
pair instead of redeclaring it three times.
*/
package demoshader

import (
	"github.com/intuitionamiga/rast/examples/scene"
	"github.com/intuitionamiga/rast/graphics"
)

// Uniform borrows the scene's vertex pool for the duration of a draw call.
type Uniform struct {
	Scene *scene.Scene
}

// Working is the interpolated per-pixel payload: just a packed color.
type Working struct {
	Color uint32
}

// Blend linearly combines N colors by N weights in normalized float space,
// dividing by 256.0 on unpack and clamping on repack exactly like the core's
// default color combinator.
func (Working) Blend(data []*Working, weights []float32) Working {
	var r, g, b, a float32
	for i, d := range data {
		cr, cg, cb, ca := unpack(d.Color)
		w := weights[i]
		r += cr * w
		g += cg * w
		b += cb * w
		a += ca * w
	}
	return Working{Color: pack(r, g, b, a)}
}

func unpack(c uint32) (r, g, b, a float32) {
	r = float32(byte(c>>24)) / 256.0
	g = float32(byte(c>>16)) / 256.0
	b = float32(byte(c>>8)) / 256.0
	a = float32(byte(c)) / 256.0
	return
}

func pack(r, g, b, a float32) uint32 {
	clamp := func(v float32) byte {
		if v < 0 {
			v = 0
		}
		scaled := v * 256.0
		if scaled > 255 {
			scaled = 255
		}
		return byte(scaled)
	}
	return uint32(clamp(r))<<24 | uint32(clamp(g))<<16 | uint32(clamp(b))<<8 | uint32(clamp(a))
}

// Shader draws each vertex's scene position and color unmodified, letting
// the rasterizer's barycentric interpolation do the rest.
type Shader struct{}

// VertexStage looks up the referenced vertex in the scene's pool.
func (Shader) VertexStage(ctx *graphics.VertexContext[Uniform]) graphics.VertexOutput[Working] {
	v := ctx.Data.Scene.Vertices[ctx.VertexID]
	return graphics.VertexOutput[Working]{
		Position: graphics.Point3{X: v.X, Y: v.Y, Z: v.Z},
		Data:     Working{Color: v.Color},
	}
}

// FragmentStage outputs the interpolated color unchanged.
func (Shader) FragmentStage(ctx *graphics.FragmentContext[Uniform, Working]) uint32 {
	return ctx.Working.Color
}
