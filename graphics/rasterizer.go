// rasterizer.go - Render-target orchestration, face setup, and scanline dispatch

/*
Rasterizer drives the vertex -> primitive -> fragment -> output-merger
pipeline: it holds the render-target stack and per-frame stats, and
RenderIndexed walks instances and faces of one indexed draw call, deriving
each face's screen-space bound, intersecting it with any user scissor, and
fanning the covered scanlines out to a worker pool before merging fragment
output into the bound framebuffer's attachments.
*/

package graphics

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// VerticesPerFace is the number of indices that make up one triangle.
const VerticesPerFace = 3

// Rasterizer owns the render-target stack and per-frame statistics. It
// carries no shader-specific state, so one Rasterizer serves any Shader
// instantiation across calls.
type Rasterizer struct {
	stack RenderTargetStack
	stats RenderStats
}

// NewRasterizer returns an idle rasterizer: an empty render-target stack and
// zeroed stats.
func NewRasterizer() *Rasterizer {
	return &Rasterizer{}
}

// NewFrame resets stats for a new frame. It fails with
// RenderTargetUnfinished if the render-target stack is non-empty, which
// indicates a missing PopRenderTarget from the prior frame.
func (r *Rasterizer) NewFrame() error {
	if !r.stack.Empty() {
		return RenderTargetUnfinished
	}
	r.stats = RenderStats{}
	return nil
}

// PushRenderTarget binds handle as the active render target.
func (r *Rasterizer) PushRenderTarget(handle *FramebufferHandle) {
	r.stack.Push(handle)
}

// PopRenderTarget unbinds the active render target, or fails with
// NoRenderTarget if the stack is empty.
func (r *Rasterizer) PopRenderTarget() error {
	return r.stack.Pop()
}

// CurrentRenderTarget returns the active render target, or fails with
// NoRenderTarget if the stack is empty.
func (r *Rasterizer) CurrentRenderTarget() (*FramebufferHandle, error) {
	return r.stack.Current()
}

// Stats returns the rasterizer's current frame statistics.
func (r *Rasterizer) Stats() RenderStats {
	return r.stats
}

// IndexedRenderCall describes one indexed draw: the pipeline, a borrowed
// uniform, a 16-bit index buffer (triangle list; trailing 1-2 indices beyond
// a multiple of three are ignored), an optional scissor, and the
// instance/first-instance range to draw. VertexOffset is carried for
// API-compatibility with engines that bias vertex lookups, but this
// rasterizer does not apply it to index lookups (see the design notes).
type IndexedRenderCall[U any, W Blendable[W]] struct {
	Pipeline *Pipeline[U, W]
	Uniform  *U

	Indices []uint16

	Scissor *Scissor

	VertexOffset  int
	FirstInstance int
	InstanceCount int
}

// degenerateAreaEpsilon bounds how small a triangle's signed area may be
// before it is treated as degenerate and skipped, avoiding a division by
// (near) zero in the flat barycentric weights.
const degenerateAreaEpsilon = 1e-12

// RenderIndexed executes one indexed draw call against the active render
// target. It resolves the top of the render-target stack, acquires
// exclusive access to its framebuffer for the call's duration, and for each
// instance renders every face in the index buffer.
func RenderIndexed[U any, W Blendable[W]](r *Rasterizer, call *IndexedRenderCall[U, W]) error {
	top, err := r.stack.Current()
	if err != nil {
		return err
	}

	top.mu.Lock()
	defer top.mu.Unlock()

	faceCount := len(call.Indices) / VerticesPerFace

	for i := 0; i < call.InstanceCount; i++ {
		instanceID := call.FirstInstance + i
		for j := 0; j < faceCount; j++ {
			if err := renderFace(instanceID, j, call, top.fb, &r.stats); err != nil {
				return err
			}
			r.stats.FacesProcessed++
		}
		r.stats.Instances++
	}
	r.stats.Calls++
	return nil
}

func renderFace[U any, W Blendable[W]](
	instanceID, faceIndex int,
	call *IndexedRenderCall[U, W],
	fb *Framebuffer,
	stats *RenderStats,
) error {
	offset := faceIndex * VerticesPerFace

	var vertices [VerticesPerFace]VertexOutput[W]
	var uv [VerticesPerFace]Point2
	for k := 0; k < VerticesPerFace; k++ {
		index := call.Indices[offset+k]
		vertices[k] = call.Pipeline.Shader.VertexStage(&VertexContext[U]{
			VertexID:   int(index),
			InstanceID: instanceID,
			Data:       call.Uniform,
		})
		uv[k] = Point2{
			X: (vertices[k].Position.X + 1) / 2,
			Y: (vertices[k].Position.Y + 1) / 2,
		}
	}

	fbWidth, fbHeight := fb.Size()
	generated := genScissor(uv[:], fbWidth, fbHeight)

	final := generated
	if call.Scissor != nil {
		intersected, ok := generated.IntersectWith(*call.Scissor)
		if !ok {
			return nil
		}
		final = intersected
	}

	if final.Width <= 0 || final.Height <= 0 {
		return nil
	}

	scanlines, err := fb.Scanlines(final.Y, final.Height)
	if err != nil {
		return err
	}

	positions := [VerticesPerFace]Point3{
		vertices[0].Position, vertices[1].Position, vertices[2].Position,
	}

	group, _ := errgroup.WithContext(context.Background())
	for i := range scanlines {
		line := &scanlines[i]
		group.Go(func() error {
			for dx := 0; dx < final.Width; dx++ {
				x := final.X + dx
				processPixel(x, line.Y, instanceID, call, &vertices, positions, fbWidth, fbHeight, line)
			}
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return err
	}

	stats.FacesRendered++
	return nil
}

// genScissor derives the conservative integer AABB enclosing a face's
// screen-space UV coordinates: clamp to [0,1], scale by (maxWidth,
// maxHeight), floor for the min corner and ceil for the max corner.
func genScissor(uv []Point2, maxWidth, maxHeight int) Scissor {
	x0, y0 := maxWidth, maxHeight
	x1, y1 := 0, 0

	for _, p := range uv {
		x := clamp01(p.X) * float32(maxWidth)
		y := clamp01(p.Y) * float32(maxHeight)

		fx0 := int(floorf(x))
		fy0 := int(floorf(y))
		fx1 := int(ceilf(x))
		fy1 := int(ceilf(y))

		if fx0 < x0 {
			x0 = fx0
		}
		if fy0 < y0 {
			y0 = fy0
		}
		if fx1 > x1 {
			x1 = fx1
		}
		if fy1 > y1 {
			y1 = fy1
		}
	}

	if x1 < x0 || y1 < y0 {
		return Scissor{}
	}

	return Scissor{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}

func processPixel[U any, W Blendable[W]](
	x, y int,
	instanceID int,
	call *IndexedRenderCall[U, W],
	vertices *[VerticesPerFace]VertexOutput[W],
	positions [VerticesPerFace]Point3,
	fbWidth, fbHeight int,
	line *MutableScanline,
) {
	px := (((float32(x)+0.5)/float32(fbWidth))*2 - 1)
	py := (((float32(y)+0.5)/float32(fbHeight))*2 - 1)

	winding := call.Pipeline.Winding

	var areas [VerticesPerFace]float32
	for i := 0; i < VerticesPerFace; i++ {
		a := positions[(i+1)%VerticesPerFace]
		b := positions[(i+2)%VerticesPerFace]
		areas[i] = signedTriangleArea(Point2{X: a.X, Y: a.Y}, Point2{X: b.X, Y: b.Y}, Point2{X: px, Y: py}, winding)
	}

	front := true
	back := true
	for _, area := range areas {
		if area < 0 {
			front = false
		}
		if area > 0 {
			back = false
		}
	}

	var accept bool
	if call.Pipeline.CullBack {
		accept = front
	} else {
		accept = front || back
	}
	if !accept {
		return
	}

	areaSum := areas[0] + areas[1] + areas[2]
	if areaSum > -degenerateAreaEpsilon && areaSum < degenerateAreaEpsilon {
		return
	}

	var flatWeights [VerticesPerFace]float32
	for i, area := range areas {
		flatWeights[i] = area / areaSum
	}

	var invZ [VerticesPerFace]float32
	var invDepth float32
	for i, p := range positions {
		invZ[i] = 1 / p.Z
		invDepth += flatWeights[i] * invZ[i]
	}
	depth := 1 / invDepth

	var weights [VerticesPerFace]float32
	for i := range weights {
		weights[i] = flatWeights[i] * invZ[i] / invDepth
	}

	if depth < 0 {
		return
	}

	depthMode := call.Pipeline.Depth
	if depthMode != DepthDontCare && line.Depth != nil {
		if depth > line.Depth[x] {
			return
		}
	}

	dataRefs := [VerticesPerFace]*W{&vertices[0].Data, &vertices[1].Data, &vertices[2].Data}
	var zero W
	working := zero.Blend(dataRefs[:], weights[:])

	color := call.Pipeline.Shader.FragmentStage(&FragmentContext[U, W]{
		InstanceID: instanceID,
		Position:   Point3{X: px, Y: py, Z: depth},
		Data:       call.Uniform,
		Working:    working,
	})

	for i := range line.Color {
		if call.Pipeline.Blending != nil {
			line.Color[i][x] = call.Pipeline.Blending[i].BlendColors(color, line.Color[i][x])
		} else {
			line.Color[i][x] = color
		}
	}

	if depthMode == DepthWrite && line.Depth != nil {
		line.Depth[x] = depth
	}
}

func signedTriangleArea(a, b, point Point2, winding Winding) float32 {
	abX := b.X - a.X
	abY := b.Y - a.Y
	acX := point.X - a.X
	acY := point.Y - a.Y

	// rot90 in y-down NDC: CCW rotates (x,y) -> (y,-x); CW rotates
	// (x,y) -> (-y,x).
	var normalX, normalY float32
	switch winding {
	case WindingCCW:
		normalX, normalY = abY, -abX
	case WindingCW:
		normalX, normalY = -abY, abX
	}

	return (acX*normalX + acY*normalY) / 2
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
