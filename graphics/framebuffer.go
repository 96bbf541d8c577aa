// framebuffer.go - Color/depth attachment aggregate and scanline views

package graphics

// ClearValue is the fill used by Framebuffer.Clear: a packed RGBA8 color
// (big-endian, byte 0 = R) for every color attachment and a depth value for
// the depth attachment, if present.
type ClearValue struct {
	Color uint32
	Depth float32
}

// Framebuffer aggregates K color attachments (32-bit packed RGBA) and an
// optional depth attachment, all sharing one (width, height). The rasterizer
// never owns a Framebuffer outright — applications construct and keep it,
// handing the rasterizer borrowed access through the render-target stack.
type Framebuffer struct {
	width, height int

	color []*Image[uint32]
	depth *Image[float32]
}

// NewFramebuffer allocates numColor zero-initialized color attachments and,
// if hasDepth, one zero-initialized depth attachment, all of size
// width x height.
func NewFramebuffer(width, height, numColor int, hasDepth bool) *Framebuffer {
	fb := &Framebuffer{
		width:  width,
		height: height,
		color:  make([]*Image[uint32], numColor),
	}
	for i := range fb.color {
		fb.color[i] = NewImage[uint32](width, height)
	}
	if hasDepth {
		fb.depth = NewImage[float32](width, height)
	}
	return fb
}

// Size returns the framebuffer's (width, height).
func (fb *Framebuffer) Size() (int, int) {
	return fb.width, fb.height
}

// ColorAttachments returns the framebuffer's color attachments in order.
func (fb *Framebuffer) ColorAttachments() []*Image[uint32] {
	return fb.color
}

// DepthAttachment returns the depth attachment and true, or false if the
// framebuffer has none.
func (fb *Framebuffer) DepthAttachment() (*Image[float32], bool) {
	if fb.depth == nil {
		return nil, false
	}
	return fb.depth, true
}

// Clear fills every color attachment with value.Color and, if present, the
// depth attachment with value.Depth.
func (fb *Framebuffer) Clear(value ClearValue) {
	for _, attachment := range fb.color {
		for i := range attachment.data {
			attachment.data[i] = value.Color
		}
	}
	if fb.depth != nil {
		for i := range fb.depth.data {
			fb.depth.data[i] = value.Depth
		}
	}
}

// MutableScanline is one writable row of every attachment: Color[i] is row y
// of color attachment i (length width), and Depth (if present) is row y of
// the depth attachment. All slices alias disjoint, non-overlapping memory of
// the framebuffer, so distinct MutableScanline values for distinct rows may
// be handed to concurrent goroutines safely.
type MutableScanline struct {
	Y     int
	Color [][]uint32
	Depth []float32
}

// Scanlines returns count MutableScanline views for rows
// [offset, offset+count). The views' slices alias the framebuffer's own
// storage and are guaranteed non-overlapping across both rows and
// attachments, so callers may hand distinct entries of the returned slice to
// different goroutines without synchronization.
func (fb *Framebuffer) Scanlines(offset, count int) ([]MutableScanline, error) {
	if offset < 0 || offset >= fb.height || offset+count > fb.height {
		return nil, InvalidScanlineRange
	}

	out := make([]MutableScanline, count)
	for i := 0; i < count; i++ {
		y := offset + i
		line := MutableScanline{Y: y, Color: make([][]uint32, len(fb.color))}
		for c, attachment := range fb.color {
			line.Color[c] = attachment.row(y)
		}
		if fb.depth != nil {
			line.Depth = fb.depth.row(y)
		}
		out[i] = line
	}
	return out, nil
}
