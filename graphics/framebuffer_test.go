// framebuffer_test.go - Framebuffer shape, clear, and scanline view tests

package graphics

import "testing"

func TestFramebuffer_Shape(t *testing.T) {
	fb := NewFramebuffer(4, 3, 2, true)

	w, h := fb.Size()
	if w != 4 || h != 3 {
		t.Fatalf("Size() = (%d, %d), want (4, 3)", w, h)
	}
	if len(fb.ColorAttachments()) != 2 {
		t.Fatalf("len(ColorAttachments()) = %d, want 2", len(fb.ColorAttachments()))
	}
	for _, attachment := range fb.ColorAttachments() {
		aw, ah := attachment.Size()
		if aw != 4 || ah != 3 {
			t.Fatalf("color attachment size = (%d, %d), want (4, 3)", aw, ah)
		}
	}
	if _, ok := fb.DepthAttachment(); !ok {
		t.Fatalf("DepthAttachment() ok = false, want true")
	}
}

func TestFramebuffer_NoDepthWhenNotRequested(t *testing.T) {
	fb := NewFramebuffer(2, 2, 1, false)
	if _, ok := fb.DepthAttachment(); ok {
		t.Fatalf("DepthAttachment() ok = true, want false")
	}
}

func TestFramebuffer_Clear(t *testing.T) {
	fb := NewFramebuffer(4, 4, 1, true)
	fb.Clear(ClearValue{Color: 0x787878FF, Depth: 1.0})

	color := fb.ColorAttachments()[0]
	depth, _ := fb.DepthAttachment()

	for _, c := range color.Coordinates() {
		v, _ := color.At(c.X, c.Y)
		if v != 0x787878FF {
			t.Fatalf("color at %v = %#x, want 0x787878FF", c, v)
		}
		d, _ := depth.At(c.X, c.Y)
		if d != 1.0 {
			t.Fatalf("depth at %v = %v, want 1.0", c, d)
		}
	}
}

func TestFramebuffer_ScanlinesInvalidRange(t *testing.T) {
	fb := NewFramebuffer(4, 4, 1, false)

	cases := []struct{ offset, count int }{
		{4, 1}, {0, 5}, {3, 2}, {-1, 1},
	}
	for _, c := range cases {
		if _, err := fb.Scanlines(c.offset, c.count); err == nil {
			t.Fatalf("Scanlines(%d, %d) err = nil, want InvalidScanlineRange", c.offset, c.count)
		}
	}
}

func TestFramebuffer_ScanlinesNonAliasing(t *testing.T) {
	fb := NewFramebuffer(4, 4, 2, true)
	lines, err := fb.Scanlines(1, 2)
	if err != nil {
		t.Fatalf("Scanlines: %v", err)
	}
	if len(lines) != 2 {
		t.Fatalf("len(lines) = %d, want 2", len(lines))
	}

	lines[0].Color[0][0] = 0xAABBCCDD
	lines[1].Color[0][0] = 0x11223344
	lines[0].Depth[0] = 0.25
	lines[1].Depth[0] = 0.75

	color := fb.ColorAttachments()[0]
	depth, _ := fb.DepthAttachment()

	v0, _ := color.At(0, 1)
	v1, _ := color.At(0, 2)
	if v0 != 0xAABBCCDD || v1 != 0x11223344 {
		t.Fatalf("scanline writes aliased: row1=%#x row2=%#x", v0, v1)
	}

	d0, _ := depth.At(0, 1)
	d1, _ := depth.At(0, 2)
	if d0 != 0.25 || d1 != 0.75 {
		t.Fatalf("scanline depth writes aliased: row1=%v row2=%v", d0, d1)
	}
}
