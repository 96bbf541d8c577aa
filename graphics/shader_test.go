// shader_test.go - Default color interpolant combinator

package graphics

import "testing"

func TestBlendColor_WeightedSum(t *testing.T) {
	a := BlendColor(0xFF0000FF)
	b := BlendColor(0x0000FFFF)

	got := a.Blend([]*BlendColor{&a, &b}, []float32{0.5, 0.5})
	r, g, bl, al := unpackColor(uint32(got))

	if absf32(r-0.5) > 1.0/256 {
		t.Fatalf("r = %v, want ~0.5", r)
	}
	if g != 0 {
		t.Fatalf("g = %v, want 0", g)
	}
	if absf32(bl-0.5) > 1.0/256 {
		t.Fatalf("b = %v, want ~0.5", bl)
	}
	if absf32(al-1) > 1.0/256 {
		t.Fatalf("a = %v, want ~1", al)
	}
}
