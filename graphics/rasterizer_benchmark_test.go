// rasterizer_benchmark_test.go - RenderIndexed throughput under varying scanline counts

package graphics

import "testing"

func benchmarkRenderIndexed(b *testing.B, width, height int) {
	fb := NewFramebuffer(width, height, 1, true)
	fb.Clear(ClearValue{Color: 0x000000FF, Depth: 1.0})
	handle := NewFramebufferHandle(fb)
	r := NewRasterizer()
	r.PushRenderTarget(handle)

	call := &IndexedRenderCall[testUniform, testWorking]{
		Pipeline:      newTestPipeline(),
		Uniform:       triangleUniform(),
		Indices:       []uint16{0, 2, 1},
		InstanceCount: 1,
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := RenderIndexed(r, call); err != nil {
			b.Fatalf("RenderIndexed: %v", err)
		}
	}
}

func BenchmarkRenderIndexed_64x64(b *testing.B) {
	benchmarkRenderIndexed(b, 64, 64)
}

func BenchmarkRenderIndexed_512x512(b *testing.B) {
	benchmarkRenderIndexed(b, 512, 512)
}
