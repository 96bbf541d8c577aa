// main.go - Headless single-frame dump example for the rast rasterizer

/*
rastdump renders one frame of a Lua-scripted scene to a BMP file using only
the rast/graphics core plus golang.org/x/image/bmp for encoding — no window,
no event loop. It mirrors the teacher project's preference for a plain
flag-driven main over a framework CLI.
*/
package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"os"

	"golang.org/x/image/bmp"

	"github.com/intuitionamiga/rast/examples/scene"
	"github.com/intuitionamiga/rast/graphics"
	"github.com/intuitionamiga/rast/internal/demoshader"
)

func main() {
	out := flag.String("out", "dump.bmp", "output BMP path")
	scenePath := flag.String("scene", "", "Lua scene script (see examples/scene)")
	width := flag.Int("width", 1600, "framebuffer width")
	height := flag.Int("height", 900, "framebuffer height")
	flag.Parse()

	if err := run(*out, *scenePath, *width, *height); err != nil {
		slog.Error("rastdump failed", "error", err)
		os.Exit(1)
	}
}

func run(out, scenePath string, width, height int) error {
	sc, err := loadScene(scenePath)
	if err != nil {
		return err
	}

	r := graphics.NewRasterizer()
	fb := graphics.NewFramebuffer(width, height, 1, true)
	fb.Clear(graphics.ClearValue{Color: 0x787878FF, Depth: 1.0})
	handle := graphics.NewFramebufferHandle(fb)

	if err := r.NewFrame(); err != nil {
		return err
	}
	r.PushRenderTarget(handle)

	call := &graphics.IndexedRenderCall[demoshader.Uniform, demoshader.Working]{
		Pipeline: &graphics.Pipeline[demoshader.Uniform, demoshader.Working]{
			Depth:    graphics.DepthWrite,
			CullBack: true,
			Winding:  graphics.WindingCCW,
			Shader:   demoshader.Shader{},
		},
		Uniform:       &demoshader.Uniform{Scene: sc},
		Indices:       sc.Indices,
		InstanceCount: 1,
	}
	if err := graphics.RenderIndexed(r, call); err != nil {
		return err
	}
	if err := r.PopRenderTarget(); err != nil {
		return err
	}

	stats := r.Stats()
	slog.Info("rendered frame",
		"calls", stats.Calls,
		"instances", stats.Instances,
		"faces_processed", stats.FacesProcessed,
		"faces_rendered", stats.FacesRendered,
	)

	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("rastdump: creating %s: %w", out, err)
	}
	defer f.Close()

	if err := bmp.Encode(f, colorImage{fb.ColorAttachments()[0]}); err != nil {
		return fmt.Errorf("rastdump: encoding %s: %w", out, err)
	}
	return nil
}

func loadScene(path string) (*scene.Scene, error) {
	if path == "" {
		return defaultScene(), nil
	}
	return scene.Load(path)
}

func defaultScene() *scene.Scene {
	return &scene.Scene{
		Vertices: []scene.Vertex{
			{X: 0, Y: -0.5, Z: 0.5, Color: 0xFF0000FF},
			{X: 0.5, Y: 0.5, Z: 0.5, Color: 0x00FF00FF},
			{X: -0.5, Y: 0.5, Z: 0.5, Color: 0x0000FFFF},
		},
		Indices: []uint16{0, 2, 1},
	}
}

// colorImage adapts a graphics.Image[uint32] (big-endian packed RGBA8) to
// the standard image.Image interface so it can be handed to bmp.Encode.
type colorImage struct {
	img *graphics.Image[uint32]
}

func (c colorImage) ColorModel() color.Model {
	return color.RGBAModel
}

func (c colorImage) Bounds() image.Rectangle {
	w, h := c.img.Size()
	return image.Rect(0, 0, w, h)
}

func (c colorImage) At(x, y int) color.Color {
	v, ok := c.img.At(x, y)
	if !ok {
		return color.RGBA{}
	}
	return color.RGBA{
		R: byte(v >> 24),
		G: byte(v >> 16),
		B: byte(v >> 8),
		A: byte(v),
	}
}
