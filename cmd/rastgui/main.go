// main.go - Live windowed preview example for the rast rasterizer

/*
rastgui renders a Lua-scripted scene every tick and blits the result into an
ebiten window, following the teacher project's EbitenOutput pattern (a
*ebiten.Image rewritten each Draw from a plain byte buffer). Pressing C
copies the current frame's render stats to the system clipboard via
golang.design/x/clipboard, mirroring the teacher's clipboard-paste feature
on the same library.
*/
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"golang.design/x/clipboard"

	"github.com/intuitionamiga/rast/examples/scene"
	"github.com/intuitionamiga/rast/graphics"
	"github.com/intuitionamiga/rast/internal/demoshader"
)

type game struct {
	mu sync.Mutex

	rast   *graphics.Rasterizer
	handle *graphics.FramebufferHandle
	fb     *graphics.Framebuffer
	sc     *scene.Scene
	width  int
	height int
	window *ebiten.Image

	clipOK   bool
	clipOnce sync.Once
}

func (g *game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		g.copyStatsToClipboard()
	}
	return g.renderFrame()
}

func (g *game) renderFrame() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.fb.Clear(graphics.ClearValue{Color: 0x787878FF, Depth: 1.0})

	if err := g.rast.NewFrame(); err != nil {
		return err
	}
	g.rast.PushRenderTarget(g.handle)

	call := &graphics.IndexedRenderCall[demoshader.Uniform, demoshader.Working]{
		Pipeline: &graphics.Pipeline[demoshader.Uniform, demoshader.Working]{
			Depth:    graphics.DepthWrite,
			CullBack: true,
			Winding:  graphics.WindingCCW,
			Shader:   demoshader.Shader{},
		},
		Uniform:       &demoshader.Uniform{Scene: g.sc},
		Indices:       g.sc.Indices,
		InstanceCount: 1,
	}
	if err := graphics.RenderIndexed(g.rast, call); err != nil {
		return err
	}
	return g.rast.PopRenderTarget()
}

func (g *game) copyStatsToClipboard() {
	g.clipOnce.Do(func() {
		g.clipOK = clipboard.Init() == nil
	})
	if !g.clipOK {
		return
	}
	stats := g.rast.Stats()
	text := fmt.Sprintf("calls=%d instances=%d faces_processed=%d faces_rendered=%d",
		stats.Calls, stats.Instances, stats.FacesProcessed, stats.FacesRendered)
	clipboard.Write(clipboard.FmtText, []byte(text))
}

func (g *game) Draw(screen *ebiten.Image) {
	if g.window == nil {
		g.window = ebiten.NewImage(g.width, g.height)
	}

	g.mu.Lock()
	pixels := make([]byte, g.width*g.height*4)
	color := g.fb.ColorAttachments()[0]
	for _, c := range color.Coordinates() {
		v, _ := color.At(c.X, c.Y)
		idx := (c.Y*g.width + c.X) * 4
		pixels[idx+0] = byte(v >> 24)
		pixels[idx+1] = byte(v >> 16)
		pixels[idx+2] = byte(v >> 8)
		pixels[idx+3] = byte(v)
	}
	g.mu.Unlock()

	g.window.WritePixels(pixels)
	screen.DrawImage(g.window, nil)
}

func (g *game) Layout(_, _ int) (int, int) {
	return g.width, g.height
}

func main() {
	scenePath := flag.String("scene", "", "Lua scene script (see examples/scene)")
	scale := flag.Int("scale", 1, "window scale factor")
	width := flag.Int("width", 640, "framebuffer width")
	height := flag.Int("height", 480, "framebuffer height")
	flag.Parse()

	sc, err := loadScene(*scenePath)
	if err != nil {
		slog.Error("rastgui: loading scene", "error", err)
		os.Exit(1)
	}

	fb := graphics.NewFramebuffer(*width, *height, 1, true)
	g := &game{
		rast:   graphics.NewRasterizer(),
		handle: graphics.NewFramebufferHandle(fb),
		fb:     fb,
		sc:     sc,
		width:  *width,
		height: *height,
	}

	ebiten.SetWindowSize(*width * *scale, *height * *scale)
	ebiten.SetWindowTitle("rast preview")
	ebiten.SetWindowResizable(true)

	if err := ebiten.RunGame(g); err != nil {
		slog.Error("rastgui: run loop exited", "error", err)
		os.Exit(1)
	}
}

func loadScene(path string) (*scene.Scene, error) {
	if path == "" {
		return &scene.Scene{
			Vertices: []scene.Vertex{
				{X: 0, Y: -0.5, Z: 0.5, Color: 0xFF0000FF},
				{X: 0.5, Y: 0.5, Z: 0.5, Color: 0x00FF00FF},
				{X: -0.5, Y: 0.5, Z: 0.5, Color: 0x0000FFFF},
			},
			Indices: []uint16{0, 2, 1},
		}, nil
	}
	return scene.Load(path)
}
