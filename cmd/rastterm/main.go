// main.go - Raw-terminal ASCII/ANSI preview example for the rast rasterizer

/*
rastterm renders a Lua-scripted scene into an in-memory framebuffer and
prints it as an ANSI truecolor grid directly to the controlling terminal,
for headless hosts with no display server. Terminal setup follows the
teacher project's raw-mode pattern: put the terminal in raw mode, run the
loop, and restore the prior state on exit or error.
*/
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"golang.org/x/term"

	"github.com/intuitionamiga/rast/examples/scene"
	"github.com/intuitionamiga/rast/graphics"
	"github.com/intuitionamiga/rast/internal/demoshader"
)

func main() {
	scenePath := flag.String("scene", "", "Lua scene script (see examples/scene)")
	fps := flag.Int("fps", 1, "frames to render before exiting")
	cols := flag.Int("cols", 80, "terminal columns to render into")
	rows := flag.Int("rows", 40, "terminal rows to render into")
	flag.Parse()

	if err := run(*scenePath, *fps, *cols, *rows); err != nil {
		slog.Error("rastterm failed", "error", err)
		os.Exit(1)
	}
}

func run(scenePath string, frames, cols, rows int) error {
	sc, err := loadScene(scenePath)
	if err != nil {
		return err
	}

	fd := int(os.Stdin.Fd())
	var oldState *term.State
	if term.IsTerminal(fd) {
		oldState, err = term.MakeRaw(fd)
		if err != nil {
			return fmt.Errorf("rastterm: entering raw mode: %w", err)
		}
		defer term.Restore(fd, oldState)
	}

	out := bufio.NewWriter(os.Stdout)
	defer out.Flush()

	rast := graphics.NewRasterizer()
	fb := graphics.NewFramebuffer(cols, rows, 1, true)
	handle := graphics.NewFramebufferHandle(fb)

	for frame := 0; frame < frames; frame++ {
		fb.Clear(graphics.ClearValue{Color: 0x101010FF, Depth: 1.0})

		if err := rast.NewFrame(); err != nil {
			return err
		}
		rast.PushRenderTarget(handle)

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
		if err := graphics.RenderIndexed(rast, call); err != nil {
			return err
		}
		if err := rast.PopRenderTarget(); err != nil {
			return err
		}

		writeANSIFrame(out, fb.ColorAttachments()[0], cols, rows)
		out.Flush()

		if frame+1 < frames {
			time.Sleep(100 * time.Millisecond)
		}
	}
	return nil
}

// writeANSIFrame prints one space character per pixel, colored with a 24-bit
// ANSI background escape, moving the cursor home first.
func writeANSIFrame(out *bufio.Writer, color *graphics.Image[uint32], cols, rows int) {
	fmt.Fprint(out, "\x1b[H")
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			v, _ := color.At(x, y)
			r, g, b := byte(v>>24), byte(v>>16), byte(v>>8)
			fmt.Fprintf(out, "\x1b[48;2;%d;%d;%dm ", r, g, b)
		}
		fmt.Fprint(out, "\x1b[0m\n")
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
