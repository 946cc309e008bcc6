package main

import (
	"path/filepath"

	"github.com/massung/chip-8/chip8"
	"github.com/veandco/go-sdl2/sdl"
)

var (
	/// Render target holding the CHIP-8 display at 1:1.
	///
	Screen *sdl.Texture

	/// Layout of each area of the window.
	///
	Layout struct {
		Screen    sdl.Rect
		Assembly  sdl.Rect
		Registers sdl.Rect
		Log       sdl.Rect
	}
)

/// InitWindow lays out the window for the current scale and opens it.
///
func InitWindow() {
	var err error

	scale := int32(Opts.Scale)

	Layout.Screen = sdl.Rect{X: 10, Y: 10, W: chip8.Width * scale, H: chip8.Height * scale}
	Layout.Assembly = sdl.Rect{
		X: Layout.Screen.X + Layout.Screen.W + 12,
		Y: 10,
		W: 23*CharWidth + 8,
		H: max32(Layout.Screen.H, DisassemblyLines*LineHeight+8),
	}
	Layout.Registers = sdl.Rect{
		X: 10,
		Y: Layout.Assembly.Y + Layout.Assembly.H + 12,
		W: 26*CharWidth + 8,
		H: 8*LineHeight + 8,
	}
	Layout.Log = sdl.Rect{
		X: Layout.Registers.X + Layout.Registers.W + 12,
		Y: Layout.Registers.Y,
		W: max32(Layout.Assembly.X+Layout.Assembly.W-Layout.Registers.W-22, 24*CharWidth+8),
		H: Layout.Registers.H,
	}

	w := max32(Layout.Assembly.X+Layout.Assembly.W, Layout.Log.X+Layout.Log.W) + 10
	h := Layout.Log.Y + Layout.Log.H + 10

	title := "CHIP-8 - " + filepath.Base(Opts.Rom)

	// create the main window and renderer or panic
	if Window, err = sdl.CreateWindow(title, sdl.WINDOWPOS_CENTERED, sdl.WINDOWPOS_CENTERED, w, h, sdl.WINDOW_SHOWN); err != nil {
		panic(err)
	}
	if Renderer, err = sdl.CreateRenderer(Window, -1, sdl.RENDERER_ACCELERATED|sdl.RENDERER_TARGETTEXTURE); err != nil {
		panic(err)
	}
}

/// InitScreen creates the render target for the CHIP-8 video memory.
///
func InitScreen() {
	var err error

	// create a render target for the display
	Screen, err = Renderer.CreateTexture(sdl.PIXELFORMAT_RGB888, sdl.TEXTUREACCESS_TARGET, chip8.Width, chip8.Height)
	if err != nil {
		panic(err)
	}
}

/// RefreshScreen with the CHIP-8 video memory.
///
func RefreshScreen() {
	if err := Renderer.SetRenderTarget(Screen); err != nil {
		panic(err)
	}

	// the background color for the screen
	Renderer.SetDrawColor(143, 145, 133, 255)
	Renderer.Clear()

	// set the pixel color
	Renderer.SetDrawColor(17, 29, 43, 255)

	// draw all the lit pixels
	for y, row := range VM.Frame().Rows() {
		for x, lit := range row {
			if lit {
				Renderer.DrawPoint(int32(x), int32(y))
			}
		}
	}

	// restore the render target
	Renderer.SetRenderTarget(nil)
}

/// CopyScreen stretches the render target to fill a rectangle.
///
func CopyScreen(dst sdl.Rect) {
	Renderer.Copy(Screen, nil, &dst)
}

func max32(a, b int32) int32 {
	if a > b {
		return a
	}
	return b
}
