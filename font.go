package main

import (
	"unicode"

	"github.com/massung/chip-8/chip8"
	"github.com/veandco/go-sdl2/sdl"
)

const (
	/// GlyphScale is the size of a single font pixel.
	///
	GlyphScale = 2

	/// CharWidth and LineHeight are the text cell size in window pixels.
	///
	CharWidth  = 5 * GlyphScale
	LineHeight = 7 * GlyphScale
)

/// Font maps each printable character to a 4x5 sprite, stored in the
/// high nibble of each row just like the CHIP-8 hex glyphs are.
///
var Font = map[rune][5]byte{
	'G': {0xF0, 0x80, 0xB0, 0x90, 0xF0},
	'H': {0x90, 0x90, 0xF0, 0x90, 0x90},
	'I': {0xE0, 0x40, 0x40, 0x40, 0xE0},
	'J': {0x30, 0x10, 0x10, 0x90, 0xF0},
	'K': {0x90, 0xA0, 0xC0, 0xA0, 0x90},
	'L': {0x80, 0x80, 0x80, 0x80, 0xF0},
	'M': {0x90, 0xF0, 0xF0, 0x90, 0x90},
	'N': {0x90, 0xD0, 0xB0, 0x90, 0x90},
	'O': {0x60, 0x90, 0x90, 0x90, 0x60},
	'P': {0xF0, 0x90, 0xF0, 0x80, 0x80},
	'Q': {0x60, 0x90, 0x90, 0xB0, 0x70},
	'R': {0xE0, 0x90, 0xE0, 0xA0, 0x90},
	'S': {0x70, 0x80, 0x60, 0x10, 0xE0},
	'T': {0xE0, 0x40, 0x40, 0x40, 0x40},
	'U': {0x90, 0x90, 0x90, 0x90, 0xF0},
	'V': {0x90, 0x90, 0x90, 0x90, 0x60},
	'W': {0x90, 0x90, 0xF0, 0xF0, 0x90},
	'X': {0x90, 0x90, 0x60, 0x90, 0x90},
	'Y': {0xA0, 0xA0, 0x40, 0x40, 0x40},
	'Z': {0xF0, 0x10, 0x60, 0x80, 0xF0},
	'-': {0x00, 0x00, 0xE0, 0x00, 0x00},
	'+': {0x00, 0x40, 0xE0, 0x40, 0x00},
	'=': {0x00, 0xF0, 0x00, 0xF0, 0x00},
	'#': {0x50, 0xF0, 0x50, 0xF0, 0x50},
	':': {0x00, 0x40, 0x00, 0x40, 0x00},
	'.': {0x00, 0x00, 0x00, 0x00, 0x40},
	',': {0x00, 0x00, 0x00, 0x40, 0x80},
	'!': {0x40, 0x40, 0x40, 0x00, 0x40},
	'?': {0xE0, 0x10, 0x60, 0x00, 0x40},
	'/': {0x10, 0x10, 0x20, 0x40, 0x80},
	'_': {0x00, 0x00, 0x00, 0x00, 0xF0},
	'[': {0x60, 0x40, 0x40, 0x40, 0x60},
	']': {0x60, 0x20, 0x20, 0x20, 0x60},
	'(': {0x20, 0x40, 0x40, 0x40, 0x20},
	')': {0x40, 0x20, 0x20, 0x20, 0x40},
	'"': {0xA0, 0xA0, 0x00, 0x00, 0x00},
	'\'': {0x40, 0x40, 0x00, 0x00, 0x00},
}

func init() {
	for i, c := range "0123456789ABCDEF" {
		var g [5]byte

		// hex digits come straight from the interpreter glyphs
		copy(g[:], chip8.Glyphs[i*5:])
		Font[c] = g
	}
}

/// DrawText renders a line of text with the current draw color.
///
func DrawText(s string, x, y int32) {
	for _, c := range s {
		if g, ok := Font[unicode.ToUpper(c)]; ok {
			for r, bits := range g {
				for b := 0; b < 4; b++ {
					if bits&(0x80>>uint(b)) != 0 {
						Renderer.FillRect(&sdl.Rect{
							X: x + int32(b)*GlyphScale,
							Y: y + int32(r)*GlyphScale,
							W: GlyphScale,
							H: GlyphScale,
						})
					}
				}
			}
		}

		// advance
		x += CharWidth
	}
}
