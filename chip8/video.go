package chip8

const (
	/// Width and Height of the CHIP-8 display in pixels.
	///
	Width  = 64
	Height = 32

	/// pitch is the number of video bytes in a single scan line.
	///
	pitch = Width >> 3
)

/// Frame is a copy of CHIP-8 video memory (64x32 bits). Each bit is a
/// single pixel, stored MSB first: pixel <0,0> is bit 0x80 of byte 0
/// and each scan line is 8 bytes wide.
///
type Frame [Width * Height >> 3]byte

/// Pixel returns true if the pixel at <x,y> is set. Coordinates wrap
/// around the edges of the display.
///
func (f Frame) Pixel(x, y int) bool {
	x &= Width - 1
	y &= Height - 1

	return f[y*pitch+x>>3]&(0x80>>uint(x&7)) != 0
}

/// Lit returns the number of set pixels.
///
func (f Frame) Lit() int {
	n := 0

	for _, b := range f {
		for ; b != 0; b &= b - 1 {
			n++
		}
	}

	return n
}

/// Rows expands the frame into one boolean per pixel.
///
func (f Frame) Rows() (rows [Height][Width]bool) {
	for y := range rows {
		for x := range rows[y] {
			rows[y][x] = f.Pixel(x, y)
		}
	}

	return
}

/// Clear the video display memory.
///
func (vm *CHIP_8) cls() {
	vm.video = Frame{}
	vm.redraw = true
}

/// draw a sprite at I to video memory at vx, vy.
///
func (vm *CHIP_8) drw(x, y uint, n byte) {
	c := byte(0)

	// video memory byte and bit offset, wrapped to the display
	b := uint(vm.V[x]&(Width-1)) >> 3
	i := uint(vm.V[x] & 7)

	// which scan line will it render on
	line := uint(vm.V[y] & (Height - 1))

	// draw each row of the sprite
	for r := uint(0); r < uint(n); r++ {
		s := vm.Memory[(uint(vm.I)+r)&0xFFF]

		// sprites wrap vertically as well as horizontally
		row := ((line + r) & (Height - 1)) * pitch
		n0 := row + b
		n1 := row + (b+1)&(pitch-1)

		// origin pixel values
		b0 := vm.video[n0]
		b1 := vm.video[n1]

		// xor pixels
		vm.video[n0] ^= s >> i

		// are there pixels overlapping next byte?
		if i > 0 {
			vm.video[n1] ^= s << (8 - i)
		}

		// were any pixels turned off?
		c |= b0 & ^vm.video[n0]
		c |= b1 & ^vm.video[n1]
	}

	// set carry flag if any collision occurred
	if c != 0 {
		vm.V[0xF] = 1
	} else {
		vm.V[0xF] = 0
	}

	vm.redraw = true
}
