package chip8

import "strings"

// Display dimensions in pixels.
const (
	Width  = 64
	Height = 32
)

// Framebuffer is the monochrome display, stored row-major from the top-left.
// Coordinates wrap around on both axes.
type Framebuffer [Width * Height]bool

func index(x, y int) int {
	x %= Width
	if x < 0 {
		x += Width
	}
	y %= Height
	if y < 0 {
		y += Height
	}
	return x + Width*y
}

// Clear turns every pixel off.
func (f *Framebuffer) Clear() { *f = Framebuffer{} }

// Paint toggles the pixel at x, y and reports whether it was switched off.
func (f *Framebuffer) Paint(x, y int) (erased bool) {
	i := index(x, y)
	erased = f[i]
	f[i] = !f[i]
	return erased
}

// Get reports whether the pixel at x, y is on.
func (f *Framebuffer) Get(x, y int) bool { return f[index(x, y)] }

// Pixels returns a copy of the display contents.
func (f *Framebuffer) Pixels() [Width * Height]bool { return *f }

func (f *Framebuffer) String() string {
	var b strings.Builder
	for y := 0; y < Height; y++ {
		for x := 0; x < Width; x++ {
			if f.Get(x, y) {
				b.WriteByte('#')
			} else {
				b.WriteByte('.')
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}
