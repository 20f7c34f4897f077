package vip

import (
	"image"
	"image/color"
	"image/png"
	"io"

	"golang.org/x/image/draw"

	"github.com/nf/ch8/chip8"
)

// Image returns the frame as a Width×Height image.
func (f *Frame) Image(fg, bg color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, chip8.Width, chip8.Height))
	f.Draw(img, fg, bg)
	return img
}

// Draw paints the frame into the top-left Width×Height pixels of dst.
func (f *Frame) Draw(dst *image.RGBA, fg, bg color.Color) {
	on := color.RGBAModel.Convert(fg).(color.RGBA)
	off := color.RGBAModel.Convert(bg).(color.RGBA)
	for y := 0; y < chip8.Height; y++ {
		for x := 0; x < chip8.Width; x++ {
			c := off
			if f.Pixels[x+chip8.Width*y] {
				c = on
			}
			dst.SetRGBA(dst.Rect.Min.X+x, dst.Rect.Min.Y+y, c)
		}
	}
}

// WritePNG writes the frame to w as a PNG, each pixel scale×scale.
func WritePNG(w io.Writer, f Frame, scale int, fg, bg color.Color) error {
	if scale < 1 {
		scale = 1
	}
	src := f.Image(fg, bg)
	dst := image.NewRGBA(image.Rect(0, 0, chip8.Width*scale, chip8.Height*scale))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return png.Encode(w, dst)
}
