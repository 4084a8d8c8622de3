// Package raster is the in-memory display device the field draws into.
package raster

import (
	"fmt"
	"image"
	"image/color"
)

// Default display size.
const (
	DefaultWidth  = 320
	DefaultHeight = 180
)

// Framebuffer is one colour byte per pixel, pink<<4 | cyan.
// Out-of-range writes are dropped and reads return 0.
type Framebuffer struct {
	w, h int
	pix  []uint8
}

// New allocates a cleared framebuffer.
func New(w, h int) *Framebuffer {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return &Framebuffer{w: w, h: h, pix: make([]uint8, w*h)}
}

func (f *Framebuffer) Size() (w, h int) { return f.w, f.h }

func (f *Framebuffer) SetPixel(x, y int, c uint8) {
	if x < 0 || y < 0 || x >= f.w || y >= f.h {
		return
	}
	f.pix[y*f.w+x] = c
}

func (f *Framebuffer) GetPixel(x, y int) uint8 {
	if x < 0 || y < 0 || x >= f.w || y >= f.h {
		return 0
	}
	return f.pix[y*f.w+x]
}

// Pix exposes the backing bytes, row-major.
func (f *Framebuffer) Pix() []uint8 { return f.pix }

// Clear zeroes every pixel.
func (f *Framebuffer) Clear() {
	for k := range f.pix {
		f.pix[k] = 0
	}
}

// Clone returns an independent copy.
func (f *Framebuffer) Clone() *Framebuffer {
	c := &Framebuffer{w: f.w, h: f.h, pix: make([]uint8, len(f.pix))}
	copy(c.pix, f.pix)
	return c
}

// Lit counts non-zero pixels.
func (f *Framebuffer) Lit() int {
	n := 0
	for _, c := range f.pix {
		if c != 0 {
			n++
		}
	}
	return n
}

// Channels sums the pink and cyan levels over the whole buffer.
func (f *Framebuffer) Channels() (pink, cyan int) {
	for _, c := range f.pix {
		pink += int(c >> 4)
		cyan += int(c & 0x0F)
	}
	return pink, cyan
}

// Image wraps the buffer as a paletted image sharing no memory with it.
func (f *Framebuffer) Image() *image.Paletted {
	img := image.NewPaletted(image.Rect(0, 0, f.w, f.h), Palette())
	copy(img.Pix, f.pix)
	return img
}

// Downsample returns a w x h grid of the brightest cell in each block,
// used by the terminal view.
func (f *Framebuffer) Downsample(w, h int) [][]uint8 {
	out := make([][]uint8, h)
	for row := range out {
		out[row] = make([]uint8, w)
		y0, y1 := span(row, f.h, h)
		for col := range out[row] {
			x0, x1 := span(col, f.w, w)
			var best uint8
			bestLevel := -1
			for y := y0; y < y1; y++ {
				for x := x0; x < x1; x++ {
					c := f.GetPixel(x, y)
					if l := int(c>>4) + int(c&0x0F); l > bestLevel {
						best, bestLevel = c, l
					}
				}
			}
			out[row][col] = best
		}
	}
	return out
}

// span maps cell k of n onto [lo, hi) of size pixels, never empty.
func span(k, size, n int) (lo, hi int) {
	lo, hi = k*size/n, (k+1)*size/n
	if hi <= lo {
		hi = lo + 1
	}
	return lo, hi
}

var (
	background = color.RGBA{R: 0x0a, G: 0x0a, B: 0x0a, A: 0xff}
	pinkFull   = color.RGBA{R: 0xff, G: 0x40, B: 0xa0, A: 0xff}
	cyanFull   = color.RGBA{R: 0x00, G: 0xdc, B: 0xff, A: 0xff}
	palette    color.Palette
)

func init() {
	palette = make(color.Palette, 256)
	for k := range palette {
		palette[k] = Color(uint8(k))
	}
}

// Palette maps every colour byte to RGBA; index 0 is the background.
func Palette() color.Palette { return palette }

// Color blends the two channels additively over the background.
func Color(c uint8) color.RGBA {
	p, q := int(c>>4), int(c&0x0F)
	if p == 0 && q == 0 {
		return background
	}
	mix := func(bg, pink, cyan uint8) uint8 {
		v := int(bg) + int(pink)*p/15 + int(cyan)*q/15
		if v > 255 {
			v = 255
		}
		return uint8(v)
	}
	return color.RGBA{
		R: mix(background.R, pinkFull.R, cyanFull.R),
		G: mix(background.G, pinkFull.G, cyanFull.G),
		B: mix(background.B, pinkFull.B, cyanFull.B),
		A: 0xff,
	}
}

// Hex formats a colour byte as #rrggbb.
func Hex(c uint8) string {
	rgb := Color(c)
	return fmt.Sprintf("#%02x%02x%02x", rgb.R, rgb.G, rgb.B)
}
