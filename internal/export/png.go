package export

import (
	"image"
	"image/png"
	"io"
	"os"

	"github.com/san-kum/galaxy/internal/raster"
)

// WritePNG encodes fb, each pixel repeated scale times on both axes.
func WritePNG(w io.Writer, fb *raster.Framebuffer, scale int) error {
	if scale < 1 {
		scale = 1
	}
	fw, fh := fb.Size()
	img := image.NewPaletted(image.Rect(0, 0, fw*scale, fh*scale), raster.Palette())
	for y := 0; y < fh*scale; y++ {
		for x := 0; x < fw*scale; x++ {
			img.SetColorIndex(x, y, fb.GetPixel(x/scale, y/scale))
		}
	}
	return png.Encode(w, img)
}

func SavePNG(path string, fb *raster.Framebuffer, scale int) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return WritePNG(f, fb, scale)
}
