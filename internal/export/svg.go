package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/galaxy/internal/orbit"
	"github.com/san-kum/galaxy/internal/raster"
)

// RasterToSVG draws every lit pixel as a coloured square.
func RasterToSVG(fb *raster.Framebuffer, scale float64) string {
	if fb == nil {
		return ""
	}
	w, h := fb.Size()
	width := float64(w) * scale
	height := float64(h) * scale

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, raster.Hex(0)))

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := fb.GetPixel(x, y)
			if c == 0 {
				continue
			}
			sb.WriteString(fmt.Sprintf(`<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s"/>
`, float64(x)*scale, float64(y)*scale, scale, scale, raster.Hex(c)))
		}
	}

	sb.WriteString("</svg>")
	return sb.String()
}

// TraceToSVG draws an orbit trace given in Q12.4 screen coordinates on a
// canvas of the display size, with the focus marked.
func TraceToSVG(points []orbit.Point, anchor orbit.Point, width, height int, strokeColor string) string {
	if len(points) < 2 {
		return ""
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<circle cx="%d" cy="%d" r="2" fill="#ffd700"/>
<path fill="none" stroke="%s" stroke-width="1" d="M`,
		width, height, width, height, anchor.X, anchor.Y, strokeColor))

	for i, p := range points {
		x := float64(p.X) / 16
		y := float64(p.Y) / 16
		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.2f,%.2f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.2f,%.2f", x, y))
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}
