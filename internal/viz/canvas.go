package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]rune{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const blank rune = 0x2800

type mark struct {
	glyph rune
	style lipgloss.Style
}

// Canvas is a grid of braille cells. Each cell carries the brightest colour
// byte plotted into it and an optional overlay glyph that hides the dots.
type Canvas struct {
	Width, Height int
	Grid          [][]rune
	Colors        [][]uint8
	marks         [][]*mark
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
		Colors: make([][]uint8, h),
		marks:  make([][]*mark, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		c.Colors[i] = make([]uint8, w)
		c.marks[i] = make([]*mark, w)
	}
	c.Clear()
	return c
}

// Dots returns the canvas size in sub-pixels.
func (c *Canvas) Dots() (w, h int) { return c.Width * 2, c.Height * 4 }

func (c *Canvas) cell(x, y int) (row, col int, ok bool) {
	if x < 0 || y < 0 {
		return 0, 0, false
	}
	col, row = x/2, y/4
	if col >= c.Width || row >= c.Height {
		return 0, 0, false
	}
	return row, col, true
}

// Plot lights sub-pixel (x, y) with colour byte v. The cell keeps the
// brightest colour seen.
func (c *Canvas) Plot(x, y int, v uint8) {
	row, col, ok := c.cell(x, y)
	if !ok {
		return
	}
	c.Grid[row][col] |= pixelMap[y%4][x%2]
	if level(v) > level(c.Colors[row][col]) {
		c.Colors[row][col] = v
	}
}

// Mark replaces the cell under sub-pixel (x, y) with glyph.
func (c *Canvas) Mark(x, y int, glyph rune, style lipgloss.Style) {
	row, col, ok := c.cell(x, y)
	if !ok {
		return
	}
	c.marks[row][col] = &mark{glyph: glyph, style: style}
}

// Blit plots a dot grid such as raster.Downsample output, skipping dark
// entries.
func (c *Canvas) Blit(dots [][]uint8) {
	for y, row := range dots {
		for x, v := range row {
			if v != 0 {
				c.Plot(x, y, v)
			}
		}
	}
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = blank
			c.Colors[i][j] = 0
			c.marks[i][j] = nil
		}
	}
}

// DrawLine draws a line using Bresenham's algorithm
func (c *Canvas) DrawLine(x0, y0, x1, y1 int, v uint8) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Plot(x0, y0, v)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// String renders the canvas without colour.
func (c *Canvas) String() string {
	var b strings.Builder
	for i, row := range c.Grid {
		for j, r := range row {
			if m := c.marks[i][j]; m != nil {
				r = m.glyph
			}
			b.WriteRune(r)
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// Render colours each run of equal-coloured cells with paint.
func (c *Canvas) Render(paint func(v uint8) lipgloss.Style) string {
	var b, run strings.Builder
	for i, row := range c.Grid {
		var runColor uint8
		flush := func() {
			if run.Len() > 0 {
				b.WriteString(paint(runColor).Render(run.String()))
				run.Reset()
			}
		}
		for j, r := range row {
			if m := c.marks[i][j]; m != nil {
				flush()
				b.WriteString(m.style.Render(string(m.glyph)))
				continue
			}
			if v := c.Colors[i][j]; v != runColor {
				flush()
				runColor = v
			}
			run.WriteRune(r)
		}
		flush()
		b.WriteByte('\n')
	}
	return b.String()
}

// level is the summed channel intensity of a colour byte.
func level(v uint8) int { return int(v>>4) + int(v&0x0F) }

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
