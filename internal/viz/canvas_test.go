package viz

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestCanvasPlot(t *testing.T) {
	c := NewCanvas(2, 1)
	c.Plot(0, 0, 0x10)
	c.Plot(1, 3, 0x0F)

	if got := c.Grid[0][0]; got != blank|0x1|0x80 {
		t.Errorf("expected dots 1 and 8, got %U", got)
	}
	if c.Colors[0][0] != 0x0F {
		t.Errorf("cell should keep the brighter colour, got %#x", c.Colors[0][0])
	}

	// out of range is ignored
	c.Plot(-1, 0, 0xFF)
	c.Plot(4, 0, 0xFF)
	c.Plot(0, 4, 0xFF)
}

func TestCanvasMarkAndClear(t *testing.T) {
	c := NewCanvas(3, 2)
	c.Mark(2, 4, '◆', lipgloss.NewStyle())
	lines := strings.Split(strings.TrimRight(c.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(lines))
	}
	if []rune(lines[1])[1] != '◆' {
		t.Errorf("mark missing from row 1: %q", lines[1])
	}
	if !strings.Contains(c.Render(cellStyle), "◆") {
		t.Error("render dropped the mark")
	}

	c.Clear()
	if strings.ContainsRune(c.String(), '◆') {
		t.Error("clear should drop marks")
	}
}

func TestCanvasBlitAndLine(t *testing.T) {
	c := NewCanvas(4, 2)
	dw, dh := c.Dots()
	if dw != 8 || dh != 8 {
		t.Fatalf("expected 8x8 dots, got %dx%d", dw, dh)
	}

	dots := make([][]uint8, dh)
	for y := range dots {
		dots[y] = make([]uint8, dw)
	}
	dots[5][6] = 0x33
	c.Blit(dots)
	if c.Colors[1][3] != 0x33 {
		t.Errorf("blit should colour cell (1,3), got %#x", c.Colors[1][3])
	}
	if c.Grid[0][0] != blank {
		t.Error("dark entries should not be plotted")
	}

	c.Clear()
	c.DrawLine(0, 0, 7, 0, 0xFF)
	for col := 0; col < 4; col++ {
		if c.Grid[0][col] != blank|0x1|0x8 {
			t.Errorf("cell %d: expected the top row lit, got %U", col, c.Grid[0][col])
		}
	}
}
