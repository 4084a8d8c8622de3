package raster

import (
	"testing"
)

func TestSetGetBounds(t *testing.T) {
	fb := New(8, 4)
	fb.SetPixel(3, 2, 0x5A)
	if got := fb.GetPixel(3, 2); got != 0x5A {
		t.Errorf("expected 0x5a, got %#x", got)
	}

	for _, p := range [][2]int{{-1, 0}, {0, -1}, {8, 0}, {0, 4}} {
		fb.SetPixel(p[0], p[1], 0xFF)
		if got := fb.GetPixel(p[0], p[1]); got != 0 {
			t.Errorf("(%d,%d): expected 0 outside bounds, got %#x", p[0], p[1], got)
		}
	}
	if fb.Lit() != 1 {
		t.Errorf("out-of-range writes leaked: %d lit", fb.Lit())
	}
}

func TestCloneIsIndependent(t *testing.T) {
	fb := New(4, 4)
	fb.SetPixel(1, 1, 0x11)
	c := fb.Clone()
	fb.SetPixel(1, 1, 0x22)
	if c.GetPixel(1, 1) != 0x11 {
		t.Error("clone shares memory with the original")
	}
	fb.Clear()
	if fb.Lit() != 0 || c.Lit() != 1 {
		t.Errorf("expected 0 and 1 lit, got %d and %d", fb.Lit(), c.Lit())
	}
}

func TestChannels(t *testing.T) {
	fb := New(2, 2)
	fb.SetPixel(0, 0, 0xF0)
	fb.SetPixel(1, 1, 0x35)
	pink, cyan := fb.Channels()
	if pink != 18 || cyan != 5 {
		t.Errorf("expected (18,5), got (%d,%d)", pink, cyan)
	}
}

func TestPalette(t *testing.T) {
	p := Palette()
	if len(p) != 256 {
		t.Fatalf("expected 256 entries, got %d", len(p))
	}
	if Color(0) != background {
		t.Error("index 0 must be the background")
	}

	full := Color(0xFF)
	if full.R != 0xff || full.B != 0xff {
		t.Errorf("both channels at max should saturate, got %v", full)
	}
	pink := Color(0xF0)
	cyan := Color(0x0F)
	if pink.R <= cyan.R || cyan.G <= pink.G {
		t.Errorf("channels not distinguishable: pink %v cyan %v", pink, cyan)
	}
	if Hex(0) != "#0a0a0a" {
		t.Errorf("unexpected background hex %s", Hex(0))
	}
}

func TestImageMatchesBuffer(t *testing.T) {
	fb := New(5, 3)
	fb.SetPixel(4, 2, 0x9C)
	img := fb.Image()
	if img.ColorIndexAt(4, 2) != 0x9C {
		t.Errorf("expected index 0x9c, got %#x", img.ColorIndexAt(4, 2))
	}
	fb.SetPixel(4, 2, 0)
	if img.ColorIndexAt(4, 2) != 0x9C {
		t.Error("image aliases the framebuffer")
	}
}

func TestDownsampleKeepsBrightest(t *testing.T) {
	fb := New(8, 8)
	fb.SetPixel(1, 1, 0x21)
	fb.SetPixel(2, 3, 0xF0)
	fb.SetPixel(6, 6, 0x03)

	grid := fb.Downsample(2, 2)
	if len(grid) != 2 || len(grid[0]) != 2 {
		t.Fatalf("unexpected grid shape %dx%d", len(grid[0]), len(grid))
	}
	if grid[0][0] != 0xF0 {
		t.Errorf("expected 0xf0 top-left, got %#x", grid[0][0])
	}
	if grid[1][1] != 0x03 {
		t.Errorf("expected 0x03 bottom-right, got %#x", grid[1][1])
	}
	if grid[0][1] != 0 || grid[1][0] != 0 {
		t.Error("empty blocks should stay dark")
	}

	big := fb.Downsample(16, 16)
	if big[2][2] != 0x21 {
		t.Errorf("upsampled grid lost a pixel: %#x", big[2][2])
	}
}
