package export

import (
	"image"
	"image/gif"
	"io"
	"os"

	"github.com/san-kum/galaxy/internal/raster"
)

// GIFRecorder collects framebuffer snapshots for an animated GIF.
type GIFRecorder struct {
	Delay     int // hundredths of a second per frame
	MaxFrames int // 0 means unbounded; older frames are dropped first
	frames    []*image.Paletted
}

func NewGIFRecorder(delay, maxFrames int) *GIFRecorder {
	if delay < 1 {
		delay = 2
	}
	return &GIFRecorder{Delay: delay, MaxFrames: maxFrames}
}

// Capture snapshots fb using the raster palette.
func (r *GIFRecorder) Capture(fb *raster.Framebuffer) {
	r.frames = append(r.frames, fb.Image())
	if r.MaxFrames > 0 && len(r.frames) > r.MaxFrames {
		r.frames = r.frames[len(r.frames)-r.MaxFrames:]
	}
}

func (r *GIFRecorder) Len() int { return len(r.frames) }

func (r *GIFRecorder) Reset() { r.frames = nil }

// Encode writes every captured frame; it is a no-op with no frames.
func (r *GIFRecorder) Encode(w io.Writer) error {
	if len(r.frames) == 0 {
		return nil
	}
	anim := gif.GIF{LoopCount: 0}
	for _, frame := range r.frames {
		anim.Image = append(anim.Image, frame)
		anim.Delay = append(anim.Delay, r.Delay)
	}
	return gif.EncodeAll(w, &anim)
}

func (r *GIFRecorder) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return r.Encode(f)
}
