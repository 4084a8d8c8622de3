package metrics

import (
	"github.com/san-kum/galaxy/internal/engine"
)

// LitPixels is the mean fraction of the display holding a non-zero colour.
type LitPixels struct {
	name    string
	sum     float64
	samples int
}

func NewLitPixels() *LitPixels {
	return &LitPixels{name: "lit_pixels"}
}

func (l *LitPixels) Name() string { return l.name }

func (l *LitPixels) Observe(v engine.View, f engine.Frame) {
	w, h := v.Size()
	if w*h == 0 {
		return
	}
	l.sum += float64(v.Lit()) / float64(w*h)
	l.samples++
}

func (l *LitPixels) Value() float64 {
	if l.samples == 0 {
		return 0
	}
	return l.sum / float64(l.samples)
}

func (l *LitPixels) Reset() {
	l.sum = 0
	l.samples = 0
}

// FrameRate is completed field frames per display refresh.
type FrameRate struct {
	name      string
	completed int
	refreshes int
}

func NewFrameRate() *FrameRate {
	return &FrameRate{name: "frame_rate"}
}

func (r *FrameRate) Name() string { return r.name }

func (r *FrameRate) Observe(v engine.View, f engine.Frame) {
	r.completed += f.Completed
	r.refreshes++
}

func (r *FrameRate) Value() float64 {
	if r.refreshes == 0 {
		return 0
	}
	return float64(r.completed) / float64(r.refreshes)
}

func (r *FrameRate) Reset() {
	r.completed = 0
	r.refreshes = 0
}
