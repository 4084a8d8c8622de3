package analysis

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
	"github.com/mjibson/go-dsp/window"
)

// Spectrum is the one-sided amplitude spectrum of a series of N samples.
// Bin k corresponds to k cycles over the whole series.
type Spectrum struct {
	Amplitude []float64
	N         int
}

// NewSpectrum removes the mean, applies a Hann window and transforms.
func NewSpectrum(series []float64) (*Spectrum, error) {
	n := len(series)
	if n < 4 {
		return nil, fmt.Errorf("need at least 4 samples, got %d", n)
	}

	var mean float64
	for _, v := range series {
		mean += v
	}
	mean /= float64(n)

	x := make([]float64, n)
	for i, v := range series {
		x[i] = v - mean
	}
	window.Apply(x, window.Hann)

	coeffs := fft.FFTReal(x)
	amp := make([]float64, n/2+1)
	for k := range amp {
		amp[k] = 2 * cmplx.Abs(coeffs[k]) / float64(n)
	}
	return &Spectrum{Amplitude: amp, N: n}, nil
}

// Peak returns the strongest bin above DC. A flat series gives bin 0.
func (s *Spectrum) Peak() (bin int, amplitude float64) {
	const floor = 1e-9
	for k := 1; k < len(s.Amplitude); k++ {
		if a := s.Amplitude[k]; a > floor && a > amplitude {
			bin, amplitude = k, a
		}
	}
	return bin, amplitude
}

// Period returns the period of bin in samples; DC has an infinite period.
func (s *Spectrum) Period(bin int) float64 {
	if bin <= 0 {
		return math.Inf(1)
	}
	return float64(s.N) / float64(bin)
}
