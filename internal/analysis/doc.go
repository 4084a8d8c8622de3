// Package analysis inspects stored run series.
//
// [NewSpectrum] turns a series such as lit pixels per refresh into a
// one-sided amplitude spectrum; [Spectrum.Peak] and [Spectrum.Period] find
// the dominant oscillation, which for the galaxy field tracks the swirl
// period set by the field's time step.
package analysis
