// Package iir provides the minimal IIR filtering machinery used by the
// vibration analysis pipeline: second-order sections in Direct Form II
// Transposed, Butterworth low-pass cascade design, and zero-phase
// (forward-backward) block application.
//
// The zero-phase path is the one the pipeline cares about: decay-window
// cropping and zero-crossing timing both read sample positions, so the
// filter must not shift the signal in time.
package iir
