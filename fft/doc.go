// Package fft computes the discrete spectrum of one analysis segment.
//
// The default engine is an iterative radix-2 Cooley-Tukey transform: the
// windowed samples are placed at their bit-reversed positions and combined by
// log2(N) butterfly stages. A recursive even/odd formulation and a go-dsp
// backed engine produce the same spectra and are used to cross-check it.
//
// Twiddle factors can be memoised with a TwiddleCache keyed on the exact
// (period, index) pair; cached and uncached runs are bit-identical.
package fft
