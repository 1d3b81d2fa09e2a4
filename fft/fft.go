package fft

import (
	"errors"
	"strings"

	dspfft "github.com/mjibson/go-dsp/fft"

	"github.com/neurlang/spectrograph/window"
)

// ErrUnknownEngine is returned by NewEngine for names not in EngineNames.
var ErrUnknownEngine = errors.New("unknown fft engine")

// Engine transforms one segment into its spectrum. The segment is zero padded
// to the next power of two >= max(minSize, len(segment)); a negative minSize
// pads only to the segment's own next power of two. The input is not modified.
type Engine interface {
	Transform(segment []complex128, minSize int) []complex128
}

// PadExponent returns the smallest p with 2^p >= max(minSize, length).
func PadExponent(length, minSize int) int {
	target := length
	if minSize > target {
		target = minSize
	}
	p, size := 0, 1
	for size < target {
		size <<= 1
		p++
	}
	return p
}

// ReverseBits reverses the low p bits of i.
func ReverseBits(i, p int) int {
	r := 0
	for b := 0; b < p; b++ {
		r = r<<1 | (i>>b)&1
	}
	return r
}

// padded copies segment into a zeroed buffer of length 1<<p. With p == 0 the
// segment is copied as is.
func padded(segment []complex128, p int) []complex128 {
	if p == 0 {
		return append([]complex128(nil), segment...)
	}
	buf := make([]complex128, 1<<p)
	copy(buf, segment)
	return buf
}

func weigh(w window.Func, i, n int) complex128 {
	if w == nil {
		return 1
	}
	return complex(w.Weight(i, n), 0)
}

// Iterative is the radix-2 Cooley-Tukey transform run over a bit-reversed
// buffer.
type Iterative struct {
	Window  window.Func
	Twiddle *TwiddleCache
}

func (e Iterative) Transform(segment []complex128, minSize int) []complex128 {
	p := PadExponent(len(segment), minSize)
	signal := padded(segment, p)
	if p == 0 {
		return signal
	}

	n := len(signal)
	out := make([]complex128, n)
	for i, v := range signal {
		out[ReverseBits(i, p)] = v * weigh(e.Window, i, n)
	}

	for size := 2; size <= n; size <<= 1 {
		half := size / 2
		for i := 0; i <= n-size; i += size {
			for m := i; m < i+half; m++ {
				term1 := out[m]
				term2 := e.Twiddle.Omega(size, -m) * out[m+half]
				out[m] = term1 + term2
				out[m+half] = term1 - term2
			}
		}
	}
	return out
}

// Recursive is the even/odd divide and conquer formulation of the same
// transform. It allocates per level and exists mostly as a cross-check.
type Recursive struct {
	Window  window.Func
	Twiddle *TwiddleCache
}

func (e Recursive) Transform(segment []complex128, minSize int) []complex128 {
	p := PadExponent(len(segment), minSize)
	signal := padded(segment, p)
	if p == 0 {
		return signal
	}
	n := len(signal)
	for i := range signal {
		signal[i] *= weigh(e.Window, i, n)
	}
	e.split(signal)
	return signal
}

func (e Recursive) split(signal []complex128) {
	n := len(signal)
	if n == 1 {
		return
	}
	even := make([]complex128, 0, n/2)
	odd := make([]complex128, 0, n/2)
	for i, v := range signal {
		if i%2 == 1 {
			odd = append(odd, v)
		} else {
			even = append(even, v)
		}
	}
	e.split(even)
	e.split(odd)

	for m := 0; m < n/2; m++ {
		w := e.Twiddle.Omega(n, -m)
		signal[m] = even[m] + w*odd[m]
		signal[m+n/2] = even[m] - w*odd[m]
	}
}

// Reference pads and windows like Iterative and hands the buffer to go-dsp.
type Reference struct {
	Window window.Func
}

func (e Reference) Transform(segment []complex128, minSize int) []complex128 {
	p := PadExponent(len(segment), minSize)
	signal := padded(segment, p)
	if p == 0 {
		return signal
	}
	n := len(signal)
	for i := range signal {
		signal[i] *= weigh(e.Window, i, n)
	}
	return dspfft.FFT(signal)
}

// EngineNames lists the names accepted by NewEngine.
func EngineNames() []string {
	return []string{"iterative", "recursive", "godsp"}
}

// NewEngine builds a named engine around w. The cache is shared by the
// iterative and recursive engines and ignored by godsp.
func NewEngine(name string, w window.Func, cache *TwiddleCache) (Engine, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "iterative":
		return Iterative{Window: w, Twiddle: cache}, nil
	case "recursive":
		return Recursive{Window: w, Twiddle: cache}, nil
	case "godsp", "go-dsp", "reference":
		return Reference{Window: w}, nil
	}
	return nil, ErrUnknownEngine
}
