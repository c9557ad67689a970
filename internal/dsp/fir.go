package dsp

import "math"

// FIRKernel is an immutable set of FIR taps, grounded on the teacher's
// dsp.go gen_lowpass/gen_bandpass generation routines, generalized to a
// generic numeric type and to low-pass, high-pass and band-pass variants.
type FIRKernel[T Float] struct {
	taps []T
}

// NewLowPassFIR builds an N-tap low-pass kernel at cutoff fc (a fraction
// of the sample rate, 0<fc<0.5) using the windowed-sinc method.
func NewLowPassFIR[T Float](n int, fc float64, w Window) FIRKernel[T] {
	return FIRKernel[T]{taps: lowPassTaps[T](n, fc, w)}
}

// NewHighPassFIR builds an N-tap high-pass kernel by spectral inversion
// of the normalised low-pass at the same cutoff.
func NewHighPassFIR[T Float](n int, fc float64, w Window) FIRKernel[T] {
	lp := lowPassTaps[T](n, fc, w)
	taps := make([]T, n)
	center := n / 2
	for i := range taps {
		taps[i] = -lp[i]
	}
	if n%2 == 1 {
		taps[center] += 1
	} else {
		// Even-length spectral inversion still sums to unity gain at
		// Nyquist; no special-cased center tap exists.
	}
	return FIRKernel[T]{taps: taps}
}

// NewBandPassFIR builds a band-pass kernel between f1 and f2 (fractions
// of sample rate, f1<f2) by subtracting two low-passes.
func NewBandPassFIR[T Float](n int, f1, f2 float64, w Window) FIRKernel[T] {
	lpHigh := lowPassTaps[T](n, f2, w)
	lpLow := lowPassTaps[T](n, f1, w)
	taps := make([]T, n)
	for i := range taps {
		taps[i] = lpHigh[i] - lpLow[i]
	}
	return FIRKernel[T]{taps: taps}
}

func lowPassTaps[T Float](n int, fc float64, w Window) []T {
	if n < 1 {
		panic("dsp: FIR kernel must have at least 1 tap")
	}
	weights := w.weights(n)
	center := 0.5 * float64(n-1)
	raw := make([]float64, n)
	for j := 0; j < n; j++ {
		d := float64(j) - center
		var sinc float64
		if d == 0 {
			sinc = 2 * fc
		} else {
			sinc = math.Sin(2*math.Pi*fc*d) / (math.Pi * d)
		}
		raw[j] = sinc * weights[j]
	}
	var sum float64
	for _, v := range raw {
		sum += v
	}
	taps := make([]T, n)
	for j, v := range raw {
		if sum != 0 {
			v /= sum
		}
		taps[j] = T(v)
	}
	return taps
}

// New returns a fresh, zero-state FIRFilter for this kernel.
func (k FIRKernel[T]) New() Filter[T, T] {
	return &FIRFilter[T]{taps: k.taps, ring: make([]T, len(k.taps))}
}

func (k FIRKernel[T]) Len() int { return len(k.taps) }

// FIRFilter is a stateful FIR filter: a length-N ring buffer and a dot
// product per sample. Delay = (N-1)/2 per spec.md §4.1.
type FIRFilter[T Float] struct {
	taps []T
	ring []T
	pos  int
}

func (f *FIRFilter[T]) Filter(x T) (T, bool) {
	f.ring[f.pos] = x
	var acc T
	idx := f.pos
	for _, c := range f.taps {
		acc += c * f.ring[idx]
		idx--
		if idx < 0 {
			idx = len(f.ring) - 1
		}
	}
	f.pos++
	if f.pos == len(f.ring) {
		f.pos = 0
	}
	return acc, true
}

func (f *FIRFilter[T]) Delay() int {
	return (len(f.taps) - 1) / 2
}

func (f *FIRFilter[T]) Reset() {
	for i := range f.ring {
		f.ring[i] = 0
	}
	f.pos = 0
}
