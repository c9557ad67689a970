package dsp

import "math"

// Downsampler bridges an arbitrary input sample rate to an arbitrary
// output rate: zero-stuffed upsampling by an integer factor k (gain
// compensated), a 50-tap Blackman low-pass at the upsampled Nyquist
// fraction, and a rational accumulator that lets through one filtered
// sample per k*inRate/outRate of its upsampled ticks, per spec.md §4.1.
// When inRate==outRate this is the identity, per spec.md §8 property 8.
type Downsampler[T Float] struct {
	bypass  bool
	k       int
	inRate  int
	outRate int
	lpf     Filter[T, T]
	acc     int
	pending []T
}

// NewDownsampler builds a downsampler from inRate to outRate (Hz).
func NewDownsampler[T Float](inRate, outRate int) *Downsampler[T] {
	if inRate == outRate {
		return &Downsampler[T]{bypass: true, inRate: inRate, outRate: outRate}
	}
	k := int(math.Round(6 * float64(outRate) / float64(inRate)))
	if k < 1 {
		k = 1
	}
	fc := 0.5 / float64(k) * float64(outRate) / float64(inRate)
	lpf := NewLowPassFIR[T](50, fc, Blackman).New()
	return &Downsampler[T]{k: k, inRate: inRate, outRate: outRate, lpf: lpf}
}

func (d *Downsampler[T]) Filter(x T) (T, bool) {
	if d.bypass {
		return x, true
	}
	if len(d.pending) > 0 {
		out := d.pending[0]
		d.pending = d.pending[1:]
		return out, true
	}

	threshold := d.k * d.inRate
	for i := 0; i < d.k; i++ {
		var tick T
		if i == 0 {
			tick = T(float64(x) * float64(d.k))
		}
		filtered, _ := d.lpf.Filter(tick)
		d.acc += d.outRate
		if d.acc >= threshold {
			d.acc -= threshold
			d.pending = append(d.pending, filtered)
		}
	}

	if len(d.pending) == 0 {
		var zero T
		return zero, false
	}
	out := d.pending[0]
	d.pending = d.pending[1:]
	return out, true
}

func (d *Downsampler[T]) Delay() int {
	if d.bypass {
		return 0
	}
	return d.lpf.Delay()
}

func (d *Downsampler[T]) Reset() {
	if d.bypass {
		return
	}
	d.lpf.Reset()
	d.acc = 0
	d.pending = nil
}
