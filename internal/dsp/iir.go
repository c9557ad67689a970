package dsp

import "math"

// IIRType selects the frequency response shape of a Chebyshev IIR
// filter kernel.
type IIRType int

const (
	IIRLowPass IIRType = iota
	IIRHighPass
	IIRBandPass
)

// IIRKernel is an immutable second-order-section Chebyshev Type I filter,
// designed by the standard pole-placement-on-an-ellipse construction
// followed by a bilinear transform, one section per poles/2 as described
// in spec.md §4.1. Gain is normalised to 1 at DC (low-pass) or Nyquist
// (high-pass); band-pass sections are normalised individually before
// composition.
type IIRKernel[T Float] struct {
	sections []biquadCoeffs
}

type biquadCoeffs struct {
	a0, a1, a2 float64 // feedback (denominator), a0 implicitly normalised to 1
	b0, b1, b2 float64 // feedforward (numerator)
}

// NewChebyshevIIR builds a cascade of poles/2 second-order sections.
// poles must be even and >=2. ripplePercent is the passband ripple, e.g.
// 0.5 for 0.5%. fc (and fc2 for band-pass) are fractions of sample rate.
func NewChebyshevIIR[T Float](poles int, ripplePercent float64, typ IIRType, fc, fc2 float64) IIRKernel[T] {
	if poles < 2 || poles%2 != 0 {
		panic("dsp: Chebyshev IIR requires an even pole count >= 2")
	}
	switch typ {
	case IIRBandPass:
		lo := chebyshevSections(poles/2, ripplePercent, false, fc)
		hi := chebyshevSections(poles/2, ripplePercent, true, fc2)
		return IIRKernel[T]{sections: append(lo, hi...)}
	case IIRHighPass:
		return IIRKernel[T]{sections: chebyshevSections(poles/2, ripplePercent, true, fc)}
	default:
		return IIRKernel[T]{sections: chebyshevSections(poles/2, ripplePercent, false, fc)}
	}
}

// chebyshevSections implements the recursive Chebyshev design from the
// classic two-pole-per-stage recipe: pole placement on an ellipse in the
// s-plane warped by the ripple factor, then a bilinear-style recursive
// substitution into a/b coefficients, one section per pair of poles.
func chebyshevSections(stages int, ripplePercent float64, highPass bool, fc float64) []biquadCoeffs {
	es := math.Sqrt(math.Pow(100/(100-ripplePercent), 2) - 1)
	out := make([]biquadCoeffs, stages)
	for p := 0; p < stages; p++ {
		pairs := float64(stages * 2)
		// Pole angle for this section (2 poles per stage).
		angle := math.Pi / (2 * pairs) * float64(2*p+1)
		rp := -math.Cos(angle)
		ip := math.Sin(angle)

		// Warp for ripple (Chebyshev, not Butterworth): the standard
		// closed form from Smith's recursive Chebyshev filter design.
		t := float64(pairs)
		v := math.Asinh(1/es) / t
		sinhV := math.Sinh(v)
		coshV := math.Cosh(v)
		rp = rp * sinhV
		ip = ip * coshV

		// s-plane to z-plane pre-warp.
		t2 := 2 * math.Tan(math.Pi*math.Max(fc, 1e-9))
		mag2 := rp*rp + ip*ip
		d := 4 - 4*rp*t2 + mag2*t2*t2
		x0 := t2 * t2 / d
		x1 := 2 * t2 * t2 / d
		x2 := t2 * t2 / d
		y1 := (8 - 2*mag2*t2*t2) / d
		y2 := (-4 - 4*rp*t2 - mag2*t2*t2) / d

		b0, b1, b2 := x0, x1, x2
		a1, a2 := y1, y2

		if highPass {
			b0, b1, b2 = x0, -x1, x2
		}
		out[p] = biquadCoeffs{a1: -a1, a2: -a2, b0: b0, b1: b1, b2: b2}
	}
	normalizeGain(out, highPass)
	return out
}

// normalizeGain scales each section's numerator so the cascade has unity
// gain at DC (low-pass) or Nyquist (high-pass), per spec.md §4.1.
func normalizeGain(sections []biquadCoeffs, highPass bool) {
	for i, s := range sections {
		var gain float64
		if highPass {
			// Evaluate |H(z)| at z=-1 (Nyquist).
			gain = (s.b0 - s.b1 + s.b2) / (1 - s.a1 + s.a2)
		} else {
			// Evaluate |H(z)| at z=1 (DC).
			gain = (s.b0 + s.b1 + s.b2) / (1 + s.a1 + s.a2)
		}
		if gain == 0 {
			continue
		}
		sections[i].b0 /= gain
		sections[i].b1 /= gain
		sections[i].b2 /= gain
	}
}

// New returns a fresh, zero-state IIRFilter for this kernel.
func (k IIRKernel[T]) New() Filter[T, T] {
	stages := make([]biquadState, len(k.sections))
	for i, s := range k.sections {
		stages[i] = biquadState{c: s}
	}
	return &IIRFilter[T]{stages: stages}
}

// IIRFilter is the stateful cascade of biquad sections. Delay for an IIR
// filter is not a fixed constant; 0 is reported since spec.md ties the
// notion of "delay" to FIR group delay and test reproducibility, not to
// IIR stages.
type IIRFilter[T Float] struct {
	stages []biquadState
}

type biquadState struct {
	c          biquadCoeffs
	x1, x2     float64
	y1, y2     float64
}

func (f *IIRFilter[T]) Filter(in T) (T, bool) {
	x := float64(in)
	for i := range f.stages {
		s := &f.stages[i]
		y := s.c.b0*x + s.c.b1*s.x1 + s.c.b2*s.x2 - s.c.a1*s.y1 - s.c.a2*s.y2
		s.x2, s.x1 = s.x1, x
		s.y2, s.y1 = s.y1, y
		x = y
	}
	return T(x), true
}

func (f *IIRFilter[T]) Delay() int { return 0 }

func (f *IIRFilter[T]) Reset() {
	for i := range f.stages {
		f.stages[i].x1, f.stages[i].x2 = 0, 0
		f.stages[i].y1, f.stages[i].y2 = 0, 0
	}
}
