package dsp

import "math"

// DiscMode selects the per-sample phase-difference estimator a
// Discriminator uses, per spec.md §4.1.
type DiscMode int

const (
	// Accurate computes atan2(q,i) and differences it against the
	// previous sample, wrapped to (-pi, pi]. Preferred for test
	// reproducibility (spec.md §9).
	Accurate DiscMode = iota
	// Fast approximates sin(delta-theta) via the cross-product
	// (q*i_prev - i*q_prev)/(i^2+q^2), valid while magnitude^2 is far
	// from zero.
	Fast
)

// DiscOutput is a Discriminator's per-sample result: a normalised
// frequency estimate in Phase and the instantaneous magnitude-squared of
// the quadrature pair in Mag2.
type DiscOutput[T Float] struct {
	Phase T
	Mag2  T
}

// Discriminator converts a real, band-limited FM input (carrier assumed
// at 0.25*fs) into (phase, magnitude^2) via a quadrature split, each arm
// low-pass filtered, followed by the chosen phase-difference estimator.
type Discriminator[T Float] struct {
	mode DiscMode
	n    int // sample index, used to generate the quadrature carrier.

	iLPF, qLPF Filter[T, T]

	prevI, prevQ   T
	prevTheta      float64
	haveFirstPoint bool
}

// NewDiscriminator builds a Discriminator whose quadrature arms are each
// low-pass filtered by the given kernel (spec.md's defaults are 15-tap
// Blackman FIRs at fc=0.1 for both the IQ split and a following output
// low-pass, composed by the caller).
func NewDiscriminator[T Float](mode DiscMode, lpf FilterKernel[T]) *Discriminator[T] {
	return &Discriminator[T]{mode: mode, iLPF: lpf.New(), qLPF: lpf.New()}
}

// quadrature multipliers for carrier = 0.25*fs: the four-phase sequence
// [1,0,-1,0] for the in-phase arm and [0,1,0,-1] for the quadrature arm.
func quadratureI(n int) float64 {
	switch n % 4 {
	case 0:
		return 1
	case 2:
		return -1
	default:
		return 0
	}
}

func quadratureQ(n int) float64 {
	switch n % 4 {
	case 1:
		return 1
	case 3:
		return -1
	default:
		return 0
	}
}

func (d *Discriminator[T]) Filter(x T) (DiscOutput[T], bool) {
	iMixed := T(float64(x) * quadratureI(d.n))
	qMixed := T(float64(x) * quadratureQ(d.n))
	d.n++

	i, _ := d.iLPF.Filter(iMixed)
	q, _ := d.qLPF.Filter(qMixed)

	var deltaTheta float64
	mag2 := float64(i)*float64(i) + float64(q)*float64(q)

	switch d.mode {
	case Fast:
		if d.haveFirstPoint {
			deltaTheta = float64(q)*float64(d.prevI) - float64(i)*float64(d.prevQ)
			if mag2 > 0 {
				deltaTheta /= mag2
			}
		}
	default: // Accurate
		theta := math.Atan2(float64(q), float64(i))
		if d.haveFirstPoint {
			deltaTheta = wrapPi(theta - d.prevTheta)
		}
		d.prevTheta = theta
	}

	d.prevI, d.prevQ = i, q
	d.haveFirstPoint = true

	phase := (deltaTheta*(-1.0/(2*math.Pi*0.25)) + 1) * 0.25
	return DiscOutput[T]{Phase: T(phase), Mag2: T(mag2)}, true
}

// wrapPi wraps an angle to (-pi, pi].
func wrapPi(theta float64) float64 {
	for theta > math.Pi {
		theta -= 2 * math.Pi
	}
	for theta <= -math.Pi {
		theta += 2 * math.Pi
	}
	return theta
}

func (d *Discriminator[T]) Delay() int {
	return d.iLPF.Delay()
}

func (d *Discriminator[T]) Reset() {
	d.iLPF.Reset()
	d.qLPF.Reset()
	d.n = 0
	d.prevI, d.prevQ = 0, 0
	d.prevTheta = 0
	d.haveFirstPoint = false
}
