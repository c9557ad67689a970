package dsp

import "math"

// Window names the weighting functions gen_lowpass/gen_bandpass apply to
// a windowed-sinc kernel. The Blackman family is grounded on the
// teacher's dsp.go window(); the remaining entries supplement it the way
// _examples/ausocean-av's go-dsp/window package enumerates a broader
// family than the teacher alone provides.
type Window int

const (
	Rectangular Window = iota
	Bartlett
	Hann
	Hamming
	Blackman
	Nuttall
	BlackmanNuttall
	BlackmanHarris
)

// weights returns the window's multiplier at index j of size taps.
func (w Window) weights(taps int) []float64 {
	out := make([]float64, taps)
	n := float64(taps - 1)
	for j := 0; j < taps; j++ {
		x := float64(j)
		switch w {
		case Bartlett:
			out[j] = 1 - math.Abs((x-n/2)/(n/2))
		case Hann:
			out[j] = 0.5 - 0.5*math.Cos(2*math.Pi*x/n)
		case Hamming:
			out[j] = 0.53836 - 0.46164*math.Cos(2*math.Pi*x/n)
		case Blackman:
			out[j] = 0.42659 - 0.49656*math.Cos(2*math.Pi*x/n) + 0.076849*math.Cos(4*math.Pi*x/n)
		case Nuttall:
			out[j] = 0.355768 - 0.487396*math.Cos(2*math.Pi*x/n) + 0.144232*math.Cos(4*math.Pi*x/n) - 0.012604*math.Cos(6*math.Pi*x/n)
		case BlackmanNuttall:
			out[j] = 0.3635819 - 0.4891775*math.Cos(2*math.Pi*x/n) + 0.1365995*math.Cos(4*math.Pi*x/n) - 0.0106411*math.Cos(6*math.Pi*x/n)
		case BlackmanHarris:
			out[j] = 0.35875 - 0.48829*math.Cos(2*math.Pi*x/n) + 0.14128*math.Cos(4*math.Pi*x/n) - 0.01168*math.Cos(6*math.Pi*x/n)
		default: // Rectangular
			out[j] = 1
		}
	}
	return out
}
