package dsp

import "math"

// FSKSlicer maps a Discriminator's normalised-frequency output to a bit
// decision: mark -> true, space -> false, by thresholding against the
// midpoint of the normalised mark/space frequencies. Returns ok=false
// (spec.md's "None") when the input is non-finite or the magnitude is
// non-positive.
type FSKSlicer[T Float] struct {
	threshold T
	markLow   bool // mark is the lower of the two tones.
}

// NewFSKSlicer builds a slicer for normalised mark/space frequencies
// (tone frequency / sample rate).
func NewFSKSlicer[T Float](markNorm, spaceNorm float64) *FSKSlicer[T] {
	return &FSKSlicer[T]{threshold: T((markNorm + spaceNorm) / 2), markLow: markNorm < spaceNorm}
}

func (s *FSKSlicer[T]) Filter(in DiscOutput[T]) (bool, bool) {
	phase := float64(in.Phase)
	mag2 := float64(in.Mag2)
	if math.IsNaN(phase) || math.IsInf(phase, 0) || mag2 <= 0 {
		return false, false
	}
	return (in.Phase < s.threshold) == s.markLow, true
}

func (s *FSKSlicer[T]) Delay() int { return 0 }
func (s *FSKSlicer[T]) Reset()     {}
