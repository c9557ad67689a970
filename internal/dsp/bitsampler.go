package dsp

// BitSampler recovers symbol timing from an oversampled bit stream: it
// emits at most one bit per input sample, at instants set by a fraction
// accumulator seeded to half a bit period. A detected transition in the
// input resynchronises the accumulator to mid-bit, per spec.md §4.1.
type BitSampler struct {
	samplesPerBit float64
	acc           float64
	have          bool
	prev          bool
}

// NewBitSampler builds a sampler for the given input sample rate and bit
// rate (both in the same units, e.g. Hz and bits/sec).
func NewBitSampler(sampleRate, bitRate float64) *BitSampler {
	spb := sampleRate / bitRate
	return &BitSampler{samplesPerBit: spb, acc: spb / 2}
}

func (b *BitSampler) Filter(in bool) (bool, bool) {
	if b.have && in != b.prev {
		// Transition detected: resynchronise to mid-bit.
		b.acc = b.samplesPerBit / 2
	}
	b.prev = in
	b.have = true

	b.acc -= 1
	if b.acc <= 0 {
		b.acc += b.samplesPerBit
		return in, true
	}
	return false, false
}

func (b *BitSampler) Delay() int { return 0 }

func (b *BitSampler) Reset() {
	b.acc = b.samplesPerBit / 2
	b.have = false
	b.prev = false
}
