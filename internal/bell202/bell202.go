// Package bell202 composes internal/dsp's filter algebra into the
// Bell-202 AFSK modem pipeline of spec.md §4.2: HDLC framing and
// bit-stuffing, NRZI line coding, a nearest-neighbour resampler on
// encode, and a discriminator/slicer/bit-sampler/HDLC-decoder chain on
// decode. It is grounded on the teacher's gen_tone.go (tone generation
// phase accumulator) and demod.go (discriminator/slicer/bit-sync
// composition), generalized from the teacher's fixed global per-channel
// state into composable, reusable dsp.Filter values.
package bell202

import (
	"github.com/arngll/arngll-go/internal/dsp"
)

// Params are the Bell-202 constants from spec.md §4.2.
type Params struct {
	SymbolRate  float64 // 1200 baud.
	MarkHz      float64 // 1200 Hz.
	SpaceHz     float64 // 2200 Hz.
}

// Default is the standard Bell-202 AFSK parameter set.
var Default = Params{SymbolRate: 1200, MarkHz: 1200, SpaceHz: 2200}

// OptimalSampleRate is the internal sample rate the modem is tuned for.
const OptimalSampleRate = 7500

// MaxUsableInputRate is the ceiling above which a caller must downsample
// before driving Decoder, per spec.md §4.2.
const MaxUsableInputRate = 14000

const preambleOctets = 15
const trailerOctets = 2

// Encode renders data as a complete Bell-202 AFSK sample burst at
// sample rate fs (Hz) and peak amplitude amplitude, following spec.md
// §4.2's encode chain. No CRC is appended here; callers wrap with
// dsp.AppendCRC before calling Encode, per spec.md §4.2.
func Encode[T dsp.Float](data []byte, fs int, amplitude T, p Params) []T {
	bits := dsp.EncodeHDLCFrame(data, preambleOctets, trailerOctets)

	nrzi := &dsp.NRZIEncoder{}
	levels := make([]bool, len(bits))
	for i, b := range bits {
		levels[i], _ = nrzi.Filter(b)
	}

	samplesPerBit := float64(fs) / p.SymbolRate
	resampler := dsp.NewNNResampler[bool](samplesPerBit)
	var toneBits []bool
	for _, lv := range levels {
		toneBits = append(toneBits, resampler.Push(lv)...)
	}

	markNorm := T(p.MarkHz / float64(fs))
	spaceNorm := T(p.SpaceHz / float64(fs))
	fm := dsp.NewFMModulator[T](amplitude)

	out := make([]T, len(toneBits))
	for i, mark := range toneBits {
		var freq T
		if mark {
			freq = markNorm
		} else {
			freq = spaceNorm
		}
		out[i], _ = fm.Filter(freq)
	}
	return out
}

// Decoder is the streaming receive side of the Bell-202 pipeline:
// discriminator -> FSK slicer -> bit sampler -> NRZI decode -> HDLC
// decode -> frame collector.
type Decoder[T dsp.Float] struct {
	disc    *dsp.Discriminator[T]
	outLPF  dsp.Filter[T, T]
	slicer  *dsp.FSKSlicer[T]
	sampler *dsp.BitSampler
	nrzi    *dsp.NRZIDecoder
	hdlc    *dsp.HDLCDecoder
	collect *dsp.FrameCollector
	useNRZI bool
}

// NewDecoder builds a decoder tuned for input sample rate fs, which must
// be at most MaxUsableInputRate; rates above that must be downsampled by
// the caller first, per spec.md §4.2. Per spec.md §4.2's decode
// discriminator defaults, a 15-tap Blackman low-pass filters each IQ arm
// inside the discriminator, and a second, independent 15-tap Blackman
// low-pass smooths its phase output before the slicer sees it.
func NewDecoder[T dsp.Float](fs int, p Params) *Decoder[T] {
	iqLPF := dsp.NewLowPassFIR[T](15, 0.1, dsp.Blackman)
	disc := dsp.NewDiscriminator[T](dsp.Accurate, iqLPF)

	outLPF := dsp.NewLowPassFIR[T](15, 0.1, dsp.Blackman).New()

	markNorm := p.MarkHz / float64(fs)
	spaceNorm := p.SpaceHz / float64(fs)
	slicer := dsp.NewFSKSlicer[T](markNorm, spaceNorm)

	sampler := dsp.NewBitSampler(float64(fs), p.SymbolRate)

	return &Decoder[T]{
		disc:    disc,
		outLPF:  outLPF,
		slicer:  slicer,
		sampler: sampler,
		nrzi:    &dsp.NRZIDecoder{},
		hdlc:    &dsp.HDLCDecoder{},
		collect: &dsp.FrameCollector{},
		useNRZI: true,
	}
}

// Push feeds one audio sample and returns a decoded frame (HDLC CRC
// still attached; the caller verifies it with dsp.VerifyCRC) whenever
// one completes.
func (d *Decoder[T]) Push(sample T) ([]byte, bool) {
	disc, _ := d.disc.Filter(sample)
	disc.Phase, _ = d.outLPF.Filter(disc.Phase)
	bit, ok := d.slicer.Filter(disc)

	sampledBit, haveSymbol := d.sampler.Filter(bitOr(ok, bit))
	if !haveSymbol {
		return nil, false
	}

	nrziOut := sampledBit
	if d.useNRZI {
		nrziOut, _ = d.nrzi.Filter(sampledBit)
	}

	// Carrier loss (ok==false) reaches the HDLC decoder as None even
	// though the bit sampler, above, still got a substitute false bit to
	// keep its symbol clock running; this is what lets the 20-consecutive-
	// None carrier-loss reset in dsp.HDLCDecoder ever fire.
	hdlcIn := dsp.None[bool]()
	if ok {
		hdlcIn = dsp.Some(nrziOut)
	}

	sig, _ := d.hdlc.Filter(hdlcIn)
	if !sig.Present {
		return nil, false
	}
	return d.collect.Push(sig.Value)
}

// Reset clears all stateful stages.
func (d *Decoder[T]) Reset() {
	d.disc.Reset()
	d.outLPF.Reset()
	d.slicer.Reset()
	d.sampler.Reset()
	d.nrzi.Reset()
	d.hdlc.Reset()
	d.collect = &dsp.FrameCollector{}
}

// bitOr is a small helper: when the slicer produced no value (carrier
// absent / non-finite sample), feed the bit sampler a constant false so
// downstream bit-sync degrades gracefully rather than stalling.
func bitOr(ok, bit bool) bool {
	if !ok {
		return false
	}
	return bit
}

// DecodeAll runs a full sample buffer through a fresh Decoder and
// returns every complete frame found (HDLC CRC still attached), the
// batch form spec.md §8 property 7 exercises directly.
func DecodeAll[T dsp.Float](samples []T, fs int, p Params) [][]byte {
	dec := NewDecoder[T](fs, p)
	var frames [][]byte
	for _, s := range samples {
		if frame, ok := dec.Push(s); ok {
			frames = append(frames, frame)
		}
	}
	return frames
}
