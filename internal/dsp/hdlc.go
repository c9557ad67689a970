package dsp

// HDLC bit-stuffing, markers and the receive-side state machine,
// grounded on the teacher's hdlc_send.go/hdlc_rec.go structure
// (preamble of flags, zero-insertion after five ones, a continuous
// marker-hunting decoder) but rewritten around spec.md's Option-based
// filter contract instead of the teacher's global per-channel C state.
//
// spec.md §9 fixes the bit order: HDLC serialises least-significant bit
// first per octet. This is a wire-level contract.

// hdlcMarkerBits is the 8-bit pattern of the 0x7E flag octet, written in
// the chronological order bits are transmitted (LSB-first happens to be
// a palindrome for 0x7E, so this sequence reads the same in both
// directions).
var hdlcMarkerBits = [8]bool{false, true, true, true, true, true, true, false}

// byteBitsLSBFirst expands a byte into its 8 bits, least-significant
// first, per spec.md §9.
func byteBitsLSBFirst(b byte) [8]bool {
	var bits [8]bool
	for i := 0; i < 8; i++ {
		bits[i] = (b>>uint(i))&1 == 1
	}
	return bits
}

// StuffBits inserts a 0 after every run of five consecutive 1 bits, per
// spec.md §4.1's HDLC encoder description.
func StuffBits(bits []bool) []bool {
	out := make([]bool, 0, len(bits)+len(bits)/4+1)
	ones := 0
	for _, b := range bits {
		out = append(out, b)
		if b {
			ones++
			if ones == 5 {
				out = append(out, false)
				ones = 0
			}
		} else {
			ones = 0
		}
	}
	return out
}

// EncodeHDLCFrame builds the full on-air bit sequence for data: a
// preamble of preambleOctets marker octets, the bit-stuffed body, and a
// trailer of trailerOctets marker octets. spec.md §4.2 specifies a
// 15-octet preamble and a two-octet trailer for the Bell-202 modem.
func EncodeHDLCFrame(data []byte, preambleOctets, trailerOctets int) []bool {
	out := make([]bool, 0, (preambleOctets+trailerOctets)*8+len(data)*9)
	for i := 0; i < preambleOctets; i++ {
		out = append(out, hdlcMarkerBits[:]...)
	}
	body := make([]bool, 0, len(data)*8)
	for _, b := range data {
		bits := byteBitsLSBFirst(b)
		body = append(body, bits[:]...)
	}
	out = append(out, StuffBits(body)...)
	for i := 0; i < trailerOctets; i++ {
		out = append(out, hdlcMarkerBits[:]...)
	}
	return out
}

// SignalKind tags the variants of a decoded HDLC signal.
type SignalKind int

const (
	SigOctet SignalKind = iota
	SigFrameMarker
	SigDecodeError
)

// FrameSignal is the tagged union spec.md §4.1 describes as
// FrameSignal ∈ {Octet(u8), FrameMarker, DecodeError}.
type FrameSignal struct {
	Kind  SignalKind
	Octet byte
}

type hdlcState int

const (
	hdlcHunt hdlcState = iota
	hdlcFraming
)

// HDLCDecoder is the receive-side bit-stuffing/framing state machine of
// spec.md §4.1/§4.2: Hunt, Framing, StuffSkip and PostMarker all reduce
// to the fields below. It operates on an explicit Option<bool> bit
// stream so it can see carrier-loss gaps (a run of unsampled instants)
// and reset after 20 consecutive absences, per spec.md §4.2's state
// table.
//
// Bits are never appended to the octet accumulator the instant they
// arrive. Two things stay deferred:
//
//   - A run of 1s: the flag 01111110 and ordinary stuffed data (up to
//     five 1s then a mandatory stuffed 0) are indistinguishable until
//     the run resolves on the next 0. onesRun holds the count; a run of
//     five resolves as data (the terminating 0 is the stuffed bit,
//     discarded), a run of exactly six resolves as a marker (none of
//     its bits are data), seven or more is an abort.
//   - The 0 immediately preceding a run of 1s: back-to-back flags put
//     two 0 bits in a row (...flag's trailing 0, next flag's leading
//     0...), and that leading 0 looks exactly like an ordinary data 0
//     until the run after it resolves. pendingZero holds it; it is
//     discarded, not appended, when the following run turns out to be
//     a six-long marker.
//
// This is what guarantees the running octet accumulator is genuinely
// empty (bitsInAcc==0) at the instant a marker completes for any frame
// this package's encoder produces, so spec.md §8 property 4's round
// trip holds. See DESIGN.md.
type HDLCDecoder struct {
	state       hdlcState
	onesRun     int
	pendingZero bool
	bitAcc      byte
	bitsInAcc   int
	noneStreak  int
}

// Filter accepts one (bit, present) slot and produces at most one
// decoded signal for it.
func (d *HDLCDecoder) Filter(in optSample[bool]) (optSample[FrameSignal], bool) {
	if !in.Present {
		d.noneStreak++
		if d.noneStreak > 20 {
			d.resetToHunt()
		}
		return optSample[FrameSignal]{}, true
	}
	d.noneStreak = 0

	if in.Value {
		d.onesRun++
		if d.onesRun == 7 {
			// Abort: no correctly stuffed octet or flag has a run this
			// long.
			d.resetToHunt()
		}
		return optSample[FrameSignal]{}, true
	}

	ones := d.onesRun
	d.onesRun = 0

	if ones == 6 {
		// The deferred zero, if any, was this flag's own leading
		// delimiter, not data; discard it along with the six 1s.
		d.pendingZero = false
		aligned := d.bitsInAcc == 0
		d.bitAcc, d.bitsInAcc = 0, 0

		switch d.state {
		case hdlcFraming:
			if aligned {
				return Some(FrameSignal{Kind: SigFrameMarker}), true
			}
			d.state = hdlcHunt
			return Some(FrameSignal{Kind: SigDecodeError}), true
		default: // hdlcHunt
			d.state = hdlcFraming
			return Some(FrameSignal{Kind: SigFrameMarker}), true
		}
	}

	// Not a marker: the deferred zero (if any) and this run of ones are
	// now confirmed data.
	var sig optSample[FrameSignal]
	if d.state == hdlcFraming {
		if d.pendingZero {
			if s := d.appendBit(false); s.Present {
				sig = s
			}
		}
		for i := 0; i < ones; i++ {
			if s := d.appendBit(true); s.Present {
				sig = s
			}
		}
	}

	if ones == 5 {
		// This resolving 0 is the stuffed bit the encoder inserted
		// after five 1s: pure filler, never a flag's leading edge.
		d.pendingZero = false
	} else {
		d.pendingZero = true
	}
	return sig, true
}

func (d *HDLCDecoder) appendBit(bit bool) optSample[FrameSignal] {
	if bit {
		d.bitAcc |= 1 << uint(d.bitsInAcc)
	}
	d.bitsInAcc++
	if d.bitsInAcc < 8 {
		return optSample[FrameSignal]{}
	}
	out := d.bitAcc
	d.bitAcc, d.bitsInAcc = 0, 0
	return Some(FrameSignal{Kind: SigOctet, Octet: out})
}

func (d *HDLCDecoder) resetToHunt() {
	d.state = hdlcHunt
	d.onesRun = 0
	d.pendingZero = false
	d.bitAcc, d.bitsInAcc = 0, 0
}

func (d *HDLCDecoder) Delay() int { return 0 }
func (d *HDLCDecoder) Reset()     { d.resetToHunt(); d.noneStreak = 0 }

// FrameCollector accumulates Octet signals into a buffer, yielding the
// buffer on a FrameMarker if non-empty (and resetting), and discarding
// it on a DecodeError, per spec.md §4.1.
type FrameCollector struct {
	buf []byte
}

// Push feeds one decoded signal and returns a completed frame, if any.
func (c *FrameCollector) Push(sig FrameSignal) ([]byte, bool) {
	switch sig.Kind {
	case SigOctet:
		c.buf = append(c.buf, sig.Octet)
		return nil, false
	case SigFrameMarker:
		if len(c.buf) == 0 {
			return nil, false
		}
		frame := c.buf
		c.buf = nil
		return frame, true
	case SigDecodeError:
		c.buf = nil
		return nil, false
	}
	return nil, false
}

// DecodeHDLCFrames runs a full bit stream (no carrier-loss gaps) through
// a fresh decoder and collector, returning every complete frame found.
// This is the batch form spec.md §8 property 4 exercises directly.
func DecodeHDLCFrames(bits []bool) [][]byte {
	dec := &HDLCDecoder{}
	col := &FrameCollector{}
	var frames [][]byte
	for _, b := range bits {
		sig, _ := dec.Filter(Some(b))
		if !sig.Present {
			continue
		}
		if frame, ok := col.Push(sig.Value); ok {
			frames = append(frames, frame)
		}
	}
	return frames
}
