package dsp

// NRZIEncoder implements Non-Return-to-Zero Inverted line coding: the
// output level toggles on an input `false` bit and holds on `true`.
type NRZIEncoder struct {
	state bool
}

func (e *NRZIEncoder) Filter(in bool) (bool, bool) {
	if !in {
		e.state = !e.state
	}
	return e.state, true
}

func (e *NRZIEncoder) Delay() int { return 0 }
func (e *NRZIEncoder) Reset()     { e.state = false }

// NRZIDecoder is NRZIEncoder's inverse: the output is `false` on a level
// transition in the input and `true` on no transition. encode then
// decode is the identity for any input after the first bit, per
// spec.md §8 property 5.
type NRZIDecoder struct {
	prev bool // seeded false, matching NRZIEncoder's initial state bit.
}

func (d *NRZIDecoder) Filter(in bool) (bool, bool) {
	out := in == d.prev
	d.prev = in
	return out, true
}

func (d *NRZIDecoder) Delay() int { return 0 }
func (d *NRZIDecoder) Reset()     { d.prev = false }
