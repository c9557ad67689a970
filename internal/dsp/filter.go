// Package dsp implements the filter algebra that the Bell-202 modem
// pipeline is built from: FIR/IIR filters, a quadrature discriminator, an
// FSK slicer, a bit-sync sampler, NRZI line coding, HDLC bit-stuffing, a
// nearest-neighbour resampler, a sample-rate downsampler, an FM modulator
// and a CRC-16/IBM-SDLC tap.
//
// Every stage is a value satisfying Filter: it consumes one input symbol
// and produces zero or one output symbol, carries a latency in samples
// (Delay) used for group-delay reasoning, and can be Reset to its initial
// state. Composition via Chain is associative and delay-additive.
package dsp

// Float is the set of floating point widths the numeric stages are
// generic over. spec.md requires both 32- and 64-bit support.
type Float interface {
	~float32 | ~float64
}

// Filter transforms one input symbol into zero-or-one output symbols.
// The boolean return reports whether an output was produced; stages that
// always produce output (FIR, IIR, NRZI, FM modulator) always return true.
type Filter[In, Out any] interface {
	Filter(In) (Out, bool)
	Delay() int
	Reset()
}

// chain composes two filters end to end. Its delay is the sum of its
// parts', matching spec.md's "composition preserves delay additivity".
type chain[A, B, C any] struct {
	first  Filter[A, B]
	second Filter[B, C]
}

// Chain composes first and second into a single filter whose delay is
// first.Delay()+second.Delay(). If first produces no output for a given
// input, second is not invoked and no output is produced.
func Chain[A, B, C any](first Filter[A, B], second Filter[B, C]) Filter[A, C] {
	return &chain[A, B, C]{first: first, second: second}
}

func (c *chain[A, B, C]) Filter(in A) (C, bool) {
	mid, ok := c.first.Filter(in)
	if !ok {
		var zero C
		return zero, false
	}
	return c.second.Filter(mid)
}

func (c *chain[A, B, C]) Delay() int {
	return c.first.Delay() + c.second.Delay()
}

func (c *chain[A, B, C]) Reset() {
	c.first.Reset()
	c.second.Reset()
}

// optioned lifts a Filter[X, Y] into one operating over (X, present)
// pairs, passing the "not present" case through unchanged as spec.md §3
// describes for the optional wrapper.
type optioned[X, Y any] struct {
	inner Filter[X, Y]
}

// Lift wraps f so that an absent input sample (ok=false) passes through
// untouched instead of being fed to f.
func Lift[X, Y any](f Filter[X, Y]) Filter[optSample[X], optSample[Y]] {
	return &optioned[X, Y]{inner: f}
}

// optSample is the explicit Option<T> carrier Lift operates on.
type optSample[T any] struct {
	Value   T
	Present bool
}

func Some[T any](v T) optSample[T] { return optSample[T]{Value: v, Present: true} }
func None[T any]() optSample[T]    { return optSample[T]{} }

func (o *optioned[X, Y]) Filter(in optSample[X]) (optSample[Y], bool) {
	if !in.Present {
		return optSample[Y]{}, true
	}
	out, ok := o.inner.Filter(in.Value)
	if !ok {
		return optSample[Y]{}, false
	}
	return Some(out), true
}

func (o *optioned[X, Y]) Delay() int { return o.inner.Delay() }
func (o *optioned[X, Y]) Reset()     { o.inner.Reset() }

// FilterKernel is an immutable coefficient set with a factory into a live
// stateful Filter, matching spec.md's FilterKernel/Filter split.
type FilterKernel[T Float] interface {
	New() Filter[T, T]
}
