package dsp

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLowPassFIRUnityDCGain(t *testing.T) {
	k := NewLowPassFIR[float64](31, 0.1, Hamming)
	f := k.New()
	// Drive with a DC level long enough to fill the ring buffer and
	// clear the filter's group delay.
	var out float64
	for i := 0; i < 64; i++ {
		out, _ = f.Filter(1.0)
	}
	require.InDelta(t, 1.0, out, 1e-9)
}

func TestFIRDelayIsHalfTapCount(t *testing.T) {
	k := NewLowPassFIR[float64](15, 0.2, Blackman)
	f := k.New()
	require.Equal(t, 7, f.Delay())
}

func TestDownsamplerIdentityWhenRatesMatch(t *testing.T) {
	d := NewDownsampler[float64](8000, 8000)
	for i := 0; i < 10; i++ {
		x := float64(i) * 0.1
		out, ok := d.Filter(x)
		require.True(t, ok)
		require.Equal(t, x, out)
	}
}
