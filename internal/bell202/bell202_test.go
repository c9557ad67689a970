package bell202

import (
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestModemClosureAtOptimalRate(t *testing.T) {
	cases := [][]byte{
		{0xAA},
		{0x01, 0x02, 0x03},
		[]byte("HELLO WORLD"),
		{0x00, 0xFF, 0x00, 0xFF},
	}
	for _, data := range cases {
		samples := Encode[float64](data, OptimalSampleRate, 0.75, Default)
		frames := DecodeAll[float64](samples, OptimalSampleRate, Default)
		require.NotEmpty(t, frames, "no frame recovered for % x", data)
		require.Equal(t, data, frames[0])
	}
}

func TestModemClosureAcrossSampleRates(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		fs := rapid.IntRange(6000, 14900).Draw(rt, "fs")
		data := rapid.SliceOfN(rapid.Byte(), 1, 8).Draw(rt, "data")

		samples := Encode[float64](data, fs, 0.75, Default)
		frames := DecodeAll[float64](samples, fs, Default)
		require.NotEmpty(rt, frames)
		require.Equal(rt, data, frames[0])
	})
}

func TestEncodeLengthGrowsWithPreambleAndData(t *testing.T) {
	short := Encode[float64]([]byte{0x01}, OptimalSampleRate, 0.75, Default)
	long := Encode[float64]([]byte{0x01, 0x02, 0x03, 0x04}, OptimalSampleRate, 0.75, Default)
	require.Greater(t, len(long), len(short))
}

func TestDecoderResetDropsPartialFrame(t *testing.T) {
	dec := NewDecoder[float64](OptimalSampleRate, Default)
	samples := Encode[float64]([]byte{0xDE, 0xAD}, OptimalSampleRate, 0.75, Default)

	// Feed the preamble and the first body octet, reset, then the rest of
	// the burst alone should never complete a frame.
	cut := int(float64((preambleOctets+1)*8) * OptimalSampleRate / Default.SymbolRate)
	for _, s := range samples[:cut] {
		dec.Push(s)
	}
	dec.Reset()
	for _, s := range samples[cut:] {
		if _, ok := dec.Push(s); ok {
			t.Fatalf("unexpected frame after reset with a truncated burst")
		}
	}
}

func TestDecodeAllFindsMultipleFramesBackToBack(t *testing.T) {
	a := Encode[float64]([]byte("AAA"), OptimalSampleRate, 0.75, Default)
	b := Encode[float64]([]byte("BBB"), OptimalSampleRate, 0.75, Default)
	samples := append(append([]float64{}, a...), b...)

	frames := DecodeAll[float64](samples, OptimalSampleRate, Default)
	require.Len(t, frames, 2)
	require.Equal(t, []byte("AAA"), frames[0])
	require.Equal(t, []byte("BBB"), frames[1])
}
