package dsp

import (
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestNRZIInvolution(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		bits := rapid.SliceOfN(rapid.Bool(), 1, 200).Draw(rt, "bits")
		enc := &NRZIEncoder{}
		dec := &NRZIDecoder{}
		for i, b := range bits {
			level, _ := enc.Filter(b)
			out, _ := dec.Filter(level)
			require.Equal(t, b, out, "index %d", i)
		}
	})
}
