package dsp

import (
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestHDLCStuffingBijection(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		data := rapid.SliceOfN(rapid.Byte(), 1, 32).Draw(rt, "data")
		bits := EncodeHDLCFrame(data, 15, 2)
		frames := DecodeHDLCFrames(bits)
		require.Len(t, frames, 1)
		require.Equal(t, data, frames[0])
	})
}

func TestHDLCSingleFlagPreambleStillFrames(t *testing.T) {
	data := []byte{0x01, 0x02, 0x03}
	bits := EncodeHDLCFrame(data, 1, 1)
	frames := DecodeHDLCFrames(bits)
	require.Len(t, frames, 1)
	require.Equal(t, data, frames[0])
}

func TestHDLCCarrierLossResets(t *testing.T) {
	dec := &HDLCDecoder{}
	col := &FrameCollector{}
	// Feed a partial frame, then 21 absent samples, then a fresh frame.
	bits := EncodeHDLCFrame([]byte{0xAA}, 2, 0)
	for _, b := range bits {
		sig, _ := dec.Filter(Some(b))
		if sig.Present {
			col.Push(sig.Value)
		}
	}
	for i := 0; i < 21; i++ {
		sig, _ := dec.Filter(None[bool]())
		require.False(t, sig.Present)
	}
	full := EncodeHDLCFrame([]byte{0xBB, 0xCC}, 15, 2)
	var got [][]byte
	for _, b := range full {
		sig, _ := dec.Filter(Some(b))
		if !sig.Present {
			continue
		}
		if frame, ok := col.Push(sig.Value); ok {
			got = append(got, frame)
		}
	}
	require.Equal(t, [][]byte{{0xBB, 0xCC}}, got)
}

func TestStuffBitsInsertsAfterFiveOnes(t *testing.T) {
	in := []bool{true, true, true, true, true, true, false}
	out := StuffBits(in)
	require.Equal(t, []bool{true, true, true, true, true, false, true, false}, out)
}
