package arnce

import (
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestCallsignPackingKZ2X1(t *testing.T) {
	a, err := ParseCallsign("KZ2X-1")
	require.NoError(t, err)
	require.Equal(t, Callsign, a.Type())

	eui, err := a.ToEUI64()
	require.NoError(t, err)
	require.Equal(t, [8]byte{0x02, 0x48, 0xED, 0xFF, 0xFE, 0x9C, 0x0C, 0x00}, eui)

	back, err := FromEUI64(eui)
	require.NoError(t, err)
	require.Equal(t, a, back)
}

func TestCallsignVI2BMARC50HasNoEUI48(t *testing.T) {
	a, err := ParseCallsign("VI2BMARC50")
	require.NoError(t, err)
	require.Equal(t, Callsign, a.Type())

	eui, err := a.ToEUI64()
	require.NoError(t, err)
	require.Equal(t, [8]byte{0xC2, 0x8B, 0x05, 0x0E, 0x89, 0x71, 0x18, 0xA8}, eui)

	_, err = a.ToEUI48()
	require.Error(t, err)
}

func TestCallsignNA1SSEUI48(t *testing.T) {
	a, err := ParseCallsign("NA1SS")
	require.NoError(t, err)
	eui48, err := a.ToEUI48()
	require.NoError(t, err)
	require.Equal(t, [6]byte{0x02, 0x57, 0xC4, 0x79, 0xB8, 0x00}, eui48)

	back, err := FromEUI48(eui48)
	require.NoError(t, err)
	require.Equal(t, a, back)
}

func TestBroadcastEUI64(t *testing.T) {
	eui, err := BroadcastAddr.ToEUI64()
	require.NoError(t, err)
	require.Equal(t, [8]byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF}, eui)

	back, err := FromEUI64(eui)
	require.NoError(t, err)
	require.Equal(t, BroadcastAddr, back)
}

func TestEmptyAddrIsEmptyType(t *testing.T) {
	var a HamAddr
	require.Equal(t, Empty, a.Type())
	require.Equal(t, 2, a.Len())
}

func TestParseEmptyAliases(t *testing.T) {
	for _, s := range []string{"", "~"} {
		a, err := ParseCallsign(s)
		require.NoError(t, err)
		require.Equal(t, Empty, a.Type())
	}
}

func TestParseBroadcastAliases(t *testing.T) {
	for _, s := range []string{"~ffff", "~FFFF"} {
		a, err := ParseCallsign(s)
		require.NoError(t, err)
		require.Equal(t, BroadcastAddr, a)
	}
}

func TestDisplayTrimsTrailingNUL(t *testing.T) {
	a, err := ParseCallsign("N6DRC")
	require.NoError(t, err)
	require.Equal(t, "N6DRC", a.Display())
}

func TestCallsignRoundTripProperty(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		n := rapid.IntRange(1, 12).Draw(rt, "n")
		const chars = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789/-"
		buf := make([]byte, n)
		for i := range buf {
			idx := rapid.IntRange(0, len(chars)-1).Draw(rt, "c")
			buf[i] = chars[idx]
		}
		s := string(buf)

		a, err := ParseCallsign(s)
		require.NoError(rt, err)

		a2, err := ParseCallsign(a.Display())
		require.NoError(rt, err)
		require.Equal(rt, a, a2)
	})
}

func TestEUI64RoundTripProperty(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		n := rapid.IntRange(1, 9).Draw(rt, "n")
		const chars = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
		buf := make([]byte, n)
		for i := range buf {
			idx := rapid.IntRange(0, len(chars)-1).Draw(rt, "c")
			buf[i] = chars[idx]
		}
		a, err := ParseCallsign(string(buf))
		require.NoError(rt, err)
		if a.Type() != Callsign {
			return
		}

		eui, err := a.ToEUI64()
		require.NoError(rt, err)
		back, err := FromEUI64(eui)
		require.NoError(rt, err)
		require.Equal(rt, a, back)
	})
}

func TestValidChunkBoundaries(t *testing.T) {
	require.True(t, ValidChunk(0))
	require.True(t, ValidChunk(chunkShortMax))
	require.True(t, ValidChunk(chunkHighMin-1))
	require.False(t, ValidChunk(chunkShortMax-1))
	require.False(t, ValidChunk(chunkHighMin))
}
