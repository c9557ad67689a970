package dsp

import (
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestX25DigestCheckValue(t *testing.T) {
	// Standard CRC-16/X-25 check value for the ASCII string "123456789".
	require.Equal(t, uint16(0x906E), X25Digest([]byte("123456789")))
}

func TestCRCClosure(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		data := rapid.SliceOfN(rapid.Byte(), 0, 64).Draw(rt, "data")
		withCRC := AppendCRC(data)
		require.Equal(t, uint16(X25Residue), X25Digest(withCRC))

		trimmed, ok := VerifyCRC(withCRC)
		require.True(t, ok)
		require.Equal(t, data, trimmed)
	})
}

func TestVerifyCRCRejectsCorruption(t *testing.T) {
	data := []byte{1, 2, 3, 4, 5}
	buf := AppendCRC(data)
	buf[0] ^= 0xFF
	_, ok := VerifyCRC(buf)
	require.False(t, ok)
}
