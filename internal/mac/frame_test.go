package mac

import (
	"testing"

	"github.com/arngll/arngll-go/internal/arnce"
	"github.com/stretchr/testify/require"
)

func mustParseCallsign(t *testing.T, s string) arnce.HamAddr {
	t.Helper()
	a, err := arnce.ParseCallsign(s)
	require.NoError(t, err)
	return a
}

func roundTrip(t *testing.T, f FrameInfo, payload []byte) {
	t.Helper()
	buf, err := f.BytesWithPayload(payload)
	require.NoError(t, err)

	got, gotPayload, err := Parse(buf)
	require.NoError(t, err)
	require.Equal(t, f, got)
	require.Equal(t, payload, gotPayload)
}

func TestFrame1DataRoundTrip(t *testing.T) {
	f := FrameInfo{
		Version:   1,
		FrameType: Data,
		Dst:       mustParseCallsign(t, "X1X"),
		Src:       mustParseCallsign(t, "HUXLEY"),
	}
	roundTrip(t, f, []byte("Payload"))
}

func TestFrame2RelayAndSecRoundTrip(t *testing.T) {
	rly := mustParseCallsign(t, "RAD-RELAY")
	f := FrameInfo{
		Version:   1,
		FrameType: Data,
		Dst:       mustParseCallsign(t, "X1X"),
		Src:       mustParseCallsign(t, "HUXLEY"),
		Rly:       &rly,
		Sec: &SecInfo{
			Enc:   false,
			KIM:   KIMAddresses,
			FCntr: 0x31337,
			Mic:   make([]byte, 4),
		},
	}
	roundTrip(t, f, []byte{0xFF, 0x00, 0x00, 0x00, 0xFF})
}

func TestFrame3RelayAckRequestedKeyIndexRoundTrip(t *testing.T) {
	rly := mustParseCallsign(t, "RAD-RELAY")
	kid := uint8(6)
	netID := uint16(0x1234)
	f := FrameInfo{
		Version:      1,
		FrameType:    Data,
		AckRequested: true,
		IsFromRelay:  true,
		NetworkID:    &netID,
		Dst:          mustParseCallsign(t, "X1X"),
		Src:          mustParseCallsign(t, "HUXLEY"),
		Rly:          &rly,
		Sec: &SecInfo{
			Enc:   true,
			KIM:   KIMKeyIndex,
			FCntr: 0x31337,
			KID:   &kid,
			Mic:   make([]byte, 8),
		},
	}
	roundTrip(t, f, []byte("hello"))
}

func TestFrameAckRoundTrip(t *testing.T) {
	f := FrameInfo{
		Version:   1,
		FrameType: Ack,
		Src:       mustParseCallsign(t, "HUXLEY"),
		AckCRC:    0xBEEF,
	}
	roundTrip(t, f, nil)
}

func TestAckFrameRejectsPayload(t *testing.T) {
	f := FrameInfo{FrameType: Ack, Src: mustParseCallsign(t, "HUXLEY")}
	_, err := f.BytesWithPayload([]byte{0x01})
	require.Error(t, err)
}

func TestBeaconTestVector(t *testing.T) {
	buf := []byte{
		0x05, 0x40, 0x13, 0x37,
		0x5C, 0xAC, 0x70, 0xF8,
		0x5C, 0xB6, 0x26, 0xE8,
		0x06, 0x28, 0x39, 0x41, 0x4D, 0x2D, 0x54, 0x41, 0x4B, 0x00, 0x29, 0x18, 0xFA, 0x9C,
	}
	info, payload, err := Parse(buf)
	require.NoError(t, err)
	require.Equal(t, Beacon, info.FrameType)
	require.NotNil(t, info.NetworkID)
	require.Equal(t, uint16(0x1337), *info.NetworkID)
	require.Equal(t, "N6DRC", info.Dst.Display())
	require.Equal(t, "N6NFI", info.Src.Display())
	require.Equal(t, []byte{0x06, 0x28, 0x39, 0x41, 0x4D, 0x2D, 0x54, 0x41, 0x4B, 0x00, 0x29, 0x18, 0xFA, 0x9C}, payload)
}

func TestParseRejectsShortBuffer(t *testing.T) {
	_, _, err := Parse([]byte{0x01, 0x02})
	require.Error(t, err)
}

func TestParseRejectsUnknownVersion(t *testing.T) {
	// version bits 11 (3) is outside {00, 01}.
	buf := []byte{0b1100_0101, 0x00, 0x00, 0x00, 0x00}
	_, _, err := Parse(buf)
	require.Error(t, err)
}

func TestSynthesizeAckUsesRelayWhenFromRelay(t *testing.T) {
	rly := mustParseCallsign(t, "RAD-RELAY")
	f := FrameInfo{
		Version:      1,
		FrameType:    Data,
		AckRequested: true,
		IsFromRelay:  true,
		Dst:          mustParseCallsign(t, "X1X"),
		Src:          mustParseCallsign(t, "HUXLEY"),
		Rly:          &rly,
	}
	ack, err := SynthesizeAck(f, []byte("hi"))
	require.NoError(t, err)
	require.Equal(t, Ack, ack.FrameType)
	require.Equal(t, rly, ack.Src)
}

func TestSynthesizeAckUsesDstWhenNotFromRelay(t *testing.T) {
	f := FrameInfo{
		Version:      1,
		FrameType:    Data,
		AckRequested: true,
		Dst:          mustParseCallsign(t, "X1X"),
		Src:          mustParseCallsign(t, "HUXLEY"),
	}
	ack, err := SynthesizeAck(f, []byte("hi"))
	require.NoError(t, err)
	require.Equal(t, f.Dst, ack.Src)
}
