package mac

import "github.com/arngll/arngll-go/internal/dsp"

// ComputeAckCRC is the X.25 digest over the header-plus-payload bytes
// the peer emitted for f/payload, excluding the trailing HDLC CRC, per
// spec.md §4.4's ACK CRC rule.
func ComputeAckCRC(f FrameInfo, payload []byte) (uint16, error) {
	b, err := f.BytesWithPayload(payload)
	if err != nil {
		return 0, err
	}
	return dsp.X25Digest(b), nil
}

// SynthesizeAck builds the ACK frame for a received (f, payload) pair,
// per spec.md §4.4: the sender is rly_addr when is_from_relay is set
// and a relay address is present, else dst_addr.
func SynthesizeAck(f FrameInfo, payload []byte) (FrameInfo, error) {
	crc, err := ComputeAckCRC(f, payload)
	if err != nil {
		return FrameInfo{}, err
	}
	sender := f.Dst
	if f.IsFromRelay && f.Rly != nil {
		sender = *f.Rly
	}
	return FrameInfo{
		Version:   f.Version,
		FrameType: Ack,
		Src:       sender,
		AckCRC:    crc,
	}, nil
}
