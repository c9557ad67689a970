package mac

import (
	"fmt"

	"github.com/arngll/arngll-go/internal/arnce"
)

// FrameType is the MAC frame's 2-bit frame_type field, per spec.md §4.4.
type FrameType uint8

const (
	Beacon FrameType = iota
	Data
	Ack
	MacCommand
)

func (t FrameType) String() string {
	switch t {
	case Beacon:
		return "Beacon"
	case Data:
		return "Data"
	case Ack:
		return "Ack"
	case MacCommand:
		return "MacCommand"
	default:
		return "Unknown"
	}
}

// KIM is the Key Identification Mode, the SCF's 2-bit kim field.
type KIM uint8

const (
	KIMNone KIM = iota
	KIMAddresses
	KIMKeyIndex
	KIMReserved
)

// SecInfo is the decoded Security Control Field plus its trailing
// fields, per spec.md §4.4.
type SecInfo struct {
	Enc   bool
	KIM   KIM
	FCntr uint32
	KID   *uint8 // present iff KIM == KIMKeyIndex.
	Mic   []byte // length one of {4, 8, 12, 16}.
}

// FrameInfo is a decoded MAC header, per spec.md §4.4.
type FrameInfo struct {
	Version      uint8 // 0 (experimental) or 1 (v1).
	FrameType    FrameType
	AckRequested bool
	IsFromRelay  bool
	NetworkID    *uint16
	Dst          arnce.HamAddr
	Src          arnce.HamAddr
	Rly          *arnce.HamAddr
	Sec          *SecInfo
	AckCRC       uint16 // meaningful only when FrameType == Ack.
}

func lenCode(n int) (uint8, error) {
	switch n {
	case 2, 4, 6, 8:
		return uint8(n/2 - 1), nil
	default:
		return 0, fmt.Errorf("%w: address length %d not in {2,4,6,8}", ErrParse, n)
	}
}

func codeToLen(code uint8) int {
	return (int(code) + 1) * 2
}

func micLenCode(n int) (uint8, error) {
	switch n {
	case 4, 8, 12, 16:
		return uint8(n/4 - 1), nil
	default:
		return 0, fmt.Errorf("%w: mic length %d not in {4,8,12,16}", ErrParse, n)
	}
}

func codeToMicLen(code uint8) int {
	return (int(code) + 1) * 4
}

// BytesWithPayload serialises f with the given payload, per spec.md
// §4.4's body layout. It is an error to call this on an Ack frame with
// a non-empty payload, per spec.md §8 property 9.
func (f *FrameInfo) BytesWithPayload(payload []byte) ([]byte, error) {
	if f.Version > 1 {
		return nil, fmt.Errorf("%w: unknown version %d", ErrParse, f.Version)
	}

	if f.FrameType == Ack {
		if len(payload) != 0 {
			return nil, fmt.Errorf("%w: ack frame carries a payload", ErrParse)
		}
		srcLen, err := lenCode(f.Src.Len())
		if err != nil {
			return nil, err
		}
		fcfMSB := f.Version<<6 | uint8(Ack)<<4 | srcLen
		out := make([]byte, 0, 1+f.Src.Len()+2)
		out = append(out, fcfMSB)
		out = append(out, f.Src.Trimmed()...)
		out = append(out, byte(f.AckCRC>>8), byte(f.AckCRC))
		return out, nil
	}

	dstLen, err := lenCode(f.Dst.Len())
	if err != nil {
		return nil, err
	}
	srcLen, err := lenCode(f.Src.Len())
	if err != nil {
		return nil, err
	}
	fcfMSB := f.Version<<6 | uint8(f.FrameType)<<4 | dstLen<<2 | srcLen

	var rlyLen uint8
	if f.Rly != nil {
		rlyLen, err = lenCode(f.Rly.Len())
		if err != nil {
			return nil, err
		}
	}

	var fcfLSB uint8
	if f.Sec != nil {
		fcfLSB |= 1 << 7
	}
	if f.NetworkID != nil {
		fcfLSB |= 1 << 6
	}
	if f.AckRequested {
		fcfLSB |= 1 << 5
	}
	if f.Rly != nil {
		fcfLSB |= 1 << 4
	}
	if f.IsFromRelay {
		fcfLSB |= 1 << 3
	}
	fcfLSB |= rlyLen

	out := []byte{fcfMSB, fcfLSB}
	if f.NetworkID != nil {
		out = append(out, byte(*f.NetworkID>>8), byte(*f.NetworkID))
	}
	out = append(out, f.Dst.Trimmed()...)
	out = append(out, f.Src.Trimmed()...)
	if f.Rly != nil {
		out = append(out, f.Rly.Trimmed()...)
	}

	if f.Sec != nil {
		micCode, err := micLenCode(len(f.Sec.Mic))
		if err != nil {
			return nil, err
		}
		if (f.Sec.KID != nil) != (f.Sec.KIM == KIMKeyIndex) {
			return nil, fmt.Errorf("%w: kid present iff kim==KeyIndex", ErrParse)
		}
		var scf uint8
		if f.Sec.Enc {
			scf |= 1 << 7
		}
		scf |= micCode << 5
		scf |= uint8(f.Sec.KIM) << 3
		out = append(out, scf)
		out = append(out,
			byte(f.Sec.FCntr>>24), byte(f.Sec.FCntr>>16),
			byte(f.Sec.FCntr>>8), byte(f.Sec.FCntr))
		if f.Sec.KID != nil {
			out = append(out, *f.Sec.KID)
		}
	}

	out = append(out, payload...)
	if f.Sec != nil {
		out = append(out, f.Sec.Mic...)
	}
	return out, nil
}

// Parse decodes a MAC frame buffer (HDLC CRC already stripped) into a
// FrameInfo and its payload, per spec.md §4.4.
func Parse(buf []byte) (FrameInfo, []byte, error) {
	if len(buf) < 5 {
		return FrameInfo{}, nil, fmt.Errorf("%w: buffer shorter than 5 bytes", ErrParse)
	}

	fcfMSB := buf[0]
	version := fcfMSB >> 6
	if version > 1 {
		return FrameInfo{}, nil, fmt.Errorf("%w: unknown version %d", ErrParse, version)
	}
	frameType := FrameType((fcfMSB >> 4) & 0b11)
	dstLenCode := (fcfMSB >> 2) & 0b11
	srcLenCode := fcfMSB & 0b11

	if frameType == Ack {
		srcLen := codeToLen(srcLenCode)
		need := 1 + srcLen + 2
		if len(buf) < need {
			return FrameInfo{}, nil, fmt.Errorf("%w: ack frame truncated", ErrParse)
		}
		src, err := arnce.FromBytes(buf[1 : 1+srcLen])
		if err != nil {
			return FrameInfo{}, nil, fmt.Errorf("%w: %v", ErrParse, err)
		}
		ackCRC := uint16(buf[1+srcLen])<<8 | uint16(buf[1+srcLen+1])
		f := FrameInfo{
			Version:   version,
			FrameType: Ack,
			Src:       src,
			AckCRC:    ackCRC,
		}
		if len(buf) != need {
			return FrameInfo{}, nil, fmt.Errorf("%w: ack frame carries trailing payload", ErrParse)
		}
		return f, nil, nil
	}

	if len(buf) < 2 {
		return FrameInfo{}, nil, fmt.Errorf("%w: header truncated", ErrParse)
	}
	fcfLSB := buf[1]
	hasSec := fcfLSB&(1<<7) != 0
	hasNetID := fcfLSB&(1<<6) != 0
	ackReq := fcfLSB&(1<<5) != 0
	hasRly := fcfLSB&(1<<4) != 0
	fromRly := fcfLSB&(1<<3) != 0
	rlyLenCode := fcfLSB & 0b11

	off := 2
	var netID *uint16
	if hasNetID {
		if off+2 > len(buf) {
			return FrameInfo{}, nil, fmt.Errorf("%w: truncated network_id", ErrParse)
		}
		v := uint16(buf[off])<<8 | uint16(buf[off+1])
		netID = &v
		off += 2
	}

	dstLen := codeToLen(dstLenCode)
	if off+dstLen > len(buf) {
		return FrameInfo{}, nil, fmt.Errorf("%w: truncated dst address", ErrParse)
	}
	dst, err := arnce.FromBytes(buf[off : off+dstLen])
	if err != nil {
		return FrameInfo{}, nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	off += dstLen

	srcLen := codeToLen(srcLenCode)
	if off+srcLen > len(buf) {
		return FrameInfo{}, nil, fmt.Errorf("%w: truncated src address", ErrParse)
	}
	src, err := arnce.FromBytes(buf[off : off+srcLen])
	if err != nil {
		return FrameInfo{}, nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	off += srcLen

	var rly *arnce.HamAddr
	if hasRly {
		rlyLen := codeToLen(rlyLenCode)
		if off+rlyLen > len(buf) {
			return FrameInfo{}, nil, fmt.Errorf("%w: truncated rly address", ErrParse)
		}
		r, err := arnce.FromBytes(buf[off : off+rlyLen])
		if err != nil {
			return FrameInfo{}, nil, fmt.Errorf("%w: %v", ErrParse, err)
		}
		rly = &r
		off += rlyLen
	}

	var sec *SecInfo
	if hasSec {
		if off+1 > len(buf) {
			return FrameInfo{}, nil, fmt.Errorf("%w: truncated scf", ErrParse)
		}
		scf := buf[off]
		off++
		enc := scf&(1<<7) != 0
		micCode := (scf >> 5) & 0b11
		kim := KIM((scf >> 3) & 0b11)

		if off+4 > len(buf) {
			return FrameInfo{}, nil, fmt.Errorf("%w: truncated fcntr", ErrParse)
		}
		fcntr := uint32(buf[off])<<24 | uint32(buf[off+1])<<16 | uint32(buf[off+2])<<8 | uint32(buf[off+3])
		off += 4

		var kid *uint8
		if kim == KIMKeyIndex {
			if off+1 > len(buf) {
				return FrameInfo{}, nil, fmt.Errorf("%w: truncated kid", ErrParse)
			}
			v := buf[off]
			kid = &v
			off++
		}

		micLen := codeToMicLen(micCode)
		if off+micLen > len(buf) {
			return FrameInfo{}, nil, fmt.Errorf("%w: mic length inconsistent with buffer", ErrParse)
		}
		mic := append([]byte(nil), buf[len(buf)-micLen:]...)
		payloadEnd := len(buf) - micLen
		if payloadEnd < off {
			return FrameInfo{}, nil, fmt.Errorf("%w: mic length exceeds remaining buffer", ErrParse)
		}
		payload := append([]byte(nil), buf[off:payloadEnd]...)

		sec = &SecInfo{Enc: enc, KIM: kim, FCntr: fcntr, KID: kid, Mic: mic}
		f := FrameInfo{
			Version:      version,
			FrameType:    frameType,
			AckRequested: ackReq,
			IsFromRelay:  fromRly,
			NetworkID:    netID,
			Dst:          dst,
			Src:          src,
			Rly:          rly,
			Sec:          sec,
		}
		return f, payload, nil
	}

	payload := append([]byte(nil), buf[off:]...)
	f := FrameInfo{
		Version:      version,
		FrameType:    frameType,
		AckRequested: ackReq,
		IsFromRelay:  fromRly,
		NetworkID:    netID,
		Dst:          dst,
		Src:          src,
		Rly:          rly,
	}
	return f, payload, nil
}
