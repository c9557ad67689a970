package arnce

import "errors"

// ErrNotCallsign is returned when an EUI conversion is attempted on a
// HamAddr that is not of type Callsign (Empty and Broadcast are handled
// as their own special cases; everything else is rejected), and by
// ToEUI48 for a Callsign that is not "small".
var ErrNotCallsign = errors.New("arnce: address is not a Callsign, Empty or Broadcast")

// ErrNotEUI is returned by the inverse mappings when the supplied octets
// do not carry a valid universal/local bit pattern, or do not decode to
// a Callsign HamAddr.
var ErrNotEUI = errors.New("arnce: octets are not a valid ARNCE EUI encoding")

// eui64AllZero and eui64AllFF are the Empty/Broadcast special cases of
// the EUI-64 mapping, per spec.md §4.3.
var eui64AllZero = [8]byte{}
var eui64AllFF = [8]byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF}

// small reports whether a fits in the compact 6-octet EUI-48 form: its
// fourth chunk is zero and the third chunk's low 3 bits are zero.
func (a HamAddr) small() bool {
	return a.Chunks[3] == 0 && a.Chunks[2]&0b111 == 0
}

// ToEUI64 renders a as its bijective EUI-64 form, per spec.md §4.3.
// Empty maps to the all-zero EUI-64, Broadcast to the all-ones EUI-64;
// any type other than Callsign is rejected.
func (a HamAddr) ToEUI64() ([8]byte, error) {
	switch a.Type() {
	case Empty:
		return eui64AllZero, nil
	case Broadcast:
		return eui64AllFF, nil
	case Callsign:
		// fall through
	default:
		return [8]byte{}, ErrNotCallsign
	}

	orig := a.Bytes()
	origLast := orig[7]

	var rotated [8]byte
	rotated[0] = orig[7]
	copy(rotated[1:], orig[0:7])
	rotated[0] = (origLast & 0b1111_1000) | 0b0010

	if a.small() {
		// Splice 0xFF 0xFE at indices 3-4: rotate indices 3..8 right by
		// two, then overwrite the first two slots of that window. Octet 5
		// of the address is pushed out of the window, so octet 0 carries
		// its high five bits instead (octet 7 is zero here), giving the
		// EUI-48 form with FF:FE inserted.
		sub := [5]byte{rotated[3], rotated[4], rotated[5], rotated[6], rotated[7]}
		var rot [5]byte
		for i := range rot {
			rot[i] = sub[(i-2+5)%5]
		}
		rotated[3], rotated[4], rotated[5], rotated[6], rotated[7] =
			0xFF, 0xFE, rot[2], rot[3], rot[4]
		rotated[0] = (orig[5] & 0b1111_1000) | 0b0010
	}
	return rotated, nil
}

// FromEUI64 is ToEUI64's inverse. It accepts iff the universal/local bit
// pattern is present, the FF:FE splice (if any) is consistent, and the
// recovered address is of type Callsign.
func FromEUI64(b [8]byte) (HamAddr, error) {
	if b == eui64AllZero {
		return HamAddr{}, nil
	}
	if b == eui64AllFF {
		return BroadcastAddr, nil
	}
	if b[0]&0b111 != 0b010 {
		return HamAddr{}, ErrNotEUI
	}

	recoveredLast := b[0] & 0b1111_1000
	var rotated [8]byte
	rotated[0] = recoveredLast
	copy(rotated[1:], b[1:])

	if b[3] == 0xFF && b[4] == 0xFE {
		// Short form: octet 0's high bits belong to address octet 5.
		rotated[0], rotated[3], rotated[4], rotated[5], rotated[6], rotated[7] =
			0, b[5], b[6], b[7], recoveredLast, 0
	}

	var orig [8]byte
	for i := range orig {
		orig[i] = rotated[(i+1)%8]
	}

	a, err := FromBytes(orig[:])
	if err != nil {
		return HamAddr{}, err
	}
	if a.Type() != Callsign {
		return HamAddr{}, ErrNotEUI
	}
	return a, nil
}

// eui48AllZero and eui48AllFF mirror the EUI-64 Empty/Broadcast cases at
// 6 octets.
var eui48AllZero = [6]byte{}
var eui48AllFF = [6]byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF}

// ToEUI48 renders a as its bijective EUI-48 form. Empty, Broadcast and
// the IPv4/IPv6 multicast types map to their special forms; of the
// Callsign addresses only "small" ones (chunk3 zero, chunk2's low 3 bits
// zero) fit; everything else is rejected, per spec.md §4.3.
func (a HamAddr) ToEUI48() ([6]byte, error) {
	switch a.Type() {
	case Empty:
		return eui48AllZero, nil
	case Broadcast:
		return eui48AllFF, nil
	case IPv4Multicast:
		b := a.Bytes()
		return [6]byte{0x01, 0x00, 0x5E, b[3], b[2], b[1]}, nil
	case IPv6Multicast:
		b := a.Bytes()
		return [6]byte{0xCC, 0xCC, b[4], b[3], b[2], b[1]}, nil
	case Callsign:
		if !a.small() {
			return [6]byte{}, ErrNotCallsign
		}
	default:
		return [6]byte{}, ErrNotCallsign
	}

	b := a.Bytes()
	six := [6]byte{b[0], b[1], b[2], b[3], b[4], b[5]}
	origLast := six[5]

	var rotated [6]byte
	copy(rotated[1:], six[0:5])
	rotated[0] = (origLast & 0b1111_1000) | 0b0010
	return rotated, nil
}

// FromEUI48 is ToEUI48's inverse, including the IPv4/IPv6 multicast
// special forms of spec.md §4.3.
func FromEUI48(b [6]byte) (HamAddr, error) {
	if b == eui48AllZero {
		return HamAddr{}, nil
	}
	if b == eui48AllFF {
		return BroadcastAddr, nil
	}
	if b[0] == 0x01 && b[1] == 0x00 && b[2] == 0x5E {
		return HamAddr{Chunks: [4]uint16{0xFB00 | uint16(b[5]), uint16(b[4])<<8 | uint16(b[3]), 0, 0}}, nil
	}
	if b[0] == 0xCC && b[1] == 0xCC {
		return HamAddr{Chunks: [4]uint16{0xFA00 | uint16(b[5]), uint16(b[4])<<8 | uint16(b[3]), uint16(b[2]) << 8, 0}}, nil
	}
	if b[0]&0b111 != 0b010 {
		return HamAddr{}, ErrNotEUI
	}

	recoveredLast := b[0] & 0b1111_1000
	var rotated [6]byte
	rotated[0] = recoveredLast
	copy(rotated[1:], b[1:])

	var orig6 [6]byte
	for i := range orig6 {
		orig6[i] = rotated[(i+1)%6]
	}

	full := [8]byte{orig6[0], orig6[1], orig6[2], orig6[3], orig6[4], orig6[5], 0, 0}
	a, err := FromBytes(full[:])
	if err != nil {
		return HamAddr{}, err
	}
	if a.Type() != Callsign {
		return HamAddr{}, ErrNotEUI
	}
	return a, nil
}
