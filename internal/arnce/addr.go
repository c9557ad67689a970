package arnce

import (
	"errors"
	"fmt"
	"strings"
)

// AddrType classifies a HamAddr per spec.md §3's ordered rules.
type AddrType int

const (
	Empty AddrType = iota
	Short
	Reserved
	Callsign
	Broadcast
	IPv6Multicast
	IPv4Multicast
)

func (t AddrType) String() string {
	switch t {
	case Empty:
		return "Empty"
	case Short:
		return "Short"
	case Reserved:
		return "Reserved"
	case Callsign:
		return "Callsign"
	case Broadcast:
		return "Broadcast"
	case IPv6Multicast:
		return "IPv6Multicast"
	case IPv4Multicast:
		return "IPv4Multicast"
	default:
		return "Unknown"
	}
}

// HamAddr is eight octets represented as four big-endian 16-bit chunks,
// per spec.md §3.
type HamAddr struct {
	Chunks [4]uint16
}

// BroadcastAddr is the broadcast HamAddr: an all-ones first chunk and
// every other chunk zero (text form "~FFFF").
var BroadcastAddr = HamAddr{Chunks: [4]uint16{0xFFFF, 0, 0, 0}}

// ErrAddrTooLong is returned by address parsing when more than 12
// characters (4 chunks) are supplied.
var ErrAddrTooLong = errors.New("arnce: address text longer than 12 characters")

// Len reports the trimmed serialisation length in octets: 2, 4, 6 or 8,
// per spec.md §3. The all-zero address has length 2.
func (a HamAddr) Len() int {
	last := -1
	for i, c := range a.Chunks {
		if c != 0 {
			last = i
		}
	}
	if last < 0 {
		return 2
	}
	return 2 * (last + 1)
}

// Bytes renders the full, untrimmed 8-octet big-endian form.
func (a HamAddr) Bytes() [8]byte {
	var b [8]byte
	for i, c := range a.Chunks {
		b[2*i] = byte(c >> 8)
		b[2*i+1] = byte(c)
	}
	return b
}

// Trimmed renders the address at its natural serialisation length
// (Len() octets), the form spec.md §4.4 uses inside a MAC frame.
func (a HamAddr) Trimmed() []byte {
	full := a.Bytes()
	return full[:a.Len()]
}

// FromBytes parses a trimmed (2/4/6/8 octet) or full 8-octet big-endian
// address buffer into a HamAddr, zero-padding any missing high chunks.
func FromBytes(b []byte) (HamAddr, error) {
	if len(b) == 0 || len(b)%2 != 0 || len(b) > 8 {
		return HamAddr{}, fmt.Errorf("arnce: invalid address length %d", len(b))
	}
	var full [8]byte
	copy(full[:], b)
	var a HamAddr
	for i := range a.Chunks {
		a.Chunks[i] = uint16(full[2*i])<<8 | uint16(full[2*i+1])
	}
	return a, nil
}

// Type classifies the address per spec.md §3's ordered rules.
func (a HamAddr) Type() AddrType {
	c0 := a.Chunks[0]
	higherNonZero := a.Chunks[1] != 0 || a.Chunks[2] != 0 || a.Chunks[3] != 0

	if c0 == 0 && !higherNonZero {
		return Empty
	}
	if c0 < chunkShortMax {
		if !higherNonZero {
			return Short
		}
		return Reserved
	}
	if c0 < chunkHighMin {
		for _, c := range a.Chunks[1:] {
			if c != 0 && (c < chunkShortMax || c >= chunkHighMin) {
				return Reserved
			}
		}
		return Callsign
	}

	b := a.Bytes()
	if b == BroadcastAddr.Bytes() {
		return Broadcast
	}
	switch b[0] {
	case 0xFA:
		return IPv6Multicast
	case 0xFB:
		return IPv4Multicast
	default:
		return Reserved
	}
}

// IsMulticast reports whether the address is Broadcast, IPv6Multicast or
// IPv4Multicast, the group used by spec.md §4.5's direct_multicast test.
func (a HamAddr) IsMulticast() bool {
	switch a.Type() {
	case Broadcast, IPv6Multicast, IPv4Multicast:
		return true
	default:
		return false
	}
}

// ParseCallsign parses the textual callsign form of spec.md §4.3: up to
// 12 characters consumed in groups of three, each group packed into a
// chunk. "" and "~" decode to Empty; "~ffff"/"~FFFF" decode to
// Broadcast.
func ParseCallsign(s string) (HamAddr, error) {
	if s == "" || s == "~" {
		return HamAddr{}, nil
	}
	if strings.EqualFold(s, "~ffff") {
		return BroadcastAddr, nil
	}
	if len(s) > 12 {
		return HamAddr{}, ErrAddrTooLong
	}

	var chars [12]HamChar
	for i := 0; i < len(s); i++ {
		c, err := AsciiToHamChar(s[i])
		if err != nil {
			return HamAddr{}, fmt.Errorf("arnce: %w at position %d", err, i)
		}
		chars[i] = c
	}

	var a HamAddr
	for chunk := 0; chunk < 4; chunk++ {
		base := chunk * 3
		a.Chunks[chunk] = PackChunk(chars[base], chars[base+1], chars[base+2])
	}
	return a, nil
}

// Display renders a per spec.md §4.3: a Callsign address renders as its
// decoded characters (trailing NUL characters within the last non-empty
// chunk omitted); any other address renders as trimmed hexadecimal
// prefixed with '~'.
func (a HamAddr) Display() string {
	if a.Type() == Callsign {
		var sb strings.Builder
		for i, c := range a.Chunks {
			if c == 0 {
				continue
			}
			c0, c1, c2 := UnpackChunk(c)
			sb.WriteByte(c0.Byte())
			if c1 != CharNUL || (i == len(a.Chunks)-1 && c2 != CharNUL) {
				sb.WriteByte(c1.Byte())
			}
			if c2 != CharNUL {
				sb.WriteByte(c2.Byte())
			}
		}
		return sb.String()
	}
	trimmed := a.Trimmed()
	var sb strings.Builder
	sb.WriteByte('~')
	for i, b := range trimmed {
		if i > 0 && i%2 == 0 {
			sb.WriteByte('-')
		}
		fmt.Fprintf(&sb, "%02X", b)
	}
	return sb.String()
}
