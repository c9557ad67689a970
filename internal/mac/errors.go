// Package mac implements the ARNGLL MAC frame codec and receive filter
// of spec.md §4.4-4.5: a compact bit-packed frame format built on
// internal/arnce addressing, and a cooperative receive task performing
// acknowledgement generation and address/network admission.
//
// Grounded on the teacher's ax25_pad.go (header field packing) and
// kiss_frame.go (the surrounding frame-buffer lifecycle), generalized
// from AX.25's fixed 7-byte address fields to ARNGLL's variable-length
// FCF/SCF-driven layout.
package mac

import "errors"

// ErrParse is returned when a frame buffer is too short, carries an
// unknown version, or has an inconsistent address/MIC length, per
// spec.md §7's ParseError kind.
var ErrParse = errors.New("mac: frame parse error")

// ErrSecurity is surfaced by a SecurityContext implementation, per
// spec.md §7's SecurityError kind.
var ErrSecurity = errors.New("mac: security context rejected frame")

// ErrChannelBusy is returned by a send attempt while the channel-clear
// flag is false, per spec.md §7's ChannelBusy kind.
var ErrChannelBusy = errors.New("mac: channel not clear")

// ErrBackpressure is returned when a bounded inbound/outbound channel is
// full, per spec.md §7's BackpressureDrop kind.
var ErrBackpressure = errors.New("mac: channel backpressure drop")
