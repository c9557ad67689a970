// Package ptt drives a GPIO line high for the duration of a Bell-202
// encode burst, the same role Direwolf's ptt.c plays for COM-port/GPIO
// keying. It is a collaborator external to the core DSP path, per
// spec.md §1's RF-analog-behavior Non-goal: the core never calls into
// this package directly, a caller wires Key/Unkey around its own call
// to internal/bell202.Encode.
package ptt

import (
	"fmt"

	"github.com/warthog618/go-gpiocdev"
)

// Line is a single GPIO output line used for push-to-talk keying.
type Line struct {
	line   *gpiocdev.Line
	active bool
}

// Open requests offset on the named gpiochip device as an output line,
// initially unkeyed (low).
func Open(device string, offset int, activeLow bool) (*Line, error) {
	opts := []gpiocdev.LineReqOption{gpiocdev.AsOutput(0)}
	if activeLow {
		opts = append(opts, gpiocdev.AsActiveLow)
	}
	l, err := gpiocdev.RequestLine(device, offset, opts...)
	if err != nil {
		return nil, fmt.Errorf("ptt: request line: %w", err)
	}
	return &Line{line: l}, nil
}

// Key asserts the line (keys the transmitter).
func (p *Line) Key() error {
	if err := p.line.SetValue(1); err != nil {
		return fmt.Errorf("ptt: key: %w", err)
	}
	p.active = true
	return nil
}

// Unkey deasserts the line.
func (p *Line) Unkey() error {
	if err := p.line.SetValue(0); err != nil {
		return fmt.Errorf("ptt: unkey: %w", err)
	}
	p.active = false
	return nil
}

// Active reports whether the line is currently keyed.
func (p *Line) Active() bool { return p.active }

// Close releases the GPIO line, unkeying first if still active.
func (p *Line) Close() error {
	if p.active {
		_ = p.Unkey()
	}
	return p.line.Close()
}
