package mac

import (
	"context"
	"errors"
	"math/rand"
	"sync/atomic"
	"time"
)

// ChannelClear is the single-atomic channel-busy discipline of spec.md
// §5: a shared boolean the sender consults before committing a frame,
// backing off randomly (5-50ms) and rechecking while it reads false.
//
// Grounded in spirit on the teacher's persistence-algorithm CSMA wait
// loop (dwait()-style poll/backoff), reimplemented here as the single
// atomic flag spec.md describes rather than the teacher's channel-
// specific C state machine.
type ChannelClear struct {
	clear atomic.Bool
}

// NewChannelClear returns a ChannelClear starting in the clear state.
func NewChannelClear() *ChannelClear {
	c := &ChannelClear{}
	c.clear.Store(true)
	return c
}

// SetClear updates the flag. Setting it true wakes any pending sender
// backed off in SendWithBackoff on its next poll.
func (c *ChannelClear) SetClear(v bool) { c.clear.Store(v) }

// IsClear reports the current flag value.
func (c *ChannelClear) IsClear() bool { return c.clear.Load() }

// TrySend runs send if the channel is currently clear, else returns
// ErrChannelBusy immediately without running send, per spec.md §7.
func (c *ChannelClear) TrySend(send func() error) error {
	if !c.IsClear() {
		return ErrChannelBusy
	}
	return send()
}

// SendWithBackoff retries TrySend with a random 5-50ms backoff between
// attempts until it succeeds, send itself fails, or ctx is cancelled.
func (c *ChannelClear) SendWithBackoff(ctx context.Context, send func() error) error {
	for {
		err := c.TrySend(send)
		if err == nil {
			return nil
		}
		if !errors.Is(err, ErrChannelBusy) {
			return err
		}
		backoff := time.Duration(5+rand.Intn(46)) * time.Millisecond
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
	}
}
