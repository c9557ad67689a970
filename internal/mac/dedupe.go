package mac

import (
	"sync"
	"time"
)

// Dedupe is a recently-seen-frame cache keyed on ack_crc, supplementing
// spec.md's ACK design with loop suppression for frames that arrive
// twice via a relay. Grounded on the teacher's dedupe.go time-windowed
// digest cache, generalized from AX.25's whole-frame digest to
// ARNGLL's existing ack_crc field.
type Dedupe struct {
	mu   sync.Mutex
	ttl  time.Duration
	seen map[uint16]time.Time
}

// NewDedupe returns a Dedupe that forgets an entry after ttl.
func NewDedupe(ttl time.Duration) *Dedupe {
	return &Dedupe{ttl: ttl, seen: make(map[uint16]time.Time)}
}

// SeenRecently reports whether ackCRC was already recorded within ttl of
// now, recording it either way. Expired entries are swept opportunistically.
func (d *Dedupe) SeenRecently(ackCRC uint16, now time.Time) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if t, ok := d.seen[ackCRC]; ok && now.Sub(t) < d.ttl {
		return true
	}
	d.seen[ackCRC] = now

	for k, t := range d.seen {
		if now.Sub(t) >= d.ttl {
			delete(d.seen, k)
		}
	}
	return false
}
