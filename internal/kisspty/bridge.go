package kisspty

import (
	"fmt"
	"os"

	"github.com/creack/pty"
)

// Bridge exposes one end of a pseudo-terminal pair as a KISS serial
// port; the slave path (SlavePath) is what a client such as Xastir or
// APRSIS32 would open.
type Bridge struct {
	master *os.File
	slave  *os.File
	dec    Decoder
}

// Open allocates a new pty pair.
func Open() (*Bridge, error) {
	master, slave, err := pty.Open()
	if err != nil {
		return nil, fmt.Errorf("kisspty: open: %w", err)
	}
	return &Bridge{master: master, slave: slave}, nil
}

// SlavePath is the path a client TNC application should open, e.g.
// "/dev/pts/4".
func (b *Bridge) SlavePath() string { return b.slave.Name() }

// SendFrame KISS-encodes payload and writes it to the master side, for
// delivery to whatever client holds the slave open.
func (b *Bridge) SendFrame(payload []byte) error {
	_, err := b.master.Write(EncodeFrame(payload))
	if err != nil {
		return fmt.Errorf("kisspty: write: %w", err)
	}
	return nil
}

// ReadFrames blocks reading from the master side and invokes onFrame
// for every complete KISS frame decoded, until the master is closed or
// an I/O error occurs.
func (b *Bridge) ReadFrames(onFrame func([]byte)) error {
	buf := make([]byte, 4096)
	for {
		n, err := b.master.Read(buf)
		if err != nil {
			return fmt.Errorf("kisspty: read: %w", err)
		}
		for _, c := range buf[:n] {
			if frame, ok := b.dec.Push(c); ok {
				onFrame(frame)
			}
		}
	}
}

// Close releases both ends of the pty pair.
func (b *Bridge) Close() error {
	err1 := b.master.Close()
	err2 := b.slave.Close()
	if err1 != nil {
		return err1
	}
	return err2
}
