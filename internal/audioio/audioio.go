// Package audioio adapts github.com/gordonklaus/portaudio mono
// input/output streams to the core's sample sink/source interface of
// spec.md §6. It never runs in the modem's per-sample hot loop itself;
// it reads and writes whole sample batches with blocking PortAudio
// calls, and the caller feeds those batches to the DSP pipeline.
package audioio

import (
	"fmt"

	"github.com/gordonklaus/portaudio"
)

// Stream is a bidirectional mono audio device at a fixed sample rate,
// the concrete form of spec.md §6's opaque sink/source pair.
type Stream struct {
	pa         *portaudio.Stream
	sampleRate float64
	in         []float32
	out        []float32
}

// Open starts a mono input+output stream at sampleRate, with framesPerBuffer
// samples per callback. Call Close when done.
func Open(sampleRate float64, framesPerBuffer int) (*Stream, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("audioio: initialize: %w", err)
	}

	s := &Stream{
		sampleRate: sampleRate,
		in:         make([]float32, framesPerBuffer),
		out:        make([]float32, framesPerBuffer),
	}
	pa, err := portaudio.OpenDefaultStream(1, 1, sampleRate, framesPerBuffer, s.in, s.out)
	if err != nil {
		_ = portaudio.Terminate()
		return nil, fmt.Errorf("audioio: open stream: %w", err)
	}
	s.pa = pa
	if err := s.pa.Start(); err != nil {
		_ = s.pa.Close()
		_ = portaudio.Terminate()
		return nil, fmt.Errorf("audioio: start stream: %w", err)
	}
	return s, nil
}

// ReadBatch blocks until a batch of input samples is available and
// returns it as float64, the type internal/bell202.Decoder expects.
func (s *Stream) ReadBatch() ([]float64, error) {
	if err := s.pa.Read(); err != nil {
		return nil, fmt.Errorf("audioio: read: %w", err)
	}
	out := make([]float64, len(s.in))
	for i, v := range s.in {
		out[i] = float64(v)
	}
	return out, nil
}

// WriteBatch writes samples (typically a full internal/bell202.Encode
// frame, almost always longer than one callback's framesPerBuffer) to
// the output device, chunked across as many device callbacks as
// needed; the final partial chunk is zero-padded.
func (s *Stream) WriteBatch(samples []float64) error {
	if len(samples) == 0 {
		return nil
	}
	chunk := len(s.out)
	for off := 0; off < len(samples); off += chunk {
		end := off + chunk
		if end > len(samples) {
			end = len(samples)
		}
		n := copy(s.out, castBatch(samples[off:end]))
		for i := n; i < len(s.out); i++ {
			s.out[i] = 0
		}
		if err := s.pa.Write(); err != nil {
			return fmt.Errorf("audioio: write: %w", err)
		}
	}
	return nil
}

func castBatch(samples []float64) []float32 {
	out := make([]float32, len(samples))
	for i, v := range samples {
		out[i] = float32(v)
	}
	return out
}

// SampleRate reports the stream's configured rate in Hz.
func (s *Stream) SampleRate() float64 { return s.sampleRate }

// Close stops the stream and releases the PortAudio host.
func (s *Stream) Close() error {
	if err := s.pa.Close(); err != nil {
		_ = portaudio.Terminate()
		return fmt.Errorf("audioio: close: %w", err)
	}
	return portaudio.Terminate()
}
