package mac

import (
	"context"
	"sync"

	"github.com/arngll/arngll-go/internal/arnce"
	"github.com/arngll/arngll-go/internal/dsp"
	"github.com/charmbracelet/log"
)

// Delivered is a frame yielded by ReceiveFilter.Listen to its caller,
// per spec.md §4.5 step 7.
type Delivered struct {
	Info    FrameInfo
	Payload []byte
}

// ReceiveFilter is the cooperative MAC receive task of spec.md §4.5: it
// parses inbound framed buffers, admits them by network ID and address,
// synthesises acknowledgements, and runs the security context. It is
// single-threaded over one (sink, stream, callsign, netid, security)
// quintuple; sink writes are mutex-guarded so a caller driving Listen
// concurrently with its own direct sends to Sink does not race.
type ReceiveFilter struct {
	Callsign  arnce.HamAddr
	NetworkID uint16
	Security  SecurityContext
	Logger    *log.Logger

	mu   sync.Mutex
	sink chan<- []byte
}

// NewReceiveFilter builds a filter bound to own callsign, network ID,
// security context and outbound raw-frame sink. sink carries header-
// plus-payload bytes with the X.25 CRC already appended (HDLC framing is
// the modem's concern).
func NewReceiveFilter(callsign arnce.HamAddr, netID uint16, sec SecurityContext, sink chan<- []byte) *ReceiveFilter {
	if sec == nil {
		sec = NullPolicy{}
	}
	return &ReceiveFilter{
		Callsign:  callsign,
		NetworkID: netID,
		Security:  sec,
		Logger:    log.Default(),
		sink:      sink,
	}
}

// Listen drains in until it closes or ctx is cancelled, delivering
// admitted frames on deliver (a bounded channel; a full channel drops
// the frame per spec.md §7's BackpressureDrop). It never interleaves a
// partially emitted frame on sink even under cancellation, since each
// send is a single channel operation carrying a complete buffer.
func (r *ReceiveFilter) Listen(ctx context.Context, in <-chan []byte, deliver chan<- Delivered) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case buf, ok := <-in:
			if !ok {
				return nil
			}
			r.processOne(buf, deliver)
		}
	}
}

func (r *ReceiveFilter) processOne(buf []byte, deliver chan<- Delivered) {
	info, payload, err := Parse(buf)
	if err != nil {
		r.Logger.Debug("dropping frame", "reason", "parse error", "err", err)
		return
	}

	if info.NetworkID != nil && *info.NetworkID != r.NetworkID {
		r.Logger.Debug("dropping frame", "reason", "network_id mismatch", "got", *info.NetworkID, "want", r.NetworkID)
		return
	}

	directUnicast := info.Dst == r.Callsign
	directMulticast := info.Dst.IsMulticast()

	if directUnicast && info.AckRequested {
		r.sendAck(info, payload)
	}

	if !directUnicast && !directMulticast {
		r.Logger.Debug("dropping frame", "reason", "not addressed to us", "dst", info.Dst.Display())
		return
	}

	if err := r.Security.ProcessInbound(&info, &payload); err != nil {
		r.Logger.Debug("dropping frame", "reason", "security rejected", "err", err)
		return
	}

	select {
	case deliver <- Delivered{Info: info, Payload: payload}:
	default:
		r.Logger.Warn("dropping frame", "reason", ErrBackpressure)
	}
}

func (r *ReceiveFilter) sendAck(info FrameInfo, payload []byte) {
	ack, err := SynthesizeAck(info, payload)
	if err != nil {
		r.Logger.Debug("ack synthesis failed", "err", err)
		return
	}
	ackBody, err := ack.BytesWithPayload(nil)
	if err != nil {
		r.Logger.Debug("ack serialisation failed", "err", err)
		return
	}
	ackBytes := dsp.AppendCRC(ackBody)

	r.mu.Lock()
	defer r.mu.Unlock()
	select {
	case r.sink <- ackBytes:
	default:
		r.Logger.Warn("dropping ack", "reason", ErrBackpressure)
	}
}
