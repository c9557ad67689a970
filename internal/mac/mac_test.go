package mac

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/arngll/arngll-go/internal/arnce"
	"github.com/stretchr/testify/require"
)

func TestChannelClearBlocksUntilCleared(t *testing.T) {
	cc := NewChannelClear()
	cc.SetClear(false)

	sent := make(chan struct{})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		_ = cc.SendWithBackoff(ctx, func() error {
			close(sent)
			return nil
		})
	}()

	select {
	case <-sent:
		t.Fatal("send completed before channel was cleared")
	case <-time.After(20 * time.Millisecond):
	}

	cc.SetClear(true)
	select {
	case <-sent:
	case <-time.After(200 * time.Millisecond):
		t.Fatal("send never completed after channel cleared")
	}
}

func TestChannelClearTrySendImmediateBusy(t *testing.T) {
	cc := NewChannelClear()
	cc.SetClear(false)
	err := cc.TrySend(func() error { return nil })
	require.True(t, errors.Is(err, ErrChannelBusy))
}

func TestDedupeSuppressesWithinTTL(t *testing.T) {
	d := NewDedupe(50 * time.Millisecond)
	now := time.Now()
	require.False(t, d.SeenRecently(0x1234, now))
	require.True(t, d.SeenRecently(0x1234, now.Add(10*time.Millisecond)))
	require.False(t, d.SeenRecently(0x1234, now.Add(100*time.Millisecond)))
}

func TestReceiveFilterDeliversDirectUnicastAndAcks(t *testing.T) {
	own := mustParseCallsign(t, "N6DRC")
	src := mustParseCallsign(t, "N6NFI")

	f := FrameInfo{
		Version:      1,
		FrameType:    Data,
		AckRequested: true,
		Dst:          own,
		Src:          src,
	}
	buf, err := f.BytesWithPayload([]byte("hi"))
	require.NoError(t, err)

	sink := make(chan []byte, 1)
	deliver := make(chan Delivered, 1)
	rf := NewReceiveFilter(own, 0, nil, sink)

	rf.processOne(buf, deliver)

	select {
	case d := <-deliver:
		require.Equal(t, "hi", string(d.Payload))
	default:
		t.Fatal("expected a delivered frame")
	}
	select {
	case <-sink:
	default:
		t.Fatal("expected an ack on the sink")
	}
}

func TestReceiveFilterDropsWrongNetworkID(t *testing.T) {
	own := mustParseCallsign(t, "N6DRC")
	src := mustParseCallsign(t, "N6NFI")
	netID := uint16(0x99)

	f := FrameInfo{Version: 1, FrameType: Data, NetworkID: &netID, Dst: own, Src: src}
	buf, err := f.BytesWithPayload(nil)
	require.NoError(t, err)

	sink := make(chan []byte, 1)
	deliver := make(chan Delivered, 1)
	rf := NewReceiveFilter(own, 0x42, nil, sink)
	rf.processOne(buf, deliver)

	select {
	case <-deliver:
		t.Fatal("frame should have been dropped")
	default:
	}
}

func TestReceiveFilterDropsUnaddressedFrame(t *testing.T) {
	own := mustParseCallsign(t, "N6DRC")
	other := mustParseCallsign(t, "N6NFI")
	src := mustParseCallsign(t, "N6NFI")

	f := FrameInfo{Version: 1, FrameType: Data, Dst: other, Src: src}
	buf, err := f.BytesWithPayload(nil)
	require.NoError(t, err)

	sink := make(chan []byte, 1)
	deliver := make(chan Delivered, 1)
	rf := NewReceiveFilter(own, 0, nil, sink)
	rf.processOne(buf, deliver)

	select {
	case <-deliver:
		t.Fatal("frame should have been dropped")
	default:
	}
}

func TestReceiveFilterDeliversMulticast(t *testing.T) {
	own := mustParseCallsign(t, "N6DRC")
	src := mustParseCallsign(t, "N6NFI")

	f := FrameInfo{Version: 1, FrameType: Data, Dst: arnce.BroadcastAddr, Src: src}
	buf, err := f.BytesWithPayload(nil)
	require.NoError(t, err)

	sink := make(chan []byte, 1)
	deliver := make(chan Delivered, 1)
	rf := NewReceiveFilter(own, 0, nil, sink)
	rf.processOne(buf, deliver)

	select {
	case <-deliver:
	default:
		t.Fatal("multicast frame should have been delivered")
	}
}

func TestNullPolicyRejectsInboundSec(t *testing.T) {
	f := FrameInfo{Sec: &SecInfo{}}
	payload := []byte{}
	err := (NullPolicy{}).ProcessInbound(&f, &payload)
	require.ErrorIs(t, err, ErrSecurity)
}

func TestNullPolicyStripsOutboundSec(t *testing.T) {
	f := FrameInfo{Sec: &SecInfo{}}
	payload := []byte{}
	err := (NullPolicy{}).ProcessOutbound(&f, &payload)
	require.NoError(t, err)
	require.Nil(t, f.Sec)
}
