// Command arngll-tnc runs the Bell-202 modem and ARNGLL MAC layer as a
// standalone TNC daemon, bridging decoded frames to KISS clients over a
// pseudo-terminal and, optionally, a discoverable TCP listener — the
// same role Direwolf's main program plays for AX.25, adapted to this
// spec's modem and frame format.
package main

import (
	"context"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/arngll/arngll-go/internal/arnce"
	"github.com/arngll/arngll-go/internal/audioio"
	"github.com/arngll/arngll-go/internal/bell202"
	"github.com/arngll/arngll-go/internal/config"
	"github.com/arngll/arngll-go/internal/dsp"
	"github.com/arngll/arngll-go/internal/kissnet"
	"github.com/arngll/arngll-go/internal/kisspty"
	"github.com/arngll/arngll-go/internal/mac"
	"github.com/arngll/arngll-go/internal/netbridge"
	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"
)

func main() {
	configPath := pflag.StringP("config", "c", "arngll-tnc.yaml", "path to YAML config")
	kissTCPAddr := pflag.String("kiss-tcp", "", "also serve KISS over TCP at this address, e.g. :8001")
	advertise := pflag.Bool("advertise", false, "advertise the KISS TCP bridge via mDNS")
	pflag.Parse()

	logger := log.Default()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Fatal("loading config", "err", err)
	}

	own, err := arnce.ParseCallsign(cfg.Callsign)
	if err != nil {
		logger.Fatal("invalid callsign in config", "callsign", cfg.Callsign, "err", err)
	}

	stream, err := audioio.Open(float64(cfg.Audio.SampleRate), 256)
	if err != nil {
		logger.Fatal("opening audio stream", "err", err)
	}
	defer stream.Close()

	pty, err := kisspty.Open()
	if err != nil {
		logger.Fatal("opening kiss pty", "err", err)
	}
	defer pty.Close()
	logger.Info("kiss serial bridge ready", "path", pty.SlavePath())

	var tcp *kissnet.Server
	toSend := make(chan []byte, 8)
	onClientFrame := func(f []byte) {
		select {
		case toSend <- f:
		default:
		}
	}

	if *kissTCPAddr != "" {
		tcp, err = kissnet.Listen(*kissTCPAddr, onClientFrame)
		if err != nil {
			logger.Fatal("opening kiss tcp listener", "err", err)
		}
		defer tcp.Close()
		logger.Info("kiss tcp bridge ready", "addr", tcp.Addr())

		if *advertise {
			advCtx, cancel := context.WithCancel(context.Background())
			defer cancel()
			port := tcp.Addr().(*net.TCPAddr).Port
			if _, err := netbridge.Advertise(advCtx, cfg.Callsign, port); err != nil {
				logger.Warn("mdns advertise failed", "err", err)
			}
		}
	}

	sink := make(chan []byte, 8)
	deliver := make(chan mac.Delivered, 8)
	rf := mac.NewReceiveFilter(own, cfg.NetworkID, mac.NullPolicy{}, sink)
	rf.Logger = logger

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		_ = pty.ReadFrames(func(f []byte) { onClientFrame(f) })
	}()

	go decodeLoop(ctx, stream, rf, deliver, logger)
	go forwardLoop(ctx, deliver, pty, tcp, logger)
	go ackLoop(ctx, sink, toSend, stream, logger)

	<-ctx.Done()
	logger.Info("shutting down")
}

func decodeLoop(ctx context.Context, stream *audioio.Stream, rf *mac.ReceiveFilter, deliver chan<- mac.Delivered, logger *log.Logger) {
	dec := bell202.NewDecoder[float64](int(stream.SampleRate()), bell202.Default)
	in := make(chan []byte, 8)
	go func() {
		_ = rf.Listen(ctx, in, deliver)
	}()

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}
		samples, err := stream.ReadBatch()
		if err != nil {
			logger.Warn("audio read failed", "err", err)
			return
		}
		for _, s := range samples {
			frame, ok := dec.Push(s)
			if !ok {
				continue
			}
			body, verr := dsp.VerifyCRCStrict(frame)
			if verr != nil {
				logger.Debug("dropping frame", "reason", verr)
				continue
			}
			select {
			case in <- body:
			default:
				logger.Warn("dropping frame", "reason", mac.ErrBackpressure)
			}
		}
	}
}

func forwardLoop(ctx context.Context, deliver <-chan mac.Delivered, pty *kisspty.Bridge, tcp *kissnet.Server, logger *log.Logger) {
	for {
		select {
		case <-ctx.Done():
			return
		case d := <-deliver:
			if err := pty.SendFrame(d.Payload); err != nil {
				logger.Warn("kiss pty send failed", "err", err)
			}
			if tcp != nil {
				tcp.Broadcast(d.Payload)
			}
		}
	}
}

// ackLoop drives the transmit side: ACK frames synthesised by the
// receive filter (already CRC-appended) and frames submitted by KISS
// clients (CRC appended here) both get encoded to audio and keyed out.
func ackLoop(ctx context.Context, acks <-chan []byte, clientFrames <-chan []byte, stream *audioio.Stream, logger *log.Logger) {
	transmit := func(body []byte) {
		samples := bell202.Encode[float64](body, int(stream.SampleRate()), 0.75, bell202.Default)
		if err := stream.WriteBatch(samples); err != nil {
			logger.Warn("audio write failed", "err", err)
		}
	}
	for {
		select {
		case <-ctx.Done():
			return
		case body := <-acks:
			transmit(body)
		case body := <-clientFrames:
			transmit(dsp.AppendCRC(body))
		}
	}
}
