// Package netbridge advertises internal/kissnet's KISS-over-TCP bridge
// as a discoverable mDNS service, mirroring Direwolf's AGW/KISS TCP
// server being discoverable on a LAN without static host configuration.
package netbridge

import (
	"context"
	"fmt"

	"github.com/brutella/dnssd"
)

// Advertiser publishes a _kiss-tnc._tcp mDNS service for the lifetime
// of its context.
type Advertiser struct {
	responder dnssd.Responder
	handle    dnssd.ServiceHandle
}

// Advertise registers a _kiss-tnc._tcp service named name on port, and
// starts responding to mDNS queries in the background. Cancel ctx to
// stop advertising.
func Advertise(ctx context.Context, name string, port int) (*Advertiser, error) {
	cfg := dnssd.Config{
		Name: name,
		Type: "_kiss-tnc._tcp",
		Port: port,
	}
	service, err := dnssd.NewService(cfg)
	if err != nil {
		return nil, fmt.Errorf("netbridge: new service: %w", err)
	}

	responder, err := dnssd.NewResponder()
	if err != nil {
		return nil, fmt.Errorf("netbridge: new responder: %w", err)
	}
	handle, err := responder.Add(service)
	if err != nil {
		return nil, fmt.Errorf("netbridge: add service: %w", err)
	}

	a := &Advertiser{responder: responder, handle: handle}
	go func() {
		_ = responder.Respond(ctx)
	}()
	return a, nil
}

// Remove withdraws the advertised service without waiting for ctx
// cancellation.
func (a *Advertiser) Remove(ctx context.Context) {
	a.responder.Remove(a.handle)
}
