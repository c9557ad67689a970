// Package kissnet serves the MAC layer's KISS frame stream over TCP,
// the networked counterpart to internal/kisspty's serial bridge,
// grounded on the teacher's kissnet.go TCP listener loop.
package kissnet

import (
	"fmt"
	"net"
	"sync"

	"github.com/arngll/arngll-go/internal/kisspty"
)

// Server accepts KISS-over-TCP client connections and fans decoded-
// frame delivery to all of them.
type Server struct {
	ln net.Listener

	mu    sync.Mutex
	conns map[net.Conn]struct{}

	onFrame func([]byte)
}

// Listen opens a TCP listener on addr (e.g. ":8001") and begins
// accepting KISS clients in the background.
func Listen(addr string, onFrame func([]byte)) (*Server, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("kissnet: listen: %w", err)
	}
	s := &Server{ln: ln, conns: make(map[net.Conn]struct{}), onFrame: onFrame}
	go s.acceptLoop()
	return s, nil
}

// Addr returns the listener's bound address.
func (s *Server) Addr() net.Addr { return s.ln.Addr() }

func (s *Server) acceptLoop() {
	for {
		conn, err := s.ln.Accept()
		if err != nil {
			return
		}
		s.mu.Lock()
		s.conns[conn] = struct{}{}
		s.mu.Unlock()
		go s.serve(conn)
	}
}

func (s *Server) serve(conn net.Conn) {
	defer func() {
		s.mu.Lock()
		delete(s.conns, conn)
		s.mu.Unlock()
		_ = conn.Close()
	}()

	var dec kisspty.Decoder
	buf := make([]byte, 4096)
	for {
		n, err := conn.Read(buf)
		if err != nil {
			return
		}
		for _, b := range buf[:n] {
			if frame, ok := dec.Push(b); ok && s.onFrame != nil {
				s.onFrame(frame)
			}
		}
	}
}

// Broadcast KISS-encodes payload and writes it to every connected
// client; a slow or dead client is dropped on its next write error.
func (s *Server) Broadcast(payload []byte) {
	encoded := kisspty.EncodeFrame(payload)
	s.mu.Lock()
	defer s.mu.Unlock()
	for conn := range s.conns {
		if _, err := conn.Write(encoded); err != nil {
			delete(s.conns, conn)
			_ = conn.Close()
		}
	}
}

// Close stops accepting new connections and closes all existing ones.
func (s *Server) Close() error {
	err := s.ln.Close()
	s.mu.Lock()
	defer s.mu.Unlock()
	for conn := range s.conns {
		_ = conn.Close()
		delete(s.conns, conn)
	}
	return err
}
