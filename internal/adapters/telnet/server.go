// Package telnet is the session layer: a newline-delimited text protocol
// served over TCP, one goroutine per client connection. It owns prompting,
// tokenizing and SUCCESS:/FAIL: rendering; all banking state lives behind
// the services it calls.
package telnet

import (
	"context"
	"log/slog"
	"net"
	"sync"
	"sync/atomic"

	"newbank/internal/core/services"
)

// Server accepts client connections and runs one session per connection.
// Every session shares the single injected bank instance.
type Server struct {
	addr string
	bank *services.Bank
	log  *slog.Logger

	ln       net.Listener
	closing  atomic.Bool
	sessions sync.WaitGroup

	mu    sync.Mutex
	conns map[net.Conn]struct{}
}

// NewServer creates a server for the given listen address
func NewServer(addr string, bank *services.Bank, logger *slog.Logger) *Server {
	return &Server{
		addr:  addr,
		bank:  bank,
		log:   logger,
		conns: make(map[net.Conn]struct{}),
	}
}

// ListenAndServe blocks accepting connections until Shutdown is called or
// the listener fails.
func (s *Server) ListenAndServe() error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.ln = ln
	s.mu.Unlock()

	s.log.Info("listening", "addr", ln.Addr().String())

	for {
		conn, err := ln.Accept()
		if err != nil {
			if s.closing.Load() {
				return nil
			}
			return err
		}

		s.track(conn)
		s.sessions.Add(1)
		go func() {
			defer s.sessions.Done()
			defer s.untrack(conn)
			newSession(conn, s.bank, s.log).run()
		}()
	}
}

// Addr returns the bound listen address, or nil before ListenAndServe has
// opened the listener. Useful when listening on port 0.
func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ln == nil {
		return nil
	}
	return s.ln.Addr()
}

// Shutdown stops accepting connections, closes the active ones and waits for
// their sessions to finish, or until ctx expires.
func (s *Server) Shutdown(ctx context.Context) error {
	s.closing.Store(true)

	s.mu.Lock()
	if s.ln != nil {
		s.ln.Close()
	}
	for conn := range s.conns {
		conn.Close()
	}
	s.mu.Unlock()

	done := make(chan struct{})
	go func() {
		s.sessions.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Server) track(conn net.Conn) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.conns[conn] = struct{}{}
}

func (s *Server) untrack(conn net.Conn) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.conns, conn)
}
