package client

import (
	"fmt"
	"log"
	"net"
	"sync"

	"github.com/jacobpatterson1549/cross-tiles/game/message"
	"github.com/jacobpatterson1549/cross-tiles/game/queue"
)

type (
	// Session is one connection to a game server.  A reader loop decodes
	// server messages onto the inbound channel; a single consumer applies
	// each one to the local game under the mutex and invokes the update
	// callback; a writer loop drains the outbound queue to the socket.
	Session struct {
		Config
		mu   sync.Mutex
		game *Game
		conn net.Conn
		dec  *message.Decoder
		in   chan message.Message
		out  *queue.Queue
		done chan struct{}
	}

	// Config contains the properties to create a session.
	Config struct {
		// Log is used to log errors and other information.
		Log *log.Logger
		// OnUpdate is called after each server message is applied.  Text is
		// display text for the message and may be empty.
		OnUpdate func(m message.Message, text string)
	}
)

// NewSession creates an unconnected session from the config.
func NewSession(cfg Config) (*Session, error) {
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("creating session: validation: %w", err)
	}
	s := Session{
		Config: cfg,
		game:   newGame(),
		in:     make(chan message.Message),
		out:    queue.New(),
		done:   make(chan struct{}),
	}
	return &s, nil
}

func (cfg Config) validate() error {
	switch {
	case cfg.Log == nil:
		return fmt.Errorf("log required")
	case cfg.OnUpdate == nil:
		return fmt.Errorf("update callback required")
	}
	return nil
}

// Start connects to the server, requests a seat for the named player, and
// starts the session loops.
func (s *Session) Start(addr, name string) error {
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		return fmt.Errorf("connecting to %v: %w", addr, err)
	}
	s.conn = conn
	s.dec = message.NewDecoder(conn, message.ClientSide)
	s.out.Put(message.Join{Name: name})
	go s.listenIncoming()
	go s.listenOutgoing()
	go s.processIncoming()
	return nil
}

// Send enqueues a message for the server.
func (s *Session) Send(m message.Message) {
	s.out.Put(m)
}

// Stop tells the server the player is leaving and ends the session loops.
func (s *Session) Stop() {
	s.out.Put(message.Leave{})
	select {
	case s.in <- nil:
	case <-s.done:
	}
}

// Done is closed when the session has processed its last message.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// listenIncoming decodes server messages onto the inbound channel.  A decode
// or I/O error is a disconnect, marked with a nil message.
func (s *Session) listenIncoming() {
	for {
		m, err := s.dec.Decode()
		if err != nil {
			select {
			case s.in <- nil:
			case <-s.done:
			}
			return
		}
		select {
		case s.in <- m:
		case <-s.done:
			return
		}
		if m.Type() == message.ShutdownType {
			return
		}
	}
}

// listenOutgoing writes queued messages to the server, closing the connection
// after Leave is sent.
func (s *Session) listenOutgoing() {
	for {
		m, ok := s.out.Get()
		if !ok {
			s.conn.Close()
			return
		}
		if _, err := s.conn.Write(message.Encode(m)); err != nil {
			s.Log.Printf("writing to server: %v", err)
			s.conn.Close()
			return
		}
		if m.Type() == message.LeaveType {
			s.conn.Close()
			return
		}
	}
}

// processIncoming applies each server message to the local game and invokes
// the update callback.  A Shutdown or disconnect ends the session.
func (s *Session) processIncoming() {
	defer close(s.done)
	for m := range s.in {
		terminal := m == nil
		if terminal {
			m = message.Shutdown{}
		}
		s.mu.Lock()
		text := s.game.apply(m)
		s.mu.Unlock()
		s.OnUpdate(m, text)
		if terminal || m.Type() == message.ShutdownType {
			s.out.Close()
			return
		}
	}
}
