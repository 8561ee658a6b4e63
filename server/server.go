// Package server accepts the tcp and websocket connections that play the game.
package server

import (
	"context"
	"fmt"
	"log"
	"net"
	"net/http"
	"time"

	"github.com/jacobpatterson1549/cross-tiles/server/socket"
)

type (
	// Server owns the listeners that feed connections to the game.  The tcp
	// listener carries the binary protocol directly; the optional http server
	// carries the same protocol over websockets at /ws.
	Server struct {
		log        *log.Logger
		game       Game
		listener   net.Listener
		httpServer *http.Server
		gameDone   <-chan struct{}
		Config
	}

	// Config contains fields which describe the server.
	Config struct {
		// BindAddr is the address the listeners bind to.  Empty binds all
		// interfaces.
		BindAddr string
		// TCPPort is the port game connections are accepted on.  Zero picks
		// an unused port.
		TCPPort int
		// HTTPPort is the port serving the websocket transport.
		// Zero disables it.
		HTTPPort int
		// StopDur is how long to wait for the server to shut down.
		StopDur time.Duration
	}

	// Game admits connections and runs the play loop.
	Game interface {
		Handle(conn net.Conn)
		Run(ctx context.Context) <-chan struct{}
		Stop()
	}
)

// NewServer creates a Server from the Config.
func (cfg Config) NewServer(log *log.Logger, game Game) (*Server, error) {
	if err := cfg.validate(log, game); err != nil {
		return nil, fmt.Errorf("creating server: validation: %w", err)
	}
	s := Server{
		log:    log,
		game:   game,
		Config: cfg,
	}
	if cfg.HTTPPort > 0 {
		h, err := socket.NewHandler(socket.Config{
			Log:        log,
			HandleConn: game.Handle,
		})
		if err != nil {
			return nil, fmt.Errorf("creating server: %w", err)
		}
		mux := new(http.ServeMux)
		mux.Handle("/ws", h)
		s.httpServer = &http.Server{
			Addr:    fmt.Sprintf("%s:%d", cfg.BindAddr, cfg.HTTPPort),
			Handler: mux,
		}
	}
	return &s, nil
}

// validate ensures the configuration has no errors.
func (cfg Config) validate(log *log.Logger, game Game) error {
	switch {
	case log == nil:
		return fmt.Errorf("log required")
	case game == nil:
		return fmt.Errorf("game required")
	case cfg.TCPPort < 0:
		return fmt.Errorf("non-negative tcp port required")
	case cfg.HTTPPort < 0:
		return fmt.Errorf("non-negative http port required")
	case cfg.StopDur <= 0:
		return fmt.Errorf("stop timeout duration required")
	}
	return nil
}

// Run starts the game and the listeners.  Listener failures are reported on
// the returned channel.
func (s *Server) Run(ctx context.Context) (<-chan error, error) {
	listener, err := net.Listen("tcp", fmt.Sprintf("%s:%d", s.BindAddr, s.TCPPort))
	if err != nil {
		return nil, fmt.Errorf("starting tcp listener: %w", err)
	}
	s.listener = listener
	s.gameDone = s.game.Run(ctx)
	errC := make(chan error, 2)
	s.log.Printf("accepting game connections at %v", listener.Addr())
	go func() {
		for {
			conn, err := s.listener.Accept()
			if err != nil {
				errC <- err
				return
			}
			go s.game.Handle(conn)
		}
	}()
	if s.httpServer != nil {
		s.log.Printf("accepting websocket connections at ws://127.0.0.1%v/ws", s.httpServer.Addr)
		go func() {
			errC <- s.httpServer.ListenAndServe()
		}()
	}
	return errC, nil
}

// TCPAddr returns the address of the running tcp listener.
func (s *Server) TCPAddr() net.Addr {
	return s.listener.Addr()
}

// Stop tells the game to shut down, closes the listeners, and waits for the
// game loop to drain.  An error is returned if the stop duration elapses
// first.
func (s *Server) Stop(ctx context.Context) error {
	ctx, cancelFunc := context.WithTimeout(ctx, s.StopDur)
	defer cancelFunc()
	var httpShutdownErr error
	if s.httpServer != nil {
		httpShutdownErr = s.httpServer.Shutdown(ctx)
	}
	s.game.Stop()
	closeErr := s.listener.Close()
	select {
	case <-s.gameDone:
	case <-ctx.Done():
		return fmt.Errorf("waiting for game to stop: %w", ctx.Err())
	}
	switch {
	case httpShutdownErr != nil:
		return httpShutdownErr
	case closeErr != nil:
		return closeErr
	}
	return nil
}
