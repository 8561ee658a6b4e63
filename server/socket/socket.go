// Package socket serves the game's binary protocol over websockets.  Each
// binary websocket message carries a chunk of the same byte stream that flows
// over plain TCP connections.
package socket

import (
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

type (
	// Conn adapts a gorilla websocket connection to the net.Conn the game
	// reads and writes.  Reads chain across websocket messages; each write
	// becomes one binary websocket message.
	Conn struct {
		*websocket.Conn
		reader io.Reader
	}

	// Handler upgrades http requests to websockets and hands the adapted
	// connections to the game.
	Handler struct {
		Config
		upgrader *websocket.Upgrader
	}

	// Config contains the properties to create a websocket handler.
	Config struct {
		// Log is used to log errors and other information.
		Log *log.Logger
		// HandleConn admits the connection to the game.
		HandleConn func(conn net.Conn)
	}
)

// NewHandler creates a websocket upgrade handler from the config.
func NewHandler(cfg Config) (*Handler, error) {
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("creating websocket handler: validation: %w", err)
	}
	h := Handler{
		Config:   cfg,
		upgrader: new(websocket.Upgrader),
	}
	return &h, nil
}

func (cfg Config) validate() error {
	switch {
	case cfg.Log == nil:
		return fmt.Errorf("log required")
	case cfg.HandleConn == nil:
		return fmt.Errorf("connection handler required")
	}
	return nil
}

// ServeHTTP upgrades the request and admits the connection.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	c, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.Log.Printf("upgrading to websocket connection: %v", err)
		return
	}
	h.HandleConn(NewConn(c))
}

// NewConn adapts the websocket connection to a net.Conn.
func NewConn(c *websocket.Conn) *Conn {
	return &Conn{Conn: c}
}

// Read copies bytes from the current websocket message, moving to the next
// message when one is exhausted.
func (c *Conn) Read(p []byte) (int, error) {
	for {
		if c.reader == nil {
			_, r, err := c.Conn.NextReader()
			if err != nil {
				return 0, err
			}
			c.reader = r
		}
		n, err := c.reader.Read(p)
		if err == io.EOF {
			c.reader = nil
			if n == 0 {
				continue
			}
			err = nil
		}
		return n, err
	}
}

// Write sends the bytes as one binary websocket message.
func (c *Conn) Write(p []byte) (int, error) {
	if err := c.Conn.WriteMessage(websocket.BinaryMessage, p); err != nil {
		return 0, err
	}
	return len(p), nil
}

// SetDeadline sets the read and write deadlines.
func (c *Conn) SetDeadline(t time.Time) error {
	if err := c.Conn.SetReadDeadline(t); err != nil {
		return err
	}
	return c.Conn.SetWriteDeadline(t)
}
