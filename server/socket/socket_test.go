package socket

import (
	"bytes"
	"io"
	"log"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"
)

func TestNewHandler(t *testing.T) {
	discard := log.New(io.Discard, "", 0)
	handleConn := func(conn net.Conn) {}
	tests := []struct {
		name   string
		cfg    Config
		wantOk bool
	}{
		{"no log", Config{HandleConn: handleConn}, false},
		{"no connection handler", Config{Log: discard}, false},
		{"ok", Config{Log: discard, HandleConn: handleConn}, true},
	}
	for _, test := range tests {
		if _, err := NewHandler(test.cfg); err != nil == test.wantOk {
			t.Errorf("%v: wanted ok=%v, got %v", test.name, test.wantOk, err)
		}
	}
}

// TestConnStream echoes bytes through the adapter to check that reads chain
// across websocket messages and writes frame whole messages.
func TestConnStream(t *testing.T) {
	echo := func(conn net.Conn) {
		go func() {
			defer conn.Close()
			buf := make([]byte, 4)
			for {
				n, err := io.ReadFull(conn, buf)
				if err != nil {
					return
				}
				if _, err := conn.Write(buf[:n]); err != nil {
					return
				}
			}
		}()
	}
	h, err := NewHandler(Config{
		Log:        log.New(io.Discard, "", 0),
		HandleConn: echo,
	})
	if err != nil {
		t.Fatal(err)
	}
	s := httptest.NewServer(h)
	defer s.Close()
	url := "ws" + strings.TrimPrefix(s.URL, "http")
	c, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dialing %v: %v", url, err)
	}
	defer c.Close()
	// split one 4 byte read across three websocket messages.
	for _, chunk := range [][]byte{{1}, {2, 3}, {4, 5, 6, 7, 8}} {
		if err := c.WriteMessage(websocket.BinaryMessage, chunk); err != nil {
			t.Fatalf("writing chunk: %v", err)
		}
	}
	want := [][]byte{{1, 2, 3, 4}, {5, 6, 7, 8}}
	for i, wantEcho := range want {
		mt, got, err := c.ReadMessage()
		switch {
		case err != nil:
			t.Fatalf("echo %v: %v", i, err)
		case mt != websocket.BinaryMessage:
			t.Errorf("echo %v: wanted binary message, got type %v", i, mt)
		case !bytes.Equal(got, wantEcho):
			t.Errorf("echo %v: wanted %v, got %v", i, wantEcho, got)
		}
	}
}

func TestServeHTTPRequiresUpgrade(t *testing.T) {
	h, err := NewHandler(Config{
		Log:        log.New(io.Discard, "", 0),
		HandleConn: func(conn net.Conn) {},
	})
	if err != nil {
		t.Fatal(err)
	}
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/ws", nil)
	h.ServeHTTP(w, r)
	if w.Code == http.StatusOK {
		t.Errorf("wanted upgrade failure for plain http request, got %v", w.Code)
	}
}
