package main

import (
	"context"
	"io"
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/jacobpatterson1549/cross-tiles/db/player"
)

func TestPlayerBackend(t *testing.T) {
	tests := []struct {
		name        string
		databaseURL string
		wantNoDB    bool
		wantOk      bool
	}{
		{"empty url", "", true, true},
		{"unknown scheme", "mysql://localhost", false, false},
	}
	for _, test := range tests {
		m := mainFlags{databaseURL: test.databaseURL}
		backend, err := playerBackend(context.Background(), m)
		switch {
		case err != nil != !test.wantOk:
			t.Errorf("%v: wanted ok=%v, got %v", test.name, test.wantOk, err)
		case test.wantOk:
			if _, noDB := backend.(player.NoDatabaseBackend); noDB != test.wantNoDB {
				t.Errorf("%v: wanted no-database backend=%v, got %T", test.name, test.wantNoDB, backend)
			}
		}
	}
}

func TestServerConfig(t *testing.T) {
	m := mainFlags{
		bindAddr: "127.0.0.1",
		tcpPort:  8484,
		httpPort: 8000,
	}
	cfg := serverConfig(m)
	switch {
	case cfg.BindAddr != "127.0.0.1":
		t.Errorf("wanted bind address carried to server config, got %q", cfg.BindAddr)
	case cfg.TCPPort != 8484, cfg.HTTPPort != 8000:
		t.Errorf("wanted ports carried to server config, got %v and %v", cfg.TCPPort, cfg.HTTPPort)
	case cfg.StopDur <= 0:
		t.Error("wanted positive stop duration")
	}
}

func TestGameConfig(t *testing.T) {
	wordsFile := filepath.Join(t.TempDir(), "words.txt")
	if err := os.WriteFile(wordsFile, []byte("hi\nit\n"), 0600); err != nil {
		t.Fatal(err)
	}
	log := log.New(io.Discard, "", 0)
	dao, err := player.NewDao(player.NoDatabaseBackend{})
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		name   string
		m      mainFlags
		wantOk bool
	}{
		{"missing words file", mainFlags{wordsFile: filepath.Join(t.TempDir(), "missing.txt")}, false},
		{"ok", mainFlags{wordsFile: wordsFile, debugGame: true}, true},
	}
	for _, test := range tests {
		cfg, err := gameConfig(test.m, log, dao)
		switch {
		case err != nil != !test.wantOk:
			t.Errorf("%v: wanted ok=%v, got %v", test.name, test.wantOk, err)
		case test.wantOk:
			switch {
			case !cfg.WordValidator.Validate("HI"):
				t.Errorf("%v: wanted words file loaded into validator", test.name)
			case !cfg.Debug:
				t.Errorf("%v: wanted debug flag carried to game config", test.name)
			case cfg.ShuffleTilesFunc == nil, cfg.StartingPlayerFunc == nil:
				t.Errorf("%v: wanted shuffle and starting player funcs set", test.name)
			}
		}
	}
}
