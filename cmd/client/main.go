// Package main runs a terminal client that connects to a game server.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/jacobpatterson1549/cross-tiles/client"
	"github.com/jacobpatterson1549/cross-tiles/game/message"
	"github.com/jacobpatterson1549/cross-tiles/game/tile"
)

func main() {
	var addr, name string
	flag.StringVar(&addr, "addr", "localhost:8484", "The address of the game server.")
	flag.StringVar(&name, "name", "", "The name to join the game with.")
	flag.Parse()
	log := log.New(os.Stderr, "", 0)
	if len(name) == 0 {
		log.Fatal("-name required")
	}
	s, err := client.NewSession(client.Config{
		Log: log,
		OnUpdate: func(m message.Message, text string) {
			if len(text) != 0 {
				fmt.Println(text)
			}
		},
	})
	if err != nil {
		log.Fatalf("creating session: %v", err)
	}
	if err := s.Start(addr, name); err != nil {
		log.Fatalf("joining game: %v", err)
	}
	go readCommands(s, os.Stdin, log)
	<-s.Done()
}

// readCommands sends a message for each line until the reader is drained or
// the player quits.  Lines that are not commands are sent as chat.
func readCommands(s *client.Session, r io.Reader, log *log.Logger) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if len(line) == 0 {
			continue
		}
		if line == "/quit" {
			s.Stop()
			return
		}
		m, err := parseCommand(line)
		if err != nil {
			log.Printf("bad command: %v", err)
			continue
		}
		s.Send(m)
	}
	s.Stop()
}

// parseCommand converts a line into the message it requests.
// Commands: /ready, /skip, /swap id[,id...], /place pos:id[:letter],...
// Any other line is chat.
func parseCommand(line string) (message.Message, error) {
	cmd, args, _ := strings.Cut(line, " ")
	switch cmd {
	case "/ready":
		return message.Ready{}, nil
	case "/skip":
		return message.PlaceTiles{}, nil
	case "/swap":
		return parseSwap(args)
	case "/place":
		return parsePlace(args)
	}
	if strings.HasPrefix(line, "/") {
		return nil, fmt.Errorf("unknown command %q", cmd)
	}
	return message.Chat{Text: line}, nil
}

func parseSwap(args string) (message.Message, error) {
	var tileIDs []tile.ID
	for _, part := range strings.Split(args, ",") {
		id, err := parseU8(part)
		if err != nil {
			return nil, fmt.Errorf("tile id: %w", err)
		}
		tileIDs = append(tileIDs, tile.ID(id))
	}
	return message.TileExchange{TileIDs: tileIDs}, nil
}

func parsePlace(args string) (message.Message, error) {
	var placements []message.Placement
	for _, part := range strings.Split(args, ",") {
		fields := strings.Split(part, ":")
		if len(fields) != 2 && len(fields) != 3 {
			return nil, fmt.Errorf("wanted pos:id or pos:id:letter, got %q", part)
		}
		pos, err := parseU8(fields[0])
		if err != nil {
			return nil, fmt.Errorf("position: %w", err)
		}
		id, err := parseU8(fields[1])
		if err != nil {
			return nil, fmt.Errorf("tile id: %w", err)
		}
		p := message.Placement{
			Position: pos,
			TileID:   tile.ID(id),
		}
		if len(fields) == 3 {
			runes := []rune(strings.ToUpper(fields[2]))
			if len(runes) != 1 {
				return nil, fmt.Errorf("wanted single letter for blank, got %q", fields[2])
			}
			letter, err := tile.NewLetter(runes[0])
			if err != nil {
				return nil, fmt.Errorf("blank letter: %w", err)
			}
			p.Letter = letter
		}
		placements = append(placements, p)
	}
	return message.PlaceTiles{Placements: placements}, nil
}

func parseU8(s string) (uint8, error) {
	n, err := strconv.ParseUint(strings.TrimSpace(s), 10, 8)
	if err != nil {
		return 0, err
	}
	return uint8(n), nil
}
