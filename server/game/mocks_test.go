package game

import (
	"context"
	"io"
	"log"
	"sync"

	"github.com/jacobpatterson1549/cross-tiles/game"
	"github.com/jacobpatterson1549/cross-tiles/game/board"
	"github.com/jacobpatterson1549/cross-tiles/game/message"
	"github.com/jacobpatterson1549/cross-tiles/game/queue"
	"github.com/jacobpatterson1549/cross-tiles/game/tile"
	"github.com/jacobpatterson1549/cross-tiles/game/word"
)

type mockPlayerDao struct {
	mu         sync.Mutex
	increments map[string]int
	err        error
}

func (d *mockPlayerDao) UpdatePointsIncrement(ctx context.Context, playerName string, points int) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.increments == nil {
		d.increments = make(map[string]int)
	}
	d.increments[playerName] += points
	return d.err
}

func noShuffle(tiles []tile.Tile) {}

func firstSeatStarts(numPlayers int) int { return 0 }

func testConfig(dao PlayerDao, words ...string) Config {
	v := make(word.Validator, len(words))
	for _, w := range words {
		v[w] = struct{}{}
	}
	return Config{
		Log:                log.New(io.Discard, "", 0),
		WordValidator:      v,
		PlayerDao:          dao,
		ShuffleTilesFunc:   noShuffle,
		StartingPlayerFunc: firstSeatStarts,
	}
}

// newTestClient seats a client without a connection.  Tests that only run
// handlers never touch the socket.
func newTestClient(id uint8, name string, rack ...tile.Tile) *Client {
	return &Client{
		id:   game.PlayerID(id),
		name: name,
		out:  queue.New(),
		rack: rack,
	}
}

// newStartedGame creates an in-progress game with the clients' racks as
// given.  The bag is full and unshuffled; the first seat holds the turn.
func newStartedGame(cfg Config, clients ...*Client) *Game {
	return &Game{
		Config:  cfg,
		in:      make(chan request),
		done:    make(chan struct{}),
		clients: clients,
		bag:     tile.NewBag(noShuffle),
		board:   board.New(),
		started: true,
	}
}

// drain closes the client's queue and returns everything still buffered.
func drain(c *Client) []message.Message {
	c.out.Close()
	var messages []message.Message
	for {
		m, ok := c.out.Get()
		if !ok {
			return messages
		}
		messages = append(messages, m)
	}
}
