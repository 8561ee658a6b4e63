// Package game controls the logic to run the game.
package game

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/jacobpatterson1549/cross-tiles/game"
	"github.com/jacobpatterson1549/cross-tiles/game/board"
	"github.com/jacobpatterson1549/cross-tiles/game/message"
	"github.com/jacobpatterson1549/cross-tiles/game/tile"
	"github.com/jacobpatterson1549/cross-tiles/game/word"
)

type (
	// Game seats up to four clients and runs a word-forming game between them.
	// A single consumer goroutine processes the inbound channel; every handler
	// runs under the mutex, so state transitions are atomic per message.
	Game struct {
		Config
		mu             sync.Mutex
		in             chan request
		done           chan struct{}
		clients        []*Client
		bag            *tile.Bag
		board          *board.Board
		started        bool
		turnIdx        int
		scorelessTurns int
	}

	// Config contains commonly shared game properties.
	Config struct {
		// Debug is a flag that causes the game to log the types of messages received.
		Debug bool
		// Log is used to log errors and other information.
		Log *log.Logger
		// WordValidator is used to validate words formed by plays.
		WordValidator word.Validator
		// PlayerDao increments players' point totals when a game finishes.
		PlayerDao PlayerDao
		// ShuffleTilesFunc is used to shuffle the bag when it is created and
		// when tiles are returned to it.
		ShuffleTilesFunc func(tiles []tile.Tile)
		// StartingPlayerFunc picks the seat index that plays first.
		StartingPlayerFunc func(numPlayers int) int
	}

	// PlayerDao records points for finished games.
	PlayerDao interface {
		UpdatePointsIncrement(ctx context.Context, playerName string, points int) error
	}

	// request is one unit of work for the engine consumer.  A nil message
	// marks a terminated reader and runs the leave handler.  A nil client is
	// the stop sentinel.
	request struct {
		m message.Message
		c *Client
	}
)

// New creates the game and its inbound channel from the config.
func New(cfg Config) (*Game, error) {
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("creating game: validation: %w", err)
	}
	g := Game{
		Config: cfg,
		in:     make(chan request),
		done:   make(chan struct{}),
	}
	return &g, nil
}

func (cfg Config) validate() error {
	switch {
	case cfg.Log == nil:
		return fmt.Errorf("log required")
	case cfg.WordValidator == nil:
		return fmt.Errorf("word validator required")
	case cfg.PlayerDao == nil:
		return fmt.Errorf("player dao required")
	case cfg.ShuffleTilesFunc == nil:
		return fmt.Errorf("shuffle tiles func required")
	case cfg.StartingPlayerFunc == nil:
		return fmt.Errorf("starting player func required")
	}
	return nil
}

// Run consumes the inbound channel until Stop posts the stop sentinel.
// The returned channel is closed when the consumer exits, unblocking any
// reader loop still pushing requests.
func (g *Game) Run(ctx context.Context) <-chan struct{} {
	go func() {
		defer close(g.done)
		for req := range g.in {
			if req.c == nil {
				return
			}
			g.handle(ctx, req)
		}
	}()
	return g.done
}

// Stop tells every seated client the server is stopping and halts the
// consumer.  Each writer closes its connection after sending Shutdown.
func (g *Game) Stop() {
	g.mu.Lock()
	for _, c := range g.clients {
		c.out.Put(message.Shutdown{})
	}
	g.mu.Unlock()
	select {
	case g.in <- request{}:
	case <-g.done:
	}
}

// handle runs the handler for the request under the game mutex.
func (g *Game) handle(ctx context.Context, req request) {
	g.mu.Lock()
	defer g.mu.Unlock()
	c := req.c
	if req.m == nil {
		g.handleLeave(ctx, c)
		return
	}
	if g.Debug {
		g.Log.Printf("handling %T from player %v", req.m, c.id)
	}
	switch m := req.m.(type) {
	case message.Ready:
		g.handleReady(c)
	case message.TileExchange:
		g.handleTileExchange(ctx, c, m)
	case message.PlaceTiles:
		g.handlePlaceTiles(ctx, c, m)
	case message.Chat:
		g.sendToAll(message.PlayerChat{ID: c.id, Text: m.Text})
	default:
		if g.Debug {
			g.Log.Printf("ignoring %T from player %v", req.m, c.id)
		}
	}
}

// handleReady toggles the client's ready flag while in the lobby.  The game
// starts when at least two clients are seated and all of them are ready.
func (g *Game) handleReady(c *Client) {
	if g.started {
		return
	}
	c.ready = !c.ready
	if len(g.clients) >= game.MinPlayers && g.allReady() {
		g.startGame()
		return
	}
	g.sendToAll(message.PlayerReady{ID: c.id})
}

func (g *Game) allReady() bool {
	for _, c := range g.clients {
		if !c.ready {
			return false
		}
	}
	return true
}

// handleLeave unseats the client.  An in-progress game ends if fewer than two
// players remain; if the leaver held the turn, the rack returns to the bag
// and the seat now at the leaver's index plays next.
func (g *Game) handleLeave(ctx context.Context, c *Client) {
	i := g.clientIndex(c)
	if i < 0 {
		return
	}
	heldTurn := g.started && g.turnIdx == i
	g.clients = append(g.clients[:i], g.clients[i+1:]...)
	c.out.Close()
	if g.Debug {
		g.Log.Printf("player %v (%v) left", c.id, c.name)
	}
	g.sendToAll(message.PlayerLeft{ID: c.id})
	switch {
	case !g.started:
		if len(g.clients) >= game.MinPlayers && g.allReady() {
			g.startGame()
		}
	case len(g.clients) < game.MinPlayers:
		g.deductRacks()
		g.finishGame(ctx)
	case heldTurn:
		g.bag.Return(c.rack)
		g.turnIdx = i % len(g.clients)
		g.sendStartTurns()
	default:
		if i < g.turnIdx {
			g.turnIdx--
		}
	}
}

// handleTileExchange swaps the selected rack tiles for fresh ones and counts
// the turn as scoreless.
func (g *Game) handleTileExchange(ctx context.Context, c *Client, m message.TileExchange) {
	switch {
	case !g.holdsTurn(c):
		g.reject(c, "Not player's turn!")
	case g.bag.Len() < game.RackSize:
		g.reject(c, "There are less than 7 tiles left!")
	case len(m.TileIDs) == 0:
		g.reject(c, "Tile exchange requires at least one selected tile!")
	case !c.holdsTiles(m.TileIDs):
		g.reject(c, "Selected tiles do not belong to player!")
	default:
		selected := c.removeTiles(m.TileIDs)
		g.bag.Return(selected)
		c.rack = append(c.rack, g.bag.Draw(len(selected))...)
		g.notifyOthers(c, c.name+" exchanged tiles")
		c.out.Put(message.Notification{Text: "You exchanged tiles"})
		g.endScorelessTurn(ctx)
	}
}

// holdsTurn reports whether the client may act this turn.
// Nobody holds a turn in the lobby.
func (g *Game) holdsTurn(c *Client) bool {
	return g.started && g.clients[g.turnIdx] == c
}

func (c *Client) holdsTiles(ids []tile.ID) bool {
	for _, id := range ids {
		if c.rackIndex(id) < 0 {
			return false
		}
	}
	return true
}

// removeTiles takes the identified tiles out of the client's rack.
// The ids must all be present.
func (c *Client) removeTiles(ids []tile.ID) []tile.Tile {
	removed := make([]tile.Tile, 0, len(ids))
	for _, id := range ids {
		i := c.rackIndex(id)
		removed = append(removed, c.rack[i])
		c.rack = append(c.rack[:i], c.rack[i+1:]...)
	}
	return removed
}

// startGame deals seven tiles to each seated player and announces the first
// turn.  StartTurn reports the bag size after all racks are dealt.
func (g *Game) startGame() {
	g.started = true
	g.scorelessTurns = 0
	g.board = board.New()
	g.bag = tile.NewBag(g.ShuffleTilesFunc)
	for _, c := range g.clients {
		c.rack = g.bag.Draw(game.RackSize)
		c.score = 0
	}
	g.turnIdx = g.StartingPlayerFunc(len(g.clients))
	g.notifyAll("Game started!")
	g.sendStartTurns()
}

// endScorelessTurn finishes a turn that scored nothing.  The sixth scoreless
// turn in a row ends the game; otherwise play passes to the next seat.
func (g *Game) endScorelessTurn(ctx context.Context) {
	if g.scorelessTurns == game.MaxScorelessTurns-1 {
		g.notifyAll("Game has reached 6 consecutive turns without scoring!")
		g.deductRacks()
		g.finishGame(ctx)
		return
	}
	g.scorelessTurns++
	cur := g.clients[g.turnIdx]
	g.sendToAll(message.EndTurn{ID: cur.id, Score: int16(cur.score)})
	g.advanceTurn()
	g.sendStartTurns()
}

func (g *Game) advanceTurn() {
	g.turnIdx = (g.turnIdx + 1) % len(g.clients)
}

// deductRacks subtracts each player's unplayed tile points from their score,
// announcing each nonzero deduction, and returns the total deducted.
func (g *Game) deductRacks() int {
	total := 0
	for _, c := range g.clients {
		points := c.rackPoints()
		if points == 0 {
			continue
		}
		c.score -= points
		total += points
		g.notifyAll(fmt.Sprintf("%v lost %v points for unplayed tiles", c.name, points))
	}
	return total
}

// finishGame sends the final scores, records them, and returns to the lobby.
func (g *Game) finishGame(ctx context.Context) {
	scores := make([]message.PlayerScore, 0, len(g.clients))
	for _, c := range g.clients {
		scores = append(scores, message.PlayerScore{ID: c.id, Score: int16(c.score)})
	}
	g.sendToAll(message.EndGame{Players: scores})
	for _, c := range g.clients {
		if err := g.PlayerDao.UpdatePointsIncrement(ctx, c.name, c.score); err != nil {
			g.Log.Printf("recording %v points for %v: %v", c.score, c.name, err)
		}
	}
	g.started = false
	g.board = nil
	g.bag = nil
	for _, c := range g.clients {
		c.rack = nil
		c.ready = false
	}
}

// sendStartTurns tells each seated client whose turn it is, with that
// client's own rack and everyone's tile counts.
func (g *Game) sendStartTurns() {
	turnID := g.clients[g.turnIdx].id
	tilesLeft := uint8(g.bag.Len())
	counts := make([]message.TileCount, 0, len(g.clients))
	for _, c := range g.clients {
		counts = append(counts, message.TileCount{ID: c.id, Count: uint8(len(c.rack))})
	}
	for _, c := range g.clients {
		rack := make([]tile.Tile, len(c.rack))
		copy(rack, c.rack)
		c.out.Put(message.StartTurn{
			TurnID:     turnID,
			TilesLeft:  tilesLeft,
			Rack:       rack,
			TileCounts: counts,
		})
	}
}

func (g *Game) reject(c *Client, reason string) {
	c.out.Put(message.ActionRejected{Reason: reason})
}

func (g *Game) notifyAll(text string) {
	g.sendToAll(message.Notification{Text: text})
}

func (g *Game) notifyOthers(sender *Client, text string) {
	for _, c := range g.clients {
		if c != sender {
			c.out.Put(message.Notification{Text: text})
		}
	}
}

func (g *Game) sendToAll(m message.Message) {
	for _, c := range g.clients {
		c.out.Put(m)
	}
}

func (g *Game) clientIndex(c *Client) int {
	for i, other := range g.clients {
		if other == c {
			return i
		}
	}
	return -1
}
