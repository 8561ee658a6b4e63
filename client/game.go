// Package client connects to a game server and mirrors its view of the game
// for a view to render.
package client

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jacobpatterson1549/cross-tiles/game"
	"github.com/jacobpatterson1549/cross-tiles/game/board"
	"github.com/jacobpatterson1549/cross-tiles/game/message"
	"github.com/jacobpatterson1549/cross-tiles/game/tile"
)

type (
	// Game is the local projection of the server's state.  The session owns
	// it; views only see it through the update callback.
	Game struct {
		Board     *board.Board
		TilesLeft uint8
		Players   map[game.PlayerID]*Player
		Lobby     bool
		Self      *Player
		TurnID    game.PlayerID
		SelfTurn  bool
	}

	// Player is the local view of a seated player.  Rack is only tracked for
	// the session's own player.
	Player struct {
		ID        game.PlayerID
		Name      string
		Ready     bool
		Score     int16
		TileCount uint8
		Rack      []tile.Tile
	}
)

func newGame() *Game {
	return &Game{
		Players: make(map[game.PlayerID]*Player),
		Lobby:   true,
	}
}

// apply folds the server message into the game, returning display text for
// the view.  Messages that change nothing visible return no text.
func (g *Game) apply(m message.Message) string {
	switch m := m.(type) {
	case message.JoinOk:
		return g.applyJoinOk(m)
	case message.ActionRejected:
		return m.Reason
	case message.PlayerJoined:
		g.Players[m.ID] = &Player{ID: m.ID, Name: m.Name}
		return m.Name + " has joined"
	case message.PlayerLeft:
		return g.applyPlayerLeft(m)
	case message.PlayerReady:
		if p, ok := g.Players[m.ID]; ok {
			p.Ready = !p.Ready
		}
		return ""
	case message.StartTurn:
		return g.applyStartTurn(m)
	case message.EndTurn:
		return g.applyEndTurn(m)
	case message.EndGame:
		return g.applyEndGame(m)
	case message.PlayerChat:
		return g.playerName(m.ID) + ": " + m.Text
	case message.Notification:
		return m.Text
	}
	return ""
}

func (g *Game) applyJoinOk(m message.JoinOk) string {
	for _, info := range m.Players {
		p := &Player{ID: info.ID, Name: info.Name, Ready: info.Ready}
		g.Players[info.ID] = p
		if info.ID == m.PlayerID {
			g.Self = p
		}
	}
	return ""
}

func (g *Game) applyPlayerLeft(m message.PlayerLeft) string {
	name := g.playerName(m.ID)
	delete(g.Players, m.ID)
	if len(g.Players) == 1 {
		g.Lobby = true
	}
	return name + " has left"
}

func (g *Game) applyStartTurn(m message.StartTurn) string {
	if g.Lobby {
		g.Lobby = false
		g.Board = board.New()
		for _, p := range g.Players {
			p.Score = 0
			p.TileCount = 0
			p.Rack = nil
		}
	}
	g.TurnID = m.TurnID
	g.SelfTurn = g.Self != nil && m.TurnID == g.Self.ID
	g.TilesLeft = m.TilesLeft
	if g.Self != nil {
		g.Self.Rack = m.Rack
	}
	for _, tc := range m.TileCounts {
		if p, ok := g.Players[tc.ID]; ok {
			p.TileCount = tc.Count
		}
	}
	if g.SelfTurn {
		return "Your turn!"
	}
	return g.playerName(m.TurnID) + "'s turn!"
}

func (g *Game) applyEndTurn(m message.EndTurn) string {
	p, ok := g.Players[m.ID]
	if !ok {
		return ""
	}
	scoreGained := m.Score - p.Score
	p.Score = m.Score
	for _, pt := range m.Placed {
		row, col := int(pt.Position)/board.Size, int(pt.Position)%board.Size
		g.Board.At(row, col).Tile = &tile.Tile{Points: pt.Points, Letter: pt.Letter}
	}
	subject := p.Name
	if g.SelfTurn {
		subject = "You"
	}
	if scoreGained != 0 {
		return fmt.Sprintf("%v earned %v points", subject, scoreGained)
	}
	return subject + " skipped"
}

func (g *Game) applyEndGame(m message.EndGame) string {
	g.Lobby = true
	for _, p := range g.Players {
		p.Ready = false
	}
	scores := make([]message.PlayerScore, len(m.Players))
	copy(scores, m.Players)
	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].Score > scores[j].Score
	})
	var sb strings.Builder
	sb.WriteString("Game over!")
	for _, ps := range scores {
		fmt.Fprintf(&sb, "\n%v -> %v points", g.playerName(ps.ID), ps.Score)
	}
	return sb.String()
}

func (g *Game) playerName(id game.PlayerID) string {
	if p, ok := g.Players[id]; ok {
		return p.Name
	}
	return fmt.Sprintf("player %v", id)
}
