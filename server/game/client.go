package game

import (
	"net"

	"github.com/jacobpatterson1549/cross-tiles/game"
	"github.com/jacobpatterson1549/cross-tiles/game/message"
	"github.com/jacobpatterson1549/cross-tiles/game/queue"
	"github.com/jacobpatterson1549/cross-tiles/game/tile"
)

// Client is a seated player's connection.  The id, name, conn, decoder, and
// outbound queue are set at admission; the other fields are owned by the game
// mutex.
type Client struct {
	id    game.PlayerID
	name  string
	ready bool
	conn  net.Conn
	dec   *message.Decoder
	out   *queue.Queue
	rack  []tile.Tile
	score int
}

// Handle admits the connection to the game.  The first message must be a
// Join; anything else closes the connection without a reply.  Admitted
// connections get reader and writer loops; refused ones get an ActionRejected
// and are closed.
func (g *Game) Handle(conn net.Conn) {
	dec := message.NewDecoder(conn, message.ServerSide)
	m, err := dec.Decode()
	if err != nil {
		conn.Close()
		return
	}
	join, ok := m.(message.Join)
	if !ok {
		conn.Close()
		return
	}
	g.mu.Lock()
	switch {
	case len(g.clients) >= game.MaxPlayers:
		g.mu.Unlock()
		g.refuse(conn, "Server is full")
		return
	case g.started:
		g.mu.Unlock()
		g.refuse(conn, "Game in progress")
		return
	}
	c := &Client{
		id:   g.unusedPlayerID(),
		name: join.Name,
		conn: conn,
		dec:  dec,
		out:  queue.New(),
	}
	for _, other := range g.clients {
		other.out.Put(message.PlayerJoined{ID: c.id, Name: c.name})
	}
	g.clients = append(g.clients, c)
	c.out.Put(message.JoinOk{
		PlayerID: c.id,
		Players:  g.roster(),
	})
	if g.Debug {
		g.Log.Printf("player %v (%v) joined", c.id, c.name)
	}
	g.mu.Unlock()
	go c.listenIncoming(g)
	go c.listenOutgoing(g)
}

// refuse replies with the reason and closes the connection.
func (g *Game) refuse(conn net.Conn, reason string) {
	if _, err := conn.Write(message.Encode(message.ActionRejected{Reason: reason})); err != nil {
		g.Log.Printf("refusing connection: %v", err)
	}
	conn.Close()
}

// unusedPlayerID returns the lowest id not held by a seated client.
// Callers must hold the game mutex.
func (g *Game) unusedPlayerID() game.PlayerID {
	for id := game.PlayerID(0); ; id++ {
		taken := false
		for _, c := range g.clients {
			if c.id == id {
				taken = true
				break
			}
		}
		if !taken {
			return id
		}
	}
}

// roster snapshots the seated clients.
// Callers must hold the game mutex.
func (g *Game) roster() []message.PlayerInfo {
	players := make([]message.PlayerInfo, 0, len(g.clients))
	for _, c := range g.clients {
		players = append(players, message.PlayerInfo{
			ID:    c.id,
			Ready: c.ready,
			Name:  c.name,
		})
	}
	return players
}

// listenIncoming decodes messages from the connection onto the game's inbound
// channel.  A Leave message, a protocol error, or an I/O error ends the loop
// with a terminal marker so the game runs its leave handler.  The loop also
// ends when the game consumer has exited, so readers do not block pushing to
// a stopped game.
func (c *Client) listenIncoming(g *Game) {
	for {
		m, err := c.dec.Decode()
		if err != nil {
			c.push(g, request{c: c})
			return
		}
		if _, ok := m.(message.Leave); ok {
			c.push(g, request{c: c})
			return
		}
		if !c.push(g, request{m: m, c: c}) {
			return
		}
	}
}

// push sends the request to the game, reporting false if the game has stopped.
func (c *Client) push(g *Game, req request) bool {
	select {
	case g.in <- req:
		return true
	case <-g.done:
		return false
	}
}

// listenOutgoing writes queued messages to the connection.  The loop ends,
// closing the connection, when the queue is closed and drained, when a write
// fails, or after Shutdown is sent.
func (c *Client) listenOutgoing(g *Game) {
	defer c.conn.Close()
	for {
		m, ok := c.out.Get()
		if !ok {
			return
		}
		if _, err := c.conn.Write(message.Encode(m)); err != nil {
			if g.Debug {
				g.Log.Printf("writing to player %v: %v", c.id, err)
			}
			return
		}
		if m.Type() == message.ShutdownType {
			return
		}
	}
}

// rackPoints sums the base values of the client's unplayed tiles.
func (c *Client) rackPoints() int {
	points := 0
	for _, t := range c.rack {
		points += int(t.Points)
	}
	return points
}

// rackIndex returns the position of the tile id in the client's rack, or -1.
func (c *Client) rackIndex(id tile.ID) int {
	for i, t := range c.rack {
		if t.ID == id {
			return i
		}
	}
	return -1
}
