// Package game contains the types shared by the server engine and the client session.
package game

// PlayerID identifies a seated player.  Ids are assigned by the server as the
// lowest value not in use, so they stay small, but the wire allows 0-255.
type PlayerID uint8

const (
	// MaxPlayers is the number of clients that can be seated at once.
	MaxPlayers = 4
	// MinPlayers is the number of ready clients needed to start a game.
	MinPlayers = 2
	// RackSize is the most tiles a player can hold.
	RackSize = 7
	// MaxScorelessTurns is the number of consecutive turns without a score that ends a game.
	MaxScorelessTurns = 6
)
