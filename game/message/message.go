// Package message contains the messages passed between the client and server
// and their binary wire encoding.  Every message is one tag byte followed by
// a type-specific payload; length prefixes inside the payload make the stream
// self-delimiting.
package message

import (
	"github.com/jacobpatterson1549/cross-tiles/game"
	"github.com/jacobpatterson1549/cross-tiles/game/tile"
)

// Type is the tag byte identifying the purpose of a message.
type Type uint8

const (
	// JoinType requests a seat, carrying the player name.
	JoinType Type = iota
	// ReadyType toggles the sender's lobby ready flag.
	ReadyType
	// LeaveType announces the sender is leaving.
	LeaveType
	// TileExchangeType swaps rack tiles for fresh ones from the bag.
	TileExchangeType
	// PlaceTilesType plays tiles onto the board.
	PlaceTilesType
	// ChatType sends a chat line to everyone.
	ChatType
	// JoinOkType confirms a seat, carrying the roster.
	JoinOkType
	// ActionRejectedType reports why the sender's action was refused.
	ActionRejectedType
	// PlayerJoinedType announces a new player to the others.
	PlayerJoinedType
	// PlayerLeftType announces a departure.
	PlayerLeftType
	// PlayerReadyType announces a ready-flag toggle.
	PlayerReadyType
	// StartTurnType announces whose turn it is, with the recipient's rack.
	StartTurnType
	// EndTurnType announces a finished turn with its committed tiles.
	EndTurnType
	// EndGameType announces final scores and the return to the lobby.
	EndGameType
	// ShutdownType announces the server is stopping.
	ShutdownType
	// PlayerChatType relays a chat line with its sender.
	PlayerChatType
	// NotificationType carries display text from the server.
	NotificationType
)

// Message is a decoded protocol message.  Implementations live only in this
// package so the tag table stays closed.
type Message interface {
	// Type is the wire tag of the message.
	Type() Type
	// appendPayload appends the message payload, without the tag, to b.
	appendPayload(b []byte) []byte
}

type (
	// Join requests a seat for the named player.
	Join struct {
		Name string
	}

	// Ready toggles the sender's ready flag while in the lobby.
	Ready struct{}

	// Leave announces that the sender is leaving the game.
	Leave struct{}

	// TileExchange asks to swap the identified rack tiles for new ones.
	TileExchange struct {
		TileIDs []tile.ID
	}

	// Placement is one tile of a PlaceTiles play.  Position is row*15+col.
	// Letter is the assignment for a blank tile and is otherwise unset.
	Placement struct {
		Position uint8
		TileID   tile.ID
		Letter   tile.Letter
	}

	// PlaceTiles plays the placements as a single word.  An empty list skips
	// the turn.
	PlaceTiles struct {
		Placements []Placement
	}

	// Chat sends text to all seated players.
	Chat struct {
		Text string
	}

	// PlayerInfo describes one seated player in a JoinOk roster.
	PlayerInfo struct {
		ID    game.PlayerID
		Ready bool
		Name  string
	}

	// JoinOk confirms admission, echoing the assigned id and the roster
	// including the newcomer.
	JoinOk struct {
		PlayerID game.PlayerID
		Players  []PlayerInfo
	}

	// ActionRejected tells the sender why an action was refused.  The reason
	// is displayable verbatim.
	ActionRejected struct {
		Reason string
	}

	// PlayerJoined announces a newly seated player.
	PlayerJoined struct {
		ID   game.PlayerID
		Name string
	}

	// PlayerLeft announces that a player left.
	PlayerLeft struct {
		ID game.PlayerID
	}

	// PlayerReady announces a ready-flag toggle.
	PlayerReady struct {
		ID game.PlayerID
	}

	// TileCount is the rack size of one player, sent with StartTurn.
	TileCount struct {
		ID    game.PlayerID
		Count uint8
	}

	// StartTurn announces the turn holder.  Rack is the recipient's own rack;
	// TileCounts covers every seated player.
	StartTurn struct {
		TurnID     game.PlayerID
		TilesLeft  uint8
		Rack       []tile.Tile
		TileCounts []TileCount
	}

	// PlacedTile is one committed tile of an EndTurn.
	PlacedTile struct {
		Position uint8
		Points   tile.Points
		Letter   tile.Letter
	}

	// EndTurn announces that the identified player's turn ended with the
	// given total score and committed tiles.
	EndTurn struct {
		ID     game.PlayerID
		Score  int16
		Placed []PlacedTile
	}

	// PlayerScore is one player's final score in an EndGame.
	PlayerScore struct {
		ID    game.PlayerID
		Score int16
	}

	// EndGame announces final scores; the server is back in the lobby.
	EndGame struct {
		Players []PlayerScore
	}

	// Shutdown announces that the server is stopping.
	Shutdown struct{}

	// PlayerChat relays a chat line to everyone, including the sender.
	PlayerChat struct {
		ID   game.PlayerID
		Text string
	}

	// Notification carries server text for display.
	Notification struct {
		Text string
	}
)

// Type implementations pin each message to its wire tag.

// Type returns JoinType.
func (Join) Type() Type { return JoinType }

// Type returns ReadyType.
func (Ready) Type() Type { return ReadyType }

// Type returns LeaveType.
func (Leave) Type() Type { return LeaveType }

// Type returns TileExchangeType.
func (TileExchange) Type() Type { return TileExchangeType }

// Type returns PlaceTilesType.
func (PlaceTiles) Type() Type { return PlaceTilesType }

// Type returns ChatType.
func (Chat) Type() Type { return ChatType }

// Type returns JoinOkType.
func (JoinOk) Type() Type { return JoinOkType }

// Type returns ActionRejectedType.
func (ActionRejected) Type() Type { return ActionRejectedType }

// Type returns PlayerJoinedType.
func (PlayerJoined) Type() Type { return PlayerJoinedType }

// Type returns PlayerLeftType.
func (PlayerLeft) Type() Type { return PlayerLeftType }

// Type returns PlayerReadyType.
func (PlayerReady) Type() Type { return PlayerReadyType }

// Type returns StartTurnType.
func (StartTurn) Type() Type { return StartTurnType }

// Type returns EndTurnType.
func (EndTurn) Type() Type { return EndTurnType }

// Type returns EndGameType.
func (EndGame) Type() Type { return EndGameType }

// Type returns ShutdownType.
func (Shutdown) Type() Type { return ShutdownType }

// Type returns PlayerChatType.
func (PlayerChat) Type() Type { return PlayerChatType }

// Type returns NotificationType.
func (Notification) Type() Type { return NotificationType }
