// Package tile contains the pieces players draw from the bag and place on the board.
package tile

type (
	// Tile is a piece in the game.  A blank tile has zero Points and no
	// Letter until it is placed on the board with an assignment.
	Tile struct {
		ID     ID
		Points Points
		Letter Letter
	}

	// ID is the identity of a tile, unique within a bag.
	ID uint8

	// Points is the base value of a tile.
	Points uint8
)

// Blank determines if the tile is one of the two wildcard tiles.
// The bag only assigns zero points to blanks.
func (t Tile) Blank() bool {
	return t.Points == 0
}
