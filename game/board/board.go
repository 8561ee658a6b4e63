// Package board contains the 15x15 grid of squares that tiles are placed on.
package board

import (
	"strings"

	"github.com/jacobpatterson1549/cross-tiles/game/tile"
)

type (
	// SquareType is the premium classification of a square.
	SquareType int

	// Square is a board cell.  Tile is nil until a placement is committed;
	// committed tiles are never cleared within a game.
	Square struct {
		Type SquareType
		Tile *tile.Tile
	}

	// Board is the 15x15 play area.
	Board struct {
		squares [Size][Size]Square
	}
)

// Size is the board width and height.
const Size = 15

const (
	// Normal squares have no premium.
	Normal SquareType = iota
	// DoubleLetter doubles the points of a newly placed tile.
	DoubleLetter
	// TripleLetter triples the points of a newly placed tile.
	TripleLetter
	// DoubleWord doubles the value of words containing a newly placed tile.
	DoubleWord
	// TripleWord triples the value of words containing a newly placed tile.
	TripleWord
)

// quadrant is the top-left 8x8 of the premium layout.  The full board mirrors
// it across the center column and center row, so the layout is doubly
// symmetric and the center square (7,7) is DoubleWord.
var quadrant = [8]string{
	"TWS  N   N  DLS  N   N   N  TWS",
	" N  DWS  N   N   N  TLS  N   N",
	" N   N  DWS  N   N   N  DLS  N",
	"DLS  N   N  DWS  N   N   N  DLS",
	" N   N   N   N  DWS  N   N   N",
	" N  TLS  N   N   N  TLS  N   N",
	" N   N  DLS  N   N   N  DLS  N",
	"TWS  N   N  DLS  N   N   N  DWS",
}

var squareTypeNames = map[string]SquareType{
	"N":   Normal,
	"DLS": DoubleLetter,
	"TLS": TripleLetter,
	"DWS": DoubleWord,
	"TWS": TripleWord,
}

// New creates an empty board with the premium layout.
func New() *Board {
	var b Board
	for r, row := range quadrant {
		for c, name := range strings.Fields(row) {
			t := squareTypeNames[name]
			b.squares[r][c].Type = t
			b.squares[r][Size-1-c].Type = t
			b.squares[Size-1-r][c].Type = t
			b.squares[Size-1-r][Size-1-c].Type = t
		}
	}
	return &b
}

// At returns the square at the row and column.
func (b *Board) At(row, col int) *Square {
	return &b.squares[row][col]
}

// CenterPopulated determines if a tile has been committed to the center square.
func (b *Board) CenterPopulated() bool {
	return b.squares[Size/2][Size/2].Tile != nil
}

// Populated counts the squares holding committed tiles.
func (b *Board) Populated() int {
	n := 0
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			if b.squares[r][c].Tile != nil {
				n++
			}
		}
	}
	return n
}
