package tile

type (
	// Bag is the ordered sequence of tiles that have not been drawn.
	// Tiles are drawn from the front; returned tiles go to the back before a
	// reshuffle.  The shuffle function is injected so games are repeatable in
	// tests.
	Bag struct {
		tiles       []Tile
		shuffleFunc func(tiles []Tile)
	}

	letterCount struct {
		letter rune
		points Points
		count  int
	}
)

// BagSize is the number of tiles in a full bag.
const BagSize = 100

// distribution is the standard English letter set: two blanks followed by the
// letters in descending count order.  Tile ids are assigned in this order.
var distribution = []letterCount{
	{0, 0, 2},
	{'E', 1, 12},
	{'A', 1, 9},
	{'I', 1, 9},
	{'O', 1, 8},
	{'N', 1, 6},
	{'R', 1, 6},
	{'T', 1, 6},
	{'L', 1, 4},
	{'S', 1, 4},
	{'U', 1, 4},
	{'D', 2, 4},
	{'G', 2, 3},
	{'B', 3, 2},
	{'C', 3, 2},
	{'M', 3, 2},
	{'P', 3, 2},
	{'F', 4, 2},
	{'H', 4, 2},
	{'V', 4, 2},
	{'W', 4, 2},
	{'Y', 4, 2},
	{'K', 5, 1},
	{'J', 8, 1},
	{'X', 8, 1},
	{'Q', 10, 1},
	{'Z', 10, 1},
}

// NewBag creates a full, shuffled bag.
func NewBag(shuffleFunc func(tiles []Tile)) *Bag {
	tiles := make([]Tile, 0, BagSize)
	for _, lc := range distribution {
		for i := 0; i < lc.count; i++ {
			tiles = append(tiles, Tile{
				ID:     ID(len(tiles)),
				Points: lc.points,
				Letter: Letter(lc.letter),
			})
		}
	}
	b := Bag{
		tiles:       tiles,
		shuffleFunc: shuffleFunc,
	}
	b.shuffleFunc(b.tiles)
	return &b
}

// Len returns the number of undrawn tiles.
func (b *Bag) Len() int {
	return len(b.tiles)
}

// Draw removes and returns up to n tiles from the front of the bag.
func (b *Bag) Draw(n int) []Tile {
	if n > len(b.tiles) {
		n = len(b.tiles)
	}
	drawn := make([]Tile, n)
	copy(drawn, b.tiles[:n])
	b.tiles = b.tiles[n:]
	return drawn
}

// Return appends the tiles to the back of the bag and reshuffles it.
func (b *Bag) Return(tiles []Tile) {
	b.tiles = append(b.tiles, tiles...)
	b.shuffleFunc(b.tiles)
}
