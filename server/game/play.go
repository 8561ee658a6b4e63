package game

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/jacobpatterson1549/cross-tiles/game"
	"github.com/jacobpatterson1549/cross-tiles/game/board"
	"github.com/jacobpatterson1549/cross-tiles/game/message"
	"github.com/jacobpatterson1549/cross-tiles/game/tile"
)

type (
	// boardView reads and writes squares, optionally swapping coordinates so
	// a vertical play is scored with the horizontal algorithm.
	boardView struct {
		b          *board.Board
		transposed bool
	}

	// placedTile is a placement materialized against the sender's rack.
	// Row and col are view coordinates; position keeps the wire value.
	placedTile struct {
		tile     tile.Tile
		row, col int
		position uint8
	}

	// formedWord is one word made by a play.  Letter premiums are folded into
	// points; word premiums accumulate in multiplier.  Connected words
	// include a tile committed on a previous turn.
	formedWord struct {
		text       string
		points     int
		multiplier int
		connected  bool
	}
)

func (v boardView) at(row, col int) *board.Square {
	if v.transposed {
		row, col = col, row
	}
	return v.b.At(row, col)
}

func (w formedWord) score() int {
	return w.points * w.multiplier
}

// handlePlaceTiles validates and scores a play.  An empty play skips the
// turn.  Validation is transactional: any rejection leaves the game unchanged
// and only the sender is told.
func (g *Game) handlePlaceTiles(ctx context.Context, c *Client, m message.PlaceTiles) {
	if !g.holdsTurn(c) {
		g.reject(c, "Not player's turn!")
		return
	}
	if len(m.Placements) == 0 {
		g.notifyOthers(c, c.name+" skipped")
		c.out.Put(message.Notification{Text: "You skipped"})
		g.endScorelessTurn(ctx)
		return
	}
	placed, v, words, reason := g.checkPlay(c, m.Placements)
	if len(reason) != 0 {
		g.reject(c, reason)
		return
	}
	for _, w := range words {
		points := w.score()
		c.score += points
		g.notifyAll(fmt.Sprintf("%v - %v points", w.text, points))
	}
	if len(placed) == game.RackSize {
		c.score += 50
		g.notifyAll("Bingo! - 50 points")
	}
	for _, pt := range placed {
		t := pt.tile
		v.at(pt.row, pt.col).Tile = &t
	}
	g.scorelessTurns = 0
	committed := make([]message.PlacedTile, 0, len(placed))
	for _, pt := range placed {
		committed = append(committed, message.PlacedTile{
			Position: pt.position,
			Points:   pt.tile.Points,
			Letter:   pt.tile.Letter,
		})
	}
	g.sendToAll(message.EndTurn{ID: c.id, Score: int16(c.score), Placed: committed})
	ids := make([]tile.ID, 0, len(placed))
	for _, pt := range placed {
		ids = append(ids, pt.tile.ID)
	}
	c.removeTiles(ids)
	c.rack = append(c.rack, g.bag.Draw(len(placed))...)
	if g.bag.Len() == 0 && len(c.rack) == 0 {
		g.notifyOthers(c, c.name+" has played out!")
		c.out.Put(message.Notification{Text: "You have played out!"})
		awarded := g.deductRacks()
		c.score += awarded
		c.out.Put(message.Notification{Text: fmt.Sprintf("Awarded %v points", awarded)})
		g.finishGame(ctx)
		return
	}
	g.advanceTurn()
	g.sendStartTurns()
}

// checkPlay validates the placements against the sender's rack and the board
// and forms the words the play makes.  No state is mutated; a non-empty
// reason means the play is rejected.
func (g *Game) checkPlay(c *Client, placements []message.Placement) ([]placedTile, boardView, []formedWord, string) {
	var v boardView
	placed, reason := c.materializePlacements(placements)
	if len(reason) != 0 {
		return nil, v, nil, reason
	}
	v = boardView{b: g.board}
	sameRow, sameCol := true, true
	for _, pt := range placed[1:] {
		sameRow = sameRow && pt.row == placed[0].row
		sameCol = sameCol && pt.col == placed[0].col
	}
	switch {
	case sameRow:
	case sameCol:
		v.transposed = true
		for i := range placed {
			placed[i].row, placed[i].col = placed[i].col, placed[i].row
		}
	default:
		return nil, v, nil, "Tiles must form a horizontal or vertical line!"
	}
	sort.Slice(placed, func(i, j int) bool {
		return placed[i].col < placed[j].col
	})
	byCol := make(map[int]placedTile, len(placed))
	for _, pt := range placed {
		switch {
		case pt.row < 0, pt.row >= board.Size, pt.col < 0, pt.col >= board.Size:
			return nil, v, nil, "Tiles are overlapping or out of bounds!"
		}
		if _, ok := byCol[pt.col]; ok || v.at(pt.row, pt.col).Tile != nil {
			return nil, v, nil, "Tiles are overlapping or out of bounds!"
		}
		byCol[pt.col] = pt
	}
	row := placed[0].row
	minCol, maxCol := placed[0].col, placed[len(placed)-1].col
	for col := minCol + 1; col < maxCol; col++ {
		if _, ok := byCol[col]; !ok && v.at(row, col).Tile == nil {
			return nil, v, nil, "Tiles must form a single line!"
		}
	}
	if !g.board.CenterPopulated() {
		if _, ok := byCol[board.Size/2]; row != board.Size/2 || !ok {
			return nil, v, nil, "The center square must be populated!"
		}
		if len(placed) == 1 {
			return nil, v, nil, "The first word must be at least 2 characters long!"
		}
	}
	words := formWords(v, placed, byCol)
	if g.board.CenterPopulated() && !anyConnected(words) {
		return nil, v, nil, "Must connect with pre-existing tiles!"
	}
	if reason := g.invalidWordsReason(words); len(reason) != 0 {
		return nil, v, nil, reason
	}
	return placed, v, words, ""
}

// materializePlacements resolves each placement to a rack tile, assigning
// letters to placed blanks.  Each rack tile may be used at most once.
func (c *Client) materializePlacements(placements []message.Placement) ([]placedTile, string) {
	placed := make([]placedTile, 0, len(placements))
	used := make(map[int]struct{}, len(placements))
	for _, p := range placements {
		i := -1
		for j, t := range c.rack {
			if _, ok := used[j]; !ok && t.ID == p.TileID {
				i = j
				break
			}
		}
		if i < 0 {
			return nil, "Placed tiles do not belong to player!"
		}
		used[i] = struct{}{}
		t := c.rack[i]
		if t.Blank() && !p.Letter.Zero() {
			t.Letter = p.Letter
		}
		if t.Letter.Zero() {
			return nil, "Blank tiles must be assigned a letter!"
		}
		placed = append(placed, placedTile{
			tile:     t,
			row:      int(p.Position) / board.Size,
			col:      int(p.Position) % board.Size,
			position: p.Position,
		})
	}
	return placed, ""
}

// formWords builds the main word along the play's line and a cross word for
// each placed tile.  Words shorter than two letters are not words.
func formWords(v boardView, placed []placedTile, byCol map[int]placedTile) []formedWord {
	var words []formedWord
	row := placed[0].row
	start := placed[0].col
	for start > 0 && v.at(row, start-1).Tile != nil {
		start--
	}
	main := formedWord{multiplier: 1}
	var sb strings.Builder
	length := 0
	for col := start; col < board.Size; col++ {
		if sq := v.at(row, col); sq.Tile != nil {
			sb.WriteString(sq.Tile.Letter.String())
			main.points += int(sq.Tile.Points)
			main.connected = true
			length++
			continue
		}
		pt, ok := byCol[col]
		if !ok {
			break
		}
		main.add(&sb, pt, v)
		length++
	}
	if length >= 2 {
		main.text = sb.String()
		words = append(words, main)
	}
	for _, pt := range placed {
		top := pt.row
		for top > 0 && v.at(top-1, pt.col).Tile != nil {
			top--
		}
		cross := formedWord{multiplier: 1}
		var cb strings.Builder
		length = 0
		for r := top; r < board.Size; r++ {
			if r == pt.row {
				cross.add(&cb, pt, v)
				length++
				continue
			}
			sq := v.at(r, pt.col)
			if sq.Tile == nil {
				break
			}
			cb.WriteString(sq.Tile.Letter.String())
			cross.points += int(sq.Tile.Points)
			cross.connected = true
			length++
		}
		if length >= 2 {
			cross.text = cb.String()
			words = append(words, cross)
		}
	}
	return words
}

// add folds a newly placed tile into the word, applying its square's premium.
// Letter premiums scale the tile; word premiums scale the whole word.
func (w *formedWord) add(sb *strings.Builder, pt placedTile, v boardView) {
	sb.WriteString(pt.tile.Letter.String())
	points := int(pt.tile.Points)
	switch v.at(pt.row, pt.col).Type {
	case board.DoubleLetter:
		points *= 2
	case board.TripleLetter:
		points *= 3
	case board.DoubleWord:
		w.multiplier *= 2
	case board.TripleWord:
		w.multiplier *= 3
	}
	w.points += points
}

func anyConnected(words []formedWord) bool {
	for _, w := range words {
		if w.connected {
			return true
		}
	}
	return false
}

// invalidWordsReason checks the distinct formed words against the dictionary,
// keeping first-seen order in the rejection.
func (g *Game) invalidWordsReason(words []formedWord) string {
	var invalid []string
	seen := make(map[string]struct{}, len(words))
	for _, w := range words {
		if _, ok := seen[w.text]; ok {
			continue
		}
		seen[w.text] = struct{}{}
		if !g.WordValidator.Validate(w.text) {
			invalid = append(invalid, w.text)
		}
	}
	switch len(invalid) {
	case 0:
		return ""
	case 1:
		return "Invalid word: " + invalid[0]
	default:
		return "Invalid words: " + strings.Join(invalid, ", ")
	}
}
