package tile

import "errors"

// Letter is the character on a tile.  The zero Letter marks a blank tile that
// has not been assigned a character yet.
type Letter rune

// NewLetter creates a Letter from the rune, requiring it to be uppercase in the A-Z range.
func NewLetter(r rune) (Letter, error) {
	if r < 'A' || 'Z' < r {
		return 0, errors.New("letter must be uppercase and between A and Z: " + string(r))
	}
	return Letter(r), nil
}

// Zero determines if the letter is unassigned.
func (l Letter) Zero() bool {
	return l == 0
}

// String returns the letter as a string.  Unassigned letters are empty.
func (l Letter) String() string {
	if l.Zero() {
		return ""
	}
	return string(rune(l))
}
