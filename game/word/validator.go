// Package word handles checking words formed in the game.
package word

import (
	"bufio"
	"errors"
	"io"
	"strings"
)

// Validator is the set of playable words, stored uppercase.
type Validator map[string]struct{}

// NewValidator consumes the reader, one word per line, to use for validating.
// Lines are trimmed of whitespace and uppercased; blank lines are ignored.
func NewValidator(r io.Reader) (Validator, error) {
	if r == nil {
		return nil, errors.New("reader required to initialize word validator from")
	}
	v := make(Validator)
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		w := strings.TrimSpace(scanner.Text())
		if len(w) == 0 {
			continue
		}
		v[strings.ToUpper(w)] = struct{}{}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return v, nil
}

// Validate determines whether or not the uppercase word is in the set.
func (v Validator) Validate(word string) bool {
	_, ok := v[word]
	return ok
}
