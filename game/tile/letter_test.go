package tile

import "testing"

func TestNewLetter(t *testing.T) {
	tests := []struct {
		r      rune
		wantOk bool
	}{
		{'A', true},
		{'Q', true},
		{'Z', true},
		{'a', false},
		{'@', false},
		{'[', false},
		{'É', false},
		{0, false},
	}
	for _, test := range tests {
		l, err := NewLetter(test.r)
		switch {
		case err != nil != !test.wantOk:
			t.Errorf("%q: wanted ok=%v, got %v", test.r, test.wantOk, err)
		case test.wantOk && rune(l) != test.r:
			t.Errorf("%q: wanted letter preserved, got %v", test.r, l)
		}
	}
}

func TestLetterString(t *testing.T) {
	var blank Letter
	if got := blank.String(); got != "" {
		t.Errorf("wanted empty string for unassigned letter, got %q", got)
	}
	if got := Letter('W').String(); got != "W" {
		t.Errorf("wanted W, got %q", got)
	}
}

func TestTileBlank(t *testing.T) {
	if !(Tile{ID: 0, Points: 0}).Blank() {
		t.Error("wanted zero point tile to be blank")
	}
	if (Tile{ID: 5, Points: 1, Letter: 'E'}).Blank() {
		t.Error("wanted lettered tile to not be blank")
	}
}
