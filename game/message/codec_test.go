package message

import (
	"bytes"
	"io"
	"reflect"
	"testing"

	"github.com/jacobpatterson1549/cross-tiles/game/tile"
)

// codecTests pair messages with their exact wire bytes.  Each entry is used
// in both directions.
var codecTests = []struct {
	name string
	side Side // side that decodes the message
	m    Message
	b    []byte
}{
	{
		name: "join",
		side: ServerSide,
		m:    Join{Name: "selene"},
		b:    []byte{0x00, 6, 's', 'e', 'l', 'e', 'n', 'e'},
	},
	{
		name: "ready",
		side: ServerSide,
		m:    Ready{},
		b:    []byte{0x01},
	},
	{
		name: "leave",
		side: ServerSide,
		m:    Leave{},
		b:    []byte{0x02},
	},
	{
		name: "tile exchange",
		side: ServerSide,
		m:    TileExchange{TileIDs: []tile.ID{3, 99, 0}},
		b:    []byte{0x03, 3, 3, 99, 0},
	},
	{
		name: "place tiles with assigned blank",
		side: ServerSide,
		m: PlaceTiles{Placements: []Placement{
			{Position: 112, TileID: 17},
			{Position: 113, TileID: 0, Letter: 'Q'},
		}},
		b: []byte{0x04, 2, 112, 17, 0, 113, 0, 1, 'Q'},
	},
	{
		name: "place tiles skip",
		side: ServerSide,
		m:    PlaceTiles{},
		b:    []byte{0x04, 0},
	},
	{
		name: "chat",
		side: ServerSide,
		m:    Chat{Text: "gl hf"},
		b:    []byte{0x05, 0, 5, 'g', 'l', ' ', 'h', 'f'},
	},
	{
		name: "join ok",
		side: ClientSide,
		m: JoinOk{
			PlayerID: 1,
			Players: []PlayerInfo{
				{ID: 0, Ready: true, Name: "ab"},
				{ID: 1, Ready: false, Name: "c"},
			},
		},
		b: []byte{0x06, 1, 2, 0, 1, 2, 'a', 'b', 1, 0, 1, 'c'},
	},
	{
		name: "action rejected",
		side: ClientSide,
		m:    ActionRejected{Reason: "Not player's turn!"},
		b: append([]byte{0x07, 0, 18},
			[]byte("Not player's turn!")...),
	},
	{
		name: "player joined",
		side: ClientSide,
		m:    PlayerJoined{ID: 2, Name: "d"},
		b:    []byte{0x08, 2, 1, 'd'},
	},
	{
		name: "player left",
		side: ClientSide,
		m:    PlayerLeft{ID: 3},
		b:    []byte{0x09, 3},
	},
	{
		name: "player ready",
		side: ClientSide,
		m:    PlayerReady{ID: 0},
		b:    []byte{0x0a, 0},
	},
	{
		name: "start turn",
		side: ClientSide,
		m: StartTurn{
			TurnID:    1,
			TilesLeft: 86,
			Rack: []tile.Tile{
				{ID: 14, Points: 1, Letter: 'E'},
				{ID: 0, Points: 0}, // undrawn blank has no letter
			},
			TileCounts: []TileCount{{ID: 0, Count: 7}, {ID: 1, Count: 7}},
		},
		b: []byte{0x0b, 1, 86, 2, 14, 1, 1, 'E', 0, 0, 0, 2, 0, 7, 1, 7},
	},
	{
		name: "end turn",
		side: ClientSide,
		m: EndTurn{
			ID:    0,
			Score: 10,
			Placed: []PlacedTile{
				{Position: 112, Points: 4, Letter: 'H'},
				{Position: 113, Points: 0, Letter: 'I'},
			},
		},
		b: []byte{0x0c, 0, 0, 10, 2, 112, 4, 1, 'H', 113, 0, 1, 'I'},
	},
	{
		name: "end turn negative score",
		side: ClientSide,
		m:    EndTurn{ID: 1, Score: -3},
		b:    []byte{0x0c, 1, 0xff, 0xfd, 0},
	},
	{
		name: "end game",
		side: ClientSide,
		m: EndGame{Players: []PlayerScore{
			{ID: 0, Score: 300},
			{ID: 1, Score: -12},
		}},
		b: []byte{0x0d, 2, 0, 0x01, 0x2c, 1, 0xff, 0xf4},
	},
	{
		name: "shutdown",
		side: ClientSide,
		m:    Shutdown{},
		b:    []byte{0x0e},
	},
	{
		name: "player chat",
		side: ClientSide,
		m:    PlayerChat{ID: 2, Text: "hi"},
		b:    []byte{0x0f, 2, 0, 2, 'h', 'i'},
	},
	{
		name: "notification",
		side: ClientSide,
		m:    Notification{Text: "Game started!"},
		b: append([]byte{0x10, 0, 13},
			[]byte("Game started!")...),
	},
}

func TestEncode(t *testing.T) {
	for _, test := range codecTests {
		if got := Encode(test.m); !bytes.Equal(got, test.b) {
			t.Errorf("%v: wanted %x, got %x", test.name, test.b, got)
		}
	}
}

func TestDecode(t *testing.T) {
	for _, test := range codecTests {
		d := NewDecoder(bytes.NewReader(test.b), test.side)
		got, err := d.Decode()
		switch {
		case err != nil:
			t.Errorf("%v: unwanted error: %v", test.name, err)
		case !reflect.DeepEqual(got, test.m):
			t.Errorf("%v: wanted %#v, got %#v", test.name, test.m, got)
		}
	}
}

func TestEncodeAfterDecodePreservesBytes(t *testing.T) {
	for _, test := range codecTests {
		d := NewDecoder(bytes.NewReader(test.b), test.side)
		m, err := d.Decode()
		if err != nil {
			t.Errorf("%v: unwanted error: %v", test.name, err)
			continue
		}
		if got := Encode(m); !bytes.Equal(got, test.b) {
			t.Errorf("%v: wanted %x, got %x", test.name, test.b, got)
		}
	}
}

func TestDecodeConsumesExactBytes(t *testing.T) {
	// Two messages back to back must decode independently.
	b := append(Encode(Join{Name: "a"}), Encode(Chat{Text: "b"})...)
	d := NewDecoder(bytes.NewReader(b), ServerSide)
	for i, want := range []Message{Join{Name: "a"}, Chat{Text: "b"}} {
		got, err := d.Decode()
		switch {
		case err != nil:
			t.Fatalf("message %v: unwanted error: %v", i, err)
		case !reflect.DeepEqual(got, want):
			t.Errorf("message %v: wanted %#v, got %#v", i, want, got)
		}
	}
	if _, err := d.Decode(); err != io.EOF {
		t.Errorf("wanted io.EOF after last message, got %v", err)
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		side Side
		b    []byte
	}{
		{"empty stream", ServerSide, nil},
		{"server tag on server side", ServerSide, []byte{0x06}},
		{"client tag on client side", ClientSide, []byte{0x00}},
		{"tag out of range", ClientSide, []byte{0x7f}},
		{"truncated join name", ServerSide, []byte{0x00, 5, 'a', 'b'}},
		{"truncated exchange list", ServerSide, []byte{0x03, 2, 9}},
		{"truncated chat length", ServerSide, []byte{0x05, 0}},
		{"truncated start turn rack", ClientSide, []byte{0x0b, 0, 86, 3, 1}},
		{"truncated end game score", ClientSide, []byte{0x0d, 1, 0, 0x01}},
		{"multibyte placement letter", ServerSide, []byte{0x04, 1, 7, 0, 2, 0xc3, 0xa9}},
		{"lowercase placement letter", ServerSide, []byte{0x04, 1, 7, 0, 1, 'q'}},
		{"empty end turn letter", ClientSide, []byte{0x0c, 0, 0, 1, 1, 7, 1, 0}},
	}
	for _, test := range tests {
		d := NewDecoder(bytes.NewReader(test.b), test.side)
		if _, err := d.Decode(); err == nil {
			t.Errorf("%v: wanted error", test.name)
		}
	}
}
