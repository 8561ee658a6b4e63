package message

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/jacobpatterson1549/cross-tiles/game"
	"github.com/jacobpatterson1549/cross-tiles/game/tile"
)

// Side is the endpoint a Decoder reads for.  It restricts which tags are
// accepted: servers read client tags, clients read server tags.
type Side int

const (
	// ServerSide reads messages sent by clients.
	ServerSide Side = iota
	// ClientSide reads messages sent by the server.
	ClientSide
)

// Encode returns the wire bytes of the message: the tag byte followed by the
// payload.
func Encode(m Message) []byte {
	return m.appendPayload([]byte{byte(m.Type())})
}

// appendPayload implementations keep field order in sync with the decoder.

func (m Join) appendPayload(b []byte) []byte {
	return appendStr8(b, m.Name)
}

func (Ready) appendPayload(b []byte) []byte { return b }

func (Leave) appendPayload(b []byte) []byte { return b }

func (m TileExchange) appendPayload(b []byte) []byte {
	b = append(b, uint8(len(m.TileIDs)))
	for _, id := range m.TileIDs {
		b = append(b, uint8(id))
	}
	return b
}

func (m PlaceTiles) appendPayload(b []byte) []byte {
	b = append(b, uint8(len(m.Placements)))
	for _, p := range m.Placements {
		b = append(b, p.Position, uint8(p.TileID))
		b = appendOptLetter(b, p.Letter)
	}
	return b
}

func (m Chat) appendPayload(b []byte) []byte {
	return appendStr16(b, m.Text)
}

func (m JoinOk) appendPayload(b []byte) []byte {
	b = append(b, uint8(m.PlayerID), uint8(len(m.Players)))
	for _, p := range m.Players {
		b = append(b, uint8(p.ID), bool01(p.Ready))
		b = appendStr8(b, p.Name)
	}
	return b
}

func (m ActionRejected) appendPayload(b []byte) []byte {
	return appendStr16(b, m.Reason)
}

func (m PlayerJoined) appendPayload(b []byte) []byte {
	b = append(b, uint8(m.ID))
	return appendStr8(b, m.Name)
}

func (m PlayerLeft) appendPayload(b []byte) []byte {
	return append(b, uint8(m.ID))
}

func (m PlayerReady) appendPayload(b []byte) []byte {
	return append(b, uint8(m.ID))
}

func (m StartTurn) appendPayload(b []byte) []byte {
	b = append(b, uint8(m.TurnID), m.TilesLeft, uint8(len(m.Rack)))
	for _, t := range m.Rack {
		b = append(b, uint8(t.ID), uint8(t.Points))
		b = appendOptLetter(b, t.Letter)
	}
	b = append(b, uint8(len(m.TileCounts)))
	for _, tc := range m.TileCounts {
		b = append(b, uint8(tc.ID), tc.Count)
	}
	return b
}

func (m EndTurn) appendPayload(b []byte) []byte {
	b = append(b, uint8(m.ID))
	b = appendI16(b, m.Score)
	b = append(b, uint8(len(m.Placed)))
	for _, p := range m.Placed {
		b = append(b, p.Position, uint8(p.Points))
		b = appendStr8(b, p.Letter.String())
	}
	return b
}

func (m EndGame) appendPayload(b []byte) []byte {
	b = append(b, uint8(len(m.Players)))
	for _, p := range m.Players {
		b = append(b, uint8(p.ID))
		b = appendI16(b, p.Score)
	}
	return b
}

func (Shutdown) appendPayload(b []byte) []byte { return b }

func (m PlayerChat) appendPayload(b []byte) []byte {
	b = append(b, uint8(m.ID))
	return appendStr16(b, m.Text)
}

func (m Notification) appendPayload(b []byte) []byte {
	return appendStr16(b, m.Text)
}

func appendI16(b []byte, n int16) []byte {
	return binary.BigEndian.AppendUint16(b, uint16(n))
}

func appendStr8(b []byte, s string) []byte {
	b = append(b, uint8(len(s)))
	return append(b, s...)
}

func appendStr16(b []byte, s string) []byte {
	b = binary.BigEndian.AppendUint16(b, uint16(len(s)))
	return append(b, s...)
}

// appendOptLetter writes a zero length for an unassigned letter.
func appendOptLetter(b []byte, l tile.Letter) []byte {
	return appendStr8(b, l.String())
}

func bool01(v bool) uint8 {
	if v {
		return 1
	}
	return 0
}

// Decoder reads messages for one side of a connection.  It buffers the
// underlying reader, so all reads on the connection must go through it.
type Decoder struct {
	r    *bufio.Reader
	side Side
}

// NewDecoder creates a Decoder that accepts the tags sent to the side.
func NewDecoder(r io.Reader, side Side) *Decoder {
	return &Decoder{
		r:    bufio.NewReader(r),
		side: side,
	}
}

// Decode reads one message from the stream.  It returns io.EOF if the stream
// ends cleanly before a tag byte and io.ErrUnexpectedEOF if it ends inside a
// message.  A tag not sent to the decoder's side is an error.
func (d *Decoder) Decode() (Message, error) {
	tag, err := d.r.ReadByte()
	if err != nil {
		return nil, err
	}
	t := Type(tag)
	var m Message
	switch d.side {
	case ServerSide:
		switch t {
		case JoinType:
			m, err = d.join()
		case ReadyType:
			m = Ready{}
		case LeaveType:
			m = Leave{}
		case TileExchangeType:
			m, err = d.tileExchange()
		case PlaceTilesType:
			m, err = d.placeTiles()
		case ChatType:
			m, err = d.chat()
		default:
			err = fmt.Errorf("unknown client message tag 0x%02x", tag)
		}
	case ClientSide:
		switch t {
		case JoinOkType:
			m, err = d.joinOk()
		case ActionRejectedType:
			m, err = d.actionRejected()
		case PlayerJoinedType:
			m, err = d.playerJoined()
		case PlayerLeftType:
			m, err = d.playerLeft()
		case PlayerReadyType:
			m, err = d.playerReady()
		case StartTurnType:
			m, err = d.startTurn()
		case EndTurnType:
			m, err = d.endTurn()
		case EndGameType:
			m, err = d.endGame()
		case ShutdownType:
			m = Shutdown{}
		case PlayerChatType:
			m, err = d.playerChat()
		case NotificationType:
			m, err = d.notification()
		default:
			err = fmt.Errorf("unknown server message tag 0x%02x", tag)
		}
	default:
		err = fmt.Errorf("unknown decoder side %v", d.side)
	}
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (d *Decoder) join() (Join, error) {
	name, err := d.str8()
	if err != nil {
		return Join{}, err
	}
	return Join{Name: name}, nil
}

func (d *Decoder) tileExchange() (TileExchange, error) {
	n, err := d.u8()
	if err != nil {
		return TileExchange{}, err
	}
	var m TileExchange
	for i := 0; i < int(n); i++ {
		id, err := d.u8()
		if err != nil {
			return TileExchange{}, err
		}
		m.TileIDs = append(m.TileIDs, tile.ID(id))
	}
	return m, nil
}

func (d *Decoder) placeTiles() (PlaceTiles, error) {
	n, err := d.u8()
	if err != nil {
		return PlaceTiles{}, err
	}
	var m PlaceTiles
	for i := 0; i < int(n); i++ {
		pos, err := d.u8()
		if err != nil {
			return PlaceTiles{}, err
		}
		id, err := d.u8()
		if err != nil {
			return PlaceTiles{}, err
		}
		letter, err := d.optLetter()
		if err != nil {
			return PlaceTiles{}, err
		}
		m.Placements = append(m.Placements, Placement{
			Position: pos,
			TileID:   tile.ID(id),
			Letter:   letter,
		})
	}
	return m, nil
}

func (d *Decoder) chat() (Chat, error) {
	text, err := d.str16()
	if err != nil {
		return Chat{}, err
	}
	return Chat{Text: text}, nil
}

func (d *Decoder) joinOk() (JoinOk, error) {
	id, err := d.u8()
	if err != nil {
		return JoinOk{}, err
	}
	n, err := d.u8()
	if err != nil {
		return JoinOk{}, err
	}
	m := JoinOk{PlayerID: game.PlayerID(id)}
	for i := 0; i < int(n); i++ {
		pid, err := d.u8()
		if err != nil {
			return JoinOk{}, err
		}
		ready, err := d.u8()
		if err != nil {
			return JoinOk{}, err
		}
		name, err := d.str8()
		if err != nil {
			return JoinOk{}, err
		}
		m.Players = append(m.Players, PlayerInfo{
			ID:    game.PlayerID(pid),
			Ready: ready != 0,
			Name:  name,
		})
	}
	return m, nil
}

func (d *Decoder) actionRejected() (ActionRejected, error) {
	reason, err := d.str16()
	if err != nil {
		return ActionRejected{}, err
	}
	return ActionRejected{Reason: reason}, nil
}

func (d *Decoder) playerJoined() (PlayerJoined, error) {
	id, err := d.u8()
	if err != nil {
		return PlayerJoined{}, err
	}
	name, err := d.str8()
	if err != nil {
		return PlayerJoined{}, err
	}
	return PlayerJoined{ID: game.PlayerID(id), Name: name}, nil
}

func (d *Decoder) playerLeft() (PlayerLeft, error) {
	id, err := d.u8()
	if err != nil {
		return PlayerLeft{}, err
	}
	return PlayerLeft{ID: game.PlayerID(id)}, nil
}

func (d *Decoder) playerReady() (PlayerReady, error) {
	id, err := d.u8()
	if err != nil {
		return PlayerReady{}, err
	}
	return PlayerReady{ID: game.PlayerID(id)}, nil
}

func (d *Decoder) startTurn() (StartTurn, error) {
	turnID, err := d.u8()
	if err != nil {
		return StartTurn{}, err
	}
	tilesLeft, err := d.u8()
	if err != nil {
		return StartTurn{}, err
	}
	n, err := d.u8()
	if err != nil {
		return StartTurn{}, err
	}
	m := StartTurn{
		TurnID:    game.PlayerID(turnID),
		TilesLeft: tilesLeft,
	}
	for i := 0; i < int(n); i++ {
		id, err := d.u8()
		if err != nil {
			return StartTurn{}, err
		}
		points, err := d.u8()
		if err != nil {
			return StartTurn{}, err
		}
		letter, err := d.optLetter()
		if err != nil {
			return StartTurn{}, err
		}
		m.Rack = append(m.Rack, tile.Tile{
			ID:     tile.ID(id),
			Points: tile.Points(points),
			Letter: letter,
		})
	}
	c, err := d.u8()
	if err != nil {
		return StartTurn{}, err
	}
	for i := 0; i < int(c); i++ {
		id, err := d.u8()
		if err != nil {
			return StartTurn{}, err
		}
		count, err := d.u8()
		if err != nil {
			return StartTurn{}, err
		}
		m.TileCounts = append(m.TileCounts, TileCount{
			ID:    game.PlayerID(id),
			Count: count,
		})
	}
	return m, nil
}

func (d *Decoder) endTurn() (EndTurn, error) {
	id, err := d.u8()
	if err != nil {
		return EndTurn{}, err
	}
	score, err := d.i16()
	if err != nil {
		return EndTurn{}, err
	}
	n, err := d.u8()
	if err != nil {
		return EndTurn{}, err
	}
	m := EndTurn{
		ID:    game.PlayerID(id),
		Score: score,
	}
	for i := 0; i < int(n); i++ {
		pos, err := d.u8()
		if err != nil {
			return EndTurn{}, err
		}
		points, err := d.u8()
		if err != nil {
			return EndTurn{}, err
		}
		letter, err := d.letter8()
		if err != nil {
			return EndTurn{}, err
		}
		m.Placed = append(m.Placed, PlacedTile{
			Position: pos,
			Points:   tile.Points(points),
			Letter:   letter,
		})
	}
	return m, nil
}

func (d *Decoder) endGame() (EndGame, error) {
	n, err := d.u8()
	if err != nil {
		return EndGame{}, err
	}
	var m EndGame
	for i := 0; i < int(n); i++ {
		id, err := d.u8()
		if err != nil {
			return EndGame{}, err
		}
		score, err := d.i16()
		if err != nil {
			return EndGame{}, err
		}
		m.Players = append(m.Players, PlayerScore{
			ID:    game.PlayerID(id),
			Score: score,
		})
	}
	return m, nil
}

func (d *Decoder) playerChat() (PlayerChat, error) {
	id, err := d.u8()
	if err != nil {
		return PlayerChat{}, err
	}
	text, err := d.str16()
	if err != nil {
		return PlayerChat{}, err
	}
	return PlayerChat{ID: game.PlayerID(id), Text: text}, nil
}

func (d *Decoder) notification() (Notification, error) {
	text, err := d.str16()
	if err != nil {
		return Notification{}, err
	}
	return Notification{Text: text}, nil
}

func (d *Decoder) u8() (uint8, error) {
	b, err := d.r.ReadByte()
	if err == io.EOF {
		err = io.ErrUnexpectedEOF
	}
	return b, err
}

func (d *Decoder) i16() (int16, error) {
	var buf [2]byte
	if _, err := io.ReadFull(d.r, buf[:]); err != nil {
		return 0, err
	}
	return int16(binary.BigEndian.Uint16(buf[:])), nil
}

func (d *Decoder) u16() (uint16, error) {
	var buf [2]byte
	if _, err := io.ReadFull(d.r, buf[:]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(buf[:]), nil
}

func (d *Decoder) str8() (string, error) {
	n, err := d.u8()
	if err != nil {
		return "", err
	}
	return d.strN(int(n))
}

func (d *Decoder) str16() (string, error) {
	n, err := d.u16()
	if err != nil {
		return "", err
	}
	return d.strN(int(n))
}

func (d *Decoder) strN(n int) (string, error) {
	if n == 0 {
		return "", nil
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(d.r, buf); err != nil {
		return "", err
	}
	return string(buf), nil
}

// optLetter reads an optStr and returns the zero Letter when it is absent.
func (d *Decoder) optLetter() (tile.Letter, error) {
	s, err := d.str8()
	if err != nil || len(s) == 0 {
		return 0, err
	}
	return firstRuneLetter(s)
}

// letter8 reads a str8 holding exactly one letter.
func (d *Decoder) letter8() (tile.Letter, error) {
	s, err := d.str8()
	if err != nil {
		return 0, err
	}
	if len(s) == 0 {
		return 0, fmt.Errorf("empty letter in message")
	}
	return firstRuneLetter(s)
}

func firstRuneLetter(s string) (tile.Letter, error) {
	r, size := utf8.DecodeRuneInString(s)
	if size != len(s) {
		return 0, fmt.Errorf("letter %q is not a single character", s)
	}
	return tile.NewLetter(r)
}
