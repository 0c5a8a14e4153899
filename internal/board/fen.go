package board

import (
	"errors"
	"fmt"
	"strings"

	nchess "github.com/corentings/chess/v2"
)

var ErrInvalidFEN = errors.New("invalid FEN")

// Castling and en passant do not exist on this board, so those fields are always "-".
const fenTail = " - - 0 1"

var (
	kindToLib = map[Kind]nchess.PieceType{
		Pawn:   nchess.Pawn,
		Knight: nchess.Knight,
		Bishop: nchess.Bishop,
		Rook:   nchess.Rook,
		Queen:  nchess.Queen,
		King:   nchess.King,
	}
	kindFromLib = map[nchess.PieceType]Kind{
		nchess.Pawn:   Pawn,
		nchess.Knight: Knight,
		nchess.Bishop: Bishop,
		nchess.Rook:   Rook,
		nchess.Queen:  Queen,
		nchess.King:   King,
	}
)

// FEN encodes the board and side to move.
func FEN(b Board, turn Color) string {
	side := "w"
	if turn == Black {
		side = "b"
	}
	return toLibBoard(b).String() + " " + side + fenTail
}

// ParseFEN accepts a full FEN or only its piece-placement field.
// Castling and en passant fields are read but discarded.
func ParseFEN(s string) (Board, Color, error) {
	raw := strings.TrimSpace(s)
	if raw == "" {
		return Board{}, NoColor, ErrInvalidFEN
	}
	fields := strings.Fields(raw)
	if len(fields) == 1 {
		raw = fields[0] + " w" + fenTail
	}
	opt, err := nchess.FEN(raw)
	if err != nil {
		return Board{}, NoColor, fmt.Errorf("%w: %v", ErrInvalidFEN, err)
	}
	pos := nchess.NewGame(opt).Position()
	if pos == nil {
		return Board{}, NoColor, ErrInvalidFEN
	}

	var b Board
	for sq, p := range pos.Board().SquareMap() {
		kind, ok := kindFromLib[p.Type()]
		if !ok {
			continue
		}
		b.Set(fromLibSquare(sq), NewPiece(kind, fromLibColor(p.Color())))
	}
	return b, fromLibColor(pos.Turn()), nil
}

func toLibBoard(b Board) *nchess.Board {
	m := make(map[nchess.Square]nchess.Piece, 32)
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			p := b[r][c]
			if p.IsEmpty() {
				continue
			}
			m[toLibSquare(Square{Row: r, Col: c})] = nchess.NewPiece(kindToLib[p.Kind], toLibColor(p.Color))
		}
	}
	return nchess.NewBoard(m)
}

func toLibSquare(s Square) nchess.Square {
	return nchess.NewSquare(nchess.File(s.Col), nchess.Rank(Size-1-s.Row))
}

func fromLibSquare(sq nchess.Square) Square {
	return Square{Row: Size - 1 - int(sq.Rank()), Col: int(sq.File())}
}

func toLibColor(c Color) nchess.Color {
	if c == Black {
		return nchess.Black
	}
	return nchess.White
}

func fromLibColor(c nchess.Color) Color {
	switch c {
	case nchess.White:
		return White
	case nchess.Black:
		return Black
	default:
		return NoColor
	}
}
