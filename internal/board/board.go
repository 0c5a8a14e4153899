package board

import (
	"errors"
	"strings"
)

const Size = 8

var ErrInvalidSquare = errors.New("invalid square")

// Color identifies a side.
type Color uint8

const (
	NoColor Color = iota
	White
	Black
)

// Other returns the opposing side. NoColor stays NoColor.
func (c Color) Other() Color {
	switch c {
	case White:
		return Black
	case Black:
		return White
	default:
		return NoColor
	}
}

func (c Color) String() string {
	switch c {
	case White:
		return "white"
	case Black:
		return "black"
	default:
		return ""
	}
}

// Kind is the piece type without color.
type Kind uint8

const (
	NoKind Kind = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
)

func (k Kind) String() string {
	switch k {
	case Pawn:
		return "pawn"
	case Knight:
		return "knight"
	case Bishop:
		return "bishop"
	case Rook:
		return "rook"
	case Queen:
		return "queen"
	case King:
		return "king"
	default:
		return ""
	}
}

// Piece is a tagged {kind, color} value. The zero Piece is an empty square.
type Piece struct {
	Kind  Kind
	Color Color
}

var Empty = Piece{}

func NewPiece(kind Kind, color Color) Piece { return Piece{Kind: kind, Color: color} }

func (p Piece) IsEmpty() bool { return p.Kind == NoKind || p.Color == NoColor }

// Square addresses the grid. Row 0 is rank 8, column 0 is file a.
type Square struct {
	Row int
	Col int
}

func Sq(row, col int) Square { return Square{Row: row, Col: col} }

func (s Square) InBounds() bool {
	return s.Row >= 0 && s.Row < Size && s.Col >= 0 && s.Col < Size
}

// Add offsets the square; the result may be out of bounds.
func (s Square) Add(dr, dc int) Square { return Square{Row: s.Row + dr, Col: s.Col + dc} }

func (s Square) String() string { return Notation(s.Row, s.Col) }

// Notation renders (row, col) as file+rank, e.g. (0,0) -> "a8", (7,4) -> "e1".
// Out-of-bounds coordinates yield "".
func Notation(row, col int) string {
	if !(Square{Row: row, Col: col}).InBounds() {
		return ""
	}
	return string([]byte{byte('a' + col), byte('0' + (Size - row))})
}

// ParseSquare is the inverse of Notation.
func ParseSquare(s string) (Square, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	if len(v) != 2 {
		return Square{}, ErrInvalidSquare
	}
	file, rank := v[0], v[1]
	if file < 'a' || file > 'h' || rank < '1' || rank > '8' {
		return Square{}, ErrInvalidSquare
	}
	return Square{Row: Size - int(rank-'0'), Col: int(file - 'a')}, nil
}

// Board is a fixed 8x8 grid. It is a value type: assigning or passing a Board
// copies every square, so snapshots never share storage with the live board.
type Board [Size][Size]Piece

// At returns the piece on sq, or Empty when sq is off the board.
func (b Board) At(sq Square) Piece {
	if !sq.InBounds() {
		return Empty
	}
	return b[sq.Row][sq.Col]
}

// Set places p on sq. Off-board squares are ignored.
func (b *Board) Set(sq Square, p Piece) {
	if !sq.InBounds() {
		return
	}
	b[sq.Row][sq.Col] = p
}

// Initial returns the standard starting layout.
func Initial() Board {
	var b Board
	back := [Size]Kind{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}
	for col := 0; col < Size; col++ {
		b[0][col] = NewPiece(back[col], Black)
		b[1][col] = NewPiece(Pawn, Black)
		b[6][col] = NewPiece(Pawn, White)
		b[7][col] = NewPiece(back[col], White)
	}
	return b
}

// Count returns how many squares are occupied.
func (b Board) Count() int {
	n := 0
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			if !b[r][c].IsEmpty() {
				n++
			}
		}
	}
	return n
}
