package presenter

import "github.com/park285/ajedrez/internal/board"

var (
	whiteGlyphs = map[board.Kind]string{
		board.King: "♔", board.Queen: "♕", board.Rook: "♖",
		board.Bishop: "♗", board.Knight: "♘", board.Pawn: "♙",
	}
	blackGlyphs = map[board.Kind]string{
		board.King: "♚", board.Queen: "♛", board.Rook: "♜",
		board.Bishop: "♝", board.Knight: "♞", board.Pawn: "♟",
	}
)

// Glyph returns the Unicode chess symbol for p, or "" for an empty square.
func Glyph(p board.Piece) string {
	switch p.Color {
	case board.White:
		return whiteGlyphs[p.Kind]
	case board.Black:
		return blackGlyphs[p.Kind]
	default:
		return ""
	}
}
