// Package movegen produces pseudo-legal destination squares for a single
// piece. It knows nothing about check, castling, en passant or promotion.
package movegen

import "github.com/park285/ajedrez/internal/board"

type direction struct{ dr, dc int }

var (
	knightJumps = []direction{
		{2, 1}, {2, -1}, {-2, 1}, {-2, -1},
		{1, 2}, {1, -2}, {-1, 2}, {-1, -2},
	}
	bishopRays = []direction{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
	rookRays   = []direction{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
	queenRays  = append(append([]direction(nil), rookRays...), bishopRays...)
)

// LegalMoves returns the destinations available to the piece on origin.
// The result is empty when origin is off the board, empty, or holds a piece
// that does not belong to turn. The board is never modified.
//
// Order is deterministic (direction list, then distance) but carries no meaning.
func LegalMoves(b board.Board, origin board.Square, turn board.Color) []board.Square {
	p := b.At(origin)
	if p.IsEmpty() || p.Color != turn {
		return nil
	}
	switch p.Kind {
	case board.Pawn:
		return pawnMoves(&b, origin, p.Color)
	case board.Knight:
		return stepMoves(&b, origin, p.Color, knightJumps)
	case board.Bishop:
		return slidingMoves(&b, origin, p.Color, bishopRays)
	case board.Rook:
		return slidingMoves(&b, origin, p.Color, rookRays)
	case board.Queen:
		return slidingMoves(&b, origin, p.Color, queenRays)
	case board.King:
		return kingMoves(&b, origin, p.Color)
	default:
		return nil
	}
}

// Contains reports whether sq is among moves.
func Contains(moves []board.Square, sq board.Square) bool {
	for _, m := range moves {
		if m == sq {
			return true
		}
	}
	return false
}

func forward(c board.Color) int {
	if c == board.White {
		return -1
	}
	return 1
}

func startRow(c board.Color) int {
	if c == board.White {
		return 6
	}
	return 1
}

func pawnMoves(b *board.Board, from board.Square, c board.Color) []board.Square {
	var moves []board.Square
	dir := forward(c)

	one := from.Add(dir, 0)
	if one.InBounds() && b.At(one).IsEmpty() {
		moves = append(moves, one)
		two := from.Add(2*dir, 0)
		if from.Row == startRow(c) && two.InBounds() && b.At(two).IsEmpty() {
			moves = append(moves, two)
		}
	}

	for _, dc := range []int{-1, 1} {
		target := from.Add(dir, dc)
		if !target.InBounds() {
			continue
		}
		if occupant := b.At(target); !occupant.IsEmpty() && occupant.Color != c {
			moves = append(moves, target)
		}
	}
	return moves
}

// stepMoves handles single-hop pieces: a destination is fine unless a piece of
// the mover's own color sits on it.
func stepMoves(b *board.Board, from board.Square, c board.Color, steps []direction) []board.Square {
	var moves []board.Square
	for _, d := range steps {
		target := from.Add(d.dr, d.dc)
		if !target.InBounds() {
			continue
		}
		if occupant := b.At(target); occupant.IsEmpty() || occupant.Color != c {
			moves = append(moves, target)
		}
	}
	return moves
}

func slidingMoves(b *board.Board, from board.Square, c board.Color, rays []direction) []board.Square {
	var moves []board.Square
	for _, d := range rays {
		for target := from.Add(d.dr, d.dc); target.InBounds(); target = target.Add(d.dr, d.dc) {
			occupant := b.At(target)
			if occupant.IsEmpty() {
				moves = append(moves, target)
				continue
			}
			if occupant.Color != c {
				moves = append(moves, target)
			}
			break
		}
	}
	return moves
}

var kingSteps = func() []direction {
	out := make([]direction, 0, 8)
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			if dr == 0 && dc == 0 {
				continue
			}
			out = append(out, direction{dr, dc})
		}
	}
	return out
}()

func kingMoves(b *board.Board, from board.Square, c board.Color) []board.Square {
	return stepMoves(b, from, c, kingSteps)
}
