package presenter

import (
	"github.com/park285/ajedrez/internal/board"
	"github.com/park285/ajedrez/internal/game"
	"github.com/park285/ajedrez/pkg/boarddto"
)

// ToSnapshot copies the observable state of g into a transport DTO.
func ToSnapshot(g *game.State) *boarddto.Snapshot {
	if g == nil {
		return nil
	}
	b := g.Board()
	s := &boarddto.Snapshot{
		ID:         g.ID(),
		FEN:        board.FEN(b, g.Turn()),
		Turn:       g.Turn().String(),
		Phase:      string(g.Phase()),
		LegalMoves: toSquareList(g.LegalMoves()),
		CanUndo:    g.CanUndo(),
	}
	for row := 0; row < board.Size; row++ {
		for col := 0; col < board.Size; col++ {
			s.Grid[row][col] = Glyph(b[row][col])
		}
	}
	if sel, ok := g.Selection(); ok {
		s.Selected = sel.String()
	}

	moves := g.Moves()
	s.Moves = make([]boarddto.Move, 0, len(moves))
	for _, m := range moves {
		s.Moves = append(s.Moves, ToDTOMove(m))
	}
	if len(s.Moves) > 0 {
		last := s.Moves[len(s.Moves)-1]
		s.LastMove = &last
	}
	return s
}

func ToDTOMove(m game.MoveRecord) boarddto.Move {
	out := boarddto.Move{
		Number: m.Number,
		Piece:  m.Piece.Kind.String(),
		Glyph:  Glyph(m.Piece),
		Color:  m.Piece.Color.String(),
		From:   m.From.String(),
		To:     m.To.String(),
	}
	if m.HasCapture() {
		out.Captured = Glyph(m.Captured)
	}
	return out
}

func toSquareList(list []board.Square) []string {
	out := make([]string, 0, len(list))
	for _, sq := range list {
		out = append(out, sq.String())
	}
	return out
}
