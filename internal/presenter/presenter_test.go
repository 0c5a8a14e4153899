package presenter

import (
	"strings"
	"testing"

	"github.com/park285/ajedrez/internal/board"
	"github.com/park285/ajedrez/internal/game"
)

func click(t *testing.T, g *game.State, squares ...string) {
	t.Helper()
	for _, s := range squares {
		sq, err := board.ParseSquare(s)
		if err != nil {
			t.Fatalf("ParseSquare(%q): %v", s, err)
		}
		g.SelectOrMove(sq)
	}
}

func TestGlyph(t *testing.T) {
	cases := []struct {
		piece board.Piece
		want  string
	}{
		{board.NewPiece(board.King, board.White), "♔"},
		{board.NewPiece(board.Pawn, board.White), "♙"},
		{board.NewPiece(board.Queen, board.Black), "♛"},
		{board.NewPiece(board.Knight, board.Black), "♞"},
		{board.Empty, ""},
	}
	for _, tc := range cases {
		if got := Glyph(tc.piece); got != tc.want {
			t.Fatalf("Glyph(%+v) = %q, want %q", tc.piece, got, tc.want)
		}
	}
}

func TestTurnLabels(t *testing.T) {
	f := NewFormatter(nil)
	if got := f.Turn(board.White); got != "Turno: Blancas" {
		t.Fatalf("Turn(white) = %q", got)
	}
	if got := f.Turn(board.Black); got != "Turno: Negras" {
		t.Fatalf("Turn(black) = %q", got)
	}
	var nilFormatter *Formatter
	if got := nilFormatter.Turn(board.White); got != "Turno: Blancas" {
		t.Fatalf("nil formatter Turn = %q", got)
	}
}

func TestHistoryLinesNewestFirst(t *testing.T) {
	g := game.New()
	click(t, g, "e2", "e4", "d7", "d5", "e4", "d5")

	lines := NewFormatter(nil).HistoryLines(g.Moves())
	want := []string{
		"Jugada 3: ♙ e4 → d5  x ♟",
		"Jugada 2: ♟ d7 → d5",
		"Jugada 1: ♙ e2 → e4",
	}
	if len(lines) != len(want) {
		t.Fatalf("lines = %d, want %d", len(lines), len(want))
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Fatalf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}
}

func TestHistoryEmpty(t *testing.T) {
	got := NewFormatter(nil).History(nil)
	if !strings.HasPrefix(got, "Historial de jugadas\n") || !strings.Contains(got, "no hay jugadas") {
		t.Fatalf("History(nil) = %q", got)
	}
}

func TestBoardTextMarksSelectionAndTargets(t *testing.T) {
	g := game.New()
	click(t, g, "e2")
	sel, _ := g.Selection()

	text := NewFormatter(nil).BoardText(g.Board(), &sel, g.LegalMoves())
	lines := strings.Split(strings.TrimRight(text, "\n"), "\n")
	if len(lines) != 10 {
		t.Fatalf("board text has %d lines, want 10", len(lines))
	}
	if !strings.HasPrefix(lines[1], " 8  ♜  ♞ ") {
		t.Fatalf("rank 8 line = %q", lines[1])
	}
	rank2 := lines[7]
	if !strings.HasPrefix(rank2, " 2 ") || !strings.Contains(rank2, "[♙]") {
		t.Fatalf("selection not marked on rank 2: %q", rank2)
	}
	for _, idx := range []int{5, 6} { // ranks 4 and 3
		if strings.Count(lines[idx], "*") != 1 {
			t.Fatalf("expected one target marker on %q", lines[idx])
		}
	}
}

func TestToSnapshot(t *testing.T) {
	if ToSnapshot(nil) != nil {
		t.Fatalf("nil state should give nil snapshot")
	}
	g := game.New(game.WithID("g1"))
	click(t, g, "e2", "e4", "g8")

	s := ToSnapshot(g)
	if s.ID != "g1" || s.Turn != "black" || s.Phase != string(game.PhaseSelecting) {
		t.Fatalf("unexpected header: %+v", s)
	}
	if s.Selected != "g8" || len(s.LegalMoves) != 2 {
		t.Fatalf("selection = %q legal = %v", s.Selected, s.LegalMoves)
	}
	if s.Grid[4][4] != "♙" || s.Grid[6][4] != "" || s.Grid[0][4] != "♚" {
		t.Fatalf("grid not copied correctly")
	}
	if !s.CanUndo || len(s.Moves) != 1 || s.LastMove == nil || s.LastMove.From != "e2" || s.LastMove.To != "e4" {
		t.Fatalf("move log not copied: %+v", s.Moves)
	}
	if s.FEN != "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b - - 0 1" {
		t.Fatalf("FEN = %q", s.FEN)
	}
}

func TestPresenterSendsBoardAndHistory(t *testing.T) {
	var sent []string
	p := NewPresenter(nil, func(message string) error {
		sent = append(sent, message)
		return nil
	})
	g := game.New()
	click(t, g, "e2", "e4")

	if err := p.Board("  ", g); err != nil {
		t.Fatalf("Board: %v", err)
	}
	if len(sent) != 1 || !strings.HasSuffix(sent[0], "Turno: Negras") {
		t.Fatalf("blank message should be skipped, got %q", sent)
	}
	if err := p.History(g); err != nil {
		t.Fatalf("History: %v", err)
	}
	if !strings.Contains(sent[1], "Jugada 1: ♙ e2 → e4") {
		t.Fatalf("history = %q", sent[1])
	}
	var nilPresenter *Presenter
	if err := nilPresenter.Board("x", g); err != nil {
		t.Fatalf("nil presenter: %v", err)
	}
}
