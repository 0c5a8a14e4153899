package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/park285/ajedrez/internal/board"
	"github.com/park285/ajedrez/internal/game"
	"github.com/park285/ajedrez/internal/presenter"
)

func TestRunPlaysAndUndoes(t *testing.T) {
	in := strings.NewReader("e2\ne4\nhistory\nfen\nundo\nundo\nzz\nquit\n")
	var out bytes.Buffer
	g := game.New()

	if err := run(in, &out, g, presenter.NewFormatter(nil)); err != nil {
		t.Fatalf("run: %v", err)
	}
	text := out.String()
	for _, want := range []string{
		"Jugada 1: ♙ e2 → e4",
		"rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b - - 0 1",
		"Jugada deshecha.",
		"No hay jugadas para deshacer.",
		"Comando desconocido: zz",
		"¡Hasta luego!",
	} {
		if !strings.Contains(text, want) {
			t.Fatalf("output missing %q:\n%s", want, text)
		}
	}
	if g.Board() != board.Initial() || g.Turn() != board.White {
		t.Fatalf("undo did not restore the initial position")
	}
}

func TestRunStopsAtEOF(t *testing.T) {
	var out bytes.Buffer
	g := game.New()
	if err := run(strings.NewReader("g1\n"), &out, g, presenter.NewFormatter(nil)); err != nil {
		t.Fatalf("run: %v", err)
	}
	if sel, ok := g.Selection(); !ok || sel != board.Sq(7, 6) {
		t.Fatalf("g1 should be selected, got %v %v", sel, ok)
	}
	if !strings.Contains(out.String(), "[♘]") {
		t.Fatalf("selection not drawn:\n%s", out.String())
	}
}
