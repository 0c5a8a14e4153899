package board

import (
	"errors"
	"testing"
)

func TestNotation(t *testing.T) {
	cases := []struct {
		row, col int
		want     string
	}{
		{0, 0, "a8"},
		{7, 4, "e1"},
		{6, 4, "e2"},
		{4, 4, "e4"},
		{7, 7, "h1"},
		{0, 7, "h8"},
		{-1, 0, ""},
		{0, 8, ""},
	}
	for _, tc := range cases {
		if got := Notation(tc.row, tc.col); got != tc.want {
			t.Fatalf("Notation(%d,%d) = %q, want %q", tc.row, tc.col, got, tc.want)
		}
	}
}

func TestParseSquareRoundTrip(t *testing.T) {
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			sq := Sq(r, c)
			got, err := ParseSquare(sq.String())
			if err != nil {
				t.Fatalf("ParseSquare(%q): %v", sq.String(), err)
			}
			if got != sq {
				t.Fatalf("ParseSquare(%q) = %+v, want %+v", sq.String(), got, sq)
			}
		}
	}
}

func TestParseSquareInvalid(t *testing.T) {
	for _, in := range []string{"", "e", "e9", "i1", "e10", "11", "zz"} {
		if _, err := ParseSquare(in); !errors.Is(err, ErrInvalidSquare) {
			t.Fatalf("ParseSquare(%q) err = %v, want ErrInvalidSquare", in, err)
		}
	}
	if sq, err := ParseSquare(" E2 "); err != nil || sq != Sq(6, 4) {
		t.Fatalf("ParseSquare tolerates case and spaces: got %+v, %v", sq, err)
	}
}

func TestInitialLayout(t *testing.T) {
	b := Initial()
	if n := b.Count(); n != 32 {
		t.Fatalf("initial piece count = %d, want 32", n)
	}
	if p := b.At(Sq(7, 4)); p != NewPiece(King, White) {
		t.Fatalf("e1 = %+v, want white king", p)
	}
	if p := b.At(Sq(0, 3)); p != NewPiece(Queen, Black) {
		t.Fatalf("d8 = %+v, want black queen", p)
	}
	for c := 0; c < Size; c++ {
		if b.At(Sq(6, c)) != NewPiece(Pawn, White) || b.At(Sq(1, c)) != NewPiece(Pawn, Black) {
			t.Fatalf("pawn ranks wrong at column %d", c)
		}
		for r := 2; r < 6; r++ {
			if !b.At(Sq(r, c)).IsEmpty() {
				t.Fatalf("square %s should be empty", Sq(r, c))
			}
		}
	}
}

func TestBoardOutOfBounds(t *testing.T) {
	b := Initial()
	if p := b.At(Sq(-1, 3)); !p.IsEmpty() {
		t.Fatalf("At out of bounds = %+v, want empty", p)
	}
	before := b
	b.Set(Sq(8, 0), NewPiece(Queen, White))
	if b != before {
		t.Fatalf("Set out of bounds mutated the board")
	}
}

func TestBoardCopyIsDeep(t *testing.T) {
	live := Initial()
	snap := live
	live.Set(Sq(6, 4), Empty)
	if snap.At(Sq(6, 4)).IsEmpty() {
		t.Fatalf("snapshot aliased the live board")
	}
}

func TestColorOther(t *testing.T) {
	if White.Other() != Black || Black.Other() != White || NoColor.Other() != NoColor {
		t.Fatalf("Other() mapping is wrong")
	}
}

func TestFENInitial(t *testing.T) {
	got := FEN(Initial(), White)
	want := "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w - - 0 1"
	if got != want {
		t.Fatalf("FEN = %q, want %q", got, want)
	}
}

func TestParseFENRoundTrip(t *testing.T) {
	b := Initial()
	b.Set(Sq(6, 4), Empty)
	b.Set(Sq(4, 4), NewPiece(Pawn, White))
	b.Set(Sq(1, 3), Empty)
	b.Set(Sq(3, 3), NewPiece(Pawn, Black))

	got, turn, err := ParseFEN(FEN(b, Black))
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	if turn != Black {
		t.Fatalf("turn = %v, want black", turn)
	}
	if got != b {
		t.Fatalf("board mismatch after round trip")
	}
}

func TestParseFENPlacementOnly(t *testing.T) {
	got, turn, err := ParseFEN("4k3/8/8/8/8/8/8/R3K3")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	if turn != White {
		t.Fatalf("turn = %v, want white", turn)
	}
	if got.At(Sq(7, 0)) != NewPiece(Rook, White) || got.At(Sq(0, 4)) != NewPiece(King, Black) {
		t.Fatalf("unexpected placement")
	}
	if got.Count() != 3 {
		t.Fatalf("count = %d, want 3", got.Count())
	}
}

func TestParseFENInvalid(t *testing.T) {
	if _, _, err := ParseFEN(""); !errors.Is(err, ErrInvalidFEN) {
		t.Fatalf("empty FEN err = %v", err)
	}
	if _, _, err := ParseFEN("not a fen at all x"); !errors.Is(err, ErrInvalidFEN) {
		t.Fatalf("garbage FEN err = %v", err)
	}
}
