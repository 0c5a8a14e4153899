package game

import "github.com/park285/ajedrez/internal/board"

// Phase is the interaction state of a board.
type Phase string

const (
	PhaseIdle      Phase = "IDLE"
	PhaseSelecting Phase = "SELECTING"
)

// Action reports what SelectOrMove did with a click.
type Action string

const (
	ActionIgnored    Action = "ignored"
	ActionSelected   Action = "selected"
	ActionReselected Action = "reselected"
	ActionDeselected Action = "deselected"
	ActionMoved      Action = "moved"
)

// MoveRecord describes one completed move. Records are never modified after creation.
type MoveRecord struct {
	Number   int
	Piece    board.Piece
	From     board.Square
	To       board.Square
	Captured board.Piece
}

// HasCapture reports whether the move took a piece.
func (m MoveRecord) HasCapture() bool { return !m.Captured.IsEmpty() }

// snapshot is one history stack slot: the board and side to move before a move.
type snapshot struct {
	board board.Board
	turn  board.Color
}
