package game

import (
	"github.com/google/uuid"
	"github.com/park285/ajedrez/internal/board"
	"github.com/park285/ajedrez/internal/movegen"
	"go.uber.org/zap"
)

// State owns one board: position, side to move, current selection and the
// undo history. It is not safe for concurrent use; callers serialise access.
type State struct {
	id     string
	logger *zap.Logger

	board board.Board
	turn  board.Color

	selected  bool
	selection board.Square
	legal     []board.Square

	history []snapshot
	moves   []MoveRecord
}

type Option func(*State)

func WithLogger(l *zap.Logger) Option {
	return func(s *State) {
		if l != nil {
			s.logger = l
		}
	}
}

func WithID(id string) Option {
	return func(s *State) {
		if id != "" {
			s.id = id
		}
	}
}

// WithPosition starts from an arbitrary position instead of the initial layout.
func WithPosition(b board.Board, turn board.Color) Option {
	return func(s *State) {
		s.board = b
		if turn == board.White || turn == board.Black {
			s.turn = turn
		}
	}
}

// New returns a game in the initial position with white to move.
func New(opts ...Option) *State {
	s := &State{
		id:     uuid.NewString(),
		logger: zap.NewNop(),
		board:  board.Initial(),
		turn:   board.White,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With(zap.String("game_id", s.id))
	return s
}

// SelectOrMove handles a click on sq. Every input is valid: clicks that do
// not fit the current phase are ignored and leave the state untouched.
func (s *State) SelectOrMove(sq board.Square) Action {
	own := s.ownPiece(sq)

	if !s.selected {
		if !own {
			return ActionIgnored
		}
		s.selectSquare(sq)
		s.logger.Debug("board_select", zap.String("square", sq.String()), zap.Int("moves", len(s.legal)))
		return ActionSelected
	}

	switch {
	case sq == s.selection:
		s.clearSelection()
		s.logger.Debug("board_deselect", zap.String("square", sq.String()))
		return ActionDeselected
	case own:
		s.selectSquare(sq)
		s.logger.Debug("board_reselect", zap.String("square", sq.String()), zap.Int("moves", len(s.legal)))
		return ActionReselected
	case movegen.Contains(s.legal, sq):
		rec := s.apply(s.selection, sq)
		s.logger.Info("board_move",
			zap.Int("number", rec.Number),
			zap.String("piece", rec.Piece.Kind.String()),
			zap.String("from", rec.From.String()),
			zap.String("to", rec.To.String()),
			zap.Bool("capture", rec.HasCapture()),
			zap.String("turn", s.turn.String()),
		)
		return ActionMoved
	default:
		return ActionIgnored
	}
}

// Undo reverts the most recent move. It reports false, changing nothing,
// when there is no move to undo.
func (s *State) Undo() bool {
	n := len(s.history)
	if n == 0 {
		return false
	}
	top := s.history[n-1]
	s.board = top.board
	s.turn = top.turn
	s.history = s.history[:n-1]
	undone := s.moves[len(s.moves)-1]
	s.moves = s.moves[:len(s.moves)-1]
	s.clearSelection()

	s.logger.Info("board_undo",
		zap.Int("number", undone.Number),
		zap.String("from", undone.From.String()),
		zap.String("to", undone.To.String()),
		zap.Int("remaining", len(s.moves)),
	)
	return true
}

func (s *State) apply(from, to board.Square) MoveRecord {
	mover := s.board.At(from)
	rec := MoveRecord{
		Number:   len(s.moves) + 1,
		Piece:    mover,
		From:     from,
		To:       to,
		Captured: s.board.At(to),
	}
	s.moves = append(s.moves, rec)
	s.history = append(s.history, snapshot{board: s.board, turn: s.turn})

	s.board.Set(from, board.Empty)
	s.board.Set(to, mover)
	s.turn = s.turn.Other()
	s.clearSelection()
	return rec
}

func (s *State) ownPiece(sq board.Square) bool {
	p := s.board.At(sq)
	return !p.IsEmpty() && p.Color == s.turn
}

func (s *State) selectSquare(sq board.Square) {
	s.selected = true
	s.selection = sq
	s.legal = movegen.LegalMoves(s.board, sq, s.turn)
}

func (s *State) clearSelection() {
	s.selected = false
	s.selection = board.Square{}
	s.legal = nil
}

func (s *State) ID() string { return s.id }

// Board returns a copy of the current position.
func (s *State) Board() board.Board { return s.board }

func (s *State) Turn() board.Color { return s.turn }

// Selection returns the selected square, if any.
func (s *State) Selection() (board.Square, bool) { return s.selection, s.selected }

// LegalMoves returns a copy of the highlighted destinations.
func (s *State) LegalMoves() []board.Square {
	return append([]board.Square(nil), s.legal...)
}

// Moves returns a copy of the move log, oldest first.
func (s *State) Moves() []MoveRecord {
	return append([]MoveRecord(nil), s.moves...)
}

func (s *State) LastMove() (MoveRecord, bool) {
	if len(s.moves) == 0 {
		return MoveRecord{}, false
	}
	return s.moves[len(s.moves)-1], true
}

func (s *State) CanUndo() bool { return len(s.history) > 0 }

func (s *State) Phase() Phase {
	if s.selected {
		return PhaseSelecting
	}
	return PhaseIdle
}
