package presenter

import (
	"strings"

	"github.com/park285/ajedrez/internal/board"
	"github.com/park285/ajedrez/internal/game"
)

// Presenter delivers formatted board text without coupling to the input loop.
type Presenter struct {
	formatter   *Formatter
	sendMessage func(message string) error
}

func NewPresenter(formatter *Formatter, sendMessage func(message string) error) *Presenter {
	if formatter == nil {
		formatter = NewFormatter(nil)
	}
	return &Presenter{formatter: formatter, sendMessage: sendMessage}
}

func (p *Presenter) send(text string) error {
	if p == nil || p.sendMessage == nil || strings.TrimSpace(text) == "" {
		return nil
	}
	return p.sendMessage(text)
}

// Message sends a plain line.
func (p *Presenter) Message(text string) error { return p.send(text) }

// Board sends message, then the grid with the current highlights and the turn line.
func (p *Presenter) Board(message string, g *game.State) error {
	if p == nil || g == nil {
		return nil
	}
	if err := p.send(message); err != nil {
		return err
	}
	var sel *board.Square
	if s, ok := g.Selection(); ok {
		sel = &s
	}
	text := p.formatter.BoardText(g.Board(), sel, g.LegalMoves()) + p.formatter.Turn(g.Turn())
	return p.send(text)
}

// History sends the move log, newest first.
func (p *Presenter) History(g *game.State) error {
	if p == nil || g == nil {
		return nil
	}
	return p.send(p.formatter.History(g.Moves()))
}
