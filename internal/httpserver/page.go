package httpserver

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"

	"github.com/park285/ajedrez/internal/board"
	"github.com/park285/ajedrez/internal/game"
	"github.com/park285/ajedrez/internal/movegen"
	"github.com/park285/ajedrez/internal/presenter"
	"github.com/park285/ajedrez/internal/render"
	"github.com/valyala/fasthttp"
)

//go:embed templates/page.html
var templateFiles embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFiles, "templates/page.html"))

type pageView struct {
	ID           string
	Title        string
	Turn         string
	UndoLabel    string
	NewGameLabel string
	HistoryTitle string
	EmptyHistory string
	CanUndo      bool
	Files        []string
	Rows         []rowView
	History      []string
}

type rowView struct {
	Rank  string
	Cells []cellView
}

type cellView struct {
	Glyph string
	Href  string
	Class string
}

func (s *Server) handleIndex(ctx *fasthttp.RequestCtx) {
	id, err := s.boards.Create(context.Background())
	if err != nil {
		s.writeError(ctx, err)
		return
	}
	redirect(ctx, "/games/"+id)
}

func (s *Server) handlePage(ctx *fasthttp.RequestCtx, id string) {
	var view pageView
	err := s.boards.View(id, func(g *game.State) error {
		view = s.buildPage(g)
		return nil
	})
	if err != nil {
		s.writeError(ctx, err)
		return
	}
	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, view); err != nil {
		s.writeError(ctx, fmt.Errorf("render page: %w", err))
		return
	}
	ctx.SetContentType("text/html; charset=utf-8")
	ctx.SetBody(buf.Bytes())
}

func (s *Server) buildPage(g *game.State) pageView {
	f := s.formatter
	b := g.Board()
	sel, selected := g.Selection()
	legal := g.LegalMoves()

	view := pageView{
		ID:           g.ID(),
		Title:        f.PageTitle(),
		Turn:         f.Turn(g.Turn()),
		UndoLabel:    f.UndoLabel(),
		NewGameLabel: f.NewGameLabel(),
		HistoryTitle: f.HistoryTitle(),
		EmptyHistory: f.HistoryEmpty(),
		CanUndo:      g.CanUndo(),
		History:      f.HistoryLines(g.Moves()),
	}
	for col := 0; col < board.Size; col++ {
		view.Files = append(view.Files, board.Notation(board.Size-1, col)[:1])
	}
	for row := 0; row < board.Size; row++ {
		r := rowView{Rank: board.Notation(row, 0)[1:]}
		for col := 0; col < board.Size; col++ {
			sq := board.Sq(row, col)
			class := "light"
			if (row+col)%2 == 1 {
				class = "dark"
			}
			if selected && sq == sel {
				class += " selected"
			}
			if movegen.Contains(legal, sq) {
				class += " target"
			}
			r.Cells = append(r.Cells, cellView{
				Glyph: presenter.Glyph(b.At(sq)),
				Href:  "/games/" + g.ID() + "/click/" + sq.String(),
				Class: class,
			})
		}
		view.Rows = append(view.Rows, r)
	}
	return view
}

func (s *Server) handlePageClick(ctx *fasthttp.RequestCtx, id, square string) {
	sq, err := board.ParseSquare(square)
	if err != nil {
		s.writeError(ctx, fmt.Errorf("%w: %q", err, square))
		return
	}
	if _, err := s.boards.Select(id, sq); err != nil {
		s.writeError(ctx, err)
		return
	}
	redirect(ctx, "/games/"+id)
}

func (s *Server) handlePageUndo(ctx *fasthttp.RequestCtx, id string) {
	if _, err := s.boards.Undo(id); err != nil {
		s.writeError(ctx, err)
		return
	}
	redirect(ctx, "/games/"+id)
}

func (s *Server) handleBoardPNG(ctx *fasthttp.RequestCtx, id string) {
	if s.renderer == nil {
		s.writeError(ctx, ErrNotConfigured)
		return
	}
	var (
		b    board.Board
		opts render.Options
	)
	err := s.boards.View(id, func(g *game.State) error {
		b = g.Board()
		if sel, ok := g.Selection(); ok {
			opts.Selected = &sel
		}
		opts.Targets = g.LegalMoves()
		opts.HUDHeader = s.formatter.PageTitle()
		if last, ok := g.LastMove(); ok {
			opts.LastMove = &render.LastMove{From: last.From, To: last.To}
			opts.HUDHeader = s.formatter.HUDLastMove(last)
		}
		opts.HUDTurn = s.formatter.Turn(g.Turn())
		return nil
	})
	if err != nil {
		s.writeError(ctx, err)
		return
	}

	rctx, cancel := context.WithTimeout(context.Background(), s.renderTimeout)
	defer cancel()
	png, err := s.renderer.RenderPNG(rctx, b, opts)
	if err != nil {
		s.writeError(ctx, fmt.Errorf("render board: %w", err))
		return
	}
	ctx.SetContentType("image/png")
	ctx.Response.Header.Set("Cache-Control", "no-store")
	ctx.SetBody(png)
}
