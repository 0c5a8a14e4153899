package httpserver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/park285/ajedrez/internal/board"
	"github.com/park285/ajedrez/pkg/boarddto"
	"github.com/valyala/fasthttp"
)

func (s *Server) handleList(ctx *fasthttp.RequestCtx) {
	s.writeJSON(ctx, fasthttp.StatusOK, map[string][]string{"games": s.boards.IDs()})
}

func (s *Server) handleCreate(ctx *fasthttp.RequestCtx) {
	id, err := s.boards.Create(context.Background())
	if err != nil {
		s.writeError(ctx, err)
		return
	}
	snap, err := s.boards.Get(id)
	if err != nil {
		s.writeError(ctx, err)
		return
	}
	ctx.Response.Header.Set("Location", "/api/games/"+id)
	s.writeJSON(ctx, fasthttp.StatusCreated, snap)
}

func (s *Server) handleGet(ctx *fasthttp.RequestCtx, id string) {
	snap, err := s.boards.Get(id)
	if err != nil {
		s.writeError(ctx, err)
		return
	}
	s.writeJSON(ctx, fasthttp.StatusOK, snap)
}

func (s *Server) handleDelete(ctx *fasthttp.RequestCtx, id string) {
	if err := s.boards.Delete(id); err != nil {
		s.writeError(ctx, err)
		return
	}
	ctx.SetStatusCode(fasthttp.StatusNoContent)
}

func (s *Server) handleSelect(ctx *fasthttp.RequestCtx, id string) {
	var req boarddto.SelectRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		s.writeError(ctx, fmt.Errorf("%w: %v", errBadRequest, err))
		return
	}
	sq, err := board.ParseSquare(req.Square)
	if err != nil {
		s.writeError(ctx, fmt.Errorf("%w: %q", err, req.Square))
		return
	}
	action, err := s.boards.Select(id, sq)
	if err != nil {
		s.writeError(ctx, err)
		return
	}
	snap, err := s.boards.Get(id)
	if err != nil {
		s.writeError(ctx, err)
		return
	}
	s.writeJSON(ctx, fasthttp.StatusOK, boarddto.SelectResponse{Action: string(action), Board: snap})
}

func (s *Server) handleUndo(ctx *fasthttp.RequestCtx, id string) {
	undone, err := s.boards.Undo(id)
	if err != nil {
		s.writeError(ctx, err)
		return
	}
	snap, err := s.boards.Get(id)
	if err != nil {
		s.writeError(ctx, err)
		return
	}
	s.writeJSON(ctx, fasthttp.StatusOK, boarddto.UndoResponse{Undone: undone, Board: snap})
}
