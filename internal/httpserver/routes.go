package httpserver

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/park285/ajedrez/internal/board"
	"github.com/park285/ajedrez/internal/hotseat"
	"github.com/park285/ajedrez/pkg/boarddto"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
)

var (
	errBadRequest       = errors.New("bad request")
	errMethodNotAllowed = errors.New("method not allowed")
	errRouteNotFound    = errors.New("not found")
)

// Handler routes requests by path segment:
//
//	GET    /healthz
//	GET    /                             new board, redirect to its page
//	GET    /games/{id}                   HTML board
//	GET    /games/{id}/click/{square}    click, redirect back
//	GET    /games/{id}/undo              undo, redirect back
//	GET    /games/{id}/board.png         rendered position
//	GET    /api/games                    open board IDs
//	POST   /api/games                    new board
//	GET    /api/games/{id}               snapshot
//	DELETE /api/games/{id}               close board
//	POST   /api/games/{id}/select        {"square":"e2"}
//	POST   /api/games/{id}/undo
func (s *Server) Handler() fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		method := string(ctx.Method())
		parts := splitPath(string(ctx.Path()))

		switch {
		case len(parts) == 0:
			s.only(ctx, method, fasthttp.MethodGet, s.handleIndex)
		case len(parts) == 1 && parts[0] == "healthz":
			s.only(ctx, method, fasthttp.MethodGet, func(ctx *fasthttp.RequestCtx) {
				ctx.SetContentType("text/plain; charset=utf-8")
				ctx.SetBodyString("ok")
			})
		case parts[0] == "games":
			s.routePage(ctx, method, parts[1:])
		case parts[0] == "api" && len(parts) >= 2 && parts[1] == "games":
			s.routeAPI(ctx, method, parts[2:])
		default:
			s.writeError(ctx, errRouteNotFound)
		}
	}
}

func (s *Server) routePage(ctx *fasthttp.RequestCtx, method string, rest []string) {
	if len(rest) == 0 {
		s.writeError(ctx, errRouteNotFound)
		return
	}
	id := rest[0]
	switch {
	case len(rest) == 1:
		s.only(ctx, method, fasthttp.MethodGet, func(ctx *fasthttp.RequestCtx) { s.handlePage(ctx, id) })
	case len(rest) == 2 && rest[1] == "undo":
		s.only(ctx, method, fasthttp.MethodGet, func(ctx *fasthttp.RequestCtx) { s.handlePageUndo(ctx, id) })
	case len(rest) == 2 && rest[1] == "board.png":
		s.only(ctx, method, fasthttp.MethodGet, func(ctx *fasthttp.RequestCtx) { s.handleBoardPNG(ctx, id) })
	case len(rest) == 3 && rest[1] == "click":
		s.only(ctx, method, fasthttp.MethodGet, func(ctx *fasthttp.RequestCtx) { s.handlePageClick(ctx, id, rest[2]) })
	default:
		s.writeError(ctx, errRouteNotFound)
	}
}

func (s *Server) routeAPI(ctx *fasthttp.RequestCtx, method string, rest []string) {
	switch len(rest) {
	case 0:
		switch method {
		case fasthttp.MethodGet:
			s.handleList(ctx)
		case fasthttp.MethodPost:
			s.handleCreate(ctx)
		default:
			s.writeError(ctx, errMethodNotAllowed)
		}
	case 1:
		switch method {
		case fasthttp.MethodGet:
			s.handleGet(ctx, rest[0])
		case fasthttp.MethodDelete:
			s.handleDelete(ctx, rest[0])
		default:
			s.writeError(ctx, errMethodNotAllowed)
		}
	case 2:
		switch rest[1] {
		case "select":
			s.only(ctx, method, fasthttp.MethodPost, func(ctx *fasthttp.RequestCtx) { s.handleSelect(ctx, rest[0]) })
		case "undo":
			s.only(ctx, method, fasthttp.MethodPost, func(ctx *fasthttp.RequestCtx) { s.handleUndo(ctx, rest[0]) })
		default:
			s.writeError(ctx, errRouteNotFound)
		}
	default:
		s.writeError(ctx, errRouteNotFound)
	}
}

func (s *Server) only(ctx *fasthttp.RequestCtx, method, want string, h fasthttp.RequestHandler) {
	if method != want {
		ctx.Response.Header.Set("Allow", want)
		s.writeError(ctx, errMethodNotAllowed)
		return
	}
	h(ctx)
}

func splitPath(p string) []string {
	p = strings.Trim(p, "/")
	if p == "" {
		return nil
	}
	return strings.Split(p, "/")
}

func redirect(ctx *fasthttp.RequestCtx, location string) {
	ctx.Response.Header.Set("Location", location)
	ctx.SetStatusCode(fasthttp.StatusSeeOther)
}

func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, hotseat.ErrGameNotFound), errors.Is(err, errRouteNotFound):
		return fasthttp.StatusNotFound, "not_found"
	case errors.Is(err, hotseat.ErrTooManyGames):
		return fasthttp.StatusTooManyRequests, "too_many_boards"
	case errors.Is(err, board.ErrInvalidSquare), errors.Is(err, errBadRequest):
		return fasthttp.StatusBadRequest, "bad_request"
	case errors.Is(err, errMethodNotAllowed):
		return fasthttp.StatusMethodNotAllowed, "method_not_allowed"
	default:
		return fasthttp.StatusInternalServerError, "internal"
	}
}

func (s *Server) writeError(ctx *fasthttp.RequestCtx, err error) {
	status, code := statusFor(err)
	msg := err.Error()
	if status >= fasthttp.StatusInternalServerError {
		s.logger.Error("http_request_error",
			zap.String("method", string(ctx.Method())),
			zap.String("path", string(ctx.Path())),
			zap.Error(err),
		)
		msg = "internal error"
	} else {
		s.logger.Debug("http_request_rejected",
			zap.String("method", string(ctx.Method())),
			zap.String("path", string(ctx.Path())),
			zap.Int("status", status),
			zap.Error(err),
		)
	}
	s.writeJSON(ctx, status, boarddto.Error{Code: code, Message: msg})
}

func (s *Server) writeJSON(ctx *fasthttp.RequestCtx, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		s.logger.Error("http_encode_error", zap.Error(err))
		ctx.SetStatusCode(fasthttp.StatusInternalServerError)
		return
	}
	ctx.SetContentType("application/json; charset=utf-8")
	ctx.SetStatusCode(status)
	ctx.SetBody(body)
}
