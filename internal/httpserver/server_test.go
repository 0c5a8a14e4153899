package httpserver

import (
	"bytes"
	"encoding/json"
	"image/png"
	"strings"
	"testing"

	"github.com/park285/ajedrez/internal/hotseat"
	"github.com/park285/ajedrez/internal/presenter"
	"github.com/park285/ajedrez/internal/render"
	"github.com/park285/ajedrez/pkg/boarddto"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
)

func newTestServer(t *testing.T, maxBoards int) *Server {
	t.Helper()
	renderer, err := render.NewSVGBoardRenderer(render.MinSquareSize)
	if err != nil {
		t.Fatalf("NewSVGBoardRenderer: %v", err)
	}
	boards := hotseat.NewManager(hotseat.Options{MaxBoards: maxBoards, Logger: zap.NewNop()})
	return New(boards, renderer, presenter.NewFormatter(nil), WithLogger(zap.NewNop()))
}

func do(t *testing.T, s *Server, method, uri, body string) *fasthttp.RequestCtx {
	t.Helper()
	var req fasthttp.Request
	req.Header.SetMethod(method)
	req.SetRequestURI(uri)
	if body != "" {
		req.Header.SetContentType("application/json")
		req.SetBodyString(body)
	}
	ctx := &fasthttp.RequestCtx{}
	ctx.Init(&req, nil, nil)
	s.Handler()(ctx)
	return ctx
}

func decodeJSON(t *testing.T, ctx *fasthttp.RequestCtx, v any) {
	t.Helper()
	if err := json.Unmarshal(ctx.Response.Body(), v); err != nil {
		t.Fatalf("decode %q: %v", ctx.Response.Body(), err)
	}
}

func createGame(t *testing.T, s *Server) boarddto.Snapshot {
	t.Helper()
	ctx := do(t, s, fasthttp.MethodPost, "/api/games", "")
	if ctx.Response.StatusCode() != fasthttp.StatusCreated {
		t.Fatalf("create status = %d", ctx.Response.StatusCode())
	}
	var snap boarddto.Snapshot
	decodeJSON(t, ctx, &snap)
	return snap
}

func TestHealthz(t *testing.T) {
	s := newTestServer(t, 4)
	ctx := do(t, s, fasthttp.MethodGet, "/healthz", "")
	if ctx.Response.StatusCode() != fasthttp.StatusOK || string(ctx.Response.Body()) != "ok" {
		t.Fatalf("healthz: %d %q", ctx.Response.StatusCode(), ctx.Response.Body())
	}
}

func TestAPIPlayAndUndo(t *testing.T) {
	s := newTestServer(t, 4)
	snap := createGame(t, s)
	if snap.ID == "" || snap.Turn != "white" || snap.Grid[7][4] != "♔" {
		t.Fatalf("unexpected new board: %+v", snap)
	}
	base := "/api/games/" + snap.ID

	ctx := do(t, s, fasthttp.MethodPost, base+"/select", `{"square":"e2"}`)
	var sel boarddto.SelectResponse
	decodeJSON(t, ctx, &sel)
	if sel.Action != "selected" || len(sel.Board.LegalMoves) != 2 {
		t.Fatalf("select e2: %+v", sel)
	}

	ctx = do(t, s, fasthttp.MethodPost, base+"/select", `{"square":"E4"}`)
	decodeJSON(t, ctx, &sel)
	if sel.Action != "moved" || sel.Board.Turn != "black" || sel.Board.LastMove == nil {
		t.Fatalf("move e4: %+v", sel)
	}

	ctx = do(t, s, fasthttp.MethodPost, base+"/undo", "")
	var undo boarddto.UndoResponse
	decodeJSON(t, ctx, &undo)
	if !undo.Undone || undo.Board.Turn != "white" || len(undo.Board.Moves) != 0 {
		t.Fatalf("undo: %+v", undo)
	}

	ctx = do(t, s, fasthttp.MethodDelete, base, "")
	if ctx.Response.StatusCode() != fasthttp.StatusNoContent {
		t.Fatalf("delete status = %d", ctx.Response.StatusCode())
	}
	ctx = do(t, s, fasthttp.MethodGet, base, "")
	if ctx.Response.StatusCode() != fasthttp.StatusNotFound {
		t.Fatalf("get after delete status = %d", ctx.Response.StatusCode())
	}
}

func TestAPIErrors(t *testing.T) {
	s := newTestServer(t, 1)
	snap := createGame(t, s)
	base := "/api/games/" + snap.ID

	cases := []struct {
		name   string
		method string
		uri    string
		body   string
		status int
	}{
		{"bad json", fasthttp.MethodPost, base + "/select", `{`, fasthttp.StatusBadRequest},
		{"bad square", fasthttp.MethodPost, base + "/select", `{"square":"z9"}`, fasthttp.StatusBadRequest},
		{"unknown game", fasthttp.MethodPost, "/api/games/nope/undo", "", fasthttp.StatusNotFound},
		{"limit", fasthttp.MethodPost, "/api/games", "", fasthttp.StatusTooManyRequests},
		{"wrong method", fasthttp.MethodGet, base + "/select", "", fasthttp.StatusMethodNotAllowed},
		{"unknown route", fasthttp.MethodGet, "/nowhere", "", fasthttp.StatusNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ctx := do(t, s, tc.method, tc.uri, tc.body)
			if ctx.Response.StatusCode() != tc.status {
				t.Fatalf("status = %d, want %d (body %q)", ctx.Response.StatusCode(), tc.status, ctx.Response.Body())
			}
			var e boarddto.Error
			decodeJSON(t, ctx, &e)
			if e.Message == "" || e.Code == "" {
				t.Fatalf("missing error body: %+v", e)
			}
		})
	}
}

func TestPageFlow(t *testing.T) {
	s := newTestServer(t, 4)

	ctx := do(t, s, fasthttp.MethodGet, "/", "")
	if ctx.Response.StatusCode() != fasthttp.StatusSeeOther {
		t.Fatalf("index status = %d", ctx.Response.StatusCode())
	}
	location := string(ctx.Response.Header.Peek("Location"))
	if !strings.HasPrefix(location, "/games/") {
		t.Fatalf("Location = %q", location)
	}

	ctx = do(t, s, fasthttp.MethodGet, location+"/click/e2", "")
	if ctx.Response.StatusCode() != fasthttp.StatusSeeOther {
		t.Fatalf("click status = %d", ctx.Response.StatusCode())
	}
	do(t, s, fasthttp.MethodGet, location+"/click/e4", "")

	ctx = do(t, s, fasthttp.MethodGet, location, "")
	if ctx.Response.StatusCode() != fasthttp.StatusOK {
		t.Fatalf("page status = %d", ctx.Response.StatusCode())
	}
	html := string(ctx.Response.Body())
	for _, want := range []string{"Turno: Negras", "Historial de jugadas", "Jugada 1: ♙ e2 → e4", "Deshacer jugada", location + "/undo"} {
		if !strings.Contains(html, want) {
			t.Fatalf("page missing %q", want)
		}
	}

	ctx = do(t, s, fasthttp.MethodGet, location+"/click/x0", "")
	if ctx.Response.StatusCode() != fasthttp.StatusBadRequest {
		t.Fatalf("bad click status = %d", ctx.Response.StatusCode())
	}
}

func TestBoardPNG(t *testing.T) {
	s := newTestServer(t, 4)
	snap := createGame(t, s)
	do(t, s, fasthttp.MethodPost, "/api/games/"+snap.ID+"/select", `{"square":"g1"}`)

	ctx := do(t, s, fasthttp.MethodGet, "/games/"+snap.ID+"/board.png", "")
	if ctx.Response.StatusCode() != fasthttp.StatusOK {
		t.Fatalf("png status = %d body %q", ctx.Response.StatusCode(), ctx.Response.Body())
	}
	if ct := string(ctx.Response.Header.ContentType()); ct != "image/png" {
		t.Fatalf("content type = %q", ct)
	}
	if _, err := png.Decode(bytes.NewReader(ctx.Response.Body())); err != nil {
		t.Fatalf("decode png: %v", err)
	}
}
