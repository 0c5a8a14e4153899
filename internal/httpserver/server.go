package httpserver

import (
	"context"
	"errors"
	"time"

	"github.com/park285/ajedrez/internal/hotseat"
	"github.com/park285/ajedrez/internal/obslog"
	"github.com/park285/ajedrez/internal/presenter"
	"github.com/park285/ajedrez/internal/render"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
)

var ErrNotConfigured = errors.New("http server not configured")

// Server exposes the boards of a hotseat.Manager over HTTP: an HTML page for
// playing in the browser and a JSON API.
type Server struct {
	boards    *hotseat.Manager
	renderer  render.BoardRenderer
	formatter *presenter.Formatter
	logger    *zap.Logger

	renderTimeout time.Duration
	http          *fasthttp.Server
}

type Option func(*Server)

func WithLogger(l *zap.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

func WithRenderTimeout(d time.Duration) Option {
	return func(s *Server) {
		if d > 0 {
			s.renderTimeout = d
		}
	}
}

func WithReadTimeout(d time.Duration) Option {
	return func(s *Server) { s.http.ReadTimeout = d }
}

func New(boards *hotseat.Manager, renderer render.BoardRenderer, formatter *presenter.Formatter, opts ...Option) *Server {
	if formatter == nil {
		formatter = presenter.NewFormatter(nil)
	}
	s := &Server{
		boards:        boards,
		renderer:      renderer,
		formatter:     formatter,
		logger:        obslog.L(),
		renderTimeout: 5 * time.Second,
		http: &fasthttp.Server{
			Name:               "ajedrez",
			ReadTimeout:        10 * time.Second,
			WriteTimeout:       10 * time.Second,
			IdleTimeout:        time.Minute,
			MaxRequestBodySize: 16 << 10,
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	s.http.Handler = s.Handler()
	return s
}

// ListenAndServe blocks until the listener fails or Shutdown is called.
func (s *Server) ListenAndServe(addr string) error {
	if s == nil || s.boards == nil {
		return ErrNotConfigured
	}
	s.logger.Info("http_listen", zap.String("addr", addr))
	return s.http.ListenAndServe(addr)
}

// Shutdown stops accepting connections and waits for open requests until ctx ends.
func (s *Server) Shutdown(ctx context.Context) error {
	if s == nil {
		return nil
	}
	return s.http.ShutdownWithContext(ctx)
}
