package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	appcfg "github.com/park285/ajedrez/internal/config"
	"github.com/park285/ajedrez/internal/hotseat"
	"github.com/park285/ajedrez/internal/httpserver"
	"github.com/park285/ajedrez/internal/msgcat"
	"github.com/park285/ajedrez/internal/obslog"
	"github.com/park285/ajedrez/internal/presenter"
	"github.com/park285/ajedrez/internal/render"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	evictInterval   = time.Minute
	shutdownTimeout = 10 * time.Second
)

func main() {
	cfg, err := appcfg.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}
	if err := obslog.InitFromEnv(); err != nil {
		log.Fatalf("logger init error: %v", err)
	}
	defer func() { _ = obslog.Sync() }()
	logger := obslog.L()

	catalog, err := msgcat.New(cfg.MessagesDir)
	if err != nil {
		log.Fatalf("messages init error: %v", err)
	}
	renderer, err := render.NewSVGBoardRenderer(cfg.SquareSize)
	if err != nil {
		log.Fatalf("renderer init error: %v", err)
	}

	start := cfg.StartBoard
	boards := hotseat.NewManager(hotseat.Options{
		MaxBoards:  cfg.MaxBoards,
		IdleTTL:    cfg.IdleTTL(),
		StartBoard: &start,
		StartTurn:  cfg.StartTurn,
		Logger:     logger,
	})
	srv := httpserver.New(boards, renderer, presenter.NewFormatter(catalog), httpserver.WithLogger(logger))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.ListenAndServe(cfg.HTTPAddr)
	})
	g.Go(func() error {
		return boards.RunEvictor(gctx, evictInterval)
	})
	g.Go(func() error {
		<-gctx.Done()
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(sctx)
	})

	logger.Info("ajedrez_start",
		zap.String("addr", cfg.HTTPAddr),
		zap.Int("square_size", cfg.SquareSize),
		zap.Int("max_boards", cfg.MaxBoards),
		zap.Bool("custom_start", cfg.StartFEN != ""),
	)
	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("ajedrez_exit", zap.Error(err))
		_ = obslog.Sync()
		os.Exit(1)
	}
	logger.Info("ajedrez_stop", zap.Int("open_boards", boards.Len()))
}
