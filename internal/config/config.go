package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/park285/ajedrez/internal/board"
)

const (
	minSquareSize = 24
	maxSquareSize = 160
)

type AppConfig struct {
	HTTPAddr string

	SquareSize int
	MaxBoards  int
	IdleTTLSec int

	MessagesDir string

	// StartFEN is empty for the standard initial layout.
	StartFEN   string
	StartBoard board.Board
	StartTurn  board.Color
}

// IdleTTL returns the eviction window for untouched boards.
func (c *AppConfig) IdleTTL() time.Duration {
	return time.Duration(c.IdleTTLSec) * time.Second
}

func Load() (*AppConfig, error) {
	cfg := &AppConfig{
		HTTPAddr:   "127.0.0.1:8080",
		SquareSize: 72,
		MaxBoards:  64,
		IdleTTLSec: 3600,
		StartBoard: board.Initial(),
		StartTurn:  board.White,
	}

	if v := strings.TrimSpace(os.Getenv("HTTP_ADDR")); v != "" {
		cfg.HTTPAddr = v
	}
	if v := strings.TrimSpace(os.Getenv("BOARD_SQUARE_SIZE")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= minSquareSize && n <= maxSquareSize {
			cfg.SquareSize = n
		}
	}
	if v := strings.TrimSpace(os.Getenv("MAX_BOARDS")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.MaxBoards = n
		}
	}
	if v := strings.TrimSpace(os.Getenv("BOARD_IDLE_TTL_SEC")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.IdleTTLSec = n
		}
	}
	cfg.MessagesDir = strings.TrimSpace(os.Getenv("MESSAGES_DIR"))

	if v := strings.TrimSpace(os.Getenv("START_FEN")); v != "" {
		b, turn, err := board.ParseFEN(v)
		if err != nil {
			return nil, fmt.Errorf("START_FEN: %w", err)
		}
		cfg.StartFEN = v
		cfg.StartBoard = b
		cfg.StartTurn = turn
	}

	return cfg, nil
}
