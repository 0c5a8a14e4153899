package main

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	appcfg "github.com/park285/ajedrez/internal/config"
	"github.com/park285/ajedrez/internal/board"
	"github.com/park285/ajedrez/internal/game"
	"github.com/park285/ajedrez/internal/msgcat"
	"github.com/park285/ajedrez/internal/obslog"
	"github.com/park285/ajedrez/internal/presenter"
	"go.uber.org/zap"
)

func main() {
	cfg, err := appcfg.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}
	// stdout belongs to the board; logs go to the file unless asked otherwise
	if err := obslog.InitFromEnv(obslog.WithConsole(false), obslog.WithFile(true)); err != nil {
		log.Fatalf("logger init error: %v", err)
	}
	defer func() { _ = obslog.Sync() }()

	catalog, err := msgcat.New(cfg.MessagesDir)
	if err != nil {
		log.Fatalf("messages init error: %v", err)
	}

	g := game.New(game.WithLogger(obslog.L()), game.WithPosition(cfg.StartBoard, cfg.StartTurn))
	obslog.L().Info("console_start", zap.String("game_id", g.ID()))

	if err := run(os.Stdin, os.Stdout, g, presenter.NewFormatter(catalog)); err != nil {
		obslog.L().Error("console_exit", zap.Error(err))
		log.Fatalf("console error: %v", err)
	}
}

// run reads one command per line until quit or EOF.
func run(in io.Reader, out io.Writer, g *game.State, f *presenter.Formatter) error {
	p := presenter.NewPresenter(f, func(message string) error {
		_, err := fmt.Fprintln(out, message)
		return err
	})

	if err := p.Board("", g); err != nil {
		return err
	}
	if err := p.Message(f.Help()); err != nil {
		return err
	}

	scanner := bufio.NewScanner(in)
	for {
		if _, err := io.WriteString(out, f.Prompt(g.Turn())); err != nil {
			return err
		}
		if !scanner.Scan() {
			break
		}
		quit, err := handleLine(p, f, g, scanner.Text())
		if err != nil {
			return err
		}
		if quit {
			return p.Message(f.Bye())
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	_, err := fmt.Fprintln(out)
	return err
}

func handleLine(p *presenter.Presenter, f *presenter.Formatter, g *game.State, line string) (bool, error) {
	cmd := strings.ToLower(strings.TrimSpace(line))
	switch cmd {
	case "":
		return false, nil
	case "quit", "exit", "q":
		return true, nil
	case "help", "?":
		return false, p.Message(f.Help())
	case "board":
		return false, p.Board("", g)
	case "history":
		return false, p.History(g)
	case "fen":
		return false, p.Message(board.FEN(g.Board(), g.Turn()))
	case "undo", "u":
		undone := g.Undo()
		if !undone {
			return false, p.Message(f.Undone(false))
		}
		return false, p.Board(f.Undone(true), g)
	}

	sq, err := board.ParseSquare(cmd)
	if err != nil {
		return false, p.Message(f.Unknown(strings.TrimSpace(line)))
	}
	action := g.SelectOrMove(sq)
	feedback := f.Feedback(action, g, sq)
	if action == game.ActionIgnored {
		return false, p.Message(feedback)
	}
	return false, p.Board(feedback, g)
}
