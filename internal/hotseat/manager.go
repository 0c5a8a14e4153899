package hotseat

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/park285/ajedrez/internal/board"
	"github.com/park285/ajedrez/internal/game"
	"github.com/park285/ajedrez/internal/obslog"
	"github.com/park285/ajedrez/internal/presenter"
	"github.com/park285/ajedrez/pkg/boarddto"
	"go.uber.org/zap"
)

var (
	ErrGameNotFound = errors.New("game not found")
	ErrTooManyGames = errors.New("too many open boards")
	ErrNotReady     = errors.New("hotseat manager not initialized")
)

const (
	defaultMaxBoards = 64
	defaultIdleTTL   = time.Hour
)

type Options struct {
	MaxBoards int
	IdleTTL   time.Duration

	// Start position for new boards; nil means the standard layout.
	StartBoard *board.Board
	StartTurn  board.Color

	Logger *zap.Logger
	Now    func() time.Time
}

// Manager keeps the open boards of the process, keyed by game ID. Each board
// has its own lock, so clicks on different boards never contend.
type Manager struct {
	mu     sync.RWMutex
	boards map[string]*entry

	maxBoards int
	idleTTL   time.Duration
	start     board.Board
	startTurn board.Color

	logger *zap.Logger
	now    func() time.Time
}

type entry struct {
	mu      sync.Mutex
	state   *game.State
	touched time.Time
}

func NewManager(opts Options) *Manager {
	m := &Manager{
		boards:    make(map[string]*entry),
		maxBoards: opts.MaxBoards,
		idleTTL:   opts.IdleTTL,
		start:     board.Initial(),
		startTurn: board.White,
		logger:    opts.Logger,
		now:       opts.Now,
	}
	if m.maxBoards <= 0 {
		m.maxBoards = defaultMaxBoards
	}
	if m.idleTTL <= 0 {
		m.idleTTL = defaultIdleTTL
	}
	if opts.StartBoard != nil {
		m.start = *opts.StartBoard
		if opts.StartTurn == board.White || opts.StartTurn == board.Black {
			m.startTurn = opts.StartTurn
		}
	}
	if m.logger == nil {
		m.logger = obslog.L()
	}
	if m.now == nil {
		m.now = time.Now
	}
	return m
}

// Create opens a new board in the configured start position and returns its ID.
func (m *Manager) Create(ctx context.Context) (string, error) {
	if m == nil {
		return "", ErrNotReady
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.boards) >= m.maxBoards {
		m.logger.Warn("hotseat_limit", zap.Int("open", len(m.boards)), zap.Int("max", m.maxBoards))
		return "", fmt.Errorf("%w: limit %d", ErrTooManyGames, m.maxBoards)
	}

	g := game.New(game.WithLogger(m.logger), game.WithPosition(m.start, m.startTurn))
	m.boards[g.ID()] = &entry{state: g, touched: m.now()}
	m.logger.Info("hotseat_create", zap.String("game_id", g.ID()), zap.Int("open", len(m.boards)))
	return g.ID(), nil
}

func (m *Manager) lookup(id string) (*entry, error) {
	if m == nil {
		return nil, ErrNotReady
	}
	id = strings.TrimSpace(id)
	m.mu.RLock()
	e, ok := m.boards[id]
	m.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrGameNotFound, id)
	}
	return e, nil
}

// View runs fn with exclusive access to the board. fn must not retain g.
func (m *Manager) View(id string, fn func(g *game.State) error) error {
	e, err := m.lookup(id)
	if err != nil {
		return err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return fn(e.state)
}

// update is View plus a refresh of the idle timer.
func (m *Manager) update(id string, fn func(g *game.State)) error {
	e, err := m.lookup(id)
	if err != nil {
		return err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	fn(e.state)
	e.touched = m.now()
	return nil
}

// Get returns a snapshot of the board.
func (m *Manager) Get(id string) (*boarddto.Snapshot, error) {
	var snap *boarddto.Snapshot
	err := m.View(id, func(g *game.State) error {
		snap = presenter.ToSnapshot(g)
		return nil
	})
	return snap, err
}

// Select forwards a click to the board.
func (m *Manager) Select(id string, sq board.Square) (game.Action, error) {
	var action game.Action
	err := m.update(id, func(g *game.State) { action = g.SelectOrMove(sq) })
	return action, err
}

// Undo reverts the last move of the board; false means there was nothing to undo.
func (m *Manager) Undo(id string) (bool, error) {
	var undone bool
	err := m.update(id, func(g *game.State) { undone = g.Undo() })
	return undone, err
}

func (m *Manager) Delete(id string) error {
	if m == nil {
		return ErrNotReady
	}
	id = strings.TrimSpace(id)
	m.mu.Lock()
	_, ok := m.boards[id]
	delete(m.boards, id)
	open := len(m.boards)
	m.mu.Unlock()
	if !ok {
		return fmt.Errorf("%w: %s", ErrGameNotFound, id)
	}
	m.logger.Info("hotseat_delete", zap.String("game_id", id), zap.Int("open", open))
	return nil
}

// Len reports how many boards are open.
func (m *Manager) Len() int {
	if m == nil {
		return 0
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.boards)
}

// IDs lists open boards, most recently used first.
func (m *Manager) IDs() []string {
	if m == nil {
		return nil
	}
	type item struct {
		id      string
		touched time.Time
	}
	m.mu.RLock()
	items := make([]item, 0, len(m.boards))
	for id, e := range m.boards {
		e.mu.Lock()
		items = append(items, item{id: id, touched: e.touched})
		e.mu.Unlock()
	}
	m.mu.RUnlock()

	sort.Slice(items, func(i, j int) bool {
		if !items[i].touched.Equal(items[j].touched) {
			return items[i].touched.After(items[j].touched)
		}
		return items[i].id < items[j].id
	})
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.id
	}
	return out
}

// EvictIdle closes boards untouched for longer than the idle TTL and returns how many.
func (m *Manager) EvictIdle(now time.Time) int {
	if m == nil {
		return 0
	}
	cutoff := now.Add(-m.idleTTL)

	m.mu.Lock()
	var evicted []string
	for id, e := range m.boards {
		e.mu.Lock()
		stale := e.touched.Before(cutoff)
		e.mu.Unlock()
		if stale {
			delete(m.boards, id)
			evicted = append(evicted, id)
		}
	}
	open := len(m.boards)
	m.mu.Unlock()

	for _, id := range evicted {
		m.logger.Info("hotseat_evict", zap.String("game_id", id), zap.Int("open", open))
	}
	return len(evicted)
}

// RunEvictor calls EvictIdle every interval until ctx is done.
func (m *Manager) RunEvictor(ctx context.Context, interval time.Duration) error {
	if m == nil {
		return ErrNotReady
	}
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			m.EvictIdle(m.now())
		}
	}
}
