package engine

import (
	"context"
	"io"
	"log/slog"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"chess-ai/board"
	"chess-ai/game"
)

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// Stats describes the last search a Solver ran.
type Stats struct {
	Algorithm Algorithm
	Move      board.Move
	Score     float64
	Depth     int // deepest completed depth, or MCTS iterations run
	Nodes     uint64
	Elapsed   time.Duration
	Stopped   bool
}

// Solver runs the configured algorithm with the configured heuristic. It satisfies
// game.Engine and may be shared by several games; searches never touch the caller's
// State.
type Solver struct {
	cfg    Config
	eval   Heuristic
	logger *slog.Logger

	mu   sync.Mutex
	last Stats
}

var _ game.Engine = (*Solver)(nil)

// NewSolver builds a Solver from cfg. Zero fields take their DefaultConfig values,
// except Algorithm whose zero value is Minimax.
func NewSolver(cfg Config) (*Solver, error) {
	if cfg.Heuristic == "" {
		cfg.Heuristic = DefaultConfig().Heuristic
	}
	h, err := HeuristicByName(cfg.Heuristic)
	if err != nil {
		return nil, err
	}
	return NewSolverWith(cfg, h), nil
}

// NewSolverWith is NewSolver with a caller-built heuristic. cfg.Heuristic only
// labels log lines.
func NewSolverWith(cfg Config, h Heuristic) *Solver {
	def := DefaultConfig()
	if cfg.Workers <= 0 {
		cfg.Workers = def.Workers
	}
	if cfg.RolloutLimit <= 0 {
		cfg.RolloutLimit = def.RolloutLimit
	}
	logger := cfg.Logger
	if logger == nil {
		logger = discardLogger
	}
	return &Solver{
		cfg:    cfg,
		eval:   h,
		logger: logger.With("algorithm", cfg.Algorithm.String(), "heuristic", cfg.Heuristic),
	}
}

func (s *Solver) Config() Config { return s.cfg }
func (s *Solver) Heuristic() Heuristic { return s.eval }

// LastStats returns the statistics of the most recent FindBestMove.
func (s *Solver) LastStats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last
}

func (s *Solver) rng() *rand.Rand {
	seed := s.cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// FindBestMove searches a clone of st. A cancelled ctx is not an error: the best
// result completed so far is returned, or the first legal move in search order when
// nothing completed. It fails with game.ErrSearchExhausted when st has no legal move.
func (s *Solver) FindBestMove(ctx context.Context, st *game.State, budget int, side board.Color) (board.Move, float64, error) {
	if st == nil || st.IsOver() {
		return board.NullMove, 0, game.ErrSearchExhausted
	}
	root := st.Clone()
	if len(root.LegalMoves()) == 0 {
		return board.NullMove, 0, game.ErrSearchExhausted
	}
	if ps, ok := s.eval.(*PhaseSwitcher); ok && !root.InEndgame(side) && ps.Update(root, side) {
		s.logger.Info("switching to endgame heuristic", "fullmove", root.Position().FullmoveNumber())
	}
	budget = max(budget, 1)

	var nodes atomic.Uint64
	w := &worker{
		eval:    s.eval,
		side:    side,
		stop:    newStopFlag(ctx),
		nodes:   &nodes,
		tt:      NewTransTable(0),
		killers: newKillerTable(),
	}
	if s.cfg.CacheEvaluations {
		w.cache = make(map[evalKey]float64, 4096)
	}

	start := time.Now()
	var (
		move  board.Move
		score float64
		depth int
	)
	switch s.cfg.Algorithm {
	case Minimax, AlphaBeta, AlphaBetaParallel:
		var complete bool
		if s.cfg.Algorithm == AlphaBetaParallel {
			move, score, complete = w.parallelRoot(root, budget, s.cfg.Workers)
		} else {
			move, score, complete = w.root(root, budget, board.NullMove, s.cfg.Algorithm == AlphaBeta)
		}
		if complete {
			depth = budget
		}
	case IterativeDeepening:
		move, score, depth = w.iterativeDeepening(root, budget, s.logger)
	case ParallelIterativeDeepening:
		move, score, depth = w.parallelIterativeDeepening(root, budget, s.cfg.Workers, s.logger)
	case MCTS:
		move, score, depth = w.mcts(root, budget, s.cfg.RolloutLimit, s.rng())
	}

	stopped := w.stop.check()
	if move.IsNull() {
		move, score = fallbackMove(root), 0
	}
	stats := Stats{
		Algorithm: s.cfg.Algorithm,
		Move:      move,
		Score:     score,
		Depth:     depth,
		Nodes:     nodes.Load(),
		Elapsed:   time.Since(start),
		Stopped:   stopped,
	}
	s.mu.Lock()
	s.last = stats
	s.mu.Unlock()

	s.logger.Debug("search done",
		"move", move.String(),
		"score", score,
		"depth", depth,
		"nodes", stats.Nodes,
		"elapsed", stats.Elapsed,
		"stopped", stopped)
	return move, score, nil
}
