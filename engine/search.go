package engine

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"runtime"
	"strings"
	"sync/atomic"

	"chess-ai/board"
	"chess-ai/game"
)

// Searcher picks a move for side on st. budget is a depth for the tree searches
// and an iteration count for MCTS. The score is from side's point of view.
type Searcher interface {
	FindBestMove(ctx context.Context, st *game.State, budget int, side board.Color) (board.Move, float64, error)
}

// =============================================================================
// SCORE CONSTANTS
// =============================================================================
const (
	mateScore = 1e8
	drawScore = 0.0
)

// Algorithm selects the search a Solver runs.
type Algorithm int

const (
	Minimax Algorithm = iota
	AlphaBeta
	AlphaBetaParallel
	IterativeDeepening
	ParallelIterativeDeepening
	MCTS
)

var algorithmNames = [...]string{
	Minimax:                    "minimax",
	AlphaBeta:                  "alphabeta",
	AlphaBetaParallel:          "alphabeta-parallel",
	IterativeDeepening:         "iterative",
	ParallelIterativeDeepening: "iterative-parallel",
	MCTS:                       "mcts",
}

func (a Algorithm) String() string {
	if a < 0 || int(a) >= len(algorithmNames) {
		return fmt.Sprintf("Algorithm(%d)", int(a))
	}
	return algorithmNames[a]
}

// ParseAlgorithm maps a name such as "alphabeta" to its Algorithm.
func ParseAlgorithm(name string) (Algorithm, error) {
	for a, n := range algorithmNames {
		if strings.EqualFold(n, name) {
			return Algorithm(a), nil
		}
	}
	return 0, fmt.Errorf("unknown algorithm %q (have %s)", name, strings.Join(AlgorithmNames(), ", "))
}

func AlgorithmNames() []string { return algorithmNames[:] }

// Config describes a Solver.
type Config struct {
	Algorithm Algorithm
	Heuristic string

	// Workers bounds the goroutines of the parallel searches.
	Workers int

	// RolloutLimit bounds the plies of one MCTS playout. A playout that hits the
	// limit scores as a draw.
	RolloutLimit int

	// Seed for the MCTS random source. Zero seeds from the clock.
	Seed int64

	// CacheEvaluations memoises heuristic scores per position within one search.
	CacheEvaluations bool

	Logger *slog.Logger
}

func DefaultConfig() Config {
	return Config{
		Algorithm:        AlphaBeta,
		Heuristic:        "standard",
		Workers:          runtime.NumCPU(),
		RolloutLimit:     200,
		CacheEvaluations: true,
	}
}

// stopFlag is raised once ctx is done and stays raised. Searches poll it at each
// node.
type stopFlag struct {
	ctx     context.Context
	stopped atomic.Bool
}

func newStopFlag(ctx context.Context) *stopFlag { return &stopFlag{ctx: ctx} }

func (s *stopFlag) check() bool {
	if s.stopped.Load() {
		return true
	}
	if s.ctx.Err() != nil {
		s.stopped.Store(true)
		return true
	}
	return false
}

type evalKey struct {
	hash uint64
	side board.Color
}

// worker carries the per-goroutine search state. The heuristic, the stop flag, the
// node counter and the transposition table are shared. The cache and the killer
// table are not.
type worker struct {
	eval    Heuristic
	side    board.Color
	stop    *stopFlag
	nodes   *atomic.Uint64
	cache   map[evalKey]float64
	tt      *TransTable
	killers *killerTable
}

func (w *worker) fork() *worker {
	c := *w
	if w.cache != nil {
		c.cache = make(map[evalKey]float64, 1024)
	}
	c.killers = newKillerTable()
	return &c
}

// leaf scores st without searching further. Finished games score by result, faster
// wins first.
func (w *worker) leaf(st *game.State, ply int) float64 {
	if o := st.Outcome(); o.IsOver() {
		return terminalScore(o, w.side, ply)
	}
	return w.evaluate(st)
}

func (w *worker) evaluate(st *game.State) float64 {
	if w.cache == nil {
		return w.eval.Evaluate(st, w.side)
	}
	key := evalKey{st.Position().Hash(), w.side}
	if v, ok := w.cache[key]; ok {
		return v
	}
	v := w.eval.Evaluate(st, w.side)
	w.cache[key] = v
	return v
}

func terminalScore(o game.Outcome, side board.Color, ply int) float64 {
	switch {
	case !o.Decisive():
		return drawScore
	case o.Winner == side:
		return mateScore - float64(ply)
	default:
		return -mateScore + float64(ply)
	}
}

func isMateScore(v float64) bool { return math.Abs(v) >= mateScore-maxPly }

// better reports whether v improves on best for the player at this node.
func better(v, best float64, maximizing bool) bool {
	if maximizing {
		return v > best
	}
	return v < best
}

func worst(maximizing bool) float64 {
	if maximizing {
		return math.Inf(-1)
	}
	return math.Inf(1)
}

// root searches every legal move of st to depth and returns the best one. When the
// search is stopped it returns the best move among the children that finished, with
// complete set to false.
func (w *worker) root(st *game.State, depth int, first board.Move, pruned bool) (best board.Move, score float64, complete bool) {
	pos := st.Position()
	hash := pos.Hash()
	maximizing := st.SideToMove() == w.side
	alpha, beta := math.Inf(-1), math.Inf(1)
	best, score = board.NullMove, worst(maximizing)

	for _, m := range orderMoves(pos, pos.PseudoMoves(), first, nil) {
		if !st.Push(m) {
			continue
		}
		var v float64
		var ok bool
		if pruned {
			v, ok = w.alphaBeta(st, depth-1, 1, alpha, beta)
		} else {
			v, ok = w.minimax(st, depth-1, 1)
		}
		st.Pop()
		if !ok {
			return best, score, false
		}
		if best.IsNull() || better(v, score, maximizing) {
			best, score = m, v
		}
		if maximizing {
			alpha = max(alpha, score)
		} else {
			beta = min(beta, score)
		}
	}
	w.tt.Store(hash, depth, best)
	return best, score, true
}

// fallbackMove is the first legal move in search order, or NullMove.
func fallbackMove(st *game.State) board.Move {
	moves := st.LegalMoves()
	if len(moves) == 0 {
		return board.NullMove
	}
	return OrderMoves(st.Position(), moves)[0]
}
