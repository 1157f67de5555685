package engine

import (
	"log/slog"
	"time"

	"chess-ai/board"
	"chess-ai/game"
)

// iterate deepens from 1 to maxDepth, searching the previous iteration's best move
// first. Only fully searched depths count; a stopped iteration is dropped. It stops
// early once a forced mate is found.
func (w *worker) iterate(st *game.State, maxDepth int, logger *slog.Logger, searchDepth func(depth int, first board.Move) (board.Move, float64, bool)) (board.Move, float64, int) {
	best, score, reached := board.NullMove, 0.0, 0
	start := time.Now()
	for d := 1; d <= maxDepth; d++ {
		m, v, complete := searchDepth(d, best)
		if !complete || m.IsNull() {
			break
		}
		best, score, reached = m, v, d
		logger.Debug("depth complete",
			"depth", d,
			"move", m.String(),
			"score", v,
			"nodes", w.nodes.Load(),
			"elapsed", time.Since(start))
		if isMateScore(v) {
			break
		}
	}
	return best, score, reached
}

func (w *worker) iterativeDeepening(st *game.State, maxDepth int, logger *slog.Logger) (board.Move, float64, int) {
	return w.iterate(st, maxDepth, logger, func(d int, first board.Move) (board.Move, float64, bool) {
		return w.root(st, d, first, true)
	})
}

func (w *worker) parallelIterativeDeepening(st *game.State, maxDepth, workers int, logger *slog.Logger) (board.Move, float64, int) {
	return w.iterate(st, maxDepth, logger, func(d int, first board.Move) (board.Move, float64, bool) {
		return w.pvSplitRoot(st, d, workers, first)
	})
}
