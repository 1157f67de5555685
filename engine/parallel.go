package engine

import (
	"math"

	"golang.org/x/sync/errgroup"

	"chess-ai/board"
	"chess-ai/game"
)

type rootChild struct {
	move  board.Move
	score float64
	done  bool
}

// searchChildren runs alpha-beta below each root move in its own goroutine, each on
// its own clone of st. Children left unfinished by a stop keep done == false.
func (w *worker) searchChildren(st *game.State, moves []board.Move, depth, workers int, alpha, beta float64) []rootChild {
	out := make([]rootChild, len(moves))
	var g errgroup.Group
	g.SetLimit(max(workers, 1))
	for i, m := range moves {
		i, m := i, m
		out[i].move = m
		g.Go(func() error {
			if w.stop.check() {
				return nil
			}
			child := st.Clone()
			if !child.Push(m) {
				return nil
			}
			v, ok := w.fork().alphaBeta(child, depth-1, 1, alpha, beta)
			if ok {
				out[i].score, out[i].done = v, true
			}
			return nil
		})
	}
	_ = g.Wait()
	return out
}

// pickChild returns the first child with the best finished score, starting from
// (best, score). complete is false when any child did not finish.
func pickChild(children []rootChild, best board.Move, score float64, maximizing bool) (board.Move, float64, bool) {
	complete := true
	for _, c := range children {
		if !c.done {
			complete = false
			continue
		}
		if best.IsNull() || better(c.score, score, maximizing) {
			best, score = c.move, c.score
		}
	}
	return best, score, complete
}

// parallelRoot searches all root moves concurrently with a full window.
func (w *worker) parallelRoot(st *game.State, depth, workers int) (board.Move, float64, bool) {
	pos := st.Position()
	moves := OrderMoves(pos, pos.LegalMoves())
	maximizing := st.SideToMove() == w.side
	children := w.searchChildren(st, moves, depth, workers, math.Inf(-1), math.Inf(1))
	best, score, complete := pickChild(children, board.NullMove, worst(maximizing), maximizing)
	if complete {
		w.tt.Store(pos.Hash(), depth, best)
	}
	return best, score, complete
}

// pvSplitRoot searches the first move in order sequentially and uses its score as
// the bound for the rest, which run concurrently. A later move replaces the first
// only with a strictly better score.
func (w *worker) pvSplitRoot(st *game.State, depth, workers int, first board.Move) (board.Move, float64, bool) {
	pos := st.Position()
	hash := pos.Hash()
	moves := orderMoves(pos, pos.LegalMoves(), first, nil)
	maximizing := st.SideToMove() == w.side

	pv := moves[0]
	if !st.Push(pv) {
		return board.NullMove, 0, false
	}
	score, ok := w.alphaBeta(st, depth-1, 1, math.Inf(-1), math.Inf(1))
	st.Pop()
	if !ok {
		return board.NullMove, 0, false
	}

	alpha, beta := math.Inf(-1), math.Inf(1)
	if maximizing {
		alpha = score
	} else {
		beta = score
	}
	children := w.searchChildren(st, moves[1:], depth, workers, alpha, beta)
	best, score, complete := pickChild(children, pv, score, maximizing)
	if complete {
		w.tt.Store(hash, depth, best)
	}
	return best, score, complete
}
