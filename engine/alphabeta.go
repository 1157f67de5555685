package engine

import (
	"chess-ai/board"
	"chess-ai/game"
)

// alphaBeta is minimax with pruning. It returns the same value as minimax for the
// root window (-Inf, +Inf); inside a narrower window a fail-low or fail-high value
// is only a bound. Moves are ordered with the transposition move first and the
// killers of this ply after the tactical moves.
func (w *worker) alphaBeta(st *game.State, depth, ply int, alpha, beta float64) (float64, bool) {
	if w.stop.check() {
		return 0, false
	}
	w.nodes.Add(1)
	if depth <= 0 || st.IsOver() {
		return w.leaf(st, ply), true
	}

	pos := st.Position()
	hash := pos.Hash()
	moves := orderMoves(pos, pos.PseudoMoves(), w.tt.Move(hash), w.killers.at(ply))

	maximizing := st.SideToMove() == w.side
	best := worst(maximizing)
	bestMove := board.NullMove
	for _, m := range moves {
		if !st.Push(m) {
			continue
		}
		v, ok := w.alphaBeta(st, depth-1, ply+1, alpha, beta)
		st.Pop()
		if !ok {
			return 0, false
		}
		if bestMove.IsNull() || better(v, best, maximizing) {
			best, bestMove = v, m
		}
		if maximizing {
			alpha = max(alpha, best)
		} else {
			beta = min(beta, best)
		}
		if alpha >= beta {
			if w.killers != nil {
				w.killers.insert(m, ply)
			}
			break
		}
	}
	if bestMove.IsNull() {
		return w.leaf(st, ply), true
	}
	w.tt.Store(hash, depth, bestMove)
	return best, true
}
