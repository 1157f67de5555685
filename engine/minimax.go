package engine

import (
	"chess-ai/game"
)

// minimax is the plain full-width search. Nodes where the root side moves maximise,
// the others minimise. ok is false once the search was stopped.
func (w *worker) minimax(st *game.State, depth, ply int) (score float64, ok bool) {
	if w.stop.check() {
		return 0, false
	}
	w.nodes.Add(1)
	if depth <= 0 || st.IsOver() {
		return w.leaf(st, ply), true
	}

	maximizing := st.SideToMove() == w.side
	best := worst(maximizing)
	searched := false
	for _, m := range st.Position().PseudoMoves() {
		if !st.Push(m) {
			continue
		}
		v, ok := w.minimax(st, depth-1, ply+1)
		st.Pop()
		if !ok {
			return 0, false
		}
		searched = true
		if better(v, best, maximizing) {
			best = v
		}
	}
	if !searched {
		return w.leaf(st, ply), true
	}
	return best, true
}
