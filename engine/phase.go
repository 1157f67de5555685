package engine

import (
	"chess-ai/board"
	"chess-ai/game"
)

// PhaseSwitcher evaluates with the Standard mix until the game reaches an endgame for
// the evaluating side, then with the Endgame mix. The phase lives on the game.State,
// so one switcher serves any number of games and a restart starts over in Standard.
type PhaseSwitcher struct {
	standard Heuristic
	endgame  Heuristic
}

func NewPhaseSwitcher() *PhaseSwitcher {
	return &PhaseSwitcher{standard: Standard(), endgame: Endgame()}
}

// Update checks the endgame predicate for side on st, latching the phase on st, and
// reports whether st is now in the endgame.
func (ps *PhaseSwitcher) Update(st *game.State, side board.Color) bool {
	return st.UpdatePhase(side)
}

func (ps *PhaseSwitcher) Evaluate(st *game.State, side board.Color) float64 {
	if st.InEndgame(side) {
		return ps.endgame.Evaluate(st, side)
	}
	return ps.standard.Evaluate(st, side)
}
