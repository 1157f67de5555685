package game

import (
	"golang.org/x/exp/maps"

	"chess-ai/board"
)

// State is the rules-level view of a game: the position, how often each placement
// has occurred, the outcome and any pending draw offers. Search works on clones
// through Push and Pop; Game commits through the same advance path.
type State struct {
	pos         board.Position
	repetitions map[uint64]int
	outcome     Outcome
	drawOffers  [2]bool
	// endgame[c] latches once the endgame predicate held for c. Undo keeps it;
	// a restart builds a fresh State.
	endgame [2]bool
	stack   []frame
}

type frame struct {
	move    board.Move
	undo    board.Undo
	outcome Outcome
}

// Snapshot is the part of a State that a history node restores verbatim.
type Snapshot struct {
	Position   board.Position
	Outcome    Outcome
	DrawOffers [2]bool
}

// NewState starts a State from pos, counting pos once for repetition.
func NewState(pos *board.Position) *State {
	s := &State{pos: *pos, repetitions: make(map[uint64]int, 64)}
	s.repetitions[pos.SimpleHash()] = 1
	return s
}

// Position exposes the live position. Callers must treat it as read-only.
func (s *State) Position() *board.Position { return &s.pos }

func (s *State) SideToMove() board.Color { return s.pos.SideToMove() }
func (s *State) Outcome() Outcome { return s.outcome }
func (s *State) IsOver() bool { return s.outcome.IsOver() }
func (s *State) DrawOffered(c board.Color) bool { return s.drawOffers[c] }

// Repetitions returns how many times the placement hash has occurred.
func (s *State) Repetitions(simpleHash uint64) int { return s.repetitions[simpleHash] }

// RepetitionTable returns a copy of the repetition multiset.
func (s *State) RepetitionTable() map[uint64]int { return maps.Clone(s.repetitions) }

// Depth is the number of moves pushed on this State and not yet popped.
func (s *State) Depth() int { return len(s.stack) }

// Clone returns an independent deep copy with an empty push stack.
func (s *State) Clone() *State {
	return &State{
		pos:         s.pos,
		repetitions: maps.Clone(s.repetitions),
		outcome:     s.outcome,
		drawOffers:  s.drawOffers,
		endgame:     s.endgame,
	}
}

// InEndgame reports whether the endgame phase has been reached for c in this game.
func (s *State) InEndgame(c board.Color) bool { return s.endgame[c] }

// UpdatePhase latches the endgame phase for c once the position satisfies the
// endgame predicate, and reports the phase.
func (s *State) UpdatePhase(c board.Color) bool {
	if !s.endgame[c] && s.pos.IsEndGamePhase(c) {
		s.endgame[c] = true
	}
	return s.endgame[c]
}

// LegalMoves returns no moves once the game is over.
func (s *State) LegalMoves() []board.Move {
	if s.outcome.IsOver() {
		return nil
	}
	return s.pos.LegalMoves()
}

func (s *State) snapshot() Snapshot {
	return Snapshot{Position: s.pos, Outcome: s.outcome, DrawOffers: s.drawOffers}
}

func (s *State) restore(snap Snapshot) {
	s.pos = snap.Position
	s.outcome = snap.Outcome
	s.drawOffers = snap.DrawOffers
}

// advance is the single mutation path for moves: play m, count the resulting
// placement, re-evaluate the outcome. It reports false and leaves the State untouched
// when m would leave the mover in check.
func (s *State) advance(m board.Move) (board.Undo, bool) {
	ok, u := s.pos.MakeMove(m)
	if !ok {
		return u, false
	}
	s.repetitions[s.pos.SimpleHash()]++
	s.outcome = s.evaluate()
	return u, true
}

// Push plays m for exploration; Pop takes it back. Push reports false for moves that
// leave the mover in check, in which case nothing is pushed.
func (s *State) Push(m board.Move) bool {
	prev := s.outcome
	u, ok := s.advance(m)
	if !ok {
		return false
	}
	s.stack = append(s.stack, frame{move: m, undo: u, outcome: prev})
	return true
}

// Pop reverts the most recent Push.
func (s *State) Pop() {
	f := s.stack[len(s.stack)-1]
	s.stack = s.stack[:len(s.stack)-1]
	s.forget(s.pos.SimpleHash())
	s.pos.UnmakeMove(f.move, f.undo)
	s.outcome = f.outcome
}

func (s *State) forget(h uint64) {
	if s.repetitions[h] <= 1 {
		delete(s.repetitions, h)
		return
	}
	s.repetitions[h]--
}

// evaluate runs the terminal checks in their fixed order: fifty-move rule, checkmate,
// stalemate, insufficient material, threefold repetition.
func (s *State) evaluate() Outcome {
	p := &s.pos
	side := p.SideToMove()
	switch {
	case p.HalfmoveClock() >= 100:
		return Outcome{Status: Draw, Reason: DrawFiftyMove}
	case p.IsCheckMate(side):
		return Outcome{Status: Checkmate, Winner: side.Other()}
	case p.IsStaleMate(side, side):
		return Outcome{Status: Stalemate}
	case p.IsDrawByInsufficientMaterial():
		return Outcome{Status: Draw, Reason: DrawMaterial}
	case s.repetitions[p.SimpleHash()] >= 3:
		return Outcome{Status: Draw, Reason: DrawRepetition}
	}
	return Outcome{}
}

func (s *State) offerDraw(c board.Color) {
	s.drawOffers[c] = true
	if s.drawOffers[board.White] && s.drawOffers[board.Black] {
		s.outcome = Outcome{Status: Draw, Reason: DrawAgreement}
	}
}

func (s *State) cancelDraw(c board.Color) { s.drawOffers[c] = false }

func (s *State) resign(c board.Color) {
	s.outcome = Outcome{Status: Resigned, Winner: c.Other()}
}

// timeOut flags c. The opponent wins only with enough material to mate.
func (s *State) timeOut(c board.Color) {
	if s.pos.HasEnoughMaterialToMate(c.Other()) {
		s.outcome = Outcome{Status: TimeLoss, Winner: c.Other()}
		return
	}
	s.outcome = Outcome{Status: Draw, Reason: DrawTimeout}
}
