package engine

import (
	"sort"

	"chess-ai/board"
)

// Values used for Most Valuable Victim - Least Valuable Aggressor. The king is never
// a victim; as an attacker it is worth so much that its captures sort last.
var orderValue = [7]int{0, 1, 3, 3, 5, 9, 1000}

/*
	Move ordering keys, compared in this order:
	- the hash or PV move from a previous iteration goes first
	- captures by descending MVV-LVA, quiet moves score zero
	- promotions before other moves
	- moves giving check before quiet ones
	- killer moves from sibling nodes before the rest
	The sort is stable, so generation order breaks the remaining ties.
*/
type orderKey struct {
	first  bool
	mvvLva int
	promo  bool
	check  bool
	killer int
}

func (a orderKey) less(b orderKey) bool {
	if a.first != b.first {
		return a.first
	}
	if a.mvvLva != b.mvvLva {
		return a.mvvLva > b.mvvLva
	}
	if a.promo != b.promo {
		return a.promo
	}
	if a.check != b.check {
		return a.check
	}
	return a.killer > b.killer
}

// MVVLVA scores a capture as 10*victim - attacker. Quiet moves score 0.
func MVVLVA(m board.Move) int {
	if m.Captured == board.NoPiece {
		return 0
	}
	return 10*orderValue[m.Captured.Type()] - orderValue[m.Piece.Type()]
}

// givesCheck plays m on pos and tests the opponent's king. pos is restored.
func givesCheck(pos *board.Position, m board.Move) bool {
	ok, u := pos.MakeMove(m)
	if !ok {
		return false
	}
	defer pos.UnmakeMove(m, u)
	return pos.IsCheck(m.Piece.Color().Other())
}

// OrderMoves sorts moves in place for search and returns them.
func OrderMoves(pos *board.Position, moves []board.Move) []board.Move {
	return orderMoves(pos, moves, board.NullMove, nil)
}

func orderMoves(pos *board.Position, moves []board.Move, first board.Move, killers *[2]board.Move) []board.Move {
	keys := make([]orderKey, len(moves))
	idx := make([]int, len(moves))
	for i, m := range moves {
		idx[i] = i
		k := orderKey{
			first:  !first.IsNull() && m.SameAs(first),
			mvvLva: MVVLVA(m),
			promo:  m.IsPromotion(),
			check:  givesCheck(pos, m),
		}
		if killers != nil && !m.IsCapture() {
			switch {
			case m.SameAs(killers[0]):
				k.killer = 2
			case m.SameAs(killers[1]):
				k.killer = 1
			}
		}
		keys[i] = k
	}
	sort.SliceStable(idx, func(a, b int) bool { return keys[idx[a]].less(keys[idx[b]]) })
	sorted := make([]board.Move, len(moves))
	for i, j := range idx {
		sorted[i] = moves[j]
	}
	copy(moves, sorted)
	return moves
}

// =============================================================================
// KILLER MOVES
// =============================================================================
const maxPly = 64

// killerTable remembers two quiet moves per ply that caused a cutoff. Each search
// worker owns its table.
type killerTable [maxPly + 1][2]board.Move

func newKillerTable() *killerTable {
	k := &killerTable{}
	k.clear()
	return k
}

func (k *killerTable) insert(m board.Move, ply int) {
	if ply > maxPly || m.IsCapture() {
		return
	}
	if !m.SameAs(k[ply][0]) {
		k[ply][1] = k[ply][0]
		k[ply][0] = m
	}
}

func (k *killerTable) at(ply int) *[2]board.Move {
	if k == nil || ply > maxPly {
		return nil
	}
	return &k[ply]
}

func (k *killerTable) clear() {
	for ply := range k {
		k[ply] = [2]board.Move{board.NullMove, board.NullMove}
	}
}
