package engine

import (
	"math"
	"math/rand"

	"chess-ai/board"
	"chess-ai/game"
)

// uctC is the UCT exploration constant.
var uctC = math.Sqrt2

// mctsNode is one arena entry. wins are counted from the point of view of mover,
// the side that played move.
type mctsNode struct {
	move     board.Move
	parent   int32
	children []int32
	visits   float64
	wins     float64
	expanded bool
	mover    board.Color
}

// mctsTree is rebuilt for every decision. st is a clone positioned at the root; each
// iteration pushes down a path and pops back.
type mctsTree struct {
	nodes   []mctsNode
	st      *game.State
	rng     *rand.Rand
	rollout int
}

func newMCTSTree(st *game.State, rng *rand.Rand, rollout int) *mctsTree {
	t := &mctsTree{nodes: make([]mctsNode, 1, 1024), st: st, rng: rng, rollout: rollout}
	t.nodes[0] = mctsNode{move: board.NullMove, parent: -1, mover: st.SideToMove().Other()}
	return t
}

func (t *mctsTree) uct(parent, child *mctsNode) float64 {
	if child.visits == 0 {
		return math.Inf(1)
	}
	return child.wins/child.visits + uctC*math.Sqrt(math.Log(parent.visits)/child.visits)
}

// selectChild returns the first child with the highest UCT value.
func (t *mctsTree) selectChild(n int32) int32 {
	parent := &t.nodes[n]
	best, bestVal := int32(-1), math.Inf(-1)
	for _, c := range parent.children {
		if v := t.uct(parent, &t.nodes[c]); best < 0 || v > bestVal {
			best, bestVal = c, v
		}
	}
	return best
}

func (t *mctsTree) expand(n int32) {
	mover := t.st.SideToMove()
	for _, m := range t.st.LegalMoves() {
		t.nodes = append(t.nodes, mctsNode{move: m, parent: n, mover: mover})
		t.nodes[n].children = append(t.nodes[n].children, int32(len(t.nodes)-1))
	}
	t.nodes[n].expanded = true
}

// iterate runs one select, expand, playout and backpropagate cycle.
func (t *mctsTree) iterate() {
	n, pushed := int32(0), 0
	for t.nodes[n].expanded && len(t.nodes[n].children) > 0 {
		n = t.selectChild(n)
		t.st.Push(t.nodes[n].move)
		pushed++
	}
	if !t.nodes[n].expanded && !t.st.IsOver() {
		t.expand(n)
		if kids := t.nodes[n].children; len(kids) > 0 {
			n = kids[t.rng.Intn(len(kids))]
			t.st.Push(t.nodes[n].move)
			pushed++
		}
	}

	result := t.playout()
	for i := n; i >= 0; i = t.nodes[i].parent {
		node := &t.nodes[i]
		node.visits++
		node.wins += signed(result, node.mover)
	}
	for ; pushed > 0; pushed-- {
		t.st.Pop()
	}
}

// playout plays random legal moves until the game ends or the ply limit is hit and
// returns +1, 0 or -1 for a white win, a draw or a black win.
func (t *mctsTree) playout() float64 {
	plies := 0
	defer func() {
		for ; plies > 0; plies-- {
			t.st.Pop()
		}
	}()
	for plies < t.rollout && !t.st.IsOver() {
		moves := t.st.LegalMoves()
		if len(moves) == 0 {
			break
		}
		t.st.Push(moves[t.rng.Intn(len(moves))])
		plies++
	}
	return t.st.Outcome().Score()
}

// best picks the most visited root child, first found on ties, and its win rate
// from side's point of view.
func (t *mctsTree) best(side board.Color) (board.Move, float64) {
	root := &t.nodes[0]
	best := int32(-1)
	for _, c := range root.children {
		if best < 0 || t.nodes[c].visits > t.nodes[best].visits {
			best = c
		}
	}
	if best < 0 || t.nodes[best].visits == 0 {
		return board.NullMove, 0
	}
	n := &t.nodes[best]
	rate := n.wins / n.visits
	if n.mover != side {
		rate = -rate
	}
	return n.move, rate
}

// mcts runs up to iterations cycles on a clone of st, polling stop before each.
func (w *worker) mcts(st *game.State, iterations, rollout int, rng *rand.Rand) (board.Move, float64, int) {
	t := newMCTSTree(st.Clone(), rng, rollout)
	done := 0
	for ; done < iterations; done++ {
		if w.stop.check() {
			break
		}
		w.nodes.Add(1)
		t.iterate()
	}
	m, rate := t.best(w.side)
	return m, rate, done
}
