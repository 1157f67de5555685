package game

import "chess-ai/board"

// Node is one entry of a History: the move played and the state it produced.
type Node struct {
	Move     board.Move
	Snapshot Snapshot
	prev     *Node
	next     *Node
}

func (n *Node) Prev() *Node { return n.prev }
func (n *Node) Next() *Node { return n.next }

// History is a doubly-linked chain of played moves with a cursor. The root node holds
// board.NullMove and the starting snapshot.
type History struct {
	root *Node
	cur  *Node
}

func NewHistory(start Snapshot) *History {
	root := &Node{Move: board.NullMove, Snapshot: start}
	return &History{root: root, cur: root}
}

func (h *History) Root() *Node { return h.root }
func (h *History) Current() *Node { return h.cur }
func (h *History) CanUndo() bool { return h.cur.prev != nil }
func (h *History) CanRedo() bool { return h.cur.next != nil }

// Append links a node after the cursor and moves onto it. Nodes that were ahead of
// the cursor are dropped unless m repeats the next move, in which case the cursor
// just advances and the rest of the chain stays redoable.
func (h *History) Append(m board.Move, snap Snapshot) *Node {
	if next := h.cur.next; next != nil && next.Move.SameAs(m) {
		next.Move, next.Snapshot = m, snap
		h.cur = next
		return next
	}
	n := &Node{Move: m, Snapshot: snap, prev: h.cur}
	h.cur.next = n
	h.cur = n
	return n
}

// Undo steps the cursor back and returns the node it left.
func (h *History) Undo() (*Node, error) {
	if h.cur.prev == nil {
		return nil, ErrUndoUnavailable
	}
	left := h.cur
	h.cur = h.cur.prev
	return left, nil
}

// Redo steps the cursor forward and returns the node it arrived at.
func (h *History) Redo() (*Node, error) {
	if h.cur.next == nil {
		return nil, ErrRedoUnavailable
	}
	h.cur = h.cur.next
	return h.cur, nil
}

// Moves lists the moves from the root up to the cursor.
func (h *History) Moves() []board.Move {
	var out []board.Move
	for n := h.root.next; n != nil; n = n.next {
		out = append(out, n.Move)
		if n == h.cur {
			break
		}
	}
	if h.cur == h.root {
		return nil
	}
	return out
}

// Len counts every node after the root, including any ahead of the cursor.
func (h *History) Len() int {
	n := 0
	for node := h.root.next; node != nil; node = node.next {
		n++
	}
	return n
}
