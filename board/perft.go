package board

// Perft counts the leaf nodes of the legal move tree to the given depth.
func Perft(p *Position, depth int) uint64 {
	if depth <= 0 {
		return 1
	}
	pos := *p
	buffers := make([][]Move, depth+1)
	for i := range buffers {
		buffers[i] = make([]Move, 0, 64)
	}
	return perftRec(&pos, depth, buffers)
}

func perftRec(p *Position, depth int, buffers [][]Move) uint64 {
	moves := p.PseudoMovesFor(p.side, buffers[depth][:0])
	var nodes uint64
	for _, m := range moves {
		ok, u := p.MakeMove(m)
		if !ok {
			continue
		}
		if depth == 1 {
			nodes++
		} else {
			nodes += perftRec(p, depth-1, buffers)
		}
		p.UnmakeMove(m, u)
	}
	return nodes
}

// PerftDivide returns the perft count below each root move.
func PerftDivide(p *Position, depth int) map[Move]uint64 {
	out := make(map[Move]uint64)
	if depth <= 0 {
		return out
	}
	pos := *p
	for _, m := range pos.LegalMoves() {
		_, u := pos.MakeMove(m)
		out[m] = Perft(&pos, depth-1)
		pos.UnmakeMove(m, u)
	}
	return out
}
