package engine

import (
	"math/bits"

	"chess-ai/board"
	"chess-ai/game"
)

const (
	kingSafetyCap   = 100.0
	kingActivityCap = 100.0
	oppositionCap   = 10.0
)

// neighbours[sq] holds the up to eight squares around sq.
var neighbours [64]uint64

func init() {
	for sq := 0; sq < 64; sq++ {
		f, r := sq&7, sq>>3
		for df := -1; df <= 1; df++ {
			for dr := -1; dr <= 1; dr++ {
				if df == 0 && dr == 0 {
					continue
				}
				nf, nr := f+df, r+dr
				if nf >= 0 && nf < 8 && nr >= 0 && nr < 8 {
					neighbours[sq] |= 1 << uint(nr*8+nf)
				}
			}
		}
	}
}

// inCentreBox covers files c-f and ranks 3-6.
func inCentreBox(sq board.Square) bool {
	return sq.File() >= 2 && sq.File() <= 5 && sq.Rank() >= 2 && sq.Rank() <= 5
}

// centreDistance is the Manhattan distance to the nearest of d4, e4, d5 and e5.
func centreDistance(sq board.Square) int {
	return min(abs(sq.File()-3), abs(sq.File()-4)) + min(abs(sq.Rank()-3), abs(sq.Rank()-4))
}

func kingSafety(st *game.State, side board.Color) float64 {
	p := st.Position()
	score := kingShelter(p, board.White) - kingShelter(p, board.Black)
	return capped(signed(score, side), kingSafetyCap)
}

func kingShelter(p *board.Position, c board.Color) float64 {
	k := p.KingSquare(c)
	if k == board.NoSquare {
		return 0
	}
	var score float64
	if inCentreBox(k) {
		score -= 20
	}
	score += 5 * float64(bits.OnesCount64(neighbours[k]&p.Occupancy(c)))

	var threats float64
	enemy := c.Other()
	for pt := board.Pawn; pt < board.King; pt++ {
		for _, sq := range squaresOf(p.Bitboard(enemy, pt)) {
			if p.Destinations(sq, true)&(1<<uint(k)) != 0 {
				threats -= 30
			}
		}
	}
	if threats == 0 {
		threats = 20
	}
	return score + threats
}

func kingActivity(st *game.State, side board.Color) float64 {
	p := st.Position()
	score := kingCentrality(p, board.White) - kingCentrality(p, board.Black)
	return capped(signed(score, side), kingActivityCap)
}

func kingCentrality(p *board.Position, c board.Color) float64 {
	k := p.KingSquare(c)
	if k == board.NoSquare {
		return 0
	}
	var score float64
	if inCentreBox(k) {
		score = 20
	} else {
		dist := centreDistance(k)
		score = float64(max(0, 15-3*dist))
	}
	if p.KingMoveCount(c) >= 5 {
		score += 10
	}
	return score
}

// kingOpposition is a drawishness signal and does not depend on side.
func kingOpposition(st *game.State, _ board.Color) float64 {
	p := st.Position()
	w, b := p.KingSquare(board.White), p.KingSquare(board.Black)
	if w == board.NoSquare || b == board.NoSquare {
		return 0
	}
	dx, dy := abs(w.File()-b.File()), abs(w.Rank()-b.Rank())
	switch {
	case (dx == 2 && dy == 0) || (dy == 2 && dx == 0):
		return -oppositionCap
	case dx <= 2 && dy <= 2:
		return -oppositionCap / 2
	}
	return 0
}
