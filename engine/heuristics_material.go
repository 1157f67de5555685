package engine

import (
	"math/bits"

	"chess-ai/board"
	"chess-ai/game"
)

const (
	materialCap = 40.0
	mobilityCap = 20.0
	statusScore = 10000.0
	checkCap    = 100.0
)

var pieceValue = [7]float64{0, 1, 3, 3, 5, 9, 0}

func squaresOf(mask uint64) []board.Square {
	out := make([]board.Square, 0, bits.OnesCount64(mask))
	for mask != 0 {
		out = append(out, board.Square(bits.TrailingZeros64(mask)))
		mask &= mask - 1
	}
	return out
}

func material(st *game.State, side board.Color) float64 {
	p := st.Position()
	var score float64
	for pt := board.Pawn; pt < board.King; pt++ {
		score += pieceValue[pt] * float64(p.Count(board.White, pt)-p.Count(board.Black, pt))
	}
	return capped(signed(score, side), materialCap)
}

// mobility is a tenth of the legal move difference.
func mobility(st *game.State, side board.Color) float64 {
	p := st.Position()
	diff := p.Mobility(side) - p.Mobility(side.Other())
	return capped(float64(diff)*0.1, mobilityCap)
}

// gameStatus rewards delivering mate.
func gameStatus(st *game.State, side board.Color) float64 {
	p := st.Position()
	var score float64
	if p.IsCheckMate(board.White) {
		score -= statusScore
	}
	if p.IsCheckMate(board.Black) {
		score += statusScore
	}
	return signed(score, side)
}

func check(st *game.State, side board.Color) float64 {
	p := st.Position()
	var score float64
	if p.IsCheck(board.White) {
		score -= checkCap
	}
	if p.IsCheck(board.Black) {
		score += checkCap
	}
	return signed(score, side)
}
