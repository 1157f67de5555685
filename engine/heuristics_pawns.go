package engine

import (
	"chess-ai/board"
	"chess-ai/game"
)

const (
	badPawnsCap      = 100.0
	pawnChainCap     = 100.0
	promotionCap     = 100.0
	backwardPenalty  = 4
	chainReward      = 5.0
	seventhRankScore = 20.0
	finalPhaseScore  = 10.0
	progressScore    = 10.0
)

var promotionScale = promotionCap / (8*seventhRankScore + 8*progressScore)

// relRank is the rank seen from c's side, 0 being c's back rank.
func relRank(sq board.Square, c board.Color) int {
	if c == board.White {
		return sq.Rank()
	}
	return 7 - sq.Rank()
}

// badPawns penalises doubled, isolated and backward pawns of side relative to the
// opponent's.
func badPawns(st *game.State, side board.Color) float64 {
	p := st.Position()
	own, opp := side, side.Other()
	diff := doubledPawns(p, own) - doubledPawns(p, opp)
	diff += isolatedPawns(p, own) - isolatedPawns(p, opp)
	diff += backwardPawns(p, own) - backwardPawns(p, opp)
	return capped(-0.5*float64(diff), badPawnsCap)
}

func pawnFiles(p *board.Position, c board.Color) [8]int {
	var files [8]int
	for _, sq := range squaresOf(p.Bitboard(c, board.Pawn)) {
		files[sq.File()]++
	}
	return files
}

// doubledPawns counts files holding more than one of c's pawns.
func doubledPawns(p *board.Position, c board.Color) int {
	n := 0
	for _, cnt := range pawnFiles(p, c) {
		if cnt > 1 {
			n++
		}
	}
	return n
}

func isolatedPawns(p *board.Position, c board.Color) int {
	files := pawnFiles(p, c)
	n := 0
	for f, cnt := range files {
		left := f > 0 && files[f-1] > 0
		right := f < 7 && files[f+1] > 0
		if !left && !right {
			n += cnt
		}
	}
	return n
}

// backwardPawns counts rearmost pawns on their file that no neighbour file can
// support and that face an enemy pawn further up the board.
func backwardPawns(p *board.Position, c board.Color) int {
	var highest, lowestEnemy [8]int
	for f := range highest {
		highest[f], lowestEnemy[f] = -1, 8
	}
	pawns := squaresOf(p.Bitboard(c, board.Pawn))
	for _, sq := range pawns {
		highest[sq.File()] = max(highest[sq.File()], relRank(sq, c))
	}
	for _, sq := range squaresOf(p.Bitboard(c.Other(), board.Pawn)) {
		lowestEnemy[sq.File()] = min(lowestEnemy[sq.File()], relRank(sq, c))
	}
	n := 0
	for _, sq := range pawns {
		f, r := sq.File(), relRank(sq, c)
		left := f > 0 && highest[f-1] >= r
		right := f < 7 && highest[f+1] >= r
		if !left && !right && highest[f] == r && lowestEnemy[f] > r && lowestEnemy[f] < 8 {
			n++
		}
	}
	return n * backwardPenalty
}

func pawnChain(st *game.State, side board.Color) float64 {
	p := st.Position()
	score := chainLinks(p, board.White) - chainLinks(p, board.Black)
	return capped(signed(score, side), pawnChainCap)
}

// chainLinks rewards every ordered pair of pawns standing side by side or diagonally
// adjacent.
func chainLinks(p *board.Position, c board.Color) float64 {
	pawns := squaresOf(p.Bitboard(c, board.Pawn))
	var score float64
	for _, a := range pawns {
		for _, b := range pawns {
			dx, dy := abs(a.File()-b.File()), abs(a.Rank()-b.Rank())
			if dx == 1 && dy <= 1 {
				score += chainReward
			}
		}
	}
	return score
}

func promotion(st *game.State, side board.Color) float64 {
	p := st.Position()
	score := promotionRace(p, board.White) - promotionRace(p, board.Black)
	return capped(signed(score*promotionScale, side), promotionCap)
}

func promotionRace(p *board.Position, c board.Color) float64 {
	var score float64
	if p.PawnsAdvanced(c) {
		score += progressScore
	}
	for _, sq := range squaresOf(p.Bitboard(c, board.Pawn)) {
		switch r := relRank(sq, c); {
		case r == 6:
			score += seventhRankScore
		case r >= 5:
			score += finalPhaseScore
		}
	}
	return score
}
