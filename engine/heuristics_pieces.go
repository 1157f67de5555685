package engine

import (
	"math/bits"

	"chess-ai/board"
	"chess-ai/game"
)

const (
	bishopCap      = 100.0
	spaceCap       = 100.0
	developmentCap = 100.0

	spaceCentreBonus = 3.0
	spaceFlankBonus  = 1.5
	spaceOtherBonus  = 0.5
	spaceMaxSquares  = 40
	spaceCentreMax   = 4
	spaceFlankMax    = 16

	devPawnBonus  = 1
	devPieceBonus = 3
)

var (
	spaceScale       = spaceCap / (spaceCentreMax*spaceCentreBonus + spaceFlankMax*spaceFlankBonus + (spaceMaxSquares-spaceCentreMax-spaceFlankMax)*spaceOtherBonus)
	developmentScale = developmentCap / (15 * devPieceBonus)

	centreSquares uint64 = 0x0000001818000000
	flankSquares  uint64 = 0x8181818181818181
)

// homeSquares[c][pt] are the starting squares of c's pieces of type pt.
var homeSquares = [2][7]uint64{
	board.White: {
		board.Pawn:   0x000000000000FF00,
		board.Knight: 0x0000000000000042,
		board.Bishop: 0x0000000000000024,
		board.Rook:   0x0000000000000081,
		board.Queen:  0x0000000000000008,
		board.King:   0x0000000000000010,
	},
	board.Black: {
		board.Pawn:   0x00FF000000000000,
		board.Knight: 0x4200000000000000,
		board.Bishop: 0x2400000000000000,
		board.Rook:   0x8100000000000000,
		board.Queen:  0x0800000000000000,
		board.King:   0x1000000000000000,
	},
}

func squareShade(sq board.Square) int { return (sq.File() + sq.Rank()) % 2 }

func bishopEndgame(st *game.State, side board.Color) float64 {
	p := st.Position()
	score := bishopQuality(p, board.White) - bishopQuality(p, board.Black)
	return capped(signed(score, side), bishopCap)
}

func bishopQuality(p *board.Position, c board.Color) float64 {
	bishops := squaresOf(p.Bitboard(c, board.Bishop))
	theirs := squaresOf(p.Bitboard(c.Other(), board.Bishop))
	pawns := squaresOf(p.Bitboard(c, board.Pawn))

	var score float64
	for _, b := range bishops {
		score += 2 * float64(bits.OnesCount64(p.Destinations(b, false)))
		score += float64(max(0, 10-2*centreDistance(b)))
		for _, pw := range pawns {
			if squareShade(pw) == squareShade(b) {
				score -= 5
			}
		}
	}
	if len(bishops) >= 2 && squareShade(bishops[0]) == squareShade(bishops[1]) {
		score -= 10
	}
	if len(bishops) == 1 && len(theirs) == 1 && squareShade(bishops[0]) == squareShade(theirs[0]) {
		score += 5
	}
	return score
}

func spaceControl(st *game.State, side board.Color) float64 {
	p := st.Position()
	score := spaceScore(p.AttackedSquares(board.White)) - spaceScore(p.AttackedSquares(board.Black))
	return capped(signed(score*spaceScale, side), spaceCap)
}

// spaceScore weighs controlled squares, centre first, counting at most
// spaceMaxSquares of them.
func spaceScore(controlled uint64) float64 {
	buckets := []struct {
		n     int
		bonus float64
	}{
		{bits.OnesCount64(controlled & centreSquares), spaceCentreBonus},
		{bits.OnesCount64(controlled & flankSquares &^ centreSquares), spaceFlankBonus},
		{bits.OnesCount64(controlled &^ (centreSquares | flankSquares)), spaceOtherBonus},
	}
	var score float64
	left := spaceMaxSquares
	for _, b := range buckets {
		n := min(b.n, left)
		score += float64(n) * b.bonus
		left -= n
	}
	return score
}

func development(st *game.State, side board.Color) float64 {
	p := st.Position()
	score := float64(developed(p, board.White)-developed(p, board.Black)) * developmentScale
	return capped(signed(score, side), developmentCap)
}

// developed scores c's pieces that have left their starting squares. The king is
// not counted.
func developed(p *board.Position, c board.Color) int {
	score := bits.OnesCount64(p.Bitboard(c, board.Pawn)&^homeSquares[c][board.Pawn]) * devPawnBonus
	for pt := board.Knight; pt <= board.Queen; pt++ {
		score += bits.OnesCount64(p.Bitboard(c, pt)&^homeSquares[c][pt]) * devPieceBonus
	}
	return score
}
