package board

import "math/bits"

const (
	lightSquares uint64 = 0x55AA55AA55AA55AA
	darkSquares  uint64 = ^lightSquares
)

// IsAttacked reports whether any piece of colour by reaches sq. Pawns count through
// their diagonals whether or not sq is occupied, so castling paths are covered.
func (p *Position) IsAttacked(sq Square, by Color) bool {
	set := &p.pieces[by]
	if pawnAttacks[by.Other()][sq]&set[Pawn-1] != 0 {
		return true
	}
	if knightMoves[sq]&set[Knight-1] != 0 || kingMoves[sq]&set[King-1] != 0 {
		return true
	}
	occ := p.AllOccupancy()
	if rayAttacks(sq, bishopDirections, occ)&(set[Bishop-1]|set[Queen-1]) != 0 {
		return true
	}
	return rayAttacks(sq, rookDirections, occ)&(set[Rook-1]|set[Queen-1]) != 0
}

// IsCheck reports whether c's king is attacked. A side without a king is never in check.
func (p *Position) IsCheck(c Color) bool {
	k := p.KingSquare(c)
	if k == NoSquare {
		return false
	}
	return p.IsAttacked(k, c.Other())
}

// IsCheckAfterMove plays m, tests whether the mover's king is attacked, and takes the
// move back. The Position is bit-identical on return.
func (p *Position) IsCheckAfterMove(m Move) bool {
	u := p.applyMove(m)
	inCheck := p.IsCheck(m.Piece.Color())
	p.unmakeMove(m, u)
	return inCheck
}

// IsCheckMate reports whether c is in check with no move that escapes it.
func (p *Position) IsCheckMate(c Color) bool {
	return p.IsCheck(c) && !p.hasLegalMove(c)
}

// IsStaleMate reports whether c has no legal move while not in check. A side only
// counts as stalemated when toMove says it is that side's turn.
func (p *Position) IsStaleMate(c, toMove Color) bool {
	if c != toMove {
		return false
	}
	return !p.IsCheck(c) && !p.hasLegalMove(c)
}

// IsDrawByInsufficientMaterial covers K v K, KB v K, KN v K and KB v KB with both
// bishops on the same square colour.
func (p *Position) IsDrawByInsufficientMaterial() bool {
	for c := White; c <= Black; c++ {
		if p.Bitboard(c, Pawn)|p.Bitboard(c, Rook)|p.Bitboard(c, Queen) != 0 {
			return false
		}
	}
	wb, bbish := p.Count(White, Bishop), p.Count(Black, Bishop)
	wn, bn := p.Count(White, Knight), p.Count(Black, Knight)
	minors := wb + bbish + wn + bn
	switch {
	case minors <= 1:
		return true
	case minors == 2 && wb == 1 && bbish == 1:
		w, b := p.Bitboard(White, Bishop), p.Bitboard(Black, Bishop)
		return (w&lightSquares != 0) == (b&lightSquares != 0)
	}
	return false
}

// HasEnoughMaterialToMate reports whether c could still force mate with the pieces it
// has: any pawn, rook or queen, bishops on both colours, two knights, or bishop and
// knight together.
func (p *Position) HasEnoughMaterialToMate(c Color) bool {
	if p.Bitboard(c, Pawn)|p.Bitboard(c, Rook)|p.Bitboard(c, Queen) != 0 {
		return true
	}
	bishops := p.Bitboard(c, Bishop)
	if bishops&lightSquares != 0 && bishops&darkSquares != 0 {
		return true
	}
	knights := p.Count(c, Knight)
	return knights >= 2 || (knights >= 1 && bishops != 0)
}

// AttackedSquares is the union of every square c's pieces control.
func (p *Position) AttackedSquares(c Color) uint64 {
	occ := p.AllOccupancy()
	var acc uint64
	for pt := Pawn; pt <= King; pt++ {
		set := p.pieces[c][pt-1]
		pc := NewPiece(c, pt)
		for set != 0 {
			acc |= p.attacks(popLSB(&set), pc, occ)
		}
	}
	return acc
}

// Mobility counts c's legal moves.
func (p *Position) Mobility(c Color) int { return len(p.LegalMovesFor(c)) }

// KingMoveCount counts the legal moves of c's king.
func (p *Position) KingMoveCount(c Color) int {
	k := p.KingSquare(c)
	if k == NoSquare {
		return 0
	}
	n := 0
	targets := p.Destinations(k, false)
	for targets != 0 {
		to := popLSB(&targets)
		m := Move{From: k, To: to, Piece: NewPiece(c, King), Captured: p.colorPieceAt(c.Other(), to)}
		if m.Captured != NoPiece {
			m.Flags = FlagCapture
		}
		if !p.IsCheckAfterMove(m) {
			n++
		}
	}
	return n
}

// IsEndGamePhase holds when at least four of six signals agree: queens are off, at
// most sixteen pieces remain, both kings have four or more moves, the game reached
// move 25, both sides together attack at most 25 squares, and two thirds of c's pawns
// stand past the middle of the board.
func (p *Position) IsEndGamePhase(c Color) bool {
	signals := 0
	if p.Bitboard(White, Queen)|p.Bitboard(Black, Queen) == 0 {
		signals++
	}
	if p.PieceCount() <= 16 {
		signals++
	}
	if p.KingMoveCount(White) >= 4 && p.KingMoveCount(Black) >= 4 {
		signals++
	}
	if p.fullmove >= 25 {
		signals++
	}
	if bits.OnesCount64(p.AttackedSquares(White)|p.AttackedSquares(Black)) <= 25 {
		signals++
	}
	if p.PawnsAdvanced(c) {
		signals++
	}
	return signals >= 4
}

// PawnsAdvanced reports whether at least two thirds of c's pawns stand on their
// fourth rank or beyond.
func (p *Position) PawnsAdvanced(c Color) bool {
	pawns := p.Bitboard(c, Pawn)
	total := bits.OnesCount64(pawns)
	if total == 0 {
		return false
	}
	advanced := 0
	for pawns != 0 {
		r := popLSB(&pawns).Rank()
		if (c == White && r >= 3) || (c == Black && r <= 4) {
			advanced++
		}
	}
	return advanced*3 >= total*2
}
