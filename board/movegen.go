package board

const (
	fileA uint64 = 0x0101010101010101
	fileH uint64 = fileA << 7
	rank1 uint64 = 0xFF
	rank2 uint64 = rank1 << 8
	rank7 uint64 = rank1 << 48
	rank8 uint64 = rank1 << 56
)

type direction struct{ df, dr int }

var (
	rookDirections   = []direction{{0, 1}, {0, -1}, {1, 0}, {-1, 0}}
	bishopDirections = []direction{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
	queenDirections  = append(append([]direction{}, rookDirections...), bishopDirections...)
)

var (
	knightMoves [64]uint64
	kingMoves   [64]uint64
	pawnAttacks [2][64]uint64
)

func init() {
	initAttackTables()
}

func initAttackTables() {
	knightOffsets := []direction{{1, 2}, {2, 1}, {2, -1}, {1, -2}, {-1, -2}, {-2, -1}, {-2, 1}, {-1, 2}}
	for sq := Square(0); sq < 64; sq++ {
		f, r := sq.File(), sq.Rank()
		for _, d := range knightOffsets {
			if onBoard(f+d.df, r+d.dr) {
				knightMoves[sq] |= bb(SquareAt(f+d.df, r+d.dr))
			}
		}
		for _, d := range queenDirections {
			if onBoard(f+d.df, r+d.dr) {
				kingMoves[sq] |= bb(SquareAt(f+d.df, r+d.dr))
			}
		}
		for _, df := range []int{-1, 1} {
			if onBoard(f+df, r+1) {
				pawnAttacks[White][sq] |= bb(SquareAt(f+df, r+1))
			}
			if onBoard(f+df, r-1) {
				pawnAttacks[Black][sq] |= bb(SquareAt(f+df, r-1))
			}
		}
	}
}

func onBoard(file, rank int) bool { return file >= 0 && file < 8 && rank >= 0 && rank < 8 }

// shift moves every bit of b one step in direction d, dropping bits that would wrap
// around a board edge.
func shift(b uint64, d direction) uint64 {
	switch d.df {
	case 1:
		b &^= fileH
	case -1:
		b &^= fileA
	}
	n := d.dr*8 + d.df
	if n > 0 {
		return b << uint(n)
	}
	return b >> uint(-n)
}

// rayAttacks grows a ray from sq one square at a time in every direction, stopping at
// the edge or at the first occupied square, which is included.
func rayAttacks(sq Square, dirs []direction, occ uint64) uint64 {
	var acc uint64
	for _, d := range dirs {
		ray := bb(sq)
		for {
			ray = shift(ray, d)
			if ray == 0 {
				break
			}
			acc |= ray
			if ray&occ != 0 {
				break
			}
		}
	}
	return acc
}

func pawnPushes(sq Square, c Color, occ uint64) uint64 {
	forward := direction{0, 1}
	start := rank2
	if c == Black {
		forward = direction{0, -1}
		start = rank7
	}
	one := shift(bb(sq), forward) &^ occ
	if one == 0 || bb(sq)&start == 0 {
		return one
	}
	return one | shift(one, forward)&^occ
}

// Destinations returns the pseudo-legal target squares of the piece on sq. When
// kingReachable is false the enemy king's square is removed, so ordinary move lists
// never contain a king capture; attack queries pass true.
func (p *Position) Destinations(sq Square, kingReachable bool) uint64 {
	pc := p.PieceAt(sq)
	if pc == NoPiece {
		return 0
	}
	c := pc.Color()
	own := p.Occupancy(c)
	enemy := p.Occupancy(c.Other())
	occ := own | enemy

	var dest uint64
	switch pc.Type() {
	case Pawn:
		targets := enemy
		if p.ep != NoSquare && c == p.side {
			targets |= bb(p.ep)
		}
		dest = pawnPushes(sq, c, occ) | pawnAttacks[c][sq]&targets
	case Knight:
		dest = knightMoves[sq] &^ own
	case Bishop:
		dest = rayAttacks(sq, bishopDirections, occ) &^ own
	case Rook:
		dest = rayAttacks(sq, rookDirections, occ) &^ own
	case Queen:
		dest = rayAttacks(sq, queenDirections, occ) &^ own
	case King:
		dest = kingMoves[sq] &^ own
	}
	if !kingReachable {
		dest &^= p.pieces[c.Other()][King-1]
	}
	return dest
}

// attacks returns the squares the piece on sq controls, including empty squares
// diagonally in front of a pawn.
func (p *Position) attacks(sq Square, pc Piece, occ uint64) uint64 {
	switch pc.Type() {
	case Pawn:
		return pawnAttacks[pc.Color()][sq]
	case Knight:
		return knightMoves[sq]
	case Bishop:
		return rayAttacks(sq, bishopDirections, occ)
	case Rook:
		return rayAttacks(sq, rookDirections, occ)
	case Queen:
		return rayAttacks(sq, queenDirections, occ)
	case King:
		return kingMoves[sq]
	}
	return 0
}

func (p *Position) appendMoves(dst []Move, from Square, pc Piece, targets uint64) []Move {
	c := pc.Color()
	for targets != 0 {
		to := popLSB(&targets)
		m := Move{From: from, To: to, Piece: pc, Captured: p.colorPieceAt(c.Other(), to)}
		if m.Captured != NoPiece {
			m.Flags |= FlagCapture
		}
		if pc.Type() == Pawn {
			switch {
			case to == p.ep && m.Captured == NoPiece && to.File() != from.File():
				m.Flags |= FlagCapture | FlagEnPassant
				m.Captured = NewPiece(c.Other(), Pawn)
			case to-from == 16 || from-to == 16:
				m.Flags |= FlagDoublePush
			}
			if bb(to)&(rank1|rank8) != 0 {
				for _, promo := range []PieceType{Queen, Rook, Bishop, Knight} {
					m.Promotion = promo
					dst = append(dst, m)
				}
				continue
			}
		}
		dst = append(dst, m)
	}
	return dst
}

// PseudoMovesFor generates every pseudo-legal move of colour c, castling included.
// Moves may still leave c's own king in check.
func (p *Position) PseudoMovesFor(c Color, dst []Move) []Move {
	for pt := Pawn; pt <= King; pt++ {
		set := p.pieces[c][pt-1]
		pc := NewPiece(c, pt)
		for set != 0 {
			from := popLSB(&set)
			dst = p.appendMoves(dst, from, pc, p.Destinations(from, false))
		}
	}
	return p.castlingMoves(c, dst)
}

// PseudoMoves generates the side to move's pseudo-legal moves.
func (p *Position) PseudoMoves() []Move { return p.PseudoMovesFor(p.side, make([]Move, 0, 64)) }

// LegalMovesFor filters c's pseudo-legal moves through IsCheckAfterMove.
func (p *Position) LegalMovesFor(c Color) []Move {
	pseudo := p.PseudoMovesFor(c, make([]Move, 0, 64))
	legal := pseudo[:0]
	for _, m := range pseudo {
		if !p.IsCheckAfterMove(m) {
			legal = append(legal, m)
		}
	}
	return legal
}

// LegalMoves returns the side to move's legal moves.
func (p *Position) LegalMoves() []Move { return p.LegalMovesFor(p.side) }

// LegalMovesFrom returns the legal moves of the piece standing on sq.
func (p *Position) LegalMovesFrom(sq Square) []Move {
	var out []Move
	for _, m := range p.LegalMoves() {
		if m.From == sq {
			out = append(out, m)
		}
	}
	return out
}

func (p *Position) hasLegalMove(c Color) bool {
	for _, m := range p.PseudoMovesFor(c, make([]Move, 0, 64)) {
		if !p.IsCheckAfterMove(m) {
			return true
		}
	}
	return false
}

type castleSpec struct {
	right    CastlingRights
	king, to Square
	rook     Square
	empty    uint64
	safe     []Square
}

var castleSpecs = [2][2]castleSpec{
	White: {
		{CastlingWhiteK, 4, 6, 7, bb(5) | bb(6), []Square{5, 6}},
		{CastlingWhiteQ, 4, 2, 0, bb(1) | bb(2) | bb(3), []Square{3, 2}},
	},
	Black: {
		{CastlingBlackK, 60, 62, 63, bb(61) | bb(62), []Square{61, 62}},
		{CastlingBlackQ, 60, 58, 56, bb(57) | bb(58) | bb(59), []Square{59, 58}},
	},
}

// castlingMoves appends the castles available to c: the right is held, king and rook
// stand on their home squares, the path is empty, the king is not in check and does
// not cross or land on an attacked square.
func (p *Position) castlingMoves(c Color, dst []Move) []Move {
	if p.castling == 0 {
		return dst
	}
	king := NewPiece(c, King)
	occ := p.AllOccupancy()
	checked := false
	for _, cs := range castleSpecs[c] {
		if p.castling&cs.right == 0 || occ&cs.empty != 0 {
			continue
		}
		if p.pieces[c][King-1]&bb(cs.king) == 0 || p.pieces[c][Rook-1]&bb(cs.rook) == 0 {
			continue
		}
		if !checked {
			if p.IsCheck(c) {
				return dst
			}
			checked = true
		}
		attacked := false
		for _, sq := range cs.safe {
			if p.IsAttacked(sq, c.Other()) {
				attacked = true
				break
			}
		}
		if attacked {
			continue
		}
		dst = append(dst, Move{From: cs.king, To: cs.to, Piece: king, Flags: FlagCastle})
	}
	return dst
}

// castleRook returns the rook squares of a castle landing the king on kingTo.
func castleRook(kingTo Square) (from, to Square) {
	switch kingTo {
	case 6:
		return 7, 5
	case 2:
		return 0, 3
	case 62:
		return 63, 61
	default:
		return 56, 59
	}
}
