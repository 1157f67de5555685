package board

import "math/rand"

var (
	zobristPiece     [16][64]uint64
	zobristCastle    [16]uint64
	zobristEnPassant [8]uint64
	zobristSide      uint64
)

func init() {
	initZobrist()
}

// initZobrist fills the key tables from a fixed seed so hashes are stable across runs.
func initZobrist() {
	rng := rand.New(rand.NewSource(0xC0DE))
	for pc := range zobristPiece {
		for sq := range zobristPiece[pc] {
			zobristPiece[pc][sq] = rng.Uint64()
		}
	}
	for i := range zobristCastle {
		zobristCastle[i] = rng.Uint64()
	}
	for i := range zobristEnPassant {
		zobristEnPassant[i] = rng.Uint64()
	}
	zobristSide = rng.Uint64()
}

func (p *Position) pieceHash() uint64 {
	var h uint64
	for c := White; c <= Black; c++ {
		for pt := Pawn; pt <= King; pt++ {
			pc := NewPiece(c, pt)
			set := p.pieces[c][pt-1]
			for set != 0 {
				h ^= zobristPiece[pc][popLSB(&set)]
			}
		}
	}
	if p.side == Black {
		h ^= zobristSide
	}
	return h
}

// ComputeSimpleHash hashes piece placement and side to move only. Two positions that
// differ just in castling or en-passant rights share it, which is what the repetition
// rule counts.
func (p *Position) ComputeSimpleHash() uint64 { return p.pieceHash() }

// ComputeHash hashes the full position from scratch.
func (p *Position) ComputeHash() uint64 {
	h := p.pieceHash() ^ zobristCastle[p.castling]
	if p.ep != NoSquare {
		h ^= zobristEnPassant[p.ep.File()]
	}
	return h
}

func (p *Position) rehash() {
	p.hash = p.ComputeHash()
	p.simple = p.ComputeSimpleHash()
}

// pieceDelta is the XOR of every piece key m moved, captured or promoted, plus the
// side key.
func pieceDelta(m Move, u Undo) uint64 {
	mover := m.Piece.Color()
	d := zobristPiece[m.Piece][m.From] ^ zobristSide
	if m.IsPromotion() {
		d ^= zobristPiece[NewPiece(mover, m.Promotion)][m.To]
	} else {
		d ^= zobristPiece[m.Piece][m.To]
	}
	if u.Captured != NoPiece {
		d ^= zobristPiece[u.Captured][u.CapturedSq]
	}
	if m.Flags&FlagCastle != 0 {
		rook := NewPiece(mover, Rook)
		from, to := castleRook(m.To)
		d ^= zobristPiece[rook][from] ^ zobristPiece[rook][to]
	}
	return d
}

// UpdateHash derives the full hash after m from the hash before it. It must run on
// the position m produced, with the Undo that applyMove returned.
func (p *Position) UpdateHash(h uint64, m Move, u Undo) uint64 {
	h ^= pieceDelta(m, u)
	if u.Castling != p.castling {
		h ^= zobristCastle[u.Castling] ^ zobristCastle[p.castling]
	}
	if u.EnPassant != NoSquare {
		h ^= zobristEnPassant[u.EnPassant.File()]
	}
	if p.ep != NoSquare {
		h ^= zobristEnPassant[p.ep.File()]
	}
	return h
}

// UpdateSimpleHash is UpdateHash for the placement-only hash.
func (p *Position) UpdateSimpleHash(h uint64, m Move, u Undo) uint64 {
	return h ^ pieceDelta(m, u)
}
