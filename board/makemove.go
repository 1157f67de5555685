package board

// Undo records what applyMove overwrote so the move can be taken back exactly.
type Undo struct {
	Side       Color
	Captured   Piece
	CapturedSq Square
	Castling   CastlingRights
	EnPassant  Square
	Halfmove   int
	Fullmove   int
	Hash       uint64
	Simple     uint64
}

// castleMask clears the rights tied to a square whenever a move starts or ends there.
var castleMask [64]CastlingRights

func init() {
	for sq := range castleMask {
		castleMask[sq] = CastlingWhiteK | CastlingWhiteQ | CastlingBlackK | CastlingBlackQ
	}
	castleMask[4] &^= CastlingWhiteK | CastlingWhiteQ
	castleMask[0] &^= CastlingWhiteQ
	castleMask[7] &^= CastlingWhiteK
	castleMask[60] &^= CastlingBlackK | CastlingBlackQ
	castleMask[56] &^= CastlingBlackQ
	castleMask[63] &^= CastlingBlackK
}

// MakeMove plays a pseudo-legal move. If it leaves the mover's king attacked the move
// is taken back and ok is false.
func (p *Position) MakeMove(m Move) (ok bool, u Undo) {
	u = p.applyMove(m)
	if p.IsCheck(m.Piece.Color()) {
		p.unmakeMove(m, u)
		return false, u
	}
	return true, u
}

// UnmakeMove reverts a move played by MakeMove.
func (p *Position) UnmakeMove(m Move, u Undo) { p.unmakeMove(m, u) }

func (p *Position) applyMove(m Move) Undo {
	mover := m.Piece.Color()
	u := Undo{
		Side:       p.side,
		Captured:   NoPiece,
		CapturedSq: NoSquare,
		Castling:   p.castling,
		EnPassant:  p.ep,
		Halfmove:   p.halfmove,
		Fullmove:   p.fullmove,
		Hash:       p.hash,
		Simple:     p.simple,
	}

	if m.Flags&FlagEnPassant != 0 {
		u.CapturedSq = m.To - 8
		if mover == Black {
			u.CapturedSq = m.To + 8
		}
		u.Captured = NewPiece(mover.Other(), Pawn)
	} else if m.Captured != NoPiece {
		u.CapturedSq = m.To
		u.Captured = m.Captured
	}
	if u.Captured != NoPiece {
		p.removePiece(u.CapturedSq, u.Captured)
	}

	p.removePiece(m.From, m.Piece)
	if m.IsPromotion() {
		p.addPiece(m.To, NewPiece(mover, m.Promotion))
	} else {
		p.addPiece(m.To, m.Piece)
	}
	if m.Flags&FlagCastle != 0 {
		rookFrom, rookTo := castleRook(m.To)
		rook := NewPiece(mover, Rook)
		p.removePiece(rookFrom, rook)
		p.addPiece(rookTo, rook)
	}

	p.castling &= castleMask[m.From] & castleMask[m.To]
	p.ep = NoSquare
	if m.Flags&FlagDoublePush != 0 {
		p.ep = (m.From + m.To) / 2
	}
	if m.Piece.Type() == Pawn || u.Captured != NoPiece {
		p.halfmove = 0
	} else {
		p.halfmove++
	}
	if mover == Black {
		p.fullmove++
	}
	p.side = mover.Other()

	p.hash = p.UpdateHash(u.Hash, m, u)
	p.simple = p.UpdateSimpleHash(u.Simple, m, u)
	return u
}

func (p *Position) unmakeMove(m Move, u Undo) {
	mover := m.Piece.Color()
	if m.IsPromotion() {
		p.removePiece(m.To, NewPiece(mover, m.Promotion))
	} else {
		p.removePiece(m.To, m.Piece)
	}
	p.addPiece(m.From, m.Piece)
	if m.Flags&FlagCastle != 0 {
		rookFrom, rookTo := castleRook(m.To)
		rook := NewPiece(mover, Rook)
		p.removePiece(rookTo, rook)
		p.addPiece(rookFrom, rook)
	}
	if u.Captured != NoPiece {
		p.addPiece(u.CapturedSq, u.Captured)
	}
	p.castling = u.Castling
	p.ep = u.EnPassant
	p.halfmove = u.Halfmove
	p.fullmove = u.Fullmove
	p.side = u.Side
	p.hash = u.Hash
	p.simple = u.Simple
}

// MakeNullMove passes the turn; used by perft tooling and search experiments.
func (p *Position) MakeNullMove() Undo {
	u := Undo{Side: p.side, Captured: NoPiece, CapturedSq: NoSquare, Castling: p.castling, EnPassant: p.ep,
		Halfmove: p.halfmove, Fullmove: p.fullmove, Hash: p.hash, Simple: p.simple}
	if p.ep != NoSquare {
		p.hash ^= zobristEnPassant[p.ep.File()]
	}
	p.ep = NoSquare
	p.side = p.side.Other()
	p.hash ^= zobristSide
	p.simple ^= zobristSide
	return u
}

// UnmakeNullMove reverts MakeNullMove.
func (p *Position) UnmakeNullMove(u Undo) {
	p.ep = u.EnPassant
	p.side = u.Side
	p.hash = u.Hash
	p.simple = u.Simple
}
