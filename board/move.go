package board

import "strings"

// MoveFlag annotates a Move with the special rules it exercised.
type MoveFlag uint8

const (
	FlagCapture MoveFlag = 1 << iota
	FlagEnPassant
	FlagCastle
	FlagDoublePush
	FlagCheck
	FlagMate
)

// Move is a value type: two moves are equal when every field is equal, which lets
// moves key maps in perft divides and visit tables.
type Move struct {
	From      Square
	To        Square
	Piece     Piece
	Captured  Piece
	Promotion PieceType
	Flags     MoveFlag
}

// NullMove marks the root of a move history.
var NullMove = Move{From: NoSquare, To: NoSquare}

func (m Move) IsNull() bool { return m.From == NoSquare && m.To == NoSquare }
func (m Move) IsCapture() bool { return m.Flags&FlagCapture != 0 }
func (m Move) IsPromotion() bool { return m.Promotion != NoPieceType }
func (m Move) IsCastle() bool { return m.Flags&FlagCastle != 0 }
func (m Move) GivesCheck() bool { return m.Flags&(FlagCheck|FlagMate) != 0 }

// SameAs compares the identifying fields only and ignores check annotations.
func (m Move) SameAs(o Move) bool {
	return m.From == o.From && m.To == o.To && m.Promotion == o.Promotion
}

// String renders the coordinate form used by the saved-game format: "e2-e4",
// "e4xd5", "e7-e8=Q", with a trailing "+" or "#" when annotated.
func (m Move) String() string {
	if m.IsNull() {
		return "--"
	}
	var sb strings.Builder
	sb.WriteString(m.From.String())
	if m.IsCapture() {
		sb.WriteByte('x')
	} else {
		sb.WriteByte('-')
	}
	sb.WriteString(m.To.String())
	if m.IsPromotion() {
		sb.WriteByte('=')
		sb.WriteByte(pieceLetters[m.Promotion])
	}
	switch {
	case m.Flags&FlagMate != 0:
		sb.WriteByte('#')
	case m.Flags&FlagCheck != 0:
		sb.WriteByte('+')
	}
	return sb.String()
}

// Algebraic prefixes String with the moving piece letter for non-pawns ("Qe7xe5+").
func (m Move) Algebraic() string {
	if m.IsNull() || m.Piece.Type() == Pawn || m.Piece == NoPiece {
		return m.String()
	}
	return string(pieceLetters[m.Piece.Type()]) + m.String()
}

// UCI renders the long algebraic form understood by other engines ("e7e8q").
func (m Move) UCI() string {
	if m.IsNull() {
		return "0000"
	}
	s := m.From.String() + m.To.String()
	if m.IsPromotion() {
		s += string(pieceLetters[m.Promotion] + 'a' - 'A')
	}
	return s
}
