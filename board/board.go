package board

import (
	"fmt"
	"math/bits"
)

// Color identifies a side.
type Color uint8

const (
	White Color = iota
	Black
)

// Other returns the opposing side.
func (c Color) Other() Color { return c ^ 1 }

func (c Color) String() string {
	if c == White {
		return "white"
	}
	return "black"
}

// PieceType is a colourless piece kind, 1..6.
type PieceType uint8

const (
	NoPieceType PieceType = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
)

// Piece packs a PieceType in the low three bits and the colour in bit 3.
type Piece uint8

const (
	NoPiece     Piece = 0
	WhitePawn   Piece = Piece(Pawn)
	WhiteKnight Piece = Piece(Knight)
	WhiteBishop Piece = Piece(Bishop)
	WhiteRook   Piece = Piece(Rook)
	WhiteQueen  Piece = Piece(Queen)
	WhiteKing   Piece = Piece(King)
	BlackPawn   Piece = Piece(Pawn) | 8
	BlackKnight Piece = Piece(Knight) | 8
	BlackBishop Piece = Piece(Bishop) | 8
	BlackRook   Piece = Piece(Rook) | 8
	BlackQueen  Piece = Piece(Queen) | 8
	BlackKing   Piece = Piece(King) | 8
)

// NewPiece builds a Piece from its colour and type.
func NewPiece(c Color, pt PieceType) Piece {
	if pt == NoPieceType {
		return NoPiece
	}
	return Piece(pt) | Piece(c)<<3
}

func (p Piece) Type() PieceType { return PieceType(p & 7) }
func (p Piece) Color() Color { return Color(p>>3&1) }

const pieceLetters = " PNBRQK"

// Letter returns the FEN letter of p, uppercase for white.
func (p Piece) Letter() byte {
	if p == NoPiece {
		return '_'
	}
	ch := pieceLetters[p.Type()]
	if p.Color() == Black {
		ch += 'a' - 'A'
	}
	return ch
}

func pieceFromLetter(ch byte) Piece {
	c := White
	if ch >= 'a' && ch <= 'z' {
		c = Black
		ch -= 'a' - 'A'
	}
	for i := 1; i < len(pieceLetters); i++ {
		if pieceLetters[i] == ch {
			return NewPiece(c, PieceType(i))
		}
	}
	return NoPiece
}

// Square indexes the board as file+rank*8, a1 = 0, h8 = 63.
type Square int8

const NoSquare Square = -1

// SquareAt returns the square for a zero-based file and rank.
func SquareAt(file, rank int) Square { return Square(rank*8 + file) }

func (s Square) File() int { return int(s) & 7 }
func (s Square) Rank() int { return int(s) >> 3 }

func (s Square) String() string {
	if s < 0 || s > 63 {
		return "-"
	}
	return string([]byte{byte('a' + s.File()), byte('1' + s.Rank())})
}

// ParseSquare converts "e4" style text to a Square.
func ParseSquare(text string) (Square, error) {
	if len(text) != 2 {
		return NoSquare, fmt.Errorf("square %q: want two characters", text)
	}
	file, rank := text[0], text[1]
	if file < 'a' || file > 'h' {
		return NoSquare, fmt.Errorf("square %q: column outside a-h", text)
	}
	if rank < '1' || rank > '8' {
		return NoSquare, fmt.Errorf("square %q: row outside 1-8", text)
	}
	return SquareAt(int(file-'a'), int(rank-'1')), nil
}

// CastlingRights holds one bit per side and wing.
type CastlingRights uint8

const (
	CastlingWhiteK CastlingRights = 1 << iota
	CastlingWhiteQ
	CastlingBlackK
	CastlingBlackQ
)

// Position is a full board state. It holds no pointers, so assignment copies it and
// == compares it bit for bit.
type Position struct {
	pieces   [2][6]uint64
	side     Color
	castling CastlingRights
	ep       Square
	halfmove int
	fullmove int
	hash     uint64
	simple   uint64
}

// NewPosition returns the standard initial position.
func NewPosition() *Position {
	p, err := ParseFEN(FENStartPos)
	if err != nil {
		panic(err)
	}
	return p
}

// Bitboard returns the set of squares holding pieces of colour c and type pt.
func (p *Position) Bitboard(c Color, pt PieceType) uint64 { return p.pieces[c][pt-1] }

// Occupancy returns every square occupied by colour c.
func (p *Position) Occupancy(c Color) uint64 {
	s := p.pieces[c]
	return s[0] | s[1] | s[2] | s[3] | s[4] | s[5]
}

// AllOccupancy returns every occupied square.
func (p *Position) AllOccupancy() uint64 { return p.Occupancy(White) | p.Occupancy(Black) }

// PieceAt scans the twelve sets for the piece on sq.
func (p *Position) PieceAt(sq Square) Piece {
	mask := bb(sq)
	for c := White; c <= Black; c++ {
		for i, set := range p.pieces[c] {
			if set&mask != 0 {
				return NewPiece(c, PieceType(i+1))
			}
		}
	}
	return NoPiece
}

func (p *Position) colorPieceAt(c Color, sq Square) Piece {
	mask := bb(sq)
	for i, set := range p.pieces[c] {
		if set&mask != 0 {
			return NewPiece(c, PieceType(i+1))
		}
	}
	return NoPiece
}

func (p *Position) SideToMove() Color { return p.side }
func (p *Position) Castling() CastlingRights { return p.castling }
func (p *Position) EnPassantSquare() Square { return p.ep }
func (p *Position) HalfmoveClock() int { return p.halfmove }
func (p *Position) FullmoveNumber() int { return p.fullmove }
func (p *Position) Hash() uint64 { return p.hash }
func (p *Position) SimpleHash() uint64 { return p.simple }
func (p *Position) Count(c Color, pt PieceType) int { return bits.OnesCount64(p.Bitboard(c, pt)) }

// KingSquare returns the square of c's king, or NoSquare when there is none.
func (p *Position) KingSquare(c Color) Square {
	k := p.Bitboard(c, King)
	if k == 0 {
		return NoSquare
	}
	return Square(bits.TrailingZeros64(k))
}

// PieceCount returns the number of pieces of both colours on the board.
func (p *Position) PieceCount() int { return bits.OnesCount64(p.AllOccupancy()) }

func bb(sq Square) uint64 { return 1 << uint(sq) }

func popLSB(mask *uint64) Square {
	sq := bits.TrailingZeros64(*mask)
	*mask &= *mask - 1
	return Square(sq)
}

// squares lists the set bits of mask in ascending order.
func squares(mask uint64) []Square {
	out := make([]Square, 0, bits.OnesCount64(mask))
	for mask != 0 {
		out = append(out, popLSB(&mask))
	}
	return out
}

func (p *Position) addPiece(sq Square, pc Piece) {
	p.pieces[pc.Color()][pc.Type()-1] |= bb(sq)
}

func (p *Position) removePiece(sq Square, pc Piece) {
	p.pieces[pc.Color()][pc.Type()-1] &^= bb(sq)
}

// SetPiece places pc on sq, replacing whatever was there, and recomputes both hashes.
func (p *Position) SetPiece(sq Square, pc Piece) {
	if old := p.PieceAt(sq); old != NoPiece {
		p.removePiece(sq, old)
	}
	if pc != NoPiece {
		p.addPiece(sq, pc)
	}
	p.rehash()
}

// Validate cross-checks the set invariants and the stored hashes.
func (p *Position) Validate() bool {
	var seen uint64
	for c := White; c <= Black; c++ {
		for _, set := range p.pieces[c] {
			if seen&set != 0 {
				return false
			}
			seen |= set
		}
	}
	return p.hash == p.ComputeHash() && p.simple == p.ComputeSimpleHash()
}

// String renders the board as eight rows of letters, rank 8 first.
func (p *Position) String() string {
	buf := make([]byte, 0, 8*17)
	for rank := 7; rank >= 0; rank-- {
		for file := 0; file < 8; file++ {
			buf = append(buf, p.PieceAt(SquareAt(file, rank)).Letter())
			if file < 7 {
				buf = append(buf, ' ')
			}
		}
		buf = append(buf, '\n')
	}
	return string(buf)
}
