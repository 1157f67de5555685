package board

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// FENStartPos is the FEN string for the standard initial chess position.
const FENStartPos = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

var (
	// ErrMalformedPosition is returned when position text cannot be parsed.
	ErrMalformedPosition = errors.New("malformed position")
	// ErrInvalidPosition is returned when a parsed position breaks a load rule.
	ErrInvalidPosition = errors.New("invalid position")
)

func malformed(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrMalformedPosition, fmt.Sprintf(format, args...))
}

// ParseFEN parses a FEN string. The half-move and full-move fields are optional. Use
// LoadFEN for positions a game should start from.
func ParseFEN(fen string) (*Position, error) {
	fields := strings.Fields(fen)
	if len(fields) < 4 {
		return nil, malformed("FEN %q: not enough fields", fen)
	}

	p := &Position{ep: NoSquare, fullmove: 1}
	ranks := strings.Split(fields[0], "/")
	if len(ranks) != 8 {
		return nil, malformed("FEN %q: want 8 ranks, got %d", fen, len(ranks))
	}
	for i, rankStr := range ranks {
		rank := 7 - i
		file := 0
		for j := 0; j < len(rankStr); j++ {
			ch := rankStr[j]
			if ch >= '1' && ch <= '8' {
				file += int(ch - '0')
				continue
			}
			pc := pieceFromLetter(ch)
			if pc == NoPiece {
				return nil, malformed("FEN %q: unrecognized piece %q", fen, ch)
			}
			if file >= 8 {
				return nil, malformed("FEN %q: too many squares in rank %d", fen, rank+1)
			}
			p.addPiece(SquareAt(file, rank), pc)
			file++
		}
		if file != 8 {
			return nil, malformed("FEN %q: rank %d does not have 8 columns", fen, rank+1)
		}
	}

	switch fields[1] {
	case "w":
		p.side = White
	case "b":
		p.side = Black
	default:
		return nil, malformed("FEN %q: side to move must be 'w' or 'b'", fen)
	}

	castling, err := parseCastling(fields[2])
	if err != nil {
		return nil, malformed("FEN %q: %v", fen, err)
	}
	p.castling = castling

	if fields[3] != "-" {
		sq, err := ParseSquare(fields[3])
		if err != nil {
			return nil, malformed("FEN %q: en passant: %v", fen, err)
		}
		p.ep = sq
	}

	if len(fields) > 4 {
		if p.halfmove, err = strconv.Atoi(fields[4]); err != nil {
			return nil, malformed("FEN %q: halfmove clock is not a number", fen)
		}
	}
	if len(fields) > 5 {
		if p.fullmove, err = strconv.Atoi(fields[5]); err != nil {
			return nil, malformed("FEN %q: fullmove number is not a number", fen)
		}
	}

	p.rehash()
	return p, nil
}

// LoadFEN parses fen and rejects it unless CheckLoadable passes.
func LoadFEN(fen string) (*Position, error) {
	p, err := ParseFEN(fen)
	if err != nil {
		return nil, err
	}
	if err := p.CheckLoadable(); err != nil {
		return nil, err
	}
	return p, nil
}

func parseCastling(field string) (CastlingRights, error) {
	var cr CastlingRights
	if field == "-" {
		return 0, nil
	}
	for _, ch := range field {
		switch ch {
		case 'K':
			cr |= CastlingWhiteK
		case 'Q':
			cr |= CastlingWhiteQ
		case 'k':
			cr |= CastlingBlackK
		case 'q':
			cr |= CastlingBlackQ
		default:
			return 0, fmt.Errorf("invalid castling rights character %q", ch)
		}
	}
	return cr, nil
}

func (cr CastlingRights) String() string {
	if cr == 0 {
		return "-"
	}
	var sb strings.Builder
	for i, ch := range "KQkq" {
		if cr&(1<<i) != 0 {
			sb.WriteRune(ch)
		}
	}
	return sb.String()
}

// CheckLoadable rejects positions a game cannot start from: a side with no king or
// several kings, or a side that is already checkmated.
func (p *Position) CheckLoadable() error {
	for c := White; c <= Black; c++ {
		if n := p.Count(c, King); n != 1 {
			return fmt.Errorf("%w: %s has %d kings", ErrInvalidPosition, c, n)
		}
	}
	for c := White; c <= Black; c++ {
		if p.IsCheckMate(c) {
			return fmt.Errorf("%w: %s is already checkmated", ErrInvalidPosition, c)
		}
	}
	return nil
}

// ToFEN produces the FEN string of the position.
func (p *Position) ToFEN() string {
	var sb strings.Builder
	for rank := 7; rank >= 0; rank-- {
		empty := 0
		for file := 0; file < 8; file++ {
			pc := p.PieceAt(SquareAt(file, rank))
			if pc == NoPiece {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte('0' + byte(empty))
				empty = 0
			}
			sb.WriteByte(pc.Letter())
		}
		if empty > 0 {
			sb.WriteByte('0' + byte(empty))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}
	if p.side == White {
		sb.WriteString(" w ")
	} else {
		sb.WriteString(" b ")
	}
	sb.WriteString(p.castling.String())
	sb.WriteByte(' ')
	sb.WriteString(p.ep.String())
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(p.halfmove))
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(p.fullmove))
	return sb.String()
}
