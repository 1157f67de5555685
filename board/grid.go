package board

import (
	"bufio"
	"strconv"
	"strings"
)

// ParseGrid reads the board-file layout:
//
//	W
//	KQkq - 0 1
//	r n b q k b n r
//	...
//	R N B Q K B N R
//
// The first line names the side to move. The metadata line (castling, en passant,
// half-move clock, full-move number) is optional; without it castling rights are
// inferred from kings and rooks on their home squares. The eight rows run from rank 8
// down with '_' for empty squares. Anything after the eighth row is ignored.
func ParseGrid(text string) (*Position, error) {
	sc := bufio.NewScanner(strings.NewReader(text))
	var lines []string
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		lines = append(lines, line)
	}
	if len(lines) < 9 {
		return nil, malformed("board grid: want side line and 8 rows, got %d lines", len(lines))
	}

	p := &Position{ep: NoSquare, fullmove: 1}
	switch lines[0] {
	case "W", "w":
		p.side = White
	case "B", "b":
		p.side = Black
	default:
		return nil, malformed("board grid: side line must be W or B, got %q", lines[0])
	}
	lines = lines[1:]

	header := false
	if fields := strings.Fields(lines[0]); len(fields) == 4 && !isGridRow(fields) {
		header = true
		cr, err := parseCastling(fields[0])
		if err != nil {
			return nil, malformed("board grid header: %v", err)
		}
		p.castling = cr
		if fields[1] != "-" {
			if p.ep, err = ParseSquare(fields[1]); err != nil {
				return nil, malformed("board grid header: en passant: %v", err)
			}
		}
		if p.halfmove, err = strconv.Atoi(fields[2]); err != nil {
			return nil, malformed("board grid header: halfmove clock %q", fields[2])
		}
		if p.fullmove, err = strconv.Atoi(fields[3]); err != nil {
			return nil, malformed("board grid header: fullmove number %q", fields[3])
		}
		lines = lines[1:]
	}
	if len(lines) < 8 {
		return nil, malformed("board grid: want 8 rows, got %d", len(lines))
	}

	for i := 0; i < 8; i++ {
		cells := strings.Fields(lines[i])
		if len(cells) != 8 {
			return nil, malformed("board grid: row %d has %d cells", 8-i, len(cells))
		}
		for file, cell := range cells {
			if len(cell) != 1 {
				return nil, malformed("board grid: cell %q", cell)
			}
			if cell[0] == '_' {
				continue
			}
			pc := pieceFromLetter(cell[0])
			if pc == NoPiece {
				return nil, malformed("board grid: unrecognized piece %q", cell)
			}
			p.addPiece(SquareAt(file, 7-i), pc)
		}
	}
	if !header {
		p.castling = p.inferCastling()
	}

	p.rehash()
	if err := p.CheckLoadable(); err != nil {
		return nil, err
	}
	return p, nil
}

func isGridRow(fields []string) bool {
	for _, f := range fields {
		if len(f) != 1 || (f != "_" && pieceFromLetter(f[0]) == NoPiece) {
			return false
		}
	}
	return true
}

func (p *Position) inferCastling() CastlingRights {
	var cr CastlingRights
	for _, side := range castleSpecs {
		for _, cs := range side {
			c := White
			if cs.king == 60 {
				c = Black
			}
			if p.pieces[c][King-1]&bb(cs.king) != 0 && p.pieces[c][Rook-1]&bb(cs.rook) != 0 {
				cr |= cs.right
			}
		}
	}
	return cr
}

// Grid renders the position in the layout ParseGrid reads, header line included.
func (p *Position) Grid() string {
	var sb strings.Builder
	if p.side == White {
		sb.WriteString("W\n")
	} else {
		sb.WriteString("B\n")
	}
	sb.WriteString(p.castling.String())
	sb.WriteByte(' ')
	sb.WriteString(p.ep.String())
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(p.halfmove))
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(p.fullmove))
	sb.WriteByte('\n')
	sb.WriteString(p.String())
	return sb.String()
}
