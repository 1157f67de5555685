package game

import (
	"fmt"
	"regexp"
	"strings"

	"chess-ai/board"
)

// MoveText is a parsed but not yet resolved move.
type MoveText struct {
	Raw       string
	From, To  board.Square
	Capture   bool
	Promotion board.PieceType
	// Castle is 'K' or 'Q' for castling text, zero otherwise.
	Castle byte
}

var (
	moveShape   = regexp.MustCompile(`^([KQRBN])?([a-zA-Z])(\d{1,2})([-x])([a-zA-Z])(\d{1,2})(?:=([A-Za-z]))?([+#])?$`)
	castleShape = regexp.MustCompile(`^(?i:[o0]-[o0](-[o0])?)([+#])?$`)
	historyMove = regexp.MustCompile(`^(?:[KQRBN])?((?:O-O(?:-O)?|o-o(?:-o)?|[a-h][1-8][-x][a-h][1-8](?:=[QRBN])?))(?:[+#])?$`)
)

var promotionLetters = map[byte]board.PieceType{'Q': board.Queen, 'R': board.Rook, 'B': board.Bishop, 'N': board.Knight}

// ParseMoveText parses "e2-e4", "e4xd5", "e7-e8=Q", "Qe7xe5+", "o-o" and "O-O-O".
// Squares outside a-h / 1-8 fail with a ParseError.
func ParseMoveText(text string) (MoveText, error) {
	text = strings.TrimSpace(text)
	mt := MoveText{Raw: text, From: board.NoSquare, To: board.NoSquare}
	if g := castleShape.FindStringSubmatch(text); g != nil {
		mt.Castle = 'K'
		if g[1] != "" {
			mt.Castle = 'Q'
		}
		return mt, nil
	}
	g := moveShape.FindStringSubmatch(text)
	if g == nil {
		return mt, &ParseError{Input: text, Err: fmt.Errorf("want coordinates like e2-e4")}
	}
	var err error
	if mt.From, err = board.ParseSquare(strings.ToLower(g[2]) + g[3]); err != nil {
		return mt, &ParseError{Input: text, Err: err}
	}
	if mt.To, err = board.ParseSquare(strings.ToLower(g[5]) + g[6]); err != nil {
		return mt, &ParseError{Input: text, Err: err}
	}
	mt.Capture = g[4] == "x"
	if g[7] != "" {
		pt, ok := promotionLetters[strings.ToUpper(g[7])[0]]
		if !ok {
			return mt, &ParseError{Input: text, Err: fmt.Errorf("cannot promote to %q", g[7])}
		}
		mt.Promotion = pt
	}
	return mt, nil
}

// Resolve matches the text against the legal moves of pos. A promotion without an
// explicit piece becomes a queen. The capture marker is not checked, so "e2xe4" and
// "e2-e4" name the same move.
func (mt MoveText) Resolve(pos *board.Position) (board.Move, error) {
	legal := pos.LegalMoves()
	if mt.Castle != 0 {
		for _, m := range legal {
			if !m.IsCastle() {
				continue
			}
			if (mt.Castle == 'K') == (m.To.File() == 6) {
				return m, nil
			}
		}
		return board.NullMove, &MoveError{Move: mt.Raw, Reason: "castling not available"}
	}

	promo := mt.Promotion
	for _, m := range legal {
		if m.From != mt.From || m.To != mt.To {
			continue
		}
		if !m.IsPromotion() {
			if promo != board.NoPieceType {
				return board.NullMove, &MoveError{Move: mt.Raw, Reason: "not a promotion"}
			}
			return m, nil
		}
		want := promo
		if want == board.NoPieceType {
			want = board.Queen
		}
		if m.Promotion == want {
			return m, nil
		}
	}

	pc := pos.PieceAt(mt.From)
	switch {
	case pc == board.NoPiece:
		return board.NullMove, &MoveError{Move: mt.Raw, Reason: "no piece on " + mt.From.String()}
	case pc.Color() != pos.SideToMove():
		return board.NullMove, &MoveError{Move: mt.Raw, Reason: "piece belongs to " + pc.Color().String()}
	}
	for _, m := range pos.PseudoMoves() {
		if m.From == mt.From && m.To == mt.To {
			return board.NullMove, &MoveError{Move: mt.Raw, Reason: "leaves the king in check"}
		}
	}
	return board.NullMove, &MoveError{Move: mt.Raw, Reason: "piece cannot reach " + mt.To.String()}
}

// ParseMove parses and resolves text in one step.
func ParseMove(pos *board.Position, text string) (board.Move, error) {
	mt, err := ParseMoveText(text)
	if err != nil {
		return board.NullMove, err
	}
	return mt.Resolve(pos)
}

// annotate marks m with the check or mate it delivered in the position after it.
func annotate(m board.Move, after *State) board.Move {
	m.Flags &^= board.FlagCheck | board.FlagMate
	switch {
	case after.outcome.Status == Checkmate:
		m.Flags |= board.FlagMate
	case after.pos.IsCheck(after.pos.SideToMove()):
		m.Flags |= board.FlagCheck
	}
	return m
}

// ExtractMoves returns the move tokens of history text made of "N. W <move> B <move>"
// groups. Lines starting with '#' are comments. Any other token fails with a ParseError,
// so a damaged save never replays only part of its moves.
func ExtractMoves(text string) ([]string, error) {
	var out []string
	for n, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "#") {
			continue
		}
		marker := false
		for _, tok := range strings.Fields(line) {
			switch {
			case tok == "W" || tok == "B":
				if marker {
					return nil, &ParseError{Input: line, Err: fmt.Errorf("line %d: %s follows a side marker", n+1, tok)}
				}
				marker = true
				continue
			case marker && tok == "..":
			case marker:
				g := historyMove.FindStringSubmatch(tok)
				if g == nil {
					return nil, &ParseError{Input: tok, Err: fmt.Errorf("line %d: not a move", n+1)}
				}
				out = append(out, g[1])
			case moveNumber.MatchString(tok):
			default:
				return nil, &ParseError{Input: tok, Err: fmt.Errorf("line %d: expected a move number or side marker", n+1)}
			}
			marker = false
		}
		if marker {
			return nil, &ParseError{Input: line, Err: fmt.Errorf("line %d: side marker without a move", n+1)}
		}
	}
	return out, nil
}
