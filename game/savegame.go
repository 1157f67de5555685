package game

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"chess-ai/board"
)

// Save writes the FEN of the starting position followed by the moves up to the history
// cursor, one full move per line:
//
//	1. W e2-e4 B e7-e5
//	2. W Ng1-f3 B Nb8-c6
func (g *Game) Save(w io.Writer) error {
	g.mu.Lock()
	start := g.start
	moves := g.history.Moves()
	g.mu.Unlock()

	var sb strings.Builder
	sb.WriteString(start.ToFEN())
	sb.WriteByte('\n')
	n := start.FullmoveNumber()
	i := 0
	if start.SideToMove() == board.Black && len(moves) > 0 {
		fmt.Fprintf(&sb, "%d. W .. B %s\n", n, moves[0].Algebraic())
		i, n = 1, n+1
	}
	for ; i < len(moves); i += 2 {
		fmt.Fprintf(&sb, "%d. W %s", n, moves[i].Algebraic())
		if i+1 < len(moves) {
			fmt.Fprintf(&sb, " B %s", moves[i+1].Algebraic())
		}
		sb.WriteByte('\n')
		n++
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

// Load builds a game from saved text. The text opens with either a board grid (first
// line W or B) or a single FEN line; the moves that follow are replayed in order.
// Lines starting with '#' are comments. Replay produces no events.
func Load(text string, opts ...Option) (*Game, error) {
	setup, moves := splitSaved(text)
	if setup == "" {
		return nil, &ParseError{Input: text, Err: fmt.Errorf("no starting position")}
	}

	var (
		pos *board.Position
		err error
	)
	if first := strings.Fields(setup)[0]; first == "W" || first == "B" || first == "w" || first == "b" {
		pos, err = board.ParseGrid(setup)
	} else {
		pos, err = board.LoadFEN(strings.TrimSpace(setup))
	}
	if err != nil {
		return nil, &ParseError{Input: setup, Err: err}
	}

	history, err := ExtractMoves(moves)
	if err != nil {
		return nil, err
	}
	g, err := NewFromPosition(pos, opts...)
	if err != nil {
		return nil, err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	for i, text := range history {
		if g.state.IsOver() {
			return nil, &MoveError{Move: text, Reason: fmt.Sprintf("move %d played after %s", i+1, g.state.outcome)}
		}
		m, err := ParseMove(&g.state.pos, text)
		if err != nil {
			return nil, fmt.Errorf("replaying move %d: %w", i+1, err)
		}
		g.commit(m, false)
	}
	g.logger.Debug("game loaded", "game", g.id, "moves", g.history.Len(), "fen", g.state.pos.ToFEN())
	return g, nil
}

var moveNumber = regexp.MustCompile(`^\d+\.(\s|$)`)

// splitSaved separates the setup block from the move list. The move list starts at the
// first line opening with a move number such as "1.".
func splitSaved(text string) (setup, moves string) {
	var head, tail []string
	inMoves := false
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		if !inMoves && moveNumber.MatchString(trimmed) {
			inMoves = true
		}
		if inMoves {
			tail = append(tail, trimmed)
		} else {
			head = append(head, trimmed)
		}
	}
	return strings.Join(head, "\n"), strings.Join(tail, "\n")
}
