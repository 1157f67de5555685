package game_test

import (
	"errors"
	"strings"
	"testing"

	"chess-ai/board"
	"chess-ai/game"
)

var ruyLopez = []string{"e2-e4", "e7-e5", "Ng1-f3", "Nb8-c6", "Bf1-b5", "a7-a6", "Bb5xc6", "d7xc6", "O-O"}

func TestSaveLoadRoundTrip(t *testing.T) {
	g := game.New()
	playAll(t, g, ruyLopez...)

	var sb strings.Builder
	if err := g.Save(&sb); err != nil {
		t.Fatal(err)
	}
	saved := sb.String()
	if !strings.Contains(saved, "5. W Ke1-g1") {
		t.Fatalf("castling should be written as a king move:\n%s", saved)
	}

	loaded, err := game.Load(saved)
	if err != nil {
		t.Fatalf("Load: %v\n%s", err, saved)
	}
	if loaded.FEN() != g.FEN() {
		t.Fatalf("FEN after load = %s, want %s", loaded.FEN(), g.FEN())
	}
	if got, want := len(loaded.Moves()), len(ruyLopez); got != want {
		t.Fatalf("loaded %d moves, want %d", got, want)
	}
	// Loaded games can be undone move by move.
	if err := loaded.Undo(); err != nil {
		t.Fatal(err)
	}
	if loaded.State().Position().PieceAt(board.SquareAt(4, 0)) != board.WhiteKing {
		t.Fatalf("undo of O-O should put the king back on e1")
	}
}

func TestLoadFromFENHeaderWithComments(t *testing.T) {
	text := `# promotion race
8/P7/8/7k/8/8/7p/4K3 w - - 0 1
1. W a7-a8=Q B h2-h1=N
# the knight checks nothing
2. W Qa8-b7`
	g, err := game.Load(text)
	if err != nil {
		t.Fatal(err)
	}
	pos := g.State().Position()
	if pos.PieceAt(board.SquareAt(1, 6)) != board.WhiteQueen {
		t.Fatalf("queen should stand on b7: %s", pos.ToFEN())
	}
	if pos.PieceAt(board.SquareAt(7, 0)) != board.BlackKnight {
		t.Fatalf("black should have under-promoted on h1: %s", pos.ToFEN())
	}
}

func TestLoadGridWithoutHeader(t *testing.T) {
	text := `B
r _ _ _ k _ _ r
_ _ _ _ _ _ _ _
_ _ _ _ _ _ _ _
_ _ _ _ _ _ _ _
_ _ _ _ _ _ _ _
_ _ _ _ _ _ _ _
_ _ _ _ _ _ _ _
R _ _ _ K _ _ R
1. W .. B o-o-o`
	g, err := game.Load(text)
	if err != nil {
		t.Fatal(err)
	}
	pos := g.State().Position()
	if pos.PieceAt(board.SquareAt(2, 7)) != board.BlackKing || pos.PieceAt(board.SquareAt(3, 7)) != board.BlackRook {
		t.Fatalf("black should have castled long: %s", pos.ToFEN())
	}
	if pos.Castling()&(board.CastlingBlackK|board.CastlingBlackQ) != 0 {
		t.Fatalf("black castling rights should be gone: %s", pos.ToFEN())
	}
}

func TestLoadRejects(t *testing.T) {
	tests := []struct {
		name string
		text string
		want error
	}{
		{"empty", "# nothing\n", game.ErrParseFailure},
		{"bad fen", "not a position\n1. W e2-e4", game.ErrParseFailure},
		{"illegal replay", board.FENStartPos + "\n1. W e2-e5", game.ErrIllegalMove},
		{"move after mate", board.FENStartPos + "\n1. W f2-f3 B e7-e5\n2. W g2-g4 B Qd8-h4\n3. W a2-a3", game.ErrIllegalMove},
		{"bad square in history", board.FENStartPos + "\n1. W e2-e4 B e7-e5\n2. W Nz1-f3\n", game.ErrParseFailure},
		{"stray token", board.FENStartPos + "\n1. W e2-e4 B e7-e5 draw?\n", game.ErrParseFailure},
		{"marker without move", board.FENStartPos + "\n1. W e2-e4 B\n", game.ErrParseFailure},
		{"mated side", "rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3", game.ErrParseFailure},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := game.Load(tt.text); !errors.Is(err, tt.want) {
				t.Fatalf("Load = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestExtractMoves(t *testing.T) {
	text := "1. W e2-e4 B e7-e5\n# 2. W d2-d4\n2. W Ng1xf3+ B O-O-O# 3. W e7-e8=Q"
	got, err := game.ExtractMoves(text)
	if err != nil {
		t.Fatalf("ExtractMoves: %v", err)
	}
	want := []string{"e2-e4", "e7-e5", "g1xf3", "O-O-O", "e7-e8=Q"}
	if len(got) != len(want) {
		t.Fatalf("ExtractMoves = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("move %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestExtractMovesRejectsDamagedHistory(t *testing.T) {
	for _, text := range []string{
		"1. W e2-e4 B e7-e5\n2. W Nz1-f3",
		"1. W e2-e4 B e7-e9",
		"1. e2-e4",
		"1. W W e2-e4",
	} {
		moves, err := game.ExtractMoves(text)
		var pe *game.ParseError
		if !errors.As(err, &pe) {
			t.Fatalf("ExtractMoves(%q) = %v, %v; want a ParseError", text, moves, err)
		}
		if moves != nil {
			t.Fatalf("ExtractMoves(%q) returned moves %v alongside the error", text, moves)
		}
	}
}
