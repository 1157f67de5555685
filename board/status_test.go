package board_test

import (
	"errors"
	"strings"
	"testing"

	"chess-ai/board"
)

func TestCheckmate_FoolsMate(t *testing.T) {
	// Black just played Qh4#, White to move and is checkmated.
	p := mustFEN(t, "rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3")
	if !p.IsCheck(board.White) {
		t.Fatalf("expected White to be in check")
	}
	if !p.IsCheckMate(board.White) {
		t.Fatalf("expected checkmate for White")
	}
	if p.IsStaleMate(board.White, p.SideToMove()) {
		t.Fatalf("not stalemate in mate position")
	}
	if len(p.LegalMoves()) != 0 {
		t.Fatalf("expected no legal moves, got %d", len(p.LegalMoves()))
	}
}

func TestStalemateOnlyOnOwnTurn(t *testing.T) {
	p := mustFEN(t, "7k/5Q2/6K1/8/8/8/8/8 b - - 0 1")
	if p.IsCheck(board.Black) {
		t.Fatalf("expected Black not in check")
	}
	if !p.IsStaleMate(board.Black, board.Black) {
		t.Fatalf("expected stalemate for Black on its turn")
	}
	if p.IsStaleMate(board.Black, board.White) {
		t.Fatalf("a side with no moves is not stalemated when it is not its turn")
	}
	if p.IsStaleMate(board.White, board.Black) {
		t.Fatalf("White has moves and is not to move")
	}
}

func TestMateInOne_MakeAndDetect(t *testing.T) {
	p := mustFEN(t, "7k/6pp/6Q1/8/8/2B5/8/6K1 w - - 0 1")
	m := findMove(t, p, "g6g7")
	if m.Captured != board.BlackPawn {
		t.Fatalf("Qxg7 should capture a pawn, got %+v", m)
	}
	ok, u := p.MakeMove(m)
	if !ok {
		t.Fatalf("MakeMove for Qxg7 should be legal")
	}
	defer p.UnmakeMove(m, u)
	if !p.IsCheckMate(board.Black) {
		t.Fatalf("expected checkmate after Qxg7#")
	}
}

func TestInsufficientMaterial(t *testing.T) {
	cases := []struct {
		name string
		fen  string
		want bool
	}{
		{"K v K", "4k3/8/8/8/8/8/8/4K3 w - - 0 1", true},
		{"KB v K", "4k3/8/8/8/8/8/8/2B1K3 w - - 0 1", true},
		{"KN v K", "4k3/8/8/8/8/8/8/1N2K3 b - - 0 1", true},
		{"KB v KB opposite colours", "2b1k3/8/8/8/8/8/8/2B1K3 w - - 0 1", false},
		{"KB v KB same colour", "4kb2/8/8/8/8/8/8/2B1K3 w - - 0 1", true},
		{"KR v K", "4k3/8/8/8/8/8/8/R3K3 w - - 0 1", false},
		{"KQ v K", "4k3/8/8/8/8/8/8/3QK3 w - - 0 1", false},
		{"KP v K", "4k3/8/8/8/8/8/4P3/4K3 w - - 0 1", false},
		{"KNN v K", "4k3/8/8/8/8/8/8/1N2K1N1 w - - 0 1", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := mustFEN(t, tc.fen)
			if got := p.IsDrawByInsufficientMaterial(); got != tc.want {
				t.Fatalf("IsDrawByInsufficientMaterial: got %v want %v", got, tc.want)
			}
		})
	}
}

func TestHasEnoughMaterialToMate(t *testing.T) {
	cases := []struct {
		fen  string
		want bool
	}{
		{"4k3/8/8/8/8/8/8/4K3 w - - 0 1", false},
		{"4k3/8/8/8/8/8/8/2B1K3 w - - 0 1", false},
		{"4k3/8/8/8/8/8/8/2B1KB2 w - - 0 1", true},
		{"4k3/8/8/8/8/8/8/1N2KN2 w - - 0 1", true},
		{"4k3/8/8/8/8/8/8/1N2KB2 w - - 0 1", true},
		{"4k3/8/8/8/8/8/4P3/4K3 w - - 0 1", true},
	}
	for _, tc := range cases {
		if got := mustFEN(t, tc.fen).HasEnoughMaterialToMate(board.White); got != tc.want {
			t.Fatalf("%s: got %v want %v", tc.fen, got, tc.want)
		}
	}
}

func TestRuyLopezBlackHasSafeMoves(t *testing.T) {
	p := mustFEN(t, board.FENStartPos)
	for _, uci := range []string{"e2e4", "e7e5", "g1f3", "b8c6", "f1b5"} {
		p.MakeMove(findMove(t, p, uci))
	}
	moves := p.LegalMoves()
	if len(moves) == 0 {
		t.Fatalf("black has no legal moves after the Ruy Lopez")
	}
	for _, m := range moves {
		if p.IsCheckAfterMove(m) {
			t.Fatalf("%s leaves black in check", m)
		}
	}
}

func TestLoadRejectsBadKingCounts(t *testing.T) {
	bad := []string{
		"4k3/8/8/8/8/8/8/3KK3 w - - 0 1",
		"8/8/8/8/8/8/8/4K3 w - - 0 1",
		"4kk2/8/8/8/8/8/8/4K3 w - - 0 1",
	}
	for _, fen := range bad {
		if _, err := board.LoadFEN(fen); !errors.Is(err, board.ErrInvalidPosition) {
			t.Fatalf("%s: want ErrInvalidPosition, got %v", fen, err)
		}
	}
}

func TestLoadRejectsCheckmatedSide(t *testing.T) {
	_, err := board.LoadFEN("rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3")
	if !errors.Is(err, board.ErrInvalidPosition) {
		t.Fatalf("want ErrInvalidPosition for a mated side, got %v", err)
	}
}

func TestParseFENMalformed(t *testing.T) {
	for _, fen := range []string{
		"",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP w KQkq - 0 1",
		"rnbqkbnr/pppppppp/9/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR x KQkq - 0 1",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq z9 0 1",
	} {
		if _, err := board.ParseFEN(fen); !errors.Is(err, board.ErrMalformedPosition) {
			t.Fatalf("%q: want ErrMalformedPosition, got %v", fen, err)
		}
	}
}

func TestFENRoundTrip(t *testing.T) {
	for _, fen := range corpus {
		if got := mustFEN(t, fen).ToFEN(); got != fen {
			t.Fatalf("round trip: got %q want %q", got, fen)
		}
	}
}

func TestGridRoundTrip(t *testing.T) {
	for _, fen := range corpus {
		p := mustFEN(t, fen)
		q, err := board.ParseGrid(p.Grid())
		if err != nil {
			t.Fatalf("ParseGrid(%s): %v", fen, err)
		}
		if *q != *p {
			t.Fatalf("grid round trip changed %s into %s", fen, q.ToFEN())
		}
	}
}

func TestGridWithoutHeaderInfersCastling(t *testing.T) {
	grid := strings.Join([]string{
		"B",
		"r _ _ _ k _ _ r",
		"_ _ _ _ _ _ _ _",
		"_ _ _ _ _ _ _ _",
		"_ _ _ _ _ _ _ _",
		"_ _ _ _ _ _ _ _",
		"_ _ _ _ _ _ _ _",
		"_ _ _ _ _ _ _ _",
		"R _ _ _ K _ _ _",
	}, "\n")
	p, err := board.ParseGrid(grid)
	if err != nil {
		t.Fatalf("ParseGrid: %v", err)
	}
	if p.SideToMove() != board.Black {
		t.Fatalf("side to move: got %s", p.SideToMove())
	}
	want := board.CastlingWhiteQ | board.CastlingBlackK | board.CastlingBlackQ
	if p.Castling() != want {
		t.Fatalf("castling: got %s want %s", p.Castling(), want)
	}
}

func TestGridRejectsTwoWhiteKings(t *testing.T) {
	grid := "W\n" + strings.Repeat("_ _ _ _ k _ _ _\n", 1) + strings.Repeat("_ _ _ _ _ _ _ _\n", 6) + "_ _ _ K K _ _ _\n"
	if _, err := board.ParseGrid(grid); !errors.Is(err, board.ErrInvalidPosition) {
		t.Fatalf("want ErrInvalidPosition, got %v", err)
	}
}

func TestEndGamePhase(t *testing.T) {
	if mustFEN(t, board.FENStartPos).IsEndGamePhase(board.White) {
		t.Fatalf("the initial position is not an endgame")
	}
	if !mustFEN(t, "8/5k2/8/3P4/8/8/5K2/8 w - - 0 40").IsEndGamePhase(board.White) {
		t.Fatalf("a king and pawn ending at move 40 is an endgame")
	}
}
