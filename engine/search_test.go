package engine

import (
	"context"
	"errors"
	"testing"

	"chess-ai/board"
	"chess-ai/game"
)

var searchCorpus = []string{
	board.FENStartPos,
	"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
	"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
	"r1bqkbnr/pppp1ppp/2n5/4p3/4P3/5N2/PPPP1PPP/RNBQKB1R w KQkq - 2 3",
	"4k3/8/8/3q4/8/2N5/8/4K3 b - - 0 1",
}

func mustState(t *testing.T, fen string) *game.State {
	t.Helper()
	pos, err := board.LoadFEN(fen)
	if err != nil {
		t.Fatalf("LoadFEN(%q): %v", fen, err)
	}
	return game.NewState(pos)
}

func mustSolver(t *testing.T, algo Algorithm, heuristic string) *Solver {
	t.Helper()
	s, err := NewSolver(Config{Algorithm: algo, Heuristic: heuristic, Workers: 4, CacheEvaluations: true, Seed: 1})
	if err != nil {
		t.Fatalf("NewSolver(%s, %s): %v", algo, heuristic, err)
	}
	return s
}

func isLegal(st *game.State, m board.Move) bool {
	for _, l := range st.LegalMoves() {
		if l.SameAs(m) {
			return true
		}
	}
	return false
}

func TestParseAlgorithm(t *testing.T) {
	for _, name := range AlgorithmNames() {
		a, err := ParseAlgorithm(name)
		if err != nil {
			t.Fatalf("ParseAlgorithm(%q): %v", name, err)
		}
		if a.String() != name {
			t.Fatalf("round trip %q gave %q", name, a)
		}
	}
	if _, err := ParseAlgorithm("negascout"); err == nil {
		t.Fatalf("expected error for unknown algorithm")
	}
	if _, err := NewSolver(Config{Heuristic: "nope"}); err == nil {
		t.Fatalf("expected error for unknown heuristic")
	}
}

func TestAlphaBetaMatchesMinimax(t *testing.T) {
	for _, fen := range searchCorpus {
		for depth := 1; depth <= 2; depth++ {
			st := mustState(t, fen)
			side := st.SideToMove()
			_, want, err := mustSolver(t, Minimax, "shannon").FindBestMove(context.Background(), st, depth, side)
			if err != nil {
				t.Fatalf("minimax %s: %v", fen, err)
			}
			_, got, err := mustSolver(t, AlphaBeta, "shannon").FindBestMove(context.Background(), st, depth, side)
			if err != nil {
				t.Fatalf("alphabeta %s: %v", fen, err)
			}
			if got != want {
				t.Fatalf("%s depth %d: alphabeta score %v, minimax %v", fen, depth, got, want)
			}
		}
	}
}

func TestAlphaBetaMatchesMinimaxDepthThree(t *testing.T) {
	fen := "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1"
	st := mustState(t, fen)
	_, want, _ := mustSolver(t, Minimax, "material").FindBestMove(context.Background(), st, 3, board.White)
	_, got, _ := mustSolver(t, AlphaBeta, "material").FindBestMove(context.Background(), st, 3, board.White)
	if got != want {
		t.Fatalf("alphabeta score %v, minimax %v", got, want)
	}
}

func TestParallelMatchesSequential(t *testing.T) {
	pairs := []struct{ seq, par Algorithm }{
		{AlphaBeta, AlphaBetaParallel},
		{IterativeDeepening, ParallelIterativeDeepening},
	}
	for _, fen := range searchCorpus {
		for _, p := range pairs {
			st := mustState(t, fen)
			side := st.SideToMove()
			_, want, _ := mustSolver(t, p.seq, "light").FindBestMove(context.Background(), st, 2, side)
			m, got, err := mustSolver(t, p.par, "light").FindBestMove(context.Background(), st, 2, side)
			if err != nil {
				t.Fatalf("%s %s: %v", p.par, fen, err)
			}
			if got != want {
				t.Fatalf("%s on %s: score %v, %s gave %v", p.par, fen, got, p.seq, want)
			}
			if !isLegal(st, m) {
				t.Fatalf("%s on %s returned illegal %s", p.par, fen, m)
			}
		}
	}
}

func TestTreeSearchesFindMateInOne(t *testing.T) {
	for _, algo := range []Algorithm{Minimax, AlphaBeta, AlphaBetaParallel, IterativeDeepening, ParallelIterativeDeepening} {
		st := mustState(t, "7k/6pp/6Q1/8/8/2B5/8/6K1 w - - 0 1")
		m, score, err := mustSolver(t, algo, "standard").FindBestMove(context.Background(), st, 2, board.White)
		if err != nil {
			t.Fatalf("%s: %v", algo, err)
		}
		after := st.Clone()
		if !after.Push(m) {
			t.Fatalf("%s returned illegal %s", algo, m)
		}
		if after.Outcome().Status != game.Checkmate {
			t.Fatalf("%s chose %s, not a mate (score %v)", algo, m, score)
		}
		if !isMateScore(score) || score < 0 {
			t.Fatalf("%s: expected a winning mate score, got %v", algo, score)
		}
	}
}

func TestSearchAvoidsHangingQueen(t *testing.T) {
	st := mustState(t, "4k3/8/8/3q4/8/2N5/8/4K3 b - - 0 1")
	m, _, err := mustSolver(t, AlphaBeta, "material").FindBestMove(context.Background(), st, 2, board.Black)
	if err != nil {
		t.Fatalf("FindBestMove: %v", err)
	}
	knight := st.Position().Destinations(board.SquareAt(2, 2), false)
	if m.Piece.Type() == board.Queen && knight&(1<<uint(m.To)) != 0 {
		t.Fatalf("queen moved to %s where the knight takes it", m.To)
	}
}

func TestCancelledSearchReturnsLegalMove(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	for _, name := range AlgorithmNames() {
		algo, _ := ParseAlgorithm(name)
		st := mustState(t, searchCorpus[1])
		m, _, err := mustSolver(t, algo, "standard-fixed").FindBestMove(ctx, st, 6, board.White)
		if err != nil {
			t.Fatalf("%s: cancelled search returned error %v", name, err)
		}
		if !isLegal(st, m) {
			t.Fatalf("%s: cancelled search returned %s", name, m)
		}
	}
}

func TestSearchDoesNotTouchCallerState(t *testing.T) {
	st := mustState(t, searchCorpus[1])
	before := st.Position().ToFEN()
	reps := st.RepetitionTable()
	for _, name := range AlgorithmNames() {
		algo, _ := ParseAlgorithm(name)
		if _, _, err := mustSolver(t, algo, "light").FindBestMove(context.Background(), st, 2, board.White); err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if got := st.Position().ToFEN(); got != before {
			t.Fatalf("%s changed the position: %s", name, got)
		}
		if len(st.RepetitionTable()) != len(reps) {
			t.Fatalf("%s changed the repetition table", name)
		}
	}
}

func TestSearchExhaustedOnTerminalState(t *testing.T) {
	stalemate := mustState(t, "7k/5Q2/6K1/8/8/8/8/8 b - - 0 1")
	if _, _, err := mustSolver(t, AlphaBeta, "standard").FindBestMove(context.Background(), stalemate, 2, board.Black); !errors.Is(err, game.ErrSearchExhausted) {
		t.Fatalf("stalemate: expected ErrSearchExhausted, got %v", err)
	}

	g := game.New()
	for _, mv := range []string{"f2-f3", "e7-e5", "g2-g4", "d8-h4"} {
		if err := g.Play(mv); err != nil {
			t.Fatalf("Play(%s): %v", mv, err)
		}
	}
	for _, name := range AlgorithmNames() {
		algo, _ := ParseAlgorithm(name)
		if _, _, err := mustSolver(t, algo, "standard").FindBestMove(context.Background(), g.State(), 3, board.White); !errors.Is(err, game.ErrSearchExhausted) {
			t.Fatalf("%s after mate: expected ErrSearchExhausted, got %v", name, err)
		}
	}
}

func TestSolverDrivesGame(t *testing.T) {
	s := mustSolver(t, IterativeDeepening, "light")
	g := game.New(game.WithEngine(s, 2))
	for i := 0; i < 4; i++ {
		if _, err := g.StartAI(context.Background()); err != nil {
			t.Fatalf("StartAI #%d: %v", i, err)
		}
	}
	if n := len(g.Moves()); n != 4 {
		t.Fatalf("expected 4 moves, got %d", n)
	}
	if st := s.LastStats(); st.Depth != 2 || st.Nodes == 0 {
		t.Fatalf("unexpected stats %+v", st)
	}
}
