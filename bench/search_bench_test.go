package bench

import (
	"context"
	"testing"

	"chess-ai/engine"
	"chess-ai/game"
)

func benchSearch(b *testing.B, algo engine.Algorithm, heuristic, fen string, budget int) {
	st := game.NewState(mustFEN(b, fen))
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s, err := engine.NewSolver(engine.Config{Algorithm: algo, Heuristic: heuristic, Seed: 1, CacheEvaluations: true})
		if err != nil {
			b.Fatalf("NewSolver: %v", err)
		}
		if _, _, err := s.FindBestMove(context.Background(), st, budget, st.SideToMove()); err != nil {
			b.Fatalf("FindBestMove: %v", err)
		}
	}
}

func BenchmarkMinimax_Kiwipete_D2(b *testing.B) {
	benchSearch(b, engine.Minimax, "light", kiwipete, 2)
}

func BenchmarkAlphaBeta_Kiwipete_D3(b *testing.B) {
	benchSearch(b, engine.AlphaBeta, "light", kiwipete, 3)
}

func BenchmarkAlphaBetaParallel_Kiwipete_D3(b *testing.B) {
	benchSearch(b, engine.AlphaBetaParallel, "light", kiwipete, 3)
}

func BenchmarkIterative_Pos6_D3(b *testing.B) {
	benchSearch(b, engine.IterativeDeepening, "standard", pos6, 3)
}

func BenchmarkMCTS_Pos6_200(b *testing.B) {
	benchSearch(b, engine.MCTS, "material", pos6, 200)
}

func benchHeuristic(b *testing.B, name, fen string) {
	h, err := engine.HeuristicByName(name)
	if err != nil {
		b.Fatalf("HeuristicByName: %v", err)
	}
	st := game.NewState(mustFEN(b, fen))
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = h.Evaluate(st, st.SideToMove())
	}
}

func BenchmarkEvaluate_Standard(b *testing.B) { benchHeuristic(b, "standard-fixed", pos6) }
func BenchmarkEvaluate_Endgame(b *testing.B)  { benchHeuristic(b, "endgame", pos6) }
func BenchmarkEvaluate_Light(b *testing.B)    { benchHeuristic(b, "light", pos6) }
