package bench

import (
	"testing"

	"chess-ai/board"
)

const (
	kiwipete = "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"
	pos6     = "r4rk1/1pp1qppp/p1np1n2/2b1p3/2B1P3/2NP1N2/PPP1QPPP/R4RK1 w - - 0 10"
)

func mustFEN(b *testing.B, fen string) *board.Position {
	b.Helper()
	pos, err := board.ParseFEN(fen)
	if err != nil {
		b.Fatalf("ParseFEN: %v", err)
	}
	return pos
}

func benchPseudoMoves(b *testing.B, fen string) {
	pos := mustFEN(b, fen)
	buf := make([]board.Move, 0, 256)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		buf = pos.PseudoMovesFor(pos.SideToMove(), buf[:0])
	}
}

func BenchmarkPseudoMoves_Initial(b *testing.B)  { benchPseudoMoves(b, board.FENStartPos) }
func BenchmarkPseudoMoves_Kiwipete(b *testing.B) { benchPseudoMoves(b, kiwipete) }
func BenchmarkPseudoMoves_Pos6(b *testing.B)     { benchPseudoMoves(b, pos6) }

func benchLegalMoves(b *testing.B, fen string) {
	pos := mustFEN(b, fen)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = pos.LegalMoves()
	}
}

func BenchmarkLegalMoves_Kiwipete(b *testing.B) { benchLegalMoves(b, kiwipete) }
func BenchmarkLegalMoves_EP(b *testing.B)       { benchLegalMoves(b, "k7/8/8/3pP3/8/8/8/7K w - d6 0 2") }

func BenchmarkMakeUnmake_AllMoves_Initial(b *testing.B) {
	pos := mustFEN(b, board.FENStartPos)
	moves := pos.LegalMoves()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for _, m := range moves {
			ok, u := pos.MakeMove(m)
			if !ok {
				b.Fatalf("illegal move in cached list: %v", m)
			}
			pos.UnmakeMove(m, u)
		}
	}
}

func BenchmarkIsCheckMate_Kiwipete(b *testing.B) {
	pos := mustFEN(b, kiwipete)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = pos.IsCheckMate(board.White)
	}
}
