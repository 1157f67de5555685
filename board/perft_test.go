package board_test

import (
	"testing"

	gmg "github.com/Oliverans/GooseEngineMG/goosemg"
	"github.com/dylhunn/dragontoothmg"

	"chess-ai/board"
)

const kiwipete = "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"

func mustFEN(t testing.TB, fen string) *board.Position {
	t.Helper()
	p, err := board.ParseFEN(fen)
	if err != nil {
		t.Fatalf("ParseFEN(%q) failed: %v", fen, err)
	}
	return p
}

func TestPerftInitialPosition(t *testing.T) {
	p := mustFEN(t, board.FENStartPos)
	for depth, want := range []uint64{1, 20, 400, 8902} {
		if got := board.Perft(p, depth); got != want {
			t.Fatalf("perft depth%d: got %d want %d", depth, got, want)
		}
	}
}

func TestPerftKnownPositions(t *testing.T) {
	cases := []struct {
		name  string
		fen   string
		depth int
		want  uint64
	}{
		{"kiwipete d1", kiwipete, 1, 48},
		{"kiwipete d2", kiwipete, 2, 2039},
		{"position3 d3", "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1", 3, 2812},
		{"position4 d2", "r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1", 2, 264},
		{"position5 d2", "rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8", 2, 1486},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := mustFEN(t, tc.fen)
			if got := board.Perft(p, tc.depth); got != tc.want {
				t.Fatalf("perft: got %d want %d", got, tc.want)
			}
		})
	}
}

func TestPerftDivide_InitialDepth2(t *testing.T) {
	div := board.PerftDivide(mustFEN(t, board.FENStartPos), 2)
	if len(div) != 20 {
		t.Fatalf("divide length: got %d want %d", len(div), 20)
	}
	var sum uint64
	for m, n := range div {
		if n != 20 {
			t.Fatalf("%s: got %d children want 20", m, n)
		}
		sum += n
	}
	if sum != 400 {
		t.Fatalf("divide sum: got %d want %d", sum, 400)
	}
}

func dragontoothPerft(b *dragontoothmg.Board, depth int) uint64 {
	if depth == 0 {
		return 1
	}
	var nodes uint64
	for _, m := range b.GenerateLegalMoves() {
		undo := b.Apply(m)
		nodes += dragontoothPerft(b, depth-1)
		undo()
	}
	return nodes
}

// Two independent generators must agree with ours node for node.
func TestPerftMatchesReferenceGenerators(t *testing.T) {
	fens := []string{
		board.FENStartPos,
		kiwipete,
		"r1bqkbnr/pppp1ppp/2n5/1B2p3/4P3/5N2/PPPP1PPP/RNBQK2R b KQkq - 3 3",
		"8/P7/8/8/8/8/6kp/4K3 w - - 0 1",
		"4k3/8/8/3pP3/8/8/8/4K3 w - d6 0 2",
	}
	for _, fen := range fens {
		p := mustFEN(t, fen)
		got := board.Perft(p, 3)

		dt := dragontoothmg.ParseFen(fen)
		if want := dragontoothPerft(&dt, 3); got != want {
			t.Fatalf("%s: perft 3 got %d, dragontoothmg %d", fen, got, want)
		}

		gb, err := gmg.ParseFEN(fen)
		if err != nil {
			t.Fatalf("reference ParseFEN(%q): %v", fen, err)
		}
		if want := gmg.Perft(gb, 3); got != want {
			t.Fatalf("%s: perft 3 got %d, goosemg %d", fen, got, want)
		}
	}
}

func BenchmarkPerftInitial(b *testing.B) {
	p := mustFEN(b, board.FENStartPos)
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		board.Perft(p, 3)
	}
}

func BenchmarkLegalMovesKiwipete(b *testing.B) {
	p := mustFEN(b, kiwipete)
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = p.LegalMoves()
	}
}
