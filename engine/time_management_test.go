package engine

import (
	"context"
	"testing"
	"time"

	"chess-ai/board"
)

func TestMoveTime(t *testing.T) {
	start, _ := board.LoadFEN(board.FENStartPos)
	ending, _ := board.LoadFEN("8/5k2/8/2p5/2P5/8/4K3/8 w - - 0 60")

	tests := []struct {
		name      string
		pos       *board.Position
		remaining time.Duration
		increment time.Duration
		want      time.Duration
	}{
		{"sudden death", start, 40 * time.Second, 0, time.Second},
		{"increment full board", start, 45 * time.Second, 2 * time.Second, 3 * time.Second},
		{"increment bare ending", ending, 21 * time.Second, time.Second, 2 * time.Second},
		{"panic lives off increment", start, 900 * time.Millisecond, 500 * time.Millisecond, 450 * time.Millisecond},
		{"floor", start, 0, 0, minMoveTime},
	}
	for _, tt := range tests {
		if got := MoveTime(tt.pos, tt.remaining, tt.increment); got != tt.want {
			t.Fatalf("%s: MoveTime = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestWithMoveTimeBoundsSearch(t *testing.T) {
	st := mustState(t, board.FENStartPos)
	ctx, cancel := WithMoveTime(context.Background(), st.Position(), 400*time.Millisecond, 0)
	defer cancel()
	s := mustSolver(t, IterativeDeepening, "light")
	m, _, err := s.FindBestMove(ctx, st, 50, board.White)
	if err != nil {
		t.Fatalf("FindBestMove: %v", err)
	}
	if !isLegal(st, m) {
		t.Fatalf("illegal move %s", m)
	}
	if !s.LastStats().Stopped {
		t.Fatalf("a 50 ply search should have been stopped by the deadline")
	}
}
