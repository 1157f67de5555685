package engine

import (
	"context"
	"time"

	"chess-ai/board"
)

// Safety knobs for per-move time allotment.
const (
	moveOverhead = 30 * time.Millisecond // reserve for command handling
	minMoveTime  = 5 * time.Millisecond  // never less than this
	maxFraction  = 0.7                   // never spend more than 70% of the remaining time
	panicTime    = time.Second           // below this, live off the increment
	panicFrac    = 0.9
)

// MoveTime decides how long to think on pos given the mover's remaining time and
// increment.
func MoveTime(pos *board.Position, remaining, increment time.Duration) time.Duration {
	movesLeft := estimateMovesRemaining(pos.PieceCount())

	var t time.Duration
	switch {
	case increment > 0 && remaining < panicTime:
		t = time.Duration(float64(increment) * panicFrac)
	case increment > 0:
		t = remaining/time.Duration(movesLeft) + increment
	default:
		t = remaining / 40
	}

	t = max(t, minMoveTime)
	t = min(t, time.Duration(float64(remaining)*maxFraction))
	t = min(t, remaining-moveOverhead)
	return max(t, minMoveTime)
}

// estimateMovesRemaining interpolates between 20 moves with bare kings and 45 with a
// full board.
func estimateMovesRemaining(pieces int) int {
	return clamp((pieces-2)*25/30+20, 20, 45)
}

// WithMoveTime derives a context that expires after the allotted thinking time.
func WithMoveTime(ctx context.Context, pos *board.Position, remaining, increment time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, MoveTime(pos, remaining, increment))
}
