package game

import (
	"fmt"

	"chess-ai/board"
)

// Status is the coarse state of a game.
type Status uint8

const (
	Ongoing Status = iota
	Checkmate
	Stalemate
	Draw
	Resigned
	TimeLoss
)

func (s Status) String() string {
	switch s {
	case Ongoing:
		return "ongoing"
	case Checkmate:
		return "checkmate"
	case Stalemate:
		return "stalemate"
	case Draw:
		return "draw"
	case Resigned:
		return "resignation"
	case TimeLoss:
		return "time loss"
	}
	return fmt.Sprintf("Status(%d)", uint8(s))
}

// DrawReason qualifies a Draw.
type DrawReason uint8

const (
	NoDraw DrawReason = iota
	DrawRepetition
	DrawMaterial
	DrawFiftyMove
	DrawAgreement
	DrawTimeout
)

var drawReasonNames = [...]string{"", "threefold repetition", "insufficient material", "fifty-move rule", "agreement", "timeout without mating material"}

func (r DrawReason) String() string {
	if int(r) < len(drawReasonNames) {
		return drawReasonNames[r]
	}
	return fmt.Sprintf("DrawReason(%d)", uint8(r))
}

// Outcome is the result of a game. Winner is meaningful for Checkmate, Resigned and
// TimeLoss only.
type Outcome struct {
	Status Status
	Reason DrawReason
	Winner board.Color
}

func (o Outcome) IsOver() bool { return o.Status != Ongoing }

// Decisive reports whether the game ended with a winner.
func (o Outcome) Decisive() bool {
	return o.Status == Checkmate || o.Status == Resigned || o.Status == TimeLoss
}

// Score is +1 for a white win, -1 for a black win and 0 otherwise.
func (o Outcome) Score() float64 {
	if !o.Decisive() {
		return 0
	}
	if o.Winner == board.White {
		return 1
	}
	return -1
}

func (o Outcome) String() string {
	switch {
	case o.Status == Draw:
		return "draw by " + o.Reason.String()
	case o.Decisive():
		return fmt.Sprintf("%s, %s wins", o.Status, o.Winner)
	}
	return o.Status.String()
}
