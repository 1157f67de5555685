package game

import "chess-ai/board"

// EventKind names a state transition observers are told about.
type EventKind uint8

const (
	MovePlayed EventKind = iota
	MoveUndone
	MoveRedone
	DrawProposed
	DrawCancelled
	GameOver
	Restarted
)

func (k EventKind) String() string {
	return [...]string{"move", "undo", "redo", "draw-proposed", "draw-cancelled", "game-over", "restart"}[k]
}

type Event struct {
	Kind    EventKind
	Move    board.Move
	Side    board.Color
	Outcome Outcome
}

// Observer receives events after the game lock is released.
type Observer interface {
	OnEvent(Event)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(Event)

func (f ObserverFunc) OnEvent(e Event) { f(e) }
