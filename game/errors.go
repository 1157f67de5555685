package game

import (
	"errors"
	"fmt"
)

var (
	ErrIllegalMove         = errors.New("illegal move")
	ErrParseFailure        = errors.New("parse failure")
	ErrCommandNotAvailable = errors.New("command not available")
	ErrUndoUnavailable     = errors.New("nothing to undo")
	ErrRedoUnavailable     = errors.New("nothing to redo")
	ErrSearchExhausted     = errors.New("search produced no legal move")
	ErrNoEngine            = errors.New("no engine configured")
	ErrGameNotFound        = errors.New("game not found")
	ErrClosed              = errors.New("controller closed")
)

// MoveError reports a move that parsed but is not legal in the current position.
type MoveError struct {
	Move   string
	Reason string
}

func (e *MoveError) Error() string {
	return fmt.Sprintf("illegal move %q: %s", e.Move, e.Reason)
}

func (e *MoveError) Unwrap() error { return ErrIllegalMove }

// ParseError reports move or game text that could not be parsed. Err holds the
// underlying cause when there is one.
type ParseError struct {
	Input string
	Err   error
}

func (e *ParseError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("cannot parse %q", e.Input)
	}
	return fmt.Sprintf("cannot parse %q: %v", e.Input, e.Err)
}

func (e *ParseError) Is(target error) bool { return target == ErrParseFailure }
func (e *ParseError) Unwrap() error { return e.Err }

func notAvailable(cmd string, o Outcome) error {
	return fmt.Errorf("%w: %s after %s", ErrCommandNotAvailable, cmd, o)
}
