package game

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"chess-ai/board"
)

// Engine chooses moves. The engine package provides the implementations; budget is a
// depth for tree searches and an iteration count for Monte-Carlo search.
type Engine interface {
	FindBestMove(ctx context.Context, st *State, budget int, side board.Color) (board.Move, float64, error)
}

// Game is one match: a State, its History, an optional clock and the engines used for
// AI moves and hints. All methods are safe for concurrent use; Controller adds ordering.
type Game struct {
	mu        sync.Mutex
	id        string
	start     board.Position
	state     *State
	history   *History
	clock     *Clock
	ai        Engine
	aiBudget  int
	hint      Engine
	observers []Observer
	logger    *slog.Logger
}

type Option func(*Game)

// WithLogger sets the structured logger. The default discards everything.
func WithLogger(l *slog.Logger) Option { return func(g *Game) { g.logger = l } }

// WithEngine sets the engine and budget StartAI uses. It also serves hints unless
// WithHintEngine overrides it.
func WithEngine(e Engine, budget int) Option {
	return func(g *Game) { g.ai, g.aiBudget = e, budget }
}

func WithHintEngine(e Engine) Option { return func(g *Game) { g.hint = e } }

// WithClock attaches a clock. A side whose time runs out is handled by TimeOut.
func WithClock(c *Clock) Option { return func(g *Game) { g.clock = c } }

func WithObserver(o Observer) Option {
	return func(g *Game) { g.observers = append(g.observers, o) }
}

func withID(id string) Option { return func(g *Game) { g.id = id } }

// New starts a game from the standard initial position.
func New(opts ...Option) *Game {
	g, err := NewFromPosition(board.NewPosition(), opts...)
	if err != nil {
		panic(err)
	}
	return g
}

// NewFromPosition starts a game from pos after checking it is loadable.
func NewFromPosition(pos *board.Position, opts ...Option) (*Game, error) {
	if err := pos.CheckLoadable(); err != nil {
		return nil, &ParseError{Input: pos.ToFEN(), Err: err}
	}
	g := &Game{start: *pos, logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
	for _, opt := range opts {
		opt(g)
	}
	g.reset()
	if g.clock != nil {
		g.clock.setFlagHandler(func(side board.Color) { _ = g.TimeOut(side) })
		g.clock.Start(g.state.SideToMove())
	}
	return g, nil
}

func (g *Game) reset() {
	g.state = NewState(&g.start)
	g.state.outcome = g.state.evaluate()
	g.state.UpdatePhase(board.White)
	g.state.UpdatePhase(board.Black)
	g.history = NewHistory(g.state.snapshot())
}

func (g *Game) ID() string { return g.id }

// Clock returns the attached clock, or nil.
func (g *Game) Clock() *Clock { return g.clock }

// State returns a clone of the live state.
func (g *Game) State() *State {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state.Clone()
}

func (g *Game) Outcome() Outcome {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state.outcome
}

func (g *Game) FEN() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state.pos.ToFEN()
}

// Moves lists the moves from the start up to the history cursor.
func (g *Game) Moves() []board.Move {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.history.Moves()
}

func (g *Game) CanUndo() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.history.CanUndo()
}

func (g *Game) CanRedo() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.history.CanRedo()
}

// emit runs after the lock is released so observers may call back into the game.
func (g *Game) emit(events []Event) {
	for _, e := range events {
		for _, o := range g.observers {
			o.OnEvent(e)
		}
	}
}

// Play parses text, checks it against the legal moves and commits it.
func (g *Game) Play(text string) error {
	mt, err := ParseMoveText(text)
	if err != nil {
		g.logger.Debug("rejected move text", "text", text, "err", err)
		return err
	}
	g.mu.Lock()
	if g.state.IsOver() {
		o := g.state.outcome
		g.mu.Unlock()
		return notAvailable("play", o)
	}
	m, err := mt.Resolve(&g.state.pos)
	if err != nil {
		g.mu.Unlock()
		g.logger.Debug("rejected move", "text", text, "err", err)
		return err
	}
	events := g.commit(m, true)
	g.mu.Unlock()
	g.emit(events)
	return nil
}

// PlayMove commits an already resolved move, validating it against the legal list.
func (g *Game) PlayMove(m board.Move) error {
	g.mu.Lock()
	if g.state.IsOver() {
		o := g.state.outcome
		g.mu.Unlock()
		return notAvailable("play", o)
	}
	resolved, ok := findLegal(&g.state.pos, m)
	if !ok {
		g.mu.Unlock()
		return &MoveError{Move: m.String(), Reason: "not a legal move"}
	}
	events := g.commit(resolved, true)
	g.mu.Unlock()
	g.emit(events)
	return nil
}

func findLegal(pos *board.Position, m board.Move) (board.Move, bool) {
	for _, lm := range pos.LegalMoves() {
		if lm.SameAs(m) {
			return lm, true
		}
	}
	return board.NullMove, false
}

// commit is the mutation core shared by interactive play, AI moves and game loading.
// Loading replays with notify false so no events are produced.
func (g *Game) commit(m board.Move, notify bool) []Event {
	if _, ok := g.state.advance(m); !ok {
		panic(fmt.Sprintf("commit of unresolved move %s", m))
	}
	m = annotate(m, g.state)
	g.history.Append(m, g.state.snapshot())
	for _, c := range [2]board.Color{board.White, board.Black} {
		if !g.state.InEndgame(c) && g.state.UpdatePhase(c) && notify {
			g.logger.Info("endgame reached", "game", g.id, "side", c.String())
		}
	}
	if g.clock != nil {
		if g.state.IsOver() {
			g.clock.Stop()
		} else {
			g.clock.Switch()
		}
	}
	if !notify {
		return nil
	}
	g.logger.Debug("move played", "game", g.id, "move", m.String(), "fen", g.state.pos.ToFEN())
	events := []Event{{Kind: MovePlayed, Move: m, Side: m.Piece.Color(), Outcome: g.state.outcome}}
	if g.state.IsOver() {
		g.logger.Info("game over", "game", g.id, "outcome", g.state.outcome.String())
		events = append(events, Event{Kind: GameOver, Outcome: g.state.outcome})
	}
	return events
}

// Undo steps back one move, restoring the previous snapshot and uncounting the
// position being left.
func (g *Game) Undo() error {
	g.mu.Lock()
	left, err := g.history.Undo()
	if err != nil {
		g.mu.Unlock()
		return err
	}
	g.state.forget(left.Snapshot.Position.SimpleHash())
	g.state.restore(g.history.Current().Snapshot)
	g.restartClock()
	e := Event{Kind: MoveUndone, Move: left.Move, Side: left.Move.Piece.Color(), Outcome: g.state.outcome}
	g.mu.Unlock()
	g.emit([]Event{e})
	return nil
}

// Redo replays the next move of the history chain.
func (g *Game) Redo() error {
	g.mu.Lock()
	node, err := g.history.Redo()
	if err != nil {
		g.mu.Unlock()
		return err
	}
	g.state.repetitions[node.Snapshot.Position.SimpleHash()]++
	g.state.restore(node.Snapshot)
	g.restartClock()
	e := Event{Kind: MoveRedone, Move: node.Move, Side: node.Move.Piece.Color(), Outcome: g.state.outcome}
	g.mu.Unlock()
	g.emit([]Event{e})
	return nil
}

func (g *Game) restartClock() {
	if g.clock == nil {
		return
	}
	if g.state.IsOver() {
		g.clock.Stop()
		return
	}
	g.clock.Start(g.state.SideToMove())
}

// sideCommand runs fn for a non-move command, refusing once the game is over, and
// stores the result in the current history node so redo restores it.
func (g *Game) sideCommand(name string, fn func() []Event) error {
	g.mu.Lock()
	if g.state.IsOver() {
		o := g.state.outcome
		g.mu.Unlock()
		return notAvailable(name, o)
	}
	events := fn()
	g.history.Current().Snapshot = g.state.snapshot()
	if g.state.IsOver() {
		if g.clock != nil {
			g.clock.Stop()
		}
		g.logger.Info("game over", "game", g.id, "outcome", g.state.outcome.String())
		events = append(events, Event{Kind: GameOver, Outcome: g.state.outcome})
	}
	g.mu.Unlock()
	g.emit(events)
	return nil
}

// ProposeDraw records side's offer. When both sides have offered the game is drawn.
func (g *Game) ProposeDraw(side board.Color) error {
	return g.sideCommand("propose draw", func() []Event {
		g.state.offerDraw(side)
		return []Event{{Kind: DrawProposed, Side: side}}
	})
}

// CancelDraw withdraws side's offer and leaves the opponent's untouched.
func (g *Game) CancelDraw(side board.Color) error {
	return g.sideCommand("cancel draw", func() []Event {
		g.state.cancelDraw(side)
		return []Event{{Kind: DrawCancelled, Side: side}}
	})
}

func (g *Game) Resign(side board.Color) error {
	return g.sideCommand("resign", func() []Event {
		g.state.resign(side)
		return nil
	})
}

// TimeOut ends the game for side on time: a loss if the opponent can still mate,
// otherwise a draw.
func (g *Game) TimeOut(side board.Color) error {
	return g.sideCommand("time out", func() []Event {
		g.state.timeOut(side)
		return nil
	})
}

// Restart clears the history and returns to the starting position.
func (g *Game) Restart() {
	g.mu.Lock()
	g.reset()
	if g.clock != nil {
		g.clock.Reset()
		g.clock.Start(g.state.SideToMove())
	}
	g.logger.Debug("game restarted", "game", g.id)
	g.mu.Unlock()
	g.emit([]Event{{Kind: Restarted}})
}

// Hint asks the hint engine for a move at the given depth without playing it.
func (g *Game) Hint(ctx context.Context, depth int) (board.Move, error) {
	e := g.hint
	if e == nil {
		e = g.ai
	}
	if e == nil {
		return board.NullMove, ErrNoEngine
	}
	st := g.State()
	if st.IsOver() {
		return board.NullMove, notAvailable("hint", st.outcome)
	}
	m, _, err := e.FindBestMove(ctx, st, depth, st.SideToMove())
	return m, err
}

// StartAI lets the engine choose a move for the side to move and commits it. The
// search runs on a clone without holding the game lock; if the position changed in
// the meantime the result is discarded.
func (g *Game) StartAI(ctx context.Context) (board.Move, error) {
	if g.ai == nil {
		return board.NullMove, ErrNoEngine
	}
	st := g.State()
	if st.IsOver() {
		return board.NullMove, notAvailable("start AI", st.outcome)
	}
	m, score, err := g.ai.FindBestMove(ctx, st, g.aiBudget, st.SideToMove())
	if err != nil {
		return board.NullMove, err
	}
	g.logger.Debug("engine move", "game", g.id, "move", m.String(), "score", score)

	g.mu.Lock()
	if g.state.pos.Hash() != st.pos.Hash() || g.state.IsOver() {
		g.mu.Unlock()
		return board.NullMove, fmt.Errorf("%w: position changed during search", ErrCommandNotAvailable)
	}
	resolved, ok := findLegal(&g.state.pos, m)
	if !ok {
		g.mu.Unlock()
		return board.NullMove, &MoveError{Move: m.String(), Reason: "engine returned an illegal move"}
	}
	events := g.commit(resolved, true)
	g.mu.Unlock()
	g.emit(events)
	return events[0].Move, nil
}
