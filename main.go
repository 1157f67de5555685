package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"chess-ai/board"
	"chess-ai/engine"
	"chess-ai/game"
)

const help = `commands:
  <move>            play a move, e.g. e2-e4, Ng1-f3, e7xd8=Q, o-o
  play <move>       same as above
  ai | go           let the engine move
  hint [depth]      suggest a move without playing it
  undo | redo       step through the history
  draw [side]       offer a draw, by default for the side to move
  cancel [side]     withdraw a draw offer
  resign [side]     resign, by default for the side to move
  restart | new     back to the starting position
  save <file>       write the game
  load <file>       read a saved game, FEN or board grid
  fen | board       show the position
  moves             list the moves played
  clock             show remaining time
  help | quit`

func main() {
	algo := flag.String("algo", "iterative", "engine algorithm ("+strings.Join(engine.AlgorithmNames(), ", ")+")")
	heuristic := flag.String("heuristic", "standard", "engine heuristic")
	depth := flag.Int("depth", 4, "engine depth, or MCTS iterations")
	hintDepth := flag.Int("hint", 3, "hint depth")
	fen := flag.String("fen", board.FENStartPos, "starting position")
	clock := flag.Duration("clock", 0, "time per side (0 = untimed)")
	inc := flag.Duration("inc", 0, "increment per move")
	seed := flag.Int64("seed", 0, "MCTS random seed (0 = time)")
	verbose := flag.Bool("v", false, "debug logging to stderr")
	flag.Parse()

	a, err := engine.ParseAlgorithm(*algo)
	if err != nil {
		log.Fatal(err)
	}
	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	cfg := engine.DefaultConfig()
	cfg.Algorithm = a
	cfg.Heuristic = *heuristic
	cfg.Seed = *seed
	cfg.Logger = logger
	solver, err := engine.NewSolver(cfg)
	if err != nil {
		log.Fatal(err)
	}

	c := newConsole(os.Stdout, solver, *depth, *hintDepth, logger)
	if *clock > 0 {
		initial, increment := *clock, *inc
		c.clock = func() *game.Clock { return game.NewClock(initial, increment) }
	}
	if err := c.start(*fen); err != nil {
		log.Fatalf("cannot start game: %v", err)
	}
	defer c.close()
	c.run(os.Stdin)
}

// syncWriter lets the clock's flag callback print while a command runs.
type syncWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (s *syncWriter) printf(format string, args ...any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(s.w, format, args...)
}

type console struct {
	out       *syncWriter
	mgr       *game.Manager
	entry     *game.Entry
	solver    *engine.Solver
	depth     int
	hintDepth int
	clock     func() *game.Clock
	logger    *slog.Logger
}

func newConsole(out io.Writer, solver *engine.Solver, depth, hintDepth int, logger *slog.Logger) *console {
	return &console{
		out:       &syncWriter{w: out},
		mgr:       game.NewManager(),
		solver:    solver,
		depth:     depth,
		hintDepth: hintDepth,
		logger:    logger,
	}
}

func (c *console) options() []game.Option {
	opts := []game.Option{
		game.WithLogger(c.logger),
		game.WithEngine(c.solver, c.depth),
		game.WithObserver(game.ObserverFunc(c.onEvent)),
	}
	if c.clock != nil {
		opts = append(opts, game.WithClock(c.clock()))
	}
	return opts
}

func (c *console) onEvent(e game.Event) {
	switch e.Kind {
	case game.MovePlayed:
		c.out.printf("%s plays %s\n", e.Side, e.Move)
	case game.GameOver:
		c.out.printf("game over: %s\n", e.Outcome)
	case game.DrawProposed:
		c.out.printf("%s offers a draw\n", e.Side)
	case game.DrawCancelled:
		c.out.printf("%s withdraws the draw offer\n", e.Side)
	case game.MoveUndone:
		c.out.printf("took back %s\n", e.Move)
	case game.MoveRedone:
		c.out.printf("replayed %s\n", e.Move)
	case game.Restarted:
		c.out.printf("new game\n")
	}
}

// start opens a game from fen. The position goes through the saved-game text so the
// game is registered with the manager like a loaded one.
func (c *console) start(fen string) error {
	pos, err := board.LoadFEN(fen)
	if err != nil {
		return err
	}
	g, err := game.NewFromPosition(pos)
	if err != nil {
		return err
	}
	var buf strings.Builder
	if err := g.Save(&buf); err != nil {
		return err
	}
	return c.open(buf.String())
}

func (c *console) open(text string) error {
	e, err := c.mgr.LoadGame(text, c.options()...)
	if err != nil {
		return err
	}
	c.close()
	c.entry = e
	return nil
}

func (c *console) close() {
	if c.entry != nil {
		if clk := c.entry.Game.Clock(); clk != nil {
			clk.Stop()
		}
		_ = c.mgr.Delete(c.entry.ID)
		c.entry = nil
	}
}

func (c *console) run(in io.Reader) {
	scanner := bufio.NewScanner(in)
	c.out.printf("%s\n", c.entry.Game.State().Position().Grid())
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		quit, err := c.exec(context.Background(), line)
		if err != nil {
			c.out.printf("error: %v\n", err)
		}
		if quit {
			return
		}
	}
}

// exec runs one console line. All game commands go through the controller so an
// engine move never overlaps a user move.
func (c *console) exec(ctx context.Context, line string) (quit bool, err error) {
	tokens := strings.Fields(line)
	g := c.entry.Game
	do := func(cmd game.Command) error { return c.entry.Controller.Do(ctx, cmd) }
	side := g.State().SideToMove()
	if len(tokens) > 1 {
		switch strings.ToLower(tokens[1]) {
		case "white", "w":
			side = board.White
		case "black", "b":
			side = board.Black
		}
	}

	switch strings.ToLower(tokens[0]) {
	case "quit", "exit":
		return true, nil
	case "help", "?":
		c.out.printf("%s\n", help)
	case "play":
		if len(tokens) < 2 {
			return false, errors.New("play needs a move")
		}
		return false, do(game.Play(tokens[1]))
	case "ai", "go":
		return false, do(c.aiMove)
	case "hint":
		depth := c.hintDepth
		if len(tokens) > 1 {
			if depth, err = strconv.Atoi(tokens[1]); err != nil || depth <= 0 {
				return false, fmt.Errorf("bad depth %q", tokens[1])
			}
		}
		return false, do(func(ctx context.Context, g *game.Game) error {
			m, err := g.Hint(ctx, depth)
			if err == nil {
				c.out.printf("hint: %s\n", m)
			}
			return err
		})
	case "undo":
		return false, do(func(context.Context, *game.Game) error { return g.Undo() })
	case "redo":
		return false, do(func(context.Context, *game.Game) error { return g.Redo() })
	case "draw":
		return false, do(func(context.Context, *game.Game) error { return g.ProposeDraw(side) })
	case "cancel":
		return false, do(func(context.Context, *game.Game) error { return g.CancelDraw(side) })
	case "resign":
		return false, do(func(context.Context, *game.Game) error { return g.Resign(side) })
	case "restart", "new":
		return false, do(func(context.Context, *game.Game) error { g.Restart(); return nil })
	case "save":
		if len(tokens) < 2 {
			return false, errors.New("save needs a file name")
		}
		f, err := os.Create(tokens[1])
		if err != nil {
			return false, err
		}
		defer f.Close()
		return false, g.Save(f)
	case "load":
		if len(tokens) < 2 {
			return false, errors.New("load needs a file name")
		}
		data, err := os.ReadFile(tokens[1])
		if err != nil {
			return false, err
		}
		if err := c.open(string(data)); err != nil {
			return false, err
		}
		c.out.printf("%s\n", c.entry.Game.State().Position().Grid())
	case "fen":
		c.out.printf("%s\n", g.FEN())
	case "board":
		c.out.printf("%s\n", g.State().Position().Grid())
	case "moves":
		for i, m := range g.Moves() {
			c.out.printf("%d. %s\n", i+1, m)
		}
	case "clock":
		clk := g.Clock()
		if clk == nil {
			return false, errors.New("game is untimed")
		}
		c.out.printf("white %s  black %s\n",
			clk.Remaining(board.White).Round(time.Second), clk.Remaining(board.Black).Round(time.Second))
	default:
		return false, do(game.Play(line))
	}
	return false, nil
}

// aiMove lets the engine move, limited by the clock when the game is timed.
func (c *console) aiMove(ctx context.Context, g *game.Game) error {
	if clk := g.Clock(); clk != nil {
		st := g.State()
		var cancel context.CancelFunc
		ctx, cancel = engine.WithMoveTime(ctx, st.Position(), clk.Remaining(st.SideToMove()), clk.Increment())
		defer cancel()
	}
	_, err := g.StartAI(ctx)
	return err
}
