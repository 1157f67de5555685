package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/notnil/chess"

	"chess-ai/board"
	"chess-ai/engine"
	"chess-ai/game"
)

type player struct {
	name   string
	solver *engine.Solver
	budget int
}

func main() {
	fen := flag.String("fen", board.FENStartPos, "starting position")
	white := flag.String("white", "alphabeta", "white's algorithm")
	black := flag.String("black", "mcts", "black's algorithm")
	heuristic := flag.String("heuristic", "standard", "evaluation heuristic for both sides")
	depth := flag.Int("depth", 3, "search depth for tree searches")
	iterations := flag.Int("iterations", 400, "MCTS iterations per move")
	plies := flag.Int("plies", 200, "stop after this many plies")
	moveTime := flag.Duration("movetime", 0, "per-move time limit (0 = none)")
	seed := flag.Int64("seed", 0, "MCTS random seed (0 = time)")
	pgnPath := flag.String("pgn", "", "write the game as PGN to this file")
	verbose := flag.Bool("v", false, "debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	pos, err := board.LoadFEN(*fen)
	if err != nil {
		log.Fatalf("bad FEN: %v", err)
	}
	players := [2]player{
		newPlayer(*white, *heuristic, *depth, *iterations, *seed, logger),
		newPlayer(*black, *heuristic, *depth, *iterations, *seed+1, logger),
	}

	g, err := game.NewFromPosition(pos, game.WithLogger(logger))
	if err != nil {
		log.Fatalf("cannot start game: %v", err)
	}
	ref, err := referenceGame(*fen)
	if err != nil {
		log.Fatalf("notnil/chess: %v", err)
	}
	ref.AddTagPair("White", players[board.White].name)
	ref.AddTagPair("Black", players[board.Black].name)
	ref.AddTagPair("Date", time.Now().Format("2006.01.02"))

	for ply := 0; ply < *plies && !g.Outcome().IsOver(); ply++ {
		st := g.State()
		p := players[st.SideToMove()]
		ctx, cancel := context.Background(), context.CancelFunc(func() {})
		if *moveTime > 0 {
			ctx, cancel = context.WithTimeout(ctx, *moveTime)
		}
		m, score, err := p.solver.FindBestMove(ctx, st, p.budget, st.SideToMove())
		cancel()
		if err != nil {
			log.Fatalf("ply %d: %v", ply, err)
		}
		if err := g.PlayMove(m); err != nil {
			log.Fatalf("ply %d: engine move %s rejected: %v", ply, m, err)
		}
		if err := ref.MoveStr(m.UCI()); err != nil {
			log.Fatalf("ply %d: notnil/chess rejected %s: %v", ply, m.UCI(), err)
		}
		fmt.Printf("%3d. %-6s %-10s score=%.2f\n", ply/2+1, st.SideToMove(), m.String(), score)
	}

	outcome := g.Outcome()
	fmt.Println("result:", outcome)
	settle(ref, outcome)
	if *pgnPath != "" {
		if err := os.WriteFile(*pgnPath, []byte(ref.String()), 0o644); err != nil {
			log.Fatalf("writing PGN: %v", err)
		}
	}
}

func newPlayer(algo, heuristic string, depth, iterations int, seed int64, logger *slog.Logger) player {
	a, err := engine.ParseAlgorithm(algo)
	if err != nil {
		log.Fatal(err)
	}
	cfg := engine.DefaultConfig()
	cfg.Algorithm = a
	cfg.Heuristic = heuristic
	cfg.Seed = seed
	cfg.Logger = logger
	s, err := engine.NewSolver(cfg)
	if err != nil {
		log.Fatal(err)
	}
	budget := depth
	if a == engine.MCTS {
		budget = iterations
	}
	return player{name: fmt.Sprintf("%s/%s", a, heuristic), solver: s, budget: budget}
}

func referenceGame(fen string) (*chess.Game, error) {
	opt, err := chess.FEN(fen)
	if err != nil {
		return nil, err
	}
	return chess.NewGame(opt, chess.UseNotation(chess.UCINotation{})), nil
}

// settle records draws that notnil/chess only grants on claim.
func settle(ref *chess.Game, o game.Outcome) {
	if ref.Outcome() != chess.NoOutcome || o.Status != game.Draw {
		return
	}
	var method chess.Method
	switch o.Reason {
	case game.DrawRepetition:
		method = chess.ThreefoldRepetition
	case game.DrawFiftyMove:
		method = chess.FiftyMoveRule
	default:
		method = chess.DrawOffer
	}
	if err := ref.Draw(method); err != nil {
		ref.AddTagPair("Termination", o.String())
	}
}
