package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"runtime"
	"runtime/pprof"
	"time"

	"chess-ai/board"
	"chess-ai/engine"
	"chess-ai/game"
)

func main() {
	// --- Flags ---
	algoFlag := flag.String("algo", "iterative", "search algorithm")
	heuristicFlag := flag.String("heuristic", "standard", "evaluation heuristic")
	depthFlag := flag.Int("depth", 4, "search depth in plies, or MCTS iterations")
	repeatFlag := flag.Int("repeat", 1, "number of searches to run")
	fenFlag := flag.String("fen", "", "FEN to search (empty = startpos)")
	workersFlag := flag.Int("workers", runtime.NumCPU(), "goroutines for the parallel searches")
	seedFlag := flag.Int64("seed", 0, "MCTS random seed (0 = time)")
	timeFlag := flag.Duration("movetime", 0, "stop each search after this long (0 = no limit)")
	verbose := flag.Bool("v", false, "log every completed depth")
	cpuProfile := flag.String("cpuprofile", "", "write CPU profile to file")
	memProfile := flag.String("memprofile", "", "write memory profile (heap) to file")
	flag.Parse()

	if *depthFlag <= 0 {
		log.Fatalf("depth must be positive, got %d", *depthFlag)
	}
	algo, err := engine.ParseAlgorithm(*algoFlag)
	if err != nil {
		log.Fatal(err)
	}

	// --- Optional CPU profiling setup ---
	if *cpuProfile != "" {
		cpuFile, err := os.Create(*cpuProfile)
		if err != nil {
			log.Fatalf("could not create CPU profile: %v", err)
		}
		if err := pprof.StartCPUProfile(cpuFile); err != nil {
			log.Fatalf("could not start CPU profile: %v", err)
		}
		defer func() {
			pprof.StopCPUProfile()
			cpuFile.Close()
		}()
	}

	fen := board.FENStartPos
	if *fenFlag != "" {
		fen = *fenFlag
	}
	pos, err := board.LoadFEN(fen)
	if err != nil {
		log.Fatalf("bad FEN: %v", err)
	}

	cfg := engine.DefaultConfig()
	cfg.Algorithm = algo
	cfg.Heuristic = *heuristicFlag
	cfg.Workers = *workersFlag
	cfg.Seed = *seedFlag
	if *verbose {
		cfg.Logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	fmt.Printf("searchbench: algo=%s heuristic=%s fen=%q depth=%d repeat=%d\n", algo, *heuristicFlag, fen, *depthFlag, *repeatFlag)

	startAll := time.Now()
	var totalNodes uint64
	for i := 0; i < *repeatFlag; i++ {
		// Fresh solver per run so the phase switch and caches start cold.
		solver, err := engine.NewSolver(cfg)
		if err != nil {
			log.Fatal(err)
		}
		ctx, cancel := context.Background(), context.CancelFunc(func() {})
		if *timeFlag > 0 {
			ctx, cancel = context.WithTimeout(ctx, *timeFlag)
		}
		st := game.NewState(pos)
		move, score, err := solver.FindBestMove(ctx, st, *depthFlag, st.SideToMove())
		cancel()
		if err != nil {
			log.Fatalf("search failed: %v", err)
		}
		stats := solver.LastStats()
		totalNodes += stats.Nodes
		nps := float64(stats.Nodes) / stats.Elapsed.Seconds()
		fmt.Printf("iteration %d: bestmove %s score=%.2f depth=%d nodes=%d time=%v nps=%.0f stopped=%v\n",
			i+1, move.UCI(), score, stats.Depth, stats.Nodes, stats.Elapsed, nps, stats.Stopped)
	}
	totalElapsed := time.Since(startAll)
	fmt.Printf("total time: %v nodes: %d\n", totalElapsed, totalNodes)

	// --- Optional heap profile at the end ---
	if *memProfile != "" {
		f, err := os.Create(*memProfile)
		if err != nil {
			log.Fatalf("could not create memory profile: %v", err)
		}
		defer f.Close()

		runtime.GC() // get up-to-date heap info
		if err := pprof.WriteHeapProfile(f); err != nil {
			log.Fatalf("could not write memory profile: %v", err)
		}
	}
}
