package main

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
)

const kiwipete = "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"

// step is one go invocation. Required steps abort the run on failure.
type step struct {
	section  string
	args     []string
	required bool
}

func steps() []step {
	out := []step{{
		section:  "Columns: BENCHMARK  N  ns/op  B/op  allocs/op",
		args:     []string{"test", "./bench", "-run", "^$", "-bench", ".", "-benchmem", "-benchtime=1s"},
		required: true,
	}}
	perft := "\nPerft Performance:\nTEST \t\tDepth \t\tNodes \t\tTime \tNPS"
	for _, depth := range []string{"3", "4", "5"} {
		out = append(out, step{section: perft, args: []string{"run", "./cmd/perft", "-depth", depth, "-label", "Initial"}})
		perft = ""
	}
	out = append(out, step{args: []string{"run", "./cmd/perft", "-fen", kiwipete, "-depth", "3", "-label", "Kiwipete", "-verify"}})

	search := "\nSearch:"
	for _, algo := range []string{"alphabeta", "alphabeta-parallel", "iterative", "iterative-parallel"} {
		out = append(out, step{section: search, args: []string{"run", "./cmd/searchbench", "-algo", algo, "-heuristic", "light", "-depth", "4"}})
		search = ""
	}
	return append(out, step{args: []string{"run", "./cmd/searchbench", "-algo", "mcts", "-heuristic", "material", "-depth", "2000", "-seed", "1"}})
}

// Runs the bench/ package, then perft and search throughput.
// Usage: go run ./cmd/benchrun
func main() {
	failed := 0
	for _, s := range steps() {
		if s.section != "" {
			fmt.Println(s.section)
		}
		cmd := exec.Command("go", s.args...)
		cmd.Stdout, cmd.Stderr = os.Stdout, os.Stderr
		err := cmd.Run()
		if err == nil {
			continue
		}
		code := 1
		var ee *exec.ExitError
		if errors.As(err, &ee) {
			code = ee.ExitCode()
		} else {
			fmt.Fprintf(os.Stderr, "go %s: %v\n", s.args[0], err)
		}
		if s.required {
			os.Exit(code)
		}
		failed++
	}
	if failed > 0 {
		fmt.Fprintf(os.Stderr, "%d steps failed\n", failed)
		os.Exit(1)
	}
}
