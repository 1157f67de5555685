package engine

import (
	"fmt"
	"sort"
	"strings"

	"chess-ai/board"
	"chess-ai/game"
)

// Heuristic scores a state from side's point of view. Positive favours side.
type Heuristic interface {
	Evaluate(st *game.State, side board.Color) float64
}

// HeuristicFunc adapts a plain function to Heuristic.
type HeuristicFunc func(st *game.State, side board.Color) float64

func (f HeuristicFunc) Evaluate(st *game.State, side board.Color) float64 { return f(st, side) }

// Weighted pairs a heuristic with its multiplier inside a Composite.
type Weighted struct {
	Name   string
	H      Heuristic
	Weight float64
}

// Composite sums weight * score over its children.
type Composite struct {
	Name  string
	Parts []Weighted
}

func (c *Composite) Evaluate(st *game.State, side board.Color) float64 {
	var total float64
	for _, p := range c.Parts {
		total += p.Weight * p.H.Evaluate(st, side)
	}
	return total
}

// Breakdown returns each weighted part's contribution, keyed by part name.
func (c *Composite) Breakdown(st *game.State, side board.Color) map[string]float64 {
	out := make(map[string]float64, len(c.Parts))
	for _, p := range c.Parts {
		out[p.Name] += p.Weight * p.H.Evaluate(st, side)
	}
	return out
}

// =============================================================================
// BASE HEURISTICS
// =============================================================================
var (
	Material       Heuristic = HeuristicFunc(material)
	Mobility       Heuristic = HeuristicFunc(mobility)
	GameStatus     Heuristic = HeuristicFunc(gameStatus)
	Check          Heuristic = HeuristicFunc(check)
	KingSafety     Heuristic = HeuristicFunc(kingSafety)
	KingActivity   Heuristic = HeuristicFunc(kingActivity)
	KingOpposition Heuristic = HeuristicFunc(kingOpposition)
	BadPawns       Heuristic = HeuristicFunc(badPawns)
	PawnChain      Heuristic = HeuristicFunc(pawnChain)
	Promotion      Heuristic = HeuristicFunc(promotion)
	BishopEndgame  Heuristic = HeuristicFunc(bishopEndgame)
	SpaceControl   Heuristic = HeuristicFunc(spaceControl)
	Development    Heuristic = HeuristicFunc(development)
)

// =============================================================================
// COMPOSITES
// =============================================================================

// Standard is the middlegame mix.
func Standard() *Composite {
	return &Composite{Name: "standard", Parts: []Weighted{
		{"material", Material, 10},
		{"mobility", Mobility, 1},
		{"status", GameStatus, 1},
		{"bad-pawns", BadPawns, 1},
		{"pawn-chain", PawnChain, 1},
		{"king-safety", KingSafety, 1},
		{"development", Development, 1},
	}}
}

// Endgame favours king activity and pawn promotion.
func Endgame() *Composite {
	return &Composite{Name: "endgame", Parts: []Weighted{
		{"king-activity", KingActivity, 1},
		{"promotion", Promotion, 5},
		{"bishop-endgame", BishopEndgame, 1},
		{"material", Material, 50},
		{"bad-pawns", BadPawns, 1},
		{"status", GameStatus, 100},
		{"king-safety", KingSafety, 1},
		{"pawn-chain", PawnChain, 1},
		{"king-opposition", KingOpposition, 1},
	}}
}

// StandardLight is cheap enough for deep or parallel searches.
func StandardLight() *Composite {
	return &Composite{Name: "light", Parts: []Weighted{
		{"material", Material, 100},
		{"status", GameStatus, 100},
		{"development", Development, 3},
	}}
}

// Shannon is the classic material plus mobility plus pawn-structure sum.
func Shannon() *Composite {
	return &Composite{Name: "shannon", Parts: []Weighted{
		{"mobility", Mobility, 1},
		{"material", Material, 1},
		{"bad-pawns", BadPawns, 1},
	}}
}

var heuristicsByName = map[string]func() Heuristic{
	"standard":        func() Heuristic { return NewPhaseSwitcher() },
	"standard-fixed":  func() Heuristic { return Standard() },
	"endgame":         func() Heuristic { return Endgame() },
	"light":           func() Heuristic { return StandardLight() },
	"shannon":         func() Heuristic { return Shannon() },
	"material":        func() Heuristic { return Material },
	"mobility":        func() Heuristic { return Mobility },
	"status":          func() Heuristic { return GameStatus },
	"check":           func() Heuristic { return Check },
	"king-safety":     func() Heuristic { return KingSafety },
	"king-activity":   func() Heuristic { return KingActivity },
	"king-opposition": func() Heuristic { return KingOpposition },
	"bad-pawns":       func() Heuristic { return BadPawns },
	"pawn-chain":      func() Heuristic { return PawnChain },
	"promotion":       func() Heuristic { return Promotion },
	"bishop-endgame":  func() Heuristic { return BishopEndgame },
	"space-control":   func() Heuristic { return SpaceControl },
	"development":     func() Heuristic { return Development },
}

// HeuristicByName builds a fresh heuristic. "standard" is the phase switcher that
// moves to the endgame mix once.
func HeuristicByName(name string) (Heuristic, error) {
	mk, ok := heuristicsByName[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("unknown heuristic %q (have %s)", name, strings.Join(HeuristicNames(), ", "))
	}
	return mk(), nil
}

func HeuristicNames() []string {
	names := make([]string, 0, len(heuristicsByName))
	for n := range heuristicsByName {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// signed turns a white-minus-black score into side's point of view.
func signed(score float64, side board.Color) float64 {
	if side == board.White {
		return score
	}
	return -score
}
