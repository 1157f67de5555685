package engine

import "golang.org/x/exp/constraints"

type number interface {
	constraints.Integer | constraints.Float
}

// clamp restricts f to the inclusive range [low, high].
func clamp[T number](f, low, high T) T {
	if f < low {
		return low
	}
	if f > high {
		return high
	}
	return f
}

// capped clamps a heuristic score to [-limit, limit].
func capped[T number](f, limit T) T { return clamp(f, -limit, limit) }

func abs[T constraints.Signed | constraints.Float](x T) T {
	if x < 0 {
		return -x
	}
	return x
}
