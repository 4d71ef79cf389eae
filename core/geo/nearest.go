package geo

import (
	"errors"
	"fmt"
	"math"
)

// ErrTooFewPoints is returned when a nearest-neighbour search is asked for
// fewer than two points.
var ErrTooFewPoints = errors.New("nearest neighbour needs at least 2 points")

// NearestFunc returns, for every point, the haversine distance in km to the
// closest other point. Points are compared by index, so two distinct points
// sharing coordinates are 0 km apart.
type NearestFunc func(points []Point) ([]float64, error)

const (
	// StrategyBrute scans every pair.
	StrategyBrute = "brute"
	// StrategyKDTree queries a k-d tree built over the points.
	StrategyKDTree = "kdtree"
)

// Strategies lists the accepted strategy names.
func Strategies() []string {
	return []string{StrategyBrute, StrategyKDTree}
}

// Lookup resolves a strategy name to its NearestFunc.
func Lookup(name string) (NearestFunc, error) {
	switch name {
	case StrategyBrute, "":
		return BruteForce, nil
	case StrategyKDTree:
		return KDTree, nil
	default:
		return nil, fmt.Errorf("unknown nearest strategy %q", name)
	}
}

// BruteForce computes nearest distances with a quadratic scan.
func BruteForce(points []Point) ([]float64, error) {
	if len(points) < 2 {
		return nil, ErrTooFewPoints
	}
	out := make([]float64, len(points))
	for i, p := range points {
		best := math.Inf(1)
		for j, q := range points {
			if i == j {
				continue
			}
			if d := Haversine(p, q); d < best {
				best = d
			}
		}
		out[i] = best
	}
	return out, nil
}
