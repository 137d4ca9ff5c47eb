package usecase

import (
	"github.com/festival-trip-planner/internal/domain"
	"github.com/festival-trip-planner/internal/pkg/utils"
)

// SequenceOptimizer orders a day's stops with a greedy nearest-neighbor
// heuristic: start from the first stop in input order, then repeatedly hop to
// the closest unvisited stop. Known limitation: no backtracking and no 2-opt
// improvement pass, so the tour is not optimal. Output is deterministic for a
// given input; distance ties keep input order.
type SequenceOptimizer struct{}

func NewSequenceOptimizer() *SequenceOptimizer {
	return &SequenceOptimizer{}
}

// Order returns the stops in visiting order. Lists of two or fewer stops are
// returned unchanged since no ordering decision is possible.
func (o *SequenceOptimizer) Order(stops []*domain.Stop) []*domain.Stop {
	if len(stops) <= 2 {
		return stops
	}

	ordered := make([]*domain.Stop, 0, len(stops))
	visited := make([]bool, len(stops))

	// Arbitrary seed: the first stop in input order, not the geographically
	// first point.
	current := 0
	visited[0] = true
	ordered = append(ordered, stops[0])

	for len(ordered) < len(stops) {
		next := -1
		best := 0.0

		for i, stop := range stops {
			if visited[i] {
				continue
			}
			d := utils.HaversineDistance(
				stops[current].POI.Lat, stops[current].POI.Lon,
				stop.POI.Lat, stop.POI.Lon,
			)
			// Strict comparison keeps the earliest candidate on ties.
			if next == -1 || d < best {
				next = i
				best = d
			}
		}

		visited[next] = true
		ordered = append(ordered, stops[next])
		current = next
	}

	return ordered
}
