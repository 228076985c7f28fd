package services

import (
	"fieldsales-route-service/internal/domain"
	"math"
)

// Distance metric between two points. Must be non-negative.
type DistanceFunc func(a, b domain.GeoPoint) float64

// Optimizer orders stops into a visiting sequence from a start point.
// Implementations return a permutation of the input and must not modify it.
type Optimizer interface {
	Optimize(start domain.GeoPoint, stops []domain.RouteStop) []domain.RouteStop
}

// NearestNeighbor orders stops with a greedy nearest-neighbor heuristic.
//
// At each step the closest unvisited stop is appended to the route.
// The result is a local approximation, not an optimal tour: callers must not
// assume the total distance is minimal. Runs in O(n²), which is fine for a
// day's worth of visits.
//
// Ties are broken by input order: the scan uses strict less-than, so the
// earliest-indexed stop among equidistant candidates wins.
type NearestNeighbor struct {
	// Distance defaults to domain.DistanceKm when nil.
	Distance DistanceFunc
}

// Optimize returns the stops in nearest-neighbor order starting from start.
// The input slice is not modified.
func (nn NearestNeighbor) Optimize(start domain.GeoPoint, stops []domain.RouteStop) []domain.RouteStop {
	dist := nn.Distance
	if dist == nil {
		dist = domain.DistanceKm
	}

	route := make([]domain.RouteStop, 0, len(stops))
	visited := make([]bool, len(stops))
	current := start

	for len(route) < len(stops) {
		best := -1
		minDist := math.Inf(1)

		// Select next stop by minimum distance (greedy step).
		for i, s := range stops {
			if visited[i] {
				continue
			}
			d := dist(current, s.Location)
			if best == -1 || d < minDist {
				best = i
				minDist = d
			}
		}

		visited[best] = true
		route = append(route, stops[best])
		current = stops[best].Location
	}

	return route
}

// Optimize orders stops with the default nearest-neighbor heuristic
// over great-circle distance.
func Optimize(start domain.GeoPoint, stops []domain.RouteStop) []domain.RouteStop {
	return NearestNeighbor{}.Optimize(start, stops)
}
