package services

import "fieldsales-route-service/internal/domain"

// Annotate returns copies of the ordered stops with Index and DistanceKm set.
// DistanceKm is measured from the previous stop, or from start for the first.
// The caller's slice is left untouched.
func Annotate(start domain.GeoPoint, ordered []domain.RouteStop) []domain.RouteStop {
	out := make([]domain.RouteStop, len(ordered))
	prev := start
	for i, s := range ordered {
		s.Index = i
		s.DistanceKm = domain.DistanceKm(prev, s.Location)
		out[i] = s
		prev = s.Location
	}
	return out
}
