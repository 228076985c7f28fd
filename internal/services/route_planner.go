package services

import (
	"fieldsales-route-service/internal/domain"
	"fmt"
)

type PlanOptions struct {
	// Optimizer defaults to NearestNeighbor over great-circle distance.
	Optimizer Optimizer
	// Include the leg from the last stop back to start in the totals.
	ReturnToStart bool
}

// PlanRoute builds, orders, and annotates a route for the given appointments.
//
// Appointments that cannot be located are reported in RoutePlan.Excluded
// instead of failing the plan. The only error is an invalid start point,
// since no stop distance could be trusted from it.
func PlanRoute(
	start domain.GeoPoint,
	appointments []domain.Appointment,
	accounts []domain.Account,
	opts PlanOptions,
) (*domain.RoutePlan, error) {
	if !start.Valid() {
		return nil, fmt.Errorf("plan route: start %v: %w", start, domain.ErrInvalidLocation)
	}

	optimizer := opts.Optimizer
	if optimizer == nil {
		optimizer = NearestNeighbor{}
	}

	stops, excluded := BuildStops(appointments, accounts)
	ordered := optimizer.Optimize(start, stops)
	if err := checkPermutation(stops, ordered); err != nil {
		return nil, fmt.Errorf("plan route: %w", err)
	}

	annotated := Annotate(start, ordered)

	total := 0.0
	for _, s := range annotated {
		total += s.DistanceKm
	}

	returnLeg := 0.0
	if opts.ReturnToStart && len(annotated) > 0 {
		returnLeg = domain.DistanceKm(annotated[len(annotated)-1].Location, start)
		total += returnLeg
	}

	return &domain.RoutePlan{
		Start:           start,
		Stops:           annotated,
		Excluded:        excluded,
		TotalDistanceKm: total,
		ReturnLegKm:     returnLeg,
	}, nil
}

// checkPermutation verifies that ordered visits every stop exactly once.
func checkPermutation(stops, ordered []domain.RouteStop) error {
	if len(ordered) != len(stops) {
		return fmt.Errorf("optimizer returned %d stops, want %d", len(ordered), len(stops))
	}

	remaining := make(map[int64]int, len(stops))
	for _, s := range stops {
		remaining[s.Appointment.ID]++
	}
	for _, s := range ordered {
		id := s.Appointment.ID
		if remaining[id] == 0 {
			return fmt.Errorf("optimizer returned appointment %d more often than given", id)
		}
		remaining[id]--
	}
	return nil
}
