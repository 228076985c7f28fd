package domain

import (
	"fmt"
	"time"
)

// Represents a single appointment-at-location in a sales route.
//
// Stops are created without DistanceKm and Index; both are set on the
// copies returned by route annotation. DistanceKm is the leg length from
// the previous stop, or from the start point for the first stop.
type RouteStop struct {
	Appointment Appointment
	Location    GeoPoint
	DistanceKm  float64
	Index       int
}

type ExclusionReason string

const (
	ReasonAccountNotFound ExclusionReason = "account_not_found"
	ReasonMissingLocation ExclusionReason = "missing_location"
	ReasonInvalidLocation ExclusionReason = "invalid_location"
)

// Records an appointment that could not be placed on the route.
// It is a warning, not a failure of the whole plan.
type ExcludedStop struct {
	AppointmentID int64
	AccountID     int64
	Reason        ExclusionReason
}

func (e ExcludedStop) Error() string {
	switch e.Reason {
	case ReasonAccountNotFound:
		return fmt.Sprintf("appointment %d: account %d not found", e.AppointmentID, e.AccountID)
	case ReasonMissingLocation:
		return fmt.Sprintf("appointment %d: account %d has no location", e.AppointmentID, e.AccountID)
	case ReasonInvalidLocation:
		return fmt.Sprintf("appointment %d: account %d has an out-of-range location", e.AppointmentID, e.AccountID)
	default:
		return fmt.Sprintf("appointment %d: excluded (%s)", e.AppointmentID, e.Reason)
	}
}

// Represents the planned visiting order for a sales rep.
// A RoutePlan is the output of route planning and holds no references
// to caller-owned data beyond copied values.
type RoutePlan struct {
	Start           GeoPoint
	Stops           []RouteStop
	Excluded        []ExcludedStop
	TotalDistanceKm float64
	ReturnLegKm     float64
	PlannedAt       time.Time
}
