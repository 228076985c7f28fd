package ports

import (
	"context"
	"fieldsales-route-service/internal/domain"
	"time"
)

// A device location fix reported by a sales rep's client.
type LocationFix struct {
	Point      domain.GeoPoint
	ReportedAt time.Time
}

// Contract for resolving the starting point of a route.
type LocationProvider interface {
	// Return the current location for a user, or domain.ErrLocationUnavailable.
	CurrentLocation(ctx context.Context, userID string) (domain.GeoPoint, error)
}

// Storage for the most recent device fix per user.
type LocationStore interface {
	SaveLocation(ctx context.Context, userID string, fix LocationFix) error
	// Return the last fix, or domain.ErrNotFound when none is stored.
	LastLocation(ctx context.Context, userID string) (LocationFix, error)
}
