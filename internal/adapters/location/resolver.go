package location

import (
	"context"
	"errors"
	"fieldsales-route-service/internal/domain"
	"fieldsales-route-service/internal/ports"
	"fmt"
	"log"
	"time"
)

// Resolver implements ports.LocationProvider.
//
// It prefers the user's last reported device fix when it is younger than
// MaxAge, then falls back to Default. With neither available it returns
// domain.ErrLocationUnavailable so the caller can abort planning.
type Resolver struct {
	Store   ports.LocationStore
	MaxAge  time.Duration
	Default *domain.GeoPoint
	Now     func() time.Time
}

func NewResolver(store ports.LocationStore, maxAge time.Duration, def *domain.GeoPoint) *Resolver {
	return &Resolver{Store: store, MaxAge: maxAge, Default: def, Now: time.Now}
}

func (r *Resolver) CurrentLocation(ctx context.Context, userID string) (domain.GeoPoint, error) {
	if r.Store != nil {
		fix, err := r.Store.LastLocation(ctx, userID)
		switch {
		case err == nil && r.fresh(fix) && fix.Point.Valid():
			return fix.Point, nil
		case err == nil:
			log.Printf("user_id=%s ignoring stale device location reported_at=%s", userID, fix.ReportedAt.Format(time.RFC3339))
		case errors.Is(err, domain.ErrNotFound):
		default:
			// A store outage should not block planning when a default exists.
			log.Printf("user_id=%s last location lookup failed: %v", userID, err)
		}
	}

	if r.Default != nil && r.Default.Valid() {
		return *r.Default, nil
	}

	return domain.GeoPoint{}, fmt.Errorf("resolve location for %q: %w", userID, domain.ErrLocationUnavailable)
}

// Record stores a freshly reported device fix.
func (r *Resolver) Record(ctx context.Context, userID string, p domain.GeoPoint) error {
	if r.Store == nil {
		return errors.New("record location: no location store configured")
	}
	return r.Store.SaveLocation(ctx, userID, ports.LocationFix{Point: p, ReportedAt: r.now()})
}

func (r *Resolver) fresh(fix ports.LocationFix) bool {
	if r.MaxAge <= 0 {
		return true
	}
	return r.now().Sub(fix.ReportedAt) <= r.MaxAge
}

func (r *Resolver) now() time.Time {
	if r.Now == nil {
		return time.Now()
	}
	return r.Now()
}
