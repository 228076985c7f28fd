package services

import (
	"context"
	"errors"
	"fieldsales-route-service/internal/domain"
	"fieldsales-route-service/internal/platform/obs"
	"fieldsales-route-service/internal/ports"
	"fmt"
	"log"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
)

type DailyRouteRequest struct {
	UserID string
	// Any instant within the day to plan; the day boundary follows Day's location.
	Day time.Time
	// Explicit start point. When nil the LocationProvider is consulted.
	Start         *domain.GeoPoint
	ReturnToStart bool
}

// PlanDailyRoute plans the visiting order of a rep's scheduled appointments
// for one day.
//
// Accounts and appointments are loaded concurrently; the start point comes
// from the request or the location provider. Data-integrity problems end up
// in RoutePlan.Excluded, while repository and location failures abort.
func PlanDailyRoute(
	ctx context.Context,
	req DailyRouteRequest,
	accountRepo ports.AccountRepository,
	appointmentRepo ports.AppointmentRepository,
	locator ports.LocationProvider,
) (_ *domain.RoutePlan, err error) {
	defer obs.Time(ctx, "services.PlanDailyRoute")(&err)

	userID := strings.TrimSpace(req.UserID)
	if userID == "" {
		return nil, errors.New("plan daily route: user id must be non-empty")
	}
	if req.Day.IsZero() {
		return nil, errors.New("plan daily route: day must be set")
	}

	from, to := dayBounds(req.Day)

	var (
		accounts     []domain.Account
		appointments []domain.Appointment
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var e error
		accounts, e = accountRepo.ListAccounts(gctx, userID)
		if e != nil {
			return fmt.Errorf("list accounts: %w", e)
		}
		return nil
	})
	g.Go(func() error {
		var e error
		appointments, e = appointmentRepo.ListAppointments(gctx, userID, ports.AppointmentFilter{
			From:   from,
			To:     to,
			Status: domain.StatusScheduled,
		})
		if e != nil {
			return fmt.Errorf("list appointments: %w", e)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("plan daily route: %w", err)
	}

	start, err := resolveStart(ctx, req, locator)
	if err != nil {
		return nil, fmt.Errorf("plan daily route: %w", err)
	}

	plan, err := PlanRoute(start, appointments, accounts, PlanOptions{ReturnToStart: req.ReturnToStart})
	if err != nil {
		return nil, fmt.Errorf("plan daily route: %w", err)
	}
	plan.PlannedAt = time.Now().UTC()

	reqID := obs.RequestID(ctx)
	for _, ex := range plan.Excluded {
		log.Printf("req_id=%s user_id=%s route warning: %v", reqID, userID, ex)
	}
	log.Printf(
		"req_id=%s user_id=%s day=%s stops=%d excluded=%d total_km=%.1f",
		reqID, userID, from.Format(time.DateOnly), len(plan.Stops), len(plan.Excluded), plan.TotalDistanceKm,
	)

	return plan, nil
}

func resolveStart(ctx context.Context, req DailyRouteRequest, locator ports.LocationProvider) (domain.GeoPoint, error) {
	if req.Start != nil {
		if !req.Start.Valid() {
			return domain.GeoPoint{}, fmt.Errorf("start %v: %w", *req.Start, domain.ErrInvalidLocation)
		}
		return *req.Start, nil
	}

	if locator == nil {
		return domain.GeoPoint{}, fmt.Errorf("no start given and no location provider: %w", domain.ErrLocationUnavailable)
	}

	p, err := locator.CurrentLocation(ctx, req.UserID)
	if err != nil {
		return domain.GeoPoint{}, fmt.Errorf("current location: %w", err)
	}
	return p, nil
}

// dayBounds returns [midnight, next midnight) in t's location.
func dayBounds(t time.Time) (time.Time, time.Time) {
	y, m, d := t.Date()
	from := time.Date(y, m, d, 0, 0, 0, 0, t.Location())
	return from, from.AddDate(0, 0, 1)
}
