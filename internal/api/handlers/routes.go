package handlers

import (
	"errors"
	"fieldsales-route-service/internal/api/dto"
	"fieldsales-route-service/internal/domain"
	"fieldsales-route-service/internal/ports"
	"fieldsales-route-service/internal/services"
	"log"
	"net/http"
	"strings"
	"time"
)

type RouteHandler struct {
	Accounts     ports.AccountRepository
	Appointments ports.AppointmentRepository
	Locator      ports.LocationProvider
	// Location used to interpret dates. Defaults to UTC.
	Location *time.Location
	Now      func() time.Time
}

// Plan orders a rep's scheduled appointments for one day by proximity.
// Appointments that cannot be placed are reported in "excluded" rather than
// failing the request.
func (h *RouteHandler) Plan(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	var req dto.RouteRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	req.UserID = strings.TrimSpace(req.UserID)
	if req.UserID == "" {
		writeError(w, r, http.StatusBadRequest, "user_id is required")
		return
	}
	if (req.Latitude == nil) != (req.Longitude == nil) {
		writeError(w, r, http.StatusBadRequest, "latitude and longitude must be provided together")
		return
	}

	day := h.now().In(dateLocation(h.Location))
	if req.Date != "" {
		var err error
		day, err = parseDay(req.Date, h.Location)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, "date must be formatted as 2006-01-02")
			return
		}
	}

	svcReq := services.DailyRouteRequest{
		UserID:        req.UserID,
		Day:           day,
		ReturnToStart: req.ReturnToStart,
	}
	if req.Latitude != nil {
		svcReq.Start = &domain.GeoPoint{Latitude: *req.Latitude, Longitude: *req.Longitude}
	}

	plan, err := services.PlanDailyRoute(r.Context(), svcReq, h.Accounts, h.Appointments, h.Locator)
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrLocationUnavailable):
		writeError(w, r, http.StatusUnprocessableEntity, "current location unavailable; provide latitude and longitude")
		return
	case errors.Is(err, domain.ErrInvalidLocation):
		writeError(w, r, http.StatusBadRequest, "start location is invalid")
		return
	default:
		log.Printf("plan daily route failed: user_id=%s err=%v", req.UserID, err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusOK, routeResponse(plan))
}

func routeResponse(plan *domain.RoutePlan) dto.RouteResponse {
	res := dto.RouteResponse{
		Start: dto.PointResponse{
			Latitude:  plan.Start.Latitude,
			Longitude: plan.Start.Longitude,
		},
		Stops:           make([]dto.RouteStopResponse, 0, len(plan.Stops)),
		Excluded:        make([]dto.ExcludedStopResponse, 0, len(plan.Excluded)),
		TotalDistanceKm: plan.TotalDistanceKm,
		ReturnLegKm:     plan.ReturnLegKm,
		PlannedAt:       plan.PlannedAt,
	}

	for _, s := range plan.Stops {
		res.Stops = append(res.Stops, dto.RouteStopResponse{
			Index:         s.Index,
			AppointmentID: s.Appointment.ID,
			AccountID:     s.Appointment.AccountID,
			Latitude:      s.Location.Latitude,
			Longitude:     s.Location.Longitude,
			DistanceKm:    s.DistanceKm,
			ScheduledAt:   s.Appointment.ScheduledAt,
		})
	}
	for _, e := range plan.Excluded {
		res.Excluded = append(res.Excluded, dto.ExcludedStopResponse{
			AppointmentID: e.AppointmentID,
			AccountID:     e.AccountID,
			Reason:        string(e.Reason),
			Message:       e.Error(),
		})
	}

	return res
}

func (h *RouteHandler) now() time.Time {
	if h.Now == nil {
		return time.Now()
	}
	return h.Now()
}
