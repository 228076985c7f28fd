package handlers

import (
	"fieldsales-route-service/internal/api/dto"
	"fieldsales-route-service/internal/domain"
	"fieldsales-route-service/internal/ports"
	"log"
	"net/http"
	"strings"
	"time"
)

// AppointmentHandler lists a rep's appointments, optionally for one day.
type AppointmentHandler struct {
	Repo ports.AppointmentRepository
	// Location used to interpret dates. Defaults to UTC.
	Location *time.Location
}

func (h *AppointmentHandler) List(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	var filter ports.AppointmentFilter

	if date := strings.TrimSpace(q.Get("date")); date != "" {
		day, err := parseDay(date, h.Location)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, "date must be formatted as 2006-01-02")
			return
		}
		filter.From = day
		filter.To = day.AddDate(0, 0, 1)
	}
	if status := strings.TrimSpace(q.Get("status")); status != "" {
		filter.Status = domain.AppointmentStatus(status)
	}

	appts, err := h.Repo.ListAppointments(r.Context(), userID, filter)
	if err != nil {
		log.Printf("list appointments failed: user_id=%s err=%v", userID, err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.ListAppointmentsResponse{
		Appointments: make([]dto.AppointmentResponse, 0, len(appts)),
	}
	for _, a := range appts {
		res.Appointments = append(res.Appointments, dto.AppointmentResponse{
			ID:              a.ID,
			AccountID:       a.AccountID,
			ScheduledAt:     a.ScheduledAt,
			DurationMinutes: a.DurationMinutes,
			Type:            string(a.Type),
			Status:          string(a.Status),
			Notes:           a.Notes,
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}

func parseDay(s string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", s, dateLocation(loc))
}

// dateLocation is the zone calendar days are interpreted in.
func dateLocation(loc *time.Location) *time.Location {
	if loc == nil {
		return time.UTC
	}
	return loc
}
