package dto

import "time"

type AppointmentResponse struct {
	ID              int64     `json:"id"`
	AccountID       int64     `json:"account_id"`
	ScheduledAt     time.Time `json:"scheduled_at"`
	DurationMinutes int       `json:"duration_minutes"`
	Type            string    `json:"type"`
	Status          string    `json:"status"`
	Notes           string    `json:"notes,omitempty"`
}

type ListAppointmentsResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
}
