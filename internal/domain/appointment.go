package domain

import "time"

type AppointmentType string

const (
	AppointmentSales        AppointmentType = "sales"
	AppointmentFollowUp     AppointmentType = "follow-up"
	AppointmentIntroduction AppointmentType = "introduction"
)

type AppointmentStatus string

const (
	StatusScheduled AppointmentStatus = "scheduled"
	StatusCompleted AppointmentStatus = "completed"
	StatusCancelled AppointmentStatus = "cancelled"
)

// Represents a scheduled visit to an account.
type Appointment struct {
	ID              int64
	AccountID       int64
	ScheduledAt     time.Time
	DurationMinutes int
	Type            AppointmentType
	Status          AppointmentStatus
	Notes           string
}
