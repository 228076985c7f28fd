package dto

import "time"

type RouteRequest struct {
	UserID string `json:"user_id" validate:"required"`
	// Day to plan as YYYY-MM-DD. Defaults to today.
	Date string `json:"date" validate:"omitempty,datetime=2006-01-02"`
	// Optional explicit start; both coordinates or neither.
	Latitude      *float64 `json:"latitude" validate:"omitempty,gte=-90,lte=90"`
	Longitude     *float64 `json:"longitude" validate:"omitempty,gte=-180,lte=180"`
	ReturnToStart bool     `json:"return_to_start"`
}

type PointResponse struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type RouteStopResponse struct {
	Index         int       `json:"index"`
	AppointmentID int64     `json:"appointment_id"`
	AccountID     int64     `json:"account_id"`
	Latitude      float64   `json:"latitude"`
	Longitude     float64   `json:"longitude"`
	DistanceKm    float64   `json:"distance_km"`
	ScheduledAt   time.Time `json:"scheduled_at"`
}

type ExcludedStopResponse struct {
	AppointmentID int64  `json:"appointment_id"`
	AccountID     int64  `json:"account_id"`
	Reason        string `json:"reason"`
	Message       string `json:"message"`
}

type RouteResponse struct {
	Start           PointResponse          `json:"start"`
	Stops           []RouteStopResponse    `json:"stops"`
	Excluded        []ExcludedStopResponse `json:"excluded"`
	TotalDistanceKm float64                `json:"total_distance_km"`
	ReturnLegKm     float64                `json:"return_leg_km"`
	PlannedAt       time.Time              `json:"planned_at"`
}
