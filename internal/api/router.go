package api

import (
	"fieldsales-route-service/internal/api/handlers"
	"fieldsales-route-service/internal/ports"
	"net/http"
	"time"
)

type Deps struct {
	Accounts     ports.AccountRepository
	Appointments ports.AppointmentRepository
	Locator      ports.LocationProvider
	// Nil disables POST /locations.
	Recorder handlers.LocationRecorder
	// Location used to interpret calendar dates. Defaults to UTC.
	Location *time.Location
}

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(deps Deps) http.Handler {
	mux := http.NewServeMux()

	accountHandler := &handlers.AccountHandler{Repo: deps.Accounts}
	appointmentHandler := &handlers.AppointmentHandler{
		Repo:     deps.Appointments,
		Location: deps.Location,
	}
	routeHandler := &handlers.RouteHandler{
		Accounts:     deps.Accounts,
		Appointments: deps.Appointments,
		Locator:      deps.Locator,
		Location:     deps.Location,
	}
	locationHandler := &handlers.LocationHandler{Recorder: deps.Recorder}
	callListHandler := &handlers.CallListHandler{Repo: deps.Accounts}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/accounts", accountHandler.List)
	mux.HandleFunc("/appointments", appointmentHandler.List)
	mux.HandleFunc("/routes", routeHandler.Plan)
	mux.HandleFunc("/locations", locationHandler.Record)
	mux.HandleFunc("/call-list", callListHandler.List)

	return requestIDMiddleware(loggingMiddleware(mux))
}
