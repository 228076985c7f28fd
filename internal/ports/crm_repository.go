package ports

import (
	"context"
	"fieldsales-route-service/internal/domain"
	"time"
)

// Port: a boundary for retrieving Account entities owned by a sales rep.
type AccountRepository interface {
	// Retrieve all accounts for the given user.
	ListAccounts(ctx context.Context, userID string) ([]domain.Account, error)
}

// Narrows an appointment listing. Zero values disable a filter.
// From is inclusive, To is exclusive.
type AppointmentFilter struct {
	From   time.Time
	To     time.Time
	Status domain.AppointmentStatus
}

// Port: a boundary for retrieving Appointment entities.
type AppointmentRepository interface {
	// Retrieve appointments for the given user, ordered by scheduled time.
	ListAppointments(ctx context.Context, userID string, filter AppointmentFilter) ([]domain.Appointment, error)
}

// Port: write access used by the geocoding backfill.
type AccountLocationWriter interface {
	UpdateAccountLocation(ctx context.Context, accountID int64, p domain.GeoPoint) error
}
