package repositories

import (
	"context"
	"errors"
	"fieldsales-route-service/internal/domain"
	"fieldsales-route-service/internal/platform/obs"
	"fieldsales-route-service/internal/platform/sqldb"
	"fieldsales-route-service/internal/ports"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/supabase-community/supabase-go"
)

// Supabase-backed implementation of the account and appointment ports.
// Reads the same accounts/appointments tables the web and mobile clients use.
type SupabaseCRMRepository struct {
	Client *supabase.Client
}

func NewSupabaseCRMRepository(url, key string) (*SupabaseCRMRepository, error) {
	if strings.TrimSpace(url) == "" || strings.TrimSpace(key) == "" {
		return nil, errors.New("supabase crm repository: url and key are required")
	}

	client, err := supabase.NewClient(url, key, &supabase.ClientOptions{})
	if err != nil {
		return nil, fmt.Errorf("supabase crm repository: create client: %w", err)
	}

	return &SupabaseCRMRepository{Client: client}, nil
}

type supabaseAccountRow struct {
	ID              int64    `json:"id"`
	UserID          string   `json:"user_id"`
	BusinessName    string   `json:"business_name"`
	ContactName     *string  `json:"contact_name"`
	Phone           *string  `json:"phone"`
	Email           *string  `json:"email"`
	StreetAddress   *string  `json:"street_address"`
	City            *string  `json:"city"`
	State           *string  `json:"state"`
	ZipCode         *string  `json:"zip_code"`
	Latitude        *float64 `json:"latitude"`
	Longitude       *float64 `json:"longitude"`
	AccountType     string   `json:"account_type"`
	LastContactDate *string  `json:"last_contact_date"`
	Notes           *string  `json:"notes"`
}

type supabaseAppointmentRow struct {
	ID        int64   `json:"id"`
	AccountID int64   `json:"account_id"`
	Date      string  `json:"date"`
	Duration  int     `json:"duration"`
	Type      string  `json:"type"`
	Notes     *string `json:"notes"`
	Status    string  `json:"status"`
}

// The supabase client does not take a context; ctx is used for logging only.
func (s *SupabaseCRMRepository) ListAccounts(ctx context.Context, userID string) (_ []domain.Account, err error) {
	defer obs.Time(ctx, "crm.supabase.ListAccounts")(&err)

	if s.Client == nil {
		return nil, errors.New("supabase crm repository: client is nil")
	}

	var rows []supabaseAccountRow
	if _, err := s.Client.From("accounts").
		Select("*", "", false).
		Eq("user_id", strings.TrimSpace(userID)).
		ExecuteTo(&rows); err != nil {
		return nil, fmt.Errorf("list accounts: supabase select: %w", err)
	}

	accounts := make([]domain.Account, 0, len(rows))
	for _, r := range rows {
		acc := domain.Account{
			ID:            r.ID,
			UserID:        r.UserID,
			BusinessName:  r.BusinessName,
			ContactName:   deref(r.ContactName),
			Phone:         deref(r.Phone),
			Email:         deref(r.Email),
			StreetAddress: deref(r.StreetAddress),
			City:          deref(r.City),
			State:         deref(r.State),
			ZipCode:       deref(r.ZipCode),
			Latitude:      r.Latitude,
			Longitude:     r.Longitude,
			AccountType:   domain.AccountType(r.AccountType),
			Notes:         deref(r.Notes),
		}
		if t, err := sqldb.ParseTimeText(deref(r.LastContactDate)); err == nil {
			acc.LastContactDate = t
		}
		accounts = append(accounts, acc)
	}

	sort.SliceStable(accounts, func(i, j int) bool {
		return accounts[i].BusinessName < accounts[j].BusinessName
	})

	return accounts, nil
}

func (s *SupabaseCRMRepository) ListAppointments(
	ctx context.Context,
	userID string,
	filter ports.AppointmentFilter,
) (_ []domain.Appointment, err error) {
	defer obs.Time(ctx, "crm.supabase.ListAppointments")(&err)

	if s.Client == nil {
		return nil, errors.New("supabase crm repository: client is nil")
	}

	q := s.Client.From("appointments").
		Select("id,account_id,date,duration,type,notes,status", "", false).
		Eq("user_id", strings.TrimSpace(userID))
	if !filter.From.IsZero() {
		q = q.Gte("date", filter.From.UTC().Format(time.RFC3339))
	}
	if !filter.To.IsZero() {
		q = q.Lt("date", filter.To.UTC().Format(time.RFC3339))
	}
	if filter.Status != "" {
		q = q.Eq("status", string(filter.Status))
	}

	var rows []supabaseAppointmentRow
	if _, err := q.ExecuteTo(&rows); err != nil {
		return nil, fmt.Errorf("list appointments: supabase select: %w", err)
	}

	appointments := make([]domain.Appointment, 0, len(rows))
	for _, r := range rows {
		when, err := sqldb.ParseTimeText(r.Date)
		if err != nil {
			return nil, fmt.Errorf("list appointments: appointment %d date: %w", r.ID, err)
		}
		appointments = append(appointments, domain.Appointment{
			ID:              r.ID,
			AccountID:       r.AccountID,
			ScheduledAt:     when,
			DurationMinutes: r.Duration,
			Type:            domain.AppointmentType(r.Type),
			Status:          domain.AppointmentStatus(r.Status),
			Notes:           deref(r.Notes),
		})
	}

	sort.SliceStable(appointments, func(i, j int) bool {
		return appointments[i].ScheduledAt.Before(appointments[j].ScheduledAt)
	})

	return appointments, nil
}

func (s *SupabaseCRMRepository) UpdateAccountLocation(ctx context.Context, accountID int64, p domain.GeoPoint) (err error) {
	defer obs.Time(ctx, "crm.supabase.UpdateAccountLocation")(&err)

	if s.Client == nil {
		return errors.New("supabase crm repository: client is nil")
	}
	if !p.Valid() {
		return fmt.Errorf("update account location: account %d: %w", accountID, domain.ErrInvalidLocation)
	}

	update := map[string]any{"latitude": p.Latitude, "longitude": p.Longitude}

	var updated []supabaseAccountRow
	if _, err := s.Client.From("accounts").
		Update(update, "representation", "").
		Eq("id", strconv.FormatInt(accountID, 10)).
		ExecuteTo(&updated); err != nil {
		return fmt.Errorf("update account location: account %d: %w", accountID, err)
	}
	if len(updated) == 0 {
		return fmt.Errorf("update account location: account %d: %w", accountID, domain.ErrNotFound)
	}

	return nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
