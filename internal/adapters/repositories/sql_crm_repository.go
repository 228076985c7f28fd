package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fieldsales-route-service/internal/domain"
	"fieldsales-route-service/internal/platform/obs"
	"fieldsales-route-service/internal/platform/sqldb"
	"fieldsales-route-service/internal/ports"
	"fmt"
	"strings"
)

// SQL-backed implementation of the account and appointment ports.
// Works against SQLite (modernc.org/sqlite) and Postgres (pgx stdlib).
type SQLCRMRepository struct {
	DB      *sql.DB
	Dialect sqldb.Dialect
}

func NewSQLCRMRepository(db *sql.DB, d sqldb.Dialect) *SQLCRMRepository {
	return &SQLCRMRepository{DB: db, Dialect: d}
}

// Return all accounts owned by userID, ordered by business name.
func (s *SQLCRMRepository) ListAccounts(ctx context.Context, userID string) (_ []domain.Account, err error) {
	defer obs.Time(ctx, "crm.sql.ListAccounts")(&err)

	if s.DB == nil {
		return nil, errors.New("sql crm repository: DB is nil")
	}

	query := s.Dialect.Rebind(`
	SELECT
		id, user_id, business_name, contact_name, phone, email,
		street_address, city, state, zip_code, latitude, longitude,
		account_type, last_contact_date, notes
	FROM accounts
	WHERE user_id = ?
	ORDER BY business_name, id;
	`)

	rows, err := s.DB.QueryContext(ctx, query, strings.TrimSpace(userID))
	if err != nil {
		return nil, fmt.Errorf("list accounts: query accounts table: %w", err)
	}
	defer rows.Close()

	accounts := make([]domain.Account, 0, 64)
	for rows.Next() {
		acc, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("list accounts: %w", err)
		}
		accounts = append(accounts, acc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list accounts: row iteration: %w", err)
	}

	return accounts, nil
}

// Return appointments for userID matching filter, ordered by date.
func (s *SQLCRMRepository) ListAppointments(
	ctx context.Context,
	userID string,
	filter ports.AppointmentFilter,
) (_ []domain.Appointment, err error) {
	defer obs.Time(ctx, "crm.sql.ListAppointments")(&err)

	if s.DB == nil {
		return nil, errors.New("sql crm repository: DB is nil")
	}

	var (
		where = []string{"user_id = ?"}
		args  = []any{strings.TrimSpace(userID)}
	)
	if !filter.From.IsZero() {
		where = append(where, "date >= ?")
		args = append(args, s.Dialect.TimeArg(filter.From))
	}
	if !filter.To.IsZero() {
		where = append(where, "date < ?")
		args = append(args, s.Dialect.TimeArg(filter.To))
	}
	if filter.Status != "" {
		where = append(where, "status = ?")
		args = append(args, string(filter.Status))
	}

	// Only fixed condition fragments are joined; values stay parameterized.
	query := s.Dialect.Rebind(fmt.Sprintf(`
	SELECT id, account_id, date, duration, type, notes, status
	FROM appointments
	WHERE %s
	ORDER BY date, id;
	`, strings.Join(where, " AND ")))

	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list appointments: query appointments table: %w", err)
	}
	defer rows.Close()

	appointments := make([]domain.Appointment, 0, 16)
	for rows.Next() {
		var (
			appt     domain.Appointment
			date     any
			apptType string
			notes    sql.NullString
			status   string
		)
		if err := rows.Scan(&appt.ID, &appt.AccountID, &date, &appt.DurationMinutes, &apptType, &notes, &status); err != nil {
			return nil, fmt.Errorf("list appointments: scan row: %w", err)
		}

		when, err := sqldb.ParseTime(date)
		if err != nil {
			return nil, fmt.Errorf("list appointments: appointment %d date: %w", appt.ID, err)
		}
		appt.ScheduledAt = when
		appt.Type = domain.AppointmentType(apptType)
		appt.Status = domain.AppointmentStatus(status)
		appt.Notes = notes.String

		appointments = append(appointments, appt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list appointments: row iteration: %w", err)
	}

	return appointments, nil
}

// Write geocoded coordinates back to an account.
func (s *SQLCRMRepository) UpdateAccountLocation(ctx context.Context, accountID int64, p domain.GeoPoint) (err error) {
	defer obs.Time(ctx, "crm.sql.UpdateAccountLocation")(&err)

	if s.DB == nil {
		return errors.New("sql crm repository: DB is nil")
	}
	if !p.Valid() {
		return fmt.Errorf("update account location: account %d: %w", accountID, domain.ErrInvalidLocation)
	}

	res, err := s.DB.ExecContext(ctx, s.Dialect.Rebind(`
	UPDATE accounts SET latitude = ?, longitude = ? WHERE id = ?;
	`), p.Latitude, p.Longitude, accountID)
	if err != nil {
		return fmt.Errorf("update account location: account %d: %w", accountID, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update account location: rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("update account location: account %d: %w", accountID, domain.ErrNotFound)
	}

	return nil
}

func scanAccount(rows *sql.Rows) (domain.Account, error) {
	var (
		acc                                 domain.Account
		contact, phone, email, street, city sql.NullString
		state, zip, notes                   sql.NullString
		lat, lon                            sql.NullFloat64
		accType                             string
		lastContact                         any
	)

	if err := rows.Scan(
		&acc.ID, &acc.UserID, &acc.BusinessName, &contact, &phone, &email,
		&street, &city, &state, &zip, &lat, &lon,
		&accType, &lastContact, &notes,
	); err != nil {
		return domain.Account{}, fmt.Errorf("scan account row: %w", err)
	}

	t, err := sqldb.ParseTime(lastContact)
	if err != nil {
		return domain.Account{}, fmt.Errorf("account %d last_contact_date: %w", acc.ID, err)
	}

	acc.ContactName = contact.String
	acc.Phone = phone.String
	acc.Email = email.String
	acc.StreetAddress = street.String
	acc.City = city.String
	acc.State = state.String
	acc.ZipCode = zip.String
	acc.Notes = notes.String
	acc.AccountType = domain.AccountType(accType)
	acc.LastContactDate = t
	if lat.Valid {
		v := lat.Float64
		acc.Latitude = &v
	}
	if lon.Valid {
		v := lon.Float64
		acc.Longitude = &v
	}

	return acc, nil
}
