package repositories

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fieldsales-route-service/internal/domain"
	"fieldsales-route-service/internal/platform/sqldb"
	"fmt"
	"os"
	"strings"
)

// Initialize the CRM schema for the given dialect.
func InitSchema(db *sql.DB, d sqldb.Dialect) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	var statements []string
	switch d {
	case sqldb.SQLite:
		statements = sqliteSchema
	case sqldb.Postgres:
		statements = postgresSchema
	default:
		return fmt.Errorf("init schema: unsupported dialect %q", d)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

var sqliteSchema = []string{
	`
	CREATE TABLE IF NOT EXISTS accounts (
		id INTEGER PRIMARY KEY,
		user_id TEXT NOT NULL,
		business_name TEXT NOT NULL,
		contact_name TEXT,
		phone TEXT,
		email TEXT,
		street_address TEXT,
		city TEXT,
		state TEXT,
		zip_code TEXT,
		latitude REAL,
		longitude REAL,
		account_type TEXT NOT NULL CHECK (account_type IN ('active', 'prospect', 'inactive')),
		last_contact_date TEXT,
		notes TEXT
	);
	`,
	`
	CREATE TABLE IF NOT EXISTS appointments (
		id INTEGER PRIMARY KEY,
		user_id TEXT NOT NULL,
		account_id INTEGER NOT NULL REFERENCES accounts(id),
		date TEXT NOT NULL,
		duration INTEGER NOT NULL DEFAULT 30,
		type TEXT NOT NULL CHECK (type IN ('sales', 'follow-up', 'introduction')),
		notes TEXT,
		status TEXT NOT NULL CHECK (status IN ('scheduled', 'completed', 'cancelled'))
	);
	`,
	`
	CREATE TABLE IF NOT EXISTS geocode_cache (
		address TEXT PRIMARY KEY,
		lon REAL NOT NULL,
		lat REAL NOT NULL
	);
	`,
	`CREATE INDEX IF NOT EXISTS idx_accounts_user ON accounts(user_id);`,
	`CREATE INDEX IF NOT EXISTS idx_appointments_user_date ON appointments(user_id, date);`,
}

var postgresSchema = []string{
	`
	CREATE TABLE IF NOT EXISTS accounts (
		id BIGINT PRIMARY KEY,
		user_id TEXT NOT NULL,
		business_name TEXT NOT NULL,
		contact_name TEXT,
		phone TEXT,
		email TEXT,
		street_address TEXT,
		city TEXT,
		state TEXT,
		zip_code TEXT,
		latitude DOUBLE PRECISION,
		longitude DOUBLE PRECISION,
		account_type TEXT NOT NULL CHECK (account_type IN ('active', 'prospect', 'inactive')),
		last_contact_date TIMESTAMPTZ,
		notes TEXT
	);
	`,
	`
	CREATE TABLE IF NOT EXISTS appointments (
		id BIGINT PRIMARY KEY,
		user_id TEXT NOT NULL,
		account_id BIGINT NOT NULL REFERENCES accounts(id),
		date TIMESTAMPTZ NOT NULL,
		duration INTEGER NOT NULL DEFAULT 30,
		type TEXT NOT NULL CHECK (type IN ('sales', 'follow-up', 'introduction')),
		notes TEXT,
		status TEXT NOT NULL CHECK (status IN ('scheduled', 'completed', 'cancelled'))
	);
	`,
	`
	CREATE TABLE IF NOT EXISTS geocode_cache (
		address TEXT PRIMARY KEY,
		lon DOUBLE PRECISION NOT NULL,
		lat DOUBLE PRECISION NOT NULL
	);
	`,
	`CREATE INDEX IF NOT EXISTS idx_accounts_user ON accounts(user_id);`,
	`CREATE INDEX IF NOT EXISTS idx_appointments_user_date ON appointments(user_id, date);`,
}

type AccountSeed struct {
	ID              int64    `json:"id"`
	UserID          string   `json:"user_id"`
	BusinessName    string   `json:"business_name"`
	ContactName     string   `json:"contact_name"`
	Phone           string   `json:"phone"`
	Email           string   `json:"email"`
	StreetAddress   string   `json:"street_address"`
	City            string   `json:"city"`
	State           string   `json:"state"`
	ZipCode         string   `json:"zip_code"`
	Latitude        *float64 `json:"latitude"`
	Longitude       *float64 `json:"longitude"`
	AccountType     string   `json:"account_type"`
	LastContactDate string   `json:"last_contact_date"`
	Notes           string   `json:"notes"`
}

type AppointmentSeed struct {
	ID        int64  `json:"id"`
	UserID    string `json:"user_id"`
	AccountID int64  `json:"account_id"`
	Date      string `json:"date"`
	Duration  int    `json:"duration"`
	Type      string `json:"type"`
	Notes     string `json:"notes"`
	Status    string `json:"status"`
}

type Seed struct {
	Accounts     []AccountSeed     `json:"accounts"`
	Appointments []AppointmentSeed `json:"appointments"`
}

// Populate the database with demo accounts and appointments from a JSON file.
func SeedFromJSON(db *sql.DB, d sqldb.Dialect, jsonPath string) error {
	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return fmt.Errorf("seed crm: read %q: %w", jsonPath, err)
	}

	var data Seed
	if err := json.Unmarshal(bytes, &data); err != nil {
		return fmt.Errorf("seed crm: parse json: %w", err)
	}

	return ApplySeed(db, d, data)
}

// Validate and upsert seed rows inside a single transaction.
func ApplySeed(db *sql.DB, d sqldb.Dialect, data Seed) error {
	if db == nil {
		return errors.New("seed crm: DB is nil")
	}

	for i, a := range data.Accounts {
		if a.ID <= 0 {
			return fmt.Errorf("seed crm: invalid account id at index %d: %d", i+1, a.ID)
		}
		if strings.TrimSpace(a.BusinessName) == "" {
			return fmt.Errorf("seed crm: account %d: business_name cannot be empty", a.ID)
		}
		if strings.TrimSpace(a.UserID) == "" {
			return fmt.Errorf("seed crm: account %d: user_id cannot be empty", a.ID)
		}
	}
	for i, ap := range data.Appointments {
		if ap.ID <= 0 {
			return fmt.Errorf("seed crm: invalid appointment id at index %d: %d", i+1, ap.ID)
		}
		if _, err := sqldb.ParseTimeText(ap.Date); err != nil || strings.TrimSpace(ap.Date) == "" {
			return fmt.Errorf("seed crm: appointment %d: invalid date %q", ap.ID, ap.Date)
		}
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("seed crm: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	accStmt, err := tx.Prepare(d.Rebind(`
	INSERT INTO accounts (
		id, user_id, business_name, contact_name, phone, email,
		street_address, city, state, zip_code, latitude, longitude,
		account_type, last_contact_date, notes
	)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT (id) DO UPDATE SET
		user_id = excluded.user_id,
		business_name = excluded.business_name,
		contact_name = excluded.contact_name,
		phone = excluded.phone,
		email = excluded.email,
		street_address = excluded.street_address,
		city = excluded.city,
		state = excluded.state,
		zip_code = excluded.zip_code,
		latitude = excluded.latitude,
		longitude = excluded.longitude,
		account_type = excluded.account_type,
		last_contact_date = excluded.last_contact_date,
		notes = excluded.notes;
	`))
	if err != nil {
		return fmt.Errorf("seed crm: prepare account insert: %w", err)
	}
	defer accStmt.Close()

	for _, a := range data.Accounts {
		accType := a.AccountType
		if accType == "" {
			accType = string(domain.AccountProspect)
		}

		var lastContact any
		if t, _ := sqldb.ParseTimeText(a.LastContactDate); !t.IsZero() {
			lastContact = d.TimeArg(t)
		}

		if _, err := accStmt.Exec(
			a.ID, strings.TrimSpace(a.UserID), strings.TrimSpace(a.BusinessName),
			nullString(a.ContactName), nullString(a.Phone), nullString(a.Email),
			nullString(a.StreetAddress), nullString(a.City), nullString(a.State), nullString(a.ZipCode),
			nullFloat(a.Latitude), nullFloat(a.Longitude), accType, lastContact, nullString(a.Notes),
		); err != nil {
			return fmt.Errorf("seed crm: insert account id=%d: %w", a.ID, err)
		}
	}

	apptStmt, err := tx.Prepare(d.Rebind(`
	INSERT INTO appointments (id, user_id, account_id, date, duration, type, notes, status)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT (id) DO UPDATE SET
		user_id = excluded.user_id,
		account_id = excluded.account_id,
		date = excluded.date,
		duration = excluded.duration,
		type = excluded.type,
		notes = excluded.notes,
		status = excluded.status;
	`))
	if err != nil {
		return fmt.Errorf("seed crm: prepare appointment insert: %w", err)
	}
	defer apptStmt.Close()

	for _, ap := range data.Appointments {
		when, _ := sqldb.ParseTimeText(ap.Date)

		duration := ap.Duration
		if duration <= 0 {
			duration = 30
		}
		apptType := ap.Type
		if apptType == "" {
			apptType = string(domain.AppointmentSales)
		}
		status := ap.Status
		if status == "" {
			status = string(domain.StatusScheduled)
		}

		if _, err := apptStmt.Exec(
			ap.ID, strings.TrimSpace(ap.UserID), ap.AccountID, d.TimeArg(when),
			duration, apptType, nullString(ap.Notes), status,
		); err != nil {
			return fmt.Errorf("seed crm: insert appointment id=%d: %w", ap.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed crm: commit tx: %w", err)
	}

	return nil
}

func nullString(s string) sql.NullString {
	s = strings.TrimSpace(s)
	return sql.NullString{String: s, Valid: s != ""}
}

func nullFloat(p *float64) sql.NullFloat64 {
	if p == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *p, Valid: true}
}
