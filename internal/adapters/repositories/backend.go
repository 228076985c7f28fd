package repositories

import (
	"database/sql"
	"fieldsales-route-service/internal/config"
	"fieldsales-route-service/internal/platform/sqldb"
	"fieldsales-route-service/internal/ports"
	"fmt"
)

// CRMRepository is the full contract a CRM backend satisfies.
type CRMRepository interface {
	ports.AccountRepository
	ports.AppointmentRepository
	ports.AccountLocationWriter
}

// Backend is an opened CRM store. DB is nil for the hosted Supabase backend.
type Backend struct {
	CRM     CRMRepository
	DB      *sql.DB
	Dialect sqldb.Dialect
}

// OpenBackend connects to the backend selected by cfg.DBDriver.
// SQL backends get their schema created if it does not exist yet.
func OpenBackend(cfg config.Config) (*Backend, error) {
	if cfg.DBDriver == config.DriverSupabase {
		repo, err := NewSupabaseCRMRepository(cfg.SupabaseURL, cfg.SupabaseKey)
		if err != nil {
			return nil, fmt.Errorf("open backend: %w", err)
		}
		return &Backend{CRM: repo}, nil
	}

	d, err := cfg.SQLDialect()
	if err != nil {
		return nil, fmt.Errorf("open backend: %w", err)
	}

	db, err := sqldb.Open(d, cfg.SQLDSN())
	if err != nil {
		return nil, fmt.Errorf("open backend: %w", err)
	}

	if err := InitSchema(db, d); err != nil {
		db.Close()
		return nil, fmt.Errorf("open backend: %w", err)
	}

	return &Backend{CRM: NewSQLCRMRepository(db, d), DB: db, Dialect: d}, nil
}

// SchemaManaged reports whether tables live in a hosted project and cannot
// be created or seeded from here.
func (b *Backend) SchemaManaged() bool {
	return b.DB == nil
}

func (b *Backend) Close() error {
	if b.DB == nil {
		return nil
	}
	return b.DB.Close()
}
