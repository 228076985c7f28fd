package config

import (
	"errors"
	"fieldsales-route-service/internal/domain"
	"fieldsales-route-service/internal/platform/sqldb"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"PORT", "DB_DRIVER", "DB_PATH", "DATABASE_URL", "SUPABASE_URL", "SUPABASE_KEY",
		"REDIS_ADDR", "SEED_PATH", "ORS_API_KEY", "LOCATION_MAX_AGE",
		"DEFAULT_LATITUDE", "DEFAULT_LONGITUDE",
	} {
		t.Setenv(k, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "8080", cfg.Port)
	require.Equal(t, DriverSQLite, cfg.DBDriver)
	require.Equal(t, "data/app.db", cfg.SQLDSN())
	require.Equal(t, 20*time.Second, cfg.LocationMaxAge)
	require.Nil(t, cfg.DefaultLocation)

	d, err := cfg.SQLDialect()
	require.NoError(t, err)
	require.Equal(t, sqldb.SQLite, d)
}

func TestLoadPostgresAndDefaultLocation(t *testing.T) {
	clearEnv(t)
	t.Setenv("DB_DRIVER", "Postgres")
	t.Setenv("DATABASE_URL", "postgres://localhost/crm")
	t.Setenv("LOCATION_MAX_AGE", "1m")
	t.Setenv("DEFAULT_LATITUDE", "33.4484")
	t.Setenv("DEFAULT_LONGITUDE", "-112.074")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, DriverPostgres, cfg.DBDriver)
	require.Equal(t, "postgres://localhost/crm", cfg.SQLDSN())
	require.Equal(t, time.Minute, cfg.LocationMaxAge)
	require.Equal(t, &domain.GeoPoint{Latitude: 33.4484, Longitude: -112.074}, cfg.DefaultLocation)
}

func TestLoadErrors(t *testing.T) {
	cases := map[string]map[string]string{
		"postgres without url":  {"DB_DRIVER": "postgres"},
		"supabase without key":  {"DB_DRIVER": "supabase", "SUPABASE_URL": "https://x.supabase.co"},
		"unknown driver":        {"DB_DRIVER": "mysql"},
		"bad duration":          {"LOCATION_MAX_AGE": "soon"},
		"negative duration":     {"LOCATION_MAX_AGE": "-5s"},
		"bad latitude":          {"DEFAULT_LATITUDE": "north", "DEFAULT_LONGITUDE": "0"},
		"out of range location": {"DEFAULT_LATITUDE": "91", "DEFAULT_LONGITUDE": "0"},
	}

	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range env {
				t.Setenv(k, v)
			}
			_, err := Load()
			require.Error(t, err)
		})
	}
}

func TestDefaultLocationOutOfRangeIsInvalidLocation(t *testing.T) {
	clearEnv(t)
	t.Setenv("DEFAULT_LATITUDE", "0")
	t.Setenv("DEFAULT_LONGITUDE", "200")

	_, err := Load()
	require.True(t, errors.Is(err, domain.ErrInvalidLocation))
}
