package config

import (
	"errors"
	"fieldsales-route-service/internal/domain"
	"fieldsales-route-service/internal/platform/sqldb"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverSupabase = "supabase"
)

type Config struct {
	Port     string
	DBDriver string
	DBPath   string
	// Postgres connection string, used when DBDriver is postgres.
	DatabaseURL string
	SupabaseURL string
	SupabaseKey string
	// Empty disables device location storage.
	RedisAddr       string
	LocationMaxAge  time.Duration
	DefaultLocation *domain.GeoPoint
	SeedPath        string
	ORSAPIKey       string
}

// LoadEnv reads a .env file into the process environment if one exists.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}
}

func Get(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func GetFloat(key string, fallback float64) (float64, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("config %s: %w", key, err)
	}
	return f, nil
}

func GetDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("config %s: %w", key, err)
	}
	return d, nil
}

// Load builds a Config from the environment. LoadEnv should run first.
func Load() (Config, error) {
	cfg := Config{
		Port:        Get("PORT", "8080"),
		DBDriver:    strings.ToLower(Get("DB_DRIVER", DriverSQLite)),
		DBPath:      Get("DB_PATH", "data/app.db"),
		DatabaseURL: Get("DATABASE_URL", ""),
		SupabaseURL: Get("SUPABASE_URL", ""),
		SupabaseKey: Get("SUPABASE_KEY", ""),
		RedisAddr:   Get("REDIS_ADDR", ""),
		SeedPath:    Get("SEED_PATH", "data/seeds/crm.json"),
		ORSAPIKey:   Get("ORS_API_KEY", ""),
	}

	var err error
	// Matches the 20s maximum age the mobile client accepts for a cached fix.
	cfg.LocationMaxAge, err = GetDuration("LOCATION_MAX_AGE", 20*time.Second)
	if err != nil {
		return Config{}, err
	}

	def, err := defaultLocation()
	if err != nil {
		return Config{}, err
	}
	cfg.DefaultLocation = def

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func defaultLocation() (*domain.GeoPoint, error) {
	if Get("DEFAULT_LATITUDE", "") == "" && Get("DEFAULT_LONGITUDE", "") == "" {
		return nil, nil
	}

	lat, err := GetFloat("DEFAULT_LATITUDE", 0)
	if err != nil {
		return nil, err
	}
	lon, err := GetFloat("DEFAULT_LONGITUDE", 0)
	if err != nil {
		return nil, err
	}

	p := domain.GeoPoint{Latitude: lat, Longitude: lon}
	if !p.Valid() {
		return nil, fmt.Errorf("config default location (%v, %v): %w", lat, lon, domain.ErrInvalidLocation)
	}
	return &p, nil
}

func (c Config) Validate() error {
	switch c.DBDriver {
	case DriverSQLite:
		if c.DBPath == "" {
			return errors.New("config: DB_PATH is required for sqlite")
		}
	case DriverPostgres:
		if c.DatabaseURL == "" {
			return errors.New("config: DATABASE_URL is required for postgres")
		}
	case DriverSupabase:
		if c.SupabaseURL == "" || c.SupabaseKey == "" {
			return errors.New("config: SUPABASE_URL and SUPABASE_KEY are required for supabase")
		}
	default:
		return fmt.Errorf("config: unknown DB_DRIVER %q", c.DBDriver)
	}

	if c.LocationMaxAge < 0 {
		return errors.New("config: LOCATION_MAX_AGE must not be negative")
	}
	return nil
}

// SQLDialect returns the SQL dialect for SQL-backed drivers.
func (c Config) SQLDialect() (sqldb.Dialect, error) {
	return sqldb.ParseDialect(c.DBDriver)
}

// SQLDSN returns the data source name for SQL-backed drivers.
func (c Config) SQLDSN() string {
	if c.DBDriver == DriverPostgres {
		return c.DatabaseURL
	}
	return c.DBPath
}
