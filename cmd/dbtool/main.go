package main

import (
	"context"
	"errors"
	"fieldsales-route-service/internal/adapters/cache"
	"fieldsales-route-service/internal/adapters/geocoding"
	"fieldsales-route-service/internal/adapters/repositories"
	"fieldsales-route-service/internal/config"
	"fieldsales-route-service/internal/services"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"
)

const usage = `usage: dbtool <command> [flags]

commands:
  init                   create tables and indexes
  seed [-path file]      load demo accounts and appointments
  geocode -user id       fill in coordinates for accounts that only have an address`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}

	config.LoadEnv()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	backend, err := repositories.OpenBackend(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer backend.Close()

	cmd, args := os.Args[1], os.Args[2:]
	switch cmd {
	case "init":
		log.Println(initMessage(backend))
	case "seed":
		err = seed(backend, cfg, args)
	case "geocode":
		err = geocode(backend, cfg, args)
	default:
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}

	if err != nil {
		log.Fatalf("%s failed: %v", cmd, err)
	}
}

// initMessage reports the schema state; OpenBackend already created the
// schema for SQL drivers.
func initMessage(backend *repositories.Backend) string {
	if backend.SchemaManaged() {
		return "Schema is managed by the hosted Supabase project; nothing to create."
	}
	return "Schema ready."
}

func seed(backend *repositories.Backend, cfg config.Config, args []string) error {
	fs := flag.NewFlagSet("seed", flag.ExitOnError)
	path := fs.String("path", cfg.SeedPath, "seed JSON file")
	fs.Parse(args)

	if backend.SchemaManaged() {
		return errors.New("seeding requires a SQL backend")
	}

	log.Printf("Seeding database path=%s", *path)
	if err := repositories.SeedFromJSON(backend.DB, backend.Dialect, *path); err != nil {
		return err
	}
	log.Println("Seeding complete.")
	return nil
}

func geocode(backend *repositories.Backend, cfg config.Config, args []string) error {
	fs := flag.NewFlagSet("geocode", flag.ExitOnError)
	userID := fs.String("user", "", "owner of the accounts to geocode")
	timeout := fs.Duration("timeout", 2*time.Minute, "overall deadline")
	fs.Parse(args)

	if strings.TrimSpace(*userID) == "" {
		return errors.New("-user is required")
	}

	// Results are cached in SQL when available so reruns skip known addresses.
	var geoCache geocoding.Cache
	if backend.DB != nil {
		geoCache = cache.NewSQLGeocodeCache(backend.DB, backend.Dialect)
	}

	geocoder, err := geocoding.NewORSGeocoder(cfg.ORSAPIKey, geoCache)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	res, err := services.BackfillAccountLocations(ctx, *userID, backend.CRM, backend.CRM, geocoder)
	if err != nil {
		return err
	}

	log.Printf("geocode complete: updated=%v unresolved=%v no_address=%v", res.Updated, res.Unresolved, res.NoAddress)
	return nil
}
