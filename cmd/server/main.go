package main

import (
	"context"
	"fieldsales-route-service/internal/adapters/location"
	"fieldsales-route-service/internal/adapters/repositories"
	"fieldsales-route-service/internal/api"
	"fieldsales-route-service/internal/config"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

// main is the application composition root.
// It wires concrete adapters (SQL or Supabase, Redis) behind ports and starts the HTTP server.
func main() {
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

	// Seed demo data for local SQLite runs when a seed file is present.
	if backend.DB != nil && cfg.DBDriver == config.DriverSQLite {
		if _, err := os.Stat(cfg.SeedPath); err == nil {
			if err := repositories.SeedFromJSON(backend.DB, backend.Dialect, cfg.SeedPath); err != nil {
				log.Fatal(err)
			}
			log.Printf("seeded demo data path=%s", cfg.SeedPath)
		}
	}

	resolver := location.NewResolver(nil, cfg.LocationMaxAge, cfg.DefaultLocation)
	deps := api.Deps{
		Accounts:     backend.CRM,
		Appointments: backend.CRM,
		Locator:      resolver,
	}

	if cfg.RedisAddr != "" {
		rdb, err := openRedis(cfg.RedisAddr)
		if err != nil {
			log.Fatal(err)
		}
		defer rdb.Close()

		// Fixes are useless once older than the max age, so let Redis expire them.
		resolver.Store = location.NewRedisLocationStore(rdb, cfg.LocationMaxAge)
		deps.Recorder = resolver
	} else {
		log.Println("REDIS_ADDR not set; device locations disabled")
	}

	router := api.NewRouter(deps)

	log.Printf("Server listening addr=:%s driver=%s", cfg.Port, cfg.DBDriver)
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}

func openRedis(addr string) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{Addr: addr})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("openRedis: ping %s: %w", addr, err)
	}
	return rdb, nil
}
