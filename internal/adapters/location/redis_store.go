package location

import (
	"context"
	"encoding/json"
	"errors"
	"fieldsales-route-service/internal/domain"
	"fieldsales-route-service/internal/platform/obs"
	"fieldsales-route-service/internal/ports"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisLocationStore keeps the most recent device fix per user.
// Entries expire after TTL so stale fixes are never used as a route start.
type RedisLocationStore struct {
	Client *redis.Client
	TTL    time.Duration
	Prefix string
}

func NewRedisLocationStore(client *redis.Client, ttl time.Duration) *RedisLocationStore {
	return &RedisLocationStore{Client: client, TTL: ttl, Prefix: "location:last:"}
}

type storedFix struct {
	Lat        float64   `json:"lat"`
	Lon        float64   `json:"lon"`
	ReportedAt time.Time `json:"reported_at"`
}

func (s *RedisLocationStore) key(userID string) string {
	return s.Prefix + strings.TrimSpace(userID)
}

// Store the fix for userID, replacing any previous one.
func (s *RedisLocationStore) SaveLocation(ctx context.Context, userID string, fix ports.LocationFix) (err error) {
	defer obs.Time(ctx, "location.redis.SaveLocation")(&err)

	if s.Client == nil {
		return errors.New("location store: redis client is nil")
	}
	if strings.TrimSpace(userID) == "" {
		return errors.New("save location: user id must be non-empty")
	}
	if !fix.Point.Valid() {
		return fmt.Errorf("save location: %v: %w", fix.Point, domain.ErrInvalidLocation)
	}

	payload, err := json.Marshal(storedFix{
		Lat:        fix.Point.Latitude,
		Lon:        fix.Point.Longitude,
		ReportedAt: fix.ReportedAt.UTC(),
	})
	if err != nil {
		return fmt.Errorf("save location: marshal: %w", err)
	}

	if err := s.Client.Set(ctx, s.key(userID), payload, s.TTL).Err(); err != nil {
		return fmt.Errorf("save location: redis set: %w", err)
	}
	return nil
}

// Fetch the last fix for userID.
func (s *RedisLocationStore) LastLocation(ctx context.Context, userID string) (_ ports.LocationFix, err error) {
	defer obs.Time(ctx, "location.redis.LastLocation")(&err)

	if s.Client == nil {
		return ports.LocationFix{}, errors.New("location store: redis client is nil")
	}

	raw, err := s.Client.Get(ctx, s.key(userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return ports.LocationFix{}, fmt.Errorf("last location for %q: %w", userID, domain.ErrNotFound)
	}
	if err != nil {
		return ports.LocationFix{}, fmt.Errorf("last location: redis get: %w", err)
	}

	var sf storedFix
	if err := json.Unmarshal(raw, &sf); err != nil {
		return ports.LocationFix{}, fmt.Errorf("last location: decode: %w", err)
	}

	return ports.LocationFix{
		Point:      domain.GeoPoint{Latitude: sf.Lat, Longitude: sf.Lon},
		ReportedAt: sf.ReportedAt,
	}, nil
}
