package location

import (
	"context"
	"errors"
	"fieldsales-route-service/internal/domain"
	"fieldsales-route-service/internal/ports"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T, ttl time.Duration) (*RedisLocationStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisLocationStore(client, ttl), mr
}

func TestRedisLocationStoreRoundTrip(t *testing.T) {
	store, _ := newTestStore(t, time.Minute)
	ctx := context.Background()

	reported := time.Date(2026, 4, 1, 9, 30, 0, 0, time.UTC)
	fix := ports.LocationFix{
		Point:      domain.GeoPoint{Latitude: 33.45, Longitude: -112.07},
		ReportedAt: reported,
	}
	require.NoError(t, store.SaveLocation(ctx, "rep-1", fix))

	got, err := store.LastLocation(ctx, "rep-1")
	require.NoError(t, err)
	require.Equal(t, fix.Point, got.Point)
	require.True(t, got.ReportedAt.Equal(reported))
}

func TestRedisLocationStoreMissingAndExpired(t *testing.T) {
	store, mr := newTestStore(t, 20*time.Second)
	ctx := context.Background()

	_, err := store.LastLocation(ctx, "nobody")
	require.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, store.SaveLocation(ctx, "rep-2", ports.LocationFix{
		Point:      domain.GeoPoint{Latitude: 1, Longitude: 2},
		ReportedAt: time.Now(),
	}))
	mr.FastForward(21 * time.Second)

	_, err = store.LastLocation(ctx, "rep-2")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRedisLocationStoreRejectsInvalidPoint(t *testing.T) {
	store, _ := newTestStore(t, time.Minute)

	err := store.SaveLocation(context.Background(), "rep", ports.LocationFix{
		Point: domain.GeoPoint{Latitude: 100},
	})
	require.ErrorIs(t, err, domain.ErrInvalidLocation)
}

func TestResolverPrefersFreshFix(t *testing.T) {
	store, _ := newTestStore(t, time.Hour)
	ctx := context.Background()
	now := time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC)
	def := domain.GeoPoint{Latitude: 10, Longitude: 10}

	r := NewResolver(store, 20*time.Second, &def)
	r.Now = func() time.Time { return now }

	require.NoError(t, r.Record(ctx, "rep", domain.GeoPoint{Latitude: 33, Longitude: -112}))

	p, err := r.CurrentLocation(ctx, "rep")
	require.NoError(t, err)
	require.Equal(t, domain.GeoPoint{Latitude: 33, Longitude: -112}, p)

	// Once the fix is older than MaxAge the default wins.
	r.Now = func() time.Time { return now.Add(time.Minute) }
	p, err = r.CurrentLocation(ctx, "rep")
	require.NoError(t, err)
	require.Equal(t, def, p)
}

type brokenStore struct{}

func (brokenStore) SaveLocation(ctx context.Context, userID string, fix ports.LocationFix) error {
	return errors.New("down")
}

func (brokenStore) LastLocation(ctx context.Context, userID string) (ports.LocationFix, error) {
	return ports.LocationFix{}, errors.New("down")
}

func TestResolverFallbacks(t *testing.T) {
	ctx := context.Background()
	def := domain.GeoPoint{Latitude: 40, Longitude: -74}

	p, err := NewResolver(brokenStore{}, time.Minute, &def).CurrentLocation(ctx, "rep")
	require.NoError(t, err)
	require.Equal(t, def, p)

	_, err = NewResolver(brokenStore{}, time.Minute, nil).CurrentLocation(ctx, "rep")
	require.ErrorIs(t, err, domain.ErrLocationUnavailable)

	_, err = NewResolver(nil, 0, nil).CurrentLocation(ctx, "rep")
	require.ErrorIs(t, err, domain.ErrLocationUnavailable)

	require.Error(t, NewResolver(nil, 0, nil).Record(ctx, "rep", def))
}
