package geocoding

import (
	"context"
	"errors"
	"fieldsales-route-service/internal/domain"
	"fieldsales-route-service/internal/platform/obs"
	"fieldsales-route-service/internal/ports"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"
)

// Persistent address -> coordinate cache consulted before calling ORS.
type Cache interface {
	GetMany(ctx context.Context, addresses []string) (map[string]domain.GeoPoint, error)
	PutMany(ctx context.Context, results map[string]domain.GeoPoint) error
}

// ORSGeocoder implements ports.Geocoder using the OpenRouteService
// geocode search endpoint.
//
// Lookups are normalized, served from the cache when possible, and
// retried with backoff on transient failures. Safe for concurrent use.
type ORSGeocoder struct {
	session *http.Client
	apiKey  string
	baseURL string
	country string
	cache   Cache
}

func NewORSGeocoder(apiKey string, cache Cache) (*ORSGeocoder, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("ORS api key is empty")
	}

	return &ORSGeocoder{
		session: &http.Client{Timeout: 10 * time.Second},
		apiKey:  apiKey,
		baseURL: "https://api.openrouteservice.org",
		country: "US",
		cache:   cache,
	}, nil
}

// WithBaseURL points the geocoder at a different ORS deployment.
func (o *ORSGeocoder) WithBaseURL(u string) *ORSGeocoder {
	o.baseURL = strings.TrimRight(u, "/")
	return o
}

// Geocode resolves addresses to coordinates. Results are keyed by the
// normalized address; addresses ORS cannot place are omitted.
func (o *ORSGeocoder) Geocode(ctx context.Context, addresses []string) (_ map[string]domain.GeoPoint, err error) {
	defer obs.Time(ctx, "ors.Geocode")(&err)

	seen := make(map[string]struct{}, len(addresses))
	wanted := make([]string, 0, len(addresses))
	for _, a := range addresses {
		n := ports.NormalizeAddress(a)
		if n == "" {
			continue
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		wanted = append(wanted, n)
	}

	if len(wanted) == 0 {
		return map[string]domain.GeoPoint{}, nil
	}

	hits := make(map[string]domain.GeoPoint)
	if o.cache != nil {
		hits, err = o.cache.GetMany(ctx, wanted)
		if err != nil {
			return nil, fmt.Errorf("ORS get geocode cache: %w", err)
		}
	}

	misses := make([]string, 0, len(wanted))
	for _, a := range wanted {
		if _, ok := hits[a]; !ok {
			misses = append(misses, a)
		}
	}

	fresh := make(map[string]domain.GeoPoint)
	if len(misses) > 0 {
		fresh, err = o.searchMany(ctx, misses)
		if err != nil {
			return nil, fmt.Errorf("retrieving coordinates: %w", err)
		}
	}

	if o.cache != nil && len(fresh) > 0 {
		// A failed cache write only costs a future lookup.
		if err := o.cache.PutMany(ctx, fresh); err != nil {
			log.Printf("geocode cache write failed: %v", err)
		}
	}

	out := make(map[string]domain.GeoPoint, len(hits)+len(fresh))
	for k, v := range hits {
		out[k] = v
	}
	for k, v := range fresh {
		out[k] = v
	}

	return out, nil
}
