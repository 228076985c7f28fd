package ports

import (
	"context"
	"fieldsales-route-service/internal/domain"
	"strings"
)

// Contract for turning postal addresses into coordinates.
type Geocoder interface {
	// Return coordinates keyed by NormalizeAddress of each input address.
	// Addresses with no result are absent from the map.
	Geocode(ctx context.Context, addresses []string) (map[string]domain.GeoPoint, error)
}

// NormalizeAddress collapses whitespace. Geocoders and their callers use it
// as the result key, so equivalent addresses also share a cache entry.
func NormalizeAddress(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
