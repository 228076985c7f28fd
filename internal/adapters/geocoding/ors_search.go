package geocoding

import (
	"context"
	"encoding/json"
	"fieldsales-route-service/internal/domain"
	"fmt"
	"log"
	"net/http"
)

type searchResponse struct {
	Features []struct {
		Geometry struct {
			Coordinates []float64 `json:"coordinates"`
		} `json:"geometry"`
	} `json:"features"`
}

// searchMany resolves addresses one at a time via /geocode/search.
// Addresses with no usable feature are logged and skipped so one bad
// address does not sink the whole batch.
func (o *ORSGeocoder) searchMany(ctx context.Context, addresses []string) (map[string]domain.GeoPoint, error) {
	out := make(map[string]domain.GeoPoint, len(addresses))
	for _, a := range addresses {
		p, ok, err := o.search(ctx, a)
		if err != nil {
			return nil, fmt.Errorf("geocode %q: %w", a, err)
		}
		if !ok {
			log.Printf("geocode: no usable result for address=%q", a)
			continue
		}
		out[a] = p
	}
	return out, nil
}

func (o *ORSGeocoder) search(ctx context.Context, address string) (domain.GeoPoint, bool, error) {
	endpoint := o.baseURL + "/geocode/search"

	resp, err := o.doWithRetry(ctx, func() (*http.Request, error) {
		req, err := o.newRequest(ctx, http.MethodGet, endpoint)
		if err != nil {
			return nil, err
		}
		q := req.URL.Query()
		q.Set("text", address)
		q.Set("boundary.country", o.country)
		q.Set("size", "1")
		req.URL.RawQuery = q.Encode()
		return req, nil
	})
	if err != nil {
		return domain.GeoPoint{}, false, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	var decoded searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return domain.GeoPoint{}, false, fmt.Errorf("decode geocode response: %w", err)
	}

	if len(decoded.Features) == 0 {
		return domain.GeoPoint{}, false, nil
	}

	p, ok := domain.PointFromLonLat(decoded.Features[0].Geometry.Coordinates)
	if !ok {
		return domain.GeoPoint{}, false, nil
	}
	return p, true, nil
}
