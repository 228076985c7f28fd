package domain

import (
	"math"
	"testing"
)

func TestDistanceKmKnownLegs(t *testing.T) {
	origin := GeoPoint{Latitude: 0, Longitude: 0}

	tests := []struct {
		name string
		to   GeoPoint
		want float64
	}{
		{"one degree east", GeoPoint{Latitude: 0, Longitude: 1}, 111.195},
		{"five degrees east", GeoPoint{Latitude: 0, Longitude: 5}, 555.975},
		{"one degree north", GeoPoint{Latitude: 1, Longitude: 0}, 111.195},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DistanceKm(origin, tt.to)
			if math.Abs(got-tt.want) > 0.01 {
				t.Fatalf("DistanceKm = %.4f, want %.3f", got, tt.want)
			}
		})
	}
}

func TestDistanceKmCityPair(t *testing.T) {
	phoenix := GeoPoint{Latitude: 33.4484, Longitude: -112.0740}
	tucson := GeoPoint{Latitude: 32.2226, Longitude: -110.9747}

	got := DistanceKm(phoenix, tucson)
	if got < 165 || got > 175 {
		t.Fatalf("phoenix->tucson = %.2f km, want ~170 km", got)
	}
}

func TestDistanceKmSymmetricAndNonNegative(t *testing.T) {
	points := []GeoPoint{
		{Latitude: 0, Longitude: 0},
		{Latitude: 33.4484, Longitude: -112.0740},
		{Latitude: -33.8688, Longitude: 151.2093},
		{Latitude: 89.9, Longitude: 179.9},
		{Latitude: -90, Longitude: -180},
		{Latitude: 51.5074, Longitude: -0.1278},
	}

	for _, a := range points {
		if d := DistanceKm(a, a); d != 0 {
			t.Fatalf("DistanceKm(%v, %v) = %v, want 0", a, a, d)
		}
		for _, b := range points {
			ab := DistanceKm(a, b)
			ba := DistanceKm(b, a)
			if ab != ba {
				t.Fatalf("asymmetric distance %v -> %v: %v vs %v", a, b, ab, ba)
			}
			if ab < 0 {
				t.Fatalf("negative distance %v -> %v: %v", a, b, ab)
			}
		}
	}
}

func TestDistanceKmPropagatesNaN(t *testing.T) {
	d := DistanceKm(GeoPoint{Latitude: math.NaN()}, GeoPoint{Latitude: 1, Longitude: 1})
	if !math.IsNaN(d) {
		t.Fatalf("expected NaN, got %v", d)
	}
}

func TestGeoPointValid(t *testing.T) {
	tests := []struct {
		p    GeoPoint
		want bool
	}{
		{GeoPoint{Latitude: 0, Longitude: 0}, true},
		{GeoPoint{Latitude: 90, Longitude: 180}, true},
		{GeoPoint{Latitude: -90, Longitude: -180}, true},
		{GeoPoint{Latitude: 90.0001, Longitude: 0}, false},
		{GeoPoint{Latitude: 0, Longitude: -180.5}, false},
		{GeoPoint{Latitude: math.NaN(), Longitude: 0}, false},
		{GeoPoint{Latitude: 0, Longitude: math.Inf(1)}, false},
	}

	for _, tt := range tests {
		if got := tt.p.Valid(); got != tt.want {
			t.Errorf("%v.Valid() = %v, want %v", tt.p, got, tt.want)
		}
	}
}
