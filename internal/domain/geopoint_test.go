package domain

import (
	"math"
	"testing"
)

func TestPointFromLonLat(t *testing.T) {
	p, ok := PointFromLonLat([]float64{-112.074, 33.448})
	if !ok {
		t.Fatal("expected valid point")
	}
	if p != (GeoPoint{Latitude: 33.448, Longitude: -112.074}) {
		t.Fatalf("point = %+v, want lat 33.448 lon -112.074", p)
	}

	bad := [][]float64{
		nil,
		{1},
		{1, 2, 3},
		{33.448, -112.074, 0},
		{200, 0},
		{0, math.NaN()},
	}
	for _, pos := range bad {
		if _, ok := PointFromLonLat(pos); ok {
			t.Fatalf("PointFromLonLat(%v) should be rejected", pos)
		}
	}
}
