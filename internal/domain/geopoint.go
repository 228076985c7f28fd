package domain

import "math"

// Immutable geographic point in decimal degrees.
// A GeoPoint has no identity beyond its coordinates.
type GeoPoint struct {
	Latitude  float64
	Longitude float64
}

// Valid reports whether both coordinates are finite and in range.
func (p GeoPoint) Valid() bool {
	if math.IsNaN(p.Latitude) || math.IsNaN(p.Longitude) {
		return false
	}
	return p.Latitude >= -90 && p.Latitude <= 90 &&
		p.Longitude >= -180 && p.Longitude <= 180
}

// PointFromLonLat converts a GeoJSON [lon, lat] position.
// It reports false unless the position has exactly two valid coordinates.
func PointFromLonLat(pos []float64) (GeoPoint, bool) {
	if len(pos) != 2 {
		return GeoPoint{}, false
	}
	p := GeoPoint{Latitude: pos[1], Longitude: pos[0]}
	return p, p.Valid()
}
