package domain

import "math"

// EarthRadiusKm is the mean Earth radius used by DistanceKm.
const EarthRadiusKm = 6371.0

// DistanceKm returns the great-circle distance between a and b in kilometers
// using the haversine formula on a spherical Earth.
//
// Elevation and oblateness are ignored, which is fine for city or regional
// sales routing. NaN coordinates propagate to a NaN result.
func DistanceKm(a, b GeoPoint) float64 {
	dLat := radians(b.Latitude - a.Latitude)
	dLon := radians(b.Longitude - a.Longitude)

	sinLat := math.Sin(dLat / 2)
	sinLon := math.Sin(dLon / 2)

	h := sinLat*sinLat + math.Cos(radians(a.Latitude))*math.Cos(radians(b.Latitude))*sinLon*sinLon

	return 2 * EarthRadiusKm * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
