package domain

import "github.com/golang/geo/s2"

// earthRadiusKm converts the s2 angular distance to a surface distance.
const earthRadiusKm = 6371.01

// GeodesicKm returns the great-circle distance in kilometers between two
// WGS-84 coordinates in degrees. Identical points yield exactly zero.
func GeodesicKm(lat1, lon1, lat2, lon2 float64) float64 {
	a := s2.LatLngFromDegrees(lat1, lon1)
	b := s2.LatLngFromDegrees(lat2, lon2)
	return a.Distance(b).Radians() * earthRadiusKm
}
