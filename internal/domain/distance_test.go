package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGeodesicKm_KnownDistances(t *testing.T) {
	t.Run("San Francisco to Los Angeles", func(t *testing.T) {
		d := GeodesicKm(37.7749, -122.4194, 34.0522, -118.2437)
		assert.InDelta(t, 559, d, 5)
	})

	t.Run("Paris to London", func(t *testing.T) {
		d := GeodesicKm(48.8566, 2.3522, 51.5074, -0.1278)
		assert.InDelta(t, 344, d, 5)
	})

	t.Run("one degree of latitude", func(t *testing.T) {
		d := GeodesicKm(0, 0, 1, 0)
		assert.InDelta(t, 111.2, d, 0.5)
	})
}

func TestGeodesicKm_Identity(t *testing.T) {
	assert.Equal(t, 0.0, GeodesicKm(35.0, 139.0, 35.0, 139.0))
	assert.Equal(t, 0.0, GeodesicKm(0, 0, 0, 0))
}

func TestGeodesicKm_Symmetry(t *testing.T) {
	pairs := [][4]float64{
		{37.7749, -122.4194, 34.0522, -118.2437},
		{-33.8688, 151.2093, 35.6762, 139.6503},
		{64.1466, -21.9426, -54.8019, -68.3030},
	}
	for _, p := range pairs {
		ab := GeodesicKm(p[0], p[1], p[2], p[3])
		ba := GeodesicKm(p[2], p[3], p[0], p[1])
		assert.InDelta(t, ab, ba, 1e-9)
	}
}
