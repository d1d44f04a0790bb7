// Package geo computes great-circle distances between participant locations.
package geo

import (
	"math"

	"github.com/KirkDiggler/faceoff/internal/models"
)

const (
	// EarthRadiusMeters is the IUGG mean Earth radius
	EarthRadiusMeters = 6371008.8

	// MaxIndexedLatitude is the furthest latitude a Redis GEO index accepts
	MaxIndexedLatitude = 85.05112878
)

// Indexable reports whether c can be stored in the location index
func Indexable(c models.Coordinates) bool {
	return c.Longitude >= -180 && c.Longitude <= 180 &&
		c.Latitude >= -MaxIndexedLatitude && c.Latitude <= MaxIndexedLatitude
}

// Distance returns the haversine distance between a and b in meters.
// Coordinates are degrees; validating them is the caller's job.
func Distance(a, b models.Coordinates) float64 {
	lat1 := radians(a.Latitude)
	lat2 := radians(b.Latitude)
	dLat := radians(b.Latitude - a.Latitude)
	dLng := radians(b.Longitude - a.Longitude)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	// rounding can push h marginally above 1 for antipodal points
	h = math.Min(1, h)

	return 2 * EarthRadiusMeters * math.Asin(math.Sqrt(h))
}

// Within reports whether b lies no further than maxMeters from a
func Within(a, b models.Coordinates, maxMeters float64) bool {
	return Distance(a, b) <= maxMeters
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
