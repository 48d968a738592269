// Package geo holds the pure great-circle math used by the proximity
// filter. No I/O, no state.
package geo

import (
	"math"

	"github.com/opinionmap/api/internal/core/domain"
)

// EarthRadiusKM is the mean Earth radius used by the haversine formula.
const EarthRadiusKM = 6371.0

// Distance returns the great-circle distance between a and b in
// kilometers, computed with the haversine formula. Identical points
// yield 0; NaN coordinates propagate NaN.
func Distance(a, b domain.Location) float64 {
	lat1 := radians(a.Latitude)
	lat2 := radians(b.Latitude)
	dLat := radians(b.Latitude - a.Latitude)
	dLon := radians(b.Longitude - a.Longitude)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*
			math.Sin(dLon/2)*math.Sin(dLon/2)

	return 2 * EarthRadiusKM * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

// FilterWithinRadius returns the answers whose distance from center is at
// most radiusKM, preserving input order. Linear scan: acceptable only for
// small corpora.
func FilterWithinRadius(answers []domain.ProximityAnswer, center domain.Location, radiusKM float64) []domain.ProximityAnswer {
	var within []domain.ProximityAnswer
	for _, a := range answers {
		d := Distance(center, domain.Location{Latitude: a.Latitude, Longitude: a.Longitude})
		if d <= radiusKM {
			within = append(within, a)
		}
	}
	return within
}

func radians(degrees float64) float64 {
	return degrees * math.Pi / 180.0
}
