package scoring

import (
	"math"

	"datenight/internal/planner/model"
)

const earthRadiusKm = 6371.0

// HaversineKm is the great-circle distance between two points in kilometres.
func HaversineKm(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := (lat2 - lat1) * math.Pi / 180
	dLng := (lng2 - lng1) * math.Pi / 180
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*math.Pi/180)*math.Cos(lat2*math.Pi/180)*math.Sin(dLng/2)*math.Sin(dLng/2)
	return earthRadiusKm * 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

// DistanceKm returns the distance between two optional locations. ok is false when
// either side has no coordinates; callers treat that as neutral.
func DistanceKm(a, b *model.LatLng) (km float64, ok bool) {
	if a == nil || b == nil {
		return 0, false
	}
	return HaversineKm(a.Lat, a.Lng, b.Lat, b.Lng), true
}
