package booking

import (
	"math"

	"armora/models"
)

// FallbackDistanceKm is assumed when either endpoint has no coordinates.
// Kept from the source system so estimates degrade predictably instead of
// erroring on incomplete location data.
const FallbackDistanceKm = 5.0

const earthRadiusKm = 6371

// HaversineKm returns the great-circle distance in kilometers between two
// coordinate pairs. Missing coordinates yield FallbackDistanceKm.
func HaversineKm(a, b *models.Coordinates) float64 {
	if a == nil || b == nil {
		return FallbackDistanceKm
	}
	dLat := (b.Latitude - a.Latitude) * (math.Pi / 180)
	dLon := (b.Longitude - a.Longitude) * (math.Pi / 180)
	lat1Rad := a.Latitude * (math.Pi / 180)
	lat2Rad := b.Latitude * (math.Pi / 180)
	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
	return earthRadiusKm * c
}

// EstimateDurationMinutes estimates travel time between two locations
// assuming a 20 km/h average urban speed, with an 8 minute floor.
func EstimateDurationMinutes(pickup, destination models.Location) int {
	km := HaversineKm(pickup.Coordinates, destination.Coordinates)
	minutes := int(math.Round(km * 3))
	if minutes < 8 {
		return 8
	}
	return minutes
}
