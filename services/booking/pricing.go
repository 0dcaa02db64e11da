package booking

import (
	"math"

	"armora/models"
)

// PerKmRate is the flat distance charge applied on top of a tier's base price.
const PerKmRate = 1.20

const (
	serviceFeeRate = 0.10
	vatRate        = 0.20
)

// tierMultipliers scales the estimate by the selected ride class.
var tierMultipliers = map[string]float64{
	"Economy": 1.0,
	"Comfort": 1.5,
	"Premium": 2.0,
}

// EstimatePrice computes the headline estimate for a service between two
// locations: base price plus a per-kilometre charge, rounded to 2 decimals.
func EstimatePrice(service models.ServiceTier, pickup, destination models.Location) float64 {
	km := HaversineKm(pickup.Coordinates, destination.Coordinates)
	return round2(service.BasePrice + km*PerKmRate)
}

// ApplyRideTierMultiplier scales a price by the ride class multiplier.
// Unrecognised tiers charge the base rate.
func ApplyRideTierMultiplier(price float64, tier string) float64 {
	multiplier, ok := tierMultipliers[tier]
	if !ok {
		multiplier = 1.0
	}
	return round2(price * multiplier)
}

// BuildQuote produces an itemized estimate including the 10% service fee and
// 20% VAT shown on client pricing screens. The headline EstimatePrice formula
// stays the canonical booking amount; the quote is informational.
func BuildQuote(service models.ServiceTier, tier string, pickup, destination models.Location) models.Quote {
	km := HaversineKm(pickup.Coordinates, destination.Coordinates)
	distanceFare := km * PerKmRate
	subtotal := service.BasePrice + distanceFare
	if multiplier, ok := tierMultipliers[tier]; ok {
		subtotal *= multiplier
	}
	serviceFee := subtotal * serviceFeeRate
	vat := (subtotal + serviceFee) * vatRate

	return models.Quote{
		DistanceKm:      round2(km),
		DurationMinutes: EstimateDurationMinutes(pickup, destination),
		BaseFare:        round2(service.BasePrice),
		DistanceFare:    round2(distanceFare),
		Subtotal:        round2(subtotal),
		ServiceFee:      round2(serviceFee),
		VAT:             round2(vat),
		Total:           round2(subtotal + serviceFee + vat),
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
