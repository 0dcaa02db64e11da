package models

// ServiceTier describes a bookable security-transport service level.
type ServiceTier struct {
	ID          string  `bson:"id" json:"id"`
	Name        string  `bson:"name" json:"name"`
	BasePrice   float64 `bson:"basePrice" json:"basePrice"`
	Description string  `bson:"description,omitempty" json:"description,omitempty"`
}

// RideOption is a vehicle class selected within a service tier. Tier drives
// the pricing multiplier (Economy, Comfort, Premium).
type RideOption struct {
	ID          string `bson:"id" json:"id"`
	Name        string `bson:"name" json:"name"`
	Tier        string `bson:"tier" json:"tier"`
	Description string `bson:"description,omitempty" json:"description,omitempty"`
}

// Quote is an itemized price estimate for a prospective booking.
type Quote struct {
	DistanceKm      float64 `json:"distanceKm"`
	DurationMinutes int     `json:"durationMinutes"`
	BaseFare        float64 `json:"baseFare"`
	DistanceFare    float64 `json:"distanceFare"`
	Subtotal        float64 `json:"subtotal"`
	ServiceFee      float64 `json:"serviceFee"`
	VAT             float64 `json:"vat"`
	Total           float64 `json:"total"`
}

// DefaultServiceTiers returns the catalogue shown to clients when no remote
// service registry is configured.
func DefaultServiceTiers() []ServiceTier {
	return []ServiceTier{
		{ID: "standard", Name: "Standard Protection", BasePrice: 50.00, Description: "SIA-licensed driver, unmarked executive vehicle"},
		{ID: "executive", Name: "Executive Protection", BasePrice: 75.00, Description: "Close protection officer, luxury vehicle"},
		{ID: "shadow", Name: "Shadow Escort", BasePrice: 65.00, Description: "Discreet two-vehicle escort"},
		{ID: "airport", Name: "Airport Transfer", BasePrice: 55.00, Description: "Secure terminal-to-door transfer"},
	}
}
