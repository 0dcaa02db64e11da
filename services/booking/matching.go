package booking

import (
	"context"
	"sort"

	"armora/models"
)

// OfficerMatcher suggests close-protection officers for a pickup point. A
// dispatch backend can be substituted without touching the coordinator.
type OfficerMatcher interface {
	MatchNearbyOfficers(ctx context.Context, pickup models.Location) ([]models.OfficerDTO, error)
}

// rankedOfficer holds an officer with its computed score.
type rankedOfficer struct {
	officer    models.Officer
	rankPoints float64
	distanceKm float64
}

// FleetOfficerMatcher ranks a fixed fleet by proximity and rating. Used until
// a live dispatch feed exists.
type FleetOfficerMatcher struct {
	Fleet []models.Officer
}

// NewFleetOfficerMatcher returns a matcher over the built-in demo fleet.
func NewFleetOfficerMatcher() *FleetOfficerMatcher {
	return &FleetOfficerMatcher{Fleet: defaultFleet()}
}

const (
	maxProximityPts = 45.0
	maxRatingPts    = 15.0
	proximityCapKm  = 25.0
)

// MatchNearbyOfficers scores every fleet officer against the pickup point and
// returns them best-first, the top result flagged as preferred.
func (m *FleetOfficerMatcher) MatchNearbyOfficers(ctx context.Context, pickup models.Location) ([]models.OfficerDTO, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ranked := make([]rankedOfficer, 0, len(m.Fleet))
	for _, o := range m.Fleet {
		distanceKm := HaversineKm(pickup.Coordinates, o.Location)
		proximityScore := 0.0
		if distanceKm < proximityCapKm {
			proximityScore = maxProximityPts * (1 - distanceKm/proximityCapKm)
		}
		rating := o.Rating
		if rating > 5 {
			rating = 5
		}
		ranked = append(ranked, rankedOfficer{
			officer:    o,
			rankPoints: proximityScore + (rating/5)*maxRatingPts,
			distanceKm: distanceKm,
		})
	}

	sort.Slice(ranked, func(i, j int) bool {
		return ranked[i].rankPoints > ranked[j].rankPoints
	})

	dtos := make([]models.OfficerDTO, 0, len(ranked))
	for i, r := range ranked {
		dtos = append(dtos, models.OfficerDTO{
			Officer:   r.officer,
			Preferred: i == 0,
			Proximity: r.distanceKm * 1000,
		})
	}
	return dtos, nil
}

func defaultFleet() []models.Officer {
	return []models.Officer{
		{
			ID: "officer_001", Name: "Marcus Steel", Phone: "+44 7700 900001",
			Rating: 4.9, SIALicence: "SIA-1018-4412",
			Vehicle:  models.Vehicle{Make: "BMW", Model: "5 Series", Color: "Black", LicensePlate: "GQ123"},
			Location: &models.Coordinates{Latitude: 51.5074, Longitude: -0.1278},
		},
		{
			ID: "officer_002", Name: "Alexandra Frost", Phone: "+44 7700 900002",
			Rating: 4.8, SIALicence: "SIA-1027-8854",
			Vehicle:  models.Vehicle{Make: "Mercedes-Benz", Model: "E-Class", Color: "Silver", LicensePlate: "GQ208"},
			Location: &models.Coordinates{Latitude: 51.5155, Longitude: -0.0922},
		},
		{
			ID: "officer_003", Name: "Daniel Okafor", Phone: "+44 7700 900003",
			Rating: 4.7, SIALicence: "SIA-1033-1290",
			Vehicle:  models.Vehicle{Make: "Audi", Model: "A6", Color: "Black", LicensePlate: "GQ317"},
			Location: &models.Coordinates{Latitude: 51.4700, Longitude: -0.4543},
		},
		{
			ID: "officer_004", Name: "Sarah Whitmore", Phone: "+44 7700 900004",
			Rating: 5.0, SIALicence: "SIA-1041-6673",
			Vehicle:  models.Vehicle{Make: "Range Rover", Model: "Autobiography", Color: "Grey", LicensePlate: "GQ450"},
			Location: &models.Coordinates{Latitude: 51.5007, Longitude: -0.1246},
		},
	}
}
