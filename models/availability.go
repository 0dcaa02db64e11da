package models

// AvailabilityReport is the outcome of a service availability probe.
type AvailabilityReport struct {
	Available            bool `json:"available"`
	EstimatedWaitMinutes int  `json:"estimatedWaitMinutes,omitempty"`
	NearbyOfficerCount   int  `json:"nearbyOfficerCount,omitempty"`
}
