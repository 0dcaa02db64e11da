package booking

import (
	"context"
	"math/rand"
	"sync"

	"armora/models"
)

// AvailabilityProvider probes whether a service can currently be dispatched
// near a location. The default implementation is a stand-in; a dispatch
// backend can replace it without changing the contract.
type AvailabilityProvider interface {
	CheckAvailability(ctx context.Context, location models.Location, serviceType string) (*models.AvailabilityReport, error)
}

// RandomAvailabilityProvider simulates an availability probe. Roughly 9 in 10
// probes report availability with a short wait and a handful of nearby
// officers.
type RandomAvailabilityProvider struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandomAvailabilityProvider returns a provider with the given seed so
// tests can pin outcomes.
func NewRandomAvailabilityProvider(seed int64) *RandomAvailabilityProvider {
	return &RandomAvailabilityProvider{rng: rand.New(rand.NewSource(seed))}
}

func (p *RandomAvailabilityProvider) CheckAvailability(ctx context.Context, location models.Location, serviceType string) (*models.AvailabilityReport, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.rng.Float64() >= 0.9 {
		return &models.AvailabilityReport{Available: false}, nil
	}
	return &models.AvailabilityReport{
		Available:            true,
		EstimatedWaitMinutes: 3 + p.rng.Intn(10),
		NearbyOfficerCount:   1 + p.rng.Intn(6),
	}, nil
}
